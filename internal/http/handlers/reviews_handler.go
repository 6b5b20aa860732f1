// Review HTTP handlers. Reads are public so book pages can show ratings
// without a session; mutations require a bearer token. A person may review
// a given book at most once.
package handlers

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/bookclubapp/go-bookclub-backend/internal/domain"
	"github.com/bookclubapp/go-bookclub-backend/internal/services"
	"github.com/bookclubapp/go-bookclub-backend/internal/utils"
)

// ReviewService defines review operations consumed by HTTP handlers.
type ReviewService interface {
	Create(ctx context.Context, in services.CreateReviewInput) (*domain.Review, error)
	List(ctx context.Context, q services.ReviewListQuery) ([]domain.Review, int64, error)
	Get(ctx context.Context, id string, includes []string) (*domain.Review, error)
	Update(ctx context.Context, id string, in services.UpdateReviewInput) (*domain.Review, error)
	Delete(ctx context.Context, id string) error
}

// CreateReviewRequest is the JSON payload for reviewing a book. The
// reviewer is the authenticated caller.
type CreateReviewRequest struct {
	BookID  string  `json:"book_id" binding:"required,uuid"`
	Rating  int     `json:"rating" binding:"required,gte=1,lte=5" example:"4"`
	Comment *string `json:"comment" binding:"omitempty,max=5000"`
}

// UpdateReviewRequest is the JSON payload for a partial review update.
type UpdateReviewRequest struct {
	Rating  *int                   `json:"rating" binding:"omitempty,gte=1,lte=5"`
	Comment utils.Optional[string] `json:"comment" swaggertype:"string"`
}

// CreateReview godoc
// @ID          createReview
// @Summary     Review a book
// @Description Records a 1–5 star rating with an optional comment. One review per person per book.
// @Tags        Reviews
// @Accept      json
// @Produce     json
// @Security    BearerAuth
//
// @Param       body  body  handlers.CreateReviewRequest  true  "Review payload"
//
// @Success     201  {object}  domain.Review
// @Failure     400  {object}  handlers.ErrorResponse  "Malformed payload, rating out of range, or already reviewed"
// @Failure     404  {object}  handlers.ErrorResponse  "Book not found"
// @Router      /reviews [post]
func (h *Handlers) CreateReview(c *gin.Context) {
	var req CreateReviewRequest
	if !bindJSON(c, &req) {
		return
	}
	claims, okC := identity(c)
	if !okC {
		fail(c, http.StatusUnauthorized, "token not provided")
		return
	}
	r, err := h.reviewsSvc.Create(c.Request.Context(), services.CreateReviewInput{
		BookID:   req.BookID,
		PersonID: claims.ID,
		Rating:   req.Rating,
		Comment:  req.Comment,
	})
	if err != nil {
		serviceError(c, err)
		return
	}
	ok(c, http.StatusCreated, r)
}

// ListReviews godoc
// @ID          listReviews
// @Summary     List reviews (paginated)
// @Tags        Reviews
// @Produce     json
//
// @Param       page       query  string  false  "Page number"     default(1)
// @Param       size       query  string  false  "Items per page"  default(10)
// @Param       book_id    query  string  false  "Filter by book"
// @Param       person_id  query  string  false  "Filter by reviewer"
// @Param       include    query  string  false  "Comma-separated relations: book,person"
//
// @Success     200  {object}  handlers.ListResponse[domain.Review]
// @Failure     400  {object}  handlers.ErrorResponse  "Invalid pagination or unknown relation"
// @Router      /reviews [get]
func (h *Handlers) ListReviews(c *gin.Context) {
	h.listReviews(c, c.Query("book_id"), c.Query("person_id"))
}

// ListReviewsByBook godoc
// @ID          listReviewsByBook
// @Summary     List a book's reviews
// @Tags        Reviews
// @Produce     json
//
// @Param       book_id  path   string  true   "Book ID (UUID)"  format(uuid)
// @Param       page     query  string  false  "Page number"     default(1)
// @Param       size     query  string  false  "Items per page"  default(10)
//
// @Success     200  {object}  handlers.ListResponse[domain.Review]
// @Router      /reviews/book/{book_id} [get]
func (h *Handlers) ListReviewsByBook(c *gin.Context) {
	h.listReviews(c, c.Param("book_id"), "")
}

func (h *Handlers) listReviews(c *gin.Context, bookID, personID string) {
	page, size, okP := pageParams(c)
	if !okP {
		return
	}
	items, total, err := h.reviewsSvc.List(c.Request.Context(), services.ReviewListQuery{
		Page:     page,
		Size:     size,
		BookID:   bookID,
		PersonID: personID,
		Includes: includeParams(c),
	})
	if err != nil {
		serviceError(c, err)
		return
	}
	listOK(c, items, page, size, total)
}

// GetReview godoc
// @ID          getReview
// @Summary     Fetch a review by id
// @Tags        Reviews
// @Produce     json
//
// @Param       id       path   string  true   "Review ID (UUID)"  format(uuid)
// @Param       include  query  string  false  "Comma-separated relations: book,person"
//
// @Success     200  {object}  domain.Review
// @Failure     404  {object}  handlers.ErrorResponse  "Review not found"
// @Router      /reviews/{id} [get]
func (h *Handlers) GetReview(c *gin.Context) {
	r, err := h.reviewsSvc.Get(c.Request.Context(), c.Param("id"), includeParams(c))
	if err != nil {
		serviceError(c, err)
		return
	}
	ok(c, http.StatusOK, r)
}

// UpdateReview godoc
// @ID          updateReview
// @Summary     Partially update a review
// @Tags        Reviews
// @Accept      json
// @Produce     json
// @Security    BearerAuth
//
// @Param       id    path  string                        true  "Review ID (UUID)"  format(uuid)
// @Param       body  body  handlers.UpdateReviewRequest  true  "Fields to change"
//
// @Success     200  {object}  domain.Review
// @Failure     400  {object}  handlers.ErrorResponse  "Rating out of range"
// @Failure     404  {object}  handlers.ErrorResponse  "Review not found"
// @Router      /reviews/{id} [patch]
func (h *Handlers) UpdateReview(c *gin.Context) {
	var req UpdateReviewRequest
	if !bindJSON(c, &req) {
		return
	}
	if errs := checkOptionalMax(nil, "comment", req.Comment, 5000); len(errs) > 0 {
		failFields(c, errs)
		return
	}
	r, err := h.reviewsSvc.Update(c.Request.Context(), c.Param("id"), services.UpdateReviewInput{
		Rating:  req.Rating,
		Comment: req.Comment,
	})
	if err != nil {
		serviceError(c, err)
		return
	}
	ok(c, http.StatusOK, r)
}

// DeleteReview godoc
// @ID          deleteReview
// @Summary     Delete a review (hard)
// @Tags        Reviews
// @Security    BearerAuth
//
// @Param       id  path  string  true  "Review ID (UUID)"  format(uuid)
//
// @Success     204  {string}  string  "No Content"
// @Failure     404  {object}  handlers.ErrorResponse  "Review not found"
// @Router      /reviews/{id} [delete]
func (h *Handlers) DeleteReview(c *gin.Context) {
	if err := h.reviewsSvc.Delete(c.Request.Context(), c.Param("id")); err != nil {
		serviceError(c, err)
		return
	}
	noContent(c)
}
