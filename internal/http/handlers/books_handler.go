// Book HTTP handlers.
//
// Listing and single-item reads are public; mutations require a bearer
// token. Reads accept an include query parameter (comma-separated relation
// names: tags, created_by, reviews) and the listing accepts a tag filter.
package handlers

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/bookclubapp/go-bookclub-backend/internal/domain"
	"github.com/bookclubapp/go-bookclub-backend/internal/services"
	"github.com/bookclubapp/go-bookclub-backend/internal/utils"
)

// BookService defines book lifecycle operations consumed by HTTP handlers.
type BookService interface {
	Create(ctx context.Context, in services.CreateBookInput) (*domain.Book, error)
	List(ctx context.Context, q services.BookListQuery) ([]domain.Book, int64, error)
	Get(ctx context.Context, id string, includes []string) (*domain.Book, error)
	Update(ctx context.Context, id string, in services.UpdateBookInput) (*domain.Book, error)
	Delete(ctx context.Context, id string) error
}

// CreateBookRequest is the JSON payload for registering a book.
type CreateBookRequest struct {
	Title           string   `json:"title" binding:"required,min=1,max=500" example:"The Dispossessed"`
	Author          string   `json:"author" binding:"required,min=1,max=255" example:"Ursula K. Le Guin"`
	Synopsis        *string  `json:"synopsis" binding:"omitempty,max=5000"`
	CoverURL        *string  `json:"cover_url" binding:"omitempty,url"`
	PublicationYear *int     `json:"publication_year" binding:"omitempty,gte=0"`
	TagIDs          []string `json:"tag_ids" binding:"omitempty,dive,uuid"`
}

// UpdateBookRequest is the JSON payload for a partial book update.
type UpdateBookRequest struct {
	Title           *string                `json:"title" binding:"omitempty,min=1,max=500"`
	Author          *string                `json:"author" binding:"omitempty,min=1,max=255"`
	Synopsis        utils.Optional[string] `json:"synopsis" swaggertype:"string"`
	CoverURL        utils.Optional[string] `json:"cover_url" swaggertype:"string"`
	PublicationYear utils.Optional[int]    `json:"publication_year" swaggertype:"integer"`
}

// CreateBook godoc
// @ID          createBook
// @Summary     Register a book
// @Description Creates a book and optionally attaches existing tags by id. The publication year may be at most five years in the future.
// @Tags        Books
// @Accept      json
// @Produce     json
// @Security    BearerAuth
//
// @Param       body  body  handlers.CreateBookRequest  true  "Book payload"
//
// @Success     201  {object}  domain.Book
// @Failure     400  {object}  handlers.ErrorResponse  "Malformed payload or invalid year"
// @Failure     401  {object}  handlers.ErrorResponse  "Token not provided"
// @Failure     403  {object}  handlers.ErrorResponse  "Invalid token"
// @Router      /books [post]
func (h *Handlers) CreateBook(c *gin.Context) {
	var req CreateBookRequest
	if !bindJSON(c, &req) {
		return
	}
	in := services.CreateBookInput{
		Title:           req.Title,
		Author:          req.Author,
		Synopsis:        req.Synopsis,
		CoverURL:        req.CoverURL,
		PublicationYear: req.PublicationYear,
		TagIDs:          req.TagIDs,
	}
	if claims, okC := identity(c); okC {
		in.CreatedByID = &claims.ID
	}
	b, err := h.booksSvc.Create(c.Request.Context(), in)
	if err != nil {
		serviceError(c, err)
		return
	}
	ok(c, http.StatusCreated, b)
}

// ListBooks godoc
// @ID          listBooks
// @Summary     List books (paginated)
// @Description Returns a page of books, optionally restricted to those carrying the given tag name (case-insensitive).
// @Tags        Books
// @Produce     json
//
// @Param       page     query  string  false  "Page number"     default(1)
// @Param       size     query  string  false  "Items per page"  default(10)
// @Param       tag      query  string  false  "Exact tag name filter"
// @Param       include  query  string  false  "Comma-separated relations: tags,created_by,reviews"
//
// @Success     200  {object}  handlers.ListResponse[domain.Book]
// @Failure     400  {object}  handlers.ErrorResponse  "Invalid pagination or unknown relation"
// @Router      /books [get]
func (h *Handlers) ListBooks(c *gin.Context) {
	page, size, okP := pageParams(c)
	if !okP {
		return
	}
	items, total, err := h.booksSvc.List(c.Request.Context(), services.BookListQuery{
		Page:     page,
		Size:     size,
		TagName:  c.Query("tag"),
		Includes: includeParams(c),
	})
	if err != nil {
		serviceError(c, err)
		return
	}
	listOK(c, items, page, size, total)
}

// GetBook godoc
// @ID          getBook
// @Summary     Fetch a book by id
// @Tags        Books
// @Produce     json
//
// @Param       id       path   string  true   "Book ID (UUID)"  format(uuid)
// @Param       include  query  string  false  "Comma-separated relations: tags,created_by,reviews"
//
// @Success     200  {object}  domain.Book
// @Failure     400  {object}  handlers.ErrorResponse  "Unknown relation"
// @Failure     404  {object}  handlers.ErrorResponse  "Book not found"
// @Router      /books/{id} [get]
func (h *Handlers) GetBook(c *gin.Context) {
	b, err := h.booksSvc.Get(c.Request.Context(), c.Param("id"), includeParams(c))
	if err != nil {
		serviceError(c, err)
		return
	}
	ok(c, http.StatusOK, b)
}

// UpdateBook godoc
// @ID          updateBook
// @Summary     Partially update a book
// @Tags        Books
// @Accept      json
// @Produce     json
// @Security    BearerAuth
//
// @Param       id    path  string                      true  "Book ID (UUID)"  format(uuid)
// @Param       body  body  handlers.UpdateBookRequest  true  "Fields to change"
//
// @Success     200  {object}  domain.Book
// @Failure     400  {object}  handlers.ErrorResponse  "Malformed payload or invalid year"
// @Failure     404  {object}  handlers.ErrorResponse  "Book not found"
// @Router      /books/{id} [patch]
func (h *Handlers) UpdateBook(c *gin.Context) {
	var req UpdateBookRequest
	if !bindJSON(c, &req) {
		return
	}
	var errs []string
	errs = checkOptionalMax(errs, "synopsis", req.Synopsis, 5000)
	errs = checkOptionalURL(errs, "cover_url", req.CoverURL)
	if len(errs) > 0 {
		failFields(c, errs)
		return
	}
	b, err := h.booksSvc.Update(c.Request.Context(), c.Param("id"), services.UpdateBookInput{
		Title:           req.Title,
		Author:          req.Author,
		Synopsis:        req.Synopsis,
		CoverURL:        req.CoverURL,
		PublicationYear: req.PublicationYear,
	})
	if err != nil {
		serviceError(c, err)
		return
	}
	ok(c, http.StatusOK, b)
}

// DeleteBook godoc
// @ID          deleteBook
// @Summary     Delete a book (soft)
// @Tags        Books
// @Security    BearerAuth
//
// @Param       id  path  string  true  "Book ID (UUID)"  format(uuid)
//
// @Success     204  {string}  string  "No Content"
// @Failure     404  {object}  handlers.ErrorResponse  "Book not found"
// @Router      /books/{id} [delete]
func (h *Handlers) DeleteBook(c *gin.Context) {
	if err := h.booksSvc.Delete(c.Request.Context(), c.Param("id")); err != nil {
		serviceError(c, err)
		return
	}
	noContent(c)
}
