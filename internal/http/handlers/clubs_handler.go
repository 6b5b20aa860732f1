// Club HTTP handlers. All club routes require a bearer token. Listing
// supports creator and current-book filters both as query parameters and
// as dedicated path-scoped routes.
package handlers

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/bookclubapp/go-bookclub-backend/internal/domain"
	"github.com/bookclubapp/go-bookclub-backend/internal/services"
	"github.com/bookclubapp/go-bookclub-backend/internal/utils"
)

// ClubService defines club lifecycle operations consumed by HTTP handlers.
type ClubService interface {
	Create(ctx context.Context, in services.CreateClubInput) (*domain.Club, error)
	List(ctx context.Context, q services.ClubListQuery) ([]domain.Club, int64, error)
	Get(ctx context.Context, id string, includes []string) (*domain.Club, error)
	Update(ctx context.Context, id string, in services.UpdateClubInput) (*domain.Club, error)
	Delete(ctx context.Context, id string) error
}

// CreateClubRequest is the JSON payload for founding a club. The creator
// is the authenticated caller.
type CreateClubRequest struct {
	Name          string  `json:"name" binding:"required,min=1,max=255" example:"Tuesday Night Readers"`
	Description   *string `json:"description" binding:"omitempty,max=2000"`
	CurrentBookID *string `json:"current_book_id" binding:"omitempty,uuid"`
}

// UpdateClubRequest is the JSON payload for a partial club update. Sending
// an empty current_book_id clears the selection.
type UpdateClubRequest struct {
	Name          *string                `json:"name" binding:"omitempty,min=1,max=255"`
	Description   utils.Optional[string] `json:"description" swaggertype:"string"`
	CurrentBookID *string                `json:"current_book_id" binding:"omitempty"`
}

// CreateClub godoc
// @ID          createClub
// @Summary     Found a club
// @Description Creates a club owned by the authenticated caller, optionally with a current book.
// @Tags        Clubs
// @Accept      json
// @Produce     json
// @Security    BearerAuth
//
// @Param       body  body  handlers.CreateClubRequest  true  "Club payload"
//
// @Success     201  {object}  domain.Club
// @Failure     400  {object}  handlers.ErrorResponse  "Malformed payload"
// @Failure     404  {object}  handlers.ErrorResponse  "Referenced book not found"
// @Router      /clubs [post]
func (h *Handlers) CreateClub(c *gin.Context) {
	var req CreateClubRequest
	if !bindJSON(c, &req) {
		return
	}
	claims, okC := identity(c)
	if !okC {
		fail(c, http.StatusUnauthorized, "token not provided")
		return
	}
	club, err := h.clubsSvc.Create(c.Request.Context(), services.CreateClubInput{
		Name:          req.Name,
		Description:   req.Description,
		CurrentBookID: req.CurrentBookID,
		CreatorID:     claims.ID,
	})
	if err != nil {
		serviceError(c, err)
		return
	}
	ok(c, http.StatusCreated, club)
}

// ListClubs godoc
// @ID          listClubs
// @Summary     List clubs (paginated)
// @Tags        Clubs
// @Produce     json
// @Security    BearerAuth
//
// @Param       page             query  string  false  "Page number"     default(1)
// @Param       size             query  string  false  "Items per page"  default(10)
// @Param       creator_id       query  string  false  "Filter by creator"
// @Param       current_book_id  query  string  false  "Filter by current book"
// @Param       include          query  string  false  "Comma-separated relations: creator,current_book"
//
// @Success     200  {object}  handlers.ListResponse[domain.Club]
// @Failure     400  {object}  handlers.ErrorResponse  "Invalid pagination or unknown relation"
// @Router      /clubs [get]
func (h *Handlers) ListClubs(c *gin.Context) {
	h.listClubs(c, c.Query("creator_id"), c.Query("current_book_id"))
}

// ListClubsByCreator godoc
// @ID          listClubsByCreator
// @Summary     List clubs founded by a person
// @Tags        Clubs
// @Produce     json
// @Security    BearerAuth
//
// @Param       creator_id  path   string  true   "Creator person ID (UUID)"  format(uuid)
// @Param       page        query  string  false  "Page number"     default(1)
// @Param       size        query  string  false  "Items per page"  default(10)
//
// @Success     200  {object}  handlers.ListResponse[domain.Club]
// @Router      /clubs/creator/{creator_id} [get]
func (h *Handlers) ListClubsByCreator(c *gin.Context) {
	h.listClubs(c, c.Param("creator_id"), "")
}

// ListClubsByCurrentBook godoc
// @ID          listClubsByCurrentBook
// @Summary     List clubs currently reading a book
// @Tags        Clubs
// @Produce     json
// @Security    BearerAuth
//
// @Param       current_book_id  path   string  true   "Book ID (UUID)"  format(uuid)
// @Param       page             query  string  false  "Page number"     default(1)
// @Param       size             query  string  false  "Items per page"  default(10)
//
// @Success     200  {object}  handlers.ListResponse[domain.Club]
// @Router      /clubs/current-book/{current_book_id} [get]
func (h *Handlers) ListClubsByCurrentBook(c *gin.Context) {
	h.listClubs(c, "", c.Param("current_book_id"))
}

func (h *Handlers) listClubs(c *gin.Context, creatorID, currentBookID string) {
	page, size, okP := pageParams(c)
	if !okP {
		return
	}
	items, total, err := h.clubsSvc.List(c.Request.Context(), services.ClubListQuery{
		Page:          page,
		Size:          size,
		CreatorID:     creatorID,
		CurrentBookID: currentBookID,
		Includes:      includeParams(c),
	})
	if err != nil {
		serviceError(c, err)
		return
	}
	listOK(c, items, page, size, total)
}

// GetClub godoc
// @ID          getClub
// @Summary     Fetch a club by id
// @Tags        Clubs
// @Produce     json
// @Security    BearerAuth
//
// @Param       id       path   string  true   "Club ID (UUID)"  format(uuid)
// @Param       include  query  string  false  "Comma-separated relations: creator,current_book"
//
// @Success     200  {object}  domain.Club
// @Failure     404  {object}  handlers.ErrorResponse  "Club not found"
// @Router      /clubs/{id} [get]
func (h *Handlers) GetClub(c *gin.Context) {
	club, err := h.clubsSvc.Get(c.Request.Context(), c.Param("id"), includeParams(c))
	if err != nil {
		serviceError(c, err)
		return
	}
	ok(c, http.StatusOK, club)
}

// UpdateClub godoc
// @ID          updateClub
// @Summary     Partially update a club
// @Description Applies the provided fields only. An empty current_book_id clears the current selection.
// @Tags        Clubs
// @Accept      json
// @Produce     json
// @Security    BearerAuth
//
// @Param       id    path  string                      true  "Club ID (UUID)"  format(uuid)
// @Param       body  body  handlers.UpdateClubRequest  true  "Fields to change"
//
// @Success     200  {object}  domain.Club
// @Failure     404  {object}  handlers.ErrorResponse  "Club or referenced book not found"
// @Router      /clubs/{id} [patch]
func (h *Handlers) UpdateClub(c *gin.Context) {
	var req UpdateClubRequest
	if !bindJSON(c, &req) {
		return
	}
	if errs := checkOptionalMax(nil, "description", req.Description, 2000); len(errs) > 0 {
		failFields(c, errs)
		return
	}
	club, err := h.clubsSvc.Update(c.Request.Context(), c.Param("id"), services.UpdateClubInput{
		Name:          req.Name,
		Description:   req.Description,
		CurrentBookID: req.CurrentBookID,
	})
	if err != nil {
		serviceError(c, err)
		return
	}
	ok(c, http.StatusOK, club)
}

// DeleteClub godoc
// @ID          deleteClub
// @Summary     Delete a club (soft)
// @Tags        Clubs
// @Security    BearerAuth
//
// @Param       id  path  string  true  "Club ID (UUID)"  format(uuid)
//
// @Success     204  {string}  string  "No Content"
// @Failure     404  {object}  handlers.ErrorResponse  "Club not found"
// @Router      /clubs/{id} [delete]
func (h *Handlers) DeleteClub(c *gin.Context) {
	if err := h.clubsSvc.Delete(c.Request.Context(), c.Param("id")); err != nil {
		serviceError(c, err)
		return
	}
	noContent(c)
}
