// Reading history HTTP handlers. Each record is one club↔book reading
// cycle with start/finish timestamps and optional notes.
package handlers

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/bookclubapp/go-bookclub-backend/internal/domain"
	"github.com/bookclubapp/go-bookclub-backend/internal/services"
	"github.com/bookclubapp/go-bookclub-backend/internal/utils"
)

// HistoryService defines reading-history operations consumed by HTTP
// handlers.
type HistoryService interface {
	Create(ctx context.Context, in services.CreateHistoryInput) (*domain.ClubBookHistory, error)
	List(ctx context.Context, q services.HistoryListQuery) ([]domain.ClubBookHistory, int64, error)
	Get(ctx context.Context, id string) (*domain.ClubBookHistory, error)
	Update(ctx context.Context, id string, in services.UpdateHistoryInput) (*domain.ClubBookHistory, error)
	Delete(ctx context.Context, id string) error
}

// CreateHistoryRequest is the JSON payload for recording a reading cycle.
// StartedAt defaults to the current time when omitted.
type CreateHistoryRequest struct {
	ClubID     string     `json:"club_id" binding:"required,uuid"`
	BookID     string     `json:"book_id" binding:"required,uuid"`
	StartedAt  *time.Time `json:"started_at"`
	FinishedAt *time.Time `json:"finished_at"`
	Notes      *string    `json:"notes" binding:"omitempty,max=2000"`
}

// UpdateHistoryRequest is the JSON payload for a partial history update.
type UpdateHistoryRequest struct {
	StartedAt  *time.Time                `json:"started_at"`
	FinishedAt utils.Optional[time.Time] `json:"finished_at" swaggertype:"string"`
	Notes      utils.Optional[string]    `json:"notes" swaggertype:"string"`
}

// CreateHistory godoc
// @ID          createHistory
// @Summary     Record a reading cycle
// @Tags        ClubBookHistory
// @Accept      json
// @Produce     json
// @Security    BearerAuth
//
// @Param       body  body  handlers.CreateHistoryRequest  true  "History payload"
//
// @Success     201  {object}  domain.ClubBookHistory
// @Failure     400  {object}  handlers.ErrorResponse  "Malformed payload"
// @Failure     404  {object}  handlers.ErrorResponse  "Club or book not found"
// @Router      /club-book-history [post]
func (h *Handlers) CreateHistory(c *gin.Context) {
	var req CreateHistoryRequest
	if !bindJSON(c, &req) {
		return
	}
	in := services.CreateHistoryInput{
		ClubID:     req.ClubID,
		BookID:     req.BookID,
		FinishedAt: req.FinishedAt,
		Notes:      req.Notes,
	}
	if req.StartedAt != nil {
		in.StartedAt = *req.StartedAt
	}
	rec, err := h.historySvc.Create(c.Request.Context(), in)
	if err != nil {
		serviceError(c, err)
		return
	}
	ok(c, http.StatusCreated, rec)
}

// ListHistory godoc
// @ID          listHistory
// @Summary     List reading history (paginated)
// @Tags        ClubBookHistory
// @Produce     json
// @Security    BearerAuth
//
// @Param       page     query  string  false  "Page number"     default(1)
// @Param       size     query  string  false  "Items per page"  default(10)
// @Param       club_id  query  string  false  "Filter by club"
// @Param       book_id  query  string  false  "Filter by book"
// @Param       include  query  string  false  "Comma-separated relations: club,book"
//
// @Success     200  {object}  handlers.ListResponse[domain.ClubBookHistory]
// @Failure     400  {object}  handlers.ErrorResponse  "Invalid pagination or unknown relation"
// @Router      /club-book-history [get]
func (h *Handlers) ListHistory(c *gin.Context) {
	h.listHistory(c, c.Query("club_id"), c.Query("book_id"))
}

// ListHistoryByClub godoc
// @ID          listHistoryByClub
// @Summary     List a club's reading history
// @Tags        ClubBookHistory
// @Produce     json
// @Security    BearerAuth
//
// @Param       club_id  path   string  true   "Club ID (UUID)"  format(uuid)
// @Param       page     query  string  false  "Page number"     default(1)
// @Param       size     query  string  false  "Items per page"  default(10)
//
// @Success     200  {object}  handlers.ListResponse[domain.ClubBookHistory]
// @Router      /club-book-history/club/{club_id} [get]
func (h *Handlers) ListHistoryByClub(c *gin.Context) {
	h.listHistory(c, c.Param("club_id"), "")
}

// ListHistoryByBook godoc
// @ID          listHistoryByBook
// @Summary     List the clubs that read a book
// @Tags        ClubBookHistory
// @Produce     json
// @Security    BearerAuth
//
// @Param       book_id  path   string  true   "Book ID (UUID)"  format(uuid)
// @Param       page     query  string  false  "Page number"     default(1)
// @Param       size     query  string  false  "Items per page"  default(10)
//
// @Success     200  {object}  handlers.ListResponse[domain.ClubBookHistory]
// @Router      /club-book-history/book/{book_id} [get]
func (h *Handlers) ListHistoryByBook(c *gin.Context) {
	h.listHistory(c, "", c.Param("book_id"))
}

func (h *Handlers) listHistory(c *gin.Context, clubID, bookID string) {
	page, size, okP := pageParams(c)
	if !okP {
		return
	}
	items, total, err := h.historySvc.List(c.Request.Context(), services.HistoryListQuery{
		Page:     page,
		Size:     size,
		ClubID:   clubID,
		BookID:   bookID,
		Includes: includeParams(c),
	})
	if err != nil {
		serviceError(c, err)
		return
	}
	listOK(c, items, page, size, total)
}

// GetHistory godoc
// @ID          getHistory
// @Summary     Fetch a history record by id
// @Tags        ClubBookHistory
// @Produce     json
// @Security    BearerAuth
//
// @Param       id  path  string  true  "History ID (UUID)"  format(uuid)
//
// @Success     200  {object}  domain.ClubBookHistory
// @Failure     404  {object}  handlers.ErrorResponse  "History record not found"
// @Router      /club-book-history/{id} [get]
func (h *Handlers) GetHistory(c *gin.Context) {
	rec, err := h.historySvc.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		serviceError(c, err)
		return
	}
	ok(c, http.StatusOK, rec)
}

// UpdateHistory godoc
// @ID          updateHistory
// @Summary     Partially update a history record
// @Tags        ClubBookHistory
// @Accept      json
// @Produce     json
// @Security    BearerAuth
//
// @Param       id    path  string                         true  "History ID (UUID)"  format(uuid)
// @Param       body  body  handlers.UpdateHistoryRequest  true  "Fields to change"
//
// @Success     200  {object}  domain.ClubBookHistory
// @Failure     404  {object}  handlers.ErrorResponse  "History record not found"
// @Router      /club-book-history/{id} [patch]
func (h *Handlers) UpdateHistory(c *gin.Context) {
	var req UpdateHistoryRequest
	if !bindJSON(c, &req) {
		return
	}
	if errs := checkOptionalMax(nil, "notes", req.Notes, 2000); len(errs) > 0 {
		failFields(c, errs)
		return
	}
	rec, err := h.historySvc.Update(c.Request.Context(), c.Param("id"), services.UpdateHistoryInput{
		StartedAt:  req.StartedAt,
		FinishedAt: req.FinishedAt,
		Notes:      req.Notes,
	})
	if err != nil {
		serviceError(c, err)
		return
	}
	ok(c, http.StatusOK, rec)
}

// DeleteHistory godoc
// @ID          deleteHistory
// @Summary     Delete a history record (hard)
// @Tags        ClubBookHistory
// @Security    BearerAuth
//
// @Param       id  path  string  true  "History ID (UUID)"  format(uuid)
//
// @Success     204  {string}  string  "No Content"
// @Failure     404  {object}  handlers.ErrorResponse  "History record not found"
// @Router      /club-book-history/{id} [delete]
func (h *Handlers) DeleteHistory(c *gin.Context) {
	if err := h.historySvc.Delete(c.Request.Context(), c.Param("id")); err != nil {
		serviceError(c, err)
		return
	}
	noContent(c)
}
