// Tag HTTP handlers. All tag routes require a bearer token.
package handlers

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/bookclubapp/go-bookclub-backend/internal/domain"
)

// TagService defines tag operations consumed by HTTP handlers.
type TagService interface {
	Create(ctx context.Context, name string) (*domain.Tag, error)
	List(ctx context.Context, page, size int) ([]domain.Tag, int64, error)
	Get(ctx context.Context, id string) (*domain.Tag, error)
	Delete(ctx context.Context, id string) error
	Search(ctx context.Context, term string, limit int) ([]domain.Tag, error)
}

// CreateTagRequest is the JSON payload for creating a tag.
type CreateTagRequest struct {
	Name string `json:"name" binding:"required,min=1,max=50" example:"science-fiction"`
}

// CreateTag godoc
// @ID          createTag
// @Summary     Create a tag
// @Description Creates a tag with a unique name (1–50 characters after trimming).
// @Tags        Tags
// @Accept      json
// @Produce     json
// @Security    BearerAuth
//
// @Param       body  body  handlers.CreateTagRequest  true  "Tag payload"
//
// @Success     201  {object}  domain.Tag
// @Failure     400  {object}  handlers.ErrorResponse  "Malformed payload or name already taken"
// @Router      /tags [post]
func (h *Handlers) CreateTag(c *gin.Context) {
	var req CreateTagRequest
	if !bindJSON(c, &req) {
		return
	}
	t, err := h.tagsSvc.Create(c.Request.Context(), req.Name)
	if err != nil {
		serviceError(c, err)
		return
	}
	ok(c, http.StatusCreated, t)
}

// ListTags godoc
// @ID          listTags
// @Summary     List tags (paginated)
// @Tags        Tags
// @Produce     json
// @Security    BearerAuth
//
// @Param       page  query  string  false  "Page number"     default(1)
// @Param       size  query  string  false  "Items per page"  default(10)
//
// @Success     200  {object}  handlers.ListResponse[domain.Tag]
// @Failure     400  {object}  handlers.ErrorResponse  "Invalid pagination"
// @Router      /tags [get]
func (h *Handlers) ListTags(c *gin.Context) {
	page, size, okP := pageParams(c)
	if !okP {
		return
	}
	items, total, err := h.tagsSvc.List(c.Request.Context(), page, size)
	if err != nil {
		serviceError(c, err)
		return
	}
	listOK(c, items, page, size, total)
}

// SearchTags godoc
// @ID          searchTags
// @Summary     Search tags by name substring
// @Description Case-insensitive substring match over tag names, ordered by name. The term must be at least two characters.
// @Tags        Tags
// @Produce     json
// @Security    BearerAuth
//
// @Param       term  query  string  true  "Search term (min 2 chars)"  example(fic)
//
// @Success     200  {array}   domain.Tag
// @Failure     400  {object}  handlers.ErrorResponse  "Term too short"
// @Router      /tags/search [get]
func (h *Handlers) SearchTags(c *gin.Context) {
	items, err := h.tagsSvc.Search(c.Request.Context(), c.Query("term"), 0)
	if err != nil {
		serviceError(c, err)
		return
	}
	ok(c, http.StatusOK, items)
}

// GetTag godoc
// @ID          getTag
// @Summary     Fetch a tag by id
// @Tags        Tags
// @Produce     json
// @Security    BearerAuth
//
// @Param       id  path  string  true  "Tag ID (UUID)"  format(uuid)
//
// @Success     200  {object}  domain.Tag
// @Failure     404  {object}  handlers.ErrorResponse  "Tag not found"
// @Router      /tags/{id} [get]
func (h *Handlers) GetTag(c *gin.Context) {
	t, err := h.tagsSvc.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		serviceError(c, err)
		return
	}
	ok(c, http.StatusOK, t)
}

// DeleteTag godoc
// @ID          deleteTag
// @Summary     Delete a tag (hard)
// @Description Removes the tag permanently; join rows to books are cascaded away.
// @Tags        Tags
// @Security    BearerAuth
//
// @Param       id  path  string  true  "Tag ID (UUID)"  format(uuid)
//
// @Success     204  {string}  string  "No Content"
// @Failure     404  {object}  handlers.ErrorResponse  "Tag not found"
// @Router      /tags/{id} [delete]
func (h *Handlers) DeleteTag(c *gin.Context) {
	if err := h.tagsSvc.Delete(c.Request.Context(), c.Param("id")); err != nil {
		serviceError(c, err)
		return
	}
	noContent(c)
}
