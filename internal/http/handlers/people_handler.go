// Person HTTP handlers.
//
// This file exposes REST endpoints for person resources:
//   - POST   /people       (register, public)
//   - GET    /people       (list, paginated, public)
//   - GET    /people/{id}  (fetch)
//   - PATCH  /people/{id}  (partial profile update)
//   - DELETE /people/{id}  (soft delete)
//
// Handlers are transport-thin: they validate input, call application
// services, and translate results into HTTP responses.
package handlers

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/bookclubapp/go-bookclub-backend/internal/domain"
	"github.com/bookclubapp/go-bookclub-backend/internal/services"
	"github.com/bookclubapp/go-bookclub-backend/internal/utils"
)

// PersonService defines person lifecycle operations consumed by HTTP
// handlers.
//
// Implementations should be safe for concurrent use and must honor the
// provided context for cancellation and timeouts.
type PersonService interface {
	Create(ctx context.Context, in services.CreatePersonInput) (*domain.Person, error)
	List(ctx context.Context, page, size int) ([]domain.Person, int64, error)
	Get(ctx context.Context, id string) (*domain.Person, error)
	Update(ctx context.Context, id string, in services.UpdatePersonInput) (*domain.Person, error)
	Delete(ctx context.Context, id string) error
}

// CreatePersonRequest is the JSON payload for registering a person.
type CreatePersonRequest struct {
	Name     string  `json:"name" binding:"required,min=1,max=255" example:"Ada Lovelace"`
	Email    string  `json:"email" binding:"required,email" example:"ada@example.com"`
	Password string  `json:"password" binding:"required,min=8" example:"correct horse battery"`
	Bio      *string `json:"bio" binding:"omitempty,max=2000"`
	PhotoURL *string `json:"photo_url" binding:"omitempty,url"`
}

// UpdatePersonRequest is the JSON payload for a partial profile update.
// Omitted fields keep their prior values; an explicit null clears the
// nullable bio and photo_url columns.
type UpdatePersonRequest struct {
	Name     *string                `json:"name" binding:"omitempty,min=1,max=255"`
	Email    *string                `json:"email" binding:"omitempty,email"`
	Bio      utils.Optional[string] `json:"bio" swaggertype:"string"`
	PhotoURL utils.Optional[string] `json:"photo_url" swaggertype:"string"`
}

// CreatePerson godoc
// @ID          createPerson
// @Summary     Register a person
// @Description Creates an account. The email must not be in use; the password is stored only as a bcrypt hash.
// @Tags        People
// @Accept      json
// @Produce     json
//
// @Param       body  body  handlers.CreatePersonRequest  true  "Registration payload"
//
// @Success     201  {object}  domain.Person
// @Failure     400  {object}  handlers.ErrorResponse  "Malformed payload or email already registered"
// @Router      /people [post]
func (h *Handlers) CreatePerson(c *gin.Context) {
	var req CreatePersonRequest
	if !bindJSON(c, &req) {
		return
	}
	p, err := h.peopleSvc.Create(c.Request.Context(), services.CreatePersonInput{
		Name:     req.Name,
		Email:    req.Email,
		Password: req.Password,
		Bio:      req.Bio,
		PhotoURL: req.PhotoURL,
	})
	if err != nil {
		serviceError(c, err)
		return
	}
	ok(c, http.StatusCreated, p)
}

// ListPeople godoc
// @ID          listPeople
// @Summary     List people (paginated)
// @Tags        People
// @Produce     json
//
// @Param       page  query  string  false  "Page number"     default(1)
// @Param       size  query  string  false  "Items per page"  default(10)
//
// @Success     200  {object}  handlers.ListResponse[domain.Person]
// @Failure     400  {object}  handlers.ErrorResponse  "Invalid pagination"
// @Router      /people [get]
func (h *Handlers) ListPeople(c *gin.Context) {
	page, size, okP := pageParams(c)
	if !okP {
		return
	}
	items, total, err := h.peopleSvc.List(c.Request.Context(), page, size)
	if err != nil {
		serviceError(c, err)
		return
	}
	listOK(c, items, page, size, total)
}

// GetPerson godoc
// @ID          getPerson
// @Summary     Fetch a person by id
// @Tags        People
// @Produce     json
//
// @Param       id  path  string  true  "Person ID (UUID)"  format(uuid)
//
// @Success     200  {object}  domain.Person
// @Failure     404  {object}  handlers.ErrorResponse  "Person not found"
// @Router      /people/{id} [get]
func (h *Handlers) GetPerson(c *gin.Context) {
	p, err := h.peopleSvc.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		serviceError(c, err)
		return
	}
	ok(c, http.StatusOK, p)
}

// UpdatePerson godoc
// @ID          updatePerson
// @Summary     Partially update a person
// @Description Applies the provided fields only; omitted fields keep their prior values.
// @Tags        People
// @Accept      json
// @Produce     json
//
// @Param       id    path  string                        true  "Person ID (UUID)"  format(uuid)
// @Param       body  body  handlers.UpdatePersonRequest  true  "Fields to change"
//
// @Success     200  {object}  domain.Person
// @Failure     400  {object}  handlers.ErrorResponse  "Malformed payload or email already registered"
// @Failure     404  {object}  handlers.ErrorResponse  "Person not found"
// @Router      /people/{id} [patch]
func (h *Handlers) UpdatePerson(c *gin.Context) {
	var req UpdatePersonRequest
	if !bindJSON(c, &req) {
		return
	}
	var errs []string
	errs = checkOptionalMax(errs, "bio", req.Bio, 2000)
	errs = checkOptionalURL(errs, "photo_url", req.PhotoURL)
	if len(errs) > 0 {
		failFields(c, errs)
		return
	}
	p, err := h.peopleSvc.Update(c.Request.Context(), c.Param("id"), services.UpdatePersonInput{
		Name:     req.Name,
		Email:    req.Email,
		Bio:      req.Bio,
		PhotoURL: req.PhotoURL,
	})
	if err != nil {
		serviceError(c, err)
		return
	}
	ok(c, http.StatusOK, p)
}

// DeletePerson godoc
// @ID          deletePerson
// @Summary     Delete a person (soft)
// @Description Marks the account deleted; the row is retained and recoverable at the storage layer.
// @Tags        People
//
// @Param       id  path  string  true  "Person ID (UUID)"  format(uuid)
//
// @Success     204  {string}  string  "No Content"
// @Failure     404  {object}  handlers.ErrorResponse  "Person not found"
// @Router      /people/{id} [delete]
func (h *Handlers) DeletePerson(c *gin.Context) {
	if err := h.peopleSvc.Delete(c.Request.Context(), c.Param("id")); err != nil {
		serviceError(c, err)
		return
	}
	noContent(c)
}
