// Package handlers provides HTTP handler implementations for the public API.
//
// This file defines the standard response utilities used across all
// endpoints. The API speaks three shapes:
//
//   - single entities are returned bare:        { "id": "...", ... }
//   - lists are wrapped with pagination:        { "data": [...], "pagination": {...} }
//   - failures carry a message or field errors: { "error": "..." } / { "errors": [...] }
//
// fail() centralizes error formatting and ensures 5xx responses are logged
// with request context, without ever leaking internal diagnostics to the
// client.
package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"

	"github.com/bookclubapp/go-bookclub-backend/internal/http/middleware"
	"github.com/bookclubapp/go-bookclub-backend/internal/utils"
)

// ErrorResponse is the standard single-message error envelope.
type ErrorResponse struct {
	Error string `json:"error" example:"resource not found"`
}

// FieldErrorsResponse carries per-field validation messages.
type FieldErrorsResponse struct {
	Errors []string `json:"errors"`
}

// Pagination carries pagination metadata for list responses.
type Pagination struct {
	CurrentPage int   `json:"currentPage"`
	PageSize    int   `json:"pageSize"`
	TotalItems  int64 `json:"totalItems"`
	TotalPages  int   `json:"totalPages"`
}

// ListResponse wraps one page of entities with pagination metadata.
type ListResponse[T any] struct {
	Data       []T        `json:"data"`
	Pagination Pagination `json:"pagination"`
}

// listOK writes a 200 list envelope with computed pagination metadata.
func listOK[T any](c *gin.Context, items []T, page, size int, total int64) {
	c.JSON(http.StatusOK, ListResponse[T]{
		Data: items,
		Pagination: Pagination{
			CurrentPage: page,
			PageSize:    size,
			TotalItems:  total,
			TotalPages:  utils.TotalPages(total, size),
		},
	})
}

// fail aborts the request with the single-message error envelope. Server
// errors (>= 500) are logged with the request-scoped logger; the client
// only ever sees the generic message passed in.
func fail(c *gin.Context, status int, msg string) {
	if status >= http.StatusInternalServerError {
		lg := middleware.LoggerFrom(c)
		lg.Error().
			Int("status", status).
			Str("path", c.FullPath()).
			Str("message", msg).
			Msg("api error")
	}
	c.AbortWithStatusJSON(status, ErrorResponse{Error: msg})
}

// Fail is the exported variant of fail(). External packages (e.g., router
// setup) should call Fail to return consistent error envelopes without
// depending on unexported helpers.
func Fail(c *gin.Context, status int, msg string) { fail(c, status, msg) }

// failFields aborts with 400 and the per-field errors envelope.
func failFields(c *gin.Context, msgs []string) {
	c.AbortWithStatusJSON(http.StatusBadRequest, FieldErrorsResponse{Errors: msgs})
}

// bindJSON binds the request body into dst. On failure it writes the
// appropriate 400 envelope (field errors for validator failures, a generic
// message for malformed JSON) and reports false.
func bindJSON(c *gin.Context, dst any) bool {
	err := c.ShouldBindJSON(dst)
	if err == nil {
		return true
	}
	var verrs validator.ValidationErrors
	if ok := asValidationErrors(err, &verrs); ok {
		msgs := make([]string, 0, len(verrs))
		for _, fe := range verrs {
			msgs = append(msgs, fieldErrorMessage(fe))
		}
		failFields(c, msgs)
		return false
	}
	fail(c, http.StatusBadRequest, "invalid JSON body")
	return false
}

// ok writes a success JSON response.
func ok(c *gin.Context, status int, body any) {
	c.JSON(status, body)
}

// noContent writes an HTTP 204 No Content response.
func noContent(c *gin.Context) {
	c.Status(http.StatusNoContent)
}
