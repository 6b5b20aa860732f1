package handlers

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"

	"github.com/bookclubapp/go-bookclub-backend/internal/http/middleware"
	"github.com/bookclubapp/go-bookclub-backend/internal/services"
)

// serviceError translates a service-layer error into the matching HTTP
// response. Validation failures and uniqueness conflicts map to 400,
// missing resources to 404, bad credentials to 401, and anything
// unrecognized to a generic 500 so internal details never reach clients.
func serviceError(c *gin.Context, err error) {
	switch {
	case services.IsValidation(err):
		fail(c, http.StatusBadRequest, err.Error())
	case errors.Is(err, services.ErrTermTooShort):
		fail(c, http.StatusBadRequest, err.Error())
	case isConflict(err):
		fail(c, http.StatusBadRequest, err.Error())
	case isNotFound(err):
		fail(c, http.StatusNotFound, err.Error())
	case errors.Is(err, services.ErrInvalidCredentials):
		fail(c, http.StatusUnauthorized, err.Error())
	default:
		lg := middleware.LoggerFrom(c)
		lg.Error().Err(err).Str("path", c.FullPath()).Msg("unhandled service error")
		fail(c, http.StatusInternalServerError, "internal server error")
	}
}

func isNotFound(err error) bool {
	for _, target := range []error{
		services.ErrPersonNotFound,
		services.ErrBookNotFound,
		services.ErrTagNotFound,
		services.ErrClubNotFound,
		services.ErrMemberNotFound,
		services.ErrHistoryNotFound,
		services.ErrChatNotFound,
		services.ErrMessageNotFound,
		services.ErrReviewNotFound,
	} {
		if errors.Is(err, target) {
			return true
		}
	}
	return false
}

func isConflict(err error) bool {
	for _, target := range []error{
		services.ErrEmailInUse,
		services.ErrTagExists,
		services.ErrReviewExists,
		services.ErrMemberExists,
	} {
		if errors.Is(err, target) {
			return true
		}
	}
	return false
}

// asValidationErrors reports whether err wraps validator.ValidationErrors.
func asValidationErrors(err error, out *validator.ValidationErrors) bool {
	return errors.As(err, out)
}

// fieldErrorMessage renders a single binding failure as a human-readable
// message keyed by the JSON field name.
func fieldErrorMessage(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return fmt.Sprintf("%s is required", fe.Field())
	case "email":
		return fmt.Sprintf("%s must be a valid email address", fe.Field())
	case "min":
		return fmt.Sprintf("%s must be at least %s characters", fe.Field(), fe.Param())
	case "max":
		return fmt.Sprintf("%s must be at most %s characters", fe.Field(), fe.Param())
	case "gte":
		return fmt.Sprintf("%s must be at least %s", fe.Field(), fe.Param())
	case "lte":
		return fmt.Sprintf("%s must be at most %s", fe.Field(), fe.Param())
	case "url":
		return fmt.Sprintf("%s must be a valid URL", fe.Field())
	default:
		return fmt.Sprintf("%s is invalid", fe.Field())
	}
}
