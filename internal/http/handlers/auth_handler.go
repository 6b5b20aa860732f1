package handlers

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"
)

// AuthService defines the credential exchange consumed by HTTP handlers.
//
// Implementations should be safe for concurrent use and must honor the
// provided context for cancellation and timeouts.
type AuthService interface {
	// Login verifies the email/password pair and returns a signed bearer token.
	Login(ctx context.Context, email, password string) (string, error)
}

// LoginRequest is the JSON payload for exchanging credentials for a token.
type LoginRequest struct {
	Email    string `json:"email" binding:"required,email" example:"ada@example.com"`
	Password string `json:"password" binding:"required,min=1" example:"hunter2"`
}

// LoginResponse carries the signed bearer token.
type LoginResponse struct {
	Token string `json:"token"`
}

// Login godoc
// @ID          login
// @Summary     Exchange credentials for a bearer token
// @Description Verifies the email/password pair and returns a signed token valid for one hour.
// @Tags        Auth
// @Accept      json
// @Produce     json
//
// @Param       body  body  handlers.LoginRequest  true  "Credentials"
//
// @Success     200  {object}  handlers.LoginResponse
// @Failure     400  {object}  handlers.FieldErrorsResponse  "Malformed payload"
// @Failure     401  {object}  handlers.ErrorResponse        "Invalid credentials"
// @Router      /auth/login [post]
func (h *Handlers) Login(c *gin.Context) {
	var req LoginRequest
	if !bindJSON(c, &req) {
		return
	}
	token, err := h.authSvc.Login(c.Request.Context(), req.Email, req.Password)
	if err != nil {
		serviceError(c, err)
		return
	}
	ok(c, http.StatusOK, LoginResponse{Token: token})
}
