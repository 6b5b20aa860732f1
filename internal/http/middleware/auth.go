// Package middleware contains shared Gin middleware used by the HTTP layer.
//
// This file implements the bearer-token gate for protected routes. The
// contract is strict and side-effect free:
//
//   - No Authorization header (or no token after "Bearer") → 401, the
//     downstream handler never runs.
//   - A token that fails signature or expiry verification → 403, the
//     downstream handler never runs.
//   - A valid token → the verified identity {id, email} is attached to the
//     Gin context and the chain continues.
//
// The middleware never refreshes or rotates tokens.
package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/bookclubapp/go-bookclub-backend/internal/auth"
)

const (
	// identityKey is the Gin context key holding the verified *auth.Claims.
	identityKey = "identity"
	// userIDKey mirrors the identity's id for consumers that only need the
	// string (request logging, rate-limit bucketing).
	userIDKey = "userID"
)

// TokenVerifier verifies a bearer token and returns its claims. Satisfied
// by *auth.TokenService.
type TokenVerifier interface {
	Verify(token string) (*auth.Claims, error)
}

// RequireAuth returns a Gin middleware that rejects unauthenticated
// requests per the package contract above.
func RequireAuth(verifier TokenVerifier) gin.HandlerFunc {
	return func(c *gin.Context) {
		token := bearerToken(c.GetHeader("Authorization"))
		if token == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "token not provided"})
			return
		}

		claims, err := verifier.Verify(token)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"error": "invalid token"})
			return
		}

		c.Set(identityKey, claims)
		c.Set(userIDKey, claims.ID)
		c.Next()
	}
}

// IdentityFrom returns the verified identity attached by RequireAuth, or
// (nil, false) on unauthenticated routes.
func IdentityFrom(c *gin.Context) (*auth.Claims, bool) {
	v, ok := c.Get(identityKey)
	if !ok {
		return nil, false
	}
	claims, ok := v.(*auth.Claims)
	return claims, ok
}

// bearerToken extracts the credential from an "Authorization: Bearer <t>"
// header value. Any other scheme yields "".
func bearerToken(header string) string {
	parts := strings.SplitN(header, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
		return ""
	}
	return strings.TrimSpace(parts[1])
}
