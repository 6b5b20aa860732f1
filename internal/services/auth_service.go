// Package services – AuthService
//
// This file implements password login. A successful login issues a signed
// bearer token embedding the person's identity; unknown emails (including
// soft-deleted accounts) and wrong passwords collapse into one error so the
// response cannot be used to probe for registered addresses.
package services

import (
	"context"
	"errors"
	"strings"

	"gorm.io/gorm"

	"github.com/bookclubapp/go-bookclub-backend/internal/auth"
	"github.com/bookclubapp/go-bookclub-backend/internal/domain"
	"github.com/bookclubapp/go-bookclub-backend/internal/repo"
)

// AuthService authenticates people and issues tokens.
type AuthService struct {
	DB     *gorm.DB
	Tokens *auth.TokenService
}

// Login verifies the email/password pair and returns a bearer token valid
// for the token service's TTL. Returns ErrInvalidCredentials when the email
// is unknown, the account is soft-deleted, or the password does not match.
func (s *AuthService) Login(ctx context.Context, email, password string) (string, error) {
	email = strings.ToLower(strings.TrimSpace(email))

	p, err := repo.GetBy[domain.Person](ctx, s.DB, map[string]any{"email": email})
	if err != nil {
		if errors.Is(err, repo.ErrNotFound) {
			return "", ErrInvalidCredentials
		}
		return "", err
	}
	if !auth.CheckPassword(password, p.PasswordHash) {
		return "", ErrInvalidCredentials
	}
	return s.Tokens.Issue(p.ID, p.Email)
}
