// Package services – PeopleService
//
// This file implements the PeopleService, which manages member accounts:
// registration (with password hashing and email uniqueness), profile reads
// and partial updates, and soft deletion. The unique index on people.email
// is the authoritative uniqueness guard; the lookup performed before insert
// only exists to produce a friendly error on the common path.
package services

import (
	"context"
	"errors"
	"strings"

	"gorm.io/gorm"

	"github.com/bookclubapp/go-bookclub-backend/internal/auth"
	"github.com/bookclubapp/go-bookclub-backend/internal/domain"
	"github.com/bookclubapp/go-bookclub-backend/internal/repo"
	"github.com/bookclubapp/go-bookclub-backend/internal/utils"
)

// PeopleService provides account-level operations for Person entities.
type PeopleService struct {
	// DB is the GORM handle used for persistence.
	DB *gorm.DB
	// BcryptCost is the hashing work factor; 0 selects the package default.
	BcryptCost int
}

// CreatePersonInput carries the attributes for registration.
type CreatePersonInput struct {
	Name     string
	Email    string
	Password string
	Bio      *string
	PhotoURL *string
}

// UpdatePersonInput carries a partial profile update. Nil pointers and
// unset optionals keep the stored values; an explicit null on a nullable
// column (bio, photo_url) clears it.
type UpdatePersonInput struct {
	Name     *string
	Email    *string
	Bio      utils.Optional[string]
	PhotoURL utils.Optional[string]
}

// Create registers a new person. The email must be unused; the password is
// hashed before persistence and the hash never leaves the domain model's
// JSON-excluded field.
func (s *PeopleService) Create(ctx context.Context, in CreatePersonInput) (*domain.Person, error) {
	email := strings.ToLower(strings.TrimSpace(in.Email))

	// Advisory fast path: a racing duplicate still trips the unique index below.
	if taken, err := repo.Exists[domain.Person](ctx, s.DB, map[string]any{"email": email}); err != nil {
		return nil, err
	} else if taken {
		return nil, ErrEmailInUse
	}

	hash, err := auth.HashPassword(in.Password, s.BcryptCost)
	if err != nil {
		return nil, err
	}

	p := &domain.Person{
		Name:         strings.TrimSpace(in.Name),
		Email:        email,
		PasswordHash: hash,
		Bio:          in.Bio,
		PhotoURL:     in.PhotoURL,
	}
	if err := repo.Create(ctx, s.DB, p); err != nil {
		if repo.IsDuplicate(err) {
			return nil, ErrEmailInUse
		}
		return nil, err
	}
	return p, nil
}

// List returns one page of people, newest first. Soft-deleted accounts are
// excluded by the resource layer.
func (s *PeopleService) List(ctx context.Context, page, size int) ([]domain.Person, int64, error) {
	return repo.List[domain.Person](ctx, s.DB, repo.ListQuery{Page: page, PageSize: size})
}

// Get fetches one person by id, or ErrPersonNotFound.
func (s *PeopleService) Get(ctx context.Context, id string) (*domain.Person, error) {
	p, err := repo.GetByID[domain.Person](ctx, s.DB, id)
	if err != nil {
		return nil, notFound(err, ErrPersonNotFound)
	}
	return p, nil
}

// Update merges the provided fields over the stored profile. Changing the
// email re-checks uniqueness excluding the person's own row.
func (s *PeopleService) Update(ctx context.Context, id string, in UpdatePersonInput) (*domain.Person, error) {
	p, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	changes := map[string]any{}
	if in.Name != nil {
		changes["name"] = strings.TrimSpace(*in.Name)
	}
	if in.Email != nil {
		email := strings.ToLower(strings.TrimSpace(*in.Email))
		if email != p.Email {
			var taken int64
			err := s.DB.WithContext(ctx).
				Model(&domain.Person{}).
				Where("email = ? AND id <> ?", email, id).
				Count(&taken).Error
			if err != nil {
				return nil, err
			}
			if taken > 0 {
				return nil, ErrEmailInUse
			}
		}
		changes["email"] = email
	}
	if in.Bio.Set {
		changes["bio"] = in.Bio.Ptr()
	}
	if in.PhotoURL.Set {
		changes["photo_url"] = in.PhotoURL.Ptr()
	}

	if err := repo.Update(ctx, s.DB, p, changes); err != nil {
		if repo.IsDuplicate(err) {
			return nil, ErrEmailInUse
		}
		return nil, err
	}
	return s.Get(ctx, id)
}

// Delete soft-deletes the person: the row keeps its data but disappears
// from every default read.
func (s *PeopleService) Delete(ctx context.Context, id string) error {
	if err := repo.Delete[domain.Person](ctx, s.DB, map[string]any{"id": id}); err != nil {
		return notFound(err, ErrPersonNotFound)
	}
	return nil
}

// notFound maps the repo's not-found sentinel to a per-aggregate error and
// passes every other failure through untouched.
func notFound(err, sentinel error) error {
	if errors.Is(err, repo.ErrNotFound) {
		return sentinel
	}
	return err
}
