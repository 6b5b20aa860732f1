// Package services – ClubsService
//
// This file implements the ClubsService: club CRUD with creator/current-book
// includes, listings scoped to a creator or to the book currently being
// read, and soft deletion.
package services

import (
	"context"
	"strings"

	"gorm.io/gorm"

	"github.com/bookclubapp/go-bookclub-backend/internal/domain"
	"github.com/bookclubapp/go-bookclub-backend/internal/repo"
	"github.com/bookclubapp/go-bookclub-backend/internal/utils"
)

// ClubsService provides operations for Club entities.
type ClubsService struct {
	DB *gorm.DB
}

// CreateClubInput carries the attributes for founding a club.
type CreateClubInput struct {
	Name          string
	Description   *string
	CurrentBookID *string
	CreatorID     string
}

// UpdateClubInput carries a partial update. Nil pointers and an unset
// Description keep prior values; an explicit null clears the description,
// and an empty CurrentBookID clears the current book.
type UpdateClubInput struct {
	Name          *string
	Description   utils.Optional[string]
	CurrentBookID *string
}

// ClubListQuery parameterizes List; CreatorID and CurrentBookID are
// optional equality filters.
type ClubListQuery struct {
	Page          int
	Size          int
	CreatorID     string
	CurrentBookID string
	Includes      []string
}

// Create persists a new club. The creator must exist and not be deleted;
// the current book, when given, likewise.
func (s *ClubsService) Create(ctx context.Context, in CreateClubInput) (*domain.Club, error) {
	if _, err := repo.GetByID[domain.Person](ctx, s.DB, in.CreatorID); err != nil {
		return nil, notFound(err, ErrPersonNotFound)
	}
	if in.CurrentBookID != nil {
		if _, err := repo.GetByID[domain.Book](ctx, s.DB, *in.CurrentBookID); err != nil {
			return nil, notFound(err, ErrBookNotFound)
		}
	}

	c := &domain.Club{
		Name:          strings.TrimSpace(in.Name),
		Description:   in.Description,
		CurrentBookID: in.CurrentBookID,
		CreatorID:     in.CreatorID,
	}
	if err := repo.Create(ctx, s.DB, c); err != nil {
		return nil, err
	}
	return s.Get(ctx, c.ID, []string{"creator", "current_book"})
}

// List returns one page of clubs, newest first, with validated includes.
func (s *ClubsService) List(ctx context.Context, q ClubListQuery) ([]domain.Club, int64, error) {
	preloads, err := domain.Includes("clubs", q.Includes)
	if err != nil {
		return nil, 0, Validation("include", err.Error())
	}
	filters := map[string]any{}
	if q.CreatorID != "" {
		filters["creator_id"] = q.CreatorID
	}
	if q.CurrentBookID != "" {
		filters["current_book_id"] = q.CurrentBookID
	}
	return repo.List[domain.Club](ctx, s.DB, repo.ListQuery{
		Page:     q.Page,
		PageSize: q.Size,
		Filters:  filters,
		Preloads: preloads,
	})
}

// Get fetches one club by id with validated includes, or ErrClubNotFound.
func (s *ClubsService) Get(ctx context.Context, id string, includes []string) (*domain.Club, error) {
	preloads, err := domain.Includes("clubs", includes)
	if err != nil {
		return nil, Validation("include", err.Error())
	}
	c, err := repo.GetByID[domain.Club](ctx, s.DB, id, preloads...)
	if err != nil {
		return nil, notFound(err, ErrClubNotFound)
	}
	return c, nil
}

// Update merges the provided fields over the stored club. A new current
// book must exist and not be deleted.
func (s *ClubsService) Update(ctx context.Context, id string, in UpdateClubInput) (*domain.Club, error) {
	c, err := s.Get(ctx, id, nil)
	if err != nil {
		return nil, err
	}

	changes := map[string]any{}
	if in.Name != nil {
		changes["name"] = strings.TrimSpace(*in.Name)
	}
	if in.Description.Set {
		changes["description"] = in.Description.Ptr()
	}
	if in.CurrentBookID != nil {
		if *in.CurrentBookID != "" {
			if _, err := repo.GetByID[domain.Book](ctx, s.DB, *in.CurrentBookID); err != nil {
				return nil, notFound(err, ErrBookNotFound)
			}
			changes["current_book_id"] = *in.CurrentBookID
		} else {
			// Empty string clears the current book.
			changes["current_book_id"] = nil
		}
	}

	if err := repo.Update(ctx, s.DB, c, changes); err != nil {
		return nil, err
	}
	return s.Get(ctx, id, []string{"creator", "current_book"})
}

// Delete soft-deletes the club. Membership and history rows survive (they
// are the club's record), but the club vanishes from default reads.
func (s *ClubsService) Delete(ctx context.Context, id string) error {
	if err := repo.Delete[domain.Club](ctx, s.DB, map[string]any{"id": id}); err != nil {
		return notFound(err, ErrClubNotFound)
	}
	return nil
}
