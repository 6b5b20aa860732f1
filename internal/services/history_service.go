// Package services – HistoryService
//
// This file implements a club's reading history: one row per reading cycle
// (club, book, started/finished, notes), listable per club or per book.
package services

import (
	"context"
	"time"

	"gorm.io/gorm"

	"github.com/bookclubapp/go-bookclub-backend/internal/domain"
	"github.com/bookclubapp/go-bookclub-backend/internal/repo"
	"github.com/bookclubapp/go-bookclub-backend/internal/utils"
)

// HistoryService provides operations over ClubBookHistory rows.
type HistoryService struct {
	DB *gorm.DB
}

// CreateHistoryInput carries the attributes for recording a reading cycle.
// A zero StartedAt defaults to now.
type CreateHistoryInput struct {
	ClubID     string
	BookID     string
	StartedAt  time.Time
	FinishedAt *time.Time
	Notes      *string
}

// UpdateHistoryInput carries a partial update. A nil StartedAt and unset
// optionals keep prior values; an explicit null clears finished_at (the
// cycle is open again) or the notes.
type UpdateHistoryInput struct {
	StartedAt  *time.Time
	FinishedAt utils.Optional[time.Time]
	Notes      utils.Optional[string]
}

// HistoryListQuery parameterizes List with optional club/book filters.
type HistoryListQuery struct {
	Page     int
	Size     int
	ClubID   string
	BookID   string
	Includes []string
}

// Create records a reading cycle. Club and book must both exist.
func (s *HistoryService) Create(ctx context.Context, in CreateHistoryInput) (*domain.ClubBookHistory, error) {
	if _, err := repo.GetByID[domain.Club](ctx, s.DB, in.ClubID); err != nil {
		return nil, notFound(err, ErrClubNotFound)
	}
	if _, err := repo.GetByID[domain.Book](ctx, s.DB, in.BookID); err != nil {
		return nil, notFound(err, ErrBookNotFound)
	}

	if in.StartedAt.IsZero() {
		in.StartedAt = time.Now().UTC()
	}
	h := &domain.ClubBookHistory{
		ClubID:     in.ClubID,
		BookID:     in.BookID,
		StartedAt:  in.StartedAt,
		FinishedAt: in.FinishedAt,
		Notes:      in.Notes,
	}
	if err := repo.Create(ctx, s.DB, h); err != nil {
		return nil, err
	}
	return h, nil
}

// List returns one page of history rows, newest first, with validated
// includes.
func (s *HistoryService) List(ctx context.Context, q HistoryListQuery) ([]domain.ClubBookHistory, int64, error) {
	preloads, err := domain.Includes("club_book_history", q.Includes)
	if err != nil {
		return nil, 0, Validation("include", err.Error())
	}
	filters := map[string]any{}
	if q.ClubID != "" {
		filters["club_id"] = q.ClubID
	}
	if q.BookID != "" {
		filters["book_id"] = q.BookID
	}
	return repo.List[domain.ClubBookHistory](ctx, s.DB, repo.ListQuery{
		Page:     q.Page,
		PageSize: q.Size,
		Filters:  filters,
		Preloads: preloads,
	})
}

// Get fetches one history row by id, or ErrHistoryNotFound.
func (s *HistoryService) Get(ctx context.Context, id string) (*domain.ClubBookHistory, error) {
	h, err := repo.GetByID[domain.ClubBookHistory](ctx, s.DB, id)
	if err != nil {
		return nil, notFound(err, ErrHistoryNotFound)
	}
	return h, nil
}

// Update merges the provided fields over the stored history row.
func (s *HistoryService) Update(ctx context.Context, id string, in UpdateHistoryInput) (*domain.ClubBookHistory, error) {
	h, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	changes := map[string]any{}
	if in.StartedAt != nil {
		changes["started_at"] = *in.StartedAt
	}
	if in.FinishedAt.Set {
		changes["finished_at"] = in.FinishedAt.Ptr()
	}
	if in.Notes.Set {
		changes["notes"] = in.Notes.Ptr()
	}
	if err := repo.Update(ctx, s.DB, h, changes); err != nil {
		return nil, err
	}
	return s.Get(ctx, id)
}

// Delete removes the history row physically.
func (s *HistoryService) Delete(ctx context.Context, id string) error {
	if err := repo.Delete[domain.ClubBookHistory](ctx, s.DB, map[string]any{"id": id}); err != nil {
		return notFound(err, ErrHistoryNotFound)
	}
	return nil
}
