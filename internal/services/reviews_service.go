// Package services – ReviewsService
//
// This file implements book reviews. A person reviews a book at most once:
// the unique index on (book_id, person_id) is the authoritative guard, with
// an advisory lookup first for a friendly error on the common path. Ratings
// are integers in [1, 5].
package services

import (
	"context"

	"gorm.io/gorm"

	"github.com/bookclubapp/go-bookclub-backend/internal/domain"
	"github.com/bookclubapp/go-bookclub-backend/internal/repo"
	"github.com/bookclubapp/go-bookclub-backend/internal/utils"
)

// ReviewsService provides operations for Review entities.
type ReviewsService struct {
	DB *gorm.DB
}

// CreateReviewInput carries the attributes for reviewing a book.
type CreateReviewInput struct {
	BookID   string
	PersonID string
	Rating   int
	Comment  *string
}

// UpdateReviewInput carries a partial update. A nil Rating and an unset
// Comment keep prior values; an explicit null clears the comment.
type UpdateReviewInput struct {
	Rating  *int
	Comment utils.Optional[string]
}

// ReviewListQuery parameterizes List. BookID and PersonID are optional
// equality filters.
type ReviewListQuery struct {
	Page     int
	Size     int
	BookID   string
	PersonID string
	Includes []string
}

// Create persists a review. The book must exist (and not be soft-deleted),
// the rating must be 1–5, and the (book, person) pair must be unreviewed.
func (s *ReviewsService) Create(ctx context.Context, in CreateReviewInput) (*domain.Review, error) {
	if err := validateRating(in.Rating); err != nil {
		return nil, err
	}
	if _, err := repo.GetByID[domain.Book](ctx, s.DB, in.BookID); err != nil {
		return nil, notFound(err, ErrBookNotFound)
	}
	if _, err := repo.GetByID[domain.Person](ctx, s.DB, in.PersonID); err != nil {
		return nil, notFound(err, ErrPersonNotFound)
	}

	pair := map[string]any{"book_id": in.BookID, "person_id": in.PersonID}
	if exists, err := repo.Exists[domain.Review](ctx, s.DB, pair); err != nil {
		return nil, err
	} else if exists {
		return nil, ErrReviewExists
	}

	r := &domain.Review{
		BookID:   in.BookID,
		PersonID: in.PersonID,
		Rating:   in.Rating,
		Comment:  in.Comment,
	}
	if err := repo.Create(ctx, s.DB, r); err != nil {
		if repo.IsDuplicate(err) {
			return nil, ErrReviewExists
		}
		return nil, err
	}
	return s.Get(ctx, r.ID, []string{"book"})
}

// List returns one page of reviews, newest first, with validated includes.
func (s *ReviewsService) List(ctx context.Context, q ReviewListQuery) ([]domain.Review, int64, error) {
	preloads, err := domain.Includes("reviews", q.Includes)
	if err != nil {
		return nil, 0, Validation("include", err.Error())
	}
	filters := map[string]any{}
	if q.BookID != "" {
		filters["book_id"] = q.BookID
	}
	if q.PersonID != "" {
		filters["person_id"] = q.PersonID
	}
	return repo.List[domain.Review](ctx, s.DB, repo.ListQuery{
		Page:     q.Page,
		PageSize: q.Size,
		Filters:  filters,
		Preloads: preloads,
	})
}

// Get fetches one review by id with validated includes, or
// ErrReviewNotFound.
func (s *ReviewsService) Get(ctx context.Context, id string, includes []string) (*domain.Review, error) {
	preloads, err := domain.Includes("reviews", includes)
	if err != nil {
		return nil, Validation("include", err.Error())
	}
	r, err := repo.GetByID[domain.Review](ctx, s.DB, id, preloads...)
	if err != nil {
		return nil, notFound(err, ErrReviewNotFound)
	}
	return r, nil
}

// Update merges rating/comment over the stored review, re-validating the
// rating bound when it changes.
func (s *ReviewsService) Update(ctx context.Context, id string, in UpdateReviewInput) (*domain.Review, error) {
	r, err := s.Get(ctx, id, nil)
	if err != nil {
		return nil, err
	}

	changes := map[string]any{}
	if in.Rating != nil {
		if err := validateRating(*in.Rating); err != nil {
			return nil, err
		}
		changes["rating"] = *in.Rating
	}
	if in.Comment.Set {
		changes["comment"] = in.Comment.Ptr()
	}
	if err := repo.Update(ctx, s.DB, r, changes); err != nil {
		return nil, err
	}
	return s.Get(ctx, id, []string{"book"})
}

// Delete removes the review physically.
func (s *ReviewsService) Delete(ctx context.Context, id string) error {
	if err := repo.Delete[domain.Review](ctx, s.DB, map[string]any{"id": id}); err != nil {
		return notFound(err, ErrReviewNotFound)
	}
	return nil
}

// validateRating enforces the closed [1, 5] range.
func validateRating(rating int) error {
	if rating < 1 || rating > 5 {
		return Validation("rating", "must be between 1 and 5")
	}
	return nil
}
