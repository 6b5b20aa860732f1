// Package services – TagsService
//
// This file implements the TagsService: tag creation with the 1–50 name
// bound and uniqueness, listing, and case-insensitive substring search.
// Tags are hard-deleted entities; removing one cascades its book_tags rows.
package services

import (
	"context"
	"strings"
	"unicode/utf8"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
	"gorm.io/gorm"

	"github.com/bookclubapp/go-bookclub-backend/internal/domain"
	"github.com/bookclubapp/go-bookclub-backend/internal/repo"
)

const (
	// tagNameMaxLen caps tag names (runes, to match the column bound).
	tagNameMaxLen = 50
	// SearchMinLength is the minimum search term length.
	SearchMinLength = 2
	// searchDefaultLimit caps search results when the caller gives no limit.
	searchDefaultLimit = 20
)

// lowerCaser folds search terms to lower case Unicode-correctly.
var lowerCaser = cases.Lower(language.Und)

// TagsService provides operations for Tag entities.
type TagsService struct {
	DB *gorm.DB
}

// Create persists a new tag. Names are trimmed, must be 1–50 characters,
// and unique (ErrTagExists on a duplicate, whether caught by the advisory
// check or by the unique index).
func (s *TagsService) Create(ctx context.Context, name string) (*domain.Tag, error) {
	name = strings.TrimSpace(name)
	if name == "" || utf8.RuneCountInString(name) > tagNameMaxLen {
		return nil, Validation("name", "must be between 1 and 50 characters")
	}

	if taken, err := repo.Exists[domain.Tag](ctx, s.DB, map[string]any{"name": name}); err != nil {
		return nil, err
	} else if taken {
		return nil, ErrTagExists
	}

	t := &domain.Tag{Name: name}
	if err := repo.Create(ctx, s.DB, t); err != nil {
		if repo.IsDuplicate(err) {
			return nil, ErrTagExists
		}
		return nil, err
	}
	return t, nil
}

// List returns one page of tags, newest first.
func (s *TagsService) List(ctx context.Context, page, size int) ([]domain.Tag, int64, error) {
	return repo.List[domain.Tag](ctx, s.DB, repo.ListQuery{Page: page, PageSize: size})
}

// Get fetches one tag by id, or ErrTagNotFound.
func (s *TagsService) Get(ctx context.Context, id string) (*domain.Tag, error) {
	t, err := repo.GetByID[domain.Tag](ctx, s.DB, id)
	if err != nil {
		return nil, notFound(err, ErrTagNotFound)
	}
	return t, nil
}

// Delete removes the tag physically; book_tags rows cascade with it.
func (s *TagsService) Delete(ctx context.Context, id string) error {
	if err := repo.Delete[domain.Tag](ctx, s.DB, map[string]any{"id": id}); err != nil {
		return notFound(err, ErrTagNotFound)
	}
	return nil
}

// Search returns tags whose name contains term, case-insensitively, ordered
// by name ascending. Terms shorter than SearchMinLength (after trimming)
// are rejected before any query runs.
func (s *TagsService) Search(ctx context.Context, term string, limit int) ([]domain.Tag, error) {
	term = lowerCaser.String(strings.TrimSpace(term))
	if utf8.RuneCountInString(term) < SearchMinLength {
		return nil, ErrTermTooShort
	}
	if limit <= 0 {
		limit = searchDefaultLimit
	}
	return repo.SearchByField[domain.Tag](ctx, s.DB, "name", term, limit)
}
