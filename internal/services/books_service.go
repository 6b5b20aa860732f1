// Package services – BooksService
//
// This file implements the BooksService: catalog CRUD with tag attachment,
// the publication-year bound, tag-name filtered listing (resolved through
// the book_tags join), and soft deletion.
package services

import (
	"context"
	"strings"
	"time"

	"gorm.io/gorm"

	"github.com/bookclubapp/go-bookclub-backend/internal/domain"
	"github.com/bookclubapp/go-bookclub-backend/internal/repo"
	"github.com/bookclubapp/go-bookclub-backend/internal/utils"
)

// maxYearsAhead bounds how far in the future a publication year may lie.
const maxYearsAhead = 5

// BooksService provides catalog operations for Book entities.
type BooksService struct {
	DB *gorm.DB
}

// CreateBookInput carries the attributes for registering a book. TagIDs
// optionally attaches existing tags through the join table.
type CreateBookInput struct {
	Title           string
	Author          string
	Synopsis        *string
	CoverURL        *string
	PublicationYear *int
	CreatedByID     *string
	TagIDs          []string
}

// UpdateBookInput carries a partial update. Nil pointers and unset
// optionals keep prior values; an explicit null clears the nullable
// columns (synopsis, cover_url, publication_year).
type UpdateBookInput struct {
	Title           *string
	Author          *string
	Synopsis        utils.Optional[string]
	CoverURL        utils.Optional[string]
	PublicationYear utils.Optional[int]
}

// BookListQuery parameterizes List. TagName, when set, restricts the page
// to books carrying a tag with that exact (case-insensitive) name.
type BookListQuery struct {
	Page     int
	Size     int
	TagName  string
	Includes []string
}

// Create validates the publication-year bound, persists the book, and
// attaches any requested tags. Tag IDs must reference existing tags; the
// foreign keys on book_tags reject anything else.
func (s *BooksService) Create(ctx context.Context, in CreateBookInput) (*domain.Book, error) {
	if err := validatePublicationYear(in.PublicationYear); err != nil {
		return nil, err
	}

	b := &domain.Book{
		Title:           strings.TrimSpace(in.Title),
		Author:          strings.TrimSpace(in.Author),
		Synopsis:        in.Synopsis,
		CoverURL:        in.CoverURL,
		PublicationYear: in.PublicationYear,
		CreatedByID:     in.CreatedByID,
	}

	err := s.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := repo.Create(ctx, tx, b); err != nil {
			return err
		}
		for _, tagID := range in.TagIDs {
			if _, err := repo.GetByID[domain.Tag](ctx, tx, tagID); err != nil {
				return notFound(err, ErrTagNotFound)
			}
			link := &domain.BookTag{BookID: b.ID, TagID: tagID}
			if err := repo.Create(ctx, tx, link); err != nil && !repo.IsDuplicate(err) {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return s.Get(ctx, b.ID, []string{"tags"})
}

// List returns one page of books, newest first, with validated includes.
// Tags are always eager-loaded; the include parameter adds further
// relations. A tag filter joins through book_tags and counts distinct books.
func (s *BooksService) List(ctx context.Context, q BookListQuery) ([]domain.Book, int64, error) {
	preloads, err := domain.Includes("books", q.Includes)
	if err != nil {
		return nil, 0, Validation("include", err.Error())
	}

	lq := repo.ListQuery{Page: q.Page, PageSize: q.Size, Preloads: withTags(preloads)}
	if tag := strings.TrimSpace(q.TagName); tag != "" {
		lq.Distinct = true
		lq.Scopes = append(lq.Scopes, func(tx *gorm.DB) *gorm.DB {
			return tx.
				Joins("JOIN book_tags ON book_tags.book_id = books.id").
				Joins("JOIN tags ON tags.id = book_tags.tag_id").
				Where("LOWER(tags.name) = ?", strings.ToLower(tag))
		})
	}
	return repo.List[domain.Book](ctx, s.DB, lq)
}

// Get fetches one book by id, or ErrBookNotFound. Tags are always
// eager-loaded; the include parameter adds further relations.
func (s *BooksService) Get(ctx context.Context, id string, includes []string) (*domain.Book, error) {
	preloads, err := domain.Includes("books", includes)
	if err != nil {
		return nil, Validation("include", err.Error())
	}
	b, err := repo.GetByID[domain.Book](ctx, s.DB, id, withTags(preloads)...)
	if err != nil {
		return nil, notFound(err, ErrBookNotFound)
	}
	return b, nil
}

// Update merges the provided fields over the stored book, re-validating the
// publication-year bound when it changes.
func (s *BooksService) Update(ctx context.Context, id string, in UpdateBookInput) (*domain.Book, error) {
	b, err := s.Get(ctx, id, nil)
	if err != nil {
		return nil, err
	}
	if in.PublicationYear.Set {
		if err := validatePublicationYear(in.PublicationYear.Ptr()); err != nil {
			return nil, err
		}
	}

	changes := map[string]any{}
	if in.Title != nil {
		changes["title"] = strings.TrimSpace(*in.Title)
	}
	if in.Author != nil {
		changes["author"] = strings.TrimSpace(*in.Author)
	}
	if in.Synopsis.Set {
		changes["synopsis"] = in.Synopsis.Ptr()
	}
	if in.CoverURL.Set {
		changes["cover_url"] = in.CoverURL.Ptr()
	}
	if in.PublicationYear.Set {
		changes["publication_year"] = in.PublicationYear.Ptr()
	}

	if err := repo.Update(ctx, s.DB, b, changes); err != nil {
		return nil, err
	}
	return s.Get(ctx, id, []string{"tags"})
}

// Delete soft-deletes the book; its rows in book_tags and reviews remain
// but the book disappears from default reads.
func (s *BooksService) Delete(ctx context.Context, id string) error {
	if err := repo.Delete[domain.Book](ctx, s.DB, map[string]any{"id": id}); err != nil {
		return notFound(err, ErrBookNotFound)
	}
	return nil
}

// withTags ensures the Tags preload is present; a book without its tags is
// an incomplete representation.
func withTags(preloads []string) []string {
	for _, p := range preloads {
		if p == "Tags" {
			return preloads
		}
	}
	return append(preloads, "Tags")
}

// validatePublicationYear enforces the currentYear+maxYearsAhead bound.
// A nil year is valid (unknown publication date).
func validatePublicationYear(year *int) error {
	if year == nil {
		return nil
	}
	if max := time.Now().Year() + maxYearsAhead; *year > max {
		return Validation("publication_year", "must not be more than 5 years in the future")
	}
	return nil
}
