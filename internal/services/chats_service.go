// Package services – ChatsService
//
// This file implements chat streams. A chat belongs to a club; deleting a
// chat physically removes it and its messages cascade with it.
package services

import (
	"context"

	"gorm.io/gorm"

	"github.com/bookclubapp/go-bookclub-backend/internal/domain"
	"github.com/bookclubapp/go-bookclub-backend/internal/repo"
)

// ChatsService provides operations for Chat entities.
type ChatsService struct {
	DB *gorm.DB
}

// ChatListQuery parameterizes List with an optional club filter.
type ChatListQuery struct {
	Page   int
	Size   int
	ClubID string
}

// Create opens a chat stream for the club, which must exist.
func (s *ChatsService) Create(ctx context.Context, clubID string) (*domain.Chat, error) {
	if _, err := repo.GetByID[domain.Club](ctx, s.DB, clubID); err != nil {
		return nil, notFound(err, ErrClubNotFound)
	}
	c := &domain.Chat{ClubID: clubID}
	if err := repo.Create(ctx, s.DB, c); err != nil {
		return nil, err
	}
	return c, nil
}

// List returns one page of chats, newest first.
func (s *ChatsService) List(ctx context.Context, q ChatListQuery) ([]domain.Chat, int64, error) {
	filters := map[string]any{}
	if q.ClubID != "" {
		filters["club_id"] = q.ClubID
	}
	return repo.List[domain.Chat](ctx, s.DB, repo.ListQuery{
		Page:     q.Page,
		PageSize: q.Size,
		Filters:  filters,
	})
}

// Get fetches one chat by id, or ErrChatNotFound.
func (s *ChatsService) Get(ctx context.Context, id string) (*domain.Chat, error) {
	c, err := repo.GetByID[domain.Chat](ctx, s.DB, id)
	if err != nil {
		return nil, notFound(err, ErrChatNotFound)
	}
	return c, nil
}

// Update reassigns the chat to another club, which must exist.
func (s *ChatsService) Update(ctx context.Context, id, clubID string) (*domain.Chat, error) {
	c, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if clubID == "" || clubID == c.ClubID {
		return c, nil
	}
	if _, err := repo.GetByID[domain.Club](ctx, s.DB, clubID); err != nil {
		return nil, notFound(err, ErrClubNotFound)
	}
	if err := repo.Update(ctx, s.DB, c, map[string]any{"club_id": clubID}); err != nil {
		return nil, err
	}
	return s.Get(ctx, id)
}

// Delete removes the chat physically; its messages cascade with it.
func (s *ChatsService) Delete(ctx context.Context, id string) error {
	if err := repo.Delete[domain.Chat](ctx, s.DB, map[string]any{"id": id}); err != nil {
		return notFound(err, ErrChatNotFound)
	}
	return nil
}
