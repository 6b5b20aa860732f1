// Package services – MessagesService
//
// This file implements chat messages. Chat-scoped listings default to
// ascending creation order for chronological display; the flat listing
// keeps the global newest-first default.
package services

import (
	"context"
	"strings"

	"gorm.io/gorm"

	"github.com/bookclubapp/go-bookclub-backend/internal/domain"
	"github.com/bookclubapp/go-bookclub-backend/internal/repo"
)

// MessagesService provides operations for Message entities.
type MessagesService struct {
	DB *gorm.DB
}

// CreateMessageInput carries the attributes for posting a message.
type CreateMessageInput struct {
	ChatID   string
	PersonID string
	Content  string
}

// MessageListQuery parameterizes List. ChatID and PersonID are optional
// equality filters; a chat-scoped listing is returned oldest first.
type MessageListQuery struct {
	Page     int
	Size     int
	ChatID   string
	PersonID string
	Includes []string
}

// Create posts a message. The chat and the author must both exist and the
// content must be non-empty.
func (s *MessagesService) Create(ctx context.Context, in CreateMessageInput) (*domain.Message, error) {
	content := strings.TrimSpace(in.Content)
	if content == "" {
		return nil, Validation("content", "must not be empty")
	}
	if _, err := repo.GetByID[domain.Chat](ctx, s.DB, in.ChatID); err != nil {
		return nil, notFound(err, ErrChatNotFound)
	}
	if _, err := repo.GetByID[domain.Person](ctx, s.DB, in.PersonID); err != nil {
		return nil, notFound(err, ErrPersonNotFound)
	}

	m := &domain.Message{ChatID: in.ChatID, PersonID: in.PersonID, Content: content}
	if err := repo.Create(ctx, s.DB, m); err != nil {
		return nil, err
	}
	return m, nil
}

// List returns one page of messages with validated includes. Chat-scoped
// listings are chronological (created_at ascending); everything else is
// newest first.
func (s *MessagesService) List(ctx context.Context, q MessageListQuery) ([]domain.Message, int64, error) {
	preloads, err := domain.Includes("messages", q.Includes)
	if err != nil {
		return nil, 0, Validation("include", err.Error())
	}
	filters := map[string]any{}
	sort := ""
	if q.ChatID != "" {
		filters["chat_id"] = q.ChatID
		sort = "created_at ASC"
	}
	if q.PersonID != "" {
		filters["person_id"] = q.PersonID
	}
	return repo.List[domain.Message](ctx, s.DB, repo.ListQuery{
		Page:     q.Page,
		PageSize: q.Size,
		Filters:  filters,
		Sort:     sort,
		Preloads: preloads,
	})
}

// Get fetches one message by id, or ErrMessageNotFound.
func (s *MessagesService) Get(ctx context.Context, id string) (*domain.Message, error) {
	m, err := repo.GetByID[domain.Message](ctx, s.DB, id)
	if err != nil {
		return nil, notFound(err, ErrMessageNotFound)
	}
	return m, nil
}

// Update replaces the message content.
func (s *MessagesService) Update(ctx context.Context, id, content string) (*domain.Message, error) {
	content = strings.TrimSpace(content)
	if content == "" {
		return nil, Validation("content", "must not be empty")
	}
	m, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := repo.Update(ctx, s.DB, m, map[string]any{"content": content}); err != nil {
		return nil, err
	}
	return s.Get(ctx, id)
}

// Delete removes the message physically.
func (s *MessagesService) Delete(ctx context.Context, id string) error {
	if err := repo.Delete[domain.Message](ctx, s.DB, map[string]any{"id": id}); err != nil {
		return notFound(err, ErrMessageNotFound)
	}
	return nil
}
