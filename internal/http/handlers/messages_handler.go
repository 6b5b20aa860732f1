// Message HTTP handlers. Chat-scoped listings return messages oldest
// first so clients can render the conversation in order; everything else
// lists newest first.
package handlers

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/bookclubapp/go-bookclub-backend/internal/domain"
	"github.com/bookclubapp/go-bookclub-backend/internal/services"
)

// MessageService defines message operations consumed by HTTP handlers.
type MessageService interface {
	Create(ctx context.Context, in services.CreateMessageInput) (*domain.Message, error)
	List(ctx context.Context, q services.MessageListQuery) ([]domain.Message, int64, error)
	Get(ctx context.Context, id string) (*domain.Message, error)
	Update(ctx context.Context, id, content string) (*domain.Message, error)
	Delete(ctx context.Context, id string) error
}

// CreateMessageRequest is the JSON payload for posting a message. The
// author is the authenticated caller.
type CreateMessageRequest struct {
	ChatID  string `json:"chat_id" binding:"required,uuid"`
	Content string `json:"content" binding:"required,min=1,max=10000"`
}

// UpdateMessageRequest is the JSON payload for editing a message.
type UpdateMessageRequest struct {
	Content string `json:"content" binding:"required,min=1,max=10000"`
}

// CreateMessage godoc
// @ID          createMessage
// @Summary     Post a message
// @Description Appends a message to a chat, authored by the authenticated caller.
// @Tags        Messages
// @Accept      json
// @Produce     json
// @Security    BearerAuth
//
// @Param       body  body  handlers.CreateMessageRequest  true  "Message payload"
//
// @Success     201  {object}  domain.Message
// @Failure     400  {object}  handlers.ErrorResponse  "Malformed payload or empty content"
// @Failure     404  {object}  handlers.ErrorResponse  "Chat not found"
// @Router      /messages [post]
func (h *Handlers) CreateMessage(c *gin.Context) {
	var req CreateMessageRequest
	if !bindJSON(c, &req) {
		return
	}
	claims, okC := identity(c)
	if !okC {
		fail(c, http.StatusUnauthorized, "token not provided")
		return
	}
	m, err := h.msgSvc.Create(c.Request.Context(), services.CreateMessageInput{
		ChatID:   req.ChatID,
		PersonID: claims.ID,
		Content:  req.Content,
	})
	if err != nil {
		serviceError(c, err)
		return
	}
	ok(c, http.StatusCreated, m)
}

// ListMessages godoc
// @ID          listMessages
// @Summary     List messages (paginated)
// @Description Newest first by default. When filtered to a chat the page is returned oldest first.
// @Tags        Messages
// @Produce     json
// @Security    BearerAuth
//
// @Param       page       query  string  false  "Page number"     default(1)
// @Param       size       query  string  false  "Items per page"  default(10)
// @Param       chat_id    query  string  false  "Filter by chat"
// @Param       person_id  query  string  false  "Filter by author"
// @Param       include    query  string  false  "Comma-separated relations: person"
//
// @Success     200  {object}  handlers.ListResponse[domain.Message]
// @Failure     400  {object}  handlers.ErrorResponse  "Invalid pagination or unknown relation"
// @Router      /messages [get]
func (h *Handlers) ListMessages(c *gin.Context) {
	h.listMessages(c, c.Query("chat_id"), c.Query("person_id"))
}

// ListMessagesByChat godoc
// @ID          listMessagesByChat
// @Summary     List a chat's messages in conversation order
// @Tags        Messages
// @Produce     json
// @Security    BearerAuth
//
// @Param       chat_id  path   string  true   "Chat ID (UUID)"  format(uuid)
// @Param       page     query  string  false  "Page number"     default(1)
// @Param       size     query  string  false  "Items per page"  default(10)
//
// @Success     200  {object}  handlers.ListResponse[domain.Message]
// @Router      /messages/chat/{chat_id} [get]
func (h *Handlers) ListMessagesByChat(c *gin.Context) {
	h.listMessages(c, c.Param("chat_id"), "")
}

// ListMessagesByPerson godoc
// @ID          listMessagesByPerson
// @Summary     List a person's messages
// @Tags        Messages
// @Produce     json
// @Security    BearerAuth
//
// @Param       person_id  path   string  true   "Person ID (UUID)"  format(uuid)
// @Param       page       query  string  false  "Page number"     default(1)
// @Param       size       query  string  false  "Items per page"  default(10)
//
// @Success     200  {object}  handlers.ListResponse[domain.Message]
// @Router      /messages/person/{person_id} [get]
func (h *Handlers) ListMessagesByPerson(c *gin.Context) {
	h.listMessages(c, "", c.Param("person_id"))
}

func (h *Handlers) listMessages(c *gin.Context, chatID, personID string) {
	page, size, okP := pageParams(c)
	if !okP {
		return
	}
	items, total, err := h.msgSvc.List(c.Request.Context(), services.MessageListQuery{
		Page:     page,
		Size:     size,
		ChatID:   chatID,
		PersonID: personID,
		Includes: includeParams(c),
	})
	if err != nil {
		serviceError(c, err)
		return
	}
	listOK(c, items, page, size, total)
}

// GetMessage godoc
// @ID          getMessage
// @Summary     Fetch a message by id
// @Tags        Messages
// @Produce     json
// @Security    BearerAuth
//
// @Param       id  path  string  true  "Message ID (UUID)"  format(uuid)
//
// @Success     200  {object}  domain.Message
// @Failure     404  {object}  handlers.ErrorResponse  "Message not found"
// @Router      /messages/{id} [get]
func (h *Handlers) GetMessage(c *gin.Context) {
	m, err := h.msgSvc.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		serviceError(c, err)
		return
	}
	ok(c, http.StatusOK, m)
}

// UpdateMessage godoc
// @ID          updateMessage
// @Summary     Edit a message
// @Tags        Messages
// @Accept      json
// @Produce     json
// @Security    BearerAuth
//
// @Param       id    path  string                         true  "Message ID (UUID)"  format(uuid)
// @Param       body  body  handlers.UpdateMessageRequest  true  "New content"
//
// @Success     200  {object}  domain.Message
// @Failure     404  {object}  handlers.ErrorResponse  "Message not found"
// @Router      /messages/{id} [patch]
func (h *Handlers) UpdateMessage(c *gin.Context) {
	var req UpdateMessageRequest
	if !bindJSON(c, &req) {
		return
	}
	m, err := h.msgSvc.Update(c.Request.Context(), c.Param("id"), req.Content)
	if err != nil {
		serviceError(c, err)
		return
	}
	ok(c, http.StatusOK, m)
}

// DeleteMessage godoc
// @ID          deleteMessage
// @Summary     Delete a message (hard)
// @Tags        Messages
// @Security    BearerAuth
//
// @Param       id  path  string  true  "Message ID (UUID)"  format(uuid)
//
// @Success     204  {string}  string  "No Content"
// @Failure     404  {object}  handlers.ErrorResponse  "Message not found"
// @Router      /messages/{id} [delete]
func (h *Handlers) DeleteMessage(c *gin.Context) {
	if err := h.msgSvc.Delete(c.Request.Context(), c.Param("id")); err != nil {
		serviceError(c, err)
		return
	}
	noContent(c)
}
