// Chat HTTP handlers. A chat is a club's message stream; deleting one
// cascades its messages away.
package handlers

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/bookclubapp/go-bookclub-backend/internal/domain"
	"github.com/bookclubapp/go-bookclub-backend/internal/services"
)

// ChatService defines chat lifecycle operations consumed by HTTP handlers.
type ChatService interface {
	Create(ctx context.Context, clubID string) (*domain.Chat, error)
	List(ctx context.Context, q services.ChatListQuery) ([]domain.Chat, int64, error)
	Get(ctx context.Context, id string) (*domain.Chat, error)
	Update(ctx context.Context, id, clubID string) (*domain.Chat, error)
	Delete(ctx context.Context, id string) error
}

// CreateChatRequest is the JSON payload for opening a chat.
type CreateChatRequest struct {
	ClubID string `json:"club_id" binding:"required,uuid"`
}

// UpdateChatRequest is the JSON payload for reassigning a chat to a club.
type UpdateChatRequest struct {
	ClubID string `json:"club_id" binding:"required,uuid"`
}

// CreateChat godoc
// @ID          createChat
// @Summary     Open a chat for a club
// @Tags        Chats
// @Accept      json
// @Produce     json
// @Security    BearerAuth
//
// @Param       body  body  handlers.CreateChatRequest  true  "Chat payload"
//
// @Success     201  {object}  domain.Chat
// @Failure     400  {object}  handlers.ErrorResponse  "Malformed payload"
// @Failure     404  {object}  handlers.ErrorResponse  "Club not found"
// @Router      /chats [post]
func (h *Handlers) CreateChat(c *gin.Context) {
	var req CreateChatRequest
	if !bindJSON(c, &req) {
		return
	}
	ch, err := h.chatsSvc.Create(c.Request.Context(), req.ClubID)
	if err != nil {
		serviceError(c, err)
		return
	}
	ok(c, http.StatusCreated, ch)
}

// ListChats godoc
// @ID          listChats
// @Summary     List chats (paginated)
// @Tags        Chats
// @Produce     json
// @Security    BearerAuth
//
// @Param       page     query  string  false  "Page number"     default(1)
// @Param       size     query  string  false  "Items per page"  default(10)
// @Param       club_id  query  string  false  "Filter by club"
//
// @Success     200  {object}  handlers.ListResponse[domain.Chat]
// @Failure     400  {object}  handlers.ErrorResponse  "Invalid pagination"
// @Router      /chats [get]
func (h *Handlers) ListChats(c *gin.Context) {
	h.listChats(c, c.Query("club_id"))
}

// ListChatsByClub godoc
// @ID          listChatsByClub
// @Summary     List a club's chats
// @Tags        Chats
// @Produce     json
// @Security    BearerAuth
//
// @Param       club_id  path   string  true   "Club ID (UUID)"  format(uuid)
// @Param       page     query  string  false  "Page number"     default(1)
// @Param       size     query  string  false  "Items per page"  default(10)
//
// @Success     200  {object}  handlers.ListResponse[domain.Chat]
// @Router      /chats/club/{club_id} [get]
func (h *Handlers) ListChatsByClub(c *gin.Context) {
	h.listChats(c, c.Param("club_id"))
}

func (h *Handlers) listChats(c *gin.Context, clubID string) {
	page, size, okP := pageParams(c)
	if !okP {
		return
	}
	items, total, err := h.chatsSvc.List(c.Request.Context(), services.ChatListQuery{
		Page:   page,
		Size:   size,
		ClubID: clubID,
	})
	if err != nil {
		serviceError(c, err)
		return
	}
	listOK(c, items, page, size, total)
}

// GetChat godoc
// @ID          getChat
// @Summary     Fetch a chat by id
// @Tags        Chats
// @Produce     json
// @Security    BearerAuth
//
// @Param       id  path  string  true  "Chat ID (UUID)"  format(uuid)
//
// @Success     200  {object}  domain.Chat
// @Failure     404  {object}  handlers.ErrorResponse  "Chat not found"
// @Router      /chats/{id} [get]
func (h *Handlers) GetChat(c *gin.Context) {
	ch, err := h.chatsSvc.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		serviceError(c, err)
		return
	}
	ok(c, http.StatusOK, ch)
}

// UpdateChat godoc
// @ID          updateChat
// @Summary     Reassign a chat to another club
// @Tags        Chats
// @Accept      json
// @Produce     json
// @Security    BearerAuth
//
// @Param       id    path  string                      true  "Chat ID (UUID)"  format(uuid)
// @Param       body  body  handlers.UpdateChatRequest  true  "New club"
//
// @Success     200  {object}  domain.Chat
// @Failure     404  {object}  handlers.ErrorResponse  "Chat or club not found"
// @Router      /chats/{id} [patch]
func (h *Handlers) UpdateChat(c *gin.Context) {
	var req UpdateChatRequest
	if !bindJSON(c, &req) {
		return
	}
	ch, err := h.chatsSvc.Update(c.Request.Context(), c.Param("id"), req.ClubID)
	if err != nil {
		serviceError(c, err)
		return
	}
	ok(c, http.StatusOK, ch)
}

// DeleteChat godoc
// @ID          deleteChat
// @Summary     Delete a chat (hard)
// @Description Removes the chat permanently together with all of its messages.
// @Tags        Chats
// @Security    BearerAuth
//
// @Param       id  path  string  true  "Chat ID (UUID)"  format(uuid)
//
// @Success     204  {string}  string  "No Content"
// @Failure     404  {object}  handlers.ErrorResponse  "Chat not found"
// @Router      /chats/{id} [delete]
func (h *Handlers) DeleteChat(c *gin.Context) {
	if err := h.chatsSvc.Delete(c.Request.Context(), c.Param("id")); err != nil {
		serviceError(c, err)
		return
	}
	noContent(c)
}
