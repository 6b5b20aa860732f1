// Club membership HTTP handlers. Memberships are keyed by the
// (club_id, person_id) pair rather than a surrogate id, so item routes
// carry both segments.
package handlers

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/bookclubapp/go-bookclub-backend/internal/domain"
	"github.com/bookclubapp/go-bookclub-backend/internal/services"
	"github.com/bookclubapp/go-bookclub-backend/internal/utils"
)

// MemberService defines club membership operations consumed by HTTP
// handlers.
type MemberService interface {
	Add(ctx context.Context, in services.AddMemberInput) (*domain.ClubMember, error)
	List(ctx context.Context, q services.MemberListQuery) ([]domain.ClubMember, int64, error)
	Get(ctx context.Context, clubID, personID string) (*domain.ClubMember, error)
	Update(ctx context.Context, clubID, personID string, in services.UpdateMemberInput) (*domain.ClubMember, error)
	Remove(ctx context.Context, clubID, personID string) error
}

// AddMemberRequest is the JSON payload for joining a club. JoinedAt
// defaults to the current time when omitted.
type AddMemberRequest struct {
	ClubID   string     `json:"club_id" binding:"required,uuid"`
	PersonID string     `json:"person_id" binding:"required,uuid"`
	JoinedAt *time.Time `json:"joined_at"`
	LeftAt   *time.Time `json:"left_at"`
}

// UpdateMemberRequest is the JSON payload for a partial membership update.
type UpdateMemberRequest struct {
	JoinedAt *time.Time                `json:"joined_at"`
	LeftAt   utils.Optional[time.Time] `json:"left_at" swaggertype:"string"`
}

// AddMember godoc
// @ID          addMember
// @Summary     Add a person to a club
// @Description Records a membership. The (club, person) pair must not already exist.
// @Tags        ClubMembers
// @Accept      json
// @Produce     json
// @Security    BearerAuth
//
// @Param       body  body  handlers.AddMemberRequest  true  "Membership payload"
//
// @Success     201  {object}  domain.ClubMember
// @Failure     400  {object}  handlers.ErrorResponse  "Malformed payload or person already a member"
// @Failure     404  {object}  handlers.ErrorResponse  "Club or person not found"
// @Router      /club-members [post]
func (h *Handlers) AddMember(c *gin.Context) {
	var req AddMemberRequest
	if !bindJSON(c, &req) {
		return
	}
	in := services.AddMemberInput{
		ClubID:   req.ClubID,
		PersonID: req.PersonID,
		LeftAt:   req.LeftAt,
	}
	if req.JoinedAt != nil {
		in.JoinedAt = *req.JoinedAt
	}
	m, err := h.membersSvc.Add(c.Request.Context(), in)
	if err != nil {
		serviceError(c, err)
		return
	}
	ok(c, http.StatusCreated, m)
}

// ListMembers godoc
// @ID          listMembers
// @Summary     List club memberships (paginated)
// @Tags        ClubMembers
// @Produce     json
// @Security    BearerAuth
//
// @Param       page       query  string  false  "Page number"     default(1)
// @Param       size       query  string  false  "Items per page"  default(10)
// @Param       club_id    query  string  false  "Filter by club"
// @Param       person_id  query  string  false  "Filter by person"
//
// @Success     200  {object}  handlers.ListResponse[domain.ClubMember]
// @Failure     400  {object}  handlers.ErrorResponse  "Invalid pagination"
// @Router      /club-members [get]
func (h *Handlers) ListMembers(c *gin.Context) {
	h.listMembers(c, c.Query("club_id"), c.Query("person_id"))
}

// ListMembersByClub godoc
// @ID          listMembersByClub
// @Summary     List memberships of a club
// @Tags        ClubMembers
// @Produce     json
// @Security    BearerAuth
//
// @Param       club_id  path   string  true   "Club ID (UUID)"  format(uuid)
// @Param       page     query  string  false  "Page number"     default(1)
// @Param       size     query  string  false  "Items per page"  default(10)
//
// @Success     200  {object}  handlers.ListResponse[domain.ClubMember]
// @Router      /club-members/club/{club_id} [get]
func (h *Handlers) ListMembersByClub(c *gin.Context) {
	h.listMembers(c, c.Param("club_id"), "")
}

// ListMembersByPerson godoc
// @ID          listMembersByPerson
// @Summary     List memberships of a person
// @Tags        ClubMembers
// @Produce     json
// @Security    BearerAuth
//
// @Param       person_id  path   string  true   "Person ID (UUID)"  format(uuid)
// @Param       page       query  string  false  "Page number"     default(1)
// @Param       size       query  string  false  "Items per page"  default(10)
//
// @Success     200  {object}  handlers.ListResponse[domain.ClubMember]
// @Router      /club-members/person/{person_id} [get]
func (h *Handlers) ListMembersByPerson(c *gin.Context) {
	h.listMembers(c, "", c.Param("person_id"))
}

func (h *Handlers) listMembers(c *gin.Context, clubID, personID string) {
	page, size, okP := pageParams(c)
	if !okP {
		return
	}
	items, total, err := h.membersSvc.List(c.Request.Context(), services.MemberListQuery{
		Page:     page,
		Size:     size,
		ClubID:   clubID,
		PersonID: personID,
	})
	if err != nil {
		serviceError(c, err)
		return
	}
	listOK(c, items, page, size, total)
}

// GetMember godoc
// @ID          getMember
// @Summary     Fetch a membership by its pair key
// @Tags        ClubMembers
// @Produce     json
// @Security    BearerAuth
//
// @Param       club_id    path  string  true  "Club ID (UUID)"    format(uuid)
// @Param       person_id  path  string  true  "Person ID (UUID)"  format(uuid)
//
// @Success     200  {object}  domain.ClubMember
// @Failure     404  {object}  handlers.ErrorResponse  "Membership not found"
// @Router      /club-members/{club_id}/{person_id} [get]
func (h *Handlers) GetMember(c *gin.Context) {
	m, err := h.membersSvc.Get(c.Request.Context(), c.Param("club_id"), c.Param("person_id"))
	if err != nil {
		serviceError(c, err)
		return
	}
	ok(c, http.StatusOK, m)
}

// UpdateMember godoc
// @ID          updateMember
// @Summary     Partially update a membership
// @Description Adjusts join/leave timestamps; setting left_at marks the person as having left the club.
// @Tags        ClubMembers
// @Accept      json
// @Produce     json
// @Security    BearerAuth
//
// @Param       club_id    path  string                        true  "Club ID (UUID)"    format(uuid)
// @Param       person_id  path  string                        true  "Person ID (UUID)"  format(uuid)
// @Param       body       body  handlers.UpdateMemberRequest  true  "Fields to change"
//
// @Success     200  {object}  domain.ClubMember
// @Failure     404  {object}  handlers.ErrorResponse  "Membership not found"
// @Router      /club-members/{club_id}/{person_id} [patch]
func (h *Handlers) UpdateMember(c *gin.Context) {
	var req UpdateMemberRequest
	if !bindJSON(c, &req) {
		return
	}
	m, err := h.membersSvc.Update(c.Request.Context(), c.Param("club_id"), c.Param("person_id"), services.UpdateMemberInput{
		JoinedAt: req.JoinedAt,
		LeftAt:   req.LeftAt,
	})
	if err != nil {
		serviceError(c, err)
		return
	}
	ok(c, http.StatusOK, m)
}

// RemoveMember godoc
// @ID          removeMember
// @Summary     Remove a membership (hard)
// @Tags        ClubMembers
// @Security    BearerAuth
//
// @Param       club_id    path  string  true  "Club ID (UUID)"    format(uuid)
// @Param       person_id  path  string  true  "Person ID (UUID)"  format(uuid)
//
// @Success     204  {string}  string  "No Content"
// @Failure     404  {object}  handlers.ErrorResponse  "Membership not found"
// @Router      /club-members/{club_id}/{person_id} [delete]
func (h *Handlers) RemoveMember(c *gin.Context) {
	if err := h.membersSvc.Remove(c.Request.Context(), c.Param("club_id"), c.Param("person_id")); err != nil {
		serviceError(c, err)
		return
	}
	noContent(c)
}
