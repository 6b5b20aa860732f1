// Package services – MembersService
//
// This file implements club membership. A (club, person) pair appears at
// most once (composite primary key); "leaving" records left_at on the row,
// while an explicit removal deletes exactly that pair.
package services

import (
	"context"
	"time"

	"gorm.io/gorm"

	"github.com/bookclubapp/go-bookclub-backend/internal/domain"
	"github.com/bookclubapp/go-bookclub-backend/internal/repo"
	"github.com/bookclubapp/go-bookclub-backend/internal/utils"
)

// MembersService provides operations over ClubMember rows.
type MembersService struct {
	DB *gorm.DB
}

// AddMemberInput carries the attributes for joining a club. A zero JoinedAt
// defaults to now.
type AddMemberInput struct {
	ClubID   string
	PersonID string
	JoinedAt time.Time
	LeftAt   *time.Time
}

// UpdateMemberInput carries a partial membership update. An explicit null
// LeftAt clears the departure (the person is a member again).
type UpdateMemberInput struct {
	JoinedAt *time.Time
	LeftAt   utils.Optional[time.Time]
}

// MemberListQuery parameterizes List with optional club/person filters.
type MemberListQuery struct {
	Page     int
	Size     int
	ClubID   string
	PersonID string
}

// Add records a person joining a club. The club and person must both exist;
// a duplicate pair yields ErrMemberExists (composite key authoritative).
func (s *MembersService) Add(ctx context.Context, in AddMemberInput) (*domain.ClubMember, error) {
	if _, err := repo.GetByID[domain.Club](ctx, s.DB, in.ClubID); err != nil {
		return nil, notFound(err, ErrClubNotFound)
	}
	if _, err := repo.GetByID[domain.Person](ctx, s.DB, in.PersonID); err != nil {
		return nil, notFound(err, ErrPersonNotFound)
	}

	if in.JoinedAt.IsZero() {
		in.JoinedAt = time.Now().UTC()
	}
	m := &domain.ClubMember{
		ClubID:   in.ClubID,
		PersonID: in.PersonID,
		JoinedAt: in.JoinedAt,
		LeftAt:   in.LeftAt,
	}
	if err := repo.Create(ctx, s.DB, m); err != nil {
		if repo.IsDuplicate(err) {
			return nil, ErrMemberExists
		}
		return nil, err
	}
	return m, nil
}

// List returns one page of membership rows, newest first.
func (s *MembersService) List(ctx context.Context, q MemberListQuery) ([]domain.ClubMember, int64, error) {
	filters := map[string]any{}
	if q.ClubID != "" {
		filters["club_id"] = q.ClubID
	}
	if q.PersonID != "" {
		filters["person_id"] = q.PersonID
	}
	return repo.List[domain.ClubMember](ctx, s.DB, repo.ListQuery{
		Page:     q.Page,
		PageSize: q.Size,
		Filters:  filters,
	})
}

// Get fetches the membership row for the exact (club, person) pair.
func (s *MembersService) Get(ctx context.Context, clubID, personID string) (*domain.ClubMember, error) {
	m, err := repo.GetBy[domain.ClubMember](ctx, s.DB, pairConds(clubID, personID))
	if err != nil {
		return nil, notFound(err, ErrMemberNotFound)
	}
	return m, nil
}

// Update merges joined/left timestamps over the stored membership row.
func (s *MembersService) Update(ctx context.Context, clubID, personID string, in UpdateMemberInput) (*domain.ClubMember, error) {
	m, err := s.Get(ctx, clubID, personID)
	if err != nil {
		return nil, err
	}

	changes := map[string]any{}
	if in.JoinedAt != nil {
		changes["joined_at"] = *in.JoinedAt
	}
	if in.LeftAt.Set {
		changes["left_at"] = in.LeftAt.Ptr()
	}
	if err := repo.Update(ctx, s.DB, m, changes); err != nil {
		return nil, err
	}
	return s.Get(ctx, clubID, personID)
}

// Remove deletes exactly the (club, person) membership row.
func (s *MembersService) Remove(ctx context.Context, clubID, personID string) error {
	if err := repo.Delete[domain.ClubMember](ctx, s.DB, pairConds(clubID, personID)); err != nil {
		return notFound(err, ErrMemberNotFound)
	}
	return nil
}

func pairConds(clubID, personID string) map[string]any {
	return map[string]any{"club_id": clubID, "person_id": personID}
}
