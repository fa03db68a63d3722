package members

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"

	"github.com/irondistrict/membership-api/internal/domain"
	clockport "github.com/irondistrict/membership-api/internal/ports/out/clock"
	"github.com/irondistrict/membership-api/internal/ports/out/memberrepo"
	"github.com/irondistrict/membership-api/internal/ports/out/subscriptionrepo"
)

type Service struct {
	repo memberrepo.Repository
	subs subscriptionrepo.Repository
	clk  clockport.Clock

	newMemberID func() domain.MemberID

	// SearchLimit bounds search result size.
	SearchLimit int
}

func NewService(repo memberrepo.Repository, subs subscriptionrepo.Repository, clk clockport.Clock) *Service {
	return &Service{
		repo: repo,
		subs: subs,
		clk:  clk,
		newMemberID: func() domain.MemberID {
			return domain.MemberID(uuid.NewString())
		},
		SearchLimit: 50,
	}
}

func (s *Service) ListMembers(ctx context.Context) ([]domain.Member, error) {
	ms, err := s.repo.List(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]domain.Member, 0, len(ms))
	for _, m := range ms {
		out = append(out, toDomain(m))
	}
	return out, nil
}

func (s *Service) GetMember(ctx context.Context, id domain.MemberID) (domain.Member, error) {
	m, err := s.repo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, memberrepo.ErrNotFound) {
			return domain.Member{}, &Error{Status: 404, Code: "MEMBER_NOT_FOUND", Message: "member not found"}
		}
		return domain.Member{}, err
	}
	return toDomain(m), nil
}

func (s *Service) CreateMember(ctx context.Context, in CreateMemberInput) (domain.Member, error) {
	firstName := domain.NormalizeHumanName(in.FirstName)
	if firstName == "" {
		return domain.Member{}, validationError("firstName", "must be non-empty")
	}
	lastName := domain.NormalizeHumanName(in.LastName)
	if lastName == "" {
		return domain.Member{}, validationError("lastName", "must be non-empty")
	}

	now := s.clk.Now()
	if in.DOB != nil && !domain.DateOnly(*in.DOB).Before(domain.DateOnly(now)) {
		return domain.Member{}, validationError("dob", "must be in the past")
	}

	m := memberrepo.Member{
		ID:               s.newMemberID(),
		FirstName:        firstName,
		LastName:         lastName,
		Gender:           cloneStringPtr(in.Gender),
		DOB:              cloneDatePtr(in.DOB),
		Phone:            cloneStringPtr(in.Phone),
		Email:            cloneStringPtr(in.Email),
		Address:          cloneStringPtr(in.Address),
		JoinDate:         domain.DateOnly(now),
		MembershipStatus: domain.MembershipStatusActive,
		CreatedAt:        now,
		UpdatedAt:        now,
	}
	if err := s.repo.Create(ctx, m); err != nil {
		return domain.Member{}, err
	}
	return toDomain(m), nil
}

func (s *Service) UpdateMember(ctx context.Context, id domain.MemberID, in UpdateMemberInput) (domain.Member, error) {
	m, err := s.repo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, memberrepo.ErrNotFound) {
			return domain.Member{}, &Error{Status: 404, Code: "MEMBER_NOT_FOUND", Message: "member not found"}
		}
		return domain.Member{}, err
	}

	if in.FirstName.IsSpecified() {
		if in.FirstName.IsNull() {
			return domain.Member{}, validationError("firstName", "cannot be null")
		}
		firstName := domain.NormalizeHumanName(in.FirstName.Value())
		if firstName == "" {
			return domain.Member{}, validationError("firstName", "must be non-empty")
		}
		m.FirstName = firstName
	}
	if in.LastName.IsSpecified() {
		if in.LastName.IsNull() {
			return domain.Member{}, validationError("lastName", "cannot be null")
		}
		lastName := domain.NormalizeHumanName(in.LastName.Value())
		if lastName == "" {
			return domain.Member{}, validationError("lastName", "must be non-empty")
		}
		m.LastName = lastName
	}

	applyNullableString(&m.Gender, in.Gender)
	applyNullableString(&m.Phone, in.Phone)
	applyNullableString(&m.Email, in.Email)
	applyNullableString(&m.Address, in.Address)

	if in.DOB.IsSpecified() {
		if in.DOB.IsNull() {
			m.DOB = nil
		} else {
			dob := domain.DateOnly(in.DOB.Value())
			if !dob.Before(domain.DateOnly(s.clk.Now())) {
				return domain.Member{}, validationError("dob", "must be in the past")
			}
			m.DOB = &dob
		}
	}

	// JoinDate and MembershipStatus are deliberately untouched here.
	m.UpdatedAt = s.clk.Now()
	if err := s.repo.Update(ctx, m); err != nil {
		if errors.Is(err, memberrepo.ErrNotFound) {
			return domain.Member{}, &Error{Status: 404, Code: "MEMBER_NOT_FOUND", Message: "member not found"}
		}
		return domain.Member{}, err
	}
	return toDomain(m), nil
}

// DeleteMember removes a member unless a non-terminal subscription still
// references them. Cancelled subscriptions do not block deletion and are
// removed together with the member. The returned count is 0 when no such
// member existed and 1 on success.
func (s *Service) DeleteMember(ctx context.Context, id domain.MemberID) (int64, error) {
	subs, err := s.subs.ListByMember(ctx, id)
	if err != nil {
		return 0, err
	}
	for _, sub := range subs {
		if sub.Status == domain.SubscriptionStatusActive || sub.Status == domain.SubscriptionStatusExpired {
			return 0, &Error{
				Status:  409,
				Code:    "MEMBER_HAS_SUBSCRIPTIONS",
				Message: "member still has active or expired subscriptions",
				Details: map[string]any{"blockingStatus": string(sub.Status)},
			}
		}
	}

	n, err := s.repo.Delete(ctx, id)
	if err != nil {
		return 0, err
	}
	if n > 0 {
		if _, err := s.subs.DeleteByMember(ctx, id); err != nil {
			return n, err
		}
	}
	return n, nil
}

func (s *Service) SearchMembers(ctx context.Context, query string) ([]domain.Member, error) {
	if domain.NormalizeHumanName(query) == "" {
		return nil, validationError("q", "must be non-empty")
	}
	ms, err := s.repo.SearchByName(ctx, query, s.SearchLimit)
	if err != nil {
		return nil, err
	}
	out := make([]domain.Member, 0, len(ms))
	for _, m := range ms {
		out = append(out, toDomain(m))
	}
	return out, nil
}

// SetMembershipStatus is the only write path for a member's status. It exists
// for manual deactivation independent of subscription state.
func (s *Service) SetMembershipStatus(ctx context.Context, id domain.MemberID, status domain.MembershipStatus) (domain.Member, error) {
	if !domain.ValidMembershipStatus(status) {
		return domain.Member{}, validationError("membershipStatus", "must be Active or Inactive")
	}
	m, err := s.repo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, memberrepo.ErrNotFound) {
			return domain.Member{}, &Error{Status: 404, Code: "MEMBER_NOT_FOUND", Message: "member not found"}
		}
		return domain.Member{}, err
	}
	m.MembershipStatus = status
	m.UpdatedAt = s.clk.Now()
	if err := s.repo.Update(ctx, m); err != nil {
		return domain.Member{}, err
	}
	return toDomain(m), nil
}

func validationError(field, reason string) *Error {
	return &Error{
		Status:  422,
		Code:    "VALIDATION_ERROR",
		Message: "invalid " + field,
		Details: map[string]any{field: reason},
	}
}

func applyNullableString(dst **string, o Optional[string]) {
	if !o.IsSpecified() {
		return
	}
	if o.IsNull() {
		*dst = nil
		return
	}
	v := o.Value()
	*dst = &v
}

func toDomain(m memberrepo.Member) domain.Member {
	return domain.Member{
		ID:               m.ID,
		FirstName:        m.FirstName,
		LastName:         m.LastName,
		Gender:           cloneStringPtr(m.Gender),
		DOB:              cloneDatePtr(m.DOB),
		Phone:            cloneStringPtr(m.Phone),
		Email:            cloneStringPtr(m.Email),
		Address:          cloneStringPtr(m.Address),
		JoinDate:         m.JoinDate,
		MembershipStatus: m.MembershipStatus,
		CreatedAt:        m.CreatedAt,
		UpdatedAt:        m.UpdatedAt,
	}
}

func cloneStringPtr(p *string) *string {
	if p == nil {
		return nil
	}
	v := *p
	return &v
}

func cloneDatePtr(p *time.Time) *time.Time {
	if p == nil {
		return nil
	}
	v := domain.DateOnly(*p)
	return &v
}
