package subscriptions

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"

	"github.com/irondistrict/membership-api/internal/domain"
	clockport "github.com/irondistrict/membership-api/internal/ports/out/clock"
	"github.com/irondistrict/membership-api/internal/ports/out/memberrepo"
	"github.com/irondistrict/membership-api/internal/ports/out/planrepo"
	"github.com/irondistrict/membership-api/internal/ports/out/subscriptionrepo"
)

// Service enforces the subscription lifecycle rules: foreign references must
// resolve, windows must be valid, and a member may hold at most one Active
// subscription over any point in time.
type Service struct {
	subs    subscriptionrepo.Repository
	members memberrepo.Repository
	plans   planrepo.Repository
	clk     clockport.Clock

	newSubscriptionID func() domain.SubscriptionID
}

type CreateSubscriptionInput struct {
	MemberID  domain.MemberID
	PlanID    domain.PlanID
	StartDate time.Time
	// EndDate is optional; when nil it derives from the plan duration.
	EndDate *time.Time
}

func NewService(subs subscriptionrepo.Repository, members memberrepo.Repository, plans planrepo.Repository, clk clockport.Clock) *Service {
	return &Service{
		subs:    subs,
		members: members,
		plans:   plans,
		clk:     clk,
		newSubscriptionID: func() domain.SubscriptionID {
			return domain.SubscriptionID(uuid.NewString())
		},
	}
}

func (s *Service) ListSubscriptions(ctx context.Context) ([]domain.Subscription, error) {
	subs, err := s.subs.List(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]domain.Subscription, 0, len(subs))
	for _, sub := range subs {
		out = append(out, toDomain(sub))
	}
	return out, nil
}

func (s *Service) GetSubscription(ctx context.Context, id domain.SubscriptionID) (domain.Subscription, error) {
	sub, err := s.subs.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, subscriptionrepo.ErrNotFound) {
			return domain.Subscription{}, &Error{Status: 404, Code: "SUBSCRIPTION_NOT_FOUND", Message: "subscription not found"}
		}
		return domain.Subscription{}, err
	}
	return toDomain(sub), nil
}

func (s *Service) ListMemberSubscriptions(ctx context.Context, memberID domain.MemberID) ([]domain.Subscription, error) {
	if _, err := s.members.GetByID(ctx, memberID); err != nil {
		if errors.Is(err, memberrepo.ErrNotFound) {
			return nil, &Error{Status: 404, Code: "MEMBER_NOT_FOUND", Message: "member not found"}
		}
		return nil, err
	}
	subs, err := s.subs.ListByMember(ctx, memberID)
	if err != nil {
		return nil, err
	}
	out := make([]domain.Subscription, 0, len(subs))
	for _, sub := range subs {
		out = append(out, toDomain(sub))
	}
	return out, nil
}

func (s *Service) CreateSubscription(ctx context.Context, in CreateSubscriptionInput) (domain.Subscription, error) {
	if _, err := s.members.GetByID(ctx, in.MemberID); err != nil {
		if errors.Is(err, memberrepo.ErrNotFound) {
			return domain.Subscription{}, &Error{Status: 404, Code: "MEMBER_NOT_FOUND", Message: "member not found"}
		}
		return domain.Subscription{}, err
	}
	plan, err := s.plans.GetByID(ctx, in.PlanID)
	if err != nil {
		if errors.Is(err, planrepo.ErrNotFound) {
			return domain.Subscription{}, &Error{Status: 404, Code: "PLAN_NOT_FOUND", Message: "plan not found"}
		}
		return domain.Subscription{}, err
	}

	startDate := domain.DateOnly(in.StartDate)
	var endDate time.Time
	if in.EndDate != nil {
		endDate = domain.DateOnly(*in.EndDate)
	} else {
		endDate = domain.AddMonths(startDate, plan.DurationMonths)
	}
	if !endDate.After(startDate) {
		return domain.Subscription{}, &Error{
			Status:  422,
			Code:    "VALIDATION_ERROR",
			Message: "invalid endDate",
			Details: map[string]any{"endDate": "must be after startDate"},
		}
	}

	now := s.clk.Now()
	sub := subscriptionrepo.Subscription{
		ID:        s.newSubscriptionID(),
		MemberID:  in.MemberID,
		PlanID:    in.PlanID,
		StartDate: startDate,
		EndDate:   endDate,
		Status:    domain.SubscriptionStatusActive,
		CreatedAt: now,
		UpdatedAt: now,
	}
	// The repository runs the overlap check and the insert atomically; two
	// concurrent creations for the same member cannot both pass it.
	if err := s.subs.Create(ctx, sub); err != nil {
		if errors.Is(err, subscriptionrepo.ErrActiveOverlap) {
			return domain.Subscription{}, &Error{
				Status:  409,
				Code:    "SUBSCRIPTION_OVERLAP",
				Message: "member already has an active subscription overlapping this window",
			}
		}
		return domain.Subscription{}, err
	}
	return toDomain(sub), nil
}

// CancelSubscription transitions Active to Cancelled. Expired and Cancelled
// are terminal: the only way forward is a new subscription.
func (s *Service) CancelSubscription(ctx context.Context, id domain.SubscriptionID) (domain.Subscription, error) {
	sub, err := s.subs.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, subscriptionrepo.ErrNotFound) {
			return domain.Subscription{}, &Error{Status: 404, Code: "SUBSCRIPTION_NOT_FOUND", Message: "subscription not found"}
		}
		return domain.Subscription{}, err
	}
	if sub.Status != domain.SubscriptionStatusActive {
		return domain.Subscription{}, &Error{
			Status:  409,
			Code:    "SUBSCRIPTION_NOT_ACTIVE",
			Message: "only active subscriptions can be cancelled",
			Details: map[string]any{"status": string(sub.Status)},
		}
	}
	sub.Status = domain.SubscriptionStatusCancelled
	sub.UpdatedAt = s.clk.Now()
	if err := s.subs.Save(ctx, sub); err != nil {
		return domain.Subscription{}, err
	}
	return toDomain(sub), nil
}

// ExpireDueSubscriptions flips Active subscriptions whose end date has passed
// to Expired and reports how many changed. It is invoked by the scheduled
// sweep; reads stay correct between sweeps via MemberEffectiveStatus.
func (s *Service) ExpireDueSubscriptions(ctx context.Context) (int64, error) {
	return s.subs.ExpireDue(ctx, s.clk.Now())
}

// MemberEffectiveStatus derives a member's effective status lazily at read
// time without mutating stored state: a member is effectively Active when
// their stored status is Active and some Active subscription covers today.
func (s *Service) MemberEffectiveStatus(ctx context.Context, memberID domain.MemberID) (domain.MembershipStatus, error) {
	m, err := s.members.GetByID(ctx, memberID)
	if err != nil {
		if errors.Is(err, memberrepo.ErrNotFound) {
			return "", &Error{Status: 404, Code: "MEMBER_NOT_FOUND", Message: "member not found"}
		}
		return "", err
	}
	if m.MembershipStatus != domain.MembershipStatusActive {
		return domain.MembershipStatusInactive, nil
	}
	subs, err := s.subs.ListByMember(ctx, memberID)
	if err != nil {
		return "", err
	}
	today := s.clk.Now()
	for _, sub := range subs {
		if sub.Status != domain.SubscriptionStatusActive {
			continue
		}
		if toDomain(sub).Covers(today) {
			return domain.MembershipStatusActive, nil
		}
	}
	return domain.MembershipStatusInactive, nil
}

func toDomain(s subscriptionrepo.Subscription) domain.Subscription {
	return domain.Subscription{
		ID:        s.ID,
		MemberID:  s.MemberID,
		PlanID:    s.PlanID,
		StartDate: s.StartDate,
		EndDate:   s.EndDate,
		Status:    s.Status,
		CreatedAt: s.CreatedAt,
		UpdatedAt: s.UpdatedAt,
	}
}
