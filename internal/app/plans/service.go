package plans

import (
	"context"
	"errors"

	"github.com/google/uuid"

	"github.com/irondistrict/membership-api/internal/domain"
	clockport "github.com/irondistrict/membership-api/internal/ports/out/clock"
	"github.com/irondistrict/membership-api/internal/ports/out/planrepo"
)

// Service manages the plan catalog. Plans are append-only reference data:
// there is no update or delete, so subscriptions created against a plan keep
// its historical fee and duration.
type Service struct {
	repo planrepo.Repository
	clk  clockport.Clock

	newPlanID func() domain.PlanID
}

type CreatePlanInput struct {
	Name           string
	DurationMonths int
	Fee            float64
	Description    *string
}

func NewService(repo planrepo.Repository, clk clockport.Clock) *Service {
	return &Service{
		repo: repo,
		clk:  clk,
		newPlanID: func() domain.PlanID {
			return domain.PlanID(uuid.NewString())
		},
	}
}

func (s *Service) ListPlans(ctx context.Context) ([]domain.MembershipPlan, error) {
	ps, err := s.repo.List(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]domain.MembershipPlan, 0, len(ps))
	for _, p := range ps {
		out = append(out, toDomain(p))
	}
	return out, nil
}

func (s *Service) GetPlan(ctx context.Context, id domain.PlanID) (domain.MembershipPlan, error) {
	p, err := s.repo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, planrepo.ErrNotFound) {
			return domain.MembershipPlan{}, &Error{Status: 404, Code: "PLAN_NOT_FOUND", Message: "plan not found"}
		}
		return domain.MembershipPlan{}, err
	}
	return toDomain(p), nil
}

func (s *Service) CreatePlan(ctx context.Context, in CreatePlanInput) (domain.MembershipPlan, error) {
	name := domain.NormalizeHumanName(in.Name)
	if name == "" {
		return domain.MembershipPlan{}, &Error{
			Status:  422,
			Code:    "VALIDATION_ERROR",
			Message: "invalid name",
			Details: map[string]any{"name": "must be non-empty"},
		}
	}
	if in.DurationMonths < 1 {
		return domain.MembershipPlan{}, &Error{
			Status:  422,
			Code:    "VALIDATION_ERROR",
			Message: "invalid durationMonths",
			Details: map[string]any{"durationMonths": "must be >= 1"},
		}
	}
	if in.Fee < 0 {
		return domain.MembershipPlan{}, &Error{
			Status:  422,
			Code:    "VALIDATION_ERROR",
			Message: "invalid fee",
			Details: map[string]any{"fee": "must be non-negative"},
		}
	}

	p := planrepo.Plan{
		ID:             s.newPlanID(),
		Name:           name,
		DurationMonths: in.DurationMonths,
		Fee:            in.Fee,
		Description:    cloneStringPtr(in.Description),
		CreatedAt:      s.clk.Now(),
	}
	if err := s.repo.Create(ctx, p); err != nil {
		return domain.MembershipPlan{}, err
	}
	return toDomain(p), nil
}

func toDomain(p planrepo.Plan) domain.MembershipPlan {
	return domain.MembershipPlan{
		ID:             p.ID,
		Name:           p.Name,
		DurationMonths: p.DurationMonths,
		Fee:            p.Fee,
		Description:    cloneStringPtr(p.Description),
	}
}

func cloneStringPtr(p *string) *string {
	if p == nil {
		return nil
	}
	v := *p
	return &v
}
