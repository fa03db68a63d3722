package trainers

import (
	"context"

	"github.com/google/uuid"

	"github.com/irondistrict/membership-api/internal/domain"
	clockport "github.com/irondistrict/membership-api/internal/ports/out/clock"
	"github.com/irondistrict/membership-api/internal/ports/out/trainerrepo"
)

// Service is the trainer directory: trainers exist, get listed, and that is
// the whole lifecycle.
type Service struct {
	repo trainerrepo.Repository
	clk  clockport.Clock

	newTrainerID func() domain.TrainerID
}

type CreateTrainerInput struct {
	FirstName string
	LastName  string

	Specialization *string
	Phone          *string
	Email          *string
}

func NewService(repo trainerrepo.Repository, clk clockport.Clock) *Service {
	return &Service{
		repo: repo,
		clk:  clk,
		newTrainerID: func() domain.TrainerID {
			return domain.TrainerID(uuid.NewString())
		},
	}
}

func (s *Service) ListTrainers(ctx context.Context) ([]domain.Trainer, error) {
	ts, err := s.repo.List(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]domain.Trainer, 0, len(ts))
	for _, t := range ts {
		out = append(out, toDomain(t))
	}
	return out, nil
}

func (s *Service) CreateTrainer(ctx context.Context, in CreateTrainerInput) (domain.Trainer, error) {
	firstName := domain.NormalizeHumanName(in.FirstName)
	if firstName == "" {
		return domain.Trainer{}, &Error{
			Status:  422,
			Code:    "VALIDATION_ERROR",
			Message: "invalid firstName",
			Details: map[string]any{"firstName": "must be non-empty"},
		}
	}
	lastName := domain.NormalizeHumanName(in.LastName)
	if lastName == "" {
		return domain.Trainer{}, &Error{
			Status:  422,
			Code:    "VALIDATION_ERROR",
			Message: "invalid lastName",
			Details: map[string]any{"lastName": "must be non-empty"},
		}
	}

	t := trainerrepo.Trainer{
		ID:             s.newTrainerID(),
		FirstName:      firstName,
		LastName:       lastName,
		Specialization: cloneStringPtr(in.Specialization),
		Phone:          cloneStringPtr(in.Phone),
		Email:          cloneStringPtr(in.Email),
		CreatedAt:      s.clk.Now(),
	}
	if err := s.repo.Create(ctx, t); err != nil {
		return domain.Trainer{}, err
	}
	return toDomain(t), nil
}

func toDomain(t trainerrepo.Trainer) domain.Trainer {
	return domain.Trainer{
		ID:             t.ID,
		FirstName:      t.FirstName,
		LastName:       t.LastName,
		Specialization: cloneStringPtr(t.Specialization),
		Phone:          cloneStringPtr(t.Phone),
		Email:          cloneStringPtr(t.Email),
		CreatedAt:      t.CreatedAt,
	}
}

func cloneStringPtr(p *string) *string {
	if p == nil {
		return nil
	}
	v := *p
	return &v
}
