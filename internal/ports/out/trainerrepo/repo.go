package trainerrepo

import (
	"context"
	"time"

	"github.com/irondistrict/membership-api/internal/domain"
)

// Trainer is the persistence shape used by the trainer repository.
type Trainer struct {
	ID domain.TrainerID

	FirstName string
	LastName  string

	Specialization *string
	Phone          *string
	Email          *string

	CreatedAt time.Time
}

// Repository provides access to persisted trainers.
//
// List returns trainers in creation order.
type Repository interface {
	Create(ctx context.Context, t Trainer) error
	List(ctx context.Context) ([]Trainer, error)
}
