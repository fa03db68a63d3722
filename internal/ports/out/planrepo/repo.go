package planrepo

import (
	"context"
	"time"

	"github.com/irondistrict/membership-api/internal/domain"
)

// Plan is the persistence shape used by the plan repository.
type Plan struct {
	ID domain.PlanID

	Name           string
	DurationMonths int
	Fee            float64
	Description    *string

	CreatedAt time.Time
}

// Repository provides access to persisted membership plans.
// Plans are append-only: there is no update or delete.
//
// List returns plans in creation order.
type Repository interface {
	Create(ctx context.Context, p Plan) error
	GetByID(ctx context.Context, id domain.PlanID) (Plan, error)
	List(ctx context.Context) ([]Plan, error)
}
