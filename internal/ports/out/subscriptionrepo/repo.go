package subscriptionrepo

import (
	"context"
	"time"

	"github.com/irondistrict/membership-api/internal/domain"
)

// Subscription is the persistence shape used by the subscription repository.
type Subscription struct {
	ID domain.SubscriptionID

	MemberID domain.MemberID
	PlanID   domain.PlanID

	// StartDate/EndDate are date-only; the covered window is [StartDate, EndDate).
	StartDate time.Time
	EndDate   time.Time

	Status domain.SubscriptionStatus

	CreatedAt time.Time
	UpdatedAt time.Time
}

// Repository provides access to persisted subscriptions.
//
// Result ordering expectations:
// - List and ListByMember return subscriptions in creation order.
type Repository interface {
	// Create inserts s. The check for an overlapping Active subscription of
	// the same member and the insert execute as a single atomic unit against
	// the store; two concurrent creations can never both pass the check.
	// Returns ErrActiveOverlap when the member already holds an Active
	// subscription whose window intersects [s.StartDate, s.EndDate).
	Create(ctx context.Context, s Subscription) error

	// Save persists mutable fields (status, UpdatedAt) of an existing subscription.
	Save(ctx context.Context, s Subscription) error

	GetByID(ctx context.Context, id domain.SubscriptionID) (Subscription, error)

	List(ctx context.Context) ([]Subscription, error)
	ListByMember(ctx context.Context, memberID domain.MemberID) ([]Subscription, error)

	// ExpireDue flips Active subscriptions with EndDate <= asOf to Expired
	// and reports how many rows changed.
	ExpireDue(ctx context.Context, asOf time.Time) (int64, error)

	// DeleteByMember removes all subscriptions of a member. Used when a
	// member with only terminal subscriptions is deleted.
	DeleteByMember(ctx context.Context, memberID domain.MemberID) (int64, error)
}
