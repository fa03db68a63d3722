package memberrepo

import (
	"context"
	"time"

	"github.com/irondistrict/membership-api/internal/domain"
)

// Member is the persistence shape used by the member repository.
// It is used as an internal record, not an HTTP DTO.
type Member struct {
	ID domain.MemberID

	FirstName string
	LastName  string

	// Optional attributes; nil means unset.
	Gender  *string
	DOB     *time.Time
	Phone   *string
	Email   *string
	Address *string

	// JoinDate is date-only and immutable after creation.
	JoinDate time.Time

	MembershipStatus domain.MembershipStatus

	CreatedAt time.Time
	UpdatedAt time.Time
}

// Repository provides access to persisted members.
//
// Result ordering expectations:
// - List returns members most recently joined first (JoinDate descending,
//   then most recently created first) to keep behavior deterministic.
// - SearchByName returns a stable order: last name, first name, creation order.
type Repository interface {
	Create(ctx context.Context, m Member) error
	Update(ctx context.Context, m Member) error

	// Delete removes the member and reports the number of affected rows
	// (0 when the member does not exist). Reference checks against
	// subscriptions are the application layer's responsibility.
	Delete(ctx context.Context, id domain.MemberID) (int64, error)

	GetByID(ctx context.Context, id domain.MemberID) (Member, error)

	List(ctx context.Context) ([]Member, error)

	// SearchByName matches a case-insensitive substring against the first or
	// last name. Query validation (e.g. minimum length) is enforced at the
	// application layer.
	SearchByName(ctx context.Context, query string, limit int) ([]Member, error)
}
