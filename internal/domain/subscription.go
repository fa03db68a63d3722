package domain

import "time"

type SubscriptionStatus string

const (
	SubscriptionStatusActive    SubscriptionStatus = "Active"
	SubscriptionStatusExpired   SubscriptionStatus = "Expired"
	SubscriptionStatusCancelled SubscriptionStatus = "Cancelled"
)

// Subscription is a time-bounded contract binding one member to one plan.
// Active is the sole non-terminal state; Expired and Cancelled are terminal
// and a new subscription must be created instead of resurrecting one.
type Subscription struct {
	ID SubscriptionID

	MemberID MemberID
	PlanID   PlanID

	// StartDate and EndDate carry date-only semantics; the subscription
	// covers the half-open window [StartDate, EndDate).
	StartDate time.Time
	EndDate   time.Time

	Status SubscriptionStatus

	CreatedAt time.Time
	UpdatedAt time.Time
}

// Covers reports whether the subscription window contains day (date-only).
func (s Subscription) Covers(day time.Time) bool {
	d := DateOnly(day)
	return !d.Before(DateOnly(s.StartDate)) && d.Before(DateOnly(s.EndDate))
}
