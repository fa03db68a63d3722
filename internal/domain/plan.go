package domain

// MembershipPlan is a named offering with a duration and a fee.
// Plans are append-only reference data: once a subscription may reference a
// plan, its terms stay fixed so historical subscriptions keep their pricing.
type MembershipPlan struct {
	ID PlanID

	Name           string
	DurationMonths int
	Fee            float64
	Description    *string
}
