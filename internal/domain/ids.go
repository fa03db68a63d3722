package domain

// MemberID is an internal identifier for a member record.
type MemberID string

// PlanID is an internal identifier for a membership plan record.
type PlanID string

// SubscriptionID is an internal identifier for a subscription record.
type SubscriptionID string

// TrainerID is an internal identifier for a trainer record.
type TrainerID string
