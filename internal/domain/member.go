package domain

import "time"

type MembershipStatus string

const (
	MembershipStatusActive   MembershipStatus = "Active"
	MembershipStatusInactive MembershipStatus = "Inactive"
)

// ValidMembershipStatus reports whether s is one of the two allowed member states.
func ValidMembershipStatus(s MembershipStatus) bool {
	return s == MembershipStatusActive || s == MembershipStatusInactive
}

// Member is the domain representation of a gym member.
type Member struct {
	ID MemberID

	FirstName string
	LastName  string

	// Gender is free-form and optional; nil means unset.
	Gender *string
	// DOB carries date-only semantics; nil means unset.
	DOB     *time.Time
	Phone   *string
	Email   *string
	Address *string

	// JoinDate is set once at creation (date-only) and never changes.
	JoinDate time.Time

	MembershipStatus MembershipStatus

	CreatedAt time.Time
	UpdatedAt time.Time
}
