package members

import "time"

// Optional is a tri-state field used to distinguish:
// - unspecified (omitted)
// - specified as null
// - specified with a value
type Optional[T any] struct {
	specified bool
	isNull    bool
	value     T
}

func Unspecified[T any]() Optional[T] { return Optional[T]{} }
func Null[T any]() Optional[T]        { return Optional[T]{specified: true, isNull: true} }
func Some[T any](v T) Optional[T]     { return Optional[T]{specified: true, value: v} }

func (o Optional[T]) IsSpecified() bool { return o.specified }
func (o Optional[T]) IsNull() bool      { return o.specified && o.isNull }
func (o Optional[T]) Value() T          { return o.value }

type CreateMemberInput struct {
	FirstName string
	LastName  string

	Gender  *string
	DOB     *time.Time
	Phone   *string
	Email   *string
	Address *string
}

// UpdateMemberInput patches name and contact attributes only.
// JoinDate and MembershipStatus are not updatable through this input:
// status changes go through SetMembershipStatus, and JoinDate never changes.
type UpdateMemberInput struct {
	FirstName Optional[string] // cannot be null
	LastName  Optional[string] // cannot be null
	Gender    Optional[string]
	DOB       Optional[time.Time]
	Phone     Optional[string]
	Email     Optional[string]
	Address   Optional[string]
}
