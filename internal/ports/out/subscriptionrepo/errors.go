package subscriptionrepo

import "errors"

var (
	// ErrNotFound indicates the requested subscription does not exist.
	ErrNotFound = errors.New("subscription not found")

	// ErrAlreadyExists indicates a subscription already exists with the provided ID.
	ErrAlreadyExists = errors.New("subscription already exists")

	// ErrActiveOverlap indicates the member already holds an Active
	// subscription whose window intersects the one being created.
	ErrActiveOverlap = errors.New("overlapping active subscription")
)
