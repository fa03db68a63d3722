package planrepo

import "errors"

var (
	// ErrNotFound indicates the requested plan does not exist.
	ErrNotFound = errors.New("plan not found")

	// ErrAlreadyExists indicates a plan already exists with the provided ID.
	ErrAlreadyExists = errors.New("plan already exists")
)
