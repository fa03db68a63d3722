package trainerrepo

import "errors"

var (
	// ErrAlreadyExists indicates a trainer already exists with the provided ID.
	ErrAlreadyExists = errors.New("trainer already exists")
)
