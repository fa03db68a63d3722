package domain

import "time"

// Trainer is a staff record. Trainers have no lifecycle beyond existence.
type Trainer struct {
	ID TrainerID

	FirstName string
	LastName  string

	Specialization *string
	Phone          *string
	Email          *string

	CreatedAt time.Time
}
