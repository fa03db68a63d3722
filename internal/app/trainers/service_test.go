package trainers_test

import (
	"context"
	"errors"
	"testing"
	"time"

	memoryclock "github.com/irondistrict/membership-api/internal/adapters/memory/clock"
	memorytrainerrepo "github.com/irondistrict/membership-api/internal/adapters/memory/trainerrepo"
	"github.com/irondistrict/membership-api/internal/app/trainers"
)

func newService() *trainers.Service {
	clk := memoryclock.NewManualClock(time.Unix(1700000000, 0).UTC())
	return trainers.NewService(memorytrainerrepo.NewRepo(), clk)
}

func TestCreateTrainerValidation(t *testing.T) {
	t.Parallel()
	svc := newService()
	ctx := context.Background()

	_, err := svc.CreateTrainer(ctx, trainers.CreateTrainerInput{FirstName: " ", LastName: "Ortiz"})
	var ae *trainers.Error
	if !errors.As(err, &ae) || ae.Status != 422 || ae.Code != "VALIDATION_ERROR" {
		t.Fatalf("expected validation error, got %v", err)
	}
}

func TestTrainerDirectory(t *testing.T) {
	t.Parallel()
	svc := newService()
	ctx := context.Background()

	spec := "strength"
	first, err := svc.CreateTrainer(ctx, trainers.CreateTrainerInput{
		FirstName:      " Maya ",
		LastName:       "Ortiz",
		Specialization: &spec,
	})
	if err != nil {
		t.Fatalf("CreateTrainer: %v", err)
	}
	if first.FirstName != "Maya" {
		t.Fatalf("firstName=%q, want trimmed %q", first.FirstName, "Maya")
	}

	second, err := svc.CreateTrainer(ctx, trainers.CreateTrainerInput{FirstName: "Ken", LastName: "Adebayo"})
	if err != nil {
		t.Fatalf("CreateTrainer: %v", err)
	}

	got, err := svc.ListTrainers(ctx)
	if err != nil {
		t.Fatalf("ListTrainers: %v", err)
	}
	if len(got) != 2 || got[0].ID != first.ID || got[1].ID != second.ID {
		t.Fatalf("unexpected directory: %#v", got)
	}
	if got[0].Specialization == nil || *got[0].Specialization != "strength" {
		t.Fatalf("specialization=%#v", got[0].Specialization)
	}
}
