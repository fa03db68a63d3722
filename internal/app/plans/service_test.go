package plans_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"

	memoryclock "github.com/irondistrict/membership-api/internal/adapters/memory/clock"
	memoryplanrepo "github.com/irondistrict/membership-api/internal/adapters/memory/planrepo"
	"github.com/irondistrict/membership-api/internal/app/plans"
	"github.com/irondistrict/membership-api/internal/domain"
)

func newService() *plans.Service {
	clk := memoryclock.NewManualClock(time.Unix(1700000000, 0).UTC())
	return plans.NewService(memoryplanrepo.NewRepo(), clk)
}

func wantAppError(t *testing.T, err error, status int, code string) {
	t.Helper()
	var ae *plans.Error
	if !errors.As(err, &ae) {
		t.Fatalf("expected *plans.Error, got %v", err)
	}
	if ae.Status != status || ae.Code != code {
		t.Fatalf("got %d %s, want %d %s", ae.Status, ae.Code, status, code)
	}
}

func TestCreatePlanValidation(t *testing.T) {
	t.Parallel()
	svc := newService()
	ctx := context.Background()

	_, err := svc.CreatePlan(ctx, plans.CreatePlanInput{Name: "  ", DurationMonths: 1, Fee: 10})
	wantAppError(t, err, 422, "VALIDATION_ERROR")

	_, err = svc.CreatePlan(ctx, plans.CreatePlanInput{Name: "Monthly", DurationMonths: 0, Fee: 10})
	wantAppError(t, err, 422, "VALIDATION_ERROR")

	_, err = svc.CreatePlan(ctx, plans.CreatePlanInput{Name: "Monthly", DurationMonths: 1, Fee: -1})
	wantAppError(t, err, 422, "VALIDATION_ERROR")
}

func TestPlanCatalogRoundTrip(t *testing.T) {
	t.Parallel()
	svc := newService()
	ctx := context.Background()

	desc := "best value"
	created, err := svc.CreatePlan(ctx, plans.CreatePlanInput{
		Name:           " Annual ",
		DurationMonths: 12,
		Fee:            180,
		Description:    &desc,
	})
	if err != nil {
		t.Fatalf("CreatePlan: %v", err)
	}
	if created.Name != "Annual" {
		t.Fatalf("name=%q, want trimmed %q", created.Name, "Annual")
	}

	got, err := svc.GetPlan(ctx, created.ID)
	if err != nil {
		t.Fatalf("GetPlan: %v", err)
	}
	if got.DurationMonths != 12 || got.Fee != 180 {
		t.Fatalf("unexpected plan: %#v", got)
	}
	if got.Description == nil || *got.Description != "best value" {
		t.Fatalf("description=%#v", got.Description)
	}

	ps, err := svc.ListPlans(ctx)
	if err != nil {
		t.Fatalf("ListPlans: %v", err)
	}
	if len(ps) != 1 || ps[0].ID != created.ID {
		t.Fatalf("unexpected catalog: %#v", ps)
	}

	_, err = svc.GetPlan(ctx, domain.PlanID(uuid.NewString()))
	wantAppError(t, err, 404, "PLAN_NOT_FOUND")
}

// Fee of zero is a legal promotional plan.
func TestCreatePlanZeroFee(t *testing.T) {
	t.Parallel()
	svc := newService()

	got, err := svc.CreatePlan(context.Background(), plans.CreatePlanInput{
		Name:           "Trial",
		DurationMonths: 1,
		Fee:            0,
	})
	if err != nil {
		t.Fatalf("CreatePlan: %v", err)
	}
	if got.Fee != 0 {
		t.Fatalf("fee=%v, want 0", got.Fee)
	}
}
