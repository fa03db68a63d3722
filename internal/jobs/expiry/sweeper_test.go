package expiry

import (
	"context"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/google/uuid"

	memoryclock "github.com/irondistrict/membership-api/internal/adapters/memory/clock"
	memorymemberrepo "github.com/irondistrict/membership-api/internal/adapters/memory/memberrepo"
	memoryplanrepo "github.com/irondistrict/membership-api/internal/adapters/memory/planrepo"
	memorysubscriptionrepo "github.com/irondistrict/membership-api/internal/adapters/memory/subscriptionrepo"
	"github.com/irondistrict/membership-api/internal/app/subscriptions"
	"github.com/irondistrict/membership-api/internal/domain"
	"github.com/irondistrict/membership-api/internal/ports/out/subscriptionrepo"
)

func TestSweepExpiresDueSubscriptions(t *testing.T) {
	t.Parallel()
	ctx := context.Background()

	clk := memoryclock.NewManualClock(time.Date(2024, 2, 1, 3, 0, 0, 0, time.UTC))
	subRepo := memorysubscriptionrepo.NewRepo()
	svc := subscriptions.NewService(subRepo, memorymemberrepo.NewRepo(), memoryplanrepo.NewRepo(), clk)

	due := subscriptionrepo.Subscription{
		ID:        domain.SubscriptionID(uuid.NewString()),
		MemberID:  domain.MemberID(uuid.NewString()),
		PlanID:    domain.PlanID(uuid.NewString()),
		StartDate: time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC),
		EndDate:   time.Date(2024, 2, 1, 0, 0, 0, 0, time.UTC),
		Status:    domain.SubscriptionStatusActive,
	}
	if err := subRepo.Create(ctx, due); err != nil {
		t.Fatalf("seed subscription: %v", err)
	}

	s := NewSweeper(svc, slog.New(slog.NewTextHandler(io.Discard, nil)))
	s.runOnce()

	got, err := subRepo.GetByID(ctx, due.ID)
	if err != nil {
		t.Fatalf("GetByID: %v", err)
	}
	if got.Status != domain.SubscriptionStatusExpired {
		t.Fatalf("status=%s, want Expired", got.Status)
	}
}

func TestStartRejectsBadSchedule(t *testing.T) {
	t.Parallel()

	clk := memoryclock.NewManualClock(time.Now().UTC())
	svc := subscriptions.NewService(memorysubscriptionrepo.NewRepo(), memorymemberrepo.NewRepo(), memoryplanrepo.NewRepo(), clk)

	s := NewSweeper(svc, slog.New(slog.NewTextHandler(io.Discard, nil)))
	if err := s.Start("not a cron spec"); err == nil {
		t.Fatal("expected error for invalid schedule")
	}
}
