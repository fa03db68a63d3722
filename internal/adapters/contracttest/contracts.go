package contracttest

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"

	"github.com/irondistrict/membership-api/internal/domain"
	memberrepoport "github.com/irondistrict/membership-api/internal/ports/out/memberrepo"
	planrepoport "github.com/irondistrict/membership-api/internal/ports/out/planrepo"
	subscriptionrepoport "github.com/irondistrict/membership-api/internal/ports/out/subscriptionrepo"
	trainerrepoport "github.com/irondistrict/membership-api/internal/ports/out/trainerrepo"
)

type CleanupFunc = func()

type MemberRepoFactory func(t *testing.T) (memberrepoport.Repository, CleanupFunc)
type PlanRepoFactory func(t *testing.T) (planrepoport.Repository, CleanupFunc)
type SubscriptionRepoFactory func(t *testing.T) (subscriptionrepoport.Repository, CleanupFunc)
type TrainerRepoFactory func(t *testing.T) (trainerrepoport.Repository, CleanupFunc)

func day(s string) time.Time {
	d, err := time.Parse("2006-01-02", s)
	if err != nil {
		panic(err)
	}
	return d.UTC()
}

func seedMember(t *testing.T, repo memberrepoport.Repository, firstName, lastName string, joinDate time.Time) domain.MemberID {
	t.Helper()
	id := domain.MemberID(uuid.NewString())
	now := time.Unix(1000, 0).UTC()
	if err := repo.Create(context.Background(), memberrepoport.Member{
		ID:               id,
		FirstName:        firstName,
		LastName:         lastName,
		JoinDate:         joinDate,
		MembershipStatus: domain.MembershipStatusActive,
		CreatedAt:        now,
		UpdatedAt:        now,
	}); err != nil {
		t.Fatalf("seed member %s %s: %v", firstName, lastName, err)
	}
	return id
}

func RunMemberRepo(t *testing.T, newRepo MemberRepoFactory) {
	t.Helper()
	ctx := context.Background()

	repo, cleanup := newRepo(t)
	if cleanup != nil {
		t.Cleanup(cleanup)
	}

	aID := seedMember(t, repo, "Alice", "Johnson", day("2024-01-10"))
	got, err := repo.GetByID(ctx, aID)
	if err != nil {
		t.Fatalf("GetByID: %v", err)
	}
	if got.FirstName != "Alice" || got.MembershipStatus != domain.MembershipStatusActive {
		t.Fatalf("unexpected member: %#v", got)
	}
	if !got.JoinDate.Equal(day("2024-01-10")) {
		t.Fatalf("joinDate=%v", got.JoinDate)
	}

	// Duplicate identity.
	if err := repo.Create(ctx, memberrepoport.Member{
		ID:               aID,
		FirstName:        "Alice",
		LastName:         "Johnson",
		JoinDate:         day("2024-01-10"),
		MembershipStatus: domain.MembershipStatusActive,
		CreatedAt:        time.Unix(1000, 0).UTC(),
		UpdatedAt:        time.Unix(1000, 0).UTC(),
	}); err == nil {
		t.Fatalf("expected duplicate id error")
	}

	// List: most recently joined first.
	bID := seedMember(t, repo, "Bob", "Smith", day("2024-03-01"))
	ms, err := repo.List(ctx)
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if len(ms) != 2 || ms[0].ID != bID || ms[1].ID != aID {
		t.Fatalf("unexpected list ordering: %#v", ms)
	}

	// Update never touches join_date.
	got.Phone = strPtr("555-0100")
	got.JoinDate = day("2030-01-01") // must be ignored by the adapter's update path
	got.UpdatedAt = time.Unix(2000, 0).UTC()
	if err := repo.Update(ctx, got); err != nil {
		t.Fatalf("Update: %v", err)
	}

	// Search: case-insensitive substring on first or last name.
	res, err := repo.SearchByName(ctx, "joHn", 10)
	if err != nil {
		t.Fatalf("SearchByName: %v", err)
	}
	if len(res) != 1 || res[0].ID != aID {
		t.Fatalf("unexpected search result: %#v", res)
	}
	if res[0].Phone == nil || *res[0].Phone != "555-0100" {
		t.Fatalf("expected updated phone, got %#v", res[0].Phone)
	}

	// Update of a missing member.
	missing := got
	missing.ID = domain.MemberID(uuid.NewString())
	if err := repo.Update(ctx, missing); err == nil {
		t.Fatalf("expected not-found on update")
	}

	// Delete reports affected rows.
	if n, err := repo.Delete(ctx, bID); err != nil || n != 1 {
		t.Fatalf("Delete: n=%d err=%v", n, err)
	}
	if n, err := repo.Delete(ctx, bID); err != nil || n != 0 {
		t.Fatalf("Delete twice: n=%d err=%v", n, err)
	}
}

func RunPlanRepo(t *testing.T, newRepo PlanRepoFactory) {
	t.Helper()
	ctx := context.Background()

	repo, cleanup := newRepo(t)
	if cleanup != nil {
		t.Cleanup(cleanup)
	}

	now := time.Unix(1000, 0).UTC()
	monthlyID := domain.PlanID(uuid.NewString())
	if err := repo.Create(ctx, planrepoport.Plan{
		ID:             monthlyID,
		Name:           "Monthly",
		DurationMonths: 1,
		Fee:            20,
		CreatedAt:      now,
	}); err != nil {
		t.Fatalf("Create monthly: %v", err)
	}
	annualID := domain.PlanID(uuid.NewString())
	desc := "best value"
	if err := repo.Create(ctx, planrepoport.Plan{
		ID:             annualID,
		Name:           "Annual",
		DurationMonths: 12,
		Fee:            180,
		Description:    &desc,
		CreatedAt:      now,
	}); err != nil {
		t.Fatalf("Create annual: %v", err)
	}

	got, err := repo.GetByID(ctx, annualID)
	if err != nil {
		t.Fatalf("GetByID: %v", err)
	}
	if got.DurationMonths != 12 || got.Description == nil || *got.Description != "best value" {
		t.Fatalf("unexpected plan: %#v", got)
	}

	if _, err := repo.GetByID(ctx, domain.PlanID(uuid.NewString())); err == nil {
		t.Fatalf("expected not-found")
	}

	// Creation order.
	ps, err := repo.List(ctx)
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if len(ps) != 2 || ps[0].ID != monthlyID || ps[1].ID != annualID {
		t.Fatalf("unexpected list ordering: %#v", ps)
	}
}

// RunSubscriptionRepo exercises behaviors that require coordinated seeding of
// members and plans (the postgres adapter enforces foreign keys).
func RunSubscriptionRepo(t *testing.T, newMemberRepo MemberRepoFactory, newPlanRepo PlanRepoFactory, newSubRepo SubscriptionRepoFactory) {
	t.Helper()
	ctx := context.Background()

	members, mCleanup := newMemberRepo(t)
	if mCleanup != nil {
		t.Cleanup(mCleanup)
	}
	plans, pCleanup := newPlanRepo(t)
	if pCleanup != nil {
		t.Cleanup(pCleanup)
	}
	subs, sCleanup := newSubRepo(t)
	if sCleanup != nil {
		t.Cleanup(sCleanup)
	}

	now := time.Unix(1000, 0).UTC()
	memberID := seedMember(t, members, "Jane", "Doe", day("2024-01-01"))
	planID := domain.PlanID(uuid.NewString())
	if err := plans.Create(ctx, planrepoport.Plan{
		ID:             planID,
		Name:           "Monthly",
		DurationMonths: 1,
		Fee:            20,
		CreatedAt:      now,
	}); err != nil {
		t.Fatalf("seed plan: %v", err)
	}

	first := subscriptionrepoport.Subscription{
		ID:        domain.SubscriptionID(uuid.NewString()),
		MemberID:  memberID,
		PlanID:    planID,
		StartDate: day("2024-01-01"),
		EndDate:   day("2024-02-01"),
		Status:    domain.SubscriptionStatusActive,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := subs.Create(ctx, first); err != nil {
		t.Fatalf("Create first: %v", err)
	}

	// Overlapping active window is rejected atomically by the adapter.
	overlapping := first
	overlapping.ID = domain.SubscriptionID(uuid.NewString())
	overlapping.StartDate = day("2024-01-15")
	overlapping.EndDate = day("2024-02-15")
	if err := subs.Create(ctx, overlapping); !errors.Is(err, subscriptionrepoport.ErrActiveOverlap) {
		t.Fatalf("expected ErrActiveOverlap, got %v", err)
	}

	// Adjacent window [2024-02-01, ...) is allowed.
	adjacent := first
	adjacent.ID = domain.SubscriptionID(uuid.NewString())
	adjacent.StartDate = day("2024-02-01")
	adjacent.EndDate = day("2024-03-01")
	if err := subs.Create(ctx, adjacent); err != nil {
		t.Fatalf("Create adjacent: %v", err)
	}

	got, err := subs.GetByID(ctx, first.ID)
	if err != nil {
		t.Fatalf("GetByID: %v", err)
	}
	if !got.StartDate.Equal(day("2024-01-01")) || !got.EndDate.Equal(day("2024-02-01")) {
		t.Fatalf("unexpected window: %#v", got)
	}

	ls, err := subs.List(ctx)
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if len(ls) != 2 || ls[0].ID != first.ID || ls[1].ID != adjacent.ID {
		t.Fatalf("unexpected list ordering: %#v", ls)
	}

	// ExpireDue flips only active rows whose end date has passed.
	n, err := subs.ExpireDue(ctx, day("2024-02-01"))
	if err != nil {
		t.Fatalf("ExpireDue: %v", err)
	}
	if n != 1 {
		t.Fatalf("ExpireDue n=%d, want 1", n)
	}
	got, err = subs.GetByID(ctx, first.ID)
	if err != nil {
		t.Fatalf("GetByID after expire: %v", err)
	}
	if got.Status != domain.SubscriptionStatusExpired {
		t.Fatalf("status=%s, want Expired", got.Status)
	}

	// Once the first subscription is terminal, its window is free again.
	replacement := first
	replacement.ID = domain.SubscriptionID(uuid.NewString())
	if err := subs.Create(ctx, replacement); err != nil {
		t.Fatalf("Create over expired window: %v", err)
	}

	// Save persists a status change.
	replacement.Status = domain.SubscriptionStatusCancelled
	replacement.UpdatedAt = now.Add(time.Hour)
	if err := subs.Save(ctx, replacement); err != nil {
		t.Fatalf("Save: %v", err)
	}
	got, err = subs.GetByID(ctx, replacement.ID)
	if err != nil {
		t.Fatalf("GetByID after save: %v", err)
	}
	if got.Status != domain.SubscriptionStatusCancelled {
		t.Fatalf("status=%s, want Cancelled", got.Status)
	}

	byMember, err := subs.ListByMember(ctx, memberID)
	if err != nil {
		t.Fatalf("ListByMember: %v", err)
	}
	if len(byMember) != 3 {
		t.Fatalf("ListByMember len=%d, want 3", len(byMember))
	}

	if n, err := subs.DeleteByMember(ctx, memberID); err != nil || n != 3 {
		t.Fatalf("DeleteByMember: n=%d err=%v", n, err)
	}
}

func RunTrainerRepo(t *testing.T, newRepo TrainerRepoFactory) {
	t.Helper()
	ctx := context.Background()

	repo, cleanup := newRepo(t)
	if cleanup != nil {
		t.Cleanup(cleanup)
	}

	now := time.Unix(1000, 0).UTC()
	spec := "strength"
	firstID := domain.TrainerID(uuid.NewString())
	if err := repo.Create(ctx, trainerrepoport.Trainer{
		ID:             firstID,
		FirstName:      "Maya",
		LastName:       "Ortiz",
		Specialization: &spec,
		CreatedAt:      now,
	}); err != nil {
		t.Fatalf("Create: %v", err)
	}
	secondID := domain.TrainerID(uuid.NewString())
	if err := repo.Create(ctx, trainerrepoport.Trainer{
		ID:        secondID,
		FirstName: "Ken",
		LastName:  "Adebayo",
		CreatedAt: now,
	}); err != nil {
		t.Fatalf("Create second: %v", err)
	}

	ts, err := repo.List(ctx)
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if len(ts) != 2 || ts[0].ID != firstID || ts[1].ID != secondID {
		t.Fatalf("unexpected list ordering: %#v", ts)
	}
	if ts[0].Specialization == nil || *ts[0].Specialization != "strength" {
		t.Fatalf("unexpected specialization: %#v", ts[0].Specialization)
	}
}

func strPtr(s string) *string { return &s }
