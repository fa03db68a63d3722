package members_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"

	memoryclock "github.com/irondistrict/membership-api/internal/adapters/memory/clock"
	memorymemberrepo "github.com/irondistrict/membership-api/internal/adapters/memory/memberrepo"
	memorysubscriptionrepo "github.com/irondistrict/membership-api/internal/adapters/memory/subscriptionrepo"
	"github.com/irondistrict/membership-api/internal/app/members"
	"github.com/irondistrict/membership-api/internal/domain"
	"github.com/irondistrict/membership-api/internal/ports/out/subscriptionrepo"
)

func day(s string) time.Time {
	d, err := time.Parse("2006-01-02", s)
	if err != nil {
		panic(err)
	}
	return d.UTC()
}

type fixture struct {
	svc  *members.Service
	subs *memorysubscriptionrepo.Repo
	clk  *memoryclock.ManualClock
}

func newFixture(t *testing.T) fixture {
	t.Helper()
	clk := memoryclock.NewManualClock(day("2024-01-01"))
	subs := memorysubscriptionrepo.NewRepo()
	svc := members.NewService(memorymemberrepo.NewRepo(), subs, clk)
	return fixture{svc: svc, subs: subs, clk: clk}
}

func wantAppError(t *testing.T, err error, status int, code string) *members.Error {
	t.Helper()
	var ae *members.Error
	if !errors.As(err, &ae) {
		t.Fatalf("expected *members.Error, got %v", err)
	}
	if ae.Status != status || ae.Code != code {
		t.Fatalf("got %d %s, want %d %s", ae.Status, ae.Code, status, code)
	}
	return ae
}

func TestCreateMemberDefaults(t *testing.T) {
	t.Parallel()
	f := newFixture(t)

	dob := day("1990-06-15")
	got, err := f.svc.CreateMember(context.Background(), members.CreateMemberInput{
		FirstName: "  Jane ",
		LastName:  "Doe",
		DOB:       &dob,
	})
	if err != nil {
		t.Fatalf("CreateMember: %v", err)
	}
	if got.FirstName != "Jane" {
		t.Fatalf("firstName=%q, want normalized %q", got.FirstName, "Jane")
	}
	if got.MembershipStatus != domain.MembershipStatusActive {
		t.Fatalf("status=%s, want Active", got.MembershipStatus)
	}
	if !got.JoinDate.Equal(day("2024-01-01")) {
		t.Fatalf("joinDate=%v, want clock date", got.JoinDate)
	}

	// Round trip.
	again, err := f.svc.GetMember(context.Background(), got.ID)
	if err != nil {
		t.Fatalf("GetMember: %v", err)
	}
	if again.FirstName != got.FirstName || !again.JoinDate.Equal(got.JoinDate) {
		t.Fatalf("round trip mismatch: %#v vs %#v", again, got)
	}
}

func TestCreateMemberValidation(t *testing.T) {
	t.Parallel()
	f := newFixture(t)
	ctx := context.Background()

	_, err := f.svc.CreateMember(ctx, members.CreateMemberInput{FirstName: "   ", LastName: "Doe"})
	wantAppError(t, err, 422, "VALIDATION_ERROR")

	_, err = f.svc.CreateMember(ctx, members.CreateMemberInput{FirstName: "Jane", LastName: ""})
	wantAppError(t, err, 422, "VALIDATION_ERROR")

	future := day("2030-01-01")
	_, err = f.svc.CreateMember(ctx, members.CreateMemberInput{FirstName: "Jane", LastName: "Doe", DOB: &future})
	wantAppError(t, err, 422, "VALIDATION_ERROR")
}

func TestUpdateMemberPatchSemantics(t *testing.T) {
	t.Parallel()
	f := newFixture(t)
	ctx := context.Background()

	gender := "female"
	phone := "555-0100"
	created, err := f.svc.CreateMember(ctx, members.CreateMemberInput{
		FirstName: "Jane",
		LastName:  "Doe",
		Gender:    &gender,
		Phone:     &phone,
	})
	if err != nil {
		t.Fatalf("CreateMember: %v", err)
	}

	f.clk.Set(day("2024-03-01"))
	got, err := f.svc.UpdateMember(ctx, created.ID, members.UpdateMemberInput{
		LastName: members.Some("Smith"),
		Gender:   members.Null[string](),
		Email:    members.Some("jane@example.com"),
	})
	if err != nil {
		t.Fatalf("UpdateMember: %v", err)
	}
	if got.FirstName != "Jane" || got.LastName != "Smith" {
		t.Fatalf("names=%q %q", got.FirstName, got.LastName)
	}
	if got.Gender != nil {
		t.Fatalf("gender should be cleared, got %q", *got.Gender)
	}
	if got.Phone == nil || *got.Phone != "555-0100" {
		t.Fatalf("unspecified phone must survive, got %#v", got.Phone)
	}
	if got.Email == nil || *got.Email != "jane@example.com" {
		t.Fatalf("email=%#v", got.Email)
	}
	// JoinDate never moves, even though the clock did.
	if !got.JoinDate.Equal(created.JoinDate) {
		t.Fatalf("joinDate changed: %v -> %v", created.JoinDate, got.JoinDate)
	}

	_, err = f.svc.UpdateMember(ctx, created.ID, members.UpdateMemberInput{
		FirstName: members.Null[string](),
	})
	wantAppError(t, err, 422, "VALIDATION_ERROR")

	_, err = f.svc.UpdateMember(ctx, domain.MemberID(uuid.NewString()), members.UpdateMemberInput{})
	wantAppError(t, err, 404, "MEMBER_NOT_FOUND")
}

func TestSetMembershipStatus(t *testing.T) {
	t.Parallel()
	f := newFixture(t)
	ctx := context.Background()

	created, err := f.svc.CreateMember(ctx, members.CreateMemberInput{FirstName: "Jane", LastName: "Doe"})
	if err != nil {
		t.Fatalf("CreateMember: %v", err)
	}

	_, err = f.svc.SetMembershipStatus(ctx, created.ID, domain.MembershipStatus("Suspended"))
	wantAppError(t, err, 422, "VALIDATION_ERROR")

	got, err := f.svc.SetMembershipStatus(ctx, created.ID, domain.MembershipStatusInactive)
	if err != nil {
		t.Fatalf("SetMembershipStatus: %v", err)
	}
	if got.MembershipStatus != domain.MembershipStatusInactive {
		t.Fatalf("status=%s, want Inactive", got.MembershipStatus)
	}
}

func TestDeleteMemberReferenceChecks(t *testing.T) {
	t.Parallel()
	f := newFixture(t)
	ctx := context.Background()

	created, err := f.svc.CreateMember(ctx, members.CreateMemberInput{FirstName: "Jane", LastName: "Doe"})
	if err != nil {
		t.Fatalf("CreateMember: %v", err)
	}

	sub := subscriptionrepo.Subscription{
		ID:        domain.SubscriptionID(uuid.NewString()),
		MemberID:  created.ID,
		PlanID:    domain.PlanID(uuid.NewString()),
		StartDate: day("2024-01-01"),
		EndDate:   day("2024-02-01"),
		Status:    domain.SubscriptionStatusActive,
	}
	if err := f.subs.Create(ctx, sub); err != nil {
		t.Fatalf("seed subscription: %v", err)
	}

	_, err = f.svc.DeleteMember(ctx, created.ID)
	wantAppError(t, err, 409, "MEMBER_HAS_SUBSCRIPTIONS")

	// Expired history blocks too.
	sub.Status = domain.SubscriptionStatusExpired
	if err := f.subs.Save(ctx, sub); err != nil {
		t.Fatalf("save subscription: %v", err)
	}
	_, err = f.svc.DeleteMember(ctx, created.ID)
	wantAppError(t, err, 409, "MEMBER_HAS_SUBSCRIPTIONS")

	// Cancelled subscriptions do not block; they go with the member.
	sub.Status = domain.SubscriptionStatusCancelled
	if err := f.subs.Save(ctx, sub); err != nil {
		t.Fatalf("save subscription: %v", err)
	}
	n, err := f.svc.DeleteMember(ctx, created.ID)
	if err != nil {
		t.Fatalf("DeleteMember: %v", err)
	}
	if n != 1 {
		t.Fatalf("n=%d, want 1", n)
	}
	left, err := f.subs.ListByMember(ctx, created.ID)
	if err != nil {
		t.Fatalf("ListByMember: %v", err)
	}
	if len(left) != 0 {
		t.Fatalf("expected cascaded subscription delete, %d left", len(left))
	}

	// Deleting again is a no-op.
	n, err = f.svc.DeleteMember(ctx, created.ID)
	if err != nil {
		t.Fatalf("DeleteMember twice: %v", err)
	}
	if n != 0 {
		t.Fatalf("n=%d, want 0", n)
	}
}

func TestSearchMembers(t *testing.T) {
	t.Parallel()
	f := newFixture(t)
	ctx := context.Background()

	_, err := f.svc.SearchMembers(ctx, "   ")
	wantAppError(t, err, 422, "VALIDATION_ERROR")

	if _, err := f.svc.CreateMember(ctx, members.CreateMemberInput{FirstName: "Jane", LastName: "Doe"}); err != nil {
		t.Fatalf("CreateMember: %v", err)
	}
	if _, err := f.svc.CreateMember(ctx, members.CreateMemberInput{FirstName: "John", LastName: "Smith"}); err != nil {
		t.Fatalf("CreateMember: %v", err)
	}

	got, err := f.svc.SearchMembers(ctx, "doe")
	if err != nil {
		t.Fatalf("SearchMembers: %v", err)
	}
	if len(got) != 1 || got[0].LastName != "Doe" {
		t.Fatalf("unexpected search result: %#v", got)
	}
}

func TestListMembersOrdering(t *testing.T) {
	t.Parallel()
	f := newFixture(t)
	ctx := context.Background()

	if _, err := f.svc.CreateMember(ctx, members.CreateMemberInput{FirstName: "Jane", LastName: "Doe"}); err != nil {
		t.Fatalf("CreateMember: %v", err)
	}
	f.clk.Set(day("2024-05-01"))
	if _, err := f.svc.CreateMember(ctx, members.CreateMemberInput{FirstName: "John", LastName: "Smith"}); err != nil {
		t.Fatalf("CreateMember: %v", err)
	}

	got, err := f.svc.ListMembers(ctx)
	if err != nil {
		t.Fatalf("ListMembers: %v", err)
	}
	if len(got) != 2 || got[0].LastName != "Smith" || got[1].LastName != "Doe" {
		t.Fatalf("expected most recently joined first: %#v", got)
	}
}
