package httpapi

import (
	"time"

	"github.com/oapi-codegen/nullable"
	openapi_types "github.com/oapi-codegen/runtime/types"

	"github.com/irondistrict/membership-api/internal/app/members"
	"github.com/irondistrict/membership-api/internal/domain"
)

// Wire DTOs. Dates that carry date-only semantics (joinDate, dob, subscription
// windows) use the date type so they render as YYYY-MM-DD; audit timestamps
// stay RFC 3339.

type memberResponse struct {
	ID               string              `json:"id"`
	FirstName        string              `json:"firstName"`
	LastName         string              `json:"lastName"`
	Gender           *string             `json:"gender,omitempty"`
	DOB              *openapi_types.Date `json:"dob,omitempty"`
	Phone            *string             `json:"phone,omitempty"`
	Email            *string             `json:"email,omitempty"`
	Address          *string             `json:"address,omitempty"`
	JoinDate         openapi_types.Date  `json:"joinDate"`
	MembershipStatus string              `json:"membershipStatus"`
	CreatedAt        time.Time           `json:"createdAt"`
	UpdatedAt        time.Time           `json:"updatedAt"`
}

type membersResponse struct {
	Members []memberResponse `json:"members"`
}

type createMemberRequest struct {
	FirstName string              `json:"firstName"`
	LastName  string              `json:"lastName"`
	Gender    *string             `json:"gender"`
	DOB       *openapi_types.Date `json:"dob"`
	Phone     *string             `json:"phone"`
	Email     *string             `json:"email"`
	Address   *string             `json:"address"`
}

// updateMemberRequest is a tri-state patch: an omitted field is untouched, an
// explicit null clears it, a value replaces it.
type updateMemberRequest struct {
	FirstName nullable.Nullable[string]             `json:"firstName,omitempty"`
	LastName  nullable.Nullable[string]             `json:"lastName,omitempty"`
	Gender    nullable.Nullable[string]             `json:"gender,omitempty"`
	DOB       nullable.Nullable[openapi_types.Date] `json:"dob,omitempty"`
	Phone     nullable.Nullable[string]             `json:"phone,omitempty"`
	Email     nullable.Nullable[string]             `json:"email,omitempty"`
	Address   nullable.Nullable[string]             `json:"address,omitempty"`
}

type setMembershipStatusRequest struct {
	MembershipStatus string `json:"membershipStatus"`
}

type effectiveStatusResponse struct {
	MemberID        string `json:"memberId"`
	EffectiveStatus string `json:"effectiveStatus"`
}

type planResponse struct {
	ID             string  `json:"id"`
	Name           string  `json:"name"`
	DurationMonths int     `json:"durationMonths"`
	Fee            float64 `json:"fee"`
	Description    *string `json:"description,omitempty"`
}

type plansResponse struct {
	Plans []planResponse `json:"plans"`
}

type createPlanRequest struct {
	Name           string  `json:"name"`
	DurationMonths int     `json:"durationMonths"`
	Fee            float64 `json:"fee"`
	Description    *string `json:"description"`
}

type subscriptionResponse struct {
	ID        string             `json:"id"`
	MemberID  string             `json:"memberId"`
	PlanID    string             `json:"planId"`
	StartDate openapi_types.Date `json:"startDate"`
	EndDate   openapi_types.Date `json:"endDate"`
	Status    string             `json:"status"`
	CreatedAt time.Time          `json:"createdAt"`
	UpdatedAt time.Time          `json:"updatedAt"`
}

type subscriptionsResponse struct {
	Subscriptions []subscriptionResponse `json:"subscriptions"`
}

type createSubscriptionRequest struct {
	MemberID  string              `json:"memberId"`
	PlanID    string              `json:"planId"`
	StartDate openapi_types.Date  `json:"startDate"`
	EndDate   *openapi_types.Date `json:"endDate"`
}

type trainerResponse struct {
	ID             string    `json:"id"`
	FirstName      string    `json:"firstName"`
	LastName       string    `json:"lastName"`
	Specialization *string   `json:"specialization,omitempty"`
	Phone          *string   `json:"phone,omitempty"`
	Email          *string   `json:"email,omitempty"`
	CreatedAt      time.Time `json:"createdAt"`
}

type trainersResponse struct {
	Trainers []trainerResponse `json:"trainers"`
}

type createTrainerRequest struct {
	FirstName      string  `json:"firstName"`
	LastName       string  `json:"lastName"`
	Specialization *string `json:"specialization"`
	Phone          *string `json:"phone"`
	Email          *string `json:"email"`
}

// --- converters ---

func memberToResponse(m domain.Member) memberResponse {
	out := memberResponse{
		ID:               string(m.ID),
		FirstName:        m.FirstName,
		LastName:         m.LastName,
		Gender:           m.Gender,
		Phone:            m.Phone,
		Email:            m.Email,
		Address:          m.Address,
		JoinDate:         openapi_types.Date{Time: m.JoinDate},
		MembershipStatus: string(m.MembershipStatus),
		CreatedAt:        m.CreatedAt,
		UpdatedAt:        m.UpdatedAt,
	}
	if m.DOB != nil {
		out.DOB = &openapi_types.Date{Time: *m.DOB}
	}
	return out
}

func planToResponse(p domain.MembershipPlan) planResponse {
	return planResponse{
		ID:             string(p.ID),
		Name:           p.Name,
		DurationMonths: p.DurationMonths,
		Fee:            p.Fee,
		Description:    p.Description,
	}
}

func subscriptionToResponse(s domain.Subscription) subscriptionResponse {
	return subscriptionResponse{
		ID:        string(s.ID),
		MemberID:  string(s.MemberID),
		PlanID:    string(s.PlanID),
		StartDate: openapi_types.Date{Time: s.StartDate},
		EndDate:   openapi_types.Date{Time: s.EndDate},
		Status:    string(s.Status),
		CreatedAt: s.CreatedAt,
		UpdatedAt: s.UpdatedAt,
	}
}

func trainerToResponse(t domain.Trainer) trainerResponse {
	return trainerResponse{
		ID:             string(t.ID),
		FirstName:      t.FirstName,
		LastName:       t.LastName,
		Specialization: t.Specialization,
		Phone:          t.Phone,
		Email:          t.Email,
		CreatedAt:      t.CreatedAt,
	}
}

func optionalString(n nullable.Nullable[string]) members.Optional[string] {
	if !n.IsSpecified() {
		return members.Unspecified[string]()
	}
	if n.IsNull() {
		return members.Null[string]()
	}
	v, err := n.Get()
	if err != nil {
		return members.Unspecified[string]()
	}
	return members.Some(v)
}

func optionalDate(n nullable.Nullable[openapi_types.Date]) members.Optional[time.Time] {
	if !n.IsSpecified() {
		return members.Unspecified[time.Time]()
	}
	if n.IsNull() {
		return members.Null[time.Time]()
	}
	v, err := n.Get()
	if err != nil {
		return members.Unspecified[time.Time]()
	}
	return members.Some(v.Time)
}
