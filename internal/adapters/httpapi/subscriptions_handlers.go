package httpapi

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/irondistrict/membership-api/internal/app/subscriptions"
	"github.com/irondistrict/membership-api/internal/domain"
)

func subscriptionIDParam(r *http.Request) domain.SubscriptionID {
	return domain.SubscriptionID(chi.URLParam(r, "subscriptionID"))
}

func (s *Server) listSubscriptions(w http.ResponseWriter, r *http.Request) {
	subs, err := s.Subscriptions.ListSubscriptions(r.Context())
	if err != nil {
		s.writeServiceError(w, r, err)
		return
	}
	out := make([]subscriptionResponse, 0, len(subs))
	for _, sub := range subs {
		out = append(out, subscriptionToResponse(sub))
	}
	writeJSON(w, http.StatusOK, subscriptionsResponse{Subscriptions: out})
}

func (s *Server) createSubscription(w http.ResponseWriter, r *http.Request) {
	var req createSubscriptionRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	in := subscriptions.CreateSubscriptionInput{
		MemberID:  domain.MemberID(req.MemberID),
		PlanID:    domain.PlanID(req.PlanID),
		StartDate: req.StartDate.Time,
	}
	if req.EndDate != nil {
		in.EndDate = &req.EndDate.Time
	}
	sub, err := s.Subscriptions.CreateSubscription(r.Context(), in)
	if err != nil {
		s.writeServiceError(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, subscriptionToResponse(sub))
}

func (s *Server) getSubscription(w http.ResponseWriter, r *http.Request) {
	sub, err := s.Subscriptions.GetSubscription(r.Context(), subscriptionIDParam(r))
	if err != nil {
		s.writeServiceError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, subscriptionToResponse(sub))
}

func (s *Server) cancelSubscription(w http.ResponseWriter, r *http.Request) {
	sub, err := s.Subscriptions.CancelSubscription(r.Context(), subscriptionIDParam(r))
	if err != nil {
		s.writeServiceError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, subscriptionToResponse(sub))
}
