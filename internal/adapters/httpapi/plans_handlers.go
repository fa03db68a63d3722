package httpapi

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/irondistrict/membership-api/internal/app/plans"
	"github.com/irondistrict/membership-api/internal/domain"
)

func (s *Server) listPlans(w http.ResponseWriter, r *http.Request) {
	ps, err := s.Plans.ListPlans(r.Context())
	if err != nil {
		s.writeServiceError(w, r, err)
		return
	}
	out := make([]planResponse, 0, len(ps))
	for _, p := range ps {
		out = append(out, planToResponse(p))
	}
	writeJSON(w, http.StatusOK, plansResponse{Plans: out})
}

func (s *Server) createPlan(w http.ResponseWriter, r *http.Request) {
	var req createPlanRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	p, err := s.Plans.CreatePlan(r.Context(), plans.CreatePlanInput{
		Name:           req.Name,
		DurationMonths: req.DurationMonths,
		Fee:            req.Fee,
		Description:    req.Description,
	})
	if err != nil {
		s.writeServiceError(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, planToResponse(p))
}

func (s *Server) getPlan(w http.ResponseWriter, r *http.Request) {
	p, err := s.Plans.GetPlan(r.Context(), domain.PlanID(chi.URLParam(r, "planID")))
	if err != nil {
		s.writeServiceError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, planToResponse(p))
}
