package httpapi

import (
	"net/http"

	"github.com/irondistrict/membership-api/internal/app/trainers"
)

func (s *Server) listTrainers(w http.ResponseWriter, r *http.Request) {
	ts, err := s.Trainers.ListTrainers(r.Context())
	if err != nil {
		s.writeServiceError(w, r, err)
		return
	}
	out := make([]trainerResponse, 0, len(ts))
	for _, t := range ts {
		out = append(out, trainerToResponse(t))
	}
	writeJSON(w, http.StatusOK, trainersResponse{Trainers: out})
}

func (s *Server) createTrainer(w http.ResponseWriter, r *http.Request) {
	var req createTrainerRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	tr, err := s.Trainers.CreateTrainer(r.Context(), trainers.CreateTrainerInput{
		FirstName:      req.FirstName,
		LastName:       req.LastName,
		Specialization: req.Specialization,
		Phone:          req.Phone,
		Email:          req.Email,
	})
	if err != nil {
		s.writeServiceError(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, trainerToResponse(tr))
}
