package httpapi

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5/middleware"

	"github.com/irondistrict/membership-api/internal/app/members"
	"github.com/irondistrict/membership-api/internal/app/plans"
	"github.com/irondistrict/membership-api/internal/app/subscriptions"
	"github.com/irondistrict/membership-api/internal/app/trainers"
)

type errorBody struct {
	Code      string         `json:"code"`
	Message   string         `json:"message"`
	Details   map[string]any `json:"details,omitempty"`
	RequestID string         `json:"requestId,omitempty"`
}

type errorResponse struct {
	Error errorBody `json:"error"`
}

func writeError(w http.ResponseWriter, r *http.Request, status int, code, message string, details map[string]any) {
	body := errorResponse{Error: errorBody{
		Code:    code,
		Message: message,
		Details: details,
	}}
	if rid := middleware.GetReqID(r.Context()); rid != "" {
		body.Error.RequestID = rid
	}
	writeJSON(w, status, body)
}

// writeServiceError maps application-layer errors onto HTTP responses.
// Anything the services did not classify is treated as a storage failure.
func (s *Server) writeServiceError(w http.ResponseWriter, r *http.Request, err error) {
	var (
		me *members.Error
		pe *plans.Error
		se *subscriptions.Error
		te *trainers.Error
	)
	switch {
	case errors.As(err, &me):
		writeError(w, r, me.Status, me.Code, me.Message, me.Details)
	case errors.As(err, &pe):
		writeError(w, r, pe.Status, pe.Code, pe.Message, pe.Details)
	case errors.As(err, &se):
		writeError(w, r, se.Status, se.Code, se.Message, se.Details)
	case errors.As(err, &te):
		writeError(w, r, te.Status, te.Code, te.Message, te.Details)
	default:
		s.log.Error("request failed", "method", r.Method, "path", r.URL.Path, "error", err)
		writeError(w, r, http.StatusServiceUnavailable, "STORAGE_UNAVAILABLE", "storage unavailable", nil)
	}
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

// decodeJSON reads the request body into dst and reports malformed input as a
// validation error. Returns false when a response has already been written.
func decodeJSON(w http.ResponseWriter, r *http.Request, dst any) bool {
	dec := json.NewDecoder(r.Body)
	if err := dec.Decode(dst); err != nil {
		writeError(w, r, http.StatusUnprocessableEntity, "VALIDATION_ERROR", "malformed request body", nil)
		return false
	}
	return true
}
