package httpapi

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/irondistrict/membership-api/internal/app/members"
	"github.com/irondistrict/membership-api/internal/domain"
)

func memberIDParam(r *http.Request) domain.MemberID {
	return domain.MemberID(chi.URLParam(r, "memberID"))
}

func (s *Server) listMembers(w http.ResponseWriter, r *http.Request) {
	ms, err := s.Members.ListMembers(r.Context())
	if err != nil {
		s.writeServiceError(w, r, err)
		return
	}
	out := make([]memberResponse, 0, len(ms))
	for _, m := range ms {
		out = append(out, memberToResponse(m))
	}
	writeJSON(w, http.StatusOK, membersResponse{Members: out})
}

func (s *Server) createMember(w http.ResponseWriter, r *http.Request) {
	var req createMemberRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	in := members.CreateMemberInput{
		FirstName: req.FirstName,
		LastName:  req.LastName,
		Gender:    req.Gender,
		Phone:     req.Phone,
		Email:     req.Email,
		Address:   req.Address,
	}
	if req.DOB != nil {
		in.DOB = &req.DOB.Time
	}
	m, err := s.Members.CreateMember(r.Context(), in)
	if err != nil {
		s.writeServiceError(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, memberToResponse(m))
}

func (s *Server) getMember(w http.ResponseWriter, r *http.Request) {
	m, err := s.Members.GetMember(r.Context(), memberIDParam(r))
	if err != nil {
		s.writeServiceError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, memberToResponse(m))
}

func (s *Server) updateMember(w http.ResponseWriter, r *http.Request) {
	var req updateMemberRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	m, err := s.Members.UpdateMember(r.Context(), memberIDParam(r), members.UpdateMemberInput{
		FirstName: optionalString(req.FirstName),
		LastName:  optionalString(req.LastName),
		Gender:    optionalString(req.Gender),
		DOB:       optionalDate(req.DOB),
		Phone:     optionalString(req.Phone),
		Email:     optionalString(req.Email),
		Address:   optionalString(req.Address),
	})
	if err != nil {
		s.writeServiceError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, memberToResponse(m))
}

func (s *Server) deleteMember(w http.ResponseWriter, r *http.Request) {
	n, err := s.Members.DeleteMember(r.Context(), memberIDParam(r))
	if err != nil {
		s.writeServiceError(w, r, err)
		return
	}
	if n == 0 {
		writeError(w, r, http.StatusNotFound, "MEMBER_NOT_FOUND", "member not found", nil)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) searchMembers(w http.ResponseWriter, r *http.Request) {
	ms, err := s.Members.SearchMembers(r.Context(), r.URL.Query().Get("q"))
	if err != nil {
		s.writeServiceError(w, r, err)
		return
	}
	out := make([]memberResponse, 0, len(ms))
	for _, m := range ms {
		out = append(out, memberToResponse(m))
	}
	writeJSON(w, http.StatusOK, membersResponse{Members: out})
}

func (s *Server) setMembershipStatus(w http.ResponseWriter, r *http.Request) {
	var req setMembershipStatusRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	m, err := s.Members.SetMembershipStatus(r.Context(), memberIDParam(r), domain.MembershipStatus(req.MembershipStatus))
	if err != nil {
		s.writeServiceError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, memberToResponse(m))
}

func (s *Server) memberEffectiveStatus(w http.ResponseWriter, r *http.Request) {
	id := memberIDParam(r)
	status, err := s.Subscriptions.MemberEffectiveStatus(r.Context(), id)
	if err != nil {
		s.writeServiceError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, effectiveStatusResponse{
		MemberID:        string(id),
		EffectiveStatus: string(status),
	})
}

func (s *Server) listMemberSubscriptions(w http.ResponseWriter, r *http.Request) {
	subs, err := s.Subscriptions.ListMemberSubscriptions(r.Context(), memberIDParam(r))
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
