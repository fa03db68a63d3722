package httpapi

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
)

// NewRouter constructs the API HTTP router.
//
// This is intentionally a thin adapter: it wires routes/middleware and
// delegates to the application services through Server.
func NewRouter(s *Server) http.Handler {
	r := chi.NewRouter()

	// Baseline production-safe middleware (minimal but useful).
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Recoverer)

	// Health endpoint is deliberately out-of-spec (used for infra checks).
	r.Get("/healthz", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	})

	r.Route("/members", func(r chi.Router) {
		r.Get("/", s.listMembers)
		r.Post("/", s.createMember)
		r.Get("/search", s.searchMembers)
		r.Route("/{memberID}", func(r chi.Router) {
			r.Get("/", s.getMember)
			r.Patch("/", s.updateMember)
			r.Delete("/", s.deleteMember)
			r.Put("/status", s.setMembershipStatus)
			r.Get("/status", s.memberEffectiveStatus)
			r.Get("/subscriptions", s.listMemberSubscriptions)
		})
	})

	r.Route("/plans", func(r chi.Router) {
		r.Get("/", s.listPlans)
		r.Post("/", s.createPlan)
		r.Get("/{planID}", s.getPlan)
	})

	r.Route("/subscriptions", func(r chi.Router) {
		r.Get("/", s.listSubscriptions)
		r.Post("/", s.createSubscription)
		r.Get("/{subscriptionID}", s.getSubscription)
		r.Post("/{subscriptionID}/cancel", s.cancelSubscription)
	})

	r.Route("/trainers", func(r chi.Router) {
		r.Get("/", s.listTrainers)
		r.Post("/", s.createTrainer)
	})

	return r
}
