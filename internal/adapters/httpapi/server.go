package httpapi

import (
	"log/slog"

	"github.com/irondistrict/membership-api/internal/app/members"
	"github.com/irondistrict/membership-api/internal/app/plans"
	"github.com/irondistrict/membership-api/internal/app/subscriptions"
	"github.com/irondistrict/membership-api/internal/app/trainers"
)

// Server is the HTTP adapter. It decodes requests, delegates to the
// application services, and maps their errors onto status codes; no business
// rules live here.
type Server struct {
	Members       *members.Service
	Plans         *plans.Service
	Subscriptions *subscriptions.Service
	Trainers      *trainers.Service

	log *slog.Logger
}

func NewServer(
	membersSvc *members.Service,
	plansSvc *plans.Service,
	subscriptionsSvc *subscriptions.Service,
	trainersSvc *trainers.Service,
	log *slog.Logger,
) *Server {
	if log == nil {
		log = slog.Default()
	}
	return &Server{
		Members:       membersSvc,
		Plans:         plansSvc,
		Subscriptions: subscriptionsSvc,
		Trainers:      trainersSvc,
		log:           log,
	}
}
