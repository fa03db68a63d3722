package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/irondistrict/membership-api/internal/adapters/httpapi"
	memmemberrepo "github.com/irondistrict/membership-api/internal/adapters/memory/memberrepo"
	memplanrepo "github.com/irondistrict/membership-api/internal/adapters/memory/planrepo"
	memsubscriptionrepo "github.com/irondistrict/membership-api/internal/adapters/memory/subscriptionrepo"
	memtrainerrepo "github.com/irondistrict/membership-api/internal/adapters/memory/trainerrepo"
	postgres "github.com/irondistrict/membership-api/internal/adapters/postgres"
	pgmemberrepo "github.com/irondistrict/membership-api/internal/adapters/postgres/memberrepo"
	pgplanrepo "github.com/irondistrict/membership-api/internal/adapters/postgres/planrepo"
	pgsubscriptionrepo "github.com/irondistrict/membership-api/internal/adapters/postgres/subscriptionrepo"
	pgtrainerrepo "github.com/irondistrict/membership-api/internal/adapters/postgres/trainerrepo"
	"github.com/irondistrict/membership-api/internal/app/members"
	"github.com/irondistrict/membership-api/internal/app/plans"
	"github.com/irondistrict/membership-api/internal/app/subscriptions"
	"github.com/irondistrict/membership-api/internal/app/trainers"
	"github.com/irondistrict/membership-api/internal/jobs/expiry"
	platformclock "github.com/irondistrict/membership-api/internal/platform/clock"
	"github.com/irondistrict/membership-api/internal/platform/config"
	memberrepoport "github.com/irondistrict/membership-api/internal/ports/out/memberrepo"
	planrepoport "github.com/irondistrict/membership-api/internal/ports/out/planrepo"
	subscriptionrepoport "github.com/irondistrict/membership-api/internal/ports/out/subscriptionrepo"
	trainerrepoport "github.com/irondistrict/membership-api/internal/ports/out/trainerrepo"
	"github.com/irondistrict/membership-api/pkg/logger"
)

func main() {
	log := logger.NewFromEnv()

	cfg, err := config.LoadFromEnv()
	if err != nil {
		log.Error("invalid configuration", "error", err)
		os.Exit(1)
	}

	clk := platformclock.NewSystemClock()

	var (
		memberRepo  memberrepoport.Repository
		planRepo    planrepoport.Repository
		subRepo     subscriptionrepoport.Repository
		trainerRepo trainerrepoport.Repository
		cleanup     func()
	)

	switch cfg.StorageBackend {
	case config.StoragePostgres:
		pool, err := postgres.NewPool(context.Background(), cfg.DatabaseURL, postgres.PoolOptions{})
		if err != nil {
			log.Error("postgres connection failed", "error", err)
			os.Exit(1)
		}
		cleanup = pool.Close
		if err := postgres.Migrate(context.Background(), pool); err != nil {
			log.Error("migration failed", "error", err)
			os.Exit(1)
		}

		memberRepo = pgmemberrepo.NewRepo(pool)
		planRepo = pgplanrepo.NewRepo(pool)
		subRepo = pgsubscriptionrepo.NewRepo(pool)
		trainerRepo = pgtrainerrepo.NewRepo(pool)
	default:
		memberRepo = memmemberrepo.NewRepo()
		planRepo = memplanrepo.NewRepo()
		subRepo = memsubscriptionrepo.NewRepo()
		trainerRepo = memtrainerrepo.NewRepo()
	}

	if cleanup != nil {
		defer cleanup()
	}

	memberSvc := members.NewService(memberRepo, subRepo, clk)
	planSvc := plans.NewService(planRepo, clk)
	subscriptionSvc := subscriptions.NewService(subRepo, memberRepo, planRepo, clk)
	trainerSvc := trainers.NewService(trainerRepo, clk)

	if cfg.ExpirySweepSchedule != "" {
		sweeper := expiry.NewSweeper(subscriptionSvc, log)
		if err := sweeper.Start(cfg.ExpirySweepSchedule); err != nil {
			log.Error("invalid expiry sweep schedule", "schedule", cfg.ExpirySweepSchedule, "error", err)
			os.Exit(1)
		}
		defer sweeper.Stop()
	}

	api := httpapi.NewServer(memberSvc, planSvc, subscriptionSvc, trainerSvc, log)
	handler := httpapi.NewRouter(api)

	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           handler,
		ReadHeaderTimeout: 5 * time.Second,
	}

	// Graceful shutdown
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	go func() {
		log.Info("api listening", "port", cfg.Port, "storage", cfg.StorageBackend)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Error("listen failed", "error", err)
			os.Exit(1)
		}
	}()

	<-ctx.Done()
	log.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	_ = srv.Shutdown(shutdownCtx)
}
