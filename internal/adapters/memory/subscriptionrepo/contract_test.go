package subscriptionrepo_test

import (
	"testing"

	"github.com/irondistrict/membership-api/internal/adapters/contracttest"
	"github.com/irondistrict/membership-api/internal/adapters/memory/memberrepo"
	"github.com/irondistrict/membership-api/internal/adapters/memory/planrepo"
	"github.com/irondistrict/membership-api/internal/adapters/memory/subscriptionrepo"
	memberrepoport "github.com/irondistrict/membership-api/internal/ports/out/memberrepo"
	planrepoport "github.com/irondistrict/membership-api/internal/ports/out/planrepo"
	subscriptionrepoport "github.com/irondistrict/membership-api/internal/ports/out/subscriptionrepo"
)

func TestContract(t *testing.T) {
	t.Parallel()
	contracttest.RunSubscriptionRepo(t,
		func(t *testing.T) (memberrepoport.Repository, contracttest.CleanupFunc) {
			return memberrepo.NewRepo(), nil
		},
		func(t *testing.T) (planrepoport.Repository, contracttest.CleanupFunc) {
			return planrepo.NewRepo(), nil
		},
		func(t *testing.T) (subscriptionrepoport.Repository, contracttest.CleanupFunc) {
			return subscriptionrepo.NewRepo(), nil
		},
	)
}
