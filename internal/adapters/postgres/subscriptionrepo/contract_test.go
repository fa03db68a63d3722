package subscriptionrepo_test

import (
	"testing"

	"github.com/irondistrict/membership-api/internal/adapters/contracttest"
	"github.com/irondistrict/membership-api/internal/adapters/postgres/memberrepo"
	"github.com/irondistrict/membership-api/internal/adapters/postgres/planrepo"
	"github.com/irondistrict/membership-api/internal/adapters/postgres/subscriptionrepo"
	"github.com/irondistrict/membership-api/internal/adapters/postgres/testutil"
	memberrepoport "github.com/irondistrict/membership-api/internal/ports/out/memberrepo"
	planrepoport "github.com/irondistrict/membership-api/internal/ports/out/planrepo"
	subscriptionrepoport "github.com/irondistrict/membership-api/internal/ports/out/subscriptionrepo"
)

func TestContract(t *testing.T) {
	pool := testutil.OpenMigratedPool(t)
	testutil.TruncateAll(t, pool)
	t.Cleanup(func() { testutil.TruncateAll(t, pool) })

	contracttest.RunSubscriptionRepo(t,
		func(t *testing.T) (memberrepoport.Repository, contracttest.CleanupFunc) {
			return memberrepo.NewRepo(pool), nil
		},
		func(t *testing.T) (planrepoport.Repository, contracttest.CleanupFunc) {
			return planrepo.NewRepo(pool), nil
		},
		func(t *testing.T) (subscriptionrepoport.Repository, contracttest.CleanupFunc) {
			return subscriptionrepo.NewRepo(pool), nil
		},
	)
}
