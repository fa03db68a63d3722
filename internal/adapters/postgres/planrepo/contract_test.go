package planrepo_test

import (
	"testing"

	"github.com/irondistrict/membership-api/internal/adapters/contracttest"
	"github.com/irondistrict/membership-api/internal/adapters/postgres/planrepo"
	"github.com/irondistrict/membership-api/internal/adapters/postgres/testutil"
	planrepoport "github.com/irondistrict/membership-api/internal/ports/out/planrepo"
)

func TestContract(t *testing.T) {
	pool := testutil.OpenMigratedPool(t)
	contracttest.RunPlanRepo(t, func(t *testing.T) (planrepoport.Repository, contracttest.CleanupFunc) {
		testutil.TruncateAll(t, pool)
		return planrepo.NewRepo(pool), func() { testutil.TruncateAll(t, pool) }
	})
}
