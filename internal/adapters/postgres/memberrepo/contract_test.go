package memberrepo_test

import (
	"testing"

	"github.com/irondistrict/membership-api/internal/adapters/contracttest"
	"github.com/irondistrict/membership-api/internal/adapters/postgres/memberrepo"
	"github.com/irondistrict/membership-api/internal/adapters/postgres/testutil"
	memberrepoport "github.com/irondistrict/membership-api/internal/ports/out/memberrepo"
)

func TestContract(t *testing.T) {
	pool := testutil.OpenMigratedPool(t)
	contracttest.RunMemberRepo(t, func(t *testing.T) (memberrepoport.Repository, contracttest.CleanupFunc) {
		testutil.TruncateAll(t, pool)
		return memberrepo.NewRepo(pool), func() { testutil.TruncateAll(t, pool) }
	})
}
