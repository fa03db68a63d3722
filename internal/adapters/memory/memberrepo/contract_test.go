package memberrepo_test

import (
	"testing"

	"github.com/irondistrict/membership-api/internal/adapters/contracttest"
	"github.com/irondistrict/membership-api/internal/adapters/memory/memberrepo"
	memberrepoport "github.com/irondistrict/membership-api/internal/ports/out/memberrepo"
)

func TestContract(t *testing.T) {
	t.Parallel()
	contracttest.RunMemberRepo(t, func(t *testing.T) (memberrepoport.Repository, contracttest.CleanupFunc) {
		return memberrepo.NewRepo(), nil
	})
}
