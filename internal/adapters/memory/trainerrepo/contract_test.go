package trainerrepo_test

import (
	"testing"

	"github.com/irondistrict/membership-api/internal/adapters/contracttest"
	"github.com/irondistrict/membership-api/internal/adapters/memory/trainerrepo"
	trainerrepoport "github.com/irondistrict/membership-api/internal/ports/out/trainerrepo"
)

func TestContract(t *testing.T) {
	t.Parallel()
	contracttest.RunTrainerRepo(t, func(t *testing.T) (trainerrepoport.Repository, contracttest.CleanupFunc) {
		return trainerrepo.NewRepo(), nil
	})
}
