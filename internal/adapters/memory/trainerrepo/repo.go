package trainerrepo

import (
	"context"
	"sync"

	"github.com/irondistrict/membership-api/internal/domain"
	"github.com/irondistrict/membership-api/internal/ports/out/trainerrepo"
)

// Repo is an in-memory implementation of trainerrepo.Repository.
// It is safe for concurrent use.
type Repo struct {
	mu sync.RWMutex

	byID  map[domain.TrainerID]trainerrepo.Trainer
	order []domain.TrainerID
}

func NewRepo() *Repo {
	return &Repo{
		byID: make(map[domain.TrainerID]trainerrepo.Trainer),
	}
}

func (r *Repo) Create(ctx context.Context, t trainerrepo.Trainer) error {
	_ = ctx
	if t.ID == "" {
		return trainerrepo.ErrAlreadyExists
	}
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.byID[t.ID]; ok {
		return trainerrepo.ErrAlreadyExists
	}
	r.byID[t.ID] = cloneTrainer(t)
	r.order = append(r.order, t.ID)
	return nil
}

func (r *Repo) List(ctx context.Context) ([]trainerrepo.Trainer, error) {
	_ = ctx
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]trainerrepo.Trainer, 0, len(r.order))
	for _, id := range r.order {
		out = append(out, cloneTrainer(r.byID[id]))
	}
	return out, nil
}

func cloneTrainer(t trainerrepo.Trainer) trainerrepo.Trainer {
	out := t
	out.Specialization = cloneStringPtr(t.Specialization)
	out.Phone = cloneStringPtr(t.Phone)
	out.Email = cloneStringPtr(t.Email)
	return out
}

func cloneStringPtr(p *string) *string {
	if p == nil {
		return nil
	}
	v := *p
	return &v
}
