package planrepo

import (
	"context"
	"sync"

	"github.com/irondistrict/membership-api/internal/domain"
	"github.com/irondistrict/membership-api/internal/ports/out/planrepo"
)

// Repo is an in-memory implementation of planrepo.Repository.
// It is safe for concurrent use.
type Repo struct {
	mu sync.RWMutex

	byID  map[domain.PlanID]planrepo.Plan
	order []domain.PlanID
}

func NewRepo() *Repo {
	return &Repo{
		byID: make(map[domain.PlanID]planrepo.Plan),
	}
}

func (r *Repo) Create(ctx context.Context, p planrepo.Plan) error {
	_ = ctx
	if p.ID == "" {
		return planrepo.ErrAlreadyExists
	}
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.byID[p.ID]; ok {
		return planrepo.ErrAlreadyExists
	}
	r.byID[p.ID] = clonePlan(p)
	r.order = append(r.order, p.ID)
	return nil
}

func (r *Repo) GetByID(ctx context.Context, id domain.PlanID) (planrepo.Plan, error) {
	_ = ctx
	r.mu.RLock()
	defer r.mu.RUnlock()
	p, ok := r.byID[id]
	if !ok {
		return planrepo.Plan{}, planrepo.ErrNotFound
	}
	return clonePlan(p), nil
}

func (r *Repo) List(ctx context.Context) ([]planrepo.Plan, error) {
	_ = ctx
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]planrepo.Plan, 0, len(r.order))
	for _, id := range r.order {
		out = append(out, clonePlan(r.byID[id]))
	}
	return out, nil
}

func clonePlan(p planrepo.Plan) planrepo.Plan {
	out := p
	if p.Description != nil {
		v := *p.Description
		out.Description = &v
	}
	return out
}
