package subscriptionrepo

import (
	"context"
	"sync"
	"time"

	"github.com/irondistrict/membership-api/internal/domain"
	"github.com/irondistrict/membership-api/internal/ports/out/subscriptionrepo"
)

// Repo is an in-memory implementation of subscriptionrepo.Repository.
// It is safe for concurrent use; Create performs the active-overlap check and
// the insert inside one critical section, mirroring the transactional
// guarantee of the postgres adapter.
type Repo struct {
	mu sync.RWMutex

	byID  map[domain.SubscriptionID]subscriptionrepo.Subscription
	order []domain.SubscriptionID
}

func NewRepo() *Repo {
	return &Repo{
		byID: make(map[domain.SubscriptionID]subscriptionrepo.Subscription),
	}
}

func (r *Repo) Create(ctx context.Context, s subscriptionrepo.Subscription) error {
	_ = ctx
	if s.ID == "" {
		return subscriptionrepo.ErrAlreadyExists
	}
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.byID[s.ID]; ok {
		return subscriptionrepo.ErrAlreadyExists
	}
	for _, existing := range r.byID {
		if existing.MemberID != s.MemberID || existing.Status != domain.SubscriptionStatusActive {
			continue
		}
		if domain.WindowsOverlap(existing.StartDate, existing.EndDate, s.StartDate, s.EndDate) {
			return subscriptionrepo.ErrActiveOverlap
		}
	}

	r.byID[s.ID] = s
	r.order = append(r.order, s.ID)
	return nil
}

func (r *Repo) Save(ctx context.Context, s subscriptionrepo.Subscription) error {
	_ = ctx
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.byID[s.ID]; !ok {
		return subscriptionrepo.ErrNotFound
	}
	r.byID[s.ID] = s
	return nil
}

func (r *Repo) GetByID(ctx context.Context, id domain.SubscriptionID) (subscriptionrepo.Subscription, error) {
	_ = ctx
	r.mu.RLock()
	defer r.mu.RUnlock()
	s, ok := r.byID[id]
	if !ok {
		return subscriptionrepo.Subscription{}, subscriptionrepo.ErrNotFound
	}
	return s, nil
}

func (r *Repo) List(ctx context.Context) ([]subscriptionrepo.Subscription, error) {
	_ = ctx
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]subscriptionrepo.Subscription, 0, len(r.order))
	for _, id := range r.order {
		out = append(out, r.byID[id])
	}
	return out, nil
}

func (r *Repo) ListByMember(ctx context.Context, memberID domain.MemberID) ([]subscriptionrepo.Subscription, error) {
	_ = ctx
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]subscriptionrepo.Subscription, 0)
	for _, id := range r.order {
		s := r.byID[id]
		if s.MemberID == memberID {
			out = append(out, s)
		}
	}
	return out, nil
}

func (r *Repo) ExpireDue(ctx context.Context, asOf time.Time) (int64, error) {
	_ = ctx
	r.mu.Lock()
	defer r.mu.Unlock()

	day := domain.DateOnly(asOf)
	var n int64
	for id, s := range r.byID {
		if s.Status != domain.SubscriptionStatusActive {
			continue
		}
		if s.EndDate.After(day) {
			continue
		}
		s.Status = domain.SubscriptionStatusExpired
		s.UpdatedAt = asOf
		r.byID[id] = s
		n++
	}
	return n, nil
}

func (r *Repo) DeleteByMember(ctx context.Context, memberID domain.MemberID) (int64, error) {
	_ = ctx
	r.mu.Lock()
	defer r.mu.Unlock()

	var n int64
	kept := r.order[:0]
	for _, id := range r.order {
		if r.byID[id].MemberID == memberID {
			delete(r.byID, id)
			n++
			continue
		}
		kept = append(kept, id)
	}
	r.order = kept
	return n, nil
}
