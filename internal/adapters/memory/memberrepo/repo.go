package memberrepo

import (
	"context"
	"sort"
	"strings"
	"sync"

	"github.com/irondistrict/membership-api/internal/domain"
	"github.com/irondistrict/membership-api/internal/ports/out/memberrepo"
)

// Repo is an in-memory implementation of memberrepo.Repository.
// It is safe for concurrent use.
type Repo struct {
	mu sync.RWMutex

	byID map[domain.MemberID]memberrepo.Member
	// seq records insertion order; it stands in for the serial identity a
	// relational store would assign.
	seq     map[domain.MemberID]int
	nextSeq int
}

func NewRepo() *Repo {
	return &Repo{
		byID: make(map[domain.MemberID]memberrepo.Member),
		seq:  make(map[domain.MemberID]int),
	}
}

func (r *Repo) Create(ctx context.Context, m memberrepo.Member) error {
	_ = ctx
	if m.ID == "" {
		return memberrepo.ErrAlreadyExists // treat empty ID as invalid; app layer validates input
	}
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.byID[m.ID]; ok {
		return memberrepo.ErrAlreadyExists
	}
	r.byID[m.ID] = cloneMember(m)
	r.seq[m.ID] = r.nextSeq
	r.nextSeq++
	return nil
}

func (r *Repo) Update(ctx context.Context, m memberrepo.Member) error {
	_ = ctx
	r.mu.Lock()
	defer r.mu.Unlock()

	cur, ok := r.byID[m.ID]
	if !ok {
		return memberrepo.ErrNotFound
	}
	next := cloneMember(m)
	// JoinDate and CreatedAt are fixed at creation.
	next.JoinDate = cur.JoinDate
	next.CreatedAt = cur.CreatedAt
	r.byID[m.ID] = next
	return nil
}

func (r *Repo) Delete(ctx context.Context, id domain.MemberID) (int64, error) {
	_ = ctx
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.byID[id]; !ok {
		return 0, nil
	}
	delete(r.byID, id)
	delete(r.seq, id)
	return 1, nil
}

func (r *Repo) GetByID(ctx context.Context, id domain.MemberID) (memberrepo.Member, error) {
	_ = ctx
	r.mu.RLock()
	defer r.mu.RUnlock()
	m, ok := r.byID[id]
	if !ok {
		return memberrepo.Member{}, memberrepo.ErrNotFound
	}
	return cloneMember(m), nil
}

func (r *Repo) List(ctx context.Context) ([]memberrepo.Member, error) {
	_ = ctx
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]memberrepo.Member, 0, len(r.byID))
	for _, m := range r.byID {
		out = append(out, cloneMember(m))
	}
	r.sortByJoinDateDesc(out)
	return out, nil
}

func (r *Repo) SearchByName(ctx context.Context, query string, limit int) ([]memberrepo.Member, error) {
	_ = ctx

	q := strings.ToLower(strings.TrimSpace(query))
	if q == "" {
		return []memberrepo.Member{}, nil
	}

	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]memberrepo.Member, 0)
	for _, m := range r.byID {
		if strings.Contains(strings.ToLower(m.FirstName), q) || strings.Contains(strings.ToLower(m.LastName), q) {
			out = append(out, cloneMember(m))
		}
	}
	r.sortByName(out)
	if limit > 0 && len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

// sortByJoinDateDesc orders most recently joined first, breaking join-date
// ties by insertion order (newest first). Callers hold at least a read lock.
func (r *Repo) sortByJoinDateDesc(ms []memberrepo.Member) {
	sort.Slice(ms, func(i, j int) bool {
		ji, jj := ms[i].JoinDate, ms[j].JoinDate
		if !ji.Equal(jj) {
			return ji.After(jj)
		}
		return r.seq[ms[i].ID] > r.seq[ms[j].ID]
	})
}

func (r *Repo) sortByName(ms []memberrepo.Member) {
	sort.Slice(ms, func(i, j int) bool {
		li := strings.ToLower(ms[i].LastName)
		lj := strings.ToLower(ms[j].LastName)
		if li != lj {
			return li < lj
		}
		fi := strings.ToLower(ms[i].FirstName)
		fj := strings.ToLower(ms[j].FirstName)
		if fi != fj {
			return fi < fj
		}
		return r.seq[ms[i].ID] < r.seq[ms[j].ID]
	})
}

func cloneMember(m memberrepo.Member) memberrepo.Member {
	out := m
	out.Gender = cloneStringPtr(m.Gender)
	out.Phone = cloneStringPtr(m.Phone)
	out.Email = cloneStringPtr(m.Email)
	out.Address = cloneStringPtr(m.Address)
	if m.DOB != nil {
		v := *m.DOB
		out.DOB = &v
	}
	return out
}

func cloneStringPtr(p *string) *string {
	if p == nil {
		return nil
	}
	v := *p
	return &v
}
