package repository

import (
	"context"
	"slices"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/portfolio-site/portfolio-backend/internal/projects/domain"
)

// MemoryRepository is a process-local project store used for local
// development (STORE_BACKEND=memory) and in tests. It mirrors the Postgres
// semantics: store-assigned UUIDs, immutable created_at, newest-first listing.
type MemoryRepository struct {
	mu       sync.RWMutex
	projects map[string]domain.Project
	seq      map[string]uint64
	next     uint64
	last     time.Time
	now      func() time.Time
}

func NewMemoryRepository() *MemoryRepository {
	return &MemoryRepository{
		projects: make(map[string]domain.Project),
		seq:      make(map[string]uint64),
		now:      time.Now,
	}
}

func (r *MemoryRepository) Insert(_ context.Context, p domain.ProjectPayload) (*domain.Project, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	// created_at never goes backwards, even if the wall clock does
	ts := r.now().UTC()
	if ts.Before(r.last) {
		ts = r.last
	}
	r.last = ts
	r.next++

	created := domain.Project{ID: uuid.NewString(), CreatedAt: ts}
	created.Apply(clonePayload(p))
	r.projects[created.ID] = created
	r.seq[created.ID] = r.next

	out := cloneProject(created)
	return &out, nil
}

func (r *MemoryRepository) Update(_ context.Context, id string, p domain.ProjectPayload) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	existing, ok := r.projects[id]
	if !ok {
		return false, nil
	}
	existing.Apply(clonePayload(p))
	r.projects[id] = existing
	return true, nil
}

func (r *MemoryRepository) Delete(_ context.Context, id string) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.projects[id]; !ok {
		return false, nil
	}
	delete(r.projects, id)
	delete(r.seq, id)
	return true, nil
}

func (r *MemoryRepository) ListAll(_ context.Context) ([]domain.Project, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]domain.Project, 0, len(r.projects))
	for _, p := range r.projects {
		out = append(out, cloneProject(p))
	}
	sort.Slice(out, func(i, j int) bool {
		if !out[i].CreatedAt.Equal(out[j].CreatedAt) {
			return out[i].CreatedAt.After(out[j].CreatedAt)
		}
		return r.seq[out[i].ID] > r.seq[out[j].ID]
	})
	return out, nil
}

// Len returns the number of stored projects.
func (r *MemoryRepository) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.projects)
}

func clonePayload(p domain.ProjectPayload) domain.ProjectPayload {
	p.GithubLinks = slices.Clone(p.GithubLinks)
	p.Tags = slices.Clone(p.Tags)
	if p.DemoLink != nil {
		link := *p.DemoLink
		p.DemoLink = &link
	}
	return p
}

func cloneProject(p domain.Project) domain.Project {
	p.GithubLinks = slices.Clone(p.GithubLinks)
	p.Tags = slices.Clone(p.Tags)
	if p.DemoLink != nil {
		link := *p.DemoLink
		p.DemoLink = &link
	}
	return p
}
