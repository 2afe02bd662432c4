package repository

import (
	"context"
	"sort"
	"sync"
	"time"

	"xrnode/internal/domain/profile"
)

// MemoryParticipantRepository keeps participants in process. It backs the
// service when no database is configured.
type MemoryParticipantRepository struct {
	mu     sync.RWMutex
	items  map[string]profile.Profile
	hashes map[string]string
}

func NewMemoryParticipantRepository(seed []profile.Profile) *MemoryParticipantRepository {
	r := &MemoryParticipantRepository{
		items:  make(map[string]profile.Profile, len(seed)),
		hashes: make(map[string]string, len(seed)),
	}
	now := time.Now().UTC()
	for _, p := range seed {
		p = profile.Normalize(p.Clone())
		p.CreatedAt = now
		p.UpdatedAt = now
		r.items[p.ID] = p
	}
	return r
}

func (r *MemoryParticipantRepository) GetByID(_ context.Context, id string) (profile.Profile, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	p, ok := r.items[id]
	if !ok {
		return profile.Profile{}, profile.ErrNotFound
	}
	return p.Clone(), nil
}

func (r *MemoryParticipantRepository) List(ctx context.Context) ([]profile.Profile, error) {
	return r.Search(ctx, "")
}

func (r *MemoryParticipantRepository) Search(_ context.Context, query string) ([]profile.Profile, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]profile.Profile, 0, len(r.items))
	for _, p := range r.items {
		if p.Matches(query) {
			out = append(out, p.Clone())
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (r *MemoryParticipantRepository) Upsert(_ context.Context, p profile.Profile) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	now := time.Now().UTC()
	p = p.Clone()
	if prev, ok := r.items[p.ID]; ok {
		p.CreatedAt = prev.CreatedAt
	} else {
		p.CreatedAt = now
	}
	p.UpdatedAt = now
	r.items[p.ID] = p
	return nil
}

func (r *MemoryParticipantRepository) CheckinHash(_ context.Context, id string) (string, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	if _, ok := r.items[id]; !ok {
		return "", profile.ErrNotFound
	}
	return r.hashes[id], nil
}

func (r *MemoryParticipantRepository) SetCheckinHash(_ context.Context, id, hash string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.items[id]; !ok {
		return profile.ErrNotFound
	}
	r.hashes[id] = hash
	return nil
}
