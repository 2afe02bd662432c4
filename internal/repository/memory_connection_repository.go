package repository

import (
	"context"
	"sync"

	"xrnode/internal/domain/connection"
)

type MemoryConnectionRepository struct {
	mu     sync.RWMutex
	byView map[string][]connection.Connection
}

func NewMemoryConnectionRepository() *MemoryConnectionRepository {
	return &MemoryConnectionRepository{byView: make(map[string][]connection.Connection)}
}

func (r *MemoryConnectionRepository) Upsert(_ context.Context, c connection.Connection) (connection.Connection, bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	c.Profile = c.Profile.Clone()
	items := r.byView[c.ViewerID]
	for i := range items {
		if items[i].Profile.ID != c.Profile.ID {
			continue
		}
		items[i].Profile = c.Profile
		items[i].MatchScore = c.MatchScore
		items[i].ConnectedAt = c.ConnectedAt
		return clone(items[i]), false, nil
	}

	c.AppreciationCount = 0
	r.byView[c.ViewerID] = append(items, c)
	return clone(c), true, nil
}

func (r *MemoryConnectionRepository) List(_ context.Context, viewerID string) ([]connection.Connection, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	items := r.byView[viewerID]
	out := make([]connection.Connection, 0, len(items))
	for _, c := range items {
		out = append(out, clone(c))
	}
	connection.SortByDate(out)
	return out, nil
}

func (r *MemoryConnectionRepository) GetByProfileID(_ context.Context, viewerID, profileID string) (connection.Connection, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	for _, c := range r.byView[viewerID] {
		if c.Profile.ID == profileID {
			return clone(c), nil
		}
	}
	return connection.Connection{}, connection.ErrNotFound
}

func (r *MemoryConnectionRepository) Delete(_ context.Context, viewerID, connectionID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	items := r.byView[viewerID]
	for i, c := range items {
		if c.ID == connectionID {
			r.byView[viewerID] = append(items[:i:i], items[i+1:]...)
			return nil
		}
	}
	return connection.ErrNotFound
}

func (r *MemoryConnectionRepository) IncrementAppreciation(_ context.Context, viewerID, profileID string) (connection.Connection, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	items := r.byView[viewerID]
	for i := range items {
		if items[i].Profile.ID == profileID {
			items[i].AppreciationCount++
			return clone(items[i]), nil
		}
	}
	return connection.Connection{}, connection.ErrNotFound
}

func (r *MemoryConnectionRepository) Count(_ context.Context, viewerID string) (int, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.byView[viewerID]), nil
}

func (r *MemoryConnectionRepository) Clear(_ context.Context, viewerID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.byView, viewerID)
	return nil
}

func clone(c connection.Connection) connection.Connection {
	c.Profile = c.Profile.Clone()
	return c
}
