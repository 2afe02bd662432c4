package usecase

import (
	"context"
	"encoding/json"
	"io"
	"log"
	"strings"
	"sync"
	"time"

	"xrnode/internal/domain/matching"
	"xrnode/internal/repository"
	"xrnode/internal/seeder"
)

type fakeCache struct {
	mu        sync.Mutex
	items     map[string][]byte
	locks     map[string]bool
	gets      int
	sets      int
	patterns  []string
	available bool
	lockErr   error
}

func newFakeCache() *fakeCache {
	return &fakeCache{items: map[string][]byte{}, locks: map[string]bool{}, available: true}
}

func (c *fakeCache) GetJSON(_ context.Context, key string, out any) (bool, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.gets++
	b, ok := c.items[key]
	if !ok {
		return false, nil
	}
	return true, json.Unmarshal(b, out)
}

func (c *fakeCache) SetJSON(_ context.Context, key string, value any, _ time.Duration) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.sets++
	b, err := json.Marshal(value)
	if err != nil {
		return err
	}
	c.items[key] = b
	return nil
}

func (c *fakeCache) DeleteByPattern(_ context.Context, pattern string) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.patterns = append(c.patterns, pattern)
	for k := range c.items {
		if globMatch(pattern, k) {
			delete(c.items, k)
		}
	}
	return nil
}

func (c *fakeCache) Available() bool { return c.available }

func (c *fakeCache) SetIfNotExists(_ context.Context, key string, _ string, _ time.Duration) (bool, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.lockErr != nil {
		return false, c.lockErr
	}
	if c.locks[key] {
		return false, nil
	}
	c.locks[key] = true
	return true, nil
}

func (c *fakeCache) Delete(_ context.Context, key string) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	delete(c.locks, key)
	delete(c.items, key)
	return nil
}

// globMatch supports the '*' wildcard only.
func globMatch(pattern, s string) bool {
	parts := strings.Split(pattern, "*")
	if !strings.HasPrefix(s, parts[0]) {
		return false
	}
	s = s[len(parts[0]):]
	for _, p := range parts[1:] {
		i := strings.Index(s, p)
		if i < 0 {
			return false
		}
		s = s[i+len(p):]
	}
	return true
}

type event struct {
	viewer string
	kind   string
}

type fakeNotifier struct {
	mu     sync.Mutex
	events []event
}

func (n *fakeNotifier) Notify(viewerID, eventType string, _ any) {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.events = append(n.events, event{viewer: viewerID, kind: eventType})
}

func (n *fakeNotifier) kinds() []string {
	n.mu.Lock()
	defer n.mu.Unlock()
	out := make([]string, 0, len(n.events))
	for _, e := range n.events {
		out = append(out, e.kind)
	}
	return out
}

type fixture struct {
	profiles    *repository.MemoryParticipantRepository
	connections *repository.MemoryConnectionRepository
	cache       *fakeCache
	notifier    *fakeNotifier
	matcher     *Matcher
	engine      *matching.Engine
}

func newFixture() *fixture {
	f := &fixture{
		profiles:    repository.NewMemoryParticipantRepository(seeder.Profiles()),
		connections: repository.NewMemoryConnectionRepository(),
		cache:       newFakeCache(),
		notifier:    &fakeNotifier{},
		engine:      matching.NewEngine(matching.DefaultConfig()),
	}
	f.matcher = NewMatchUsecase(f.engine, f.profiles, f.cache, time.Minute, nil, discardLogger())
	return f
}

func discardLogger() *log.Logger {
	return log.New(io.Discard, "", 0)
}
