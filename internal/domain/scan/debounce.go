package scan

import (
	"sync"
	"time"
)

const DefaultDebounceWindow = 2 * time.Second

// Debouncer drops repeated detections of the same code by the same viewer
// inside a window.
type Debouncer struct {
	window time.Duration

	mu   sync.Mutex
	seen map[string]time.Time
}

func NewDebouncer(window time.Duration) *Debouncer {
	if window <= 0 {
		window = DefaultDebounceWindow
	}
	return &Debouncer{window: window, seen: make(map[string]time.Time)}
}

func (d *Debouncer) Window() time.Duration {
	return d.window
}

func (d *Debouncer) Allow(viewerID, code string, now time.Time) bool {
	key := viewerID + "|" + code

	d.mu.Lock()
	defer d.mu.Unlock()

	if last, ok := d.seen[key]; ok && now.Sub(last) <= d.window {
		return false
	}
	d.seen[key] = now

	if len(d.seen) > 1024 {
		d.evictLocked(now)
	}
	return true
}

// Forget clears the record for code so the next detection is allowed.
func (d *Debouncer) Forget(viewerID, code string) {
	d.mu.Lock()
	defer d.mu.Unlock()
	delete(d.seen, viewerID+"|"+code)
}

func (d *Debouncer) evictLocked(now time.Time) {
	for k, t := range d.seen {
		if now.Sub(t) > d.window {
			delete(d.seen, k)
		}
	}
}
