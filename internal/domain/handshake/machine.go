package handshake

import (
	"errors"
	"math"
	"sync"
	"time"

	"xrnode/internal/domain/matching"
	"xrnode/internal/domain/profile"
)

const (
	DefaultProximity = 0.15
	DefaultHold      = 1500 * time.Millisecond
)

var ErrNoPending = errors.New("no pending connection to confirm")

type Vec3 struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
	Z float64 `json:"z"`
}

func (v Vec3) DistanceTo(o Vec3) float64 {
	dx, dy, dz := v.X-o.X, v.Y-o.Y, v.Z-o.Z
	return math.Sqrt(dx*dx + dy*dy + dz*dz)
}

// Sample is one frame of tracked wrist positions. A nil hand is untracked.
type Sample struct {
	Left  *Vec3
	Right *Vec3
	At    time.Time
}

type Pending struct {
	Profile profile.Profile `json:"profile"`
	Result  matching.Result `json:"result"`
}

type Confirmation struct {
	Profile     profile.Profile
	Result      matching.Result
	ConfirmedAt time.Time
	Manual      bool
}

type State struct {
	HandsTracked bool     `json:"hands_tracked"`
	HandsClose   bool     `json:"hands_close"`
	Distance     float64  `json:"distance"`
	Progress     float64  `json:"progress"`
	Complete     bool     `json:"complete"`
	Pending      *Pending `json:"pending,omitempty"`
}

type Options struct {
	Proximity float64
	Hold      time.Duration
}

// Machine tracks one viewer's handshake gesture. Each pending match is
// confirmed at most once, either by a held gesture or by Confirm.
type Machine struct {
	proximity float64
	hold      time.Duration

	mu        sync.Mutex
	pending   *Pending
	holdStart time.Time
	holding   bool
	state     State
	confirmed chan Confirmation
}

func NewMachine(opts Options) *Machine {
	if opts.Proximity <= 0 {
		opts.Proximity = DefaultProximity
	}
	if opts.Hold <= 0 {
		opts.Hold = DefaultHold
	}
	return &Machine{
		proximity: opts.Proximity,
		hold:      opts.Hold,
		confirmed: make(chan Confirmation, 1),
	}
}

// Confirmed delivers confirmations. The buffer holds one undelivered value;
// a later confirmation replaces nothing and is dropped if it is still unread.
func (m *Machine) Confirmed() <-chan Confirmation {
	return m.confirmed
}

func (m *Machine) SetPending(p profile.Profile, r matching.Result) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.pending = &Pending{Profile: p.Clone(), Result: r}
	m.holding = false
	m.state.Progress = 0
	m.state.Complete = false
	m.state.Pending = m.pending
}

func (m *Machine) Reset() {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.pending = nil
	m.holding = false
	m.state = State{}
}

func (m *Machine) State() State {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.state
}

func (m *Machine) Observe(s Sample) State {
	m.mu.Lock()
	defer m.mu.Unlock()

	if s.Left == nil || s.Right == nil {
		m.state.HandsTracked = false
		m.state.HandsClose = false
		m.state.Distance = 0
		m.holding = false
		return m.state
	}

	dist := s.Left.DistanceTo(*s.Right)
	m.state.HandsTracked = true
	m.state.Distance = dist
	m.state.HandsClose = dist < m.proximity

	if !m.state.HandsClose || m.pending == nil {
		m.holding = false
		if !m.state.Complete {
			m.state.Progress = 0
		}
		return m.state
	}

	if !m.holding {
		m.holding = true
		m.holdStart = s.At
	}
	elapsed := s.At.Sub(m.holdStart)
	m.state.Progress = math.Min(100, float64(elapsed)/float64(m.hold)*100)

	if elapsed >= m.hold && !m.state.Complete {
		m.confirmLocked(s.At, false)
		m.holding = false
	}
	return m.state
}

// Confirm confirms the pending match without a gesture.
func (m *Machine) Confirm(now time.Time) (Confirmation, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.pending == nil {
		return Confirmation{}, ErrNoPending
	}
	return m.confirmLocked(now, true), nil
}

// Restore puts an unsaved confirmation back as the pending match so it can
// be confirmed again. It is a no-op once another match is pending.
func (m *Machine) Restore(c Confirmation) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.pending != nil {
		return
	}
	m.pending = &Pending{Profile: c.Profile, Result: c.Result}
	m.holding = false
	m.state.Pending = m.pending
	m.state.Complete = false
	m.state.Progress = 0
}

func (m *Machine) confirmLocked(now time.Time, manual bool) Confirmation {
	c := Confirmation{
		Profile:     m.pending.Profile,
		Result:      m.pending.Result,
		ConfirmedAt: now.UTC(),
		Manual:      manual,
	}
	m.pending = nil
	m.state.Pending = nil
	m.state.Complete = true
	m.state.Progress = 100

	select {
	case m.confirmed <- c:
	default:
	}
	return c
}
