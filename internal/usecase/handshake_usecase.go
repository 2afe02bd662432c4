package usecase

import (
	"context"
	"errors"
	"fmt"
	"log"
	"sync"
	"time"

	"xrnode/internal/domain/connection"
	"xrnode/internal/domain/handshake"
	"xrnode/internal/metrics"
	"xrnode/internal/ws"
)

type HandshakeUpdate struct {
	State      handshake.State        `json:"state"`
	Connection *connection.Connection `json:"connection,omitempty"`
}

type HandshakeUsecase interface {
	Begin(ctx context.Context, viewerID, targetID string) (handshake.State, error)
	Observe(ctx context.Context, viewerID string, sample handshake.Sample) (HandshakeUpdate, error)
	Confirm(ctx context.Context, viewerID string) (HandshakeUpdate, error)
	State(viewerID string) handshake.State
	Cancel(viewerID string)
}

type Handshakes struct {
	matches     MatchUsecase
	connections ConnectionUsecase
	opts        handshake.Options
	notifier    ws.Notifier
	metrics     metrics.Recorder
	logger      *log.Logger
	now         func() time.Time

	mu       sync.Mutex
	sessions map[string]*handshake.Machine
}

func NewHandshakeUsecase(
	matches MatchUsecase,
	connections ConnectionUsecase,
	opts handshake.Options,
	notifier ws.Notifier,
	rec metrics.Recorder,
	logger *log.Logger,
) *Handshakes {
	if notifier == nil {
		notifier = ws.NopNotifier{}
	}
	if rec == nil {
		rec = metrics.Nop{}
	}
	if logger == nil {
		logger = log.Default()
	}
	return &Handshakes{
		matches:     matches,
		connections: connections,
		opts:        opts,
		notifier:    notifier,
		metrics:     rec,
		logger:      logger,
		now:         time.Now,
		sessions:    make(map[string]*handshake.Machine),
	}
}

func (u *Handshakes) machine(viewerID string) *handshake.Machine {
	u.mu.Lock()
	defer u.mu.Unlock()

	m, ok := u.sessions[viewerID]
	if !ok {
		m = handshake.NewMachine(u.opts)
		u.sessions[viewerID] = m
	}
	return m
}

// Begin scores the target and waits for a handshake to confirm it.
func (u *Handshakes) Begin(ctx context.Context, viewerID, targetID string) (handshake.State, error) {
	if viewerID == "" || targetID == "" || viewerID == targetID {
		return handshake.State{}, ErrInvalidInput
	}

	out, err := u.matches.Match(ctx, viewerID, targetID)
	if err != nil {
		return handshake.State{}, err
	}

	m := u.machine(viewerID)
	m.SetPending(out.Target, out.Result)
	st := m.State()

	u.logger.Printf("Handshake pending | viewer=%s participant=%s score=%d", viewerID, targetID, out.Result.Score)
	u.notifier.Notify(viewerID, ws.EventHandshakePending, st)
	return st, nil
}

func (u *Handshakes) Observe(ctx context.Context, viewerID string, sample handshake.Sample) (HandshakeUpdate, error) {
	if viewerID == "" {
		return HandshakeUpdate{}, ErrInvalidInput
	}
	if sample.At.IsZero() {
		sample.At = u.now()
	}

	m := u.machine(viewerID)
	st := m.Observe(sample)
	if st.HandsClose {
		u.notifier.Notify(viewerID, ws.EventHandshakeProgress, st)
	}

	conn, err := u.drain(ctx, viewerID, m)
	if err != nil {
		return HandshakeUpdate{State: m.State()}, err
	}
	return HandshakeUpdate{State: st, Connection: conn}, nil
}

// Confirm is the manual fallback when hand tracking is unavailable.
func (u *Handshakes) Confirm(ctx context.Context, viewerID string) (HandshakeUpdate, error) {
	m := u.machine(viewerID)
	if _, err := m.Confirm(u.now()); err != nil {
		if errors.Is(err, handshake.ErrNoPending) {
			return HandshakeUpdate{}, ErrNoPendingHandshake
		}
		return HandshakeUpdate{}, err
	}

	conn, err := u.drain(ctx, viewerID, m)
	if err != nil {
		return HandshakeUpdate{State: m.State()}, err
	}
	return HandshakeUpdate{State: m.State(), Connection: conn}, nil
}

func (u *Handshakes) State(viewerID string) handshake.State {
	return u.machine(viewerID).State()
}

func (u *Handshakes) Cancel(viewerID string) {
	u.mu.Lock()
	m, ok := u.sessions[viewerID]
	delete(u.sessions, viewerID)
	u.mu.Unlock()
	if ok {
		m.Reset()
	}
}

// drain persists a confirmation emitted by the machine, if any.
func (u *Handshakes) drain(ctx context.Context, viewerID string, m *handshake.Machine) (*connection.Connection, error) {
	select {
	case c := <-m.Confirmed():
		saved, err := u.connections.Connect(ctx, viewerID, c.Profile, c.Result.Score)
		if err != nil {
			m.Restore(c)
			u.logger.Printf("Handshake save failed | viewer=%s participant=%s err=%v", viewerID, c.Profile.ID, err)
			return nil, fmt.Errorf("persist handshake: %w", err)
		}
		u.metrics.HandshakeConfirmed(c.Manual)
		u.logger.Printf("Handshake confirmed | viewer=%s participant=%s manual=%t", viewerID, c.Profile.ID, c.Manual)
		return &saved, nil
	default:
		return nil, nil
	}
}
