package usecase

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"math"
	"strings"
	"time"

	"xrnode/internal/domain/connection"
	"xrnode/internal/domain/profile"
	"xrnode/internal/metrics"
	"xrnode/internal/ws"
)

const (
	ConnectionSortDate  = "date"
	ConnectionSortScore = "score"
)

type ConnectionStats struct {
	Count              int `json:"count"`
	AverageScore       int `json:"average_score"`
	TotalAppreciations int `json:"total_appreciations"`
}

type ConnectionUsecase interface {
	Connect(ctx context.Context, viewerID string, target profile.Profile, score int) (connection.Connection, error)
	ConnectByID(ctx context.Context, viewerID, profileID string) (connection.Connection, error)
	List(ctx context.Context, viewerID, sortBy string) ([]connection.Connection, error)
	IsConnected(ctx context.Context, viewerID, profileID string) (bool, error)
	Get(ctx context.Context, viewerID, profileID string) (connection.Connection, error)
	Remove(ctx context.Context, viewerID, connectionID string) error
	Appreciate(ctx context.Context, viewerID, profileID string) (connection.Connection, error)
	Count(ctx context.Context, viewerID string) (int, error)
	Stats(ctx context.Context, viewerID string) (ConnectionStats, error)
	Export(ctx context.Context, viewerID string) ([]byte, error)
	Clear(ctx context.Context, viewerID string) error
}

type Connections struct {
	repo     connection.Repository
	profiles profile.Repository
	matches  MatchUsecase
	notifier ws.Notifier
	metrics  metrics.Recorder
	logger   *log.Logger
	now      func() time.Time
}

func NewConnectionUsecase(
	repo connection.Repository,
	profiles profile.Repository,
	matches MatchUsecase,
	notifier ws.Notifier,
	rec metrics.Recorder,
	logger *log.Logger,
) *Connections {
	if notifier == nil {
		notifier = ws.NopNotifier{}
	}
	if rec == nil {
		rec = metrics.Nop{}
	}
	if logger == nil {
		logger = log.Default()
	}
	return &Connections{
		repo:     repo,
		profiles: profiles,
		matches:  matches,
		notifier: notifier,
		metrics:  rec,
		logger:   logger,
		now:      time.Now,
	}
}

// Connect saves or refreshes the connection with target. Reconnecting keeps
// the original id and appreciation count.
func (u *Connections) Connect(ctx context.Context, viewerID string, target profile.Profile, score int) (connection.Connection, error) {
	if viewerID == "" || target.ID == "" || target.ID == viewerID {
		return connection.Connection{}, ErrInvalidInput
	}
	if score < 0 || score > 100 {
		return connection.Connection{}, ErrInvalidInput
	}

	saved, created, err := u.repo.Upsert(ctx, connection.New(viewerID, target, score, u.now()))
	if err != nil {
		return connection.Connection{}, fmt.Errorf("save connection: %w", err)
	}

	u.metrics.ConnectionSaved(created)
	u.logger.Printf("Connection saved | viewer=%s participant=%s id=%s score=%d created=%t", viewerID, target.ID, saved.ID, saved.MatchScore, created)
	u.notifier.Notify(viewerID, ws.EventConnectionConfirmed, saved)
	return saved, nil
}

// ConnectByID scores the participant server-side before saving.
func (u *Connections) ConnectByID(ctx context.Context, viewerID, profileID string) (connection.Connection, error) {
	profileID = strings.TrimSpace(profileID)
	if viewerID == "" || profileID == "" || profileID == viewerID {
		return connection.Connection{}, ErrInvalidInput
	}

	viewer, err := loadParticipant(ctx, u.profiles, viewerID)
	if err != nil {
		return connection.Connection{}, err
	}
	target, err := loadParticipant(ctx, u.profiles, profileID)
	if err != nil {
		return connection.Connection{}, err
	}

	res := u.matches.Compute(ctx, viewer, target)
	return u.Connect(ctx, viewerID, target, res.Score)
}

func (u *Connections) List(ctx context.Context, viewerID, sortBy string) ([]connection.Connection, error) {
	items, err := u.repo.List(ctx, viewerID)
	if err != nil {
		return nil, fmt.Errorf("list connections: %w", err)
	}

	switch strings.ToLower(strings.TrimSpace(sortBy)) {
	case "", ConnectionSortDate:
		connection.SortByDate(items)
	case ConnectionSortScore:
		connection.SortByScore(items)
	default:
		return nil, ErrInvalidInput
	}
	return items, nil
}

func (u *Connections) IsConnected(ctx context.Context, viewerID, profileID string) (bool, error) {
	_, err := u.Get(ctx, viewerID, profileID)
	if err != nil {
		if errors.Is(err, ErrConnectionNotFound) {
			return false, nil
		}
		return false, err
	}
	return true, nil
}

func (u *Connections) Get(ctx context.Context, viewerID, profileID string) (connection.Connection, error) {
	c, err := u.repo.GetByProfileID(ctx, viewerID, profileID)
	if err != nil {
		if errors.Is(err, connection.ErrNotFound) {
			return connection.Connection{}, ErrConnectionNotFound
		}
		return connection.Connection{}, fmt.Errorf("get connection: %w", err)
	}
	return c, nil
}

func (u *Connections) Remove(ctx context.Context, viewerID, connectionID string) error {
	if err := u.repo.Delete(ctx, viewerID, connectionID); err != nil {
		if errors.Is(err, connection.ErrNotFound) {
			return ErrConnectionNotFound
		}
		return fmt.Errorf("remove connection: %w", err)
	}
	u.notifier.Notify(viewerID, ws.EventConnectionRemoved, map[string]string{"connection_id": connectionID})
	return nil
}

func (u *Connections) Appreciate(ctx context.Context, viewerID, profileID string) (connection.Connection, error) {
	c, err := u.repo.IncrementAppreciation(ctx, viewerID, profileID)
	if err != nil {
		if errors.Is(err, connection.ErrNotFound) {
			return connection.Connection{}, ErrConnectionNotFound
		}
		return connection.Connection{}, fmt.Errorf("appreciate connection: %w", err)
	}
	u.notifier.Notify(viewerID, ws.EventConnectionAppreciate, c)
	return c, nil
}

func (u *Connections) Count(ctx context.Context, viewerID string) (int, error) {
	n, err := u.repo.Count(ctx, viewerID)
	if err != nil {
		return 0, fmt.Errorf("count connections: %w", err)
	}
	return n, nil
}

func (u *Connections) Stats(ctx context.Context, viewerID string) (ConnectionStats, error) {
	items, err := u.repo.List(ctx, viewerID)
	if err != nil {
		return ConnectionStats{}, fmt.Errorf("list connections: %w", err)
	}

	st := ConnectionStats{Count: len(items)}
	if len(items) == 0 {
		return st, nil
	}
	sum := 0
	for _, c := range items {
		sum += c.MatchScore
		st.TotalAppreciations += c.AppreciationCount
	}
	st.AverageScore = int(math.Round(float64(sum) / float64(len(items))))
	return st, nil
}

// Export renders the viewer's connections, newest first, as indented JSON.
func (u *Connections) Export(ctx context.Context, viewerID string) ([]byte, error) {
	items, err := u.List(ctx, viewerID, ConnectionSortDate)
	if err != nil {
		return nil, err
	}
	b, err := json.MarshalIndent(items, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("encode connections: %w", err)
	}
	return b, nil
}

func (u *Connections) Clear(ctx context.Context, viewerID string) error {
	if err := u.repo.Clear(ctx, viewerID); err != nil {
		return fmt.Errorf("clear connections: %w", err)
	}
	u.logger.Printf("Connections cleared | viewer=%s", viewerID)
	u.notifier.Notify(viewerID, ws.EventConnectionsCleared, nil)
	return nil
}
