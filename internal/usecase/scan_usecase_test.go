package usecase

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"xrnode/internal/domain/connection"
	"xrnode/internal/ws"
)

func newScanner(f *fixture, locker ScanLocker) *Scanner {
	return NewScanUsecase(f.profiles, f.connections, f.matcher, locker,
		ScanOptions{Prefix: "XRNODE:", Debounce: 2 * time.Second}, f.notifier, nil, discardLogger())
}

func TestScan_Matched(t *testing.T) {
	f := newFixture()
	s := newScanner(f, nil)

	out, err := s.Scan(context.Background(), "p003", "XRNODE:p002")
	require.NoError(t, err)
	assert.Equal(t, "p002", out.Profile.ID)
	assert.Equal(t, "XRNODE:p002", out.Scan.Raw)
	assert.Equal(t, out.Match.Level.Label(), out.Label)
	assert.False(t, out.AlreadyConnected)
	assert.Equal(t, []string{ws.EventScanMatched}, f.notifier.kinds())
}

func TestScan_Errors(t *testing.T) {
	f := newFixture()
	s := newScanner(f, nil)
	ctx := context.Background()

	_, err := s.Scan(ctx, "p003", "XRNODE:")
	assert.ErrorIs(t, err, ErrInvalidCode)

	_, err = s.Scan(ctx, "p003", "XRNODE:p003")
	assert.ErrorIs(t, err, ErrSelfScan)

	_, err = s.Scan(ctx, "p003", "XRNODE:p999")
	assert.ErrorIs(t, err, ErrParticipantNotFound)

	_, err = s.Scan(ctx, "", "XRNODE:p001")
	assert.ErrorIs(t, err, ErrInvalidInput)
}

func TestScan_LocalDebounce(t *testing.T) {
	f := newFixture()
	s := newScanner(f, nil)
	now := time.Now()
	s.now = func() time.Time { return now }
	ctx := context.Background()

	_, err := s.Scan(ctx, "p003", "XRNODE:p002")
	require.NoError(t, err)

	_, err = s.Scan(ctx, "p003", "p002")
	assert.ErrorIs(t, err, ErrDuplicateScan)

	now = now.Add(3 * time.Second)
	_, err = s.Scan(ctx, "p003", "XRNODE:p002")
	assert.NoError(t, err)
}

func TestScan_SharedLock(t *testing.T) {
	f := newFixture()
	a := newScanner(f, f.cache)
	b := newScanner(f, f.cache)
	ctx := context.Background()

	_, err := a.Scan(ctx, "p003", "XRNODE:p004")
	require.NoError(t, err)
	_, err = b.Scan(ctx, "p003", "XRNODE:p004")
	assert.ErrorIs(t, err, ErrDuplicateScan)
	assert.True(t, f.cache.locks[ScanLockKey("p003", "p004")])
}

func TestScan_LockErrorFallsBackToLocal(t *testing.T) {
	f := newFixture()
	f.cache.lockErr = errors.New("redis timeout")
	s := newScanner(f, f.cache)
	ctx := context.Background()

	_, err := s.Scan(ctx, "p003", "XRNODE:p004")
	require.NoError(t, err)
	_, err = s.Scan(ctx, "p003", "XRNODE:p004")
	assert.ErrorIs(t, err, ErrDuplicateScan)
}

func TestScan_AlreadyConnected(t *testing.T) {
	f := newFixture()
	ctx := context.Background()
	target, _ := f.profiles.GetByID(ctx, "p006")
	_, _, err := f.connections.Upsert(ctx, connection.New("p003", target, 50, time.Now()))
	require.NoError(t, err)

	out, err := newScanner(f, nil).Scan(ctx, "p003", "XRNODE:p006")
	require.NoError(t, err)
	assert.True(t, out.AlreadyConnected)
}

func TestScanOutcomeLabel(t *testing.T) {
	assert.Equal(t, "matched", scanOutcomeLabel(nil))
	assert.Equal(t, "duplicate", scanOutcomeLabel(ErrDuplicateScan))
	assert.Equal(t, "error", scanOutcomeLabel(errors.New("x")))
}

type flakyConnectionRepo struct {
	connection.Repository
	err error
}

func (r *flakyConnectionRepo) GetByProfileID(ctx context.Context, viewerID, profileID string) (connection.Connection, error) {
	if r.err != nil {
		return connection.Connection{}, r.err
	}
	return r.Repository.GetByProfileID(ctx, viewerID, profileID)
}

func TestScan_FailedLookupReleasesLock(t *testing.T) {
	f := newFixture()
	repo := &flakyConnectionRepo{Repository: f.connections, err: errors.New("db down")}
	s := NewScanUsecase(f.profiles, repo, f.matcher, f.cache,
		ScanOptions{Prefix: "XRNODE:", Debounce: 2 * time.Second}, f.notifier, nil, discardLogger())
	ctx := context.Background()

	_, err := s.Scan(ctx, "p003", "XRNODE:p004")
	require.Error(t, err)
	assert.NotErrorIs(t, err, ErrDuplicateScan)
	assert.False(t, f.cache.locks[ScanLockKey("p003", "p004")])

	repo.err = nil
	out, err := s.Scan(ctx, "p003", "XRNODE:p004")
	require.NoError(t, err)
	assert.Equal(t, "p004", out.Profile.ID)
}

func TestScan_FailedLookupReleasesLocalDebounce(t *testing.T) {
	f := newFixture()
	repo := &flakyConnectionRepo{Repository: f.connections, err: errors.New("db down")}
	s := NewScanUsecase(f.profiles, repo, f.matcher, nil,
		ScanOptions{Prefix: "XRNODE:", Debounce: 2 * time.Second}, f.notifier, nil, discardLogger())
	ctx := context.Background()

	_, err := s.Scan(ctx, "p003", "p005")
	require.Error(t, err)

	repo.err = nil
	_, err = s.Scan(ctx, "p003", "p005")
	assert.NoError(t, err)
}

func TestScan_UnknownBadgeStaysDebounced(t *testing.T) {
	f := newFixture()
	s := newScanner(f, f.cache)
	ctx := context.Background()

	_, err := s.Scan(ctx, "p003", "XRNODE:p999")
	assert.ErrorIs(t, err, ErrParticipantNotFound)
	_, err = s.Scan(ctx, "p003", "XRNODE:p999")
	assert.ErrorIs(t, err, ErrDuplicateScan)
}
