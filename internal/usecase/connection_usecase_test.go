package usecase

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"xrnode/internal/domain/connection"
	"xrnode/internal/ws"
)

func newConnections(f *fixture) *Connections {
	return NewConnectionUsecase(f.connections, f.profiles, f.matcher, f.notifier, nil, discardLogger())
}

func TestConnections_ConnectByIDAndReconnect(t *testing.T) {
	f := newFixture()
	u := newConnections(f)
	ctx := context.Background()
	t0 := time.Now()
	u.now = func() time.Time { return t0 }

	first, err := u.ConnectByID(ctx, "p003", "p002")
	require.NoError(t, err)
	assert.Equal(t, connection.NewID("p002", t0), first.ID)

	out, err := f.matcher.Match(ctx, "p003", "p002")
	require.NoError(t, err)
	assert.Equal(t, out.Result.Score, first.MatchScore)

	_, err = u.Appreciate(ctx, "p003", "p002")
	require.NoError(t, err)

	u.now = func() time.Time { return t0.Add(time.Hour) }
	again, err := u.Connect(ctx, "p003", first.Profile, 99)
	require.NoError(t, err)
	assert.Equal(t, first.ID, again.ID)
	assert.Equal(t, 99, again.MatchScore)
	assert.Equal(t, 1, again.AppreciationCount)

	n, err := u.Count(ctx, "p003")
	require.NoError(t, err)
	assert.Equal(t, 1, n)
	assert.Equal(t, []string{
		ws.EventConnectionConfirmed,
		ws.EventConnectionAppreciate,
		ws.EventConnectionConfirmed,
	}, f.notifier.kinds())
}

func TestConnections_InvalidInput(t *testing.T) {
	f := newFixture()
	u := newConnections(f)
	ctx := context.Background()

	_, err := u.ConnectByID(ctx, "p003", "p003")
	assert.ErrorIs(t, err, ErrInvalidInput)
	_, err = u.ConnectByID(ctx, "p003", "p404")
	assert.ErrorIs(t, err, ErrParticipantNotFound)
	p, _ := f.profiles.GetByID(ctx, "p001")
	_, err = u.Connect(ctx, "p003", p, 101)
	assert.ErrorIs(t, err, ErrInvalidInput)
	_, err = u.List(ctx, "p003", "alphabetical")
	assert.ErrorIs(t, err, ErrInvalidInput)
}

func TestConnections_ListStatsExport(t *testing.T) {
	f := newFixture()
	u := newConnections(f)
	ctx := context.Background()
	t0 := time.Now()

	p1, _ := f.profiles.GetByID(ctx, "p001")
	p2, _ := f.profiles.GetByID(ctx, "p002")
	u.now = func() time.Time { return t0 }
	_, err := u.Connect(ctx, "p003", p1, 90)
	require.NoError(t, err)
	u.now = func() time.Time { return t0.Add(time.Minute) }
	_, err = u.Connect(ctx, "p003", p2, 41)
	require.NoError(t, err)

	byDate, err := u.List(ctx, "p003", "date")
	require.NoError(t, err)
	assert.Equal(t, "p002", byDate[0].Profile.ID)

	byScore, err := u.List(ctx, "p003", "score")
	require.NoError(t, err)
	assert.Equal(t, "p001", byScore[0].Profile.ID)

	st, err := u.Stats(ctx, "p003")
	require.NoError(t, err)
	assert.Equal(t, ConnectionStats{Count: 2, AverageScore: 66}, st)

	raw, err := u.Export(ctx, "p003")
	require.NoError(t, err)
	assert.Contains(t, string(raw), "\n  {")
	var decoded []connection.Connection
	require.NoError(t, json.Unmarshal(raw, &decoded))
	assert.Len(t, decoded, 2)

	ok, err := u.IsConnected(ctx, "p003", "p001")
	require.NoError(t, err)
	assert.True(t, ok)
	ok, err = u.IsConnected(ctx, "p003", "p008")
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestConnections_RemoveAndClear(t *testing.T) {
	f := newFixture()
	u := newConnections(f)
	ctx := context.Background()

	c, err := u.ConnectByID(ctx, "p003", "p005")
	require.NoError(t, err)
	_, err = u.ConnectByID(ctx, "p003", "p006")
	require.NoError(t, err)

	require.NoError(t, u.Remove(ctx, "p003", c.ID))
	assert.ErrorIs(t, u.Remove(ctx, "p003", c.ID), ErrConnectionNotFound)
	_, err = u.Get(ctx, "p003", "p005")
	assert.ErrorIs(t, err, ErrConnectionNotFound)
	_, err = u.Appreciate(ctx, "p003", "p005")
	assert.ErrorIs(t, err, ErrConnectionNotFound)

	require.NoError(t, u.Clear(ctx, "p003"))
	st, err := u.Stats(ctx, "p003")
	require.NoError(t, err)
	assert.Zero(t, st.Count)
}
