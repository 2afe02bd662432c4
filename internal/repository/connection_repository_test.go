package repository

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"xrnode/internal/database"
	"xrnode/internal/domain/connection"
	"xrnode/internal/domain/profile"
)

type fakeRow struct {
	values []any
	err    error
}

func (r fakeRow) Scan(dest ...any) error {
	if r.err != nil {
		return r.err
	}
	if len(dest) != len(r.values) {
		return errors.New("scan arity mismatch")
	}
	for i, d := range dest {
		switch p := d.(type) {
		case *string:
			*p = r.values[i].(string)
		case *int:
			*p = r.values[i].(int)
		case *[]byte:
			*p = r.values[i].([]byte)
		case *time.Time:
			*p = r.values[i].(time.Time)
		default:
			return errors.New("unsupported scan target")
		}
	}
	return nil
}

type fakeTx struct {
	existing   int
	insertErr  error
	statements []string
	committed  bool
	rolledBack bool
}

func (t *fakeTx) Exec(_ context.Context, query string, _ ...any) (int64, error) {
	t.statements = append(t.statements, query)
	return 1, nil
}

func (t *fakeTx) QueryRow(_ context.Context, query string, args ...any) database.Row {
	t.statements = append(t.statements, query)
	if strings.Contains(query, "COUNT(1)") {
		return fakeRow{values: []any{t.existing}}
	}
	if t.insertErr != nil {
		return fakeRow{err: t.insertErr}
	}
	return fakeRow{values: []any{args[0], args[1], args[3], args[4], args[5], 0}}
}

func (t *fakeTx) Commit(context.Context) error {
	t.committed = true
	return nil
}

func (t *fakeTx) Rollback(context.Context) error {
	if !t.committed {
		t.rolledBack = true
	}
	return nil
}

type fakeDB struct {
	tx       *fakeTx
	beginErr error
}

func (d *fakeDB) Ping(context.Context) error { return nil }
func (d *fakeDB) Close() error               { return nil }
func (d *fakeDB) Exec(context.Context, string, ...any) (int64, error) {
	return 0, errors.New("expected a transaction")
}
func (d *fakeDB) Query(context.Context, string, ...any) (database.Rows, error) {
	return nil, errors.New("expected a transaction")
}
func (d *fakeDB) QueryRow(context.Context, string, ...any) database.Row {
	return fakeRow{err: errors.New("expected a transaction")}
}
func (d *fakeDB) Begin(context.Context) (database.Tx, error) {
	if d.beginErr != nil {
		return nil, d.beginErr
	}
	return d.tx, nil
}
func (d *fakeDB) SQLDB() *sql.DB { return nil }

func TestPostgresConnectionRepository_UpsertInTransaction(t *testing.T) {
	ctx := context.Background()
	tx := &fakeTx{}
	repo := NewPostgresConnectionRepository(&fakeDB{tx: tx})
	c := connection.New("p003", profile.Profile{ID: "p002", Name: "Jordan"}, 72, time.Now())

	saved, created, err := repo.Upsert(ctx, c)
	require.NoError(t, err)
	assert.True(t, created)
	assert.Equal(t, c.ID, saved.ID)
	assert.Equal(t, "Jordan", saved.Profile.Name)
	assert.Equal(t, 72, saved.MatchScore)
	assert.True(t, tx.committed)
	assert.False(t, tx.rolledBack)

	require.Len(t, tx.statements, 3)
	assert.Contains(t, tx.statements[0], "pg_advisory_xact_lock")
	assert.Contains(t, tx.statements[1], "COUNT(1)")
	assert.Contains(t, tx.statements[2], "ON CONFLICT")
}

func TestPostgresConnectionRepository_UpsertExistingNotCreated(t *testing.T) {
	tx := &fakeTx{existing: 1}
	repo := NewPostgresConnectionRepository(&fakeDB{tx: tx})

	_, created, err := repo.Upsert(context.Background(), connection.New("p003", profile.Profile{ID: "p002"}, 40, time.Now()))
	require.NoError(t, err)
	assert.False(t, created)
}

func TestPostgresConnectionRepository_UpsertRollsBackOnError(t *testing.T) {
	tx := &fakeTx{insertErr: errors.New("constraint")}
	repo := NewPostgresConnectionRepository(&fakeDB{tx: tx})

	_, _, err := repo.Upsert(context.Background(), connection.New("p003", profile.Profile{ID: "p002"}, 40, time.Now()))
	require.Error(t, err)
	assert.False(t, tx.committed)
	assert.True(t, tx.rolledBack)
}

func TestPostgresConnectionRepository_UpsertBeginError(t *testing.T) {
	repo := NewPostgresConnectionRepository(&fakeDB{beginErr: errors.New("pool closed")})

	_, _, err := repo.Upsert(context.Background(), connection.New("p003", profile.Profile{ID: "p002"}, 40, time.Now()))
	assert.ErrorContains(t, err, "pool closed")
}

func TestScanConnection_DecodesSnapshot(t *testing.T) {
	snap, err := json.Marshal(profile.Profile{ID: "p004", Name: "Sam"})
	require.NoError(t, err)
	now := time.Now().UTC()

	c, err := scanConnection(fakeRow{values: []any{"conn_1_p004", "p003", snap, 55, now, 2}})
	require.NoError(t, err)
	assert.Equal(t, "Sam", c.Profile.Name)
	assert.Equal(t, 2, c.AppreciationCount)
}
