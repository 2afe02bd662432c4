package repository

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"

	"xrnode/internal/database"
	"xrnode/internal/domain/connection"

	"github.com/jackc/pgx/v5"
)

type PostgresConnectionRepository struct {
	db database.DB
}

func NewPostgresConnectionRepository(db database.DB) *PostgresConnectionRepository {
	return &PostgresConnectionRepository{db: db}
}

// Upsert runs in a transaction holding an advisory lock on the viewer and
// profile pair, so concurrent connects agree on which one created the row.
func (r *PostgresConnectionRepository) Upsert(ctx context.Context, c connection.Connection) (connection.Connection, bool, error) {
	snapshot, err := json.Marshal(c.Profile)
	if err != nil {
		return connection.Connection{}, false, fmt.Errorf("encode profile snapshot: %w", err)
	}

	tx, err := r.db.Begin(ctx)
	if err != nil {
		return connection.Connection{}, false, fmt.Errorf("begin upsert: %w", err)
	}
	defer func() { _ = tx.Rollback(ctx) }()

	if _, err := tx.Exec(ctx, `SELECT pg_advisory_xact_lock(hashtext($1 || '|' || $2))`, c.ViewerID, c.Profile.ID); err != nil {
		return connection.Connection{}, false, fmt.Errorf("lock connection: %w", err)
	}

	var existing int
	if err := tx.QueryRow(ctx,
		`SELECT COUNT(1) FROM connections WHERE viewer_id = $1 AND profile_id = $2`,
		c.ViewerID, c.Profile.ID,
	).Scan(&existing); err != nil {
		return connection.Connection{}, false, fmt.Errorf("lookup connection: %w", err)
	}

	saved, err := scanConnection(tx.QueryRow(ctx,
		`INSERT INTO connections (id, viewer_id, profile_id, profile, match_score, connected_at, appreciation_count)
		 VALUES ($1,$2,$3,$4,$5,$6,0)
		 ON CONFLICT (viewer_id, profile_id) DO UPDATE SET
			profile = EXCLUDED.profile,
			match_score = EXCLUDED.match_score,
			connected_at = EXCLUDED.connected_at
		 RETURNING id, viewer_id, profile, match_score, connected_at, appreciation_count`,
		c.ID,
		c.ViewerID,
		c.Profile.ID,
		snapshot,
		c.MatchScore,
		c.ConnectedAt,
	))
	if err != nil {
		return connection.Connection{}, false, err
	}

	if err := tx.Commit(ctx); err != nil {
		return connection.Connection{}, false, fmt.Errorf("commit upsert: %w", err)
	}
	return saved, existing == 0, nil
}

func (r *PostgresConnectionRepository) List(ctx context.Context, viewerID string) ([]connection.Connection, error) {
	rows, err := r.db.Query(ctx,
		`SELECT id, viewer_id, profile, match_score, connected_at, appreciation_count
		 FROM connections
		 WHERE viewer_id = $1
		 ORDER BY connected_at DESC`,
		viewerID,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]connection.Connection, 0)
	for rows.Next() {
		c, err := scanConnection(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, c)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}

func (r *PostgresConnectionRepository) GetByProfileID(ctx context.Context, viewerID, profileID string) (connection.Connection, error) {
	row := r.db.QueryRow(ctx,
		`SELECT id, viewer_id, profile, match_score, connected_at, appreciation_count
		 FROM connections
		 WHERE viewer_id = $1 AND profile_id = $2`,
		viewerID, profileID,
	)
	c, err := scanConnection(row)
	if err != nil {
		if err == sql.ErrNoRows || errors.Is(err, pgx.ErrNoRows) {
			return connection.Connection{}, connection.ErrNotFound
		}
		return connection.Connection{}, err
	}
	return c, nil
}

func (r *PostgresConnectionRepository) Delete(ctx context.Context, viewerID, connectionID string) error {
	n, err := r.db.Exec(ctx, `DELETE FROM connections WHERE viewer_id = $1 AND id = $2`, viewerID, connectionID)
	if err != nil {
		return err
	}
	if n == 0 {
		return connection.ErrNotFound
	}
	return nil
}

func (r *PostgresConnectionRepository) IncrementAppreciation(ctx context.Context, viewerID, profileID string) (connection.Connection, error) {
	row := r.db.QueryRow(ctx,
		`UPDATE connections SET appreciation_count = appreciation_count + 1
		 WHERE viewer_id = $1 AND profile_id = $2
		 RETURNING id, viewer_id, profile, match_score, connected_at, appreciation_count`,
		viewerID, profileID,
	)
	c, err := scanConnection(row)
	if err != nil {
		if err == sql.ErrNoRows || errors.Is(err, pgx.ErrNoRows) {
			return connection.Connection{}, connection.ErrNotFound
		}
		return connection.Connection{}, err
	}
	return c, nil
}

func (r *PostgresConnectionRepository) Count(ctx context.Context, viewerID string) (int, error) {
	var c int
	if err := r.db.QueryRow(ctx, `SELECT COUNT(1) FROM connections WHERE viewer_id = $1`, viewerID).Scan(&c); err != nil {
		return 0, err
	}
	return c, nil
}

func (r *PostgresConnectionRepository) Clear(ctx context.Context, viewerID string) error {
	_, err := r.db.Exec(ctx, `DELETE FROM connections WHERE viewer_id = $1`, viewerID)
	return err
}

func scanConnection(row database.Row) (connection.Connection, error) {
	var (
		c        connection.Connection
		snapshot []byte
	)
	if err := row.Scan(&c.ID, &c.ViewerID, &snapshot, &c.MatchScore, &c.ConnectedAt, &c.AppreciationCount); err != nil {
		return connection.Connection{}, err
	}
	if err := json.Unmarshal(snapshot, &c.Profile); err != nil {
		return connection.Connection{}, fmt.Errorf("decode profile snapshot %s: %w", c.ID, err)
	}
	return c, nil
}
