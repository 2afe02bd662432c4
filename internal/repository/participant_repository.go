package repository

import (
	"context"
	"database/sql"
	"errors"
	"strings"
	"time"

	"xrnode/internal/database"
	"xrnode/internal/domain/profile"

	"github.com/jackc/pgx/v5"
)

const participantColumns = `id, name, role, company, bio, skills, interests,
	image_url, linkedin_url, location, experience_years, created_at, updated_at`

type PostgresParticipantRepository struct {
	db database.DB
}

func NewPostgresParticipantRepository(db database.DB) *PostgresParticipantRepository {
	return &PostgresParticipantRepository{db: db}
}

func (r *PostgresParticipantRepository) GetByID(ctx context.Context, id string) (profile.Profile, error) {
	row := r.db.QueryRow(ctx, `SELECT `+participantColumns+` FROM participants WHERE id = $1`, id)
	p, err := scanParticipant(row)
	if err != nil {
		if err == sql.ErrNoRows || errors.Is(err, pgx.ErrNoRows) {
			return profile.Profile{}, profile.ErrNotFound
		}
		return profile.Profile{}, err
	}
	return p, nil
}

func (r *PostgresParticipantRepository) List(ctx context.Context) ([]profile.Profile, error) {
	return r.query(ctx, `SELECT `+participantColumns+` FROM participants ORDER BY id ASC`)
}

func (r *PostgresParticipantRepository) Search(ctx context.Context, query string) ([]profile.Profile, error) {
	q := strings.TrimSpace(query)
	if q == "" {
		return r.List(ctx)
	}
	pattern := "%" + escapeLike(q) + "%"
	return r.query(ctx,
		`SELECT `+participantColumns+`
		 FROM participants
		 WHERE name ILIKE $1
			OR role ILIKE $1
			OR company ILIKE $1
			OR EXISTS (SELECT 1 FROM unnest(skills) s WHERE s ILIKE $1)
			OR EXISTS (SELECT 1 FROM unnest(interests) i WHERE i ILIKE $1)
		 ORDER BY id ASC`,
		pattern,
	)
}

func (r *PostgresParticipantRepository) Upsert(ctx context.Context, p profile.Profile) error {
	_, err := r.db.Exec(ctx,
		`INSERT INTO participants (
			id, name, role, company, bio, skills, interests,
			image_url, linkedin_url, location, experience_years
		)
		VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11)
		ON CONFLICT (id) DO UPDATE SET
			name = EXCLUDED.name,
			role = EXCLUDED.role,
			company = EXCLUDED.company,
			bio = EXCLUDED.bio,
			skills = EXCLUDED.skills,
			interests = EXCLUDED.interests,
			image_url = EXCLUDED.image_url,
			linkedin_url = EXCLUDED.linkedin_url,
			location = EXCLUDED.location,
			experience_years = EXCLUDED.experience_years,
			updated_at = now()`,
		p.ID,
		p.Name,
		p.Role,
		p.Company,
		p.Bio,
		nonNil(p.Skills),
		nonNil(p.Interests),
		p.ImageURL,
		p.LinkedInURL,
		nullableString(p.Location),
		p.ExperienceYears,
	)
	return err
}

func (r *PostgresParticipantRepository) CheckinHash(ctx context.Context, id string) (string, error) {
	var hash string
	err := r.db.QueryRow(ctx, `SELECT checkin_hash FROM participants WHERE id = $1`, id).Scan(&hash)
	if err != nil {
		if err == sql.ErrNoRows || errors.Is(err, pgx.ErrNoRows) {
			return "", profile.ErrNotFound
		}
		return "", err
	}
	return hash, nil
}

func (r *PostgresParticipantRepository) SetCheckinHash(ctx context.Context, id, hash string) error {
	n, err := r.db.Exec(ctx,
		`UPDATE participants SET checkin_hash = $2, updated_at = now() WHERE id = $1`,
		id, hash,
	)
	if err != nil {
		return err
	}
	if n == 0 {
		return profile.ErrNotFound
	}
	return nil
}

func (r *PostgresParticipantRepository) query(ctx context.Context, q string, args ...any) ([]profile.Profile, error) {
	rows, err := r.db.Query(ctx, q, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]profile.Profile, 0)
	for rows.Next() {
		p, err := scanParticipant(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, p)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}

func scanParticipant(row database.Row) (profile.Profile, error) {
	var (
		p         profile.Profile
		location  *string
		years     *int32
		createdAt time.Time
		updatedAt time.Time
	)
	if err := row.Scan(
		&p.ID,
		&p.Name,
		&p.Role,
		&p.Company,
		&p.Bio,
		&p.Skills,
		&p.Interests,
		&p.ImageURL,
		&p.LinkedInURL,
		&location,
		&years,
		&createdAt,
		&updatedAt,
	); err != nil {
		return profile.Profile{}, err
	}
	if location != nil {
		p.Location = *location
	}
	if years != nil {
		p.ExperienceYears = profile.Years(int(*years))
	}
	p.CreatedAt = createdAt
	p.UpdatedAt = updatedAt
	return profile.Normalize(p), nil
}

func escapeLike(s string) string {
	r := strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)
	return r.Replace(s)
}

func nullableString(s string) *string {
	if strings.TrimSpace(s) == "" {
		return nil
	}
	return &s
}

func nonNil(in []string) []string {
	if in == nil {
		return []string{}
	}
	return in
}
