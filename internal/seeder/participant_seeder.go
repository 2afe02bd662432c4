package seeder

import (
	"context"
	"fmt"

	"xrnode/internal/database"
	dbseeder "xrnode/internal/database/seeder"

	"golang.org/x/crypto/bcrypt"
)

type ParticipantSeeder struct {
	HashCost int
}

func (ParticipantSeeder) Name() string { return "participants" }

// Run inserts the roster with hashed check-in codes. Participants already
// present keep their row and code.
func (s ParticipantSeeder) Run(ctx context.Context, db database.DB) (dbseeder.Result, error) {
	if err := ensureTableColumns(ctx, db, "participants",
		"id",
		"name",
		"role",
		"company",
		"bio",
		"skills",
		"interests",
		"image_url",
		"linkedin_url",
		"location",
		"experience_years",
		"checkin_hash",
		"created_at",
		"updated_at",
	); err != nil {
		return dbseeder.Result{}, err
	}

	cost := s.HashCost
	if cost <= 0 {
		cost = bcrypt.DefaultCost
	}

	var res dbseeder.Result
	for _, it := range Participants() {
		hash, err := bcrypt.GenerateFromPassword([]byte(it.CheckinCode), cost)
		if err != nil {
			return res, fmt.Errorf("hash checkin code %s: %w", it.Profile.ID, err)
		}

		p := it.Profile
		var location *string
		if p.Location != "" {
			location = &p.Location
		}

		n, err := db.Exec(ctx,
			`INSERT INTO participants (
				id, name, role, company, bio, skills, interests,
				image_url, linkedin_url, location, experience_years, checkin_hash
			)
			VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11,$12)
			ON CONFLICT (id) DO NOTHING`,
			p.ID,
			p.Name,
			p.Role,
			p.Company,
			p.Bio,
			p.Skills,
			p.Interests,
			p.ImageURL,
			p.LinkedInURL,
			location,
			p.ExperienceYears,
			string(hash),
		)
		if err != nil {
			return res, fmt.Errorf("insert participant %s: %w", p.ID, err)
		}
		if n == 0 {
			res.Skipped++
		} else {
			res.Inserted++
		}
	}

	return res, nil
}

func ensureTableColumns(ctx context.Context, db database.DB, table string, columns ...string) error {
	if db == nil {
		return fmt.Errorf("nil db")
	}
	if table == "" {
		return fmt.Errorf("empty table")
	}
	for _, col := range columns {
		if col == "" {
			return fmt.Errorf("empty column")
		}
	}

	rows, err := db.Query(
		ctx,
		`SELECT column_name FROM information_schema.columns WHERE table_schema='public' AND table_name=$1`,
		table,
	)
	if err != nil {
		return err
	}
	defer rows.Close()

	existing := map[string]struct{}{}
	for rows.Next() {
		var c string
		if err := rows.Scan(&c); err != nil {
			return err
		}
		existing[c] = struct{}{}
	}
	if err := rows.Err(); err != nil {
		return err
	}

	for _, col := range columns {
		if _, ok := existing[col]; !ok {
			return fmt.Errorf("schema mismatch: missing column %s.%s", table, col)
		}
	}
	return nil
}

// Defaults lists the seeders run by auto-seed and the CLI seed command.
func Defaults(hashCost int) []dbseeder.Seeder {
	return []dbseeder.Seeder{
		ParticipantSeeder{HashCost: hashCost},
	}
}
