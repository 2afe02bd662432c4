package seeder

import (
	"context"

	"xrnode/internal/database"
)

// Seeder writes one fixed dataset. Re-running it must leave existing rows
// untouched and report them as skipped.
type Seeder interface {
	Name() string
	Run(ctx context.Context, db database.DB) (Result, error)
}

type Result struct {
	Inserted int
	Skipped  int
}
