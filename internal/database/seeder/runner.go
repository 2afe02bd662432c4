package seeder

import (
	"context"
	"fmt"
	"log"
	"time"

	"xrnode/internal/database"
)

type Report struct {
	Name     string
	Result   Result
	Duration time.Duration
}

type Runner struct {
	Seeders []Seeder
	Logger  *log.Logger
}

// Run executes the seeders in order and stops at the first failure. Reports
// cover every seeder that completed.
func (r Runner) Run(ctx context.Context, db database.DB) ([]Report, error) {
	if db == nil {
		return nil, fmt.Errorf("nil db")
	}

	reports := make([]Report, 0, len(r.Seeders))
	for _, s := range r.Seeders {
		if s == nil {
			continue
		}
		start := time.Now()
		res, err := s.Run(ctx, db)
		if err != nil {
			return reports, fmt.Errorf("seed %s: %w", s.Name(), err)
		}
		rep := Report{Name: s.Name(), Result: res, Duration: time.Since(start)}
		reports = append(reports, rep)
		if r.Logger != nil {
			r.Logger.Printf("Seeder | name=%s inserted=%d skipped=%d took=%s", rep.Name, res.Inserted, res.Skipped, rep.Duration.Round(time.Millisecond))
		}
	}
	return reports, nil
}
