package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"time"

	"xrnode/internal/config"
	"xrnode/internal/database"
	"xrnode/internal/database/migration"
	dbpostgres "xrnode/internal/database/postgres"
	dbseeder "xrnode/internal/database/seeder"
	"xrnode/internal/seeder"
	"xrnode/migrations"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

// bindDatabaseEnv maps db.* keys onto the same DB_* variables the server
// reads, so one environment serves both binaries.
func bindDatabaseEnv(v *viper.Viper) {
	for key, env := range map[string]string{
		"db.host":           "DB_HOST",
		"db.port":           "DB_PORT",
		"db.name":           "DB_NAME",
		"db.user":           "DB_USER",
		"db.password":       "DB_PASSWORD",
		"db.ssl_mode":       "DB_SSL_MODE",
		"db.migrations_dir": "DB_MIGRATIONS_DIR",
		"checkin_hash_cost": "CHECKIN_HASH_COST",
	} {
		_ = v.BindEnv(key, env)
	}
	v.SetDefault("db.port", "5432")
	v.SetDefault("db.ssl_mode", "disable")
}

func databaseConfig(v *viper.Viper) config.DatabaseConfig {
	return config.DatabaseConfig{
		DBHost:         v.GetString("db.host"),
		DBPort:         v.GetString("db.port"),
		DBName:         v.GetString("db.name"),
		DBUser:         v.GetString("db.user"),
		DBPassword:     v.GetString("db.password"),
		DBSSLMode:      v.GetString("db.ssl_mode"),
		ConnectTimeout: 10 * time.Second,
		MigrationsDir:  v.GetString("db.migrations_dir"),
	}
}

func openDB(ctx context.Context, v *viper.Viper) (database.DB, error) {
	cfg := databaseConfig(v)
	if !cfg.Enabled() {
		return nil, fmt.Errorf("database not configured: set DB_HOST or db.host")
	}
	return dbpostgres.Connect(ctx, cfg, "xrnodectl")
}

func migrationRunner(v *viper.Viper) migration.Runner {
	r := migration.Runner{FS: migrations.Files, Logger: log.New(os.Stderr, "", log.LstdFlags)}
	if dir := v.GetString("db.migrations_dir"); dir != "" {
		r.FS = nil
		r.Dir = dir
	}
	return r
}

func newMigrateCommand(v *viper.Viper) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "migrate",
		Short: "Manage the participants schema",
	}

	cmd.AddCommand(&cobra.Command{
		Use:   "up",
		Short: "Apply pending migrations",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx, cancel := context.WithTimeout(cmd.Context(), time.Minute)
			defer cancel()

			db, err := openDB(ctx, v)
			if err != nil {
				return err
			}
			defer func() { _ = db.Close() }()

			return migrationRunner(v).Run(ctx, db.SQLDB())
		},
	})

	cmd.AddCommand(&cobra.Command{
		Use:   "status",
		Short: "Show applied and pending migrations",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx, cancel := context.WithTimeout(cmd.Context(), 30*time.Second)
			defer cancel()

			db, err := openDB(ctx, v)
			if err != nil {
				return err
			}
			defer func() { _ = db.Close() }()

			items, err := migrationRunner(v).Status(ctx, db.SQLDB())
			if err != nil {
				return err
			}

			w := cmd.OutOrStdout()
			for _, it := range items {
				state := "pending"
				if it.Applied {
					state = "applied " + it.AppliedAt.UTC().Format(time.RFC3339)
				}
				fmt.Fprintf(w, "V%d %-24s %s\n", it.Version, it.Name, state)
			}
			return nil
		},
	})
	return cmd
}

func newSeedCommand(v *viper.Viper) *cobra.Command {
	return &cobra.Command{
		Use:   "seed",
		Short: "Insert the event roster and check-in codes",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx, cancel := context.WithTimeout(cmd.Context(), time.Minute)
			defer cancel()

			db, err := openDB(ctx, v)
			if err != nil {
				return err
			}
			defer func() { _ = db.Close() }()

			runner := dbseeder.Runner{Seeders: seeder.Defaults(v.GetInt("checkin_hash_cost"))}
			reports, err := runner.Run(ctx, db)
			if err != nil {
				return err
			}
			for _, r := range reports {
				fmt.Fprintf(cmd.OutOrStdout(), "seeded %s: inserted=%d skipped=%d\n", r.Name, r.Result.Inserted, r.Result.Skipped)
			}
			return nil
		},
	}
}
