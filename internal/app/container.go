package app

import (
	"context"
	"errors"
	"fmt"
	"log"
	"os"
	"time"

	"xrnode/internal/config"
	"xrnode/internal/database"
	"xrnode/internal/database/migration"
	dbpostgres "xrnode/internal/database/postgres"
	dbseeder "xrnode/internal/database/seeder"
	"xrnode/internal/delivery/http/handler"
	"xrnode/internal/domain/connection"
	"xrnode/internal/domain/handshake"
	"xrnode/internal/domain/matching"
	"xrnode/internal/domain/profile"
	"xrnode/internal/infrastructure/cache"
	"xrnode/internal/metrics"
	"xrnode/internal/pkg/jwt"
	"xrnode/internal/repository"
	"xrnode/internal/seeder"
	"xrnode/internal/usecase"
	"xrnode/internal/ws"
	"xrnode/migrations"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
)

// Container owns every long-lived dependency of the server.
type Container struct {
	Config   config.Config
	Logger   *log.Logger
	DB       database.DB
	Cache    *cache.Redis
	Registry *prometheus.Registry
	Metrics  metrics.Recorder
	Hub      *ws.Hub
	JWT      jwt.Service

	Participants profile.Repository
	Credentials  profile.Credentials
	Connections  connection.Repository

	Auth       usecase.AuthUsecase
	Profiles   usecase.ProfileUsecase
	Matches    usecase.MatchUsecase
	Scans      usecase.ScanUsecase
	Directory  usecase.DirectoryUsecase
	Connect    usecase.ConnectionUsecase
	Handshakes usecase.HandshakeUsecase
}

func NewContainer(cfg config.Config) (*Container, error) {
	logger := log.New(os.Stdout, "", log.LstdFlags|log.Lmicroseconds)

	c := &Container{Config: cfg, Logger: logger}
	if err := c.initStores(); err != nil {
		_ = c.Close()
		return nil, err
	}
	if err := c.initServices(); err != nil {
		_ = c.Close()
		return nil, err
	}
	return c, nil
}

func (c *Container) initStores() error {
	cfg := c.Config

	if !cfg.Database.Enabled() {
		c.Logger.Printf("Storage | mode=memory participants=%d", len(seeder.Participants()))
		participants := repository.NewMemoryParticipantRepository(seeder.Profiles())
		c.Participants = participants
		c.Credentials = participants
		c.Connections = repository.NewMemoryConnectionRepository()
		return nil
	}

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	db, err := dbpostgres.Connect(ctx, cfg.Database, cfg.App.AppName)
	if err != nil {
		return err
	}
	c.DB = db

	if cfg.Database.AutoMigrate {
		r := migration.Runner{FS: migrations.Files, Dir: cfg.Database.MigrationsDir, Logger: c.Logger}
		if cfg.Database.MigrationsDir != "" {
			r.FS = nil
		}
		if err := r.Run(ctx, db.SQLDB()); err != nil {
			return fmt.Errorf("migrate: %w", err)
		}
	}
	if cfg.Database.AutoSeed {
		r := dbseeder.Runner{Seeders: seeder.Defaults(cfg.Event.CheckinHashCost), Logger: c.Logger}
		if _, err := r.Run(ctx, db); err != nil {
			return fmt.Errorf("seed: %w", err)
		}
	}

	participants := repository.NewPostgresParticipantRepository(db)
	c.Participants = participants
	c.Credentials = participants
	c.Connections = repository.NewPostgresConnectionRepository(db)
	c.Logger.Printf("Storage | mode=postgres host=%s db=%s", cfg.Database.DBHost, cfg.Database.DBName)
	return nil
}

func (c *Container) initServices() error {
	cfg := c.Config

	c.Cache = cache.NewRedis(cfg.Redis, c.Logger)

	c.Registry = prometheus.NewRegistry()
	c.Registry.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
	rec, err := metrics.NewPrometheus("xrnode", c.Registry)
	if err != nil {
		return fmt.Errorf("metrics: %w", err)
	}
	c.Metrics = rec

	c.Hub = ws.NewHub(c.Logger)
	go c.Hub.Run()
	notifier := ws.NewHubNotifier(c.Hub, c.Logger)

	matchCfg := matching.DefaultConfig()
	if cfg.Matching.ConfigFile != "" {
		matchCfg, err = matching.LoadConfig(cfg.Matching.ConfigFile)
		if err != nil {
			return fmt.Errorf("matching config: %w", err)
		}
		c.Logger.Printf("Matching | config=%s", cfg.Matching.ConfigFile)
	}
	engine := matching.NewEngine(matchCfg)

	c.JWT = jwt.NewHMACService(
		cfg.JWT.AccessSecret,
		cfg.JWT.RefreshSecret,
		cfg.JWT.AccessExpiresIn,
		cfg.JWT.RefreshExpiresIn,
		cfg.Event.Name,
	)

	matcher := usecase.NewMatchUsecase(engine, c.Participants, c.Cache, cfg.Matching.CacheTTL, c.Metrics, c.Logger)
	connections := usecase.NewConnectionUsecase(c.Connections, c.Participants, matcher, notifier, c.Metrics, c.Logger)
	auth := usecase.NewAuthUsecase(c.Participants, c.Credentials, c.JWT, cfg.Event.CheckinHashCost)

	c.Matches = matcher
	c.Connect = connections
	c.Auth = auth
	c.Profiles = usecase.NewProfileUsecase(c.Participants, matcher, notifier, c.Logger)
	c.Scans = usecase.NewScanUsecase(
		c.Participants,
		c.Connections,
		matcher,
		c.Cache,
		usecase.ScanOptions{Prefix: cfg.Event.QRPrefix, Debounce: cfg.Event.ScanDebounce},
		notifier,
		c.Metrics,
		c.Logger,
	)
	c.Directory = usecase.NewDirectoryUsecase(c.Participants, c.Connections, matcher, cfg.Directory.Workers, c.Metrics, c.Logger)
	c.Handshakes = usecase.NewHandshakeUsecase(
		matcher,
		connections,
		handshake.Options{Proximity: handshake.DefaultProximity, Hold: handshake.DefaultHold},
		notifier,
		c.Metrics,
		c.Logger,
	)

	if !cfg.Database.Enabled() {
		if err := c.seedMemoryCodes(); err != nil {
			return err
		}
	}
	return nil
}

func (c *Container) seedMemoryCodes() error {
	ctx := context.Background()
	for _, p := range seeder.Participants() {
		if err := c.Auth.SetCheckinCode(ctx, p.Profile.ID, p.CheckinCode); err != nil {
			return fmt.Errorf("seed checkin code %s: %w", p.Profile.ID, err)
		}
	}
	return nil
}

// Pingers lists the optional backends reported by the health endpoint.
func (c *Container) Pingers() map[string]handler.Pinger {
	out := map[string]handler.Pinger{}
	if c.DB != nil {
		out["postgres"] = c.DB
	}
	if c.Config.Redis.Enabled() && c.Cache != nil {
		out["redis"] = c.Cache
	}
	return out
}

func (c *Container) Close() error {
	if c == nil {
		return nil
	}

	var errs []error
	if c.Hub != nil {
		c.Hub.Stop()
	}
	if c.Cache != nil {
		errs = append(errs, c.Cache.Close())
	}
	if c.DB != nil {
		errs = append(errs, c.DB.Close())
	}
	return errors.Join(errs...)
}
