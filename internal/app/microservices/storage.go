package microservices

import (
	"context"
	"fmt"

	"github.com/Temutjin2k/batoda/config"
	"github.com/Temutjin2k/batoda/internal/adapter/http/handler"
	"github.com/Temutjin2k/batoda/internal/adapter/memory"
	repo "github.com/Temutjin2k/batoda/internal/adapter/postgres"
	redisrepo "github.com/Temutjin2k/batoda/internal/adapter/redis"
	"github.com/Temutjin2k/batoda/internal/domain/models"
	"github.com/Temutjin2k/batoda/internal/domain/types"
	"github.com/Temutjin2k/batoda/internal/service/alerts"
	"github.com/Temutjin2k/batoda/internal/service/auth"
	"github.com/Temutjin2k/batoda/pkg/logger"
	wrap "github.com/Temutjin2k/batoda/pkg/logger/wrapper"
	"github.com/Temutjin2k/batoda/pkg/migrator"
	"github.com/Temutjin2k/batoda/pkg/postgres"
	redisclient "github.com/Temutjin2k/batoda/pkg/redis"
	"github.com/Temutjin2k/batoda/pkg/trm"
	goredis "github.com/go-redis/redis/v8"
)

// catalog is the read-only sample data every booking component reads from.
type catalog interface {
	Drivers(ctx context.Context) ([]models.Driver, error)
	Driver(ctx context.Context, id string) (models.Driver, error)
	Locations(ctx context.Context) ([]models.Location, error)
	Location(ctx context.Context, name string) (models.Location, error)
	Alerts(ctx context.Context) ([]models.Alert, error)
	Trips(ctx context.Context) ([]models.Trip, error)
}

// storage holds the backends selected by storage.driver and redis.enabled.
type storage struct {
	catalog   catalog
	users     auth.UserRepo
	readState alerts.ReadStateStore

	db    *postgres.PostgreDB
	redis *goredis.Client

	checks map[string]handler.HealthCheckFunc
}

func openStorage(ctx context.Context, cfg config.Config, log logger.Logger) (*storage, error) {
	s := &storage{checks: make(map[string]handler.HealthCheckFunc)}

	switch cfg.Storage.Driver {
	case "postgres":
		if err := s.openPostgres(ctx, cfg.Database, log); err != nil {
			return nil, err
		}
	default:
		s.catalog = memory.NewCatalog()
		s.users = memory.NewUserRepo()
		s.readState = memory.NewReadState()
	}

	if cfg.Redis.Enabled {
		client, err := redisclient.New(ctx, redisclient.Config{
			Addr:     cfg.Redis.Addr(),
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		}, log)
		if err != nil {
			s.close()
			return nil, err
		}
		s.redis = client
		s.readState = redisrepo.NewReadState(client, cfg.Redis.ReadTTL)
		s.checks["redis"] = func(ctx context.Context) error { return client.Ping(ctx).Err() }
	}

	return s, nil
}

func (s *storage) openPostgres(ctx context.Context, cfg config.DatabaseConfig, log logger.Logger) error {
	if cfg.AutoMigrate {
		if err := migrator.Up(ctx, repo.Migrations, "migrations", cfg.GetDSN(), migrator.DefaultOptions); err != nil {
			return fmt.Errorf("failed to migrate database: %w", err)
		}
		log.Info(wrap.WithAction(ctx, types.ActionDatabaseMigrated), "database migrated")
	}

	db, err := postgres.New(ctx, cfg, postgres.PoolOptions{
		MaxConns:        cfg.MaxConns,
		MinConns:        cfg.MinConns,
		MaxConnLifetime: cfg.MaxConnLifetime,
		MaxConnIdleTime: cfg.MaxConnIdleTime,
	})
	if err != nil {
		return fmt.Errorf("failed to setup database: %w", err)
	}

	s.db = db
	s.catalog = repo.NewCatalog(db.Pool)
	s.users = repo.NewUserRepo(db.Pool)
	s.readState = repo.NewReadState(db.Pool, trm.New(db.Pool))
	s.checks["postgres"] = db.Ping
	return nil
}

func (s *storage) close() {
	if s.redis != nil {
		_ = s.redis.Close()
	}
	if s.db != nil {
		s.db.Close()
	}
}

// newAuthService builds the identity flow on top of the user repository.
func newAuthService(cfg config.Config, users auth.UserRepo, log logger.Logger) *auth.AuthService {
	identity := auth.NewLocalIdentity(users, cfg.Auth.HashIterations)
	tokens := auth.NewTokenService(cfg.Auth.JWTSecret, cfg.Auth.AccessTokenTTL)
	return auth.NewAuthService(identity, tokens, users, cfg.Auth.AccountDomain, log)
}
