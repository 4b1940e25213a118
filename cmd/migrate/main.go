// Command migrate applies the database migrations and exits. The services
// do the same on start when database.automigrate is true.
package main

import (
	"context"
	"errors"
	"flag"
	"os"

	"github.com/Temutjin2k/batoda/config"
	repo "github.com/Temutjin2k/batoda/internal/adapter/postgres"
	"github.com/Temutjin2k/batoda/internal/domain/types"
	"github.com/Temutjin2k/batoda/pkg/logger"
	wrap "github.com/Temutjin2k/batoda/pkg/logger/wrapper"
	"github.com/Temutjin2k/batoda/pkg/migrator"
	"github.com/joho/godotenv"
)

var configPath = flag.String("config-path", "config.yaml", "Path to the config yaml file")

func main() {
	flag.Parse()

	ctx := wrap.WithAction(context.Background(), types.ActionDatabaseMigrated)
	log := logger.InitLogger("migrate", logger.LevelInfo)

	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		log.Warn(ctx, "failed to load .env file", "error", err.Error())
	}

	cfg, err := config.LoadDatabase(*configPath)
	if err != nil {
		log.Error(ctx, "failed to load config", err)
		os.Exit(1)
	}

	if err := migrator.Up(ctx, repo.Migrations, "migrations", cfg.GetDSN(), migrator.DefaultOptions); err != nil {
		log.Error(ctx, "migration failed", err)
		os.Exit(1)
	}

	log.Info(ctx, "migrations applied successfully", "host", cfg.Host, "database", cfg.Database)
}
