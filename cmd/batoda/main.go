package main

import (
	"context"
	"errors"
	"flag"
	"os"

	"github.com/Temutjin2k/batoda/config"
	"github.com/Temutjin2k/batoda/internal/app"
	"github.com/Temutjin2k/batoda/pkg/logger"
	"github.com/joho/godotenv"

	_ "github.com/Temutjin2k/batoda/docs"
)

var (
	helpFlag   = flag.Bool("help", false, "Show help message")
	configPath = flag.String("config-path", "config.yaml", "Path to the config yaml file")
)

func main() {
	flag.Parse()
	if *helpFlag {
		config.PrintHelp()
		return
	}

	ctx := context.Background()
	log := logger.InitLogger("batoda", logger.LevelDebug)

	// .env is optional; real environment variables win.
	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		log.Warn(ctx, "failed to load .env file", "error", err.Error())
	}

	cfg, err := config.NewConfig(*configPath)
	if err != nil {
		log.Error(ctx, "failed to configure application", err)
		config.PrintHelp()
		os.Exit(1)
	}

	config.PrintConfig(cfg)

	log = logger.InitLogger(string(cfg.Mode), cfg.LogLevel)

	application, err := app.NewApplication(ctx, *cfg, log)
	if err != nil {
		log.Error(ctx, "failed to init application", err)
		os.Exit(1)
	}

	if err = application.Run(ctx); err != nil {
		log.Error(ctx, "failed to run application", err)
		os.Exit(1)
	}
}
