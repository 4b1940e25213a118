package app

import (
	"context"
	"errors"
	"fmt"

	"github.com/Temutjin2k/batoda/config"
	"github.com/Temutjin2k/batoda/internal/app/microservices"
	"github.com/Temutjin2k/batoda/internal/domain/types"
	"github.com/Temutjin2k/batoda/pkg/logger"
)

var (
	ErrInvalidMode           = errors.New("invalid mode")
	ErrServiceNotInitialized = errors.New("service not initialized")
)

type Service interface {
	Start(ctx context.Context) error
}

type App struct {
	mode    types.ServiceMode
	service Service

	cfg config.Config
	log logger.Logger
}

func NewApplication(ctx context.Context, cfg config.Config, log logger.Logger) (*App, error) {
	app := &App{
		mode: cfg.Mode,
		cfg:  cfg,
		log:  log,
	}

	if err := app.initService(ctx, app.mode); err != nil {
		return nil, err
	}

	return app, nil
}

func (a *App) Run(ctx context.Context) error {
	if a.service == nil {
		return ErrServiceNotInitialized
	}
	return a.service.Start(ctx)
}

func (a *App) initService(ctx context.Context, mode types.ServiceMode) error {
	var (
		service Service
		err     error
	)
	switch mode {
	case types.BookingService, types.Standalone:
		service, err = microservices.NewBooking(ctx, a.cfg, a.log)
	case types.AuthService:
		service, err = microservices.NewAuth(ctx, a.cfg, a.log)
	default:
		return fmt.Errorf("%w: %q", ErrInvalidMode, mode)
	}

	if err != nil {
		return fmt.Errorf("failed to init service: %w", err)
	}

	a.service = service
	return nil
}
