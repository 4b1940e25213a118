package microservices

import (
	"context"

	"github.com/Temutjin2k/batoda/config"
	"github.com/Temutjin2k/batoda/internal/adapter/http/server"
	"github.com/Temutjin2k/batoda/pkg/logger"
)

type AuthService struct {
	storage    *storage
	httpServer *server.API

	cfg config.Config
	log logger.Logger
}

func NewAuth(ctx context.Context, cfg config.Config, log logger.Logger) (*AuthService, error) {
	store, err := openStorage(ctx, cfg, log)
	if err != nil {
		log.Error(ctx, "failed to setup storage", err)
		return nil, err
	}

	authSvc := newAuthService(cfg, store.users, log)

	httpServer, err := server.New(cfg, server.Services{
		Auth:         authSvc,
		HealthChecks: store.checks,
	}, log)
	if err != nil {
		store.close()
		log.Error(ctx, "failed to setup http server", err)
		return nil, err
	}

	return &AuthService{
		storage:    store,
		httpServer: httpServer,
		cfg:        cfg,
		log:        log,
	}, nil
}

func (s *AuthService) Start(ctx context.Context) error {
	return serve(ctx, "auth service", s.httpServer, s.log, s.close)
}

func (s *AuthService) close(ctx context.Context) {
	if err := s.httpServer.Stop(ctx); err != nil {
		s.log.Warn(ctx, "failed to gracefully close http server", "error", err.Error())
	}
	s.storage.close()
}
