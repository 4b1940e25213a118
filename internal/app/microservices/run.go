package microservices

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/Temutjin2k/batoda/internal/adapter/http/server"
	"github.com/Temutjin2k/batoda/pkg/logger"
)

// serve runs the HTTP server until it fails, ctx is done or the process is
// signalled to stop. closeFn is always called before returning.
func serve(ctx context.Context, name string, httpServer *server.API, log logger.Logger, closeFn func(ctx context.Context)) error {
	errCh := make(chan error, 1)
	httpServer.Run(ctx, errCh)

	defer func() {
		closeFn(context.WithoutCancel(ctx))
		log.Info(ctx, name+" closed")
	}()

	shutdownCh := make(chan os.Signal, 1)
	signal.Notify(shutdownCh, syscall.SIGINT, syscall.SIGTERM)
	defer signal.Stop(shutdownCh)

	log.Info(ctx, name+" started")

	select {
	case errRun := <-errCh:
		return errRun
	case sig := <-shutdownCh:
		log.Info(ctx, "shutting down application", "signal", sig.String())
		return nil
	case <-ctx.Done():
		return nil
	}
}
