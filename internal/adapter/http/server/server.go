package server

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/Temutjin2k/batoda/config"
	"github.com/Temutjin2k/batoda/internal/adapter/http/handler"
	"github.com/Temutjin2k/batoda/internal/adapter/http/middleware"
	wshandler "github.com/Temutjin2k/batoda/internal/adapter/http/ws"
	"github.com/Temutjin2k/batoda/internal/domain/types"
	"github.com/Temutjin2k/batoda/pkg/logger"
	wrap "github.com/Temutjin2k/batoda/pkg/logger/wrapper"
	"github.com/gorilla/handlers"
)

const serverIPAddress = "%s:%s"

// Services are the use cases served over HTTP. Auth is always required;
// the booking side may be nil in auth-service mode.
type Services struct {
	Auth      handler.AuthService
	Booking   handler.BookingService
	Alerts    handler.AlertsService
	History   handler.HistoryService
	Catalog   handler.Catalog
	Fleet     handler.FleetService
	Passenger *wshandler.PassengerWS

	HealthChecks map[string]handler.HealthCheckFunc
}

type API struct {
	mode   types.ServiceMode
	mux    *http.ServeMux
	server *http.Server
	routes *routeHandlers
	m      *middleware.Middleware

	addr string
	cfg  config.Config
	log  logger.Logger
}

type routeHandlers struct {
	health    *handler.Health
	auth      *handler.Auth
	booking   *handler.Booking
	alerts    *handler.Alerts
	trips     *handler.Trips
	places    *handler.Places
	passenger *wshandler.PassengerWS
}

func New(cfg config.Config, svc Services, logger logger.Logger) (*API, error) {
	if svc.Auth == nil {
		return nil, errors.New("auth service is required")
	}

	routes := &routeHandlers{
		health: handler.NewHealth(string(cfg.Mode), svc.HealthChecks, logger),
	}

	var port string
	switch cfg.Mode {
	case types.AuthService:
		port = cfg.Services.AuthService
		routes.auth = handler.NewAuth(svc.Auth, logger)
	case types.BookingService, types.Standalone:
		if svc.Booking == nil || svc.Alerts == nil || svc.History == nil || svc.Catalog == nil || svc.Passenger == nil {
			return nil, errors.New("booking services are required")
		}
		port = cfg.Services.BookingService
		routes.booking = handler.NewBooking(svc.Booking, logger)
		routes.alerts = handler.NewAlerts(svc.Alerts, logger)
		routes.trips = handler.NewTrips(svc.History, logger)
		routes.places = handler.NewPlaces(svc.Catalog, svc.Fleet, logger)
		routes.passenger = svc.Passenger
		if cfg.Mode == types.Standalone {
			routes.auth = handler.NewAuth(svc.Auth, logger)
		}
	default:
		return nil, fmt.Errorf("invalid mode: %s", cfg.Mode)
	}

	api := &API{
		mode:   cfg.Mode,
		mux:    http.NewServeMux(),
		routes: routes,
		m:      middleware.NewMiddleware(svc.Auth, logger),
		addr:   fmt.Sprintf(serverIPAddress, "0.0.0.0", port),
		cfg:    cfg,
		log:    logger,
	}

	setupRoutes(api.mux, api.routes, api.m, api.mode, api.log)

	api.server = &http.Server{
		Addr:              api.addr,
		Handler:           api.withMiddleware(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	return api, nil
}

// Handler returns the fully wrapped router.
func (a *API) Handler() http.Handler {
	return a.server.Handler
}

func (a *API) Stop(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	ctx = wrap.WithAction(ctx, "http_server_stop")

	a.log.Debug(ctx, "shutting down HTTP server...", "address", a.addr)
	if err := a.server.Shutdown(ctx); err != nil {
		return fmt.Errorf("error shutting down server: %w", err)
	}
	a.log.Debug(ctx, "shutting down HTTP server completed")

	return nil
}

func (a *API) Run(ctx context.Context, errCh chan<- error) {
	go func() {
		ctx = wrap.WithAction(ctx, "http_server_start")
		a.log.Info(ctx, "started http server", "address", a.addr, "mode", a.mode)
		if err := a.server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- fmt.Errorf("failed to start HTTP server: %w", err)
			return
		}
	}()
}

// withMiddleware wraps the mux, outermost first: recover, cors, request id,
// metrics, logging, auth.
func (a *API) withMiddleware() http.Handler {
	cors := handlers.CORS(
		handlers.AllowedOrigins(a.cfg.HTTP.AllowedOrigins),
		handlers.AllowedMethods([]string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodOptions}),
		handlers.AllowedHeaders([]string{"Authorization", "Content-Type", middleware.RequestIDHeader}),
		handlers.ExposedHeaders([]string{middleware.RequestIDHeader}),
	)

	var h http.Handler = a.mux
	h = a.m.Auth(h)
	h = a.m.Logging(h)
	h = a.m.Metrics(string(a.mode))(h)
	h = a.m.RequestID(h)
	h = cors(h)
	return a.m.Recover(h)
}
