package server

import (
	"context"
	"net/http"

	"github.com/Temutjin2k/batoda/internal/adapter/http/middleware"
	"github.com/Temutjin2k/batoda/internal/domain/types"
	"github.com/Temutjin2k/batoda/pkg/logger"
	wrap "github.com/Temutjin2k/batoda/pkg/logger/wrapper"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	httpSwagger "github.com/swaggo/http-swagger"
)

func setupRoutes(mux *http.ServeMux, routes *routeHandlers, m *middleware.Middleware, mode types.ServiceMode, log logger.Logger) {
	mux.HandleFunc("GET /health", routes.health.HealthCheck)

	setupSwaggerRoutes(mux, mode, log)
	setupMetricsRoute(mux)

	switch mode {
	case types.BookingService:
		setupBookingRoutes(mux, routes, m)
	case types.AuthService:
		setupAuthRoutes(mux, routes)
	case types.Standalone:
		setupAuthRoutes(mux, routes)
		setupBookingRoutes(mux, routes, m)
	}
}

func setupBookingRoutes(mux *http.ServeMux, routes *routeHandlers, m *middleware.Middleware) {
	// Catalog
	mux.HandleFunc("GET /locations", routes.places.Locations)
	mux.HandleFunc("GET /drivers", routes.places.Drivers)

	// Booking flow
	mux.Handle("GET /booking", m.RequirePassenger(routes.booking.Get))
	mux.Handle("PUT /booking/route", m.RequirePassenger(routes.booking.SetRoute))
	mux.Handle("POST /booking/driver", m.RequirePassenger(routes.booking.SelectDriver))
	mux.Handle("POST /booking/book", m.RequirePassenger(routes.booking.Book))
	mux.Handle("POST /booking/arrival", m.RequirePassenger(routes.booking.ConfirmArrival))
	mux.Handle("POST /booking/cancel", m.RequirePassenger(routes.booking.RequestCancel))
	mux.Handle("POST /booking/cancel/confirm", m.RequirePassenger(routes.booking.ConfirmCancel))
	mux.Handle("POST /booking/cancel/dismiss", m.RequirePassenger(routes.booking.DismissCancel))
	mux.Handle("POST /booking/rating", m.RequirePassenger(routes.booking.Rate))
	mux.Handle("POST /booking/reset", m.RequirePassenger(routes.booking.Reset))

	// Alerts
	mux.Handle("GET /alerts", m.RequirePassenger(routes.alerts.List))
	mux.Handle("POST /alerts/{alert_id}/read", m.RequirePassenger(routes.alerts.MarkRead))
	mux.Handle("POST /alerts/read-all", m.RequirePassenger(routes.alerts.MarkAllRead))

	// History
	mux.Handle("GET /trips", m.RequirePassenger(routes.trips.List))

	// Booking stream, authenticated by the first frame
	mux.HandleFunc("GET /ws/passengers", routes.passenger.HandleWebSocket)
}

func setupAuthRoutes(mux *http.ServeMux, routes *routeHandlers) {
	mux.HandleFunc("POST /auth/register", routes.auth.Register)
	mux.HandleFunc("POST /auth/login", routes.auth.Login)
	mux.HandleFunc("GET /auth/me", routes.auth.Profile)
}

// setupSwaggerRoutes serves the API docs registered for the service mode.
func setupSwaggerRoutes(mux *http.ServeMux, mode types.ServiceMode, log logger.Logger) {
	var instanceName string

	switch mode {
	case types.BookingService:
		instanceName = "booking"
	case types.AuthService:
		instanceName = "auth"
	case types.Standalone:
		instanceName = "standalone"
	default:
		log.Warn(wrap.WithAction(context.Background(), "setup_swagger_routes"), "unknown service mode for swagger setup", "mode", mode)
		return
	}

	mux.HandleFunc("/swagger/", httpSwagger.Handler(httpSwagger.InstanceName(instanceName)))
}

func setupMetricsRoute(mux *http.ServeMux) {
	mux.Handle("GET /metrics", promhttp.Handler())
}
