package server

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/Temutjin2k/batoda/config"
	"github.com/Temutjin2k/batoda/internal/adapter/http/middleware"
	wshandler "github.com/Temutjin2k/batoda/internal/adapter/http/ws"
	"github.com/Temutjin2k/batoda/internal/adapter/memory"
	"github.com/Temutjin2k/batoda/internal/domain/types"
	"github.com/Temutjin2k/batoda/internal/service/alerts"
	"github.com/Temutjin2k/batoda/internal/service/auth"
	"github.com/Temutjin2k/batoda/internal/service/booking"
	"github.com/Temutjin2k/batoda/internal/service/fleet"
	"github.com/Temutjin2k/batoda/internal/service/history"
	"github.com/Temutjin2k/batoda/pkg/logger"
	ws "github.com/Temutjin2k/batoda/pkg/wsHub"
)

func newTestAPI(t *testing.T, mode types.ServiceMode) http.Handler {
	t.Helper()

	log := logger.Discard()
	catalog := memory.NewCatalog()
	users := memory.NewUserRepo()

	authSvc := auth.NewAuthService(
		auth.NewLocalIdentity(users, 1000),
		auth.NewTokenService("test-secret", time.Hour),
		users, "batoda.ph", log,
	)

	bookingSvc := booking.NewService(catalog, booking.Config{
		Timing:             booking.Timing{ConfirmDelay: time.Hour, TickInterval: time.Hour, DefaultETA: 5},
		Fare:               50,
		Currency:           "PHP",
		DefaultPickup:      "Basco Terminal",
		DefaultDestination: "Marlboro Hills",
	}, nil, log)
	t.Cleanup(bookingSvc.Close)

	hub := ws.NewConnHub(log)
	t.Cleanup(hub.Close)

	cfg := config.Config{Mode: mode}
	cfg.HTTP.AllowedOrigins = []string{"*"}

	api, err := New(cfg, Services{
		Auth:      authSvc,
		Booking:   bookingSvc,
		Alerts:    alerts.NewService(catalog, memory.NewReadState(), log),
		History:   history.NewView(catalog),
		Catalog:   catalog,
		Fleet:     fleet.NewService(catalog, 10),
		Passenger: wshandler.NewPassengerWS(hub, authSvc, bookingSvc, time.Second, log),
	}, log)
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}
	return api.Handler()
}

func do(t *testing.T, h http.Handler, method, path, token string, body any) (*httptest.ResponseRecorder, map[string]any) {
	t.Helper()

	var buf bytes.Buffer
	if body != nil {
		if err := json.NewEncoder(&buf).Encode(body); err != nil {
			t.Fatalf("encode body: %v", err)
		}
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	out := map[string]any{}
	if rec.Body.Len() > 0 && rec.Header().Get("Content-Type") == "application/json" {
		if err := json.Unmarshal(rec.Body.Bytes(), &out); err != nil {
			t.Fatalf("decode %s %s response: %v", method, path, err)
		}
	}
	return rec, out
}

func register(t *testing.T, h http.Handler) string {
	t.Helper()

	rec, body := do(t, h, http.MethodPost, "/auth/register", "", map[string]string{
		"phone": "09171234567", "name": "Ana", "password": "secret123",
	})
	if rec.Code != http.StatusCreated {
		t.Fatalf("register status = %d, body = %s", rec.Code, rec.Body.String())
	}
	session, _ := body["session"].(map[string]any)
	token, _ := session["access_token"].(string)
	if token == "" {
		t.Fatalf("register returned no token: %v", body)
	}
	if session["next"] != "home" {
		t.Fatalf("next = %v, want home", session["next"])
	}
	return token
}

func TestAPI_Health(t *testing.T) {
	h := newTestAPI(t, types.Standalone)

	rec, body := do(t, h, http.MethodGet, "/health", "", nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d", rec.Code)
	}
	if body["status"] != "available" {
		t.Fatalf("status field = %v", body["status"])
	}
	if rec.Header().Get(middleware.RequestIDHeader) == "" {
		t.Fatal("missing request id header")
	}
}

func TestAPI_BookingRequiresToken(t *testing.T) {
	h := newTestAPI(t, types.Standalone)

	rec, _ := do(t, h, http.MethodGet, "/booking", "", nil)
	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("status = %d, want 401", rec.Code)
	}

	rec, _ = do(t, h, http.MethodGet, "/booking", "not-a-token", nil)
	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("bad token status = %d, want 401", rec.Code)
	}
}

func TestAPI_LoginFailureIsGeneric(t *testing.T) {
	h := newTestAPI(t, types.Standalone)
	register(t, h)

	rec, body := do(t, h, http.MethodPost, "/auth/login", "", map[string]string{
		"phone": "09171234567", "password": "wrong-pass",
	})
	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("status = %d, want 401", rec.Code)
	}
	if body["error"] != types.ErrAuthentication.Error() {
		t.Fatalf("error = %v", body["error"])
	}

	rec, _ = do(t, h, http.MethodPost, "/auth/login", "", map[string]string{"password": "secret123"})
	if rec.Code != http.StatusUnprocessableEntity {
		t.Fatalf("empty phone status = %d, want 422", rec.Code)
	}
}

func TestAPI_BookingFlow(t *testing.T) {
	h := newTestAPI(t, types.Standalone)
	token := register(t, h)

	rec, body := do(t, h, http.MethodGet, "/booking", token, nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("get booking status = %d", rec.Code)
	}
	snap := body["booking"].(map[string]any)
	if snap["status"] != "home" || snap["pickup"] != "Basco Terminal" {
		t.Fatalf("initial booking = %v", snap)
	}

	rec, _ = do(t, h, http.MethodPost, "/booking/book", token, nil)
	if rec.Code != http.StatusUnprocessableEntity {
		t.Fatalf("book without driver status = %d, want 422", rec.Code)
	}

	rec, _ = do(t, h, http.MethodPut, "/booking/route", token, map[string]string{"destination": "Basco Terminal"})
	if rec.Code != http.StatusUnprocessableEntity {
		t.Fatalf("same pickup and destination status = %d, want 422", rec.Code)
	}

	rec, _ = do(t, h, http.MethodPost, "/booking/driver", token, map[string]string{"driver_id": "BT-404"})
	if rec.Code != http.StatusNotFound {
		t.Fatalf("unknown driver status = %d, want 404", rec.Code)
	}

	rec, _ = do(t, h, http.MethodPost, "/booking/driver", token, map[string]string{"driver_id": "BT-012"})
	if rec.Code != http.StatusOK {
		t.Fatalf("select driver status = %d, body = %s", rec.Code, rec.Body.String())
	}

	rec, body = do(t, h, http.MethodPost, "/booking/book", token, nil)
	if rec.Code != http.StatusAccepted {
		t.Fatalf("book status = %d", rec.Code)
	}
	if snap := body["booking"].(map[string]any); snap["submitting"] != true {
		t.Fatalf("booking not submitting: %v", snap)
	}

	rec, _ = do(t, h, http.MethodPost, "/booking/book", token, nil)
	if rec.Code != http.StatusConflict {
		t.Fatalf("second book status = %d, want 409", rec.Code)
	}

	rec, _ = do(t, h, http.MethodPost, "/booking/rating", token, map[string]int{"stars": 5})
	if rec.Code != http.StatusConflict {
		t.Fatalf("rating before completion status = %d, want 409", rec.Code)
	}
}

func TestAPI_Alerts(t *testing.T) {
	h := newTestAPI(t, types.Standalone)
	token := register(t, h)

	rec, body := do(t, h, http.MethodGet, "/alerts", token, nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("list status = %d", rec.Code)
	}
	before := body["unread_count"].(float64)

	rec, body = do(t, h, http.MethodPost, "/alerts/read-all", token, nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("read-all status = %d", rec.Code)
	}
	if body["unread_count"].(float64) != 0 || before == 0 {
		t.Fatalf("unread before = %v, after = %v", before, body["unread_count"])
	}
}

func TestAPI_AuthModeHasNoBookingRoutes(t *testing.T) {
	h := newTestAPI(t, types.AuthService)
	token := register(t, h)

	rec, _ := do(t, h, http.MethodGet, "/booking", token, nil)
	if rec.Code != http.StatusNotFound {
		t.Fatalf("status = %d, want 404", rec.Code)
	}
}

func TestAPI_Catalog(t *testing.T) {
	h := newTestAPI(t, types.BookingService)

	rec, body := do(t, h, http.MethodGet, "/locations", "", nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("locations status = %d", rec.Code)
	}
	if got := len(body["locations"].([]any)); got != 9 {
		t.Fatalf("locations = %d, want 9", got)
	}

	rec, _ = do(t, h, http.MethodGet, "/drivers?pickup=Basco%20Terminal&limit=2", "", nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("drivers status = %d", rec.Code)
	}

	rec, _ = do(t, h, http.MethodGet, "/drivers?limit=500", "", nil)
	if rec.Code != http.StatusUnprocessableEntity {
		t.Fatalf("bad limit status = %d, want 422", rec.Code)
	}
}
