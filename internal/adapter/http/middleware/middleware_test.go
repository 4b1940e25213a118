package middleware

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/Temutjin2k/batoda/internal/domain/models"
	"github.com/Temutjin2k/batoda/internal/domain/types"
	"github.com/Temutjin2k/batoda/pkg/logger"
	"github.com/google/uuid"
)

type tokenAuth map[string]*models.User

func (a tokenAuth) RoleCheck(_ context.Context, token string) (*models.User, error) {
	if u, ok := a[token]; ok {
		return u, nil
	}
	return nil, errors.New("invalid token")
}

func newTestMiddleware() *Middleware {
	return NewMiddleware(tokenAuth{
		"passenger": {ID: uuid.New(), Role: types.RolePassenger.String()},
		"driver":    {ID: uuid.New(), Role: types.RoleDriver.String()},
	}, logger.Discard())
}

func TestRequirePassenger(t *testing.T) {
	m := newTestMiddleware()
	h := m.Auth(m.RequirePassenger(func(w http.ResponseWriter, r *http.Request) {
		if models.UserFromContext(r.Context()) == nil {
			t.Error("user missing from context")
		}
		w.WriteHeader(http.StatusNoContent)
	}))

	tests := []struct {
		name   string
		header string
		want   int
	}{
		{"anonymous", "", http.StatusUnauthorized},
		{"unknown token", "Bearer nope", http.StatusUnauthorized},
		{"wrong role", "Bearer driver", http.StatusForbidden},
		{"passenger", "Bearer passenger", http.StatusNoContent},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/booking", nil)
			if tt.header != "" {
				req.Header.Set("Authorization", tt.header)
			}
			rec := httptest.NewRecorder()
			h.ServeHTTP(rec, req)

			if rec.Code != tt.want {
				t.Fatalf("status = %d, want %d", rec.Code, tt.want)
			}
		})
	}
}

func TestRequestID(t *testing.T) {
	m := newTestMiddleware()
	h := m.RequestID(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))

	given := uuid.NewString()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set(RequestIDHeader, given)
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	if got := rec.Header().Get(RequestIDHeader); got != given {
		t.Fatalf("request id = %q, want %q", got, given)
	}

	req = httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set(RequestIDHeader, "not a uuid")
	rec = httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	if _, err := uuid.Parse(rec.Header().Get(RequestIDHeader)); err != nil {
		t.Fatalf("generated request id is not a uuid: %v", err)
	}
}

func TestRecover(t *testing.T) {
	m := newTestMiddleware()
	h := m.Recover(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		panic("boom")
	}))

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))

	if rec.Code != http.StatusInternalServerError {
		t.Fatalf("status = %d, want 500", rec.Code)
	}
}
