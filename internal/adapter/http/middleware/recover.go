package middleware

import (
	"fmt"
	"net/http"

	wrap "github.com/Temutjin2k/batoda/pkg/logger/wrapper"
)

// Recover turns a handler panic into a 500 response.
func (app *Middleware) Recover(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		defer func() {
			if rec := recover(); rec != nil {
				ctx := wrap.WithAction(r.Context(), "recover_panic")
				app.log.Error(ctx, "panic while serving request", fmt.Errorf("%v", rec), "path", r.URL.Path)

				w.Header().Set("Connection", "close")
				errorResponse(w, http.StatusInternalServerError, "the server encountered a problem and could not process your request")
			}
		}()

		next.ServeHTTP(w, r)
	})
}
