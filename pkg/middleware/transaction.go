package middleware

import (
	"errors"
	"net/http"

	"github.com/gorilla/mux"
	"github.com/jackc/pgx/v5"

	"github.com/campuskit/campuskit/pkg/composables"
	"github.com/campuskit/campuskit/pkg/httpapi"
)

// WithTransaction opens one transaction per request and commits it after the
// handler returns. Handlers that fail must write a non-2xx status; the
// transaction is rolled back in that case so audit and primary writes stay
// atomic.
func WithTransaction() mux.MiddlewareFunc {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			pool, err := composables.UsePool(r.Context())
			if err != nil {
				_ = httpapi.WriteInternalError(w)
				return
			}
			tx, err := pool.Begin(r.Context())
			if err != nil {
				_ = httpapi.WriteInternalError(w)
				return
			}
			defer func() {
				if err := tx.Rollback(r.Context()); err != nil && !errors.Is(err, pgx.ErrTxClosed) {
					composables.UseLogger(r.Context()).WithError(err).Error("failed to rollback transaction")
				}
			}()

			sw := &statusWriter{ResponseWriter: w}
			r = r.WithContext(composables.WithTx(r.Context(), tx))
			next.ServeHTTP(sw, r)

			if sw.Status() < http.StatusBadRequest {
				if err := tx.Commit(r.Context()); err != nil {
					composables.UseLogger(r.Context()).WithError(err).Error("failed to commit transaction")
				}
			}
		})
	}
}
