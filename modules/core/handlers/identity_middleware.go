package handlers

import (
	"net/http"
	"strings"

	"github.com/gorilla/mux"

	"github.com/campuskit/campuskit/modules/core/services"
	"github.com/campuskit/campuskit/pkg/composables"
)

// ProvideIdentity resolves the X-User-ID header into a context Actor. Session
// management lives at the edge proxy; the application only needs to know who
// is calling. Requests without a resolvable user proceed anonymously and fail
// later at the operations that require an actor.
func ProvideIdentity(users *services.UserService) mux.MiddlewareFunc {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			userID := strings.TrimSpace(r.Header.Get("X-User-ID"))
			if userID == "" {
				next.ServeHTTP(w, r)
				return
			}

			u, err := users.GetByID(r.Context(), userID)
			if err != nil {
				composables.UseLogger(r.Context()).WithField("user_id", userID).WithError(err).Warn("unknown user header")
				next.ServeHTTP(w, r)
				return
			}

			ctx := composables.WithUser(r.Context(), composables.Actor{
				ID:           u.ID(),
				Role:         u.Role(),
				DepartmentID: u.DepartmentID(),
			})
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}
