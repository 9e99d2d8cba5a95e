package handlers

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/campuskit/campuskit/modules/core/infrastructure/persistence"
	"github.com/campuskit/campuskit/modules/core/services"
	"github.com/campuskit/campuskit/pkg/composables"
)

func TestProvideIdentity_AnonymousPassThrough(t *testing.T) {
	mw := ProvideIdentity(services.NewUserService(persistence.NewUserRepository()))

	var sawUser bool
	inner := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, err := composables.UseUser(r.Context())
		sawUser = err == nil
		w.WriteHeader(http.StatusOK)
	})

	req := httptest.NewRequest(http.MethodGet, "/core/api/roles", nil)
	rec := httptest.NewRecorder()
	mw(inner).ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.False(t, sawUser, "request without X-User-ID must stay anonymous")
}

func TestProvideIdentity_UnresolvableUserStaysAnonymous(t *testing.T) {
	// No pool in context, so the lookup fails and the request proceeds
	// without an actor instead of being rejected at the middleware.
	mw := ProvideIdentity(services.NewUserService(persistence.NewUserRepository()))

	var sawUser bool
	inner := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, err := composables.UseUser(r.Context())
		sawUser = err == nil
		w.WriteHeader(http.StatusOK)
	})

	req := httptest.NewRequest(http.MethodGet, "/core/api/roles", nil)
	req.Header.Set("X-User-ID", "u-unknown")
	rec := httptest.NewRecorder()
	mw(inner).ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.False(t, sawUser)
}
