package authz_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/campuskit/campuskit/pkg/authz"
)

func TestService_Can(t *testing.T) {
	svc, err := authz.NewService(
		[]authz.Policy{
			{Role: "USER", Object: "request", Action: "create"},
			{Role: "APPROVER", Object: "request", Action: "approve"},
		},
		[]authz.Grouping{
			{Role: "ADMIN", Parent: "APPROVER"},
			{Role: "APPROVER", Parent: "USER"},
		},
	)
	require.NoError(t, err)

	assert.True(t, svc.Can("USER", "request", "create"))
	assert.False(t, svc.Can("USER", "request", "approve"))

	assert.True(t, svc.Can("APPROVER", "request", "approve"))
	assert.True(t, svc.Can("APPROVER", "request", "create"), "inherited from USER")

	assert.True(t, svc.Can("ADMIN", "request", "approve"), "inherited transitively")
	assert.True(t, svc.Can("ADMIN", "request", "create"))

	assert.False(t, svc.Can("UNKNOWN", "request", "create"))
}

func TestService_Require(t *testing.T) {
	svc, err := authz.NewService(
		[]authz.Policy{{Role: "USER", Object: "request", Action: "create"}},
		nil,
	)
	require.NoError(t, err)

	require.NoError(t, svc.Require("USER", "request", "create"))

	err = svc.Require("USER", "request", "delete")
	require.ErrorIs(t, err, authz.ErrForbidden)
}
