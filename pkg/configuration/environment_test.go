package configuration

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestConfiguration_Defaults(t *testing.T) {
	c := &Configuration{}
	require.NoError(t, c.load(nil))

	require.Equal(t, "campuskit", c.Database.Name)
	require.Equal(t, ":8080", c.SocketAddress)
	require.True(t, c.RateLimit.Enabled)
	require.Equal(t, "memory", c.RateLimit.Storage)
	require.NotNil(t, c.Logger())
}

func TestDatabaseOptions_ConnectionString(t *testing.T) {
	d := DatabaseOptions{
		Name:     "campuskit_test",
		Host:     "db",
		Port:     "5433",
		User:     "app",
		Password: "secret",
	}
	require.Equal(t,
		"host=db port=5433 user=app dbname=campuskit_test password=secret sslmode=disable",
		d.ConnectionString(),
	)
}

func TestRateLimitOptions_Validate(t *testing.T) {
	tests := []struct {
		name    string
		opts    RateLimitOptions
		wantErr bool
	}{
		{"memory ok", RateLimitOptions{GlobalRPS: 100, Storage: "memory"}, false},
		{"negative rps", RateLimitOptions{GlobalRPS: -1, Storage: "memory"}, true},
		{"unknown storage", RateLimitOptions{GlobalRPS: 1, Storage: "etcd"}, true},
		{"redis without url", RateLimitOptions{GlobalRPS: 1, Storage: "redis"}, true},
		{"redis with url", RateLimitOptions{GlobalRPS: 1, Storage: "redis", RedisURL: "redis://localhost:6379"}, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.opts.Validate()
			if tt.wantErr {
				require.Error(t, err)
			} else {
				require.NoError(t, err)
			}
		})
	}
}
