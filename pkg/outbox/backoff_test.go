package outbox

import (
	"math/rand"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestBackoff(t *testing.T) {
	maxBackoff := 60 * time.Second

	tests := []struct {
		attempts int
		want     time.Duration
	}{
		{0, 0},
		{1, time.Second},
		{2, 2 * time.Second},
		{3, 4 * time.Second},
		{6, 32 * time.Second},
		{7, maxBackoff},
		{50, maxBackoff},
	}
	for _, tt := range tests {
		require.Equal(t, tt.want, backoff(tt.attempts, maxBackoff), "attempts=%d", tt.attempts)
	}
}

func TestJitter_Bounds(t *testing.T) {
	r := rand.New(rand.NewSource(1)) //nolint:gosec
	maxJitter := 200 * time.Millisecond
	for i := 0; i < 1000; i++ {
		j := jitter(r, maxJitter)
		require.GreaterOrEqual(t, j, time.Duration(0))
		require.LessOrEqual(t, j, maxJitter)
	}
}

func TestJitter_Disabled(t *testing.T) {
	require.Equal(t, time.Duration(0), jitter(nil, time.Second))
	require.Equal(t, time.Duration(0), jitter(rand.New(rand.NewSource(1)), 0)) //nolint:gosec
}
