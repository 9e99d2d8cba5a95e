package outbox

import (
	"testing"

	"github.com/jackc/pgx/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseIdentifier(t *testing.T) {
	t.Run("SchemaQualified", func(t *testing.T) {
		id, err := ParseIdentifier("public.request_outbox")
		require.NoError(t, err)
		assert.Equal(t, pgx.Identifier{"public", "request_outbox"}, id)
	})

	t.Run("Bare", func(t *testing.T) {
		id, err := ParseIdentifier("request_outbox")
		require.NoError(t, err)
		assert.Equal(t, pgx.Identifier{"request_outbox"}, id)
	})

	t.Run("Invalid", func(t *testing.T) {
		for _, raw := range []string{"", "a.b.c", "1bad", "bad-name", "public."} {
			_, err := ParseIdentifier(raw)
			assert.Error(t, err, raw)
		}
	})
}

func TestParseIdentifierList(t *testing.T) {
	ids, err := ParseIdentifierList("public.request_outbox, audit_outbox")
	require.NoError(t, err)
	require.Len(t, ids, 2)
	assert.Equal(t, "public.request_outbox", TableLabel(ids[0]))
	assert.Equal(t, "audit_outbox", TableLabel(ids[1]))
}
