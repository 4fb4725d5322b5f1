package migration

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func findIndexDefinition(t *testing.T, name string) indexDefinition {
	t.Helper()
	for _, def := range indexDefinitions {
		if def.name == name {
			return def
		}
	}
	require.Failf(t, "index definition missing", "no definition named %s", name)
	return indexDefinition{}
}

func TestIndexDefinitions(t *testing.T) {
	t.Run("binary slot uniqueness is enforced in the store", func(t *testing.T) {
		def := findIndexDefinition(t, "idx_users_upline_position")

		assert.Contains(t, def.sql, "CREATE UNIQUE INDEX")
		assert.Contains(t, def.sql, "ON users (upline_id, position)")
		assert.Contains(t, def.sql, "WHERE position <> ''")
	})

	t.Run("pending order lookup stays a partial index", func(t *testing.T) {
		def := findIndexDefinition(t, "idx_orders_pending")

		assert.Contains(t, def.sql, "WHERE status = 'pending_payment'")
	})

	t.Run("every definition targets its named index", func(t *testing.T) {
		for _, def := range indexDefinitions {
			assert.Contains(t, def.sql, def.name)
			assert.True(t, strings.Contains(def.sql, "IF NOT EXISTS"), def.name)
		}
	})
}
