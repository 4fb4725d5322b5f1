package migration

import (
	coreport "github.com/kiarash-moradi/mlm-dashboard/internal/domain/port/core"
	"gorm.io/gorm"
)

// IndexManager creates the PostgreSQL indexes backing the hot queries:
// ledger aggregation per user and type, the affiliate-sale window scan,
// sponsor-name joins, and the pending-order settlement lookup.
type IndexManager struct {
	db     *gorm.DB
	logger coreport.Logger
}

type indexDefinition struct {
	name string
	sql  string
}

// indexDefinitions lists the indexes not covered by model tags.
var indexDefinitions = []indexDefinition{
	{
		// Window scan in FindPurchaseAround filters on type and time range.
		name: "idx_ledger_type_created_at",
		sql: `
			CREATE INDEX IF NOT EXISTS idx_ledger_type_created_at
			ON ledger_entries (type, created_at)`,
	},
	{
		// BRIN suits the append-only ledger: created_at grows monotonically.
		name: "idx_ledger_created_at_brin",
		sql: `
			CREATE INDEX IF NOT EXISTS idx_ledger_created_at_brin
			ON ledger_entries USING BRIN (created_at)
			WITH (pages_per_range = 32)`,
	},
	{
		// A slot under an upline holds at most one child. Root rows carry
		// an empty position and are exempt.
		name: "idx_users_upline_position",
		sql: `
			CREATE UNIQUE INDEX IF NOT EXISTS idx_users_upline_position
			ON users (upline_id, position)
			WHERE position <> ''`,
	},
	{
		name: "idx_users_sponsor_name_lower",
		sql: `
			CREATE INDEX IF NOT EXISTS idx_users_sponsor_name_lower
			ON users (lower(sponsor_name))`,
	},
	{
		// Settlement only ever reads the pending slice of a user's orders.
		name: "idx_orders_pending",
		sql: `
			CREATE INDEX IF NOT EXISTS idx_orders_pending
			ON pending_orders (user_id, created_at)
			WHERE status = 'pending_payment'`,
	},
}

// NewIndexManager creates a new index manager
func NewIndexManager(db *gorm.DB, logger coreport.Logger) *IndexManager {
	return &IndexManager{
		db:     db,
		logger: logger,
	}
}

// CreateIndexes creates the indexes not covered by model tags
func (m *IndexManager) CreateIndexes() error {
	m.logger.Info("Creating PostgreSQL indexes", nil)

	for _, def := range indexDefinitions {
		if err := m.db.Exec(def.sql).Error; err != nil {
			m.logger.Error("Failed to create index", map[string]any{
				"index": def.name,
				"error": err.Error(),
			})
			return err
		}
	}

	m.logger.Info("PostgreSQL indexes created successfully", nil)
	return nil
}
