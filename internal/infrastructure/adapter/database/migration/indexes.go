package migration

import (
	coreport "github.com/nileacademy/apple-rewards/internal/domain/port/core"
	"gorm.io/gorm"
)

// IndexManager manages PostgreSQL-specific indexes that go beyond what the
// model tags declare
type IndexManager struct {
	db     *gorm.DB
	logger coreport.Logger
}

// NewIndexManager creates a new index manager
func NewIndexManager(db *gorm.DB, logger coreport.Logger) *IndexManager {
	return &IndexManager{
		db:     db,
		logger: logger,
	}
}

// CreateIndexes creates PostgreSQL indexes for the hot query paths
func (m *IndexManager) CreateIndexes() error {
	m.logger.Info("Creating PostgreSQL indexes", nil)

	// The guard index behind one-time loyalty bonuses. The model tag
	// declares it too; creating it explicitly keeps databases migrated by
	// older builds honest.
	if err := m.db.Exec(`
		CREATE UNIQUE INDEX IF NOT EXISTS idx_user_bonus_type
		ON loyalty_history (user_id, bonus_type)
	`).Error; err != nil {
		m.logger.Error("Failed to create unique index on loyalty_history", map[string]any{
			"error": err.Error(),
		})
		return err
	}

	// Dashboard leaderboards sort by balance within a role
	if err := m.db.Exec(`
		CREATE INDEX IF NOT EXISTS idx_users_role_apples
		ON users (role, apples DESC)
	`).Error; err != nil {
		m.logger.Error("Failed to create role_apples composite index", map[string]any{
			"error": err.Error(),
		})
		return err
	}

	// Audit history is queried per user, newest first
	if err := m.db.Exec(`
		CREATE INDEX IF NOT EXISTS idx_apple_transactions_user_created
		ON apple_transactions (user_id, created_at DESC)
	`).Error; err != nil {
		m.logger.Error("Failed to create user_created composite index", map[string]any{
			"error": err.Error(),
		})
		return err
	}

	// BRIN index for created_at (more efficient for temporal data)
	if err := m.db.Exec(`
		CREATE INDEX IF NOT EXISTS idx_apple_transactions_created_at_brin
		ON apple_transactions USING BRIN (created_at)
		WITH (pages_per_range = 32)
	`).Error; err != nil {
		m.logger.Error("Failed to create BRIN index on created_at", map[string]any{
			"error": err.Error(),
		})
		return err
	}

	m.logger.Info("PostgreSQL indexes created successfully", nil)
	return nil
}
