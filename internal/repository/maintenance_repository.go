package repository

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"github.com/fintrack/backend/internal/model"
)

// MaintenanceRepository runs system-wide statements that are not scoped to a
// user: reference data seeding and expiry clean-up.
type MaintenanceRepository struct {
	db *sqlx.DB
}

func NewMaintenanceRepository(db *sqlx.DB) *MaintenanceRepository {
	return &MaintenanceRepository{db: db}
}

// SeedDefaultCategories inserts the shared default categories that are missing
// and returns how many were added.
func (r *MaintenanceRepository) SeedDefaultCategories(ctx context.Context, seeds []model.CategorySeed) (int, error) {
	query := `
		INSERT INTO categories (id, user_id, name, type, icon, color, description, is_default, is_active, created_at, updated_at)
		VALUES ($1, NULL, $2, $3, $4, $5, $6, true, true, NOW(), NOW())
		ON CONFLICT (name, type) WHERE is_default DO NOTHING`

	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return 0, err
	}
	defer func() { _ = tx.Rollback() }()

	added := 0
	for _, c := range seeds {
		result, err := tx.ExecContext(ctx, query, uuid.New(), c.Name, c.Type, c.Icon, c.Color, c.Description)
		if err != nil {
			return 0, err
		}
		n, err := result.RowsAffected()
		if err != nil {
			return 0, err
		}
		added += int(n)
	}
	return added, tx.Commit()
}

// SeedPaymentMethods inserts the missing reference payment methods.
func (r *MaintenanceRepository) SeedPaymentMethods(ctx context.Context, seeds []model.PaymentMethodSeed) (int, error) {
	query := `
		INSERT INTO payment_methods (id, name, description, created_at)
		VALUES ($1, $2, $3, NOW())
		ON CONFLICT (name) DO NOTHING`

	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return 0, err
	}
	defer func() { _ = tx.Rollback() }()

	added := 0
	for _, pm := range seeds {
		result, err := tx.ExecContext(ctx, query, uuid.New(), pm.Name, pm.Description)
		if err != nil {
			return 0, err
		}
		n, err := result.RowsAffected()
		if err != nil {
			return 0, err
		}
		added += int(n)
	}
	return added, tx.Commit()
}

// DeleteExpiredRecommendations removes recommendations that expired before now
// without being accepted.
func (r *MaintenanceRepository) DeleteExpiredRecommendations(ctx context.Context, now time.Time) (int64, error) {
	query := `DELETE FROM savings_recommendations WHERE expires_at < $1 AND is_accepted = false`
	result, err := r.db.ExecContext(ctx, query, now)
	if err != nil {
		return 0, err
	}
	return result.RowsAffected()
}
