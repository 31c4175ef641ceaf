// AngelaMos | 2026
// repository.go

package subscription

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/jmoiron/sqlx"

	"github.com/carterperez-dev/paywall-api/internal/core"
)

type Repository interface {
	// ActiveForUser returns the user's current entitlement: active flag
	// set, unexpired, most recently started when several rows qualify.
	ActiveForUser(ctx context.Context, userID string) (*Subscription, error)

	// Create inserts a new subscription and deactivates any prior active
	// rows for the user in the same transaction.
	Create(ctx context.Context, sub *Subscription) error

	// TenureDays is the span in days from the user's earliest
	// subscription start to their latest expiry, over active rows.
	TenureDays(ctx context.Context, userID string) (float64, error)
}

type repository struct {
	db *sqlx.DB
}

func NewRepository(db *sqlx.DB) Repository {
	return &repository{db: db}
}

func (r *repository) ActiveForUser(
	ctx context.Context,
	userID string,
) (*Subscription, error) {
	query := `
		SELECT id, user_id, plan_id, started_at, expires_at, active, created_at
		FROM subscriptions
		WHERE user_id = $1
		  AND active
		  AND expires_at > NOW()
		ORDER BY started_at DESC
		LIMIT 1`

	var sub Subscription
	err := r.db.GetContext(ctx, &sub, query, userID)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("active subscription: %w", core.ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("active subscription: %w", err)
	}

	return &sub, nil
}

func (r *repository) Create(ctx context.Context, sub *Subscription) error {
	return core.InTx(ctx, r.db, func(tx *sqlx.Tx) error {
		deactivate := `
			UPDATE subscriptions
			SET active = FALSE
			WHERE user_id = $1 AND active`

		if _, err := tx.ExecContext(ctx, deactivate, sub.UserID); err != nil {
			return fmt.Errorf("deactivate prior subscriptions: %w", err)
		}

		insert := `
			INSERT INTO subscriptions
				(id, user_id, plan_id, started_at, expires_at, active)
			VALUES ($1, $2, $3, $4, $5, $6)
			RETURNING created_at`

		err := tx.GetContext(ctx, &sub.CreatedAt, insert,
			sub.ID,
			sub.UserID,
			sub.PlanID,
			sub.StartedAt,
			sub.ExpiresAt,
			sub.Active,
		)
		if err != nil {
			return fmt.Errorf("create subscription: %w", err)
		}

		return nil
	})
}

func (r *repository) TenureDays(
	ctx context.Context,
	userID string,
) (float64, error) {
	query := `
		SELECT COALESCE(
			EXTRACT(EPOCH FROM MAX(expires_at) - MIN(started_at)) / 86400,
			0
		)
		FROM subscriptions
		WHERE user_id = $1 AND active`

	var days float64
	if err := r.db.GetContext(ctx, &days, query, userID); err != nil {
		return 0, fmt.Errorf("subscription tenure: %w", err)
	}

	return days, nil
}
