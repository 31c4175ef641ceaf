// AngelaMos | 2026
// repository.go

package behavior

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/carterperez-dev/paywall-api/internal/core"
)

type Repository interface {
	Insert(ctx context.Context, record *Record) error

	AvgViewTime(ctx context.Context, userID string) (float64, error)
	UserInteractionCount(ctx context.Context, userID string) (int64, error)
	ContentViewCount(ctx context.Context, contentID string) (int64, error)
	TotalInteractionCount(ctx context.Context) (int64, error)
	LastInteractionAt(
		ctx context.Context,
		userID string,
	) (time.Time, bool, error)
	ContentAvgInteractionScore(
		ctx context.Context,
		contentID string,
	) (float64, error)
	AvgInteractionScore(ctx context.Context, userID string) (float64, error)

	TrainingRows(ctx context.Context) ([]TrainingRow, error)
}

// TrainingRow is one per-(user, content) aggregate used to fit the
// fallback model from real history.
type TrainingRow struct {
	TenureDays        float64 `db:"tenure_days"`
	AvgViewTime       float64 `db:"avg_view_time"`
	Popularity        float64 `db:"popularity"`
	DaysSinceLastSeen float64 `db:"days_since_last_seen"`
	Interactions      float64 `db:"interactions"`
	AvgScore          float64 `db:"avg_score"`
}

type repository struct {
	db core.DBTX
}

func NewRepository(db core.DBTX) Repository {
	return &repository{db: db}
}

func (r *repository) Insert(ctx context.Context, record *Record) error {
	query := `
		INSERT INTO user_behavior
			(id, user_id, content_id, view_time_seconds,
			 scroll_depth_percent, interaction_score)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING created_at`

	err := r.db.GetContext(ctx, &record.CreatedAt, query,
		record.ID,
		record.UserID,
		record.ContentID,
		record.ViewTimeSeconds,
		record.ScrollDepthPercent,
		record.InteractionScore,
	)
	if err != nil {
		return fmt.Errorf("insert behavior record: %w", err)
	}

	return nil
}

func (r *repository) AvgViewTime(
	ctx context.Context,
	userID string,
) (float64, error) {
	query := `
		SELECT COALESCE(AVG(view_time_seconds), 0)
		FROM user_behavior
		WHERE user_id = $1`

	var avg float64
	if err := r.db.GetContext(ctx, &avg, query, userID); err != nil {
		return 0, fmt.Errorf("avg view time: %w", err)
	}

	return avg, nil
}

func (r *repository) UserInteractionCount(
	ctx context.Context,
	userID string,
) (int64, error) {
	query := `SELECT COUNT(*) FROM user_behavior WHERE user_id = $1`

	var count int64
	if err := r.db.GetContext(ctx, &count, query, userID); err != nil {
		return 0, fmt.Errorf("user interaction count: %w", err)
	}

	return count, nil
}

func (r *repository) ContentViewCount(
	ctx context.Context,
	contentID string,
) (int64, error) {
	query := `SELECT COUNT(*) FROM user_behavior WHERE content_id = $1`

	var count int64
	if err := r.db.GetContext(ctx, &count, query, contentID); err != nil {
		return 0, fmt.Errorf("content view count: %w", err)
	}

	return count, nil
}

func (r *repository) TotalInteractionCount(
	ctx context.Context,
) (int64, error) {
	query := `SELECT COUNT(*) FROM user_behavior`

	var count int64
	if err := r.db.GetContext(ctx, &count, query); err != nil {
		return 0, fmt.Errorf("total interaction count: %w", err)
	}

	return count, nil
}

func (r *repository) LastInteractionAt(
	ctx context.Context,
	userID string,
) (time.Time, bool, error) {
	query := `
		SELECT MAX(created_at)
		FROM user_behavior
		WHERE user_id = $1`

	var last sql.NullTime
	err := r.db.GetContext(ctx, &last, query, userID)
	if errors.Is(err, sql.ErrNoRows) {
		return time.Time{}, false, nil
	}
	if err != nil {
		return time.Time{}, false, fmt.Errorf("last interaction: %w", err)
	}

	return last.Time, last.Valid, nil
}

func (r *repository) ContentAvgInteractionScore(
	ctx context.Context,
	contentID string,
) (float64, error) {
	query := `
		SELECT COALESCE(AVG(interaction_score), 0)
		FROM user_behavior
		WHERE content_id = $1`

	var avg float64
	if err := r.db.GetContext(ctx, &avg, query, contentID); err != nil {
		return 0, fmt.Errorf("content avg score: %w", err)
	}

	return avg, nil
}

func (r *repository) AvgInteractionScore(
	ctx context.Context,
	userID string,
) (float64, error) {
	query := `
		SELECT COALESCE(AVG(interaction_score), 0)
		FROM user_behavior
		WHERE user_id = $1`

	var avg float64
	if err := r.db.GetContext(ctx, &avg, query, userID); err != nil {
		return 0, fmt.Errorf("avg interaction score: %w", err)
	}

	return avg, nil
}

func (r *repository) TrainingRows(
	ctx context.Context,
) ([]TrainingRow, error) {
	query := `
		WITH totals AS (
			SELECT GREATEST(COUNT(*), 1)::float8 AS total
			FROM user_behavior
		),
		per_user AS (
			SELECT
				user_id,
				AVG(view_time_seconds) AS avg_view_time,
				COUNT(*)::float8 AS interactions,
				EXTRACT(EPOCH FROM NOW() - MAX(created_at)) / 86400
					AS days_since_last_seen
			FROM user_behavior
			GROUP BY user_id
		),
		per_content AS (
			SELECT
				content_id,
				COUNT(*)::float8 AS views,
				AVG(interaction_score) AS avg_score
			FROM user_behavior
			GROUP BY content_id
		),
		tenure AS (
			SELECT
				user_id,
				COALESCE(
					EXTRACT(EPOCH FROM MAX(expires_at) - MIN(started_at))
						/ 86400,
					0
				) AS tenure_days
			FROM subscriptions
			WHERE active
			GROUP BY user_id
		)
		SELECT
			COALESCE(t.tenure_days, 0)  AS tenure_days,
			u.avg_view_time             AS avg_view_time,
			c.views / totals.total      AS popularity,
			u.days_since_last_seen      AS days_since_last_seen,
			u.interactions              AS interactions,
			c.avg_score                 AS avg_score
		FROM user_behavior b
		JOIN per_user u ON u.user_id = b.user_id
		JOIN per_content c ON c.content_id = b.content_id
		LEFT JOIN tenure t ON t.user_id = b.user_id
		CROSS JOIN totals
		GROUP BY
			t.tenure_days, u.avg_view_time, c.views, totals.total,
			u.days_since_last_seen, u.interactions, c.avg_score`

	var rows []TrainingRow
	if err := r.db.SelectContext(ctx, &rows, query); err != nil {
		return nil, fmt.Errorf("training rows: %w", err)
	}

	return rows, nil
}
