// AngelaMos | 2026
// repository.go

package content

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/carterperez-dev/paywall-api/internal/core"
)

type Repository interface {
	GetByID(ctx context.Context, id string) (*Content, error)
	Create(ctx context.Context, content *Content) error
}

type repository struct {
	db core.DBTX
}

func NewRepository(db core.DBTX) Repository {
	return &repository{db: db}
}

func (r *repository) GetByID(ctx context.Context, id string) (*Content, error) {
	query := `
		SELECT id, title, body, required_plan, created_at
		FROM content
		WHERE id = $1`

	var c Content
	err := r.db.GetContext(ctx, &c, query, id)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("get content: %w", core.ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("get content: %w", err)
	}

	return &c, nil
}

func (r *repository) Create(ctx context.Context, content *Content) error {
	query := `
		INSERT INTO content (id, title, body, required_plan)
		VALUES ($1, $2, $3, $4)
		RETURNING created_at`

	err := r.db.GetContext(ctx, &content.CreatedAt, query,
		content.ID,
		content.Title,
		content.Body,
		content.RequiredPlan,
	)
	if err != nil {
		return fmt.Errorf("create content: %w", err)
	}

	return nil
}
