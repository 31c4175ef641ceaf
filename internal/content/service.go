// AngelaMos | 2026
// service.go

package content

import (
	"context"

	"github.com/google/uuid"

	"github.com/carterperez-dev/paywall-api/internal/paywall"
)

type Service struct {
	repo Repository
}

func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

// ContentByID resolves content into the engine's payload shape.
func (s *Service) ContentByID(
	ctx context.Context,
	contentID string,
) (*paywall.ContentInfo, error) {
	c, err := s.repo.GetByID(ctx, contentID)
	if err != nil {
		return nil, err
	}

	return &paywall.ContentInfo{
		ID:           c.ID,
		Title:        c.Title,
		Body:         c.Body,
		RequiredPlan: c.RequiredPlan,
	}, nil
}

func (s *Service) Create(
	ctx context.Context,
	title, body, requiredPlan string,
) (*Content, error) {
	c := &Content{
		ID:           uuid.New().String(),
		Title:        title,
		Body:         body,
		RequiredPlan: requiredPlan,
	}

	if err := s.repo.Create(ctx, c); err != nil {
		return nil, err
	}

	return c, nil
}

var _ paywall.ContentStore = (*Service)(nil)
