// AngelaMos | 2026
// service.go

package behavior

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/carterperez-dev/paywall-api/internal/paywall"
)

// TenureSource reads subscription tenure for feature extraction.
type TenureSource interface {
	TenureDays(ctx context.Context, userID string) (float64, error)
}

// Service composes stored interactions with subscription tenure into the
// history reads the access engine's feature extractor needs, and persists
// new interaction records.
type Service struct {
	repo   Repository
	tenure TenureSource
}

func NewService(repo Repository, tenure TenureSource) *Service {
	return &Service{repo: repo, tenure: tenure}
}

func (s *Service) LogInteraction(
	ctx context.Context,
	record paywall.InteractionRecord,
) error {
	return s.repo.Insert(ctx, &Record{
		ID:                 uuid.New().String(),
		UserID:             record.UserID,
		ContentID:          record.ContentID,
		ViewTimeSeconds:    record.ViewTimeSeconds,
		ScrollDepthPercent: record.ScrollDepthPercent,
		InteractionScore:   record.InteractionScore,
	})
}

func (s *Service) SubscriptionTenureDays(
	ctx context.Context,
	userID string,
) (float64, error) {
	return s.tenure.TenureDays(ctx, userID)
}

func (s *Service) AvgViewTime(
	ctx context.Context,
	userID string,
) (float64, error) {
	return s.repo.AvgViewTime(ctx, userID)
}

func (s *Service) UserInteractionCount(
	ctx context.Context,
	userID string,
) (int64, error) {
	return s.repo.UserInteractionCount(ctx, userID)
}

func (s *Service) ContentViewCount(
	ctx context.Context,
	contentID string,
) (int64, error) {
	return s.repo.ContentViewCount(ctx, contentID)
}

func (s *Service) TotalInteractionCount(ctx context.Context) (int64, error) {
	return s.repo.TotalInteractionCount(ctx)
}

func (s *Service) LastInteractionAt(
	ctx context.Context,
	userID string,
) (time.Time, bool, error) {
	return s.repo.LastInteractionAt(ctx, userID)
}

func (s *Service) ContentAvgInteractionScore(
	ctx context.Context,
	contentID string,
) (float64, error) {
	return s.repo.ContentAvgInteractionScore(ctx, contentID)
}

// InteractionStats feeds the profile endpoint.
func (s *Service) InteractionStats(
	ctx context.Context,
	userID string,
) (int64, float64, error) {
	count, err := s.repo.UserInteractionCount(ctx, userID)
	if err != nil {
		return 0, 0, err
	}

	avg, err := s.repo.AvgInteractionScore(ctx, userID)
	if err != nil {
		return 0, 0, err
	}

	return count, avg, nil
}

// TrainingSamples labels stored aggregates with the same engaged-user
// rule the synthetic generator encodes, so the two training sources are
// interchangeable.
func (s *Service) TrainingSamples(
	ctx context.Context,
) ([]paywall.TrainingSample, error) {
	rows, err := s.repo.TrainingRows(ctx)
	if err != nil {
		return nil, err
	}

	samples := make([]paywall.TrainingSample, len(rows))
	for i, row := range rows {
		label := 0
		if row.AvgViewTime > 100 && row.Popularity > 0.5 &&
			row.Interactions > 10 {
			label = 1
		}

		samples[i] = paywall.TrainingSample{
			Features: []float64{
				row.TenureDays,
				row.AvgViewTime,
				row.Popularity,
				row.DaysSinceLastSeen,
				row.Interactions,
				row.AvgScore,
			},
			Label: label,
		}
	}

	return samples, nil
}

var (
	_ paywall.HistoryStore   = (*Service)(nil)
	_ paywall.BehaviorLogger = (*Service)(nil)
	_ paywall.TrainingStore  = (*Service)(nil)
)
