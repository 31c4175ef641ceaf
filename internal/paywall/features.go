// AngelaMos | 2026
// features.go

package paywall

import (
	"context"
	"fmt"
	"time"
)

// FeatureCount is the fixed width of the model's input vector.
const FeatureCount = 6

// FeatureVector describes a (user, content) pair for the fallback model.
// All fields are derived, recomputed per cache miss, never persisted.
type FeatureVector struct {
	SubscriptionTenureDays float64
	AvgViewTime            float64
	ContentPopularity      float64
	DaysSinceLastSeen      float64
	TotalInteractions      float64
	ContentAvgScore        float64
}

// Values returns the vector in the model's canonical feature order.
func (v FeatureVector) Values() []float64 {
	return []float64{
		v.SubscriptionTenureDays,
		v.AvgViewTime,
		v.ContentPopularity,
		v.DaysSinceLastSeen,
		v.TotalInteractions,
		v.ContentAvgScore,
	}
}

// HistoryStore exposes the behavior-history aggregates the extractor reads.
type HistoryStore interface {
	SubscriptionTenureDays(ctx context.Context, userID string) (float64, error)
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
}

// Extractor computes feature vectors from historical interaction data.
// Missing history yields 0.0 per feature; store faults propagate.
type Extractor struct {
	store HistoryStore
	now   func() time.Time
}

func NewExtractor(store HistoryStore) *Extractor {
	return &Extractor{store: store, now: time.Now}
}

func (e *Extractor) Extract(
	ctx context.Context,
	userID, contentID string,
) (FeatureVector, error) {
	var v FeatureVector

	tenure, err := e.store.SubscriptionTenureDays(ctx, userID)
	if err != nil {
		return v, fmt.Errorf("subscription tenure: %w", err)
	}
	v.SubscriptionTenureDays = tenure

	avgView, err := e.store.AvgViewTime(ctx, userID)
	if err != nil {
		return v, fmt.Errorf("avg view time: %w", err)
	}
	v.AvgViewTime = avgView

	popularity, err := e.contentPopularity(ctx, contentID)
	if err != nil {
		return v, err
	}
	v.ContentPopularity = popularity

	lastSeen, ok, err := e.store.LastInteractionAt(ctx, userID)
	if err != nil {
		return v, fmt.Errorf("last interaction: %w", err)
	}
	if ok {
		v.DaysSinceLastSeen = e.now().Sub(lastSeen).Hours() / 24
	}

	total, err := e.store.UserInteractionCount(ctx, userID)
	if err != nil {
		return v, fmt.Errorf("interaction count: %w", err)
	}
	v.TotalInteractions = float64(total)

	avgScore, err := e.store.ContentAvgInteractionScore(ctx, contentID)
	if err != nil {
		return v, fmt.Errorf("content avg score: %w", err)
	}
	v.ContentAvgScore = avgScore

	return v, nil
}

// contentPopularity is the ratio of interactions mentioning this content
// over all interactions ever recorded. Zero system-wide interactions means
// popularity 0; the denominator is floored at 1 otherwise.
func (e *Extractor) contentPopularity(
	ctx context.Context,
	contentID string,
) (float64, error) {
	total, err := e.store.TotalInteractionCount(ctx)
	if err != nil {
		return 0, fmt.Errorf("total interactions: %w", err)
	}
	if total <= 0 {
		return 0, nil
	}

	views, err := e.store.ContentViewCount(ctx, contentID)
	if err != nil {
		return 0, fmt.Errorf("content views: %w", err)
	}

	return float64(views) / float64(total), nil
}
