// AngelaMos | 2026
// features_test.go

package paywall

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeHistoryStore struct {
	tenure       float64
	avgViewTime  float64
	userCount    int64
	contentViews int64
	totalCount   int64
	lastSeen     time.Time
	hasLastSeen  bool
	avgScore     float64

	failOn string
}

func (f *fakeHistoryStore) err(op string) error {
	if f.failOn == op {
		return errors.New("store down")
	}
	return nil
}

func (f *fakeHistoryStore) SubscriptionTenureDays(
	_ context.Context, _ string,
) (float64, error) {
	return f.tenure, f.err("tenure")
}

func (f *fakeHistoryStore) AvgViewTime(
	_ context.Context, _ string,
) (float64, error) {
	return f.avgViewTime, f.err("avg_view_time")
}

func (f *fakeHistoryStore) UserInteractionCount(
	_ context.Context, _ string,
) (int64, error) {
	return f.userCount, f.err("user_count")
}

func (f *fakeHistoryStore) ContentViewCount(
	_ context.Context, _ string,
) (int64, error) {
	return f.contentViews, f.err("content_views")
}

func (f *fakeHistoryStore) TotalInteractionCount(
	_ context.Context,
) (int64, error) {
	return f.totalCount, f.err("total_count")
}

func (f *fakeHistoryStore) LastInteractionAt(
	_ context.Context, _ string,
) (time.Time, bool, error) {
	return f.lastSeen, f.hasLastSeen, f.err("last_seen")
}

func (f *fakeHistoryStore) ContentAvgInteractionScore(
	_ context.Context, _ string,
) (float64, error) {
	return f.avgScore, f.err("avg_score")
}

func TestExtractDefaultsToZeroWithoutHistory(t *testing.T) {
	extractor := NewExtractor(&fakeHistoryStore{})

	v, err := extractor.Extract(context.Background(), "u1", "c1")
	require.NoError(t, err)

	assert.Equal(t, FeatureVector{}, v)
	assert.Len(t, v.Values(), FeatureCount)
}

func TestExtractPopularity(t *testing.T) {
	t.Run("zero system-wide interactions means zero", func(t *testing.T) {
		extractor := NewExtractor(&fakeHistoryStore{
			contentViews: 5,
			totalCount:   0,
		})

		v, err := extractor.Extract(context.Background(), "u1", "c1")
		require.NoError(t, err)
		assert.Zero(t, v.ContentPopularity)
	})

	t.Run("ratio of content views over total", func(t *testing.T) {
		extractor := NewExtractor(&fakeHistoryStore{
			contentViews: 25,
			totalCount:   100,
		})

		v, err := extractor.Extract(context.Background(), "u1", "c1")
		require.NoError(t, err)
		assert.InDelta(t, 0.25, v.ContentPopularity, 1e-9)
	})
}

func TestExtractRecency(t *testing.T) {
	now := time.Date(2026, 8, 26, 12, 0, 0, 0, time.UTC)

	extractor := NewExtractor(&fakeHistoryStore{
		lastSeen:    now.Add(-48 * time.Hour),
		hasLastSeen: true,
	})
	extractor.now = func() time.Time { return now }

	v, err := extractor.Extract(context.Background(), "u1", "c1")
	require.NoError(t, err)
	assert.InDelta(t, 2.0, v.DaysSinceLastSeen, 1e-9)
}

func TestExtractPropagatesStoreFaults(t *testing.T) {
	ops := []string{
		"tenure",
		"avg_view_time",
		"user_count",
		"content_views",
		"total_count",
		"last_seen",
		"avg_score",
	}

	for _, op := range ops {
		t.Run(op, func(t *testing.T) {
			extractor := NewExtractor(&fakeHistoryStore{
				totalCount: 1,
				failOn:     op,
			})

			_, err := extractor.Extract(context.Background(), "u1", "c1")
			assert.Error(t, err)
		})
	}
}
