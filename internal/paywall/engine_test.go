// AngelaMos | 2026
// engine_test.go

package paywall

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/carterperez-dev/paywall-api/internal/core"
)

type fakeContentStore struct {
	content *ContentInfo
	calls   int
}

func (f *fakeContentStore) ContentByID(
	_ context.Context, contentID string,
) (*ContentInfo, error) {
	f.calls++
	if f.content == nil || f.content.ID != contentID {
		return nil, fmt.Errorf("get content: %w", core.ErrNotFound)
	}
	return f.content, nil
}

type fakeSubStore struct {
	sub   *SubscriptionInfo
	calls int
}

func (f *fakeSubStore) ActiveSubscriptionFor(
	_ context.Context, _ string,
) (*SubscriptionInfo, error) {
	f.calls++
	return f.sub, nil
}

type fakeFeatureSource struct {
	vector FeatureVector
	err    error
	calls  int
}

func (f *fakeFeatureSource) Extract(
	_ context.Context, _, _ string,
) (FeatureVector, error) {
	f.calls++
	return f.vector, f.err
}

type fakePredictor struct {
	grant bool
	calls int
}

func (f *fakePredictor) Predict(_ []float64) bool {
	f.calls++
	return f.grant
}

type fakeBehaviorLogger struct {
	mu      sync.Mutex
	records []InteractionRecord
	logged  chan struct{}
}

func newFakeBehaviorLogger() *fakeBehaviorLogger {
	return &fakeBehaviorLogger{logged: make(chan struct{}, 8)}
}

func (f *fakeBehaviorLogger) LogInteraction(
	_ context.Context, record InteractionRecord,
) error {
	f.mu.Lock()
	f.records = append(f.records, record)
	f.mu.Unlock()
	f.logged <- struct{}{}
	return nil
}

func (f *fakeBehaviorLogger) waitForRecord(t *testing.T) InteractionRecord {
	t.Helper()
	select {
	case <-f.logged:
	case <-time.After(2 * time.Second):
		t.Fatal("behavior record never logged")
	}

	f.mu.Lock()
	defer f.mu.Unlock()
	return f.records[len(f.records)-1]
}

type memoryCache struct {
	mu      sync.Mutex
	entries map[string]*AccessVerdict
	puts    int
}

func newMemoryCache() *memoryCache {
	return &memoryCache{entries: make(map[string]*AccessVerdict)}
}

func (m *memoryCache) Get(
	_ context.Context, key string,
) (*AccessVerdict, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.entries[key], nil
}

func (m *memoryCache) Put(
	_ context.Context, key string, verdict *AccessVerdict,
) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.entries[key] = verdict
	m.puts++
	return nil
}

type engineFixture struct {
	engine   *Engine
	content  *fakeContentStore
	subs     *fakeSubStore
	cache    *memoryCache
	features *fakeFeatureSource
	model    *fakePredictor
	behavior *fakeBehaviorLogger
}

func newEngineFixture(
	contentInfo *ContentInfo,
	sub *SubscriptionInfo,
) *engineFixture {
	f := &engineFixture{
		content:  &fakeContentStore{content: contentInfo},
		subs:     &fakeSubStore{sub: sub},
		cache:    newMemoryCache(),
		features: &fakeFeatureSource{},
		model:    &fakePredictor{},
		behavior: newFakeBehaviorLogger(),
	}

	f.engine = NewEngine(
		f.content,
		f.subs,
		f.cache,
		f.features,
		f.model,
		f.behavior,
		slog.New(slog.DiscardHandler),
	)

	return f
}

func premiumContent() *ContentInfo {
	return &ContentInfo{
		ID:           "c1",
		Title:        "Premium Deep Dive",
		Body:         "secret",
		RequiredPlan: "premium",
	}
}

func TestEvaluateGrantsEntitledUser(t *testing.T) {
	// Scenario: premium subscriber reading basic content.
	f := newEngineFixture(
		&ContentInfo{ID: "c1", Title: "Basics", RequiredPlan: "basic"},
		&SubscriptionInfo{Tier: TierPremium},
	)

	verdict, err := f.engine.Evaluate(context.Background(), "u1", "c1")
	require.NoError(t, err)

	assert.True(t, verdict.Granted)
	assert.Equal(t, AdvisoryNone, verdict.Advisory)
	assert.Equal(t, "Basics", verdict.Content.Title)

	record := f.behavior.waitForRecord(t)
	assert.Equal(t, "u1", record.UserID)
	assert.Equal(t, "c1", record.ContentID)
	assert.Zero(t, record.ViewTimeSeconds)
	assert.Zero(t, record.InteractionScore)

	assert.Equal(t, 1, f.cache.puts)
	assert.Zero(t, f.features.calls)
	assert.Zero(t, f.model.calls)
}

func TestEvaluateFreeContentNeedsNoSubscription(t *testing.T) {
	f := newEngineFixture(
		&ContentInfo{ID: "c1", RequiredPlan: "free"},
		nil,
	)

	verdict, err := f.engine.Evaluate(context.Background(), "u1", "c1")
	require.NoError(t, err)

	assert.True(t, verdict.Granted)
	assert.Equal(t, AdvisoryNone, verdict.Advisory)
}

func TestEvaluateDeniedWithFallbackSuggestion(t *testing.T) {
	f := newEngineFixture(premiumContent(), nil)
	f.model.grant = true

	verdict, err := f.engine.Evaluate(context.Background(), "u1", "c1")
	require.NoError(t, err)

	// Advisory only: a model grant suggestion never unlocks content.
	assert.False(t, verdict.Granted)
	assert.Equal(t, AdvisoryFallbackEligible, verdict.Advisory)
	assert.Equal(t, 1, f.cache.puts)
}

func TestEvaluateDeniedWithUpgradeRequired(t *testing.T) {
	f := newEngineFixture(premiumContent(), nil)
	f.model.grant = false

	verdict, err := f.engine.Evaluate(context.Background(), "u1", "c1")
	require.NoError(t, err)

	assert.False(t, verdict.Granted)
	assert.Equal(t, AdvisoryUpgradeRequired, verdict.Advisory)
	assert.Equal(t, 1, f.cache.puts)
}

func TestEvaluateFailsClosedOnExtractionFault(t *testing.T) {
	f := newEngineFixture(premiumContent(), nil)
	f.model.grant = true
	f.features.err = errors.New("store down")

	verdict, err := f.engine.Evaluate(context.Background(), "u1", "c1")
	require.NoError(t, err)

	assert.False(t, verdict.Granted)
	assert.Equal(t, AdvisoryUpgradeRequired, verdict.Advisory)
	assert.Zero(t, f.model.calls)
	assert.Equal(t, 1, f.cache.puts)
}

func TestEvaluateCacheHitSkipsRecompute(t *testing.T) {
	f := newEngineFixture(premiumContent(), nil)

	first, err := f.engine.Evaluate(context.Background(), "u1", "c1")
	require.NoError(t, err)

	contentCalls := f.content.calls
	subCalls := f.subs.calls
	featureCalls := f.features.calls
	modelCalls := f.model.calls

	second, err := f.engine.Evaluate(context.Background(), "u1", "c1")
	require.NoError(t, err)

	assert.Equal(t, first, second)
	assert.Equal(t, contentCalls, f.content.calls)
	assert.Equal(t, subCalls, f.subs.calls)
	assert.Equal(t, featureCalls, f.features.calls)
	assert.Equal(t, modelCalls, f.model.calls)
	assert.Equal(t, 1, f.cache.puts)
}

func TestEvaluateMissingContent(t *testing.T) {
	f := newEngineFixture(nil, nil)

	_, err := f.engine.Evaluate(context.Background(), "u1", "missing")
	assert.ErrorIs(t, err, core.ErrNotFound)
}

func TestEvaluateDistinctPairsCacheSeparately(t *testing.T) {
	f := newEngineFixture(premiumContent(), nil)

	_, err := f.engine.Evaluate(context.Background(), "u1", "c1")
	require.NoError(t, err)

	_, err = f.engine.Evaluate(context.Background(), "u2", "c1")
	require.NoError(t, err)

	assert.Equal(t, 2, f.cache.puts)
}
