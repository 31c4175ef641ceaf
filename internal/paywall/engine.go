// AngelaMos | 2026
// engine.go

package paywall

import (
	"context"
	"fmt"
	"log/slog"
	"time"
)

// ContentStore resolves content by identifier. A missing id surfaces as
// core.ErrNotFound from the implementation.
type ContentStore interface {
	ContentByID(ctx context.Context, contentID string) (*ContentInfo, error)
}

// SubscriptionInfo is the engine's view of an active subscription.
type SubscriptionInfo struct {
	Tier      Tier
	StartedAt time.Time
	ExpiresAt time.Time
}

// SubscriptionStore resolves a user's currently active subscription:
// active flag set, unexpired, most recently started if several qualify.
// (nil, nil) means the user has none.
type SubscriptionStore interface {
	ActiveSubscriptionFor(
		ctx context.Context,
		userID string,
	) (*SubscriptionInfo, error)
}

// InteractionRecord is one logged behavior event.
type InteractionRecord struct {
	UserID             string
	ContentID          string
	ViewTimeSeconds    float64
	ScrollDepthPercent float64
	InteractionScore   float64
}

// BehaviorLogger persists interaction records.
type BehaviorLogger interface {
	LogInteraction(ctx context.Context, record InteractionRecord) error
}

// FeatureSource produces the model input for a (user, content) pair.
type FeatureSource interface {
	Extract(
		ctx context.Context,
		userID, contentID string,
	) (FeatureVector, error)
}

// Predictor is the trained fallback model's inference contract.
type Predictor interface {
	Predict(features []float64) bool
}

// Engine produces access verdicts for (user, content) pairs: cache check,
// strict plan authorization, and on denial a predictive fallback whose
// grant suggestion is surfaced as advisory text, never as actual access.
type Engine struct {
	content    ContentStore
	subs       SubscriptionStore
	cache      VerdictCache
	features   FeatureSource
	model      Predictor
	behavior   BehaviorLogger
	logger     *slog.Logger
	logTimeout time.Duration
}

func NewEngine(
	content ContentStore,
	subs SubscriptionStore,
	cache VerdictCache,
	features FeatureSource,
	model Predictor,
	behavior BehaviorLogger,
	logger *slog.Logger,
) *Engine {
	return &Engine{
		content:    content,
		subs:       subs,
		cache:      cache,
		features:   features,
		model:      model,
		behavior:   behavior,
		logger:     logger,
		logTimeout: 5 * time.Second,
	}
}

// Evaluate runs one access decision. A cached verdict is returned verbatim
// with no re-authorization or re-logging; every computed verdict is written
// back to the cache before returning, denials included.
func (e *Engine) Evaluate(
	ctx context.Context,
	userID, contentID string,
) (*AccessVerdict, error) {
	key := CacheKey(contentID, userID)

	cached, err := e.cache.Get(ctx, key)
	if err != nil {
		// A degraded cache must not block content delivery.
		e.logger.Warn(
			"verdict cache read failed",
			"key", key,
			"error", err,
		)
	}
	if cached != nil {
		return cached, nil
	}

	content, err := e.content.ContentByID(ctx, contentID)
	if err != nil {
		return nil, fmt.Errorf("resolve content: %w", err)
	}

	sub, err := e.subs.ActiveSubscriptionFor(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("resolve subscription: %w", err)
	}

	activeTier := TierNone
	if sub != nil {
		activeTier = sub.Tier
	}

	verdict := &AccessVerdict{Content: *content}

	if Authorize(Tier(content.RequiredPlan), activeTier) {
		verdict.Granted = true
		e.logBehavior(ctx, InteractionRecord{
			UserID:    userID,
			ContentID: contentID,
		})

		return e.respond(ctx, key, verdict)
	}

	verdict.Advisory = AdvisoryUpgradeRequired

	vector, err := e.features.Extract(ctx, userID, contentID)
	if err != nil {
		// Fail closed: an eligibility hint is never shown when its
		// inputs could not be computed.
		e.logger.Warn(
			"feature extraction failed",
			"user_id", userID,
			"content_id", contentID,
			"error", err,
		)

		return e.respond(ctx, key, verdict)
	}

	if e.model.Predict(vector.Values()) {
		verdict.Advisory = AdvisoryFallbackEligible
	}

	return e.respond(ctx, key, verdict)
}

func (e *Engine) respond(
	ctx context.Context,
	key string,
	verdict *AccessVerdict,
) (*AccessVerdict, error) {
	if err := e.cache.Put(ctx, key, verdict); err != nil {
		e.logger.Warn(
			"verdict cache write failed",
			"key", key,
			"error", err,
		)
	}

	return verdict, nil
}

// logBehavior records an interaction without blocking the response or
// inheriting the request's cancellation.
func (e *Engine) logBehavior(ctx context.Context, record InteractionRecord) {
	detached := context.WithoutCancel(ctx)

	go func() {
		logCtx, cancel := context.WithTimeout(detached, e.logTimeout)
		defer cancel()

		if err := e.behavior.LogInteraction(logCtx, record); err != nil {
			e.logger.Warn(
				"behavior log write failed",
				"user_id", record.UserID,
				"content_id", record.ContentID,
				"error", err,
			)
		}
	}()
}
