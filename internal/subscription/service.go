// AngelaMos | 2026
// service.go

package subscription

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/carterperez-dev/paywall-api/internal/core"
	"github.com/carterperez-dev/paywall-api/internal/paywall"
	"github.com/carterperez-dev/paywall-api/internal/user"
)

type Service struct {
	repo     Repository
	charger  Charger
	currency string
	now      func() time.Time
}

func NewService(repo Repository, charger Charger, currency string) *Service {
	return &Service{
		repo:     repo,
		charger:  charger,
		currency: currency,
		now:      time.Now,
	}
}

// Purchase charges the payment token for the plan and activates a new
// subscription starting now. Any previously active subscription for the
// user is deactivated in the same transaction.
func (s *Service) Purchase(
	ctx context.Context,
	userID, planID, paymentToken string,
) (*Subscription, error) {
	plan, ok := PlanByID(planID)
	if !ok {
		return nil, fmt.Errorf("plan %q: %w", planID, core.ErrInvalidInput)
	}

	charged, err := s.charger.Charge(
		ctx, paymentToken, plan.PriceCents, s.currency,
	)
	if err != nil {
		return nil, fmt.Errorf("charge: %w", err)
	}
	if !charged {
		return nil, fmt.Errorf("charge: %w", core.ErrPaymentDeclined)
	}

	startedAt := s.now()
	sub := &Subscription{
		ID:        uuid.New().String(),
		UserID:    userID,
		PlanID:    plan.ID,
		StartedAt: startedAt,
		ExpiresAt: startedAt.Add(plan.Duration),
		Active:    true,
	}

	if err := s.repo.Create(ctx, sub); err != nil {
		return nil, err
	}

	return sub, nil
}

// ActiveSubscriptionFor resolves the user's current entitlement for the
// access engine. Absence of a subscription is not an error.
func (s *Service) ActiveSubscriptionFor(
	ctx context.Context,
	userID string,
) (*paywall.SubscriptionInfo, error) {
	sub, err := s.repo.ActiveForUser(ctx, userID)
	if errors.Is(err, core.ErrNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	return &paywall.SubscriptionInfo{
		Tier:      paywall.Tier(sub.PlanID),
		StartedAt: sub.StartedAt,
		ExpiresAt: sub.ExpiresAt,
	}, nil
}

// ActiveSummaryForUser feeds the profile endpoint. Nil when the user has
// no active subscription.
func (s *Service) ActiveSummaryForUser(
	ctx context.Context,
	userID string,
) (*user.SubscriptionSummary, error) {
	sub, err := s.repo.ActiveForUser(ctx, userID)
	if errors.Is(err, core.ErrNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	return &user.SubscriptionSummary{
		PlanID:    sub.PlanID,
		StartedAt: sub.StartedAt,
		ExpiresAt: sub.ExpiresAt,
	}, nil
}

// TenureDays exposes subscription tenure for feature extraction.
func (s *Service) TenureDays(
	ctx context.Context,
	userID string,
) (float64, error) {
	return s.repo.TenureDays(ctx, userID)
}

var _ paywall.SubscriptionStore = (*Service)(nil)
