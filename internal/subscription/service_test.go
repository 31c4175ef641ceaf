// AngelaMos | 2026
// service_test.go

package subscription

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/carterperez-dev/paywall-api/internal/core"
	"github.com/carterperez-dev/paywall-api/internal/paywall"
)

type fakeRepo struct {
	active  *Subscription
	created *Subscription
	err     error
}

func (f *fakeRepo) ActiveForUser(
	_ context.Context, _ string,
) (*Subscription, error) {
	if f.err != nil {
		return nil, f.err
	}
	if f.active == nil {
		return nil, core.ErrNotFound
	}
	return f.active, nil
}

func (f *fakeRepo) Create(_ context.Context, sub *Subscription) error {
	if f.err != nil {
		return f.err
	}
	f.created = sub
	return nil
}

func (f *fakeRepo) TenureDays(_ context.Context, _ string) (float64, error) {
	return 0, f.err
}

type fakeCharger struct {
	approve bool
	err     error

	gotAmount   int64
	gotCurrency string
}

func (f *fakeCharger) Charge(
	_ context.Context, _ string, amountCents int64, currency string,
) (bool, error) {
	f.gotAmount = amountCents
	f.gotCurrency = currency
	return f.approve, f.err
}

func newTestService(
	repo *fakeRepo,
	charger *fakeCharger,
	now time.Time,
) *Service {
	svc := NewService(repo, charger, "usd")
	svc.now = func() time.Time { return now }
	return svc
}

func TestPurchaseCreatesThirtyDaySubscription(t *testing.T) {
	now := time.Date(2026, 8, 26, 9, 0, 0, 0, time.UTC)
	repo := &fakeRepo{}
	charger := &fakeCharger{approve: true}

	svc := newTestService(repo, charger, now)

	sub, err := svc.Purchase(context.Background(), "u1", "premium", "tok_ok")
	require.NoError(t, err)

	assert.Equal(t, "u1", sub.UserID)
	assert.Equal(t, "premium", sub.PlanID)
	assert.True(t, sub.Active)
	assert.Equal(t, now, sub.StartedAt)
	assert.Equal(t, now.Add(30*24*time.Hour), sub.ExpiresAt)
	assert.Equal(t, repo.created, sub)

	assert.EqualValues(t, 1999, charger.gotAmount)
	assert.Equal(t, "usd", charger.gotCurrency)
}

func TestPurchaseBasicPlanPrice(t *testing.T) {
	charger := &fakeCharger{approve: true}
	svc := newTestService(&fakeRepo{}, charger, time.Now())

	_, err := svc.Purchase(context.Background(), "u1", "basic", "tok_ok")
	require.NoError(t, err)
	assert.EqualValues(t, 999, charger.gotAmount)
}

func TestPurchaseUnknownPlan(t *testing.T) {
	charger := &fakeCharger{approve: true}
	svc := newTestService(&fakeRepo{}, charger, time.Now())

	_, err := svc.Purchase(context.Background(), "u1", "gold", "tok_ok")
	assert.ErrorIs(t, err, core.ErrInvalidInput)
	assert.Zero(t, charger.gotAmount)
}

func TestPurchaseDeclined(t *testing.T) {
	repo := &fakeRepo{}
	svc := newTestService(repo, &fakeCharger{approve: false}, time.Now())

	_, err := svc.Purchase(context.Background(), "u1", "basic", "tok_bad")
	assert.ErrorIs(t, err, core.ErrPaymentDeclined)
	assert.Nil(t, repo.created)
}

func TestPurchaseGatewayFault(t *testing.T) {
	charger := &fakeCharger{err: errors.New("gateway timeout")}
	svc := newTestService(&fakeRepo{}, charger, time.Now())

	_, err := svc.Purchase(context.Background(), "u1", "basic", "tok")
	require.Error(t, err)
	assert.NotErrorIs(t, err, core.ErrPaymentDeclined)
}

func TestActiveSubscriptionFor(t *testing.T) {
	t.Run("no subscription is not an error", func(t *testing.T) {
		svc := NewService(&fakeRepo{}, &fakeCharger{}, "usd")

		info, err := svc.ActiveSubscriptionFor(context.Background(), "u1")
		require.NoError(t, err)
		assert.Nil(t, info)
	})

	t.Run("maps plan to tier", func(t *testing.T) {
		started := time.Now().Add(-24 * time.Hour)
		expires := time.Now().Add(29 * 24 * time.Hour)
		svc := NewService(&fakeRepo{active: &Subscription{
			PlanID:    "premium",
			StartedAt: started,
			ExpiresAt: expires,
		}}, &fakeCharger{}, "usd")

		info, err := svc.ActiveSubscriptionFor(context.Background(), "u1")
		require.NoError(t, err)
		require.NotNil(t, info)
		assert.Equal(t, paywall.TierPremium, info.Tier)
		assert.Equal(t, started, info.StartedAt)
		assert.Equal(t, expires, info.ExpiresAt)
	})

	t.Run("store faults propagate", func(t *testing.T) {
		svc := NewService(
			&fakeRepo{err: errors.New("db down")},
			&fakeCharger{},
			"usd",
		)

		_, err := svc.ActiveSubscriptionFor(context.Background(), "u1")
		assert.Error(t, err)
	})
}
