// AngelaMos | 2026
// charger.go

package subscription

import (
	"context"
	"errors"
	"fmt"

	"github.com/stripe/stripe-go/v76"
	"github.com/stripe/stripe-go/v76/paymentintent"
)

// Charger is the synchronous payment contract the purchase flow depends
// on: false means the charge was declined, an error means the gateway
// itself could not be reached.
type Charger interface {
	Charge(
		ctx context.Context,
		paymentToken string,
		amountCents int64,
		currency string,
	) (bool, error)
}

// StripeCharger captures payment through a confirmed Stripe PaymentIntent.
type StripeCharger struct{}

func NewStripeCharger(apiKey string) *StripeCharger {
	stripe.Key = apiKey
	return &StripeCharger{}
}

func (s *StripeCharger) Charge(
	ctx context.Context,
	paymentToken string,
	amountCents int64,
	currency string,
) (bool, error) {
	params := &stripe.PaymentIntentParams{
		Amount:        stripe.Int64(amountCents),
		Currency:      stripe.String(currency),
		PaymentMethod: stripe.String(paymentToken),
		Confirm:       stripe.Bool(true),
		AutomaticPaymentMethods: &stripe.PaymentIntentAutomaticPaymentMethodsParams{
			Enabled:        stripe.Bool(true),
			AllowRedirects: stripe.String("never"),
		},
	}
	params.Context = ctx

	pi, err := paymentintent.New(params)
	if err != nil {
		var stripeErr *stripe.Error
		if errors.As(err, &stripeErr) &&
			stripeErr.Type == stripe.ErrorTypeCard {
			return false, nil
		}
		return false, fmt.Errorf("stripe payment intent: %w", err)
	}

	return pi.Status == stripe.PaymentIntentStatusSucceeded, nil
}

var _ Charger = (*StripeCharger)(nil)
