// AngelaMos | 2026
// dto.go

package subscription

import "time"

type PurchaseRequest struct {
	PlanID       string `json:"plan_id"       validate:"required"`
	PaymentToken string `json:"payment_token" validate:"required"`
}

type PurchaseResponse struct {
	SubscriptionID string    `json:"subscription_id"`
	PlanID         string    `json:"plan_id"`
	StartedAt      time.Time `json:"started_at"`
	ExpiresAt      time.Time `json:"expires_at"`
}
