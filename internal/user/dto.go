// AngelaMos | 2026
// dto.go

package user

import (
	"time"
)

type SubscriptionSummary struct {
	PlanID    string    `json:"plan_id"`
	StartedAt time.Time `json:"started_at"`
	ExpiresAt time.Time `json:"expires_at"`
}

type ProfileResponse struct {
	UserID              string               `json:"user_id"`
	Username            string               `json:"username"`
	Email               string               `json:"email"`
	Subscription        *SubscriptionSummary `json:"subscription"`
	TotalInteractions   int64                `json:"total_interactions"`
	AvgInteractionScore float64              `json:"avg_interaction_score"`
}
