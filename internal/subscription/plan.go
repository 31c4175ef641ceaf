// AngelaMos | 2026
// plan.go

package subscription

import "time"

// Plan is a purchasable subscription tier. Prices are minor units
// (cents) because that is what the payment gateway charges in.
type Plan struct {
	ID         string
	PriceCents int64
	Duration   time.Duration
}

var plans = map[string]Plan{
	"basic": {
		ID:         "basic",
		PriceCents: 999,
		Duration:   30 * 24 * time.Hour,
	},
	"premium": {
		ID:         "premium",
		PriceCents: 1999,
		Duration:   30 * 24 * time.Hour,
	},
}

// PlanByID looks up a purchasable plan. Any id outside the table is a
// client error, not a tier: "free" is not purchasable.
func PlanByID(id string) (Plan, bool) {
	plan, ok := plans[id]
	return plan, ok
}
