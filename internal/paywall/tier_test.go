// AngelaMos | 2026
// tier_test.go

package paywall

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestAuthorize(t *testing.T) {
	tests := []struct {
		name     string
		required Tier
		active   Tier
		want     bool
	}{
		{"free content, no subscription", TierFree, TierNone, true},
		{"free content, basic", TierFree, TierBasic, true},
		{"free content, premium", TierFree, TierPremium, true},

		{"basic content, no subscription", TierBasic, TierNone, false},
		{"basic content, basic", TierBasic, TierBasic, true},
		{"basic content, premium", TierBasic, TierPremium, true},

		{"premium content, no subscription", TierPremium, TierNone, false},
		{"premium content, basic", TierPremium, TierBasic, false},
		{"premium content, premium", TierPremium, TierPremium, true},

		{"unknown required tier denies everyone", Tier("gold"), TierPremium, false},
		{"unknown required tier, no subscription", Tier("gold"), TierNone, false},
		{"unknown required tier, basic", Tier("gold"), TierBasic, false},

		{"unknown active tier on gated content", TierBasic, Tier("trial"), false},
		{"unknown active tier on free content", TierFree, Tier("trial"), true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Authorize(tt.required, tt.active))
		})
	}
}
