// AngelaMos | 2026
// verdict_test.go

package paywall

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCacheKeyDistinguishesIdentifierBoundaries(t *testing.T) {
	// Concatenation-style keys would collide for these pairs.
	a := CacheKey("c1&user=x", "u1")
	b := CacheKey("c1", "x&user=u1")
	assert.NotEqual(t, a, b)

	assert.Equal(
		t,
		CacheKey("content-1", "user-1"),
		CacheKey("content-1", "user-1"),
	)
	assert.NotEqual(
		t,
		CacheKey("content-1", "user-2"),
		CacheKey("content-2", "user-1"),
	)
}

func TestAdvisorySerialization(t *testing.T) {
	verdict := AccessVerdict{
		Content: ContentInfo{ID: "c1", RequiredPlan: "premium"},
		Granted: false,
	}

	t.Run("none is omitted", func(t *testing.T) {
		raw, err := json.Marshal(verdict)
		require.NoError(t, err)
		assert.NotContains(t, string(raw), "message")
	})

	t.Run("fallback-eligible round trips", func(t *testing.T) {
		verdict.Advisory = AdvisoryFallbackEligible
		raw, err := json.Marshal(verdict)
		require.NoError(t, err)
		assert.Contains(t, string(raw), `"message":"fallback-eligible"`)

		var decoded AccessVerdict
		require.NoError(t, json.Unmarshal(raw, &decoded))
		assert.Equal(t, verdict, decoded)
	})

	t.Run("upgrade required round trips", func(t *testing.T) {
		verdict.Advisory = AdvisoryUpgradeRequired
		raw, err := json.Marshal(verdict)
		require.NoError(t, err)
		assert.Contains(t, string(raw), `"message":"upgrade required"`)

		var decoded AccessVerdict
		require.NoError(t, json.Unmarshal(raw, &decoded))
		assert.Equal(t, verdict, decoded)
	})

	t.Run("unknown advisory rejected", func(t *testing.T) {
		var a Advisory
		assert.Error(t, a.UnmarshalText([]byte("free-trial")))
	})
}
