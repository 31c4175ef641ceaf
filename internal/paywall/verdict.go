// AngelaMos | 2026
// verdict.go

package paywall

import (
	"fmt"
	"net/url"
)

// Advisory is the optional upsell hint attached to a denial verdict.
// It is a recommendation only; the engine never grants access from it.
type Advisory int

const (
	AdvisoryNone Advisory = iota
	AdvisoryFallbackEligible
	AdvisoryUpgradeRequired
)

const (
	advisoryFallbackEligible = "fallback-eligible"
	advisoryUpgradeRequired  = "upgrade required"
)

func (a Advisory) String() string {
	switch a {
	case AdvisoryFallbackEligible:
		return advisoryFallbackEligible
	case AdvisoryUpgradeRequired:
		return advisoryUpgradeRequired
	default:
		return ""
	}
}

func (a Advisory) MarshalText() ([]byte, error) {
	return []byte(a.String()), nil
}

func (a *Advisory) UnmarshalText(text []byte) error {
	switch string(text) {
	case "":
		*a = AdvisoryNone
	case advisoryFallbackEligible:
		*a = AdvisoryFallbackEligible
	case advisoryUpgradeRequired:
		*a = AdvisoryUpgradeRequired
	default:
		return fmt.Errorf("unknown advisory %q", text)
	}

	return nil
}

// ContentInfo is the content payload carried inside a verdict.
type ContentInfo struct {
	ID           string `json:"id"`
	Title        string `json:"title"`
	Body         string `json:"body"`
	RequiredPlan string `json:"required_plan"`
}

// AccessVerdict is the engine's output for one (user, content) evaluation.
// Constructed per evaluation, cached as a serialized value, never mutated.
type AccessVerdict struct {
	Content  ContentInfo `json:"content"`
	Granted  bool        `json:"granted"`
	Advisory Advisory    `json:"message,omitempty"`
}

// CacheKey derives the deterministic cache fingerprint for a
// (content, user) pair. Both identifiers are percent-encoded so their
// boundaries cannot be confused regardless of what characters they contain.
func CacheKey(contentID, userID string) string {
	return "content=" + url.QueryEscape(contentID) +
		"&user=" + url.QueryEscape(userID)
}
