// AngelaMos | 2026
// tier.go

package paywall

// Tier is a named subscription level ordered by entitlement.
type Tier string

const (
	TierNone    Tier = ""
	TierFree    Tier = "free"
	TierBasic   Tier = "basic"
	TierPremium Tier = "premium"
)

var tierRank = map[Tier]int{
	TierFree:    0,
	TierBasic:   1,
	TierPremium: 2,
}

// Authorize maps (content's required tier, user's active tier) to a strict
// allow/deny verdict. An unrecognized required tier denies everyone; free
// content is open regardless of subscription state.
func Authorize(required, active Tier) bool {
	req, ok := tierRank[required]
	if !ok {
		return false
	}

	if req == 0 {
		return true
	}

	act, ok := tierRank[active]
	if !ok {
		return false
	}

	return act >= req
}
