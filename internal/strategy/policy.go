// Package strategy defines the two representations of a traffic-shaping
// rule (the editable, all-strings form state and the canonical numeric
// policy document) and the total codec between them.
package strategy

// PolicyDocument is the canonical form of one strategy, as consumed by
// the external traffic-control engine. The JSON field names are the wire
// contract and must not change.
type PolicyDocument struct {
	Filter Filter `json:"filter"`
}

// Filter carries the description, the response action and the match
// conditions of one strategy.
type Filter struct {
	Desc            string          `json:"desc"`
	ResponseOnMatch ResponseOnMatch `json:"responseOnMatch"`
	MatchAll        []MatchEntry    `json:"matchAll"`
}

// ResponseOnMatch is the action applied when every condition holds.
type ResponseOnMatch struct {
	Strategy   string    `json:"strategy"`
	StrategyID string    `json:"strategy_id"`
	SpeedInfo  SpeedSpec `json:"speed_info"`
}

// MatchEntry is one condition triple on the wire: [field, operator, value].
type MatchEntry struct {
	Match []string `json:"match"`
}

// SpeedSpec is the numeric limit/speed block. Every leaf is a pointer so
// the codec can tell an absent leaf from an explicit zero; a well-formed
// encoder output always populates all eight limit/speed leaves.
//
// Limit semantics: -1 unlimited, 0 block, positive is a KB/s ceiling.
// Expire is present only when the rule carries a duration.
type SpeedSpec struct {
	Limit  ScopeLimits  `json:"limit"`
	Speed  SpeedTargets `json:"speed"`
	Expire *float64     `json:"expire,omitempty"`
}

// ScopeLimits holds the global and per-task throughput ceilings.
type ScopeLimits struct {
	Global *float64 `json:"global"`
	Task   *float64 `json:"task"`
}

// SpeedTargets holds the acceleration tiers per scope.
type SpeedTargets struct {
	Global SpeedTier `json:"global"`
	Task   SpeedTier `json:"task"`
}

// SpeedTier is one base/VIP/target speed triple in KB/s.
type SpeedTier struct {
	BS *float64 `json:"bs"`
	VS *float64 `json:"vs"`
	TS *float64 `json:"ts"`
}

// StrategyID returns the document's identity key.
func (d PolicyDocument) StrategyID() string {
	return d.Filter.ResponseOnMatch.StrategyID
}
