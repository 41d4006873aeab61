package strategy

import (
	"strconv"
	"strings"

	"github.com/google/uuid"
)

// Fallbacks substituted for empty or unparseable numeric input. A missing
// limit means "unlimited"; a missing speed or expire means zero.
const (
	limitFallback = -1
	speedFallback = 0
)

// parseFallback parses s as a decimal number, substituting fallback when
// s is empty, whitespace-only or not a number. Never fails.
func parseFallback(s string, fallback float64) float64 {
	trimmed := strings.TrimSpace(s)
	if trimmed == "" {
		return fallback
	}
	n, err := strconv.ParseFloat(trimmed, 64)
	if err != nil {
		return fallback
	}
	return n
}

// formatNumber renders a numeric leaf back into its minimal decimal
// string form ("3", "3.5"); a nil (absent) leaf becomes the empty string
// so the editor can tell "unset" from "explicitly zero".
func formatNumber(n *float64) string {
	if n == nil {
		return ""
	}
	return strconv.FormatFloat(*n, 'f', -1, 64)
}

func numberPtr(n float64) *float64 {
	return &n
}

// Encode converts a form state into its canonical policy document. The
// conversion is total: malformed numeric strings take their per-field
// fallback, expire appears only when the duration is non-empty, and the
// UI-local condition IDs are discarded.
func Encode(form FormState) PolicyDocument {
	spec := SpeedSpec{
		Limit: ScopeLimits{
			Global: numberPtr(parseFallback(form.SpeedInfo.Limit.Global, limitFallback)),
			Task:   numberPtr(parseFallback(form.SpeedInfo.Limit.Task, limitFallback)),
		},
		Speed: SpeedTargets{
			Global: SpeedTier{
				BS: numberPtr(parseFallback(form.SpeedInfo.Speed.Global.BS, speedFallback)),
				VS: numberPtr(parseFallback(form.SpeedInfo.Speed.Global.VS, speedFallback)),
				TS: numberPtr(parseFallback(form.SpeedInfo.Speed.Global.TS, speedFallback)),
			},
			Task: SpeedTier{
				BS: numberPtr(parseFallback(form.SpeedInfo.Speed.Task.BS, speedFallback)),
				VS: numberPtr(parseFallback(form.SpeedInfo.Speed.Task.VS, speedFallback)),
				TS: numberPtr(parseFallback(form.SpeedInfo.Speed.Task.TS, speedFallback)),
			},
		},
	}

	if form.Duration != "" {
		spec.Expire = numberPtr(parseFallback(form.Duration, speedFallback))
	}

	matchAll := make([]MatchEntry, 0, len(form.Conditions))
	for _, c := range form.Conditions {
		matchAll = append(matchAll, MatchEntry{Match: []string{c.Field, c.Operator, c.Value}})
	}

	return PolicyDocument{
		Filter: Filter{
			Desc: form.Desc,
			ResponseOnMatch: ResponseOnMatch{
				Strategy:   form.StrategyType,
				StrategyID: form.ID,
				SpeedInfo:  spec,
			},
			MatchAll: matchAll,
		},
	}
}

// Decode converts a canonical policy document back into an editable form
// state. Every numeric leaf becomes its decimal string form; absent
// leaves become empty strings, an absent expire becomes an empty
// duration, and each condition gets a freshly generated local ID. Decode
// never fails: a document missing nested objects simply yields empty
// fields.
func Decode(doc PolicyDocument) FormState {
	spec := doc.Filter.ResponseOnMatch.SpeedInfo

	conditions := make([]Condition, 0, len(doc.Filter.MatchAll))
	for _, m := range doc.Filter.MatchAll {
		c := Condition{ID: uuid.NewString()}
		if len(m.Match) > 0 {
			c.Field = m.Match[0]
		}
		if len(m.Match) > 1 {
			c.Operator = m.Match[1]
		}
		if len(m.Match) > 2 {
			c.Value = m.Match[2]
		}
		conditions = append(conditions, c)
	}

	return FormState{
		ID:           doc.Filter.ResponseOnMatch.StrategyID,
		Desc:         doc.Filter.Desc,
		StrategyType: doc.Filter.ResponseOnMatch.Strategy,
		SpeedInfo: SpeedForm{
			Limit: LimitForm{
				Global: formatNumber(spec.Limit.Global),
				Task:   formatNumber(spec.Limit.Task),
			},
			Speed: SpeedTierForm{
				Global: TierForm{
					BS: formatNumber(spec.Speed.Global.BS),
					VS: formatNumber(spec.Speed.Global.VS),
					TS: formatNumber(spec.Speed.Global.TS),
				},
				Task: TierForm{
					BS: formatNumber(spec.Speed.Task.BS),
					VS: formatNumber(spec.Speed.Task.VS),
					TS: formatNumber(spec.Speed.Task.TS),
				},
			},
		},
		Duration:   formatNumber(spec.Expire),
		Conditions: conditions,
	}
}
