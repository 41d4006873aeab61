package strategy

import (
	"strings"

	"github.com/google/uuid"

	"github.com/wj-stack/NetFlow/internal/catalog"
)

// Condition is one editable match predicate. ID is a process-local
// identity for the editor; it has no counterpart in the policy document
// and is regenerated on every decode.
type Condition struct {
	ID       string `json:"id"`
	Field    string `json:"field"`
	Operator string `json:"operator"`
	Value    string `json:"value"`
}

// SpeedForm mirrors SpeedSpec with string-typed leaves so the editor can
// hold in-progress, cleared or invalid input. Empty string means unset.
type SpeedForm struct {
	Limit LimitForm     `json:"limit"`
	Speed SpeedTierForm `json:"speed"`
}

type LimitForm struct {
	Global string `json:"global"`
	Task   string `json:"task"`
}

type SpeedTierForm struct {
	Global TierForm `json:"global"`
	Task   TierForm `json:"task"`
}

type TierForm struct {
	BS string `json:"bs"`
	VS string `json:"vs"`
	TS string `json:"ts"`
}

// FormState is the editable representation of one strategy.
type FormState struct {
	ID           string      `json:"id"`
	Desc         string      `json:"desc"`
	StrategyType string      `json:"strategyType"`
	SpeedInfo    SpeedForm   `json:"speedInfo"`
	Duration     string      `json:"duration"`
	Conditions   []Condition `json:"conditions"`
}

// NewFormState creates an empty form with a fresh strategy identifier,
// ready for a new strategy.
func NewFormState() FormState {
	return FormState{ID: uuid.NewString()}
}

// SpeedLeaf addresses one numeric leaf of SpeedForm. Leaf-typed access
// keeps the form statically structured instead of dynamically keyed by a
// dotted path.
type SpeedLeaf int

const (
	LimitGlobal SpeedLeaf = iota
	LimitTask
	SpeedGlobalBS
	SpeedGlobalVS
	SpeedGlobalTS
	SpeedTaskBS
	SpeedTaskVS
	SpeedTaskTS
)

// SpeedLeaves lists every leaf, in document order.
var SpeedLeaves = []SpeedLeaf{
	LimitGlobal, LimitTask,
	SpeedGlobalBS, SpeedGlobalVS, SpeedGlobalTS,
	SpeedTaskBS, SpeedTaskVS, SpeedTaskTS,
}

// Get returns the current string value of a leaf.
func (s *SpeedForm) Get(leaf SpeedLeaf) string {
	switch leaf {
	case LimitGlobal:
		return s.Limit.Global
	case LimitTask:
		return s.Limit.Task
	case SpeedGlobalBS:
		return s.Speed.Global.BS
	case SpeedGlobalVS:
		return s.Speed.Global.VS
	case SpeedGlobalTS:
		return s.Speed.Global.TS
	case SpeedTaskBS:
		return s.Speed.Task.BS
	case SpeedTaskVS:
		return s.Speed.Task.VS
	case SpeedTaskTS:
		return s.Speed.Task.TS
	}
	return ""
}

// Set assigns one leaf, leaving every other leaf untouched.
func (s *SpeedForm) Set(leaf SpeedLeaf, v string) {
	switch leaf {
	case LimitGlobal:
		s.Limit.Global = v
	case LimitTask:
		s.Limit.Task = v
	case SpeedGlobalBS:
		s.Speed.Global.BS = v
	case SpeedGlobalVS:
		s.Speed.Global.VS = v
	case SpeedGlobalTS:
		s.Speed.Global.TS = v
	case SpeedTaskBS:
		s.Speed.Task.BS = v
	case SpeedTaskVS:
		s.Speed.Task.VS = v
	case SpeedTaskTS:
		s.Speed.Task.TS = v
	}
}

// NewCondition creates a condition for a field with that field's default
// operator, an empty value and a fresh local ID.
func NewCondition(field string) Condition {
	return Condition{
		ID:       uuid.NewString(),
		Field:    field,
		Operator: string(catalog.DefaultOperator(field)),
	}
}

// AddCondition appends a new condition for the given field.
func (f *FormState) AddCondition(field string) Condition {
	c := NewCondition(field)
	f.Conditions = append(f.Conditions, c)
	return c
}

// RemoveCondition deletes the condition with the given local ID; removing
// an unknown ID is a no-op.
func (f *FormState) RemoveCondition(id string) {
	for i, c := range f.Conditions {
		if c.ID == id {
			f.Conditions = append(f.Conditions[:i], f.Conditions[i+1:]...)
			return
		}
	}
}

// SetConditionField reassigns a condition's field. The operator resets to
// the new field's default and the value is cleared: a stale value is not
// reinterpretable across field kinds.
func (f *FormState) SetConditionField(id, field string) {
	for i := range f.Conditions {
		if f.Conditions[i].ID == id {
			f.Conditions[i].Field = field
			f.Conditions[i].Operator = string(catalog.DefaultOperator(field))
			f.Conditions[i].Value = ""
			return
		}
	}
}

// SetConditionOperator changes only the operator.
func (f *FormState) SetConditionOperator(id, op string) {
	for i := range f.Conditions {
		if f.Conditions[i].ID == id {
			f.Conditions[i].Operator = op
			return
		}
	}
}

// SetConditionValue changes only the value.
func (f *FormState) SetConditionValue(id, value string) {
	for i := range f.Conditions {
		if f.Conditions[i].ID == id {
			f.Conditions[i].Value = value
			return
		}
	}
}

// ToggleToken flips the membership of token in a comma-joined value set.
// A token not yet present is appended; a present one is removed, with the
// order of the remaining tokens preserved. Toggling the same token twice
// restores the original string.
func ToggleToken(value, token string) string {
	var tokens []string
	if value != "" {
		for _, t := range strings.Split(value, ",") {
			if t != "" {
				tokens = append(tokens, t)
			}
		}
	}

	for i, t := range tokens {
		if t == token {
			tokens = append(tokens[:i], tokens[i+1:]...)
			return strings.Join(tokens, ",")
		}
	}
	return strings.Join(append(tokens, token), ",")
}

// SplitRange splits a "<start>-<end>" time-range value. A value without a
// separator yields two blanks, whatever it contains.
func SplitRange(value string) (start, end string) {
	if !strings.Contains(value, "-") {
		return "", ""
	}
	parts := strings.Split(value, "-")
	start = parts[0]
	if len(parts) > 1 {
		end = parts[1]
	}
	return start, end
}

// JoinRange encodes a time-range value. Either side may be blank.
func JoinRange(start, end string) string {
	return start + "-" + end
}

// SetRangeStart rewrites the start side of a range value, preserving the
// end side verbatim.
func SetRangeStart(value, start string) string {
	_, end := SplitRange(value)
	return JoinRange(start, end)
}

// SetRangeEnd rewrites the end side of a range value, preserving the
// start side verbatim.
func SetRangeEnd(value, end string) string {
	start, _ := SplitRange(value)
	return JoinRange(start, end)
}
