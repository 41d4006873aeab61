// Package catalog is the static registry of match fields and strategy
// kinds. For every field it answers three questions from a single field
// kind: which operators are legal, which operator is the default, and
// which value-editing widget applies.
package catalog

import (
	"github.com/wj-stack/NetFlow/internal/metadata"
)

// Operator is a comparison operator usable in a match condition.
// The string values are the wire contract of the policy document.
type Operator string

const (
	OpIn      Operator = "in"
	OpBetween Operator = "between"
	OpEq      Operator = "=="
	OpNeq     Operator = "!="
	OpGte     Operator = ">="
	OpLte     Operator = "<="
	OpGt      Operator = ">"
	OpLt      Operator = "<"
)

// Kind is the closed set of field kinds. The operator set and the widget
// choice are both derived from it, so the three cannot drift apart.
type Kind interface {
	fieldKind()
}

// BoundedCategory marks a field whose domain is the token set of one
// metadata category.
type BoundedCategory struct {
	Category metadata.Category
}

func (BoundedCategory) fieldKind() {}

// Temporal marks an effective-period style field.
type Temporal struct{}

func (Temporal) fieldKind() {}

// FreeText marks any field without a bounded domain.
type FreeText struct{}

func (FreeText) fieldKind() {}

// Field describes one match field.
type Field struct {
	Name  string
	Label string
	Kind  Kind
}

var fields = []Field{
	{Name: "user.type", Label: "用户类型 (User Type)", Kind: BoundedCategory{metadata.CategoryUser}},
	{Name: "effective.period", Label: "生效时间 (Time Period)", Kind: Temporal{}},
	{Name: "tags.realtime", Label: "实时标签 (Realtime Tag)", Kind: BoundedCategory{metadata.CategoryRealtime}},
	{Name: "tags.offline", Label: "离线标签 (Offline Tag)", Kind: BoundedCategory{metadata.CategoryOffline}},
	{Name: "client.type", Label: "客户端类型 (Client)", Kind: BoundedCategory{metadata.CategoryClient}},
}

// Fields returns the registered match fields in display order.
func Fields() []Field {
	result := make([]Field, len(fields))
	copy(result, fields)
	return result
}

// Lookup returns the descriptor for a field name. Unknown fields fall
// back to a FreeText descriptor rather than failing.
func Lookup(name string) Field {
	for _, f := range fields {
		if f.Name == name {
			return f
		}
	}
	return Field{Name: name, Label: name, Kind: FreeText{}}
}

var (
	temporalOperators = []Operator{OpBetween, OpEq, OpGte, OpLte, OpGt, OpLt}
	discreteOperators = []Operator{OpIn, OpEq, OpNeq}
)

// Operators returns the ordered set of operators legal for a field.
func Operators(field string) []Operator {
	var src []Operator
	switch Lookup(field).Kind.(type) {
	case Temporal:
		src = temporalOperators
	default:
		src = discreteOperators
	}
	result := make([]Operator, len(src))
	copy(result, src)
	return result
}

// DefaultOperator returns the operator a freshly assigned field starts
// with: between for temporal fields, in for bounded categories, == for
// everything else.
func DefaultOperator(field string) Operator {
	switch Lookup(field).Kind.(type) {
	case Temporal:
		return OpBetween
	case BoundedCategory:
		return OpIn
	default:
		return OpEq
	}
}

// WidgetType names the value-editing widget a condition needs.
type WidgetType string

const (
	WidgetMultiSelect  WidgetType = "multi_select"
	WidgetSingleSelect WidgetType = "single_select"
	WidgetTimeRange    WidgetType = "time_range"
	WidgetTime         WidgetType = "time"
	WidgetText         WidgetType = "text"
)

// Widget is the resolved value-editor choice for one (field, operator)
// pair. Category is set only for the select widgets and names the
// metadata category whose options populate them.
type Widget struct {
	Type     WidgetType        `json:"type"`
	Category metadata.Category `json:"category,omitempty"`
}

// WidgetFor resolves the value widget for a (field, operator) pair.
// The mapping is pure: it depends on nothing but the field kind and the
// operator.
func WidgetFor(field string, op Operator) Widget {
	switch k := Lookup(field).Kind.(type) {
	case BoundedCategory:
		if op == OpIn {
			return Widget{Type: WidgetMultiSelect, Category: k.Category}
		}
		return Widget{Type: WidgetSingleSelect, Category: k.Category}
	case Temporal:
		if op == OpBetween {
			return Widget{Type: WidgetTimeRange}
		}
		return Widget{Type: WidgetTime}
	default:
		return Widget{Type: WidgetText}
	}
}

// StrategyKind is one selectable strategy type.
type StrategyKind struct {
	Value string `json:"value"`
	Label string `json:"label"`
}

var strategyKinds = []StrategyKind{
	{Value: "spike_fill_valley", Label: "冲高&填谷策略 (Spike & Fill)"},
	{Value: "speed_limit", Label: "限速策略 (Speed Limit)"},
	{Value: "trial_acceleration", Label: "试用加速 (Trial)"},
	{Value: "base_guarantee", Label: "基础保底 (Base Guarantee)"},
	{Value: "ladder_boost", Label: "阶梯升档 (Ladder Boost)"},
}

// StrategyKinds returns the selectable strategy types in display order.
func StrategyKinds() []StrategyKind {
	result := make([]StrategyKind, len(strategyKinds))
	copy(result, strategyKinds)
	return result
}

// KnownStrategyKind reports whether v is a registered strategy type.
func KnownStrategyKind(v string) bool {
	for _, k := range strategyKinds {
		if k.Value == v {
			return true
		}
	}
	return false
}
