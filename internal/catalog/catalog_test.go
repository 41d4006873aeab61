package catalog

import (
	"reflect"
	"testing"

	"github.com/wj-stack/NetFlow/internal/metadata"
)

func TestOperators(t *testing.T) {
	tests := []struct {
		field string
		want  []Operator
	}{
		{"effective.period", []Operator{OpBetween, OpEq, OpGte, OpLte, OpGt, OpLt}},
		{"user.type", []Operator{OpIn, OpEq, OpNeq}},
		{"tags.realtime", []Operator{OpIn, OpEq, OpNeq}},
		{"client.type", []Operator{OpIn, OpEq, OpNeq}},
		{"no.such.field", []Operator{OpIn, OpEq, OpNeq}},
	}

	for _, tt := range tests {
		t.Run(tt.field, func(t *testing.T) {
			got := Operators(tt.field)
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("Operators(%q) = %v, want %v", tt.field, got, tt.want)
			}
		})
	}
}

func TestDefaultOperator(t *testing.T) {
	tests := []struct {
		field string
		want  Operator
	}{
		{"effective.period", OpBetween},
		{"user.type", OpIn},
		{"tags.offline", OpIn},
		{"no.such.field", OpEq},
	}

	for _, tt := range tests {
		if got := DefaultOperator(tt.field); got != tt.want {
			t.Errorf("DefaultOperator(%q) = %q, want %q", tt.field, got, tt.want)
		}
	}
}

func TestDefaultOperatorIsLegal(t *testing.T) {
	// The default must always be a member of the legal set
	for _, f := range Fields() {
		def := DefaultOperator(f.Name)
		legal := false
		for _, op := range Operators(f.Name) {
			if op == def {
				legal = true
				break
			}
		}
		if !legal {
			t.Errorf("default operator %q for %s is not in its legal set", def, f.Name)
		}
	}
}

func TestWidgetFor(t *testing.T) {
	tests := []struct {
		name  string
		field string
		op    Operator
		want  Widget
	}{
		{"bounded in", "user.type", OpIn, Widget{Type: WidgetMultiSelect, Category: metadata.CategoryUser}},
		{"bounded eq", "user.type", OpEq, Widget{Type: WidgetSingleSelect, Category: metadata.CategoryUser}},
		{"bounded neq", "client.type", OpNeq, Widget{Type: WidgetSingleSelect, Category: metadata.CategoryClient}},
		{"realtime in", "tags.realtime", OpIn, Widget{Type: WidgetMultiSelect, Category: metadata.CategoryRealtime}},
		{"temporal between", "effective.period", OpBetween, Widget{Type: WidgetTimeRange}},
		{"temporal eq", "effective.period", OpEq, Widget{Type: WidgetTime}},
		{"temporal gte", "effective.period", OpGte, Widget{Type: WidgetTime}},
		{"unknown field", "no.such.field", OpEq, Widget{Type: WidgetText}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := WidgetFor(tt.field, tt.op)
			if got != tt.want {
				t.Errorf("WidgetFor(%q, %q) = %+v, want %+v", tt.field, tt.op, got, tt.want)
			}
		})
	}
}

func TestLookup_UnknownFallsBackToFreeText(t *testing.T) {
	f := Lookup("made.up")
	if f.Name != "made.up" {
		t.Errorf("name = %q", f.Name)
	}
	if _, ok := f.Kind.(FreeText); !ok {
		t.Errorf("kind = %T, want FreeText", f.Kind)
	}
}

func TestFields_Copy(t *testing.T) {
	a := Fields()
	a[0].Name = "mutated"
	b := Fields()
	if b[0].Name == "mutated" {
		t.Error("Fields() exposes the internal slice")
	}
}

func TestKnownStrategyKind(t *testing.T) {
	for _, k := range StrategyKinds() {
		if !KnownStrategyKind(k.Value) {
			t.Errorf("registered kind %q not recognized", k.Value)
		}
	}
	if KnownStrategyKind("turbo_mode") {
		t.Error("unregistered kind recognized")
	}
	if KnownStrategyKind("") {
		t.Error("empty kind recognized")
	}
}
