package strategy

import (
	"testing"
)

func TestNewFormState(t *testing.T) {
	a := NewFormState()
	b := NewFormState()

	if a.ID == "" {
		t.Error("expected a generated ID")
	}
	if a.ID == b.ID {
		t.Error("two new forms share an ID")
	}
	if len(a.Conditions) != 0 {
		t.Errorf("new form has %d conditions, want 0", len(a.Conditions))
	}
}

func TestSpeedLeaf_GetSet(t *testing.T) {
	var form SpeedForm

	for i, leaf := range SpeedLeaves {
		form.Set(leaf, "x")
		if got := form.Get(leaf); got != "x" {
			t.Errorf("leaf %d: Get after Set = %q, want \"x\"", i, got)
		}
		// Other leaves stay untouched
		for j, other := range SpeedLeaves {
			if other == leaf {
				continue
			}
			if got := form.Get(other); got != "" {
				t.Errorf("setting leaf %d disturbed leaf %d: %q", i, j, got)
			}
		}
		form.Set(leaf, "")
	}
}

func TestAddCondition_DefaultOperator(t *testing.T) {
	tests := []struct {
		field string
		want  string
	}{
		{"user.type", "in"},
		{"effective.period", "between"},
		{"tags.realtime", "in"},
		{"unknown.field", "=="},
	}

	for _, tt := range tests {
		t.Run(tt.field, func(t *testing.T) {
			form := NewFormState()
			c := form.AddCondition(tt.field)
			if c.Operator != tt.want {
				t.Errorf("default operator for %s = %q, want %q", tt.field, c.Operator, tt.want)
			}
			if c.ID == "" {
				t.Error("condition has no local ID")
			}
			if c.Value != "" {
				t.Errorf("new condition has value %q, want empty", c.Value)
			}
		})
	}
}

func TestRemoveCondition(t *testing.T) {
	form := NewFormState()
	c1 := form.AddCondition("user.type")
	c2 := form.AddCondition("client.type")
	c3 := form.AddCondition("tags.offline")

	form.RemoveCondition(c2.ID)

	if len(form.Conditions) != 2 {
		t.Fatalf("expected 2 conditions, got %d", len(form.Conditions))
	}
	if form.Conditions[0].ID != c1.ID || form.Conditions[1].ID != c3.ID {
		t.Error("removal disturbed the order of remaining conditions")
	}

	// Unknown ID is a no-op
	form.RemoveCondition("nope")
	if len(form.Conditions) != 2 {
		t.Errorf("removing unknown ID changed the set: %d conditions", len(form.Conditions))
	}
}

func TestSetConditionField_ResetsOperatorAndValue(t *testing.T) {
	form := NewFormState()
	c := form.AddCondition("user.type")
	form.SetConditionOperator(c.ID, "==")
	form.SetConditionValue(c.ID, "3")

	form.SetConditionField(c.ID, "effective.period")

	got := form.Conditions[0]
	if got.Field != "effective.period" {
		t.Errorf("field = %q", got.Field)
	}
	if got.Operator != "between" {
		t.Errorf("operator = %q, want the new field's default \"between\"", got.Operator)
	}
	if got.Value != "" {
		t.Errorf("value = %q, want cleared", got.Value)
	}
}

func TestSetConditionOperator_KeepsValue(t *testing.T) {
	form := NewFormState()
	c := form.AddCondition("user.type")
	form.SetConditionValue(c.ID, "3,4")

	form.SetConditionOperator(c.ID, "==")

	got := form.Conditions[0]
	if got.Operator != "==" {
		t.Errorf("operator = %q", got.Operator)
	}
	if got.Value != "3,4" {
		t.Errorf("operator change cleared the value: %q", got.Value)
	}
}

func TestToggleToken(t *testing.T) {
	tests := []struct {
		name  string
		value string
		token string
		want  string
	}{
		{"add to empty", "", "a", "a"},
		{"add second", "a", "b", "a,b"},
		{"remove only", "a", "a", ""},
		{"remove first", "a,b,c", "a", "b,c"},
		{"remove middle", "a,b,c", "b", "a,c"},
		{"remove last", "a,b,c", "c", "a,b"},
		{"add absent", "a,c", "b", "a,c,b"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ToggleToken(tt.value, tt.token)
			if got != tt.want {
				t.Errorf("ToggleToken(%q, %q) = %q, want %q", tt.value, tt.token, got, tt.want)
			}
		})
	}
}

func TestToggleToken_TwiceRestores(t *testing.T) {
	// Toggling an absent token on and off again restores the original
	values := []string{"", "a", "a,b", "x,y,z"}
	for _, v := range values {
		once := ToggleToken(v, "new")
		twice := ToggleToken(once, "new")
		if twice != v {
			t.Errorf("double toggle on %q yielded %q", v, twice)
		}
	}
}

func TestSplitRange(t *testing.T) {
	tests := []struct {
		value     string
		wantStart string
		wantEnd   string
	}{
		{"18:00-23:00", "18:00", "23:00"},
		{"-23:00", "", "23:00"},
		{"18:00-", "18:00", ""},
		{"-", "", ""},
		{"", "", ""},
		{"notarange", "", ""},
	}

	for _, tt := range tests {
		start, end := SplitRange(tt.value)
		if start != tt.wantStart || end != tt.wantEnd {
			t.Errorf("SplitRange(%q) = (%q, %q), want (%q, %q)",
				tt.value, start, end, tt.wantStart, tt.wantEnd)
		}
	}
}

func TestSetRangeSides(t *testing.T) {
	v := JoinRange("18:00", "23:00")

	v = SetRangeStart(v, "19:30")
	if v != "19:30-23:00" {
		t.Errorf("after SetRangeStart: %q", v)
	}

	v = SetRangeEnd(v, "22:00")
	if v != "19:30-22:00" {
		t.Errorf("after SetRangeEnd: %q", v)
	}

	// Starting from a value without a separator
	if got := SetRangeStart("garbage", "08:00"); got != "08:00-" {
		t.Errorf("SetRangeStart on malformed value = %q, want \"08:00-\"", got)
	}
}
