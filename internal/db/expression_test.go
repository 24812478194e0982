package db

import "testing"

func f64(v float64) *float64 { return &v }

func TestNewExpression_Limits(t *testing.T) {
	c, err := NewTagIn("category_id", "tools")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	many := make([]Condition, MaxConditions+1)
	for i := range many {
		many[i] = c
	}

	if _, err := NewExpression(many, nil); err == nil {
		t.Error("expected error for too many must conditions")
	}
	if _, err := NewExpression(nil, many); err == nil {
		t.Error("expected error for too many must_not conditions")
	}

	e, err := NewExpression([]Condition{c}, nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if e.IsEmpty() {
		t.Error("expected non-empty expression")
	}
	if !(Expression{}).IsEmpty() {
		t.Error("zero expression must be empty")
	}
}

func TestNewTagIn(t *testing.T) {
	tests := []struct {
		name    string
		key     string
		values  []string
		wantErr bool
	}{
		{"single", "location_id", []string{"garage"}, false},
		{"many", "location_id", []string{"garage", "shed"}, false},
		{"no key", "", []string{"x"}, true},
		{"no values", "location_id", nil, true},
		{"empty value", "location_id", []string{"garage", ""}, true},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			c, err := NewTagIn(tc.key, tc.values...)
			if (err != nil) != tc.wantErr {
				t.Fatalf("err = %v, wantErr %v", err, tc.wantErr)
			}
			if err == nil && (!c.IsTag() || c.IsRange()) {
				t.Error("expected a tag condition")
			}
		})
	}
}

func TestNewRangeFilter(t *testing.T) {
	if _, err := NewRangeFilter(nil, nil, nil, nil); err == nil {
		t.Error("expected error for unbounded range")
	}
	if _, err := NewRangeFilter(f64(1), f64(1), nil, nil); err == nil {
		t.Error("expected error for gt+gte")
	}
	if _, err := NewRangeFilter(nil, nil, f64(1), f64(1)); err == nil {
		t.Error("expected error for lt+lte")
	}

	r, err := NewRangeFilter(f64(0), nil, nil, f64(100))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if *r.GT() != 0 || *r.LTE() != 100 || r.GTE() != nil || r.LT() != nil {
		t.Errorf("unexpected bounds: %+v", r)
	}

	c, err := NewRange("expires_at", r)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !c.IsRange() || c.IsTag() {
		t.Error("expected a range condition")
	}
	if _, err := NewRange("", r); err == nil {
		t.Error("expected error for empty key")
	}
}
