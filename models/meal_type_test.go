package models

import "testing"

func TestParseMealType(t *testing.T) {
	t.Parallel()

	cases := []struct {
		name  string
		value string
		want  MealType
		ok    bool
	}{
		{"breakfast", "breakfast", MealBreakfast, true},
		{"mixed case", " Lunch ", MealLunch, true},
		{"dinner", "DINNER", MealDinner, true},
		{"unknown", "brunch", MealType("brunch"), false},
		{"empty", "", MealType(""), false},
	}

	for _, tt := range cases {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			got, ok := ParseMealType(tt.value)
			if got != tt.want || ok != tt.ok {
				t.Fatalf("ParseMealType(%q) = (%q, %t), want (%q, %t)", tt.value, got, ok, tt.want, tt.ok)
			}
		})
	}
}

func TestMealTypesAreValid(t *testing.T) {
	t.Parallel()

	for _, m := range MealTypes {
		if !m.Valid() {
			t.Fatalf("MealType %q reported invalid", m)
		}
	}
}
