package models

import "strings"

// MealType categorises a recipe by the meal it is intended for.
type MealType string

const (
	MealBreakfast MealType = "breakfast"
	MealLunch     MealType = "lunch"
	MealDinner    MealType = "dinner"
)

// MealTypes lists every supported meal category.
var MealTypes = []MealType{MealBreakfast, MealLunch, MealDinner}

// Valid reports whether m is one of the supported meal categories.
func (m MealType) Valid() bool {
	switch m {
	case MealBreakfast, MealLunch, MealDinner:
		return true
	default:
		return false
	}
}

// ParseMealType normalises the provided value and reports whether it names a
// supported meal category.
func ParseMealType(value string) (MealType, bool) {
	m := MealType(strings.ToLower(strings.TrimSpace(value)))
	return m, m.Valid()
}
