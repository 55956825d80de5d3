// Package services implements the ingredient and recipe operations on top of
// the store and the macro engine. Every mutation runs in a single transaction
// and leaves no partial state behind when it fails.
package services

import (
	"math"
	"strings"
	"time"
	"unicode/utf8"

	"gorm.io/datatypes"

	"beondiet/internal/apperr"
	"beondiet/internal/macro"
	"beondiet/internal/store"
)

const (
	maxNameLength  = 50
	initialVersion = 1
)

// Options tunes the services. The zero value uses the wall clock and the
// default rounding precision.
type Options struct {
	Now      func() time.Time
	Decimals int
}

func (o Options) withDefaults() Options {
	if o.Now == nil {
		o.Now = time.Now
	}
	if o.Decimals <= 0 {
		o.Decimals = macro.DefaultDecimals
	}
	return o
}

// Services bundles the ingredient and recipe services over one store.
type Services struct {
	Ingredients *IngredientService
	Recipes     *RecipeService
}

func New(s *store.Store, opts Options) *Services {
	opts = opts.withDefaults()
	recipes := NewRecipeService(s, macro.NewEngine(s), opts)
	return &Services{
		Ingredients: NewIngredientService(s, recipes),
		Recipes:     recipes,
	}
}

func today(now func() time.Time) datatypes.Date {
	y, m, d := now().Date()
	return datatypes.Date(time.Date(y, m, d, 0, 0, 0, 0, time.UTC))
}

func normalizeName(entity, name string) (string, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return "", apperr.Validation("%s name is required", entity)
	}
	if utf8.RuneCountInString(name) > maxNameLength {
		return "", apperr.Validation("%s name must be at most %d characters", entity, maxNameLength)
	}
	return name, nil
}

func validateMacro(field string, value float64) error {
	if math.IsNaN(value) || math.IsInf(value, 0) {
		return apperr.Validation("%s must be a finite number", field)
	}
	if value < 0 {
		return apperr.Validation("%s must not be negative", field)
	}
	return nil
}
