// Package macro computes recipe macro profiles from weighted ingredient
// references. It is the only place nutritional numbers are derived.
package macro

import (
	"math"

	"beondiet/models"
)

// DefaultDecimals is the precision persisted macros are rounded to when no
// other precision is configured.
const DefaultDecimals = 2

// Profile is the (grams, carbs, protein, fat, kcal) tuple of a dish.
type Profile struct {
	Grams   int
	Carbs   float64
	Protein float64
	Fat     float64
	Kcal    float64
}

// Portion is one ingredient reference inside a recipe.
type Portion struct {
	IngredientID uint
	Grams        int
}

// Contribution returns what grams of ingredient add to a recipe. Ingredient
// macros are expressed per 100 g.
func Contribution(ingredient models.Ingredient, grams int) Profile {
	ratio := float64(grams) / 100
	return Profile{
		Grams:   grams,
		Carbs:   ingredient.Carbs * ratio,
		Protein: ingredient.Protein * ratio,
		Fat:     ingredient.Fat * ratio,
		Kcal:    ingredient.Kcal * ratio,
	}
}

func (p Profile) Add(other Profile) Profile {
	return Profile{
		Grams:   p.Grams + other.Grams,
		Carbs:   p.Carbs + other.Carbs,
		Protein: p.Protein + other.Protein,
		Fat:     p.Fat + other.Fat,
		Kcal:    p.Kcal + other.Kcal,
	}
}

// Rounded returns p with every real-valued macro rounded half away from zero
// to the given number of decimals. Grams are an exact integer sum already.
func (p Profile) Rounded(decimals int) Profile {
	if decimals < 0 {
		return p
	}
	return Profile{
		Grams:   p.Grams,
		Carbs:   roundTo(p.Carbs, decimals),
		Protein: roundTo(p.Protein, decimals),
		Fat:     roundTo(p.Fat, decimals),
		Kcal:    roundTo(p.Kcal, decimals),
	}
}

// Fields returns the recipe column patch that stores p.
func (p Profile) Fields() map[string]any {
	return map[string]any{
		"grams":   p.Grams,
		"carbs":   p.Carbs,
		"protein": p.Protein,
		"fat":     p.Fat,
		"kcal":    p.Kcal,
	}
}

// FromRecipe reads the stored profile of recipe. ok is false while the recipe
// has never been aggregated.
func FromRecipe(recipe models.Recipe) (Profile, bool) {
	if recipe.Grams == nil || recipe.Carbs == nil || recipe.Protein == nil || recipe.Fat == nil || recipe.Kcal == nil {
		return Profile{}, false
	}
	return Profile{
		Grams:   *recipe.Grams,
		Carbs:   *recipe.Carbs,
		Protein: *recipe.Protein,
		Fat:     *recipe.Fat,
		Kcal:    *recipe.Kcal,
	}, true
}

func roundTo(value float64, decimals int) float64 {
	scale := math.Pow(10, float64(decimals))
	return math.Round(value*scale) / scale
}
