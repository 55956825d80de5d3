package macro

import (
	"context"

	"gorm.io/gorm"

	"beondiet/internal/apperr"
	applog "beondiet/internal/log"
	"beondiet/internal/store"
	"beondiet/models"
)

// Engine sums the weighted macros of a recipe's portions and records the
// matching composition rows. It must run inside the caller's transaction so
// that a failed lookup leaves no rows behind.
type Engine struct {
	ingredients  *store.Ingredients
	compositions *store.Compositions
}

func NewEngine(s *store.Store) *Engine {
	return &Engine{ingredients: s.Ingredients, compositions: s.Compositions}
}

// Aggregate computes the macro profile of portions for recipeID and inserts
// one composition row per portion. An unknown ingredient id aborts the whole
// pass with a NotFound error before any row is written.
func (e *Engine) Aggregate(ctx context.Context, tx *gorm.DB, recipeID uint, portions []Portion) (Profile, error) {
	ids := make([]uint, 0, len(portions))
	for _, portion := range portions {
		ids = append(ids, portion.IngredientID)
	}

	ingredients, err := e.ingredients.GetMany(ctx, tx, ids)
	if err != nil {
		return Profile{}, err
	}

	var total Profile
	rows := make([]models.RecipeIngredient, 0, len(portions))
	for _, portion := range portions {
		ingredient, ok := ingredients[portion.IngredientID]
		if !ok {
			return Profile{}, apperr.NotFound("ingredient", portion.IngredientID)
		}
		total = total.Add(Contribution(ingredient, portion.Grams))
		rows = append(rows, models.RecipeIngredient{
			RecipeID:     recipeID,
			IngredientID: portion.IngredientID,
			Grams:        portion.Grams,
		})
	}

	if err := e.compositions.AddRows(ctx, tx, rows); err != nil {
		return Profile{}, err
	}

	applog.Debug(ctx, "recipe aggregated",
		"recipe_id", recipeID,
		"portions", len(portions),
		"grams", total.Grams,
		"kcal", total.Kcal,
	)
	return total, nil
}

// Replace clears the recipe's current composition rows and aggregates the new
// portions in their place.
func (e *Engine) Replace(ctx context.Context, tx *gorm.DB, recipeID uint, portions []Portion) (Profile, error) {
	if _, err := e.compositions.DeleteAllForRecipe(ctx, tx, recipeID); err != nil {
		return Profile{}, err
	}
	return e.Aggregate(ctx, tx, recipeID, portions)
}

// Reaggregate rebuilds the recipe's profile from the composition rows it
// already has.
func (e *Engine) Reaggregate(ctx context.Context, tx *gorm.DB, recipeID uint) (Profile, error) {
	rows, err := e.compositions.ListForRecipe(ctx, tx, recipeID)
	if err != nil {
		return Profile{}, err
	}
	portions := make([]Portion, 0, len(rows))
	for _, row := range rows {
		portions = append(portions, Portion{IngredientID: row.IngredientID, Grams: row.Grams})
	}
	return e.Replace(ctx, tx, recipeID, portions)
}
