package dispatch

import (
	"time"

	"beondiet/models"
)

const dateLayout = "2006-01-02"

type IngredientView struct {
	ID      uint    `json:"id"`
	Name    string  `json:"name"`
	Carbs   float64 `json:"carbs"`
	Protein float64 `json:"protein"`
	Fat     float64 `json:"fat"`
	Kcal    float64 `json:"kcal"`
}

type CompositionView struct {
	IngredientID uint   `json:"ingredient_id"`
	Name         string `json:"name,omitempty"`
	Grams        int    `json:"grams"`
}

type RecipeView struct {
	ID          uint              `json:"id"`
	Version     int               `json:"version"`
	Name        string            `json:"name"`
	LastUpdate  string            `json:"last_update"`
	MealType    string            `json:"meal_type"`
	Grams       *int              `json:"grams"`
	Carbs       *float64          `json:"carbs"`
	Protein     *float64          `json:"protein"`
	Fat         *float64          `json:"fat"`
	Kcal        *float64          `json:"kcal"`
	Ingredients []CompositionView `json:"ingredients,omitempty"`
}

// Deleted is the envelope returned by delete operations.
type Deleted struct {
	ID uint `json:"id"`
}

func NewIngredientView(ingredient models.Ingredient) IngredientView {
	return IngredientView{
		ID:      ingredient.ID,
		Name:    ingredient.Name,
		Carbs:   ingredient.Carbs,
		Protein: ingredient.Protein,
		Fat:     ingredient.Fat,
		Kcal:    ingredient.Kcal,
	}
}

func NewIngredientViews(ingredients []models.Ingredient) []IngredientView {
	views := make([]IngredientView, 0, len(ingredients))
	for _, ingredient := range ingredients {
		views = append(views, NewIngredientView(ingredient))
	}
	return views
}

func NewRecipeView(recipe models.Recipe) RecipeView {
	view := RecipeView{
		ID:         recipe.ID,
		Version:    recipe.Version,
		Name:       recipe.Name,
		LastUpdate: time.Time(recipe.LastUpdate).Format(dateLayout),
		MealType:   string(recipe.MealType),
		Grams:      recipe.Grams,
		Carbs:      recipe.Carbs,
		Protein:    recipe.Protein,
		Fat:        recipe.Fat,
		Kcal:       recipe.Kcal,
	}
	if len(recipe.Ingredients) > 0 {
		view.Ingredients = NewCompositionViews(recipe.Ingredients)
	}
	return view
}

func NewCompositionViews(rows []models.RecipeIngredient) []CompositionView {
	views := make([]CompositionView, 0, len(rows))
	for _, row := range rows {
		view := CompositionView{IngredientID: row.IngredientID, Grams: row.Grams}
		if row.Ingredient != nil {
			view.Name = row.Ingredient.Name
		}
		views = append(views, view)
	}
	return views
}

func NewRecipeViews(recipes []models.Recipe) []RecipeView {
	views := make([]RecipeView, 0, len(recipes))
	for _, recipe := range recipes {
		views = append(views, NewRecipeView(recipe))
	}
	return views
}
