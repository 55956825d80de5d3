package dispatch

import (
	"bytes"
	"encoding/json"

	"beondiet/internal/apperr"
	"beondiet/internal/macro"
	"beondiet/internal/services"
	"beondiet/models"
)

type idArgs struct {
	ID *uint `json:"id"`
}

func (a idArgs) require() (uint, error) {
	if a.ID == nil {
		return 0, apperr.Validation("id is required")
	}
	return *a.ID, nil
}

type ingredientInput struct {
	ID      *uint    `json:"id"`
	Name    *string  `json:"name"`
	Carbs   *float64 `json:"carbs"`
	Protein *float64 `json:"protein"`
	Fat     *float64 `json:"fat"`
	Kcal    *float64 `json:"kcal"`
}

type ingredientArgs struct {
	Input *ingredientInput `json:"input"`
}

func (a ingredientArgs) create() (services.IngredientInput, error) {
	in := a.Input
	if in == nil {
		return services.IngredientInput{}, apperr.Validation("input is required")
	}
	required := []struct {
		field string
		set   bool
	}{
		{"name", in.Name != nil},
		{"carbs", in.Carbs != nil},
		{"protein", in.Protein != nil},
		{"fat", in.Fat != nil},
		{"kcal", in.Kcal != nil},
	}
	for _, r := range required {
		if !r.set {
			return services.IngredientInput{}, apperr.Validation("input.%s is required", r.field)
		}
	}
	return services.IngredientInput{
		Name:    *in.Name,
		Carbs:   *in.Carbs,
		Protein: *in.Protein,
		Fat:     *in.Fat,
		Kcal:    *in.Kcal,
	}, nil
}

func (a ingredientArgs) update() (uint, services.IngredientPatch, error) {
	in := a.Input
	if in == nil {
		return 0, services.IngredientPatch{}, apperr.Validation("input is required")
	}
	if in.ID == nil {
		return 0, services.IngredientPatch{}, apperr.Validation("input.id is required")
	}
	return *in.ID, services.IngredientPatch{
		Name:    in.Name,
		Carbs:   in.Carbs,
		Protein: in.Protein,
		Fat:     in.Fat,
		Kcal:    in.Kcal,
	}, nil
}

type portionInput struct {
	IngredientID uint `json:"ingredient_id"`
	Grams        int  `json:"grams"`
}

type recipeInput struct {
	ID                 *uint          `json:"id"`
	Name               string         `json:"name"`
	MealType           string         `json:"meal_type"`
	Ingredients        []portionInput `json:"ingredients"`
	NameOrMealChanged  *bool          `json:"name_or_meal_changed"`
	IngredientsChanged *bool          `json:"ingredients_changed"`
}

type recipeArgs struct {
	Input *recipeInput `json:"input"`
}

func (in *recipeInput) recipe() services.RecipeInput {
	meal, ok := models.ParseMealType(in.MealType)
	if !ok {
		meal = models.MealType(in.MealType)
	}
	portions := make([]macro.Portion, 0, len(in.Ingredients))
	for _, p := range in.Ingredients {
		portions = append(portions, macro.Portion{IngredientID: p.IngredientID, Grams: p.Grams})
	}
	return services.RecipeInput{Name: in.Name, MealType: meal, Portions: portions}
}

func (a recipeArgs) create() (services.RecipeInput, error) {
	if a.Input == nil {
		return services.RecipeInput{}, apperr.Validation("input is required")
	}
	return a.Input.recipe(), nil
}

// update reads the change flags; an omitted flag counts as changed.
func (a recipeArgs) update() (uint, services.RecipeInput, services.RecipeChanges, error) {
	in := a.Input
	if in == nil {
		return 0, services.RecipeInput{}, services.RecipeChanges{}, apperr.Validation("input is required")
	}
	if in.ID == nil {
		return 0, services.RecipeInput{}, services.RecipeChanges{}, apperr.Validation("input.id is required")
	}
	changes := services.AllChanges
	if in.NameOrMealChanged != nil {
		changes.NameOrMeal = *in.NameOrMealChanged
	}
	if in.IngredientsChanged != nil {
		changes.Ingredients = *in.IngredientsChanged
	}
	return *in.ID, in.recipe(), changes, nil
}

func decode(raw json.RawMessage, dst any) error {
	raw = bytes.TrimSpace(raw)
	if len(raw) == 0 || bytes.Equal(raw, []byte("null")) {
		raw = []byte("{}")
	}
	dec := json.NewDecoder(bytes.NewReader(raw))
	dec.DisallowUnknownFields()
	if err := dec.Decode(dst); err != nil {
		return apperr.Validation("invalid arguments: %v", err)
	}
	return nil
}
