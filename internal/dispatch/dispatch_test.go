package dispatch

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"beondiet/internal/apperr"
	"beondiet/internal/db/dbtest"
	"beondiet/internal/services"
	"beondiet/internal/store"
)

func newDispatcher(t *testing.T) *Dispatcher {
	t.Helper()
	now := func() time.Time { return time.Date(2024, 2, 29, 18, 0, 0, 0, time.UTC) }
	svc := services.New(store.New(dbtest.Open(t)), services.Options{Now: now})
	return New(svc)
}

func call(t *testing.T, d *Dispatcher, op, args string) any {
	t.Helper()
	out, err := d.Dispatch(context.Background(), op, json.RawMessage(args))
	require.NoError(t, err, op)
	return out
}

func TestDispatchRecipeLifecycle(t *testing.T) {
	d := newDispatcher(t)

	a := call(t, d, "createIngredient", `{"input":{"name":"A","carbs":10,"protein":2,"fat":1,"kcal":60}}`).(IngredientView)
	require.NotZero(t, a.ID)

	created := call(t, d, "createRecipe", `{"input":{"name":"Bowl","meal_type":"lunch","ingredients":[{"ingredient_id":1,"grams":200}]}}`).(RecipeView)
	assert.Equal(t, "2024-02-29", created.LastUpdate)
	assert.Equal(t, "lunch", created.MealType)
	assert.Equal(t, 1, created.Version)
	require.NotNil(t, created.Kcal)
	assert.InDelta(t, 120, *created.Kcal, 1e-9)
	require.Len(t, created.Ingredients, 1)
	assert.Equal(t, "A", created.Ingredients[0].Name)

	renamed := call(t, d, "updateRecipe", `{"input":{"id":1,"name":"Big Bowl","meal_type":"dinner","ingredients":[],"name_or_meal_changed":true,"ingredients_changed":false}}`).(RecipeView)
	assert.Equal(t, "Big Bowl", renamed.Name)
	assert.InDelta(t, 120, *renamed.Kcal, 1e-9)

	// Omitted flags count as changed.
	replaced := call(t, d, "updateRecipe", `{"input":{"id":1,"name":"Big Bowl","meal_type":"dinner","ingredients":[{"ingredient_id":1,"grams":100}]}}`).(RecipeView)
	assert.InDelta(t, 60, *replaced.Kcal, 1e-9)

	listed := call(t, d, "recipes", ``).([]RecipeView)
	require.Len(t, listed, 1)

	deleted := call(t, d, "deleteReceipe", `{"id":1}`)
	assert.Equal(t, Deleted{ID: 1}, deleted)

	_, err := d.Dispatch(context.Background(), "recipe", json.RawMessage(`{"id":1}`))
	assert.ErrorIs(t, err, apperr.ErrNotFound)

	gone := call(t, d, "deleteIngredient", `{"id":1}`)
	encoded, err := json.Marshal(gone)
	require.NoError(t, err)
	assert.JSONEq(t, `{"id":1}`, string(encoded))
}

func TestDispatchIngredientOperations(t *testing.T) {
	d := newDispatcher(t)

	call(t, d, "createIngredient", `{"input":{"name":"Oats","carbs":60,"protein":13,"fat":7,"kcal":380}}`)
	updated := call(t, d, "updateIngredient", `{"input":{"id":1,"fat":6.5}}`).(IngredientView)
	assert.Equal(t, 6.5, updated.Fat)
	assert.Equal(t, "Oats", updated.Name)

	got := call(t, d, "ingredient", `{"id":1}`).(IngredientView)
	assert.Equal(t, updated, got)

	all := call(t, d, "ingredients", `{}`).([]IngredientView)
	assert.Len(t, all, 1)
}

func TestDispatchErrors(t *testing.T) {
	d := newDispatcher(t)
	ctx := context.Background()

	cases := []struct {
		name string
		op   string
		args string
		want error
	}{
		{"unknown operation", "dropTables", `{}`, apperr.ErrValidation},
		{"malformed json", "ingredient", `{"id":`, apperr.ErrValidation},
		{"unknown field", "ingredient", `{"id":1,"extra":true}`, apperr.ErrValidation},
		{"missing id", "recipe", `{}`, apperr.ErrValidation},
		{"missing macro", "createIngredient", `{"input":{"name":"X","carbs":1,"protein":1,"fat":1}}`, apperr.ErrValidation},
		{"missing input", "createRecipe", `{}`, apperr.ErrValidation},
		{"unknown meal", "createRecipe", `{"input":{"name":"X","meal_type":"brunch","ingredients":[]}}`, apperr.ErrValidation},
		{"unknown ingredient", "createRecipe", `{"input":{"name":"X","meal_type":"lunch","ingredients":[{"ingredient_id":9,"grams":10}]}}`, apperr.ErrNotFound},
		{"missing recipe", "deleteRecipe", `{"id":5}`, apperr.ErrNotFound},
		{"missing ingredient", "updateIngredient", `{"input":{"id":5,"kcal":1}}`, apperr.ErrNotFound},
	}
	for _, tt := range cases {
		t.Run(tt.name, func(t *testing.T) {
			_, err := d.Dispatch(ctx, tt.op, json.RawMessage(tt.args))
			assert.ErrorIs(t, err, tt.want)
		})
	}
}

func TestOperationsListsEveryName(t *testing.T) {
	d := newDispatcher(t)
	assert.Equal(t, []string{
		"createIngredient", "createRecipe", "deleteIngredient", "deleteReceipe", "deleteRecipe",
		"ingredient", "ingredients", "recipe", "recipes", "updateIngredient", "updateRecipe",
	}, d.Operations())
}
