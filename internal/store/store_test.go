package store

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/datatypes"
	"gorm.io/gorm"

	"beondiet/internal/apperr"
	"beondiet/internal/db/dbtest"
	"beondiet/models"
)

func newTestStore(t *testing.T) *Store {
	t.Helper()
	return New(dbtest.Open(t))
}

func seedIngredient(t *testing.T, s *Store, name string) *models.Ingredient {
	t.Helper()
	ingredient := &models.Ingredient{Name: name, Carbs: 10, Protein: 2, Fat: 1, Kcal: 60}
	require.NoError(t, s.Ingredients.Create(context.Background(), nil, ingredient))
	return ingredient
}

func seedRecipe(t *testing.T, s *Store, name string) *models.Recipe {
	t.Helper()
	recipe := &models.Recipe{
		Name:       name,
		Version:    1,
		MealType:   models.MealLunch,
		LastUpdate: datatypes.Date(time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC)),
	}
	require.NoError(t, s.Recipes.Create(context.Background(), nil, recipe))
	return recipe
}

func TestIngredientCRUD(t *testing.T) {
	ctx := context.Background()
	s := newTestStore(t)

	oats := seedIngredient(t, s, "Oats")
	require.NotZero(t, oats.ID)

	got, err := s.Ingredients.Get(ctx, nil, oats.ID)
	require.NoError(t, err)
	assert.Equal(t, "Oats", got.Name)

	require.NoError(t, s.Ingredients.Update(ctx, nil, oats.ID, map[string]any{"protein": 13.5}))
	got, err = s.Ingredients.Get(ctx, nil, oats.ID)
	require.NoError(t, err)
	assert.Equal(t, 13.5, got.Protein)
	assert.Equal(t, 10.0, got.Carbs)

	all, err := s.Ingredients.List(ctx, nil)
	require.NoError(t, err)
	assert.Len(t, all, 1)

	require.NoError(t, s.Ingredients.Delete(ctx, nil, oats.ID))
	_, err = s.Ingredients.Get(ctx, nil, oats.ID)
	assert.True(t, errors.Is(err, apperr.ErrNotFound))
}

func TestIngredientNotFound(t *testing.T) {
	ctx := context.Background()
	s := newTestStore(t)

	_, err := s.Ingredients.Get(ctx, nil, 99)
	assert.ErrorIs(t, err, apperr.ErrNotFound)
	assert.ErrorIs(t, s.Ingredients.Update(ctx, nil, 99, map[string]any{"fat": 1.0}), apperr.ErrNotFound)
	assert.ErrorIs(t, s.Ingredients.Delete(ctx, nil, 99), apperr.ErrNotFound)
}

func TestIngredientDuplicateNameIsConflict(t *testing.T) {
	s := newTestStore(t)
	seedIngredient(t, s, "Rice")

	err := s.Ingredients.Create(context.Background(), nil, &models.Ingredient{Name: "Rice"})
	assert.ErrorIs(t, err, apperr.ErrConflict)
}

func TestGetManySkipsMissing(t *testing.T) {
	s := newTestStore(t)
	a := seedIngredient(t, s, "Apple")
	b := seedIngredient(t, s, "Banana")

	got, err := s.Ingredients.GetMany(context.Background(), nil, []uint{a.ID, b.ID, 404})
	require.NoError(t, err)
	assert.Len(t, got, 2)
	assert.Equal(t, "Banana", got[b.ID].Name)

	empty, err := s.Ingredients.GetMany(context.Background(), nil, nil)
	require.NoError(t, err)
	assert.Empty(t, empty)
}

func TestFindByName(t *testing.T) {
	s := newTestStore(t)
	seedIngredient(t, s, "Kale")

	found, err := s.Ingredients.FindByName(context.Background(), nil, "Kale")
	require.NoError(t, err)
	require.NotNil(t, found)

	missing, err := s.Ingredients.FindByName(context.Background(), nil, "Spinach")
	require.NoError(t, err)
	assert.Nil(t, missing)
}

func TestRecipeIDByNameAndVersion(t *testing.T) {
	ctx := context.Background()
	s := newTestStore(t)
	recipe := seedRecipe(t, s, "Porridge")

	id, err := s.Recipes.IDByNameAndVersion(ctx, nil, "Porridge", 1)
	require.NoError(t, err)
	assert.Equal(t, recipe.ID, id)

	_, err = s.Recipes.IDByNameAndVersion(ctx, nil, "Porridge", 2)
	assert.ErrorIs(t, err, apperr.ErrNotFound)
}

func TestRecipeApplyFields(t *testing.T) {
	ctx := context.Background()
	s := newTestStore(t)
	recipe := seedRecipe(t, s, "Salad")
	require.Nil(t, recipe.Carbs)

	require.NoError(t, s.Recipes.ApplyFields(ctx, nil, recipe.ID, map[string]any{"carbs": 12.5, "grams": 250}))
	got, err := s.Recipes.Get(ctx, nil, recipe.ID)
	require.NoError(t, err)
	require.NotNil(t, got.Carbs)
	assert.Equal(t, 12.5, *got.Carbs)
	require.NotNil(t, got.Grams)
	assert.Equal(t, 250, *got.Grams)
	assert.Nil(t, got.Kcal)

	assert.ErrorIs(t, s.Recipes.ApplyFields(ctx, nil, 404, map[string]any{"fat": 1.0}), apperr.ErrNotFound)
}

func TestCompositionLifecycle(t *testing.T) {
	ctx := context.Background()
	s := newTestStore(t)
	recipe := seedRecipe(t, s, "Bowl")
	rice := seedIngredient(t, s, "Rice")
	beans := seedIngredient(t, s, "Beans")

	require.NoError(t, s.Compositions.AddRows(ctx, nil, []models.RecipeIngredient{
		{RecipeID: recipe.ID, IngredientID: rice.ID, Grams: 150},
		{RecipeID: recipe.ID, IngredientID: beans.ID, Grams: 80},
	}))

	rows, err := s.Compositions.ListForRecipe(ctx, nil, recipe.ID)
	require.NoError(t, err)
	require.Len(t, rows, 2)
	require.NotNil(t, rows[0].Ingredient)
	assert.Equal(t, "Rice", rows[0].Ingredient.Name)

	ids, err := s.Compositions.RecipeIDsUsingIngredient(ctx, nil, beans.ID)
	require.NoError(t, err)
	assert.Equal(t, []uint{recipe.ID}, ids)

	count, err := s.Compositions.CountForIngredient(ctx, nil, rice.ID)
	require.NoError(t, err)
	assert.EqualValues(t, 1, count)

	deleted, err := s.Compositions.DeleteAllForRecipe(ctx, nil, recipe.ID)
	require.NoError(t, err)
	assert.EqualValues(t, 2, deleted)

	rows, err = s.Compositions.ListForRecipe(ctx, nil, recipe.ID)
	require.NoError(t, err)
	assert.Empty(t, rows)
}

func TestCompositionRejectsDuplicatePair(t *testing.T) {
	ctx := context.Background()
	s := newTestStore(t)
	recipe := seedRecipe(t, s, "Soup")
	carrot := seedIngredient(t, s, "Carrot")

	require.NoError(t, s.Compositions.AddRow(ctx, nil, recipe.ID, carrot.ID, 50))
	assert.Error(t, s.Compositions.AddRow(ctx, nil, recipe.ID, carrot.ID, 70))
}

func TestInTxRollsBackOnError(t *testing.T) {
	ctx := context.Background()
	s := newTestStore(t)
	boom := errors.New("boom")

	err := s.InTx(ctx, func(tx *gorm.DB) error {
		if err := s.Ingredients.Create(ctx, tx, &models.Ingredient{Name: "Ghost"}); err != nil {
			return err
		}
		return boom
	})
	require.ErrorIs(t, err, boom)

	found, err := s.Ingredients.FindByName(ctx, nil, "Ghost")
	require.NoError(t, err)
	assert.Nil(t, found)
}
