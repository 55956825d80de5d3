package store

import (
	"context"
	"fmt"

	"gorm.io/gorm"

	"beondiet/models"
)

const compositionBatchSize = 100

// Compositions stores the recipe to ingredient join rows. Rows are never
// edited in place; a recipe's set is replaced by DeleteAllForRecipe followed
// by AddRows.
type Compositions struct {
	db *gorm.DB
}

func (s *Compositions) AddRow(ctx context.Context, tx *gorm.DB, recipeID, ingredientID uint, grams int) error {
	row := models.RecipeIngredient{RecipeID: recipeID, IngredientID: ingredientID, Grams: grams}
	if err := conn(s.db, ctx, tx).Omit("Ingredient").Create(&row).Error; err != nil {
		return fmt.Errorf("add composition row (recipe %d, ingredient %d): %w", recipeID, ingredientID, err)
	}
	return nil
}

func (s *Compositions) AddRows(ctx context.Context, tx *gorm.DB, rows []models.RecipeIngredient) error {
	if len(rows) == 0 {
		return nil
	}
	if err := conn(s.db, ctx, tx).Omit("Ingredient").CreateInBatches(rows, compositionBatchSize).Error; err != nil {
		return fmt.Errorf("add composition rows for recipe %d: %w", rows[0].RecipeID, err)
	}
	return nil
}

func (s *Compositions) DeleteAllForRecipe(ctx context.Context, tx *gorm.DB, recipeID uint) (int64, error) {
	res := conn(s.db, ctx, tx).Where("recipe_id = ?", recipeID).Delete(&models.RecipeIngredient{})
	if res.Error != nil {
		return 0, fmt.Errorf("delete composition rows for recipe %d: %w", recipeID, res.Error)
	}
	return res.RowsAffected, nil
}

// ListForRecipe returns the recipe's rows with their ingredients preloaded.
func (s *Compositions) ListForRecipe(ctx context.Context, tx *gorm.DB, recipeID uint) ([]models.RecipeIngredient, error) {
	var rows []models.RecipeIngredient
	if err := conn(s.db, ctx, tx).
		Preload("Ingredient").
		Where("recipe_id = ?", recipeID).
		Order("id asc").
		Find(&rows).Error; err != nil {
		return nil, fmt.Errorf("list composition rows for recipe %d: %w", recipeID, err)
	}
	return rows, nil
}

func (s *Compositions) RecipeIDsUsingIngredient(ctx context.Context, tx *gorm.DB, ingredientID uint) ([]uint, error) {
	var ids []uint
	if err := conn(s.db, ctx, tx).
		Model(&models.RecipeIngredient{}).
		Where("ingredient_id = ?", ingredientID).
		Distinct().
		Order("recipe_id asc").
		Pluck("recipe_id", &ids).Error; err != nil {
		return nil, fmt.Errorf("find recipes using ingredient %d: %w", ingredientID, err)
	}
	return ids, nil
}

func (s *Compositions) CountForIngredient(ctx context.Context, tx *gorm.DB, ingredientID uint) (int64, error) {
	var count int64
	if err := conn(s.db, ctx, tx).
		Model(&models.RecipeIngredient{}).
		Where("ingredient_id = ?", ingredientID).
		Count(&count).Error; err != nil {
		return 0, fmt.Errorf("count composition rows for ingredient %d: %w", ingredientID, err)
	}
	return count, nil
}
