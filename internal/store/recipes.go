package store

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"

	"beondiet/internal/apperr"
	"beondiet/models"
)

const recipeEntity = "recipe"

type Recipes struct {
	db *gorm.DB
}

func (s *Recipes) Create(ctx context.Context, tx *gorm.DB, recipe *models.Recipe) error {
	if err := conn(s.db, ctx, tx).Omit("Ingredients").Create(recipe).Error; err != nil {
		return fmt.Errorf("create recipe: %w", translate(err, recipeEntity, recipe.Name))
	}
	return nil
}

// Get returns the recipe with id or a NotFound error.
func (s *Recipes) Get(ctx context.Context, tx *gorm.DB, id uint) (*models.Recipe, error) {
	var recipe models.Recipe
	if err := conn(s.db, ctx, tx).First(&recipe, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperr.NotFound(recipeEntity, id)
		}
		return nil, fmt.Errorf("load recipe %d: %w", id, err)
	}
	return &recipe, nil
}

// IDByNameAndVersion resolves a recipe id from its natural key.
func (s *Recipes) IDByNameAndVersion(ctx context.Context, tx *gorm.DB, name string, version int) (uint, error) {
	var ids []uint
	if err := conn(s.db, ctx, tx).
		Model(&models.Recipe{}).
		Where("name = ? AND version = ?", name, version).
		Pluck("id", &ids).Error; err != nil {
		return 0, fmt.Errorf("resolve recipe %q v%d: %w", name, version, err)
	}
	if len(ids) != 1 {
		return 0, fmt.Errorf("%w: recipe %q version %d", apperr.ErrNotFound, name, version)
	}
	return ids[0], nil
}

func (s *Recipes) List(ctx context.Context, tx *gorm.DB) ([]models.Recipe, error) {
	var rows []models.Recipe
	if err := conn(s.db, ctx, tx).Order("id asc").Find(&rows).Error; err != nil {
		return nil, fmt.Errorf("list recipes: %w", err)
	}
	return rows, nil
}

func (s *Recipes) ListIDs(ctx context.Context, tx *gorm.DB) ([]uint, error) {
	var ids []uint
	if err := conn(s.db, ctx, tx).Model(&models.Recipe{}).Order("id asc").Pluck("id", &ids).Error; err != nil {
		return nil, fmt.Errorf("list recipe ids: %w", err)
	}
	return ids, nil
}

// ApplyFields patches raw recipe columns. It is the only write path for the
// derived macro columns and is not exposed outside the services.
func (s *Recipes) ApplyFields(ctx context.Context, tx *gorm.DB, id uint, fields map[string]any) error {
	if len(fields) == 0 {
		return nil
	}
	res := conn(s.db, ctx, tx).Model(&models.Recipe{}).Where("id = ?", id).Updates(fields)
	if res.Error != nil {
		name, _ := fields["name"].(string)
		return fmt.Errorf("update recipe %d: %w", id, translate(res.Error, recipeEntity, name))
	}
	if res.RowsAffected == 0 {
		return apperr.NotFound(recipeEntity, id)
	}
	return nil
}

func (s *Recipes) Delete(ctx context.Context, tx *gorm.DB, id uint) error {
	res := conn(s.db, ctx, tx).Delete(&models.Recipe{}, id)
	if res.Error != nil {
		return fmt.Errorf("delete recipe %d: %w", id, res.Error)
	}
	if res.RowsAffected == 0 {
		return apperr.NotFound(recipeEntity, id)
	}
	return nil
}
