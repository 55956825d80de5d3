package store

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"

	"beondiet/internal/apperr"
	"beondiet/models"
)

const ingredientEntity = "ingredient"

type Ingredients struct {
	db *gorm.DB
}

func (s *Ingredients) Create(ctx context.Context, tx *gorm.DB, ingredient *models.Ingredient) error {
	if err := conn(s.db, ctx, tx).Create(ingredient).Error; err != nil {
		return fmt.Errorf("create ingredient: %w", translate(err, ingredientEntity, ingredient.Name))
	}
	return nil
}

// Get returns the ingredient with id or a NotFound error.
func (s *Ingredients) Get(ctx context.Context, tx *gorm.DB, id uint) (*models.Ingredient, error) {
	var ingredient models.Ingredient
	if err := conn(s.db, ctx, tx).First(&ingredient, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperr.NotFound(ingredientEntity, id)
		}
		return nil, fmt.Errorf("load ingredient %d: %w", id, err)
	}
	return &ingredient, nil
}

// GetMany loads every ingredient in ids with one query. Missing ids are simply
// absent from the result.
func (s *Ingredients) GetMany(ctx context.Context, tx *gorm.DB, ids []uint) (map[uint]models.Ingredient, error) {
	result := make(map[uint]models.Ingredient, len(ids))
	if len(ids) == 0 {
		return result, nil
	}

	var rows []models.Ingredient
	if err := conn(s.db, ctx, tx).Where("id IN ?", ids).Find(&rows).Error; err != nil {
		return nil, fmt.Errorf("load ingredients: %w", err)
	}
	for _, row := range rows {
		result[row.ID] = row
	}
	return result, nil
}

func (s *Ingredients) FindByName(ctx context.Context, tx *gorm.DB, name string) (*models.Ingredient, error) {
	var ingredient models.Ingredient
	err := conn(s.db, ctx, tx).Where("name = ?", name).First(&ingredient).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("find ingredient by name %q: %w", name, err)
	}
	return &ingredient, nil
}

func (s *Ingredients) List(ctx context.Context, tx *gorm.DB) ([]models.Ingredient, error) {
	var rows []models.Ingredient
	if err := conn(s.db, ctx, tx).Order("id asc").Find(&rows).Error; err != nil {
		return nil, fmt.Errorf("list ingredients: %w", err)
	}
	return rows, nil
}

// Update applies a column patch to the ingredient with id.
func (s *Ingredients) Update(ctx context.Context, tx *gorm.DB, id uint, fields map[string]any) error {
	if len(fields) == 0 {
		return nil
	}
	res := conn(s.db, ctx, tx).Model(&models.Ingredient{}).Where("id = ?", id).Updates(fields)
	if res.Error != nil {
		name, _ := fields["name"].(string)
		return fmt.Errorf("update ingredient %d: %w", id, translate(res.Error, ingredientEntity, name))
	}
	if res.RowsAffected == 0 {
		return apperr.NotFound(ingredientEntity, id)
	}
	return nil
}

func (s *Ingredients) Delete(ctx context.Context, tx *gorm.DB, id uint) error {
	res := conn(s.db, ctx, tx).Delete(&models.Ingredient{}, id)
	if res.Error != nil {
		return fmt.Errorf("delete ingredient %d: %w", id, res.Error)
	}
	if res.RowsAffected == 0 {
		return apperr.NotFound(ingredientEntity, id)
	}
	return nil
}
