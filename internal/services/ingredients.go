package services

import (
	"context"

	"gorm.io/gorm"

	"beondiet/internal/apperr"
	applog "beondiet/internal/log"
	"beondiet/internal/store"
	"beondiet/models"
)

// IngredientInput carries the fields of a new ingredient. Macros are per 100 g.
type IngredientInput struct {
	Name    string
	Carbs   float64
	Protein float64
	Fat     float64
	Kcal    float64
}

// IngredientPatch is a partial update; nil fields are left untouched.
type IngredientPatch struct {
	Name    *string
	Carbs   *float64
	Protein *float64
	Fat     *float64
	Kcal    *float64
}

func (p IngredientPatch) changesMacros() bool {
	return p.Carbs != nil || p.Protein != nil || p.Fat != nil || p.Kcal != nil
}

func (p IngredientPatch) fields() (map[string]any, error) {
	fields := make(map[string]any)
	if p.Name != nil {
		name, err := normalizeName("ingredient", *p.Name)
		if err != nil {
			return nil, err
		}
		fields["name"] = name
	}
	macros := []struct {
		column string
		value  *float64
	}{
		{"carbs", p.Carbs},
		{"protein", p.Protein},
		{"fat", p.Fat},
		{"kcal", p.Kcal},
	}
	for _, m := range macros {
		if m.value == nil {
			continue
		}
		if err := validateMacro(m.column, *m.value); err != nil {
			return nil, err
		}
		fields[m.column] = *m.value
	}
	return fields, nil
}

type IngredientService struct {
	store   *store.Store
	recipes *RecipeService
}

func NewIngredientService(s *store.Store, recipes *RecipeService) *IngredientService {
	return &IngredientService{store: s, recipes: recipes}
}

func (s *IngredientService) Create(ctx context.Context, in IngredientInput) (*models.Ingredient, error) {
	name, err := normalizeName("ingredient", in.Name)
	if err != nil {
		return nil, err
	}
	if _, err := (IngredientPatch{Carbs: &in.Carbs, Protein: &in.Protein, Fat: &in.Fat, Kcal: &in.Kcal}).fields(); err != nil {
		return nil, err
	}

	ingredient := &models.Ingredient{
		Name:    name,
		Carbs:   in.Carbs,
		Protein: in.Protein,
		Fat:     in.Fat,
		Kcal:    in.Kcal,
	}
	if err := s.store.InTx(ctx, func(tx *gorm.DB) error {
		return s.store.Ingredients.Create(ctx, tx, ingredient)
	}); err != nil {
		return nil, err
	}

	applog.Info(ctx, "ingredient created", "ingredient_id", ingredient.ID, "name", ingredient.Name)
	return ingredient, nil
}

func (s *IngredientService) Get(ctx context.Context, id uint) (*models.Ingredient, error) {
	applog.Debug(ctx, "loading ingredient", "ingredient_id", id)
	return s.store.Ingredients.Get(ctx, nil, id)
}

func (s *IngredientService) List(ctx context.Context) ([]models.Ingredient, error) {
	return s.store.Ingredients.List(ctx, nil)
}

// Update applies patch to the ingredient. When any macro changes, every recipe
// built from the ingredient is re-aggregated in the same transaction.
func (s *IngredientService) Update(ctx context.Context, id uint, patch IngredientPatch) (*models.Ingredient, error) {
	fields, err := patch.fields()
	if err != nil {
		return nil, err
	}

	var (
		updated    *models.Ingredient
		propagated []uint
	)
	err = s.store.InTx(ctx, func(tx *gorm.DB) error {
		if _, err := s.store.Ingredients.Get(ctx, tx, id); err != nil {
			return err
		}
		if err := s.store.Ingredients.Update(ctx, tx, id, fields); err != nil {
			return err
		}

		if patch.changesMacros() {
			recipeIDs, err := s.store.Compositions.RecipeIDsUsingIngredient(ctx, tx, id)
			if err != nil {
				return err
			}
			for _, recipeID := range recipeIDs {
				if _, err := s.recipes.recompute(ctx, tx, recipeID); err != nil {
					return err
				}
			}
			propagated = recipeIDs
		}

		var err error
		updated, err = s.store.Ingredients.Get(ctx, tx, id)
		return err
	})
	if err != nil {
		return nil, err
	}

	applog.Info(ctx, "ingredient updated", "ingredient_id", id, "fields", len(fields), "recipes_recomputed", len(propagated))
	return updated, nil
}

// Delete removes the ingredient. An ingredient still used by a recipe cannot
// be deleted.
func (s *IngredientService) Delete(ctx context.Context, id uint) error {
	err := s.store.InTx(ctx, func(tx *gorm.DB) error {
		if _, err := s.store.Ingredients.Get(ctx, tx, id); err != nil {
			return err
		}
		uses, err := s.store.Compositions.CountForIngredient(ctx, tx, id)
		if err != nil {
			return err
		}
		if uses > 0 {
			return apperr.Invariant("ingredient %d is used by %d recipe composition rows", id, uses)
		}
		return s.store.Ingredients.Delete(ctx, tx, id)
	})
	if err != nil {
		return err
	}

	applog.Info(ctx, "ingredient deleted", "ingredient_id", id)
	return nil
}

// Upsert creates the ingredient or, when one with the same name exists,
// overwrites its macros. It reports whether a new row was created.
func (s *IngredientService) Upsert(ctx context.Context, in IngredientInput) (*models.Ingredient, bool, error) {
	name, err := normalizeName("ingredient", in.Name)
	if err != nil {
		return nil, false, err
	}
	existing, err := s.store.Ingredients.FindByName(ctx, nil, name)
	if err != nil {
		return nil, false, err
	}
	if existing == nil {
		created, err := s.Create(ctx, in)
		return created, err == nil, err
	}

	updated, err := s.Update(ctx, existing.ID, IngredientPatch{
		Carbs:   &in.Carbs,
		Protein: &in.Protein,
		Fat:     &in.Fat,
		Kcal:    &in.Kcal,
	})
	return updated, false, err
}
