package services

import (
	"context"
	"errors"
	"time"

	"golang.org/x/sync/errgroup"
	"gorm.io/gorm"

	"beondiet/internal/apperr"
	applog "beondiet/internal/log"
	"beondiet/internal/macro"
	"beondiet/internal/store"
	"beondiet/models"
)

// RecipeInput carries the caller-facing fields of a recipe.
type RecipeInput struct {
	Name     string
	MealType models.MealType
	Portions []macro.Portion
}

// RecipeChanges declares which logical groups of a recipe an update touches.
// Groups that are not flagged are neither validated nor written.
type RecipeChanges struct {
	NameOrMeal  bool
	Ingredients bool
}

func (c RecipeChanges) Any() bool { return c.NameOrMeal || c.Ingredients }

// AllChanges flags every group.
var AllChanges = RecipeChanges{NameOrMeal: true, Ingredients: true}

// RecipeService keeps a recipe's stored macros consistent with its
// composition rows across create, update and delete.
type RecipeService struct {
	store    *store.Store
	engine   *macro.Engine
	now      func() time.Time
	decimals int
}

func NewRecipeService(s *store.Store, engine *macro.Engine, opts Options) *RecipeService {
	opts = opts.withDefaults()
	return &RecipeService{store: s, engine: engine, now: opts.Now, decimals: opts.Decimals}
}

func (s *RecipeService) Create(ctx context.Context, in RecipeInput) (*models.Recipe, error) {
	name, err := validateNameAndMeal(in.Name, in.MealType)
	if err != nil {
		return nil, err
	}
	if err := validatePortions(in.Portions); err != nil {
		return nil, err
	}

	var created *models.Recipe
	err = s.store.InTx(ctx, func(tx *gorm.DB) error {
		recipe := &models.Recipe{
			Name:       name,
			Version:    initialVersion,
			MealType:   in.MealType,
			LastUpdate: today(s.now),
		}
		if err := s.store.Recipes.Create(ctx, tx, recipe); err != nil {
			return err
		}

		id, err := s.store.Recipes.IDByNameAndVersion(ctx, tx, name, initialVersion)
		if errors.Is(err, apperr.ErrNotFound) {
			return apperr.Invariant("recipe %q version %d cannot be resolved after insert", name, initialVersion)
		}
		if err != nil {
			return err
		}
		if id != recipe.ID {
			return apperr.Invariant("recipe %q resolved to id %d, inserted as %d", name, id, recipe.ID)
		}

		profile, err := s.engine.Aggregate(ctx, tx, id, in.Portions)
		if err != nil {
			return err
		}
		if err := s.store.Recipes.ApplyFields(ctx, tx, id, profile.Rounded(s.decimals).Fields()); err != nil {
			return err
		}

		created, err = s.load(ctx, tx, id)
		return err
	})
	if err != nil {
		return nil, err
	}

	applog.Info(ctx, "recipe created",
		"recipe_id", created.ID,
		"name", created.Name,
		"meal_type", created.MealType,
		"ingredients", len(in.Portions),
	)
	return created, nil
}

// Update patches only the groups flagged in changes. With no group flagged the
// stored recipe is returned untouched. Any flagged group refreshes
// last_update; a flagged ingredient group replaces the composition rows and
// re-aggregates the macros.
func (s *RecipeService) Update(ctx context.Context, id uint, in RecipeInput, changes RecipeChanges) (*models.Recipe, error) {
	if !changes.Any() {
		return s.Get(ctx, id)
	}

	fields := make(map[string]any)
	if changes.NameOrMeal {
		name, err := validateNameAndMeal(in.Name, in.MealType)
		if err != nil {
			return nil, err
		}
		fields["name"] = name
		fields["meal_type"] = string(in.MealType)
	}
	if changes.Ingredients {
		if err := validatePortions(in.Portions); err != nil {
			return nil, err
		}
	}

	var updated *models.Recipe
	err := s.store.InTx(ctx, func(tx *gorm.DB) error {
		if _, err := s.store.Recipes.Get(ctx, tx, id); err != nil {
			return err
		}

		if changes.Ingredients {
			profile, err := s.engine.Replace(ctx, tx, id, in.Portions)
			if err != nil {
				return err
			}
			for column, value := range profile.Rounded(s.decimals).Fields() {
				fields[column] = value
			}
		}
		fields["last_update"] = today(s.now)

		if err := s.store.Recipes.ApplyFields(ctx, tx, id, fields); err != nil {
			return err
		}

		var err error
		updated, err = s.load(ctx, tx, id)
		return err
	})
	if err != nil {
		return nil, err
	}

	applog.Info(ctx, "recipe updated",
		"recipe_id", id,
		"name_or_meal_changed", changes.NameOrMeal,
		"ingredients_changed", changes.Ingredients,
	)
	return updated, nil
}

// Delete removes the recipe together with its composition rows.
func (s *RecipeService) Delete(ctx context.Context, id uint) error {
	var removed int64
	err := s.store.InTx(ctx, func(tx *gorm.DB) error {
		if _, err := s.store.Recipes.Get(ctx, tx, id); err != nil {
			return err
		}
		var err error
		removed, err = s.store.Compositions.DeleteAllForRecipe(ctx, tx, id)
		if err != nil {
			return err
		}
		return s.store.Recipes.Delete(ctx, tx, id)
	})
	if err != nil {
		return err
	}

	applog.Info(ctx, "recipe deleted", "recipe_id", id, "composition_rows", removed)
	return nil
}

// Get returns the recipe with its composition rows.
func (s *RecipeService) Get(ctx context.Context, id uint) (*models.Recipe, error) {
	applog.Debug(ctx, "loading recipe", "recipe_id", id)
	return s.load(ctx, nil, id)
}

func (s *RecipeService) List(ctx context.Context) ([]models.Recipe, error) {
	return s.store.Recipes.List(ctx, nil)
}

// Compositions lists the recipe's composition rows with their ingredients.
func (s *RecipeService) Compositions(ctx context.Context, id uint) ([]models.RecipeIngredient, error) {
	if _, err := s.store.Recipes.Get(ctx, nil, id); err != nil {
		return nil, err
	}
	return s.store.Compositions.ListForRecipe(ctx, nil, id)
}

// Recompute rebuilds the recipe's macros from its current composition rows
// and the current ingredient values. last_update is left alone.
func (s *RecipeService) Recompute(ctx context.Context, id uint) (*models.Recipe, error) {
	var recipe *models.Recipe
	err := s.store.InTx(ctx, func(tx *gorm.DB) error {
		var err error
		recipe, err = s.recompute(ctx, tx, id)
		return err
	})
	if err != nil {
		return nil, err
	}
	applog.Debug(ctx, "recipe recomputed", "recipe_id", id)
	return recipe, nil
}

// RecomputeAll recomputes every recipe, each in its own transaction, running
// at most concurrency at a time. It returns how many recipes were processed.
func (s *RecipeService) RecomputeAll(ctx context.Context, concurrency int) (int, error) {
	ids, err := s.store.Recipes.ListIDs(ctx, nil)
	if err != nil {
		return 0, err
	}
	if concurrency <= 0 {
		concurrency = 1
	}

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(concurrency)
	for _, id := range ids {
		id := id
		g.Go(func() error {
			_, err := s.Recompute(gctx, id)
			return err
		})
	}
	if err := g.Wait(); err != nil {
		return 0, err
	}

	applog.Info(ctx, "recipes recomputed", "count", len(ids), "concurrency", concurrency)
	return len(ids), nil
}

func (s *RecipeService) recompute(ctx context.Context, tx *gorm.DB, id uint) (*models.Recipe, error) {
	if _, err := s.store.Recipes.Get(ctx, tx, id); err != nil {
		return nil, err
	}
	profile, err := s.engine.Reaggregate(ctx, tx, id)
	if err != nil {
		return nil, err
	}
	if err := s.store.Recipes.ApplyFields(ctx, tx, id, profile.Rounded(s.decimals).Fields()); err != nil {
		return nil, err
	}
	return s.load(ctx, tx, id)
}

func (s *RecipeService) load(ctx context.Context, tx *gorm.DB, id uint) (*models.Recipe, error) {
	recipe, err := s.store.Recipes.Get(ctx, tx, id)
	if err != nil {
		return nil, err
	}
	rows, err := s.store.Compositions.ListForRecipe(ctx, tx, id)
	if err != nil {
		return nil, err
	}
	recipe.Ingredients = rows
	return recipe, nil
}

func validateNameAndMeal(name string, meal models.MealType) (string, error) {
	name, err := normalizeName("recipe", name)
	if err != nil {
		return "", err
	}
	if !meal.Valid() {
		return "", apperr.Validation("unknown meal type %q", meal)
	}
	return name, nil
}

func validatePortions(portions []macro.Portion) error {
	seen := make(map[uint]struct{}, len(portions))
	for _, portion := range portions {
		if portion.IngredientID == 0 {
			return apperr.Validation("ingredient id is required")
		}
		if portion.Grams <= 0 {
			return apperr.Validation("grams for ingredient %d must be positive", portion.IngredientID)
		}
		if _, dup := seen[portion.IngredientID]; dup {
			return apperr.Validation("ingredient %d is listed more than once", portion.IngredientID)
		}
		seen[portion.IngredientID] = struct{}{}
	}
	return nil
}
