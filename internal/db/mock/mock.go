package mock

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"beondiet/internal/db"
	applog "beondiet/internal/log"
	"beondiet/internal/macro"
	"beondiet/internal/services"
	"beondiet/internal/store"
	"beondiet/models"
)

type seedIngredient struct {
	name                      string
	carbs, protein, fat, kcal float64
}

type seedPortion struct {
	ingredient string
	grams      int
}

type seedRecipe struct {
	name     string
	meal     models.MealType
	portions []seedPortion
}

var ingredients = []seedIngredient{
	{"Rolled oats", 60, 13.5, 6.5, 372},
	{"Skimmed milk", 4.9, 3.4, 0.1, 35},
	{"Banana", 22.8, 1.1, 0.3, 89},
	{"Chicken breast", 0, 23.1, 1.2, 106},
	{"White rice", 79, 6.7, 0.6, 349},
	{"Broccoli", 4.4, 2.8, 0.4, 34},
	{"Olive oil", 0, 0, 100, 884},
	{"Salmon fillet", 0, 20.4, 13.4, 201},
	{"Sweet potato", 20.1, 1.6, 0.1, 86},
}

var recipes = []seedRecipe{
	{"Banana porridge", models.MealBreakfast, []seedPortion{{"Rolled oats", 60}, {"Skimmed milk", 250}, {"Banana", 120}}},
	{"Chicken rice bowl", models.MealLunch, []seedPortion{{"Chicken breast", 150}, {"White rice", 80}, {"Broccoli", 100}, {"Olive oil", 10}}},
	{"Baked salmon", models.MealDinner, []seedPortion{{"Salmon fillet", 140}, {"Sweet potato", 200}, {"Broccoli", 80}}},
}

// New returns an in-memory sqlite database seeded with a small pantry and a
// recipe for every meal type. Each call gets its own database.
func New(ctx context.Context) (*gorm.DB, error) {
	applog.Debug(ctx, "initialising mock database")

	dsn := fmt.Sprintf("file:beondiet-mock-%s?mode=memory&cache=shared", uuid.NewString())
	opts := db.Options(logger.Silent)
	opts.PrepareStmt = false
	database, err := gorm.Open(sqlite.Open(dsn), opts)
	if err != nil {
		return nil, err
	}
	sqlDB, err := database.DB()
	if err != nil {
		return nil, err
	}
	sqlDB.SetMaxOpenConns(1)

	if err := db.AutoMigrate(database); err != nil {
		return nil, err
	}

	if err := seed(ctx, database); err != nil {
		return nil, err
	}

	applog.Debug(ctx, "mock database ready")
	return database, nil
}

func seed(ctx context.Context, database *gorm.DB) error {
	applog.Debug(ctx, "seeding mock database")

	svc := services.New(store.New(database), services.Options{})
	ids := make(map[string]uint, len(ingredients))
	for _, item := range ingredients {
		created, err := svc.Ingredients.Create(ctx, services.IngredientInput{
			Name:    item.name,
			Carbs:   item.carbs,
			Protein: item.protein,
			Fat:     item.fat,
			Kcal:    item.kcal,
		})
		if err != nil {
			return fmt.Errorf("seed ingredient %q: %w", item.name, err)
		}
		ids[item.name] = created.ID
	}

	for _, recipe := range recipes {
		portions := make([]macro.Portion, 0, len(recipe.portions))
		for _, p := range recipe.portions {
			portions = append(portions, macro.Portion{IngredientID: ids[p.ingredient], Grams: p.grams})
		}
		if _, err := svc.Recipes.Create(ctx, services.RecipeInput{
			Name:     recipe.name,
			MealType: recipe.meal,
			Portions: portions,
		}); err != nil {
			return fmt.Errorf("seed recipe %q: %w", recipe.name, err)
		}
	}
	return nil
}
