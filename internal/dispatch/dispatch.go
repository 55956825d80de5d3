// Package dispatch maps external operation names onto the ingredient and
// recipe services and projects the results into the response shape.
package dispatch

import (
	"context"
	"encoding/json"
	"sort"

	"beondiet/internal/apperr"
	applog "beondiet/internal/log"
	"beondiet/internal/services"
)

type operation func(ctx context.Context, args json.RawMessage) (any, error)

type Dispatcher struct {
	ingredients *services.IngredientService
	recipes     *services.RecipeService
	operations  map[string]operation
}

func New(svc *services.Services) *Dispatcher {
	d := &Dispatcher{ingredients: svc.Ingredients, recipes: svc.Recipes}
	d.operations = map[string]operation{
		"createIngredient": d.createIngredient,
		"updateIngredient": d.updateIngredient,
		"deleteIngredient": d.deleteIngredient,
		"createRecipe":     d.createRecipe,
		"updateRecipe":     d.updateRecipe,
		"deleteReceipe":    d.deleteRecipe,
		"deleteRecipe":     d.deleteRecipe,
		"ingredients":      d.listIngredients,
		"ingredient":       d.getIngredient,
		"recipes":          d.listRecipes,
		"recipe":           d.getRecipe,
	}
	return d
}

// Operations returns the supported operation names in sorted order.
func (d *Dispatcher) Operations() []string {
	names := make([]string, 0, len(d.operations))
	for name := range d.operations {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Dispatch runs the named operation with its JSON arguments.
func (d *Dispatcher) Dispatch(ctx context.Context, name string, args json.RawMessage) (any, error) {
	op, ok := d.operations[name]
	if !ok {
		return nil, apperr.Validation("unknown operation %q", name)
	}
	applog.Debug(ctx, "dispatching operation", "operation", name)
	return op(ctx, args)
}

func (d *Dispatcher) createIngredient(ctx context.Context, raw json.RawMessage) (any, error) {
	var args ingredientArgs
	if err := decode(raw, &args); err != nil {
		return nil, err
	}
	in, err := args.create()
	if err != nil {
		return nil, err
	}
	ingredient, err := d.ingredients.Create(ctx, in)
	if err != nil {
		return nil, err
	}
	return NewIngredientView(*ingredient), nil
}

func (d *Dispatcher) updateIngredient(ctx context.Context, raw json.RawMessage) (any, error) {
	var args ingredientArgs
	if err := decode(raw, &args); err != nil {
		return nil, err
	}
	id, patch, err := args.update()
	if err != nil {
		return nil, err
	}
	ingredient, err := d.ingredients.Update(ctx, id, patch)
	if err != nil {
		return nil, err
	}
	return NewIngredientView(*ingredient), nil
}

func (d *Dispatcher) deleteIngredient(ctx context.Context, raw json.RawMessage) (any, error) {
	var args idArgs
	if err := decode(raw, &args); err != nil {
		return nil, err
	}
	id, err := args.require()
	if err != nil {
		return nil, err
	}
	if err := d.ingredients.Delete(ctx, id); err != nil {
		return nil, err
	}
	return Deleted{ID: id}, nil
}

func (d *Dispatcher) createRecipe(ctx context.Context, raw json.RawMessage) (any, error) {
	var args recipeArgs
	if err := decode(raw, &args); err != nil {
		return nil, err
	}
	in, err := args.create()
	if err != nil {
		return nil, err
	}
	recipe, err := d.recipes.Create(ctx, in)
	if err != nil {
		return nil, err
	}
	return NewRecipeView(*recipe), nil
}

func (d *Dispatcher) updateRecipe(ctx context.Context, raw json.RawMessage) (any, error) {
	var args recipeArgs
	if err := decode(raw, &args); err != nil {
		return nil, err
	}
	id, in, changes, err := args.update()
	if err != nil {
		return nil, err
	}
	recipe, err := d.recipes.Update(ctx, id, in, changes)
	if err != nil {
		return nil, err
	}
	return NewRecipeView(*recipe), nil
}

func (d *Dispatcher) deleteRecipe(ctx context.Context, raw json.RawMessage) (any, error) {
	var args idArgs
	if err := decode(raw, &args); err != nil {
		return nil, err
	}
	id, err := args.require()
	if err != nil {
		return nil, err
	}
	if err := d.recipes.Delete(ctx, id); err != nil {
		return nil, err
	}
	return Deleted{ID: id}, nil
}

func (d *Dispatcher) listIngredients(ctx context.Context, raw json.RawMessage) (any, error) {
	if err := decode(raw, &struct{}{}); err != nil {
		return nil, err
	}
	ingredients, err := d.ingredients.List(ctx)
	if err != nil {
		return nil, err
	}
	return NewIngredientViews(ingredients), nil
}

func (d *Dispatcher) getIngredient(ctx context.Context, raw json.RawMessage) (any, error) {
	var args idArgs
	if err := decode(raw, &args); err != nil {
		return nil, err
	}
	id, err := args.require()
	if err != nil {
		return nil, err
	}
	ingredient, err := d.ingredients.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	return NewIngredientView(*ingredient), nil
}

func (d *Dispatcher) listRecipes(ctx context.Context, raw json.RawMessage) (any, error) {
	if err := decode(raw, &struct{}{}); err != nil {
		return nil, err
	}
	recipes, err := d.recipes.List(ctx)
	if err != nil {
		return nil, err
	}
	return NewRecipeViews(recipes), nil
}

func (d *Dispatcher) getRecipe(ctx context.Context, raw json.RawMessage) (any, error) {
	var args idArgs
	if err := decode(raw, &args); err != nil {
		return nil, err
	}
	id, err := args.require()
	if err != nil {
		return nil, err
	}
	recipe, err := d.recipes.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	return NewRecipeView(*recipe), nil
}
