package handlers

import (
	"net/http"

	"beondiet/internal/dispatch"
	applog "beondiet/internal/log"
)

const recipesPrefix = "/api/recipes"

// RecipeResource serves /api/recipes, /api/recipes/{id} and the
// /compositions and /recompute sub-resources of a recipe.
func RecipeResource(w http.ResponseWriter, r *http.Request) {
	if unavailable(w, r) {
		return
	}

	id, rest, hasID, ok := resourcePath(r.URL.Path, recipesPrefix)
	if !ok || len(rest) > 1 {
		http.NotFound(w, r)
		return
	}

	if !hasID {
		switch r.Method {
		case http.MethodGet:
			run(w, r, http.StatusOK, "recipes", nil)
		case http.MethodPost:
			args, err := withID(w, r, 0, false)
			if err != nil {
				writeError(w, r, err)
				return
			}
			run(w, r, http.StatusCreated, "createRecipe", args)
		default:
			w.WriteHeader(http.StatusMethodNotAllowed)
		}
		return
	}

	if len(rest) == 1 {
		switch {
		case rest[0] == "compositions" && r.Method == http.MethodGet:
			listCompositions(w, r, id)
		case rest[0] == "recompute" && r.Method == http.MethodPost:
			recomputeRecipe(w, r, id)
		case rest[0] == "compositions" || rest[0] == "recompute":
			w.WriteHeader(http.StatusMethodNotAllowed)
		default:
			http.NotFound(w, r)
		}
		return
	}

	switch r.Method {
	case http.MethodGet:
		run(w, r, http.StatusOK, "recipe", idArgument(id))
	case http.MethodPut, http.MethodPatch:
		args, err := withID(w, r, id, true)
		if err != nil {
			writeError(w, r, err)
			return
		}
		run(w, r, http.StatusOK, "updateRecipe", args)
	case http.MethodDelete:
		run(w, r, http.StatusOK, "deleteRecipe", idArgument(id))
	default:
		w.WriteHeader(http.StatusMethodNotAllowed)
	}
}

func listCompositions(w http.ResponseWriter, r *http.Request, id uint) {
	rows, err := recipes.Compositions(r.Context(), id)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, dispatch.NewCompositionViews(rows))
}

func recomputeRecipe(w http.ResponseWriter, r *http.Request, id uint) {
	recipe, err := recipes.Recompute(r.Context(), id)
	if err != nil {
		writeError(w, r, err)
		return
	}
	applog.Info(r.Context(), "recipe recomputed on request", "recipe_id", id)
	writeJSON(w, http.StatusOK, dispatch.NewRecipeView(*recipe))
}
