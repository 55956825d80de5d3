package handlers

import (
	"net/http"
)

const ingredientsPrefix = "/api/ingredients"

// IngredientResource serves /api/ingredients and /api/ingredients/{id}.
func IngredientResource(w http.ResponseWriter, r *http.Request) {
	if unavailable(w, r) {
		return
	}

	id, rest, hasID, ok := resourcePath(r.URL.Path, ingredientsPrefix)
	if !ok || len(rest) > 0 {
		http.NotFound(w, r)
		return
	}

	if !hasID {
		switch r.Method {
		case http.MethodGet:
			run(w, r, http.StatusOK, "ingredients", nil)
		case http.MethodPost:
			args, err := withID(w, r, 0, false)
			if err != nil {
				writeError(w, r, err)
				return
			}
			run(w, r, http.StatusCreated, "createIngredient", args)
		default:
			w.WriteHeader(http.StatusMethodNotAllowed)
		}
		return
	}

	switch r.Method {
	case http.MethodGet:
		run(w, r, http.StatusOK, "ingredient", idArgument(id))
	case http.MethodPut, http.MethodPatch:
		args, err := withID(w, r, id, true)
		if err != nil {
			writeError(w, r, err)
			return
		}
		run(w, r, http.StatusOK, "updateIngredient", args)
	case http.MethodDelete:
		run(w, r, http.StatusOK, "deleteIngredient", idArgument(id))
	default:
		w.WriteHeader(http.StatusMethodNotAllowed)
	}
}

func run(w http.ResponseWriter, r *http.Request, status int, operation string, args []byte) {
	data, err := dispatcher.Dispatch(r.Context(), operation, args)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, status, data)
}
