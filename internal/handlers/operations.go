package handlers

import (
	"encoding/json"
	"net/http"

	"beondiet/internal/apperr"
	applog "beondiet/internal/log"
)

type operationRequest struct {
	Operation string          `json:"operation"`
	Arguments json.RawMessage `json:"arguments"`
}

type operationResponse struct {
	Operation string `json:"operation"`
	Data      any    `json:"data"`
}

type operationsIndex struct {
	Operations []string `json:"operations"`
}

// Operations executes one named operation per request:
//
//	POST /api/operations {"operation": "createRecipe", "arguments": {...}}
//
// GET lists the supported operation names.
func Operations(w http.ResponseWriter, r *http.Request) {
	if unavailable(w, r) {
		return
	}

	switch r.Method {
	case http.MethodGet:
		writeJSON(w, http.StatusOK, operationsIndex{Operations: dispatcher.Operations()})
		return
	case http.MethodPost:
	default:
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}

	var req operationRequest
	if err := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodyBytes)).Decode(&req); err != nil {
		applog.Debug(r.Context(), "invalid operation payload", "error", err)
		writeJSONError(w, http.StatusBadRequest, apperr.CodeValidation, "invalid request payload")
		return
	}
	if req.Operation == "" {
		writeJSONError(w, http.StatusBadRequest, apperr.CodeValidation, "operation is required")
		return
	}

	data, err := dispatcher.Dispatch(r.Context(), req.Operation, req.Arguments)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, operationResponse{Operation: req.Operation, Data: data})
}
