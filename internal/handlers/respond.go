package handlers

import (
	"context"
	"encoding/json"
	"net/http"
	"strconv"
	"strings"

	"beondiet/internal/apperr"
	"beondiet/internal/dispatch"
	applog "beondiet/internal/log"
	"beondiet/internal/services"
)

const maxBodyBytes = 1 << 20

var (
	dispatcher *dispatch.Dispatcher
	recipes    *services.RecipeService
)

// Configure installs the services the handlers operate on.
func Configure(svc *services.Services) {
	if svc == nil {
		dispatcher = nil
		recipes = nil
		return
	}
	dispatcher = dispatch.New(svc)
	recipes = svc.Recipes
}

type errorResponse struct {
	Error string `json:"error"`
	Code  string `json:"code"`
}

func writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(payload); err != nil {
		applog.Error(context.Background(), "failed to encode json response", "error", err)
	}
}

func writeJSONError(w http.ResponseWriter, status int, code, message string) {
	writeJSON(w, status, errorResponse{Error: message, Code: code})
}

// writeError maps err onto its HTTP status. Internal failures are logged and
// their details withheld from the client.
func writeError(w http.ResponseWriter, r *http.Request, err error) {
	status := apperr.StatusOf(err)
	if status >= http.StatusInternalServerError {
		applog.Error(r.Context(), "request failed", "path", r.URL.Path, "error", err)
		writeJSONError(w, status, apperr.CodeInternal, "internal error")
		return
	}
	applog.Debug(r.Context(), "request rejected", "path", r.URL.Path, "status", status, "error", err)
	writeJSONError(w, status, apperr.CodeOf(err), err.Error())
}

func unavailable(w http.ResponseWriter, r *http.Request) bool {
	if dispatcher != nil {
		return false
	}
	applog.Debug(r.Context(), "request without configured services", "path", r.URL.Path)
	http.Error(w, "service unavailable", http.StatusServiceUnavailable)
	return true
}

// resourcePath splits the path below prefix into an optional id and the
// remaining segments. ok is false when the id segment is not a number.
func resourcePath(path, prefix string) (id uint, rest []string, hasID, ok bool) {
	trimmed := strings.Trim(strings.TrimPrefix(path, prefix), "/")
	if trimmed == "" {
		return 0, nil, false, true
	}
	segments := strings.Split(trimmed, "/")
	value, err := strconv.ParseUint(segments[0], 10, 64)
	if err != nil || value == 0 {
		return 0, nil, false, false
	}
	return uint(value), segments[1:], true, true
}

// withID reads a JSON object body and sets its id field, producing the
// {"input": {...}} argument shape used by the mutation operations.
func withID(w http.ResponseWriter, r *http.Request, id uint, hasID bool) (json.RawMessage, error) {
	input := map[string]any{}
	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodyBytes))
	dec.UseNumber()
	if err := dec.Decode(&input); err != nil {
		return nil, apperr.Validation("invalid request payload: %v", err)
	}
	if hasID {
		input["id"] = id
	}
	return json.Marshal(map[string]any{"input": input})
}

func idArgument(id uint) json.RawMessage {
	return json.RawMessage(`{"id":` + strconv.FormatUint(uint64(id), 10) + `}`)
}
