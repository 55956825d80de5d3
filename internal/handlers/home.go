package handlers

import (
	"net/http"
)

type homeResponse struct {
	Service   string   `json:"service"`
	Endpoints []string `json:"endpoints"`
}

var endpoints = []string{
	"GET /healthz",
	"GET|POST /api/operations",
	"GET|POST /api/ingredients",
	"GET|PUT|PATCH|DELETE /api/ingredients/{id}",
	"GET|POST /api/recipes",
	"GET|PUT|PATCH|DELETE /api/recipes/{id}",
	"GET /api/recipes/{id}/compositions",
	"POST /api/recipes/{id}/recompute",
}

// Home describes the API at the root path. Any other unmatched path is a 404.
func Home(w http.ResponseWriter, r *http.Request) {
	if r.URL.Path != "/" {
		http.NotFound(w, r)
		return
	}
	if r.Method != http.MethodGet {
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}
	writeJSON(w, http.StatusOK, homeResponse{Service: "beondiet", Endpoints: endpoints})
}
