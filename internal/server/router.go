package server

import (
	"context"
	"net/http"

	"beondiet/internal/handlers"
	applog "beondiet/internal/log"
)

func newRouter() http.Handler {
	mux := http.NewServeMux()
	applog.Debug(context.Background(), "registering http routes")
	mux.HandleFunc("/healthz", handlers.Health)
	applog.Debug(context.Background(), "route registered", "path", "/healthz")
	mux.HandleFunc("/api/operations", handlers.Operations)
	applog.Debug(context.Background(), "route registered", "path", "/api/operations")
	mux.HandleFunc("/api/ingredients", handlers.IngredientResource)
	mux.HandleFunc("/api/ingredients/", handlers.IngredientResource)
	applog.Debug(context.Background(), "route registered", "path", "/api/ingredients/")
	mux.HandleFunc("/api/recipes", handlers.RecipeResource)
	mux.HandleFunc("/api/recipes/", handlers.RecipeResource)
	applog.Debug(context.Background(), "route registered", "path", "/api/recipes/")
	mux.HandleFunc("/", handlers.Home)
	applog.Debug(context.Background(), "route registered", "path", "/")
	return mux
}
