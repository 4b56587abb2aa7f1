package api

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus/promhttp"
)

type route struct {
	pattern     string
	description string
	handler     http.HandlerFunc
}

func (s *Server) routes() []route {
	return []route{
		{"GET /users", "List users. Query: filter, sort, limit, page", s.handleListUsers},
		{"GET /users/{userId}", "Get a single user", s.handleGetUser},
		{"POST /user", "Create a user", s.handleCreateUser},
		{"PATCH /users/{userId}", "Update fields of a user", s.handleUpdateUser},
		{"DELETE /users/{userId}", "Delete a user", s.handleDeleteUser},
		{"GET /recipes", "List recipes. Query: filter, sort, limit, page", s.handleListRecipes},
		{"POST /recipe/{userId}", "Create a recipe authored by the user", s.handleCreateRecipe},
	}
}

// setupRoutes configures all HTTP routes and middleware
func (s *Server) setupRoutes() http.Handler {
	mux := http.NewServeMux()

	// System endpoints (no rate limiting)
	mux.HandleFunc("GET /health", s.handleHealth)
	mux.HandleFunc("GET /ready", s.handleReady)
	mux.Handle("GET /metrics", promhttp.Handler())
	mux.HandleFunc("GET /{$}", s.handleIndex)

	for _, r := range s.routes() {
		mux.HandleFunc(r.pattern, s.withMiddleware(r.handler))
	}
	return mux
}

type routeInfo struct {
	Route       string `json:"route"`
	Description string `json:"description"`
}

func (s *Server) handleIndex(w http.ResponseWriter, r *http.Request) {
	routes := s.routes()
	info := make([]routeInfo, 0, len(routes))
	for _, rt := range routes {
		info = append(info, routeInfo{Route: rt.pattern, Description: rt.description})
	}
	RespondJSON(w, http.StatusOK, map[string]any{"routes": info})
}
