package api

import (
	"net/http"

	"github.com/mwantia/cookbook/pkg/query"
	"github.com/mwantia/cookbook/pkg/service"
)

func (s *Server) handleListRecipes(w http.ResponseWriter, r *http.Request) {
	values, err := listValues(r)
	if err != nil {
		s.writeServiceError(w, r, err)
		return
	}

	req, err := query.ParseRequest(values, s.defaults)
	if err != nil {
		s.writeServiceError(w, r, err)
		return
	}

	page, err := s.deps.Recipes.List(r.Context(), req)
	if err != nil {
		s.writeServiceError(w, r, err)
		return
	}
	RespondJSON(w, http.StatusOK, map[string]any{"response": page})
}

// handleCreateRecipe stores a recipe authored by the user in the path.
func (s *Server) handleCreateRecipe(w http.ResponseWriter, r *http.Request) {
	authorID, err := pathID(r, "userId")
	if err != nil {
		s.writeServiceError(w, r, err)
		return
	}

	var in service.RecipeInput
	if err := s.decodeBody(w, r, &in); err != nil {
		s.writeServiceError(w, r, err)
		return
	}

	created, err := s.deps.Recipes.Create(r.Context(), authorID, in)
	if err != nil {
		s.writeServiceError(w, r, err)
		return
	}
	RespondJSON(w, http.StatusCreated, created)
}
