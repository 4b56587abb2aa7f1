package api

import (
	"net/http"

	"github.com/mwantia/cookbook/pkg/query"
	"github.com/mwantia/cookbook/pkg/service"
)

func (s *Server) handleListUsers(w http.ResponseWriter, r *http.Request) {
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

	page, err := s.deps.Users.List(r.Context(), req)
	if err != nil {
		s.writeServiceError(w, r, err)
		return
	}
	RespondJSON(w, http.StatusOK, map[string]any{"response": page})
}

func (s *Server) handleGetUser(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "userId")
	if err != nil {
		s.writeServiceError(w, r, err)
		return
	}

	user, err := s.deps.Users.Get(r.Context(), id)
	if err != nil {
		s.writeServiceError(w, r, err)
		return
	}
	RespondJSON(w, http.StatusOK, map[string]any{"user": user})
}

func (s *Server) handleCreateUser(w http.ResponseWriter, r *http.Request) {
	var in service.UserInput
	if err := s.decodeBody(w, r, &in); err != nil {
		s.writeServiceError(w, r, err)
		return
	}

	created, err := s.deps.Users.Create(r.Context(), in)
	if err != nil {
		s.writeServiceError(w, r, err)
		return
	}
	RespondJSON(w, http.StatusCreated, created)
}

func (s *Server) handleUpdateUser(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "userId")
	if err != nil {
		s.writeServiceError(w, r, err)
		return
	}

	var patch service.UserPatch
	if err := s.decodeBody(w, r, &patch); err != nil {
		s.writeServiceError(w, r, err)
		return
	}

	user, err := s.deps.Users.Update(r.Context(), id, patch)
	if err != nil {
		s.writeServiceError(w, r, err)
		return
	}
	RespondJSON(w, http.StatusOK, map[string]any{"user": user})
}

func (s *Server) handleDeleteUser(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "userId")
	if err != nil {
		s.writeServiceError(w, r, err)
		return
	}

	if err := s.deps.Users.Delete(r.Context(), id); err != nil {
		s.writeServiceError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
