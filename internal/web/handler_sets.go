package web

import (
	"errors"
	"net/http"
	"strconv"
	"strings"

	"github.com/vbonduro/brickinv/internal/domain"
)

const maxSetNameLen = 200

type setEntry struct {
	SetNumber int64  `json:"set_number"`
	Name      string `json:"name"`
}

type listResponse struct {
	Message string     `json:"message"`
	Sets    []setEntry `json:"sets"`
}

type setResponse struct {
	Message   string `json:"message"`
	SetNumber int64  `json:"set_number"`
}

type messageResponse struct {
	Message string `json:"message"`
}

func (s *Server) handleListSets(w http.ResponseWriter, r *http.Request) {
	userID, ok := userIDFromContext(r.Context())
	if !ok {
		s.writeError(w, http.StatusUnauthorized, "missing bearer credential")
		return
	}

	sets, err := s.service.ListSets(r.Context(), userID)
	if err != nil {
		s.logger.Error("list sets failed", "error", err)
		s.writeError(w, http.StatusInternalServerError, "failed to list sets")
		return
	}

	entries := make([]setEntry, 0, len(sets))
	for _, set := range sets {
		entries = append(entries, setEntry{SetNumber: set.SetNumber, Name: set.Name})
	}

	s.writeJSON(w, http.StatusOK, listResponse{Message: "Retrieved", Sets: entries})
}

func (s *Server) handleAddSet(w http.ResponseWriter, r *http.Request) {
	userID, ok := userIDFromContext(r.Context())
	if !ok {
		s.writeError(w, http.StatusUnauthorized, "missing bearer credential")
		return
	}

	setNumber, err := parseSetNumber(r)
	if err != nil {
		s.writeError(w, http.StatusUnprocessableEntity, "set_number is required and must be an integer")
		return
	}

	name := strings.TrimSpace(r.FormValue("set_name"))
	if name == "" {
		s.writeError(w, http.StatusUnprocessableEntity, "set_name is required")
		return
	}
	if len(name) > maxSetNameLen {
		s.writeError(w, http.StatusUnprocessableEntity, "set_name too long")
		return
	}

	set, err := s.service.AddSet(r.Context(), userID, setNumber, name)
	if err != nil {
		if errors.Is(err, domain.ErrDuplicateSet) {
			s.writeError(w, http.StatusConflict, "Lego set already exists in collection.")
			return
		}
		s.logger.Error("add set failed", "set_number", setNumber, "error", err)
		s.writeError(w, http.StatusInternalServerError, "failed to add set")
		return
	}

	s.writeJSON(w, http.StatusOK, setResponse{Message: "Added", SetNumber: set.SetNumber})
}

func (s *Server) handleRemoveSet(w http.ResponseWriter, r *http.Request) {
	userID, ok := userIDFromContext(r.Context())
	if !ok {
		s.writeError(w, http.StatusUnauthorized, "missing bearer credential")
		return
	}

	setNumber, err := parseSetNumber(r)
	if err != nil {
		s.writeError(w, http.StatusUnprocessableEntity, "set_number is required and must be an integer")
		return
	}

	if err := s.service.RemoveSet(r.Context(), userID, setNumber); err != nil {
		if errors.Is(err, domain.ErrSetNotFound) {
			s.writeError(w, http.StatusNotFound, "Cannot remove provided set.")
			return
		}
		s.logger.Error("remove set failed", "set_number", setNumber, "error", err)
		s.writeError(w, http.StatusInternalServerError, "failed to remove set")
		return
	}

	s.writeJSON(w, http.StatusOK, setResponse{Message: "Deleted", SetNumber: setNumber})
}

func (s *Server) handleRemoveAllSets(w http.ResponseWriter, r *http.Request) {
	userID, ok := userIDFromContext(r.Context())
	if !ok {
		s.writeError(w, http.StatusUnauthorized, "missing bearer credential")
		return
	}

	if err := s.service.RemoveAllSets(r.Context(), userID); err != nil {
		s.logger.Error("remove all sets failed", "error", err)
		s.writeError(w, http.StatusInternalServerError, "failed to remove sets")
		return
	}

	s.writeJSON(w, http.StatusOK, messageResponse{Message: "Deleted all sets"})
}

// parseSetNumber reads set_number from the query string or form body.
func parseSetNumber(r *http.Request) (int64, error) {
	return strconv.ParseInt(strings.TrimSpace(r.FormValue("set_number")), 10, 64)
}
