package server

import (
	"net/http"

	"github.com/jonathan/brand-ad-studio/internal/server/middleware"
	"github.com/jonathan/brand-ad-studio/internal/types"
)

// handleGetInstructions returns the brand's instructions, creating defaults on first read
func (s *Server) handleGetInstructions(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		s.handleError(w, r, err)
		return
	}
	if _, err := s.requireBrand(r.Context(), id); err != nil {
		s.handleError(w, r, err)
		return
	}

	in, err := s.deps.Store.GetOrCreateInstructions(r.Context(), id)
	if err != nil {
		s.handleError(w, r, err)
		return
	}
	s.jsonResponse(w, http.StatusOK, in)
}

func (s *Server) handleUpdateInstructions(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		s.handleError(w, r, err)
		return
	}

	var req types.UpdateInstructionsRequest
	if err := s.decodeJSON(w, r, &req); err != nil {
		s.handleError(w, r, err)
		return
	}
	if _, err := s.requireBrand(r.Context(), id); err != nil {
		s.handleError(w, r, err)
		return
	}

	current, err := s.deps.Store.GetOrCreateInstructions(r.Context(), id)
	if err != nil {
		s.handleError(w, r, err)
		return
	}
	current.SystemPrompt = req.SystemPrompt
	current.UserPromptTemplate = req.UserPromptTemplate
	current.ToneRules = req.ToneRules
	current.ImageInstructions = req.ImageInstructions
	current.ImageStyleGuidelines = req.ImageStyleGuidelines
	if adminID, err := middleware.GetAdminID(r); err == nil {
		current.LastUpdatedBy = adminID.String()
	}

	saved, err := s.deps.Store.SaveInstructions(r.Context(), current)
	if err != nil {
		s.handleError(w, r, err)
		return
	}
	s.log.Info("instructions saved", "brand_id", id, "version", saved.Version)
	s.jsonResponse(w, http.StatusOK, saved)
}
