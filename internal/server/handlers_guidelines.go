package server

import (
	"errors"
	"net/http"

	"github.com/jonathan/brand-ad-studio/internal/db"
	"github.com/jonathan/brand-ad-studio/internal/types"
	"github.com/jonathan/brand-ad-studio/internal/uploads"
)

// multipartOverhead is allowed on top of the file size limit for form framing
const multipartOverhead = 1 << 20

type parseRequest struct {
	Text string `json:"text" validate:"required"`
}

func (s *Server) handleGetGuideline(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		s.handleError(w, r, err)
		return
	}

	g, err := s.deps.Store.GetGuideline(r.Context(), id)
	if err != nil {
		s.handleError(w, r, err)
		return
	}
	if g == nil {
		s.handleError(w, r, db.ErrGuidelineNotFound)
		return
	}
	s.jsonResponse(w, http.StatusOK, g)
}

// handleUploadGuideline accepts a multipart "file" field and starts processing
// in the background. Clients poll GET /uploads/{id}.
func (s *Server) handleUploadGuideline(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		s.handleError(w, r, err)
		return
	}

	r.Body = http.MaxBytesReader(w, r.Body, uploads.MaxFileSize+multipartOverhead)
	file, header, err := r.FormFile("file")
	if err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			s.handleError(w, r, uploads.ErrFileTooLarge)
			return
		}
		s.handleError(w, r, &ErrValidation{Field: "file", Message: "multipart field \"file\" is required"})
		return
	}
	defer file.Close()

	uploadID, err := s.deps.Uploads.StartUpload(r.Context(), id, header.Filename, file, header.Size)
	if err != nil {
		s.handleError(w, r, err)
		return
	}
	s.jsonResponse(w, http.StatusAccepted, map[string]string{"upload_id": uploadID})
}

func (s *Server) handleUploadProgress(w http.ResponseWriter, r *http.Request) {
	p, err := s.deps.Uploads.Progress(r.Context(), r.PathValue("id"))
	if err != nil {
		s.handleError(w, r, err)
		return
	}
	s.jsonResponse(w, http.StatusOK, p)
}

// handleUpdateGuideline replaces the parsed fields of an existing guideline
func (s *Server) handleUpdateGuideline(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		s.handleError(w, r, err)
		return
	}

	var req types.ParsedGuideline
	if err := s.decodeJSON(w, r, &req); err != nil {
		s.handleError(w, r, err)
		return
	}

	existing, err := s.deps.Store.GetGuideline(r.Context(), id)
	if err != nil {
		s.handleError(w, r, err)
		return
	}
	if existing == nil {
		s.handleError(w, r, db.ErrGuidelineNotFound)
		return
	}
	existing.Apply(&req)

	updated, err := s.deps.Store.UpdateGuideline(r.Context(), existing)
	if err != nil {
		s.handleError(w, r, err)
		return
	}
	s.jsonResponse(w, http.StatusOK, updated)
}

func (s *Server) handleDeleteGuideline(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		s.handleError(w, r, err)
		return
	}

	existing, err := s.deps.Store.GetGuideline(r.Context(), id)
	if err != nil {
		s.handleError(w, r, err)
		return
	}
	if existing == nil {
		s.handleError(w, r, db.ErrGuidelineNotFound)
		return
	}
	if err := s.deps.Store.DeleteGuideline(r.Context(), id); err != nil {
		s.handleError(w, r, err)
		return
	}
	if s.deps.Objects != nil && existing.SourceObject != "" {
		if err := s.deps.Objects.Delete(r.Context(), existing.SourceObject); err != nil {
			s.log.Warn("failed to delete guideline file", "key", existing.SourceObject, "error", err)
		}
	}
	w.WriteHeader(http.StatusNoContent)
}

// handleParseGuidelines parses pasted guideline text without storing it
func (s *Server) handleParseGuidelines(w http.ResponseWriter, r *http.Request) {
	var req parseRequest
	if err := s.decodeJSON(w, r, &req); err != nil {
		s.handleError(w, r, err)
		return
	}
	s.jsonResponse(w, http.StatusOK, s.deps.Parser.Parse(r.Context(), req.Text))
}
