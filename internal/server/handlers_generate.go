package server

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/jonathan/brand-ad-studio/internal/batch"
	"github.com/jonathan/brand-ad-studio/internal/brandctx"
	"github.com/jonathan/brand-ad-studio/internal/imageprompt"
	"github.com/jonathan/brand-ad-studio/internal/types"
)

// Batch size bounds
const (
	DefaultBatchCount = 3
	MaxBatchCount     = 10
)

type imageResponse struct {
	Prompt   string   `json:"prompt"`
	Images   []string `json:"images"`
	Disabled bool     `json:"disabled,omitempty"`
}

type batchResult struct {
	Prompt    string        `json:"prompt"`
	Requested int           `json:"requested"`
	Generated int           `json:"generated"`
	Images    []batch.Image `json:"images"`
}

// handleGenerateCopy runs the generate/validate loop for one task type
func (s *Server) handleGenerateCopy(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		s.handleError(w, r, err)
		return
	}

	var req types.GenerateCopyRequest
	if err := s.decodeJSON(w, r, &req); err != nil {
		s.handleError(w, r, err)
		return
	}

	gc, err := s.contexts.Build(r.Context(), id, req.Input)
	if err != nil {
		s.handleError(w, r, err)
		return
	}

	result, err := s.deps.Copy.Generate(r.Context(), gc, req.TaskType, brandctx.ResolveUserPrompt(gc, req.Prompt))
	if err != nil {
		s.handleError(w, r, err)
		return
	}
	s.jsonResponse(w, http.StatusOK, result)
}

// handleGenerateImage generates one image from an explicit prompt or from the brand context
func (s *Server) handleGenerateImage(w http.ResponseWriter, r *http.Request) {
	_, prompt, ok := s.imageRequest(w, r)
	if !ok {
		return
	}

	images, err := s.deps.Images.Generate(r.Context(), prompt)
	if err != nil {
		s.handleError(w, r, err)
		return
	}
	if images == nil {
		images = []string{}
	}
	s.jsonResponse(w, http.StatusOK, imageResponse{Prompt: prompt, Images: images, Disabled: s.imagesDisabled()})
}

// handleGenerateBatch streams one "progress" event per attempted variation,
// then a "complete" event with the successful images.
func (s *Server) handleGenerateBatch(w http.ResponseWriter, r *http.Request) {
	req, prompt, ok := s.imageRequest(w, r)
	if !ok {
		return
	}
	count := req.Count
	if count == 0 {
		count = DefaultBatchCount
	}

	sse, err := NewSSEWriter(w)
	if err != nil {
		s.errorResponse(w, http.StatusInternalServerError, err.Error())
		return
	}
	sse.WriteEvent("started", map[string]any{ //nolint:errcheck
		"total":             count,
		"estimated_seconds": int(batch.EstimateDuration(count).Seconds()),
	})

	images, err := s.deps.Batch.Generate(r.Context(), prompt, count, func(current, total int) {
		if werr := sse.WriteEvent("progress", map[string]int{"current": current, "total": total}); werr != nil {
			s.log.Debug("progress event not delivered", "error", werr)
		}
	})
	if err != nil {
		s.log.Warn("batch generation interrupted", "generated", len(images), "requested", count, "error", err)
		sse.WriteError(err.Error())
		return
	}

	sse.WriteEvent("complete", batchResult{ //nolint:errcheck
		Prompt:    prompt,
		Requested: count,
		Generated: len(images),
		Images:    images,
	})
}

// handleEstimate returns the planning estimate for a batch of count images
func (s *Server) handleEstimate(w http.ResponseWriter, r *http.Request) {
	count := DefaultBatchCount
	if raw := r.URL.Query().Get("count"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n < 1 || n > MaxBatchCount {
			s.handleError(w, r, &ErrValidation{Field: "count", Message: "must be between 1 and 10"})
			return
		}
		count = n
	}
	s.jsonResponse(w, http.StatusOK, map[string]int{
		"count":             count,
		"estimated_seconds": int(batch.EstimateDuration(count).Seconds()),
	})
}

// imageRequest decodes an image request and resolves its prompt. It writes
// the error response itself and reports false on failure.
func (s *Server) imageRequest(w http.ResponseWriter, r *http.Request) (*types.GenerateImageRequest, string, bool) {
	id, err := pathID(r, "id")
	if err != nil {
		s.handleError(w, r, err)
		return nil, "", false
	}

	var req types.GenerateImageRequest
	if err := s.decodeJSON(w, r, &req); err != nil {
		s.handleError(w, r, err)
		return nil, "", false
	}

	prompt := strings.TrimSpace(req.Prompt)
	if prompt == "" {
		gc, err := s.contexts.Build(r.Context(), id, req.Input)
		if err != nil {
			s.handleError(w, r, err)
			return nil, "", false
		}
		prompt = imageprompt.Build(imageInput(gc, &req))
	} else if _, err := s.requireBrand(r.Context(), id); err != nil {
		s.handleError(w, r, err)
		return nil, "", false
	}
	return &req, prompt, true
}

func imageInput(gc *types.GenerationContext, req *types.GenerateImageRequest) imageprompt.Input {
	theme := req.Theme
	if theme == "" {
		theme = req.Input.Theme
	}
	return imageprompt.Input{
		Theme:        theme,
		Location:     req.Input.Location,
		Audience:     req.Input.Audience,
		Brand:        gc.Brand,
		Guideline:    gc.Guideline,
		Instructions: gc.Instructions,
		Copy:         req.Copy,
	}
}

func (s *Server) imagesDisabled() bool {
	d, ok := s.deps.Images.(interface{ Disabled() bool })
	return ok && d.Disabled()
}
