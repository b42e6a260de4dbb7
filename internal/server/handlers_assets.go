package server

import (
	"mime"
	"net/http"

	"github.com/jonathan/brand-ad-studio/internal/db"
	"github.com/jonathan/brand-ad-studio/internal/ingestion"
	"github.com/jonathan/brand-ad-studio/internal/types"
)

func (s *Server) handleListAssets(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		s.handleError(w, r, err)
		return
	}
	kind := types.AssetKind(r.URL.Query().Get("kind"))
	if kind != "" && !kind.Valid() {
		s.handleError(w, r, &ErrValidation{Field: "kind", Message: "unknown asset kind"})
		return
	}

	assets, err := s.deps.Store.ListAssets(r.Context(), id, kind)
	if err != nil {
		s.handleError(w, r, err)
		return
	}
	if assets == nil {
		assets = []types.Asset{}
	}
	s.jsonResponse(w, http.StatusOK, map[string]any{"assets": assets, "count": len(assets)})
}

// handleCreateAsset stores an asset. HTML content is reduced to text, and a
// textual asset given only a URL has its page fetched and extracted.
func (s *Server) handleCreateAsset(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		s.handleError(w, r, err)
		return
	}

	var req types.CreateAssetRequest
	if err := s.decodeJSON(w, r, &req); err != nil {
		s.handleError(w, r, err)
		return
	}
	if _, err := s.requireBrand(r.Context(), id); err != nil {
		s.handleError(w, r, err)
		return
	}

	content := req.Content
	switch {
	case content != "" && isHTML(req.ContentType):
		text, err := ingestion.ExtractHTMLText(content)
		if err != nil {
			s.handleError(w, r, &ErrValidation{Field: "content", Message: "unreadable HTML"})
			return
		}
		content = text
	case content == "" && req.URL != "" && req.Kind != types.AssetLogo:
		page, err := ingestion.IngestURL(r.Context(), req.URL, s.deps.Fetch)
		if err != nil {
			s.handleError(w, r, err)
			return
		}
		content = page.Text
	}

	asset, err := s.deps.Store.CreateAsset(r.Context(), &types.Asset{
		BrandID: id,
		Kind:    req.Kind,
		Name:    req.Name,
		URL:     req.URL,
		Content: content,
	})
	if err != nil {
		s.handleError(w, r, err)
		return
	}
	s.jsonResponse(w, http.StatusCreated, asset)
}

func (s *Server) handleGetAsset(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		s.handleError(w, r, err)
		return
	}
	asset, err := s.deps.Store.GetAsset(r.Context(), id)
	if err != nil {
		s.handleError(w, r, err)
		return
	}
	if asset == nil {
		s.handleError(w, r, db.ErrAssetNotFound)
		return
	}
	s.jsonResponse(w, http.StatusOK, asset)
}

func (s *Server) handleDeleteAsset(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		s.handleError(w, r, err)
		return
	}
	if err := s.deps.Store.DeleteAsset(r.Context(), id); err != nil {
		s.handleError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func isHTML(contentType string) bool {
	mediaType, _, err := mime.ParseMediaType(contentType)
	return err == nil && (mediaType == "text/html" || mediaType == "application/xhtml+xml")
}
