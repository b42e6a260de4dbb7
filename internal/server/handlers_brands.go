package server

import (
	"context"
	"net/http"

	"github.com/google/uuid"

	"github.com/jonathan/brand-ad-studio/internal/db"
	"github.com/jonathan/brand-ad-studio/internal/storage"
	"github.com/jonathan/brand-ad-studio/internal/types"
)

func (s *Server) handleListBrands(w http.ResponseWriter, r *http.Request) {
	brands, err := s.deps.Store.ListBrands(r.Context())
	if err != nil {
		s.handleError(w, r, err)
		return
	}
	if brands == nil {
		brands = []types.Brand{}
	}
	s.jsonResponse(w, http.StatusOK, map[string]any{"brands": brands, "count": len(brands)})
}

func (s *Server) handleCreateBrand(w http.ResponseWriter, r *http.Request) {
	var req types.Brand
	if err := s.decodeJSON(w, r, &req); err != nil {
		s.handleError(w, r, err)
		return
	}

	brand, err := s.deps.Store.CreateBrand(r.Context(), &req)
	if err != nil {
		s.handleError(w, r, err)
		return
	}
	s.jsonResponse(w, http.StatusCreated, brand)
}

func (s *Server) handleGetBrand(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		s.handleError(w, r, err)
		return
	}

	brand, err := s.requireBrand(r.Context(), id)
	if err != nil {
		s.handleError(w, r, err)
		return
	}
	s.jsonResponse(w, http.StatusOK, brand)
}

func (s *Server) handleUpdateBrand(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		s.handleError(w, r, err)
		return
	}

	var req types.Brand
	if err := s.decodeJSON(w, r, &req); err != nil {
		s.handleError(w, r, err)
		return
	}
	req.ID = id

	brand, err := s.deps.Store.UpdateBrand(r.Context(), &req)
	if err != nil {
		s.handleError(w, r, err)
		return
	}
	s.jsonResponse(w, http.StatusOK, brand)
}

// handleDeleteBrand removes the brand rows and its stored guideline files
func (s *Server) handleDeleteBrand(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		s.handleError(w, r, err)
		return
	}

	if err := s.deps.Store.DeleteBrand(r.Context(), id); err != nil {
		s.handleError(w, r, err)
		return
	}
	s.deleteObjects(r.Context(), storage.GuidelinePrefix(id))
	w.WriteHeader(http.StatusNoContent)
}

// requireBrand returns the brand or db.ErrBrandNotFound
func (s *Server) requireBrand(ctx context.Context, id uuid.UUID) (*types.Brand, error) {
	brand, err := s.deps.Store.GetBrand(ctx, id)
	if err != nil {
		return nil, err
	}
	if brand == nil {
		return nil, db.ErrBrandNotFound
	}
	return brand, nil
}

// deleteObjects removes stored files under prefix. Failures only log.
func (s *Server) deleteObjects(ctx context.Context, prefix string) {
	if s.deps.Objects == nil {
		return
	}
	keys, err := s.deps.Objects.List(ctx, prefix)
	if err != nil {
		s.log.Warn("failed to list stored objects", "prefix", prefix, "error", err)
		return
	}
	for _, key := range keys {
		if err := s.deps.Objects.Delete(ctx, key); err != nil {
			s.log.Warn("failed to delete stored object", "key", key, "error", err)
		}
	}
}
