package server

import (
	"net/http"

	"github.com/jonathan/brand-ad-studio/internal/types"
)

// handleLogin exchanges admin credentials for a bearer token
func (s *Server) handleLogin(w http.ResponseWriter, r *http.Request) {
	var req types.LoginRequest
	if err := s.decodeJSON(w, r, &req); err != nil {
		s.handleError(w, r, err)
		return
	}

	admin, err := s.deps.Auth.Login(r.Context(), &req)
	if err != nil {
		s.handleError(w, r, err)
		return
	}

	token, err := s.deps.JWT.GenerateToken(admin)
	if err != nil {
		s.handleError(w, r, err)
		return
	}

	s.log.Info("admin logged in", "admin_id", admin.ID)
	s.jsonResponse(w, http.StatusOK, types.LoginResponse{Admin: admin, Token: token})
}
