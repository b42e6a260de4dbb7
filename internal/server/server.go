// Package server provides the HTTP REST API for the brand ad studio.
package server

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"

	"github.com/jonathan/brand-ad-studio/internal/adcopy"
	"github.com/jonathan/brand-ad-studio/internal/batch"
	"github.com/jonathan/brand-ad-studio/internal/brandctx"
	"github.com/jonathan/brand-ad-studio/internal/fetch"
	"github.com/jonathan/brand-ad-studio/internal/imagegen"
	"github.com/jonathan/brand-ad-studio/internal/logger"
	"github.com/jonathan/brand-ad-studio/internal/server/middleware"
	"github.com/jonathan/brand-ad-studio/internal/server/ratelimit"
	"github.com/jonathan/brand-ad-studio/internal/storage"
	"github.com/jonathan/brand-ad-studio/internal/types"
)

// maxBodyBytes bounds JSON request bodies
const maxBodyBytes = 1 << 20

// CopyGenerator produces ad copy, copy and email text
type CopyGenerator interface {
	Generate(ctx context.Context, gc *types.GenerationContext, task types.TaskType, userPrompt string) (*adcopy.Result, error)
}

// BatchGenerator produces image variations sequentially
type BatchGenerator interface {
	Generate(ctx context.Context, basePrompt string, n int, onProgress batch.ProgressFunc) ([]batch.Image, error)
}

// GuidelineParser turns guideline text into structured fields
type GuidelineParser interface {
	Parse(ctx context.Context, text string) *types.ParsedGuideline
}

// UploadService runs guideline PDF uploads in the background
type UploadService interface {
	StartUpload(ctx context.Context, brandID uuid.UUID, fileName string, r io.Reader, size int64) (string, error)
	Progress(ctx context.Context, uploadID string) (*types.UploadProgress, error)
}

// Deps are the collaborators of the server. Objects, Fetch, Limiter and
// Logger are optional.
type Deps struct {
	Store   Store
	Copy    CopyGenerator
	Images  imagegen.Generator
	Batch   BatchGenerator
	Parser  GuidelineParser
	Uploads UploadService
	Objects storage.ObjectStore
	Auth    *AuthService
	JWT     *JWTService
	Limiter *ratelimit.Limiter
	Fetch   *fetch.Options
	Logger  *logger.Logger
}

// Options holds listener settings
type Options struct {
	Port           int
	AllowedOrigins []string
}

// Server represents the HTTP server
type Server struct {
	httpServer *http.Server
	deps       Deps
	contexts   *brandctx.Builder
	validate   *validator.Validate
	log        *logger.Logger
	origins    map[string]bool
}

// New creates a server. Store, Copy, Images, Batch, Parser, Uploads, Auth and JWT are required.
func New(opts Options, deps Deps) (*Server, error) {
	switch {
	case deps.Store == nil:
		return nil, errors.New("server: store is required")
	case deps.Copy == nil, deps.Images == nil, deps.Batch == nil, deps.Parser == nil:
		return nil, errors.New("server: generators and parser are required")
	case deps.Uploads == nil:
		return nil, errors.New("server: upload service is required")
	case deps.Auth == nil || deps.JWT == nil:
		return nil, errors.New("server: auth and jwt services are required")
	}
	if deps.Logger == nil {
		deps.Logger = logger.Nop()
	}
	if deps.Limiter == nil {
		deps.Limiter = ratelimit.NewLimiter(&ratelimit.Config{Enabled: false})
	}

	s := &Server{
		deps:     deps,
		contexts: brandctx.NewBuilder(deps.Store),
		validate: validator.New(),
		log:      deps.Logger.With("component", "server"),
		origins:  map[string]bool{},
	}
	for _, o := range opts.AllowedOrigins {
		if o = strings.TrimSpace(o); o != "" {
			s.origins[o] = true
		}
	}

	s.httpServer = &http.Server{
		Addr:              fmt.Sprintf(":%d", opts.Port),
		Handler:           s.Handler(),
		ReadHeaderTimeout: 10 * time.Second,
		ReadTimeout:       2 * time.Minute,
		WriteTimeout:      15 * time.Minute, // batch streams run for minutes
		IdleTimeout:       60 * time.Second,
	}
	return s, nil
}

// Handler returns the routed handler with the middleware chain applied
func (s *Server) Handler() http.Handler {
	admin := middleware.RequireAdmin(s.deps.JWT.AsTokenValidator())
	protect := func(h http.HandlerFunc) http.Handler { return admin(h) }

	mux := http.NewServeMux()
	mux.HandleFunc("GET /health", s.handleHealth)
	mux.HandleFunc("POST /auth/login", s.handleLogin)

	mux.HandleFunc("GET /brands", s.handleListBrands)
	mux.Handle("POST /brands", protect(s.handleCreateBrand))
	mux.HandleFunc("GET /brands/{id}", s.handleGetBrand)
	mux.Handle("PUT /brands/{id}", protect(s.handleUpdateBrand))
	mux.Handle("DELETE /brands/{id}", protect(s.handleDeleteBrand))

	mux.HandleFunc("GET /brands/{id}/guidelines", s.handleGetGuideline)
	mux.Handle("POST /brands/{id}/guidelines/upload", protect(s.handleUploadGuideline))
	mux.Handle("PUT /brands/{id}/guidelines", protect(s.handleUpdateGuideline))
	mux.Handle("DELETE /brands/{id}/guidelines", protect(s.handleDeleteGuideline))
	mux.HandleFunc("POST /guidelines/parse", s.handleParseGuidelines)
	mux.HandleFunc("GET /uploads/{id}", s.handleUploadProgress)

	mux.HandleFunc("GET /brands/{id}/instructions", s.handleGetInstructions)
	mux.Handle("PUT /brands/{id}/instructions", protect(s.handleUpdateInstructions))

	mux.HandleFunc("GET /brands/{id}/assets", s.handleListAssets)
	mux.HandleFunc("POST /brands/{id}/assets", s.handleCreateAsset)
	mux.HandleFunc("GET /assets/{id}", s.handleGetAsset)
	mux.HandleFunc("DELETE /assets/{id}", s.handleDeleteAsset)

	mux.HandleFunc("POST /brands/{id}/generate/copy", s.handleGenerateCopy)
	mux.HandleFunc("POST /brands/{id}/generate/image", s.handleGenerateImage)
	mux.HandleFunc("POST /brands/{id}/generate/batch", s.handleGenerateBatch)
	mux.HandleFunc("GET /generate/estimate", s.handleEstimate)

	return s.withRateLimit(middleware.RequestLogger(s.deps.Logger)(s.withCORS(mux)))
}

// Run serves until ctx is cancelled, then shuts down gracefully
func (s *Server) Run(ctx context.Context) error {
	errCh := make(chan error, 1)
	go func() {
		s.log.Info("server starting", "addr", s.httpServer.Addr)
		if err := s.httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		if err != nil {
			return fmt.Errorf("server error: %w", err)
		}
		return nil
	case <-ctx.Done():
	}

	s.log.Info("shutting down server")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()
	defer s.deps.Limiter.Stop()

	if err := s.httpServer.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("server shutdown failed: %w", err)
	}
	s.log.Info("server stopped")
	return nil
}

// withCORS adds CORS headers. An empty allow list permits any origin.
func (s *Server) withCORS(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		origin := r.Header.Get("Origin")
		switch {
		case len(s.origins) == 0:
			w.Header().Set("Access-Control-Allow-Origin", "*")
		case s.origins[origin]:
			w.Header().Set("Access-Control-Allow-Origin", origin)
			w.Header().Add("Vary", "Origin")
		}
		w.Header().Set("Access-Control-Allow-Methods", "GET, POST, PUT, DELETE, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type, Authorization")

		if r.Method == http.MethodOptions {
			w.WriteHeader(http.StatusNoContent)
			return
		}
		next.ServeHTTP(w, r)
	})
}

// withRateLimit rejects requests over the client's per-endpoint budget
func (s *Server) withRateLimit(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		allowed, info := s.deps.Limiter.Allow(clientID(r), r.URL.Path, r.Method)
		setRateLimitHeaders(w, info)
		if !allowed {
			s.rateLimitResponse(w, r, info)
			return
		}
		next.ServeHTTP(w, r)
	})
}

// clientID is the remote IP. Forwarded headers are not trusted.
func clientID(r *http.Request) string {
	ip, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return ip
}

func setRateLimitHeaders(w http.ResponseWriter, info ratelimit.Info) {
	if info.Limit > 0 {
		w.Header().Set("X-RateLimit-Limit", strconv.Itoa(info.Limit))
		w.Header().Set("X-RateLimit-Remaining", strconv.Itoa(info.Remaining))
		w.Header().Set("X-RateLimit-Reset", strconv.FormatInt(info.ResetTime.Unix(), 10))
	}
}

func (s *Server) rateLimitResponse(w http.ResponseWriter, r *http.Request, info ratelimit.Info) {
	response := map[string]any{
		"error":     "rate_limit_exceeded",
		"message":   "Rate limit exceeded. Please try again later.",
		"limit":     info.Limit,
		"remaining": info.Remaining,
		"reset_at":  info.ResetTime.Format(time.RFC3339),
	}
	if info.RetryAfter > 0 {
		seconds := int(info.RetryAfter.Round(time.Second).Seconds())
		if seconds < 1 {
			seconds = 1
		}
		response["retry_after"] = seconds
		w.Header().Set("Retry-After", strconv.Itoa(seconds))
	}

	s.log.Warn("rate limit exceeded", "client", clientID(r), "method", r.Method, "path", r.URL.Path, "limit", info.Limit)
	s.jsonResponse(w, http.StatusTooManyRequests, response)
}

// handleHealth reports liveness and database reachability
func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	body := map[string]any{"status": "ok", "database": "ok", "image_generation": !s.imagesDisabled()}
	status := http.StatusOK
	if err := s.deps.Store.Ping(r.Context()); err != nil {
		s.log.Warn("health check: database unreachable", "error", err)
		body["status"] = "degraded"
		body["database"] = "unavailable"
		status = http.StatusServiceUnavailable
	}
	s.jsonResponse(w, status, body)
}

// jsonResponse writes a JSON response
func (s *Server) jsonResponse(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		s.log.Error("failed to encode JSON response", "error", err)
	}
}

// errorResponse writes an error JSON response
func (s *Server) errorResponse(w http.ResponseWriter, status int, message string) {
	s.jsonResponse(w, status, map[string]string{"error": message})
}

// handleError maps err to a status. Internal errors are logged and not echoed.
func (s *Server) handleError(w http.ResponseWriter, r *http.Request, err error) {
	status := HTTPStatus(err)
	if status >= http.StatusInternalServerError {
		s.log.Error("request failed", "method", r.Method, "path", r.URL.Path, "status", status, "error", err)
	}
	if status == http.StatusInternalServerError {
		s.errorResponse(w, status, "internal server error")
		return
	}
	s.errorResponse(w, status, err.Error())
}

// decodeJSON reads and validates a JSON body into dst
func (s *Server) decodeJSON(w http.ResponseWriter, r *http.Request, dst any) error {
	if err := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodyBytes)).Decode(dst); err != nil {
		return &ErrValidation{Message: "invalid request body"}
	}
	if err := s.validate.Struct(dst); err != nil {
		return validationError(err)
	}
	return nil
}

// pathID parses a UUID path value
func pathID(r *http.Request, name string) (uuid.UUID, error) {
	id, err := uuid.Parse(r.PathValue(name))
	if err != nil {
		return uuid.Nil, &ErrValidation{Field: name, Message: "invalid id"}
	}
	return id, nil
}
