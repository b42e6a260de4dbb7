package server

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/go-playground/validator/v10"

	"github.com/jonathan/brand-ad-studio/internal/adcopy"
	"github.com/jonathan/brand-ad-studio/internal/db"
	"github.com/jonathan/brand-ad-studio/internal/fetch"
	"github.com/jonathan/brand-ad-studio/internal/imagegen"
	"github.com/jonathan/brand-ad-studio/internal/llm"
	"github.com/jonathan/brand-ad-studio/internal/storage"
	"github.com/jonathan/brand-ad-studio/internal/uploads"
)

// ErrInvalidCredentials indicates invalid login credentials
type ErrInvalidCredentials struct{}

func (e *ErrInvalidCredentials) Error() string {
	return "invalid email or password"
}

// ErrValidation indicates request validation failure
type ErrValidation struct {
	Field   string
	Message string
}

func (e *ErrValidation) Error() string {
	if e.Field == "" {
		return fmt.Sprintf("validation error: %s", e.Message)
	}
	return fmt.Sprintf("validation error: %s - %s", e.Field, e.Message)
}

// validationError converts the first validator failure into an ErrValidation
func validationError(err error) *ErrValidation {
	var ve validator.ValidationErrors
	if errors.As(err, &ve) && len(ve) > 0 {
		return &ErrValidation{Field: ve[0].Field(), Message: ve[0].Tag()}
	}
	return &ErrValidation{Message: "invalid request"}
}

// HTTPStatus returns the HTTP status code for an error: missing resources are
// 404, bad input 400, safety-blocked prompts 422, upstream AI failures 502.
func HTTPStatus(err error) int {
	var (
		validationErr *ErrValidation
		credsErr      *ErrInvalidCredentials
		genErr        *adcopy.GenerationError
		imageErr      *imagegen.APIError
		fileErr       *llm.FileProcessingError
		fetchErr      *fetch.Error
		transitionErr *uploads.TransitionError
	)
	switch {
	case err == nil:
		return http.StatusOK
	case errors.Is(err, db.ErrBrandNotFound),
		errors.Is(err, db.ErrGuidelineNotFound),
		errors.Is(err, db.ErrInstructionsNotFound),
		errors.Is(err, db.ErrAssetNotFound),
		errors.Is(err, uploads.ErrUploadNotFound),
		errors.Is(err, storage.ErrNotFound):
		return http.StatusNotFound
	case errors.As(err, &validationErr),
		errors.Is(err, adcopy.ErrUnknownTask),
		errors.Is(err, imagegen.ErrEmptyPrompt),
		errors.Is(err, uploads.ErrNotPDF),
		errors.Is(err, uploads.ErrEmptyFile):
		return http.StatusBadRequest
	case errors.Is(err, llm.ErrBlocked):
		return http.StatusUnprocessableEntity
	case errors.Is(err, uploads.ErrFileTooLarge):
		return http.StatusRequestEntityTooLarge
	case errors.As(err, &credsErr):
		return http.StatusUnauthorized
	case errors.Is(err, db.ErrAdminExists), errors.As(err, &transitionErr):
		return http.StatusConflict
	case errors.As(err, &genErr), errors.As(err, &imageErr), errors.As(err, &fileErr),
		errors.Is(err, llm.ErrMissingAPIKey), errors.As(err, &fetchErr):
		return http.StatusBadGateway
	default:
		return http.StatusInternalServerError
	}
}
