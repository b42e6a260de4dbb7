package llm

import (
	"errors"
	"fmt"
)

// ErrMissingAPIKey is returned when a client is built without GEMINI_API_KEY
var ErrMissingAPIKey = errors.New("API key is required (set GEMINI_API_KEY)")

// ErrBlocked is returned when Gemini refuses a prompt or stops a response for safety
var ErrBlocked = errors.New("content blocked by Gemini")

// FileProcessingError is returned when an uploaded file fails server-side processing
type FileProcessingError struct {
	FileName string
	State    string
	Cause    error
}

func (e *FileProcessingError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("file %s processing failed (state %s): %v", e.FileName, e.State, e.Cause)
	}
	return fmt.Sprintf("file %s processing failed (state %s)", e.FileName, e.State)
}

func (e *FileProcessingError) Unwrap() error {
	return e.Cause
}
