package imagegen

import "fmt"

// DisableHint tells operators how to turn image generation off
const DisableHint = "set DISABLE_IMAGE_GENERATION=true to skip image generation"

// APIError represents a failed image generation call
type APIError struct {
	Message    string
	StatusCode int
	Cause      error
}

func (e *APIError) Error() string {
	msg := fmt.Sprintf("image generation failed: %s", e.Message)
	if e.StatusCode != 0 {
		msg = fmt.Sprintf("image generation failed (status %d): %s", e.StatusCode, e.Message)
	}
	if e.Cause != nil {
		msg = fmt.Sprintf("%s: %v", msg, e.Cause)
	}
	return msg + " (" + DisableHint + ")"
}

func (e *APIError) Unwrap() error {
	return e.Cause
}
