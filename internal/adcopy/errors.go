package adcopy

import (
	"errors"
	"fmt"
)

// ErrUnknownTask is returned for a task type other than ad, copy or email
var ErrUnknownTask = errors.New("unknown task type")

// GenerationError represents a transport or API failure from the text model.
// Format violations are never reported as errors.
type GenerationError struct {
	Message string
	Attempt int
	Cause   error
}

func (e *GenerationError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("generation failed on attempt %d: %s: %v", e.Attempt, e.Message, e.Cause)
	}
	return fmt.Sprintf("generation failed on attempt %d: %s", e.Attempt, e.Message)
}

func (e *GenerationError) Unwrap() error {
	return e.Cause
}
