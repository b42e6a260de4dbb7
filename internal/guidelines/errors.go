package guidelines

import "fmt"

// ParseError represents a failed AI extraction; Parser recovers from it with ParseText
type ParseError struct {
	Message string
	Cause   error
}

func (e *ParseError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("guideline parse error: %s: %v", e.Message, e.Cause)
	}
	return fmt.Sprintf("guideline parse error: %s", e.Message)
}

func (e *ParseError) Unwrap() error {
	return e.Cause
}
