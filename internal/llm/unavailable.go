package llm

import (
	"context"
	"io"
)

// Unavailable is a Client and Extractor whose every call fails with Err.
// It stands in when no API key is configured so the service can still start.
type Unavailable struct {
	Err error
}

// NewUnavailable returns an Unavailable failing with err, or ErrMissingAPIKey when err is nil
func NewUnavailable(err error) *Unavailable {
	if err == nil {
		err = ErrMissingAPIKey
	}
	return &Unavailable{Err: err}
}

func (u *Unavailable) GenerateContent(context.Context, string, ModelTier) (string, error) {
	return "", u.Err
}

func (u *Unavailable) GenerateJSON(context.Context, string, ModelTier) (string, error) {
	return "", u.Err
}

func (u *Unavailable) ExtractText(context.Context, io.Reader, string) (string, error) {
	return "", u.Err
}

func (u *Unavailable) SummarizeDesign(context.Context, io.Reader, string) (string, error) {
	return "", u.Err
}

func (u *Unavailable) Close() error { return nil }
