// Package llm - files.go extracts text from PDFs through the Gemini File API.
package llm

import (
	"context"
	"fmt"
	"io"
	"time"

	"github.com/google/generative-ai-go/genai"
	"google.golang.org/api/option"

	"github.com/jonathan/brand-ad-studio/internal/prompts"
)

// DefaultPollInterval is how often an uploaded file's state is checked
const DefaultPollInterval = 2 * time.Second

// maxPolls bounds the wait for a file to leave the PROCESSING state
const maxPolls = 150

// Extractor turns a guideline document into text
type Extractor interface {
	ExtractText(ctx context.Context, r io.Reader, displayName string) (string, error)
	SummarizeDesign(ctx context.Context, r io.Reader, displayName string) (string, error)
}

// fileGetter fetches the current state of an uploaded file
type fileGetter func(ctx context.Context, name string) (*genai.File, error)

// FileExtractor uploads a document, polls until it is ready, then prompts the model over it
type FileExtractor struct {
	client       *genai.Client
	config       *Config
	PollInterval time.Duration
}

// NewFileExtractor creates a File API backed extractor
func NewFileExtractor(ctx context.Context, config *Config, apiKey string) (*FileExtractor, error) {
	if apiKey == "" {
		return nil, ErrMissingAPIKey
	}
	if config == nil {
		config = DefaultConfig()
	}

	client, err := genai.NewClient(ctx, option.WithAPIKey(apiKey))
	if err != nil {
		return nil, fmt.Errorf("failed to create Gemini client: %w", err)
	}

	return &FileExtractor{
		client:       client,
		config:       config,
		PollInterval: DefaultPollInterval,
	}, nil
}

// Close releases the underlying client
func (e *FileExtractor) Close() error {
	return e.client.Close()
}

// ExtractText returns the full text of a PDF
func (e *FileExtractor) ExtractText(ctx context.Context, r io.Reader, displayName string) (string, error) {
	return e.process(ctx, r, displayName, prompts.MustGet("guidelines.json", "extract-pdf-text"))
}

// SummarizeDesign returns a textual description of the document's visual design
func (e *FileExtractor) SummarizeDesign(ctx context.Context, r io.Reader, displayName string) (string, error) {
	return e.process(ctx, r, displayName, prompts.MustGet("guidelines.json", "summarize-visual-design"))
}

func (e *FileExtractor) process(ctx context.Context, r io.Reader, displayName, prompt string) (string, error) {
	settings, ok := e.config.Settings(TierStandard)
	if !ok {
		return "", fmt.Errorf("no model configured for tier %s", TierStandard)
	}

	file, err := e.client.UploadFile(ctx, "", r, &genai.UploadFileOptions{
		DisplayName: displayName,
		MIMEType:    "application/pdf",
	})
	if err != nil {
		return "", fmt.Errorf("failed to upload file: %w", err)
	}
	defer func() { _ = e.client.DeleteFile(context.WithoutCancel(ctx), file.Name) }()

	file, err = waitForFile(ctx, file, e.client.GetFile, e.PollInterval)
	if err != nil {
		return "", err
	}

	model := e.client.GenerativeModel(settings.Model)
	model.SetTemperature(settings.Temperature)
	resp, err := model.GenerateContent(ctx, genai.FileData{MIMEType: file.MIMEType, URI: file.URI}, genai.Text(prompt))
	if err != nil {
		return "", fmt.Errorf("failed to generate content from file: %w", err)
	}
	return extractTextFromResponse(resp)
}

// waitForFile polls until the file leaves the PROCESSING state
func waitForFile(ctx context.Context, file *genai.File, get fileGetter, interval time.Duration) (*genai.File, error) {
	for polls := 0; file.State == genai.FileStateProcessing; polls++ {
		if polls >= maxPolls {
			return nil, &FileProcessingError{FileName: file.Name, State: fmt.Sprint(file.State), Cause: fmt.Errorf("timed out after %d polls", polls)}
		}
		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		case <-time.After(interval):
		}

		next, err := get(ctx, file.Name)
		if err != nil {
			return nil, fmt.Errorf("failed to get file state: %w", err)
		}
		file = next
	}

	if file.State == genai.FileStateFailed {
		return nil, &FileProcessingError{FileName: file.Name, State: fmt.Sprint(file.State)}
	}
	return file, nil
}
