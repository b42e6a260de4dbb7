// Package imagegen calls the Gemini image model over REST and returns data-URL images.
package imagegen

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/jonathan/brand-ad-studio/internal/logger"
)

// Defaults for the Gemini REST endpoint
const (
	DefaultBaseURL     = "https://generativelanguage.googleapis.com"
	DefaultAPIVersion  = "v1beta"
	DefaultModel       = "gemini-2.5-flash-image"
	DefaultAspectRatio = "1:1"
)

// ErrEmptyPrompt is returned when Generate is called without a prompt
var ErrEmptyPrompt = errors.New("image prompt is empty")

// Generator produces images from a prompt
type Generator interface {
	Generate(ctx context.Context, prompt string) ([]string, error)
}

// Options configures a Client
type Options struct {
	APIKey      string
	BaseURL     string
	APIVersion  string
	Model       string
	AspectRatio string
	// Disabled makes Generate return no images without any network call
	Disabled   bool
	HTTPClient *http.Client
	Logger     *logger.Logger
}

// Client is the REST image generation client
type Client struct {
	opts       Options
	httpClient *http.Client
	log        *logger.Logger
}

// New creates a client, filling unset options with defaults
func New(opts Options) *Client {
	opts.BaseURL = strings.TrimRight(opts.BaseURL, "/")
	if opts.BaseURL == "" {
		opts.BaseURL = DefaultBaseURL
	}
	if strings.TrimSpace(opts.APIVersion) == "" {
		opts.APIVersion = DefaultAPIVersion
	}
	if opts.Model == "" {
		opts.Model = DefaultModel
	}
	if opts.AspectRatio == "" {
		opts.AspectRatio = DefaultAspectRatio
	}

	httpClient := opts.HTTPClient
	if httpClient == nil {
		httpClient = &http.Client{Timeout: 2 * time.Minute}
	}
	log := opts.Logger
	if log == nil {
		log = logger.Nop()
	}

	return &Client{opts: opts, httpClient: httpClient, log: log}
}

// Disabled reports whether image generation is turned off
func (c *Client) Disabled() bool {
	return c.opts.Disabled
}

// Generate returns zero or more base64 data-URL images for prompt
func (c *Client) Generate(ctx context.Context, prompt string) ([]string, error) {
	if c.opts.Disabled {
		c.log.Debug("image generation disabled, skipping call")
		return []string{}, nil
	}

	prompt = strings.TrimSpace(prompt)
	if prompt == "" {
		return nil, ErrEmptyPrompt
	}
	if c.opts.APIKey == "" {
		return nil, &APIError{Message: "API key is not configured (set GEMINI_API_KEY)"}
	}

	req := generateContentRequest{
		Contents: []content{{Role: "user", Parts: []part{{Text: prompt}}}},
		GenerationConfig: generationConfig{
			ResponseModalities: []string{"IMAGE"},
			ImageConfig:        &imageConfig{AspectRatio: c.opts.AspectRatio},
		},
	}

	images, err := c.generateContent(ctx, req)
	if err != nil {
		c.log.Error("image generation failed", "model", c.opts.Model, "error", err)
		return nil, err
	}
	return images, nil
}

func (c *Client) generateContent(ctx context.Context, payload generateContentRequest) ([]string, error) {
	body, err := json.Marshal(payload)
	if err != nil {
		return nil, &APIError{Message: "marshal request", Cause: err}
	}

	url := fmt.Sprintf("%s/%s/models/%s:generateContent", c.opts.BaseURL, c.opts.APIVersion, c.opts.Model)
	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		return nil, &APIError{Message: "create request", Cause: err}
	}
	httpReq.Header.Set("content-type", "application/json")
	httpReq.Header.Set("x-goog-api-key", c.opts.APIKey)

	httpResp, err := c.httpClient.Do(httpReq)
	if err != nil {
		return nil, &APIError{Message: "request", Cause: err}
	}
	defer func() { _ = httpResp.Body.Close() }()

	rawBody, err := io.ReadAll(httpResp.Body)
	if err != nil {
		return nil, &APIError{Message: "read response", Cause: err}
	}

	if httpResp.StatusCode >= 400 {
		return nil, &APIError{Message: apiMessage(rawBody), StatusCode: httpResp.StatusCode}
	}

	var decoded generateContentResponse
	if err := json.Unmarshal(rawBody, &decoded); err != nil {
		return nil, &APIError{Message: "decode response", Cause: err}
	}
	return extractImages(decoded), nil
}

// apiMessage pulls error.message out of a Gemini error body, or returns the raw body
func apiMessage(body []byte) string {
	var e struct {
		Error struct {
			Message string `json:"message"`
		} `json:"error"`
	}
	if err := json.Unmarshal(body, &e); err == nil && e.Error.Message != "" {
		return e.Error.Message
	}
	return strings.TrimSpace(string(body))
}

func extractImages(resp generateContentResponse) []string {
	images := []string{}
	for _, cand := range resp.Candidates {
		for _, p := range cand.Content.Parts {
			if p.InlineData != nil && p.InlineData.Data != "" && p.InlineData.MimeType != "" {
				images = append(images, fmt.Sprintf("data:%s;base64,%s", p.InlineData.MimeType, p.InlineData.Data))
			}
		}
	}
	return images
}

type generateContentRequest struct {
	Contents         []content        `json:"contents"`
	GenerationConfig generationConfig `json:"generationConfig"`
}

type generationConfig struct {
	ResponseModalities []string     `json:"responseModalities,omitempty"`
	ImageConfig        *imageConfig `json:"imageConfig,omitempty"`
}

type imageConfig struct {
	AspectRatio string `json:"aspectRatio,omitempty"`
}

type content struct {
	Role  string `json:"role,omitempty"`
	Parts []part `json:"parts"`
}

type part struct {
	Text       string `json:"text,omitempty"`
	InlineData *blob  `json:"inlineData,omitempty"`
}

type blob struct {
	Data     string `json:"data"`
	MimeType string `json:"mimeType"`
}

type generateContentResponse struct {
	Candidates []candidate `json:"candidates"`
}

type candidate struct {
	Content content `json:"content"`
}
