package imagegen

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenerate_ReturnsDataURLs(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/v1beta/models/gemini-2.5-flash-image:generateContent", r.URL.Path)
		assert.Equal(t, "test-key", r.Header.Get("x-goog-api-key"))

		body, _ := io.ReadAll(r.Body)
		var req generateContentRequest
		require.NoError(t, json.Unmarshal(body, &req))
		assert.Equal(t, []string{"IMAGE"}, req.GenerationConfig.ResponseModalities)
		assert.Equal(t, "a red cup", req.Contents[0].Parts[0].Text)

		_, _ = w.Write([]byte(`{"candidates":[{"content":{"parts":[{"text":"here"},{"inlineData":{"mimeType":"image/png","data":"AAAA"}}]}}]}`))
	}))
	defer srv.Close()

	client := New(Options{APIKey: "test-key", BaseURL: srv.URL})
	images, err := client.Generate(context.Background(), "a red cup")

	require.NoError(t, err)
	assert.Equal(t, []string{"data:image/png;base64,AAAA"}, images)
}

func TestGenerate_NoImages(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte(`{"candidates":[{"content":{"parts":[{"text":"refused"}]}}]}`))
	}))
	defer srv.Close()

	images, err := New(Options{APIKey: "k", BaseURL: srv.URL}).Generate(context.Background(), "p")

	require.NoError(t, err)
	assert.Empty(t, images)
}

func TestGenerate_Disabled(t *testing.T) {
	var calls int32
	srv := httptest.NewServer(http.HandlerFunc(func(http.ResponseWriter, *http.Request) {
		atomic.AddInt32(&calls, 1)
	}))
	defer srv.Close()

	client := New(Options{APIKey: "k", BaseURL: srv.URL, Disabled: true})
	images, err := client.Generate(context.Background(), "p")

	require.NoError(t, err)
	assert.NotNil(t, images)
	assert.Empty(t, images)
	assert.True(t, client.Disabled())
	assert.Equal(t, int32(0), atomic.LoadInt32(&calls))
}

func TestGenerate_APIErrorCarriesHint(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusTooManyRequests)
		_, _ = w.Write([]byte(`{"error":{"code":429,"message":"Resource has been exhausted"}}`))
	}))
	defer srv.Close()

	_, err := New(Options{APIKey: "k", BaseURL: srv.URL}).Generate(context.Background(), "p")

	var apiErr *APIError
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, http.StatusTooManyRequests, apiErr.StatusCode)
	assert.Equal(t, "Resource has been exhausted", apiErr.Message)
	assert.Contains(t, err.Error(), DisableHint)
}

func TestGenerate_Validation(t *testing.T) {
	_, err := New(Options{APIKey: "k"}).Generate(context.Background(), "   ")
	assert.ErrorIs(t, err, ErrEmptyPrompt)

	_, err = New(Options{}).Generate(context.Background(), "p")
	var apiErr *APIError
	require.ErrorAs(t, err, &apiErr)
	assert.Contains(t, err.Error(), "GEMINI_API_KEY")
}

func TestAPIMessage_RawBody(t *testing.T) {
	assert.Equal(t, "upstream broke", apiMessage([]byte(" upstream broke \n")))
}
