package prompts

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGet_ValidPrompt(t *testing.T) {
	ClearCache()

	prompt, err := Get("adcopy.json", "ad-task")
	require.NoError(t, err)
	assert.Contains(t, prompt, "40 characters")
	assert.Contains(t, prompt, "primaryText")
}

func TestGet_InvalidFile(t *testing.T) {
	ClearCache()

	_, err := Get("nonexistent.json", "some-key")
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "failed to read prompt file")
}

func TestGet_InvalidKey(t *testing.T) {
	ClearCache()

	_, err := Get("adcopy.json", "nonexistent-key")
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "not found")
}

func TestMustGet_Panics(t *testing.T) {
	ClearCache()

	assert.Panics(t, func() {
		MustGet("nonexistent.json", "some-key")
	})
}

func TestList(t *testing.T) {
	ClearCache()

	keys, err := List("defaults.json")
	require.NoError(t, err)
	assert.Equal(t, []string{
		"image-instructions",
		"image-style-guidelines",
		"system-prompt",
		"tone-rules",
		"user-prompt-template",
	}, keys)
}

func TestAllShippedPromptsLoad(t *testing.T) {
	for _, file := range []string{"adcopy.json", "guidelines.json", "defaults.json"} {
		keys, err := List(file)
		require.NoError(t, err, file)
		assert.NotEmpty(t, keys, file)
	}
}
