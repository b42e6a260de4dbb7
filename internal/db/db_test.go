package db

import (
	"io/fs"
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultInstructions(t *testing.T) {
	id := uuid.New()

	in := DefaultInstructions(id)

	assert.Equal(t, id, in.BrandID)
	assert.Equal(t, 1, in.Version)
	assert.NotEmpty(t, in.SystemPrompt)
	assert.Contains(t, in.UserPromptTemplate, "{{theme}}")
	assert.NotEmpty(t, in.ImageInstructions)
}

func TestEmbeddedMigrations(t *testing.T) {
	entries, err := fs.ReadDir(embedMigrations, "migrations")
	require.NoError(t, err)
	require.NotEmpty(t, entries)

	var all strings.Builder
	for _, e := range entries {
		data, err := fs.ReadFile(embedMigrations, "migrations/"+e.Name())
		require.NoError(t, err)
		assert.Contains(t, string(data), "-- +goose Up", e.Name())
		assert.Contains(t, string(data), "-- +goose Down", e.Name())
		all.Write(data)
	}

	for _, table := range []string{"brands", "brand_guidelines", "brand_instructions", "brand_assets", "admins"} {
		assert.Contains(t, all.String(), "CREATE TABLE "+table+" (")
	}
}

func TestNormalizeEmail(t *testing.T) {
	assert.Equal(t, "ops@example.com", normalizeEmail("  Ops@Example.COM "))
}

func TestNonNil(t *testing.T) {
	assert.NotNil(t, nonNil(nil))
	assert.Equal(t, []string{"a"}, nonNil([]string{"a"}))
}
