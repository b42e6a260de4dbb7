package llm

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDefaultConfig(t *testing.T) {
	config := DefaultConfig()

	assert.Equal(t, "gemini-2.5-flash-lite", config.GetModel(TierLite))
	assert.Equal(t, "gemini-2.5-flash", config.GetModel(TierStandard))
	assert.Equal(t, "gemini-2.5-pro", config.GetModel(TierAdvanced))

	extraction, _ := config.Settings(TierStandard)
	creative, _ := config.Settings(TierAdvanced)
	assert.Less(t, extraction.Temperature, creative.Temperature)
}

func TestSettings_Fallback(t *testing.T) {
	config := &Config{Tiers: map[ModelTier]TierSettings{
		TierLite:     {Model: "fallback-model", Temperature: 0.3},
		TierAdvanced: {Temperature: 0.9},
	}}

	s, ok := config.Settings(TierAdvanced)
	assert.True(t, ok)
	assert.Equal(t, "fallback-model", s.Model)
	assert.Equal(t, "fallback-model", config.GetModel("unknown"))
}

func TestSettings_Empty(t *testing.T) {
	config := &Config{Tiers: map[ModelTier]TierSettings{}}

	_, ok := config.Settings(TierAdvanced)
	assert.False(t, ok)
	assert.Equal(t, "", config.GetModel(TierAdvanced))
}

func TestWithModel(t *testing.T) {
	config := DefaultConfig()
	custom := config.WithModel(TierAdvanced, "custom-model")

	assert.Equal(t, "gemini-2.5-pro", config.GetModel(TierAdvanced))
	assert.Equal(t, "custom-model", custom.GetModel(TierAdvanced))
	assert.Equal(t, config.Tiers[TierAdvanced].Temperature, custom.Tiers[TierAdvanced].Temperature)
	assert.Equal(t, "gemini-2.5-flash-lite", custom.GetModel(TierLite))
}
