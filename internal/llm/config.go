// Package llm wraps the Gemini text and File APIs behind small interfaces
// so generators and parsers can be tested with fakes.
package llm

// ModelTier selects a model and sampling setup by the kind of work
type ModelTier string

const (
	// TierLite is for cheap cleanup and classification calls
	TierLite ModelTier = "lite"
	// TierStandard is for structured output: guideline parsing, PDF text extraction
	TierStandard ModelTier = "standard"
	// TierAdvanced is for creative writing: ad copy, emails
	TierAdvanced ModelTier = "advanced"
)

// TierSettings is the model and temperature used for one tier
type TierSettings struct {
	Model       string
	Temperature float32
}

// Config maps tiers to their settings
type Config struct {
	Tiers map[ModelTier]TierSettings
}

// DefaultConfig keeps extraction nearly deterministic and lets copywriting vary
func DefaultConfig() *Config {
	return &Config{
		Tiers: map[ModelTier]TierSettings{
			TierLite:     {Model: "gemini-2.5-flash-lite", Temperature: 0.2},
			TierStandard: {Model: "gemini-2.5-flash", Temperature: 0.1},
			TierAdvanced: {Model: "gemini-2.5-pro", Temperature: 0.8},
		},
	}
}

// Settings returns the settings for tier, falling back to standard, then lite
func (c *Config) Settings(tier ModelTier) (TierSettings, bool) {
	for _, t := range []ModelTier{tier, TierStandard, TierLite} {
		if s, ok := c.Tiers[t]; ok && s.Model != "" {
			return s, true
		}
	}
	return TierSettings{}, false
}

// GetModel returns the model name for tier, or "" when nothing is configured
func (c *Config) GetModel(tier ModelTier) string {
	s, _ := c.Settings(tier)
	return s.Model
}

// WithModel returns a copy of c with tier served by model. The tier keeps its temperature.
func (c *Config) WithModel(tier ModelTier, model string) *Config {
	out := &Config{Tiers: make(map[ModelTier]TierSettings, len(c.Tiers)+1)}
	for k, v := range c.Tiers {
		out.Tiers[k] = v
	}
	s := out.Tiers[tier]
	s.Model = model
	out.Tiers[tier] = s
	return out
}
