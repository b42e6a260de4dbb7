package types

import (
	"time"

	"github.com/google/uuid"
)

// BrandInstructions is the per-brand generation configuration.
// It is created lazily with defaults and every save increments Version.
type BrandInstructions struct {
	BrandID              uuid.UUID `json:"brand_id"`
	SystemPrompt         string    `json:"system_prompt"`
	UserPromptTemplate   string    `json:"user_prompt_template"`
	ToneRules            string    `json:"tone_rules,omitempty"`
	ImageInstructions    string    `json:"image_instructions,omitempty"`
	ImageStyleGuidelines string    `json:"image_style_guidelines,omitempty"`
	Version              int       `json:"version"`
	LastUpdatedBy        string    `json:"last_updated_by,omitempty"`
	LastUpdated          time.Time `json:"last_updated"`
}

// UpdateInstructionsRequest is the body of an instructions save
type UpdateInstructionsRequest struct {
	SystemPrompt         string `json:"system_prompt" validate:"required"`
	UserPromptTemplate   string `json:"user_prompt_template" validate:"required"`
	ToneRules            string `json:"tone_rules,omitempty"`
	ImageInstructions    string `json:"image_instructions,omitempty"`
	ImageStyleGuidelines string `json:"image_style_guidelines,omitempty"`
}
