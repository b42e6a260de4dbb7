package types

// TaskType selects the kind of text the generator produces
type TaskType string

// Supported task types
const (
	TaskAd    TaskType = "ad"
	TaskCopy  TaskType = "copy"
	TaskEmail TaskType = "email"
)

// UserInput is the raw input of one generation request
type UserInput struct {
	Theme        string `json:"theme,omitempty"`
	Location     string `json:"location,omitempty"`
	Audience     string `json:"audience,omitempty"`
	CustomPrompt string `json:"custom_prompt,omitempty"`
}

// GenerationContext bundles everything a single generation call needs.
// It is never persisted.
type GenerationContext struct {
	Brand         *Brand             `json:"brand"`
	Instructions  *BrandInstructions `json:"instructions"`
	Guideline     *BrandGuideline    `json:"guideline,omitempty"`
	Guidelines    []Asset            `json:"guidelines"`
	CompetitorAds []Asset            `json:"competitor_ads"`
	ReferenceCopy []Asset            `json:"reference_copy"`
	Logos         []Asset            `json:"logos"`
	Input         UserInput          `json:"input"`
}

// AdCopy is the three-field text unit of a paid-social ad
type AdCopy struct {
	Headline    string `json:"headline"`
	PrimaryText string `json:"primaryText"`
	CTA         string `json:"cta"`
}

// GenerateCopyRequest is the body of a copy generation request
type GenerateCopyRequest struct {
	TaskType TaskType  `json:"task_type" validate:"required,oneof=ad copy email"`
	Prompt   string    `json:"prompt,omitempty" validate:"max=4000"`
	Input    UserInput `json:"input"`
}

// GenerateImageRequest is the body of a single or batch image request
type GenerateImageRequest struct {
	Prompt string    `json:"prompt,omitempty"`
	Theme  string    `json:"theme,omitempty"`
	Copy   *AdCopy   `json:"copy,omitempty"`
	Count  int       `json:"count,omitempty" validate:"omitempty,min=1,max=10"`
	Input  UserInput `json:"input"`
}
