// Package types provides type definitions for structured data used throughout the brand ad studio.
//
//nolint:revive // types is a standard Go package name pattern
package types

import (
	"time"

	"github.com/google/uuid"
)

// BrandGuidelines holds the free-text brand rules shared by Brand and BrandGuideline.
// All fields are optional.
type BrandGuidelines struct {
	ToneOfVoice    string `json:"tone_of_voice,omitempty"`
	KeyMessaging   string `json:"key_messaging,omitempty"`
	TargetAudience string `json:"target_audience,omitempty"`
	Values         string `json:"values,omitempty"`
	ImageryStyle   string `json:"imagery_style,omitempty"`
	DosAndDonts    string `json:"dos_and_donts,omitempty"`
	Palette        string `json:"palette,omitempty"`
	LogoRules      string `json:"logo_rules,omitempty"`
}

// IsEmpty reports whether no guideline field is set
func (g BrandGuidelines) IsEmpty() bool {
	return g == BrandGuidelines{}
}

// Merge returns g with empty fields filled from other
func (g BrandGuidelines) Merge(other BrandGuidelines) BrandGuidelines {
	fill := func(dst *string, src string) {
		if *dst == "" {
			*dst = src
		}
	}
	fill(&g.ToneOfVoice, other.ToneOfVoice)
	fill(&g.KeyMessaging, other.KeyMessaging)
	fill(&g.TargetAudience, other.TargetAudience)
	fill(&g.Values, other.Values)
	fill(&g.ImageryStyle, other.ImageryStyle)
	fill(&g.DosAndDonts, other.DosAndDonts)
	fill(&g.Palette, other.Palette)
	fill(&g.LogoRules, other.LogoRules)
	return g
}

// Brand is a tenant with its own identity tokens, guidelines, assets and instructions.
// It is read-only for the duration of a generation request.
type Brand struct {
	ID             uuid.UUID       `json:"id"`
	Name           string          `json:"name" validate:"required,min=1,max=120"`
	PrimaryColor   string          `json:"primary_color,omitempty" validate:"omitempty,hexcolor"`
	SecondaryColor string          `json:"secondary_color,omitempty" validate:"omitempty,hexcolor"`
	StyleTokens    []string        `json:"style_tokens,omitempty"`
	LogoURL        string          `json:"logo_url,omitempty" validate:"omitempty,url"`
	Inspiration    []string        `json:"inspiration,omitempty"`
	Guidelines     BrandGuidelines `json:"guidelines"`
	CreatedAt      time.Time       `json:"created_at"`
	UpdatedAt      time.Time       `json:"updated_at"`
}
