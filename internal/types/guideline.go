package types

import (
	"time"

	"github.com/google/uuid"
)

// ColorPalette holds the hex colors extracted from a guideline document.
// All is deduplicated and uppercase.
type ColorPalette struct {
	Primary   []string `json:"primary"`
	Secondary []string `json:"secondary"`
	Accent    []string `json:"accent"`
	All       []string `json:"all"`
}

// HasColors reports whether any color was extracted
func (p ColorPalette) HasColors() bool {
	return len(p.All) > 0 || len(p.Primary) > 0 || len(p.Secondary) > 0 || len(p.Accent) > 0
}

// Typography describes the fonts named in a guideline document
type Typography struct {
	PrimaryFont   string `json:"primary_font,omitempty"`
	SecondaryFont string `json:"secondary_font,omitempty"`
	Details       string `json:"details,omitempty"`
}

// ParsedGuideline is the structured result of parsing guideline text
type ParsedGuideline struct {
	Colors     ColorPalette    `json:"colors"`
	Typography *Typography     `json:"typography,omitempty"`
	LogoRules  string          `json:"logo_rules,omitempty"`
	Guidelines BrandGuidelines `json:"guidelines"`
}

// BrandGuideline is the one-per-brand record derived from an uploaded guideline PDF.
// Version strictly increases on every update.
type BrandGuideline struct {
	BrandID       uuid.UUID       `json:"brand_id"`
	SourcePDFURL  string          `json:"source_pdf_url,omitempty"`
	SourceObject  string          `json:"source_object,omitempty"`
	ExtractedText string          `json:"extracted_text,omitempty"`
	Colors        ColorPalette    `json:"colors"`
	Typography    *Typography     `json:"typography,omitempty"`
	LogoRules     string          `json:"logo_rules,omitempty"`
	Guidelines    BrandGuidelines `json:"guidelines"`
	Version       int             `json:"version"`
	CreatedAt     time.Time       `json:"created_at"`
	LastUpdated   time.Time       `json:"last_updated"`
}

// Apply copies parsed fields onto the guideline record
func (g *BrandGuideline) Apply(p *ParsedGuideline) {
	if p == nil {
		return
	}
	g.Colors = p.Colors
	g.Typography = p.Typography
	g.LogoRules = p.LogoRules
	g.Guidelines = p.Guidelines
}
