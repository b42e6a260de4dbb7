// Package llm - extractor.go builds schema-driven extraction prompts.
package llm

import (
	"fmt"
	"strings"

	"github.com/jonathan/brand-ad-studio/internal/prompts"
)

// ExtractionSchema defines the structure for LLM-based content extraction.
// It provides a reusable way to define what information to extract from text.
type ExtractionSchema struct {
	Name        string        // Schema name (e.g., "BrandGuideline")
	Description string        // System prompt preamble describing the extraction task
	Fields      []SchemaField // Expected output fields
}

// SchemaField defines a single field in the extraction output.
type SchemaField struct {
	Name        string // JSON field name
	Type        string // Type hint: "string", "[]string", "map[string]string"
	Description string // Description for the LLM
	Required    bool   // Whether this field is required
}

// BuildExtractionPrompt constructs the LLM prompt from schema and input text.
func BuildExtractionPrompt(schema ExtractionSchema, inputText string) string {
	var sb strings.Builder

	// System description
	sb.WriteString(schema.Description)
	sb.WriteString("\n\n")

	// Output schema
	sb.WriteString("Return ONLY valid JSON matching this exact structure:\n{\n")
	for i, field := range schema.Fields {
		typeHint := field.Type
		if typeHint == "" {
			typeHint = "string"
		}
		requiredHint := ""
		if field.Required {
			requiredHint = " (required)"
		}
		sb.WriteString(fmt.Sprintf("  \"%s\": %s%s", field.Name, typeHint, requiredHint))
		if field.Description != "" {
			sb.WriteString(fmt.Sprintf(" // %s", field.Description))
		}
		if i < len(schema.Fields)-1 {
			sb.WriteString(",")
		}
		sb.WriteString("\n")
	}
	sb.WriteString("}\n\n")

	// Instructions
	sb.WriteString("IMPORTANT:\n")
	sb.WriteString("- Extract information directly from the text, do not invent or summarize.\n")
	sb.WriteString("- Return ONLY the JSON object, no markdown, no explanation, no code blocks.\n\n")

	// Input text
	sb.WriteString("Input text:\n\"\"\"\n")
	sb.WriteString(inputText)
	sb.WriteString("\n\"\"\"\n")

	return sb.String()
}

// --- Predefined Schemas ---

// GuidelineSchema returns the extraction schema for brand guideline documents.
func GuidelineSchema() ExtractionSchema {
	return ExtractionSchema{
		Name: "BrandGuideline",
		Description: prompts.MustGet("guidelines.json", "extract-guidelines"),
		Fields: []SchemaField{
			{Name: "colors", Type: `{"primary": []string, "secondary": []string, "accent": []string, "all": []string}`, Description: "Hex color codes grouped by role", Required: true},
			{Name: "typography", Type: `{"primaryFont": string, "secondaryFont": string, "details": string}`, Description: "Font families and usage notes"},
			{Name: "logoRules", Type: "string", Description: "Logo usage, clear space and minimum size rules"},
			{Name: "toneOfVoice", Type: "string", Description: "How the brand sounds"},
			{Name: "keyMessaging", Type: "string", Description: "Core messages and taglines"},
			{Name: "targetAudience", Type: "string", Description: "Who the brand speaks to"},
			{Name: "values", Type: "string", Description: "Brand values and mission"},
			{Name: "imageryStyle", Type: "string", Description: "Photography and illustration style"},
			{Name: "dosAndDonts", Type: "string", Description: "Explicit do and don't rules"},
		},
	}
}
