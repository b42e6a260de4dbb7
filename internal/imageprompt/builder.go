// Package imageprompt turns brand, theme and ad copy into long-form image generation instructions.
package imageprompt

import (
	"fmt"
	"strings"

	"github.com/jonathan/brand-ad-studio/internal/types"
)

// Input is everything the builder draws from
type Input struct {
	Theme        string
	Location     string
	Audience     string
	Brand        *types.Brand
	Guideline    *types.BrandGuideline
	Instructions *types.BrandInstructions
	Copy         *types.AdCopy
}

// phraseRule selects phrase when any keyword is a substring of the lowercased subject
type phraseRule struct {
	keywords []string
	phrase   string
}

var sceneRules = []phraseRule{
	{[]string{"christmas", "holiday", "winter", "snow"}, "a cozy winter setting with warm string lights, soft snowfall outside the window and seasonal decorations"},
	{[]string{"summer", "beach", "sun", "vacation"}, "a bright sunlit outdoor setting near the water, with golden hour light and a relaxed holiday atmosphere"},
	{[]string{"autumn", "fall", "harvest"}, "an autumn scene with fallen leaves, warm amber tones and soft late-afternoon light"},
	{[]string{"spring", "easter", "bloom"}, "a fresh spring setting with blooming flowers, soft pastel light and open green space"},
	{[]string{"valentine", "love", "romance"}, "an intimate, softly lit setting with warm tones suggesting connection and romance"},
	{[]string{"black friday", "sale", "deal", "discount"}, "a dynamic retail environment with a sense of energy and urgency, clean and uncluttered"},
	{[]string{"city", "urban", "downtown"}, "a modern city street with architectural lines, natural daylight and people going about their day"},
	{[]string{"home", "family", "kitchen"}, "a welcoming home interior with natural window light and lived-in details"},
	{[]string{"fitness", "gym", "sport", "run"}, "an active outdoor or gym setting with crisp light and a sense of movement"},
}

const defaultScene = "a clean, contemporary lifestyle setting with natural light that fits the campaign mood"

var actionRules = []phraseRule{
	{[]string{"coffee", "tea", "drink", "sip"}, "a person enjoying a drink, hands wrapped around the cup, relaxed and present"},
	{[]string{"eat", "food", "meal", "taste", "dinner", "lunch"}, "people sharing a meal at a table, mid-conversation and smiling"},
	{[]string{"shop", "buy", "order", "store"}, "a customer browsing and choosing a product, shown from a natural over-the-shoulder angle"},
	{[]string{"travel", "explore", "journey", "trip"}, "a traveler arriving at a new place, looking around with curiosity"},
	{[]string{"gift", "surprise", "present"}, "someone handing over a wrapped gift to a delighted friend"},
	{[]string{"relax", "unwind", "calm", "rest"}, "a person unwinding comfortably, shoulders relaxed, in a quiet moment"},
	{[]string{"work", "team", "office", "productive"}, "a small team collaborating at a bright workspace"},
	{[]string{"celebrate", "party", "together"}, "a group of friends celebrating together with genuine expressions"},
}

const defaultAction = "the product shown in natural use by a person who matches the target audience"

// variations are appended to a base prompt to request visually distinct outputs
var variations = []string{
	"Variation: frame the scene as a wide establishing shot with the subject off-center.",
	"Variation: use a close-up composition with shallow depth of field on the main subject.",
	"Variation: shoot from a slightly elevated angle with a warmer color grade.",
	"Variation: use a low angle and cooler, crisper lighting.",
	"Variation: place the subject centered with generous negative space for ad text.",
}

// matchRule returns the phrase of the first rule with a keyword contained in subject
func matchRule(rules []phraseRule, subject, fallback string) string {
	subject = strings.ToLower(subject)
	for _, rule := range rules {
		for _, kw := range rule.keywords {
			if strings.Contains(subject, kw) {
				return rule.phrase
			}
		}
	}
	return fallback
}

// Scene picks the setting phrase for a theme
func Scene(theme string) string {
	return matchRule(sceneRules, theme, defaultScene)
}

// Action picks the subject action phrase for ad copy
func Action(c *types.AdCopy) string {
	if c == nil {
		return defaultAction
	}
	return matchRule(actionRules, c.Headline+" "+c.PrimaryText, defaultAction)
}

// Build assembles the full image instruction
func Build(in Input) string {
	var sb strings.Builder
	line := func(format string, args ...any) {
		sb.WriteString(fmt.Sprintf(format, args...))
		sb.WriteString("\n")
	}

	brandName := "the brand"
	if in.Brand != nil && in.Brand.Name != "" {
		brandName = in.Brand.Name
	}
	theme := strings.TrimSpace(in.Theme)
	if theme == "" {
		theme = "brand campaign"
	}

	line("Create a high quality, photorealistic advertising image for %s.", brandName)
	line("")
	line("CAMPAIGN THEME: %s", theme)
	line("SCENE: %s.", Scene(theme))
	line("ACTION: %s.", Action(in.Copy))
	if in.Location != "" {
		line("LOCATION: %s.", in.Location)
	}
	if in.Audience != "" {
		line("AUDIENCE: show people who represent %s.", in.Audience)
	}

	if colors := brandColors(in); len(colors) > 0 {
		line("BRAND COLORS: use %s as accent colors in props, clothing or surroundings, never as flat fills.", strings.Join(colors, ", "))
	}
	if imagery := imageryStyle(in); imagery != "" {
		line("IMAGERY STYLE: %s", imagery)
	}
	if in.Instructions != nil {
		if s := strings.TrimSpace(in.Instructions.ImageInstructions); s != "" {
			line("INSTRUCTIONS: %s", s)
		}
		if s := strings.TrimSpace(in.Instructions.ImageStyleGuidelines); s != "" {
			line("STYLE GUIDELINES: %s", s)
		}
	}
	if in.Copy != nil && in.Copy.Headline != "" {
		line("MOOD: the image must support the headline \"%s\" without showing it.", in.Copy.Headline)
	}

	line("")
	line("REQUIREMENTS:")
	line("- No text, letters, logos or watermarks in the image.")
	line("- Natural, believable people and lighting; no distorted hands or faces.")
	line("- Square composition suitable for a paid-social feed.")
	return strings.TrimSpace(sb.String())
}

// Variation returns the adjustment suffix for index, cycling through five
func Variation(index int) string {
	n := len(variations)
	return variations[((index%n)+n)%n]
}

// WithVariation appends the variation suffix for index to base
func WithVariation(base string, index int) string {
	return strings.TrimSpace(base) + "\n\n" + Variation(index)
}

func brandColors(in Input) []string {
	if in.Guideline != nil && len(in.Guideline.Colors.All) > 0 {
		colors := in.Guideline.Colors.All
		if len(colors) > 4 {
			colors = colors[:4]
		}
		return colors
	}
	if in.Brand == nil {
		return nil
	}
	var colors []string
	for _, c := range []string{in.Brand.PrimaryColor, in.Brand.SecondaryColor} {
		if c != "" {
			colors = append(colors, strings.ToUpper(c))
		}
	}
	return colors
}

func imageryStyle(in Input) string {
	var g types.BrandGuidelines
	if in.Brand != nil {
		g = in.Brand.Guidelines
	}
	if in.Guideline != nil {
		g = g.Merge(in.Guideline.Guidelines)
	}
	return strings.TrimSpace(g.ImageryStyle)
}
