package adcopy

import (
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/jonathan/brand-ad-studio/internal/types"
)

// Format limits for a paid-social ad
const (
	MaxHeadlineChars = 40
	MinBodyWords     = 90
	MaxBodyWords     = 160
	MinCTAWords      = 3
	MaxCTAWords      = 5

	ellipsis = "..."
)

// Validate returns every violated format constraint, or nil when c is valid
func Validate(c types.AdCopy) []string {
	var errs []string

	headline := strings.TrimSpace(c.Headline)
	if headline == "" {
		errs = append(errs, "Headline is missing")
	} else if n := utf8.RuneCountInString(headline); n > MaxHeadlineChars {
		errs = append(errs, fmt.Sprintf("Headline is %d characters (max %d)", n, MaxHeadlineChars))
	}

	if strings.TrimSpace(c.PrimaryText) == "" {
		errs = append(errs, "Primary text is missing")
	}
	if n := WordCount(c.PrimaryText); n < MinBodyWords || n > MaxBodyWords {
		errs = append(errs, fmt.Sprintf("Primary text is %d words (must be %d-%d)", n, MinBodyWords, MaxBodyWords))
	}

	if strings.TrimSpace(c.CTA) == "" {
		errs = append(errs, "CTA is missing")
	}
	if n := WordCount(c.CTA); n < MinCTAWords || n > MaxCTAWords {
		errs = append(errs, fmt.Sprintf("CTA is %d words (must be %d-%d)", n, MinCTAWords, MaxCTAWords))
	}

	return errs
}

// WordCount counts whitespace-separated tokens
func WordCount(s string) int {
	return len(strings.Fields(s))
}

// Truncate cuts over-length fields back within their upper bounds.
// Under-length fields are left as they are.
func Truncate(c types.AdCopy) types.AdCopy {
	headline := strings.TrimSpace(c.Headline)
	if utf8.RuneCountInString(headline) > MaxHeadlineChars {
		runes := []rune(headline)
		headline = string(runes[:MaxHeadlineChars-len(ellipsis)]) + ellipsis
	}

	body := strings.TrimSpace(c.PrimaryText)
	if words := strings.Fields(body); len(words) > MaxBodyWords {
		body = strings.Join(words[:MaxBodyWords], " ") + ellipsis
	}

	cta := strings.TrimSpace(c.CTA)
	if words := strings.Fields(cta); len(words) > MaxCTAWords {
		cta = strings.Join(words[:MaxCTAWords], " ")
	}

	return types.AdCopy{Headline: headline, PrimaryText: body, CTA: cta}
}

// Markdown renders ad copy in the fixed labelled form used downstream
func Markdown(c types.AdCopy) string {
	return fmt.Sprintf("**Headline:** %s\n\n**Primary Text:** %s\n\n**Call to Action:** %s", c.Headline, c.PrimaryText, c.CTA)
}
