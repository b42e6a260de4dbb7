// Package adcopy generates brand ad copy and enforces its format with a bounded retry loop.
package adcopy

import (
	"regexp"
	"strings"

	"github.com/jonathan/brand-ad-studio/internal/types"
)

var (
	hashtagRegex = regexp.MustCompile(`#[\p{L}\p{N}_]+`)
	emojiRegex   = regexp.MustCompile(`[\x{1F600}-\x{1F64F}\x{1F300}-\x{1F5FF}\x{1F680}-\x{1F6FF}\x{1F1E0}-\x{1F1FF}\x{2600}-\x{26FF}\x{2700}-\x{27BF}]`)
	spacesRegex  = regexp.MustCompile(`[ \t\f\v]+`)
	blankRegex   = regexp.MustCompile(`\n{3,}`)
)

// Clean strips exclamation marks, hashtags and emoji, then collapses repeated
// whitespace. Line breaks are kept, at most one blank line in a row.
func Clean(text string) string {
	text = strings.ReplaceAll(text, "!", "")
	text = hashtagRegex.ReplaceAllString(text, "")
	text = emojiRegex.ReplaceAllString(text, "")
	text = strings.ReplaceAll(text, "\r\n", "\n")
	text = spacesRegex.ReplaceAllString(text, " ")

	lines := strings.Split(text, "\n")
	for i, line := range lines {
		lines[i] = strings.TrimSpace(line)
	}
	text = blankRegex.ReplaceAllString(strings.Join(lines, "\n"), "\n\n")
	return strings.TrimSpace(text)
}

// cleanField is Clean with all whitespace collapsed to single spaces
func cleanField(text string) string {
	return strings.Join(strings.Fields(Clean(text)), " ")
}

// CleanCopy applies field cleanup to all three fields
func CleanCopy(c types.AdCopy) types.AdCopy {
	return types.AdCopy{
		Headline:    cleanField(c.Headline),
		PrimaryText: cleanField(c.PrimaryText),
		CTA:         cleanField(c.CTA),
	}
}
