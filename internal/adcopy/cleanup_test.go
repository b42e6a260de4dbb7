package adcopy

import (
	"regexp"
	"testing"

	"github.com/jonathan/brand-ad-studio/internal/types"
	"github.com/stretchr/testify/assert"
)

func TestClean(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{name: "exclamation marks", input: "Buy now! Really!!", want: "Buy now Really"},
		{name: "hashtags", input: "Fresh drop #summer #Sale2024 today", want: "Fresh drop today"},
		{name: "emoji", input: "Hot deal 🔥 ☀ ✨ 😀 🚀 🇺🇸 done", want: "Hot deal done"},
		{name: "non-ascii hashtags", input: "Visit us #Überall and #café today", want: "Visit us and today"},
		{name: "whitespace", input: "  a \t b  \n\n\n\n c ", want: "a b\n\nc"},
		{name: "plain text untouched", input: "Plain text.", want: "Plain text."},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Clean(tt.input))
		})
	}
}

func TestCleanCopy_RemovesForbiddenContent(t *testing.T) {
	forbidden := regexp.MustCompile(`!|#[\p{L}\p{N}_]|[\x{1F600}-\x{1F64F}\x{1F300}-\x{1F5FF}\x{1F680}-\x{1F6FF}\x{1F1E0}-\x{1F1FF}\x{2600}-\x{26FF}\x{2700}-\x{27BF}]`)
	inputs := []string{
		"Wow!!! 🎉🎉 #blessed",
		"⚡ Power #up your day! ✔",
		"Line one!\n\nLine   two 🌍",
		"##double #a#b end",
		"Rendez-vous #été #Ñandú",
	}

	for _, in := range inputs {
		got := CleanCopy(types.AdCopy{Headline: in, PrimaryText: in, CTA: in})
		for _, field := range []string{got.Headline, got.PrimaryText, got.CTA} {
			assert.False(t, forbidden.MatchString(field), "forbidden content left in %q", field)
			assert.NotContains(t, field, "  ")
			assert.NotContains(t, field, "\n")
		}
	}
}
