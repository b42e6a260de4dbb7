package guidelines

import (
	"strings"
	"testing"
	"unicode/utf8"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestExtractColors_CategorizesByKeyword(t *testing.T) {
	text := "Primary Colors: #8B1538 and again #8b1538\nAccent: #D4AF37"

	palette := ExtractColors(text)

	assert.Equal(t, []string{"#8B1538", "#D4AF37"}, palette.All)
	assert.Contains(t, palette.Primary, "#8B1538")
	assert.Contains(t, palette.Accent, "#D4AF37")
	assert.NotContains(t, palette.Primary, "#D4AF37")
}

func TestExtractColors_DedupesCaseInsensitively(t *testing.T) {
	palette := ExtractColors("#abc #ABC #aBc #112233")

	assert.Equal(t, []string{"#ABC", "#112233"}, palette.All)
}

func TestExtractColors_NearestKeywordWins(t *testing.T) {
	palette := ExtractColors("Primary: #111111. Secondary: #222222")

	assert.Equal(t, []string{"#111111"}, palette.Primary)
	assert.Equal(t, []string{"#222222"}, palette.Secondary)
}

func TestExtractColors_BackfillsEmptyCategories(t *testing.T) {
	codes := []string{"#000001", "#000002", "#000003", "#000004", "#000005", "#000006", "#000007", "#000008", "#000009", "#00000A"}
	palette := ExtractColors("Swatches " + strings.Join(codes, " "))

	assert.Equal(t, codes[0:4], palette.Primary)
	assert.Equal(t, codes[4:8], palette.Secondary)
	assert.Equal(t, codes[8:10], palette.Accent)
	assert.Len(t, palette.All, 10)
}

func TestExtractColors_BackfillOnlyEmptyCategory(t *testing.T) {
	palette := ExtractColors("Primary #AA0000 #BB0000")

	assert.Equal(t, []string{"#AA0000", "#BB0000"}, palette.Primary)
	assert.Empty(t, palette.Secondary)
	assert.Empty(t, palette.Accent)
}

func TestExtractColors_NoColors(t *testing.T) {
	palette := ExtractColors("no colors here, just #hashtag and #12")

	assert.False(t, palette.HasColors())
}

func TestExtractTypography(t *testing.T) {
	tests := []struct {
		name          string
		text          string
		wantNil       bool
		wantPrimary   string
		wantSecondary string
		wantDetails   string
	}{
		{
			name:    "no typography",
			text:    "Colors only #FFFFFF",
			wantNil: true,
		},
		{
			name:        "single font",
			text:        "Typeface: Playfair Display.",
			wantPrimary: "Playfair Display",
			wantDetails: "Playfair Display",
		},
		{
			name:          "two fonts",
			text:          "Headline font: Montserrat Bold\nBody font: Open Sans",
			wantPrimary:   "Montserrat Bold",
			wantSecondary: "Open Sans",
			wantDetails:   "Montserrat Bold. Open Sans",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ExtractTypography(tt.text)
			if tt.wantNil {
				assert.Nil(t, got)
				return
			}
			require.NotNil(t, got)
			assert.Equal(t, tt.wantPrimary, got.PrimaryFont)
			assert.Equal(t, tt.wantSecondary, got.SecondaryFont)
			assert.Equal(t, tt.wantDetails, got.Details)
		})
	}
}

func TestParseText_Fields(t *testing.T) {
	text := `Brand Book

Tone of Voice: Warm, confident and never sarcastic. We speak plainly.

Target Audience: Urban professionals aged 25 to 40

Logo Usage: Keep clear space equal to the height of the mark.

Primary color #8B1538`

	parsed := ParseText(text)

	assert.Equal(t, "Warm, confident and never sarcastic.", parsed.Guidelines.ToneOfVoice)
	assert.Equal(t, "Urban professionals aged 25 to 40", parsed.Guidelines.TargetAudience)
	assert.Equal(t, "Keep clear space equal to the height of the mark.", parsed.LogoRules)
	assert.Equal(t, parsed.LogoRules, parsed.Guidelines.LogoRules)
	assert.Equal(t, "#8B1538", parsed.Guidelines.Palette)
	assert.Empty(t, parsed.Guidelines.DosAndDonts)
	assert.Nil(t, parsed.Typography)
}

func TestParseText_FieldIsBounded(t *testing.T) {
	text := "Imagery: " + strings.Repeat("soft light ", 100)

	parsed := ParseText(text)

	assert.LessOrEqual(t, len(parsed.Guidelines.ImageryStyle), 400)
	assert.NotEmpty(t, parsed.Guidelines.ImageryStyle)
}

func TestParseText_BoundedFieldKeepsRunes(t *testing.T) {
	for _, pad := range []string{"", "a", "ab"} {
		parsed := ParseText("Logo usage: " + pad + strings.Repeat("’", 200))

		assert.NotEmpty(t, parsed.LogoRules, "pad %q", pad)
		assert.True(t, utf8.ValidString(parsed.LogoRules), "pad %q", pad)
	}
}

func TestClipBytes(t *testing.T) {
	assert.Equal(t, "short", clipBytes("short", 10))
	assert.Equal(t, "caf", clipBytes("café", 4))
	assert.Equal(t, "café", clipBytes("café", 5))
	assert.Equal(t, "", clipBytes("’", 2))
}

func TestParseText_EmptyInput(t *testing.T) {
	parsed := ParseText("")

	require.NotNil(t, parsed)
	assert.True(t, parsed.Guidelines.IsEmpty())
	assert.False(t, parsed.Colors.HasColors())
}
