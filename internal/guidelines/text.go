// Package guidelines extracts structured brand rules from guideline document text.
package guidelines

import (
	"regexp"
	"strings"
	"unicode/utf8"

	"github.com/jonathan/brand-ad-studio/internal/types"
)

// colorContextWindow is how many characters before a hex code are inspected for a role keyword
const colorContextWindow = 50

// backfillWindow is the slice size used when a color category has no keyword match
const backfillWindow = 4

var hexColorRegex = regexp.MustCompile(`#(?:[0-9A-Fa-f]{6}|[0-9A-Fa-f]{3})\b`)

type colorRole int

const (
	rolePrimary colorRole = iota
	roleSecondary
	roleAccent
)

// colorRule maps role keywords to a category. Rules are evaluated in order.
type colorRule struct {
	keywords *regexp.Regexp
	role     colorRole
}

var colorRules = []colorRule{
	{regexp.MustCompile(`(?i)primary|main|burgundy|crimson`), rolePrimary},
	{regexp.MustCompile(`(?i)secondary|blue`), roleSecondary},
	{regexp.MustCompile(`(?i)accent|highlight|gold|orange`), roleAccent},
}

var typographyRegex = regexp.MustCompile(`(?i)\b(?:font|typeface|typography)[:\s]+([a-z0-9][a-z0-9 \-]*[a-z0-9])`)

// fieldRule captures a free-text field from its heading up to a paragraph or sentence break
type fieldRule struct {
	heading *regexp.Regexp
	maxLen  int
	set     func(*types.ParsedGuideline, string)
}

var fieldRules = []fieldRule{
	{
		heading: regexp.MustCompile(`(?i)\b(?:tone of voice|brand voice|tone)\b[:\s\-]*`),
		maxLen:  300,
		set:     func(p *types.ParsedGuideline, v string) { p.Guidelines.ToneOfVoice = v },
	},
	{
		heading: regexp.MustCompile(`(?i)\b(?:key messages|key messaging|key message|messaging|tagline)\b[:\s\-]*`),
		maxLen:  300,
		set:     func(p *types.ParsedGuideline, v string) { p.Guidelines.KeyMessaging = v },
	},
	{
		heading: regexp.MustCompile(`(?i)\b(?:target audience|target market|audience)\b[:\s\-]*`),
		maxLen:  300,
		set:     func(p *types.ParsedGuideline, v string) { p.Guidelines.TargetAudience = v },
	},
	{
		heading: regexp.MustCompile(`(?i)\b(?:brand values|core values|values|mission)\b[:\s\-]*`),
		maxLen:  300,
		set:     func(p *types.ParsedGuideline, v string) { p.Guidelines.Values = v },
	},
	{
		heading: regexp.MustCompile(`(?i)\b(?:imagery style|photography style|imagery|photography)\b[:\s\-]*`),
		maxLen:  400,
		set:     func(p *types.ParsedGuideline, v string) { p.Guidelines.ImageryStyle = v },
	},
	{
		heading: regexp.MustCompile(`(?i)\b(?:do'?s\s*(?:and|&)\s*don'?ts|do\s*(?:and|&)\s*don'?t)[:\s\-]*`),
		maxLen:  500,
		set:     func(p *types.ParsedGuideline, v string) { p.Guidelines.DosAndDonts = v },
	},
	{
		heading: regexp.MustCompile(`(?i)\b(?:logo usage|logo rules|logo)\b[:\s\-]*`),
		maxLen:  500,
		set: func(p *types.ParsedGuideline, v string) {
			p.LogoRules = v
			p.Guidelines.LogoRules = v
		},
	},
}

// fieldTerminator ends a captured field: a blank line, or a sentence end followed by a capital
var fieldTerminator = regexp.MustCompile(`\n[ \t]*\n|[.!?]\s+[A-Z]`)

// ParseText extracts colors, typography and guideline fields from raw text using
// pattern matching. It never fails; fields without a match are left empty.
func ParseText(text string) *types.ParsedGuideline {
	parsed := &types.ParsedGuideline{
		Colors:     ExtractColors(text),
		Typography: ExtractTypography(text),
	}
	for _, rule := range fieldRules {
		if v := captureField(text, rule); v != "" {
			rule.set(parsed, v)
		}
	}
	if len(parsed.Colors.All) > 0 {
		parsed.Guidelines.Palette = strings.Join(parsed.Colors.All, ", ")
	}
	return parsed
}

// ExtractColors finds hex colors and groups them by the role keyword nearest before each occurrence.
// Categories without a keyword match are backfilled from the full list in windows of four.
func ExtractColors(text string) types.ColorPalette {
	var palette types.ColorPalette
	seen := make(map[string]bool)
	inRole := [3]map[string]bool{{}, {}, {}}

	for _, loc := range hexColorRegex.FindAllStringIndex(text, -1) {
		color := strings.ToUpper(text[loc[0]:loc[1]])
		if !seen[color] {
			seen[color] = true
			palette.All = append(palette.All, color)
		}

		start := loc[0] - colorContextWindow
		if start < 0 {
			start = 0
		}
		role, ok := classifyColor(text[start:loc[0]])
		if !ok || inRole[role][color] {
			continue
		}
		inRole[role][color] = true
		switch role {
		case rolePrimary:
			palette.Primary = append(palette.Primary, color)
		case roleSecondary:
			palette.Secondary = append(palette.Secondary, color)
		case roleAccent:
			palette.Accent = append(palette.Accent, color)
		}
	}

	if len(palette.Primary) == 0 {
		palette.Primary = window(palette.All, 0)
	}
	if len(palette.Secondary) == 0 {
		palette.Secondary = window(palette.All, 1)
	}
	if len(palette.Accent) == 0 {
		palette.Accent = window(palette.All, 2)
	}
	return palette
}

// classifyColor returns the role whose keyword appears closest to the end of context.
// Ties go to the earlier rule.
func classifyColor(context string) (colorRole, bool) {
	best, bestPos := colorRole(0), -1
	for _, rule := range colorRules {
		matches := rule.keywords.FindAllStringIndex(context, -1)
		if len(matches) == 0 {
			continue
		}
		if pos := matches[len(matches)-1][1]; pos > bestPos {
			best, bestPos = rule.role, pos
		}
	}
	return best, bestPos >= 0
}

func window(all []string, n int) []string {
	start := n * backfillWindow
	if start >= len(all) {
		return nil
	}
	end := start + backfillWindow
	if end > len(all) {
		end = len(all)
	}
	return append([]string(nil), all[start:end]...)
}

// ExtractTypography returns font names found after font/typeface/typography keywords,
// or nil when the text names none.
func ExtractTypography(text string) *types.Typography {
	matches := typographyRegex.FindAllStringSubmatch(text, -1)
	if len(matches) == 0 {
		return nil
	}

	fonts := make([]string, 0, len(matches))
	for _, m := range matches {
		fonts = append(fonts, strings.TrimSpace(m[1]))
	}

	typography := &types.Typography{
		PrimaryFont: fonts[0],
		Details:     strings.Join(fonts, ". "),
	}
	if len(fonts) > 1 {
		typography.SecondaryFont = fonts[1]
	}
	return typography
}

func captureField(text string, rule fieldRule) string {
	loc := rule.heading.FindStringIndex(text)
	if loc == nil {
		return ""
	}
	rest := text[loc[1]:]
	if end := fieldTerminator.FindStringIndex(rest); end != nil {
		cut := end[0]
		if rest[cut] != '\n' {
			cut++ // keep the sentence's closing punctuation
		}
		rest = rest[:cut]
	}
	return strings.TrimSpace(clipBytes(rest, rule.maxLen))
}

// clipBytes shortens s to at most n bytes without splitting a rune
func clipBytes(s string, n int) string {
	if len(s) <= n {
		return s
	}
	for n > 0 && !utf8.RuneStart(s[n]) {
		n--
	}
	return s[:n]
}
