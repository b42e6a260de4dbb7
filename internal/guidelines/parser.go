package guidelines

import (
	"context"
	"encoding/json"
	"regexp"
	"strings"

	"github.com/jonathan/brand-ad-studio/internal/llm"
	"github.com/jonathan/brand-ad-studio/internal/logger"
	"github.com/jonathan/brand-ad-studio/internal/schemas"
	"github.com/jonathan/brand-ad-studio/internal/types"
)

var exactHexRegex = regexp.MustCompile(`^#(?:[0-9A-F]{6}|[0-9A-F]{3})$`)

// maxPromptText bounds the guideline text sent to the model
const maxPromptText = 30000

// Parser extracts guidelines with the LLM and falls back to ParseText when the
// model returns no colors or fails.
type Parser struct {
	client llm.Client
	log    *logger.Logger
}

// NewParser creates a parser. A nil client makes it regex-only.
func NewParser(client llm.Client, log *logger.Logger) *Parser {
	if log == nil {
		log = logger.Nop()
	}
	return &Parser{client: client, log: log}
}

// aiGuideline is the JSON shape requested by llm.GuidelineSchema
type aiGuideline struct {
	Colors struct {
		Primary   []string `json:"primary"`
		Secondary []string `json:"secondary"`
		Accent    []string `json:"accent"`
		All       []string `json:"all"`
	} `json:"colors"`
	Typography *struct {
		PrimaryFont   string `json:"primaryFont"`
		SecondaryFont string `json:"secondaryFont"`
		Details       string `json:"details"`
	} `json:"typography"`
	LogoRules      string `json:"logoRules"`
	ToneOfVoice    string `json:"toneOfVoice"`
	KeyMessaging   string `json:"keyMessaging"`
	TargetAudience string `json:"targetAudience"`
	Values         string `json:"values"`
	ImageryStyle   string `json:"imageryStyle"`
	DosAndDonts    string `json:"dosAndDonts"`
}

// Parse returns the structured guideline for text. It never fails.
func (p *Parser) Parse(ctx context.Context, text string) *types.ParsedGuideline {
	if p.client == nil {
		return ParseText(text)
	}

	parsed, err := p.parseWithAI(ctx, text)
	if err != nil {
		p.log.Warn("AI guideline parse failed, using pattern fallback", "error", err)
		return ParseText(text)
	}
	if !parsed.Colors.HasColors() {
		p.log.Info("AI guideline parse found no colors, using pattern fallback")
		fallback := ParseText(text)
		fallback.Guidelines = fallback.Guidelines.Merge(parsed.Guidelines)
		if fallback.Typography == nil {
			fallback.Typography = parsed.Typography
		}
		return fallback
	}
	return parsed
}

func (p *Parser) parseWithAI(ctx context.Context, text string) (*types.ParsedGuideline, error) {
	text = clipBytes(text, maxPromptText)
	prompt := llm.BuildExtractionPrompt(llm.GuidelineSchema(), text)

	raw, err := p.client.GenerateJSON(ctx, prompt, llm.TierStandard)
	if err != nil {
		return nil, &ParseError{Message: "failed to generate guideline extraction", Cause: err}
	}

	cleaned := llm.CleanJSONBlock(raw)
	if err := schemas.Validate(schemas.Guideline, cleaned); err != nil {
		return nil, &ParseError{Message: "guideline extraction does not match schema", Cause: err}
	}

	var out aiGuideline
	if err := json.Unmarshal([]byte(cleaned), &out); err != nil {
		return nil, &ParseError{Message: "failed to decode guideline extraction", Cause: err}
	}
	return out.toParsed(), nil
}

func (a *aiGuideline) toParsed() *types.ParsedGuideline {
	parsed := &types.ParsedGuideline{
		Colors: types.ColorPalette{
			Primary:   normalizeColors(a.Colors.Primary),
			Secondary: normalizeColors(a.Colors.Secondary),
			Accent:    normalizeColors(a.Colors.Accent),
		},
		LogoRules: strings.TrimSpace(a.LogoRules),
		Guidelines: types.BrandGuidelines{
			ToneOfVoice:    strings.TrimSpace(a.ToneOfVoice),
			KeyMessaging:   strings.TrimSpace(a.KeyMessaging),
			TargetAudience: strings.TrimSpace(a.TargetAudience),
			Values:         strings.TrimSpace(a.Values),
			ImageryStyle:   strings.TrimSpace(a.ImageryStyle),
			DosAndDonts:    strings.TrimSpace(a.DosAndDonts),
			LogoRules:      strings.TrimSpace(a.LogoRules),
		},
	}

	all := append(append(append(append([]string(nil), a.Colors.All...), a.Colors.Primary...), a.Colors.Secondary...), a.Colors.Accent...)
	parsed.Colors.All = normalizeColors(all)
	if len(parsed.Colors.All) > 0 {
		parsed.Guidelines.Palette = strings.Join(parsed.Colors.All, ", ")
	}

	if a.Typography != nil && (a.Typography.PrimaryFont != "" || a.Typography.SecondaryFont != "" || a.Typography.Details != "") {
		parsed.Typography = &types.Typography{
			PrimaryFont:   strings.TrimSpace(a.Typography.PrimaryFont),
			SecondaryFont: strings.TrimSpace(a.Typography.SecondaryFont),
			Details:       strings.TrimSpace(a.Typography.Details),
		}
	}
	return parsed
}

// normalizeColors keeps valid hex codes, uppercased and deduplicated in order
func normalizeColors(colors []string) []string {
	var out []string
	seen := make(map[string]bool, len(colors))
	for _, c := range colors {
		c = strings.ToUpper(strings.TrimSpace(c))
		if c != "" && !strings.HasPrefix(c, "#") {
			c = "#" + c
		}
		if !exactHexRegex.MatchString(c) || seen[c] {
			continue
		}
		seen[c] = true
		out = append(out, c)
	}
	return out
}
