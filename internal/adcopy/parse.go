package adcopy

import (
	"encoding/json"
	"regexp"
	"strings"

	"github.com/jonathan/brand-ad-studio/internal/llm"
	"github.com/jonathan/brand-ad-studio/internal/schemas"
	"github.com/jonathan/brand-ad-studio/internal/types"
)

// strategy tries one response format and reports whether it matched
type strategy struct {
	name  string
	parse func(string) (types.AdCopy, bool)
}

// strategies are tried in order; the first match wins
var strategies = []strategy{
	{"fenced-json", parseFencedJSON},
	{"balanced-json", parseBalancedJSON},
	{"markdown-labels", parseMarkdownLabels},
}

var (
	fenceRegex = regexp.MustCompile("(?s)```[A-Za-z]*\\s*(.*?)```")
	labelRegex = regexp.MustCompile(`(?i)\*\*\s*(headline|primary text|call to action)\s*:?\s*\*\*\s*:?`)
)

// Parse extracts ad copy from a model response. A response no strategy
// understands yields empty fields.
func Parse(text string) types.AdCopy {
	c, _ := parseNamed(text)
	return c
}

// parseNamed also returns the name of the strategy that matched, "" for none
func parseNamed(text string) (types.AdCopy, string) {
	for _, s := range strategies {
		if c, ok := s.parse(text); ok {
			return c, s.name
		}
	}
	return types.AdCopy{}, ""
}

func parseFencedJSON(text string) (types.AdCopy, bool) {
	for _, m := range fenceRegex.FindAllStringSubmatch(text, -1) {
		if obj := llm.ExtractJSONObject(m[1]); obj != "" {
			if c, ok := decodeJSON(obj); ok {
				return c, true
			}
		}
	}
	return types.AdCopy{}, false
}

func parseBalancedJSON(text string) (types.AdCopy, bool) {
	obj := llm.ExtractJSONObject(text)
	if obj == "" {
		return types.AdCopy{}, false
	}
	return decodeJSON(obj)
}

// decodeJSON accepts an object that satisfies the ad copy schema
func decodeJSON(obj string) (types.AdCopy, bool) {
	if err := schemas.Validate(schemas.AdCopy, obj); err != nil {
		return types.AdCopy{}, false
	}
	var c types.AdCopy
	if err := json.Unmarshal([]byte(obj), &c); err != nil {
		return types.AdCopy{}, false
	}
	return c, true
}

func parseMarkdownLabels(text string) (types.AdCopy, bool) {
	locs := labelRegex.FindAllStringSubmatchIndex(text, -1)
	if len(locs) == 0 {
		return types.AdCopy{}, false
	}

	var c types.AdCopy
	for i, loc := range locs {
		end := len(text)
		if i+1 < len(locs) {
			end = locs[i+1][0]
		}
		value := strings.TrimSpace(text[loc[1]:end])
		switch strings.ToLower(text[loc[2]:loc[3]]) {
		case "headline":
			c.Headline = value
		case "primary text":
			c.PrimaryText = value
		case "call to action":
			c.CTA = value
		}
	}
	return c, c != types.AdCopy{}
}
