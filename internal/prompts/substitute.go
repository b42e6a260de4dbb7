package prompts

import (
	"regexp"
	"sort"
	"strings"

	"github.com/jonathan/brand-ad-studio/internal/types"
)

// maxAssetsInPrompt bounds how many stored assets of one kind are inlined into a prompt
const maxAssetsInPrompt = 5

// Key returns the placeholder token for a variable name, e.g. Key("theme") == "{{theme}}".
func Key(name string) string {
	return "{{" + name + "}}"
}

// Substitute replaces every occurrence of every key of vars in template.
// Keys include their braces ("{{theme}}"). Unknown tokens are left verbatim and
// an empty value removes the token. Replacement is a single pass, so a value
// that itself contains a token is never expanded again.
func Substitute(template string, vars map[string]string) string {
	if template == "" || len(vars) == 0 {
		return template
	}

	keys := make([]string, 0, len(vars))
	for key := range vars {
		if key != "" {
			keys = append(keys, key)
		}
	}
	if len(keys) == 0 {
		return template
	}
	// Longest first so a key that prefixes another never shadows it.
	sort.Slice(keys, func(i, j int) bool {
		if len(keys[i]) != len(keys[j]) {
			return len(keys[i]) > len(keys[j])
		}
		return keys[i] < keys[j]
	})

	quoted := make([]string, len(keys))
	for i, key := range keys {
		quoted[i] = regexp.QuoteMeta(key)
	}
	re := regexp.MustCompile(strings.Join(quoted, "|"))

	return re.ReplaceAllStringFunc(template, func(match string) string {
		return vars[match]
	})
}

// Vars builds the placeholder map for a generation context
func Vars(gc *types.GenerationContext) map[string]string {
	vars := map[string]string{
		Key("theme"):        "",
		Key("location"):     "",
		Key("audience"):     "",
		Key("customPrompt"): "",
	}
	if gc == nil {
		return vars
	}

	vars[Key("theme")] = gc.Input.Theme
	vars[Key("location")] = gc.Input.Location
	vars[Key("audience")] = gc.Input.Audience
	vars[Key("customPrompt")] = gc.Input.CustomPrompt

	if gc.Brand != nil {
		g := gc.Brand.Guidelines
		if gc.Guideline != nil {
			g = g.Merge(gc.Guideline.Guidelines)
		}
		vars[Key("brandName")] = gc.Brand.Name
		vars[Key("toneOfVoice")] = g.ToneOfVoice
		vars[Key("keyMessaging")] = g.KeyMessaging
		vars[Key("targetAudience")] = g.TargetAudience
		vars[Key("values")] = g.Values
		vars[Key("imageryStyle")] = g.ImageryStyle
		vars[Key("dosAndDonts")] = g.DosAndDonts
	}
	if gc.Instructions != nil {
		vars[Key("toneRules")] = gc.Instructions.ToneRules
	}

	vars[Key("referenceCopy")] = joinAssets(gc.ReferenceCopy)
	vars[Key("competitorAds")] = joinAssets(gc.CompetitorAds)
	vars[Key("guidelineText")] = joinAssets(gc.Guidelines)

	return vars
}

func joinAssets(assets []types.Asset) string {
	parts := make([]string, 0, len(assets))
	for i, a := range assets {
		if i == maxAssetsInPrompt {
			break
		}
		text := strings.TrimSpace(a.Content)
		if text == "" {
			text = a.Name
		}
		if text != "" {
			parts = append(parts, "- "+text)
		}
	}
	return strings.Join(parts, "\n")
}
