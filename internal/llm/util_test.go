package llm

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCleanJSONBlock(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{
			name:     "json code block",
			input:    "```json\n{\"headline\": \"Fresh roast\"}\n```",
			expected: `{"headline": "Fresh roast"}`,
		},
		{
			name:     "generic code block",
			input:    "```\n{\"cta\": \"Order your bag today\"}\n```",
			expected: `{"cta": "Order your bag today"}`,
		},
		{
			name:     "code block with language",
			input:    "```javascript\n{\"key\": \"value\"}\n```",
			expected: `{"key": "value"}`,
		},
		{
			name:     "plain JSON",
			input:    `{"key": "value"}`,
			expected: `{"key": "value"}`,
		},
		{
			name:     "preamble before object",
			input:    "Sure, here is the ad:\n{\"headline\": \"Slow mornings\"}",
			expected: `{"headline": "Slow mornings"}`,
		},
		{
			name:     "preamble before array",
			input:    "Colors found:\n[\"#8B1538\", \"#D4AF37\"]",
			expected: `["#8B1538", "#D4AF37"]`,
		},
		{
			name:     "trailing text",
			input:    "{\"cta\": \"Shop the range\"}\n\nLet me know if you want another version.",
			expected: `{"cta": "Shop the range"}`,
		},
		{
			name:     "escaped quotes",
			input:    `Result: {"headline": "The \"real\" roast"}`,
			expected: `{"headline": "The \"real\" roast"}`,
		},
		{
			name:     "no JSON at all",
			input:    "  just words  ",
			expected: "just words",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, CleanJSONBlock(tt.input))
		})
	}
}

func TestExtractJSONObject(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{"simple", `{"a": 1}`, `{"a": 1}`},
		{"nested", `x {"outer": {"inner": "v"}} y`, `{"outer": {"inner": "v"}}`},
		{"braces inside strings", `{"t": "Hello {name}"}`, `{"t": "Hello {name}"}`},
		{"unbalanced then balanced", `{ broken and then {"ok": true}`, `{"ok": true}`},
		{"empty", "", ""},
		{"no object", "not json", ""},
		{"never closed", `{"a": 1`, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, ExtractJSONObject(tt.input))
		})
	}
}

func TestExtractJSONArray(t *testing.T) {
	assert.Equal(t, `[[1, 2], [3, 4]]`, extractJSONArray(`[[1, 2], [3, 4]] tail`))
	assert.Equal(t, `[{"id": 1}]`, extractJSONArray(`[{"id": 1}]`))
	assert.Equal(t, "", extractJSONArray("not array"))
}
