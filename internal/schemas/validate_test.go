package schemas

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValidate_AdCopy(t *testing.T) {
	tests := []struct {
		name      string
		json      string
		wantError bool
	}{
		{name: "all fields", json: `{"headline":"h","primaryText":"p","cta":"c"}`},
		{name: "missing cta", json: `{"headline":"h","primaryText":"p"}`},
		{name: "no known field", json: `{"title":"h"}`, wantError: true},
		{name: "numeric headline", json: `{"headline":42,"primaryText":"p","cta":"c"}`, wantError: true},
		{name: "array", json: `["headline"]`, wantError: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := Validate(AdCopy, tt.json)
			if tt.wantError {
				var validationErr *ValidationError
				require.ErrorAs(t, err, &validationErr)
				assert.NotEmpty(t, validationErr.Errors)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestValidate_Guideline(t *testing.T) {
	assert.NoError(t, Validate(Guideline, `{"colors":{"primary":["#FFFFFF"]},"typography":null,"toneOfVoice":"warm"}`))

	err := Validate(Guideline, `{"colors":{"primary":"#FFFFFF"}}`)
	var validationErr *ValidationError
	require.ErrorAs(t, err, &validationErr)
	assert.Equal(t, "colors.primary", validationErr.Errors[0].Field)
}

func TestValidate_UnknownSchema(t *testing.T) {
	err := Validate("nope", `{}`)

	var loadErr *SchemaLoadError
	require.ErrorAs(t, err, &loadErr)
	assert.Contains(t, err.Error(), "nope.schema.json")
}

func TestValidate_MalformedDocument(t *testing.T) {
	assert.Error(t, Validate(AdCopy, `{ invalid json }`))
}

func TestValidateJSONString_Valid(t *testing.T) {
	schemaContent := `{
		"$schema": "http://json-schema.org/draft-07/schema#",
		"type": "object",
		"required": ["name"],
		"properties": {
			"name": {"type": "string"}
		}
	}`

	assert.NoError(t, ValidateJSONString(schemaContent, `{"name": "test"}`))
}

func TestValidateJSONString_Invalid(t *testing.T) {
	schemaContent := `{
		"$schema": "http://json-schema.org/draft-07/schema#",
		"type": "object",
		"required": ["name"],
		"properties": {
			"name": {"type": "string"}
		}
	}`

	err := ValidateJSONString(schemaContent, `{"age": 30}`)
	require.Error(t, err)

	validationErr, ok := err.(*ValidationError)
	require.True(t, ok)
	assert.Greater(t, len(validationErr.Errors), 0)
}

func TestValidationError_Error(t *testing.T) {
	err := &ValidationError{
		Errors: []FieldError{
			{Field: "headline", Message: "Invalid type. Expected: string, given: integer"},
			{Field: "cta", Message: "is required"},
		},
	}

	errorMsg := err.Error()
	assert.Contains(t, errorMsg, "validation failed")
	assert.Contains(t, errorMsg, "headline")
	assert.Contains(t, errorMsg, "cta")
}
