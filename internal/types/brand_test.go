//nolint:revive // types is a standard Go package name pattern
package types

import (
	"encoding/json"
	"testing"

	"github.com/go-playground/validator/v10"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBrand_Validation(t *testing.T) {
	validate := validator.New()

	tests := []struct {
		name    string
		brand   Brand
		wantErr bool
	}{
		{name: "name only", brand: Brand{Name: "Maison"}},
		{name: "with colors and logo", brand: Brand{Name: "Maison", PrimaryColor: "#8B1538", SecondaryColor: "#fff", LogoURL: "https://cdn.example.com/logo.png"}},
		{name: "missing name", brand: Brand{PrimaryColor: "#8B1538"}, wantErr: true},
		{name: "bad color", brand: Brand{Name: "Maison", PrimaryColor: "burgundy"}, wantErr: true},
		{name: "bad logo url", brand: Brand{Name: "Maison", LogoURL: "logo.png"}, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := validate.Struct(tt.brand)
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestBrandGuidelines_Merge(t *testing.T) {
	own := BrandGuidelines{ToneOfVoice: "Warm"}
	parsed := BrandGuidelines{ToneOfVoice: "Formal", Values: "Craft", LogoRules: "Clear space"}

	merged := own.Merge(parsed)

	assert.Equal(t, "Warm", merged.ToneOfVoice)
	assert.Equal(t, "Craft", merged.Values)
	assert.Equal(t, "Clear space", merged.LogoRules)
	assert.Equal(t, "Warm", own.ToneOfVoice)
	assert.Empty(t, own.Values)
}

func TestBrandGuidelines_IsEmpty(t *testing.T) {
	assert.True(t, BrandGuidelines{}.IsEmpty())
	assert.False(t, BrandGuidelines{Palette: "earth tones"}.IsEmpty())
}

func TestAssetKind_Valid(t *testing.T) {
	for _, k := range []AssetKind{AssetGuideline, AssetCompetitorAd, AssetReferenceCopy, AssetLogo} {
		assert.True(t, k.Valid(), k)
	}
	assert.False(t, AssetKind("video").Valid())
}

func TestUploadStatus_Terminal(t *testing.T) {
	assert.False(t, UploadUploading.Terminal())
	assert.False(t, UploadProcessing.Terminal())
	assert.True(t, UploadComplete.Terminal())
	assert.True(t, UploadError.Terminal())
}

func TestBrandGuideline_Apply(t *testing.T) {
	g := &BrandGuideline{Version: 3, ExtractedText: "source"}
	g.Apply(&ParsedGuideline{
		Colors:     ColorPalette{Primary: []string{"#8B1538"}, All: []string{"#8B1538"}},
		Typography: &Typography{PrimaryFont: "Lato"},
		LogoRules:  "Never stretch",
	})

	assert.Equal(t, 3, g.Version)
	assert.Equal(t, "source", g.ExtractedText)
	assert.True(t, g.Colors.HasColors())
	assert.Equal(t, "Lato", g.Typography.PrimaryFont)

	g.Apply(nil)
	assert.Equal(t, "Never stretch", g.LogoRules)
}

func TestAdCopy_JSONFieldNames(t *testing.T) {
	data, err := json.Marshal(AdCopy{Headline: "H", PrimaryText: "P", CTA: "C"})
	require.NoError(t, err)
	assert.JSONEq(t, `{"headline":"H","primaryText":"P","cta":"C"}`, string(data))
}
