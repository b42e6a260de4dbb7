package types

import (
	"time"

	"github.com/google/uuid"
)

// AssetKind classifies a stored brand asset
type AssetKind string

// Asset kinds, one per list in a GenerationContext
const (
	AssetGuideline     AssetKind = "guideline"
	AssetCompetitorAd  AssetKind = "competitor_ad"
	AssetReferenceCopy AssetKind = "reference_copy"
	AssetLogo          AssetKind = "logo"
)

// Valid reports whether k is a known asset kind
func (k AssetKind) Valid() bool {
	switch k {
	case AssetGuideline, AssetCompetitorAd, AssetReferenceCopy, AssetLogo:
		return true
	}
	return false
}

// Asset is a stored brand asset. Content holds extracted text when the asset is textual.
type Asset struct {
	ID        uuid.UUID `json:"id"`
	BrandID   uuid.UUID `json:"brand_id"`
	Kind      AssetKind `json:"kind"`
	Name      string    `json:"name"`
	URL       string    `json:"url,omitempty"`
	Content   string    `json:"content,omitempty"`
	CreatedAt time.Time `json:"created_at"`
}

// CreateAssetRequest is the body of an asset creation. ContentType "text/html"
// makes the server reduce Content to plain text first.
type CreateAssetRequest struct {
	Kind        AssetKind `json:"kind" validate:"required,oneof=guideline competitor_ad reference_copy logo"`
	Name        string    `json:"name" validate:"required,max=200"`
	URL         string    `json:"url,omitempty" validate:"omitempty,url"`
	Content     string    `json:"content,omitempty"`
	ContentType string    `json:"content_type,omitempty"`
}
