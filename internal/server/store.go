package server

import (
	"context"

	"github.com/google/uuid"

	"github.com/jonathan/brand-ad-studio/internal/types"
)

// Store is the persistence the HTTP API needs. *db.DB implements it.
type Store interface {
	Ping(ctx context.Context) error

	CreateBrand(ctx context.Context, b *types.Brand) (*types.Brand, error)
	GetBrand(ctx context.Context, id uuid.UUID) (*types.Brand, error)
	ListBrands(ctx context.Context) ([]types.Brand, error)
	UpdateBrand(ctx context.Context, b *types.Brand) (*types.Brand, error)
	DeleteBrand(ctx context.Context, id uuid.UUID) error

	GetGuideline(ctx context.Context, brandID uuid.UUID) (*types.BrandGuideline, error)
	SaveGuideline(ctx context.Context, g *types.BrandGuideline) (*types.BrandGuideline, error)
	UpdateGuideline(ctx context.Context, g *types.BrandGuideline) (*types.BrandGuideline, error)
	DeleteGuideline(ctx context.Context, brandID uuid.UUID) error

	GetOrCreateInstructions(ctx context.Context, brandID uuid.UUID) (*types.BrandInstructions, error)
	SaveInstructions(ctx context.Context, in *types.BrandInstructions) (*types.BrandInstructions, error)

	CreateAsset(ctx context.Context, a *types.Asset) (*types.Asset, error)
	ListAssets(ctx context.Context, brandID uuid.UUID, kind types.AssetKind) ([]types.Asset, error)
	GetAsset(ctx context.Context, id uuid.UUID) (*types.Asset, error)
	DeleteAsset(ctx context.Context, id uuid.UUID) error

	CreateAdmin(ctx context.Context, email, name, passwordHash string) (*types.Admin, error)
	GetAdminByEmail(ctx context.Context, email string) (*types.Admin, string, error)
}
