package db

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/jonathan/brand-ad-studio/internal/types"
)

// -----------------------------------------------------------------------------
// Brand Asset Methods
// -----------------------------------------------------------------------------

// CreateAsset stores an asset for a brand
func (db *DB) CreateAsset(ctx context.Context, a *types.Asset) (*types.Asset, error) {
	var out types.Asset
	err := db.pool.QueryRow(ctx,
		`INSERT INTO brand_assets (brand_id, kind, name, url, content)
		 VALUES ($1, $2, $3, $4, $5)
		 RETURNING id, brand_id, kind, name, url, content, created_at`,
		a.BrandID, a.Kind, a.Name, a.URL, a.Content,
	).Scan(&out.ID, &out.BrandID, &out.Kind, &out.Name, &out.URL, &out.Content, &out.CreatedAt)
	if err != nil {
		return nil, fmt.Errorf("failed to create asset: %w", err)
	}
	return &out, nil
}

// ListAssets returns a brand's assets of one kind, newest first. An empty kind lists all.
func (db *DB) ListAssets(ctx context.Context, brandID uuid.UUID, kind types.AssetKind) ([]types.Asset, error) {
	query := `SELECT id, brand_id, kind, name, url, content, created_at
	          FROM brand_assets WHERE brand_id = $1`
	args := []any{brandID}
	if kind != "" {
		query += ` AND kind = $2`
		args = append(args, kind)
	}
	query += ` ORDER BY created_at DESC`

	rows, err := db.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list assets: %w", err)
	}
	defer rows.Close()

	assets := []types.Asset{}
	for rows.Next() {
		var a types.Asset
		if err := rows.Scan(&a.ID, &a.BrandID, &a.Kind, &a.Name, &a.URL, &a.Content, &a.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan asset: %w", err)
		}
		assets = append(assets, a)
	}
	return assets, rows.Err()
}

// GetAsset retrieves an asset by ID, or nil when it does not exist
func (db *DB) GetAsset(ctx context.Context, id uuid.UUID) (*types.Asset, error) {
	var a types.Asset
	err := db.pool.QueryRow(ctx,
		`SELECT id, brand_id, kind, name, url, content, created_at FROM brand_assets WHERE id = $1`, id,
	).Scan(&a.ID, &a.BrandID, &a.Kind, &a.Name, &a.URL, &a.Content, &a.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get asset: %w", err)
	}
	return &a, nil
}

// DeleteAsset removes an asset
func (db *DB) DeleteAsset(ctx context.Context, id uuid.UUID) error {
	tag, err := db.pool.Exec(ctx, `DELETE FROM brand_assets WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete asset: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return ErrAssetNotFound
	}
	return nil
}
