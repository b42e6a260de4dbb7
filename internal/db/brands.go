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
// Brand Methods
// -----------------------------------------------------------------------------

const brandColumns = `id, name, primary_color, secondary_color, style_tokens, logo_url, inspiration, guidelines, created_at, updated_at`

func scanBrand(row pgx.Row) (*types.Brand, error) {
	var b types.Brand
	err := row.Scan(&b.ID, &b.Name, &b.PrimaryColor, &b.SecondaryColor, &b.StyleTokens,
		&b.LogoURL, &b.Inspiration, &b.Guidelines, &b.CreatedAt, &b.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return &b, nil
}

// CreateBrand inserts a brand and returns the stored record
func (db *DB) CreateBrand(ctx context.Context, b *types.Brand) (*types.Brand, error) {
	if b.ID == uuid.Nil {
		b.ID = uuid.New()
	}
	created, err := scanBrand(db.pool.QueryRow(ctx,
		`INSERT INTO brands (id, name, primary_color, secondary_color, style_tokens, logo_url, inspiration, guidelines)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		 RETURNING `+brandColumns,
		b.ID, b.Name, b.PrimaryColor, b.SecondaryColor, nonNil(b.StyleTokens), b.LogoURL, nonNil(b.Inspiration), b.Guidelines,
	))
	if err != nil {
		return nil, fmt.Errorf("failed to create brand: %w", err)
	}
	return created, nil
}

// GetBrand retrieves a brand by ID, or nil when it does not exist
func (db *DB) GetBrand(ctx context.Context, id uuid.UUID) (*types.Brand, error) {
	b, err := scanBrand(db.pool.QueryRow(ctx,
		`SELECT `+brandColumns+` FROM brands WHERE id = $1`, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get brand: %w", err)
	}
	return b, nil
}

// ListBrands returns all brands ordered by name
func (db *DB) ListBrands(ctx context.Context) ([]types.Brand, error) {
	rows, err := db.pool.Query(ctx, `SELECT `+brandColumns+` FROM brands ORDER BY name`)
	if err != nil {
		return nil, fmt.Errorf("failed to list brands: %w", err)
	}
	defer rows.Close()

	brands := []types.Brand{}
	for rows.Next() {
		b, err := scanBrand(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan brand: %w", err)
		}
		brands = append(brands, *b)
	}
	return brands, rows.Err()
}

// UpdateBrand replaces the editable fields of a brand
func (db *DB) UpdateBrand(ctx context.Context, b *types.Brand) (*types.Brand, error) {
	updated, err := scanBrand(db.pool.QueryRow(ctx,
		`UPDATE brands
		 SET name = $2, primary_color = $3, secondary_color = $4, style_tokens = $5,
		     logo_url = $6, inspiration = $7, guidelines = $8, updated_at = NOW()
		 WHERE id = $1
		 RETURNING `+brandColumns,
		b.ID, b.Name, b.PrimaryColor, b.SecondaryColor, nonNil(b.StyleTokens), b.LogoURL, nonNil(b.Inspiration), b.Guidelines,
	))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrBrandNotFound
		}
		return nil, fmt.Errorf("failed to update brand: %w", err)
	}
	return updated, nil
}

// DeleteBrand removes a brand and, by cascade, its guideline, instructions and assets
func (db *DB) DeleteBrand(ctx context.Context, id uuid.UUID) error {
	tag, err := db.pool.Exec(ctx, `DELETE FROM brands WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete brand: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return ErrBrandNotFound
	}
	return nil
}

func nonNil(s []string) []string {
	if s == nil {
		return []string{}
	}
	return s
}
