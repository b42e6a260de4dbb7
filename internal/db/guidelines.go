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
// Brand Guideline Methods
// -----------------------------------------------------------------------------
//
// Version bumps are read-then-write without a compare-and-swap, so two
// concurrent writers can both store the same next version.

// GetGuideline retrieves the guideline of a brand, or nil when none was uploaded
func (db *DB) GetGuideline(ctx context.Context, brandID uuid.UUID) (*types.BrandGuideline, error) {
	var g types.BrandGuideline
	err := db.pool.QueryRow(ctx,
		`SELECT brand_id, source_pdf_url, source_object, extracted_text, colors, typography,
		        logo_rules, guidelines, version, created_at, last_updated
		 FROM brand_guidelines WHERE brand_id = $1`,
		brandID,
	).Scan(&g.BrandID, &g.SourcePDFURL, &g.SourceObject, &g.ExtractedText, &g.Colors, &g.Typography,
		&g.LogoRules, &g.Guidelines, &g.Version, &g.CreatedAt, &g.LastUpdated)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get guideline: %w", err)
	}
	return &g, nil
}

// SaveGuideline creates the brand's guideline or replaces it with version+1
func (db *DB) SaveGuideline(ctx context.Context, g *types.BrandGuideline) (*types.BrandGuideline, error) {
	existing, err := db.GetGuideline(ctx, g.BrandID)
	if err != nil {
		return nil, err
	}
	if existing == nil {
		_, err = db.pool.Exec(ctx,
			`INSERT INTO brand_guidelines (brand_id, source_pdf_url, source_object, extracted_text, colors,
			                               typography, logo_rules, guidelines, version)
			 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, 1)`,
			g.BrandID, g.SourcePDFURL, g.SourceObject, g.ExtractedText, g.Colors, g.Typography, g.LogoRules, g.Guidelines,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to create guideline: %w", err)
		}
		return db.GetGuideline(ctx, g.BrandID)
	}

	return db.writeGuideline(ctx, g, existing.Version+1)
}

// UpdateGuideline saves manual edits to an existing guideline with version+1.
// It returns ErrGuidelineNotFound when the brand has no guideline yet.
func (db *DB) UpdateGuideline(ctx context.Context, g *types.BrandGuideline) (*types.BrandGuideline, error) {
	existing, err := db.GetGuideline(ctx, g.BrandID)
	if err != nil {
		return nil, err
	}
	if existing == nil {
		return nil, ErrGuidelineNotFound
	}
	return db.writeGuideline(ctx, g, existing.Version+1)
}

func (db *DB) writeGuideline(ctx context.Context, g *types.BrandGuideline, version int) (*types.BrandGuideline, error) {
	tag, err := db.pool.Exec(ctx,
		`UPDATE brand_guidelines
		 SET source_pdf_url = $2, source_object = $3, extracted_text = $4, colors = $5, typography = $6,
		     logo_rules = $7, guidelines = $8, version = $9, last_updated = NOW()
		 WHERE brand_id = $1`,
		g.BrandID, g.SourcePDFURL, g.SourceObject, g.ExtractedText, g.Colors, g.Typography,
		g.LogoRules, g.Guidelines, version,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to update guideline: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return nil, ErrGuidelineNotFound
	}
	return db.GetGuideline(ctx, g.BrandID)
}

// DeleteGuideline removes a brand's guideline
func (db *DB) DeleteGuideline(ctx context.Context, brandID uuid.UUID) error {
	tag, err := db.pool.Exec(ctx, `DELETE FROM brand_guidelines WHERE brand_id = $1`, brandID)
	if err != nil {
		return fmt.Errorf("failed to delete guideline: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return ErrGuidelineNotFound
	}
	return nil
}
