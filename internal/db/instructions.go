package db

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/jonathan/brand-ad-studio/internal/prompts"
	"github.com/jonathan/brand-ad-studio/internal/types"
)

// -----------------------------------------------------------------------------
// Brand Instructions Methods
// -----------------------------------------------------------------------------

// DefaultInstructions returns the instructions a brand starts with
func DefaultInstructions(brandID uuid.UUID) *types.BrandInstructions {
	return &types.BrandInstructions{
		BrandID:              brandID,
		SystemPrompt:         prompts.MustGet("defaults.json", "system-prompt"),
		UserPromptTemplate:   prompts.MustGet("defaults.json", "user-prompt-template"),
		ToneRules:            prompts.MustGet("defaults.json", "tone-rules"),
		ImageInstructions:    prompts.MustGet("defaults.json", "image-instructions"),
		ImageStyleGuidelines: prompts.MustGet("defaults.json", "image-style-guidelines"),
		Version:              1,
		LastUpdatedBy:        "system",
	}
}

// GetInstructions retrieves a brand's instructions, or nil when none exist
func (db *DB) GetInstructions(ctx context.Context, brandID uuid.UUID) (*types.BrandInstructions, error) {
	var in types.BrandInstructions
	err := db.pool.QueryRow(ctx,
		`SELECT brand_id, system_prompt, user_prompt_template, tone_rules, image_instructions,
		        image_style_guidelines, version, last_updated_by, last_updated
		 FROM brand_instructions WHERE brand_id = $1`,
		brandID,
	).Scan(&in.BrandID, &in.SystemPrompt, &in.UserPromptTemplate, &in.ToneRules, &in.ImageInstructions,
		&in.ImageStyleGuidelines, &in.Version, &in.LastUpdatedBy, &in.LastUpdated)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get instructions: %w", err)
	}
	return &in, nil
}

// GetOrCreateInstructions returns a brand's instructions, creating the defaults on first use
func (db *DB) GetOrCreateInstructions(ctx context.Context, brandID uuid.UUID) (*types.BrandInstructions, error) {
	existing, err := db.GetInstructions(ctx, brandID)
	if err != nil || existing != nil {
		return existing, err
	}

	d := DefaultInstructions(brandID)
	_, err = db.pool.Exec(ctx,
		`INSERT INTO brand_instructions (brand_id, system_prompt, user_prompt_template, tone_rules,
		                                 image_instructions, image_style_guidelines, version, last_updated_by)
		 VALUES ($1, $2, $3, $4, $5, $6, 1, $7)
		 ON CONFLICT (brand_id) DO NOTHING`,
		brandID, d.SystemPrompt, d.UserPromptTemplate, d.ToneRules, d.ImageInstructions, d.ImageStyleGuidelines, d.LastUpdatedBy,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create default instructions: %w", err)
	}
	return db.GetInstructions(ctx, brandID)
}

// SaveInstructions stores the instructions with version+1
func (db *DB) SaveInstructions(ctx context.Context, in *types.BrandInstructions) (*types.BrandInstructions, error) {
	current, err := db.GetOrCreateInstructions(ctx, in.BrandID)
	if err != nil {
		return nil, err
	}
	if current == nil {
		return nil, ErrInstructionsNotFound
	}

	_, err = db.pool.Exec(ctx,
		`UPDATE brand_instructions
		 SET system_prompt = $2, user_prompt_template = $3, tone_rules = $4, image_instructions = $5,
		     image_style_guidelines = $6, version = $7, last_updated_by = $8, last_updated = NOW()
		 WHERE brand_id = $1`,
		in.BrandID, in.SystemPrompt, in.UserPromptTemplate, in.ToneRules, in.ImageInstructions,
		in.ImageStyleGuidelines, current.Version+1, in.LastUpdatedBy,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to save instructions: %w", err)
	}
	return db.GetInstructions(ctx, in.BrandID)
}
