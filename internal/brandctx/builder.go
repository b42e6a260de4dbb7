// Package brandctx assembles the per-request GenerationContext from stored brand data.
package brandctx

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"

	"github.com/jonathan/brand-ad-studio/internal/db"
	"github.com/jonathan/brand-ad-studio/internal/prompts"
	"github.com/jonathan/brand-ad-studio/internal/types"
)

// Store is the asset store the builder reads from
type Store interface {
	GetBrand(ctx context.Context, id uuid.UUID) (*types.Brand, error)
	GetOrCreateInstructions(ctx context.Context, brandID uuid.UUID) (*types.BrandInstructions, error)
	GetGuideline(ctx context.Context, brandID uuid.UUID) (*types.BrandGuideline, error)
	ListAssets(ctx context.Context, brandID uuid.UUID, kind types.AssetKind) ([]types.Asset, error)
}

// Builder loads everything one generation call needs
type Builder struct {
	store Store
}

// NewBuilder creates a builder over store
func NewBuilder(store Store) *Builder {
	return &Builder{store: store}
}

// Build loads the brand, its instructions (created with defaults when absent),
// its parsed guideline and the four asset lists. The asset lists are read concurrently.
func (b *Builder) Build(ctx context.Context, brandID uuid.UUID, input types.UserInput) (*types.GenerationContext, error) {
	brand, err := b.store.GetBrand(ctx, brandID)
	if err != nil {
		return nil, fmt.Errorf("failed to load brand: %w", err)
	}
	if brand == nil {
		return nil, db.ErrBrandNotFound
	}

	gc := &types.GenerationContext{Brand: brand, Input: input}

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		in, err := b.store.GetOrCreateInstructions(gctx, brandID)
		if err != nil {
			return fmt.Errorf("failed to resolve instructions: %w", err)
		}
		gc.Instructions = in
		return nil
	})
	g.Go(func() error {
		guideline, err := b.store.GetGuideline(gctx, brandID)
		if err != nil {
			return fmt.Errorf("failed to load guideline: %w", err)
		}
		gc.Guideline = guideline
		return nil
	})

	lists := map[types.AssetKind]*[]types.Asset{
		types.AssetGuideline:     &gc.Guidelines,
		types.AssetCompetitorAd:  &gc.CompetitorAds,
		types.AssetReferenceCopy: &gc.ReferenceCopy,
		types.AssetLogo:          &gc.Logos,
	}
	for kind, dst := range lists {
		g.Go(func() error {
			assets, err := b.store.ListAssets(gctx, brandID, kind)
			if err != nil {
				return fmt.Errorf("failed to list %s assets: %w", kind, err)
			}
			if assets == nil {
				assets = []types.Asset{}
			}
			*dst = assets
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}
	return gc, nil
}

// FromBrand builds a context for a brand that is not stored, using default instructions
func FromBrand(brand *types.Brand, input types.UserInput) *types.GenerationContext {
	return &types.GenerationContext{
		Brand:         brand,
		Instructions:  db.DefaultInstructions(brand.ID),
		Guidelines:    []types.Asset{},
		CompetitorAds: []types.Asset{},
		ReferenceCopy: []types.Asset{},
		Logos:         []types.Asset{},
		Input:         input,
	}
}

// ResolveUserPrompt substitutes the context variables into prompt, or into the
// brand's user-prompt template when prompt is blank.
func ResolveUserPrompt(gc *types.GenerationContext, prompt string) string {
	template := strings.TrimSpace(prompt)
	if template == "" && gc != nil && gc.Instructions != nil {
		template = gc.Instructions.UserPromptTemplate
	}
	return strings.TrimSpace(prompts.Substitute(template, prompts.Vars(gc)))
}
