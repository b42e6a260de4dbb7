package main

import (
	"context"
	"fmt"
	"os"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"github.com/jonathan/brand-ad-studio/internal/adcopy"
	"github.com/jonathan/brand-ad-studio/internal/brandctx"
	"github.com/jonathan/brand-ad-studio/internal/config"
	"github.com/jonathan/brand-ad-studio/internal/observability"
	"github.com/jonathan/brand-ad-studio/internal/types"
)

var (
	copyBrandFile   string
	copyBrandID     string
	copyDatabaseURL string
	copyTask        string
	copyPrompt      string
	copyTheme       string
	copyLocation    string
	copyAudience    string
	copyOutputFile  string
)

var generateCopyCmd = &cobra.Command{
	Use:   "generate-copy",
	Short: "Generate ad copy, marketing copy or an email for a brand",
	Long:  "Generate text for a brand loaded from a JSON file (--brand-file) or from the database (--brand-id).",
	RunE:  runGenerateCopy,
}

func init() {
	generateCopyCmd.Flags().StringVar(&copyBrandFile, "brand-file", "", "Path to a brand JSON file")
	generateCopyCmd.Flags().StringVar(&copyBrandID, "brand-id", "", "Brand ID to load from the database")
	generateCopyCmd.Flags().StringVar(&copyDatabaseURL, "db-url", "", "Database URL (overrides DATABASE_URL)")
	generateCopyCmd.Flags().StringVarP(&copyTask, "task", "t", string(types.TaskAd), "Task type: ad, copy or email")
	generateCopyCmd.Flags().StringVarP(&copyPrompt, "prompt", "p", "", "Request text; the brand's prompt template is used when empty")
	generateCopyCmd.Flags().StringVar(&copyTheme, "theme", "", "Campaign theme")
	generateCopyCmd.Flags().StringVar(&copyLocation, "location", "", "Target location")
	generateCopyCmd.Flags().StringVar(&copyAudience, "audience", "", "Target audience")
	generateCopyCmd.Flags().StringVarP(&copyOutputFile, "out", "o", "", "Output JSON file (stdout when empty)")
	generateCopyCmd.MarkFlagsOneRequired("brand-file", "brand-id")
	generateCopyCmd.MarkFlagsMutuallyExclusive("brand-file", "brand-id")

	rootCmd.AddCommand(generateCopyCmd)
}

func runGenerateCopy(_ *cobra.Command, _ []string) error {
	task := types.TaskType(copyTask)
	switch task {
	case types.TaskAd, types.TaskCopy, types.TaskEmail:
	default:
		return fmt.Errorf("%w: %q", adcopy.ErrUnknownTask, copyTask)
	}

	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	if cfg.APIKey == "" {
		return fmt.Errorf("API key is required (set GEMINI_API_KEY environment variable)")
	}
	log, err := newLogger(cfg)
	if err != nil {
		return err
	}

	ctx := context.Background()
	input := types.UserInput{Theme: copyTheme, Location: copyLocation, Audience: copyAudience}
	gc, err := loadGenerationContext(ctx, cfg, input)
	if err != nil {
		return err
	}

	clients, err := newLLMClients(ctx, cfg)
	if err != nil {
		return err
	}
	defer clients.close()

	gen := adcopy.NewGenerator(clients.text, log)
	if verbose {
		gen.OnTransition = func(state adcopy.State, attempt int) {
			_, _ = fmt.Fprintf(os.Stderr, "  attempt %d: %s\n", attempt, state)
		}
	}

	result, err := gen.Generate(ctx, gc, task, brandctx.ResolveUserPrompt(gc, copyPrompt))
	if err != nil {
		return err
	}
	if verbose {
		observability.NewPrinter(os.Stderr).PrintAdResult(result)
	}
	return writeJSON(copyOutputFile, result)
}

// loadGenerationContext builds the context from a brand file or from stored brand data
func loadGenerationContext(ctx context.Context, cfg *config.Config, input types.UserInput) (*types.GenerationContext, error) {
	if copyBrandFile != "" {
		brand, err := readBrandFile(copyBrandFile)
		if err != nil {
			return nil, err
		}
		return brandctx.FromBrand(brand, input), nil
	}

	brandID, err := uuid.Parse(copyBrandID)
	if err != nil {
		return nil, fmt.Errorf("invalid brand ID format: %w", err)
	}
	database, err := connectDB(ctx, cfg, copyDatabaseURL)
	if err != nil {
		return nil, err
	}
	defer database.Close()

	return brandctx.NewBuilder(database).Build(ctx, brandID, input)
}
