package main

import (
	"context"
	"encoding/base64"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/jonathan/brand-ad-studio/internal/batch"
	"github.com/jonathan/brand-ad-studio/internal/imagegen"
	"github.com/jonathan/brand-ad-studio/internal/imageprompt"
	"github.com/jonathan/brand-ad-studio/internal/observability"
	"github.com/jonathan/brand-ad-studio/internal/types"
)

var (
	batchBrandFile   string
	batchPrompt      string
	batchTheme       string
	batchHeadline    string
	batchPrimaryText string
	batchCTA         string
	batchCount       int
	batchOutputDir   string
)

var batchImagesCmd = &cobra.Command{
	Use:   "batch-images",
	Short: "Generate image variations and write them as files",
	Long: `Generate --count image variations one at a time, pausing between requests.
The base prompt is --prompt, or is built from the brand file, theme and ad copy.`,
	RunE: runBatchImages,
}

func init() {
	batchImagesCmd.Flags().StringVar(&batchBrandFile, "brand-file", "", "Path to a brand JSON file")
	batchImagesCmd.Flags().StringVarP(&batchPrompt, "prompt", "p", "", "Explicit base prompt")
	batchImagesCmd.Flags().StringVar(&batchTheme, "theme", "", "Campaign theme")
	batchImagesCmd.Flags().StringVar(&batchHeadline, "headline", "", "Ad headline")
	batchImagesCmd.Flags().StringVar(&batchPrimaryText, "primary-text", "", "Ad primary text")
	batchImagesCmd.Flags().StringVar(&batchCTA, "cta", "", "Ad call to action")
	batchImagesCmd.Flags().IntVarP(&batchCount, "count", "n", 3, "Number of variations (1-10)")
	batchImagesCmd.Flags().StringVarP(&batchOutputDir, "out-dir", "o", ".", "Directory for the image files")

	rootCmd.AddCommand(batchImagesCmd)
}

func runBatchImages(cmd *cobra.Command, _ []string) error {
	if batchCount < 1 || batchCount > 10 {
		return fmt.Errorf("--count must be between 1 and 10, got %d", batchCount)
	}

	in, err := batchInput()
	if err != nil {
		return err
	}

	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	if cfg.DisableImageGeneration {
		return fmt.Errorf("image generation is disabled (DISABLE_IMAGE_GENERATION)")
	}
	if cfg.APIKey == "" {
		return fmt.Errorf("API key is required (set GEMINI_API_KEY environment variable)")
	}
	log, err := newLogger(cfg)
	if err != nil {
		return err
	}
	if err := os.MkdirAll(batchOutputDir, 0o755); err != nil {
		return fmt.Errorf("failed to create output directory: %w", err)
	}

	images := imagegen.New(imagegen.Options{
		APIKey:      cfg.APIKey,
		Model:       cfg.ImageModel,
		AspectRatio: cfg.ImageAspectRatio,
		Logger:      log,
	})
	printer := observability.NewPrinter(os.Stderr)
	_, _ = fmt.Fprintf(os.Stderr, "Generating %d variation(s), about %s\n", batchCount, batch.EstimateDuration(batchCount))

	gen := batch.New(images, batch.ContextSleep, log)
	var results []batch.Image
	if p := strings.TrimSpace(batchPrompt); p != "" {
		results, err = gen.Generate(context.Background(), p, batchCount, printer.PrintProgress)
	} else {
		results, err = gen.GenerateFromCopy(context.Background(), in, batchCount, printer.PrintProgress)
	}
	if err != nil {
		return err
	}

	for _, img := range results {
		path, err := writeDataURL(batchOutputDir, fmt.Sprintf("variation-%02d", img.Index+1), img.DataURL)
		if err != nil {
			return err
		}
		_, _ = fmt.Fprintln(cmd.OutOrStdout(), path)
	}
	if verbose {
		printer.PrintBatch(batchCount, results)
	}
	if len(results) == 0 {
		return fmt.Errorf("no variation succeeded")
	}
	return nil
}

// batchInput collects the prompt inputs from flags. An explicit --prompt needs none.
func batchInput() (imageprompt.Input, error) {
	in := imageprompt.Input{Theme: batchTheme}
	if strings.TrimSpace(batchPrompt) != "" {
		return in, nil
	}
	if batchBrandFile != "" {
		brand, err := readBrandFile(batchBrandFile)
		if err != nil {
			return in, err
		}
		in.Brand = brand
	}
	if batchHeadline != "" || batchPrimaryText != "" || batchCTA != "" {
		in.Copy = &types.AdCopy{Headline: batchHeadline, PrimaryText: batchPrimaryText, CTA: batchCTA}
	}
	if in.Brand == nil && in.Copy == nil && in.Theme == "" {
		return in, fmt.Errorf("provide --prompt, or at least one of --brand-file, --theme or ad copy flags")
	}
	return in, nil
}

// writeDataURL decodes a base64 data URL and writes it as dir/name.<ext>
func writeDataURL(dir, name, dataURL string) (string, error) {
	meta, payload, ok := strings.Cut(strings.TrimPrefix(dataURL, "data:"), ",")
	if !ok || !strings.HasSuffix(meta, ";base64") {
		return "", fmt.Errorf("unsupported image data for %s", name)
	}
	data, err := base64.StdEncoding.DecodeString(payload)
	if err != nil {
		return "", fmt.Errorf("failed to decode %s: %w", name, err)
	}

	ext := ".png"
	switch strings.TrimSuffix(meta, ";base64") {
	case "image/jpeg":
		ext = ".jpg"
	case "image/webp":
		ext = ".webp"
	}

	path := filepath.Join(dir, name+ext)
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return "", fmt.Errorf("failed to write %s: %w", path, err)
	}
	return path, nil
}
