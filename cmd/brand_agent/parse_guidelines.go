package main

import (
	"bytes"
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/jonathan/brand-ad-studio/internal/guidelines"
	"github.com/jonathan/brand-ad-studio/internal/llm"
	"github.com/jonathan/brand-ad-studio/internal/observability"
)

var (
	guidelineInputFile  string
	guidelineOutputFile string
	guidelineNoAI       bool
)

var parseGuidelinesCmd = &cobra.Command{
	Use:   "parse-guidelines",
	Short: "Parse a guideline text or PDF file into structured guideline JSON",
	Long:  "Parse brand guidelines. PDFs are sent through the Gemini File API for text extraction first; text files are parsed directly.",
	RunE:  runParseGuidelines,
}

func init() {
	parseGuidelinesCmd.Flags().StringVarP(&guidelineInputFile, "in", "i", "", "Path to a .txt or .pdf guideline file (required)")
	parseGuidelinesCmd.Flags().StringVarP(&guidelineOutputFile, "out", "o", "", "Output JSON file (stdout when empty)")
	parseGuidelinesCmd.Flags().BoolVar(&guidelineNoAI, "no-ai", false, "Use the pattern parser only")
	_ = parseGuidelinesCmd.MarkFlagRequired("in")

	rootCmd.AddCommand(parseGuidelinesCmd)
}

func runParseGuidelines(_ *cobra.Command, _ []string) error {
	data, err := os.ReadFile(guidelineInputFile)
	if err != nil {
		return fmt.Errorf("failed to read input file: %w", err)
	}

	isPDF := isPDFFile(guidelineInputFile, data)
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	if cfg.APIKey == "" && (isPDF || !guidelineNoAI) {
		if isPDF {
			return fmt.Errorf("PDF extraction requires GEMINI_API_KEY")
		}
		guidelineNoAI = true
	}
	log, err := newLogger(cfg)
	if err != nil {
		return err
	}

	ctx := context.Background()
	var text string
	var client llm.Client
	if !guidelineNoAI || isPDF {
		clients, err := newLLMClients(ctx, cfg)
		if err != nil {
			return err
		}
		defer clients.close()
		if !guidelineNoAI {
			client = clients.text
		}
		if isPDF {
			text, err = clients.extractor.ExtractText(ctx, bytes.NewReader(data), filepath.Base(guidelineInputFile))
			if err != nil {
				return err
			}
		}
	}
	if !isPDF {
		text = string(data)
	}

	parsed := guidelines.NewParser(client, log).Parse(ctx, text)
	if verbose {
		observability.NewPrinter(os.Stderr).PrintGuideline(parsed)
	}
	return writeJSON(guidelineOutputFile, parsed)
}

func isPDFFile(name string, data []byte) bool {
	return strings.EqualFold(filepath.Ext(name), ".pdf") || bytes.HasPrefix(data, []byte("%PDF"))
}
