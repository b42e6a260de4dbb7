package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"

	"github.com/jonathan/brand-ad-studio/internal/config"
	"github.com/jonathan/brand-ad-studio/internal/db"
	"github.com/jonathan/brand-ad-studio/internal/llm"
	"github.com/jonathan/brand-ad-studio/internal/logger"
	"github.com/jonathan/brand-ad-studio/internal/types"
)

// loadConfig reads the optional config file, then applies environment overrides
func loadConfig() (*config.Config, error) {
	base := config.Defaults
	if configFile != "" {
		fileCfg, err := config.LoadConfig(configFile)
		if err != nil {
			return nil, err
		}
		base = *fileCfg
	}
	return config.FromEnv(&base)
}

func newLogger(cfg *config.Config) (*logger.Logger, error) {
	return logger.New(cfg.LogMode)
}

// llmClients are the text client and PDF extractor built from one config
type llmClients struct {
	text      llm.Client
	extractor llm.Extractor
	close     func()
}

// newLLMClients builds Gemini clients. Without an API key both fall back to
// llm.Unavailable so every call fails with llm.ErrMissingAPIKey.
func newLLMClients(ctx context.Context, cfg *config.Config) (*llmClients, error) {
	llmCfg := llm.DefaultConfig()
	if cfg.TextModel != "" {
		llmCfg = llmCfg.WithModel(llm.TierAdvanced, cfg.TextModel)
	}

	if cfg.APIKey == "" {
		u := llm.NewUnavailable(nil)
		return &llmClients{text: u, extractor: u, close: func() {}}, nil
	}

	text, err := llm.NewClient(ctx, llmCfg, cfg.APIKey)
	if err != nil {
		return nil, fmt.Errorf("failed to create LLM client: %w", err)
	}
	extractor, err := llm.NewFileExtractor(ctx, llmCfg, cfg.APIKey)
	if err != nil {
		_ = text.Close()
		return nil, fmt.Errorf("failed to create file extractor: %w", err)
	}
	return &llmClients{
		text:      text,
		extractor: extractor,
		close: func() {
			_ = text.Close()
			_ = extractor.Close()
		},
	}, nil
}

// connectDB connects to DATABASE_URL or the given override
func connectDB(ctx context.Context, cfg *config.Config, override string) (*db.DB, error) {
	url := override
	if url == "" {
		url = cfg.DatabaseURL
	}
	if url == "" {
		return nil, fmt.Errorf("database URL is required (set DATABASE_URL or use --db-url)")
	}
	return db.Connect(ctx, url)
}

// readBrandFile loads a brand JSON document
func readBrandFile(path string) (*types.Brand, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read brand file: %w", err)
	}
	var brand types.Brand
	if err := json.Unmarshal(data, &brand); err != nil {
		return nil, fmt.Errorf("failed to parse brand file: %w", err)
	}
	if brand.Name == "" {
		return nil, fmt.Errorf("brand file %s has no name", path)
	}
	return &brand, nil
}

// writeJSON writes v indented to path, or to stdout when path is empty
func writeJSON(path string, v any) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal JSON: %w", err)
	}
	if path == "" {
		_, err = fmt.Fprintln(os.Stdout, string(data))
		return err
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("failed to write output file: %w", err)
	}
	return nil
}
