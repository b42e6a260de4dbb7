// Package batch generates image variations one at a time with a fixed delay between requests.
package batch

import (
	"context"
	"time"

	"github.com/jonathan/brand-ad-studio/internal/imagegen"
	"github.com/jonathan/brand-ad-studio/internal/imageprompt"
	"github.com/jonathan/brand-ad-studio/internal/logger"
)

// Pacing used for planning and between requests
const (
	InterRequestDelay  = 2 * time.Second
	AvgPerImageLatency = 15 * time.Second
)

// ProgressFunc is called once per attempted variation, failures included
type ProgressFunc func(current, total int)

// Sleeper waits for d or until ctx is done
type Sleeper func(ctx context.Context, d time.Duration) error

// ContextSleep is the wall-clock Sleeper
func ContextSleep(ctx context.Context, d time.Duration) error {
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-t.C:
		return nil
	}
}

// Image is one successfully generated variation
type Image struct {
	Index   int    `json:"index"`
	DataURL string `json:"data_url"`
	Prompt  string `json:"prompt"`
}

// Generator requests variations sequentially from an image generator
type Generator struct {
	images imagegen.Generator
	sleep  Sleeper
	delay  time.Duration
	log    *logger.Logger
}

// New creates a batch generator. A nil sleep uses ContextSleep.
func New(images imagegen.Generator, sleep Sleeper, log *logger.Logger) *Generator {
	if sleep == nil {
		sleep = ContextSleep
	}
	if log == nil {
		log = logger.Nop()
	}
	return &Generator{images: images, sleep: sleep, delay: InterRequestDelay, log: log}
}

// Generate requests n variations of basePrompt. Failed items are logged and
// skipped, so the result holds between 0 and n images. The context is only
// checked between iterations; a cancelled batch returns what it has so far.
func (g *Generator) Generate(ctx context.Context, basePrompt string, n int, onProgress ProgressFunc) ([]Image, error) {
	if n <= 0 {
		return []Image{}, nil
	}
	results := make([]Image, 0, n)
	for i := 0; i < n; i++ {
		prompt := imageprompt.WithVariation(basePrompt, i)

		images, err := g.images.Generate(ctx, prompt)
		switch {
		case err != nil:
			g.log.Warn("variation failed", "index", i+1, "total", n, "error", err)
		case len(images) == 0:
			g.log.Warn("variation returned no image", "index", i+1, "total", n)
		default:
			results = append(results, Image{Index: i, DataURL: images[0], Prompt: prompt})
		}

		if onProgress != nil {
			onProgress(i+1, n)
		}

		if i < n-1 {
			if err := g.sleep(ctx, g.delay); err != nil {
				return results, err
			}
		}
	}
	return results, nil
}

// GenerateFromCopy builds the base prompt from theme, brand and copy, then generates n variations
func (g *Generator) GenerateFromCopy(ctx context.Context, in imageprompt.Input, n int, onProgress ProgressFunc) ([]Image, error) {
	return g.Generate(ctx, imageprompt.Build(in), n, onProgress)
}

// EstimateDuration is the planning estimate for n images, not a measurement
func EstimateDuration(n int) time.Duration {
	if n <= 0 {
		return 0
	}
	return AvgPerImageLatency*time.Duration(n) + InterRequestDelay*time.Duration(n-1)
}
