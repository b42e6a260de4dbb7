package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/jonathan/brand-ad-studio/internal/adcopy"
	"github.com/jonathan/brand-ad-studio/internal/batch"
	"github.com/jonathan/brand-ad-studio/internal/config"
	"github.com/jonathan/brand-ad-studio/internal/guidelines"
	"github.com/jonathan/brand-ad-studio/internal/imagegen"
	"github.com/jonathan/brand-ad-studio/internal/llm"
	"github.com/jonathan/brand-ad-studio/internal/logger"
	"github.com/jonathan/brand-ad-studio/internal/server"
	"github.com/jonathan/brand-ad-studio/internal/server/ratelimit"
	"github.com/jonathan/brand-ad-studio/internal/storage"
	"github.com/jonathan/brand-ad-studio/internal/uploads"
)

var (
	servePort    int
	serveMigrate bool
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the REST API server",
	Long:  `Start an HTTP server that exposes brand management, guideline upload and ad generation endpoints.`,
	RunE:  runServe,
}

func init() {
	serveCmd.Flags().IntVar(&servePort, "port", 0, "Port to listen on (overrides PORT)")
	serveCmd.Flags().BoolVar(&serveMigrate, "migrate", true, "Apply database migrations before serving")
	rootCmd.AddCommand(serveCmd)
}

func runServe(_ *cobra.Command, _ []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	if servePort != 0 {
		cfg.Port = servePort
	}

	log, err := newLogger(cfg)
	if err != nil {
		return err
	}
	for _, w := range cfg.Warnings() {
		log.Warn(w)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	database, err := connectDB(ctx, cfg, "")
	if err != nil {
		return err
	}
	defer database.Close()
	if serveMigrate {
		if err := database.Migrate(ctx); err != nil {
			return fmt.Errorf("failed to migrate database: %w", err)
		}
	}

	clients, err := newLLMClients(ctx, cfg)
	if err != nil {
		return err
	}
	defer clients.close()

	objects, closeObjects, err := newObjectStore(ctx, cfg, log)
	if err != nil {
		return err
	}
	defer closeObjects()

	tracker, closeTracker, err := newTracker(ctx, cfg, log)
	if err != nil {
		return err
	}
	defer closeTracker()

	jwtConfig, err := config.NewJWTConfig()
	if err != nil {
		return fmt.Errorf("failed to create JWT config: %w", err)
	}
	passwordConfig, err := config.NewPasswordConfig()
	if err != nil {
		return fmt.Errorf("failed to create password config: %w", err)
	}

	var parserClient llm.Client
	if cfg.APIKey != "" {
		parserClient = clients.text
	}
	parser := guidelines.NewParser(parserClient, log)
	images := imagegen.New(imagegen.Options{
		APIKey:      cfg.APIKey,
		Model:       cfg.ImageModel,
		AspectRatio: cfg.ImageAspectRatio,
		Disabled:    cfg.DisableImageGeneration,
		Logger:      log,
	})

	srv, err := server.New(server.Options{
		Port:           cfg.Port,
		AllowedOrigins: cfg.AllowedOrigins,
	}, server.Deps{
		Store:   database,
		Copy:    adcopy.NewGenerator(clients.text, log),
		Images:  images,
		Batch:   batch.New(images, batch.ContextSleep, log),
		Parser:  parser,
		Uploads: uploads.NewService(database, objects, clients.extractor, parser, tracker, log),
		Objects: objects,
		Auth:    server.NewAuthService(database, passwordConfig),
		JWT:     server.NewJWTService(jwtConfig),
		Limiter: ratelimit.NewLimiter(rateLimitConfig(cfg)),
		Logger:  log,
	})
	if err != nil {
		return fmt.Errorf("failed to create server: %w", err)
	}

	return srv.Run(ctx)
}

// newObjectStore uses GCS when a bucket is configured and memory otherwise
func newObjectStore(ctx context.Context, cfg *config.Config, log *logger.Logger) (storage.ObjectStore, func(), error) {
	if cfg.GCSBucket == "" {
		return storage.NewMemoryStore(), func() {}, nil
	}
	gcs, err := storage.NewGCSStore(ctx, storage.GCSOptions{
		Bucket:          cfg.GCSBucket,
		CredentialsFile: cfg.GCSCredentials,
		EmulatorHost:    cfg.GCSEmulatorHost,
	}, log)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to create object store: %w", err)
	}
	return gcs, func() { _ = gcs.Close() }, nil
}

// newTracker uses Redis when REDIS_URL is set and memory otherwise
func newTracker(ctx context.Context, cfg *config.Config, log *logger.Logger) (uploads.Tracker, func(), error) {
	if cfg.RedisURL == "" {
		return uploads.NewMemoryTracker(), func() {}, nil
	}
	client, err := uploads.ConnectRedis(ctx, cfg.RedisURL)
	if err != nil {
		return nil, nil, err
	}
	log.Info("upload progress tracked in redis")
	return uploads.NewRedisTracker(client, uploads.DefaultTTL), func() { _ = client.Close() }, nil
}

// rateLimitConfig starts from the RATE_LIMIT_* environment and applies the
// service-wide rate from the main config.
func rateLimitConfig(cfg *config.Config) *ratelimit.Config {
	rl := ratelimit.LoadConfig()
	if rl.Enabled && cfg.RateLimitRPS > 0 {
		rl.DefaultLimit = int(cfg.RateLimitRPS * 60)
		rl.DefaultWindow = time.Minute
		rl.DefaultBurst = cfg.RateLimitBurst
	}
	return rl
}
