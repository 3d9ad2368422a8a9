package main

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/jonathan/resume-generator/internal/config"
	"github.com/jonathan/resume-generator/internal/llm"
	"github.com/jonathan/resume-generator/internal/logger"
	"github.com/jonathan/resume-generator/internal/pipeline"
	"github.com/jonathan/resume-generator/internal/profile"
	"github.com/jonathan/resume-generator/internal/quota"
	"github.com/jonathan/resume-generator/internal/server"
)

var servePort int

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the REST API server",
	Long:  `Start an HTTP server that exposes the resume generation endpoint.`,
	RunE:  runServe,
}

func init() {
	serveCmd.Flags().IntVar(&servePort, "port", 0, "Port to listen on (overrides PORT)")
	rootCmd.AddCommand(serveCmd)
}

func runServe(cmd *cobra.Command, _ []string) error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}
	if servePort > 0 {
		cfg.Port = servePort
	}

	log := logger.New(cfg.LogLevel, cfg.IsProduction())
	defer func() { _ = log.Sync() }()

	counter, cleanup, err := newCounter(cmd.Context(), cfg, log)
	if err != nil {
		return err
	}
	defer cleanup()
	gate := quota.NewGate(counter, cfg.DailyLimit, cfg.QuotaWindow)

	opts := llm.DefaultOptions()
	opts.Model = cfg.GeminiModel
	client, err := llm.NewGeminiClient(cmd.Context(), cfg.GeminiAPIKey, opts)
	if err != nil {
		return fmt.Errorf("failed to create generation client: %w", err)
	}
	defer func() { _ = client.Close() }()

	profiles, err := profile.NewSource()
	if err != nil {
		return err
	}

	pipe := pipeline.New(profiles, gate, client, cfg.PIN, cfg.GenerationTimeout, log)

	srv := server.New(server.Config{
		Port:       cfg.Port,
		Production: cfg.IsProduction(),
	}, pipe, log)

	return srv.Start()
}

// newCounter selects the quota counter store: Redis when configured,
// otherwise the in-memory counter for single-instance deployments.
func newCounter(ctx context.Context, cfg *config.Config, log *zap.Logger) (quota.Counter, func(), error) {
	if cfg.RedisAddr == "" {
		log.Info("quota counter: in-memory")
		return quota.NewMemoryCounter(), func() {}, nil
	}

	redisCounter := quota.NewRedisCounter(quota.RedisConfig{
		Addr:     cfg.RedisAddr,
		Password: cfg.RedisPassword,
		DB:       cfg.RedisDB,
	})
	if err := redisCounter.Ping(ctx); err != nil {
		return nil, nil, fmt.Errorf("failed to connect to redis: %w", err)
	}

	log.Info("quota counter: redis", zap.String("addr", cfg.RedisAddr))
	return redisCounter, func() { _ = redisCounter.Close() }, nil
}
