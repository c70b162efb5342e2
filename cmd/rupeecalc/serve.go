package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os/signal"
	"syscall"

	"github.com/rupeecalc/rupee-calculator/internal/advisor"
	"github.com/rupeecalc/rupee-calculator/internal/config"
	"github.com/rupeecalc/rupee-calculator/internal/logging"
	"github.com/rupeecalc/rupee-calculator/internal/server"
	"github.com/rupeecalc/rupee-calculator/internal/storage"
	"github.com/spf13/cobra"
)

func newServeCmd(root *rootOptions) *cobra.Command {
	var envFile string
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the calculators and advisory chat over HTTP",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := config.LoadAppConfig(envFile)
			if err != nil {
				return err
			}
			if !cmd.Flags().Changed("log-level") {
				root.logLevel = cfg.LogLevel
			}
			logger := logging.Init(cmd.ErrOrStderr(), root.logLevel)
			root.logger = logger

			ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
			defer stop()

			srv, closeAll, err := buildServer(ctx, cfg, root, logger)
			if err != nil {
				return err
			}
			defer closeAll()
			return srv.ListenAndServe(ctx, cfg.Addr())
		},
	}
	cmd.Flags().StringVar(&envFile, "env-file", ".env", "dotenv file loaded before reading the environment")
	return cmd
}

// buildServer opens the store and the advisor named by cfg. The returned
// func releases everything buildServer opened.
func buildServer(ctx context.Context, cfg *config.AppConfig, root *rootOptions, logger *slog.Logger) (*server.Server, func(), error) {
	store, err := storage.Open(ctx, cfg.StoreDriver, cfg.DatabasePath)
	if err != nil {
		return nil, nil, fmt.Errorf("open store: %w", err)
	}
	logger.Info("store ready", "driver", cfg.StoreDriver)

	adv, cacheCloser, err := buildAdvisor(ctx, cfg, logger)
	if err != nil {
		_ = store.Close()
		return nil, nil, err
	}

	srv := server.New(server.Options{
		Store:             store,
		Advisor:           adv,
		Engine:            root.engine(),
		Logger:            logger,
		AllowedOrigins:    cfg.AllowedOrigins,
		RateLimitRPS:      cfg.RateLimitRPS,
		RateLimitBurst:    cfg.RateLimitBurst,
		RequestTimeout:    cfg.RequestTimeout,
		TrustProxyHeaders: cfg.TrustProxyHeaders,
	})
	closeAll := func() {
		srv.Close()
		if cacheCloser != nil {
			if err := cacheCloser.Close(); err != nil {
				logger.Warn("closing advice cache", "error", err)
			}
		}
		if err := store.Close(); err != nil {
			logger.Warn("closing store", "error", err)
		}
	}
	return srv, closeAll, nil
}

// buildAdvisor picks the OpenAI client when a key is configured and the
// offline fallback otherwise, then applies the configured cache.
func buildAdvisor(ctx context.Context, cfg *config.AppConfig, logger *slog.Logger) (advisor.Client, io.Closer, error) {
	var client advisor.Client
	if cfg.OpenAIAPIKey != "" {
		client = advisor.NewOpenAIClient(advisor.OpenAIConfig{
			APIKey:  cfg.OpenAIAPIKey,
			Model:   cfg.OpenAIModel,
			BaseURL: cfg.OpenAIBaseURL,
		})
		logger.Info("advisor ready", "provider", "openai", "model", cfg.OpenAIModel)
	} else {
		client = advisor.NewFallbackClient()
		logger.Warn("OPENAI_API_KEY not set, using offline advice")
	}

	switch cfg.AdviceCache {
	case config.CacheMemory:
		return advisor.NewCachedClient(client, advisor.NewMemoryCache(cfg.AdviceCacheTTL), logger), nil, nil
	case config.CacheRedis:
		rc := advisor.NewRedisCache(cfg.RedisAddr, cfg.AdviceCacheTTL)
		if err := rc.Ping(ctx); err != nil {
			_ = rc.Close()
			return nil, nil, fmt.Errorf("connect to redis at %s: %w", cfg.RedisAddr, err)
		}
		return advisor.NewCachedClient(client, rc, logger), rc, nil
	default:
		return client, nil, nil
	}
}
