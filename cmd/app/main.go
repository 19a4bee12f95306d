// File: cmd/app/main.go
package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"innovatehub-platform/internal/config"
	"innovatehub-platform/internal/domain/ports/adapter"
	aiAdapters "innovatehub-platform/internal/infra/adapters/ai"
	mediaAdapters "innovatehub-platform/internal/infra/adapters/media"
	searchAdapters "innovatehub-platform/internal/infra/adapters/search"
	speechAdapters "innovatehub-platform/internal/infra/adapters/speech"
	pg "innovatehub-platform/internal/infra/db/postgres"
	"innovatehub-platform/internal/infra/logging"
	"innovatehub-platform/internal/infra/metrics"
	"innovatehub-platform/internal/infra/poller"
	red "innovatehub-platform/internal/infra/redis"
	"innovatehub-platform/internal/infra/web"
	"innovatehub-platform/internal/infra/worker"
	"innovatehub-platform/internal/usecase"

	"github.com/joho/godotenv"
)

func main() {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// ---- CLI flags ----
	cfgPath := flag.String("config", "config.yaml", "path to YAML config file")
	devMode := flag.Bool("dev", false, "enable developer mode")
	flag.Parse()

	// .env is optional; the process environment wins either way.
	_ = godotenv.Load()

	cfg, err := config.LoadConfig(*cfgPath, *devMode)
	if err != nil {
		log.Fatalf("config: %v", err)
	}

	logger := logging.New(cfg.Log, cfg.Runtime.Dev)
	if cfg.Runtime.Dev {
		logger.Info().Msg("developer mode enabled")
	}

	metrics.MustRegister()

	// ---- Postgres ----
	pool, err := pg.NewPgxPool(ctx, cfg.Database.URL, 10)
	if err != nil {
		logger.Fatal().Err(err).Msg("postgres")
	}
	defer pool.Close()
	catalogRepo := pg.NewCatalogRepo(pool, logger)

	// ---- Redis (optional: without it the registry skips its session cache
	// and the tool rate limiter is disabled) ----
	var (
		secretCache *red.SecretCache
		limiter     *red.RateLimiter
	)
	if cfg.Redis.URL != "" {
		redisClient, err := red.NewClient(ctx, &cfg.Redis)
		if err != nil {
			logger.Fatal().Err(err).Msg("redis")
		}
		defer redisClient.Close()
		secretCache = red.NewSecretCache(redisClient, cfg.Redis.TTL)
		limiter = red.NewRateLimiter(redisClient)
	} else {
		logger.Warn().Msg("redis.url not set; secret cache and rate limiting disabled")
	}

	// ---- Text generation (OpenAI -> Anthropic -> Gemini) ----
	var gen adapter.TextGenerator
	if cfg.AI.OpenAIKey != "" {
		oa, err := aiAdapters.NewOpenAIAdapter(cfg.AI.OpenAIKey, cfg.AI.OpenAIModel)
		if err != nil {
			logger.Fatal().Err(err).Msg("openai adapter")
		}
		gen = oa
		logger.Info().Str("model", cfg.AI.OpenAIModel).Msg("text vendor: openai")
	} else if cfg.AI.AnthropicKey != "" {
		an, err := aiAdapters.NewAnthropicAdapter(cfg.AI.AnthropicKey, cfg.AI.AnthropicModel)
		if err != nil {
			logger.Fatal().Err(err).Msg("anthropic adapter")
		}
		gen = an
		logger.Info().Str("model", cfg.AI.AnthropicModel).Msg("text vendor: anthropic")
	} else if cfg.AI.GeminiKey != "" {
		ge, err := aiAdapters.NewGeminiAdapter(ctx, cfg.AI.GeminiKey, cfg.AI.GeminiModel)
		if err != nil {
			logger.Fatal().Err(err).Msg("gemini adapter")
		}
		gen = ge
		logger.Info().Str("model", cfg.AI.GeminiModel).Msg("text vendor: gemini")
	} else {
		logger.Warn().Msg("no text-generation credential configured; marketing-copy and code-assistant will fail fast")
	}
	if gen != nil {
		gen = aiAdapters.NewLimitedText(gen, cfg.AI.ConcurrentLimit)
	}

	// ---- Async vendors ----
	pollCfg := poller.FromConfig(cfg.Poll)

	var enhancer adapter.ImageEnhancer
	if cfg.Media.ReplicateKey != "" && cfg.Media.ReplicateVersion != "" {
		enhancer, err = mediaAdapters.NewReplicateAdapter(cfg.Media.ReplicateKey, cfg.Media.ReplicateVersion, pollCfg, logger)
		if err != nil {
			logger.Fatal().Err(err).Msg("replicate adapter")
		}
	}

	var video adapter.VideoGenerator
	if cfg.Media.RunwayKey != "" {
		video, err = mediaAdapters.NewRunwayAdapter(cfg.Media.RunwayKey, cfg.Media.RunwayModel)
		if err != nil {
			logger.Fatal().Err(err).Msg("runway adapter")
		}
	}

	var transcriber adapter.Transcriber
	if cfg.Media.AssemblyAIKey != "" {
		transcriber, err = speechAdapters.NewAssemblyAIAdapter(cfg.Media.AssemblyAIKey, pollCfg, logger)
		if err != nil {
			logger.Fatal().Err(err).Msg("assemblyai adapter")
		}
	}

	var searcher adapter.WebSearcher
	if cfg.Media.TavilyKey != "" {
		searcher, err = searchAdapters.NewTavilyAdapter(cfg.Media.TavilyKey)
		if err != nil {
			logger.Fatal().Err(err).Msg("tavily adapter")
		}
	}

	// ---- Worker pool for submit+poll pipelines ----
	pool2 := worker.NewPool(cfg.Jobs.Workers, cfg.Jobs.Queue, logger)
	pool2.Start(ctx)
	defer pool2.Stop()

	// ---- Use cases ----
	assistUC := usecase.NewAssistUseCase(gen, logger)
	mediaUC := usecase.NewMediaUseCase(enhancer, video, pool2, logger)
	transcribeUC := usecase.NewTranscribeUseCase(transcriber, pool2, logger)
	researchUC := usecase.NewResearchUseCase(searcher, logger)
	browserUC := usecase.NewBrowserUseCase(catalogRepo, logger)

	var snapshotCache usecase.SecretSnapshotCache
	if secretCache != nil {
		snapshotCache = secretCache
	}
	secrets := usecase.NewSecretRegistry(cfg.Secrets.Manifest, os.Getenv, snapshotCache, logger)

	// ---- HTTP server ----
	srv := web.NewServer(assistUC, mediaUC, transcribeUC, researchUC, browserUC, secrets, limiter, cfg, logger)
	server := &http.Server{
		Addr:    fmt.Sprintf(":%d", cfg.Server.Port),
		Handler: srv.Handler(),
	}
	go func() {
		logger.Info().Str("addr", server.Addr).Msg("http server listening")
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Error().Err(err).Msg("http server stopped")
		}
	}()

	// ---- Graceful shutdown ----
	sigc := make(chan os.Signal, 1)
	signal.Notify(sigc, syscall.SIGINT, syscall.SIGTERM)
	<-sigc
	logger.Info().Msg("shutdown requested")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		logger.Error().Err(err).Msg("http shutdown")
	}
	cancel()
}
