package web

import (
	"net/http"
	"time"

	"innovatehub-platform/internal/config"
	red "innovatehub-platform/internal/infra/redis"
	"innovatehub-platform/internal/usecase"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog"
)

type Server struct {
	assistUC     usecase.AssistUseCase
	mediaUC      usecase.MediaUseCase
	transcribeUC usecase.TranscribeUseCase
	researchUC   usecase.ResearchUseCase
	browserUC    usecase.BrowserUseCase
	secrets      usecase.SecretRegistry

	limiter   *red.RateLimiter
	rateCfg   config.RateLimitConfig
	jwtSecret string
	origins   []string
	timeout   time.Duration
	log       *zerolog.Logger
}

func NewServer(
	assistUC usecase.AssistUseCase,
	mediaUC usecase.MediaUseCase,
	transcribeUC usecase.TranscribeUseCase,
	researchUC usecase.ResearchUseCase,
	browserUC usecase.BrowserUseCase,
	secrets usecase.SecretRegistry,
	limiter *red.RateLimiter,
	cfg *config.Config,
	logger *zerolog.Logger,
) *Server {
	return &Server{
		assistUC:     assistUC,
		mediaUC:      mediaUC,
		transcribeUC: transcribeUC,
		researchUC:   researchUC,
		browserUC:    browserUC,
		secrets:      secrets,
		limiter:      limiter,
		rateCfg:      cfg.RateLimit,
		jwtSecret:    cfg.Admin.JWTSecret,
		origins:      cfg.Server.AllowedOrigins,
		timeout:      cfg.Server.RequestTimeout,
		log:          logger,
	}
}

// Handler builds the full route tree with the shared middleware chain.
func (s *Server) Handler() http.Handler {
	r := chi.NewRouter()

	r.Get("/health", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("OK"))
	})
	r.Method(http.MethodGet, "/metrics", promhttp.Handler())

	r.Route("/api/v1", func(r chi.Router) {
		r.Route("/tools", func(r chi.Router) {
			r.Use(s.rateLimitMiddleware)
			r.Post("/marketing-copy", s.handleMarketingCopy)
			r.Post("/code-assistant", s.handleCodeAssistant)
			r.Post("/enhance-image", s.handleEnhanceImage)
			r.Post("/generate-video", s.handleGenerateVideo)
			r.Post("/voice-to-text", s.handleVoiceToText)
			r.Post("/web-research", s.handleWebResearch)
		})

		r.Post("/secrets/check", s.handleCheckSecrets)

		r.Group(func(r chi.Router) {
			r.Use(s.authMiddleware)
			r.Post("/database", s.handleDatabase)
		})
	})

	return Chain(r,
		Recover(s.log),
		TraceID(),
		RequestLog(s.log),
		CORS(s.origins),
		Timeout(s.timeout),
	)
}
