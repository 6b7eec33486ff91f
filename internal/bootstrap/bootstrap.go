// Package bootstrap assembles the object graph served by cmd/api:
// vendor clients behind one shared circuit-breaker executor, the
// classification pipeline, the taxonomy catalog, and the HTTP router.
package bootstrap

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"

	httpadapter "github.com/antonkarev/doc-classifier/internal/adapters/http"
	"github.com/antonkarev/doc-classifier/internal/config"
	"github.com/antonkarev/doc-classifier/internal/core/taxonomy"
	"github.com/antonkarev/doc-classifier/internal/core/usecase"
	"github.com/antonkarev/doc-classifier/internal/infrastructure/llm/openai"
	"github.com/antonkarev/doc-classifier/internal/infrastructure/parse/llamaparse"
	"github.com/antonkarev/doc-classifier/internal/infrastructure/resilience"
	"github.com/antonkarev/doc-classifier/internal/observability/logging"
	"github.com/antonkarev/doc-classifier/internal/observability/metrics"
)

const serviceName = "doc-classifier"

type App struct {
	Config  config.Config
	Logger  *slog.Logger
	Handler http.Handler
}

func New(ctx context.Context, cfg config.Config) (*App, error) {
	logger := logging.NewJSONLogger(serviceName, cfg.LogLevel).With("user_id", cfg.UserID)
	slog.SetDefault(logger)

	// The API contract ships inside the binary; a malformed document is a
	// packaging bug and must stop the boot, not surface per request.
	if _, err := httpadapter.LoadAPISpec(ctx); err != nil {
		return nil, fmt.Errorf("validate api contract: %w", err)
	}

	catalog, err := taxonomy.LoadCatalog()
	if err != nil {
		return nil, fmt.Errorf("load industry taxonomies: %w", err)
	}

	executor := resilience.NewExecutor(resilience.Config{
		Enabled:      cfg.BreakerEnabled,
		MinRequests:  uint32(cfg.BreakerMinRequests),
		FailureRatio: cfg.BreakerFailureRatio,
		OpenTimeout:  cfg.BreakerOpenTimeout(),
	})

	extractor := llamaparse.New(cfg.LlamaParseBaseURL, cfg.LlamaParseAPIKey, llamaparse.Options{
		Timeout:            cfg.LlamaParseTimeout(),
		PollInterval:       cfg.LlamaParsePollInterval(),
		ResilienceExecutor: executor,
	})
	classifier := openai.New(cfg.OpenAIBaseURL, cfg.OpenAIAPIKey, cfg.OpenAIModel, openai.Options{
		Timeout:            cfg.OpenAITimeout(),
		MaxPromptChars:     cfg.PromptMaxChars,
		ResilienceExecutor: executor,
	})

	pipeline := usecase.NewDocumentPipelineUseCase(extractor, classifier, cfg.MaxUploadBytes())

	serverMetrics := metrics.NewHTTPServerMetrics(serviceName)
	router := httpadapter.NewRouter(pipeline, catalog, executor, serverMetrics, httpadapter.Options{
		ServiceName:    serviceName,
		APIVersion:     "1.0.0",
		AllowedOrigins: cfg.CORSAllowedOrigins,
		MaxUploadBytes: cfg.MaxUploadBytes(),
	})

	return &App{
		Config:  cfg,
		Logger:  logger,
		Handler: router.Handler(),
	}, nil
}
