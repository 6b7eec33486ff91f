package httpadapter

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/antonkarev/doc-classifier/internal/core/taxonomy"
	"github.com/antonkarev/doc-classifier/internal/core/usecase"
	"github.com/antonkarev/doc-classifier/internal/infrastructure/resilience"
	"github.com/antonkarev/doc-classifier/internal/observability/metrics"
)

func newStatusRouter(t *testing.T, executor *resilience.Executor) http.Handler {
	t.Helper()

	catalog, err := taxonomy.LoadCatalog()
	if err != nil {
		t.Fatalf("LoadCatalog() error = %v", err)
	}

	pipeline := usecase.NewDocumentPipelineUseCase(&extractorFake{}, &classifierFake{}, testMaxUpload)
	return NewRouter(
		pipeline,
		catalog,
		executor,
		metrics.NewHTTPServerMetrics("test"),
		Options{},
	).Handler()
}

func TestTestStatusWithoutTraffic(t *testing.T) {
	handler := newStatusRouter(t, nil)

	req := httptest.NewRequest(http.MethodGet, "/test-status", nil)
	res := httptest.NewRecorder()
	handler.ServeHTTP(res, req)

	if res.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", res.Code)
	}
	payload := decodeBody(t, res)
	if payload["status"] != "healthy" {
		t.Fatalf("expected healthy, got %v", payload["status"])
	}
	if payload["api_version"] != "1.0.0" {
		t.Fatalf("expected api_version 1.0.0, got %v", payload["api_version"])
	}
	if payload["categories_count"] != float64(12) {
		t.Fatalf("expected 12 categories including the sentinel, got %v", payload["categories_count"])
	}
	services := payload["services"].(map[string]any)
	if services["llamaparse"] != "unknown" || services["openai"] != "unknown" {
		t.Fatalf("expected unknown vendors before traffic, got %+v", services)
	}
}

func TestTestStatusReflectsBreakerStates(t *testing.T) {
	executor := resilience.NewExecutor(resilience.Config{
		Enabled:          true,
		MinRequests:      2,
		FailureRatio:     0.5,
		OpenTimeout:      time.Minute,
		HalfOpenMaxCalls: 1,
	})

	ctx := context.Background()
	alwaysFailure := func(error) bool { return true }

	if err := executor.Execute(ctx, "llamaparse.parse", func(context.Context) error { return nil }, alwaysFailure); err != nil {
		t.Fatalf("seed call failed: %v", err)
	}
	for i := 0; i < 3; i++ {
		_ = executor.Execute(ctx, "openai.classify", func(context.Context) error { return errTestBoom }, alwaysFailure)
	}

	handler := newStatusRouter(t, executor)
	req := httptest.NewRequest(http.MethodGet, "/test-status", nil)
	res := httptest.NewRecorder()
	handler.ServeHTTP(res, req)

	payload := decodeBody(t, res)
	services := payload["services"].(map[string]any)
	if services["llamaparse"] != "available" {
		t.Fatalf("expected available llamaparse, got %v", services["llamaparse"])
	}
	if services["openai"] != "unavailable" {
		t.Fatalf("expected unavailable openai, got %v", services["openai"])
	}
	if payload["status"] != "degraded" {
		t.Fatalf("expected degraded overall status, got %v", payload["status"])
	}
}

func TestVendorAvailabilityFolding(t *testing.T) {
	cases := []struct {
		name   string
		states map[string]string
		prefix string
		want   string
	}{
		{name: "no traffic", states: nil, prefix: "openai.", want: "unknown"},
		{name: "closed", states: map[string]string{"openai.classify": "closed"}, prefix: "openai.", want: "available"},
		{name: "half open wins over closed", states: map[string]string{"openai.classify": "closed", "openai.extract_fields": "half-open"}, prefix: "openai.", want: "degraded"},
		{name: "open wins over everything", states: map[string]string{"openai.classify": "half-open", "openai.extract_fields": "open"}, prefix: "openai.", want: "unavailable"},
		{name: "other vendor ignored", states: map[string]string{"llamaparse.parse": "open"}, prefix: "openai.", want: "unknown"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := vendorAvailability(tc.states, tc.prefix); got != tc.want {
				t.Fatalf("expected %q, got %q", tc.want, got)
			}
		})
	}
}
