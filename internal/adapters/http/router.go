// Package httpadapter exposes the document pipeline over HTTP: multipart
// upload endpoints, text classification, taxonomy browsing, and the
// operational surface (health, metrics, openapi, vendor status).
package httpadapter

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/antonkarev/doc-classifier/internal/core/ports"
	"github.com/antonkarev/doc-classifier/internal/core/taxonomy"
	"github.com/antonkarev/doc-classifier/internal/infrastructure/resilience"
	"github.com/antonkarev/doc-classifier/internal/observability/metrics"
)

type Options struct {
	ServiceName    string
	APIVersion     string
	AllowedOrigins []string
	MaxUploadBytes int64
}

type Router struct {
	pipeline ports.DocumentPipeline
	catalog  *taxonomy.Catalog
	executor *resilience.Executor
	metrics  *metrics.HTTPServerMetrics
	opts     Options
}

func NewRouter(
	pipeline ports.DocumentPipeline,
	catalog *taxonomy.Catalog,
	executor *resilience.Executor,
	serverMetrics *metrics.HTTPServerMetrics,
	opts Options,
) *Router {
	if opts.ServiceName == "" {
		opts.ServiceName = "doc-classifier"
	}
	if opts.APIVersion == "" {
		opts.APIVersion = "1.0.0"
	}

	return &Router{
		pipeline: pipeline,
		catalog:  catalog,
		executor: executor,
		metrics:  serverMetrics,
		opts:     opts,
	}
}

func (rt *Router) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("/", rt.root)
	mux.HandleFunc("/health", rt.health)
	mux.HandleFunc("/categories", rt.categories)
	mux.HandleFunc("/industries", rt.industries)
	mux.HandleFunc("/industries/", rt.industryCategories)
	mux.HandleFunc("/upload", rt.uploadDocument)
	mux.HandleFunc("/classify", rt.classifyText)
	mux.HandleFunc("/upload-and-classify", rt.uploadAndClassify)
	mux.HandleFunc("/validate", rt.validateClassification)
	mux.HandleFunc("/test-status", rt.testStatus)
	mux.HandleFunc("/openapi.json", rt.openAPIDocument)
	mux.Handle("/metrics", rt.metrics.Handler())

	var handler http.Handler = mux
	handler = rt.metrics.Middleware(rt.opts.ServiceName, handler)
	handler = accessLogMiddleware(handler)
	handler = requestIDMiddleware(handler)
	handler = corsMiddleware(rt.opts.AllowedOrigins, handler)
	return handler
}

// root doubles as the catch-all: the bare path answers the liveness probe,
// anything else is 404.
func (rt *Router) root(w http.ResponseWriter, r *http.Request) {
	if r.URL.Path != "/" {
		writeError(w, http.StatusNotFound, "not_found", "unknown path "+r.URL.Path)
		return
	}
	if r.Method != http.MethodGet {
		methodNotAllowed(w)
		return
	}

	writeJSON(w, http.StatusOK, map[string]string{
		"status":    "ok",
		"service":   rt.opts.ServiceName,
		"timestamp": isoTimestamp(time.Now()),
	})
}

func (rt *Router) health(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		methodNotAllowed(w)
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"status":               "healthy",
		"timestamp":            isoTimestamp(time.Now()),
		"supported_file_types": supportedFileTypes(),
	})
}

type categoriesResponse struct {
	Industry        string              `json:"industry,omitempty"`
	Categories      []taxonomy.Category `json:"categories"`
	TotalCategories int                 `json:"total_categories"`
}

func (rt *Router) categories(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		methodNotAllowed(w)
		return
	}

	advertised := rt.catalog.Get("").Advertised()
	writeJSON(w, http.StatusOK, categoriesResponse{
		Categories:      advertised,
		TotalCategories: len(advertised),
	})
}

func (rt *Router) industries(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		methodNotAllowed(w)
		return
	}

	names := rt.catalog.Industries()
	writeJSON(w, http.StatusOK, map[string]any{
		"industries": names,
		"total":      len(names),
	})
}

func (rt *Router) industryCategories(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		methodNotAllowed(w)
		return
	}

	rest := strings.TrimPrefix(r.URL.Path, "/industries/")
	name, ok := strings.CutSuffix(rest, "/categories")
	if !ok || name == "" || strings.Contains(name, "/") {
		writeError(w, http.StatusNotFound, "not_found", "unknown path "+r.URL.Path)
		return
	}

	set := rt.catalog.Get(name)
	advertised := set.Advertised()
	writeJSON(w, http.StatusOK, categoriesResponse{
		Industry:        set.Industry,
		Categories:      advertised,
		TotalCategories: len(advertised),
	})
}

type errorResponse struct {
	Status    string `json:"status"`
	Detail    string `json:"detail"`
	ErrorType string `json:"error_type"`
	Timestamp string `json:"timestamp"`
}

func writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(payload)
}

func writeError(w http.ResponseWriter, status int, errType, detail string) {
	writeJSON(w, status, errorResponse{
		Status:    "error",
		Detail:    detail,
		ErrorType: errType,
		Timestamp: isoTimestamp(time.Now()),
	})
}

func (rt *Router) writeDomainError(w http.ResponseWriter, r *http.Request, err error) {
	status := mapErrorToHTTPStatus(err)
	if status >= http.StatusInternalServerError {
		slog.Error("pipeline_error",
			"request_id", requestIDFromContext(r.Context()),
			"error", err,
		)
	}
	writeError(w, status, errorType(err), err.Error())
}

func methodNotAllowed(w http.ResponseWriter) {
	writeError(w, http.StatusMethodNotAllowed, "method_not_allowed", "method not allowed")
}
