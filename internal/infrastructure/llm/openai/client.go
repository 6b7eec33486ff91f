// Package openai implements the DocumentClassifier port over the OpenAI
// chat completions API. Classification asks for a strict JSON object and
// validates it; field extraction is free-form text keyed by the chosen
// category's template.
package openai

import (
	"context"
	"net/http"
	"strings"
	"time"

	"github.com/antonkarev/doc-classifier/internal/core/domain"
	"github.com/antonkarev/doc-classifier/internal/core/taxonomy"
	"github.com/antonkarev/doc-classifier/internal/infrastructure/resilience"
)

type Client struct {
	baseURL        string
	apiKey         string
	model          string
	maxPromptChars int
	httpClient     *http.Client
	executor       *resilience.Executor
}

type Options struct {
	Timeout            time.Duration
	MaxPromptChars     int
	ResilienceExecutor *resilience.Executor
}

func New(baseURL, apiKey, model string, options Options) *Client {
	timeout := options.Timeout
	if timeout <= 0 {
		timeout = 60 * time.Second
	}

	return &Client{
		baseURL:        strings.TrimRight(baseURL, "/"),
		apiKey:         apiKey,
		model:          model,
		maxPromptChars: options.MaxPromptChars,
		httpClient:     &http.Client{Timeout: timeout},
		executor:       options.ResilienceExecutor,
	}
}

// Classify asks the model for a category and a one-line summary as JSON.
// The reply is schema-checked; a JSON object embedded in surrounding prose
// is salvaged before giving up. The category comes back verbatim, the
// summary capped at 255 characters.
func (c *Client) Classify(ctx context.Context, text string, set *taxonomy.Set) (domain.Classification, error) {
	messages := []chatMessage{
		{Role: "system", Content: classificationSystemPrompt},
		{Role: "user", Content: buildClassificationPrompt(text, set, c.maxPromptChars)},
	}

	content, err := c.chatCompletion(ctx, "openai.classify", messages, true)
	if err != nil {
		return domain.Classification{}, wrapModelError("classify document", err)
	}

	cls, err := parseClassification(content)
	if err != nil {
		return domain.Classification{}, domain.WrapError(domain.ErrMalformedModelOutput, "classify document", err)
	}
	cls.Summary = clipRunes(cls.Summary, maxSummaryChars)
	return cls, nil
}

// ExtractFields runs the category's extraction template against the text.
// The model's reply is unstructured and lands in ExtractedInfo as-is.
func (c *Client) ExtractFields(ctx context.Context, text, category string, set *taxonomy.Set) (domain.ExtractedFields, error) {
	messages := []chatMessage{
		{Role: "system", Content: extractionSystemPrompt},
		{Role: "user", Content: buildExtractionPrompt(text, category, set, c.maxPromptChars)},
	}

	content, err := c.chatCompletion(ctx, "openai.extract_fields", messages, false)
	if err != nil {
		return domain.ExtractedFields{}, wrapModelError("extract fields", err)
	}
	if strings.TrimSpace(content) == "" {
		return domain.ExtractedFields{}, domain.WrapError(domain.ErrMalformedModelOutput, "extract fields", errEmptyReply)
	}

	return domain.ExtractedFields{
		DocumentType:  category,
		ExtractedInfo: strings.TrimSpace(content),
	}, nil
}
