// Package llamaparse implements the TextExtractor port against the
// LlamaParse REST API: upload the document, poll the parse job, fetch the
// text result. Polling is paced client-side and bounded by the request
// context.
package llamaparse

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"golang.org/x/time/rate"

	"github.com/antonkarev/doc-classifier/internal/core/domain"
	"github.com/antonkarev/doc-classifier/internal/infrastructure/resilience"
)

const (
	jobSuccess  = "SUCCESS"
	jobError    = "ERROR"
	jobCanceled = "CANCELED"
)

type Client struct {
	baseURL    string
	apiKey     string
	httpClient *http.Client
	executor   *resilience.Executor
	poll       *rate.Limiter
}

type Options struct {
	Timeout            time.Duration
	PollInterval       time.Duration
	ResilienceExecutor *resilience.Executor
}

func New(baseURL, apiKey string, options Options) *Client {
	timeout := options.Timeout
	if timeout <= 0 {
		timeout = 120 * time.Second
	}
	pollInterval := options.PollInterval
	if pollInterval <= 0 {
		pollInterval = time.Second
	}

	return &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		apiKey:     apiKey,
		httpClient: &http.Client{Timeout: timeout},
		executor:   options.ResilienceExecutor,
		poll:       rate.NewLimiter(rate.Every(pollInterval), 1),
	}
}

// Extract runs the full upload, poll, fetch sequence and returns the
// extracted text with elapsed wall-clock time.
func (c *Client) Extract(ctx context.Context, file *domain.UploadedFile) (domain.ExtractionResult, error) {
	start := time.Now()

	var text string
	call := func(ctx context.Context) error {
		jobID, err := c.uploadFile(ctx, file)
		if err != nil {
			return err
		}
		if err := c.awaitJob(ctx, jobID); err != nil {
			return err
		}
		text, err = c.fetchText(ctx, jobID)
		return err
	}

	var err error
	if c.executor != nil {
		err = c.executor.Execute(ctx, "llamaparse.parse", call, isParseFailure)
	} else {
		err = call(ctx)
	}
	if err != nil {
		return domain.ExtractionResult{}, wrapParseError("parse document", err)
	}

	if strings.TrimSpace(text) == "" {
		return domain.ExtractionResult{}, domain.WrapError(domain.ErrEmptyDocument, "parse document", errors.New("job produced no text"))
	}
	return domain.ExtractionResult{Text: text, Elapsed: time.Since(start)}, nil
}

func (c *Client) awaitJob(ctx context.Context, jobID string) error {
	for {
		// rate.Wait fails early when the next slot cannot fit the context
		// deadline; surface that as the deadline itself.
		if err := c.poll.Wait(ctx); err != nil {
			if ctxErr := ctx.Err(); ctxErr != nil {
				return ctxErr
			}
			return fmt.Errorf("%w: %v", context.DeadlineExceeded, err)
		}

		status, err := c.jobStatus(ctx, jobID)
		if err != nil {
			return err
		}
		switch status {
		case jobSuccess:
			return nil
		case jobError, jobCanceled:
			return fmt.Errorf("parse job %s ended with status %s", jobID, status)
		}
	}
}
