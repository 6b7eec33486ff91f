package httpadapter

import (
	"encoding/json"
	"strings"
	"testing"
	"time"

	"github.com/antonkarev/doc-classifier/internal/core/domain"
)

func TestTextPreviewBoundary(t *testing.T) {
	exact := strings.Repeat("a", previewChars)
	if got := textPreview(exact); got != exact {
		t.Fatalf("text at the limit must pass through untouched")
	}

	over := strings.Repeat("a", previewChars+1)
	got := textPreview(over)
	if len([]rune(got)) != previewChars+3 {
		t.Fatalf("expected %d chars, got %d", previewChars+3, len([]rune(got)))
	}
	if !strings.HasSuffix(got, "...") {
		t.Fatalf("expected ellipsis suffix, got %q", got[len(got)-5:])
	}
}

func TestSecondsRoundsToMillisecond(t *testing.T) {
	if got := seconds(1234567 * time.Microsecond); got != 1.235 {
		t.Fatalf("expected 1.235, got %v", got)
	}
	if got := seconds(0); got != 0 {
		t.Fatalf("expected 0, got %v", got)
	}
}

func TestAssembleEnvelopeOmitsEmptyWarnings(t *testing.T) {
	res := &domain.PipelineResult{
		Info:       domain.FileInfo{Filename: "a.pdf", FileSize: 10},
		TextLength: 42,
		ParseTime:  1500 * time.Millisecond,
		Outcome: domain.ClassificationOutcome{
			Classification: domain.Classification{Category: "Legal", Summary: "s"},
			Fields:         domain.ExtractedFields{DocumentType: "Legal", ExtractedInfo: "x"},
			Elapsed:        500 * time.Millisecond,
		},
		Total: 2 * time.Second,
	}

	envelope := assembleEnvelope(res, time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC))
	raw, err := json.Marshal(envelope)
	if err != nil {
		t.Fatalf("marshal envelope: %v", err)
	}
	if strings.Contains(string(raw), "warnings") {
		t.Fatalf("empty warnings must be omitted: %s", raw)
	}
	if !strings.Contains(string(raw), `"timestamp":"2025-06-01T12:00:00Z"`) {
		t.Fatalf("expected ISO timestamp, got %s", raw)
	}
	if envelope.Processing.ParseTimeSeconds != 1.5 {
		t.Fatalf("expected 1.5s parse time, got %v", envelope.Processing.ParseTimeSeconds)
	}
	if envelope.Processing.TotalTimeSeconds != 2 {
		t.Fatalf("expected 2s total, got %v", envelope.Processing.TotalTimeSeconds)
	}
}

func TestAssembleValidateResponseWithoutExpectation(t *testing.T) {
	res := &domain.PipelineResult{
		Outcome: domain.ClassificationOutcome{
			Classification: domain.Classification{Category: "HR"},
		},
	}

	resp := assembleValidateResponse(res, "", time.Now())
	if resp.Validation.ExpectedCategory != nil || resp.Validation.IsCorrect != nil {
		t.Fatal("expected null expectation fields when no category was supplied")
	}

	resp = assembleValidateResponse(res, "Finance", time.Now())
	if resp.Validation.IsCorrect == nil || *resp.Validation.IsCorrect {
		t.Fatal("expected is_correct false for a mismatch")
	}
}
