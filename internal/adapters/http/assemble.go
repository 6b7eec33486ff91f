package httpadapter

import (
	"math"
	"time"
	"unicode/utf8"

	"github.com/antonkarev/doc-classifier/internal/core/domain"
)

// previewChars caps the extracted-text preview returned by /upload.
const previewChars = 1000

type uploadResponse struct {
	Status               string          `json:"status"`
	FileInfo             domain.FileInfo `json:"file_info"`
	ExtractedTextPreview string          `json:"extracted_text_preview"`
	TextLength           int             `json:"text_length"`
	Timestamp            string          `json:"timestamp"`
}

type processingPayload struct {
	ParseTimeSeconds    float64 `json:"parse_time_seconds"`
	ClassifyTimeSeconds float64 `json:"classify_time_seconds"`
	TotalTimeSeconds    float64 `json:"total_time_seconds"`
	TextLength          int     `json:"text_length"`
}

type resultsPayload struct {
	Classification string                 `json:"classification"`
	Summary        string                 `json:"summary"`
	ExtractedData  domain.ExtractedFields `json:"extracted_data"`
}

type envelopeResponse struct {
	Status     string            `json:"status"`
	FileInfo   domain.FileInfo   `json:"file_info"`
	Processing processingPayload `json:"processing"`
	Results    resultsPayload    `json:"results"`
	Warnings   []string          `json:"warnings,omitempty"`
	Timestamp  string            `json:"timestamp"`
}

type classifyProcessingPayload struct {
	TextLength          int     `json:"text_length"`
	ClassifyTimeSeconds float64 `json:"classify_time_seconds"`
}

type classifyResponse struct {
	Status     string                    `json:"status"`
	Processing classifyProcessingPayload `json:"processing"`
	Results    resultsPayload            `json:"results"`
	Warnings   []string                  `json:"warnings,omitempty"`
	Timestamp  string                    `json:"timestamp"`
}

type validationPayload struct {
	PredictedCategory string  `json:"predicted_category"`
	ExpectedCategory  *string `json:"expected_category"`
	IsCorrect         *bool   `json:"is_correct"`
}

type validateResponse struct {
	Status     string            `json:"status"`
	Validation validationPayload `json:"validation"`
	Results    resultsPayload    `json:"results"`
	FileInfo   domain.FileInfo   `json:"file_info"`
	Timestamp  string            `json:"timestamp"`
}

// The assemblers below are pure: inputs in, wire payload out, no I/O and
// no clock reads. Handlers supply the timestamp.

func assembleUploadResponse(res *domain.UploadResult, now time.Time) uploadResponse {
	return uploadResponse{
		Status:               "success",
		FileInfo:             res.Info,
		ExtractedTextPreview: textPreview(res.Text),
		TextLength:           utf8.RuneCountInString(res.Text),
		Timestamp:            isoTimestamp(now),
	}
}

func assembleEnvelope(res *domain.PipelineResult, now time.Time) envelopeResponse {
	return envelopeResponse{
		Status:   "success",
		FileInfo: res.Info,
		Processing: processingPayload{
			ParseTimeSeconds:    seconds(res.ParseTime),
			ClassifyTimeSeconds: seconds(res.Outcome.Elapsed),
			TotalTimeSeconds:    seconds(res.Total),
			TextLength:          res.TextLength,
		},
		Results:   assembleResults(&res.Outcome),
		Warnings:  res.Outcome.Warnings,
		Timestamp: isoTimestamp(now),
	}
}

func assembleClassifyResponse(textLength int, outcome *domain.ClassificationOutcome, now time.Time) classifyResponse {
	return classifyResponse{
		Status: "success",
		Processing: classifyProcessingPayload{
			TextLength:          textLength,
			ClassifyTimeSeconds: seconds(outcome.Elapsed),
		},
		Results:   assembleResults(outcome),
		Warnings:  outcome.Warnings,
		Timestamp: isoTimestamp(now),
	}
}

func assembleValidateResponse(res *domain.PipelineResult, expected string, now time.Time) validateResponse {
	validation := validationPayload{
		PredictedCategory: res.Outcome.Classification.Category,
	}
	if expected != "" {
		correct := res.Outcome.Classification.Category == expected
		validation.ExpectedCategory = &expected
		validation.IsCorrect = &correct
	}

	return validateResponse{
		Status:     "success",
		Validation: validation,
		Results:    assembleResults(&res.Outcome),
		FileInfo:   res.Info,
		Timestamp:  isoTimestamp(now),
	}
}

func assembleResults(outcome *domain.ClassificationOutcome) resultsPayload {
	return resultsPayload{
		Classification: outcome.Classification.Category,
		Summary:        outcome.Classification.Summary,
		ExtractedData:  outcome.Fields,
	}
}

func textPreview(text string) string {
	runes := []rune(text)
	if len(runes) <= previewChars {
		return text
	}
	return string(runes[:previewChars]) + "..."
}

// seconds reports a duration as float seconds rounded to the millisecond.
func seconds(d time.Duration) float64 {
	return math.Round(d.Seconds()*1000) / 1000
}

func isoTimestamp(t time.Time) string {
	return t.UTC().Format(time.RFC3339)
}
