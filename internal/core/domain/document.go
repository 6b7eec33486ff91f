package domain

import "time"

// FileInfo describes an uploaded file as echoed back to the caller.
type FileInfo struct {
	Filename    string `json:"filename"`
	ContentType string `json:"content_type"`
	FileSize    int64  `json:"file_size"`
	FileHash    string `json:"file_hash"`
}

// UploadedFile is an in-memory upload. It exists for one request only and
// is never persisted.
type UploadedFile struct {
	FileInfo
	Data []byte
}

// ExtractionResult is the plain text produced by the parsing vendor.
type ExtractionResult struct {
	Text    string
	Elapsed time.Duration
}

// Classification is the category decision plus a one-line summary.
type Classification struct {
	Category string `json:"category"`
	Summary  string `json:"summary"`
}

// ExtractedFields is the output of the category-keyed field extraction call.
type ExtractedFields struct {
	DocumentType  string `json:"document_type"`
	ExtractedInfo string `json:"extracted_info"`
}

// ClassificationOutcome bundles both model calls for response assembly.
// Elapsed spans the classification and field-extraction calls together;
// per-call timings are reported through metrics. Warnings is non-empty
// when a step degraded to a best-effort payload instead of failing the
// request.
type ClassificationOutcome struct {
	Classification Classification
	Fields         ExtractedFields
	Warnings       []string
	Elapsed        time.Duration
}

// UploadResult is the outcome of validate plus extract, before any model
// call. Text is the full extracted text; the transport layer decides how
// much of it to echo back.
type UploadResult struct {
	Info      FileInfo
	Text      string
	ParseTime time.Duration
}

// PipelineResult is the outcome of the full upload-and-classify chain.
type PipelineResult struct {
	Info       FileInfo
	TextLength int
	ParseTime  time.Duration
	Outcome    ClassificationOutcome
	Total      time.Duration
}
