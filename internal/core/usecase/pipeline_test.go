package usecase

import (
	"bytes"
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/antonkarev/doc-classifier/internal/core/domain"
	"github.com/antonkarev/doc-classifier/internal/core/taxonomy"
)

const maxTestFileSize = 50 << 20

type extractorFake struct {
	result domain.ExtractionResult
	err    error
	calls  int
}

func (f *extractorFake) Extract(context.Context, *domain.UploadedFile) (domain.ExtractionResult, error) {
	f.calls++
	if f.err != nil {
		return domain.ExtractionResult{}, f.err
	}
	return f.result, nil
}

type classifierFake struct {
	cls           domain.Classification
	clsErr        error
	fields        domain.ExtractedFields
	fieldsErr     error
	classifyCalls int
	fieldsCalls   int
	fieldsFor     string
}

func (f *classifierFake) Classify(context.Context, string, *taxonomy.Set) (domain.Classification, error) {
	f.classifyCalls++
	if f.clsErr != nil {
		return domain.Classification{}, f.clsErr
	}
	return f.cls, nil
}

func (f *classifierFake) ExtractFields(_ context.Context, _ string, category string, _ *taxonomy.Set) (domain.ExtractedFields, error) {
	f.fieldsCalls++
	f.fieldsFor = category
	if f.fieldsErr != nil {
		return domain.ExtractedFields{}, f.fieldsErr
	}
	return f.fields, nil
}

func pdfUpload(name string, size int) *domain.UploadedFile {
	return &domain.UploadedFile{
		FileInfo: domain.FileInfo{Filename: name, ContentType: "application/pdf"},
		Data:     bytes.Repeat([]byte("a"), size),
	}
}

func TestValidateStampsSizeAndHash(t *testing.T) {
	uc := NewDocumentPipelineUseCase(&extractorFake{}, &classifierFake{}, maxTestFileSize)

	file := pdfUpload("contract.pdf", 1024)
	info, err := uc.Validate(file)
	if err != nil {
		t.Fatalf("Validate() error = %v", err)
	}
	if info.FileSize != 1024 {
		t.Fatalf("FileSize = %d, want 1024", info.FileSize)
	}
	if info.FileHash == "" {
		t.Fatalf("FileHash not computed")
	}

	again, err := uc.Validate(pdfUpload("contract.pdf", 1024))
	if err != nil {
		t.Fatalf("Validate() second call error = %v", err)
	}
	if again.FileHash != info.FileHash {
		t.Fatalf("hash not deterministic: %s vs %s", again.FileHash, info.FileHash)
	}
}

func TestValidateRejects(t *testing.T) {
	tests := []struct {
		name string
		file *domain.UploadedFile
	}{
		{name: "unsupported extension", file: &domain.UploadedFile{
			FileInfo: domain.FileInfo{Filename: "malware.exe"},
			Data:     []byte("MZ"),
		}},
		{name: "no extension", file: &domain.UploadedFile{
			FileInfo: domain.FileInfo{Filename: "README"},
			Data:     []byte("text"),
		}},
		{name: "missing filename", file: &domain.UploadedFile{Data: []byte("x")}},
		{name: "empty file", file: pdfUpload("empty.pdf", 0)},
		{name: "nil file", file: nil},
	}

	uc := NewDocumentPipelineUseCase(&extractorFake{}, &classifierFake{}, maxTestFileSize)
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := uc.Validate(tt.file); !domain.IsKind(err, domain.ErrValidation) {
				t.Fatalf("Validate() error = %v, want %v kind", err, domain.ErrValidation)
			}
		})
	}
}

func TestValidateRejectsOversizedFile(t *testing.T) {
	uc := NewDocumentPipelineUseCase(&extractorFake{}, &classifierFake{}, 512)

	_, err := uc.Validate(pdfUpload("big.pdf", 1024))
	if !domain.IsKind(err, domain.ErrValidation) {
		t.Fatalf("Validate() error = %v, want %v kind", err, domain.ErrValidation)
	}
}

func TestUploadRejectsBeforeExtraction(t *testing.T) {
	extractor := &extractorFake{result: domain.ExtractionResult{Text: "text"}}
	uc := NewDocumentPipelineUseCase(extractor, &classifierFake{}, maxTestFileSize)

	_, err := uc.Upload(context.Background(), &domain.UploadedFile{
		FileInfo: domain.FileInfo{Filename: "shell.exe"},
		Data:     []byte("MZ"),
	})
	if !domain.IsKind(err, domain.ErrValidation) {
		t.Fatalf("Upload() error = %v, want %v kind", err, domain.ErrValidation)
	}
	if extractor.calls != 0 {
		t.Fatalf("extractor called %d times for a rejected file", extractor.calls)
	}
}

func TestUploadReturnsExtractedText(t *testing.T) {
	extractor := &extractorFake{result: domain.ExtractionResult{
		Text:    "Quarterly budget report.",
		Elapsed: 120 * time.Millisecond,
	}}
	uc := NewDocumentPipelineUseCase(extractor, &classifierFake{}, maxTestFileSize)

	res, err := uc.Upload(context.Background(), pdfUpload("budget.pdf", 64))
	if err != nil {
		t.Fatalf("Upload() error = %v", err)
	}
	if res.Text != "Quarterly budget report." {
		t.Fatalf("Text = %q", res.Text)
	}
	if res.ParseTime != 120*time.Millisecond {
		t.Fatalf("ParseTime = %v", res.ParseTime)
	}
	if res.Info.FileSize != 64 {
		t.Fatalf("Info.FileSize = %d, want 64", res.Info.FileSize)
	}
}

func TestUploadMapsEmptyExtraction(t *testing.T) {
	extractor := &extractorFake{result: domain.ExtractionResult{Text: "   \n"}}
	uc := NewDocumentPipelineUseCase(extractor, &classifierFake{}, maxTestFileSize)

	_, err := uc.Upload(context.Background(), pdfUpload("blank.pdf", 16))
	if !domain.IsKind(err, domain.ErrEmptyDocument) {
		t.Fatalf("Upload() error = %v, want %v kind", err, domain.ErrEmptyDocument)
	}
}

func TestClassifyRejectsEmptyTextWithoutModelCall(t *testing.T) {
	classifier := &classifierFake{}
	uc := NewDocumentPipelineUseCase(&extractorFake{}, classifier, maxTestFileSize)

	_, err := uc.Classify(context.Background(), "   ", taxonomy.General())
	if !domain.IsKind(err, domain.ErrValidation) {
		t.Fatalf("Classify() error = %v, want %v kind", err, domain.ErrValidation)
	}
	if classifier.classifyCalls != 0 || classifier.fieldsCalls != 0 {
		t.Fatalf("model called for empty text: %d/%d", classifier.classifyCalls, classifier.fieldsCalls)
	}
}

func TestClassifyCanonicalizesModelCategory(t *testing.T) {
	classifier := &classifierFake{
		cls:    domain.Classification{Category: "finance", Summary: "Q3 budget summary."},
		fields: domain.ExtractedFields{DocumentType: "Finance", ExtractedInfo: "Fiscal year: 2026"},
	}
	uc := NewDocumentPipelineUseCase(&extractorFake{}, classifier, maxTestFileSize)

	outcome, err := uc.Classify(context.Background(), "Revenue increased 15%.", taxonomy.General())
	if err != nil {
		t.Fatalf("Classify() error = %v", err)
	}
	if outcome.Classification.Category != "Finance" {
		t.Fatalf("Category = %q, want Finance", outcome.Classification.Category)
	}
	if len(outcome.Warnings) != 0 {
		t.Fatalf("unexpected warnings: %v", outcome.Warnings)
	}
	if classifier.fieldsFor != "Finance" {
		t.Fatalf("field extraction ran for %q, want canonical Finance", classifier.fieldsFor)
	}
}

func TestClassifyUnrecognizedCategoryFallsBackToOther(t *testing.T) {
	classifier := &classifierFake{
		cls:    domain.Classification{Category: "Gardening", Summary: "A document."},
		fields: domain.ExtractedFields{DocumentType: taxonomy.Other, ExtractedInfo: "n/a"},
	}
	uc := NewDocumentPipelineUseCase(&extractorFake{}, classifier, maxTestFileSize)

	outcome, err := uc.Classify(context.Background(), "some text", taxonomy.General())
	if err != nil {
		t.Fatalf("Classify() error = %v", err)
	}
	if outcome.Classification.Category != taxonomy.Other {
		t.Fatalf("Category = %q, want %s", outcome.Classification.Category, taxonomy.Other)
	}
	if len(outcome.Warnings) != 1 || !strings.Contains(outcome.Warnings[0], "Gardening") {
		t.Fatalf("Warnings = %v, want one naming the rejected label", outcome.Warnings)
	}
	if classifier.fieldsFor != taxonomy.Other {
		t.Fatalf("field extraction ran for %q, want %s", classifier.fieldsFor, taxonomy.Other)
	}
}

func TestClassifyDegradesOnFieldExtractionFailure(t *testing.T) {
	classifier := &classifierFake{
		cls:       domain.Classification{Category: "Legal", Summary: "MSA between two parties."},
		fieldsErr: domain.WrapError(domain.ErrMalformedModelOutput, "extract fields", errors.New("not json")),
	}
	uc := NewDocumentPipelineUseCase(&extractorFake{}, classifier, maxTestFileSize)

	outcome, err := uc.Classify(context.Background(), "Master Services Agreement", taxonomy.General())
	if err != nil {
		t.Fatalf("Classify() error = %v, degraded result expected", err)
	}
	if outcome.Classification.Category != "Legal" {
		t.Fatalf("Category = %q, want Legal", outcome.Classification.Category)
	}
	if outcome.Fields.DocumentType != "Legal" || outcome.Fields.ExtractedInfo != "Not specified" {
		t.Fatalf("Fields = %+v, want best-effort payload", outcome.Fields)
	}
	if len(outcome.Warnings) != 1 {
		t.Fatalf("Warnings = %v, want one degradation entry", outcome.Warnings)
	}
}

func TestClassifyPropagatesClassificationFailure(t *testing.T) {
	classifier := &classifierFake{
		clsErr: domain.WrapError(domain.ErrMalformedModelOutput, "classify", errors.New("no json object")),
	}
	uc := NewDocumentPipelineUseCase(&extractorFake{}, classifier, maxTestFileSize)

	_, err := uc.Classify(context.Background(), "text", taxonomy.General())
	if !domain.IsKind(err, domain.ErrMalformedModelOutput) {
		t.Fatalf("Classify() error = %v, want %v kind", err, domain.ErrMalformedModelOutput)
	}
	if classifier.fieldsCalls != 0 {
		t.Fatalf("field extraction ran after failed classification")
	}
}

func TestUploadAndClassifyFullChain(t *testing.T) {
	extractor := &extractorFake{result: domain.ExtractionResult{
		Text:    "Master Services Agreement between TechCorp Inc. and ServiceProvider LLC. Term: 24 months.",
		Elapsed: 200 * time.Millisecond,
	}}
	classifier := &classifierFake{
		cls:    domain.Classification{Category: "Legal", Summary: "MSA, 24 month term."},
		fields: domain.ExtractedFields{DocumentType: "Legal", ExtractedInfo: "Parties: TechCorp Inc., ServiceProvider LLC"},
	}
	uc := NewDocumentPipelineUseCase(extractor, classifier, maxTestFileSize)

	res, err := uc.UploadAndClassify(context.Background(), pdfUpload("contract.pdf", 1024), taxonomy.General())
	if err != nil {
		t.Fatalf("UploadAndClassify() error = %v", err)
	}
	if res.Info.FileSize != 1024 {
		t.Fatalf("FileSize = %d, want 1024", res.Info.FileSize)
	}
	if res.Outcome.Classification.Category != "Legal" {
		t.Fatalf("Category = %q, want Legal", res.Outcome.Classification.Category)
	}
	if res.TextLength != len(extractor.result.Text) {
		t.Fatalf("TextLength = %d, want %d", res.TextLength, len(extractor.result.Text))
	}
	if res.ParseTime != 200*time.Millisecond {
		t.Fatalf("ParseTime = %v", res.ParseTime)
	}
	if extractor.calls != 1 || classifier.classifyCalls != 1 || classifier.fieldsCalls != 1 {
		t.Fatalf("call counts extract/classify/fields = %d/%d/%d, want 1/1/1",
			extractor.calls, classifier.classifyCalls, classifier.fieldsCalls)
	}
}

func TestUploadAndClassifyShortCircuitsValidation(t *testing.T) {
	extractor := &extractorFake{}
	classifier := &classifierFake{}
	uc := NewDocumentPipelineUseCase(extractor, classifier, maxTestFileSize)

	_, err := uc.UploadAndClassify(context.Background(), &domain.UploadedFile{
		FileInfo: domain.FileInfo{Filename: "script.sh"},
		Data:     []byte("#!/bin/sh"),
	}, taxonomy.General())
	if !domain.IsKind(err, domain.ErrValidation) {
		t.Fatalf("UploadAndClassify() error = %v, want %v kind", err, domain.ErrValidation)
	}
	if extractor.calls != 0 || classifier.classifyCalls != 0 {
		t.Fatalf("vendors reached for invalid upload: extract=%d classify=%d", extractor.calls, classifier.classifyCalls)
	}
}
