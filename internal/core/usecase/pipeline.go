package usecase

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/antonkarev/doc-classifier/internal/core/domain"
	"github.com/antonkarev/doc-classifier/internal/core/ports"
	"github.com/antonkarev/doc-classifier/internal/core/taxonomy"
)

// DocumentPipelineUseCase sequences the staged flows behind every
// document endpoint: validate, extract, classify, extract fields. Stages
// short-circuit on error except field extraction, which degrades to a
// best-effort payload so a usable classification still reaches the caller.
type DocumentPipelineUseCase struct {
	extractor   ports.TextExtractor
	classifier  ports.DocumentClassifier
	maxFileSize int64
}

func NewDocumentPipelineUseCase(
	extractor ports.TextExtractor,
	classifier ports.DocumentClassifier,
	maxFileSize int64,
) *DocumentPipelineUseCase {
	return &DocumentPipelineUseCase{
		extractor:   extractor,
		classifier:  classifier,
		maxFileSize: maxFileSize,
	}
}

// Validate checks the upload against the extension allow-list and the size
// cap, then stamps size and content hash onto the file info. It makes no
// network calls, so rejected files never reach a vendor.
func (uc *DocumentPipelineUseCase) Validate(file *domain.UploadedFile) (domain.FileInfo, error) {
	if file == nil || file.Filename == "" {
		return domain.FileInfo{}, domain.WrapError(domain.ErrValidation, "validate upload", errors.New("missing filename"))
	}
	if !domain.ExtensionAllowed(file.Filename) {
		return domain.FileInfo{}, domain.WrapError(domain.ErrValidation, "validate upload",
			fmt.Errorf("unsupported file type %q", domain.NormalizeExt(file.Filename)))
	}
	if len(file.Data) == 0 {
		return domain.FileInfo{}, domain.WrapError(domain.ErrValidation, "validate upload", errors.New("empty file"))
	}
	if uc.maxFileSize > 0 && int64(len(file.Data)) > uc.maxFileSize {
		return domain.FileInfo{}, domain.WrapError(domain.ErrValidation, "validate upload",
			fmt.Errorf("file size %d exceeds limit of %d bytes", len(file.Data), uc.maxFileSize))
	}

	file.FileSize = int64(len(file.Data))
	file.FileHash = domain.FileHash(file.Data)
	return file.FileInfo, nil
}

// Upload validates the file and extracts its text. No model call is made.
func (uc *DocumentPipelineUseCase) Upload(ctx context.Context, file *domain.UploadedFile) (*domain.UploadResult, error) {
	info, err := uc.Validate(file)
	if err != nil {
		return nil, err
	}

	extraction, err := uc.extractText(ctx, file)
	if err != nil {
		return nil, err
	}

	return &domain.UploadResult{
		Info:      info,
		Text:      extraction.Text,
		ParseTime: extraction.Elapsed,
	}, nil
}

// Classify runs both model calls against already-extracted text. The
// model's category is mapped onto the taxonomy, landing on Other with a
// warning when it matches nothing. A failed field extraction degrades to
// a "Not specified" payload instead of failing the request.
func (uc *DocumentPipelineUseCase) Classify(ctx context.Context, text string, set *taxonomy.Set) (*domain.ClassificationOutcome, error) {
	if strings.TrimSpace(text) == "" {
		return nil, domain.WrapError(domain.ErrValidation, "classify text", errors.New("empty text"))
	}
	if set == nil {
		set = taxonomy.General()
	}

	start := time.Now()
	cls, err := uc.classifier.Classify(ctx, text, set)
	if err != nil {
		return nil, fmt.Errorf("classify document: %w", err)
	}

	outcome := &domain.ClassificationOutcome{}
	canonical, ok := set.Canonicalize(cls.Category)
	if !ok {
		outcome.Warnings = append(outcome.Warnings,
			fmt.Sprintf("unrecognized category %q, using %s", cls.Category, taxonomy.Other))
	}
	cls.Category = canonical
	outcome.Classification = cls

	fields, err := uc.classifier.ExtractFields(ctx, text, cls.Category, set)
	if err != nil {
		outcome.Warnings = append(outcome.Warnings, fmt.Sprintf("field extraction degraded: %v", err))
		fields = domain.ExtractedFields{DocumentType: cls.Category, ExtractedInfo: "Not specified"}
	}
	outcome.Fields = fields
	outcome.Elapsed = time.Since(start)
	return outcome, nil
}

// UploadAndClassify runs the full chain for one upload.
func (uc *DocumentPipelineUseCase) UploadAndClassify(ctx context.Context, file *domain.UploadedFile, set *taxonomy.Set) (*domain.PipelineResult, error) {
	start := time.Now()

	upload, err := uc.Upload(ctx, file)
	if err != nil {
		return nil, err
	}

	outcome, err := uc.Classify(ctx, upload.Text, set)
	if err != nil {
		return nil, err
	}

	return &domain.PipelineResult{
		Info:       upload.Info,
		TextLength: utf8.RuneCountInString(upload.Text),
		ParseTime:  upload.ParseTime,
		Outcome:    *outcome,
		Total:      time.Since(start),
	}, nil
}

func (uc *DocumentPipelineUseCase) extractText(ctx context.Context, file *domain.UploadedFile) (domain.ExtractionResult, error) {
	extraction, err := uc.extractor.Extract(ctx, file)
	if err != nil {
		return domain.ExtractionResult{}, fmt.Errorf("extract text: %w", err)
	}
	if strings.TrimSpace(extraction.Text) == "" {
		return domain.ExtractionResult{}, domain.WrapError(domain.ErrEmptyDocument, "extract text", errors.New("no text in document"))
	}
	return extraction, nil
}
