package ports

import (
	"context"

	"github.com/antonkarev/doc-classifier/internal/core/domain"
	"github.com/antonkarev/doc-classifier/internal/core/taxonomy"
)

// TextExtractor turns an uploaded document into plain text via the
// external parsing service.
type TextExtractor interface {
	Extract(ctx context.Context, file *domain.UploadedFile) (domain.ExtractionResult, error)
}

// DocumentClassifier wraps the external model. Classify picks a category
// from the given taxonomy and writes a short summary; ExtractFields runs
// the category-specific extraction prompt against the same text. Classify
// returns the model's category verbatim; mapping it onto the taxonomy is
// the caller's job.
type DocumentClassifier interface {
	Classify(ctx context.Context, text string, set *taxonomy.Set) (domain.Classification, error)
	ExtractFields(ctx context.Context, text, category string, set *taxonomy.Set) (domain.ExtractedFields, error)
}
