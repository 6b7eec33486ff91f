package ports

import (
	"context"

	"github.com/antonkarev/doc-classifier/internal/core/domain"
	"github.com/antonkarev/doc-classifier/internal/core/taxonomy"
)

// DocumentPipeline is the inbound contract for the staged document flows.
// Validate is pure and never touches the network; the other operations
// call out to the extraction and model vendors.
type DocumentPipeline interface {
	Validate(file *domain.UploadedFile) (domain.FileInfo, error)
	Upload(ctx context.Context, file *domain.UploadedFile) (*domain.UploadResult, error)
	Classify(ctx context.Context, text string, set *taxonomy.Set) (*domain.ClassificationOutcome, error)
	UploadAndClassify(ctx context.Context, file *domain.UploadedFile, set *taxonomy.Set) (*domain.PipelineResult, error)
}
