package driven

import (
	"context"

	"github.com/custodia-labs/newsbayes/internal/core/domain"
)

// PostProcessor rewrites document content before vectorisation.
// PostProcessors are chained in a pipeline (e.g., header, footer, quote removal).
type PostProcessor interface {
	// Name returns the processor name for logging and configuration.
	Name() string

	// Process modifies the document content in place.
	Process(ctx context.Context, doc *domain.Document) error
}

// PostProcessorPipeline chains multiple PostProcessors.
type PostProcessorPipeline interface {
	// Process runs the document through all processors in order.
	Process(ctx context.Context, doc *domain.Document) error

	// Len returns the number of processors.
	Len() int
}

// PostProcessorBuilder builds pipelines from processor names.
type PostProcessorBuilder interface {
	// BuildPipeline returns a pipeline running the named processors in the
	// given order. Unknown names return domain.ErrUnsupportedType.
	BuildPipeline(names []string) (PostProcessorPipeline, error)
}
