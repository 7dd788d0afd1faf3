package driving

import (
	"context"

	"github.com/custodia-labs/newsbayes/internal/core/domain"
)

// CorpusService loads the labelled corpus for the pipeline.
type CorpusService interface {
	// Load returns the configured corpus, fetching it on first use.
	// Subset and category filters and content post-processing are applied.
	Load(ctx context.Context) (*domain.Corpus, error)

	// Fetch downloads the corpus from its source and caches it.
	// Without force, an already cached corpus is returned as-is.
	Fetch(ctx context.Context, force bool) (*domain.Corpus, error)

	// Categories returns the category names of the loaded corpus with counts.
	Categories(ctx context.Context) ([]domain.CategoryCount, error)

	// Clear deletes the cached corpus.
	Clear(ctx context.Context) error
}
