package driven

import (
	"context"

	"github.com/custodia-labs/newsbayes/internal/core/domain"
)

// CorpusStore caches fetched corpora so the source is only fetched once.
// Backed by SQLite.
type CorpusStore interface {
	// SaveCorpus stores a corpus, replacing any corpus with the same name.
	SaveCorpus(ctx context.Context, corpus *domain.Corpus) error

	// LoadCorpus retrieves a corpus by name.
	// Returns domain.ErrNotFound if it has not been cached.
	LoadCorpus(ctx context.Context, name string) (*domain.Corpus, error)

	// DeleteCorpus removes a cached corpus. Deleting a missing corpus is not an error.
	DeleteCorpus(ctx context.Context, name string) error

	// ListCorpora summarises every cached corpus.
	ListCorpora(ctx context.Context) ([]domain.CorpusInfo, error)
}
