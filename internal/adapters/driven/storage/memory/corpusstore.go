package memory

import (
	"context"
	"fmt"
	"sort"
	"sync"

	"github.com/custodia-labs/newsbayes/internal/core/domain"
	"github.com/custodia-labs/newsbayes/internal/core/ports/driven"
)

// Ensure CorpusStore implements the interface.
var _ driven.CorpusStore = (*CorpusStore)(nil)

// CorpusStore is an in-memory implementation of driven.CorpusStore.
// Corpora are copied on the way in and out so callers cannot mutate the cache.
type CorpusStore struct {
	mu      sync.RWMutex
	corpora map[string]domain.Corpus
}

// NewCorpusStore creates a new in-memory corpus store.
func NewCorpusStore() *CorpusStore {
	return &CorpusStore{
		corpora: make(map[string]domain.Corpus),
	}
}

// SaveCorpus stores a corpus, replacing any corpus with the same name.
func (s *CorpusStore) SaveCorpus(_ context.Context, corpus *domain.Corpus) error {
	if corpus == nil || corpus.Name == "" {
		return fmt.Errorf("%w: corpus must have a name", domain.ErrInvalidInput)
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.corpora[corpus.Name] = cloneCorpus(corpus)
	return nil
}

// LoadCorpus retrieves a corpus by name.
func (s *CorpusStore) LoadCorpus(_ context.Context, name string) (*domain.Corpus, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	corpus, ok := s.corpora[name]
	if !ok {
		return nil, domain.ErrNotFound
	}
	clone := cloneCorpus(&corpus)
	return &clone, nil
}

// DeleteCorpus removes a corpus.
func (s *CorpusStore) DeleteCorpus(_ context.Context, name string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.corpora, name)
	return nil
}

// ListCorpora summarises every stored corpus, ordered by name.
func (s *CorpusStore) ListCorpora(_ context.Context) ([]domain.CorpusInfo, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	infos := make([]domain.CorpusInfo, 0, len(s.corpora))
	for name, corpus := range s.corpora {
		infos = append(infos, domain.CorpusInfo{
			Name:       name,
			Documents:  len(corpus.Documents),
			Categories: len(corpus.Categories),
			FetchedAt:  corpus.FetchedAt,
		})
	}
	sort.Slice(infos, func(i, j int) bool { return infos[i].Name < infos[j].Name })
	return infos, nil
}

func cloneCorpus(c *domain.Corpus) domain.Corpus {
	clone := *c
	clone.Categories = append([]string(nil), c.Categories...)
	clone.Documents = make([]domain.Document, len(c.Documents))
	for i, doc := range c.Documents {
		if doc.Metadata != nil {
			metadata := make(map[string]any, len(doc.Metadata))
			for k, v := range doc.Metadata {
				metadata[k] = v
			}
			doc.Metadata = metadata
		}
		clone.Documents[i] = doc
	}
	return clone
}
