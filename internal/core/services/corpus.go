package services

import (
	"context"
	"errors"
	"fmt"
	"slices"
	"time"

	"github.com/custodia-labs/newsbayes/internal/core/domain"
	"github.com/custodia-labs/newsbayes/internal/core/ports/driven"
	"github.com/custodia-labs/newsbayes/internal/core/ports/driving"
	"github.com/custodia-labs/newsbayes/internal/logger"
)

// Ensure CorpusService implements the interface.
var _ driving.CorpusService = (*CorpusService)(nil)

// CorpusService fetches, caches and selects the labelled corpus.
type CorpusService struct {
	factory     driven.ConnectorFactory
	normalisers driven.NormaliserRegistry
	processors  driven.PostProcessorBuilder
	store       driven.CorpusStore
	settings    domain.CorpusSettings
	now         func() time.Time
}

// NewCorpusService creates a corpus service for the given corpus settings.
func NewCorpusService(
	factory driven.ConnectorFactory,
	normalisers driven.NormaliserRegistry,
	processors driven.PostProcessorBuilder,
	store driven.CorpusStore,
	settings domain.CorpusSettings,
) *CorpusService {
	return &CorpusService{
		factory:     factory,
		normalisers: normalisers,
		processors:  processors,
		store:       store,
		settings:    settings,
		now:         time.Now,
	}
}

// Name returns the cache key of the configured source.
// Each source location is cached separately.
func (s *CorpusService) Name() string {
	switch s.settings.Source {
	case domain.SourceFilesystem:
		return string(s.settings.Source) + ":" + s.settings.Path
	default:
		return string(s.settings.Source) + ":" + s.settings.URL
	}
}

// Load returns the configured selection of the corpus.
// The full corpus is fetched on first use; the subset and category filters,
// relabelling and post-processing are applied to a copy on every call.
func (s *CorpusService) Load(ctx context.Context) (*domain.Corpus, error) {
	full, err := s.Fetch(ctx, false)
	if err != nil {
		return nil, err
	}

	done := logger.Stage("Select corpus")
	defer done()

	docs, err := s.selectDocuments(full)
	if err != nil {
		return nil, err
	}
	if len(docs) == 0 {
		return nil, fmt.Errorf("%w: no documents in subset %q for categories %v",
			domain.ErrEmptyCorpus, s.settings.Subset, s.settings.Categories)
	}

	corpus := &domain.Corpus{
		Name:       full.Name,
		Categories: domain.Relabel(docs),
		Documents:  docs,
		FetchedAt:  full.FetchedAt,
	}

	if err := s.postProcess(ctx, corpus.Documents); err != nil {
		return nil, err
	}

	logger.Info("selected %d documents in %d categories", corpus.Len(), len(corpus.Categories))
	return corpus, nil
}

// Fetch returns the cached corpus, or reads it from the source and caches it.
// With force, the source is always read and the cache replaced.
func (s *CorpusService) Fetch(ctx context.Context, force bool) (*domain.Corpus, error) {
	name := s.Name()

	if !force {
		corpus, err := s.store.LoadCorpus(ctx, name)
		if err == nil {
			logger.Debug("using cached corpus %s (%d documents)", name, corpus.Len())
			return corpus, nil
		}
		if !errors.Is(err, domain.ErrNotFound) {
			return nil, fmt.Errorf("load cached corpus: %w", err)
		}
	}

	done := logger.Stage("Fetch corpus")
	defer done()

	docs, err := s.readSource(ctx)
	if err != nil {
		return nil, err
	}

	corpus := &domain.Corpus{
		Name:       name,
		Categories: domain.Relabel(docs),
		Documents:  docs,
		FetchedAt:  s.now(),
	}
	if err := corpus.Validate(); err != nil {
		return nil, fmt.Errorf("fetched corpus: %w", err)
	}

	if err := s.store.SaveCorpus(ctx, corpus); err != nil {
		return nil, fmt.Errorf("cache corpus: %w", err)
	}

	logger.Info("fetched %d documents in %d categories", corpus.Len(), len(corpus.Categories))
	return corpus, nil
}

// Categories returns the category names of the loaded corpus with counts.
func (s *CorpusService) Categories(ctx context.Context) ([]domain.CategoryCount, error) {
	corpus, err := s.Load(ctx)
	if err != nil {
		return nil, err
	}
	return corpus.Counts(), nil
}

// Clear deletes the cached corpus of the configured source.
func (s *CorpusService) Clear(ctx context.Context) error {
	if err := s.store.DeleteCorpus(ctx, s.Name()); err != nil {
		return fmt.Errorf("clear corpus cache: %w", err)
	}
	return nil
}

// readSource drains the connector and normalises every raw document.
func (s *CorpusService) readSource(ctx context.Context) ([]domain.Document, error) {
	if s.factory == nil {
		return nil, fmt.Errorf("create connector: connector factory not configured")
	}

	connector, err := s.factory.Create(ctx, s.settings)
	if err != nil {
		return nil, fmt.Errorf("create connector: %w", err)
	}
	defer connector.Close()

	// Stops the producer if normalisation fails part way.
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	rawDocs, errs := connector.FullSync(ctx)

	var docs []domain.Document
	for raw := range rawDocs {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		result, err := s.normalisers.Normalise(ctx, &raw)
		if err != nil {
			return nil, fmt.Errorf("normalise: %w", err)
		}
		docs = append(docs, result.Document)
	}

	if err := <-errs; err != nil {
		return nil, fmt.Errorf("read %s corpus: %w", connector.Type(), err)
	}
	if len(docs) == 0 {
		return nil, fmt.Errorf("%w: source returned no documents", domain.ErrEmptyCorpus)
	}
	return docs, nil
}

// selectDocuments copies the documents matching the subset and category filters.
func (s *CorpusService) selectDocuments(corpus *domain.Corpus) ([]domain.Document, error) {
	subset := s.settings.Subset
	if subset == "" {
		subset = domain.SubsetAll
	}

	for _, name := range s.settings.Categories {
		if _, ok := corpus.CategoryIndex(name); !ok {
			return nil, fmt.Errorf("%w: unknown category %q", domain.ErrInvalidInput, name)
		}
	}

	docs := make([]domain.Document, 0, corpus.Len())
	for _, doc := range corpus.Documents {
		if !subset.Includes(doc.Subset) {
			continue
		}
		if len(s.settings.Categories) > 0 && !slices.Contains(s.settings.Categories, doc.Category) {
			continue
		}
		docs = append(docs, doc)
	}
	return docs, nil
}

// postProcess strips the configured post sections in place.
func (s *CorpusService) postProcess(ctx context.Context, docs []domain.Document) error {
	names := RemovalOrder(s.settings.Remove)
	if len(names) == 0 {
		return nil
	}
	if s.processors == nil {
		return fmt.Errorf("post-process: processor builder not configured")
	}

	pipeline, err := s.processors.BuildPipeline(names)
	if err != nil {
		return fmt.Errorf("post-process: %w", err)
	}

	logger.Debug("removing %v from %d documents", names, len(docs))
	for i := range docs {
		if err := ctx.Err(); err != nil {
			return err
		}
		if err := pipeline.Process(ctx, &docs[i]); err != nil {
			return fmt.Errorf("post-process %s: %w", docs[i].URI, err)
		}
	}
	return nil
}

// RemovalOrder returns the requested parts in the order they are stripped.
// Headers go first so footers and quotes only see the body. Unknown names
// are kept, in the order given, after the known ones.
func RemovalOrder(remove []string) []string {
	var names []string
	for _, part := range domain.RemovableParts {
		if slices.Contains(remove, part) {
			names = append(names, part)
		}
	}
	for _, part := range remove {
		if !slices.Contains(domain.RemovableParts, part) && !slices.Contains(names, part) {
			names = append(names, part)
		}
	}
	return names
}
