package connectors

import (
	"context"
	"fmt"
	"net/http"
	"sort"
	"sync"

	"github.com/custodia-labs/newsbayes/internal/connectors/filesystem"
	"github.com/custodia-labs/newsbayes/internal/connectors/newsgroups"
	"github.com/custodia-labs/newsbayes/internal/core/domain"
	"github.com/custodia-labs/newsbayes/internal/core/ports/driven"
)

// Ensure Factory implements the interface.
var _ driven.ConnectorFactory = (*Factory)(nil)

// Factory builds connectors by source type.
type Factory struct {
	mu       sync.RWMutex
	builders map[domain.SourceType]driven.ConnectorBuilder
}

// NewFactory creates a factory with no builders registered.
func NewFactory() *Factory {
	return &Factory{builders: make(map[domain.SourceType]driven.ConnectorBuilder)}
}

// NewDefaultFactory creates a factory with the built-in sources registered.
// A nil client selects the newsgroups connector's default HTTP client.
func NewDefaultFactory(client *http.Client) *Factory {
	f := NewFactory()
	f.Register(domain.SourceNewsgroups, func(s domain.CorpusSettings) (driven.Connector, error) {
		return newsgroups.New(s.URL, newsgroups.WithHTTPClient(client)), nil
	})
	f.Register(domain.SourceFilesystem, func(s domain.CorpusSettings) (driven.Connector, error) {
		return filesystem.New(s.Path), nil
	})
	return f
}

// Register adds a connector builder for the given source type.
func (f *Factory) Register(sourceType domain.SourceType, builder driven.ConnectorBuilder) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.builders[sourceType] = builder
}

// Create builds and validates the connector for the configured source.
func (f *Factory) Create(ctx context.Context, settings domain.CorpusSettings) (driven.Connector, error) {
	f.mu.RLock()
	builder, ok := f.builders[settings.Source]
	f.mu.RUnlock()
	if !ok {
		return nil, fmt.Errorf("%w: corpus source %q", domain.ErrUnsupportedType, settings.Source)
	}

	conn, err := builder(settings)
	if err != nil {
		return nil, fmt.Errorf("build %s connector: %w", settings.Source, err)
	}
	if err := conn.Validate(ctx); err != nil {
		_ = conn.Close()
		return nil, fmt.Errorf("validate %s connector: %w", settings.Source, err)
	}
	return conn, nil
}

// SupportedTypes returns all registered source types, sorted.
func (f *Factory) SupportedTypes() []domain.SourceType {
	f.mu.RLock()
	defer f.mu.RUnlock()

	types := make([]domain.SourceType, 0, len(f.builders))
	for t := range f.builders {
		types = append(types, t)
	}
	sort.Slice(types, func(i, j int) bool { return types[i] < types[j] })
	return types
}
