package driven

import (
	"context"

	"github.com/custodia-labs/newsbayes/internal/core/domain"
)

// ConnectorBuilder creates a Connector from corpus settings.
type ConnectorBuilder func(settings domain.CorpusSettings) (Connector, error)

// ConnectorFactory creates connectors from corpus settings.
// It maintains a registry of source types and their builders.
type ConnectorFactory interface {
	// Create returns a Connector for the configured source.
	// Returns ErrUnsupportedType if the source type is unknown.
	Create(ctx context.Context, settings domain.CorpusSettings) (Connector, error)

	// Register adds a connector builder for the given source type.
	Register(sourceType domain.SourceType, builder ConnectorBuilder)

	// SupportedTypes returns all registered source types, sorted.
	SupportedTypes() []domain.SourceType
}
