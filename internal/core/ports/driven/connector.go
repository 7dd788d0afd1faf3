package driven

import (
	"context"

	"github.com/custodia-labs/newsbayes/internal/core/domain"
)

// Connector fetches raw documents from a corpus source.
// Each source type (newsgroups download, filesystem) implements this interface.
type Connector interface {
	// Type returns the connector type identifier.
	Type() string

	// Validate checks the source is reachable without fetching it.
	// For filesystem, this checks the path exists and is readable.
	Validate(ctx context.Context) error

	// FullSync streams every document of the source.
	// The document channel is closed when the source is exhausted. At most one
	// error is sent on the error channel, which is closed after the document
	// channel.
	FullSync(ctx context.Context) (<-chan domain.RawDocument, <-chan error)

	// Close releases resources.
	Close() error
}
