package driven

import (
	"context"

	"github.com/custodia-labs/newsbayes/internal/core/domain"
)

// NormaliserRegistry selects the appropriate normaliser for a document.
// It keeps normalisers ordered by priority and dispatches on MIME type.
type NormaliserRegistry interface {
	// Normalise transforms a raw document using the best matching normaliser.
	// When a normaliser rejects the input with domain.ErrInvalidInput the
	// next lower-priority candidate is tried.
	Normalise(ctx context.Context, raw *domain.RawDocument) (*NormaliseResult, error)

	// Register adds a normaliser to the registry.
	Register(normaliser Normaliser)

	// SupportedMIMETypes returns all MIME types that can be normalised.
	SupportedMIMETypes() []string
}
