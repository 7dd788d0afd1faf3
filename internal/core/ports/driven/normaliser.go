package driven

import (
	"context"

	"github.com/custodia-labs/newsbayes/internal/core/domain"
)

// Normaliser transforms raw documents into labelled documents.
// Each normaliser handles specific MIME types.
type Normaliser interface {
	// SupportedMIMETypes returns the MIME types this normaliser handles.
	SupportedMIMETypes() []string

	// Priority returns the selection priority (higher = preferred).
	// Format-specific normalisers should return 50-89.
	// Fallback normalisers should return 1-9.
	Priority() int

	// Normalise transforms a raw document into a document.
	// It returns domain.ErrInvalidInput when the content is not in its format,
	// letting the caller fall back to a lower-priority normaliser.
	Normalise(ctx context.Context, raw *domain.RawDocument) (*NormaliseResult, error)
}

// NormaliseResult contains the output of normalisation.
// Labels are assigned later, once all category names are known.
type NormaliseResult struct {
	// Document is the normalised document with Content populated.
	Document domain.Document
}
