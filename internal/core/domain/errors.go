package domain

import "errors"

// Domain errors represent pipeline failures.
// These are distinct from infrastructure errors, which adapters wrap.
var (
	// ErrNotFound indicates a requested entity does not exist.
	ErrNotFound = errors.New("not found")

	// ErrInvalidInput indicates malformed or invalid input.
	ErrInvalidInput = errors.New("invalid input")

	// ErrUnsupportedType indicates an unknown connector, normaliser or processor type.
	ErrUnsupportedType = errors.New("unsupported type")

	// Corpus Errors.

	// ErrCorpusUnavailable indicates the corpus could not be fetched.
	ErrCorpusUnavailable = errors.New("corpus unavailable")

	// ErrEmptyCorpus indicates the corpus (or a selection of it) has no documents.
	ErrEmptyCorpus = errors.New("empty corpus")

	// ErrConnectorClosed indicates the connector has been closed.
	ErrConnectorClosed = errors.New("connector closed")

	// Model Errors.

	// ErrEmptyVocabulary indicates fitting produced no terms.
	// The training documents are empty or contain only stop words.
	ErrEmptyVocabulary = errors.New("empty vocabulary")

	// ErrNotFitted indicates a vectoriser or classifier was used before Fit.
	ErrNotFitted = errors.New("not fitted")

	// ErrDimensionMismatch indicates feature vectors of inconsistent dimension.
	ErrDimensionMismatch = errors.New("dimension mismatch")
)
