// Package domain defines the core entities for newsbayes.
//
// This package is part of the hexagonal architecture's innermost layer.
// It has NO external dependencies and defines the fundamental types:
//
//   - RawDocument: Opaque bytes from a corpus connector
//   - Document: A labelled, normalised document
//   - Corpus: Ordered documents plus their category names
//   - Vocabulary and SparseVector: TF-IDF feature space
//   - ClassificationReport: Per-class evaluation metrics
//   - Settings: Pipeline configuration
//
// # Import Rules
//
//   - Can Import: Standard library only
//   - Cannot Import: Any internal/ package, any external dependency
package domain
