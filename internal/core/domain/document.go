package domain

import "time"

// Document represents a labelled document after normalisation.
type Document struct {
	// ID is the unique identifier for the document.
	ID string

	// URI is the original location (archive entry, file path).
	URI string

	// Title is the human-readable title, usually the post subject.
	Title string

	// Content is the full text used for feature extraction.
	Content string

	// Category is the category name.
	Category string

	// Label is the index of Category in the owning corpus' category list.
	Label int

	// Subset is the source partition the document came from.
	Subset Subset

	// Metadata contains arbitrary key-value pairs.
	Metadata map[string]any

	// CreatedAt is when the document was normalised.
	CreatedAt time.Time
}

// Prediction is the classifier output for a single text.
type Prediction struct {
	// Label is the index of the predicted category.
	Label int

	// Category is the predicted category name.
	Category string

	// Probabilities holds the posterior of every category, indexed by label.
	Probabilities []float64
}
