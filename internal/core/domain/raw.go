package domain

// RawDocument represents bytes fetched by a connector.
// It is the connector's output before normalisation.
type RawDocument struct {
	// URI is the original location (archive entry, file path).
	URI string

	// MIMEType is the content type (e.g., "message/rfc822").
	MIMEType string

	// Content is the raw text, already decoded to UTF-8.
	Content []byte

	// Category is the category name the document is filed under.
	Category string

	// Subset is the source partition (train or test) when the source has one.
	Subset Subset

	// Metadata contains connector-specific key-value pairs.
	Metadata map[string]any
}
