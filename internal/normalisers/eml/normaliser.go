// Package eml normalises RFC 822 newsgroup posts.
package eml

import (
	"bytes"
	"context"
	"mime"
	"net/mail"
	"path"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/custodia-labs/newsbayes/internal/core/domain"
	"github.com/custodia-labs/newsbayes/internal/core/ports/driven"
)

// Ensure Normaliser implements the interface.
var _ driven.Normaliser = (*Normaliser)(nil)

// Normaliser handles newsgroup posts stored as RFC 822 messages.
// The whole post, headers included, becomes the document content;
// header removal is left to the post-processors.
type Normaliser struct {
	now func() time.Time
}

// New creates a new EML normaliser.
func New() *Normaliser {
	return &Normaliser{now: time.Now}
}

// SupportedMIMETypes returns the MIME types this normaliser handles.
func (n *Normaliser) SupportedMIMETypes() []string {
	return []string{
		"message/rfc822",
	}
}

// Priority returns the selection priority.
func (n *Normaliser) Priority() int {
	return 50 // Generic MIME normaliser
}

// Normalise converts a post to a document.
func (n *Normaliser) Normalise(_ context.Context, raw *domain.RawDocument) (*driven.NormaliseResult, error) {
	if raw == nil {
		return nil, domain.ErrInvalidInput
	}

	msg, err := mail.ReadMessage(bytes.NewReader(raw.Content))
	if err != nil {
		return nil, domain.ErrInvalidInput
	}

	subject := decodeHeader(msg.Header.Get("Subject"))
	from := decodeHeader(msg.Header.Get("From"))
	newsgroups := msg.Header.Get("Newsgroups")
	organization := decodeHeader(msg.Header.Get("Organization"))

	// Use subject as title, fall back to the entry name
	title := subject
	if title == "" {
		title = extractTitleFromURI(raw.URI)
	}

	doc := domain.Document{
		ID:        uuid.New().String(),
		URI:       raw.URI,
		Title:     title,
		Content:   string(raw.Content),
		Category:  raw.Category,
		Subset:    raw.Subset,
		Metadata:  copyMetadata(raw.Metadata),
		CreatedAt: n.now(),
	}

	if doc.Metadata == nil {
		doc.Metadata = make(map[string]any)
	}
	doc.Metadata["mime_type"] = raw.MIMEType
	doc.Metadata["format"] = "eml"
	if from != "" {
		doc.Metadata["from"] = from
	}
	if newsgroups != "" {
		doc.Metadata["newsgroups"] = splitNewsgroups(newsgroups)
	}
	if organization != "" {
		doc.Metadata["organization"] = organization
	}
	if lines, err := strconv.Atoi(strings.TrimSpace(msg.Header.Get("Lines"))); err == nil {
		doc.Metadata["lines"] = lines
	}

	return &driven.NormaliseResult{
		Document: doc,
	}, nil
}

// decodeHeader decodes RFC 2047 encoded headers.
func decodeHeader(header string) string {
	if header == "" {
		return ""
	}
	dec := new(mime.WordDecoder)
	decoded, err := dec.DecodeHeader(header)
	if err != nil {
		return header // Return original if decoding fails
	}
	return decoded
}

// splitNewsgroups splits a comma-separated Newsgroups header.
func splitNewsgroups(header string) []string {
	var groups []string
	for _, g := range strings.Split(header, ",") {
		if g = strings.TrimSpace(g); g != "" {
			groups = append(groups, g)
		}
	}
	return groups
}

// extractTitleFromURI extracts a title from an archive entry or file URI.
func extractTitleFromURI(uri string) string {
	return path.Base(strings.ReplaceAll(uri, "\\", "/"))
}

// copyMetadata creates a shallow copy of metadata.
func copyMetadata(src map[string]any) map[string]any {
	if src == nil {
		return nil
	}
	dst := make(map[string]any, len(src))
	for k, v := range src {
		dst[k] = v
	}
	return dst
}
