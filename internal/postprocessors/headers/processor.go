// Package headers removes the header block from newsgroup posts.
package headers

import (
	"context"
	"strings"

	"github.com/custodia-labs/newsbayes/internal/core/domain"
)

// Processor keeps only the text after the first blank line.
// A post with no blank line has no body and becomes empty.
type Processor struct{}

// New creates a new header removal processor.
func New() *Processor {
	return &Processor{}
}

// Name returns the processor name.
func (p *Processor) Name() string {
	return "headers"
}

// Process strips the header block from the document content.
func (p *Processor) Process(_ context.Context, doc *domain.Document) error {
	doc.Content = Strip(doc.Content)
	return nil
}

// Strip returns the text following the first "\n\n" in text.
func Strip(text string) string {
	_, after, _ := strings.Cut(text, "\n\n")
	return after
}
