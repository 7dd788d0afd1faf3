// Package footers removes signature blocks from newsgroup posts.
package footers

import (
	"context"
	"strings"

	"github.com/custodia-labs/newsbayes/internal/core/domain"
)

// Processor drops everything from the last separator line onwards.
// A separator line is blank or made only of dashes.
type Processor struct{}

// New creates a new footer removal processor.
func New() *Processor {
	return &Processor{}
}

// Name returns the processor name.
func (p *Processor) Name() string {
	return "footers"
}

// Process strips the trailing signature block from the document content.
func (p *Processor) Process(_ context.Context, doc *domain.Document) error {
	doc.Content = Strip(doc.Content)
	return nil
}

// Strip removes the signature block of text. Text whose only separator is
// its first line, or that has none, is returned unchanged.
func Strip(text string) string {
	lines := strings.Split(strings.TrimSpace(text), "\n")

	lineNum := len(lines) - 1
	for ; lineNum > 0; lineNum-- {
		if isSeparator(lines[lineNum]) {
			break
		}
	}

	if lineNum > 0 {
		return strings.Join(lines[:lineNum], "\n")
	}
	return text
}

func isSeparator(line string) bool {
	return strings.Trim(strings.TrimSpace(line), "-") == ""
}
