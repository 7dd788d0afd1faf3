// Package quotes removes quoted replies from newsgroup posts.
package quotes

import (
	"context"
	"fmt"
	"regexp"
	"strings"

	"github.com/custodia-labs/newsbayes/internal/core/domain"
)

// DefaultPattern matches attribution lines and quoted text.
const DefaultPattern = `(writes in|writes:|wrote:|says:|said:|^In article|^Quoted from|^\||^>)`

// Processor drops every line matching the quote pattern.
type Processor struct {
	pattern string
	re      *regexp.Regexp
}

// Option configures the quote processor.
type Option func(*Processor)

// WithPattern replaces the default quote pattern.
func WithPattern(pattern string) Option {
	return func(p *Processor) {
		if pattern != "" {
			p.pattern = pattern
		}
	}
}

// New creates a new quote removal processor.
// It fails if the configured pattern does not compile.
func New(opts ...Option) (*Processor, error) {
	p := &Processor{pattern: DefaultPattern}
	for _, opt := range opts {
		opt(p)
	}

	re, err := regexp.Compile(p.pattern)
	if err != nil {
		return nil, fmt.Errorf("%w: quote pattern: %v", domain.ErrInvalidInput, err)
	}
	p.re = re
	return p, nil
}

// Name returns the processor name.
func (p *Processor) Name() string {
	return "quotes"
}

// Process strips quoted lines from the document content.
func (p *Processor) Process(_ context.Context, doc *domain.Document) error {
	doc.Content = p.Strip(doc.Content)
	return nil
}

// Strip returns text without the lines matching the quote pattern.
// Each line is matched on its own, so ^ anchors at the line start.
func (p *Processor) Strip(text string) string {
	lines := strings.Split(text, "\n")
	kept := lines[:0]
	for _, line := range lines {
		if !p.re.MatchString(line) {
			kept = append(kept, line)
		}
	}
	return strings.Join(kept, "\n")
}
