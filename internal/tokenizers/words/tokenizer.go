// Package words provides the word tokenizer used for feature extraction.
//
// Text is lowercased and split into maximal runs of letters, digits and
// underscores; runs shorter than two characters are dropped. Accent folding,
// English stop-word removal and Snowball stemming are optional.
package words

import (
	"fmt"
	"strings"
	"sync"
	"unicode"

	"github.com/tebeka/snowball"
	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"

	"github.com/custodia-labs/newsbayes/internal/core/ports/driven"
)

// Ensure Tokenizer implements the interface.
var _ driven.Tokenizer = (*Tokenizer)(nil)

// DefaultMinLength is the shortest token kept.
const DefaultMinLength = 2

// Tokenizer splits text into lowercase word tokens.
type Tokenizer struct {
	minLength    int
	stripAccents bool
	stopWords    map[string]bool
	stem         bool

	mu      sync.Mutex
	stemmer *snowball.Stemmer
}

// Option configures the tokenizer.
type Option func(*Tokenizer)

// WithMinLength sets the shortest token kept, in runes.
func WithMinLength(n int) Option {
	return func(t *Tokenizer) {
		if n > 0 {
			t.minLength = n
		}
	}
}

// WithAccentFolding folds accented letters to their base form.
func WithAccentFolding(enabled bool) Option {
	return func(t *Tokenizer) {
		t.stripAccents = enabled
	}
}

// WithStopWords drops English stop words.
func WithStopWords(enabled bool) Option {
	return func(t *Tokenizer) {
		if enabled {
			t.stopWords = EnglishStopWords()
		} else {
			t.stopWords = nil
		}
	}
}

// WithStemming reduces tokens to their English Snowball stem.
func WithStemming(enabled bool) Option {
	return func(t *Tokenizer) {
		t.stem = enabled
	}
}

// New creates a tokenizer. Call Close when stemming is enabled.
func New(opts ...Option) (*Tokenizer, error) {
	t := &Tokenizer{minLength: DefaultMinLength}
	for _, opt := range opts {
		opt(t)
	}

	if t.stem {
		stemmer, err := snowball.New("english")
		if err != nil {
			return nil, fmt.Errorf("create stemmer: %w", err)
		}
		t.stemmer = stemmer
	}
	return t, nil
}

// Tokenize returns the tokens of text in order of appearance.
func (t *Tokenizer) Tokenize(text string) []string {
	if t.stripAccents {
		text = foldAccents(text)
	}
	text = strings.ToLower(text)

	var tokens []string
	start := -1
	length := 0
	emit := func(end int) {
		if start >= 0 && length >= t.minLength {
			if token, ok := t.filter(text[start:end]); ok {
				tokens = append(tokens, token)
			}
		}
		start, length = -1, 0
	}

	for i, r := range text {
		if isWordRune(r) {
			if start < 0 {
				start = i
			}
			length++
			continue
		}
		emit(i)
	}
	emit(len(text))

	return tokens
}

// Close releases the stemmer.
func (t *Tokenizer) Close() {
	t.mu.Lock()
	defer t.mu.Unlock()

	if t.stemmer != nil {
		t.stemmer.Close()
		t.stemmer = nil
	}
}

// filter applies stop-word removal and stemming to a raw token.
func (t *Tokenizer) filter(token string) (string, bool) {
	if t.stopWords[token] {
		return "", false
	}
	if !t.stem {
		return token, true
	}

	t.mu.Lock()
	defer t.mu.Unlock()
	if t.stemmer == nil {
		return token, true
	}
	return t.stemmer.Stem(token), true
}

func isWordRune(r rune) bool {
	return r == '_' || unicode.IsLetter(r) || unicode.IsNumber(r)
}

// foldAccents decomposes text, drops combining marks and recomposes it.
// The transformer keeps state, so a fresh chain is built per call.
func foldAccents(text string) string {
	chain := transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFKC)
	folded, _, err := transform.String(chain, text)
	if err != nil {
		return text
	}
	return folded
}
