// Package tfidf provides a TF-IDF vectorizer over a fitted vocabulary.
//
// Fit learns the vocabulary of the training documents and the inverse
// document frequency of every term, idf(t) = ln(N / df(t)). Transform weights
// every vocabulary term of a document by its raw count times its idf; terms
// outside the vocabulary are ignored.
package tfidf

import (
	"fmt"
	"math"

	"gonum.org/v1/gonum/floats"

	"github.com/custodia-labs/newsbayes/internal/core/domain"
	"github.com/custodia-labs/newsbayes/internal/core/ports/driven"
)

// Ensure Vectorizer implements the interface.
var _ driven.Vectorizer = (*Vectorizer)(nil)

// Vectorizer maps documents to TF-IDF weighted sparse vectors.
type Vectorizer struct {
	tokenizer driven.Tokenizer
	smoothIDF bool
	norm      domain.NormType

	vocab *domain.Vocabulary
	idf   []float64
}

// Option configures the vectorizer.
type Option func(*Vectorizer)

// WithSmoothIDF uses ln((1+N)/(1+df)) + 1 as the idf.
func WithSmoothIDF(enabled bool) Option {
	return func(v *Vectorizer) {
		v.smoothIDF = enabled
	}
}

// WithNorm scales each output vector by the given norm.
func WithNorm(norm domain.NormType) Option {
	return func(v *Vectorizer) {
		v.norm = norm
	}
}

// New creates an unfitted vectorizer using tokenizer to split documents.
func New(tokenizer driven.Tokenizer, opts ...Option) (*Vectorizer, error) {
	if tokenizer == nil {
		return nil, fmt.Errorf("%w: tokenizer is nil", domain.ErrInvalidInput)
	}
	v := &Vectorizer{tokenizer: tokenizer}
	for _, opt := range opts {
		opt(v)
	}
	if !v.norm.IsValid() {
		return nil, fmt.Errorf("%w: unknown norm %q", domain.ErrInvalidInput, v.norm)
	}
	return v, nil
}

// Fit learns the vocabulary and idf from the training documents.
// It fails with domain.ErrEmptyVocabulary when no document yields a term.
func (v *Vectorizer) Fit(docs []string) error {
	return v.fit(v.tokenizeAll(docs))
}

// FitTransform fits on docs and returns their vectors.
// Documents are tokenized once.
func (v *Vectorizer) FitTransform(docs []string) ([]domain.SparseVector, error) {
	tokens := v.tokenizeAll(docs)
	if err := v.fit(tokens); err != nil {
		return nil, err
	}
	return v.transformTokens(tokens), nil
}

// Transform maps documents into the fitted feature space.
// The vocabulary and idf are left untouched.
func (v *Vectorizer) Transform(docs []string) ([]domain.SparseVector, error) {
	if v.vocab == nil {
		return nil, domain.ErrNotFitted
	}
	return v.transformTokens(v.tokenizeAll(docs)), nil
}

// Vocabulary returns the fitted vocabulary, or nil before Fit.
func (v *Vectorizer) Vocabulary() *domain.Vocabulary {
	return v.vocab
}

// IDF returns the idf of term. The boolean is false for terms outside the
// vocabulary or before Fit.
func (v *Vectorizer) IDF(term string) (float64, bool) {
	if v.vocab == nil {
		return 0, false
	}
	i, ok := v.vocab.Index(term)
	if !ok {
		return 0, false
	}
	return v.idf[i], true
}

func (v *Vectorizer) tokenizeAll(docs []string) [][]string {
	tokens := make([][]string, len(docs))
	for i, doc := range docs {
		tokens[i] = v.tokenizer.Tokenize(doc)
	}
	return tokens
}

// fit computes the vocabulary and idf from tokenized documents.
// The previous fit is kept when this one fails.
func (v *Vectorizer) fit(tokens [][]string) error {
	df := make(map[string]int)
	for _, doc := range tokens {
		seen := make(map[string]struct{}, len(doc))
		for _, term := range doc {
			if _, ok := seen[term]; ok {
				continue
			}
			seen[term] = struct{}{}
			df[term]++
		}
	}
	if len(df) == 0 {
		return domain.ErrEmptyVocabulary
	}

	terms := make([]string, 0, len(df))
	for term := range df {
		terms = append(terms, term)
	}
	vocab := domain.NewVocabulary(terms)

	n := float64(len(tokens))
	idf := make([]float64, vocab.Len())
	for i, term := range vocab.Terms() {
		d := float64(df[term])
		if v.smoothIDF {
			idf[i] = math.Log((1+n)/(1+d)) + 1
		} else {
			idf[i] = math.Log(n / d)
		}
	}

	v.vocab = vocab
	v.idf = idf
	return nil
}

func (v *Vectorizer) transformTokens(tokens [][]string) []domain.SparseVector {
	dim := v.vocab.Len()
	out := make([]domain.SparseVector, len(tokens))
	for d, doc := range tokens {
		counts := make(map[int]float64, len(doc))
		for _, term := range doc {
			if i, ok := v.vocab.Index(term); ok {
				counts[i]++
			}
		}
		for i, count := range counts {
			counts[i] = count * v.idf[i]
		}
		sv := domain.NewSparseVector(dim, counts)
		if v.norm == domain.NormL2 {
			normalise(sv.Values)
		}
		out[d] = sv
	}
	return out
}

// normalise scales values to unit Euclidean length in place.
func normalise(values []float64) {
	if length := floats.Norm(values, 2); length > 0 {
		floats.Scale(1/length, values)
	}
}
