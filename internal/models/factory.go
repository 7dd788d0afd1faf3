// Package models builds the vectoriser and classifier used by a pipeline run.
package models

import (
	"github.com/custodia-labs/newsbayes/internal/classifiers/multinomialnb"
	"github.com/custodia-labs/newsbayes/internal/core/domain"
	"github.com/custodia-labs/newsbayes/internal/core/ports/driven"
	"github.com/custodia-labs/newsbayes/internal/tokenizers/words"
	"github.com/custodia-labs/newsbayes/internal/vectorizers/tfidf"
)

// Ensure Factory implements the interface.
var _ driven.ModelFactory = (*Factory)(nil)

// Factory creates word-tokenised TF-IDF vectorisers and multinomial
// Naive Bayes classifiers.
type Factory struct{}

// NewFactory creates a model factory.
func NewFactory() *Factory {
	return &Factory{}
}

// NewVectorizer creates a TF-IDF vectoriser over a word tokenizer.
func (f *Factory) NewVectorizer(settings domain.VectorizerSettings) (driven.Vectorizer, func(), error) {
	tokenizer, err := words.New(
		words.WithAccentFolding(settings.StripAccents),
		words.WithStopWords(settings.StopWords),
		words.WithStemming(settings.Stem),
	)
	if err != nil {
		return nil, nil, err
	}

	vectorizer, err := tfidf.New(tokenizer,
		tfidf.WithSmoothIDF(settings.SmoothIDF),
		tfidf.WithNorm(settings.Norm),
	)
	if err != nil {
		tokenizer.Close()
		return nil, nil, err
	}
	return vectorizer, tokenizer.Close, nil
}

// NewClassifier creates a multinomial Naive Bayes classifier.
func (f *Factory) NewClassifier(settings domain.ClassifierSettings) (driven.Classifier, error) {
	return multinomialnb.New(settings.Alpha)
}
