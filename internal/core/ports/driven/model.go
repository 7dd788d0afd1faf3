package driven

import "github.com/custodia-labs/newsbayes/internal/core/domain"

// Tokenizer splits text into terms.
type Tokenizer interface {
	// Tokenize returns the terms of text in order of appearance.
	Tokenize(text string) []string
}

// Vectorizer learns a vocabulary and maps documents into its feature space.
type Vectorizer interface {
	// Fit learns the vocabulary and term weights from training documents.
	Fit(docs []string) error

	// Transform maps documents into the fitted feature space.
	// It never alters the fitted vocabulary.
	Transform(docs []string) ([]domain.SparseVector, error)

	// FitTransform fits on docs and transforms them.
	FitTransform(docs []string) ([]domain.SparseVector, error)

	// Vocabulary returns the fitted vocabulary, or nil before Fit.
	Vocabulary() *domain.Vocabulary
}

// Classifier learns to predict labels from feature vectors.
type Classifier interface {
	// Fit trains the classifier on vectors X with labels y.
	Fit(X []domain.SparseVector, y []int) error

	// Predict returns the most probable label of every vector.
	Predict(X []domain.SparseVector) ([]int, error)

	// PredictProba returns, per vector, the posterior of every trained
	// class in the order given by Classes.
	PredictProba(X []domain.SparseVector) ([][]float64, error)

	// Classes returns the trained labels in ascending order.
	Classes() []int

	// Score returns the accuracy of Predict(X) against y.
	Score(X []domain.SparseVector, y []int) (float64, error)
}

// ModelFactory builds fresh, unfitted models for one pipeline run.
type ModelFactory interface {
	// NewVectorizer returns a vectoriser configured from settings and a
	// release function freeing its tokenizer resources.
	NewVectorizer(settings domain.VectorizerSettings) (Vectorizer, func(), error)

	// NewClassifier returns a classifier configured from settings.
	NewClassifier(settings domain.ClassifierSettings) (Classifier, error)
}
