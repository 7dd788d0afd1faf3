// Package multinomialnb implements a multinomial Naive Bayes classifier over
// sparse feature vectors.
//
// For classes C and feature i the model holds the prior P(C) = n_C / n and
// the smoothed conditional P(i|C) = (N_Ci + alpha) / (N_C + alpha*m), where
// N_Ci is the summed weight of feature i in class C, N_C the total weight in
// class C and m the number of features. Both are stored as logarithms.
package multinomialnb

import (
	"fmt"
	"math"
	"sort"

	"gonum.org/v1/gonum/floats"

	"github.com/custodia-labs/newsbayes/internal/core/domain"
	"github.com/custodia-labs/newsbayes/internal/core/ports/driven"
)

// Ensure Classifier implements the interface.
var _ driven.Classifier = (*Classifier)(nil)

// Classifier is a multinomial Naive Bayes classifier.
type Classifier struct {
	alpha float64

	classes  []int
	dim      int
	logPrior []float64
	// logProb[c][i] = log P(i | classes[c])
	logProb [][]float64
}

// New creates an unfitted classifier with additive smoothing alpha > 0.
func New(alpha float64) (*Classifier, error) {
	if err := domain.ValidateAlpha(alpha); err != nil {
		return nil, err
	}
	return &Classifier{alpha: alpha}, nil
}

// Alpha returns the smoothing constant.
func (nb *Classifier) Alpha() float64 {
	return nb.alpha
}

// Fit estimates priors and conditionals from vectors X with labels y.
// Weights must be non-negative and all vectors share one dimension.
func (nb *Classifier) Fit(X []domain.SparseVector, y []int) error {
	if len(X) == 0 {
		return fmt.Errorf("%w: no training samples", domain.ErrInvalidInput)
	}
	if len(X) != len(y) {
		return fmt.Errorf("%w: %d samples but %d labels", domain.ErrInvalidInput, len(X), len(y))
	}
	dim := X[0].Dim
	if dim <= 0 {
		return fmt.Errorf("%w: feature dimension %d", domain.ErrInvalidInput, dim)
	}

	classes := distinct(y)
	position := make(map[int]int, len(classes))
	for c, label := range classes {
		position[label] = c
	}

	counts := make([]float64, len(classes))
	weights := make([][]float64, len(classes))
	for c := range weights {
		weights[c] = make([]float64, dim)
	}

	for s, x := range X {
		if x.Dim != dim {
			return fmt.Errorf("%w: sample %d has dimension %d, want %d", domain.ErrDimensionMismatch, s, x.Dim, dim)
		}
		c := position[y[s]]
		counts[c]++
		for k, i := range x.Indices {
			w := x.Values[k]
			if w < 0 {
				return fmt.Errorf("%w: sample %d has negative weight %v", domain.ErrInvalidInput, s, w)
			}
			if i < 0 || i >= dim {
				return fmt.Errorf("%w: sample %d has index %d outside [0,%d)", domain.ErrDimensionMismatch, s, i, dim)
			}
			weights[c][i] += w
		}
	}

	n := float64(len(X))
	m := float64(dim)
	logPrior := make([]float64, len(classes))
	logProb := make([][]float64, len(classes))
	for c := range classes {
		logPrior[c] = math.Log(counts[c] / n)

		denom := math.Log(floats.Sum(weights[c]) + nb.alpha*m)
		row := weights[c]
		for i := range row {
			row[i] = math.Log(row[i]+nb.alpha) - denom
		}
		logProb[c] = row
	}

	nb.classes = classes
	nb.dim = dim
	nb.logPrior = logPrior
	nb.logProb = logProb
	return nil
}

// Predict returns the label with the highest joint log-likelihood for every
// vector. Ties go to the smallest label.
func (nb *Classifier) Predict(X []domain.SparseVector) ([]int, error) {
	jll, err := nb.jointLogLikelihood(X)
	if err != nil {
		return nil, err
	}
	out := make([]int, len(jll))
	for s, scores := range jll {
		out[s] = nb.classes[floats.MaxIdx(scores)]
	}
	return out, nil
}

// PredictProba returns the posterior of every class, in Classes order.
func (nb *Classifier) PredictProba(X []domain.SparseVector) ([][]float64, error) {
	jll, err := nb.jointLogLikelihood(X)
	if err != nil {
		return nil, err
	}
	for _, scores := range jll {
		norm := floats.LogSumExp(scores)
		for c := range scores {
			scores[c] = math.Exp(scores[c] - norm)
		}
	}
	return jll, nil
}

// Score returns the share of vectors whose prediction equals y.
func (nb *Classifier) Score(X []domain.SparseVector, y []int) (float64, error) {
	if len(X) != len(y) {
		return 0, fmt.Errorf("%w: %d samples but %d labels", domain.ErrInvalidInput, len(X), len(y))
	}
	if len(X) == 0 {
		return 0, fmt.Errorf("%w: no samples", domain.ErrInvalidInput)
	}
	pred, err := nb.Predict(X)
	if err != nil {
		return 0, err
	}
	correct := 0
	for i := range pred {
		if pred[i] == y[i] {
			correct++
		}
	}
	return float64(correct) / float64(len(y)), nil
}

// Classes returns the trained labels in ascending order, or nil before Fit.
func (nb *Classifier) Classes() []int {
	if nb.classes == nil {
		return nil
	}
	out := make([]int, len(nb.classes))
	copy(out, nb.classes)
	return out
}

// Priors returns P(C) for every class in Classes order.
func (nb *Classifier) Priors() ([]float64, error) {
	if nb.classes == nil {
		return nil, domain.ErrNotFitted
	}
	out := make([]float64, len(nb.logPrior))
	for c, lp := range nb.logPrior {
		out[c] = math.Exp(lp)
	}
	return out, nil
}

// FeatureProb returns P(i | label).
func (nb *Classifier) FeatureProb(label, i int) (float64, error) {
	if nb.classes == nil {
		return 0, domain.ErrNotFitted
	}
	c := sort.SearchInts(nb.classes, label)
	if c == len(nb.classes) || nb.classes[c] != label {
		return 0, fmt.Errorf("%w: label %d", domain.ErrNotFound, label)
	}
	if i < 0 || i >= nb.dim {
		return 0, fmt.Errorf("%w: feature %d outside [0,%d)", domain.ErrDimensionMismatch, i, nb.dim)
	}
	return math.Exp(nb.logProb[c][i]), nil
}

// jointLogLikelihood returns log P(C) + sum_i x_i log P(i|C) per vector and class.
func (nb *Classifier) jointLogLikelihood(X []domain.SparseVector) ([][]float64, error) {
	if nb.classes == nil {
		return nil, domain.ErrNotFitted
	}
	out := make([][]float64, len(X))
	for s, x := range X {
		if x.Dim != nb.dim {
			return nil, fmt.Errorf("%w: sample %d has dimension %d, want %d", domain.ErrDimensionMismatch, s, x.Dim, nb.dim)
		}
		scores := make([]float64, len(nb.classes))
		copy(scores, nb.logPrior)
		for _, i := range x.Indices {
			if i < 0 || i >= nb.dim {
				return nil, fmt.Errorf("%w: sample %d has index %d outside [0,%d)", domain.ErrDimensionMismatch, s, i, nb.dim)
			}
		}
		for c, row := range nb.logProb {
			for k, i := range x.Indices {
				scores[c] += x.Values[k] * row[i]
			}
		}
		out[s] = scores
	}
	return out, nil
}

// distinct returns the sorted distinct values of y.
func distinct(y []int) []int {
	seen := make(map[int]struct{}, len(y))
	var out []int
	for _, v := range y {
		if _, ok := seen[v]; !ok {
			seen[v] = struct{}{}
			out = append(out, v)
		}
	}
	sort.Ints(out)
	return out
}
