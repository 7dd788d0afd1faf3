// Package metrics scores predictions against true labels.
package metrics

import (
	"fmt"

	"gonum.org/v1/gonum/stat"

	"github.com/custodia-labs/newsbayes/internal/core/domain"
)

// Summary row names.
const (
	AccuracyName    = "accuracy"
	MacroAvgName    = "macro avg"
	WeightedAvgName = "weighted avg"
)

// Accuracy returns the share of predictions equal to the true label.
func Accuracy(yTrue, yPred []int) (float64, error) {
	if err := checkLengths(yTrue, yPred); err != nil {
		return 0, err
	}
	correct := 0
	for i := range yTrue {
		if yTrue[i] == yPred[i] {
			correct++
		}
	}
	return float64(correct) / float64(len(yTrue)), nil
}

// Evaluate builds a classification report with one row per name; label i
// refers to names[i]. Every class is listed, including those absent from
// yTrue and yPred. Undefined ratios are reported as 0.
func Evaluate(yTrue, yPred []int, names []string) (*domain.ClassificationReport, error) {
	if err := checkLengths(yTrue, yPred); err != nil {
		return nil, err
	}
	if len(names) == 0 {
		return nil, fmt.Errorf("%w: no class names", domain.ErrInvalidInput)
	}

	k := len(names)
	tp := make([]float64, k)
	predicted := make([]float64, k)
	support := make([]float64, k)
	for i := range yTrue {
		t, p := yTrue[i], yPred[i]
		if t < 0 || t >= k || p < 0 || p >= k {
			return nil, fmt.Errorf("%w: sample %d has labels (%d, %d) outside [0,%d)", domain.ErrInvalidInput, i, t, p, k)
		}
		support[t]++
		predicted[p]++
		if t == p {
			tp[t]++
		}
	}

	report := &domain.ClassificationReport{
		Classes: make([]domain.ClassMetrics, k),
		Total:   len(yTrue),
	}
	precision := make([]float64, k)
	recall := make([]float64, k)
	f1 := make([]float64, k)
	correct := 0.0
	for c := range names {
		precision[c] = ratio(tp[c], predicted[c])
		recall[c] = ratio(tp[c], support[c])
		f1[c] = ratio(2*precision[c]*recall[c], precision[c]+recall[c])
		correct += tp[c]

		report.Classes[c] = domain.ClassMetrics{
			Name:      names[c],
			Precision: precision[c],
			Recall:    recall[c],
			F1:        f1[c],
			Support:   int(support[c]),
		}
	}

	report.Accuracy = correct / float64(len(yTrue))
	report.MacroAvg = domain.ClassMetrics{
		Name:      MacroAvgName,
		Precision: stat.Mean(precision, nil),
		Recall:    stat.Mean(recall, nil),
		F1:        stat.Mean(f1, nil),
		Support:   report.Total,
	}
	report.WeightedAvg = domain.ClassMetrics{
		Name:      WeightedAvgName,
		Precision: stat.Mean(precision, support),
		Recall:    stat.Mean(recall, support),
		F1:        stat.Mean(f1, support),
		Support:   report.Total,
	}
	return report, nil
}

func checkLengths(yTrue, yPred []int) error {
	if len(yTrue) != len(yPred) {
		return fmt.Errorf("%w: %d true labels but %d predictions", domain.ErrInvalidInput, len(yTrue), len(yPred))
	}
	if len(yTrue) == 0 {
		return fmt.Errorf("%w: no samples", domain.ErrInvalidInput)
	}
	return nil
}

func ratio(num, den float64) float64 {
	if den == 0 {
		return 0
	}
	return num / den
}
