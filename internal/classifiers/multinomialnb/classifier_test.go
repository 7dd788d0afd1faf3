package multinomialnb

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/newsbayes/internal/core/domain"
)

func dense(values ...float64) domain.SparseVector {
	weights := make(map[int]float64, len(values))
	for i, v := range values {
		weights[i] = v
	}
	return domain.NewSparseVector(len(values), weights)
}

// toyData has two class-0 samples leaning on feature 0 and one class-1
// sample on feature 2.
func toyData() ([]domain.SparseVector, []int) {
	return []domain.SparseVector{
		dense(2, 0, 0),
		dense(1, 1, 0),
		dense(0, 0, 3),
	}, []int{0, 0, 1}
}

func fitted(t *testing.T) *Classifier {
	t.Helper()
	nb, err := New(1.0)
	require.NoError(t, err)
	X, y := toyData()
	require.NoError(t, nb.Fit(X, y))
	return nb
}

func TestNew(t *testing.T) {
	nb, err := New(0.5)
	require.NoError(t, err)
	assert.Equal(t, 0.5, nb.Alpha())
	assert.Nil(t, nb.Classes())

	for _, alpha := range []float64{0, -1} {
		_, err := New(alpha)
		assert.ErrorIs(t, err, domain.ErrInvalidInput)
	}
}

func TestFit_Priors(t *testing.T) {
	nb := fitted(t)

	priors, err := nb.Priors()
	require.NoError(t, err)
	assert.InDeltaSlice(t, []float64{2.0 / 3.0, 1.0 / 3.0}, priors, 1e-12)

	var sum float64
	for _, p := range priors {
		sum += p
	}
	assert.InDelta(t, 1.0, sum, 1e-12)
}

func TestFit_FeatureProb(t *testing.T) {
	nb := fitted(t)

	tests := []struct {
		label, feature int
		want           float64
	}{
		{0, 0, 4.0 / 7.0},
		{0, 1, 2.0 / 7.0},
		{0, 2, 1.0 / 7.0},
		{1, 0, 1.0 / 6.0},
		{1, 1, 1.0 / 6.0},
		{1, 2, 4.0 / 6.0},
	}
	for _, tt := range tests {
		got, err := nb.FeatureProb(tt.label, tt.feature)
		require.NoError(t, err)
		assert.InDelta(t, tt.want, got, 1e-12, "P(%d|%d)", tt.feature, tt.label)
		assert.Greater(t, got, 0.0)
	}
}

func TestFit_SmoothingKeepsEveryProbabilityPositive(t *testing.T) {
	nb, err := New(1e-3)
	require.NoError(t, err)
	X := []domain.SparseVector{dense(5, 0, 0, 0), dense(0, 0, 0, 7)}
	require.NoError(t, nb.Fit(X, []int{0, 1}))

	for _, label := range nb.Classes() {
		var sum float64
		for i := 0; i < 4; i++ {
			p, err := nb.FeatureProb(label, i)
			require.NoError(t, err)
			assert.Greater(t, p, 0.0)
			sum += p
		}
		assert.InDelta(t, 1.0, sum, 1e-12)
	}
}

func TestFit_Errors(t *testing.T) {
	tests := []struct {
		name string
		X    []domain.SparseVector
		y    []int
		err  error
	}{
		{"empty", nil, nil, domain.ErrInvalidInput},
		{"length mismatch", []domain.SparseVector{dense(1)}, []int{0, 1}, domain.ErrInvalidInput},
		{"zero dimension", []domain.SparseVector{{}}, []int{0}, domain.ErrInvalidInput},
		{"negative weight", []domain.SparseVector{dense(1, -1)}, []int{0}, domain.ErrInvalidInput},
		{"dimension mismatch", []domain.SparseVector{dense(1, 0), dense(1, 0, 0)}, []int{0, 1}, domain.ErrDimensionMismatch},
		{"index out of range", []domain.SparseVector{{Indices: []int{3}, Values: []float64{1}, Dim: 2}}, []int{0}, domain.ErrDimensionMismatch},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			nb, err := New(1.0)
			require.NoError(t, err)
			assert.ErrorIs(t, nb.Fit(tt.X, tt.y), tt.err)
			assert.Nil(t, nb.Classes())
		})
	}
}

func TestPredict(t *testing.T) {
	nb := fitted(t)

	pred, err := nb.Predict([]domain.SparseVector{dense(1, 0, 0), dense(0, 0, 1), dense(0, 0, 0)})
	require.NoError(t, err)
	assert.Equal(t, []int{0, 1, 0}, pred)
}

func TestPredict_TieGoesToFirstClass(t *testing.T) {
	nb, err := New(1.0)
	require.NoError(t, err)
	X := []domain.SparseVector{dense(1, 0), dense(1, 0)}
	require.NoError(t, nb.Fit(X, []int{5, 3}))

	assert.Equal(t, []int{3, 5}, nb.Classes())
	pred, err := nb.Predict([]domain.SparseVector{dense(0, 1)})
	require.NoError(t, err)
	assert.Equal(t, []int{3}, pred)
}

func TestPredict_Errors(t *testing.T) {
	nb, err := New(1.0)
	require.NoError(t, err)

	_, err = nb.Predict([]domain.SparseVector{dense(1)})
	assert.ErrorIs(t, err, domain.ErrNotFitted)

	nb = fitted(t)
	_, err = nb.Predict([]domain.SparseVector{dense(1, 0)})
	assert.ErrorIs(t, err, domain.ErrDimensionMismatch)
}

func TestPredictProba(t *testing.T) {
	nb := fitted(t)

	proba, err := nb.PredictProba([]domain.SparseVector{dense(1, 0, 0), dense(0, 0, 1)})
	require.NoError(t, err)
	require.Len(t, proba, 2)

	assert.InDelta(t, 144.0/165.0, proba[0][0], 1e-12)
	for _, row := range proba {
		assert.InDelta(t, 1.0, row[0]+row[1], 1e-12)
	}
	assert.Greater(t, proba[1][1], proba[1][0])
}

func TestScore(t *testing.T) {
	nb := fitted(t)
	X, y := toyData()

	acc, err := nb.Score(X, y)
	require.NoError(t, err)
	assert.Equal(t, 1.0, acc)

	acc, err = nb.Score(X, []int{1, 1, 1})
	require.NoError(t, err)
	assert.InDelta(t, 1.0/3.0, acc, 1e-12)

	_, err = nb.Score(X, []int{0})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
	_, err = nb.Score(nil, nil)
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestAccessors_NotFitted(t *testing.T) {
	nb, err := New(1.0)
	require.NoError(t, err)

	_, err = nb.Priors()
	assert.ErrorIs(t, err, domain.ErrNotFitted)
	_, err = nb.FeatureProb(0, 0)
	assert.ErrorIs(t, err, domain.ErrNotFitted)
}

func TestFeatureProb_Errors(t *testing.T) {
	nb := fitted(t)

	_, err := nb.FeatureProb(7, 0)
	assert.ErrorIs(t, err, domain.ErrNotFound)
	_, err = nb.FeatureProb(0, 3)
	assert.ErrorIs(t, err, domain.ErrDimensionMismatch)
}

func TestClasses_ReturnsCopy(t *testing.T) {
	nb := fitted(t)

	classes := nb.Classes()
	classes[0] = 99
	assert.Equal(t, []int{0, 1}, nb.Classes())
}
