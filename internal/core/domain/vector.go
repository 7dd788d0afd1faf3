package domain

import "sort"

// SparseVector is a sparse float64 vector over a vocabulary.
// Indices are strictly ascending; absent indices have value 0.
type SparseVector struct {
	Indices []int
	Values  []float64
	Dim     int
}

// NewSparseVector builds a vector of dimension dim from an index→value map.
// Zero values are dropped.
func NewSparseVector(dim int, weights map[int]float64) SparseVector {
	sv := SparseVector{Dim: dim}
	if len(weights) == 0 {
		return sv
	}
	sv.Indices = make([]int, 0, len(weights))
	for idx, val := range weights {
		if val != 0 {
			sv.Indices = append(sv.Indices, idx)
		}
	}
	sort.Ints(sv.Indices)
	sv.Values = make([]float64, len(sv.Indices))
	for i, idx := range sv.Indices {
		sv.Values[i] = weights[idx]
	}
	return sv
}

// Get returns the value at idx.
func (sv SparseVector) Get(idx int) float64 {
	i := sort.SearchInts(sv.Indices, idx)
	if i < len(sv.Indices) && sv.Indices[i] == idx {
		return sv.Values[i]
	}
	return 0
}

// Sum returns the sum of all values.
func (sv SparseVector) Sum() float64 {
	var sum float64
	for _, v := range sv.Values {
		sum += v
	}
	return sum
}

// Nnz returns the number of stored entries.
func (sv SparseVector) Nnz() int {
	return len(sv.Indices)
}

// ToDense converts to a dense slice of length Dim.
func (sv SparseVector) ToDense() []float64 {
	dense := make([]float64, sv.Dim)
	for i, idx := range sv.Indices {
		if idx < sv.Dim {
			dense[idx] = sv.Values[i]
		}
	}
	return dense
}

// Equal reports whether two vectors have the same dimension and entries.
func (sv SparseVector) Equal(other SparseVector) bool {
	if sv.Dim != other.Dim || len(sv.Indices) != len(other.Indices) {
		return false
	}
	for i := range sv.Indices {
		if sv.Indices[i] != other.Indices[i] || sv.Values[i] != other.Values[i] {
			return false
		}
	}
	return true
}
