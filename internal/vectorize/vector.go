package vectorize

import "sort"

// Vector is the sparse encoding of one document. Indices are strictly
// ascending positions into the fitted vocabulary, Values the matching
// weights, and Dim the full vocabulary size. Coordinates not listed are
// zero.
type Vector struct {
	Indices []int
	Values  []float64
	Dim     int
}

// At returns the weight at coordinate i, zero when absent.
func (v Vector) At(i int) float64 {
	k := sort.SearchInts(v.Indices, i)
	if k < len(v.Indices) && v.Indices[k] == i {
		return v.Values[k]
	}
	return 0
}

// NonZero reports how many coordinates carry weight.
func (v Vector) NonZero() int {
	return len(v.Indices)
}

// Dense expands the vector into a full-length slice. Intended for small
// vocabularies and tests; prediction paths use At.
func (v Vector) Dense() []float64 {
	out := make([]float64, v.Dim)
	for k, idx := range v.Indices {
		out[idx] = v.Values[k]
	}
	return out
}
