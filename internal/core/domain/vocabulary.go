package domain

import "sort"

// Vocabulary maps terms to feature indices.
// Terms are indexed in lexicographic order. A Vocabulary is immutable.
type Vocabulary struct {
	terms []string
	index map[string]int
}

// NewVocabulary builds a vocabulary from terms, dropping duplicates.
func NewVocabulary(terms []string) *Vocabulary {
	index := make(map[string]int, len(terms))
	sorted := make([]string, 0, len(terms))
	for _, term := range terms {
		if _, ok := index[term]; ok {
			continue
		}
		index[term] = 0
		sorted = append(sorted, term)
	}
	sort.Strings(sorted)
	for i, term := range sorted {
		index[term] = i
	}
	return &Vocabulary{terms: sorted, index: index}
}

// Index returns the feature index of term.
func (v *Vocabulary) Index(term string) (int, bool) {
	i, ok := v.index[term]
	return i, ok
}

// Term returns the term at feature index i.
func (v *Vocabulary) Term(i int) (string, bool) {
	if i < 0 || i >= len(v.terms) {
		return "", false
	}
	return v.terms[i], true
}

// Terms returns a copy of all terms in index order.
func (v *Vocabulary) Terms() []string {
	out := make([]string, len(v.terms))
	copy(out, v.terms)
	return out
}

// Len returns the number of terms.
func (v *Vocabulary) Len() int {
	return len(v.terms)
}
