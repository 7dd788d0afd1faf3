package domain

import (
	"fmt"
	"sort"
	"time"
)

// Subset identifies a partition of the source archive.
type Subset string

// Available subsets.
const (
	// SubsetTrain selects the archive's training partition.
	SubsetTrain Subset = "train"

	// SubsetTest selects the archive's test partition.
	SubsetTest Subset = "test"

	// SubsetAll selects every document.
	SubsetAll Subset = "all"
)

// IsValid returns true if the subset is recognised.
func (s Subset) IsValid() bool {
	switch s {
	case SubsetTrain, SubsetTest, SubsetAll:
		return true
	default:
		return false
	}
}

// Includes reports whether a document from partition p belongs to s.
func (s Subset) Includes(p Subset) bool {
	return s == SubsetAll || s == p
}

// String returns the string representation.
func (s Subset) String() string {
	return string(s)
}

// Corpus is an ordered collection of labelled documents.
type Corpus struct {
	// Name identifies the corpus in the cache.
	Name string

	// Categories holds the category names; a document's Label indexes it.
	Categories []string

	// Documents holds the documents in load order.
	Documents []Document

	// FetchedAt is when the corpus was fetched from its source.
	FetchedAt time.Time
}

// CorpusInfo summarises a cached corpus.
type CorpusInfo struct {
	Name       string
	Documents  int
	Categories int
	FetchedAt  time.Time
}

// CategoryCount is a category name with its document count.
type CategoryCount struct {
	Name      string
	Documents int
}

// Len returns the number of documents.
func (c *Corpus) Len() int {
	return len(c.Documents)
}

// Texts returns the document contents in order.
func (c *Corpus) Texts() []string {
	return Texts(c.Documents)
}

// Labels returns the document labels in order.
func (c *Corpus) Labels() []int {
	return Labels(c.Documents)
}

// CategoryIndex returns the label of a category name.
func (c *Corpus) CategoryIndex(name string) (int, bool) {
	for i, category := range c.Categories {
		if category == name {
			return i, true
		}
	}
	return -1, false
}

// Counts returns the number of documents per category, in category order.
func (c *Corpus) Counts() []CategoryCount {
	counts := make([]CategoryCount, len(c.Categories))
	for i, name := range c.Categories {
		counts[i].Name = name
	}
	for i := range c.Documents {
		label := c.Documents[i].Label
		if label >= 0 && label < len(counts) {
			counts[label].Documents++
		}
	}
	return counts
}

// Validate checks every label is in range and agrees with its category name.
func (c *Corpus) Validate() error {
	if len(c.Documents) == 0 {
		return ErrEmptyCorpus
	}
	for i := range c.Documents {
		doc := &c.Documents[i]
		if doc.Label < 0 || doc.Label >= len(c.Categories) {
			return fmt.Errorf("%w: document %s has label %d outside [0,%d)",
				ErrInvalidInput, doc.URI, doc.Label, len(c.Categories))
		}
		if c.Categories[doc.Label] != doc.Category {
			return fmt.Errorf("%w: document %s labelled %d (%s) but filed under %s",
				ErrInvalidInput, doc.URI, doc.Label, c.Categories[doc.Label], doc.Category)
		}
	}
	return nil
}

// Relabel sorts the distinct category names of docs and assigns each
// document the index of its category. It returns the sorted names.
func Relabel(docs []Document) []string {
	seen := make(map[string]struct{})
	for i := range docs {
		seen[docs[i].Category] = struct{}{}
	}
	categories := make([]string, 0, len(seen))
	for name := range seen {
		categories = append(categories, name)
	}
	sort.Strings(categories)

	index := make(map[string]int, len(categories))
	for i, name := range categories {
		index[name] = i
	}
	for i := range docs {
		docs[i].Label = index[docs[i].Category]
	}
	return categories
}

// Texts returns the contents of docs in order.
func Texts(docs []Document) []string {
	texts := make([]string, len(docs))
	for i := range docs {
		texts[i] = docs[i].Content
	}
	return texts
}

// Labels returns the labels of docs in order.
func Labels(docs []Document) []int {
	labels := make([]int, len(docs))
	for i := range docs {
		labels[i] = docs[i].Label
	}
	return labels
}
