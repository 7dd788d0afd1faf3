package domain

import (
	"fmt"
	"slices"
)

const unknownDescription = "Unknown"

// DefaultCorpusURL is the location of the 20 Newsgroups "bydate" archive.
const DefaultCorpusURL = "https://ndownloader.figshare.com/files/5975967"

// DefaultTestSize is the default test share of the train/test split.
const DefaultTestSize = 0.25

// DefaultAlpha is the default additive smoothing constant.
const DefaultAlpha = 1.0

// SourceType identifies where the corpus is fetched from.
type SourceType string

// Available corpus sources.
const (
	// SourceNewsgroups downloads the archive over HTTP.
	SourceNewsgroups SourceType = "newsgroups"

	// SourceFilesystem reads a local archive or directory tree.
	SourceFilesystem SourceType = "filesystem"
)

// IsValid returns true if the source type is recognised.
func (s SourceType) IsValid() bool {
	switch s {
	case SourceNewsgroups, SourceFilesystem:
		return true
	default:
		return false
	}
}

// String returns the string representation.
func (s SourceType) String() string {
	return string(s)
}

// Description returns a human-readable description of the source.
func (s SourceType) Description() string {
	switch s {
	case SourceNewsgroups:
		return "20 Newsgroups (download)"
	case SourceFilesystem:
		return "Local archive or directory"
	default:
		return unknownDescription
	}
}

// NormType selects the per-document vector normalisation.
type NormType string

// Available norms.
const (
	// NormNone leaves TF-IDF weights unscaled.
	NormNone NormType = ""

	// NormL2 scales every vector to unit Euclidean length.
	NormL2 NormType = "l2"
)

// IsValid returns true if the norm is recognised.
func (n NormType) IsValid() bool {
	return n == NormNone || n == NormL2
}

// RemovableParts lists the post sections that can be stripped before
// vectorisation, in the order they are applied.
var RemovableParts = []string{"headers", "footers", "quotes"}

// CorpusSettings controls corpus loading.
type CorpusSettings struct {
	// Source is where the corpus comes from.
	Source SourceType

	// URL is the archive URL for the newsgroups source.
	URL string

	// Path is the archive file or directory for the filesystem source.
	Path string

	// Subset selects the archive partition.
	Subset Subset

	// Categories restricts the corpus to these category names. Empty means all.
	Categories []string

	// Remove lists post sections to strip (see RemovableParts).
	Remove []string
}

// SplitSettings controls the train/test split.
type SplitSettings struct {
	// TestSize is the test share, in (0,1).
	TestSize float64

	// Seed fixes the random source. Nil draws a fresh seed per run.
	Seed *int64
}

// VectorizerSettings controls tokenisation and TF-IDF weighting.
type VectorizerSettings struct {
	// Stem applies Snowball English stemming to tokens.
	Stem bool

	// StopWords drops common English words.
	StopWords bool

	// StripAccents folds accented letters to their base form before tokenising.
	StripAccents bool

	// SmoothIDF uses ln((1+N)/(1+df))+1 instead of ln(N/df).
	SmoothIDF bool

	// Norm is the per-document normalisation.
	Norm NormType
}

// ClassifierSettings controls the Naive Bayes classifier.
type ClassifierSettings struct {
	// Alpha is the additive smoothing constant, > 0.
	Alpha float64
}

// Settings holds the complete pipeline configuration.
type Settings struct {
	Corpus     CorpusSettings
	Split      SplitSettings
	Vectorizer VectorizerSettings
	Classifier ClassifierSettings
}

// DefaultSettings returns the settings used when nothing is configured.
func DefaultSettings() Settings {
	return Settings{
		Corpus: CorpusSettings{
			Source: SourceNewsgroups,
			URL:    DefaultCorpusURL,
			Subset: SubsetAll,
		},
		Split: SplitSettings{
			TestSize: DefaultTestSize,
		},
		Classifier: ClassifierSettings{
			Alpha: DefaultAlpha,
		},
	}
}

// Validate checks the settings are usable.
func (s *Settings) Validate() error {
	if !s.Corpus.Source.IsValid() {
		return fmt.Errorf("%w: unknown corpus source %q", ErrInvalidInput, s.Corpus.Source)
	}
	if s.Corpus.Source == SourceNewsgroups && s.Corpus.URL == "" {
		return fmt.Errorf("%w: corpus.url is required for the %s source", ErrInvalidInput, s.Corpus.Source)
	}
	if s.Corpus.Source == SourceFilesystem && s.Corpus.Path == "" {
		return fmt.Errorf("%w: corpus.path is required for the %s source", ErrInvalidInput, s.Corpus.Source)
	}
	if !s.Corpus.Subset.IsValid() {
		return fmt.Errorf("%w: unknown subset %q", ErrInvalidInput, s.Corpus.Subset)
	}
	for _, part := range s.Corpus.Remove {
		if !slices.Contains(RemovableParts, part) {
			return fmt.Errorf("%w: cannot remove %q (want one of %v)", ErrInvalidInput, part, RemovableParts)
		}
	}
	if err := ValidateTestSize(s.Split.TestSize); err != nil {
		return err
	}
	if !s.Vectorizer.Norm.IsValid() {
		return fmt.Errorf("%w: unknown norm %q", ErrInvalidInput, s.Vectorizer.Norm)
	}
	return ValidateAlpha(s.Classifier.Alpha)
}

// ValidateTestSize checks a test share lies strictly between 0 and 1.
func ValidateTestSize(f float64) error {
	if !(f > 0 && f < 1) {
		return fmt.Errorf("%w: test size %v not in (0,1)", ErrInvalidInput, f)
	}
	return nil
}

// ValidateAlpha checks a smoothing constant is positive.
func ValidateAlpha(alpha float64) error {
	if !(alpha > 0) {
		return fmt.Errorf("%w: alpha %v must be > 0", ErrInvalidInput, alpha)
	}
	return nil
}
