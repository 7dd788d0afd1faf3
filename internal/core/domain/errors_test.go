package domain

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func sentinelErrors() map[string]error {
	return map[string]error{
		"ErrNotFound":          ErrNotFound,
		"ErrInvalidInput":      ErrInvalidInput,
		"ErrUnsupportedType":   ErrUnsupportedType,
		"ErrCorpusUnavailable": ErrCorpusUnavailable,
		"ErrEmptyCorpus":       ErrEmptyCorpus,
		"ErrConnectorClosed":   ErrConnectorClosed,
		"ErrEmptyVocabulary":   ErrEmptyVocabulary,
		"ErrNotFitted":         ErrNotFitted,
		"ErrDimensionMismatch": ErrDimensionMismatch,
	}
}

func TestErrors_Messages(t *testing.T) {
	tests := []struct {
		err  error
		want string
	}{
		{ErrNotFound, "not found"},
		{ErrInvalidInput, "invalid input"},
		{ErrUnsupportedType, "unsupported type"},
		{ErrCorpusUnavailable, "corpus unavailable"},
		{ErrEmptyCorpus, "empty corpus"},
		{ErrConnectorClosed, "connector closed"},
		{ErrEmptyVocabulary, "empty vocabulary"},
		{ErrNotFitted, "not fitted"},
		{ErrDimensionMismatch, "dimension mismatch"},
	}

	for _, tt := range tests {
		t.Run(tt.want, func(t *testing.T) {
			assert.EqualError(t, tt.err, tt.want)
		})
	}
}

func TestErrors_Distinct(t *testing.T) {
	all := sentinelErrors()
	for name, err := range all {
		for other, otherErr := range all {
			if name == other {
				continue
			}
			assert.False(t, errors.Is(err, otherErr), "%s should not match %s", name, other)
		}
	}
}

func TestErrors_SurviveWrapping(t *testing.T) {
	for name, err := range sentinelErrors() {
		t.Run(name, func(t *testing.T) {
			wrapped := fmt.Errorf("load corpus: %w", fmt.Errorf("read archive: %w", err))

			assert.ErrorIs(t, wrapped, err)
			assert.Contains(t, wrapped.Error(), err.Error())
		})
	}
}

func TestErrors_ValidationWrapsInvalidInput(t *testing.T) {
	assert.ErrorIs(t, ValidateTestSize(1.5), ErrInvalidInput)
	assert.ErrorIs(t, ValidateAlpha(0), ErrInvalidInput)

	settings := DefaultSettings()
	settings.Corpus.Subset = "validation"
	assert.ErrorIs(t, settings.Validate(), ErrInvalidInput)
}
