package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/newsbayes/internal/core/domain"
)

func TestFactory_NewVectorizer(t *testing.T) {
	f := NewFactory()

	v, release, err := f.NewVectorizer(domain.VectorizerSettings{StopWords: true})
	require.NoError(t, err)
	defer release()

	require.NoError(t, v.Fit([]string{"the rockets are launching", "rockets and orbits"}))
	assert.Equal(t, []string{"launching", "orbits", "rockets"}, v.Vocabulary().Terms())
}

func TestFactory_NewVectorizer_Stemming(t *testing.T) {
	f := NewFactory()

	v, release, err := f.NewVectorizer(domain.VectorizerSettings{Stem: true})
	require.NoError(t, err)
	defer release()

	require.NoError(t, v.Fit([]string{"running runs"}))
	assert.Equal(t, []string{"run"}, v.Vocabulary().Terms())
}

func TestFactory_NewVectorizer_InvalidNorm(t *testing.T) {
	_, _, err := NewFactory().NewVectorizer(domain.VectorizerSettings{Norm: "l1"})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestFactory_NewClassifier(t *testing.T) {
	f := NewFactory()

	c, err := f.NewClassifier(domain.ClassifierSettings{Alpha: 0.5})
	require.NoError(t, err)
	assert.Nil(t, c.Classes())

	_, err = f.NewClassifier(domain.ClassifierSettings{Alpha: 0})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}
