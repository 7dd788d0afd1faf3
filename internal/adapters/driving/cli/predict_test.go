package cli

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/newsbayes/internal/core/domain"
)

func TestPredictCmd_Use(t *testing.T) {
	assert.Equal(t, "predict [text...]", predictCmd.Use)
}

func TestPredictCmd_HasTopFlag(t *testing.T) {
	flag := predictCmd.Flags().Lookup("top")
	require.NotNil(t, flag)
	assert.Equal(t, "n", flag.Shorthand)
	assert.Equal(t, "3", flag.DefValue)
}

func TestPredictCmd_RequiresText(t *testing.T) {
	_, _, cleanup := setupTestServices()
	defer cleanup()

	_, err := execute(t, "predict")

	require.Error(t, err)
	assert.Contains(t, err.Error(), "requires at least 1 arg(s)")
}

func TestPredictCmd_PrintsRankedCategories(t *testing.T) {
	pipeline, _, cleanup := setupTestServices()
	defer cleanup()

	out, err := execute(t, "predict", "the shuttle reached orbit")

	require.NoError(t, err)
	assert.Equal(t, []string{"the shuttle reached orbit"}, pipeline.texts)
	assert.Nil(t, pipeline.predictOpts.Alpha)
	assert.Contains(t, out, `"the shuttle reached orbit"`)
	assert.Contains(t, out, "→ sci.space")

	space := strings.Index(out, "sci.space                    0.8000")
	autos := strings.Index(out, "rec.autos                    0.2000")
	require.GreaterOrEqual(t, space, 0)
	require.GreaterOrEqual(t, autos, 0)
	assert.Less(t, space, autos)
}

func TestPredictCmd_AlphaOverride(t *testing.T) {
	pipeline, _, cleanup := setupTestServices()
	defer cleanup()

	_, err := execute(t, "predict", "--alpha", "0.01", "text")

	require.NoError(t, err)
	require.NotNil(t, pipeline.predictOpts.Alpha)
	assert.InDelta(t, 0.01, *pipeline.predictOpts.Alpha, 1e-12)
}

func TestPredictCmd_JSON(t *testing.T) {
	_, _, cleanup := setupTestServices()
	defer cleanup()

	out, err := execute(t, "predict", "--json", "--top", "1", "orbit")

	require.NoError(t, err)
	assert.Contains(t, out, `"category": "sci.space"`)
	assert.Contains(t, out, `"probability": 0.8`)
	assert.NotContains(t, out, `"probability": 0.2`)
}

func TestTopCategories(t *testing.T) {
	scores := topCategories([]float64{0.1, 0.6, 0.3}, []string{"a", "b", "c"}, 2)

	require.Len(t, scores, 2)
	assert.Equal(t, "b", scores[0].Category)
	assert.Equal(t, "c", scores[1].Category)
}

func TestTopCategories_MissingNames(t *testing.T) {
	scores := topCategories([]float64{0.4, 0.6}, []string{"a"}, 5)

	require.Len(t, scores, 2)
	assert.Equal(t, "#1", scores[0].Category)
	assert.Equal(t, "a", scores[1].Category)
}

func TestCategoryNames_FallsBackToPredictions(t *testing.T) {
	SetServices(Services{})

	names := categoryNames(predictCmd, []domain.Prediction{
		{Label: 1, Category: "sci.space", Probabilities: []float64{0.3, 0.7}},
	})

	assert.Equal(t, []string{"#0", "sci.space"}, names)
}

func TestTruncate(t *testing.T) {
	assert.Equal(t, "short text", truncate("short   text", 20))
	assert.Equal(t, "abcdefg...", truncate("abcdefghijklmnop", 10))
}
