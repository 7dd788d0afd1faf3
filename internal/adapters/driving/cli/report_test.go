package cli

import (
	"bytes"
	"testing"

	"github.com/charmbracelet/lipgloss"
	"github.com/stretchr/testify/assert"

	"github.com/custodia-labs/newsbayes/internal/metrics"
)

func TestDefaultTheme(t *testing.T) {
	theme := DefaultTheme()

	assert.Equal(t, lipgloss.Color("#7C3AED"), theme.Primary)
	assert.Equal(t, lipgloss.Color("#45475A"), theme.Border)
}

func TestRenderReport_PlainWhenNotTerminal(t *testing.T) {
	report := testRunResult().Report

	out := renderReport(new(bytes.Buffer), report, 2, false)

	assert.Equal(t, metrics.Format(report, 2), out)
}

func TestRenderReport_NegativeDigitsUsesDefault(t *testing.T) {
	report := testRunResult().Report

	out := renderReport(new(bytes.Buffer), report, -1, true)

	assert.Equal(t, metrics.Format(report, metrics.DefaultDigits), out)
}

func TestRenderReport_Nil(t *testing.T) {
	assert.Empty(t, renderReport(new(bytes.Buffer), nil, 2, false))
}

func TestRenderReportTable(t *testing.T) {
	report := testRunResult().Report

	out := RenderReportTable(report, 3, DefaultTheme())

	for _, want := range []string{"precision", "recall", "f1-score", "support",
		"rec.autos", "sci.space", "accuracy", "macro avg", "weighted avg", "1.000"} {
		assert.Contains(t, out, want)
	}
}

func TestReportStyles_ScoreBands(t *testing.T) {
	theme := DefaultTheme()
	styles := newReportStyles(theme)

	assert.Equal(t, theme.Success, styles.score(0.9).GetForeground())
	assert.Equal(t, theme.Warning, styles.score(0.6).GetForeground())
	assert.Equal(t, theme.Error, styles.score(0.1).GetForeground())
}

func TestIsTerminal_Buffer(t *testing.T) {
	assert.False(t, isTerminal(new(bytes.Buffer)))
}
