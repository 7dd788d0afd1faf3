package cli

import (
	"io"
	"os"
	"strconv"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"golang.org/x/term"

	"github.com/custodia-labs/newsbayes/internal/core/domain"
	"github.com/custodia-labs/newsbayes/internal/metrics"
)

// Theme defines the colour palette of terminal output.
type Theme struct {
	// Primary is the main accent colour.
	Primary lipgloss.Color

	// Secondary is the secondary accent colour.
	Secondary lipgloss.Color

	// Muted is for less important text.
	Muted lipgloss.Color

	// Success indicates good scores.
	Success lipgloss.Color

	// Warning indicates middling scores.
	Warning lipgloss.Color

	// Error indicates poor scores.
	Error lipgloss.Color

	// Border is the table border colour.
	Border lipgloss.Color
}

// DefaultTheme returns the default colour theme.
func DefaultTheme() *Theme {
	return &Theme{
		Primary:   lipgloss.Color("#7C3AED"), // Purple
		Secondary: lipgloss.Color("#06B6D4"), // Cyan
		Muted:     lipgloss.Color("#6C7086"), // Medium gray
		Success:   lipgloss.Color("#A6E3A1"), // Green
		Warning:   lipgloss.Color("#F9E2AF"), // Yellow
		Error:     lipgloss.Color("#F38BA8"), // Red
		Border:    lipgloss.Color("#45475A"), // Border gray
	}
}

// Score bands used to colour F1 cells.
const (
	goodScore = 0.8
	fairScore = 0.5
)

type reportStyles struct {
	theme   *Theme
	header  lipgloss.Style
	name    lipgloss.Style
	number  lipgloss.Style
	summary lipgloss.Style
	border  lipgloss.Style
}

func newReportStyles(theme *Theme) reportStyles {
	cell := lipgloss.NewStyle().Padding(0, 1)
	return reportStyles{
		theme:   theme,
		header:  cell.Bold(true).Foreground(theme.Primary).Align(lipgloss.Center),
		name:    cell.Foreground(theme.Secondary).Align(lipgloss.Right),
		number:  cell.Align(lipgloss.Right),
		summary: cell.Foreground(theme.Muted).Align(lipgloss.Right),
		border:  lipgloss.NewStyle().Foreground(theme.Border),
	}
}

// score colours a cell by its band.
func (s reportStyles) score(v float64) lipgloss.Style {
	switch {
	case v >= goodScore:
		return s.number.Foreground(s.theme.Success)
	case v >= fairScore:
		return s.number.Foreground(s.theme.Warning)
	default:
		return s.number.Foreground(s.theme.Error)
	}
}

// renderReport draws the report as a styled table on a terminal and as
// plain text otherwise.
func renderReport(w io.Writer, report *domain.ClassificationReport, digits int, plain bool) string {
	if report == nil {
		return ""
	}
	if digits < 0 {
		digits = metrics.DefaultDigits
	}
	if plain || !isTerminal(w) {
		return metrics.Format(report, digits)
	}
	return RenderReportTable(report, digits, DefaultTheme()) + "\n"
}

// RenderReportTable draws the report as a bordered lipgloss table.
func RenderReportTable(report *domain.ClassificationReport, digits int, theme *Theme) string {
	styles := newReportStyles(theme)
	classes := len(report.Classes)

	rows := make([][]string, 0, classes+3)
	for _, row := range report.Classes {
		rows = append(rows, metricRow(row, digits))
	}
	rows = append(rows,
		[]string{metrics.AccuracyName, "", "", formatScore(report.Accuracy, digits), strconv.Itoa(report.Total)},
		metricRow(report.MacroAvg, digits),
		metricRow(report.WeightedAvg, digits),
	)

	t := table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(styles.border).
		BorderRow(false).
		Headers("", "precision", "recall", "f1-score", "support").
		Rows(rows...).
		StyleFunc(func(row, col int) lipgloss.Style {
			switch {
			case row == table.HeaderRow:
				return styles.header
			case row >= classes:
				return styles.summary
			case col == 0:
				return styles.name
			case col == 3:
				return styles.score(report.Classes[row].F1)
			default:
				return styles.number
			}
		})
	return t.String()
}

func metricRow(m domain.ClassMetrics, digits int) []string {
	return []string{
		m.Name,
		formatScore(m.Precision, digits),
		formatScore(m.Recall, digits),
		formatScore(m.F1, digits),
		strconv.Itoa(m.Support),
	}
}

func formatScore(v float64, digits int) string {
	return strconv.FormatFloat(v, 'f', digits, 64)
}

func isTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	return ok && term.IsTerminal(int(f.Fd()))
}
