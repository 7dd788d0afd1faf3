package metrics

import (
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/custodia-labs/newsbayes/internal/core/domain"
)

// DefaultDigits is the number of decimals printed by Format.
const DefaultDigits = 2

// Format renders the report as a fixed-width text table: a header row, one
// row per class, then the accuracy, macro average and weighted average rows.
func Format(report *domain.ClassificationReport, digits int) string {
	if report == nil {
		return ""
	}
	if digits < 0 {
		digits = DefaultDigits
	}

	width := utf8.RuneCountInString(WeightedAvgName)
	for _, row := range report.Classes {
		width = max(width, utf8.RuneCountInString(row.Name))
	}
	width = max(width, digits)

	var b strings.Builder
	fmt.Fprintf(&b, "%*s ", width, "")
	for _, h := range []string{"precision", "recall", "f1-score", "support"} {
		fmt.Fprintf(&b, " %9s", h)
	}
	b.WriteString("\n\n")

	for _, row := range report.Classes {
		writeRow(&b, row, width, digits)
	}
	b.WriteString("\n")

	fmt.Fprintf(&b, "%*s  %9s %9s %9.*f %9d\n", width, AccuracyName, "", "", digits, report.Accuracy, report.Total)
	writeRow(&b, report.MacroAvg, width, digits)
	writeRow(&b, report.WeightedAvg, width, digits)
	return b.String()
}

func writeRow(b *strings.Builder, row domain.ClassMetrics, width, digits int) {
	fmt.Fprintf(b, "%*s  %9.*f %9.*f %9.*f %9d\n",
		width, row.Name, digits, row.Precision, digits, row.Recall, digits, row.F1, row.Support)
}
