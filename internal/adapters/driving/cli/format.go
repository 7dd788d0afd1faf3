package cli

import (
	"strconv"
	"strings"
)

// SummaryThreshold is the array length above which FormatInts and
// FormatStrings elide the middle.
const SummaryThreshold = 1000

const (
	lineWidth = 75
	edgeItems = 3
	ellipsis  = "..."
)

// FormatInts renders values the way NumPy prints an integer array: right
// aligned to a common width, wrapped at 75 columns, with only the first and
// last three values shown when there are more than threshold of them.
// A threshold of 0 never elides.
func FormatInts(values []int, threshold int) string {
	head, tail, elided := edges(len(values), threshold)

	words := make([]string, 0, head+tail)
	for _, v := range values[:head] {
		words = append(words, strconv.Itoa(v))
	}
	for _, v := range values[len(values)-tail:] {
		words = append(words, strconv.Itoa(v))
	}

	width := 0
	for _, w := range words {
		width = max(width, len(w))
	}
	for i, w := range words {
		words[i] = strings.Repeat(" ", width-len(w)) + w
	}
	return wrap(words, head, elided)
}

// FormatStrings renders values the way NumPy prints a string array, each term
// single-quoted. Elision follows FormatInts.
func FormatStrings(values []string, threshold int) string {
	head, tail, elided := edges(len(values), threshold)

	words := make([]string, 0, head+tail)
	for _, v := range values[:head] {
		words = append(words, quote(v))
	}
	for _, v := range values[len(values)-tail:] {
		words = append(words, quote(v))
	}
	return wrap(words, head, elided)
}

// FormatFloat prints f in its shortest round-trip form, always with a
// decimal point or exponent.
func FormatFloat(f float64) string {
	s := strconv.FormatFloat(f, 'g', -1, 64)
	if !strings.ContainsAny(s, ".eIN") {
		s += ".0"
	}
	return s
}

func edges(n, threshold int) (head, tail int, elided bool) {
	if threshold > 0 && n > threshold && n > 2*edgeItems {
		return edgeItems, edgeItems, true
	}
	return n, 0, false
}

// wrap joins words into a bracketed array, inserting the ellipsis after the
// first head words when elided.
func wrap(words []string, head int, elided bool) string {
	const indent = " "
	limit := lineWidth - len("]")

	var b strings.Builder
	line := indent
	add := func(word string) {
		if len(line)+len(word) > limit && len(line) > len(indent) {
			b.WriteString(strings.TrimRight(line, " "))
			b.WriteString("\n")
			line = indent
		}
		line += word
	}

	for i, w := range words {
		if elided && i == head {
			add(ellipsis)
			line += " "
		}
		add(w)
		if i < len(words)-1 {
			line += " "
		}
	}
	b.WriteString(line)

	return "[" + b.String()[len(indent):] + "]"
}

func quote(s string) string {
	if strings.Contains(s, "'") && !strings.Contains(s, `"`) {
		return `"` + s + `"`
	}
	return "'" + strings.ReplaceAll(s, "'", `\'`) + "'"
}
