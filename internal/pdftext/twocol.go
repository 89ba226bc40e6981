package pdftext

import (
	"log/slog"
	"regexp"
	"strings"
)

// Page 1 carries a two-column label/value layout. The text extractor reads
// the whole left column top to bottom before the whole right column, so a
// run of known labels is followed by a run of ":-" value lines. The two runs
// are paired positionally.
var twoColumnLabels = map[string]string{
	"Order No.":      "Order Number",
	"Order Date":     "Order Date",
	"Release Date":   "Release Date",
	"Contact Person": "Contact Person",
	"E-Mail":         "Contact Email",
}

var reValueMarker = regexp.MustCompile(`^:-\s*`)

// ResolveTwoColumns pairs up two-column label/value lines from page 1.
// Pairing is purely positional over the overlapping prefix of the two runs;
// a page that deviates from the expected label/value count can mispair.
//
// Row-major extraction can fuse a label and its value into one physical
// line when they share a visual row, so merged lines are split back into a
// label line and a value line before the runs are collected.
func ResolveTwoColumns(lines []string, logger *slog.Logger) map[string]string {
	if logger == nil {
		logger = slog.Default()
	}
	lines = splitMergedColumns(lines)
	result := map[string]string{}
	i := 0
	for i < len(lines) {
		if _, ok := twoColumnLabels[lines[i]]; !ok {
			i++
			continue
		}
		var labels []string
		for i < len(lines) {
			if _, ok := twoColumnLabels[lines[i]]; !ok {
				break
			}
			labels = append(labels, lines[i])
			i++
		}
		var values []string
		for i < len(lines) && reValueMarker.MatchString(lines[i]) {
			values = append(values, strings.TrimSpace(reValueMarker.ReplaceAllString(lines[i], "")))
			i++
		}
		if len(labels) != len(values) {
			logger.Debug("pdftext.two_column_length_mismatch",
				"labels", len(labels), "values", len(values))
		}
		for j := 0; j < len(labels) && j < len(values); j++ {
			if values[j] != "" {
				result[twoColumnLabels[labels[j]]] = values[j]
			}
		}
	}
	return result
}

// splitMergedColumns splits lines where a known label and its ":-" value
// landed on the same visual row and were fused by row-grouped extraction,
// e.g. "Order No.:- ABC123" becomes the lines "Order No." and ":- ABC123".
func splitMergedColumns(lines []string) []string {
	out := make([]string, 0, len(lines))
	for _, line := range lines {
		if label, value, ok := splitLabelValue(line); ok {
			out = append(out, label, value)
			continue
		}
		out = append(out, line)
	}
	return out
}

func splitLabelValue(line string) (label, value string, ok bool) {
	for l := range twoColumnLabels {
		if !strings.HasPrefix(line, l) {
			continue
		}
		rest := strings.TrimSpace(line[len(l):])
		if reValueMarker.MatchString(rest) {
			return l, rest, true
		}
	}
	return "", "", false
}
