// Package cleaner normalizes noisy OCR text from scanned work-order PDFs.
// It fixes specific known artifacts without mangling valid text.
package cleaner

import (
	"regexp"
	"strings"
)

// letterSpacedWords maps known letter-spaced OCR artifacts to their canonical
// spelling. The table is a curated vocabulary, not a generic "de-space
// everything" rule: joining arbitrary single letters would corrupt valid text.
var letterSpacedWords = []struct {
	re          *regexp.Regexp
	replacement string
}{
	{regexp.MustCompile(`(?i)\bW\s+O\s+R\s+K\s+O\s+R\s+D\s+E\s+R\b`), "WORK ORDER"},
	{regexp.MustCompile(`(?i)\bC\s+O\s+A\s+L\b`), "COAL"},
	{regexp.MustCompile(`(?i)\bP\s+a\s+g\s+e\b`), "Page"},
	{regexp.MustCompile(`(?i)\bh\s+a\s+n\s+d\s+l\s+i\s+n\s+g\b`), "handling"},
	{regexp.MustCompile(`(?i)\bt\s+r\s+a\s+n\s+s\s+p\s+o\s+r\s+t\b`), "transport"},
	{regexp.MustCompile(`(?i)\bc\s+o\s+m\s+m\s+e\s+n\s+c\s+e\s+m\s+e\s+n\s+t\b`), "commencement"},
	{regexp.MustCompile(`(?i)\bs\s+t\s+a\s+t\s+u\s+t\s+o\s+r\s+y\b`), "statutory"},
	{regexp.MustCompile(`(?i)\be\s+n\s+v\s+i\s+r\s+o\s+n\s+m\s+e\s+n\s+t\s+a\s+l\b`), "environmental"},
	{regexp.MustCompile(`(?i)\bc\s+o\s+m\s+p\s+l\s+i\s+a\s+n\s+c\s+e\b`), "compliance"},
	{regexp.MustCompile(`(?i)\bL\s+O\s+A\s+D\s+I\s+N\s+G\b`), "LOADING"},
	{regexp.MustCompile(`(?i)\bT\s+R\s+A\s+N\s+S\s+P\s+O\s+R\s+T\s+A\s+T\s+I\s+O\s+N\b`), "TRANSPORTATION"},
	{regexp.MustCompile(`(?i)\bH\s+A\s+N\s+D\s+L\s+I\s+N\s+G\b`), "HANDLING"},
	{regexp.MustCompile(`(?i)\bL\s+I\s+F\s+T\s+I\s+N\s+G\b`), "LIFTING"},
}

var (
	reWhitespace  = regexp.MustCompile(`\s+`)
	reMultiSpace  = regexp.MustCompile(`\s{2,}`)
	reHashNoise   = regexp.MustCompile(`#{2,}`)
	reLoneHash    = regexp.MustCompile(`\s#\s`)
	reDashColon   = regexp.MustCompile(`\s*:-\s*`)
	rePlaceholder = regexp.MustCompile(`<\s*([^>]*?)\s*>`)

	// Lines that repeat on every "Order Continuation Sheet" page.
	noiseLines = []*regexp.Regexp{
		regexp.MustCompile(`(?i)^Page\s*:\s*\d+\s*(of\s*\d+)?$`),
		regexp.MustCompile(`(?i)^Order\s+Continuation\s+Sheet\s*$`),
		regexp.MustCompile(`(?i)^Order\s+No\.?\s*$`),
	}
)

const edgeNoiseChars = " .,:;-#*"

// FixLetterSpacing fixes only known letter-spaced words.
func FixLetterSpacing(text string) string {
	for _, w := range letterSpacedWords {
		text = w.re.ReplaceAllString(text, w.replacement)
	}
	return text
}

// Clean normalizes a single string extracted from noisy OCR output.
func Clean(text string) string {
	if text == "" {
		return ""
	}
	text = strings.TrimSpace(text)
	text = reWhitespace.ReplaceAllString(text, " ")
	text = FixLetterSpacing(text)

	// Remove repeated hash noise but preserve a single # used as a bullet.
	text = reHashNoise.ReplaceAllString(text, "")
	text = stripLoneHashes(text)

	// Normalize label separators: ":-" or ":- " -> ": "
	text = reDashColon.ReplaceAllString(text, ": ")

	// Keep placeholders readable: < VENDOR NAME > -> <VENDOR NAME>
	text = tightenPlaceholders(text)

	// Removals above can leave double spaces behind.
	text = reMultiSpace.ReplaceAllString(text, " ")
	text = strings.Trim(text, edgeNoiseChars)
	return strings.TrimSpace(text)
}

// CleanParagraph is a lighter clean for a raw paragraph. It preserves
// structure and only removes OCR noise; use it when building the full text
// stream from per-line paragraphs.
func CleanParagraph(text string) string {
	if text == "" {
		return ""
	}
	text = reWhitespace.ReplaceAllString(strings.TrimSpace(text), " ")
	text = FixLetterSpacing(text)
	text = reHashNoise.ReplaceAllString(text, "")
	text = stripLoneHashes(text)
	text = reDashColon.ReplaceAllString(text, ": ")
	text = tightenPlaceholders(text)
	text = reMultiSpace.ReplaceAllString(text, " ")
	return strings.TrimSpace(text)
}

// CleanDocument cleans a larger block of concatenated text for LLM or regex
// consumption: strips page headers/footers and short noise lines, then joins
// surviving lines with single spaces.
func CleanDocument(raw string) string {
	if raw == "" {
		return ""
	}
	var kept []string
	for _, line := range strings.Split(raw, "\n") {
		line = strings.TrimSpace(line)
		if line == "" || len(line) < 4 || isNoiseLine(line) {
			continue
		}
		kept = append(kept, CleanParagraph(line))
	}
	out := strings.Join(kept, " ")
	out = reMultiSpace.ReplaceAllString(out, " ")
	return strings.TrimSpace(out)
}

// stripLoneHashes removes space-delimited hashes to a fixed point. A single
// non-overlapping pass leaves every second hash of an alternating
// "# # #" run, since each match consumes the space the next one needs.
func stripLoneHashes(text string) string {
	for {
		replaced := reLoneHash.ReplaceAllString(text, " ")
		if replaced == text {
			return text
		}
		text = replaced
	}
}

func isNoiseLine(line string) bool {
	for _, re := range noiseLines {
		if re.MatchString(line) {
			return true
		}
	}
	return false
}

func tightenPlaceholders(text string) string {
	return rePlaceholder.ReplaceAllStringFunc(text, func(m string) string {
		inner := strings.TrimSpace(m[1 : len(m)-1])
		return "<" + inner + ">"
	})
}
