// Package pdftext extracts raw per-page text from work-order PDFs and
// assembles it into the pipe-delimited stream the rule extractors consume.
//
// The layout-analysis provider only returns structured content for the first
// pages of these documents; change-order notes, exit clauses and ceiling
// values live deep in the continuation sheets. Direct text extraction covers
// the whole document.
package pdftext

import (
	"bytes"
	"fmt"
	"log/slog"
	"os"
	"regexp"
	"strings"

	"github.com/ledongthuc/pdf"
)

// Noise lines that repeat on every "Order Continuation Sheet" page.
// Only the full "Order No. <number>" artifact line is stripped here: a bare
// "Order No." is a real two-column label on page 1.
var noisePatterns = []*regexp.Regexp{
	regexp.MustCompile(`(?i)^Order\s+Continuation\s+Sheet\s*$`),
	regexp.MustCompile(`(?i)^Order\s+No\.?\s+Test\s+(?:Contract\s+Number|Order\s+No\.?)\s*$`),
	regexp.MustCompile(`(?i)^Page\s*:\s*\d+\s+of\s+\d+\s*$`),
}

var reMultiSpace = regexp.MustCompile(`\s{2,}`)

// Result holds the assembled text stream and the side channel resolved from
// the page-1 two-column layout.
type Result struct {
	// FullText is every surviving line of every page joined with " | ".
	// The pipe is a structural paragraph boundary consumed by the rule
	// extractors and must not be collapsed away.
	FullText string
	// Page1Columns maps canonical header field names to values resolved
	// from the page-1 label/value column layout.
	Page1Columns map[string]string
	// Pages is the page count of the source document.
	Pages int
}

// Assembler turns a PDF into the pipe-delimited working stream.
type Assembler struct {
	logger *slog.Logger
}

func NewAssembler(logger *slog.Logger) *Assembler {
	if logger == nil {
		logger = slog.Default()
	}
	return &Assembler{logger: logger}
}

// Assemble extracts text from every page of the PDF at path.
func (a *Assembler) Assemble(path string) (Result, error) {
	content, err := os.ReadFile(path)
	if err != nil {
		return Result{}, fmt.Errorf("read pdf: %w", err)
	}
	return a.AssembleBytes(content)
}

// AssembleBytes extracts text from PDF bytes.
func (a *Assembler) AssembleBytes(content []byte) (Result, error) {
	if len(content) == 0 {
		return Result{}, fmt.Errorf("empty pdf content")
	}
	r, err := pdf.NewReader(bytes.NewReader(content), int64(len(content)))
	if err != nil {
		return Result{}, fmt.Errorf("open pdf: %w", err)
	}

	res := Result{Pages: r.NumPage(), Page1Columns: map[string]string{}}

	var pages []string
	for i := 1; i <= r.NumPage(); i++ {
		page := r.Page(i)
		if page.V.IsNull() {
			continue
		}
		raw, err := pageLines(page)
		if err != nil {
			// A single unreadable page is not fatal; the extractors
			// work on whatever text survives.
			a.logger.Warn("pdftext.page_unreadable", "page", i, "error", err)
			continue
		}

		lines := make([]string, 0, len(raw))
		for _, line := range raw {
			line = strings.TrimSpace(line)
			if line != "" && !isNoise(line) {
				lines = append(lines, line)
			}
		}
		if i == 1 {
			res.Page1Columns = ResolveTwoColumns(lines, a.logger)
		}

		pageText := strings.Join(lines, " | ")
		if strings.TrimSpace(pageText) != "" {
			pages = append(pages, pageText)
		}
	}

	full := strings.Join(pages, " | ")
	full = reMultiSpace.ReplaceAllString(full, " ")
	res.FullText = full

	a.logger.Info("pdftext.assembled",
		"pages", res.Pages,
		"chars", len(full),
		"page1_fields", len(res.Page1Columns),
	)
	return res, nil
}

// pageLines reads a page row by row, preserving the physical line structure
// the two-column resolver depends on.
func pageLines(page pdf.Page) ([]string, error) {
	rows, err := page.GetTextByRow()
	if err != nil {
		return nil, err
	}
	var lines []string
	for _, row := range rows {
		var b strings.Builder
		for _, t := range row.Content {
			b.WriteString(t.S)
		}
		lines = append(lines, b.String())
	}
	return lines, nil
}

func isNoise(line string) bool {
	for _, re := range noisePatterns {
		if re.MatchString(line) {
			return true
		}
	}
	return false
}
