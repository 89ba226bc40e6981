package llm

import (
	"context"
	"log/slog"
	"time"

	"github.com/coalops/workorder-extractor/internal/cleaner"
	"github.com/coalops/workorder-extractor/internal/extract"
)

// Truncation budget for the prompt. Header, services, pricing and scope live
// in the first pages; change orders and footer live at the end. The middle
// is legal boilerplate and is the part sacrificed.
const (
	truncateBudget = 12000
	headKeep       = 8000
	tailKeep       = 2000
	elisionMarker  = "\n\n[... middle section omitted for brevity ...]\n\n"
)

// GapFiller fills gaps in a rule-extracted record using the language model.
// It never raises on service failure: any call or parse error returns the
// rule record unchanged.
type GapFiller struct {
	completer Completer
	logger    *slog.Logger
}

func NewGapFiller(completer Completer, logger *slog.Logger) *GapFiller {
	if logger == nil {
		logger = slog.Default()
	}
	return &GapFiller{completer: completer, logger: logger}
}

// FillGaps sends a token-efficient slice of the document to the model and
// merges the parsed result into rule under the non-destructive policy.
func (g *GapFiller) FillGaps(ctx context.Context, rawText string, rule extract.Record) extract.Record {
	start := time.Now()

	cleaned := cleaner.CleanDocument(rawText)
	truncated := SmartTruncate(cleaned, truncateBudget)

	g.logger.Info("llm.gapfill.start",
		"cleaned_chars", len(cleaned),
		"prompt_chars", len(truncated),
	)

	raw, err := g.completer.Complete(ctx, SystemPrompt, BuildExtractionPrompt(truncated))
	if err != nil {
		g.logger.Warn("llm.gapfill.call_failed", "error", err,
			"elapsed_ms", time.Since(start).Milliseconds())
		return rule
	}

	resp, err := ParseResponse(raw)
	if err != nil {
		g.logger.Warn("llm.gapfill.parse_failed", "error", err, "raw_bytes", len(raw),
			"elapsed_ms", time.Since(start).Milliseconds())
		return rule
	}

	merged := MergeRecords(rule, resp)
	g.logger.Info("llm.gapfill.ok",
		"header_fields", len(merged.Header),
		"services", len(merged.Services),
		"elapsed_ms", time.Since(start).Milliseconds(),
	)
	return merged
}

// SmartTruncate keeps the most information-dense parts of the document: a
// head slice and a tail slice joined with an explicit elision marker,
// whenever the text exceeds maxChars. At the default budget the slices are
// headKeep and tailKeep; a smaller budget scales both down in the same 4:1
// proportion so the call stays in bounds for any maxChars.
func SmartTruncate(text string, maxChars int) string {
	if len(text) <= maxChars || maxChars <= 0 {
		return text
	}
	head, tail := headKeep, tailKeep
	if maxChars < head+tail {
		head = maxChars * headKeep / (headKeep + tailKeep)
		tail = maxChars - head
	}
	return text[:head] + elisionMarker + text[len(text)-tail:]
}
