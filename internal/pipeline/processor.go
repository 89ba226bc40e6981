// Package pipeline coordinates the per-document extraction flow: layout
// analysis, text assembly, rule extraction, optional LLM gap-fill, XLSX
// export and run-history recording.
package pipeline

import (
	"context"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"github.com/coalops/workorder-extractor/internal/common"
	"github.com/coalops/workorder-extractor/internal/export"
	"github.com/coalops/workorder-extractor/internal/extract"
	"github.com/coalops/workorder-extractor/internal/layout"
	"github.com/coalops/workorder-extractor/internal/llm"
	"github.com/coalops/workorder-extractor/internal/pdftext"
	"github.com/coalops/workorder-extractor/internal/repository"
)

// Processor runs one document end to end. Documents are processed fully and
// independently: there is no shared state between runs beyond read-only
// configuration.
type Processor struct {
	Logger    *slog.Logger
	Layout    *layout.Client
	Assembler *pdftext.Assembler
	Filler    *llm.GapFiller // nil disables the gap-fill stage
	Export    *export.Service
	Runs      *repository.RunStore // nil disables run history
}

func NewProcessor(logger *slog.Logger, lc *layout.Client, asm *pdftext.Assembler, filler *llm.GapFiller, exp *export.Service, runs *repository.RunStore) *Processor {
	if logger == nil {
		logger = slog.Default()
	}
	return &Processor{
		Logger:    logger,
		Layout:    lc,
		Assembler: asm,
		Filler:    filler,
		Export:    exp,
		Runs:      runs,
	}
}

// ProcessPDF extracts one work order and writes its workbook, returning the
// output path. Layout-analysis failure is fatal for the document; the LLM
// stage fails open inside the gap filler.
func (p *Processor) ProcessPDF(ctx context.Context, pdfPath string) (string, error) {
	started := time.Now()

	info, err := os.Stat(pdfPath)
	if err != nil || info.IsDir() {
		err = common.NewAppError("INPUT_ERROR", "pdf not found: "+pdfPath, common.ErrNotFound)
		p.recordRun(ctx, pdfPath, extract.Record{}, false, "", started, err)
		return "", err
	}

	pdfBytes, err := os.ReadFile(pdfPath)
	if err != nil {
		err = common.WrapError(err, "read pdf")
		p.recordRun(ctx, pdfPath, extract.Record{}, false, "", started, err)
		return "", err
	}

	p.Logger.Info("pipeline.start", "file", pdfPath, "bytes", len(pdfBytes))

	result, err := p.Layout.Analyze(ctx, pdfBytes)
	if err != nil {
		err = common.WrapError(err, "layout analysis")
		p.recordRun(ctx, pdfPath, extract.Record{}, false, "", started, err)
		return "", err
	}

	asm, err := p.Assembler.AssembleBytes(pdfBytes)
	if err != nil {
		err = common.WrapError(err, "pdf text extraction")
		p.recordRun(ctx, pdfPath, extract.Record{}, false, "", started, err)
		return "", err
	}

	idx := layout.BuildIndex(result)
	meta := extract.Metadata{
		SourceFile:  pdfPath,
		Pages:       result.PageCount(),
		Paragraphs:  len(result.Paragraphs),
		KVPairs:     len(result.KeyValuePairs),
		Tables:      len(result.Tables),
		Model:       result.ModelID,
		ExtractedAt: time.Now().Format(time.RFC3339),
	}

	rec := extract.ExtractRecord(asm.FullText, idx, asm.Page1Columns, meta)

	llmUsed := false
	if p.Filler != nil && llm.NeedsFallback(rec, p.Logger) {
		llmUsed = true
		rec = p.Filler.FillGaps(ctx, asm.FullText, rec)
	}

	p.Logger.Info("pipeline.extracted",
		"file", pdfPath,
		"header_fields", len(rec.Header),
		"services", len(rec.Services),
		"pricing_fields", len(rec.Pricing),
		"change_orders", len(rec.ChangeOrders),
		"llm_used", llmUsed,
	)

	outPath, err := p.Export.SaveXLSX(rec, pdfPath)
	if err != nil {
		err = common.WrapError(err, "export")
		p.recordRun(ctx, pdfPath, rec, llmUsed, "", started, err)
		return "", err
	}

	p.recordRun(ctx, pdfPath, rec, llmUsed, outPath, started, nil)
	p.Logger.Info("pipeline.done", "file", pdfPath, "output", outPath,
		"elapsed_ms", time.Since(started).Milliseconds())
	return outPath, nil
}

// ProcessFolder runs every *.pdf under dir. One document's failure is logged
// and the batch continues with the next.
func (p *Processor) ProcessFolder(ctx context.Context, dir string) []string {
	pdfs, err := filepath.Glob(filepath.Join(dir, "*.pdf"))
	if err != nil || len(pdfs) == 0 {
		p.Logger.Warn("pipeline.no_pdfs", "dir", dir)
		return nil
	}
	var outputs []string
	for _, pdf := range pdfs {
		out, err := p.ProcessPDF(ctx, pdf)
		if err != nil {
			p.Logger.Error("pipeline.document_failed", "file", pdf, "error", err)
			continue
		}
		outputs = append(outputs, out)
	}
	p.Logger.Info("pipeline.batch_done", "total", len(pdfs), "succeeded", len(outputs))
	return outputs
}

// recordRun persists run history best-effort; a store failure never affects
// the pipeline result.
func (p *Processor) recordRun(ctx context.Context, pdfPath string, rec extract.Record, llmUsed bool, outPath string, started time.Time, runErr error) {
	if p.Runs == nil {
		return
	}
	errText := ""
	if runErr != nil {
		errText = runErr.Error()
	}
	run := repository.Run{
		SourcePath:   pdfPath,
		Pages:        rec.Metadata.Pages,
		HeaderFields: len(rec.Header),
		Services:     len(rec.Services),
		PricingRows:  len(rec.Pricing),
		TextBlocks:   len(rec.TextBlocks),
		ChangeOrders: len(rec.ChangeOrders),
		LLMUsed:      llmUsed,
		OutputPath:   outPath,
		Error:        errText,
		StartedAt:    started,
		FinishedAt:   time.Now(),
	}
	if err := p.Runs.Record(ctx, run); err != nil {
		p.Logger.Warn("pipeline.run_record_failed", "file", pdfPath, "error", err)
	}
}
