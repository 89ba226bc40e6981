package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"os"

	"github.com/coalops/workorder-extractor/internal/common"
	"github.com/coalops/workorder-extractor/internal/export"
	"github.com/coalops/workorder-extractor/internal/layout"
	"github.com/coalops/workorder-extractor/internal/llm"
	"github.com/coalops/workorder-extractor/internal/llm/azure"
	"github.com/coalops/workorder-extractor/internal/pdftext"
	"github.com/coalops/workorder-extractor/internal/pipeline"
	"github.com/coalops/workorder-extractor/internal/repository"
)

// printError prints an error message to stderr, falling back to stdout if stderr fails
func printError(format string, args ...interface{}) {
	if _, err := fmt.Fprintf(os.Stderr, format, args...); err != nil {
		fmt.Printf(format, args...)
	}
}

func main() {
	var (
		file  = flag.String("file", "", "work-order PDF to process")
		dir   = flag.String("dir", "", "directory of work-order PDFs to process")
		out   = flag.String("out", "", "output directory for XLSX files (overrides OUTPUT_DIR)")
		noLLM = flag.Bool("no-llm", false, "disable the LLM gap-fill stage")
		inmem = flag.Bool("inmem", false, "use in-memory SQLite for run history")
	)
	flag.Parse()

	if *file == "" && *dir == "" {
		printError("Error: one of --file or --dir is required\n")
		os.Exit(1)
	}

	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level: slog.LevelInfo,
	}))
	slog.SetDefault(logger)

	ctx := context.Background()

	cfg := common.LoadConfig()
	if *noLLM {
		cfg.LLM.Enabled = false
	}
	if *out != "" {
		cfg.Output.Dir = *out
	}
	if *inmem {
		cfg.Database.DSN = ":memory:"
	}
	if err := cfg.Validate(); err != nil {
		printError("Error: invalid configuration: %v\n", err)
		os.Exit(1)
	}

	runs, err := repository.Open(cfg.Database, logger)
	if err != nil {
		printError("Error: open run store: %v\n", err)
		os.Exit(1)
	}
	defer func() {
		if err := runs.Close(); err != nil {
			logger.Warn("run store close error", "error", err)
		}
	}()
	if err := runs.Init(ctx); err != nil {
		printError("Error: init run store: %v\n", err)
		os.Exit(1)
	}

	var filler *llm.GapFiller
	if cfg.LLM.Enabled {
		client := azure.NewClient(azure.Config{
			Endpoint:    cfg.LLM.Endpoint,
			APIKey:      cfg.LLM.APIKey,
			Deployment:  cfg.LLM.Deployment,
			APIVersion:  cfg.LLM.APIVersion,
			Temperature: cfg.LLM.Temperature,
			MaxTokens:   cfg.LLM.MaxTokens,
			Timeout:     cfg.LLM.Timeout,
		}, logger)
		filler = llm.NewGapFiller(client, logger)
	}

	proc := pipeline.NewProcessor(
		logger,
		layout.NewClient(cfg.Layout, logger),
		pdftext.NewAssembler(logger),
		filler,
		export.NewService(cfg.Output.Dir, logger),
		runs,
	)

	if *file != "" {
		outPath, err := proc.ProcessPDF(ctx, *file)
		if err != nil {
			printError("Error: %v\n", err)
			os.Exit(1)
		}
		fmt.Println(outPath)
		return
	}

	outputs := proc.ProcessFolder(ctx, *dir)
	for _, o := range outputs {
		fmt.Println(o)
	}
	if len(outputs) == 0 {
		os.Exit(1)
	}
}
