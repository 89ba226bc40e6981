// Package repository persists extraction-run history: one row per processed
// document. The store speaks database/sql so the same code runs on a local
// SQLite file (default, including :memory: for one-off batches) or Postgres
// when DB_URL carries a postgres DSN.
package repository

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"
	_ "github.com/jackc/pgx/v5/stdlib" // database/sql driver "pgx"
	_ "modernc.org/sqlite"             // pure-Go sqlite driver "sqlite"

	"github.com/coalops/workorder-extractor/internal/common"
)

// Run is one extraction attempt over one document.
type Run struct {
	ID           uuid.UUID
	SourcePath   string
	Pages        int
	HeaderFields int
	Services     int
	PricingRows  int
	TextBlocks   int
	ChangeOrders int
	LLMUsed      bool
	OutputPath   string
	Error        string
	StartedAt    time.Time
	FinishedAt   time.Time
}

// RunStore records runs.
type RunStore struct {
	db       *sql.DB
	postgres bool
	logger   *slog.Logger
}

// Open connects according to the DSN: postgres:// / postgresql:// URLs use
// the pgx stdlib driver, anything else is treated as a sqlite path.
func Open(cfg common.DatabaseConfig, logger *slog.Logger) (*RunStore, error) {
	if logger == nil {
		logger = slog.Default()
	}
	pg := strings.HasPrefix(cfg.DSN, "postgres://") || strings.HasPrefix(cfg.DSN, "postgresql://")

	var (
		db  *sql.DB
		err error
	)
	if pg {
		db, err = sql.Open("pgx", cfg.DSN)
		if err == nil && cfg.MaxConns > 0 {
			db.SetMaxOpenConns(int(cfg.MaxConns))
		}
	} else {
		db, err = sql.Open("sqlite", cfg.DSN)
		if err == nil {
			// Serialize all writers through one connection to avoid
			// SQLITE_BUSY from concurrent batch runs.
			db.SetMaxOpenConns(1)
		}
	}
	if err != nil {
		return nil, common.WrapError(err, "open run store")
	}

	logger.Info("repository.opened", "postgres", pg)
	return &RunStore{db: db, postgres: pg, logger: logger}, nil
}

// Init creates the runs table when missing.
func (s *RunStore) Init(ctx context.Context) error {
	const schema = `CREATE TABLE IF NOT EXISTS extraction_runs (
		id TEXT PRIMARY KEY,
		source_path TEXT NOT NULL,
		pages INTEGER NOT NULL DEFAULT 0,
		header_fields INTEGER NOT NULL DEFAULT 0,
		services INTEGER NOT NULL DEFAULT 0,
		pricing_rows INTEGER NOT NULL DEFAULT 0,
		text_blocks INTEGER NOT NULL DEFAULT 0,
		change_orders INTEGER NOT NULL DEFAULT 0,
		llm_used BOOLEAN NOT NULL DEFAULT FALSE,
		output_path TEXT NOT NULL DEFAULT '',
		error TEXT NOT NULL DEFAULT '',
		started_at TIMESTAMP NOT NULL,
		finished_at TIMESTAMP NOT NULL
	)`
	if _, err := s.db.ExecContext(ctx, schema); err != nil {
		return common.WrapError(err, "init run store")
	}
	return nil
}

// Record inserts one run row.
func (s *RunStore) Record(ctx context.Context, run Run) error {
	if run.ID == uuid.Nil {
		run.ID = uuid.New()
	}
	query := fmt.Sprintf(`INSERT INTO extraction_runs
		(id, source_path, pages, header_fields, services, pricing_rows,
		 text_blocks, change_orders, llm_used, output_path, error,
		 started_at, finished_at)
		VALUES (%s)`, s.placeholders(13))
	_, err := s.db.ExecContext(ctx, query,
		run.ID.String(), run.SourcePath, run.Pages, run.HeaderFields,
		run.Services, run.PricingRows, run.TextBlocks, run.ChangeOrders,
		run.LLMUsed, run.OutputPath, run.Error,
		run.StartedAt.UTC(), run.FinishedAt.UTC(),
	)
	if err != nil {
		return common.WrapError(err, "record run")
	}
	s.logger.Debug("repository.run_recorded", "run_id", run.ID.String(), "source", run.SourcePath)
	return nil
}

// ListRuns returns runs for a source path, newest first.
func (s *RunStore) ListRuns(ctx context.Context, sourcePath string) ([]Run, error) {
	query := fmt.Sprintf(`SELECT id, source_path, pages, header_fields, services,
		pricing_rows, text_blocks, change_orders, llm_used, output_path, error,
		started_at, finished_at
		FROM extraction_runs WHERE source_path = %s ORDER BY started_at DESC`,
		s.placeholder(1))
	rows, err := s.db.QueryContext(ctx, query, sourcePath)
	if err != nil {
		return nil, common.WrapError(err, "list runs")
	}
	defer rows.Close()

	var runs []Run
	for rows.Next() {
		var r Run
		var id string
		if err := rows.Scan(&id, &r.SourcePath, &r.Pages, &r.HeaderFields,
			&r.Services, &r.PricingRows, &r.TextBlocks, &r.ChangeOrders,
			&r.LLMUsed, &r.OutputPath, &r.Error, &r.StartedAt, &r.FinishedAt); err != nil {
			return nil, common.WrapError(err, "scan run")
		}
		r.ID, _ = uuid.Parse(id)
		runs = append(runs, r)
	}
	return runs, rows.Err()
}

// Close releases the underlying pool.
func (s *RunStore) Close() error {
	return s.db.Close()
}

// placeholders emits sqlite "?" or postgres "$n" parameter markers.
func (s *RunStore) placeholders(n int) string {
	parts := make([]string, n)
	for i := range parts {
		parts[i] = s.placeholder(i + 1)
	}
	return strings.Join(parts, ", ")
}

func (s *RunStore) placeholder(n int) string {
	if s.postgres {
		return fmt.Sprintf("$%d", n)
	}
	return "?"
}
