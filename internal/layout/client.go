package layout

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/coalops/workorder-extractor/internal/common"
)

// Client calls the Document Intelligence analyze endpoint and long-polls the
// returned operation until it completes. Any failure here is fatal for the
// document being processed.
type Client struct {
	cfg    common.LayoutConfig
	http   *http.Client
	logger *slog.Logger
}

func NewClient(cfg common.LayoutConfig, logger *slog.Logger) *Client {
	if cfg.ModelID == "" {
		cfg.ModelID = "prebuilt-layout"
	}
	if cfg.APIVersion == "" {
		cfg.APIVersion = "2024-11-30"
	}
	if cfg.PollInterval <= 0 {
		cfg.PollInterval = 2 * time.Second
	}
	if cfg.PollTimeout <= 0 {
		cfg.PollTimeout = 4 * time.Minute
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &Client{
		cfg:    cfg,
		http:   &http.Client{Timeout: 60 * time.Second},
		logger: logger,
	}
}

type operationResponse struct {
	Status        string          `json:"status"`
	Error         json.RawMessage `json:"error"`
	AnalyzeResult *AnalyzeResult  `json:"analyzeResult"`
}

// Analyze submits the document and waits synchronously for the result.
func (c *Client) Analyze(ctx context.Context, pdfBytes []byte) (*AnalyzeResult, error) {
	reqID := uuid.New().String()
	start := time.Now()

	url := fmt.Sprintf("%s/documentintelligence/documentModels/%s:analyze?api-version=%s&features=keyValuePairs",
		strings.TrimRight(c.cfg.Endpoint, "/"), c.cfg.ModelID, c.cfg.APIVersion)

	c.logger.Info("layout.analyze.request",
		"req_id", reqID,
		"model", c.cfg.ModelID,
		"bytes", len(pdfBytes),
	)

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(pdfBytes))
	if err != nil {
		return nil, common.WrapError(err, "build analyze request")
	}
	req.Header.Set("Content-Type", "application/pdf")
	req.Header.Set("Ocp-Apim-Subscription-Key", c.cfg.APIKey)

	resp, err := c.http.Do(req)
	if err != nil {
		c.logger.Error("layout.analyze.send_error", "req_id", reqID, "error", err)
		return nil, common.WrapError(err, "document intelligence analyze")
	}
	raw, _ := io.ReadAll(resp.Body)
	closeBody(resp.Body, c.logger, reqID)

	if resp.StatusCode != http.StatusAccepted {
		c.logger.Error("layout.analyze.rejected",
			"req_id", reqID, "status", resp.StatusCode, "body", string(raw))
		return nil, common.NewAppError("LAYOUT_ERROR",
			fmt.Sprintf("analyze rejected with status %d", resp.StatusCode), common.ErrExtraction)
	}

	opURL := resp.Header.Get("Operation-Location")
	if opURL == "" {
		return nil, common.NewAppError("LAYOUT_ERROR", "analyze response missing Operation-Location", common.ErrExtraction)
	}

	result, err := c.poll(ctx, opURL, reqID)
	if err != nil {
		return nil, err
	}

	c.logger.Info("layout.analyze.ok",
		"req_id", reqID,
		"pages", result.PageCount(),
		"kv_pairs", len(result.KeyValuePairs),
		"tables", len(result.Tables),
		"elapsed_ms", time.Since(start).Milliseconds(),
	)
	return result, nil
}

func (c *Client) poll(ctx context.Context, opURL, reqID string) (*AnalyzeResult, error) {
	deadline := time.Now().Add(c.cfg.PollTimeout)
	for attempt := 1; ; attempt++ {
		select {
		case <-ctx.Done():
			return nil, common.WrapError(ctx.Err(), "analyze poll cancelled")
		case <-time.After(c.cfg.PollInterval):
		}

		req, err := http.NewRequestWithContext(ctx, http.MethodGet, opURL, nil)
		if err != nil {
			return nil, common.WrapError(err, "build poll request")
		}
		req.Header.Set("Ocp-Apim-Subscription-Key", c.cfg.APIKey)

		resp, err := c.http.Do(req)
		if err != nil {
			c.logger.Error("layout.poll.send_error", "req_id", reqID, "attempt", attempt, "error", err)
			return nil, common.WrapError(err, "document intelligence poll")
		}
		raw, _ := io.ReadAll(resp.Body)
		closeBody(resp.Body, c.logger, reqID)

		if resp.StatusCode/100 != 2 {
			return nil, common.NewAppError("LAYOUT_ERROR",
				fmt.Sprintf("poll status %d: %s", resp.StatusCode, truncateForLog(raw)), common.ErrExtraction)
		}

		var op operationResponse
		if err := json.Unmarshal(raw, &op); err != nil {
			return nil, common.WrapError(err, "decode poll response")
		}

		switch strings.ToLower(op.Status) {
		case "succeeded":
			if op.AnalyzeResult == nil {
				return nil, common.NewAppError("LAYOUT_ERROR", "succeeded operation missing analyzeResult", common.ErrExtraction)
			}
			return op.AnalyzeResult, nil
		case "failed":
			return nil, common.NewAppError("LAYOUT_ERROR",
				fmt.Sprintf("analysis failed: %s", string(op.Error)), common.ErrExtraction)
		default:
			c.logger.Debug("layout.poll.pending", "req_id", reqID, "attempt", attempt, "status", op.Status)
		}

		if time.Now().After(deadline) {
			return nil, common.NewAppError("LAYOUT_ERROR", "analyze operation timed out", common.ErrExtraction)
		}
	}
}

func closeBody(body io.ReadCloser, logger *slog.Logger, reqID string) {
	if err := body.Close(); err != nil {
		logger.Warn("layout.response_body_close_error", "req_id", reqID, "error", err)
	}
}

func truncateForLog(raw []byte) string {
	const max = 512
	if len(raw) > max {
		return string(raw[:max]) + "..."
	}
	return string(raw)
}
