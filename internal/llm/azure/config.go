package azure

import (
	"log/slog"
	"net/http"
	"os"
	"time"
)

// Config for the Azure OpenAI client.
type Config struct {
	Endpoint    string        // e.g. https://myresource.openai.azure.com
	APIKey      string        // if empty, falls back to env AZURE_OPENAI_KEY
	Deployment  string        // deployment name, e.g. "gpt-4.1"
	APIVersion  string        // e.g. "2024-02-15-preview"
	Temperature float32       // 0..2
	MaxTokens   int           // completion token cap
	Timeout     time.Duration // http client timeout
}

type Client struct {
	cfg        Config
	httpClient *http.Client
	log        *slog.Logger
}

func NewClient(cfg Config, logger *slog.Logger) *Client {
	if cfg.APIKey == "" {
		cfg.APIKey = os.Getenv("AZURE_OPENAI_KEY")
	}
	if cfg.Deployment == "" {
		cfg.Deployment = "gpt-4.1"
	}
	if cfg.APIVersion == "" {
		cfg.APIVersion = "2024-02-15-preview"
	}
	if cfg.MaxTokens <= 0 {
		cfg.MaxTokens = 3000
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = 60 * time.Second
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &Client{
		cfg:        cfg,
		httpClient: &http.Client{Timeout: cfg.Timeout},
		log:        logger,
	}
}
