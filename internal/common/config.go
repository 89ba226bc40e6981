package common

import (
	"os"
	"strconv"
	"time"
)

// Config holds all application configuration
type Config struct {
	Layout   LayoutConfig
	LLM      LLMConfig
	Output   OutputConfig
	Database DatabaseConfig
}

// LayoutConfig holds layout-analysis provider configuration (Azure Document Intelligence).
type LayoutConfig struct {
	Endpoint     string
	APIKey       string
	ModelID      string
	APIVersion   string
	PollInterval time.Duration
	PollTimeout  time.Duration
}

// LLMConfig holds language-model fallback configuration (Azure OpenAI).
type LLMConfig struct {
	Enabled     bool
	Endpoint    string
	APIKey      string
	Deployment  string
	APIVersion  string
	Temperature float32
	MaxTokens   int
	Timeout     time.Duration
}

// OutputConfig holds output artifact configuration.
type OutputConfig struct {
	Dir string
}

// DatabaseConfig holds the run-history store configuration.
// DSN may be a sqlite path (default) or a postgres URL.
type DatabaseConfig struct {
	DSN         string
	MaxConns    int32
	DialTimeout time.Duration
}

// LoadConfig loads configuration from environment variables
func LoadConfig() *Config {
	return &Config{
		Layout: LayoutConfig{
			Endpoint:     getEnv("DOCUMENT_INTELLIGENCE_ENDPOINT", ""),
			APIKey:       getEnv("DOCUMENT_INTELLIGENCE_KEY", ""),
			ModelID:      getEnv("DI_MODEL_ID", "prebuilt-layout"),
			APIVersion:   getEnv("DI_API_VERSION", "2024-11-30"),
			PollInterval: getEnvAsDuration("DI_POLL_INTERVAL", 2*time.Second),
			PollTimeout:  getEnvAsDuration("DI_POLL_TIMEOUT", 4*time.Minute),
		},
		LLM: LLMConfig{
			Enabled:     getEnvAsBool("LLM_ENABLED", true),
			Endpoint:    getEnv("AZURE_OPENAI_ENDPOINT", ""),
			APIKey:      getEnv("AZURE_OPENAI_KEY", ""),
			Deployment:  getEnv("AZURE_OPENAI_DEPLOYMENT", "gpt-4.1"),
			APIVersion:  getEnv("AZURE_OPENAI_API_VERSION", "2024-02-15-preview"),
			Temperature: getEnvAsFloat32("AZURE_OPENAI_TEMPERATURE", 0.0),
			MaxTokens:   getEnvAsInt("AZURE_OPENAI_MAX_TOKENS", 3000),
			Timeout:     getEnvAsDuration("AZURE_OPENAI_TIMEOUT", 60*time.Second),
		},
		Output: OutputConfig{
			Dir: getEnv("OUTPUT_DIR", "output/extracted"),
		},
		Database: DatabaseConfig{
			DSN:         getEnv("DB_URL", "workorder-runs.db"),
			MaxConns:    getEnvAsInt32("DB_MAX_CONNS", 5),
			DialTimeout: getEnvAsDuration("DB_DIAL_TIMEOUT", 3*time.Second),
		},
	}
}

// Helper functions for environment variable parsing
func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvAsInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intVal, err := strconv.Atoi(value); err == nil {
			return intVal
		}
	}
	return defaultValue
}

func getEnvAsInt32(key string, defaultValue int32) int32 {
	if value := os.Getenv(key); value != "" {
		if intVal, err := strconv.ParseInt(value, 10, 32); err == nil {
			return int32(intVal)
		}
	}
	return defaultValue
}

func getEnvAsFloat32(key string, defaultValue float32) float32 {
	if value := os.Getenv(key); value != "" {
		if floatVal, err := strconv.ParseFloat(value, 32); err == nil {
			return float32(floatVal)
		}
	}
	return defaultValue
}

func getEnvAsBool(key string, defaultValue bool) bool {
	if value := os.Getenv(key); value != "" {
		if boolVal, err := strconv.ParseBool(value); err == nil {
			return boolVal
		}
	}
	return defaultValue
}

func getEnvAsDuration(key string, defaultValue time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if duration, err := time.ParseDuration(value); err == nil {
			return duration
		}
	}
	return defaultValue
}

// Validate validates the loaded configuration
func (c *Config) Validate() error {
	if c.Layout.Endpoint == "" {
		return NewAppError("CONFIG_ERROR", "DOCUMENT_INTELLIGENCE_ENDPOINT is required", ErrInvalidInput)
	}
	if c.Layout.APIKey == "" {
		return NewAppError("CONFIG_ERROR", "DOCUMENT_INTELLIGENCE_KEY is required", ErrInvalidInput)
	}
	if c.LLM.Enabled {
		if c.LLM.Endpoint == "" {
			return NewAppError("CONFIG_ERROR", "AZURE_OPENAI_ENDPOINT is required when LLM fallback is enabled", ErrInvalidInput)
		}
		if c.LLM.APIKey == "" {
			return NewAppError("CONFIG_ERROR", "AZURE_OPENAI_KEY is required when LLM fallback is enabled", ErrInvalidInput)
		}
	}
	return nil
}
