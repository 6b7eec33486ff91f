package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"
)

type Config struct {
	HTTPAddr string
	LogLevel string
	UserID   string

	OpenAIAPIKey      string
	OpenAIBaseURL     string
	OpenAIModel       string
	OpenAITimeoutSecs int
	PromptMaxChars    int

	LlamaParseAPIKey      string
	LlamaParseBaseURL     string
	LlamaParseTimeoutSecs int
	LlamaParsePollMillis  int

	MaxUploadMB        int
	MaxConnections     int
	CORSAllowedOrigins []string

	BreakerEnabled         bool
	BreakerMinRequests     int
	BreakerFailureRatio    float64
	BreakerOpenTimeoutSecs int
}

// Load reads the environment once at startup. The two vendor keys are
// required and missing ones fail the boot; everything else is defaulted.
func Load() (Config, error) {
	openAIKey, err := requireEnv("OPENAI_API_KEY")
	if err != nil {
		return Config{}, err
	}
	llamaParseKey, err := requireEnv("LLAMAPARSE_API_KEY")
	if err != nil {
		return Config{}, err
	}

	return Config{
		HTTPAddr: mustEnv("HTTP_ADDR", ":8000"),
		LogLevel: mustEnv("LOG_LEVEL", "info"),
		UserID:   mustEnv("USER_ID", "default_user"),

		OpenAIAPIKey:      openAIKey,
		OpenAIBaseURL:     mustEnv("OPENAI_BASE_URL", "https://api.openai.com/v1"),
		OpenAIModel:       mustEnv("OPENAI_MODEL", "gpt-4o-mini"),
		OpenAITimeoutSecs: mustEnvInt("OPENAI_TIMEOUT_SECONDS", 60),
		PromptMaxChars:    mustEnvInt("PROMPT_MAX_CHARS", 100000),

		LlamaParseAPIKey:      llamaParseKey,
		LlamaParseBaseURL:     mustEnv("LLAMAPARSE_BASE_URL", "https://api.cloud.llamaindex.ai"),
		LlamaParseTimeoutSecs: mustEnvInt("LLAMAPARSE_TIMEOUT_SECONDS", 120),
		LlamaParsePollMillis:  mustEnvInt("LLAMAPARSE_POLL_INTERVAL_MS", 1000),

		MaxUploadMB:        mustEnvInt("MAX_UPLOAD_MB", 50),
		MaxConnections:     mustEnvInt("MAX_CONNECTIONS", 256),
		CORSAllowedOrigins: splitCSV(mustEnv("CORS_ALLOWED_ORIGINS", "*")),

		BreakerEnabled:         mustEnvBool("BREAKER_ENABLED", true),
		BreakerMinRequests:     mustEnvInt("BREAKER_MIN_REQUESTS", 10),
		BreakerFailureRatio:    mustEnvFloat("BREAKER_FAILURE_RATIO", 0.5),
		BreakerOpenTimeoutSecs: mustEnvInt("BREAKER_OPEN_TIMEOUT_SECONDS", 30),
	}, nil
}

func (c Config) MaxUploadBytes() int64 {
	return int64(c.MaxUploadMB) << 20
}

func (c Config) OpenAITimeout() time.Duration {
	return time.Duration(c.OpenAITimeoutSecs) * time.Second
}

func (c Config) LlamaParseTimeout() time.Duration {
	return time.Duration(c.LlamaParseTimeoutSecs) * time.Second
}

func (c Config) LlamaParsePollInterval() time.Duration {
	return time.Duration(c.LlamaParsePollMillis) * time.Millisecond
}

func (c Config) BreakerOpenTimeout() time.Duration {
	return time.Duration(c.BreakerOpenTimeoutSecs) * time.Second
}

func requireEnv(key string) (string, error) {
	v := strings.TrimSpace(os.Getenv(key))
	if v == "" {
		return "", fmt.Errorf("required environment variable %s is not set", key)
	}
	return v, nil
}

func mustEnv(key, fallback string) string {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	return v
}

func mustEnvInt(key string, fallback int) int {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return fallback
	}
	return n
}

func mustEnvBool(key string, fallback bool) bool {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	parsed, err := strconv.ParseBool(v)
	if err != nil {
		return fallback
	}
	return parsed
}

func mustEnvFloat(key string, fallback float64) float64 {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	parsed, err := strconv.ParseFloat(v, 64)
	if err != nil {
		return fallback
	}
	return parsed
}

func splitCSV(v string) []string {
	parts := strings.Split(v, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if trimmed := strings.TrimSpace(p); trimmed != "" {
			out = append(out, trimmed)
		}
	}
	return out
}
