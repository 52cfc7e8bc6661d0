package config

import (
	"os"
	"sync"
	"time"
)

const (
	TransportInline = "inline"
	TransportUpload = "upload"
)

type GeminiConfig struct {
	APIKey     string
	Model      string
	Transport  string // TransportInline or TransportUpload
	Structured bool
	MaxRetries int
	// Zero means no timeout beyond the transport's own defaults.
	RequestTimeout time.Duration
}

var (
	geminiConfig *GeminiConfig
	geminiOnce   sync.Once
)

func LoadGeminiConfig() *GeminiConfig {
	geminiOnce.Do(func() {
		apiKey := os.Getenv("GEMINI_API_KEY")
		if apiKey == "" {
			apiKey = os.Getenv("GOOGLE_API_KEY")
		}
		geminiConfig = &GeminiConfig{
			APIKey:         apiKey,
			Model:          getEnv("GEMINI_MODEL", "gemini-2.5-flash"),
			Transport:      getEnv("GEMINI_TRANSPORT", TransportInline),
			Structured:     getEnvAsBool("GEMINI_STRUCTURED_OUTPUT", true),
			MaxRetries:     getEnvAsInt("GEMINI_MAX_RETRIES", 0),
			RequestTimeout: getEnvAsDuration("GEMINI_REQUEST_TIMEOUT", 0),
		}
	})
	return geminiConfig
}
