package config

import (
	"os"
	"sync"
)

type OpenRouterConfig struct {
	APIKey     string
	Model      string
	BaseURL    string
	Structured bool
}

var (
	openRouterConfig *OpenRouterConfig
	openRouterOnce   sync.Once
)

func LoadOpenRouterConfig() *OpenRouterConfig {
	openRouterOnce.Do(func() {
		openRouterConfig = &OpenRouterConfig{
			APIKey:     os.Getenv("OPENROUTER_API_KEY"),
			Model:      getEnv("OPENROUTER_MODEL", "openai/gpt-4o-mini"),
			BaseURL:    getEnv("OPENROUTER_URL", "https://openrouter.ai/api/v1"),
			Structured: getEnvAsBool("OPENROUTER_STRUCTURED_OUTPUT", true),
		}
	})
	return openRouterConfig
}
