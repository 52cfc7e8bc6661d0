package config

import "sync"

const DefaultMaxUploadBytes = 16 * 1024 * 1024

type UploadConfig struct {
	Dir        string
	MaxBytes   int64
	PromptPath string
}

var (
	uploadConfig *UploadConfig
	uploadOnce   sync.Once
)

func LoadUploadConfig() *UploadConfig {
	uploadOnce.Do(func() {
		uploadConfig = &UploadConfig{
			Dir:        getEnv("UPLOAD_DIR", "static/uploads"),
			MaxBytes:   getEnvAsInt64("MAX_UPLOAD_BYTES", DefaultMaxUploadBytes),
			PromptPath: getEnv("PROMPT_PATH", "prompts/prompt.txt"),
		}
	})
	return uploadConfig
}
