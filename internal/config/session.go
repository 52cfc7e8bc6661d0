package config

import (
	"os"
	"sync"
	"time"
)

type SessionConfig struct {
	Expiration    time.Duration
	CookieSecure  bool
	RedisAddr     string
	RedisPassword string
	RedisDB       int
}

var (
	sessionConfig *SessionConfig
	sessionOnce   sync.Once
)

func LoadSessionConfig() *SessionConfig {
	sessionOnce.Do(func() {
		sessionConfig = &SessionConfig{
			Expiration:    getEnvAsDuration("SESSION_EXPIRATION", 24*time.Hour),
			CookieSecure:  getEnvAsBool("SESSION_COOKIE_SECURE", false),
			RedisAddr:     os.Getenv("REDIS_ADDR"),
			RedisPassword: os.Getenv("REDIS_PASSWORD"),
			RedisDB:       getEnvAsInt("REDIS_DB", 0),
		}
	})
	return sessionConfig
}
