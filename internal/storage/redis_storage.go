package storage

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/fadilmartias/cv-reviewer/internal/config"
	"github.com/gofiber/fiber/v2"
	redis "github.com/redis/go-redis/v9"
)

const (
	keyPrefix      = "cv-reviewer:session:"
	requestTimeout = 3 * time.Second
)

var _ fiber.Storage = (*RedisStorage)(nil)

// RedisStorage keeps fiber session data in Redis so sessions outlive a restart
// and are shared between instances.
type RedisStorage struct {
	client *redis.Client
}

// NewRedisStorage connects and pings the server before returning.
func NewRedisStorage(cfg *config.SessionConfig) (*RedisStorage, error) {
	if cfg == nil || cfg.RedisAddr == "" {
		return nil, errors.New("redis address required")
	}

	client := redis.NewClient(&redis.Options{
		Addr:     cfg.RedisAddr,
		Password: cfg.RedisPassword,
		DB:       cfg.RedisDB,
	})
	ctx, cancel := context.WithTimeout(context.Background(), requestTimeout)
	defer cancel()
	if err := client.Ping(ctx).Err(); err != nil {
		client.Close()
		return nil, fmt.Errorf("failed to reach redis at %s: %w", cfg.RedisAddr, err)
	}
	return &RedisStorage{client: client}, nil
}

// Get returns nil without error for a missing key, as fiber expects.
func (s *RedisStorage) Get(key string) ([]byte, error) {
	if key == "" {
		return nil, nil
	}
	ctx, cancel := context.WithTimeout(context.Background(), requestTimeout)
	defer cancel()

	val, err := s.client.Get(ctx, keyPrefix+key).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, nil
	}
	return val, err
}

// Set stores val; a zero exp keeps the key until it is deleted.
func (s *RedisStorage) Set(key string, val []byte, exp time.Duration) error {
	if key == "" || len(val) == 0 {
		return nil
	}
	ctx, cancel := context.WithTimeout(context.Background(), requestTimeout)
	defer cancel()
	return s.client.Set(ctx, keyPrefix+key, val, exp).Err()
}

func (s *RedisStorage) Delete(key string) error {
	if key == "" {
		return nil
	}
	ctx, cancel := context.WithTimeout(context.Background(), requestTimeout)
	defer cancel()
	return s.client.Del(ctx, keyPrefix+key).Err()
}

// Reset removes every session key. Other data in the same database is left alone.
func (s *RedisStorage) Reset() error {
	ctx := context.Background()
	iter := s.client.Scan(ctx, 0, keyPrefix+"*", 100).Iterator()
	var keys []string
	for iter.Next(ctx) {
		keys = append(keys, iter.Val())
	}
	if err := iter.Err(); err != nil {
		return err
	}
	if len(keys) == 0 {
		return nil
	}
	return s.client.Del(ctx, keys...).Err()
}

func (s *RedisStorage) Close() error {
	return s.client.Close()
}
