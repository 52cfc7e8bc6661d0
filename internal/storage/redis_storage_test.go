package storage

import (
	"os"
	"testing"
	"time"

	"github.com/fadilmartias/cv-reviewer/internal/config"
)

func newTestStorage(t *testing.T) *RedisStorage {
	t.Helper()
	addr := os.Getenv("REDIS_ADDR")
	if addr == "" {
		t.Skip("REDIS_ADDR not set")
	}
	s, err := NewRedisStorage(&config.SessionConfig{RedisAddr: addr, RedisDB: 15})
	if err != nil {
		t.Skipf("redis unavailable: %v", err)
	}
	t.Cleanup(func() {
		s.Reset()
		s.Close()
	})
	return s
}

func TestRedisStorageRoundTrip(t *testing.T) {
	s := newTestStorage(t)

	if err := s.Set("abc", []byte("state"), time.Minute); err != nil {
		t.Fatalf("set: %v", err)
	}
	got, err := s.Get("abc")
	if err != nil || string(got) != "state" {
		t.Fatalf("get = %q, %v", got, err)
	}

	if err := s.Delete("abc"); err != nil {
		t.Fatalf("delete: %v", err)
	}
	got, err = s.Get("abc")
	if err != nil || got != nil {
		t.Fatalf("expected missing key to return nil, got %q, %v", got, err)
	}
}

func TestRedisStorageExpiry(t *testing.T) {
	s := newTestStorage(t)

	if err := s.Set("short", []byte("x"), time.Second); err != nil {
		t.Fatalf("set: %v", err)
	}
	time.Sleep(1500 * time.Millisecond)
	if got, _ := s.Get("short"); got != nil {
		t.Fatalf("expected key to expire, got %q", got)
	}
}

func TestRedisStorageReset(t *testing.T) {
	s := newTestStorage(t)

	s.Set("a", []byte("1"), 0)
	s.Set("b", []byte("2"), 0)
	if err := s.Reset(); err != nil {
		t.Fatalf("reset: %v", err)
	}
	if got, _ := s.Get("a"); got != nil {
		t.Fatalf("expected reset to clear keys, got %q", got)
	}
}

func TestNewRedisStorageRequiresAddress(t *testing.T) {
	if _, err := NewRedisStorage(&config.SessionConfig{}); err == nil {
		t.Fatal("expected error without address")
	}
}
