package kv

import (
	"context"
	"errors"
	"net"
	"testing"
	"time"

	"github.com/redis/go-redis/v9"
)

func TestOpenRedis_BadURL(t *testing.T) {
	_, err := OpenRedis(context.Background(), "not-a-redis-url")
	if err == nil {
		t.Fatalf("expected an error for a malformed URL")
	}
}

// unreachableAddr returns a loopback address nothing listens on.
func unreachableAddr(t *testing.T) string {
	t.Helper()
	l, err := net.Listen("tcp", "127.0.0.1:0")
	if err != nil {
		t.Fatalf("cannot reserve a port: %v", err)
	}
	addr := l.Addr().String()
	_ = l.Close()
	return addr
}

func TestOpenRedis_Unreachable(t *testing.T) {
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()

	_, err := OpenRedis(ctx, "redis://"+unreachableAddr(t))
	if err == nil {
		t.Fatalf("expected the connection check to fail")
	}
}

func TestRedisGet_ConnectionErrorIsNotNotFound(t *testing.T) {
	client := redis.NewClient(&redis.Options{
		Addr:        unreachableAddr(t),
		DialTimeout: time.Second,
		MaxRetries:  -1,
	})
	store := NewRedis(client)
	defer store.Close()

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()

	// Only a Redis nil reply means the namespace is absent; a transport
	// failure must surface as its own error.
	_, err := store.Get(ctx, "user-storage")
	if err == nil {
		t.Fatalf("expected an error from an unreachable server")
	}
	if errors.Is(err, ErrNotFound) {
		t.Errorf("connection failure must not read as an absent namespace: %v", err)
	}
}
