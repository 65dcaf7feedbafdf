package kv

import (
	"context"
	"errors"
	"fmt"

	"github.com/redis/go-redis/v9"
)

// keyPrefix scopes console namespaces inside a shared Redis database.
const keyPrefix = "console:namespace:"

// Redis stores each namespace under one Redis key.
type Redis struct {
	client *redis.Client
}

// OpenRedis parses the URL, connects and verifies the connection.
func OpenRedis(ctx context.Context, url string) (*Redis, error) {
	opts, err := redis.ParseURL(url)
	if err != nil {
		return nil, fmt.Errorf("parse redis url: %w", err)
	}
	client := redis.NewClient(opts)
	if err := client.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("ping redis: %w", err)
	}
	return &Redis{client: client}, nil
}

// NewRedis wraps an existing client.
func NewRedis(client *redis.Client) *Redis {
	return &Redis{client: client}
}

func (r *Redis) Get(ctx context.Context, name string) ([]byte, error) {
	data, err := r.client.Get(ctx, keyPrefix+name).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("get namespace %s: %w", name, err)
	}
	return data, nil
}

func (r *Redis) Set(ctx context.Context, name string, value []byte) error {
	if err := r.client.Set(ctx, keyPrefix+name, value, 0).Err(); err != nil {
		return fmt.Errorf("set namespace %s: %w", name, err)
	}
	return nil
}

func (r *Redis) Remove(ctx context.Context, name string) error {
	if err := r.client.Del(ctx, keyPrefix+name).Err(); err != nil {
		return fmt.Errorf("remove namespace %s: %w", name, err)
	}
	return nil
}

// Close releases the underlying client.
func (r *Redis) Close() error {
	return r.client.Close()
}
