// Package redis stores scheduler state in Redis, for hosts that share one
// reminder configuration between several machines.
package redis

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/julianstephens/wird/internal/constants"
	"github.com/julianstephens/wird/internal/storage"
)

const opTimeout = 3 * time.Second

type Store struct {
	addr   string
	prefix string
	client *redis.Client
}

// IsURL reports whether config names a Redis server.
func IsURL(config string) bool {
	return strings.HasPrefix(config, "redis://") || strings.HasPrefix(config, "rediss://")
}

func New(addr string) *Store {
	return &Store{
		addr:   addr,
		prefix: constants.AppName + ":",
	}
}

// Connect initializes a Redis client from URL or host:port input.
func Connect(addr string) (*redis.Client, error) {
	if IsURL(addr) {
		opt, err := redis.ParseURL(addr)
		if err != nil {
			return nil, fmt.Errorf("parse redis url: %w", err)
		}
		return redis.NewClient(opt), nil
	}
	return redis.NewClient(&redis.Options{Addr: addr}), nil
}

func (s *Store) connect() error {
	if s.client != nil {
		return nil
	}

	client, err := Connect(s.addr)
	if err != nil {
		return err
	}

	ctx, cancel := context.WithTimeout(context.Background(), opTimeout)
	defer cancel()
	if err := client.Ping(ctx).Err(); err != nil {
		client.Close()
		return fmt.Errorf("failed to connect to redis: %w", err)
	}

	s.client = client
	return nil
}

func (s *Store) Init() error { return s.connect() }

func (s *Store) Load() error { return s.connect() }

func (s *Store) Close() error {
	if s.client == nil {
		return nil
	}
	err := s.client.Close()
	s.client = nil
	return err
}

func (s *Store) key(k string) string {
	return s.prefix + k
}

func (s *Store) GetItem(key string) (string, bool, error) {
	if s.client == nil {
		return "", false, storage.ErrNotInitialized
	}

	ctx, cancel := context.WithTimeout(context.Background(), opTimeout)
	defer cancel()

	value, err := s.client.Get(ctx, s.key(key)).Result()
	if errors.Is(err, redis.Nil) {
		return "", false, nil
	}
	if err != nil {
		return "", false, fmt.Errorf("failed to get %s: %w", key, err)
	}
	return value, true, nil
}

func (s *Store) SetItem(key, value string) error {
	if s.client == nil {
		return storage.ErrNotInitialized
	}

	ctx, cancel := context.WithTimeout(context.Background(), opTimeout)
	defer cancel()

	if err := s.client.Set(ctx, s.key(key), value, 0).Err(); err != nil {
		return fmt.Errorf("failed to set %s: %w", key, err)
	}
	return nil
}

func (s *Store) RemoveItem(key string) error {
	if s.client == nil {
		return storage.ErrNotInitialized
	}

	ctx, cancel := context.WithTimeout(context.Background(), opTimeout)
	defer cancel()

	if err := s.client.Del(ctx, s.key(key)).Err(); err != nil {
		return fmt.Errorf("failed to remove %s: %w", key, err)
	}
	return nil
}

func (s *Store) GetConfigPath() string {
	return "redis"
}
