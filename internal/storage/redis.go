package storage

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strings"

	"github.com/redis/go-redis/v9"

	"visitor-pass-console/internal/config"
)

// RedisProvider stores each slot as a plain string value under prefix+key.
type RedisProvider struct {
	client *redis.Client
	prefix string
}

func NewRedisProvider(ctx context.Context, cfg config.RedisStorage) (*RedisProvider, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     cfg.Addr,
		Password: cfg.Password,
		DB:       cfg.DB,
	})
	if err := client.Ping(ctx).Err(); err != nil {
		client.Close()
		return nil, fmt.Errorf("failed to connect to redis: %w", err)
	}
	return &RedisProvider{client: client, prefix: cfg.Prefix}, nil
}

func (p *RedisProvider) Close() error {
	return p.client.Close()
}

func (p *RedisProvider) Get(ctx context.Context, key string) ([]byte, error) {
	data, err := p.client.Get(ctx, p.prefix+key).Bytes()
	if err == redis.Nil {
		return nil, ErrSlotNotFound
	}
	return data, err
}

func (p *RedisProvider) Put(ctx context.Context, key string, data []byte) error {
	if err := ValidateKey(key); err != nil {
		return err
	}
	return p.client.Set(ctx, p.prefix+key, data, 0).Err()
}

func (p *RedisProvider) Remove(ctx context.Context, key string) error {
	return p.client.Del(ctx, p.prefix+key).Err()
}

func (p *RedisProvider) Keys(ctx context.Context) ([]string, error) {
	var keys []string
	iter := p.client.Scan(ctx, 0, p.prefix+"*", 100).Iterator()
	for iter.Next(ctx) {
		keys = append(keys, strings.TrimPrefix(iter.Val(), p.prefix))
	}
	if err := iter.Err(); err != nil && !errors.Is(err, redis.Nil) {
		return nil, err
	}
	sort.Strings(keys)
	return keys, nil
}
