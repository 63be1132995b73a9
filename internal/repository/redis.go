package repository

import (
	"context"
	"errors"

	"github.com/redis/go-redis/v9"

	errs "goboard/internal/errors"
)

const redisKeyPrefix = "goboard:"

// RedisStore хранит значения как обычные строки redis без TTL
type RedisStore struct {
	client *redis.Client
}

func NewRedisStore(client *redis.Client) *RedisStore {
	return &RedisStore{client: client}
}

func (r *RedisStore) Get(ctx context.Context, key string) (string, error) {
	v, err := r.client.Get(ctx, redisKeyPrefix+key).Result()
	if errors.Is(err, redis.Nil) {
		return "", errs.ErrKeyNotFound
	}
	if err != nil {
		return "", err
	}
	return v, nil
}

func (r *RedisStore) Set(ctx context.Context, key, value string) error {
	return r.client.Set(ctx, redisKeyPrefix+key, value, 0).Err()
}

func (r *RedisStore) Remove(ctx context.Context, key string) error {
	return r.client.Del(ctx, redisKeyPrefix+key).Err()
}
