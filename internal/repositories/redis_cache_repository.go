package repositories

import (
	"context"
	"errors"
	"time"

	"github.com/go-redis/redis/v8"

	apperrors "admin-request-engine/pkg/errors"
)

// RedisCacheRepository - реализация кеша на Redis.
type RedisCacheRepository struct {
	client *redis.Client
}

// NewRedisCacheRepository - конструктор для репозитория.
func NewRedisCacheRepository(client *redis.Client) CacheRepositoryInterface {
	return &RedisCacheRepository{client: client}
}

// Get получает значение из кеша по ключу.
func (r *RedisCacheRepository) Get(ctx context.Context, key string) (string, error) {
	value, err := r.client.Get(ctx, key).Result()
	if errors.Is(err, redis.Nil) {
		return "", apperrors.ErrNotFound
	}
	return value, err
}

// Set устанавливает значение в кеш.
func (r *RedisCacheRepository) Set(ctx context.Context, key string, value interface{}, expiration time.Duration) error {
	return r.client.Set(ctx, key, value, expiration).Err()
}

// SetNX записывает значение, только если ключа еще нет.
func (r *RedisCacheRepository) SetNX(ctx context.Context, key string, value interface{}, expiration time.Duration) (bool, error) {
	return r.client.SetNX(ctx, key, value, expiration).Result()
}

// Del удаляет ключи из кеша.
func (r *RedisCacheRepository) Del(ctx context.Context, keys ...string) error {
	return r.client.Del(ctx, keys...).Err()
}
