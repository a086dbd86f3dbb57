package repositories

import (
	"context"
	"time"
)

// CacheRepositoryInterface - ключ-значение с TTL. Get возвращает apperrors.ErrNotFound
// при промахе.
type CacheRepositoryInterface interface {
	Set(ctx context.Context, key string, value interface{}, expiration time.Duration) error
	SetNX(ctx context.Context, key string, value interface{}, expiration time.Duration) (bool, error)
	Get(ctx context.Context, key string) (string, error)
	Del(ctx context.Context, key ...string) error
}
