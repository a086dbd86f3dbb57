package repositories

import (
	"context"
	"fmt"
	"sync"
	"time"

	apperrors "admin-request-engine/pkg/errors"
)

type memoryCacheItem struct {
	value  string
	expiry time.Time // нулевое значение - без срока
}

func (i memoryCacheItem) expired(now time.Time) bool {
	return !i.expiry.IsZero() && !now.Before(i.expiry)
}

// MemoryCacheRepository - кеш в памяти процесса, когда Redis не настроен.
type MemoryCacheRepository struct {
	mu    sync.Mutex
	items map[string]memoryCacheItem
}

func NewMemoryCacheRepository() *MemoryCacheRepository {
	return &MemoryCacheRepository{items: make(map[string]memoryCacheItem)}
}

func (r *MemoryCacheRepository) Set(_ context.Context, key string, value interface{}, expiration time.Duration) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.items[key] = newMemoryCacheItem(value, expiration)
	return nil
}

func (r *MemoryCacheRepository) SetNX(_ context.Context, key string, value interface{}, expiration time.Duration) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if item, ok := r.items[key]; ok && !item.expired(time.Now()) {
		return false, nil
	}
	r.items[key] = newMemoryCacheItem(value, expiration)
	return true, nil
}

func (r *MemoryCacheRepository) Get(_ context.Context, key string) (string, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	item, ok := r.items[key]
	if !ok || item.expired(time.Now()) {
		return "", apperrors.ErrNotFound
	}
	return item.value, nil
}

func (r *MemoryCacheRepository) Del(_ context.Context, keys ...string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, k := range keys {
		delete(r.items, k)
	}
	return nil
}

// Cleanup периодически выбрасывает просроченные ключи, пока жив ctx.
func (r *MemoryCacheRepository) Cleanup(ctx context.Context, interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			now := time.Now()
			r.mu.Lock()
			for k, item := range r.items {
				if item.expired(now) {
					delete(r.items, k)
				}
			}
			r.mu.Unlock()
		}
	}
}

func newMemoryCacheItem(value interface{}, expiration time.Duration) memoryCacheItem {
	item := memoryCacheItem{value: fmt.Sprint(value)}
	if expiration > 0 {
		item.expiry = time.Now().Add(expiration)
	}
	return item
}
