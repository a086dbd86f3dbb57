package controllers

import (
	"context"
	"errors"
	"strconv"
	"time"

	"go.uber.org/zap"

	"admin-request-engine/internal/repositories"
	apperrors "admin-request-engine/pkg/errors"
)

const (
	idempotencyPrefix  = "idempotency:request:"
	idempotencyPending = "pending"
)

type claimState int

const (
	// claimAcquired - ключ наш, можно создавать заявку.
	claimAcquired claimState = iota
	// claimDone - по ключу уже создана заявка, ее ID вернули.
	claimDone
	// claimInFlight - параллельный запрос с тем же ключом еще не закончил.
	claimInFlight
	// claimSkipped - ключа нет или кеш недоступен, работаем без идемпотентности.
	claimSkipped
)

// RequestDeduplicator держит Idempotency-Key для POST /requests.
type RequestDeduplicator struct {
	cache  repositories.CacheRepositoryInterface
	ttl    time.Duration
	logger *zap.Logger
}

func NewRequestDeduplicator(cache repositories.CacheRepositoryInterface, ttl time.Duration, logger *zap.Logger) *RequestDeduplicator {
	return &RequestDeduplicator{cache: cache, ttl: ttl, logger: logger}
}

func (d *RequestDeduplicator) TryAcquire(ctx context.Context, key string) (claimState, uint64) {
	if d == nil || d.cache == nil || key == "" {
		return claimSkipped, 0
	}
	cacheKey := idempotencyPrefix + key

	ok, err := d.cache.SetNX(ctx, cacheKey, idempotencyPending, d.ttl)
	if err != nil {
		d.logger.Warn("кеш идемпотентности недоступен", zap.String("key", key), zap.Error(err))
		return claimSkipped, 0
	}
	if ok {
		return claimAcquired, 0
	}

	value, err := d.cache.Get(ctx, cacheKey)
	if err != nil {
		if !errors.Is(err, apperrors.ErrNotFound) {
			d.logger.Warn("не удалось прочитать ключ идемпотентности", zap.String("key", key), zap.Error(err))
		}
		return claimSkipped, 0
	}
	if value == idempotencyPending {
		return claimInFlight, 0
	}
	id, err := strconv.ParseUint(value, 10, 64)
	if err != nil {
		d.logger.Warn("битое значение ключа идемпотентности", zap.String("key", key), zap.String("value", value))
		return claimSkipped, 0
	}
	return claimDone, id
}

// Complete запоминает ID созданной заявки под ключом.
func (d *RequestDeduplicator) Complete(ctx context.Context, key string, id uint64) {
	if err := d.cache.Set(ctx, idempotencyPrefix+key, strconv.FormatUint(id, 10), d.ttl); err != nil {
		d.logger.Warn("не удалось сохранить ключ идемпотентности", zap.String("key", key), zap.Error(err))
	}
}

// Release освобождает ключ после неудачной попытки, чтобы клиент мог повторить.
func (d *RequestDeduplicator) Release(ctx context.Context, key string) {
	if err := d.cache.Del(ctx, idempotencyPrefix+key); err != nil {
		d.logger.Warn("не удалось освободить ключ идемпотентности", zap.String("key", key), zap.Error(err))
	}
}
