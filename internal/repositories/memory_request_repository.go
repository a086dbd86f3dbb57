package repositories

import (
	"context"
	"sort"
	"sync"
	"time"

	"admin-request-engine/internal/entities"
	"admin-request-engine/pkg/constants"
	apperrors "admin-request-engine/pkg/errors"
)

// MemoryRequestRepository - хранилище в памяти процесса (STORE_DRIVER=memory и тесты).
// Наружу отдаются только копии, поэтому снимок из Scan не меняется задним числом.
type MemoryRequestRepository struct {
	mu       sync.RWMutex
	requests map[uint64]entities.Request
	nextID   uint64
}

func NewMemoryRequestRepository() *MemoryRequestRepository {
	return &MemoryRequestRepository{requests: make(map[uint64]entities.Request)}
}

func (r *MemoryRequestRepository) Put(ctx context.Context, request *entities.Request) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	r.mu.Lock()
	defer r.mu.Unlock()

	r.nextID++
	request.ID = r.nextID
	r.requests[request.ID] = request.Clone()
	return nil
}

func (r *MemoryRequestRepository) GetByID(ctx context.Context, id uint64) (*entities.Request, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	r.mu.RLock()
	defer r.mu.RUnlock()

	stored, ok := r.requests[id]
	if !ok {
		return nil, apperrors.ErrNotFound
	}
	request := stored.Clone()
	return &request, nil
}

func (r *MemoryRequestRepository) Scan(ctx context.Context, filter RequestFilter) ([]entities.Request, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	r.mu.RLock()
	defer r.mu.RUnlock()

	result := make([]entities.Request, 0, len(r.requests))
	for _, stored := range r.requests {
		if filter.Match(&stored) {
			result = append(result, stored.Clone())
		}
	}
	sort.Slice(result, func(i, j int) bool { return result[i].ID < result[j].ID })
	return result, nil
}

func (r *MemoryRequestRepository) CompareAndUpdateStatus(ctx context.Context, id uint64, expected, next constants.RequestStatus, processedAt *time.Time) (bool, error) {
	if err := ctx.Err(); err != nil {
		return false, err
	}
	r.mu.Lock()
	defer r.mu.Unlock()

	stored, ok := r.requests[id]
	if !ok || stored.Status != expected {
		return false, nil
	}
	stored.Status = next
	if processedAt != nil {
		t := *processedAt
		stored.ProcessedAt = &t
	}
	r.requests[id] = stored
	return true, nil
}
