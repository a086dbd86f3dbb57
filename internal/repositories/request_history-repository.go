package repositories

import (
	"context"
	"sort"
	"sync"
	"time"

	"go.uber.org/zap"

	"admin-request-engine/internal/entities"
)

type RequestHistoryRepositoryInterface interface {
	Create(ctx context.Context, history *entities.RequestHistory) error
	FindByRequestID(ctx context.Context, requestID uint64) ([]entities.RequestHistory, error)
}

type RequestHistoryRepository struct {
	storage querier
	logger  *zap.Logger
}

func NewRequestHistoryRepository(storage querier, logger *zap.Logger) RequestHistoryRepositoryInterface {
	return &RequestHistoryRepository{storage: storage, logger: logger}
}

func (r *RequestHistoryRepository) Create(ctx context.Context, history *entities.RequestHistory) error {
	query := `
		INSERT INTO request_history (request_id, event_id, event_type, old_value, new_value, created_at)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING id`
	return r.storage.QueryRow(ctx, query,
		history.RequestID, history.EventID, history.EventType,
		history.OldValue, history.NewValue, history.CreatedAt,
	).Scan(&history.ID)
}

func (r *RequestHistoryRepository) FindByRequestID(ctx context.Context, requestID uint64) ([]entities.RequestHistory, error) {
	query := `
		SELECT id, request_id, event_id, event_type, old_value, new_value, created_at
		FROM request_history
		WHERE request_id = $1
		ORDER BY created_at ASC, id ASC
	`
	rows, err := r.storage.Query(ctx, query, requestID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	history := make([]entities.RequestHistory, 0)
	for rows.Next() {
		var h entities.RequestHistory
		if err := rows.Scan(&h.ID, &h.RequestID, &h.EventID, &h.EventType, &h.OldValue, &h.NewValue, &h.CreatedAt); err != nil {
			return nil, err
		}
		history = append(history, h)
	}
	return history, rows.Err()
}

// MemoryRequestHistoryRepository - пара к MemoryRequestRepository.
type MemoryRequestHistoryRepository struct {
	mu     sync.Mutex
	items  []entities.RequestHistory
	nextID uint64
}

func NewMemoryRequestHistoryRepository() *MemoryRequestHistoryRepository {
	return &MemoryRequestHistoryRepository{}
}

func (r *MemoryRequestHistoryRepository) Create(ctx context.Context, history *entities.RequestHistory) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.nextID++
	history.ID = r.nextID
	if history.CreatedAt.IsZero() {
		history.CreatedAt = time.Now()
	}
	r.items = append(r.items, *history)
	return nil
}

func (r *MemoryRequestHistoryRepository) FindByRequestID(ctx context.Context, requestID uint64) ([]entities.RequestHistory, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	result := make([]entities.RequestHistory, 0)
	for _, h := range r.items {
		if h.RequestID == requestID {
			result = append(result, h)
		}
	}
	sort.SliceStable(result, func(i, j int) bool {
		if !result[i].CreatedAt.Equal(result[j].CreatedAt) {
			return result[i].CreatedAt.Before(result[j].CreatedAt)
		}
		return result[i].ID < result[j].ID
	})
	return result, nil
}
