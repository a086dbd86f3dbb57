package repositories

import (
	"context"
	"time"

	"admin-request-engine/internal/entities"
	"admin-request-engine/pkg/constants"
)

// RequestRepositoryInterface - хранилище заявок, которым пользуется движок.
type RequestRepositoryInterface interface {
	// Put сохраняет новую заявку и проставляет ей ID.
	Put(ctx context.Context, request *entities.Request) error
	// GetByID возвращает apperrors.ErrNotFound, если заявки нет.
	GetByID(ctx context.Context, id uint64) (*entities.Request, error)
	// Scan возвращает снимок заявок, подходящих под фильтр, упорядоченный по ID.
	Scan(ctx context.Context, filter RequestFilter) ([]entities.Request, error)
	// CompareAndUpdateStatus меняет статус, только если текущий равен expected.
	// processedAt != nil записывается тем же атомарным обновлением.
	// false без ошибки означает, что заявку успели изменить (или ее нет).
	CompareAndUpdateStatus(ctx context.Context, id uint64, expected, next constants.RequestStatus, processedAt *time.Time) (bool, error)
}
