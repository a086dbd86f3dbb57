package services

import (
	"context"

	"go.uber.org/zap"

	"admin-request-engine/internal/entities"
	"admin-request-engine/internal/repositories"
)

type RequestHistoryServiceInterface interface {
	GetHistory(ctx context.Context, requestID uint64) ([]entities.RequestHistory, error)
}

type RequestHistoryService struct {
	requestRepo repositories.RequestRepositoryInterface
	historyRepo repositories.RequestHistoryRepositoryInterface
	logger      *zap.Logger
}

func NewRequestHistoryService(
	requestRepo repositories.RequestRepositoryInterface,
	historyRepo repositories.RequestHistoryRepositoryInterface,
	logger *zap.Logger,
) RequestHistoryServiceInterface {
	return &RequestHistoryService{requestRepo: requestRepo, historyRepo: historyRepo, logger: logger}
}

// GetHistory: для несуществующей заявки - ErrNotFound, а не пустой список.
func (s *RequestHistoryService) GetHistory(ctx context.Context, requestID uint64) ([]entities.RequestHistory, error) {
	if _, err := s.requestRepo.GetByID(ctx, requestID); err != nil {
		return nil, err
	}
	history, err := s.historyRepo.FindByRequestID(ctx, requestID)
	if err != nil {
		s.logger.Error("Ошибка в historyRepo.FindByRequestID", zap.Uint64("requestId", requestID), zap.Error(err))
		return nil, err
	}
	return history, nil
}
