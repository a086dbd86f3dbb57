package services

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"

	"admin-request-engine/internal/dto"
	"admin-request-engine/internal/entities"
	"admin-request-engine/internal/repositories"
	"admin-request-engine/pkg/constants"
	apperrors "admin-request-engine/pkg/errors"
	"admin-request-engine/pkg/metrics"
	"admin-request-engine/pkg/validation"
)

// allowedTransitions - таблица переходов. Финальные статусы исходящих переходов не имеют.
var allowedTransitions = map[constants.RequestStatus][]constants.RequestStatus{
	constants.StatusDraft: {
		constants.StatusSubmitted,
		constants.StatusCancelled,
	},
	constants.StatusSubmitted: {
		constants.StatusInProgress,
		constants.StatusWaitingInfo,
		constants.StatusRejected,
		constants.StatusCancelled,
	},
	constants.StatusInProgress: {
		constants.StatusWaitingInfo,
		constants.StatusApproved,
		constants.StatusRejected,
		constants.StatusCompleted,
		constants.StatusCancelled,
	},
	constants.StatusWaitingInfo: {
		constants.StatusInProgress,
		constants.StatusCancelled,
	},
}

// CanTransition сообщает, разрешен ли переход from -> to.
func CanTransition(from, to constants.RequestStatus) bool {
	for _, next := range allowedTransitions[from] {
		if next == to {
			return true
		}
	}
	return false
}

// AllowedTransitions возвращает копию списка допустимых целевых статусов.
func AllowedTransitions(from constants.RequestStatus) []constants.RequestStatus {
	return append([]constants.RequestStatus(nil), allowedTransitions[from]...)
}

// TransitionResult - обновленная заявка и статус, из которого она вышла.
type TransitionResult struct {
	Request *entities.Request
	From    constants.RequestStatus
}

type LifecycleServiceInterface interface {
	CreateRequest(ctx context.Context, createDTO dto.CreateRequestDTO) (*entities.Request, error)
	Transition(ctx context.Context, id uint64, target constants.RequestStatus) (*TransitionResult, error)
	Get(ctx context.Context, id uint64) (*entities.Request, error)
}

type LifecycleService struct {
	repo      repositories.RequestRepositoryInterface
	validator *validation.CustomValidator
	logger    *zap.Logger
	now       func() time.Time
}

// NewLifecycleService: now == nil означает time.Now.
func NewLifecycleService(
	repo repositories.RequestRepositoryInterface,
	validator *validation.CustomValidator,
	logger *zap.Logger,
	now func() time.Time,
) LifecycleServiceInterface {
	if now == nil {
		now = time.Now
	}
	return &LifecycleService{repo: repo, validator: validator, logger: logger, now: now}
}

func (s *LifecycleService) CreateRequest(ctx context.Context, createDTO dto.CreateRequestDTO) (*entities.Request, error) {
	if err := s.validator.Validate(&createDTO); err != nil {
		s.logger.Debug("заявка не прошла валидацию", zap.Error(err))
		return nil, err
	}

	request := &entities.Request{
		RequesterID:     createDTO.RequesterID,
		Description:     createDTO.Description,
		Type:            createDTO.Type,
		Priority:        createDTO.Priority,
		Status:          constants.StatusDraft,
		BudgetRequested: createDTO.BudgetRequested,
		CreatedAt:       s.now(),
	}
	if createDTO.DateNeeded.Valid {
		t := createDTO.DateNeeded.Time
		request.DateNeeded = &t
	}

	if err := s.repo.Put(ctx, request); err != nil {
		s.logger.Error("Ошибка в repo.Put", zap.Error(err))
		return nil, fmt.Errorf("сохранение заявки: %w", err)
	}

	metrics.RequestsCreated.WithLabelValues(string(request.Type), string(request.Priority)).Inc()
	s.logger.Info("заявка создана",
		zap.Uint64("requestId", request.ID),
		zap.String("type", string(request.Type)),
		zap.String("priority", string(request.Priority)),
	)
	return request, nil
}

func (s *LifecycleService) Transition(ctx context.Context, id uint64, target constants.RequestStatus) (*TransitionResult, error) {
	if !constants.IsValidStatus(target) {
		return nil, apperrors.NewValidationError(apperrors.FieldError{Field: "Status", Rule: "request_status"})
	}

	current, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if !CanTransition(current.Status, target) {
		metrics.ObserveTransition(current.Status, target, metrics.ResultInvalid)
		s.logger.Warn("недопустимый переход статуса",
			zap.Uint64("requestId", id),
			zap.String("from", string(current.Status)),
			zap.String("to", string(target)),
		)
		return nil, apperrors.NewInvalidTransitionError(string(current.Status), string(target))
	}

	var processedAt *time.Time
	if constants.IsProcessedStatus(target) {
		t := s.now()
		processedAt = &t
	}

	ok, err := s.repo.CompareAndUpdateStatus(ctx, id, current.Status, target, processedAt)
	if err != nil {
		s.logger.Error("Ошибка в repo.CompareAndUpdateStatus", zap.Uint64("requestId", id), zap.Error(err))
		return nil, fmt.Errorf("обновление статуса: %w", err)
	}
	if !ok {
		metrics.ObserveTransition(current.Status, target, metrics.ResultConflict)
		s.logger.Warn("конфликт при смене статуса",
			zap.Uint64("requestId", id),
			zap.String("expected", string(current.Status)),
			zap.String("to", string(target)),
		)
		return nil, apperrors.ErrConcurrentModification
	}

	metrics.ObserveTransition(current.Status, target, metrics.ResultOK)
	s.logger.Info("статус заявки изменен",
		zap.Uint64("requestId", id),
		zap.String("from", string(current.Status)),
		zap.String("to", string(target)),
	)

	updated := current.Clone()
	updated.Status = target
	if processedAt != nil {
		updated.ProcessedAt = processedAt
	}
	return &TransitionResult{Request: &updated, From: current.Status}, nil
}

func (s *LifecycleService) Get(ctx context.Context, id uint64) (*entities.Request, error) {
	return s.repo.GetByID(ctx, id)
}
