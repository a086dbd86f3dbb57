package services

import (
	"context"
	"sort"

	"go.uber.org/zap"

	"admin-request-engine/internal/entities"
	"admin-request-engine/internal/repositories"
	"admin-request-engine/pkg/constants"
)

type TriageServiceInterface interface {
	PendingQueue(ctx context.Context) ([]entities.Request, error)
	UrgentUnresolved(ctx context.Context) ([]entities.Request, error)
}

type TriageService struct {
	repo   repositories.RequestRepositoryInterface
	logger *zap.Logger
}

func NewTriageService(repo repositories.RequestRepositoryInterface, logger *zap.Logger) TriageServiceInterface {
	return &TriageService{repo: repo, logger: logger}
}

// PendingQueue: SUBMITTED и IN_PROGRESS, сначала самый высокий приоритет,
// внутри приоритета - самые старые.
func (s *TriageService) PendingQueue(ctx context.Context) ([]entities.Request, error) {
	list, err := s.repo.Scan(ctx, repositories.RequestFilter{Statuses: constants.QueuedStatuses})
	if err != nil {
		s.logger.Error("Ошибка в repo.Scan (pending)", zap.Error(err))
		return nil, err
	}

	sort.SliceStable(list, func(i, j int) bool {
		a, b := list[i], list[j]
		if ra, rb := a.Priority.Rate(), b.Priority.Rate(); ra != rb {
			return ra > rb
		}
		if !a.CreatedAt.Equal(b.CreatedAt) {
			return a.CreatedAt.Before(b.CreatedAt)
		}
		return a.ID < b.ID
	})
	return list, nil
}

// UrgentUnresolved: URGENTE/CRITIQUE в нефинальных статусах, от старых к новым.
func (s *TriageService) UrgentUnresolved(ctx context.Context) ([]entities.Request, error) {
	filter := repositories.RequestFilter{
		Priorities:      constants.UrgentPriorities,
		ExcludeStatuses: constants.FinalStatuses,
	}
	list, err := s.repo.Scan(ctx, filter)
	if err != nil {
		s.logger.Error("Ошибка в repo.Scan (urgent)", zap.Error(err))
		return nil, err
	}

	sortByCreatedAt(list)
	return list, nil
}

func sortByCreatedAt(list []entities.Request) {
	sort.SliceStable(list, func(i, j int) bool {
		if !list[i].CreatedAt.Equal(list[j].CreatedAt) {
			return list[i].CreatedAt.Before(list[j].CreatedAt)
		}
		return list[i].ID < list[j].ID
	})
}
