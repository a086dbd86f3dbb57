package services

import (
	"context"
	"sort"
	"time"

	"go.uber.org/zap"

	"admin-request-engine/internal/entities"
	"admin-request-engine/internal/repositories"
	"admin-request-engine/pkg/constants"
)

type EscalationServiceInterface interface {
	DueBefore(ctx context.Context, deadline time.Time) ([]entities.Request, error)
}

type EscalationService struct {
	repo   repositories.RequestRepositoryInterface
	logger *zap.Logger
}

func NewEscalationService(repo repositories.RequestRepositoryInterface, logger *zap.Logger) EscalationServiceInterface {
	return &EscalationService{repo: repo, logger: logger}
}

// DueBefore возвращает нефинальные заявки с date_needed <= deadline.
// Заявки без date_needed не попадают никогда.
func (s *EscalationService) DueBefore(ctx context.Context, deadline time.Time) ([]entities.Request, error) {
	filter := repositories.RequestFilter{
		ExcludeStatuses:  constants.FinalStatuses,
		DateNeededBefore: &deadline,
	}
	list, err := s.repo.Scan(ctx, filter)
	if err != nil {
		s.logger.Error("Ошибка в repo.Scan (escalation)", zap.Error(err))
		return nil, err
	}

	sort.SliceStable(list, func(i, j int) bool {
		a, b := list[i], list[j]
		if !a.DateNeeded.Equal(*b.DateNeeded) {
			return a.DateNeeded.Before(*b.DateNeeded)
		}
		if !a.CreatedAt.Equal(b.CreatedAt) {
			return a.CreatedAt.Before(b.CreatedAt)
		}
		return a.ID < b.ID
	})

	if len(list) > 0 {
		s.logger.Info("⏰ найдены заявки к эскалации",
			zap.Int("count", len(list)),
			zap.Time("deadline", deadline),
		)
	}
	return list, nil
}
