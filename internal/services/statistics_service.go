package services

import (
	"context"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"admin-request-engine/internal/entities"
	"admin-request-engine/internal/repositories"
	"admin-request-engine/pkg/constants"
	"admin-request-engine/pkg/types"
)

type StatisticsServiceInterface interface {
	CountByStatus(ctx context.Context) (map[constants.RequestStatus]int64, error)
	CountByType(ctx context.Context) (map[constants.RequestType]int64, error)
	CountByPriority(ctx context.Context) (map[constants.RequestPriority]int64, error)
	BudgetSumByStatus(ctx context.Context) (map[constants.RequestStatus]decimal.Decimal, error)
	// AverageProcessingHours: ok == false - "нет данных".
	AverageProcessingHours(ctx context.Context) (hours float64, ok bool, err error)
	Summary(ctx context.Context) (*types.RequestStatistics, error)
}

type StatisticsService struct {
	repo   repositories.RequestRepositoryInterface
	logger *zap.Logger
}

func NewStatisticsService(repo repositories.RequestRepositoryInterface, logger *zap.Logger) StatisticsServiceInterface {
	return &StatisticsService{repo: repo, logger: logger}
}

func (s *StatisticsService) scanAll(ctx context.Context, filter repositories.RequestFilter) ([]entities.Request, error) {
	list, err := s.repo.Scan(ctx, filter)
	if err != nil {
		s.logger.Error("Ошибка в repo.Scan (statistics)", zap.Error(err))
		return nil, err
	}
	return list, nil
}

func (s *StatisticsService) CountByStatus(ctx context.Context) (map[constants.RequestStatus]int64, error) {
	list, err := s.scanAll(ctx, repositories.RequestFilter{})
	if err != nil {
		return nil, err
	}
	return countByStatus(list), nil
}

func (s *StatisticsService) CountByType(ctx context.Context) (map[constants.RequestType]int64, error) {
	list, err := s.scanAll(ctx, repositories.RequestFilter{})
	if err != nil {
		return nil, err
	}
	return countByType(list), nil
}

func (s *StatisticsService) CountByPriority(ctx context.Context) (map[constants.RequestPriority]int64, error) {
	list, err := s.scanAll(ctx, repositories.RequestFilter{})
	if err != nil {
		return nil, err
	}
	return countByPriority(list), nil
}

func (s *StatisticsService) BudgetSumByStatus(ctx context.Context) (map[constants.RequestStatus]decimal.Decimal, error) {
	list, err := s.scanAll(ctx, repositories.RequestFilter{})
	if err != nil {
		return nil, err
	}
	return budgetSumByStatus(list), nil
}

func (s *StatisticsService) AverageProcessingHours(ctx context.Context) (float64, bool, error) {
	list, err := s.scanAll(ctx, repositories.RequestFilter{OnlyProcessed: true})
	if err != nil {
		return 0, false, err
	}
	hours, ok, _ := averageProcessingHours(list)
	return hours, ok, nil
}

// Summary считает все показатели по одному снимку хранилища,
// поэтому они согласованы между собой.
func (s *StatisticsService) Summary(ctx context.Context) (*types.RequestStatistics, error) {
	list, err := s.scanAll(ctx, repositories.RequestFilter{})
	if err != nil {
		return nil, err
	}

	stats := &types.RequestStatistics{
		Total:          int64(len(list)),
		ByStatus:       countByStatus(list),
		ByType:         countByType(list),
		ByPriority:     countByPriority(list),
		BudgetByStatus: budgetSumByStatus(list),
	}
	if hours, ok, processed := averageProcessingHours(list); ok {
		stats.AvgProcessingHours = &hours
		stats.ProcessedCount = processed
	}
	return stats, nil
}

func countByStatus(list []entities.Request) map[constants.RequestStatus]int64 {
	out := make(map[constants.RequestStatus]int64, len(constants.AllStatuses))
	for _, st := range constants.AllStatuses {
		out[st] = 0
	}
	for i := range list {
		out[list[i].Status]++
	}
	return out
}

func countByType(list []entities.Request) map[constants.RequestType]int64 {
	out := make(map[constants.RequestType]int64, len(constants.AllRequestTypes))
	for _, t := range constants.AllRequestTypes {
		out[t] = 0
	}
	for i := range list {
		out[list[i].Type]++
	}
	return out
}

func countByPriority(list []entities.Request) map[constants.RequestPriority]int64 {
	out := make(map[constants.RequestPriority]int64, len(constants.AllPriorities))
	for _, p := range constants.AllPriorities {
		out[p] = 0
	}
	for i := range list {
		out[list[i].Priority]++
	}
	return out
}

func budgetSumByStatus(list []entities.Request) map[constants.RequestStatus]decimal.Decimal {
	out := make(map[constants.RequestStatus]decimal.Decimal, len(constants.AllStatuses))
	for _, st := range constants.AllStatuses {
		out[st] = decimal.Zero
	}
	for i := range list {
		if !list[i].BudgetRequested.Valid {
			continue
		}
		out[list[i].Status] = out[list[i].Status].Add(list[i].BudgetRequested.Decimal)
	}
	return out
}

// averageProcessingHours учитывает только заявки с заполненным processed_at.
func averageProcessingHours(list []entities.Request) (float64, bool, int64) {
	var total float64
	var n int64
	for i := range list {
		if list[i].ProcessedAt == nil {
			continue
		}
		total += list[i].ProcessedAt.Sub(list[i].CreatedAt).Hours()
		n++
	}
	if n == 0 {
		return 0, false, 0
	}
	return total / float64(n), true, n
}
