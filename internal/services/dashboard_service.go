package services

import (
	"context"
	"fmt"
	"sync"
	"time"

	"go.uber.org/zap"

	"admin-request-engine/internal/dto"
	"admin-request-engine/internal/entities"
	apperrors "admin-request-engine/pkg/errors"
	"admin-request-engine/pkg/types"
)

type DashboardService struct {
	triage     TriageServiceInterface
	escalation EscalationServiceInterface
	stats      StatisticsServiceInterface
	window     time.Duration
	logger     *zap.Logger
	now        func() time.Time
}

func NewDashboardService(
	triage TriageServiceInterface,
	escalation EscalationServiceInterface,
	stats StatisticsServiceInterface,
	window time.Duration,
	logger *zap.Logger,
	now func() time.Time,
) *DashboardService {
	if now == nil {
		now = time.Now
	}
	return &DashboardService{
		triage:     triage,
		escalation: escalation,
		stats:      stats,
		window:     window,
		logger:     logger,
		now:        now,
	}
}

// GetDashboard собирает очередь, срочные, эскалации и статистику параллельно.
// Каждая часть - отдельный снимок хранилища.
func (s *DashboardService) GetDashboard(ctx context.Context) (*dto.DashboardDTO, error) {
	deadline := s.now().Add(s.window)

	var (
		wg        sync.WaitGroup
		pending   []entities.Request
		urgent    []entities.Request
		escalated []entities.Request
		summary   *types.RequestStatistics

		errs []error
		mu   sync.Mutex
	)

	addTask := func(fn func() error) {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if err := fn(); err != nil {
				mu.Lock()
				errs = append(errs, err)
				mu.Unlock()
			}
		}()
	}

	addTask(func() (err error) { pending, err = s.triage.PendingQueue(ctx); return })
	addTask(func() (err error) { urgent, err = s.triage.UrgentUnresolved(ctx); return })
	addTask(func() (err error) { escalated, err = s.escalation.DueBefore(ctx, deadline); return })
	addTask(func() (err error) { summary, err = s.stats.Summary(ctx); return })

	wg.Wait()

	if len(errs) > 0 {
		s.logger.Error("Dashboard fetching error", zap.Error(errs[0]))
		return nil, fmt.Errorf("%w: загрузка дашборда", apperrors.ErrInternalServer)
	}

	return &dto.DashboardDTO{
		PendingQueue:     dto.NewRequestDTOList(pending),
		UrgentUnresolved: dto.NewRequestDTOList(urgent),
		Escalations:      dto.NewRequestDTOList(escalated),
		EscalationBefore: deadline.Format(time.RFC3339),
		Statistics:       dto.NewStatisticsDTO(summary),
	}, nil
}
