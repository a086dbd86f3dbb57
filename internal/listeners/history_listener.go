package listeners

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"admin-request-engine/internal/entities"
	"admin-request-engine/internal/events"
	"admin-request-engine/internal/repositories"
	"admin-request-engine/pkg/eventbus"
)

// HistoryListener пишет журнал изменений заявок по событиям шины.
type HistoryListener struct {
	historyRepo repositories.RequestHistoryRepositoryInterface
	logger      *zap.Logger
}

func NewHistoryListener(historyRepo repositories.RequestHistoryRepositoryInterface, logger *zap.Logger) *HistoryListener {
	return &HistoryListener{historyRepo: historyRepo, logger: logger}
}

func (l *HistoryListener) Register(bus *eventbus.Bus) {
	bus.Subscribe(events.RequestCreated, l.HandleRequestCreated)
	bus.Subscribe(events.RequestStatusChanged, l.HandleStatusChanged)
}

func (l *HistoryListener) HandleRequestCreated(ctx context.Context, event eventbus.Event) error {
	e, ok := event.(events.RequestCreatedEvent)
	if !ok {
		return fmt.Errorf("неожиданный тип события: %T", event)
	}

	status := string(e.Request.Status)
	item := &entities.RequestHistory{
		RequestID: e.Request.ID,
		EventID:   e.EventID,
		EventType: entities.HistoryEventCreated,
		NewValue:  &status,
		CreatedAt: e.OccurredAt,
	}
	if err := l.historyRepo.Create(ctx, item); err != nil {
		return fmt.Errorf("запись истории (created) для заявки %d: %w", e.Request.ID, err)
	}
	l.logger.Debug("история: заявка создана", zap.Uint64("requestId", e.Request.ID))
	return nil
}

func (l *HistoryListener) HandleStatusChanged(ctx context.Context, event eventbus.Event) error {
	e, ok := event.(events.RequestStatusChangedEvent)
	if !ok {
		return fmt.Errorf("неожиданный тип события: %T", event)
	}

	from, to := string(e.From), string(e.To)
	item := &entities.RequestHistory{
		RequestID: e.RequestID,
		EventID:   e.EventID,
		EventType: entities.HistoryEventStatusChange,
		OldValue:  &from,
		NewValue:  &to,
		CreatedAt: e.OccurredAt,
	}
	if err := l.historyRepo.Create(ctx, item); err != nil {
		return fmt.Errorf("запись истории (status) для заявки %d: %w", e.RequestID, err)
	}
	l.logger.Debug("история: смена статуса",
		zap.Uint64("requestId", e.RequestID),
		zap.String("from", from),
		zap.String("to", to),
	)
	return nil
}
