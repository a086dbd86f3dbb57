package listeners

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"admin-request-engine/internal/entities"
	"admin-request-engine/internal/events"
	"admin-request-engine/internal/repositories"
	"admin-request-engine/pkg/constants"
	"admin-request-engine/pkg/eventbus"
)

var occurredAt = time.Date(2024, time.March, 1, 9, 0, 0, 0, time.UTC)

func TestHistoryListener_ThroughBus(t *testing.T) {
	historyRepo := repositories.NewMemoryRequestHistoryRepository()
	bus := eventbus.New(zap.NewNop())
	NewHistoryListener(historyRepo, zap.NewNop()).Register(bus)

	request := entities.Request{ID: 5, Status: constants.StatusDraft}
	bus.Publish(context.Background(), events.NewRequestCreatedEvent(request, occurredAt))
	bus.Wait()
	bus.Publish(context.Background(), events.NewRequestStatusChangedEvent(5, constants.StatusDraft, constants.StatusSubmitted, occurredAt.Add(time.Minute)))
	bus.Wait()

	items, err := historyRepo.FindByRequestID(context.Background(), 5)
	require.NoError(t, err)
	require.Len(t, items, 2)

	created := items[0]
	assert.Equal(t, entities.HistoryEventCreated, created.EventType)
	assert.Nil(t, created.OldValue)
	require.NotNil(t, created.NewValue)
	assert.Equal(t, "DRAFT", *created.NewValue)
	assert.True(t, created.CreatedAt.Equal(occurredAt))

	changed := items[1]
	assert.Equal(t, entities.HistoryEventStatusChange, changed.EventType)
	assert.Equal(t, "DRAFT", *changed.OldValue)
	assert.Equal(t, "SUBMITTED", *changed.NewValue)
	assert.NotEqual(t, created.EventID, changed.EventID)
}

func TestHistoryListener_RejectsForeignEvent(t *testing.T) {
	listener := NewHistoryListener(repositories.NewMemoryRequestHistoryRepository(), zap.NewNop())

	err := listener.HandleRequestCreated(context.Background(), events.NewRequestStatusChangedEvent(1, constants.StatusDraft, constants.StatusSubmitted, occurredAt))
	assert.Error(t, err)

	err = listener.HandleStatusChanged(context.Background(), events.NewRequestCreatedEvent(entities.Request{ID: 1}, occurredAt))
	assert.Error(t, err)
}

type failingHistoryRepo struct {
	*repositories.MemoryRequestHistoryRepository
}

func (failingHistoryRepo) Create(context.Context, *entities.RequestHistory) error {
	return assert.AnError
}

func TestHistoryListener_WrapsStoreError(t *testing.T) {
	listener := NewHistoryListener(failingHistoryRepo{repositories.NewMemoryRequestHistoryRepository()}, zap.NewNop())

	err := listener.HandleStatusChanged(context.Background(), events.NewRequestStatusChangedEvent(1, constants.StatusDraft, constants.StatusSubmitted, occurredAt))
	assert.ErrorIs(t, err, assert.AnError)
}
