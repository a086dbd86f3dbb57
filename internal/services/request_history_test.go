package services

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"admin-request-engine/internal/entities"
	"admin-request-engine/internal/repositories"
	apperrors "admin-request-engine/pkg/errors"
)

func TestGetHistory(t *testing.T) {
	requests := repositories.NewMemoryRequestRepository()
	history := repositories.NewMemoryRequestHistoryRepository()
	svc := NewRequestHistoryService(requests, history, zap.NewNop())

	r := putRequest(t, requests, entities.Request{})
	other := putRequest(t, requests, entities.Request{})
	for _, id := range []uint64{r.ID, other.ID, r.ID} {
		require.NoError(t, history.Create(context.Background(), &entities.RequestHistory{
			RequestID: id,
			EventID:   uuid.New(),
			EventType: entities.HistoryEventStatusChange,
		}))
	}

	items, err := svc.GetHistory(context.Background(), r.ID)
	require.NoError(t, err)
	assert.Len(t, items, 2)
	for _, h := range items {
		assert.Equal(t, r.ID, h.RequestID)
	}

	_, err = svc.GetHistory(context.Background(), 404)
	assert.ErrorIs(t, err, apperrors.ErrNotFound)
}
