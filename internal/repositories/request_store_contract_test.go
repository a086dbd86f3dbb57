package repositories

import (
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"admin-request-engine/internal/entities"
	"admin-request-engine/pkg/constants"
	apperrors "admin-request-engine/pkg/errors"
)

var storeBaseTime = time.Date(2024, time.March, 1, 9, 0, 0, 0, time.UTC)

func newStoredRequest(status constants.RequestStatus, priority constants.RequestPriority) *entities.Request {
	return &entities.Request{
		RequesterID: 7,
		Description: "Ноутбук для нового сотрудника",
		Type:        constants.RequestTypeEquipment,
		Priority:    priority,
		Status:      status,
		CreatedAt:   storeBaseTime,
	}
}

// runRequestStoreContract проверяет поведение, одинаковое для памяти и PostgreSQL.
func runRequestStoreContract(t *testing.T, newRepo func(t *testing.T) RequestRepositoryInterface) {
	ctx := context.Background()

	t.Run("Put assigns ids and GetByID reads back", func(t *testing.T) {
		repo := newRepo(t)
		needed := storeBaseTime.Add(72 * time.Hour)

		first := newStoredRequest(constants.StatusDraft, constants.PriorityHaute)
		first.BudgetRequested = decimal.NewNullDecimal(decimal.RequireFromString("1250.50"))
		first.DateNeeded = &needed
		require.NoError(t, repo.Put(ctx, first))

		second := newStoredRequest(constants.StatusDraft, constants.PriorityBasse)
		require.NoError(t, repo.Put(ctx, second))

		assert.NotZero(t, first.ID)
		assert.NotEqual(t, first.ID, second.ID)

		got, err := repo.GetByID(ctx, first.ID)
		require.NoError(t, err)
		assert.Equal(t, first.Description, got.Description)
		assert.Equal(t, constants.PriorityHaute, got.Priority)
		assert.Equal(t, constants.StatusDraft, got.Status)
		assert.True(t, got.CreatedAt.Equal(storeBaseTime))
		require.True(t, got.BudgetRequested.Valid)
		assert.True(t, got.BudgetRequested.Decimal.Equal(decimal.RequireFromString("1250.5")))
		require.NotNil(t, got.DateNeeded)
		assert.True(t, got.DateNeeded.Equal(needed))
		assert.Nil(t, got.ProcessedAt)

		other, err := repo.GetByID(ctx, second.ID)
		require.NoError(t, err)
		assert.False(t, other.BudgetRequested.Valid)
		assert.Nil(t, other.DateNeeded)
	})

	t.Run("GetByID unknown id is not found", func(t *testing.T) {
		repo := newRepo(t)
		_, err := repo.GetByID(ctx, 999999)
		assert.ErrorIs(t, err, apperrors.ErrNotFound)
	})

	t.Run("Scan filters and orders by id", func(t *testing.T) {
		repo := newRepo(t)
		needed := storeBaseTime.Add(24 * time.Hour)
		processed := storeBaseTime.Add(5 * time.Hour)

		submitted := newStoredRequest(constants.StatusSubmitted, constants.PriorityCritique)
		submitted.DateNeeded = &needed
		require.NoError(t, repo.Put(ctx, submitted))

		approved := newStoredRequest(constants.StatusApproved, constants.PriorityUrgente)
		approved.ProcessedAt = &processed
		require.NoError(t, repo.Put(ctx, approved))

		draft := newStoredRequest(constants.StatusDraft, constants.PriorityCritique)
		draft.Type = constants.RequestTypeLeave
		require.NoError(t, repo.Put(ctx, draft))

		all, err := repo.Scan(ctx, RequestFilter{})
		require.NoError(t, err)
		assert.Equal(t, []uint64{submitted.ID, approved.ID, draft.ID}, requestIDs(all))

		cases := []struct {
			name   string
			filter RequestFilter
			want   []uint64
		}{
			{"statuses", RequestFilter{Statuses: []constants.RequestStatus{constants.StatusSubmitted, constants.StatusDraft}}, []uint64{submitted.ID, draft.ID}},
			{"exclude finals", RequestFilter{ExcludeStatuses: constants.FinalStatuses}, []uint64{submitted.ID, draft.ID}},
			{"urgent priorities", RequestFilter{Priorities: constants.UrgentPriorities, ExcludeStatuses: constants.FinalStatuses}, []uint64{submitted.ID, draft.ID}},
			{"types", RequestFilter{Types: []constants.RequestType{constants.RequestTypeLeave}}, []uint64{draft.ID}},
			{"date needed inclusive", RequestFilter{DateNeededBefore: &needed}, []uint64{submitted.ID}},
			{"only processed", RequestFilter{OnlyProcessed: true}, []uint64{approved.ID}},
		}
		for _, tc := range cases {
			t.Run(tc.name, func(t *testing.T) {
				got, err := repo.Scan(ctx, tc.filter)
				require.NoError(t, err)
				assert.Equal(t, tc.want, requestIDs(got))
			})
		}
	})

	t.Run("CompareAndUpdateStatus", func(t *testing.T) {
		repo := newRepo(t)
		r := newStoredRequest(constants.StatusInProgress, constants.PriorityNormale)
		require.NoError(t, repo.Put(ctx, r))

		ok, err := repo.CompareAndUpdateStatus(ctx, r.ID, constants.StatusSubmitted, constants.StatusApproved, nil)
		require.NoError(t, err)
		assert.False(t, ok, "ожидаемый статус не совпал - обновления нет")

		got, err := repo.GetByID(ctx, r.ID)
		require.NoError(t, err)
		assert.Equal(t, constants.StatusInProgress, got.Status)

		processed := storeBaseTime.Add(2 * time.Hour)
		ok, err = repo.CompareAndUpdateStatus(ctx, r.ID, constants.StatusInProgress, constants.StatusApproved, &processed)
		require.NoError(t, err)
		assert.True(t, ok)

		got, err = repo.GetByID(ctx, r.ID)
		require.NoError(t, err)
		assert.Equal(t, constants.StatusApproved, got.Status)
		require.NotNil(t, got.ProcessedAt)
		assert.True(t, got.ProcessedAt.Equal(processed))
		assert.True(t, got.CreatedAt.Equal(storeBaseTime), "created_at не меняется")

		ok, err = repo.CompareAndUpdateStatus(ctx, 999999, constants.StatusDraft, constants.StatusSubmitted, nil)
		require.NoError(t, err)
		assert.False(t, ok)
	})
}

func requestIDs(list []entities.Request) []uint64 {
	out := make([]uint64, 0, len(list))
	for _, r := range list {
		out = append(out, r.ID)
	}
	return out
}
