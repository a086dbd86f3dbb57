package seeders

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"admin-request-engine/internal/repositories"
	"admin-request-engine/internal/services"
	"admin-request-engine/pkg/constants"
)

func TestSeedRequestsInto(t *testing.T) {
	ctx := context.Background()
	repo := repositories.NewMemoryRequestRepository()
	now := time.Date(2024, time.March, 1, 9, 0, 0, 0, time.UTC)

	n, err := SeedRequestsInto(ctx, repo, now, zap.NewNop())
	require.NoError(t, err)
	assert.Equal(t, len(demoRequests), n)

	counts, err := services.NewStatisticsService(repo, zap.NewNop()).CountByStatus(ctx)
	require.NoError(t, err)
	assert.Equal(t, map[constants.RequestStatus]int64{
		constants.StatusDraft:       1,
		constants.StatusSubmitted:   2,
		constants.StatusInProgress:  2,
		constants.StatusWaitingInfo: 1,
		constants.StatusApproved:    1,
		constants.StatusRejected:    1,
		constants.StatusCancelled:   1,
		constants.StatusCompleted:   1,
	}, counts)

	all, err := repo.Scan(ctx, repositories.RequestFilter{})
	require.NoError(t, err)
	for i, r := range all {
		d := demoRequests[i]
		assert.Equal(t, d.Description, r.Description)
		if d.DueInDays > 0 {
			require.NotNil(t, r.DateNeeded, d.Description)
			assert.True(t, r.DateNeeded.Equal(now.AddDate(0, 0, d.DueInDays)))
		} else {
			assert.Nil(t, r.DateNeeded)
		}
		assert.Equal(t, constants.IsProcessedStatus(r.Status), r.ProcessedAt != nil, "processed_at только у обработанных: %s", r.Status)
	}
}

func TestDemoRequestsAreValid(t *testing.T) {
	for _, d := range demoRequests {
		from := constants.StatusDraft
		for _, to := range d.Path {
			assert.True(t, services.CanTransition(from, to), "%s: %s -> %s", d.Description, from, to)
			from = to
		}
		assert.LessOrEqual(t, len([]rune(d.Description)), 2000)
	}
}
