package services

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"admin-request-engine/internal/entities"
	"admin-request-engine/internal/repositories"
	"admin-request-engine/pkg/constants"
	"admin-request-engine/pkg/validation"
)

var baseTime = time.Date(2024, time.March, 1, 9, 0, 0, 0, time.UTC)

// testClock - управляемые часы для детерминированного FIFO.
type testClock struct {
	mu  sync.Mutex
	now time.Time
}

func newTestClock() *testClock {
	return &testClock{now: baseTime}
}

func (c *testClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.now
}

func (c *testClock) Advance(d time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.now = c.now.Add(d)
}

func newLifecycle(repo repositories.RequestRepositoryInterface, clock *testClock) LifecycleServiceInterface {
	return NewLifecycleService(repo, validation.New(), zap.NewNop(), clock.Now)
}

// putRequest кладет заявку в нужном состоянии прямо в хранилище, минуя движок.
func putRequest(t *testing.T, repo repositories.RequestRepositoryInterface, r entities.Request) entities.Request {
	t.Helper()
	if r.RequesterID == 0 {
		r.RequesterID = 1
	}
	if r.Description == "" {
		r.Description = "тестовая заявка"
	}
	if r.Type == "" {
		r.Type = constants.RequestTypeOther
	}
	if r.Priority == "" {
		r.Priority = constants.PriorityNormale
	}
	if r.Status == "" {
		r.Status = constants.StatusDraft
	}
	if r.CreatedAt.IsZero() {
		r.CreatedAt = baseTime
	}
	require.NoError(t, repo.Put(context.Background(), &r))
	return r
}

func ids(list []entities.Request) []uint64 {
	out := make([]uint64, 0, len(list))
	for _, r := range list {
		out = append(out, r.ID)
	}
	return out
}

func budget(s string) decimal.NullDecimal {
	return decimal.NewNullDecimal(decimal.RequireFromString(s))
}

func timePtr(t time.Time) *time.Time {
	return &t
}

// casStubRepository подменяет CompareAndUpdateStatus, остальное - память.
type casStubRepository struct {
	*repositories.MemoryRequestRepository
	casResult bool
	casErr    error
	// beforeCAS вызывается перед подменным CAS, например чтобы "параллельно" сменить статус.
	beforeCAS func()
}

func (s *casStubRepository) CompareAndUpdateStatus(ctx context.Context, id uint64, expected, next constants.RequestStatus, processedAt *time.Time) (bool, error) {
	if s.beforeCAS != nil {
		s.beforeCAS()
		return s.MemoryRequestRepository.CompareAndUpdateStatus(ctx, id, expected, next, processedAt)
	}
	return s.casResult, s.casErr
}

// failingScanRepository возвращает ошибку на любой Scan.
type failingScanRepository struct {
	*repositories.MemoryRequestRepository
	err error
}

func (f *failingScanRepository) Scan(context.Context, repositories.RequestFilter) ([]entities.Request, error) {
	return nil, f.err
}

func entitiesWithStatus(s constants.RequestStatus) entities.Request {
	return entities.Request{Status: s}
}
