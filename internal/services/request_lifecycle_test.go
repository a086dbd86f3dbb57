package services

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/aarondl/null/v8"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"admin-request-engine/internal/dto"
	"admin-request-engine/internal/repositories"
	"admin-request-engine/pkg/constants"
	apperrors "admin-request-engine/pkg/errors"
)

func validCreateDTO() dto.CreateRequestDTO {
	return dto.CreateRequestDTO{
		RequesterID: 42,
		Description: "Нужен новый монитор",
		Type:        constants.RequestTypeEquipment,
		Priority:    constants.PriorityHaute,
	}
}

func TestCreateRequest_StartsAsDraft(t *testing.T) {
	repo := repositories.NewMemoryRequestRepository()
	clock := newTestClock()
	svc := newLifecycle(repo, clock)

	in := validCreateDTO()
	in.BudgetRequested = budget("150.75")
	in.DateNeeded = null.TimeFrom(baseTime.Add(72 * time.Hour))

	created, err := svc.CreateRequest(context.Background(), in)
	require.NoError(t, err)

	assert.NotZero(t, created.ID)
	assert.Equal(t, constants.StatusDraft, created.Status)
	assert.Equal(t, clock.Now(), created.CreatedAt)
	assert.Nil(t, created.ProcessedAt)
	require.NotNil(t, created.DateNeeded)
	assert.True(t, created.DateNeeded.Equal(baseTime.Add(72*time.Hour)))
	assert.True(t, created.BudgetRequested.Decimal.Equal(budget("150.75").Decimal))

	stored, err := svc.Get(context.Background(), created.ID)
	require.NoError(t, err)
	assert.Equal(t, created.ID, stored.ID)
	assert.Equal(t, constants.StatusDraft, stored.Status)
}

func TestCreateRequest_DescriptionLengthBoundary(t *testing.T) {
	repo := repositories.NewMemoryRequestRepository()
	svc := newLifecycle(repo, newTestClock())

	// длина считается в символах, а не в байтах
	in := validCreateDTO()
	in.Description = strings.Repeat("ж", dto.DescriptionMaxLength)
	_, err := svc.CreateRequest(context.Background(), in)
	require.NoError(t, err)

	in.Description = strings.Repeat("ж", dto.DescriptionMaxLength+1)
	_, err = svc.CreateRequest(context.Background(), in)
	require.Error(t, err)
	assert.True(t, apperrors.IsValidation(err))

	var vErr *apperrors.ValidationError
	require.ErrorAs(t, err, &vErr)
	require.Len(t, vErr.Fields, 1)
	assert.Equal(t, "Description", vErr.Fields[0].Field)
	assert.Equal(t, "max", vErr.Fields[0].Rule)

	all, err := repo.Scan(context.Background(), repositories.RequestFilter{})
	require.NoError(t, err)
	assert.Len(t, all, 1, "отклоненная заявка не должна попасть в хранилище")
}

func TestCreateRequest_ValidationErrors(t *testing.T) {
	cases := []struct {
		name   string
		mutate func(*dto.CreateRequestDTO)
		field  string
	}{
		{"пустое описание", func(d *dto.CreateRequestDTO) { d.Description = "" }, "Description"},
		{"нет заявителя", func(d *dto.CreateRequestDTO) { d.RequesterID = 0 }, "RequesterID"},
		{"нет типа", func(d *dto.CreateRequestDTO) { d.Type = "" }, "Type"},
		{"неизвестный тип", func(d *dto.CreateRequestDTO) { d.Type = "VACATION" }, "Type"},
		{"нет приоритета", func(d *dto.CreateRequestDTO) { d.Priority = "" }, "Priority"},
		{"неизвестный приоритет", func(d *dto.CreateRequestDTO) { d.Priority = "LOW" }, "Priority"},
		{"отрицательный бюджет", func(d *dto.CreateRequestDTO) { d.BudgetRequested = budget("-1") }, "BudgetRequested"},
		{"исчезающе малый отрицательный бюджет", func(d *dto.CreateRequestDTO) { d.BudgetRequested = budget("-1e-400") }, "BudgetRequested"},
		{"три знака после запятой", func(d *dto.CreateRequestDTO) { d.BudgetRequested = budget("0.005") }, "BudgetRequested"},
		{"бюджет не помещается в колонку", func(d *dto.CreateRequestDTO) { d.BudgetRequested = budget("1e12") }, "BudgetRequested"},
		{"NUL в описании", func(d *dto.CreateRequestDTO) { d.Description = "монитор\x00" }, "Description"},
		{"битый UTF-8 в описании", func(d *dto.CreateRequestDTO) { d.Description = "монитор \xc3\x28" }, "Description"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			repo := repositories.NewMemoryRequestRepository()
			svc := newLifecycle(repo, newTestClock())

			in := validCreateDTO()
			tc.mutate(&in)

			created, err := svc.CreateRequest(context.Background(), in)
			assert.Nil(t, created)
			require.Error(t, err)
			assert.ErrorIs(t, err, apperrors.ErrValidation)

			var vErr *apperrors.ValidationError
			require.ErrorAs(t, err, &vErr)
			fields := make([]string, 0, len(vErr.Fields))
			for _, f := range vErr.Fields {
				fields = append(fields, f.Field)
			}
			assert.Contains(t, fields, tc.field)

			all, err := repo.Scan(context.Background(), repositories.RequestFilter{})
			require.NoError(t, err)
			assert.Empty(t, all)
		})
	}
}

func TestCreateRequest_ZeroBudgetIsAllowed(t *testing.T) {
	svc := newLifecycle(repositories.NewMemoryRequestRepository(), newTestClock())
	in := validCreateDTO()
	in.BudgetRequested = budget("0")

	created, err := svc.CreateRequest(context.Background(), in)
	require.NoError(t, err)
	assert.True(t, created.BudgetRequested.Valid)
}

func TestCreateRequest_BudgetUpperBound(t *testing.T) {
	svc := newLifecycle(repositories.NewMemoryRequestRepository(), newTestClock())
	in := validCreateDTO()
	in.BudgetRequested = budget("999999999999.99")

	created, err := svc.CreateRequest(context.Background(), in)
	require.NoError(t, err)
	assert.True(t, created.BudgetRequested.Decimal.Equal(budget("999999999999.99").Decimal))
}

func TestTransition_FullTable(t *testing.T) {
	allowed := map[constants.RequestStatus][]constants.RequestStatus{
		constants.StatusDraft:       {constants.StatusSubmitted, constants.StatusCancelled},
		constants.StatusSubmitted:   {constants.StatusInProgress, constants.StatusWaitingInfo, constants.StatusRejected, constants.StatusCancelled},
		constants.StatusInProgress:  {constants.StatusWaitingInfo, constants.StatusApproved, constants.StatusRejected, constants.StatusCompleted, constants.StatusCancelled},
		constants.StatusWaitingInfo: {constants.StatusInProgress, constants.StatusCancelled},
	}

	for _, from := range constants.AllStatuses {
		for _, to := range constants.AllStatuses {
			from, to := from, to
			expectOK := false
			for _, next := range allowed[from] {
				if next == to {
					expectOK = true
				}
			}

			t.Run(string(from)+"->"+string(to), func(t *testing.T) {
				repo := repositories.NewMemoryRequestRepository()
				svc := newLifecycle(repo, newTestClock())
				r := putRequest(t, repo, entitiesWithStatus(from))

				assert.Equal(t, expectOK, CanTransition(from, to))

				res, err := svc.Transition(context.Background(), r.ID, to)
				stored, getErr := repo.GetByID(context.Background(), r.ID)
				require.NoError(t, getErr)

				if expectOK {
					require.NoError(t, err)
					assert.Equal(t, to, res.Request.Status)
					assert.Equal(t, from, res.From)
					assert.Equal(t, to, stored.Status)
					return
				}

				require.Error(t, err)
				assert.ErrorIs(t, err, apperrors.ErrInvalidTransition)
				var trErr *apperrors.InvalidTransitionError
				require.ErrorAs(t, err, &trErr)
				assert.Equal(t, string(from), trErr.From)
				assert.Equal(t, string(to), trErr.To)
				assert.Equal(t, from, stored.Status, "статус не должен измениться")
			})
		}
	}
}

func TestTransition_FinalStatusesHaveNoExits(t *testing.T) {
	for _, final := range constants.FinalStatuses {
		assert.Empty(t, AllowedTransitions(final), final)
	}
	for _, s := range constants.NonFinalStatuses() {
		assert.NotEmpty(t, AllowedTransitions(s), s)
	}
}

func TestTransition_ApprovedIsTerminal(t *testing.T) {
	repo := repositories.NewMemoryRequestRepository()
	clock := newTestClock()
	svc := newLifecycle(repo, clock)
	ctx := context.Background()

	r1, err := svc.CreateRequest(ctx, validCreateDTO())
	require.NoError(t, err)

	for _, status := range []constants.RequestStatus{constants.StatusSubmitted, constants.StatusInProgress} {
		clock.Advance(time.Hour)
		_, err = svc.Transition(ctx, r1.ID, status)
		require.NoError(t, err)
	}

	clock.Advance(time.Hour)
	res, err := svc.Transition(ctx, r1.ID, constants.StatusApproved)
	require.NoError(t, err)
	require.NotNil(t, res.Request.ProcessedAt)
	assert.Equal(t, clock.Now(), *res.Request.ProcessedAt)
	assert.True(t, res.Request.IsFinal())

	_, err = svc.Transition(ctx, r1.ID, constants.StatusInProgress)
	assert.ErrorIs(t, err, apperrors.ErrInvalidTransition)

	stored, err := svc.Get(ctx, r1.ID)
	require.NoError(t, err)
	assert.Equal(t, constants.StatusApproved, stored.Status)
	require.NotNil(t, stored.ProcessedAt)
	assert.Equal(t, 3*time.Hour, stored.ProcessedAt.Sub(stored.CreatedAt))
}

func TestTransition_CompletedCannotReopen(t *testing.T) {
	repo := repositories.NewMemoryRequestRepository()
	svc := newLifecycle(repo, newTestClock())
	r := putRequest(t, repo, entitiesWithStatus(constants.StatusCompleted))

	_, err := svc.Transition(context.Background(), r.ID, constants.StatusInProgress)
	assert.ErrorIs(t, err, apperrors.ErrInvalidTransition)
}

func TestTransition_CancelDoesNotMarkProcessed(t *testing.T) {
	repo := repositories.NewMemoryRequestRepository()
	svc := newLifecycle(repo, newTestClock())
	r := putRequest(t, repo, entitiesWithStatus(constants.StatusSubmitted))

	res, err := svc.Transition(context.Background(), r.ID, constants.StatusCancelled)
	require.NoError(t, err)
	assert.Nil(t, res.Request.ProcessedAt)
}

func TestTransition_UnknownTargetIsValidationError(t *testing.T) {
	repo := repositories.NewMemoryRequestRepository()
	svc := newLifecycle(repo, newTestClock())
	r := putRequest(t, repo, entitiesWithStatus(constants.StatusDraft))

	_, err := svc.Transition(context.Background(), r.ID, "ARCHIVED")
	assert.ErrorIs(t, err, apperrors.ErrValidation)
}

func TestTransition_NotFound(t *testing.T) {
	svc := newLifecycle(repositories.NewMemoryRequestRepository(), newTestClock())

	_, err := svc.Transition(context.Background(), 999, constants.StatusSubmitted)
	assert.ErrorIs(t, err, apperrors.ErrNotFound)

	_, err = svc.Get(context.Background(), 999)
	assert.ErrorIs(t, err, apperrors.ErrNotFound)
}

func TestTransition_ConcurrentModification(t *testing.T) {
	memory := repositories.NewMemoryRequestRepository()
	stub := &casStubRepository{MemoryRequestRepository: memory}
	svc := newLifecycle(stub, newTestClock())
	r := putRequest(t, memory, entitiesWithStatus(constants.StatusSubmitted))

	// между чтением и записью кто-то успел взять заявку в работу
	stub.beforeCAS = func() {
		ok, err := memory.CompareAndUpdateStatus(context.Background(), r.ID, constants.StatusSubmitted, constants.StatusInProgress, nil)
		require.NoError(t, err)
		require.True(t, ok)
	}

	_, err := svc.Transition(context.Background(), r.ID, constants.StatusRejected)
	assert.ErrorIs(t, err, apperrors.ErrConcurrentModification)

	stored, err := memory.GetByID(context.Background(), r.ID)
	require.NoError(t, err)
	assert.Equal(t, constants.StatusInProgress, stored.Status)
	assert.Nil(t, stored.ProcessedAt)
}

func TestTransition_StoreErrorIsWrapped(t *testing.T) {
	memory := repositories.NewMemoryRequestRepository()
	storeErr := errors.New("connection reset")
	stub := &casStubRepository{MemoryRequestRepository: memory, casErr: storeErr}
	svc := newLifecycle(stub, newTestClock())
	r := putRequest(t, memory, entitiesWithStatus(constants.StatusDraft))

	_, err := svc.Transition(context.Background(), r.ID, constants.StatusSubmitted)
	assert.ErrorIs(t, err, storeErr)
	assert.NotErrorIs(t, err, apperrors.ErrConcurrentModification)
}
