package controllers

import (
	"context"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"admin-request-engine/internal/dto"
	"admin-request-engine/internal/events"
	"admin-request-engine/internal/services"
	"admin-request-engine/pkg/api"
	"admin-request-engine/pkg/constants"
	apperrors "admin-request-engine/pkg/errors"
	"admin-request-engine/pkg/eventbus"
	"admin-request-engine/pkg/metrics"
	"admin-request-engine/pkg/utils"
)

const IdempotencyHeader = "Idempotency-Key"

type RequestController struct {
	lifecycle    services.LifecycleServiceInterface
	history      services.RequestHistoryServiceInterface
	deduplicator *RequestDeduplicator
	bus          *eventbus.Bus
	logger       *zap.Logger
	now          func() time.Time
}

func NewRequestController(
	lifecycle services.LifecycleServiceInterface,
	history services.RequestHistoryServiceInterface,
	deduplicator *RequestDeduplicator,
	bus *eventbus.Bus,
	logger *zap.Logger,
	now func() time.Time,
) *RequestController {
	if now == nil {
		now = time.Now
	}
	return &RequestController{
		lifecycle:    lifecycle,
		history:      history,
		deduplicator: deduplicator,
		bus:          bus,
		logger:       logger,
		now:          now,
	}
}

func (c *RequestController) CreateRequest(ctx echo.Context) error {
	reqCtx := ctx.Request().Context()

	var createDTO dto.CreateRequestDTO
	if err := ctx.Bind(&createDTO); err != nil {
		return utils.ErrorResponse(ctx, apperrors.NewHttpError(http.StatusBadRequest, "Неверный формат запроса", err, nil), c.logger)
	}
	if createDTO.Priority == "" {
		createDTO.Priority = constants.DefaultPriority
	}

	key := strings.TrimSpace(ctx.Request().Header.Get(IdempotencyHeader))
	state, existingID := c.deduplicator.TryAcquire(reqCtx, key)
	switch state {
	case claimInFlight:
		metrics.IdempotentReplays.WithLabelValues("in_flight").Inc()
		return utils.ErrorResponse(ctx, apperrors.NewHttpError(
			http.StatusConflict, "Запрос с этим ключом уже обрабатывается", nil, map[string]string{"key": key},
		), c.logger)
	case claimDone:
		existing, err := c.lifecycle.Get(reqCtx, existingID)
		if err != nil {
			return utils.ErrorResponse(ctx, err, c.logger)
		}
		metrics.IdempotentReplays.WithLabelValues("replayed").Inc()
		return api.SuccessOne(ctx, http.StatusOK, "Заявка уже была создана", dto.NewRequestDTO(existing))
	}

	// ключ закрываем даже если клиент уже отключился, иначе он зависнет в "pending"
	claimCtx := context.WithoutCancel(reqCtx)
	request, err := c.lifecycle.CreateRequest(reqCtx, createDTO)
	if err != nil {
		if state == claimAcquired {
			c.deduplicator.Release(claimCtx, key)
		}
		return utils.ErrorResponse(ctx, err, c.logger)
	}
	if state == claimAcquired {
		c.deduplicator.Complete(claimCtx, key, request.ID)
	}

	c.bus.Publish(reqCtx, events.NewRequestCreatedEvent(request.Clone(), request.CreatedAt))

	return api.SuccessOne(ctx, http.StatusCreated, "Заявка создана", dto.NewRequestDTO(request))
}

func (c *RequestController) FindRequest(ctx echo.Context) error {
	id, err := parseID(ctx)
	if err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}

	request, err := c.lifecycle.Get(ctx.Request().Context(), id)
	if err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}
	return api.SuccessOne(ctx, http.StatusOK, "Заявка получена", dto.NewRequestDTO(request))
}

func (c *RequestController) TransitionRequest(ctx echo.Context) error {
	reqCtx := ctx.Request().Context()
	id, err := parseID(ctx)
	if err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}

	var body dto.TransitionRequestDTO
	if err := ctx.Bind(&body); err != nil {
		return utils.ErrorResponse(ctx, apperrors.NewHttpError(http.StatusBadRequest, "Неверный формат запроса", err, nil), c.logger)
	}

	result, err := c.lifecycle.Transition(reqCtx, id, body.Status)
	if err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}

	c.bus.Publish(reqCtx, events.NewRequestStatusChangedEvent(id, result.From, result.Request.Status, c.now()))

	return api.SuccessOne(ctx, http.StatusOK, "Статус заявки изменен", dto.NewRequestDTO(result.Request))
}

func (c *RequestController) GetRequestHistory(ctx echo.Context) error {
	id, err := parseID(ctx)
	if err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}

	history, err := c.history.GetHistory(ctx.Request().Context(), id)
	if err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}
	return api.SuccessOne(ctx, http.StatusOK, "История заявки получена", dto.NewRequestHistoryDTOList(history))
}

func parseID(ctx echo.Context) (uint64, error) {
	id, err := strconv.ParseUint(ctx.Param("id"), 10, 64)
	if err != nil || id == 0 {
		return 0, apperrors.NewHttpError(
			http.StatusBadRequest,
			"Неверный ID",
			nil,
			map[string]interface{}{"param": ctx.Param("id")},
		)
	}
	return id, nil
}
