package controllers

import (
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"admin-request-engine/internal/dto"
	"admin-request-engine/internal/entities"
	"admin-request-engine/internal/services"
	"admin-request-engine/pkg/api"
	apperrors "admin-request-engine/pkg/errors"
	"admin-request-engine/pkg/utils"
)

type TriageController struct {
	triage     services.TriageServiceInterface
	escalation services.EscalationServiceInterface
	window     time.Duration
	logger     *zap.Logger
	now        func() time.Time
}

func NewTriageController(
	triage services.TriageServiceInterface,
	escalation services.EscalationServiceInterface,
	window time.Duration,
	logger *zap.Logger,
	now func() time.Time,
) *TriageController {
	if now == nil {
		now = time.Now
	}
	return &TriageController{triage: triage, escalation: escalation, window: window, logger: logger, now: now}
}

// GetPendingQueue: ?format=xlsx выгружает всю очередь без пагинации.
func (c *TriageController) GetPendingQueue(ctx echo.Context) error {
	list, err := c.triage.PendingQueue(ctx.Request().Context())
	if err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}

	if strings.ToLower(ctx.QueryParam("format")) == "xlsx" {
		f, err := buildRequestsWorkbook("Очередь", list)
		if err != nil {
			return utils.ErrorResponse(ctx, fmt.Errorf("формирование xlsx: %w", err), c.logger)
		}
		return writeXLSX(ctx, f, fmt.Sprintf("pending_%s.xlsx", c.now().Format("2006-01-02")))
	}
	return c.respondPage(ctx, "Очередь на обработку получена", list)
}

func (c *TriageController) GetUrgentUnresolved(ctx echo.Context) error {
	list, err := c.triage.UrgentUnresolved(ctx.Request().Context())
	if err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}
	return c.respondPage(ctx, "Срочные незакрытые заявки получены", list)
}

// GetEscalations: ?before=RFC3339, по умолчанию now + ESCALATION_WINDOW.
func (c *TriageController) GetEscalations(ctx echo.Context) error {
	deadline := c.now().Add(c.window)
	if raw := ctx.QueryParam("before"); raw != "" {
		t, err := time.Parse(time.RFC3339, raw)
		if err != nil {
			return utils.ErrorResponse(ctx, apperrors.NewHttpError(
				http.StatusBadRequest, "Параметр before должен быть в формате RFC3339", err, map[string]string{"before": raw},
			), c.logger)
		}
		deadline = t
	}

	list, err := c.escalation.DueBefore(ctx.Request().Context(), deadline)
	if err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}
	return c.respondPage(ctx, "Заявки к эскалации получены", list)
}

func (c *TriageController) respondPage(ctx echo.Context, message string, list []entities.Request) error {
	limit, offset, page := utils.ParsePaginationParams(ctx.Request().URL.Query())
	pageItems := utils.Paginate(list, limit, offset)
	return api.SuccessList(ctx, message, dto.NewRequestDTOList(pageItems), uint64(len(list)), int(page), int(limit))
}
