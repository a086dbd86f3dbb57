package controllers

import (
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/xuri/excelize/v2"
	"go.uber.org/zap"

	"admin-request-engine/internal/dto"
	"admin-request-engine/internal/entities"
	"admin-request-engine/internal/services"
	"admin-request-engine/pkg/constants"
	apperrors "admin-request-engine/pkg/errors"
	"admin-request-engine/pkg/types"
	"admin-request-engine/pkg/utils"
)

type StatisticsController struct {
	statsService services.StatisticsServiceInterface
	logger       *zap.Logger
	now          func() time.Time
}

func NewStatisticsController(statsService services.StatisticsServiceInterface, logger *zap.Logger, now func() time.Time) *StatisticsController {
	if now == nil {
		now = time.Now
	}
	return &StatisticsController{statsService: statsService, logger: logger, now: now}
}

// GetStatistics: ?format=xlsx отдает ту же сводку файлом.
func (c *StatisticsController) GetStatistics(ctx echo.Context) error {
	summary, err := c.statsService.Summary(ctx.Request().Context())
	if err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}

	if strings.ToLower(ctx.QueryParam("format")) == "xlsx" {
		return c.respondWithXLSX(ctx, summary)
	}
	return utils.SuccessResponse(ctx, dto.NewStatisticsDTO(summary), "Статистика получена", http.StatusOK)
}

// GetMetric отдает один показатель: by-status, by-type, by-priority,
// budget-by-status, avg-processing-hours.
func (c *StatisticsController) GetMetric(ctx echo.Context) error {
	reqCtx := ctx.Request().Context()
	metric := ctx.Param("metric")

	var (
		body interface{}
		err  error
	)
	switch metric {
	case "by-status":
		body, err = c.statsService.CountByStatus(reqCtx)
	case "by-type":
		body, err = c.statsService.CountByType(reqCtx)
	case "by-priority":
		body, err = c.statsService.CountByPriority(reqCtx)
	case "budget-by-status":
		body, err = c.statsService.BudgetSumByStatus(reqCtx)
	case "avg-processing-hours":
		hours, ok, avgErr := c.statsService.AverageProcessingHours(reqCtx)
		err = avgErr
		if ok {
			body = map[string]interface{}{"hours": hours, "no_data": false}
		} else {
			body = map[string]interface{}{"hours": nil, "no_data": true}
		}
	default:
		return utils.ErrorResponse(ctx, apperrors.NewHttpError(
			http.StatusNotFound, "Неизвестный показатель", nil, map[string]string{"metric": metric},
		), c.logger)
	}
	if err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}
	return utils.SuccessResponse(ctx, body, "Показатель получен", http.StatusOK)
}

var statusSheetHeaders = []string{"Статус", "Количество", "Сумма бюджета"}

// buildStatisticsWorkbook раскладывает сводку по листам: статусы с бюджетом,
// типы, приоритеты и общие показатели.
func buildStatisticsWorkbook(summary *types.RequestStatistics, generatedAt time.Time) (*excelize.File, error) {
	f := excelize.NewFile()
	bold, err := f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}})
	if err != nil {
		return nil, err
	}

	const statusSheet = "По статусам"
	if err := f.SetSheetName("Sheet1", statusSheet); err != nil {
		return nil, err
	}
	if err := f.SetSheetRow(statusSheet, "A1", &statusSheetHeaders); err != nil {
		return nil, err
	}
	for i, st := range constants.AllStatuses {
		cell, _ := excelize.CoordinatesToCellName(1, i+2)
		row := []interface{}{string(st), summary.ByStatus[st], summary.BudgetByStatus[st].StringFixed(2)}
		if err := f.SetSheetRow(statusSheet, cell, &row); err != nil {
			return nil, err
		}
	}
	_ = f.SetCellStyle(statusSheet, "A1", "C1", bold)
	_ = f.SetColWidth(statusSheet, "A", "C", 20)

	writeCounts := func(sheet, header string, keys []string, values func(string) int64) error {
		if _, err := f.NewSheet(sheet); err != nil {
			return err
		}
		headers := []string{header, "Количество"}
		if err := f.SetSheetRow(sheet, "A1", &headers); err != nil {
			return err
		}
		for i, k := range keys {
			cell, _ := excelize.CoordinatesToCellName(1, i+2)
			row := []interface{}{k, values(k)}
			if err := f.SetSheetRow(sheet, cell, &row); err != nil {
				return err
			}
		}
		_ = f.SetCellStyle(sheet, "A1", "B1", bold)
		_ = f.SetColWidth(sheet, "A", "B", 20)
		return nil
	}

	typeKeys := make([]string, 0, len(constants.AllRequestTypes))
	for _, t := range constants.AllRequestTypes {
		typeKeys = append(typeKeys, string(t))
	}
	if err := writeCounts("По типам", "Тип", typeKeys, func(k string) int64 {
		return summary.ByType[constants.RequestType(k)]
	}); err != nil {
		return nil, err
	}

	priorityKeys := make([]string, 0, len(constants.AllPriorities))
	for _, p := range constants.AllPriorities {
		priorityKeys = append(priorityKeys, string(p))
	}
	if err := writeCounts("По приоритетам", "Приоритет", priorityKeys, func(k string) int64 {
		return summary.ByPriority[constants.RequestPriority(k)]
	}); err != nil {
		return nil, err
	}

	const totalsSheet = "Итого"
	if _, err := f.NewSheet(totalsSheet); err != nil {
		return nil, err
	}
	avg := "нет данных"
	if summary.AvgProcessingHours != nil {
		avg = fmt.Sprintf("%.2f", *summary.AvgProcessingHours)
	}
	rows := [][]interface{}{
		{"Всего заявок", summary.Total},
		{"Обработано", summary.ProcessedCount},
		{"Среднее время обработки (часы)", avg},
		{"Сформировано", generatedAt.Format("02.01.2006 15:04")},
	}
	for i, row := range rows {
		cell, _ := excelize.CoordinatesToCellName(1, i+1)
		if err := f.SetSheetRow(totalsSheet, cell, &row); err != nil {
			return nil, err
		}
	}
	_ = f.SetColWidth(totalsSheet, "A", "A", 35)
	_ = f.SetColWidth(totalsSheet, "B", "B", 20)

	return f, nil
}

var requestSheetHeaders = []string{
	"ID заявки", "Заявитель", "Тип", "Приоритет", "Статус", "Описание",
	"Бюджет", "Нужно к", "Создана", "Обработана",
}

func requestToRow(r entities.Request) []interface{} {
	dateFmt := "02.01.2006 15:04"
	var budget, dateNeeded, processedAt string
	if r.BudgetRequested.Valid {
		budget = r.BudgetRequested.Decimal.StringFixed(2)
	}
	if r.DateNeeded != nil {
		dateNeeded = r.DateNeeded.Format(dateFmt)
	}
	if r.ProcessedAt != nil {
		processedAt = r.ProcessedAt.Format(dateFmt)
	}
	return []interface{}{
		r.ID, r.RequesterID, string(r.Type), string(r.Priority), string(r.Status), r.Description,
		budget, dateNeeded, r.CreatedAt.Format(dateFmt), processedAt,
	}
}

// buildRequestsWorkbook выгружает список заявок в исходном порядке.
func buildRequestsWorkbook(sheet string, list []entities.Request) (*excelize.File, error) {
	f := excelize.NewFile()
	if err := f.SetSheetName("Sheet1", sheet); err != nil {
		return nil, err
	}
	if err := f.SetSheetRow(sheet, "A1", &requestSheetHeaders); err != nil {
		return nil, err
	}
	if style, err := f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}}); err == nil {
		_ = f.SetCellStyle(sheet, "A1", "J1", style)
	}
	for i, r := range list {
		cell, _ := excelize.CoordinatesToCellName(1, i+2)
		row := requestToRow(r)
		if err := f.SetSheetRow(sheet, cell, &row); err != nil {
			return nil, err
		}
	}
	_ = f.SetColWidth(sheet, "C", "E", 15)
	_ = f.SetColWidth(sheet, "F", "F", 50)
	_ = f.SetColWidth(sheet, "H", "J", 18)
	return f, nil
}

func writeXLSX(ctx echo.Context, f *excelize.File, fileName string) error {
	defer f.Close()
	ctx.Response().Header().Set(echo.HeaderContentType, "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	ctx.Response().Header().Set("Content-Disposition", "attachment; filename="+fileName)
	ctx.Response().WriteHeader(http.StatusOK)
	return f.Write(ctx.Response().Writer)
}

func (c *StatisticsController) respondWithXLSX(ctx echo.Context, summary *types.RequestStatistics) error {
	now := c.now()
	f, err := buildStatisticsWorkbook(summary, now)
	if err != nil {
		return utils.ErrorResponse(ctx, fmt.Errorf("формирование xlsx: %w", err), c.logger)
	}
	return writeXLSX(ctx, f, fmt.Sprintf("statistics_%s.xlsx", now.Format("2006-01-02")))
}
