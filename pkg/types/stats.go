package types

import (
	"github.com/shopspring/decimal"

	"admin-request-engine/pkg/constants"
)

// RequestStatistics - сводка по всем заявкам. Все карты тотальны:
// каждый вариант перечисления присутствует, даже если значение 0.
type RequestStatistics struct {
	Total          int64                                       `json:"total"`
	ByStatus       map[constants.RequestStatus]int64           `json:"by_status"`
	ByType         map[constants.RequestType]int64             `json:"by_type"`
	ByPriority     map[constants.RequestPriority]int64         `json:"by_priority"`
	BudgetByStatus map[constants.RequestStatus]decimal.Decimal `json:"budget_by_status"`
	// AvgProcessingHours == nil означает "нет данных".
	AvgProcessingHours *float64 `json:"avg_processing_hours"`
	ProcessedCount     int64    `json:"processed_count"`
}
