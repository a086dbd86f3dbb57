package dto

import (
	"math"

	"github.com/shopspring/decimal"

	"admin-request-engine/pkg/types"
)

type StatisticsDTO struct {
	Total          int64                      `json:"total"`
	ByStatus       map[string]int64           `json:"by_status"`
	ByType         map[string]int64           `json:"by_type"`
	ByPriority     map[string]int64           `json:"by_priority"`
	BudgetByStatus map[string]decimal.Decimal `json:"budget_by_status"`
	// nil -> "нет данных"
	AvgProcessingHours *float64 `json:"avg_processing_hours"`
	ProcessedCount     int64    `json:"processed_count"`
}

func NewStatisticsDTO(s *types.RequestStatistics) StatisticsDTO {
	if s == nil {
		return StatisticsDTO{}
	}
	out := StatisticsDTO{
		Total:          s.Total,
		ByStatus:       make(map[string]int64, len(s.ByStatus)),
		ByType:         make(map[string]int64, len(s.ByType)),
		ByPriority:     make(map[string]int64, len(s.ByPriority)),
		BudgetByStatus: make(map[string]decimal.Decimal, len(s.BudgetByStatus)),
		ProcessedCount: s.ProcessedCount,
	}
	for k, v := range s.ByStatus {
		out.ByStatus[string(k)] = v
	}
	for k, v := range s.ByType {
		out.ByType[string(k)] = v
	}
	for k, v := range s.ByPriority {
		out.ByPriority[string(k)] = v
	}
	for k, v := range s.BudgetByStatus {
		out.BudgetByStatus[string(k)] = v
	}
	if s.AvgProcessingHours != nil {
		rounded := math.Round(*s.AvgProcessingHours*100) / 100
		out.AvgProcessingHours = &rounded
	}
	return out
}

type DashboardDTO struct {
	PendingQueue     []RequestDTO  `json:"pending_queue"`
	UrgentUnresolved []RequestDTO  `json:"urgent_unresolved"`
	Escalations      []RequestDTO  `json:"escalations"`
	EscalationBefore string        `json:"escalation_before"`
	Statistics       StatisticsDTO `json:"statistics"`
}
