package dto

import (
	"time"

	"github.com/aarondl/null/v8"
	"github.com/shopspring/decimal"

	"admin-request-engine/internal/entities"
	"admin-request-engine/pkg/constants"
)

const DescriptionMaxLength = 2000

type CreateRequestDTO struct {
	RequesterID     uint64                    `json:"requester_id" validate:"required"`
	Description     string                    `json:"description" validate:"required,max=2000,plain_text"`
	Type            constants.RequestType     `json:"type" validate:"required,request_type"`
	Priority        constants.RequestPriority `json:"priority" validate:"required,request_priority"`
	BudgetRequested decimal.NullDecimal       `json:"budget_requested" validate:"omitempty,budget"`
	DateNeeded      null.Time                 `json:"date_needed" validate:"omitempty"`
}

type TransitionRequestDTO struct {
	Status constants.RequestStatus `json:"status" validate:"required,request_status"`
}

type RequestDTO struct {
	ID              uint64           `json:"id"`
	RequesterID     uint64           `json:"requester_id"`
	Description     string           `json:"description"`
	Type            string           `json:"type"`
	Priority        string           `json:"priority"`
	Status          string           `json:"status"`
	BudgetRequested *decimal.Decimal `json:"budget_requested"`
	DateNeeded      *string          `json:"date_needed"`
	ProcessedAt     *string          `json:"processed_at"`
	CreatedAt       string           `json:"created_at"`
}

func NewRequestDTO(r *entities.Request) RequestDTO {
	out := RequestDTO{
		ID:          r.ID,
		RequesterID: r.RequesterID,
		Description: r.Description,
		Type:        string(r.Type),
		Priority:    string(r.Priority),
		Status:      string(r.Status),
		CreatedAt:   r.CreatedAt.Format(time.RFC3339),
	}
	if r.BudgetRequested.Valid {
		b := r.BudgetRequested.Decimal
		out.BudgetRequested = &b
	}
	if r.DateNeeded != nil {
		s := r.DateNeeded.Format(time.RFC3339)
		out.DateNeeded = &s
	}
	if r.ProcessedAt != nil {
		s := r.ProcessedAt.Format(time.RFC3339)
		out.ProcessedAt = &s
	}
	return out
}

func NewRequestDTOList(list []entities.Request) []RequestDTO {
	out := make([]RequestDTO, 0, len(list))
	for i := range list {
		out = append(out, NewRequestDTO(&list[i]))
	}
	return out
}

type RequestHistoryDTO struct {
	ID        uint64  `json:"id"`
	EventID   string  `json:"event_id"`
	EventType string  `json:"event_type"`
	OldValue  *string `json:"old_value"`
	NewValue  *string `json:"new_value"`
	CreatedAt string  `json:"created_at"`
}

func NewRequestHistoryDTOList(list []entities.RequestHistory) []RequestHistoryDTO {
	out := make([]RequestHistoryDTO, 0, len(list))
	for _, h := range list {
		out = append(out, RequestHistoryDTO{
			ID:        h.ID,
			EventID:   h.EventID.String(),
			EventType: h.EventType,
			OldValue:  h.OldValue,
			NewValue:  h.NewValue,
			CreatedAt: h.CreatedAt.Format(time.RFC3339),
		})
	}
	return out
}
