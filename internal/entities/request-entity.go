package entities

import (
	"time"

	"github.com/shopspring/decimal"

	"admin-request-engine/pkg/constants"
)

// Request - административная заявка. Статус меняет только движок жизненного цикла,
// CreatedAt пишется один раз при создании.
type Request struct {
	ID              uint64                    `json:"id" db:"id"`
	RequesterID     uint64                    `json:"requester_id" db:"requester_id"`
	Description     string                    `json:"description" db:"description"`
	Type            constants.RequestType     `json:"type" db:"type"`
	Priority        constants.RequestPriority `json:"priority" db:"priority"`
	Status          constants.RequestStatus   `json:"status" db:"status"`
	BudgetRequested decimal.NullDecimal       `json:"budget_requested" db:"budget_requested"`
	DateNeeded      *time.Time                `json:"date_needed" db:"date_needed"`
	ProcessedAt     *time.Time                `json:"processed_at" db:"processed_at"`
	CreatedAt       time.Time                 `json:"created_at" db:"created_at"`
}

// IsFinal - заявка в одном из терминальных статусов.
func (r *Request) IsFinal() bool {
	return constants.IsFinalStatus(r.Status)
}

// Clone возвращает независимую копию (указатели на время тоже копируются).
func (r *Request) Clone() Request {
	c := *r
	if r.DateNeeded != nil {
		t := *r.DateNeeded
		c.DateNeeded = &t
	}
	if r.ProcessedAt != nil {
		t := *r.ProcessedAt
		c.ProcessedAt = &t
	}
	return c
}
