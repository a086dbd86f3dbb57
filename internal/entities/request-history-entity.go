package entities

import (
	"time"

	"github.com/google/uuid"
)

const (
	HistoryEventCreated      = "CREATED"
	HistoryEventStatusChange = "STATUS_CHANGE"
)

type RequestHistory struct {
	ID        uint64    `json:"id"`
	RequestID uint64    `json:"request_id"`
	EventID   uuid.UUID `json:"event_id"`
	EventType string    `json:"event_type"`
	OldValue  *string   `json:"old_value"`
	NewValue  *string   `json:"new_value"`
	CreatedAt time.Time `json:"created_at"`
}
