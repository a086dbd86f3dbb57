package events

import (
	"time"

	"github.com/google/uuid"

	"admin-request-engine/internal/entities"
	"admin-request-engine/pkg/constants"
)

const (
	RequestCreated       = "request.created"
	RequestStatusChanged = "request.status.changed"
)

// RequestCreatedEvent - заявка создана (статус DRAFT).
type RequestCreatedEvent struct {
	EventID    uuid.UUID
	Request    entities.Request
	OccurredAt time.Time
}

func (e RequestCreatedEvent) Name() string {
	return RequestCreated
}

func NewRequestCreatedEvent(r entities.Request, at time.Time) RequestCreatedEvent {
	return RequestCreatedEvent{EventID: uuid.New(), Request: r, OccurredAt: at}
}

// RequestStatusChangedEvent - успешный переход статуса.
type RequestStatusChangedEvent struct {
	EventID    uuid.UUID
	RequestID  uint64
	From       constants.RequestStatus
	To         constants.RequestStatus
	OccurredAt time.Time
}

func (e RequestStatusChangedEvent) Name() string {
	return RequestStatusChanged
}

func NewRequestStatusChangedEvent(id uint64, from, to constants.RequestStatus, at time.Time) RequestStatusChangedEvent {
	return RequestStatusChangedEvent{EventID: uuid.New(), RequestID: id, From: from, To: to, OccurredAt: at}
}
