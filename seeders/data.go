package seeders

import (
	"github.com/shopspring/decimal"

	"admin-request-engine/pkg/constants"
)

type demoRequest struct {
	RequesterID uint64
	Description string
	Type        constants.RequestType
	Priority    constants.RequestPriority
	Budget      string // пустая строка - без бюджета
	// DueInDays: через сколько дней нужна заявка, 0 - без даты
	DueInDays int
	// Path - статусы, через которые заявка проводится после создания
	Path []constants.RequestStatus
}

func (d demoRequest) budget() decimal.NullDecimal {
	if d.Budget == "" {
		return decimal.NullDecimal{}
	}
	return decimal.NewNullDecimal(decimal.RequireFromString(d.Budget))
}

var (
	pathSubmitted  = []constants.RequestStatus{constants.StatusSubmitted}
	pathInProgress = []constants.RequestStatus{constants.StatusSubmitted, constants.StatusInProgress}
	pathWaiting    = []constants.RequestStatus{constants.StatusSubmitted, constants.StatusInProgress, constants.StatusWaitingInfo}
	pathApproved   = []constants.RequestStatus{constants.StatusSubmitted, constants.StatusInProgress, constants.StatusApproved}
	pathCompleted  = []constants.RequestStatus{constants.StatusSubmitted, constants.StatusInProgress, constants.StatusCompleted}
	pathRejected   = []constants.RequestStatus{constants.StatusSubmitted, constants.StatusRejected}
	pathCancelled  = []constants.RequestStatus{constants.StatusCancelled}
)

var demoRequests = []demoRequest{
	// --- Кадры ---
	{RequesterID: 1, Description: "Ежегодный отпуск на 14 дней", Type: constants.RequestTypeLeave, Priority: constants.PriorityNormale, DueInDays: 10, Path: pathApproved},
	{RequesterID: 2, Description: "Отсутствие по семейным обстоятельствам", Type: constants.RequestTypeAbsence, Priority: constants.PriorityHaute, DueInDays: 1, Path: pathInProgress},
	{RequesterID: 3, Description: "Курсы повышения квалификации по охране труда", Type: constants.RequestTypeTraining, Priority: constants.PriorityBasse, Budget: "1200.00", DueInDays: 30, Path: pathSubmitted},

	// --- Хозяйственные ---
	{RequesterID: 4, Description: "Замена ноутбука, не включается после обновления", Type: constants.RequestTypeEquipment, Priority: constants.PriorityUrgente, Budget: "950.50", DueInDays: 2, Path: pathInProgress},
	{RequesterID: 5, Description: "Трансфер из аэропорта для делегации", Type: constants.RequestTypeTransport, Priority: constants.PriorityCritique, Budget: "300.00", Path: pathSubmitted},
	{RequesterID: 6, Description: "Проживание для командированных сотрудников", Type: constants.RequestTypeLodging, Priority: constants.PriorityHaute, Budget: "2400.00", DueInDays: 5, Path: pathWaiting},
	{RequesterID: 7, Description: "Дополнительный бюджет на закупку канцелярии", Type: constants.RequestTypeBudget, Priority: constants.PriorityNormale, Budget: "180.25", Path: pathRejected},

	// --- Прочее ---
	{RequesterID: 8, Description: "Организация корпоративного мероприятия", Type: constants.RequestTypeEvent, Priority: constants.PriorityNormale, Budget: "5000.00", DueInDays: 45, Path: pathCompleted},
	{RequesterID: 9, Description: "Соглашение о партнерстве с университетом", Type: constants.RequestTypePartnership, Priority: constants.PriorityBasse, Path: pathCancelled},
	{RequesterID: 10, Description: "Пропуск для внешнего подрядчика", Type: constants.RequestTypeOther, Priority: constants.PriorityUrgente, DueInDays: 1, Path: nil},
}
