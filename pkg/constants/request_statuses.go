package constants

// --- СТАТУСЫ ЗАЯВОК (Совпадает с кодами в БД) ---

type RequestStatus string

const (
	StatusDraft       RequestStatus = "DRAFT"
	StatusSubmitted   RequestStatus = "SUBMITTED"
	StatusInProgress  RequestStatus = "IN_PROGRESS"
	StatusWaitingInfo RequestStatus = "WAITING_INFO"
	StatusApproved    RequestStatus = "APPROVED"
	StatusRejected    RequestStatus = "REJECTED"
	StatusCancelled   RequestStatus = "CANCELLED"
	StatusCompleted   RequestStatus = "COMPLETED"
)

// AllStatuses - полный список, порядок используется только для вывода.
var AllStatuses = []RequestStatus{
	StatusDraft,
	StatusSubmitted,
	StatusInProgress,
	StatusWaitingInfo,
	StatusApproved,
	StatusRejected,
	StatusCancelled,
	StatusCompleted,
}

// Финальные статусы
var FinalStatuses = []RequestStatus{
	StatusApproved,
	StatusRejected,
	StatusCancelled,
	StatusCompleted,
}

// Статусы, которые стоят в очереди на обработку
var QueuedStatuses = []RequestStatus{
	StatusSubmitted,
	StatusInProgress,
}

// ProcessedStatuses - статусы, при входе в которые фиксируется processed_at.
// CANCELLED сюда не входит: отозванная заявка не считается обработанной.
var ProcessedStatuses = []RequestStatus{
	StatusApproved,
	StatusRejected,
	StatusCompleted,
}

// Функция-проверка
func IsFinalStatus(s RequestStatus) bool {
	return containsStatus(FinalStatuses, s)
}

func IsProcessedStatus(s RequestStatus) bool {
	return containsStatus(ProcessedStatuses, s)
}

func IsValidStatus(s RequestStatus) bool {
	return containsStatus(AllStatuses, s)
}

// NonFinalStatuses возвращает все статусы, кроме финальных.
func NonFinalStatuses() []RequestStatus {
	result := make([]RequestStatus, 0, len(AllStatuses)-len(FinalStatuses))
	for _, s := range AllStatuses {
		if !IsFinalStatus(s) {
			result = append(result, s)
		}
	}
	return result
}

func (s RequestStatus) String() string {
	return string(s)
}

func containsStatus(list []RequestStatus, s RequestStatus) bool {
	for _, item := range list {
		if item == s {
			return true
		}
	}
	return false
}
