package constants

//============== ПРИОРИТЕТЫ ==============

type RequestPriority string

const (
	PriorityBasse    RequestPriority = "BASSE"
	PriorityNormale  RequestPriority = "NORMALE"
	PriorityHaute    RequestPriority = "HAUTE"
	PriorityUrgente  RequestPriority = "URGENTE"
	PriorityCritique RequestPriority = "CRITIQUE"
)

// DefaultPriority подставляется HTTP-слоем, если клиент не передал приоритет.
const DefaultPriority = PriorityNormale

// priorityRates задает порядок явно. Менять порядок объявления констант можно,
// ранжирование от этого не поменяется.
var priorityRates = map[RequestPriority]int{
	PriorityBasse:    1,
	PriorityNormale:  2,
	PriorityHaute:    3,
	PriorityUrgente:  4,
	PriorityCritique: 5,
}

var AllPriorities = []RequestPriority{
	PriorityBasse,
	PriorityNormale,
	PriorityHaute,
	PriorityUrgente,
	PriorityCritique,
}

// UrgentPriorities - приоритеты, при которых незакрытая заявка считается "горящей".
var UrgentPriorities = []RequestPriority{
	PriorityUrgente,
	PriorityCritique,
}

// Rate возвращает вес приоритета. Для неизвестного кода 0.
func (p RequestPriority) Rate() int {
	return priorityRates[p]
}

func (p RequestPriority) String() string {
	return string(p)
}

func IsValidPriority(p RequestPriority) bool {
	_, ok := priorityRates[p]
	return ok
}

func IsUrgentPriority(p RequestPriority) bool {
	for _, u := range UrgentPriorities {
		if u == p {
			return true
		}
	}
	return false
}
