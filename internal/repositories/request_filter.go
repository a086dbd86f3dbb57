package repositories

import (
	"time"

	sq "github.com/Masterminds/squirrel"

	"admin-request-engine/internal/entities"
	"admin-request-engine/pkg/constants"
)

// RequestFilter - предикат для Scan. Одно и то же условие исполняется в памяти (Match)
// и транслируется в SQL (ToSqlizer), поэтому оба хранилища отвечают одинаково.
// Пустые списки не ограничивают выборку.
type RequestFilter struct {
	Statuses        []constants.RequestStatus
	ExcludeStatuses []constants.RequestStatus
	Priorities      []constants.RequestPriority
	Types           []constants.RequestType

	// DateNeededBefore - включительно; заявки без date_needed не проходят.
	DateNeededBefore *time.Time
	// OnlyProcessed - только заявки с заполненным processed_at.
	OnlyProcessed bool
}

func (f RequestFilter) Match(r *entities.Request) bool {
	if len(f.Statuses) > 0 && !containsValue(f.Statuses, r.Status) {
		return false
	}
	if len(f.ExcludeStatuses) > 0 && containsValue(f.ExcludeStatuses, r.Status) {
		return false
	}
	if len(f.Priorities) > 0 && !containsValue(f.Priorities, r.Priority) {
		return false
	}
	if len(f.Types) > 0 && !containsValue(f.Types, r.Type) {
		return false
	}
	if f.DateNeededBefore != nil {
		if r.DateNeeded == nil || r.DateNeeded.After(*f.DateNeededBefore) {
			return false
		}
	}
	if f.OnlyProcessed && r.ProcessedAt == nil {
		return false
	}
	return true
}

// ToSqlizer собирает условия для WHERE. Пустой результат означает "без фильтра".
func (f RequestFilter) ToSqlizer() sq.And {
	conds := sq.And{}
	if len(f.Statuses) > 0 {
		conds = append(conds, sq.Eq{"status": toStrings(f.Statuses)})
	}
	if len(f.ExcludeStatuses) > 0 {
		conds = append(conds, sq.NotEq{"status": toStrings(f.ExcludeStatuses)})
	}
	if len(f.Priorities) > 0 {
		conds = append(conds, sq.Eq{"priority": toStrings(f.Priorities)})
	}
	if len(f.Types) > 0 {
		conds = append(conds, sq.Eq{"type": toStrings(f.Types)})
	}
	if f.DateNeededBefore != nil {
		conds = append(conds, sq.LtOrEq{"date_needed": *f.DateNeededBefore})
	}
	if f.OnlyProcessed {
		conds = append(conds, sq.NotEq{"processed_at": nil})
	}
	return conds
}

func containsValue[T comparable](list []T, v T) bool {
	for _, item := range list {
		if item == v {
			return true
		}
	}
	return false
}

func toStrings[T ~string](list []T) []string {
	out := make([]string, len(list))
	for i, v := range list {
		out[i] = string(v)
	}
	return out
}
