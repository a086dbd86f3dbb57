package utils

import (
	"math"
	"net/url"
	"strconv"
)

const (
	DefaultLimit = 50
	MaxLimit     = 500
)

func ParsePaginationParams(values url.Values) (limit uint64, offset uint64, page uint64) {
	limit = DefaultLimit
	page = 1

	if limitStr := values.Get("limit"); limitStr != "" {
		if l, err := strconv.ParseUint(limitStr, 10, 64); err == nil && l > 0 {
			if l > MaxLimit {
				limit = MaxLimit
			} else {
				limit = l
			}
		}
	}

	if pageStr := values.Get("page"); pageStr != "" {
		if p, err := strconv.ParseUint(pageStr, 10, 64); err == nil && p > 0 {
			page = min(p, uint64(math.MaxInt))
		}
	}

	// страница за пределами uint64 заведомо пустая
	if page-1 > math.MaxUint64/limit {
		offset = math.MaxUint64
		return
	}
	offset = (page - 1) * limit
	return
}

// Paginate вырезает страницу из уже упорядоченного списка.
func Paginate[T any](list []T, limit, offset uint64) []T {
	total := uint64(len(list))
	if offset >= total {
		return []T{}
	}
	end := offset + limit
	if end > total {
		end = total
	}
	return list[offset:end]
}
