package repositories

import (
	"testing"
	"time"

	sq "github.com/Masterminds/squirrel"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"admin-request-engine/internal/entities"
	"admin-request-engine/pkg/constants"
)

func TestRequestFilter_Match(t *testing.T) {
	deadline := storeBaseTime.Add(24 * time.Hour)
	processed := storeBaseTime.Add(time.Hour)

	r := entities.Request{
		Type:        constants.RequestTypeBudget,
		Priority:    constants.PriorityUrgente,
		Status:      constants.StatusSubmitted,
		DateNeeded:  &deadline,
		ProcessedAt: nil,
	}

	cases := []struct {
		name   string
		filter RequestFilter
		want   bool
	}{
		{"empty filter", RequestFilter{}, true},
		{"status hit", RequestFilter{Statuses: []constants.RequestStatus{constants.StatusSubmitted}}, true},
		{"status miss", RequestFilter{Statuses: []constants.RequestStatus{constants.StatusDraft}}, false},
		{"excluded status", RequestFilter{ExcludeStatuses: []constants.RequestStatus{constants.StatusSubmitted}}, false},
		{"priority hit", RequestFilter{Priorities: constants.UrgentPriorities}, true},
		{"priority miss", RequestFilter{Priorities: []constants.RequestPriority{constants.PriorityBasse}}, false},
		{"type miss", RequestFilter{Types: []constants.RequestType{constants.RequestTypeLeave}}, false},
		{"deadline equal", RequestFilter{DateNeededBefore: &deadline}, true},
		{"deadline earlier", RequestFilter{DateNeededBefore: &processed}, false},
		{"only processed", RequestFilter{OnlyProcessed: true}, false},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, tc.filter.Match(&r))
		})
	}

	noDate := entities.Request{Status: constants.StatusSubmitted}
	assert.False(t, RequestFilter{DateNeededBefore: &deadline}.Match(&noDate), "без date_needed заявка не просрочена")

	done := entities.Request{Status: constants.StatusApproved, ProcessedAt: &processed}
	assert.True(t, RequestFilter{OnlyProcessed: true}.Match(&done))
}

func TestRequestFilter_ToSqlizer(t *testing.T) {
	assert.Empty(t, RequestFilter{}.ToSqlizer())

	deadline := storeBaseTime.Add(24 * time.Hour)
	filter := RequestFilter{
		Statuses:         []constants.RequestStatus{constants.StatusSubmitted, constants.StatusInProgress},
		ExcludeStatuses:  constants.FinalStatuses,
		Priorities:       constants.UrgentPriorities,
		DateNeededBefore: &deadline,
		OnlyProcessed:    true,
	}

	query, args, err := sq.Select("id").From(requestTable).Where(filter.ToSqlizer()).PlaceholderFormat(sq.Dollar).ToSql()
	require.NoError(t, err)

	assert.Contains(t, query, "status IN ($1,$2)")
	assert.Contains(t, query, "status NOT IN ($3,$4,$5,$6)")
	assert.Contains(t, query, "priority IN ($7,$8)")
	assert.Contains(t, query, "date_needed <= $9")
	assert.Contains(t, query, "processed_at IS NOT NULL")
	assert.Equal(t, []interface{}{
		"SUBMITTED", "IN_PROGRESS",
		"APPROVED", "REJECTED", "CANCELLED", "COMPLETED",
		"URGENTE", "CRITIQUE",
		deadline,
	}, args)
}
