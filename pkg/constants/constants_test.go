package constants

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestPriorityRates(t *testing.T) {
	for i := 1; i < len(AllPriorities); i++ {
		assert.Greater(t, AllPriorities[i].Rate(), AllPriorities[i-1].Rate())
	}
	assert.Zero(t, RequestPriority("LOW").Rate())
	assert.False(t, IsValidPriority("LOW"))
	assert.Equal(t, PriorityNormale, DefaultPriority)
}

func TestUrgentPriorities(t *testing.T) {
	assert.True(t, IsUrgentPriority(PriorityUrgente))
	assert.True(t, IsUrgentPriority(PriorityCritique))
	assert.False(t, IsUrgentPriority(PriorityHaute))
}

func TestStatusSets(t *testing.T) {
	assert.Len(t, AllStatuses, 8)
	assert.ElementsMatch(t, []RequestStatus{StatusDraft, StatusSubmitted, StatusInProgress, StatusWaitingInfo}, NonFinalStatuses())

	for _, s := range ProcessedStatuses {
		assert.True(t, IsFinalStatus(s))
	}
	assert.True(t, IsFinalStatus(StatusCancelled))
	assert.False(t, IsProcessedStatus(StatusCancelled))
	assert.False(t, IsValidStatus("ARCHIVED"))
}

func TestRequestTypes(t *testing.T) {
	assert.Len(t, AllRequestTypes, 10)
	assert.True(t, IsValidRequestType(RequestTypePartnership))
	assert.False(t, IsValidRequestType("VACATION"))
}
