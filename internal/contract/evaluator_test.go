package contract

import (
	"testing"
	"time"

	"warsztatplus/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func fixedWorkshop(fixedEnd time.Time) *models.Workshop {
	return &models.Workshop{
		Status:           models.WorkshopStatusActive,
		ContractStatus:   models.ContractStatusFixed,
		LicenseStart:     fixedEnd.AddDate(-1, 0, 0),
		LicenseEnd:       fixedEnd,
		ContractFixedEnd: fixedEnd,
	}
}

func TestEvaluate_FixedTermStillRunning(t *testing.T) {
	now := date(2024, time.June, 1)
	w := fixedWorkshop(date(2024, time.December, 31))

	changed := Evaluate(w, now)

	assert.False(t, changed)
	assert.Equal(t, models.ContractStatusFixed, w.ContractStatus)
	assert.Nil(t, w.ContractIndefiniteSince)
}

func TestEvaluate_FixedBecomesIndefiniteOnce(t *testing.T) {
	fixedEnd := date(2024, time.January, 1)
	now := date(2024, time.June, 1)
	w := fixedWorkshop(fixedEnd)

	changed := Evaluate(w, now)
	assert.True(t, changed)
	assert.Equal(t, models.ContractStatusIndefinite, w.ContractStatus)
	require.NotNil(t, w.ContractIndefiniteSince)
	assert.Equal(t, fixedEnd, *w.ContractIndefiniteSince)

	// Repeated evaluation is idempotent: nothing to persist.
	changed = Evaluate(w, now.AddDate(0, 1, 0))
	assert.False(t, changed)
	assert.Equal(t, fixedEnd, *w.ContractIndefiniteSince)
}

func TestEvaluate_NoticeBackfillsTerminationEnd(t *testing.T) {
	now := date(2024, time.February, 1)
	w := fixedWorkshop(date(2023, time.January, 1))
	notice := date(2024, time.January, 15)
	w.ContractIndefiniteSince = &w.ContractFixedEnd
	w.TerminationNoticeDate = &notice

	changed := Evaluate(w, now)

	assert.True(t, changed)
	assert.Equal(t, models.ContractStatusNotice, w.ContractStatus)
	require.NotNil(t, w.TerminationEndDate)
	assert.Equal(t, time.April, w.TerminationEndDate.Month())
	assert.Equal(t, 30, w.TerminationEndDate.Day())
	assert.Nil(t, w.TerminatedAt)
	assert.Equal(t, models.WorkshopStatusActive, w.Status)
}

func TestEvaluate_TerminatesAfterNoticePeriod(t *testing.T) {
	w := fixedWorkshop(date(2023, time.January, 1))
	notice := date(2024, time.January, 15)
	w.ContractIndefiniteSince = &w.ContractFixedEnd
	w.TerminationNoticeDate = &notice

	// First read while the notice is running.
	Evaluate(w, date(2024, time.March, 1))
	require.NotNil(t, w.TerminationEndDate)
	terminationEnd := *w.TerminationEndDate

	// Read after the period lapsed.
	changed := Evaluate(w, date(2024, time.May, 1))
	assert.True(t, changed)
	assert.Equal(t, models.ContractStatusTerminated, w.ContractStatus)
	assert.Equal(t, models.WorkshopStatusDeactivated, w.Status)
	require.NotNil(t, w.TerminatedAt)
	assert.Equal(t, terminationEnd, *w.TerminatedAt)

	// terminated_at is stamped once and never overwritten on later reads.
	stamped := *w.TerminatedAt
	changed = Evaluate(w, date(2024, time.July, 1))
	assert.False(t, changed)
	assert.Equal(t, stamped, *w.TerminatedAt)
}

func TestEvaluate_InactiveWorkshopKeepsContractPhase(t *testing.T) {
	now := date(2024, time.June, 1)
	w := fixedWorkshop(date(2024, time.December, 31))
	w.Status = models.WorkshopStatusInactive

	Evaluate(w, now)

	assert.Equal(t, models.ContractStatusFixed, w.ContractStatus)
	assert.Equal(t, models.WorkshopStatusInactive, w.Status)
}

func TestEvaluate_NilWorkshop(t *testing.T) {
	assert.False(t, Evaluate(nil, time.Now()))
}
