package contract

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 12, 0, 0, 0, time.UTC)
}

func TestAddMonths_ClampsDayOverflow(t *testing.T) {
	// Jan 31 + 1 month lands on the last day of February.
	result := AddMonths(date(2023, time.January, 31), 1)
	assert.Equal(t, time.February, result.Month())
	assert.Equal(t, 28, result.Day())

	// Leap year keeps the 29th.
	result = AddMonths(date(2024, time.January, 31), 1)
	assert.Equal(t, time.February, result.Month())
	assert.Equal(t, 29, result.Day())
}

func TestAddMonths_PlainAdd(t *testing.T) {
	result := AddMonths(date(2024, time.March, 15), 12)
	assert.Equal(t, date(2025, time.March, 15), result)
}

func TestAddMonths_PreservesTimeOfDay(t *testing.T) {
	start := time.Date(2024, time.May, 31, 9, 30, 0, 0, time.UTC)
	result := AddMonths(start, 1)
	assert.Equal(t, time.June, result.Month())
	assert.Equal(t, 30, result.Day())
	assert.Equal(t, 9, result.Hour())
	assert.Equal(t, 30, result.Minute())
}

func TestEndOfMonth(t *testing.T) {
	end := EndOfMonth(date(2024, time.February, 10))
	assert.Equal(t, time.February, end.Month())
	assert.Equal(t, 29, end.Day())
	assert.Equal(t, 23, end.Hour())

	end = EndOfMonth(date(2024, time.December, 1))
	assert.Equal(t, time.December, end.Month())
	assert.Equal(t, 31, end.Day())
}

func TestTerminationEnd(t *testing.T) {
	// Notice on 2024-01-15: three months forward is April, effective end of April.
	end := TerminationEnd(date(2024, time.January, 15))
	assert.Equal(t, 2024, end.Year())
	assert.Equal(t, time.April, end.Month())
	assert.Equal(t, 30, end.Day())
}

func TestTerminationEnd_NoticeAtMonthEnd(t *testing.T) {
	// Nov 30 + 3 months clamps to Feb 28/29, effective end of February.
	end := TerminationEnd(date(2023, time.November, 30))
	assert.Equal(t, 2024, end.Year())
	assert.Equal(t, time.February, end.Month())
	assert.Equal(t, 29, end.Day())
}
