package contract

import "time"

// TerminationNoticeMonths is the mandatory notice period for indefinite
// contracts; termination takes effect at the end of the month the period
// lands in.
const TerminationNoticeMonths = 3

// ContractMonths is the length of the initial fixed contract term.
const ContractMonths = 12

// AddMonths adds calendar months, clamping day-of-month overflow to the last
// day of the resulting month (Jan 31 + 1 month -> Feb 28/29).
func AddMonths(t time.Time, months int) time.Time {
	day := t.Day()
	result := t.AddDate(0, months, 0)
	if result.Day() < day {
		// AddDate rolled over into the next month; step back to its last day.
		result = result.AddDate(0, 0, -result.Day())
	}
	return result
}

// EndOfMonth returns the last representable instant of t's month.
func EndOfMonth(t time.Time) time.Time {
	firstOfNext := time.Date(t.Year(), t.Month()+1, 1, 0, 0, 0, 0, t.Location())
	return firstOfNext.Add(-time.Nanosecond)
}

// TerminationEnd computes when a notice issued at noticeDate takes effect:
// end of month of (noticeDate + notice period).
func TerminationEnd(noticeDate time.Time) time.Time {
	return EndOfMonth(AddMonths(noticeDate, TerminationNoticeMonths))
}
