package contract

import (
	"time"

	"warsztatplus/internal/models"
)

// Evaluate derives the authoritative contract status of a workshop from its
// stored dates and now, applying the clock-driven transitions in place:
//
//   - a fixed term that lapsed without termination becomes indefinite, with
//     contract_indefinite_since stamped exactly once;
//   - a pending notice gets its termination end backfilled, and once now
//     reaches it the workshop is deactivated and terminated_at stamped once.
//
// It returns true when any field changed and the row needs to be persisted.
// Callers run this on every read path, never from a scheduler.
func Evaluate(w *models.Workshop, now time.Time) bool {
	if w == nil {
		return false
	}
	changed := false

	if w.ContractIndefiniteSince == nil && !w.ContractFixedEnd.IsZero() && !now.Before(w.ContractFixedEnd) {
		since := w.ContractFixedEnd
		w.ContractIndefiniteSince = &since
		changed = true
	}
	indefinite := w.ContractIndefiniteSince != nil

	switch {
	case w.TerminationNoticeDate != nil:
		if w.TerminationEndDate == nil {
			end := TerminationEnd(*w.TerminationNoticeDate)
			w.TerminationEndDate = &end
			changed = true
		}
		if !now.Before(*w.TerminationEndDate) {
			if w.Status != models.WorkshopStatusDeactivated {
				w.Status = models.WorkshopStatusDeactivated
				changed = true
			}
			if w.ContractStatus != models.ContractStatusTerminated {
				w.ContractStatus = models.ContractStatusTerminated
				changed = true
			}
			if w.TerminatedAt == nil {
				w.TerminatedAt = w.TerminationEndDate
				changed = true
			}
		} else if w.ContractStatus != models.ContractStatusNotice {
			w.ContractStatus = models.ContractStatusNotice
			changed = true
		}
	case indefinite:
		if w.ContractStatus != models.ContractStatusIndefinite {
			w.ContractStatus = models.ContractStatusIndefinite
			changed = true
		}
	default:
		if w.ContractStatus != models.ContractStatusFixed {
			w.ContractStatus = models.ContractStatusFixed
			changed = true
		}
	}

	return changed
}
