package usecase

import (
	"time"

	"appointment-calendar/internal/model"
)

// startClock refreshes the widget's now-dependent flags (isToday, isNow,
// week/month visibility) once per interval, keeping the current-time marker
// honest while the widget sits open. The goroutine checks for teardown before
// touching anything and stops itself once the widget is closed.
//
// Each tick swaps in fresh copies rather than rewriting records in place:
// appointments, layout, and year counts already handed out in snapshots are
// never written again, so snapshot consumers read without the widget lock.
func (uc *implUseCase) startClock(w *widget) {
	go func() {
		ticker := time.NewTicker(uc.clockInterval)
		defer ticker.Stop()

		for range ticker.C {
			w.mu.Lock()
			if w.closed {
				w.mu.Unlock()
				return
			}
			now := uc.now().In(uc.calc.Location())

			w.appointments = uc.refreshExtras(w.appointments, now)
			w.searchResults = uc.refreshExtras(w.searchResults, now)

			view := w.view
			if w.searchMode {
				// The layout belongs to the date view kept beside the search
				// results.
				view = w.lastView
			}
			w.layout = uc.buildLayout(w.appointments, view, w.rangeStart, w.rangeEnd)

			if len(w.yearCounts) > 0 {
				counts := make([]model.YearCount, len(w.yearCounts))
				copy(counts, w.yearCounts)
				uc.decorateYearCounts(counts, now)
				w.yearCounts = counts
			}
			w.mu.Unlock()
		}
	}()
}

// refreshExtras recomputes extras against now on copies of the appointments
// and returns the copies.
func (uc *implUseCase) refreshExtras(appointments []*model.Appointment, now time.Time) []*model.Appointment {
	if len(appointments) == 0 {
		return appointments
	}
	fresh := make([]*model.Appointment, len(appointments))
	for i, a := range appointments {
		copied := *a
		uc.computeExtras(&copied, now)
		fresh[i] = &copied
	}
	return fresh
}
