package usecase

import (
	"context"
	"sync"
	"time"

	"appointment-calendar/internal/model"
	"appointment-calendar/internal/schedule"
	"appointment-calendar/pkg/daterange"
)

// widget is one live widget instance. All fields are guarded by mu; fetches
// release the lock while the data source call is in flight and re-acquire it
// to apply results.
type widget struct {
	mu     sync.Mutex
	id     string
	closed bool

	view     daterange.View
	lastView daterange.View
	anchor   time.Time

	// Search state lives beside the date-view data, never on top of it, so
	// clearing the query restores the prior view without a refetch.
	searchMode    bool
	searchQuery   string
	limit         int
	offset        int
	searchTotal   int
	searchResults []*model.Appointment

	rangeStart   time.Time
	rangeEnd     time.Time
	appointments []*model.Appointment
	yearCounts   []model.YearCount
	layout       model.Layout
	holidays     []model.Holiday

	// fetchSeq pairs each fetch with the state generation that issued it; a
	// response whose sequence is no longer current is discarded unseen.
	fetchSeq uint64
	cancel   context.CancelFunc
}

// snapshotLocked builds a Snapshot from the current state. Callers must hold
// w.mu.
func (w *widget) snapshotLocked(weekNumber int) schedule.Snapshot {
	s := schedule.Snapshot{
		WidgetID:     w.id,
		View:         w.view,
		LastView:     w.lastView,
		AnchorDate:   w.anchor,
		RangeStart:   w.rangeStart,
		RangeEnd:     w.rangeEnd,
		WeekNumber:   weekNumber,
		SearchMode:   w.searchMode,
		SearchQuery:  w.searchQuery,
		SearchTotal:  w.searchTotal,
		Appointments: w.appointments,
		YearCounts:   w.yearCounts,
		Layout:       w.layout,
		Holidays:     w.holidays,
	}
	if w.searchMode {
		s.Pagination = &schedule.Pagination{Limit: w.limit, Offset: w.offset}
		s.Appointments = w.searchResults
		s.YearCounts = nil
		s.Layout = nil
		s.Holidays = nil
	}
	return s
}

func (uc *implUseCase) snapshotOf(w *widget) schedule.Snapshot {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.snapshotLocked(uc.calc.WeekNumber(w.anchor))
}
