package schedule

import (
	"time"

	"appointment-calendar/internal/model"
	"appointment-calendar/pkg/daterange"
)

// CreateWidgetInput configures a new widget instance.
type CreateWidgetInput struct {
	ID         string    // optional; a UUID is generated when empty
	View       string    // optional view name; default comes from config
	AnchorDate time.Time // zero value anchors on today
}

// SearchInput is a paginated text query.
type SearchInput struct {
	Query  string
	Limit  int
	Offset int
}

// Pagination is the active search window. Nil outside search mode.
type Pagination struct {
	Limit  int
	Offset int
}

// SlotProposal is the skeleton handed to the add event for a clicked slot.
type SlotProposal struct {
	Start time.Time
	End   time.Time
	View  daterange.View
}

// Snapshot is the full render state of a widget after an operation. All
// derived data (extras, layout) is computed fresh for the snapshot's fetch
// cycle.
type Snapshot struct {
	WidgetID   string
	View       daterange.View
	LastView   daterange.View
	AnchorDate time.Time
	RangeStart time.Time
	RangeEnd   time.Time
	WeekNumber int

	SearchMode  bool
	SearchQuery string
	Pagination  *Pagination
	SearchTotal int

	Appointments []*model.Appointment
	YearCounts   []model.YearCount
	Layout       model.Layout
	Holidays     []model.Holiday
}
