package usecase

import (
	"testing"
	"time"

	"appointment-calendar/internal/model"
	"appointment-calendar/pkg/daterange"
)

func slotAt(t *testing.T, title string, startHour, startMin, endHour, endMin int) model.Slot {
	t.Helper()
	day := date(t, 2024, 3, 15)
	return model.Slot{
		Appointment: &model.Appointment{Title: title},
		Start:       day.Add(time.Duration(startHour)*time.Hour + time.Duration(startMin)*time.Minute),
		End:         day.Add(time.Duration(endHour)*time.Hour + time.Duration(endMin)*time.Minute),
	}
}

func TestPackDayOverlappingPair(t *testing.T) {
	day := packDay([]model.Slot{
		slotAt(t, "A", 9, 0, 10, 0),
		slotAt(t, "B", 9, 30, 10, 30),
	})

	if len(day.FullWidth) != 0 {
		t.Errorf("overlapping slots must not be full width: %+v", day.FullWidth)
	}
	if len(day.Columns) != 2 {
		t.Fatalf("expected 2 columns, got %d", len(day.Columns))
	}

	a := day.Columns[0][0]
	b := day.Columns[1][0]
	if a.Appointment.Title != "A" || b.Appointment.Title != "B" {
		t.Errorf("unexpected column order: %s, %s", a.Appointment.Title, b.Appointment.Title)
	}
	if a.LeftPercent != 0 || a.WidthPercent != 50 {
		t.Errorf("A geometry = left %v width %v, want 0/50", a.LeftPercent, a.WidthPercent)
	}
	if b.LeftPercent != 50 || b.WidthPercent != 50 {
		t.Errorf("B geometry = left %v width %v, want 50/50", b.LeftPercent, b.WidthPercent)
	}
}

func TestPackDayNonOverlappingAreFullWidth(t *testing.T) {
	day := packDay([]model.Slot{
		slotAt(t, "A", 9, 0, 10, 0),
		slotAt(t, "B", 10, 0, 11, 0), // touching boundaries do not overlap
		slotAt(t, "C", 14, 0, 15, 0),
	})

	if len(day.Columns) != 0 {
		t.Errorf("expected no columns, got %d", len(day.Columns))
	}
	if len(day.FullWidth) != 3 {
		t.Fatalf("expected 3 full-width slots, got %d", len(day.FullWidth))
	}
}

func TestPackDayWidthExpandsPastClearColumns(t *testing.T) {
	day := packDay([]model.Slot{
		slotAt(t, "A", 9, 0, 10, 0),
		slotAt(t, "B", 9, 30, 10, 30),
		slotAt(t, "C", 11, 0, 12, 0),
	})

	if len(day.Columns) != 2 {
		t.Fatalf("expected 2 columns, got %d", len(day.Columns))
	}

	// C lands in column 0 after A and clears column 1 entirely.
	var c *model.ColumnSlot
	for i := range day.Columns[0] {
		if day.Columns[0][i].Appointment.Title == "C" {
			c = &day.Columns[0][i]
		}
	}
	if c == nil {
		t.Fatal("C not placed in column 0")
	}
	if c.WidthPercent != 100 {
		t.Errorf("C should expand across the cleared column, width = %v", c.WidthPercent)
	}

	a := day.Columns[0][0]
	if a.WidthPercent != 50 {
		t.Errorf("A is blocked by B and keeps its share, width = %v", a.WidthPercent)
	}
}

// Property check: no two slots sharing a column may overlap.
func TestPackDayColumnsNeverOverlap(t *testing.T) {
	day := packDay([]model.Slot{
		slotAt(t, "A", 9, 0, 12, 0),
		slotAt(t, "B", 9, 0, 10, 0),
		slotAt(t, "C", 10, 0, 11, 0),
		slotAt(t, "D", 10, 30, 13, 0),
		slotAt(t, "E", 12, 30, 14, 0),
	})

	for ci, column := range day.Columns {
		for i := 0; i < len(column); i++ {
			for j := i + 1; j < len(column); j++ {
				if overlaps(column[i].Slot, column[j].Slot) {
					t.Errorf("column %d holds overlapping slots %s and %s",
						ci, column[i].Appointment.Title, column[j].Appointment.Title)
				}
			}
		}
	}
}

func TestBuildLayoutBucketsAndFilters(t *testing.T) {
	uc := newTestUseCase(t, nil)
	now := testNow(t)

	timed := &model.Appointment{
		Start: time.Date(2024, 3, 13, 9, 0, 0, 0, testLocation(t)),
		End:   time.Date(2024, 3, 13, 10, 0, 0, 0, testLocation(t)),
		Title: "Wednesday Sync",
	}
	allDay := &model.Appointment{
		Start:  date(t, 2024, 3, 13),
		End:    time.Date(2024, 3, 13, 23, 59, 59, 0, testLocation(t)),
		AllDay: true,
		Title:  "Banner Only",
	}
	nextWeek := &model.Appointment{
		Start: time.Date(2024, 3, 20, 9, 0, 0, 0, testLocation(t)),
		End:   time.Date(2024, 3, 20, 10, 0, 0, 0, testLocation(t)),
		Title: "Next Wednesday",
	}
	for _, a := range []*model.Appointment{timed, allDay, nextWeek} {
		uc.computeExtras(a, now)
	}
	appointments := []*model.Appointment{timed, allDay, nextWeek}

	t.Run("Week View Filters To Current Week", func(t *testing.T) {
		start, end := uc.calc.Range(daterange.ViewWeek, now)
		layout := uc.buildLayout(appointments, daterange.ViewWeek, start, end)

		day := layout[time.Wednesday]
		if day == nil {
			t.Fatal("expected a Wednesday layout")
		}
		if len(day.FullWidth) != 1 || day.FullWidth[0].Appointment.Title != "Wednesday Sync" {
			t.Errorf("unexpected Wednesday slots: %+v", day.FullWidth)
		}
	})

	t.Run("All Day Excluded From Columns", func(t *testing.T) {
		start, end := uc.calc.Range(daterange.ViewMonth, now)
		layout := uc.buildLayout(appointments, daterange.ViewMonth, start, end)

		for weekday, day := range layout {
			for _, slot := range day.FullWidth {
				if slot.Appointment.AllDay {
					t.Errorf("all-day slot leaked into %v layout", weekday)
				}
			}
		}
	})
}
