package usecase

import (
	"sort"
	"time"

	"appointment-calendar/internal/model"
	"appointment-calendar/pkg/daterange"
)

// buildLayout arranges the timed slots of the displayed range into per-weekday
// columns so overlapping appointments never cover each other. All-day
// appointments render in a separate banner area and are excluded here.
//
// The output is fractional geometry (percent of the day column); converting
// fractions to pixels is the renderer's job.
func (uc *implUseCase) buildLayout(appointments []*model.Appointment, view daterange.View, rangeStart, rangeEnd time.Time) model.Layout {
	layout := model.Layout{}

	daySlots := map[time.Weekday][]model.Slot{}
	for _, a := range appointments {
		if a.AllDay || a.Extras == nil {
			continue
		}
		for _, dd := range a.Extras.DisplayDates {
			if dd.Date.Before(rangeStart) || dd.Date.After(rangeEnd) {
				continue
			}
			if view == daterange.ViewWeek && !dd.VisibleInWeek {
				continue
			}
			daySlots[dd.Weekday] = append(daySlots[dd.Weekday], model.Slot{
				Appointment: a,
				Start:       dd.SlotStart,
				End:         dd.SlotEnd,
			})
		}
	}

	for weekday, slots := range daySlots {
		layout[weekday] = packDay(slots)
	}
	return layout
}

// packDay assigns a day's slots to columns greedily in start order. A slot
// that overlaps nothing while no columns exist yet renders full width;
// otherwise it lands in the first column where it overlaps no occupant, or
// opens a new column.
func packDay(slots []model.Slot) *model.DayLayout {
	sort.SliceStable(slots, func(i, j int) bool {
		return slots[i].Start.Before(slots[j].Start)
	})

	day := &model.DayLayout{}
	var columns [][]model.Slot

	for _, slot := range slots {
		if len(columns) == 0 && !overlapsAny(slots, slot) {
			day.FullWidth = append(day.FullWidth, slot)
			continue
		}

		placed := false
		for i := range columns {
			if !overlapsColumn(columns[i], slot) {
				columns[i] = append(columns[i], slot)
				placed = true
				break
			}
		}
		if !placed {
			columns = append(columns, []model.Slot{slot})
		}
	}

	day.Columns = placeColumns(columns)
	return day
}

// placeColumns derives each slot's geometry. Base width is an even share of
// the day column; a slot whose time range clears every later column expands
// rightward to take the remaining space.
func placeColumns(columns [][]model.Slot) [][]model.ColumnSlot {
	total := len(columns)
	if total == 0 {
		return nil
	}

	share := 100.0 / float64(total)
	placed := make([][]model.ColumnSlot, total)

	for i, column := range columns {
		placed[i] = make([]model.ColumnSlot, 0, len(column))
		for _, slot := range column {
			width := share
			if clearsLaterColumns(columns, i, slot) {
				width = 100.0 - float64(i)*share
			}
			placed[i] = append(placed[i], model.ColumnSlot{
				Slot:         slot,
				Column:       i,
				TotalColumns: total,
				LeftPercent:  float64(i) * share,
				WidthPercent: width,
			})
		}
	}
	return placed
}

func clearsLaterColumns(columns [][]model.Slot, index int, slot model.Slot) bool {
	for _, column := range columns[index+1:] {
		if overlapsColumn(column, slot) {
			return false
		}
	}
	return true
}

func overlapsColumn(column []model.Slot, slot model.Slot) bool {
	for _, occupant := range column {
		if overlaps(occupant, slot) {
			return true
		}
	}
	return false
}

func overlapsAny(slots []model.Slot, slot model.Slot) bool {
	for _, other := range slots {
		if other.Appointment == slot.Appointment && other.Start.Equal(slot.Start) {
			continue
		}
		if overlaps(other, slot) {
			return true
		}
	}
	return false
}

// overlaps is a half-open interval test: touching boundaries do not overlap,
// so a 09:00-10:00 slot and a 10:00-11:00 slot share a column.
func overlaps(a, b model.Slot) bool {
	return a.Start.Before(b.End) && b.Start.Before(a.End)
}
