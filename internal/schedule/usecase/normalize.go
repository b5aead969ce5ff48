package usecase

import (
	"fmt"
	"sort"
	"strings"
	"time"

	"appointment-calendar/internal/model"
)

// datetimeLayouts are the accepted record formats, tried in order. Sources
// commonly send "2006-01-02 15:04"; the space is canonicalized to 'T' before
// parsing.
var datetimeLayouts = []string{
	"2006-01-02T15:04:05",
	"2006-01-02T15:04",
	"2006-01-02",
}

// parseDatetime parses a raw record datetime in the calculator's timezone.
func (uc *implUseCase) parseDatetime(value string) (time.Time, error) {
	value = strings.Replace(strings.TrimSpace(value), " ", "T", 1)

	for _, layout := range datetimeLayouts {
		if t, err := time.ParseInLocation(layout, value, uc.calc.Location()); err == nil {
			return t, nil
		}
	}
	if t, err := time.Parse(time.RFC3339, value); err == nil {
		return t.In(uc.calc.Location()), nil
	}
	return time.Time{}, fmt.Errorf("unparseable datetime %q", value)
}

// normalizeAppointments converts raw records into normalized appointments.
// Any unparseable datetime rejects the whole batch: a malformed record in the
// standard path points at a broken source, not a skippable row.
//
// Sort order is stable: all-day records come before timed records, then by
// start. Search results keep pure start order so matches read chronologically.
func (uc *implUseCase) normalizeAppointments(raw []model.RawAppointment, searchMode bool) ([]*model.Appointment, error) {
	appointments := make([]*model.Appointment, 0, len(raw))

	for i, record := range raw {
		start, err := uc.parseDatetime(record.Start)
		if err != nil {
			return nil, fmt.Errorf("record %d (%q): invalid start: %w", i, record.Title, err)
		}
		end, err := uc.parseDatetime(record.End)
		if err != nil {
			return nil, fmt.Errorf("record %d (%q): invalid end: %w", i, record.Title, err)
		}

		if record.AllDay {
			start = uc.calc.StartOfDay(start)
			end = uc.calc.EndOfDay(end)
		}

		appointments = append(appointments, &model.Appointment{
			Start:       start,
			End:         end,
			AllDay:      record.AllDay,
			Title:       record.Title,
			Color:       record.Color,
			Link:        record.Link,
			Location:    record.Location,
			Description: record.Description,
			Icon:        record.Icon,
			Editable:    record.Editable,
			Deleteable:  record.Deleteable,
		})
	}

	sort.SliceStable(appointments, func(i, j int) bool {
		a, b := appointments[i], appointments[j]
		if !searchMode && a.AllDay != b.AllDay {
			return a.AllDay
		}
		return a.Start.Before(b.Start)
	})
	return appointments, nil
}

// normalizeYearCounts validates year-view aggregate records. Unlike the
// standard path, malformed rows are filtered silently: a single bad bucket
// should not blank a whole year of counts.
func (uc *implUseCase) normalizeYearCounts(raw []model.RawYearCount) []model.YearCount {
	counts := make([]model.YearCount, 0, len(raw))

	for _, record := range raw {
		date, err := time.ParseInLocation("2006-01-02", strings.TrimSpace(record.Date), uc.calc.Location())
		if err != nil {
			continue
		}
		total, err := record.Total.Int64()
		if err != nil || total <= 0 {
			continue
		}
		counts = append(counts, model.YearCount{Date: date, Total: int(total)})
	}

	sort.SliceStable(counts, func(i, j int) bool {
		return counts[i].Date.Before(counts[j].Date)
	})
	return counts
}
