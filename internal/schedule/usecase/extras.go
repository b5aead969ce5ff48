package usecase

import (
	"time"

	"appointment-calendar/internal/model"
	"appointment-calendar/pkg/daterange"
)

const timeLabelLayout = "15:04"

// computeExtras derives the presentation metadata for one appointment against
// the given wall-clock time. Extras are rebuilt wholesale on every fetch and
// clock tick; nothing here mutates previous state.
func (uc *implUseCase) computeExtras(a *model.Appointment, now time.Time) {
	extras := &model.Extras{
		Color:     a.Color,
		Icon:      a.Icon,
		StartDate: a.Start.Format("2006-01-02"),
		EndDate:   a.End.Format("2006-01-02"),
		StartTime: a.Start.Format("15:04:05"),
		EndTime:   a.End.Format("15:04:05"),
		Duration:  uc.computeDuration(a),
		IsToday:   uc.calc.StartOfDay(a.Start).Equal(uc.calc.StartOfDay(now)),
		IsNow:     !now.Before(a.Start) && !now.After(a.End),
	}
	if a.AllDay {
		extras.StartTime = "00:00:00"
		extras.EndTime = "00:00:00"
	}

	extras.DisplayDates = uc.computeDisplayDates(a, now)
	extras.InADay = len(extras.DisplayDates) == 1
	a.Extras = extras
}

// computeDuration splits the appointment's length into calendar units. All-day
// appointments count whole calendar days inclusive, so a single-day record has
// a duration of one day.
func (uc *implUseCase) computeDuration(a *model.Appointment) model.Duration {
	if a.AllDay {
		startDay := uc.calc.StartOfDay(a.Start)
		endDay := uc.calc.StartOfDay(a.End)
		days := int(endDay.Sub(startDay).Hours()/24) + 1
		return model.Duration{Days: days}
	}

	total := int(a.End.Sub(a.Start).Seconds())
	if total < 0 {
		total = 0
	}
	return model.Duration{
		Days:    total / 86400,
		Hours:   total % 86400 / 3600,
		Minutes: total % 3600 / 60,
		Seconds: total % 60,
	}
}

// computeDisplayDates projects the appointment onto each calendar day it
// touches. The first day carries the real start time; when the appointment
// spills past it the day's slot is capped at 23:59. Interior days run
// 00:00-23:59 and the last day runs 00:00 to the real end. All-day days carry
// no time labels at all.
//
// Week and month visibility are evaluated against the period containing now,
// not the displayed anchor. Historic behavior: consumers rely on the flags
// meaning "in the current week/month".
func (uc *implUseCase) computeDisplayDates(a *model.Appointment, now time.Time) []model.DisplayDate {
	monthStart, monthEnd := uc.calc.Range(daterange.ViewMonth, now)
	weekStart, weekEnd := uc.calc.Range(daterange.ViewWeek, now)

	firstDay := uc.calc.StartOfDay(a.Start)
	lastDay := uc.calc.StartOfDay(a.End)

	var dates []model.DisplayDate
	for day := firstDay; !day.After(lastDay); day = day.AddDate(0, 0, 1) {
		dd := model.DisplayDate{
			Date:           day,
			Weekday:        day.Weekday(),
			SlotStart:      day,
			SlotEnd:        uc.calc.EndOfDay(day),
			VisibleInMonth: !day.Before(monthStart) && !day.After(monthEnd),
			VisibleInWeek:  !day.Before(weekStart) && !day.After(weekEnd),
		}

		if !a.AllDay {
			switch {
			case day.Equal(firstDay) && day.Equal(lastDay):
				dd.SlotStart, dd.SlotEnd = a.Start, a.End
				dd.TimesStart = a.Start.Format(timeLabelLayout)
				dd.TimesEnd = a.End.Format(timeLabelLayout)
			case day.Equal(firstDay):
				dd.SlotStart = a.Start
				dd.TimesStart = a.Start.Format(timeLabelLayout)
				dd.TimesEnd = "23:59"
			case day.Equal(lastDay):
				dd.SlotEnd = a.End
				dd.TimesStart = "00:00"
				dd.TimesEnd = a.End.Format(timeLabelLayout)
			default:
				dd.TimesStart = "00:00"
				dd.TimesEnd = "23:59"
			}
		}

		dates = append(dates, dd)
	}
	return dates
}

// decorateYearCounts fills the now-dependent flags of year-view counts.
func (uc *implUseCase) decorateYearCounts(counts []model.YearCount, now time.Time) {
	today := uc.calc.StartOfDay(now)
	for i := range counts {
		counts[i].IsToday = counts[i].Date.Equal(today)
		counts[i].IsNow = counts[i].Date.Year() == now.Year()
	}
}
