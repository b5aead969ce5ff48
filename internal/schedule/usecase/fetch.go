package usecase

import (
	"context"
	"errors"
	"fmt"
	"time"

	"appointment-calendar/internal/model"
	"appointment-calendar/internal/schedule"
	"appointment-calendar/internal/schedule/repository"
	"appointment-calendar/pkg/daterange"
)

// fetchPlan captures the state generation a fetch was issued for.
type fetchPlan struct {
	seq        uint64
	view       daterange.View
	rangeStart time.Time
	rangeEnd   time.Time

	searchMode  bool
	searchQuery string
	limit       int
	offset      int
}

// refetch loads the widget's current period from the data source and applies
// the result. Any in-flight fetch is cancelled first; the last request wins
// and a stale response never mutates state.
func (uc *implUseCase) refetch(ctx context.Context, w *widget) error {
	w.mu.Lock()
	if w.closed {
		w.mu.Unlock()
		return schedule.ErrWidgetClosed
	}
	if w.cancel != nil {
		w.cancel()
	}
	fetchCtx, cancel := context.WithCancel(ctx)
	w.cancel = cancel
	w.fetchSeq++

	plan := fetchPlan{
		seq:         w.fetchSeq,
		view:        w.view,
		searchMode:  w.searchMode,
		searchQuery: w.searchQuery,
		limit:       w.limit,
		offset:      w.offset,
	}
	plan.rangeStart, plan.rangeEnd = uc.calc.Range(w.view, w.anchor)
	widgetID := w.id
	w.mu.Unlock()

	uc.emit(schedule.EventBeforeLoad, widgetID, plan.searchQuery)

	result, err := uc.fetch(fetchCtx, plan)
	if err != nil {
		if errors.Is(err, context.Canceled) {
			uc.l.Debugf(ctx, "schedule.refetch: fetch for widget %s superseded", widgetID)
			return nil
		}
		uc.l.Errorf(ctx, "schedule.refetch: fetch for widget %s failed: %v", widgetID, err)
		// The widget still moves to the requested period, just empty.
		result = fetchResult{}
	}

	now := uc.now().In(uc.calc.Location())
	for _, a := range result.appointments {
		uc.computeExtras(a, now)
	}
	uc.decorateYearCounts(result.yearCounts, now)
	layout := uc.buildLayout(result.appointments, plan.view, plan.rangeStart, plan.rangeEnd)

	w.mu.Lock()
	defer w.mu.Unlock()
	if w.closed || w.fetchSeq != plan.seq {
		return nil
	}
	if plan.searchMode {
		w.searchResults = result.appointments
		w.searchTotal = result.searchTotal
		return nil
	}
	w.rangeStart = plan.rangeStart
	w.rangeEnd = plan.rangeEnd
	w.appointments = result.appointments
	w.yearCounts = result.yearCounts
	w.layout = layout
	w.holidays = result.holidays
	return nil
}

type fetchResult struct {
	appointments []*model.Appointment
	yearCounts   []model.YearCount
	holidays     []model.Holiday
	searchTotal  int
}

func (uc *implUseCase) fetch(ctx context.Context, plan fetchPlan) (fetchResult, error) {
	switch {
	case plan.searchMode:
		page, err := uc.source.Search(ctx, repository.SearchOptions{
			Search: plan.searchQuery,
			Limit:  plan.limit,
			Offset: plan.offset,
		})
		if err != nil {
			return fetchResult{}, fmt.Errorf("search %q: %w", plan.searchQuery, err)
		}
		appointments, err := uc.normalizeAppointments(page.Rows, true)
		if err != nil {
			return fetchResult{}, err
		}
		return fetchResult{appointments: appointments, searchTotal: page.Total}, nil

	case plan.view == daterange.ViewYear:
		raw, err := uc.source.FetchYear(ctx, repository.YearOptions{Year: plan.rangeStart.Year()})
		if err != nil {
			return fetchResult{}, fmt.Errorf("fetch year %d: %w", plan.rangeStart.Year(), err)
		}
		return fetchResult{yearCounts: uc.normalizeYearCounts(raw)}, nil

	default:
		raw, err := uc.source.FetchRange(ctx, repository.RangeOptions{
			FromDate: plan.rangeStart,
			ToDate:   plan.rangeEnd,
			View:     plan.view,
		})
		if err != nil {
			return fetchResult{}, fmt.Errorf("fetch range %s..%s: %w",
				plan.rangeStart.Format("2006-01-02"), plan.rangeEnd.Format("2006-01-02"), err)
		}
		appointments, err := uc.normalizeAppointments(raw, false)
		if err != nil {
			return fetchResult{}, err
		}
		return fetchResult{
			appointments: appointments,
			holidays:     uc.fetchHolidays(ctx, plan.rangeStart, plan.rangeEnd),
		}, nil
	}
}

// fetchHolidays loads holidays for the displayed range. Failures only cost
// the holiday overlay, never the appointments.
func (uc *implUseCase) fetchHolidays(ctx context.Context, from, to time.Time) []model.Holiday {
	if uc.holidays == nil {
		return nil
	}
	holidays, err := uc.holidays.Holidays(ctx, from, to)
	if err != nil {
		if !errors.Is(err, context.Canceled) {
			uc.l.Warnf(ctx, "schedule.fetchHolidays: %v", err)
		}
		return nil
	}
	return holidays
}
