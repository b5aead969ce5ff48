package usecase

import (
	"context"
	"time"

	"appointment-calendar/internal/schedule"
	"appointment-calendar/pkg/daterange"
)

// Navigate implements schedule.UseCase.
func (uc *implUseCase) Navigate(ctx context.Context, widgetID string, step int) (schedule.Snapshot, error) {
	if step != -1 && step != 1 {
		return schedule.Snapshot{}, schedule.ErrInvalidStep
	}

	w, err := uc.getWidget(widgetID)
	if err != nil {
		return schedule.Snapshot{}, err
	}

	w.mu.Lock()
	if w.searchMode {
		// Navigation is disabled while a search result list is shown.
		snapshot := w.snapshotLocked(uc.calc.WeekNumber(w.anchor))
		w.mu.Unlock()
		return snapshot, nil
	}
	w.anchor = uc.calc.Step(w.view, w.anchor, step)
	w.mu.Unlock()

	if err := uc.refetch(ctx, w); err != nil {
		return schedule.Snapshot{}, err
	}
	return uc.snapshotOf(w), nil
}

// SetView implements schedule.UseCase.
func (uc *implUseCase) SetView(ctx context.Context, widgetID, view string) (schedule.Snapshot, error) {
	w, err := uc.getWidget(widgetID)
	if err != nil {
		return schedule.Snapshot{}, err
	}

	next, known := daterange.ParseView(view)
	if !known {
		uc.l.Warnf(ctx, "schedule.SetView: unknown view %q for widget %s, falling back to month", view, widgetID)
	}

	w.mu.Lock()
	if next == w.view {
		snapshot := w.snapshotLocked(uc.calc.WeekNumber(w.anchor))
		w.mu.Unlock()
		return snapshot, nil
	}
	if w.searchMode {
		// Leaving search keeps the pre-search view as the restore target and
		// drops the stale result list with its pagination.
		w.searchMode = false
		w.searchQuery = ""
		w.searchTotal = 0
		w.searchResults = nil
		w.limit = uc.settings.SearchLimit
		w.offset = uc.settings.SearchOffset
	} else {
		w.lastView = w.view
	}
	w.view = next
	w.mu.Unlock()

	uc.lastViews.Set(widgetID, next)
	uc.emit(schedule.EventView, widgetID, string(next))

	if err := uc.refetch(ctx, w); err != nil {
		return schedule.Snapshot{}, err
	}
	return uc.snapshotOf(w), nil
}

// SetDate implements schedule.UseCase.
func (uc *implUseCase) SetDate(ctx context.Context, widgetID string, date time.Time) (schedule.Snapshot, error) {
	if date.IsZero() {
		return schedule.Snapshot{}, schedule.ErrInvalidDate
	}

	w, err := uc.getWidget(widgetID)
	if err != nil {
		return schedule.Snapshot{}, err
	}

	w.mu.Lock()
	w.anchor = uc.calc.StartOfDay(date)
	if w.searchMode {
		// Picking a date leaves the search list and returns to the date view.
		w.searchMode = false
		w.searchQuery = ""
		w.view = w.lastView
	}
	w.mu.Unlock()

	if err := uc.refetch(ctx, w); err != nil {
		return schedule.Snapshot{}, err
	}
	return uc.snapshotOf(w), nil
}

// ProposeSlot implements schedule.UseCase. Timed views propose a one-hour
// slot at the working-day start; month and year views propose the whole
// anchor day.
func (uc *implUseCase) ProposeSlot(ctx context.Context, widgetID string) (schedule.SlotProposal, error) {
	w, err := uc.getWidget(widgetID)
	if err != nil {
		return schedule.SlotProposal{}, err
	}

	w.mu.Lock()
	view := w.view
	anchor := w.anchor
	w.mu.Unlock()

	proposal := schedule.SlotProposal{View: view}
	switch view {
	case daterange.ViewDay, daterange.ViewWeek:
		proposal.Start = uc.calc.StartOfDay(anchor).Add(9 * time.Hour)
		proposal.End = proposal.Start.Add(time.Hour)
	default:
		proposal.Start = uc.calc.StartOfDay(anchor)
		proposal.End = uc.calc.EndOfDay(anchor)
	}

	uc.emit(schedule.EventAdd, widgetID, proposal)
	return proposal, nil
}
