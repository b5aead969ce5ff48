package usecase

import (
	"context"
	"strings"

	"appointment-calendar/internal/schedule"
	"appointment-calendar/pkg/daterange"
)

// Search implements schedule.UseCase. An empty query exits search mode and
// restores the prior date view without touching the network.
func (uc *implUseCase) Search(ctx context.Context, widgetID string, input schedule.SearchInput) (schedule.Snapshot, error) {
	w, err := uc.getWidget(widgetID)
	if err != nil {
		return schedule.Snapshot{}, err
	}

	query := strings.TrimSpace(input.Query)
	if query == "" {
		return uc.exitSearch(ctx, w, false)
	}

	w.mu.Lock()
	if !w.searchMode {
		w.lastView = w.view
		w.view = daterange.ViewSearch
		w.searchMode = true
	}
	w.searchQuery = query
	if input.Limit > 0 {
		w.limit = input.Limit
	}
	if input.Offset >= 0 {
		w.offset = input.Offset
	}
	w.mu.Unlock()

	if err := uc.refetch(ctx, w); err != nil {
		return schedule.Snapshot{}, err
	}
	return uc.snapshotOf(w), nil
}

// ExitSearch implements schedule.UseCase.
func (uc *implUseCase) ExitSearch(ctx context.Context, widgetID string) (schedule.Snapshot, error) {
	w, err := uc.getWidget(widgetID)
	if err != nil {
		return schedule.Snapshot{}, err
	}
	return uc.exitSearch(ctx, w, true)
}

// exitSearch leaves search mode and restores the prior date view with the
// pagination defaults. refresh controls whether the restored view refetches:
// clearing the query box skips the network, the explicit exit button reloads.
func (uc *implUseCase) exitSearch(ctx context.Context, w *widget, refresh bool) (schedule.Snapshot, error) {
	w.mu.Lock()
	wasSearching := w.searchMode
	w.searchMode = false
	w.searchQuery = ""
	w.searchTotal = 0
	w.searchResults = nil
	w.limit = uc.settings.SearchLimit
	w.offset = uc.settings.SearchOffset
	if wasSearching {
		w.view = w.lastView
	}
	w.mu.Unlock()

	if refresh && wasSearching {
		if err := uc.refetch(ctx, w); err != nil {
			return schedule.Snapshot{}, err
		}
	}
	return uc.snapshotOf(w), nil
}
