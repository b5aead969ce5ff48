package usecase

import (
	"context"

	"github.com/google/uuid"

	"appointment-calendar/internal/model"
	"appointment-calendar/internal/schedule"
	"appointment-calendar/pkg/daterange"
)

// CreateWidget implements schedule.UseCase.
func (uc *implUseCase) CreateWidget(ctx context.Context, input schedule.CreateWidgetInput) (schedule.Snapshot, error) {
	id := input.ID
	if id == "" {
		id = uuid.NewString()
	}

	view := uc.resolveInitialView(ctx, id, input.View)

	anchor := input.AnchorDate
	if anchor.IsZero() {
		anchor = uc.now()
	}
	anchor = uc.calc.StartOfDay(anchor)

	w := &widget{
		id:       id,
		view:     view,
		lastView: view,
		anchor:   anchor,
		limit:    uc.settings.SearchLimit,
		offset:   uc.settings.SearchOffset,
	}
	if view == daterange.ViewSearch {
		// A persisted search view has no query to replay; open on the default.
		w.view = uc.settings.DefaultView
		w.lastView = w.view
	}

	uc.mu.Lock()
	if _, exists := uc.widgets[id]; exists {
		uc.mu.Unlock()
		return schedule.Snapshot{}, schedule.ErrWidgetExists
	}
	uc.widgets[id] = w
	uc.mu.Unlock()

	uc.emit(schedule.EventInit, id, string(w.view))
	if err := uc.refetch(ctx, w); err != nil {
		return schedule.Snapshot{}, err
	}
	uc.startClock(w)
	return uc.snapshotOf(w), nil
}

// resolveInitialView picks the view for a new widget. An explicit request
// wins, then the stored last view for the id, then the configured default.
func (uc *implUseCase) resolveInitialView(ctx context.Context, id, requested string) daterange.View {
	if requested != "" {
		view, known := daterange.ParseView(requested)
		if !known {
			uc.l.Warnf(ctx, "schedule.CreateWidget: unknown view %q for widget %s, falling back to month", requested, id)
		}
		return view
	}
	if stored, ok := uc.lastViews.Get(id); ok {
		return stored
	}
	return uc.settings.DefaultView
}

// Snapshot implements schedule.UseCase.
func (uc *implUseCase) Snapshot(ctx context.Context, widgetID string) (schedule.Snapshot, error) {
	w, err := uc.getWidget(widgetID)
	if err != nil {
		return schedule.Snapshot{}, err
	}
	return uc.snapshotOf(w), nil
}

// Refresh implements schedule.UseCase.
func (uc *implUseCase) Refresh(ctx context.Context, widgetID string) (schedule.Snapshot, error) {
	w, err := uc.getWidget(widgetID)
	if err != nil {
		return schedule.Snapshot{}, err
	}
	if err := uc.refetch(ctx, w); err != nil {
		return schedule.Snapshot{}, err
	}
	return uc.snapshotOf(w), nil
}

// CloseWidget implements schedule.UseCase.
func (uc *implUseCase) CloseWidget(ctx context.Context, widgetID string) error {
	uc.mu.Lock()
	w, ok := uc.widgets[widgetID]
	if ok {
		delete(uc.widgets, widgetID)
	}
	uc.mu.Unlock()
	if !ok {
		return schedule.ErrWidgetNotFound
	}

	w.mu.Lock()
	defer w.mu.Unlock()
	w.closed = true
	if w.cancel != nil {
		w.cancel()
		w.cancel = nil
	}
	return nil
}

// ReportAction implements schedule.UseCase.
func (uc *implUseCase) ReportAction(ctx context.Context, widgetID string, kind schedule.EventKind, appointment *model.Appointment) error {
	if kind != schedule.EventEdit && kind != schedule.EventDelete {
		return schedule.ErrInvalidAction
	}
	if _, err := uc.getWidget(widgetID); err != nil {
		return err
	}
	uc.emit(kind, widgetID, appointment)
	return nil
}
