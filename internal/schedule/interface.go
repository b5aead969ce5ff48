package schedule

import (
	"context"
	"time"

	"appointment-calendar/internal/model"
)

// UseCase defines the business logic interface for the calendar widget
// domain. Every operation addresses one widget instance by id; each widget
// owns its own view state.
type UseCase interface {
	// CreateWidget registers a new widget instance and performs its initial
	// fetch. A stored last view for the id wins over the configured default.
	CreateWidget(ctx context.Context, input CreateWidgetInput) (Snapshot, error)

	// Snapshot returns the widget's current state without refetching.
	Snapshot(ctx context.Context, widgetID string) (Snapshot, error)

	// Navigate advances or retreats the anchor date by step units of the
	// current view and refetches.
	Navigate(ctx context.Context, widgetID string, step int) (Snapshot, error)

	// SetView switches the widget to the named view. Unknown names fall back
	// to month. A no-op when the view is unchanged.
	SetView(ctx context.Context, widgetID, view string) (Snapshot, error)

	// SetDate replaces the anchor date and refetches.
	SetDate(ctx context.Context, widgetID string, date time.Time) (Snapshot, error)

	// Search enters search mode and runs a paginated text query. An empty
	// query exits search mode and restores the prior date view without a
	// network call.
	Search(ctx context.Context, widgetID string, input SearchInput) (Snapshot, error)

	// ExitSearch leaves search mode, resets pagination to the configured
	// defaults, and restores the prior date view.
	ExitSearch(ctx context.Context, widgetID string) (Snapshot, error)

	// Refresh refetches and re-renders the current state without changing
	// anchor or view.
	Refresh(ctx context.Context, widgetID string) (Snapshot, error)

	// ProposeSlot returns a start/end skeleton for creating an appointment in
	// the currently displayed period, and emits the add event.
	ProposeSlot(ctx context.Context, widgetID string) (SlotProposal, error)

	// ReportAction forwards an edit or delete action on an appointment to the
	// widget's listeners.
	ReportAction(ctx context.Context, widgetID string, kind EventKind, appointment *model.Appointment) error

	// CloseWidget tears the widget down, cancelling any in-flight fetch and
	// stopping its clock.
	CloseWidget(ctx context.Context, widgetID string) error

	// Subscribe registers a listener for widget lifecycle events.
	Subscribe(listener Listener)
}
