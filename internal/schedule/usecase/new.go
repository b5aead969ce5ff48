package usecase

import (
	"context"
	"sync"
	"time"

	"appointment-calendar/internal/model"
	"appointment-calendar/internal/schedule"
	"appointment-calendar/internal/schedule/repository"
	"appointment-calendar/pkg/daterange"
	pkgLog "appointment-calendar/pkg/log"
)

// HolidayProvider delivers holidays for a date range. Provider failures are
// logged and skipped; holidays never break appointment rendering.
type HolidayProvider interface {
	Holidays(ctx context.Context, from, to time.Time) ([]model.Holiday, error)
}

// Settings carries the widget policy knobs from config.
type Settings struct {
	DefaultView  daterange.View
	SearchLimit  int
	SearchOffset int
	LastViewTTL  time.Duration
}

type implUseCase struct {
	l        pkgLog.Logger
	calc     *daterange.Calculator
	source   repository.DataSource
	holidays HolidayProvider
	settings Settings

	mu      sync.RWMutex
	widgets map[string]*widget

	lastViews *lastViewCache

	listenersMu sync.RWMutex
	listeners   []schedule.Listener

	now           func() time.Time
	clockInterval time.Duration
}

// New creates a new schedule UseCase instance. holidays may be nil.
func New(
	l pkgLog.Logger,
	calc *daterange.Calculator,
	source repository.DataSource,
	holidays HolidayProvider,
	settings Settings,
) *implUseCase {
	if settings.DefaultView == "" {
		settings.DefaultView = daterange.ViewMonth
	}
	if settings.SearchLimit <= 0 {
		settings.SearchLimit = 10
	}
	return &implUseCase{
		l:             l,
		calc:          calc,
		source:        source,
		holidays:      holidays,
		settings:      settings,
		widgets:       make(map[string]*widget),
		lastViews:     newLastViewCache(settings.LastViewTTL),
		now:           time.Now,
		clockInterval: time.Minute,
	}
}

// Subscribe implements schedule.UseCase.
func (uc *implUseCase) Subscribe(listener schedule.Listener) {
	uc.listenersMu.Lock()
	defer uc.listenersMu.Unlock()
	uc.listeners = append(uc.listeners, listener)
}

func (uc *implUseCase) emit(kind schedule.EventKind, widgetID string, payload any) {
	uc.listenersMu.RLock()
	listeners := uc.listeners
	uc.listenersMu.RUnlock()

	event := schedule.Event{
		Kind:     kind,
		WidgetID: widgetID,
		Payload:  payload,
		At:       uc.now(),
	}
	for _, listener := range listeners {
		listener(event)
	}
}

func (uc *implUseCase) getWidget(widgetID string) (*widget, error) {
	uc.mu.RLock()
	defer uc.mu.RUnlock()
	w, ok := uc.widgets[widgetID]
	if !ok {
		return nil, schedule.ErrWidgetNotFound
	}
	return w, nil
}
