package usecase

import (
	"context"
	"sync"
	"testing"
	"time"

	"appointment-calendar/internal/model"
	"appointment-calendar/internal/schedule"
	"appointment-calendar/internal/schedule/repository"
	"appointment-calendar/pkg/daterange"
)

// countingSource is a DataSource fake that counts calls per path.
type countingSource struct {
	mu          sync.Mutex
	rangeCalls  int
	yearCalls   int
	searchCalls int

	rangeRows  []model.RawAppointment
	yearRows   []model.RawYearCount
	searchRows []model.RawAppointment
	total      int

	rangeHook func(ctx context.Context, call int) error
}

func (s *countingSource) FetchRange(ctx context.Context, opt repository.RangeOptions) ([]model.RawAppointment, error) {
	s.mu.Lock()
	s.rangeCalls++
	call := s.rangeCalls
	hook := s.rangeHook
	s.mu.Unlock()

	if hook != nil {
		if err := hook(ctx, call); err != nil {
			return nil, err
		}
	}
	return s.rangeRows, nil
}

func (s *countingSource) FetchYear(ctx context.Context, opt repository.YearOptions) ([]model.RawYearCount, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.yearCalls++
	return s.yearRows, nil
}

func (s *countingSource) Search(ctx context.Context, opt repository.SearchOptions) (repository.SearchResult, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.searchCalls++
	return repository.SearchResult{Rows: s.searchRows, Total: s.total}, nil
}

func (s *countingSource) counts() (int, int, int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.rangeCalls, s.yearCalls, s.searchCalls
}

func TestCreateWidgetInitialFetch(t *testing.T) {
	source := &countingSource{
		rangeRows: []model.RawAppointment{
			{Start: "2024-03-01 09:00", End: "2024-03-01 10:00", Title: "Standup"},
		},
	}
	uc := newTestUseCase(t, source)

	snapshot, err := uc.CreateWidget(context.Background(), schedule.CreateWidgetInput{})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if snapshot.View != daterange.ViewMonth {
		t.Errorf("view = %s, want month", snapshot.View)
	}
	if snapshot.WidgetID == "" {
		t.Error("expected a generated widget id")
	}
	if !snapshot.RangeStart.Equal(date(t, 2024, 2, 26)) || !snapshot.RangeEnd.Equal(date(t, 2024, 3, 31)) {
		t.Errorf("range = %v..%v, want 2024-02-26..2024-03-31", snapshot.RangeStart, snapshot.RangeEnd)
	}
	if snapshot.WeekNumber != 11 {
		t.Errorf("week number = %d, want 11", snapshot.WeekNumber)
	}
	if len(snapshot.Appointments) != 1 || snapshot.Appointments[0].Extras == nil {
		t.Fatalf("expected 1 appointment with extras, got %+v", snapshot.Appointments)
	}
	if snapshot.Layout == nil {
		t.Error("expected a computed layout")
	}
}

func TestCreateWidgetDuplicateID(t *testing.T) {
	uc := newTestUseCase(t, &countingSource{})
	ctx := context.Background()

	if _, err := uc.CreateWidget(ctx, schedule.CreateWidgetInput{ID: "w1"}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if _, err := uc.CreateWidget(ctx, schedule.CreateWidgetInput{ID: "w1"}); err != schedule.ErrWidgetExists {
		t.Errorf("expected ErrWidgetExists, got %v", err)
	}
}

func TestNavigateSteps(t *testing.T) {
	source := &countingSource{}
	uc := newTestUseCase(t, source)
	ctx := context.Background()

	created, err := uc.CreateWidget(ctx, schedule.CreateWidgetInput{
		View:       "month",
		AnchorDate: date(t, 2024, 1, 31),
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	// January 31 has no counterpart in February; the anchor clamps to the 1st.
	snapshot, err := uc.Navigate(ctx, created.WidgetID, 1)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !snapshot.AnchorDate.Equal(date(t, 2024, 2, 1)) {
		t.Errorf("anchor = %v, want 2024-02-01", snapshot.AnchorDate)
	}

	if _, err := uc.Navigate(ctx, created.WidgetID, 3); err != schedule.ErrInvalidStep {
		t.Errorf("expected ErrInvalidStep for step 3, got %v", err)
	}
	if _, err := uc.Navigate(ctx, "missing", 1); err != schedule.ErrWidgetNotFound {
		t.Errorf("expected ErrWidgetNotFound, got %v", err)
	}
}

func TestSetViewFallbackAndNoop(t *testing.T) {
	source := &countingSource{}
	uc := newTestUseCase(t, source)
	ctx := context.Background()

	created, err := uc.CreateWidget(ctx, schedule.CreateWidgetInput{View: "week"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	// Unknown names fall back to month.
	snapshot, err := uc.SetView(ctx, created.WidgetID, "quarter")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if snapshot.View != daterange.ViewMonth {
		t.Errorf("view = %s, want month fallback", snapshot.View)
	}
	if snapshot.LastView != daterange.ViewWeek {
		t.Errorf("last view = %s, want week", snapshot.LastView)
	}

	rangeCalls, _, _ := source.counts()

	// Setting the same view again must not refetch.
	if _, err := uc.SetView(ctx, created.WidgetID, "month"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if after, _, _ := source.counts(); after != rangeCalls {
		t.Errorf("no-op view change refetched: %d -> %d", rangeCalls, after)
	}
}

func TestSetViewYearFetchesCounts(t *testing.T) {
	source := &countingSource{
		yearRows: []model.RawYearCount{{Date: "2024-03-15", Total: "2"}},
	}
	uc := newTestUseCase(t, source)
	ctx := context.Background()

	created, err := uc.CreateWidget(ctx, schedule.CreateWidgetInput{})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	snapshot, err := uc.SetView(ctx, created.WidgetID, "year")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if _, yearCalls, _ := source.counts(); yearCalls != 1 {
		t.Errorf("year calls = %d, want 1", yearCalls)
	}
	if len(snapshot.YearCounts) != 1 {
		t.Fatalf("expected 1 year count, got %+v", snapshot.YearCounts)
	}
	if !snapshot.YearCounts[0].IsToday || !snapshot.YearCounts[0].IsNow {
		t.Errorf("today's bucket should carry both flags: %+v", snapshot.YearCounts[0])
	}
}

func TestSearchLifecycle(t *testing.T) {
	source := &countingSource{
		rangeRows: []model.RawAppointment{
			{Start: "2024-03-01 09:00", End: "2024-03-01 10:00", Title: "Planning"},
		},
		searchRows: []model.RawAppointment{
			{Start: "2024-06-01 09:00", End: "2024-06-01 10:00", Title: "Review"},
		},
		total: 42,
	}
	uc := newTestUseCase(t, source)
	ctx := context.Background()

	created, err := uc.CreateWidget(ctx, schedule.CreateWidgetInput{View: "week"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	snapshot, err := uc.Search(ctx, created.WidgetID, schedule.SearchInput{Query: "review"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !snapshot.SearchMode || snapshot.View != daterange.ViewSearch {
		t.Errorf("expected search mode, got view %s", snapshot.View)
	}
	if snapshot.SearchTotal != 42 {
		t.Errorf("search total = %d, want 42", snapshot.SearchTotal)
	}
	if snapshot.Pagination == nil || snapshot.Pagination.Limit != 10 {
		t.Errorf("unexpected pagination: %+v", snapshot.Pagination)
	}
	if len(snapshot.Appointments) != 1 || snapshot.Appointments[0].Title != "Review" {
		t.Errorf("unexpected search rows: %+v", snapshot.Appointments)
	}

	_, _, searchCalls := source.counts()
	if searchCalls != 1 {
		t.Fatalf("search calls = %d, want 1", searchCalls)
	}

	// Clearing the query exits search mode without any network traffic and
	// restores the prior view with its data.
	snapshot, err = uc.Search(ctx, created.WidgetID, schedule.SearchInput{Query: "   "})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if snapshot.SearchMode {
		t.Error("expected search mode to be off")
	}
	if snapshot.View != daterange.ViewWeek {
		t.Errorf("view = %s, want restored week", snapshot.View)
	}
	if snapshot.Pagination != nil {
		t.Errorf("pagination should reset, got %+v", snapshot.Pagination)
	}
	if len(snapshot.Appointments) != 1 || snapshot.Appointments[0].Title != "Planning" {
		t.Errorf("expected the week data back, got %+v", snapshot.Appointments)
	}

	rangeCalls, _, searchCalls := source.counts()
	if searchCalls != 1 || rangeCalls != 1 {
		t.Errorf("empty query must not hit the network: range %d, search %d", rangeCalls, searchCalls)
	}
}

func TestSetViewLeavesSearchMode(t *testing.T) {
	source := &countingSource{
		rangeRows: []model.RawAppointment{
			{Start: "2024-03-01 09:00", End: "2024-03-01 10:00", Title: "Planning"},
		},
		searchRows: []model.RawAppointment{
			{Start: "2024-06-01 09:00", End: "2024-06-01 10:00", Title: "Review"},
		},
		total: 7,
	}
	uc := newTestUseCase(t, source)
	ctx := context.Background()

	created, err := uc.CreateWidget(ctx, schedule.CreateWidgetInput{View: "week"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if _, err := uc.Search(ctx, created.WidgetID, schedule.SearchInput{Query: "review"}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	snapshot, err := uc.SetView(ctx, created.WidgetID, "day")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if snapshot.SearchMode || snapshot.View != daterange.ViewDay {
		t.Errorf("expected day view out of search mode, got %+v", snapshot.View)
	}
	// The restore target stays the pre-search view, never "search" itself.
	if snapshot.LastView != daterange.ViewWeek {
		t.Errorf("lastView = %s, want week", snapshot.LastView)
	}
	if snapshot.SearchTotal != 0 || snapshot.Pagination != nil {
		t.Errorf("search state must reset: total %d, pagination %+v", snapshot.SearchTotal, snapshot.Pagination)
	}
	if len(snapshot.Appointments) != 1 || snapshot.Appointments[0].Title != "Planning" {
		t.Errorf("expected date-view rows back, got %+v", snapshot.Appointments)
	}
}

func TestExitSearchRefetches(t *testing.T) {
	source := &countingSource{}
	uc := newTestUseCase(t, source)
	ctx := context.Background()

	created, err := uc.CreateWidget(ctx, schedule.CreateWidgetInput{View: "day"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if _, err := uc.Search(ctx, created.WidgetID, schedule.SearchInput{Query: "x"}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	snapshot, err := uc.ExitSearch(ctx, created.WidgetID)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if snapshot.View != daterange.ViewDay || snapshot.SearchMode {
		t.Errorf("expected restored day view, got %+v", snapshot.View)
	}
	if rangeCalls, _, _ := source.counts(); rangeCalls != 2 {
		t.Errorf("explicit exit should refetch, range calls = %d", rangeCalls)
	}
}

// A superseded fetch must never overwrite the state written by a later one.
func TestStaleResponseDiscarded(t *testing.T) {
	firstStarted := make(chan struct{})
	source := &countingSource{
		rangeRows: []model.RawAppointment{
			{Start: "2024-03-01 09:00", End: "2024-03-01 10:00", Title: "Fresh"},
		},
	}
	source.rangeHook = func(ctx context.Context, call int) error {
		if call == 2 {
			close(firstStarted)
			<-ctx.Done()
			return ctx.Err()
		}
		return nil
	}

	uc := newTestUseCase(t, source)
	ctx := context.Background()

	created, err := uc.CreateWidget(ctx, schedule.CreateWidgetInput{})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	done := make(chan error, 1)
	go func() {
		_, err := uc.Refresh(ctx, created.WidgetID)
		done <- err
	}()

	<-firstStarted
	snapshot, err := uc.Navigate(ctx, created.WidgetID, 1)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if err := <-done; err != nil {
		t.Fatalf("superseded refresh should not error: %v", err)
	}

	if len(snapshot.Appointments) != 1 || snapshot.Appointments[0].Title != "Fresh" {
		t.Errorf("unexpected appointments: %+v", snapshot.Appointments)
	}
	if !snapshot.AnchorDate.Equal(date(t, 2024, 4, 15)) {
		t.Errorf("anchor = %v, want 2024-04-15", snapshot.AnchorDate)
	}
}

func TestCloseWidget(t *testing.T) {
	uc := newTestUseCase(t, &countingSource{})
	ctx := context.Background()

	created, err := uc.CreateWidget(ctx, schedule.CreateWidgetInput{})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if err := uc.CloseWidget(ctx, created.WidgetID); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if _, err := uc.Snapshot(ctx, created.WidgetID); err != schedule.ErrWidgetNotFound {
		t.Errorf("expected ErrWidgetNotFound after close, got %v", err)
	}
	if err := uc.CloseWidget(ctx, created.WidgetID); err != schedule.ErrWidgetNotFound {
		t.Errorf("double close should report not found, got %v", err)
	}
}

func TestLastViewRestoredOnRecreate(t *testing.T) {
	uc := newTestUseCase(t, &countingSource{})
	ctx := context.Background()

	if _, err := uc.CreateWidget(ctx, schedule.CreateWidgetInput{ID: "desk-7"}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if _, err := uc.SetView(ctx, "desk-7", "week"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if err := uc.CloseWidget(ctx, "desk-7"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	snapshot, err := uc.CreateWidget(ctx, schedule.CreateWidgetInput{ID: "desk-7"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if snapshot.View != daterange.ViewWeek {
		t.Errorf("view = %s, want remembered week", snapshot.View)
	}
}

func TestProposeSlotAndEvents(t *testing.T) {
	uc := newTestUseCase(t, &countingSource{})
	ctx := context.Background()

	var mu sync.Mutex
	var events []schedule.Event
	uc.Subscribe(func(e schedule.Event) {
		mu.Lock()
		defer mu.Unlock()
		events = append(events, e)
	})

	created, err := uc.CreateWidget(ctx, schedule.CreateWidgetInput{AnchorDate: date(t, 2024, 3, 20)})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	proposal, err := uc.ProposeSlot(ctx, created.WidgetID)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !proposal.Start.Equal(date(t, 2024, 3, 20)) {
		t.Errorf("month proposal should cover the anchor day, start = %v", proposal.Start)
	}
	if proposal.End.Hour() != 23 || proposal.End.Minute() != 59 {
		t.Errorf("month proposal should end at day end, got %v", proposal.End)
	}

	if err := uc.ReportAction(ctx, created.WidgetID, schedule.EventDelete, &model.Appointment{Title: "Gone"}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if err := uc.ReportAction(ctx, created.WidgetID, schedule.EventInit, nil); err != schedule.ErrInvalidAction {
		t.Errorf("expected ErrInvalidAction, got %v", err)
	}

	mu.Lock()
	defer mu.Unlock()
	kinds := make(map[schedule.EventKind]int)
	for _, e := range events {
		kinds[e.Kind]++
	}
	if kinds[schedule.EventInit] != 1 || kinds[schedule.EventBeforeLoad] != 1 ||
		kinds[schedule.EventAdd] != 1 || kinds[schedule.EventDelete] != 1 {
		t.Errorf("unexpected event mix: %+v", kinds)
	}
}

func TestClockTickRefreshesFlags(t *testing.T) {
	source := &countingSource{
		rangeRows: []model.RawAppointment{
			{Start: "2024-03-15 13:00", End: "2024-03-15 14:00", Title: "Soon"},
		},
	}
	uc := newTestUseCase(t, source)
	uc.clockInterval = 5 * time.Millisecond

	var mu sync.Mutex
	now := testNow(t)
	uc.now = func() time.Time {
		mu.Lock()
		defer mu.Unlock()
		return now
	}

	ctx := context.Background()
	created, err := uc.CreateWidget(ctx, schedule.CreateWidgetInput{})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if created.Appointments[0].Extras.IsNow {
		t.Fatal("appointment should not be running at 12:00")
	}

	// Advance the clock past the start and wait for a tick.
	mu.Lock()
	now = now.Add(90 * time.Minute)
	mu.Unlock()

	deadline := time.After(time.Second)
	var snapshot schedule.Snapshot
	for {
		snapshot, err = uc.Snapshot(ctx, created.WidgetID)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if snapshot.Appointments[0].Extras.IsNow {
			break
		}
		select {
		case <-deadline:
			t.Fatal("clock tick never refreshed the IsNow flag")
		case <-time.After(5 * time.Millisecond):
		}
	}

	// Snapshots are frozen at the moment they are taken: a tick swaps in
	// fresh copies and must never rewrite records already handed out.
	if created.Appointments[0].Extras.IsNow {
		t.Error("creation-time snapshot must keep the flags it was taken with")
	}
	if created.Appointments[0] == snapshot.Appointments[0] {
		t.Error("tick must replace appointment records, not mutate them in place")
	}

	if err := uc.CloseWidget(ctx, created.WidgetID); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}
