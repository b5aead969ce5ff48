package usecase

import (
	"testing"
	"time"

	"appointment-calendar/internal/schedule/repository"
	"appointment-calendar/pkg/daterange"
	pkgLog "appointment-calendar/pkg/log"
)

// testNow is the pinned wall clock for the deterministic tests:
// Friday 2024-03-15 12:00 in Berlin, ISO week 11.
func testNow(t *testing.T) time.Time {
	t.Helper()
	return time.Date(2024, 3, 15, 12, 0, 0, 0, testLocation(t))
}

func testLocation(t *testing.T) *time.Location {
	t.Helper()
	loc, err := time.LoadLocation("Europe/Berlin")
	if err != nil {
		t.Fatalf("load location: %v", err)
	}
	return loc
}

func newTestCalc(t *testing.T) *daterange.Calculator {
	t.Helper()
	calc, err := daterange.NewCalculator("Europe/Berlin", false)
	if err != nil {
		t.Fatalf("new calculator: %v", err)
	}
	return calc
}

// newTestUseCase builds a usecase with a pinned clock and the given source.
func newTestUseCase(t *testing.T, source repository.DataSource) *implUseCase {
	t.Helper()
	uc := New(pkgLog.NewNop(), newTestCalc(t), source, nil, Settings{
		DefaultView: daterange.ViewMonth,
		SearchLimit: 10,
	})
	uc.now = func() time.Time { return testNow(t) }
	return uc
}

func date(t *testing.T, year int, month time.Month, day int) time.Time {
	t.Helper()
	return time.Date(year, month, day, 0, 0, 0, 0, testLocation(t))
}
