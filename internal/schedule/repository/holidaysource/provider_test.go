package holidaysource_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"appointment-calendar/internal/schedule/repository/holidaysource"
	"appointment-calendar/pkg/openholidays"
)

func TestProviderHolidays(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/PublicHolidays":
			w.Write([]byte(`[
				{"startDate":"2024-05-01","endDate":"2024-05-01","name":[{"language":"EN","text":"Labour Day"}]},
				{"startDate":"broken","endDate":"2024-05-02","name":[{"language":"EN","text":"Malformed"}]}
			]`))
		case "/SchoolHolidays":
			if got := r.URL.Query().Get("subdivisionCode"); got != "DE-BE" {
				t.Errorf("subdivision = %q, want DE-BE", got)
			}
			w.Write([]byte(`[
				{"startDate":"2024-04-02","endDate":"2024-04-12","name":[{"language":"EN","text":"Spring Break"}]}
			]`))
		default:
			http.NotFound(w, r)
		}
	}))
	defer ts.Close()

	loc, _ := time.LoadLocation("Europe/Berlin")
	provider := holidaysource.New(openholidays.NewClient(ts.URL), "DE", "EN", "BE", loc)

	from := time.Date(2024, 4, 1, 0, 0, 0, 0, loc)
	to := time.Date(2024, 5, 31, 0, 0, 0, 0, loc)
	holidays, err := provider.Holidays(context.Background(), from, to)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if len(holidays) != 2 {
		t.Fatalf("expected 2 holidays (malformed dropped), got %d: %+v", len(holidays), holidays)
	}
	if holidays[0].Title != "Spring Break" {
		t.Errorf("holidays must sort by start date, got %q first", holidays[0].Title)
	}
	if holidays[1].Title != "Labour Day" {
		t.Errorf("unexpected second holiday: %q", holidays[1].Title)
	}
}

func TestProviderSkipsSchoolWithoutState(t *testing.T) {
	var schoolCalled bool
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == "/SchoolHolidays" {
			schoolCalled = true
		}
		w.Write([]byte(`[]`))
	}))
	defer ts.Close()

	loc, _ := time.LoadLocation("Europe/Berlin")
	provider := holidaysource.New(openholidays.NewClient(ts.URL), "DE", "EN", "", loc)

	if _, err := provider.Holidays(context.Background(), time.Now(), time.Now()); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if schoolCalled {
		t.Error("school holidays must not be fetched without a federal state")
	}
}
