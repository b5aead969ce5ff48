package openholidays_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"appointment-calendar/pkg/openholidays"
)

func TestPublicHolidays(t *testing.T) {
	mux := http.NewServeMux()

	mux.HandleFunc("/PublicHolidays", func(w http.ResponseWriter, r *http.Request) {
		q := r.URL.Query()
		if q.Get("countryIsoCode") != "DE" || q.Get("languageIsoCode") != "DE" {
			t.Errorf("unexpected ISO codes: %v", q)
		}
		if q.Get("validFrom") != "2024-03-01" || q.Get("validTo") != "2024-03-31" {
			t.Errorf("unexpected range: %v", q)
		}
		json.NewEncoder(w).Encode([]map[string]any{
			{
				"startDate": "2024-03-29",
				"endDate":   "2024-03-29",
				"name": []map[string]string{
					{"language": "DE", "text": "Karfreitag"},
					{"language": "EN", "text": "Good Friday"},
				},
			},
			{
				// No localized names: entry is skipped.
				"startDate": "2024-03-31",
				"endDate":   "2024-03-31",
				"name":      []map[string]string{},
			},
		})
	})

	ts := httptest.NewServer(mux)
	defer ts.Close()

	client := openholidays.NewClient(ts.URL)
	from := time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC)
	to := time.Date(2024, 3, 31, 0, 0, 0, 0, time.UTC)

	holidays, err := client.PublicHolidays(context.Background(), "de", "de", from, to)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(holidays) != 1 {
		t.Fatalf("expected 1 holiday, got %d", len(holidays))
	}
	if holidays[0].Title != "Karfreitag" {
		t.Errorf("expected first localized name, got %q", holidays[0].Title)
	}
	if holidays[0].StartDate != "2024-03-29" || holidays[0].EndDate != "2024-03-29" {
		t.Errorf("unexpected dates: %+v", holidays[0])
	}
}

func TestSchoolHolidaysSubdivisionPrefix(t *testing.T) {
	var gotSubdivision string
	mux := http.NewServeMux()
	mux.HandleFunc("/SchoolHolidays", func(w http.ResponseWriter, r *http.Request) {
		gotSubdivision = r.URL.Query().Get("subdivisionCode")
		json.NewEncoder(w).Encode([]map[string]any{})
	})

	ts := httptest.NewServer(mux)
	defer ts.Close()

	client := openholidays.NewClient(ts.URL)
	from := time.Date(2024, 7, 1, 0, 0, 0, 0, time.UTC)
	to := time.Date(2024, 8, 31, 0, 0, 0, 0, time.UTC)

	if _, err := client.SchoolHolidays(context.Background(), "de", "be", from, to); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if gotSubdivision != "DE-BE" {
		t.Errorf("subdivisionCode = %q, want DE-BE", gotSubdivision)
	}
}

func TestPublicHolidaysServerError(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer ts.Close()

	client := openholidays.NewClient(ts.URL)
	now := time.Now()
	if _, err := client.PublicHolidays(context.Background(), "DE", "DE", now, now); err == nil {
		t.Fatalf("expected error for 500 response")
	}
}
