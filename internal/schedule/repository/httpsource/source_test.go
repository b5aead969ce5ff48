package httpsource_test

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"appointment-calendar/internal/schedule/repository"
	"appointment-calendar/internal/schedule/repository/httpsource"
	"appointment-calendar/pkg/daterange"
)

func TestSource(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		q := r.URL.Query()
		switch q.Get("view") {
		case "month":
			if q.Get("fromDate") != "2024-02-26" || q.Get("toDate") != "2024-03-31" {
				t.Errorf("unexpected range params: %v", q)
			}
			json.NewEncoder(w).Encode([]map[string]any{
				{"start": "2024-03-01 09:00", "end": "2024-03-01 10:00", "title": "Standup"},
			})
		case "year":
			if q.Get("year") != "2024" {
				t.Errorf("unexpected year param: %v", q)
			}
			json.NewEncoder(w).Encode([]map[string]any{
				{"date": "2024-03-01", "total": 3},
			})
		default:
			if q.Get("search") != "review" || q.Get("limit") != "10" || q.Get("offset") != "0" {
				t.Errorf("unexpected search params: %v", q)
			}
			json.NewEncoder(w).Encode(map[string]any{
				"rows":  []map[string]any{{"start": "2024-06-01 09:00", "end": "2024-06-01 10:00", "title": "Review"}},
				"total": 42,
			})
		}
	}))
	defer ts.Close()

	source := httpsource.New(ts.URL)
	ctx := context.Background()

	t.Run("FetchRange", func(t *testing.T) {
		rows, err := source.FetchRange(ctx, repository.RangeOptions{
			FromDate: time.Date(2024, 2, 26, 0, 0, 0, 0, time.UTC),
			ToDate:   time.Date(2024, 3, 31, 0, 0, 0, 0, time.UTC),
			View:     daterange.ViewMonth,
		})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if len(rows) != 1 || rows[0].Title != "Standup" {
			t.Errorf("unexpected rows: %+v", rows)
		}
	})

	t.Run("FetchYear", func(t *testing.T) {
		counts, err := source.FetchYear(ctx, repository.YearOptions{Year: 2024})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if len(counts) != 1 || counts[0].Date != "2024-03-01" {
			t.Errorf("unexpected counts: %+v", counts)
		}
	})

	t.Run("Search", func(t *testing.T) {
		result, err := source.Search(ctx, repository.SearchOptions{Search: "review", Limit: 10})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if result.Total != 42 || len(result.Rows) != 1 {
			t.Errorf("unexpected result: %+v", result)
		}
	})
}

func TestSourceCancelledContext(t *testing.T) {
	release := make(chan struct{})
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		<-release
	}))
	defer ts.Close()
	defer close(release)

	source := httpsource.New(ts.URL)
	ctx, cancel := context.WithCancel(context.Background())
	go cancel()

	_, err := source.FetchRange(ctx, repository.RangeOptions{
		FromDate: time.Now(),
		ToDate:   time.Now(),
		View:     daterange.ViewDay,
	})
	if err == nil {
		t.Fatalf("expected error from cancelled context")
	}
	if !errors.Is(err, context.Canceled) {
		t.Errorf("expected context.Canceled in chain, got %v", err)
	}
}
