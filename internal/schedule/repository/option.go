package repository

import (
	"context"
	"time"

	"appointment-calendar/internal/model"
	"appointment-calendar/pkg/daterange"
)

// RangeOptions holds the parameters for a date-range fetch.
type RangeOptions struct {
	FromDate time.Time // inclusive
	ToDate   time.Time // inclusive
	View     daterange.View
}

// YearOptions holds the parameters for a year-view aggregate fetch.
type YearOptions struct {
	Year int
}

// SearchOptions holds the parameters for a paginated text search.
type SearchOptions struct {
	Search string
	Limit  int
	Offset int
}

// Funcs adapts caller-supplied functions to the DataSource interface, for
// embedders that want to plug in their own fetch logic instead of a URL.
type Funcs struct {
	RangeFunc  func(ctx context.Context, opt RangeOptions) ([]model.RawAppointment, error)
	YearFunc   func(ctx context.Context, opt YearOptions) ([]model.RawYearCount, error)
	SearchFunc func(ctx context.Context, opt SearchOptions) (SearchResult, error)
}

// FetchRange implements DataSource.
func (f Funcs) FetchRange(ctx context.Context, opt RangeOptions) ([]model.RawAppointment, error) {
	if f.RangeFunc == nil {
		return nil, nil
	}
	return f.RangeFunc(ctx, opt)
}

// FetchYear implements DataSource.
func (f Funcs) FetchYear(ctx context.Context, opt YearOptions) ([]model.RawYearCount, error) {
	if f.YearFunc == nil {
		return nil, nil
	}
	return f.YearFunc(ctx, opt)
}

// Search implements DataSource.
func (f Funcs) Search(ctx context.Context, opt SearchOptions) (SearchResult, error) {
	if f.SearchFunc == nil {
		return SearchResult{}, nil
	}
	return f.SearchFunc(ctx, opt)
}
