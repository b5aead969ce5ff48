package repository

import (
	"context"

	"appointment-calendar/internal/model"
)

// DataSource delivers raw appointment records for a widget. Implementations
// must honor context cancellation: the widget cancels the previous request's
// context before issuing a new one.
type DataSource interface {
	// FetchRange returns appointment records overlapping the inclusive date
	// range of a day, week, or month view.
	FetchRange(ctx context.Context, opt RangeOptions) ([]model.RawAppointment, error)

	// FetchYear returns per-day aggregate counts for the year view.
	FetchYear(ctx context.Context, opt YearOptions) ([]model.RawYearCount, error)

	// Search returns a paginated page of records matching a text query,
	// together with the total match count.
	Search(ctx context.Context, opt SearchOptions) (SearchResult, error)
}

// SearchResult is one page of search matches.
type SearchResult struct {
	Rows  []model.RawAppointment
	Total int
}
