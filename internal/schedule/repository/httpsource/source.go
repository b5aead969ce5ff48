package httpsource

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"

	"appointment-calendar/internal/model"
	"appointment-calendar/internal/schedule/repository"
)

const dateFormat = "2006-01-02"

// Source fetches appointment records from a JSON endpoint via GET requests.
// Range fetches send fromDate/toDate/view, year fetches send year/view, and
// searches send limit/offset/search, matching the widget's wire contract.
type Source struct {
	endpoint   string
	httpClient *http.Client
}

// New creates an HTTP data source for the given endpoint URL.
func New(endpoint string) *Source {
	return &Source{
		endpoint:   endpoint,
		httpClient: &http.Client{},
	}
}

// FetchRange implements repository.DataSource.
func (s *Source) FetchRange(ctx context.Context, opt repository.RangeOptions) ([]model.RawAppointment, error) {
	params := url.Values{}
	params.Set("fromDate", opt.FromDate.Format(dateFormat))
	params.Set("toDate", opt.ToDate.Format(dateFormat))
	params.Set("view", string(opt.View))

	var appointments []model.RawAppointment
	if err := s.get(ctx, params, &appointments); err != nil {
		return nil, err
	}
	return appointments, nil
}

// FetchYear implements repository.DataSource.
func (s *Source) FetchYear(ctx context.Context, opt repository.YearOptions) ([]model.RawYearCount, error) {
	params := url.Values{}
	params.Set("year", strconv.Itoa(opt.Year))
	params.Set("view", "year")

	var counts []model.RawYearCount
	if err := s.get(ctx, params, &counts); err != nil {
		return nil, err
	}
	return counts, nil
}

// Search implements repository.DataSource.
func (s *Source) Search(ctx context.Context, opt repository.SearchOptions) (repository.SearchResult, error) {
	params := url.Values{}
	params.Set("limit", strconv.Itoa(opt.Limit))
	params.Set("offset", strconv.Itoa(opt.Offset))
	params.Set("search", opt.Search)

	var envelope struct {
		Rows  []model.RawAppointment `json:"rows"`
		Total int                    `json:"total"`
	}
	if err := s.get(ctx, params, &envelope); err != nil {
		return repository.SearchResult{}, err
	}
	return repository.SearchResult{Rows: envelope.Rows, Total: envelope.Total}, nil
}

func (s *Source) get(ctx context.Context, params url.Values, out any) error {
	endpoint := fmt.Sprintf("%s?%s", s.endpoint, params.Encode())

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return fmt.Errorf("failed to build appointments request: %w", err)
	}
	httpReq.Header.Set("Accept", "application/json")

	resp, err := s.httpClient.Do(httpReq)
	if err != nil {
		return fmt.Errorf("failed to call appointments API: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		raw, _ := io.ReadAll(resp.Body)
		return fmt.Errorf("appointments API error %d: %s", resp.StatusCode, string(raw))
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("failed to decode appointments response: %w", err)
	}
	return nil
}
