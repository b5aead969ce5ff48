package gcalsource

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"time"

	"golang.org/x/oauth2"
	"golang.org/x/oauth2/google"
	"google.golang.org/api/calendar/v3"
	"google.golang.org/api/option"

	"appointment-calendar/internal/model"
	"appointment-calendar/internal/schedule/repository"
)

const dateFormat = "2006-01-02"

// Source serves appointment records from a Google Calendar. It implements
// repository.DataSource so a widget can be backed by Google Calendar instead
// of a plain JSON endpoint.
type Source struct {
	service    *calendar.Service
	calendarID string
}

// NewFromCredentialsFile creates a Source from a credentials JSON file path.
func NewFromCredentialsFile(ctx context.Context, credentialsPath, calendarID string) (*Source, error) {
	data, err := os.ReadFile(credentialsPath)
	if err != nil {
		return nil, fmt.Errorf("failed to read credentials file: %w", err)
	}
	return NewFromCredentialsJSON(ctx, data, calendarID)
}

// NewFromCredentialsJSON creates a Source from raw credentials JSON. Service
// Account credentials are tried first, then OAuth2 installed-app credentials
// with a token.json next to the binary.
func NewFromCredentialsJSON(ctx context.Context, credentialsJSON []byte, calendarID string) (*Source, error) {
	if calendarID == "" {
		calendarID = "primary"
	}

	config, err := google.JWTConfigFromJSON(credentialsJSON, calendar.CalendarReadonlyScope)
	if err == nil {
		svc, svcErr := calendar.NewService(ctx, option.WithTokenSource(config.TokenSource(ctx)))
		if svcErr != nil {
			return nil, fmt.Errorf("failed to create calendar service: %w", svcErr)
		}
		return &Source{service: svc, calendarID: calendarID}, nil
	}

	var oauthCreds struct {
		Installed struct {
			ClientID     string `json:"client_id"`
			ClientSecret string `json:"client_secret"`
		} `json:"installed"`
	}
	if jsonErr := json.Unmarshal(credentialsJSON, &oauthCreds); jsonErr != nil {
		return nil, fmt.Errorf("unsupported credentials format: %w", err)
	}

	oauthConfig := &oauth2.Config{
		ClientID:     oauthCreds.Installed.ClientID,
		ClientSecret: oauthCreds.Installed.ClientSecret,
		Scopes:       []string{calendar.CalendarReadonlyScope},
		Endpoint:     google.Endpoint,
	}

	tokenData, tokenErr := os.ReadFile("token.json")
	if tokenErr != nil {
		return nil, fmt.Errorf("google credentials are OAuth Desktop type but no token.json found: use a Service Account instead")
	}

	var tok oauth2.Token
	if jsonErr := json.Unmarshal(tokenData, &tok); jsonErr != nil {
		return nil, fmt.Errorf("failed to parse token.json: %w", jsonErr)
	}

	svc, svcErr := calendar.NewService(ctx, option.WithTokenSource(oauthConfig.TokenSource(ctx, &tok)))
	if svcErr != nil {
		return nil, fmt.Errorf("failed to create calendar service from OAuth token: %w", svcErr)
	}
	return &Source{service: svc, calendarID: calendarID}, nil
}

// FetchRange implements repository.DataSource.
func (s *Source) FetchRange(ctx context.Context, opt repository.RangeOptions) ([]model.RawAppointment, error) {
	events, err := s.listEvents(ctx, opt.FromDate, opt.ToDate.AddDate(0, 0, 1), "")
	if err != nil {
		return nil, err
	}

	appointments := make([]model.RawAppointment, 0, len(events))
	for _, event := range events {
		appointments = append(appointments, eventToRawAppointment(event))
	}
	return appointments, nil
}

// FetchYear implements repository.DataSource. Events are bucketed into
// per-day counts by their start date.
func (s *Source) FetchYear(ctx context.Context, opt repository.YearOptions) ([]model.RawYearCount, error) {
	from := time.Date(opt.Year, time.January, 1, 0, 0, 0, 0, time.UTC)
	to := from.AddDate(1, 0, 0)

	events, err := s.listEvents(ctx, from, to, "")
	if err != nil {
		return nil, err
	}

	totals := make(map[string]int)
	for _, event := range events {
		day := eventStartDate(event)
		if day == "" {
			continue
		}
		totals[day]++
	}

	counts := make([]model.RawYearCount, 0, len(totals))
	for day, total := range totals {
		counts = append(counts, model.RawYearCount{
			Date:  day,
			Total: json.Number(fmt.Sprintf("%d", total)),
		})
	}
	return counts, nil
}

// Search implements repository.DataSource using the events text filter. The
// API paginates by token, so the offset is applied by slicing the full match
// list.
func (s *Source) Search(ctx context.Context, opt repository.SearchOptions) (repository.SearchResult, error) {
	events, err := s.listEvents(ctx, time.Time{}, time.Time{}, opt.Search)
	if err != nil {
		return repository.SearchResult{}, err
	}

	total := len(events)
	if opt.Offset >= total {
		return repository.SearchResult{Total: total}, nil
	}

	end := opt.Offset + opt.Limit
	if opt.Limit <= 0 || end > total {
		end = total
	}

	rows := make([]model.RawAppointment, 0, end-opt.Offset)
	for _, event := range events[opt.Offset:end] {
		rows = append(rows, eventToRawAppointment(event))
	}
	return repository.SearchResult{Rows: rows, Total: total}, nil
}

func (s *Source) listEvents(ctx context.Context, from, to time.Time, query string) ([]*calendar.Event, error) {
	var events []*calendar.Event
	pageToken := ""

	for {
		call := s.service.Events.List(s.calendarID).
			SingleEvents(true).
			OrderBy("startTime").
			MaxResults(250).
			Context(ctx)
		if !from.IsZero() {
			call = call.TimeMin(from.Format(time.RFC3339))
		}
		if !to.IsZero() {
			call = call.TimeMax(to.Format(time.RFC3339))
		}
		if query != "" {
			call = call.Q(query)
		}
		if pageToken != "" {
			call = call.PageToken(pageToken)
		}

		page, err := call.Do()
		if err != nil {
			return nil, fmt.Errorf("failed to list calendar events: %w", err)
		}
		events = append(events, page.Items...)

		pageToken = page.NextPageToken
		if pageToken == "" {
			return events, nil
		}
	}
}

func eventToRawAppointment(event *calendar.Event) model.RawAppointment {
	raw := model.RawAppointment{
		Title:       event.Summary,
		Description: event.Description,
		Editable:    event.Status != "cancelled",
	}
	if event.Location != "" {
		raw.Location = model.StringList{event.Location}
	}
	if event.HtmlLink != "" {
		link, _ := json.Marshal(event.HtmlLink)
		raw.Link = link
	}

	if event.Start != nil && event.Start.Date != "" {
		raw.AllDay = true
		raw.Start = event.Start.Date
		// The API's all-day end date is exclusive; pull it back one day.
		if event.End != nil && event.End.Date != "" {
			if end, err := time.Parse(dateFormat, event.End.Date); err == nil {
				raw.End = end.AddDate(0, 0, -1).Format(dateFormat)
			} else {
				raw.End = event.End.Date
			}
		} else {
			raw.End = event.Start.Date
		}
		return raw
	}

	if event.Start != nil {
		raw.Start = event.Start.DateTime
	}
	if event.End != nil {
		raw.End = event.End.DateTime
	}
	return raw
}

func eventStartDate(event *calendar.Event) string {
	if event.Start == nil {
		return ""
	}
	if event.Start.Date != "" {
		return event.Start.Date
	}
	if t, err := time.Parse(time.RFC3339, event.Start.DateTime); err == nil {
		return t.Format(dateFormat)
	}
	return ""
}
