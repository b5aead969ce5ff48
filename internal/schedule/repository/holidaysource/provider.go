package holidaysource

import (
	"context"
	"sort"
	"time"

	"appointment-calendar/internal/model"
	"appointment-calendar/pkg/openholidays"
)

const dateFormat = "2006-01-02"

// Provider serves public holidays, and optionally school holidays for one
// federal state, from the Open Holidays API.
type Provider struct {
	client       *openholidays.Client
	country      string
	language     string
	federalState string
	location     *time.Location
}

// New creates a holiday provider. federalState may be empty to skip school
// holidays.
func New(client *openholidays.Client, country, language, federalState string, location *time.Location) *Provider {
	return &Provider{
		client:       client,
		country:      country,
		language:     language,
		federalState: federalState,
		location:     location,
	}
}

// Holidays returns the public and school holidays overlapping the range,
// sorted by start date.
func (p *Provider) Holidays(ctx context.Context, from, to time.Time) ([]model.Holiday, error) {
	public, err := p.client.PublicHolidays(ctx, p.country, p.language, from, to)
	if err != nil {
		return nil, err
	}
	holidays := p.convert(public)

	if p.federalState != "" {
		school, err := p.client.SchoolHolidays(ctx, p.country, p.federalState, from, to)
		if err != nil {
			return nil, err
		}
		holidays = append(holidays, p.convert(school)...)
	}

	sort.SliceStable(holidays, func(i, j int) bool {
		return holidays[i].StartDate.Before(holidays[j].StartDate)
	})
	return holidays, nil
}

// convert maps API entries to model holidays, dropping malformed dates.
func (p *Provider) convert(entries []openholidays.Holiday) []model.Holiday {
	holidays := make([]model.Holiday, 0, len(entries))
	for _, entry := range entries {
		start, err := time.ParseInLocation(dateFormat, entry.StartDate, p.location)
		if err != nil {
			continue
		}
		end, err := time.ParseInLocation(dateFormat, entry.EndDate, p.location)
		if err != nil {
			continue
		}
		holidays = append(holidays, model.Holiday{
			StartDate: start,
			EndDate:   end,
			Title:     entry.Title,
		})
	}
	return holidays
}
