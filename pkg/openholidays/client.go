package openholidays

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"
)

// DefaultBaseURL is the public Open Holidays API endpoint.
const DefaultBaseURL = "https://openholidaysapi.org"

const dateFormat = "2006-01-02"

// Client is the HTTP wrapper for the Open Holidays API.
type Client struct {
	baseURL    string
	httpClient *http.Client
}

// NewClient creates a new Open Holidays client. An empty baseURL selects the
// public API.
func NewClient(baseURL string) *Client {
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	return &Client{
		baseURL:    baseURL,
		httpClient: &http.Client{Timeout: 15 * time.Second},
	}
}

// PublicHolidays fetches public holidays for a country and language within
// the inclusive date range.
func (c *Client) PublicHolidays(ctx context.Context, country, language string, validFrom, validTo time.Time) ([]Holiday, error) {
	params := url.Values{}
	params.Set("countryIsoCode", strings.ToUpper(country))
	params.Set("languageIsoCode", strings.ToUpper(language))
	params.Set("validFrom", validFrom.Format(dateFormat))
	params.Set("validTo", validTo.Format(dateFormat))

	return c.fetch(ctx, "/PublicHolidays", params)
}

// SchoolHolidays fetches school holidays for a country subdivision within the
// inclusive date range. A bare two-letter subdivision code is prefixed with
// the country code ("BE" -> "DE-BE").
func (c *Client) SchoolHolidays(ctx context.Context, country, federalState string, validFrom, validTo time.Time) ([]Holiday, error) {
	countryIso := strings.ToUpper(country)
	subdivision := strings.ToUpper(federalState)
	if len(subdivision) == 2 {
		subdivision = fmt.Sprintf("%s-%s", countryIso, subdivision)
	}

	params := url.Values{}
	params.Set("countryIsoCode", countryIso)
	params.Set("subdivisionCode", subdivision)
	params.Set("validFrom", validFrom.Format(dateFormat))
	params.Set("validTo", validTo.Format(dateFormat))

	return c.fetch(ctx, "/SchoolHolidays", params)
}

func (c *Client) fetch(ctx context.Context, path string, params url.Values) ([]Holiday, error) {
	endpoint := fmt.Sprintf("%s%s?%s", c.baseURL, path, params.Encode())

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to build holidays request: %w", err)
	}
	httpReq.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(httpReq)
	if err != nil {
		return nil, fmt.Errorf("failed to call holidays API: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		raw, _ := io.ReadAll(resp.Body)
		return nil, fmt.Errorf("holidays API error %d: %s", resp.StatusCode, string(raw))
	}

	var entries []apiHoliday
	if err := json.NewDecoder(resp.Body).Decode(&entries); err != nil {
		return nil, fmt.Errorf("failed to decode holidays response: %w", err)
	}

	holidays := make([]Holiday, 0, len(entries))
	for _, entry := range entries {
		if len(entry.Name) == 0 {
			continue
		}
		holidays = append(holidays, Holiday{
			StartDate: entry.StartDate,
			EndDate:   entry.EndDate,
			Title:     entry.Name[0].Text,
		})
	}
	return holidays, nil
}
