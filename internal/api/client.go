// Package api talks to the Al Adhan prayer times API. The CLI computes times
// locally; the API serves as an independent reference for `verify`.
package api

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"golang.org/x/time/rate"

	"github.com/smokyabdulrahman/prayer-times/internal/astro"
)

const (
	defaultBaseURL = "https://api.aladhan.com/v1"

	// dateLayout is how Al Adhan writes dates, in paths and responses.
	dateLayout = "02-01-2006"

	// Al Adhan asks clients to stay well under its per-IP limit.
	defaultRPS   = 2
	defaultBurst = 1
)

// Client communicates with the Al Adhan prayer times API.
type Client struct {
	httpClient *http.Client
	limiter    *rate.Limiter
	// BaseURL is the API base URL. Defaults to the Al Adhan API.
	// Exported for testing with httptest.
	BaseURL string
	// LatitudeAdjustment is the Al Adhan latitudeAdjustmentMethod sent
	// with coordinate requests. Zero leaves the API default.
	LatitudeAdjustment int
}

// NewClient creates a new API client with sensible defaults.
func NewClient() *Client {
	return &Client{
		httpClient: &http.Client{
			Timeout: 10 * time.Second,
		},
		limiter: rate.NewLimiter(rate.Limit(defaultRPS), defaultBurst),
		BaseURL: defaultBaseURL,
	}
}

// SetRateLimit replaces the request limiter. rps may be fractional for
// less than one request per second.
func (c *Client) SetRateLimit(rps float64, burst int) {
	c.limiter = rate.NewLimiter(rate.Limit(rps), burst)
}

// FetchByCoordinates fetches prayer times for the given date and coordinates.
// A negative method or school leaves the parameter to the API default.
func (c *Client) FetchByCoordinates(ctx context.Context, date time.Time, coords astro.Coordinates, method, school int) (*Response, error) {
	endpoint := fmt.Sprintf("%s/timings/%s", c.BaseURL, date.Format(dateLayout))

	params := c.coordinateParams(coords, method, school)
	setTimezone(params, date.Location())

	var resp Response
	if err := c.doRequest(ctx, endpoint, params, &resp); err != nil {
		return nil, err
	}
	if resp.Code != http.StatusOK {
		return nil, fmt.Errorf("API error: code=%d status=%s", resp.Code, resp.Status)
	}
	return &resp, nil
}

// FetchCalendarByCoordinates fetches every day of the month containing
// month. Timings are requested in month's zone unless it is Local.
func (c *Client) FetchCalendarByCoordinates(ctx context.Context, month time.Time, coords astro.Coordinates, method, school int) (*CalendarResponse, error) {
	endpoint := fmt.Sprintf("%s/calendar/%d/%d", c.BaseURL, month.Year(), int(month.Month()))

	params := c.coordinateParams(coords, method, school)
	setTimezone(params, month.Location())

	var resp CalendarResponse
	if err := c.doRequest(ctx, endpoint, params, &resp); err != nil {
		return nil, err
	}
	if resp.Code != http.StatusOK {
		return nil, fmt.Errorf("API error: code=%d status=%s", resp.Code, resp.Status)
	}
	return &resp, nil
}

func (c *Client) coordinateParams(coords astro.Coordinates, method, school int) url.Values {
	params := url.Values{}
	params.Set("latitude", strconv.FormatFloat(coords.Latitude, 'f', 6, 64))
	params.Set("longitude", strconv.FormatFloat(coords.Longitude, 'f', 6, 64))
	setMethodParams(params, method, school)
	if c.LatitudeAdjustment > 0 {
		params.Set("latitudeAdjustmentMethod", strconv.Itoa(c.LatitudeAdjustment))
	}
	return params
}

func setTimezone(params url.Values, loc *time.Location) {
	if tz := loc.String(); tz != "Local" {
		params.Set("timezonestring", tz)
	}
}

func setMethodParams(params url.Values, method, school int) {
	if method >= 0 {
		params.Set("method", strconv.Itoa(method))
	}
	if school >= 0 {
		params.Set("school", strconv.Itoa(school))
	}
}

func (c *Client) doRequest(ctx context.Context, endpoint string, params url.Values, out any) error {
	if err := c.limiter.Wait(ctx); err != nil {
		return fmt.Errorf("rate limit wait canceled: %w", err)
	}

	reqURL := fmt.Sprintf("%s?%s", endpoint, params.Encode())
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return fmt.Errorf("API request failed: %w", err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("API request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(resp.Body)
		return fmt.Errorf("API returned status %d: %s", resp.StatusCode, string(body))
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("failed to decode API response: %w", err)
	}
	return nil
}
