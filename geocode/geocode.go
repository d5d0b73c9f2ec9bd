// Package geocode resolves an IANA timezone for a city/country pair through
// the Google Maps Geocoding and Time Zone APIs.
package geocode

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"kam-api/apperrors"
)

//go:generate mockgen -destination=mocks/mock_lookup.go -package=mocks kam-api/geocode TimezoneLookup

const DefaultBaseURL = "https://maps.googleapis.com/maps/api"

// TimezoneLookup is what address handling needs from this package.
type TimezoneLookup interface {
	GetTimezone(ctx context.Context, city, country string) (string, error)
}

type Client struct {
	apiKey  string
	baseURL string
	http    *http.Client
	now     func() time.Time
}

func NewClient(apiKey, baseURL string, timeout time.Duration) *Client {
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	return &Client{
		apiKey:  apiKey,
		baseURL: strings.TrimRight(baseURL, "/"),
		http:    &http.Client{Timeout: timeout},
		now:     time.Now,
	}
}

type geocodeResponse struct {
	Status  string `json:"status"`
	Results []struct {
		Geometry struct {
			Location struct {
				Lat float64 `json:"lat"`
				Lng float64 `json:"lng"`
			} `json:"location"`
		} `json:"geometry"`
	} `json:"results"`
}

type timezoneResponse struct {
	Status     string `json:"status"`
	TimeZoneID string `json:"timeZoneId"`
}

// GetTimezone geocodes "city, country" and returns the IANA zone at that
// location. Any transport or API failure is an Upstream error.
func (c *Client) GetTimezone(ctx context.Context, city, country string) (string, error) {
	var geo geocodeResponse
	q := url.Values{}
	q.Set("address", city+", "+country)
	q.Set("key", c.apiKey)
	if err := c.get(ctx, "/geocode/json", q, &geo); err != nil {
		return "", apperrors.Upstream(err, "geocode %s, %s", city, country)
	}
	if geo.Status != "OK" || len(geo.Results) == 0 {
		return "", apperrors.Upstream(nil, "geocoding failed: %s", geo.Status)
	}
	loc := geo.Results[0].Geometry.Location

	var tz timezoneResponse
	q = url.Values{}
	q.Set("location", strconv.FormatFloat(loc.Lat, 'f', -1, 64)+","+strconv.FormatFloat(loc.Lng, 'f', -1, 64))
	q.Set("timestamp", strconv.FormatInt(c.now().Unix(), 10))
	q.Set("key", c.apiKey)
	if err := c.get(ctx, "/timezone/json", q, &tz); err != nil {
		return "", apperrors.Upstream(err, "timezone lookup for %s, %s", city, country)
	}
	if tz.Status != "OK" || tz.TimeZoneID == "" {
		return "", apperrors.Upstream(nil, "timezone lookup failed: %s", tz.Status)
	}
	return tz.TimeZoneID, nil
}

func (c *Client) get(ctx context.Context, path string, q url.Values, out interface{}) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+path+"?"+q.Encode(), nil)
	if err != nil {
		return err
	}
	resp, err := c.http.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("unexpected status %d", resp.StatusCode)
	}
	return json.NewDecoder(resp.Body).Decode(out)
}
