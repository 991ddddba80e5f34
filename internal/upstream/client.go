// Package upstream fetches raw reports from the aviationweather.gov data
// API. Empty responses are "no data", never errors; only transport and
// decode failures surface as errors.
package upstream

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/sony/gobreaker"

	"github.com/HappyMeal-git/aviation-weather-briefing/internal/wx"
)

const defaultBaseURL = "https://aviationweather.gov/api/data"

// Client talks to the aviationweather.gov data API. All calls run through a
// shared circuit breaker so a provider outage fails fast instead of tying up
// request handlers.
type Client struct {
	baseURL string
	http    *http.Client
	breaker *gobreaker.CircuitBreaker
}

// Option configures a Client.
type Option func(*Client)

// WithBaseURL overrides the provider endpoint, used by tests.
func WithBaseURL(u string) Option {
	return func(c *Client) { c.baseURL = u }
}

// WithHTTPClient overrides the HTTP client.
func WithHTTPClient(h *http.Client) Option {
	return func(c *Client) { c.http = h }
}

// NewClient builds a provider client with a 10 second request timeout and a
// circuit breaker that opens after repeated consecutive failures.
func NewClient(opts ...Option) *Client {
	c := &Client{
		baseURL: defaultBaseURL,
		http:    &http.Client{Timeout: 10 * time.Second},
		breaker: gobreaker.NewCircuitBreaker(gobreaker.Settings{
			Name:        "aviationweather",
			MaxRequests: 3,
			Interval:    time.Minute,
			Timeout:     2 * time.Minute,
		}),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// FlexTime decodes provider timestamp fields that arrive either as unix
// seconds or as an ISO string. The zero value means unknown.
type FlexTime struct {
	time.Time
}

func (t *FlexTime) UnmarshalJSON(data []byte) error {
	// Try as unix seconds first.
	var secs int64
	if err := json.Unmarshal(data, &secs); err == nil {
		t.Time = time.Unix(secs, 0).UTC()
		return nil
	}

	var s string
	if err := json.Unmarshal(data, &s); err == nil {
		if s == "" {
			t.Time = time.Time{}
			return nil
		}
		for _, layout := range []string{time.RFC3339, "2006-01-02T15:04:05Z", "2006-01-02 15:04:05"} {
			if parsed, err := time.Parse(layout, s); err == nil {
				t.Time = parsed.UTC()
				return nil
			}
		}
	}

	// Unparseable timestamps degrade to unknown.
	t.Time = time.Time{}
	return nil
}

// metarRecord is the provider's METAR JSON envelope, reduced to the fields
// the briefing pipeline reads.
type metarRecord struct {
	RawOb      string   `json:"rawOb"`
	ICAOID     string   `json:"icaoId"`
	ObsTime    FlexTime `json:"obsTime"`
	ReportTime FlexTime `json:"reportTime"`
	FltCat     string   `json:"fltCat"`
}

type tafRecord struct {
	RawTAF    string   `json:"rawTAF"`
	ICAOID    string   `json:"icaoId"`
	IssueTime FlexTime `json:"issueTime"`
}

type pirepRecord struct {
	RawOb    string   `json:"rawOb"`
	ICAOID   string   `json:"icaoId"`
	ObsTime  FlexTime `json:"obsTime"`
	RcptTime FlexTime `json:"rcptTime"`
}

type stationRecord struct {
	ICAOID string  `json:"icaoId"`
	Lat    float64 `json:"lat"`
	Lon    float64 `json:"lon"`
}

// get performs one provider request through the circuit breaker and decodes
// the JSON body into out.
func (c *Client) get(ctx context.Context, endpoint string, params url.Values, out interface{}) error {
	u := fmt.Sprintf("%s/%s?%s", c.baseURL, endpoint, params.Encode())

	body, err := c.breaker.Execute(func() (interface{}, error) {
		req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
		if err != nil {
			return nil, err
		}
		req.Header.Set("User-Agent", "aviation-weather-briefing/1.0")

		resp, err := c.http.Do(req)
		if err != nil {
			return nil, err
		}
		defer resp.Body.Close()

		if resp.StatusCode != http.StatusOK {
			return nil, fmt.Errorf("unexpected status %d", resp.StatusCode)
		}
		return io.ReadAll(resp.Body)
	})
	if err != nil {
		return fmt.Errorf("fetch %s: %w", endpoint, err)
	}

	data := body.([]byte)
	if len(data) == 0 {
		return nil
	}
	if err := json.Unmarshal(data, out); err != nil {
		return fmt.Errorf("decode %s response: %w", endpoint, err)
	}
	return nil
}

// Metar fetches recent surface observations for a station, newest first.
func (c *Client) Metar(ctx context.Context, station string, hours int) ([]wx.RawReport, error) {
	params := url.Values{}
	params.Set("ids", station)
	params.Set("format", "json")
	params.Set("hours", strconv.Itoa(hours))

	var records []metarRecord
	if err := c.get(ctx, "metar", params, &records); err != nil {
		return nil, err
	}

	reports := make([]wx.RawReport, 0, len(records))
	for _, rec := range records {
		if rec.RawOb == "" {
			continue
		}
		r := wx.RawReport{
			Station:        rec.ICAOID,
			Kind:           wx.KindMETAR,
			Raw:            rec.RawOb,
			FlightCategory: rec.FltCat,
		}
		if !rec.ObsTime.IsZero() {
			t := rec.ObsTime.Time
			r.ObservedAt = &t
		}
		if !rec.ReportTime.IsZero() {
			t := rec.ReportTime.Time
			r.ReceivedAt = &t
		}
		reports = append(reports, r)
	}
	wx.SortNewestFirst(reports)
	return reports, nil
}

// Taf fetches the current terminal forecast for a station.
func (c *Client) Taf(ctx context.Context, station string) ([]wx.RawReport, error) {
	params := url.Values{}
	params.Set("ids", station)
	params.Set("format", "json")

	var records []tafRecord
	if err := c.get(ctx, "taf", params, &records); err != nil {
		return nil, err
	}

	reports := make([]wx.RawReport, 0, len(records))
	for _, rec := range records {
		if rec.RawTAF == "" {
			continue
		}
		r := wx.RawReport{Station: rec.ICAOID, Kind: wx.KindTAF, Raw: rec.RawTAF}
		if !rec.IssueTime.IsZero() {
			t := rec.IssueTime.Time
			r.ObservedAt = &t
		}
		reports = append(reports, r)
	}
	return reports, nil
}

// StationInfo fetches station metadata and returns its coordinates. ok is
// false when the provider does not know the station.
func (c *Client) StationInfo(ctx context.Context, station string) (lat, lon float64, ok bool, err error) {
	params := url.Values{}
	params.Set("ids", station)
	params.Set("format", "json")

	var records []stationRecord
	if err := c.get(ctx, "stationinfo", params, &records); err != nil {
		return 0, 0, false, err
	}
	if len(records) == 0 {
		return 0, 0, false, nil
	}
	return records[0].Lat, records[0].Lon, true, nil
}

// Pireps fetches pilot reports near a station. Pilot reports are voluntary
// and frequently absent; an empty slice is the normal case.
func (c *Client) Pireps(ctx context.Context, station string, radiusNM, hours int) ([]wx.RawReport, error) {
	params := url.Values{}
	params.Set("ids", station)
	params.Set("format", "json")
	params.Set("radius", strconv.Itoa(radiusNM))
	params.Set("hours", strconv.Itoa(hours))

	var records []pirepRecord
	if err := c.get(ctx, "pirep", params, &records); err != nil {
		return nil, err
	}

	reports := make([]wx.RawReport, 0, len(records))
	for _, rec := range records {
		if rec.RawOb == "" {
			continue
		}
		r := wx.RawReport{Station: rec.ICAOID, Kind: wx.KindPIREP, Raw: rec.RawOb}
		if !rec.ObsTime.IsZero() {
			t := rec.ObsTime.Time
			r.ObservedAt = &t
		}
		if !rec.RcptTime.IsZero() {
			t := rec.RcptTime.Time
			r.ReceivedAt = &t
		}
		reports = append(reports, r)
	}
	wx.SortNewestFirst(reports)
	return reports, nil
}
