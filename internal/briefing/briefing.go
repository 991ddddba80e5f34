// Package briefing orchestrates the full route pipeline: fetch raw reports
// per stop, decode, classify, combine, aggregate, and narrate.
package briefing

import (
	"context"
	"log"
	"time"

	"github.com/HappyMeal-git/aviation-weather-briefing/internal/airports"
	"github.com/HappyMeal-git/aviation-weather-briefing/internal/classify"
	"github.com/HappyMeal-git/aviation-weather-briefing/internal/decode"
	"github.com/HappyMeal-git/aviation-weather-briefing/internal/observability"
	"github.com/HappyMeal-git/aviation-weather-briefing/internal/phrase"
	"github.com/HappyMeal-git/aviation-weather-briefing/internal/wx"
)

// Fetcher is the upstream report source. The production implementation is
// upstream.Client; tests substitute a stub.
type Fetcher interface {
	Metar(ctx context.Context, station string, hours int) ([]wx.RawReport, error)
	Taf(ctx context.Context, station string) ([]wx.RawReport, error)
	Pireps(ctx context.Context, station string, radiusNM, hours int) ([]wx.RawReport, error)
}

// Options bound the upstream fetch windows.
type Options struct {
	MetarLookbackHours int
	PirepRadiusNM      int
	PirepLookbackHours int
}

// DefaultOptions mirror the provider's usual briefing windows.
func DefaultOptions() Options {
	return Options{
		MetarLookbackHours: 2,
		PirepRadiusNM:      50,
		PirepLookbackHours: 12,
	}
}

// Locator resolves route distances. airports.Resolver implements it with
// the layered builtin/cache/provider lookup.
type Locator interface {
	RouteDistanceNM(ctx context.Context, stations []string) float64
}

// Service generates route briefings.
type Service struct {
	fetch   Fetcher
	opts    Options
	metrics *observability.Metrics
	locator Locator
}

// NewService builds a briefing service. metrics may be nil.
func NewService(fetch Fetcher, opts Options, metrics *observability.Metrics) *Service {
	return &Service{fetch: fetch, opts: opts, metrics: metrics}
}

// SetLocator installs a route-distance resolver. Without one the service
// falls back to the builtin coordinate table.
func (s *Service) SetLocator(l Locator) {
	s.locator = l
}

// PirepView is one decoded pilot report with its presentation text.
type PirepView struct {
	Raw        string              `json:"raw"`
	Decoded    *decode.PilotReport `json:"decoded"`
	Simplified string              `json:"simplified"`
}

// StationBriefing is everything gathered for one stop.
type StationBriefing struct {
	Station       string              `json:"station"`
	Observation   *decode.Observation `json:"observation,omitempty"`
	Simplified    string              `json:"simplified,omitempty"`
	Forecast      *decode.Forecast    `json:"forecast,omitempty"`
	ForecastText  string              `json:"forecast_text,omitempty"`
	Pireps        []PirepView         `json:"pireps,omitempty"`
	Condition     classify.Combined   `json:"condition"`
	PrimarySource string              `json:"primary_source"`
	Unavailable   bool                `json:"unavailable,omitempty"`
}

// RouteResult is the aggregate handed to the presentation boundary.
type RouteResult struct {
	Stations    []StationBriefing      `json:"stations"`
	Route       classify.RouteBriefing `json:"route"`
	Narrative   classify.Narrative     `json:"narrative"`
	DistanceNM  float64                `json:"distance_nm"`
	GeneratedAt time.Time              `json:"generated_at"`
}

// BriefStation gathers and classifies everything for one stop. Upstream
// absence never fails the call; a stop with no data from any source comes
// back marked unavailable.
func (s *Service) BriefStation(ctx context.Context, station string, refTime time.Time) StationBriefing {
	sb := StationBriefing{Station: station, PrimarySource: "METAR"}

	metars, err := s.fetch.Metar(ctx, station, s.opts.MetarLookbackHours)
	if err != nil {
		log.Printf("briefing: METAR fetch for %s: %v", station, err)
		if s.metrics != nil {
			s.metrics.UpstreamErrors.WithLabelValues("metar").Inc()
		}
	}
	tafs, err := s.fetch.Taf(ctx, station)
	if err != nil {
		log.Printf("briefing: TAF fetch for %s: %v", station, err)
		if s.metrics != nil {
			s.metrics.UpstreamErrors.WithLabelValues("taf").Inc()
		}
	}
	pireps, err := s.fetch.Pireps(ctx, station, s.opts.PirepRadiusNM, s.opts.PirepLookbackHours)
	if err != nil {
		log.Printf("briefing: PIREP fetch for %s: %v", station, err)
		if s.metrics != nil {
			s.metrics.UpstreamErrors.WithLabelValues("pirep").Inc()
		}
	}

	if len(metars) == 0 && len(tafs) == 0 && len(pireps) == 0 {
		sb.Unavailable = true
		sb.Simplified = phrase.DescribeObservation(nil)
		return sb
	}

	if len(metars) > 0 {
		d := decode.Decode(metars[0])
		sb.Observation = d.Observation
		sb.Simplified = phrase.DescribeObservation(d.Observation)
		s.countDecoded(wx.KindMETAR)
	}
	if len(tafs) > 0 {
		sb.Forecast = decode.DecodeTAF(tafs[0].Raw)
		sb.ForecastText = phrase.DescribeForecast(sb.Forecast)
		s.countDecoded(wx.KindTAF)
	}

	decodedPireps := make([]*decode.PilotReport, 0, len(pireps))
	for _, raw := range pireps {
		pr := decode.DecodePIREP(raw.Raw)
		decodedPireps = append(decodedPireps, pr)
		sb.Pireps = append(sb.Pireps, PirepView{
			Raw:        raw.Raw,
			Decoded:    pr,
			Simplified: phrase.DescribePilotReport(pr),
		})
		s.countDecoded(wx.KindPIREP)
	}

	surface := classify.Classify(sb.Observation)
	if s.metrics != nil {
		s.metrics.ReportsClassified.Inc()
	}
	sb.Condition = classify.Combine(surface, sb.Forecast, decodedPireps, refTime)
	sb.PrimarySource = sb.Condition.PrimarySource
	return sb
}

func (s *Service) countDecoded(kind wx.ReportKind) {
	if s.metrics != nil {
		s.metrics.ReportsDecoded.WithLabelValues(string(kind)).Inc()
	}
}

// BriefRoute generates the full briefing for an ordered list of stops.
// refTime is the planned departure; pass the current time when unknown.
func (s *Service) BriefRoute(ctx context.Context, stations []string, refTime time.Time) *RouteResult {
	start := time.Now()

	result := &RouteResult{GeneratedAt: start.UTC()}
	locations := make([]classify.Location, 0, len(stations))
	for _, station := range stations {
		sb := s.BriefStation(ctx, station, refTime)
		result.Stations = append(result.Stations, sb)
		locations = append(locations, classify.Location{
			Station:     station,
			Condition:   sb.Condition,
			Unavailable: sb.Unavailable,
		})
	}

	result.Route = classify.AggregateRoute(locations)
	result.Narrative = classify.Narrate(result.Route)
	if s.locator != nil {
		result.DistanceNM = s.locator.RouteDistanceNM(ctx, stations)
	} else {
		result.DistanceNM = airports.RouteDistanceNM(stations)
	}

	if s.metrics != nil {
		s.metrics.BriefingsGenerated.Inc()
		s.metrics.BriefingDuration.Observe(time.Since(start).Seconds())
	}
	return result
}
