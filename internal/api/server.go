// Package api provides the REST surface for weather briefings.
package api

import (
	"encoding/json"
	"log"
	"net/http"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/HappyMeal-git/aviation-weather-briefing/internal/briefing"
	"github.com/HappyMeal-git/aviation-weather-briefing/internal/flightplan"
	"github.com/HappyMeal-git/aviation-weather-briefing/internal/notam"
	"github.com/HappyMeal-git/aviation-weather-briefing/internal/storage"
)

// Server exposes briefing, station weather, PIREP, and NOTAM endpoints.
type Server struct {
	svc     *briefing.Service
	db      *storage.DB
	addr    string
	version string
}

// NewServer wires the HTTP layer. db may be nil when no archive is
// configured; the briefing endpoints work without it.
func NewServer(svc *briefing.Service, db *storage.DB, addr, version string) *Server {
	return &Server{svc: svc, db: db, addr: addr, version: version}
}

// Run starts the HTTP server.
func (s *Server) Run() error {
	r := s.Router()
	log.Printf("api: listening at %s", s.addr)
	return http.ListenAndServe(s.addr, r)
}

// Router builds the chi router with the standard middleware stack.
func (s *Server) Router() chi.Router {
	r := chi.NewRouter()

	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)
	r.Use(middleware.RealIP)
	r.Use(middleware.Timeout(60 * time.Second))
	r.Use(corsMiddleware)

	r.Route("/api/v1", func(r chi.Router) {
		r.Get("/health", s.handleHealth)
		r.Get("/weather/{station}", s.handleStationWeather)
		r.Get("/pireps/{station}", s.handlePireps)
		r.Get("/notams/{station}", s.handleNotams)
		r.Post("/briefing", s.handleBriefing)
		r.Get("/briefings", s.handleRecentBriefings)
		r.Get("/analytics/{station}", s.handleConditionStats)
	})
	r.Handle("/metrics", promhttp.Handler())

	return r
}

// corsMiddleware adds CORS headers for browser access.
func corsMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Methods", "GET, POST, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Authorization, Content-Type")

		if r.Method == http.MethodOptions {
			w.WriteHeader(http.StatusOK)
			return
		}
		next.ServeHTTP(w, r)
	})
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{
		"status":  "ok",
		"version": s.version,
	})
}

// handleStationWeather returns the decoded, simplified, and classified
// current weather for one station.
func (s *Server) handleStationWeather(w http.ResponseWriter, r *http.Request) {
	station := strings.ToUpper(chi.URLParam(r, "station"))
	if len(station) != 4 {
		writeError(w, http.StatusBadRequest, "station must be a 4-letter ICAO identifier")
		return
	}

	sb := s.svc.BriefStation(r.Context(), station, time.Now().UTC())
	if sb.Unavailable {
		writeError(w, http.StatusNotFound, "no weather data available for "+station)
		return
	}
	writeJSON(w, http.StatusOK, sb)
}

// handlePireps lists decoded pilot reports near a station, newest first.
func (s *Server) handlePireps(w http.ResponseWriter, r *http.Request) {
	station := strings.ToUpper(chi.URLParam(r, "station"))
	if len(station) != 4 {
		writeError(w, http.StatusBadRequest, "station must be a 4-letter ICAO identifier")
		return
	}

	sb := s.svc.BriefStation(r.Context(), station, time.Now().UTC())
	writeJSON(w, http.StatusOK, map[string]interface{}{
		"station": station,
		"count":   len(sb.Pireps),
		"pireps":  sb.Pireps,
	})
}

// handleNotams returns categorised notices for a station.
func (s *Server) handleNotams(w http.ResponseWriter, r *http.Request) {
	station := strings.ToUpper(chi.URLParam(r, "station"))
	if len(station) != 4 {
		writeError(w, http.StatusBadRequest, "station must be a 4-letter ICAO identifier")
		return
	}

	notices := notam.Samples(station)
	writeJSON(w, http.StatusOK, map[string]interface{}{
		"station": station,
		"notams":  notices,
		"summary": notam.Rollup(notices),
	})
}

// BriefingRequest is the POST /briefing body. Either a station list or
// free-form flight-plan text; the list wins when both are present.
type BriefingRequest struct {
	Stations      []string `json:"stations,omitempty"`
	FlightPlan    string   `json:"flight_plan,omitempty"`
	DepartureTime string   `json:"departure_time,omitempty"` // RFC 3339
}

func (s *Server) handleBriefing(w http.ResponseWriter, r *http.Request) {
	var req BriefingRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON body")
		return
	}

	stations := req.Stations
	if len(stations) == 0 {
		stations = flightplan.Airports(req.FlightPlan)
	}
	if len(stations) == 0 {
		writeError(w, http.StatusBadRequest, "no airports found in request")
		return
	}
	if len(stations) > 10 {
		writeError(w, http.StatusBadRequest, "maximum 10 stations per briefing")
		return
	}

	refTime := time.Now().UTC()
	if req.DepartureTime != "" {
		parsed, err := time.Parse(time.RFC3339, req.DepartureTime)
		if err != nil {
			writeError(w, http.StatusBadRequest, "departure_time must be RFC 3339")
			return
		}
		refTime = parsed.UTC()
	}

	result := s.svc.BriefRoute(r.Context(), stations, refTime)

	if s.db != nil && s.db.PG != nil {
		route := strings.Join(stations, "-")
		_, err := s.db.PG.SaveBriefing(r.Context(), route,
			result.Route.Overall.String(), string(result.Narrative.RiskTier),
			result.Route.MaxScore, result.Route.MeanScore, result.DistanceNM, result)
		if err != nil {
			log.Printf("api: archive briefing for %s: %v", route, err)
		}
	}

	writeJSON(w, http.StatusOK, result)
}

// handleRecentBriefings lists archived briefings, optionally filtered by
// route.
func (s *Server) handleRecentBriefings(w http.ResponseWriter, r *http.Request) {
	if s.db == nil || s.db.PG == nil {
		writeError(w, http.StatusServiceUnavailable, "briefing archive not configured")
		return
	}

	route := strings.ToUpper(r.URL.Query().Get("route"))
	briefings, err := s.db.PG.RecentBriefings(r.Context(), route, 20)
	if err != nil {
		log.Printf("api: query briefings: %v", err)
		writeError(w, http.StatusInternalServerError, "archive query failed")
		return
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{
		"count":     len(briefings),
		"briefings": briefings,
	})
}

// handleConditionStats returns per-category observation counts for a station
// over the last week, from the analytics sink.
func (s *Server) handleConditionStats(w http.ResponseWriter, r *http.Request) {
	if s.db == nil || s.db.CH == nil {
		writeError(w, http.StatusServiceUnavailable, "condition analytics not configured")
		return
	}

	station := strings.ToUpper(chi.URLParam(r, "station"))
	if len(station) != 4 {
		writeError(w, http.StatusBadRequest, "station must be a 4-letter ICAO identifier")
		return
	}

	since := time.Now().UTC().Add(-7 * 24 * time.Hour)
	counts, err := s.db.CH.CategoryCounts(r.Context(), station, since)
	if err != nil {
		log.Printf("api: category counts for %s: %v", station, err)
		writeError(w, http.StatusInternalServerError, "analytics query failed")
		return
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{
		"station": station,
		"since":   since,
		"counts":  counts,
	})
}

// Helper functions.

func writeJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(data)
}

func writeError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, map[string]string{"error": message})
}
