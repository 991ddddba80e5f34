// Package notam categorises and summarises Notices to Air Missions.
package notam

import (
	"fmt"
	"regexp"
	"strings"
)

// Category groups a notice by the facility it affects.
type Category string

const (
	CategoryRunway          Category = "RUNWAY"
	CategoryNavigation      Category = "NAVIGATION"
	CategoryLighting        Category = "LIGHTING"
	CategoryAirspace        Category = "AIRSPACE"
	CategoryConstruction    Category = "CONSTRUCTION"
	CategoryWeatherServices Category = "WEATHER_SERVICES"
	CategoryOther           Category = "OTHER"
)

// Severity is the operational-impact level of a notice.
type Severity string

const (
	SeverityHigh   Severity = "HIGH"
	SeverityMedium Severity = "MEDIUM"
	SeverityLow    Severity = "LOW"
)

// Notice is one processed NOTAM.
type Notice struct {
	ID                string   `json:"id"`
	Raw               string   `json:"raw"`
	Station           string   `json:"station,omitempty"`
	Start             string   `json:"start,omitempty"`
	End               string   `json:"end,omitempty"`
	Category          Category `json:"category"`
	Severity          Severity `json:"severity"`
	Summary           string   `json:"summary"`
	AffectsOperations bool     `json:"affects_operations"`
}

var runwayRe = regexp.MustCompile(`RWY\s*(\d+[LRC]?)`)

// Process fills in the derived fields of a notice from its raw text.
func Process(id, station, raw string) Notice {
	return Notice{
		ID:                id,
		Raw:               raw,
		Station:           station,
		Category:          Categorize(raw),
		Severity:          AssessSeverity(raw),
		Summary:           Summarize(raw),
		AffectsOperations: AffectsOperations(raw),
	}
}

func containsAny(text string, keywords ...string) bool {
	for _, kw := range keywords {
		if strings.Contains(text, kw) {
			return true
		}
	}
	return false
}

// Categorize assigns a notice to a facility category by keyword. The first
// matching category wins, checked from most to least specific.
func Categorize(raw string) Category {
	text := strings.ToUpper(raw)
	switch {
	case containsAny(text, "RWY", "RUNWAY", "CLSD", "CLOSED"):
		return CategoryRunway
	case containsAny(text, "ILS", "VOR", "DME", "TACAN", "GPS", "RNAV"):
		return CategoryNavigation
	case containsAny(text, "LGT", "LIGHT", "PAPI", "VASI"):
		return CategoryLighting
	case containsAny(text, "AIRSPACE", "TMA", "CTR", "RESTRICTED"):
		return CategoryAirspace
	case containsAny(text, "CONSTRUCTION", "MAINT", "WORK", "CRANE"):
		return CategoryConstruction
	case containsAny(text, "ATIS", "AWOS", "ASOS", "WX"):
		return CategoryWeatherServices
	default:
		return CategoryOther
	}
}

// AssessSeverity estimates operational impact. Unknown content defaults to
// medium rather than low.
func AssessSeverity(raw string) Severity {
	text := strings.ToUpper(raw)
	switch {
	case containsAny(text, "CLSD", "CLOSED", "U/S", "UNSERVICEABLE"):
		return SeverityHigh
	case containsAny(text, "CONSTRUCTION", "CRANE", "RESTRICTED"):
		return SeverityMedium
	case containsAny(text, "ATIS", "FREQ", "INFO"):
		return SeverityLow
	default:
		return SeverityMedium
	}
}

// AffectsOperations reports whether a notice is likely to change how a
// flight is planned or flown.
func AffectsOperations(raw string) bool {
	text := strings.ToUpper(raw)
	return containsAny(text, "CLSD", "CLOSED", "U/S", "UNSERVICEABLE", "RWY", "ILS", "CRANE")
}

// Summarize produces a one-line reading of the notice.
func Summarize(raw string) string {
	text := strings.ToUpper(raw)

	if strings.Contains(text, "RWY") && strings.Contains(text, "CLSD") {
		runway := "Unknown"
		if m := runwayRe.FindStringSubmatch(text); m != nil {
			runway = m[1]
		}
		return fmt.Sprintf("Runway %s is closed", runway)
	}
	if strings.Contains(text, "ILS") && containsAny(text, "U/S", "UNSERVICEABLE") {
		return "ILS approach system unavailable"
	}
	if containsAny(text, "CONSTRUCTION", "WORK") {
		return "Construction/maintenance work in progress"
	}
	if strings.Contains(text, "CRANE") {
		return "Crane operation affecting airspace"
	}
	if strings.Contains(text, "ATIS") {
		return "ATIS frequency or service change"
	}

	if len(raw) > 100 {
		return "Operational notice - see full text for details"
	}
	if len(raw) > 80 {
		return raw[:80] + "..."
	}
	return raw
}

// RollupSummary aggregates per-station notices for a briefing header.
type RollupSummary struct {
	Total             int              `json:"total"`
	HighSeverity      int              `json:"high_severity"`
	OperationalImpact int              `json:"operational_impact"`
	Categories        map[Category]int `json:"categories,omitempty"`
	Text              string           `json:"text"`
}

// Rollup computes the per-station summary counts and headline text.
func Rollup(notices []Notice) RollupSummary {
	out := RollupSummary{Total: len(notices)}
	if len(notices) == 0 {
		out.Text = "No active NOTAMs"
		return out
	}

	out.Categories = make(map[Category]int)
	for _, n := range notices {
		out.Categories[n.Category]++
		if n.Severity == SeverityHigh {
			out.HighSeverity++
		}
		if n.AffectsOperations {
			out.OperationalImpact++
		}
	}

	switch {
	case out.HighSeverity > 0:
		out.Text = fmt.Sprintf("%d high-severity NOTAM(s) affecting operations", out.HighSeverity)
	case out.OperationalImpact > 0:
		out.Text = fmt.Sprintf("%d NOTAM(s) with operational impact", out.OperationalImpact)
	default:
		out.Text = fmt.Sprintf("%d informational NOTAM(s)", out.Total)
	}
	return out
}
