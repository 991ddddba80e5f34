package classify

import (
	"strings"
	"time"

	"github.com/HappyMeal-git/aviation-weather-briefing/internal/decode"
)

// Combined is a station condition after forecast and pilot-report input has
// been folded into the surface-observation classification. The surface
// category is never downgraded by the extra sources.
type Combined struct {
	Condition

	PrimarySource string   `json:"primary_source"` // METAR or TAF
	TAFFactors    []string `json:"taf_factors,omitempty"`
	PIREPFactors  []string `json:"pirep_factors,omitempty"`
}

// Combine folds an optional forecast and any pilot reports into a surface
// classification. The score may rise by up to +2 from the forecast and +2
// from pilot reports, or fall by 1 on explicit smooth-ride reports, floored
// at zero. The category is recomputed from the adjusted score but clamped so
// it never ranks below the surface category.
func Combine(surface Condition, taf *decode.Forecast, pireps []*decode.PilotReport, refTime time.Time) Combined {
	out := Combined{Condition: surface, PrimarySource: "METAR"}

	if taf != nil && !taf.Unparseable {
		delta, factors := forecastAdjustment(taf)
		out.Score += delta
		out.TAFFactors = factors
		if forecastCovers(taf, refTime) {
			out.PrimarySource = "TAF"
		}
	}

	delta, factors := pilotAdjustment(pireps)
	out.Score += delta
	out.PIREPFactors = factors
	if out.Score < 0 {
		out.Score = 0
	}

	recomputed := categoryFromScore(out.Score)
	if recomputed > out.Category {
		out.Category = recomputed
	}
	if out.Category < surface.Category {
		out.Category = surface.Category
	}
	return out
}

// forecastAdjustment scans forecast text for deterioration language. +2 for
// thunderstorm or deteriorating signals, +1 for generic change language.
func forecastAdjustment(taf *decode.Forecast) (int, []string) {
	raw := strings.ToUpper(taf.Raw)
	var factors []string
	deteriorating := false

	if strings.Contains(raw, "TS") {
		factors = append(factors, "Thunderstorms forecast")
		deteriorating = true
	}
	if strings.Contains(raw, "FG") || strings.Contains(raw, "BR") {
		factors = append(factors, "Fog or mist forecast")
		deteriorating = true
	}
	if strings.Contains(raw, "RA") || strings.Contains(raw, "SN") {
		factors = append(factors, "Precipitation forecast")
	}
	for _, gust := range []string{"G25", "G30", "G35", "G40"} {
		if strings.Contains(raw, gust) {
			factors = append(factors, "Strong gusts forecast")
			deteriorating = true
			break
		}
	}
	change := strings.Contains(raw, "TEMPO") || strings.Contains(raw, "BECMG") ||
		strings.Contains(raw, "PROB")
	if change {
		factors = append(factors, "Changing conditions forecast")
	}

	switch {
	case deteriorating:
		return 2, factors
	case len(factors) > 0 || change:
		return 1, factors
	default:
		return 0, nil
	}
}

// pilotAdjustment scans pilot reports for ride-quality keywords. Turbulence
// or icing reports add +2 once; an explicit smooth report subtracts 1 only
// when nothing adverse was reported.
func pilotAdjustment(pireps []*decode.PilotReport) (int, []string) {
	var factors []string
	adverse, smooth := false, false
	for _, pr := range pireps {
		if pr == nil || pr.Unparseable {
			continue
		}
		raw := strings.ToUpper(pr.Raw)
		if strings.Contains(raw, "TURB") || strings.Contains(raw, "ROUGH") || pr.Turbulence != "" && !strings.Contains(strings.ToUpper(pr.Turbulence), "NONE") {
			adverse = true
			factors = appendUnique(factors, "Turbulence reported by pilots")
		}
		if strings.Contains(raw, "ICE") || strings.Contains(raw, "ICING") || pr.Icing != "" && !strings.Contains(strings.ToUpper(pr.Icing), "NONE") {
			adverse = true
			factors = appendUnique(factors, "Icing reported by pilots")
		}
		if strings.Contains(raw, "SMOOTH") {
			smooth = true
		}
	}
	switch {
	case adverse:
		return 2, factors
	case smooth:
		return -1, []string{"Smooth conditions reported by pilots"}
	default:
		return 0, nil
	}
}

// forecastCovers reports whether a forecast's validity window includes the
// reference time. Forecasts without a decoded window are treated as current.
func forecastCovers(taf *decode.Forecast, ref time.Time) bool {
	if taf.ValidFrom == nil || taf.ValidTo == nil {
		return true
	}
	refDay, refHour := ref.UTC().Day(), ref.UTC().Hour()
	afterStart := refDay > taf.ValidFrom.Day ||
		(refDay == taf.ValidFrom.Day && refHour >= taf.ValidFrom.Hour)
	beforeEnd := refDay < taf.ValidTo.Day ||
		(refDay == taf.ValidTo.Day && refHour < taf.ValidTo.Hour)
	// Windows that wrap a month boundary decode with ValidTo "before"
	// ValidFrom; treat those as covering.
	if taf.ValidTo.Day < taf.ValidFrom.Day {
		return true
	}
	return afterStart && beforeEnd
}

func appendUnique(list []string, s string) []string {
	for _, have := range list {
		if have == s {
			return list
		}
	}
	return append(list, s)
}
