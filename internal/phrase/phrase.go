// Package phrase renders decoded reports as simplified English sentences:
// pipe-joined clause sequences with fixed vocabulary, omitting clauses whose
// underlying field is absent. The only non-deterministic output is the
// relative-time clause on pilot reports, which reads the package clock.
package phrase

import (
	"fmt"
	"strings"
	"time"

	"github.com/HappyMeal-git/aviation-weather-briefing/internal/decode"
)

const (
	noObservationMsg = "No weather information available"
	noForecastMsg    = "No forecast information available"
	noPilotReportMsg = "No pilot report information available"
)

// compassOctants maps round(degrees/45) mod 8 to a compass word.
var compassOctants = [8]string{
	"north", "northeast", "east", "southeast",
	"south", "southwest", "west", "northwest",
}

// Compass returns the compass octant for a direction in degrees.
func Compass(degrees int) string {
	idx := int(float64(degrees)/45+0.5) % 8
	return compassOctants[idx]
}

// cloudCoverWords mirrors the decoder's cover table for rendering.
var cloudCoverWords = map[string]string{
	"FEW": "few clouds", "SCT": "scattered clouds", "BKN": "broken clouds",
	"OVC": "overcast", "CLR": "clear", "SKC": "sky clear",
	"VV": "vertical visibility",
}

var convectiveWords = map[string]string{
	"CB":  "cumulonimbus",
	"TCU": "towering cumulus",
}

// DescribeObservation renders a surface observation as one simplified
// sentence, clause order: station, time, wind, visibility, weather, clouds,
// temperature/dewpoint, altimeter.
func DescribeObservation(obs *decode.Observation) string {
	if obs == nil || obs.Unparseable {
		return noObservationMsg
	}
	var parts []string

	if obs.Station != "" {
		parts = append(parts, "Station "+obs.Station)
	}
	if obs.Time != nil {
		parts = append(parts, "observed at "+obs.Time.String())
	}
	if w := describeWind(obs.Wind); w != "" {
		parts = append(parts, w)
	}
	if v := describeVisibility(obs.Visibility); v != "" {
		parts = append(parts, "visibility "+v)
	}
	if len(obs.Weather) > 0 {
		descs := make([]string, 0, len(obs.Weather))
		for _, g := range obs.Weather {
			descs = append(descs, g.Description())
		}
		parts = append(parts, strings.Join(descs, " and "))
	}
	if c := describeClouds(obs.Clouds); c != "" {
		parts = append(parts, c)
	}
	if obs.TemperatureC != nil && obs.DewpointC != nil {
		parts = append(parts, fmt.Sprintf("temperature %d°C | dewpoint %d°C", *obs.TemperatureC, *obs.DewpointC))
	}
	if obs.AltimeterInHg != nil {
		parts = append(parts, fmt.Sprintf("altimeter %.2f inHg", *obs.AltimeterInHg))
	}

	if len(parts) == 0 {
		return noObservationMsg
	}
	return strings.Join(parts, " | ")
}

func describeWind(w *decode.Wind) string {
	if w == nil {
		return ""
	}
	if w.Calm || w.SpeedKt == 0 {
		return "calm winds"
	}
	dir := "variable direction"
	if w.DirectionDeg != nil {
		dir = Compass(*w.DirectionDeg)
	}
	out := fmt.Sprintf("winds from %s at %d knots", dir, w.SpeedKt)
	if w.GustKt != nil && *w.GustKt > w.SpeedKt {
		out += fmt.Sprintf(", gusting to %d knots", *w.GustKt)
	}
	return out
}

func describeVisibility(v *decode.Visibility) string {
	if v == nil {
		return ""
	}
	miles := strings.TrimSuffix(fmt.Sprintf("%g", v.Miles), ".0")
	if v.OrMore {
		return miles + " statute miles or more"
	}
	return miles + " statute miles"
}

// describeClouds renders each layer as "<cover> [<convective>] at <height>
// ft", comma-joined. Any CLR or SKC layer short-circuits to "clear skies".
func describeClouds(clouds []decode.CloudLayer) string {
	if len(clouds) == 0 {
		return ""
	}
	for _, layer := range clouds {
		if layer.Cover == "CLR" || layer.Cover == "SKC" {
			return "clear skies"
		}
	}
	var descs []string
	for _, layer := range clouds {
		word, ok := cloudCoverWords[layer.Cover]
		if !ok {
			word = layer.Cover
		}
		if cw, ok := convectiveWords[layer.Convective]; ok {
			word += " " + cw
		}
		if layer.BaseFeet != nil {
			word += fmt.Sprintf(" at %d ft", *layer.BaseFeet)
		}
		descs = append(descs, word)
	}
	return strings.Join(descs, ", ")
}

// DescribeForecast renders a terminal forecast: header clauses, then one
// clause per period concatenating the period label with its conditions.
func DescribeForecast(fc *decode.Forecast) string {
	if fc == nil || fc.Unparseable {
		return noForecastMsg
	}
	var parts []string

	if fc.Station != "" {
		parts = append(parts, "Terminal forecast for "+fc.Station)
	}
	if fc.IssueTime != nil {
		parts = append(parts, "issued "+fc.IssueTime.String())
	}
	if fc.ValidFrom != nil && fc.ValidTo != nil {
		parts = append(parts, fmt.Sprintf("valid from %s to %s", fc.ValidFrom, fc.ValidTo))
	}

	rendered := false
	for _, period := range fc.Periods {
		conds := describePeriodConditions(period)
		if len(conds) == 0 {
			continue
		}
		rendered = true
		parts = append(parts, PeriodLabel(period)+": "+strings.Join(conds, ", "))
	}
	if !rendered && len(fc.Periods) > 0 {
		parts = append(parts, "detailed forecast conditions available")
	}

	if len(parts) == 0 {
		return noForecastMsg
	}
	return strings.Join(parts, " | ")
}

// PeriodLabel names a forecast change period for display.
func PeriodLabel(p decode.ForecastPeriod) string {
	switch p.Change {
	case decode.ChangeFrom:
		digits := strings.TrimPrefix(p.Token, "FM")
		// Six-digit groups lead with the day of month.
		if len(digits) == 6 {
			digits = digits[2:]
		}
		if len(digits) >= 4 {
			return fmt.Sprintf("From %s:%sZ", digits[:2], digits[2:4])
		}
		return "From " + digits
	case decode.ChangeBecoming:
		return "Becoming"
	case decode.ChangeTempo:
		return "Temporarily"
	case decode.ChangePeriod:
		if idx := strings.Index(p.Token, "/"); idx == 4 && len(p.Token) == 9 {
			return fmt.Sprintf("Period from %s:%sZ to %s:%sZ",
				p.Token[:2], p.Token[2:4], p.Token[5:7], p.Token[7:9])
		}
		return "Period " + p.Token
	default:
		return "Initial conditions"
	}
}

func describePeriodConditions(p decode.ForecastPeriod) []string {
	var conds []string
	if w := describeWind(p.Wind); w != "" {
		conds = append(conds, w)
	}
	if v := describeVisibility(p.Visibility); v != "" {
		conds = append(conds, "visibility "+v)
	}
	for _, g := range p.Weather {
		conds = append(conds, g.Description())
	}
	if c := describeClouds(p.Clouds); c != "" {
		conds = append(conds, c)
	}
	return conds
}

// DescribePilotReport renders a pilot report. After the optional field
// clauses it always appends the altitude, location, and relative-time
// clauses so a reader can place the report even when fields are missing.
// The relative-time clause depends on the clock at generation time, so the
// output is a presentation concern and must not be cached.
func DescribePilotReport(pr *decode.PilotReport) string {
	if pr == nil || pr.Unparseable {
		return noPilotReportMsg
	}
	var parts []string

	if pr.Location != "" {
		parts = append(parts, "Location "+pr.Location)
	}
	if pr.Time != "" {
		parts = append(parts, "reported at "+pr.Time+"Z")
	}
	if pr.Aircraft != "" {
		parts = append(parts, "aircraft "+pr.Aircraft)
	}
	if pr.AltitudeFeet != nil {
		parts = append(parts, altitudeClause(pr))
	}
	if pr.Turbulence != "" {
		parts = append(parts, "turbulence: "+pr.Turbulence)
	}
	if pr.Icing != "" {
		parts = append(parts, "icing: "+pr.Icing)
	}
	if pr.Remarks != "" {
		parts = append(parts, "remarks: "+pr.Remarks)
	}

	parts = append(parts, altitudeClause(pr), locationClause(pr), relativeTimeClause(pr.Time))
	return strings.Join(parts, " | ")
}

func altitudeClause(pr *decode.PilotReport) string {
	if pr.AltitudeFeet == nil {
		return "altitude not given"
	}
	if pr.FlightLevel {
		return fmt.Sprintf("at FL%03d", *pr.AltitudeFeet/100)
	}
	return fmt.Sprintf("at %d feet", *pr.AltitudeFeet)
}

func locationClause(pr *decode.PilotReport) string {
	if pr.Location == "" {
		return "location unknown"
	}
	return "near " + pr.Location
}

// relativeTimeClause turns an HHMM report time into an age phrase against
// the current clock. A report time later than now is taken as yesterday.
func relativeTimeClause(hhmm string) string {
	if len(hhmm) != 4 {
		return "time unknown"
	}
	var hour, minute int
	if _, err := fmt.Sscanf(hhmm, "%02d%02d", &hour, &minute); err != nil {
		return "time unknown"
	}
	if hour > 23 || minute > 59 {
		return "time unknown"
	}

	now := clock.Now().UTC()
	reported := time.Date(now.Year(), now.Month(), now.Day(), hour, minute, 0, 0, time.UTC)
	if reported.After(now) {
		reported = reported.Add(-24 * time.Hour)
	}

	age := now.Sub(reported)
	switch {
	case age < time.Minute:
		return "observed just now"
	case age < time.Hour:
		return fmt.Sprintf("observed %d minutes ago", int(age.Minutes()))
	default:
		h := int(age.Hours())
		m := int(age.Minutes()) - h*60
		return fmt.Sprintf("observed %dh %dm ago", h, m)
	}
}

// Describe renders any decoded report using the decoder for its kind.
func Describe(d decode.Decoded) string {
	switch {
	case d.Forecast != nil:
		return DescribeForecast(d.Forecast)
	case d.PilotReport != nil:
		return DescribePilotReport(d.PilotReport)
	default:
		return DescribeObservation(d.Observation)
	}
}
