// Package classify derives qualitative flight-condition categories from
// decoded reports: per-observation severity scoring, multi-source combining,
// route-level aggregation, and narrative synthesis. All functions are pure
// and total; the worst case is an UNKNOWN category, never an error.
package classify

import (
	"fmt"
	"strings"

	"github.com/HappyMeal-git/aviation-weather-briefing/internal/decode"
)

// Category is the three-tier flight-condition classification. The zero value
// is Unknown, used when there is insufficient data to classify.
type Category int

const (
	CategoryUnknown Category = iota
	CategoryFavorable
	CategoryMarginal
	CategoryAdverse
)

func (c Category) String() string {
	switch c {
	case CategoryFavorable:
		return "FAVORABLE"
	case CategoryMarginal:
		return "MARGINAL"
	case CategoryAdverse:
		return "ADVERSE"
	default:
		return "UNKNOWN"
	}
}

// MarshalText makes categories render as their names in JSON payloads.
func (c Category) MarshalText() ([]byte, error) {
	return []byte(c.String()), nil
}

// Hazard is one named adverse condition attached to a classification.
type Hazard struct {
	Type        string `json:"type"`
	Severity    string `json:"severity"` // critical or moderate
	Description string `json:"description"`
}

// Hazard type tags used across classification and narrative synthesis.
const (
	HazardThunderstorms = "thunderstorms"
	HazardLowVisibility = "low_visibility"
	HazardLowCeiling    = "low_ceiling"
	HazardStrongWinds   = "strong_winds"
	HazardIcing         = "icing"
	HazardHeavyPrecip   = "heavy_precipitation"
	HazardObscuration   = "obscuration"
)

const (
	SeverityCritical = "critical"
	SeverityModerate = "moderate"
)

// Condition is the classification of one decoded surface observation.
type Condition struct {
	Category        Category `json:"category"`
	Score           int      `json:"score"`
	FlightCategory  string   `json:"flight_category,omitempty"`
	Summary         string   `json:"summary,omitempty"`
	Factors         []string `json:"factors,omitempty"`
	Hazards         []Hazard `json:"hazards,omitempty"`
	Recommendations []string `json:"recommendations,omitempty"`
}

// Severity thresholds. Visibility in statute miles, ceiling in feet AGL,
// winds in knots.
const (
	vfrVisibilitySM  = 3.0
	mvfrVisibilitySM = 1.0
	vfrCeilingFt     = 1000
	mvfrCeilingFt    = 500

	windModerateKt = 15
	windStrongKt   = 25
	windSevereKt   = 35
)

// Classify scores one surface observation and derives its category.
func Classify(obs *decode.Observation) Condition {
	cond := Condition{}
	if obs == nil || obs.Unparseable {
		cond.Factors = append(cond.Factors, "Insufficient data to classify")
		cond.Summary = "Insufficient weather data to classify conditions."
		return cond
	}
	cond.FlightCategory = obs.FlightCategory

	if obs.Visibility != nil {
		scoreVisibility(obs.Visibility, &cond)
	}
	if obs.CeilingFeet != nil {
		scoreCeiling(*obs.CeilingFeet, &cond)
	}
	if obs.Wind != nil {
		scoreWind(obs.Wind, &cond)
	}
	if len(obs.Weather) > 0 {
		scoreWeather(obs.Weather, &cond)
	}

	cond.Category = deriveCategory(cond.FlightCategory, cond.Score)
	cond.Summary = summarize(cond)
	cond.Recommendations = recommend(cond, obs)
	return cond
}

func scoreVisibility(v *decode.Visibility, cond *Condition) {
	miles := v.Miles
	switch {
	case v.OrMore || miles >= vfrVisibilitySM:
		cond.Factors = append(cond.Factors, fmt.Sprintf("Visibility: %g SM (Good)", miles))
	case miles >= mvfrVisibilitySM:
		cond.Score += 2
		cond.Factors = append(cond.Factors, fmt.Sprintf("Visibility: %g SM (Marginal)", miles))
		cond.Hazards = append(cond.Hazards, Hazard{
			Type:        HazardLowVisibility,
			Severity:    SeverityModerate,
			Description: fmt.Sprintf("Visibility %g SM", miles),
		})
	default:
		cond.Score += 4
		cond.Factors = append(cond.Factors, fmt.Sprintf("Visibility: %g SM (Poor)", miles))
		cond.Hazards = append(cond.Hazards, Hazard{
			Type:        HazardLowVisibility,
			Severity:    SeverityCritical,
			Description: fmt.Sprintf("Visibility %g SM", miles),
		})
	}
}

func scoreCeiling(ceiling int, cond *Condition) {
	switch {
	case ceiling >= vfrCeilingFt:
		cond.Factors = append(cond.Factors, fmt.Sprintf("Ceiling: %d ft (Good)", ceiling))
	case ceiling >= mvfrCeilingFt:
		cond.Score += 2
		cond.Factors = append(cond.Factors, fmt.Sprintf("Ceiling: %d ft (Marginal)", ceiling))
		cond.Hazards = append(cond.Hazards, Hazard{
			Type:        HazardLowCeiling,
			Severity:    SeverityModerate,
			Description: fmt.Sprintf("Ceiling %d ft", ceiling),
		})
	default:
		cond.Score += 4
		cond.Factors = append(cond.Factors, fmt.Sprintf("Ceiling: %d ft (Low)", ceiling))
		cond.Hazards = append(cond.Hazards, Hazard{
			Type:        HazardLowCeiling,
			Severity:    SeverityCritical,
			Description: fmt.Sprintf("Ceiling %d ft", ceiling),
		})
	}
}

func scoreWind(w *decode.Wind, cond *Condition) {
	effective := w.EffectiveKt()
	label := fmt.Sprintf("%d kt", w.SpeedKt)
	if w.GustKt != nil {
		label = fmt.Sprintf("%d ktG%d kt", w.SpeedKt, *w.GustKt)
	}
	switch {
	case effective < windModerateKt:
		cond.Factors = append(cond.Factors, fmt.Sprintf("Winds: %s (Light)", label))
	case effective < windStrongKt:
		cond.Score += 1
		cond.Factors = append(cond.Factors, fmt.Sprintf("Winds: %s (Moderate)", label))
		cond.Hazards = append(cond.Hazards, Hazard{
			Type:        HazardStrongWinds,
			Severity:    SeverityModerate,
			Description: "Moderate winds - monitor crosswind components",
		})
	case effective < windSevereKt:
		cond.Score += 3
		cond.Factors = append(cond.Factors, fmt.Sprintf("Winds: %s (Strong)", label))
		cond.Hazards = append(cond.Hazards, Hazard{
			Type:        HazardStrongWinds,
			Severity:    SeverityModerate,
			Description: "Strong winds - significant crosswind risk",
		})
	default:
		cond.Score += 5
		cond.Factors = append(cond.Factors, fmt.Sprintf("Winds: %s (Severe)", label))
		cond.Hazards = append(cond.Hazards, Hazard{
			Type:        HazardStrongWinds,
			Severity:    SeverityCritical,
			Description: "Severe winds - extreme caution required",
		})
	}
}

// scoreWeather scores present-weather groups: precipitation by intensity,
// thunderstorms, obscurations, and freezing phenomena, each independent.
func scoreWeather(groups []decode.WeatherGroup, cond *Condition) {
	var (
		heavyPrecip, lightPrecip, moderatePrecip bool
		thunderstorm, obscuration, freezing      bool
	)
	for _, g := range groups {
		raw := strings.ToUpper(g.Raw)
		hasPrecip := false
		for i := 0; i+2 <= len(raw); i++ {
			if precipCode(raw[i : i+2]) {
				hasPrecip = true
				break
			}
		}
		if hasPrecip {
			switch g.Intensity {
			case decode.IntensityHeavy:
				heavyPrecip = true
			case decode.IntensityLight:
				lightPrecip = true
			default:
				moderatePrecip = true
			}
		}
		if strings.Contains(raw, "TS") {
			thunderstorm = true
			if hasPrecip {
				heavyPrecip = true
			}
		}
		if strings.Contains(raw, "FG") || strings.Contains(raw, "BR") || strings.Contains(raw, "HZ") {
			obscuration = true
		}
		if strings.Contains(raw, "FZ") {
			freezing = true
		}
	}

	if heavyPrecip {
		cond.Score += 3
		cond.Factors = append(cond.Factors, "Heavy precipitation present")
		cond.Hazards = append(cond.Hazards, Hazard{
			Type:        HazardHeavyPrecip,
			Severity:    SeverityModerate,
			Description: "Heavy precipitation - reduced visibility and runway conditions",
		})
	} else if lightPrecip {
		cond.Score += 1
		cond.Factors = append(cond.Factors, "Light precipitation present")
	} else if moderatePrecip {
		cond.Score += 2
		cond.Factors = append(cond.Factors, "Moderate precipitation present")
	}

	if thunderstorm {
		cond.Score += 4
		cond.Factors = append(cond.Factors, "Thunderstorms present")
		cond.Hazards = append(cond.Hazards, Hazard{
			Type:        HazardThunderstorms,
			Severity:    SeverityCritical,
			Description: "Thunderstorms - severe turbulence, wind shear, and lightning risk",
		})
	}
	if obscuration {
		cond.Score += 2
		cond.Factors = append(cond.Factors, "Reduced visibility due to fog/mist/haze")
		cond.Hazards = append(cond.Hazards, Hazard{
			Type:        HazardObscuration,
			Severity:    SeverityModerate,
			Description: "Visibility restrictions - approach and taxi hazards",
		})
	}
	if freezing {
		cond.Score += 3
		cond.Factors = append(cond.Factors, "Freezing conditions present")
		cond.Hazards = append(cond.Hazards, Hazard{
			Type:        HazardIcing,
			Severity:    SeverityCritical,
			Description: "Icing conditions - aircraft and runway icing risk",
		})
	}
}

func precipCode(code string) bool {
	switch code {
	case "RA", "DZ", "SN", "SG", "IC", "PL", "GR", "GS", "UP":
		return true
	}
	return false
}

// deriveCategory maps the provider flight-category tag plus the severity
// score to a tier. When the tag is unknown the score bands alone decide
// (the same bands the combiner and route aggregator use).
func deriveCategory(flightCategory string, score int) Category {
	switch flightCategory {
	case "VFR":
		if score <= 1 {
			return CategoryFavorable
		}
		return CategoryMarginal
	case "MVFR":
		return CategoryMarginal
	case "IFR", "LIFR":
		return CategoryAdverse
	case "":
		return categoryFromScore(score)
	default:
		if score >= 4 {
			return CategoryAdverse
		}
		return CategoryMarginal
	}
}

// categoryFromScore is the tag-free score banding shared with the combiner.
func categoryFromScore(score int) Category {
	switch {
	case score >= 6:
		return CategoryAdverse
	case score >= 3:
		return CategoryMarginal
	default:
		return CategoryFavorable
	}
}

func summarize(cond Condition) string {
	flightCat := cond.FlightCategory
	if flightCat == "" {
		flightCat = "UNKNOWN"
	}
	switch cond.Category {
	case CategoryFavorable:
		return fmt.Sprintf("Good flying conditions. %s conditions with minimal weather impact.", flightCat)
	case CategoryMarginal:
		return fmt.Sprintf("Marginal conditions requiring attention. %s conditions with weather factors to monitor.", flightCat)
	case CategoryAdverse:
		return "Poor conditions requiring careful consideration. Significant weather hazards present."
	default:
		return "Insufficient weather data to classify conditions."
	}
}

func recommend(cond Condition, obs *decode.Observation) []string {
	var recs []string
	switch cond.Category {
	case CategoryFavorable:
		recs = append(recs,
			"Conditions favorable for flight operations",
			"Monitor weather updates for any changes")
	case CategoryMarginal:
		recs = append(recs,
			"Review alternate airports and fuel requirements",
			"Monitor weather trends and updates closely",
			"Consider delaying departure if conditions are deteriorating")
		if obs.Wind != nil && obs.Wind.SpeedKt > windModerateKt {
			recs = append(recs, "Calculate crosswind components for all runways")
		}
	case CategoryAdverse:
		recs = append(recs,
			"Consider delaying flight until conditions improve",
			"If proceeding, ensure alternate airports are available",
			"Review emergency procedures and diversion options",
			"Monitor weather radar and pilot reports")
	}
	return recs
}
