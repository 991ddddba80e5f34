// Package decode turns raw METAR, TAF, and PIREP strings into structured
// records. Decoders are pure and total: unparseable tokens are skipped, an
// empty input yields a value with every field absent, and no decoder ever
// returns an error.
package decode

import "fmt"

// ReportTime is a day-of-month/hour/minute group from a DDHHMMZ token.
type ReportTime struct {
	Day    int `json:"day"`
	Hour   int `json:"hour"`
	Minute int `json:"minute"`
}

// String renders the time the way briefing summaries expect it.
func (t ReportTime) String() string {
	return fmt.Sprintf("%02dth at %02d:%02dZ", t.Day, t.Hour, t.Minute)
}

// PeriodTime is a day/hour pair from a TAF DDDD validity token.
type PeriodTime struct {
	Day  int `json:"day"`
	Hour int `json:"hour"`
}

func (t PeriodTime) String() string {
	return fmt.Sprintf("%02d:%02dZ", t.Day, t.Hour)
}

// Wind holds a decoded wind group. Direction is nil for calm or variable
// winds; Gust is nil when no gust was reported.
type Wind struct {
	DirectionDeg *int `json:"direction_deg,omitempty"`
	SpeedKt      int  `json:"speed_kt"`
	GustKt       *int `json:"gust_kt,omitempty"`
	Calm         bool `json:"calm,omitempty"`
	Variable     bool `json:"variable,omitempty"`

	// Variable-direction annotation (DDDVDDD), attached when present.
	VariableFromDeg *int `json:"variable_from_deg,omitempty"`
	VariableToDeg   *int `json:"variable_to_deg,omitempty"`
}

// EffectiveKt is the gust speed when reported, the sustained speed otherwise.
func (w *Wind) EffectiveKt() int {
	if w == nil {
		return 0
	}
	if w.GustKt != nil {
		return *w.GustKt
	}
	return w.SpeedKt
}

// Visibility is a decoded prevailing-visibility value. OrMore distinguishes
// the "10 or more statute miles" sentinel from an exact reading.
type Visibility struct {
	Miles  float64 `json:"miles"`
	OrMore bool    `json:"or_more,omitempty"`
}

// WeatherGroup is one present-weather token: optional intensity, optional
// descriptor, one or more phenomenon words.
type WeatherGroup struct {
	Raw        string   `json:"raw"`
	Intensity  string   `json:"intensity,omitempty"` // light / heavy / in vicinity / "" (moderate)
	Descriptor string   `json:"descriptor,omitempty"`
	Phenomena  []string `json:"phenomena"`
}

// Description joins intensity, descriptor, and phenomena into one phrase,
// e.g. "light rain" or "heavy showers rain".
func (g WeatherGroup) Description() string {
	out := ""
	if g.Intensity != "" {
		out = g.Intensity
	}
	if g.Descriptor != "" {
		if out != "" {
			out += " "
		}
		out += g.Descriptor
	}
	for _, p := range g.Phenomena {
		if out != "" {
			out += " "
		}
		out += p
	}
	if out == "" {
		return g.Raw
	}
	return out
}

// CloudLayer is one decoded cloud group.
type CloudLayer struct {
	Cover      string `json:"cover"` // FEW / SCT / BKN / OVC / CLR / SKC / VV
	BaseFeet   *int   `json:"base_feet,omitempty"`
	Convective string `json:"convective,omitempty"` // CB or TCU
}

// Observation is a decoded surface observation (METAR).
type Observation struct {
	Raw            string         `json:"raw"`
	Station        string         `json:"station,omitempty"`
	Time           *ReportTime    `json:"time,omitempty"`
	Wind           *Wind          `json:"wind,omitempty"`
	Visibility     *Visibility    `json:"visibility,omitempty"`
	Weather        []WeatherGroup `json:"weather,omitempty"`
	Clouds         []CloudLayer   `json:"clouds,omitempty"`
	TemperatureC   *int           `json:"temperature_c,omitempty"`
	DewpointC      *int           `json:"dewpoint_c,omitempty"`
	AltimeterInHg  *float64       `json:"altimeter_inhg,omitempty"`
	Remarks        string         `json:"remarks,omitempty"`
	CeilingFeet    *int           `json:"ceiling_feet,omitempty"`
	FlightCategory string         `json:"flight_category,omitempty"` // provider passthrough only
	Unparseable    bool           `json:"unparseable,omitempty"`
}

// ChangeType tags how a forecast period modifies the baseline conditions.
type ChangeType string

const (
	ChangeBaseline ChangeType = "BASELINE"
	ChangeFrom     ChangeType = "FROM"
	ChangeBecoming ChangeType = "BECOMING"
	ChangeTempo    ChangeType = "TEMPORARY"
	ChangePeriod   ChangeType = "PERIOD"
)

// ForecastPeriod is one change group within a TAF.
type ForecastPeriod struct {
	Change     ChangeType     `json:"change"`
	Token      string         `json:"token,omitempty"` // the raw group-leading token, if any
	Wind       *Wind          `json:"wind,omitempty"`
	Visibility *Visibility    `json:"visibility,omitempty"`
	Weather    []WeatherGroup `json:"weather,omitempty"`
	Clouds     []CloudLayer   `json:"clouds,omitempty"`
}

// Forecast is a decoded terminal forecast (TAF).
type Forecast struct {
	Raw         string           `json:"raw"`
	Station     string           `json:"station,omitempty"`
	Amended     bool             `json:"amended,omitempty"`
	Corrected   bool             `json:"corrected,omitempty"`
	IssueTime   *ReportTime      `json:"issue_time,omitempty"`
	ValidFrom   *PeriodTime      `json:"valid_from,omitempty"`
	ValidTo     *PeriodTime      `json:"valid_to,omitempty"`
	Periods     []ForecastPeriod `json:"periods,omitempty"`
	Unparseable bool             `json:"unparseable,omitempty"`
}

// PilotReport is a decoded pilot report (PIREP). All fields are optional;
// absent slash markers leave them at their zero values.
type PilotReport struct {
	Raw          string `json:"raw"`
	Location     string `json:"location,omitempty"`
	Time         string `json:"time,omitempty"` // HHMM as reported
	Aircraft     string `json:"aircraft,omitempty"`
	AltitudeFeet *int   `json:"altitude_feet,omitempty"`
	FlightLevel  bool   `json:"flight_level,omitempty"` // raw altitude token had exactly 3 digits
	Turbulence   string `json:"turbulence,omitempty"`
	Icing        string `json:"icing,omitempty"`
	Sky          string `json:"sky,omitempty"`
	TemperatureC *int   `json:"temperature_c,omitempty"`
	Remarks      string `json:"remarks,omitempty"`
	Unparseable  bool   `json:"unparseable,omitempty"`
}
