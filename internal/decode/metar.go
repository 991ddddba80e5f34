package decode

import (
	"regexp"
	"strconv"
	"strings"
)

// Token patterns shared by the METAR and TAF condition decoders.
var (
	stationRe  = regexp.MustCompile(`^[A-Z]{4}$`)
	timeRe     = regexp.MustCompile(`^(\d{2})(\d{2})(\d{2})Z$`)
	windRe     = regexp.MustCompile(`^(\d{3}|VRB)(\d{2,3})(?:G(\d{2,3}))?KT$`)
	windVarRe  = regexp.MustCompile(`^(\d{3})V(\d{3})$`)
	visRe      = regexp.MustCompile(`^(P)?(\d{1,2})?(?:(\d{1,2})/(\d{1,2}))?(\+)?SM$`)
	cloudRe    = regexp.MustCompile(`^(FEW|SCT|BKN|OVC|CLR|SKC|VV)(\d{3})?(CB|TCU)?$`)
	tempDewRe  = regexp.MustCompile(`^(M?\d{2})/(M?\d{2})$`)
	altimRe    = regexp.MustCompile(`^A(\d{4})$`)
	validRe    = regexp.MustCompile(`^(\d{2})(\d{2})/(\d{2})(\d{2})$`)
	fmGroupRe  = regexp.MustCompile(`^FM(\d{4,6})$`)
	wholeNumRe = regexp.MustCompile(`^\d{1,2}$`)
	fracVisRe  = regexp.MustCompile(`^\d{1,2}/\d{1,2}SM$`)
)

// conditions is the accumulator shared by METAR bodies and TAF period groups.
type conditions struct {
	wind       *Wind
	visibility *Visibility
	weather    []WeatherGroup
	clouds     []CloudLayer
}

// conditionRule attempts to consume one token. Returns true when the token
// was recognised and applied. Rules are evaluated in order; the first match
// wins, which keeps token classification data-driven instead of nested.
type conditionRule func(tok string, acc *conditions) bool

var conditionRules = []conditionRule{
	applyWind,
	applyWindVariable,
	applyVisibility,
	applyWeather,
	applyCloud,
}

func applyWind(tok string, acc *conditions) bool {
	if tok == "00000KT" {
		acc.wind = &Wind{Calm: true}
		return true
	}
	m := windRe.FindStringSubmatch(tok)
	if m == nil {
		return false
	}
	w := &Wind{}
	if m[1] == "VRB" {
		w.Variable = true
	} else {
		deg, _ := strconv.Atoi(m[1])
		w.DirectionDeg = &deg
	}
	w.SpeedKt, _ = strconv.Atoi(m[2])
	if m[3] != "" {
		g, _ := strconv.Atoi(m[3])
		w.GustKt = &g
	}
	acc.wind = w
	return true
}

func applyWindVariable(tok string, acc *conditions) bool {
	m := windVarRe.FindStringSubmatch(tok)
	if m == nil {
		return false
	}
	if acc.wind == nil {
		acc.wind = &Wind{}
	}
	from, _ := strconv.Atoi(m[1])
	to, _ := strconv.Atoi(m[2])
	acc.wind.VariableFromDeg = &from
	acc.wind.VariableToDeg = &to
	return true
}

func applyVisibility(tok string, acc *conditions) bool {
	v, ok := parseVisibility(tok)
	if !ok {
		return false
	}
	acc.visibility = v
	return true
}

// parseVisibility handles N SM, fractional N/D SM, and the "10 or more"
// sentinel encodings ("10+SM" and "P6SM" style prefixes).
func parseVisibility(tok string) (*Visibility, bool) {
	if !strings.HasSuffix(tok, "SM") {
		return nil, false
	}
	m := visRe.FindStringSubmatch(tok)
	if m == nil {
		return nil, false
	}
	v := &Visibility{}
	if m[1] == "P" || m[5] == "+" {
		v.OrMore = true
	}
	switch {
	case m[3] != "" && m[4] != "":
		num, _ := strconv.ParseFloat(m[3], 64)
		den, _ := strconv.ParseFloat(m[4], 64)
		if den == 0 {
			return nil, false
		}
		whole := 0.0
		if m[2] != "" {
			whole, _ = strconv.ParseFloat(m[2], 64)
		}
		v.Miles = whole + num/den
	case m[2] != "":
		v.Miles, _ = strconv.ParseFloat(m[2], 64)
	default:
		return nil, false
	}
	return v, true
}

func applyWeather(tok string, acc *conditions) bool {
	g, ok := parseWeatherGroup(tok)
	if !ok {
		return false
	}
	acc.weather = append(acc.weather, g)
	return true
}

// parseWeatherGroup strips the optional intensity and descriptor prefixes and
// reads the remainder as 2-character phenomenon codes. A token whose
// remainder is not fully made of known codes is not a weather group.
func parseWeatherGroup(tok string) (WeatherGroup, bool) {
	g := WeatherGroup{Raw: tok}
	rest := tok

	switch {
	case strings.HasPrefix(rest, "-"):
		g.Intensity = IntensityLight
		rest = rest[1:]
	case strings.HasPrefix(rest, "+"):
		g.Intensity = IntensityHeavy
		rest = rest[1:]
	case strings.HasPrefix(rest, "VC"):
		g.Intensity = IntensityVicinity
		rest = rest[2:]
	}

	for _, code := range descriptorCodes {
		if strings.HasPrefix(rest, code) {
			// FZRA is descriptor+phenomenon, but a bare descriptor with no
			// phenomenon code after it (e.g. VCSH) does not qualify.
			g.Descriptor = descriptors[code]
			rest = rest[len(code):]
			break
		}
	}

	if rest == "" || len(rest)%2 != 0 {
		return WeatherGroup{}, false
	}
	for i := 0; i < len(rest); i += 2 {
		word, ok := phenomena[rest[i:i+2]]
		if !ok {
			return WeatherGroup{}, false
		}
		g.Phenomena = append(g.Phenomena, word)
	}
	return g, true
}

func applyCloud(tok string, acc *conditions) bool {
	m := cloudRe.FindStringSubmatch(tok)
	if m == nil {
		return false
	}
	layer := CloudLayer{Cover: m[1], Convective: m[3]}
	if m[2] != "" {
		base, _ := strconv.Atoi(m[2])
		base *= 100
		layer.BaseFeet = &base
	}
	acc.clouds = append(acc.clouds, layer)
	return true
}

// decodeConditions runs the shared rule table over a token slice.
func decodeConditions(tokens []string, acc *conditions) {
	for _, tok := range tokens {
		for _, rule := range conditionRules {
			if rule(tok, acc) {
				break
			}
		}
	}
}

// tokenize uppercases, splits on whitespace, and merges whole-plus-fraction
// visibility pairs ("1 1/2SM") into a single token.
func tokenize(raw string) []string {
	fields := strings.Fields(strings.ToUpper(strings.TrimSpace(raw)))
	out := make([]string, 0, len(fields))
	for i := 0; i < len(fields); i++ {
		if i+1 < len(fields) && wholeNumRe.MatchString(fields[i]) && fracVisRe.MatchString(fields[i+1]) {
			out = append(out, fields[i]+fields[i+1])
			i++
			continue
		}
		out = append(out, fields[i])
	}
	return out
}

func parseReportTime(tok string) *ReportTime {
	m := timeRe.FindStringSubmatch(tok)
	if m == nil {
		return nil
	}
	day, _ := strconv.Atoi(m[1])
	hour, _ := strconv.Atoi(m[2])
	minute, _ := strconv.Atoi(m[3])
	return &ReportTime{Day: day, Hour: hour, Minute: minute}
}

func parseSignedTemp(s string) *int {
	neg := strings.HasPrefix(s, "M")
	s = strings.TrimPrefix(s, "M")
	v, err := strconv.Atoi(s)
	if err != nil {
		return nil
	}
	if neg {
		v = -v
	}
	return &v
}

// DecodeMETAR decodes a raw surface observation. Tokens are classified by
// shape, not position, except for the station identifier which must lead.
// Everything after a literal RMK token is verbatim remarks.
func DecodeMETAR(raw string) *Observation {
	obs := &Observation{Raw: strings.TrimSpace(raw)}
	tokens := tokenize(raw)
	if len(tokens) == 0 {
		obs.Unparseable = true
		return obs
	}

	if stationRe.MatchString(tokens[0]) {
		obs.Station = tokens[0]
		tokens = tokens[1:]
	}

	var acc conditions
	for i, tok := range tokens {
		if tok == "RMK" {
			obs.Remarks = strings.Join(tokens[i+1:], " ")
			break
		}
		if t := parseReportTime(tok); t != nil {
			obs.Time = t
			continue
		}
		if m := tempDewRe.FindStringSubmatch(tok); m != nil {
			obs.TemperatureC = parseSignedTemp(m[1])
			obs.DewpointC = parseSignedTemp(m[2])
			continue
		}
		if m := altimRe.FindStringSubmatch(tok); m != nil {
			hundredths, _ := strconv.Atoi(m[1])
			inHg := float64(hundredths) / 100
			obs.AltimeterInHg = &inHg
			continue
		}
		for _, rule := range conditionRules {
			if rule(tok, &acc) {
				break
			}
		}
	}

	obs.Wind = acc.wind
	obs.Visibility = acc.visibility
	obs.Weather = acc.weather
	obs.Clouds = acc.clouds
	obs.CeilingFeet = deriveCeiling(acc.clouds)
	return obs
}

// deriveCeiling returns the lowest broken or overcast base, or nil. FEW and
// SCT layers never form a ceiling.
func deriveCeiling(clouds []CloudLayer) *int {
	var ceiling *int
	for _, layer := range clouds {
		if layer.Cover != "BKN" && layer.Cover != "OVC" {
			continue
		}
		if layer.BaseFeet == nil {
			continue
		}
		if ceiling == nil || *layer.BaseFeet < *ceiling {
			base := *layer.BaseFeet
			ceiling = &base
		}
	}
	return ceiling
}
