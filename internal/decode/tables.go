package decode

// Static vocabulary tables for report decoding. Built once, never mutated.

// phenomena maps 2-letter present-weather codes to plain words.
var phenomena = map[string]string{
	// Precipitation
	"RA": "rain", "DZ": "drizzle", "SN": "snow", "SG": "snow grains",
	"IC": "ice crystals", "PL": "ice pellets", "GR": "hail", "GS": "small hail",
	"UP": "unknown precipitation",

	// Obscuration
	"FG": "fog", "BR": "mist", "HZ": "haze", "DU": "dust", "SA": "sand",
	"FU": "smoke", "VA": "volcanic ash", "PY": "spray",

	// Other
	"SQ": "squalls", "FC": "funnel cloud", "SS": "sandstorm", "DS": "duststorm",
	"PO": "dust whirls", "TS": "thunderstorm",
}

// precipCodes is the subset of phenomena that counts as precipitation for
// severity scoring.
var precipCodes = map[string]bool{
	"RA": true, "DZ": true, "SN": true, "SG": true,
	"IC": true, "PL": true, "GR": true, "GS": true, "UP": true,
}

// descriptors maps 2-letter descriptor prefixes to plain words. Order matters
// when stripping, so the codes are also kept as a slice.
var descriptors = map[string]string{
	"MI": "shallow", "PR": "partial", "BC": "patches", "DR": "drifting",
	"BL": "blowing", "SH": "showers", "FZ": "freezing", "RE": "recent",
}

var descriptorCodes = []string{"MI", "PR", "BC", "DR", "BL", "SH", "FZ", "RE"}

// cloudCovers maps cloud-cover codes to plain words.
var cloudCovers = map[string]string{
	"FEW": "few clouds", "SCT": "scattered clouds", "BKN": "broken clouds",
	"OVC": "overcast", "CLR": "clear", "SKC": "sky clear",
	"VV": "vertical visibility",
}

// Intensity words for weather-phenomenon prefixes.
const (
	IntensityLight    = "light"
	IntensityHeavy    = "heavy"
	IntensityVicinity = "in vicinity"
)

// pirepIntensity maps PIREP turbulence/icing shorthand to readable words.
// Checked in slice order so that compound codes win over their prefixes.
var pirepIntensity = []struct{ Code, Word string }{
	{"LGT-MOD", "Light to Moderate"},
	{"MOD-SEV", "Moderate to Severe"},
	{"EXTM", "Extreme"},
	{"OCNL", "Occasional"},
	{"CONS", "Continuous"},
	{"LGT", "Light"},
	{"MOD", "Moderate"},
	{"SEV", "Severe"},
	{"SVR", "Severe"},
	{"NEG", "None"},
}
