// Package airports provides airport coordinate lookup and great-circle
// route distances for briefing summaries.
package airports

import (
	"math"
	"strings"
)

// Coordinates is a latitude/longitude pair in decimal degrees.
type Coordinates struct {
	Lat float64 `json:"lat"`
	Lon float64 `json:"lon"`
}

// coordinates holds the builtin table of major airports. Stations outside
// this table resolve through the optional store, or not at all.
var coordinates = map[string]Coordinates{
	// North America
	"KJFK": {40.6413, -73.7781},
	"KLAX": {34.0522, -118.2437},
	"KORD": {41.9742, -87.9073},
	"KDEN": {39.8561, -104.6737},
	"KATL": {33.6407, -84.4277},
	"KDFW": {32.8998, -97.0403},
	"KPHX": {33.4484, -112.0740},
	"KLAS": {36.0840, -115.1537},
	"KSEA": {47.4502, -122.3088},
	"KBOS": {42.3656, -71.0096},
	"KMIA": {25.7959, -80.2870},
	"KIAH": {29.9902, -95.3368},

	// Europe
	"EGLL": {51.4700, -0.4543},
	"LFPG": {49.0097, 2.5479},
	"EDDF": {50.0379, 8.5622},
	"EHAM": {52.3105, 4.7683},
	"LEMD": {40.4839, -3.5680},
	"LIRF": {41.8003, 12.2389},
	"LOWW": {48.1103, 16.5697},
	"ESSA": {59.6519, 17.9186},
	"EKCH": {55.6181, 12.6561},
	"EDDM": {48.3537, 11.7750},

	// Asia Pacific
	"VABB": {19.0896, 72.8656},
	"VIDP": {28.5562, 77.1000},
	"VOMM": {13.0827, 80.2707},
	"VOBL": {12.9716, 77.5946},
	"RJTT": {35.7647, 140.3864},
	"RJAA": {35.7720, 140.3928},
	"RKSI": {37.4602, 126.4407},
	"VHHH": {22.3080, 113.9185},
	"WSSS": {1.3644, 103.9915},
	"WIII": {6.1256, 106.6559},
	"YBBN": {-27.3942, 153.1218},
	"YSSY": {-33.9399, 151.1753},
	"YMML": {-37.6690, 144.8410},

	// Middle East
	"OMDB": {25.2532, 55.3657},
	"OERK": {24.9576, 46.6988},
	"OTHH": {25.2731, 51.6080},
	"OJAI": {29.9864, 47.9681},
	"LTBA": {40.9769, 28.8146},

	// Africa
	"HECA": {30.1127, 31.4000},
	"FACT": {-33.9648, 18.6017},
	"FAOR": {-26.1367, 28.2411},
	"FALA": {-8.8583, 13.2312},

	// South America
	"SBGR": {-23.4356, -46.4731},
	"SCEL": {-33.3930, -70.7858},
	"SAEZ": {-34.8222, -58.5358},
	"SKBO": {4.7016, -74.1469},
}

// earthRadiusNM is the mean Earth radius in nautical miles.
const earthRadiusNM = 3440.065

// Lookup returns the coordinates for an ICAO identifier from the builtin
// table. The second return is false for unknown stations.
func Lookup(icao string) (Coordinates, bool) {
	c, ok := coordinates[strings.ToUpper(icao)]
	return c, ok
}

// DistanceNM computes the great-circle distance between two points in
// nautical miles using the haversine formula.
func DistanceNM(a, b Coordinates) float64 {
	lat1 := a.Lat * math.Pi / 180
	lon1 := a.Lon * math.Pi / 180
	lat2 := b.Lat * math.Pi / 180
	lon2 := b.Lon * math.Pi / 180

	dlat := lat2 - lat1
	dlon := lon2 - lon1
	h := math.Sin(dlat/2)*math.Sin(dlat/2) +
		math.Cos(lat1)*math.Cos(lat2)*math.Sin(dlon/2)*math.Sin(dlon/2)
	return 2 * earthRadiusNM * math.Asin(math.Sqrt(h))
}

// RouteDistanceNM sums leg distances along a route. Legs with an unknown
// endpoint contribute nothing.
func RouteDistanceNM(stations []string) float64 {
	total := 0.0
	for i := 0; i+1 < len(stations); i++ {
		from, okFrom := Lookup(stations[i])
		to, okTo := Lookup(stations[i+1])
		if !okFrom || !okTo {
			continue
		}
		total += DistanceNM(from, to)
	}
	return total
}

// RouteCenter returns the mean coordinate of the known stations on a route,
// or a mid-continent default when none resolve.
func RouteCenter(stations []string) Coordinates {
	var lats, lons float64
	n := 0
	for _, s := range stations {
		if c, ok := Lookup(s); ok {
			lats += c.Lat
			lons += c.Lon
			n++
		}
	}
	if n == 0 {
		return Coordinates{Lat: 39.8283, Lon: -98.5795}
	}
	return Coordinates{Lat: lats / float64(n), Lon: lons / float64(n)}
}
