// Package flightplan extracts airport identifiers and route details from
// free-form flight-plan text.
package flightplan

import (
	"regexp"
	"strconv"
	"strings"
)

var (
	icaoRe     = regexp.MustCompile(`\b[A-Z]{4}\b`)
	fromToRe   = regexp.MustCompile(`FROM\s+([A-Z]{3,4})\s+TO\s+([A-Z]{3,4})`)
	depArrRe   = regexp.MustCompile(`DEP:?\s*([A-Z]{3,4}).*ARR:?\s*([A-Z]{3,4})`)
	waypointRe = regexp.MustCompile(`([A-Z]{4})(?:\.\.|->|>|-)([A-Z]{4})`)
	altitudeRe = regexp.MustCompile(`FL(\d{3})|(\d{3,5})\s*FT|ALT\s*(\d{3,5})`)
	aircraftRe = regexp.MustCompile(`ACFT[:\s]*([A-Z0-9]{2,4})|TYPE[:\s]*([A-Z0-9]{2,4})`)
)

// nonAirportWords are 4-letter words common in flight-plan text that look
// like ICAO codes but never are: planning vocabulary plus frequent English
// filler words.
var nonAirportWords = map[string]bool{
	"FUEL": true, "TIME": true, "DIST": true, "PLAN": true, "ROUT": true,
	"ROUTE": true, "FROM": true, "DEST": true, "DEPA": true, "ARRI": true,
	"WAYP": true, "ALTN": true, "RMKS": true, "INFO": true, "DATA": true,
	"FILE": true, "ACFT": true, "TYPE": true,
	"HERE": true, "THIS": true, "THAT": true, "WITH": true, "THEN": true,
	"WHEN": true, "WILL": true, "ALSO": true, "OVER": true, "NEAR": true,
	"INTO": true, "THRU": true, "EACH": true, "SOME": true, "NOTE": true,
}

// Route is the structured result of parsing flight-plan text.
type Route struct {
	Airports     []string `json:"airports"`
	Departure    string   `json:"departure,omitempty"`
	Arrival      string   `json:"arrival,omitempty"`
	Waypoints    []string `json:"waypoints,omitempty"`
	AltitudeFeet *int     `json:"altitude_feet,omitempty"`
	AircraftType string   `json:"aircraft_type,omitempty"`
	Raw          string   `json:"raw"`
}

// Airports extracts airport identifiers from flight-plan text, in route
// order, deduplicated. Several common layouts are tried: bare ICAO lists,
// FROM/TO phrasing, DEP/ARR labels, and waypoint chains.
func Airports(text string) []string {
	if strings.TrimSpace(text) == "" {
		return nil
	}
	upper := strings.ToUpper(strings.TrimSpace(text))

	var found []string
	for _, code := range icaoRe.FindAllString(upper, -1) {
		if !nonAirportWords[code] {
			found = append(found, code)
		}
	}

	if m := fromToRe.FindStringSubmatch(upper); m != nil {
		found = prependIfMissing(found, m[1])
		found = append(found, m[2])
	}
	if m := depArrRe.FindStringSubmatch(upper); m != nil {
		found = prependIfMissing(found, m[1])
		found = append(found, m[2])
	}
	for _, m := range waypointRe.FindAllStringSubmatch(upper, -1) {
		found = append(found, m[1], m[2])
	}

	var unique []string
	seen := map[string]bool{}
	for _, code := range found {
		if !seen[code] {
			seen[code] = true
			unique = append(unique, code)
		}
	}
	return unique
}

func prependIfMissing(list []string, code string) []string {
	for _, have := range list {
		if have == code {
			return list
		}
	}
	return append([]string{code}, list...)
}

// Parse extracts the full route record: airports plus cruise altitude and
// aircraft type when the text carries them.
func Parse(text string) Route {
	route := Route{Raw: text, Airports: Airports(text)}
	if len(route.Airports) > 0 {
		route.Departure = route.Airports[0]
		route.Arrival = route.Airports[len(route.Airports)-1]
	}
	if len(route.Airports) > 2 {
		route.Waypoints = route.Airports[1 : len(route.Airports)-1]
	}

	upper := strings.ToUpper(text)
	if m := altitudeRe.FindStringSubmatch(upper); m != nil {
		switch {
		case m[1] != "":
			if fl, err := strconv.Atoi(m[1]); err == nil {
				feet := fl * 100
				route.AltitudeFeet = &feet
			}
		case m[2] != "":
			if feet, err := strconv.Atoi(m[2]); err == nil {
				route.AltitudeFeet = &feet
			}
		case m[3] != "":
			if feet, err := strconv.Atoi(m[3]); err == nil {
				route.AltitudeFeet = &feet
			}
		}
	}
	if m := aircraftRe.FindStringSubmatch(upper); m != nil {
		route.AircraftType = m[1]
		if route.AircraftType == "" {
			route.AircraftType = m[2]
		}
	}
	return route
}
