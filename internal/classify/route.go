package classify

import "strings"

// Location is one stop on a route with its combined condition. Unavailable
// marks a stop for which no source returned any data; it stays in the
// briefing rather than being dropped.
type Location struct {
	Station     string   `json:"station"`
	Condition   Combined `json:"condition"`
	Unavailable bool     `json:"unavailable,omitempty"`
}

// CriticalLocation is a stop whose own category is MARGINAL or worse.
type CriticalLocation struct {
	Station  string   `json:"station"`
	Category Category `json:"category"`
	Score    int      `json:"score"`
	Hazards  []Hazard `json:"hazards,omitempty"`
}

// RouteBriefing is the aggregate classification across every stop.
type RouteBriefing struct {
	Locations         []Location         `json:"locations"`
	Overall           Category           `json:"overall_category"`
	MaxScore          int                `json:"max_score"`
	MeanScore         float64            `json:"mean_score"`
	CriticalLocations []CriticalLocation `json:"critical_locations,omitempty"`
	Hazards           []Hazard           `json:"hazards,omitempty"`
	Recommendations   []string           `json:"recommendations"`
}

// Route-level score thresholds.
const (
	routeAdverseMax   = 6
	routeAdverseMean  = 4.0
	routeMarginalMax  = 3
	routeMarginalMean = 2.0
)

// AggregateRoute folds per-stop combined conditions into one briefing.
// Stops marked unavailable are carried but excluded from the statistics.
func AggregateRoute(locations []Location) RouteBriefing {
	rb := RouteBriefing{Locations: locations}

	n := 0
	total := 0
	for _, loc := range locations {
		if loc.Unavailable {
			continue
		}
		n++
		total += loc.Condition.Score
		if loc.Condition.Score > rb.MaxScore {
			rb.MaxScore = loc.Condition.Score
		}
		if loc.Condition.Category >= CategoryMarginal {
			rb.CriticalLocations = append(rb.CriticalLocations, CriticalLocation{
				Station:  loc.Station,
				Category: loc.Condition.Category,
				Score:    loc.Condition.Score,
				Hazards:  loc.Condition.Hazards,
			})
		}
		for _, h := range loc.Condition.Hazards {
			rb.Hazards = dedupeHazard(rb.Hazards, h)
		}
	}
	if n > 0 {
		rb.MeanScore = float64(total) / float64(n)
	}

	switch {
	case n == 0:
		rb.Overall = CategoryUnknown
	case rb.MaxScore >= routeAdverseMax || rb.MeanScore >= routeAdverseMean:
		rb.Overall = CategoryAdverse
	case rb.MaxScore >= routeMarginalMax || rb.MeanScore >= routeMarginalMean:
		rb.Overall = CategoryMarginal
	default:
		rb.Overall = CategoryFavorable
	}

	rb.Recommendations = routeRecommendations(rb)
	return rb
}

// dedupeHazard appends h unless an equal hazard is already present,
// preserving first-seen order.
func dedupeHazard(list []Hazard, h Hazard) []Hazard {
	for _, have := range list {
		if have == h {
			return list
		}
	}
	return append(list, h)
}

func routeRecommendations(rb RouteBriefing) []string {
	var recs []string
	switch rb.Overall {
	case CategoryAdverse:
		recs = append(recs,
			"Consider delaying departure until conditions improve",
			"File alternate airports with better conditions",
			"Carry additional fuel reserves for diversions")
	case CategoryMarginal:
		recs = append(recs,
			"Monitor conditions closely before departure",
			"Review alternate airport options along the route")
	case CategoryFavorable:
		recs = append(recs, "Conditions favorable along the route")
	default:
		recs = append(recs, "Weather data unavailable for all route stops")
	}

	if len(rb.CriticalLocations) > 0 {
		names := make([]string, 0, len(rb.CriticalLocations))
		for _, c := range rb.CriticalLocations {
			names = append(names, c.Station)
		}
		recs = append(recs, "Pay special attention to conditions at: "+strings.Join(names, ", "))
	}
	recs = append(recs,
		"Check NOTAMs for all airports along the route",
		"Review current PIREPs for real-time conditions")
	return recs
}
