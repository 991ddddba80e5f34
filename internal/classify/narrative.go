package classify

import (
	"fmt"
	"strings"
)

// RiskTier is the four-level go/no-go risk assessment for a route.
type RiskTier string

const (
	RiskMinimal  RiskTier = "MINIMAL"
	RiskLow      RiskTier = "LOW"
	RiskModerate RiskTier = "MODERATE"
	RiskHigh     RiskTier = "HIGH"
)

const maxRecommendations = 8
const maxDecisionFactors = 5

// Narrative is the synthesized plain-language briefing for a route.
type Narrative struct {
	ExecutiveSummary string   `json:"executive_summary"`
	Recommendations  []string `json:"recommendations"`
	RiskTier         RiskTier `json:"risk_tier"`
	DecisionFactors  []string `json:"decision_factors,omitempty"`
}

// hazardAdvice maps hazard types to fixed recommendation templates, emitted
// per critical location in input order.
var hazardAdvice = map[string][]string{
	HazardThunderstorms: {
		"Thunderstorms at %s: delay departure or plan a route deviation",
		"Maintain at least 20 NM separation from convective activity near %s",
	},
	HazardLowVisibility: {
		"Low visibility at %s: verify instrument approach minimums",
	},
	HazardLowCeiling: {
		"Low ceilings at %s: confirm alternate requirements and approach minimums",
	},
	HazardStrongWinds: {
		"Strong winds at %s: compute crosswind components before departure and arrival",
	},
	HazardIcing: {
		"Icing conditions at %s: confirm anti-ice equipment and consider altitude changes",
	},
}

// Narrate synthesizes an executive summary, a bounded recommendation list,
// a risk tier and decision factors from a route briefing.
func Narrate(rb RouteBriefing) Narrative {
	n := Narrative{
		RiskTier:         riskTier(rb),
		ExecutiveSummary: executiveSummary(rb),
	}

	seen := map[string]bool{}
	for _, crit := range rb.CriticalLocations {
		for _, h := range crit.Hazards {
			templates, ok := hazardAdvice[h.Type]
			if !ok {
				continue
			}
			key := crit.Station + "/" + h.Type
			if seen[key] {
				continue
			}
			seen[key] = true
			for _, tmpl := range templates {
				n.Recommendations = append(n.Recommendations, fmt.Sprintf(tmpl, crit.Station))
			}
		}
	}

	if rb.MeanScore > 3 {
		n.Recommendations = append(n.Recommendations,
			"Carry additional fuel reserves beyond legal minimums",
			"File at least one alternate airport with better conditions")
	}
	if adverseCount(rb) > 0 {
		n.Recommendations = append(n.Recommendations,
			"Obtain updated weather briefings en route at regular intervals")
	}
	if len(n.Recommendations) == 0 {
		n.Recommendations = []string{
			"Conditions favorable for the planned route",
			"Complete standard preflight weather review",
			"Monitor conditions for unexpected changes",
		}
	}
	if len(n.Recommendations) > maxRecommendations {
		n.Recommendations = n.Recommendations[:maxRecommendations]
	}

	n.DecisionFactors = decisionFactors(rb)
	return n
}

// riskTier derives the tier from critical-condition count and mean severity.
func riskTier(rb RouteBriefing) RiskTier {
	critical := severeCount(rb)
	switch {
	case critical >= 2 || rb.MeanScore >= 6:
		return RiskHigh
	case critical >= 1 || rb.MeanScore >= 3:
		return RiskModerate
	case rb.MeanScore >= 1:
		return RiskLow
	default:
		return RiskMinimal
	}
}

// severeCount counts critical hazards per location, so the same hazard type
// at two stations counts twice. The route-level hazard set is deduplicated
// and would undercount here.
func severeCount(rb RouteBriefing) int {
	count := 0
	for _, crit := range rb.CriticalLocations {
		for _, h := range crit.Hazards {
			if h.Severity == SeverityCritical {
				count++
			}
		}
	}
	return count
}

// adverseCount counts locations classified ADVERSE.
func adverseCount(rb RouteBriefing) int {
	count := 0
	for _, loc := range rb.Locations {
		if loc.Condition.Category == CategoryAdverse {
			count++
		}
	}
	return count
}

func executiveSummary(rb RouteBriefing) string {
	stations := make([]string, 0, len(rb.Locations))
	for _, loc := range rb.Locations {
		stations = append(stations, loc.Station)
	}
	route := strings.Join(stations, " - ")

	switch rb.Overall {
	case CategoryAdverse:
		return fmt.Sprintf("Significant weather hazards along %s. Careful planning and possible delays required.", route)
	case CategoryMarginal:
		return fmt.Sprintf("Marginal conditions along %s. Close monitoring and contingency planning advised.", route)
	case CategoryFavorable:
		return fmt.Sprintf("Generally favorable conditions along %s.", route)
	default:
		return fmt.Sprintf("Insufficient weather data for %s.", route)
	}
}

// decisionFactors lists the strongest go/no-go inputs, capped at five.
func decisionFactors(rb RouteBriefing) []string {
	var factors []string
	factors = append(factors, fmt.Sprintf("Overall route category: %s", rb.Overall))
	if rb.MaxScore > 0 {
		factors = append(factors, fmt.Sprintf("Maximum severity score: %d", rb.MaxScore))
	}
	if len(rb.CriticalLocations) > 0 {
		names := make([]string, 0, len(rb.CriticalLocations))
		for _, c := range rb.CriticalLocations {
			names = append(names, c.Station)
		}
		factors = append(factors, "Stations of concern: "+strings.Join(names, ", "))
	}
	for _, h := range rb.Hazards {
		if h.Severity == SeverityCritical {
			factors = append(factors, "Critical hazard: "+h.Description)
		}
	}
	if len(factors) > maxDecisionFactors {
		factors = factors[:maxDecisionFactors]
	}
	return factors
}
