package classify

import (
	"strings"
	"testing"
)

func TestNarrateRiskTier(t *testing.T) {
	critical := Hazard{Type: HazardThunderstorms, Severity: SeverityCritical, Description: "Thunderstorms"}
	critical2 := Hazard{Type: HazardIcing, Severity: SeverityCritical, Description: "Icing"}

	critLoc := func(station string, hazards ...Hazard) CriticalLocation {
		return CriticalLocation{Station: station, Category: CategoryAdverse, Hazards: hazards}
	}

	tests := []struct {
		name string
		rb   RouteBriefing
		want RiskTier
	}{
		{"minimal", RouteBriefing{MeanScore: 0}, RiskMinimal},
		{"low", RouteBriefing{MeanScore: 1.5}, RiskLow},
		{"moderate by mean", RouteBriefing{MeanScore: 3.5}, RiskModerate},
		{"moderate by critical", RouteBriefing{MeanScore: 0, Hazards: []Hazard{critical},
			CriticalLocations: []CriticalLocation{critLoc("KAAA", critical)}}, RiskModerate},
		{"high by mean", RouteBriefing{MeanScore: 6.5}, RiskHigh},
		{"high by criticals at one stop", RouteBriefing{MeanScore: 0, Hazards: []Hazard{critical, critical2},
			CriticalLocations: []CriticalLocation{critLoc("KAAA", critical, critical2)}}, RiskHigh},
		// The route hazard set dedupes by type; the per-location count must not.
		{"high by same hazard at two stops", RouteBriefing{MeanScore: 4, Hazards: []Hazard{critical},
			CriticalLocations: []CriticalLocation{critLoc("KAAA", critical), critLoc("KBBB", critical)}}, RiskHigh},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Narrate(tt.rb).RiskTier; got != tt.want {
				t.Errorf("RiskTier = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestNarrateHazardRecommendations(t *testing.T) {
	rb := RouteBriefing{
		Overall:   CategoryAdverse,
		MeanScore: 5,
		Locations: []Location{{
			Station:   "KDFW",
			Condition: Combined{Condition: Condition{Category: CategoryAdverse, Score: 9}},
		}},
		Hazards: []Hazard{
			{Type: HazardThunderstorms, Severity: SeverityCritical, Description: "Thunderstorms"},
		},
		CriticalLocations: []CriticalLocation{{
			Station:  "KDFW",
			Category: CategoryAdverse,
			Score:    9,
			Hazards: []Hazard{
				{Type: HazardThunderstorms, Severity: SeverityCritical, Description: "Thunderstorms"},
				{Type: HazardLowVisibility, Severity: SeverityCritical, Description: "Visibility 1 SM"},
			},
		}},
	}
	n := Narrate(rb)

	joined := strings.Join(n.Recommendations, "\n")
	for _, want := range []string{
		"Thunderstorms at KDFW",
		"Low visibility at KDFW",
		"fuel reserves",
		"updated weather briefings en route",
	} {
		if !strings.Contains(joined, want) {
			t.Errorf("Recommendations missing %q:\n%s", want, joined)
		}
	}
	if len(n.Recommendations) > maxRecommendations {
		t.Errorf("len(Recommendations) = %d, want <= %d", len(n.Recommendations), maxRecommendations)
	}
}

func TestNarrateAdverseLocationGetsEnRouteBriefings(t *testing.T) {
	// A stop can be ADVERSE on accumulated moderate hazards alone; the
	// en-route update guidance keys off the category, not critical hazards.
	rb := RouteBriefing{
		Overall:   CategoryAdverse,
		MaxScore:  7,
		MeanScore: 7,
		Locations: []Location{{
			Station: "KAAA",
			Condition: Combined{Condition: Condition{
				Category: CategoryAdverse,
				Score:    7,
				Hazards: []Hazard{
					{Type: HazardStrongWinds, Severity: SeverityModerate, Description: "Gusts to 30 knots"},
					{Type: HazardLowVisibility, Severity: SeverityModerate, Description: "Visibility 2 SM"},
					{Type: HazardLowCeiling, Severity: SeverityModerate, Description: "Ceiling 700 ft"},
				},
			}},
		}},
	}
	n := Narrate(rb)

	joined := strings.Join(n.Recommendations, "\n")
	if !strings.Contains(joined, "updated weather briefings en route") {
		t.Errorf("Recommendations missing en-route update guidance:\n%s", joined)
	}
}

func TestNarrateFavorableFallback(t *testing.T) {
	rb := RouteBriefing{
		Overall:   CategoryFavorable,
		MeanScore: 0,
		Locations: []Location{{Station: "KAAA"}, {Station: "KBBB"}},
	}
	n := Narrate(rb)

	if len(n.Recommendations) != 3 {
		t.Fatalf("Recommendations = %v, want the favorable triplet", n.Recommendations)
	}
	if !strings.Contains(n.Recommendations[0], "favorable") {
		t.Errorf("Recommendations[0] = %q, want favorable wording", n.Recommendations[0])
	}
	if !strings.Contains(n.ExecutiveSummary, "KAAA - KBBB") {
		t.Errorf("ExecutiveSummary = %q, want route listing", n.ExecutiveSummary)
	}
}

func TestNarrateRecommendationCap(t *testing.T) {
	hazards := []Hazard{
		{Type: HazardThunderstorms, Severity: SeverityCritical, Description: "Thunderstorms"},
		{Type: HazardLowVisibility, Severity: SeverityCritical, Description: "Visibility 0.5 SM"},
		{Type: HazardLowCeiling, Severity: SeverityCritical, Description: "Ceiling 200 ft"},
		{Type: HazardStrongWinds, Severity: SeverityCritical, Description: "Severe winds"},
		{Type: HazardIcing, Severity: SeverityCritical, Description: "Icing"},
	}
	rb := RouteBriefing{
		Overall:   CategoryAdverse,
		MeanScore: 8,
		Hazards:   hazards,
		CriticalLocations: []CriticalLocation{
			{Station: "KAAA", Category: CategoryAdverse, Hazards: hazards},
			{Station: "KBBB", Category: CategoryAdverse, Hazards: hazards},
		},
	}
	n := Narrate(rb)

	if len(n.Recommendations) != maxRecommendations {
		t.Errorf("len(Recommendations) = %d, want %d", len(n.Recommendations), maxRecommendations)
	}
	if len(n.DecisionFactors) > maxDecisionFactors {
		t.Errorf("len(DecisionFactors) = %d, want <= %d", len(n.DecisionFactors), maxDecisionFactors)
	}
}

func TestNarrateDecisionFactors(t *testing.T) {
	rb := RouteBriefing{
		Overall:  CategoryMarginal,
		MaxScore: 4,
		CriticalLocations: []CriticalLocation{
			{Station: "KBOS", Category: CategoryMarginal, Score: 4},
		},
	}
	n := Narrate(rb)

	joined := strings.Join(n.DecisionFactors, "\n")
	for _, want := range []string{"Overall route category: MARGINAL", "Maximum severity score: 4", "Stations of concern: KBOS"} {
		if !strings.Contains(joined, want) {
			t.Errorf("DecisionFactors missing %q:\n%s", want, joined)
		}
	}
}
