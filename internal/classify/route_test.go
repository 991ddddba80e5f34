package classify

import (
	"strings"
	"testing"
)

func loc(station string, score int, cat Category, hazards ...Hazard) Location {
	return Location{
		Station: station,
		Condition: Combined{Condition: Condition{
			Category: cat,
			Score:    score,
			Hazards:  hazards,
		}},
	}
}

func TestAggregateRouteOverall(t *testing.T) {
	tests := []struct {
		name string
		locs []Location
		want Category
	}{
		{
			"all favorable",
			[]Location{loc("KAAA", 0, CategoryFavorable), loc("KBBB", 1, CategoryFavorable)},
			CategoryFavorable,
		},
		{
			"max triggers marginal",
			[]Location{loc("KAAA", 0, CategoryFavorable), loc("KBBB", 3, CategoryMarginal)},
			CategoryMarginal,
		},
		{
			"mean triggers marginal",
			[]Location{loc("KAAA", 2, CategoryFavorable), loc("KBBB", 2, CategoryFavorable)},
			CategoryMarginal,
		},
		{
			"max triggers adverse",
			[]Location{loc("KAAA", 0, CategoryFavorable), loc("KBBB", 7, CategoryAdverse)},
			CategoryAdverse,
		},
		{
			"mean triggers adverse",
			[]Location{loc("KAAA", 4, CategoryMarginal), loc("KBBB", 4, CategoryMarginal)},
			CategoryAdverse,
		},
		{
			"all unavailable",
			[]Location{{Station: "KAAA", Unavailable: true}},
			CategoryUnknown,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := AggregateRoute(tt.locs).Overall; got != tt.want {
				t.Errorf("Overall = %v, want %v", got, tt.want)
			}
		})
	}
}

// The overall tier can never fall below what the worst stop alone justifies.
func TestAggregateRouteNeverBelowMax(t *testing.T) {
	locs := []Location{
		loc("KAAA", 0, CategoryFavorable),
		loc("KBBB", 0, CategoryFavorable),
		loc("KCCC", 0, CategoryFavorable),
		loc("KDDD", 8, CategoryAdverse),
	}
	rb := AggregateRoute(locs)
	if rb.Overall != CategoryAdverse {
		t.Errorf("Overall = %v, want %v despite low mean", rb.Overall, CategoryAdverse)
	}
}

func TestAggregateRouteCriticalLocations(t *testing.T) {
	h := Hazard{Type: HazardLowCeiling, Severity: SeverityCritical, Description: "Ceiling 300 ft"}
	rb := AggregateRoute([]Location{
		loc("KAAA", 0, CategoryFavorable),
		loc("KBBB", 6, CategoryAdverse, h),
	})

	if len(rb.CriticalLocations) != 1 || rb.CriticalLocations[0].Station != "KBBB" {
		t.Fatalf("CriticalLocations = %+v, want KBBB only", rb.CriticalLocations)
	}
	if len(rb.CriticalLocations[0].Hazards) != 1 {
		t.Errorf("critical hazards = %+v, want one", rb.CriticalLocations[0].Hazards)
	}

	found := false
	for _, rec := range rb.Recommendations {
		if strings.Contains(rec, "Pay special attention to conditions at: KBBB") {
			found = true
		}
	}
	if !found {
		t.Errorf("Recommendations = %v, want critical call-out", rb.Recommendations)
	}
}

func TestAggregateRouteHazardDedup(t *testing.T) {
	h1 := Hazard{Type: HazardStrongWinds, Severity: SeverityModerate, Description: "Moderate winds - monitor crosswind components"}
	h2 := Hazard{Type: HazardLowVisibility, Severity: SeverityCritical, Description: "Visibility 0.5 SM"}
	rb := AggregateRoute([]Location{
		loc("KAAA", 3, CategoryMarginal, h1),
		loc("KBBB", 3, CategoryMarginal, h1, h2),
	})

	if len(rb.Hazards) != 2 {
		t.Fatalf("Hazards = %+v, want 2 after dedup", rb.Hazards)
	}
	if rb.Hazards[0] != h1 || rb.Hazards[1] != h2 {
		t.Errorf("Hazards = %+v, want first-seen order [winds, visibility]", rb.Hazards)
	}
}

func TestAggregateRouteUnavailableCarried(t *testing.T) {
	rb := AggregateRoute([]Location{
		loc("KAAA", 0, CategoryFavorable),
		{Station: "KZZZ", Unavailable: true},
	})
	if len(rb.Locations) != 2 {
		t.Fatalf("Locations = %+v, want unavailable stop carried", rb.Locations)
	}
	if rb.MeanScore != 0 {
		t.Errorf("MeanScore = %g, want unavailable stop excluded", rb.MeanScore)
	}
	if rb.Overall != CategoryFavorable {
		t.Errorf("Overall = %v, want %v", rb.Overall, CategoryFavorable)
	}
}

func TestRouteRecommendationsBoilerplate(t *testing.T) {
	rb := AggregateRoute([]Location{loc("KAAA", 7, CategoryAdverse)})
	joined := strings.Join(rb.Recommendations, "\n")
	for _, want := range []string{"delaying departure", "Check NOTAMs", "Review current PIREPs"} {
		if !strings.Contains(joined, want) {
			t.Errorf("Recommendations missing %q:\n%s", want, joined)
		}
	}
}
