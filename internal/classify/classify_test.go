package classify

import (
	"strings"
	"testing"
	"time"

	"github.com/HappyMeal-git/aviation-weather-briefing/internal/decode"
)

func TestClassifyMarginalObservation(t *testing.T) {
	obs := decode.DecodeMETAR("KJFK 121851Z 18012G20KT 3SM -RA BKN008 OVC015 22/19 A2992")
	cond := Classify(obs)

	if cond.Score != 4 {
		t.Errorf("Score = %d, want 4", cond.Score)
	}
	if cond.Category != CategoryMarginal {
		t.Errorf("Category = %v, want %v", cond.Category, CategoryMarginal)
	}
	if len(cond.Hazards) == 0 {
		t.Error("expected at least one hazard for low ceiling")
	}
}

func TestClassifyFavorableObservation(t *testing.T) {
	obs := decode.DecodeMETAR("KXXX 010000Z 00000KT 10SM CLR 15/10 A3000")
	cond := Classify(obs)

	if cond.Score != 0 {
		t.Errorf("Score = %d, want 0", cond.Score)
	}
	if cond.Category != CategoryFavorable {
		t.Errorf("Category = %v, want %v", cond.Category, CategoryFavorable)
	}
	if len(cond.Hazards) != 0 {
		t.Errorf("Hazards = %v, want none", cond.Hazards)
	}
}

func TestClassifyNilObservation(t *testing.T) {
	cond := Classify(nil)
	if cond.Category != CategoryUnknown {
		t.Errorf("Category = %v, want %v", cond.Category, CategoryUnknown)
	}
}

func TestClassifyFlightCategoryTag(t *testing.T) {
	tests := []struct {
		name string
		raw  string
		tag  string
		want Category
	}{
		{"vfr low score", "KLAX 010000Z 27005KT 10SM FEW050 20/10 A3001", "VFR", CategoryFavorable},
		{"vfr elevated score", "KLAX 010000Z 27020KT 10SM -RA SCT050 20/10 A3001", "VFR", CategoryMarginal},
		{"mvfr", "KLAX 010000Z 27005KT 4SM BKN020 20/10 A3001", "MVFR", CategoryMarginal},
		{"ifr", "KLAX 010000Z 27005KT 2SM BKN008 20/10 A3001", "IFR", CategoryAdverse},
		{"lifr", "KLAX 010000Z 27005KT 1/2SM OVC002 20/10 A3001", "LIFR", CategoryAdverse},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			obs := decode.DecodeMETAR(tt.raw)
			obs.FlightCategory = tt.tag
			if got := Classify(obs).Category; got != tt.want {
				t.Errorf("Category = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestClassifyThunderstorm(t *testing.T) {
	obs := decode.DecodeMETAR("KDFW 121851Z 20015G25KT 2SM TSRA BKN010CB 28/24 A2985")
	cond := Classify(obs)

	// 2SM +2, ceiling 1000 none, wind eff 25 +3, TS +4, TS-with-rain +3
	if cond.Score < 6 {
		t.Errorf("Score = %d, want >= 6", cond.Score)
	}
	if cond.Category != CategoryAdverse {
		t.Errorf("Category = %v, want %v", cond.Category, CategoryAdverse)
	}
	found := false
	for _, h := range cond.Hazards {
		if h.Type == HazardThunderstorms && h.Severity == SeverityCritical {
			found = true
		}
	}
	if !found {
		t.Error("expected a critical thunderstorms hazard")
	}
}

func TestClassifyFreezing(t *testing.T) {
	obs := decode.DecodeMETAR("KORD 121851Z 36010KT 3SM FZRA OVC008 M02/M04 A2970")
	cond := Classify(obs)
	found := false
	for _, h := range cond.Hazards {
		if h.Type == HazardIcing {
			found = true
		}
	}
	if !found {
		t.Errorf("Hazards = %v, want icing present", cond.Hazards)
	}
}

// Worsening any single factor must never lower the score.
func TestClassifyMonotonicity(t *testing.T) {
	steps := []string{
		"KAAA 010000Z 27005KT 10SM FEW050 20/10 A3001",
		"KAAA 010000Z 27005KT 2SM FEW050 20/10 A3001",
		"KAAA 010000Z 27020KT 2SM FEW050 20/10 A3001",
		"KAAA 010000Z 27020KT 2SM OVC008 20/10 A3001",
		"KAAA 010000Z 27020KT 2SM -RA OVC008 20/10 A3001",
	}
	prev := -1
	for _, raw := range steps {
		score := Classify(decode.DecodeMETAR(raw)).Score
		if score < prev {
			t.Errorf("score decreased to %d for %q", score, raw)
		}
		prev = score
	}
}

func TestClassifyIdempotent(t *testing.T) {
	raw := "KJFK 121851Z 18012G20KT 3SM -RA BKN008 OVC015 22/19 A2992"
	a := Classify(decode.DecodeMETAR(raw))
	b := Classify(decode.DecodeMETAR(raw))
	if a.Score != b.Score || a.Category != b.Category || len(a.Factors) != len(b.Factors) {
		t.Errorf("classification not stable: %+v vs %+v", a, b)
	}
}

func TestCombinePirepEscalation(t *testing.T) {
	surface := Classify(decode.DecodeMETAR("KXXX 010000Z 00000KT 10SM CLR 15/10 A3000"))
	pirep := decode.DecodePIREP("UA /OV KXXX /TM 1845 /FL085 /TP C172 /TB MOD /IC LGT")

	combined := Combine(surface, nil, []*decode.PilotReport{pirep}, time.Now())
	if got := combined.Score - surface.Score; got != 2 {
		t.Errorf("score delta = %d, want 2", got)
	}
	if len(combined.PIREPFactors) == 0 {
		t.Error("expected pilot-report factors")
	}
}

func TestCombineIcingOnlyPirepEscalation(t *testing.T) {
	surface := Classify(decode.DecodeMETAR("KXXX 010000Z 00000KT 10SM CLR 15/10 A3000"))
	// The raw text spells neither ICE nor TURB; only the decoded icing
	// field carries the hazard.
	pirep := decode.DecodePIREP("UA /OV KXXX /TM 1845 /FL080 /TP C172 /IC SEV RIME")
	if pirep.Icing == "" || pirep.Turbulence != "" {
		t.Fatalf("decoded pirep = %+v, want icing only", pirep)
	}

	combined := Combine(surface, nil, []*decode.PilotReport{pirep}, time.Now())
	if got := combined.Score - surface.Score; got != 2 {
		t.Errorf("score delta = %d, want 2", got)
	}
	joined := strings.Join(combined.PIREPFactors, "\n")
	if !strings.Contains(joined, "Icing reported by pilots") {
		t.Errorf("PIREPFactors = %q, want icing factor", combined.PIREPFactors)
	}
}

func TestCombineSmoothReducesScore(t *testing.T) {
	surface := Classify(decode.DecodeMETAR("KXXX 010000Z 27016KT 10SM FEW050 15/10 A3000"))
	pirep := decode.DecodePIREP("UA /OV KXXX /TM 1845 /FL085 /TP C172 /RM SMOOTH RIDE")

	combined := Combine(surface, nil, []*decode.PilotReport{pirep}, time.Now())
	if got := combined.Score; got != surface.Score-1 {
		t.Errorf("Score = %d, want %d", got, surface.Score-1)
	}
}

func TestCombineScoreFloor(t *testing.T) {
	surface := Classify(decode.DecodeMETAR("KXXX 010000Z 00000KT 10SM CLR 15/10 A3000"))
	pirep := decode.DecodePIREP("UA /OV KXXX /TM 1845 /FL085 /TP C172 /RM SMOOTH")

	combined := Combine(surface, nil, []*decode.PilotReport{pirep}, time.Now())
	if combined.Score != 0 {
		t.Errorf("Score = %d, want 0", combined.Score)
	}
}

func TestCombineNeverDowngradesCategory(t *testing.T) {
	surface := Classify(decode.DecodeMETAR("KORD 121851Z 36030G40KT 1/2SM +TSRA OVC003 18/17 A2960"))
	if surface.Category != CategoryAdverse {
		t.Fatalf("surface Category = %v, want %v", surface.Category, CategoryAdverse)
	}
	pirep := decode.DecodePIREP("UA /OV KORD /TM 1845 /FL085 /TP B738 /RM SMOOTH")

	combined := Combine(surface, nil, []*decode.PilotReport{pirep}, time.Now())
	if combined.Category != CategoryAdverse {
		t.Errorf("Category = %v, want %v", combined.Category, CategoryAdverse)
	}
}

func TestCombineForecastDeterioration(t *testing.T) {
	surface := Classify(decode.DecodeMETAR("KXXX 010000Z 00000KT 10SM CLR 15/10 A3000"))
	taf := decode.DecodeTAF("TAF KXXX 011130Z 0112/0212 27008KT P6SM SCT050 TEMPO 0118/0122 4SM TSRA BKN020CB")

	combined := Combine(surface, taf, nil, time.Now())
	if got := combined.Score - surface.Score; got != 2 {
		t.Errorf("score delta = %d, want 2", got)
	}
	if len(combined.TAFFactors) == 0 {
		t.Error("expected forecast factors")
	}
}
