package decode

import "testing"

func TestDecodePIREPFull(t *testing.T) {
	pr := DecodePIREP("UA /OV KJFK /TM 1845 /FL085 /TP C172 /SK BKN065 /TA M05 /TB MOD /IC LGT /RM BUMPY DESCENT")

	if pr.Location != "KJFK" {
		t.Errorf("Location = %q, want %q", pr.Location, "KJFK")
	}
	if pr.Time != "1845" {
		t.Errorf("Time = %q, want %q", pr.Time, "1845")
	}
	if pr.Aircraft != "C172" {
		t.Errorf("Aircraft = %q, want %q", pr.Aircraft, "C172")
	}
	if pr.AltitudeFeet == nil || *pr.AltitudeFeet != 8500 {
		t.Errorf("AltitudeFeet = %v, want 8500", pr.AltitudeFeet)
	}
	if !pr.FlightLevel {
		t.Error("FlightLevel = false, want true for /FL085")
	}
	if pr.Turbulence != "Moderate" {
		t.Errorf("Turbulence = %q, want %q", pr.Turbulence, "Moderate")
	}
	if pr.Icing != "Light" {
		t.Errorf("Icing = %q, want %q", pr.Icing, "Light")
	}
	if pr.Sky != "BKN065" {
		t.Errorf("Sky = %q, want %q", pr.Sky, "BKN065")
	}
	if pr.TemperatureC == nil || *pr.TemperatureC != -5 {
		t.Errorf("TemperatureC = %v, want -5", pr.TemperatureC)
	}
	if pr.Remarks != "BUMPY DESCENT" {
		t.Errorf("Remarks = %q, want %q", pr.Remarks, "BUMPY DESCENT")
	}
}

func TestDecodePIREPIntensityText(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"MOD", "Moderate"},
		{"LGT-MOD", "Light to Moderate"},
		{"MOD-SEV", "Moderate to Severe"},
		{"MOD CHOP", "Moderate CHOP"},
		{"NEG", "None"},
		{"SMTH", "SMTH"},
	}
	for _, tt := range tests {
		if got := decodeIntensityText(tt.in); got != tt.want {
			t.Errorf("decodeIntensityText(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestDecodePIREPMissingMarkers(t *testing.T) {
	pr := DecodePIREP("UA /TB LGT")
	if pr.Location != "" {
		t.Errorf("Location = %q, want empty", pr.Location)
	}
	if pr.Turbulence != "Light" {
		t.Errorf("Turbulence = %q, want %q", pr.Turbulence, "Light")
	}
	if pr.AltitudeFeet != nil {
		t.Errorf("AltitudeFeet = %v, want nil", pr.AltitudeFeet)
	}
	if pr.Unparseable {
		t.Error("Unparseable = true, want false for partial report")
	}
}

func TestDecodePIREPPlainAltitude(t *testing.T) {
	pr := DecodePIREP("UA /OV KDEN /TM 2015 /12500 /TP PA46 /TB LGT-MOD")
	if pr.AltitudeFeet == nil || *pr.AltitudeFeet != 12500 {
		t.Errorf("AltitudeFeet = %v, want 12500", pr.AltitudeFeet)
	}
	if pr.FlightLevel {
		t.Error("FlightLevel = true, want false for plain feet")
	}
}

func TestDecodePIREPEmpty(t *testing.T) {
	pr := DecodePIREP("  ")
	if !pr.Unparseable {
		t.Error("Unparseable = false, want true for empty input")
	}
}
