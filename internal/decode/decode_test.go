package decode

import (
	"testing"

	"github.com/HappyMeal-git/aviation-weather-briefing/internal/wx"
)

func TestDecodeDispatch(t *testing.T) {
	metar := Decode(wx.RawReport{
		Kind:           wx.KindMETAR,
		Raw:            "KJFK 121851Z 18012KT 10SM CLR 22/19 A2992",
		FlightCategory: "VFR",
	})
	if metar.Observation == nil || metar.Forecast != nil || metar.PilotReport != nil {
		t.Fatalf("METAR decode = %+v, want observation only", metar)
	}
	if metar.Observation.FlightCategory != "VFR" {
		t.Errorf("FlightCategory = %q, want %q", metar.Observation.FlightCategory, "VFR")
	}

	taf := Decode(wx.RawReport{Kind: wx.KindTAF, Raw: "TAF KJFK 121720Z 1218/1324 18012KT P6SM SCT050"})
	if taf.Forecast == nil || taf.Observation != nil {
		t.Fatalf("TAF decode = %+v, want forecast only", taf)
	}

	pirep := Decode(wx.RawReport{Kind: wx.KindPIREP, Raw: "UA /OV KJFK /TM 1845 /FL085 /TP C172 /TB MOD"})
	if pirep.PilotReport == nil || pirep.Observation != nil {
		t.Fatalf("PIREP decode = %+v, want pilot report only", pirep)
	}
}

func TestDecodeUnknownKindFallsBack(t *testing.T) {
	d := Decode(wx.RawReport{Kind: wx.ReportKind("SPECI"), Raw: "KJFK 121851Z 18012KT 10SM CLR"})
	if d.Kind != wx.KindMETAR || d.Observation == nil {
		t.Errorf("unknown kind decode = %+v, want observation fallback", d)
	}
}
