package decode

import "github.com/HappyMeal-git/aviation-weather-briefing/internal/wx"

// Decoded is the kind-tagged union returned by Decode. Exactly one of the
// three pointers is set for a recognised kind.
type Decoded struct {
	Kind        wx.ReportKind `json:"kind"`
	Observation *Observation  `json:"observation,omitempty"`
	Forecast    *Forecast     `json:"forecast,omitempty"`
	PilotReport *PilotReport  `json:"pilot_report,omitempty"`
}

// Decode dispatches a raw report to the decoder for its kind. Unrecognised
// kinds fall back to the surface-observation decoder, which degrades
// gracefully on any input.
func Decode(report wx.RawReport) Decoded {
	switch report.Kind {
	case wx.KindTAF:
		return Decoded{Kind: report.Kind, Forecast: DecodeTAF(report.Raw)}
	case wx.KindPIREP:
		return Decoded{Kind: report.Kind, PilotReport: DecodePIREP(report.Raw)}
	default:
		obs := DecodeMETAR(report.Raw)
		obs.FlightCategory = report.FlightCategory
		return Decoded{Kind: wx.KindMETAR, Observation: obs}
	}
}
