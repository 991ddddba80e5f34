// Package wx provides the raw aviation report types shared by the fetch,
// decode, and ingest layers.
package wx

import (
	"sort"
	"time"
)

// ReportKind identifies the encoding of a raw report.
type ReportKind string

const (
	KindMETAR ReportKind = "METAR" // routine surface observation
	KindTAF   ReportKind = "TAF"   // terminal forecast
	KindPIREP ReportKind = "PIREP" // pilot report
)

// RawReport is one report as received from an upstream provider.
// It is immutable once constructed; decoding produces new values.
type RawReport struct {
	Station    string     `json:"station"`
	Kind       ReportKind `json:"kind"`
	Raw        string     `json:"raw"`
	ObservedAt *time.Time `json:"observed_at,omitempty"`
	ReceivedAt *time.Time `json:"received_at,omitempty"`

	// FlightCategory is the provider-supplied VFR/MVFR/IFR/LIFR tag, if any.
	// The decoder passes it through verbatim; it never derives one itself.
	FlightCategory string `json:"flight_category,omitempty"`
}

// sortKey returns the timestamp used for newest-first ordering: observation
// time when present, receipt time otherwise, zero when neither is known.
func (r *RawReport) sortKey() time.Time {
	if r.ObservedAt != nil {
		return *r.ObservedAt
	}
	if r.ReceivedAt != nil {
		return *r.ReceivedAt
	}
	return time.Time{}
}

// SortNewestFirst orders reports newest-observation-first, falling back to
// receipt time and then to a zero sentinel. The sort is stable, so reports
// with equal (or equally unknown) timestamps keep their input order.
func SortNewestFirst(reports []RawReport) {
	sort.SliceStable(reports, func(i, j int) bool {
		return reports[i].sortKey().After(reports[j].sortKey())
	})
}
