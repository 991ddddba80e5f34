package notam

import "fmt"

// sampleTexts holds representative notices for well-known airports, used
// when no live NOTAM feed is configured.
var sampleTexts = map[string][]struct{ id, raw string }{
	"KJFK": {
		{"A0001/26", "KJFK RWY 04L/22R CLSD FOR MAINT"},
		{"A0015/26", "KJFK ATIS FREQ CHANGED TO 128.05"},
	},
	"KLAX": {
		{"A0003/26", "KLAX ILS RWY 25L U/S"},
		{"A0012/26", "KLAX CRANE OPERATION 2NM N OF ARPT"},
	},
	"KORD": {
		{"A0007/26", "KORD TWY B CONSTRUCTION WORK"},
		{"A0019/26", "KORD PAPI RWY 10R U/S"},
	},
	"KDEN": {
		{"A0009/26", "KDEN AWOS FREQ CHANGED TO 119.05"},
		{"A0021/26", "KDEN RWY 16R/34L SNOW REMOVAL OPS"},
	},
}

// Samples returns deterministic placeholder notices for a station. Stations
// without a curated set get a single generic frequency notice so the
// briefing flow always has something to categorise.
func Samples(station string) []Notice {
	if texts, ok := sampleTexts[station]; ok {
		out := make([]Notice, 0, len(texts))
		for _, t := range texts {
			out = append(out, Process(t.id, station, t.raw))
		}
		return out
	}

	freq := 10 + hashStation(station)%90
	raw := fmt.Sprintf("%s ATIS FREQ CHANGED TO 127.%02d", station, freq)
	return []Notice{Process(fmt.Sprintf("A%04d/26", 1000+hashStation(station)%9000), station, raw)}
}

func hashStation(s string) int {
	h := 0
	for _, c := range s {
		h = h*31 + int(c)
	}
	if h < 0 {
		h = -h
	}
	return h
}
