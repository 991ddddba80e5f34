package decode

import (
	"regexp"
	"strconv"
	"strings"
)

// PIREP slash-marker patterns. Markers may appear anywhere in the report;
// each extracts one labelled field.
var (
	pirepLocRe  = regexp.MustCompile(`/OV\s+([A-Z0-9\-]+)`)
	pirepTimeRe = regexp.MustCompile(`/TM\s+(\d{4})`)
	pirepTypeRe = regexp.MustCompile(`/TP\s+([A-Z0-9]+)`)
	pirepAltRe  = regexp.MustCompile(`/FL(\d{3})|/(\d{3,5})\b`)
	pirepTurbRe = regexp.MustCompile(`/TB\s+([^/]+)`)
	pirepIceRe  = regexp.MustCompile(`/IC\s+([^/]+)`)
	pirepSkyRe  = regexp.MustCompile(`/SK\s+([^/]+)`)
	pirepTempRe = regexp.MustCompile(`/TA\s+(M?-?\d{1,2})`)
	pirepRmkRe  = regexp.MustCompile(`/RM\s+(.+)$`)
)

// DecodePIREP decodes a raw pilot report. Fields are extracted wherever
// their slash marker appears, independent of order; absent markers leave the
// corresponding field empty.
func DecodePIREP(raw string) *PilotReport {
	pr := &PilotReport{Raw: strings.TrimSpace(raw)}
	if pr.Raw == "" {
		pr.Unparseable = true
		return pr
	}
	text := strings.ToUpper(pr.Raw)

	if m := pirepLocRe.FindStringSubmatch(text); m != nil {
		pr.Location = m[1]
	}
	if m := pirepTimeRe.FindStringSubmatch(text); m != nil {
		pr.Time = m[1]
	}
	if m := pirepTypeRe.FindStringSubmatch(text); m != nil {
		pr.Aircraft = m[1]
	}
	if m := pirepAltRe.FindStringSubmatch(text); m != nil {
		digits := m[1]
		if digits == "" {
			digits = m[2]
		}
		if n, err := strconv.Atoi(digits); err == nil {
			feet := n
			if len(digits) == 3 {
				// Flight-level shorthand: hundreds of feet.
				feet = n * 100
				pr.FlightLevel = true
			}
			pr.AltitudeFeet = &feet
		}
	}
	if m := pirepTurbRe.FindStringSubmatch(text); m != nil {
		pr.Turbulence = decodeIntensityText(m[1])
	}
	if m := pirepIceRe.FindStringSubmatch(text); m != nil {
		pr.Icing = decodeIntensityText(m[1])
	}
	if m := pirepSkyRe.FindStringSubmatch(text); m != nil {
		pr.Sky = strings.TrimSpace(m[1])
	}
	if m := pirepTempRe.FindStringSubmatch(text); m != nil {
		s := strings.Replace(m[1], "M", "-", 1)
		if v, err := strconv.Atoi(s); err == nil {
			pr.TemperatureC = &v
		}
	}
	if m := pirepRmkRe.FindStringSubmatch(text); m != nil {
		pr.Remarks = strings.TrimSpace(m[1])
	}
	return pr
}

// decodeIntensityText maps PIREP turbulence/icing shorthand through the
// intensity table, keeping any remaining words (e.g. "MOD CHOP" becomes
// "Moderate CHOP"). Unrecognised text passes through trimmed.
func decodeIntensityText(s string) string {
	s = strings.TrimSpace(s)
	for _, entry := range pirepIntensity {
		idx := strings.Index(s, entry.Code)
		if idx < 0 {
			continue
		}
		rest := strings.TrimSpace(s[:idx] + s[idx+len(entry.Code):])
		if rest == "" {
			return entry.Word
		}
		return entry.Word + " " + rest
	}
	return s
}
