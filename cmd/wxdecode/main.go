// Command-line decoder for raw aviation weather reports.
//
// Input is either plain raw reports (one per line) or JSONL raw-report
// objects with station/kind/raw fields. The tool autodetects per line,
// decodes METAR/TAF/PIREP text, classifies surface observations, and
// emits one JSON object per report.
package main

import (
	"bufio"
	"encoding/json"
	"flag"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/HappyMeal-git/aviation-weather-briefing/internal/classify"
	"github.com/HappyMeal-git/aviation-weather-briefing/internal/decode"
	"github.com/HappyMeal-git/aviation-weather-briefing/internal/phrase"
	"github.com/HappyMeal-git/aviation-weather-briefing/internal/wx"
)

// DecodeOut is one decoded report with its presentation text and, for
// surface observations, the classified condition.
type DecodeOut struct {
	Report     wx.RawReport        `json:"report"`
	Kind       wx.ReportKind       `json:"kind"`
	Decoded    any                 `json:"decoded,omitempty"`
	Simplified string              `json:"simplified,omitempty"`
	Condition  *classify.Condition `json:"condition,omitempty"`
}

type Stats struct {
	Lines       int
	ParsedJSON  int
	ParsedPlain int
	Skipped     int
	Classified  int
}

func usage(w io.Writer) {
	fmt.Fprintln(w, "wxdecode - decode raw METAR/TAF/PIREP text:")
	fmt.Fprintln(w, "")
	fmt.Fprintln(w, "Usage:")
	fmt.Fprintln(w, "  wxdecode [-input reports.jsonl] [-output out.json] [-pretty] [-stats]")
	fmt.Fprintln(w, "")
	fmt.Fprintln(w, "Notes:")
	fmt.Fprintln(w, "  - Input lines may be raw report text or JSON objects with station/kind/raw.")
	fmt.Fprintln(w, "  - Plain lines are classified by shape: TAF prefix, UA/UUA prefix, else METAR.")
	fmt.Fprintln(w, "")
}

func main() {
	fs := flag.NewFlagSet("wxdecode", flag.ExitOnError)
	inPath := fs.String("input", "", "Input file (default: stdin)")
	outPath := fs.String("output", "", "Output JSON file (default: stdout)")
	pretty := fs.Bool("pretty", false, "Pretty-print JSON output")
	showStats := fs.Bool("stats", false, "Print basic counters to stderr")
	fs.Usage = func() { usage(os.Stderr) }
	_ = fs.Parse(os.Args[1:])

	var r io.Reader = os.Stdin
	if *inPath != "" {
		f, err := os.Open(*inPath)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Failed to open input: %v\n", err)
			os.Exit(1)
		}
		defer f.Close()
		r = f
	}

	scanner := bufio.NewScanner(r)
	buf := make([]byte, 0, 64*1024)
	scanner.Buffer(buf, 1024*1024)

	out := make([]DecodeOut, 0, 256)
	st := &Stats{}

	for scanner.Scan() {
		st.Lines++
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}

		report, kind := decodeLine(line)
		if report.Raw == "" {
			st.Skipped++
			continue
		}
		switch kind {
		case "json":
			st.ParsedJSON++
		case "plain":
			st.ParsedPlain++
		}

		d := decode.Decode(report)
		entry := DecodeOut{Report: report, Kind: d.Kind}
		switch {
		case d.Observation != nil:
			entry.Decoded = d.Observation
			entry.Simplified = phrase.DescribeObservation(d.Observation)
			if !d.Observation.Unparseable {
				cond := classify.Classify(d.Observation)
				entry.Condition = &cond
				st.Classified++
			}
		case d.Forecast != nil:
			entry.Decoded = d.Forecast
			entry.Simplified = phrase.DescribeForecast(d.Forecast)
		case d.PilotReport != nil:
			entry.Decoded = d.PilotReport
			entry.Simplified = phrase.DescribePilotReport(d.PilotReport)
		}
		out = append(out, entry)
	}

	if err := scanner.Err(); err != nil {
		fmt.Fprintf(os.Stderr, "Input read error: %v\n", err)
		os.Exit(1)
	}

	var wout io.Writer = os.Stdout
	if *outPath != "" {
		f, err := os.Create(*outPath)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Failed to create output: %v\n", err)
			os.Exit(1)
		}
		defer f.Close()
		wout = f
	}

	enc, err := marshalJSON(out, *pretty)
	if err != nil {
		fmt.Fprintf(os.Stderr, "JSON encode error: %v\n", err)
		os.Exit(1)
	}
	_, _ = wout.Write(enc)
	if wout == os.Stdout {
		_, _ = wout.Write([]byte("\n"))
	}

	if *showStats {
		fmt.Fprintf(os.Stderr,
			"stats: lines=%d parsed(json=%d plain=%d) skipped=%d classified=%d\n",
			st.Lines, st.ParsedJSON, st.ParsedPlain, st.Skipped, st.Classified,
		)
	}
}

func marshalJSON(v any, pretty bool) ([]byte, error) {
	if pretty {
		return json.MarshalIndent(v, "", "  ")
	}
	return json.Marshal(v)
}

// decodeLine accepts a JSON raw-report object or bare report text.
func decodeLine(line string) (wx.RawReport, string) {
	if strings.HasPrefix(line, "{") {
		var report wx.RawReport
		if err := json.Unmarshal([]byte(line), &report); err == nil && report.Raw != "" {
			if report.Kind == "" {
				report.Kind = kindFromText(report.Raw)
			}
			return report, "json"
		}
		return wx.RawReport{}, ""
	}

	report := wx.RawReport{Raw: line, Kind: kindFromText(line)}
	if fields := strings.Fields(line); len(fields) > 0 {
		station := fields[0]
		if station == "TAF" && len(fields) > 1 {
			station = fields[1]
		}
		if len(station) == 4 && station != "UUA" {
			report.Station = station
		}
	}
	return report, "plain"
}

func kindFromText(raw string) wx.ReportKind {
	switch {
	case strings.HasPrefix(raw, "TAF"):
		return wx.KindTAF
	case strings.HasPrefix(raw, "UA ") || strings.HasPrefix(raw, "UUA "):
		return wx.KindPIREP
	default:
		return wx.KindMETAR
	}
}
