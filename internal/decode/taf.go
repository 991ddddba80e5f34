package decode

import (
	"strconv"
	"strings"
)

// DecodeTAF decodes a raw terminal forecast. The header (product marker,
// optional AMD/COR, station, issue time, valid period) is consumed first;
// the remaining tokens are split into change-period groups, each decoded
// with the same condition rules as surface observations.
func DecodeTAF(raw string) *Forecast {
	fc := &Forecast{Raw: strings.TrimSpace(raw)}
	tokens := tokenize(raw)
	if len(tokens) == 0 {
		fc.Unparseable = true
		return fc
	}

	i := 0
header:
	for i < len(tokens) {
		tok := tokens[i]
		switch {
		case tok == "TAF":
			i++
		case tok == "AMD":
			fc.Amended = true
			i++
		case tok == "COR":
			fc.Corrected = true
			i++
		case fc.Station == "" && stationRe.MatchString(tok):
			fc.Station = tok
			i++
		case timeRe.MatchString(tok):
			fc.IssueTime = parseReportTime(tok)
			i++
		case validRe.MatchString(tok):
			fc.ValidFrom, fc.ValidTo = parseValidPeriod(tok)
			i++
			break header
		default:
			break header
		}
	}

	for _, group := range splitPeriodGroups(tokens[i:]) {
		fc.Periods = append(fc.Periods, decodePeriodGroup(group))
	}
	return fc
}

func parseValidPeriod(tok string) (*PeriodTime, *PeriodTime) {
	m := validRe.FindStringSubmatch(tok)
	if m == nil {
		return nil, nil
	}
	fd, _ := strconv.Atoi(m[1])
	fh, _ := strconv.Atoi(m[2])
	td, _ := strconv.Atoi(m[3])
	th, _ := strconv.Atoi(m[4])
	return &PeriodTime{Day: fd, Hour: fh}, &PeriodTime{Day: td, Hour: th}
}

// startsPeriodGroup reports whether a token opens a new change group:
// FM+digits, BECMG, TEMPO, or a bare DDDD/DDDD period.
func startsPeriodGroup(tok string) bool {
	return fmGroupRe.MatchString(tok) || tok == "BECMG" || tok == "TEMPO" || validRe.MatchString(tok)
}

// splitPeriodGroups partitions the forecast body. Tokens before the first
// group marker form the baseline group.
func splitPeriodGroups(tokens []string) [][]string {
	var groups [][]string
	var current []string
	for _, tok := range tokens {
		if startsPeriodGroup(tok) {
			if len(current) > 0 {
				groups = append(groups, current)
			}
			current = []string{tok}
			continue
		}
		current = append(current, tok)
	}
	if len(current) > 0 {
		groups = append(groups, current)
	}
	return groups
}

// decodePeriodGroup decodes one change group. A group with no recognised
// condition tokens still records its change type and leading token.
func decodePeriodGroup(group []string) ForecastPeriod {
	period := ForecastPeriod{Change: ChangeBaseline}
	body := group
	if len(group) > 0 {
		switch lead := group[0]; {
		case fmGroupRe.MatchString(lead):
			period.Change = ChangeFrom
			period.Token = lead
			body = group[1:]
		case lead == "BECMG":
			period.Change = ChangeBecoming
			period.Token = lead
			body = group[1:]
		case lead == "TEMPO":
			period.Change = ChangeTempo
			period.Token = lead
			body = group[1:]
		case validRe.MatchString(lead):
			period.Change = ChangePeriod
			period.Token = lead
			body = group[1:]
		}
	}

	var acc conditions
	decodeConditions(body, &acc)
	period.Wind = acc.wind
	period.Visibility = acc.visibility
	period.Weather = acc.weather
	period.Clouds = acc.clouds
	return period
}
