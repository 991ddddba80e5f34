package decode

import "testing"

const sampleTAF = "TAF KJFK 121720Z 1218/1324 18012KT P6SM SCT050 FM122000 20015G25KT 4SM -SHRA BKN020 TEMPO 1320/1324 2SM TSRA OVC010CB"

func TestDecodeTAFHeader(t *testing.T) {
	fc := DecodeTAF(sampleTAF)

	if fc.Station != "KJFK" {
		t.Errorf("Station = %q, want %q", fc.Station, "KJFK")
	}
	if fc.IssueTime == nil || fc.IssueTime.Day != 12 || fc.IssueTime.Hour != 17 || fc.IssueTime.Minute != 20 {
		t.Errorf("IssueTime = %+v, want 12th 17:20Z", fc.IssueTime)
	}
	if fc.ValidFrom == nil || fc.ValidFrom.Day != 12 || fc.ValidFrom.Hour != 18 {
		t.Errorf("ValidFrom = %+v, want day 12 hour 18", fc.ValidFrom)
	}
	if fc.ValidTo == nil || fc.ValidTo.Day != 13 || fc.ValidTo.Hour != 24 {
		t.Errorf("ValidTo = %+v, want day 13 hour 24", fc.ValidTo)
	}
}

func TestDecodeTAFPeriods(t *testing.T) {
	fc := DecodeTAF(sampleTAF)

	if len(fc.Periods) != 4 {
		t.Fatalf("len(Periods) = %d, want 4", len(fc.Periods))
	}

	base := fc.Periods[0]
	if base.Change != ChangeBaseline {
		t.Errorf("Periods[0].Change = %v, want %v", base.Change, ChangeBaseline)
	}
	if base.Wind == nil || base.Wind.SpeedKt != 12 {
		t.Errorf("baseline wind = %+v, want 12 kt", base.Wind)
	}
	if base.Visibility == nil || !base.Visibility.OrMore {
		t.Errorf("baseline visibility = %+v, want or-more sentinel", base.Visibility)
	}

	fm := fc.Periods[1]
	if fm.Change != ChangeFrom || fm.Token != "FM122000" {
		t.Errorf("Periods[1] = %v %q, want FROM FM122000", fm.Change, fm.Token)
	}
	if fm.Wind == nil || fm.Wind.GustKt == nil || *fm.Wind.GustKt != 25 {
		t.Errorf("FM wind = %+v, want gust 25", fm.Wind)
	}
	if len(fm.Weather) != 1 || fm.Weather[0].Description() != "light showers rain" {
		t.Errorf("FM weather = %+v, want light showers rain", fm.Weather)
	}

	tempo := fc.Periods[2]
	if tempo.Change != ChangeTempo {
		t.Errorf("Periods[2].Change = %v, want %v", tempo.Change, ChangeTempo)
	}

	window := fc.Periods[3]
	if window.Change != ChangePeriod || window.Token != "1320/1324" {
		t.Errorf("Periods[3] = %v %q, want PERIOD 1320/1324", window.Change, window.Token)
	}
	if len(window.Weather) != 1 || window.Weather[0].Description() != "thunderstorm rain" {
		t.Errorf("window weather = %+v, want thunderstorm rain", window.Weather)
	}
}

func TestDecodeTAFAmended(t *testing.T) {
	fc := DecodeTAF("TAF AMD KBOS 121720Z 1218/1324 27008KT P6SM FEW250")
	if !fc.Amended {
		t.Error("Amended = false, want true")
	}
	if fc.Station != "KBOS" {
		t.Errorf("Station = %q, want %q", fc.Station, "KBOS")
	}
}

func TestDecodeTAFBecoming(t *testing.T) {
	fc := DecodeTAF("TAF KSEA 121720Z 1218/1324 18005KT P6SM SCT040 BECMG 1300/1302 25012KT BKN015")
	if len(fc.Periods) != 3 {
		t.Fatalf("len(Periods) = %d, want 3", len(fc.Periods))
	}
	if fc.Periods[1].Change != ChangeBecoming {
		t.Errorf("Periods[1].Change = %v, want %v", fc.Periods[1].Change, ChangeBecoming)
	}
}

func TestDecodeTAFEmpty(t *testing.T) {
	fc := DecodeTAF("")
	if !fc.Unparseable {
		t.Error("Unparseable = false, want true for empty input")
	}
	if len(fc.Periods) != 0 {
		t.Errorf("Periods = %+v, want none", fc.Periods)
	}
}
