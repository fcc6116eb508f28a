package common_utils

import (
	"testing"
	"time"
)

func TestGetTimeAsStr(t *testing.T) {
	when := time.Date(2026, 8, 25, 14, 30, 5, 0, time.UTC)

	tds := []struct {
		desc     string
		timezone string
		want     string
	}{
		{"no timezone", "", "2026-08-25T14:30:05Z"},
		{"central timezone", "CST6CDT,M3.2.0,M11.1.0", "2026-08-25T14:30:05-06:00"},
		{"central timezone no rules", "CST6CDT", "2026-08-25T14:30:05-06:00"},
		{"other timezone", "EST5EDT,M3.2.0,M11.1.0", "2026-08-25T14:30:05Z"},
	}

	for _, td := range tds {
		t.Run(td.desc, func(t *testing.T) {
			if got := GetTimeAsStr(when, td.timezone); got != td.want {
				t.Errorf("GetTimeAsStr(%q) = %q, want %q", td.timezone, got, td.want)
			}
		})
	}
}

func TestParseTimeStr(t *testing.T) {
	got, err := ParseTimeStr("2026-08-25T14:30:05Z")
	if err != nil {
		t.Fatalf("ParseTimeStr failed: %v", err)
	}
	want := time.Date(2026, 8, 25, 14, 30, 5, 0, time.UTC)
	if !got.Equal(want) {
		t.Errorf("ParseTimeStr = %v, want %v", got, want)
	}

	// Zone suffix beyond the seconds field is ignored.
	got, err = ParseTimeStr("2026-08-25T14:30:05-06:00")
	if err != nil {
		t.Fatalf("ParseTimeStr failed: %v", err)
	}
	if !got.Equal(want) {
		t.Errorf("ParseTimeStr = %v, want %v", got, want)
	}

	if _, err := ParseTimeStr("2026-08-25"); err == nil {
		t.Error("ParseTimeStr accepted a short value")
	}
}

func TestCounterTypeString(t *testing.T) {
	tds := []struct {
		cnt  CounterType
		want string
	}{
		{USP_GET, "USP get"},
		{USP_SET, "USP set"},
		{USP_OPERATE, "USP operate"},
		{USP_UNKNOWN, "USP unknown"},
		{COUNTER_SIZE, ""},
	}
	for _, td := range tds {
		if got := td.cnt.String(); got != td.want {
			t.Errorf("CounterType(%d).String() = %q, want %q", td.cnt, got, td.want)
		}
	}
}

func TestIncCounter(t *testing.T) {
	before := ReadCounter(USP_GET)
	IncCounter(USP_GET)
	if got := ReadCounter(USP_GET); got != before+1 {
		t.Errorf("ReadCounter(USP_GET) = %d, want %d", got, before+1)
	}
}
