package common_utils

import (
	"fmt"
	"strings"
	"time"
)

const dateTimeLayout = "2006-01-02T15:04:05"

// GetTimeAsStr formats t the way controllers expect. The timezone
// argument carries the raw Device.Time.LocalTimeZone value; only its
// first comma separated field is inspected, and only the CST6CDT zone
// maps to a numeric offset. Everything else is reported as UTC.
func GetTimeAsStr(t time.Time, timezone string) string {
	tzPart := ""
	if timezone != "" {
		tzPart = strings.Split(timezone, ",")[0]
	}

	asStr := t.Format(dateTimeLayout)
	if tzPart == "CST6CDT" {
		return asStr + "-06:00"
	}
	return asStr + "Z"
}

// ParseTimeStr parses the date and time portion of a value produced by
// GetTimeAsStr, ignoring any zone suffix.
func ParseTimeStr(s string) (time.Time, error) {
	if len(s) < len(dateTimeLayout) {
		return time.Time{}, fmt.Errorf("time value %q too short", s)
	}
	return time.Parse(dateTimeLayout, s[:len(dateTimeLayout)])
}
