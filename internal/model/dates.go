package model

import (
	"fmt"
	"strconv"
	"strings"
	"time"
)

// Date and time layouts accepted throughout the service.  Customers may
// type a visit date either in the numeric form "24.12.2025" or the long
// form "24 December 2025"; both are accepted everywhere a date is parsed.
const (
	DateLayoutNumeric = "02.01.2006"
	DateLayoutLong    = "2 January 2006"
	TimeLayout        = "15:04"
	TimestampLayout   = "02.01.2006 15:04"
)

// ParseVisitDate parses a customer-entered calendar date.  The numeric
// layout is tried first, then the long month-name layout.
func ParseVisitDate(s string) (time.Time, error) {
	s = strings.TrimSpace(s)
	if t, err := time.Parse(DateLayoutNumeric, s); err == nil {
		return t, nil
	}
	if t, err := time.Parse(DateLayoutLong, s); err == nil {
		return t, nil
	}
	return time.Time{}, fmt.Errorf("unrecognised date %q", s)
}

// FormatVisitDate renders a date in the long form used for keyboards and
// slot suggestions, e.g. "25 December 2025".
func FormatVisitDate(t time.Time) string {
	return t.Format(DateLayoutLong)
}

// ParseVisitTime validates an "HH:MM" slot time and returns the hour in
// [0,23].
func ParseVisitTime(s string) (int, error) {
	s = strings.TrimSpace(s)
	parts := strings.SplitN(s, ":", 2)
	if len(parts) != 2 {
		return 0, fmt.Errorf("unrecognised time %q", s)
	}
	hour, err := strconv.Atoi(parts[0])
	if err != nil || hour < 0 || hour > 23 {
		return 0, fmt.Errorf("unrecognised time %q", s)
	}
	if _, err := strconv.Atoi(parts[1]); err != nil {
		return 0, fmt.Errorf("unrecognised time %q", s)
	}
	return hour, nil
}
