package occurrence

import (
	"math"
	"regexp"
	"strconv"
	"strings"
	"time"
)

// State tells if a text value carries a usable number.
type State int

const (
	// Absent means the value is empty.
	Absent State = iota
	// Invalid means the value is present but not a number.
	Invalid
	// Valid means the value parsed successfully.
	Valid
)

func (s State) String() string {
	switch s {
	case Absent:
		return "absent"
	case Invalid:
		return "invalid"
	case Valid:
		return "valid"
	}
	return "unknown"
}

// NumberPattern matches decimal numbers accepted by ParseNumber after
// surrounding whitespace is trimmed. Store adapters use it to guard casts.
const NumberPattern = `^[+-]?([0-9]+\.?[0-9]*|\.[0-9]+)([eE][+-]?[0-9]+)?$`

// CountPattern matches non-negative integers accepted by ParseCount.
const CountPattern = `^\+?[0-9]+$`

var (
	numberRe = regexp.MustCompile(NumberPattern)
	countRe  = regexp.MustCompile(CountPattern)
)

// Number is a parsed numeric value. Value is meaningful only for Valid.
type Number struct {
	Value float64
	State State
}

// Ok returns true for a valid number.
func (n Number) Ok() bool {
	return n.State == Valid
}

// ParseNumber interprets a text value as a decimal number.
// NaN and infinite values are Invalid.
func ParseNumber(s string) Number {
	s = strings.TrimSpace(s)
	if s == "" {
		return Number{State: Absent}
	}
	if !numberRe.MatchString(s) {
		return Number{State: Invalid}
	}
	f, err := strconv.ParseFloat(s, 64)
	if err != nil || math.IsNaN(f) || math.IsInf(f, 0) {
		return Number{State: Invalid}
	}
	return Number{Value: f, State: Valid}
}

// Count is a parsed individual count.
type Count struct {
	Value int64
	State State
}

// ParseCount interprets a text value as a non-negative integer.
func ParseCount(s string) Count {
	s = strings.TrimSpace(s)
	if s == "" {
		return Count{State: Absent}
	}
	if !countRe.MatchString(s) {
		return Count{State: Invalid}
	}
	i, err := strconv.ParseInt(strings.TrimPrefix(s, "+"), 10, 64)
	if err != nil {
		return Count{State: Invalid}
	}
	return Count{Value: i, State: Valid}
}

var dateLayouts = []string{
	time.RFC3339Nano,
	"2006-01-02T15:04:05",
	"2006-01-02T15:04",
	"2006-01-02T15",
	"2006-01-02 15:04:05",
	"2006-01-02",
	"2006-01",
	"2006",
}

// ParseDate reads an ISO 8601 event date. It recognises year, month,
// day and timestamp forms. For an interval the start is used.
// Timestamps are converted to UTC.
func ParseDate(s string) (time.Time, bool) {
	s = strings.TrimSpace(s)
	if i := strings.IndexByte(s, '/'); i > 0 {
		s = s[:i]
	}
	if s == "" {
		return time.Time{}, false
	}
	for _, l := range dateLayouts {
		if t, err := time.Parse(l, s); err == nil {
			return t.UTC(), true
		}
	}
	return time.Time{}, false
}

// DayKey renders the calendar day of a time as YYYY-MM-DD.
func DayKey(t time.Time) string {
	return t.Format("2006-01-02")
}
