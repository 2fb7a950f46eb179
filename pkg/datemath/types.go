package datemath

import (
	"errors"
	"time"
)

// ErrUnrecognized is returned when an expression matches no known format.
var ErrUnrecognized = errors.New("unrecognized date expression")

// Result holds a resolved deadline.
type Result struct {
	Time time.Time
	// AllDay is set when the input named a day without a time of day.
	AllDay bool
}

// layouts that carry their own UTC offset.
var offsetLayouts = []string{
	time.RFC3339Nano,
	time.RFC3339,
	"2006-01-02T15:04Z07:00",
	"2006-01-02 15:04:05Z07:00",
	time.RFC1123Z,
}

// layouts read as wall-clock time in the parser's timezone.
var localLayouts = []string{
	"2006-01-02T15:04:05",
	"2006-01-02T15:04",
	"2006-01-02 15:04:05",
	"2006-01-02 15:04",
	"January 2, 2006, 03:04 PM",
	"January 2, 2006 3:04 PM",
	"Jan 2, 2006 3:04 PM",
}

// layouts that name a day only.
var dateLayouts = []string{
	"2006-01-02",
	"2006/01/02",
	"02/01/2006",
	"January 2, 2006",
	"Jan 2, 2006",
	"2 January 2006",
}

var weekdays = map[string]time.Weekday{
	"monday":    time.Monday,
	"tuesday":   time.Tuesday,
	"wednesday": time.Wednesday,
	"thursday":  time.Thursday,
	"friday":    time.Friday,
	"saturday":  time.Saturday,
	"sunday":    time.Sunday,
}
