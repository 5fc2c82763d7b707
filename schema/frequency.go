package schema

import (
	"fmt"
	"strings"
	"time"
)

// Frequency is a calendar resolution used to resample a commit series.
type Frequency string

// All frequencies supported. The empty frequency keeps every commit.
const (
	NoFrequency Frequency = ""
	Daily       Frequency = "daily"
	Weekly      Frequency = "weekly"
	Monthly     Frequency = "monthly"
	Yearly      Frequency = "yearly"
)

// ValidFrequencies lists all valid resampling frequencies.
var ValidFrequencies = map[Frequency]struct{}{
	Daily:   {},
	Weekly:  {},
	Monthly: {},
	Yearly:  {},
}

// ParseFrequency converts user input into a Frequency.
func ParseFrequency(s string) (Frequency, error) {
	f := Frequency(strings.ToLower(strings.TrimSpace(s)))
	if f == NoFrequency {
		return NoFrequency, nil
	}
	if _, ok := ValidFrequencies[f]; !ok {
		return NoFrequency, fmt.Errorf("invalid frequency '%s'. must be daily, weekly, monthly or yearly", s)
	}
	return f, nil
}

// StartOfInterval truncates t to the start of its interval in t's own location.
// Weeks start on Monday.
func (f Frequency) StartOfInterval(t time.Time) time.Time {
	y, m, d := t.Date()
	loc := t.Location()
	switch f {
	case Daily:
		return time.Date(y, m, d, 0, 0, 0, 0, loc)
	case Weekly:
		back := (int(t.Weekday()) + 6) % 7
		return time.Date(y, m, d-back, 0, 0, 0, 0, loc)
	case Monthly:
		return time.Date(y, m, 1, 0, 0, 0, 0, loc)
	case Yearly:
		return time.Date(y, time.January, 1, 0, 0, 0, 0, loc)
	default:
		return t
	}
}

// NextInstance advances t by one calendar unit.
func (f Frequency) NextInstance(t time.Time) time.Time {
	switch f {
	case Daily:
		return t.AddDate(0, 0, 1)
	case Weekly:
		return t.AddDate(0, 0, 7)
	case Monthly:
		return t.AddDate(0, 1, 0)
	case Yearly:
		return t.AddDate(1, 0, 0)
	default:
		return t
	}
}
