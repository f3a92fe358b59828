package calendar

import (
	"time"
)

// Month is an absolute calendar month (year + month-of-year). It carries no
// day or time component beyond the canonical first-of-month UTC anchor.
type Month struct {
	Year int
	M    time.Month
}

func New(year int, m time.Month) Month {
	return Month{Year: year, M: m}
}

// FromTime normalizes an arbitrary timestamp to its UTC calendar month.
func FromTime(t time.Time) Month {
	u := t.UTC()
	return Month{Year: u.Year(), M: u.Month()}
}

// Time returns the first instant of the month in UTC.
func (m Month) Time() time.Time {
	return time.Date(m.Year, m.M, 1, 0, 0, 0, 0, time.UTC)
}

// Add advances the month by k (k may be negative). Year boundaries roll over.
func (m Month) Add(k int) Month {
	return FromTime(m.Time().AddDate(0, k, 0))
}

// Compare orders months lexicographically by (year, month).
func (m Month) Compare(o Month) int {
	if m.Year != o.Year {
		if m.Year < o.Year {
			return -1
		}
		return 1
	}
	if m.M != o.M {
		if m.M < o.M {
			return -1
		}
		return 1
	}
	return 0
}

func (m Month) Before(o Month) bool { return m.Compare(o) < 0 }
func (m Month) After(o Month) bool  { return m.Compare(o) > 0 }

// String renders the compact label, or the zero label "?" for an
// out-of-table month. Use Format when the error matters.
func (m Month) String() string {
	s, err := Format(m)
	if err != nil {
		return "?"
	}
	return s
}
