package date

import (
	"fmt"
	"strings"
)

// Period is a calendar period used to bucket dates.
type Period int

const (
	Daily Period = iota
	Weekly
	Monthly
	Quarterly
	Yearly
)

// periods holds the adjective and the unit naming each period.
var periods = [...]struct{ name, unit string }{
	Daily:     {"daily", "day"},
	Weekly:    {"weekly", "week"},
	Monthly:   {"monthly", "month"},
	Quarterly: {"quarterly", "quarter"},
	Yearly:    {"yearly", "year"},
}

func (p Period) String() string {
	if p < 0 || int(p) >= len(periods) {
		return fmt.Sprintf("period(%d)", int(p))
	}
	return periods[p].name
}

// ParsePeriod accepts a period name ("monthly") or its unit ("month"), case insensitive.
func ParsePeriod(s string) (Period, error) {
	s = strings.ToLower(strings.TrimSpace(s))
	for p, n := range periods {
		if s == n.name || s == n.unit {
			return Period(p), nil
		}
	}
	return Daily, fmt.Errorf("unknown period %q, want day, week, month, quarter or year", s)
}
