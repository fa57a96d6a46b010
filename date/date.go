// Package date provides a day-granularity Date with lenient parsing, and the
// calendar periods and ranges used to bucket auction activity.
package date

import (
	"encoding/json"
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"time"
)

const (
	// DateFormat is the ISO 8601 format dates are written in.
	DateFormat = "2006-01-02"
	// lenientFormat also reads single digit months and days.
	lenientFormat = "2006-1-2"
)

// Date is a calendar day. The zero Date is unset: transactions without a
// date happen today.
type Date struct {
	y int
	m time.Month
	d int
}

// New returns the Date of year, month and day, normalized like [time.Date]
// (February 30 is March 2).
func New(year int, month time.Month, day int) Date {
	return fromTime(time.Date(year, month, day, 0, 0, 0, 0, time.UTC))
}

func fromTime(t time.Time) Date {
	y, m, d := t.Date()
	return Date{y, m, d}
}

// Today returns the current date, in the local time zone.
func Today() Date {
	y, m, d := time.Now().Date()
	return New(y, m, d)
}

// time returns midnight UTC on d, the canonical instant of the day.
func (d Date) time() time.Time { return time.Date(d.y, d.m, d.d, 0, 0, 0, 0, time.UTC) }

func (d Date) Year() int                 { return d.y }
func (d Date) Month() time.Month         { return d.m }
func (d Date) Day() int                  { return d.d }
func (d Date) Weekday() time.Weekday     { return d.time().Weekday() }
func (d Date) ISOWeek() (year, week int) { return d.time().ISOWeek() }
func (d Date) IsZero() bool              { return d == Date{} }

// Format formats d with a [time.Time.Format] layout.
func (d Date) Format(layout string) string { return d.time().Format(layout) }

func (d Date) String() string { return d.Format(DateFormat) }

// Compare returns -1, 0 or +1 as d is before, on or after x.
func (d Date) Compare(x Date) int {
	switch {
	case d.y != x.y:
		return sign(d.y - x.y)
	case d.m != x.m:
		return sign(int(d.m - x.m))
	default:
		return sign(d.d - x.d)
	}
}

func sign(n int) int {
	switch {
	case n < 0:
		return -1
	case n > 0:
		return 1
	}
	return 0
}

func (d Date) Before(x Date) bool { return d.Compare(x) < 0 }
func (d Date) After(x Date) bool  { return d.Compare(x) > 0 }

// Add returns d moved by days.
func (d Date) Add(days int) Date { return New(d.y, d.m, d.d+days) }

// AddMonth returns d moved by months, normalized (January 31 plus a month is March 3).
func (d Date) AddMonth(months int) Date { return New(d.y, d.m+time.Month(months), d.d) }

// StartOf returns the first day of the period containing d. Weeks start on Monday.
func (d Date) StartOf(period Period) Date {
	switch period {
	case Weekly:
		return d.Add(-(int(d.Weekday()) + 6) % 7)
	case Monthly:
		return New(d.y, d.m, 1)
	case Quarterly:
		return New(d.y, (d.m-1)/3*3+1, 1)
	case Yearly:
		return New(d.y, time.January, 1)
	default:
		return d
	}
}

// EndOf returns the last day of the period containing d.
func (d Date) EndOf(period Period) Date {
	start := d.StartOf(period)
	switch period {
	case Weekly:
		return start.Add(6)
	case Monthly:
		return start.AddMonth(1).Add(-1)
	case Quarterly:
		return start.AddMonth(3).Add(-1)
	case Yearly:
		return start.AddMonth(12).Add(-1)
	default:
		return start
	}
}

var relative = regexp.MustCompile(`^([+-]?)(\d+)([dwmy])$`)

// Parse reads an ISO date, leniently ("2025-7-1"), or an offset from today:
// "0d" is today, "-3d" three days ago, "+2w" in two weeks, "-1m" a month ago
// and "-1y" a year ago.
func Parse(str string) (Date, error) {
	str = strings.TrimSpace(str)
	if m := relative.FindStringSubmatch(str); m != nil {
		n, err := strconv.Atoi(m[2])
		if err != nil {
			return Date{}, fmt.Errorf("invalid offset %q: %w", str, err)
		}
		if m[1] == "-" {
			n = -n
		}
		today := Today()
		switch m[3] {
		case "w":
			return today.Add(7 * n), nil
		case "m":
			return today.AddMonth(n), nil
		case "y":
			return today.AddMonth(12 * n), nil
		default:
			return today.Add(n), nil
		}
	}
	return parseISO(str)
}

func parseISO(str string) (Date, error) {
	t, err := time.Parse(lenientFormat, str)
	if err != nil {
		return Date{}, fmt.Errorf("invalid date %q, want format %q: %w", str, DateFormat, err)
	}
	return fromTime(t), nil
}

// MustParse is like Parse but panics on error.
func MustParse(str string) Date {
	d, err := Parse(str)
	if err != nil {
		panic(err)
	}
	return d
}

// UnmarshalJSON reads an ISO date. Relative dates are for the command line only.
func (d *Date) UnmarshalJSON(data []byte) error {
	var str string
	if err := json.Unmarshal(data, &str); err != nil {
		return err
	}
	v, err := parseISO(str)
	if err != nil {
		return err
	}
	*d = v
	return nil
}

func (d Date) MarshalJSON() ([]byte, error) { return json.Marshal(d.String()) }
