// Package date provides a day-granularity Date, ranges of dates and the
// standard periods used to filter records.
package date

import (
	"encoding/json"
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"time"
)

const readDateFormat = "2006-1-2" // Permissive read date format (allows single-digit month/day).

// DateFormat is the format used to represent dates as strings in ISO-8601 format.
const DateFormat = "2006-01-02" // write date format

// Date represents a date with day-level granularity.
type Date struct {
	y int
	m time.Month
	d int
}

// Month returns the month of the date.
func (d Date) Month() time.Month { return d.time().Month() }

// Weekday returns the day of the week for the date.
func (d Date) Weekday() time.Weekday { return d.time().Weekday() }

// time returns a time.Time that is a canonical representation of that day (at midnight UTC).
func (d Date) time() time.Time { return time.Date(d.y, d.m, d.d, 0, 0, 0, 0, time.UTC) }

// New returns a normalized Date for the given year, month, and day.
func New(year int, month time.Month, day int) Date {
	d := Date{year, month, day}
	d.y, d.m, d.d = d.time().Date()
	return d
}

// IsZero returns true if the date is the zero value.
func (d Date) IsZero() bool { return d == Date{} }

// Before reports whether the day d is before x.
func (d Date) Before(x Date) bool { return d.time().Before(x.time()) }

// After reports whether the day d is after x.
func (d Date) After(x Date) bool { return d.time().After(x.time()) }

// Today returns the current date.
func Today() Date { return New(time.Now().Date()) }

// Add returns a new Date with the given number of days added.
func (d Date) Add(i int) Date { return New(d.y, d.m, d.d+i) }

// Year returns current year.
func (d Date) Year() int { return d.y }

// Day returns current day of the month.
func (d Date) Day() int { return d.d }

// String format the date in its standard format.
func (d Date) String() string { return d.time().Format(DateFormat) }

// StartOf returns the date of begining of a given period
func (d Date) StartOf(period Period) Date {
	switch period {
	case Daily:
		return d
	case Weekly:
		weekday := d.Weekday() // time.Sunday = 0, ..., time.Saturday = 6
		offset := int(weekday - time.Monday)
		for offset < 0 {
			offset += 7
		}
		return d.Add(-offset)
	case Monthly:
		return New(d.Year(), d.Month(), 1)
	case Quarterly:
		quarter := (d.Month() - 1) / 3
		return New(d.Year(), time.Month(quarter*3+1), 1)
	case Yearly:
		return New(d.Year(), time.January, 1)
	default:
		panic("unknown period")
	}
}

// EndOf returns the date of end of a given period
func (d Date) EndOf(period Period) Date {
	switch period {
	case Daily:
		return d
	case Weekly:
		offset := int(7 - d.Weekday())
		for offset >= 7 {
			offset -= 7
		}
		return d.Add(offset)
	case Monthly:
		return New(d.Year(), d.Month()+1, 0)
	case Quarterly:
		quarter := (d.Month() - 1) / 3        // in [0..3]
		endMonth := time.Month(quarter*3 + 3) // in [1..12] hence the +3
		return New(d.Year(), endMonth+1, 0)   // last is next month on the day 0
	case Yearly:
		return New(d.Year()+1, time.January, 0)
	default:
		panic("unknown period")
	}
}

var relativeDateRE = regexp.MustCompile(`^([+-])(\d+)([dwmqy])$`)

// Parse parses a Date from a string. It is lenient and accepts formats like
// "2025-7-1", and dates relative to today like "-1d", "+2w", "-3m", "-1q", "-1y".
// "0d" is today.
func Parse(str string) (Date, error) {
	str = strings.TrimSpace(str)
	if str == "0d" {
		return Today(), nil
	}

	if match := relativeDateRE.FindStringSubmatch(str); match != nil {
		num, err := strconv.Atoi(match[2])
		if err != nil {
			return Date{}, fmt.Errorf("invalid number in relative date %q: %w", str, err)
		}
		if match[1] == "-" {
			num = -num
		}
		today := Today()
		switch match[3] {
		case "d":
			return today.Add(num), nil
		case "w":
			return today.Add(num * 7), nil
		case "m":
			return New(today.Year(), today.Month()+time.Month(num), today.Day()), nil
		case "q":
			return New(today.Year(), today.Month()+time.Month(num*3), today.Day()), nil
		case "y":
			return New(today.Year()+num, today.Month(), today.Day()), nil
		}
	}

	// We use a slightly more permisive format for read, to support 2025-7-1 instead of 2025-07-01
	on, err := time.Parse(readDateFormat, str)
	if err != nil {
		return Date{}, fmt.Errorf("invalid date %q want format %q: %w", str, readDateFormat, err)
	}
	return New(on.Date()), nil
}

// ParseStored parses a date written by String. Unlike Parse, it accepts
// neither relative dates nor single-digit months and days.
func ParseStored(str string) (Date, error) {
	on, err := time.Parse(DateFormat, str)
	if err != nil {
		return Date{}, fmt.Errorf("invalid stored date %q want format %q: %w", str, DateFormat, err)
	}
	return New(on.Date()), nil
}

// UnmarshalJSON implements the json specific way to unmarshall a date from a json string.
func (j *Date) UnmarshalJSON(bytes []byte) error {
	var str string
	if err := json.Unmarshal(bytes, &str); err != nil {
		return err
	}
	d, err := ParseStored(str)
	if err != nil {
		return err
	}
	*j = d
	return nil
}

func (j Date) MarshalJSON() ([]byte, error) {
	str := j.String()
	return json.Marshal(&str)
}

// check that a Date pointer is a valid json marshall/unmarshaller type.
var _ json.Marshaler = (*Date)(nil)
var _ json.Unmarshaler = (*Date)(nil)
