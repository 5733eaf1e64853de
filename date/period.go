package date

import (
	"fmt"
	"strings"
)

// Period is a standard calendar period used to select records.
type Period int

const (
	Daily Period = iota
	Weekly
	Monthly
	Quarterly
	Yearly
)

var periodNames = [...]string{
	Daily:     "daily",
	Weekly:    "weekly",
	Monthly:   "monthly",
	Quarterly: "quarterly",
	Yearly:    "yearly",
}

func (p Period) String() string {
	if p < Daily || p > Yearly {
		panic(fmt.Sprintf("unknown period %d", p))
	}
	return periodNames[p]
}

// Range returns the period containing the date d.
func (p Period) Range(d Date) Range {
	return Range{From: d.StartOf(p), To: d.EndOf(p)}
}

// ParsePeriod reads a period by its adjective ("monthly") or its noun
// ("month"), in any case.
func ParsePeriod(s string) (Period, error) {
	s = strings.ToLower(strings.TrimSpace(s))
	for p, name := range periodNames {
		if s == name || s == strings.TrimSuffix(name, "ly") || (p == int(Daily) && s == "day") {
			return Period(p), nil
		}
	}
	return Daily, fmt.Errorf("unknown period %q, want day, week, month, quarter or year", s)
}
