package date

import "time"

// Range represents a range of dates.
type Range struct{ From, To Date }

// NewRange creates a new date range. If 'from' is after 'to', they are swapped.
func NewRange(from, to Date) Range {
	if from.After(to) {
		from, to = to, from
	}
	return Range{From: from, To: to}
}

// Contains return true date is included in the range (boundaries included)
func (r Range) Contains(date Date) bool { return (!date.Before(r.From) && !date.After(r.To)) }

// return the period of this range if it's a standard one.
func (r Range) Period() (p Period, ok bool) {
	switch {
	case r.From == r.To:
		return Daily, true
	case r.From.Weekday() == time.Monday && r.From.EndOf(Weekly) == r.To:
		return Weekly, true
	case r.From.Day() == 1 && r.From.EndOf(Monthly) == r.To:
		return Monthly, true
	case r.From.StartOf(Quarterly) == r.From && r.From.EndOf(Quarterly) == r.To:
		return Quarterly, true
	case r.From.StartOf(Yearly) == r.From && r.From.EndOf(Yearly) == r.To:
		return Yearly, true
	default:
		return Daily, false
	}
}

// Name the period range
func (r Range) Name() string {
	p, ok := r.Period()
	if ok {
		return p.String()
	}
	return "special"
}

// String returns "from to" for display.
func (r Range) String() string { return r.From.String() + " to " + r.To.String() }
