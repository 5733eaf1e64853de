package lena

import (
	"fmt"
	"math"
)

// Years is a duration expressed in years. It may be non-finite when the
// duration cannot be reached, for instance a break-even with no income.
type Years float64

// Never is the non-finite Years value.
var Never = Years(math.Inf(1))

// IsFinite reports whether y is a real number of years.
func (y Years) IsFinite() bool {
	f := float64(y)
	return !math.IsInf(f, 0) && !math.IsNaN(f)
}

// String returns y with one decimal, or "–" when y is not finite.
func (y Years) String() string {
	if !y.IsFinite() {
		return "–"
	}
	return fmt.Sprintf("%.1f", float64(y))
}

// MarshalJSON writes y as a number, or null when it is not finite.
func (y Years) MarshalJSON() ([]byte, error) {
	if !y.IsFinite() {
		return []byte("null"), nil
	}
	return []byte(fmt.Sprintf("%g", float64(y))), nil
}
