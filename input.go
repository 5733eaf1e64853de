package lena

import (
	"math"
	"strings"

	"github.com/shopspring/decimal"
)

// ParseAmount reads a whole amount typed by a user. Every non-digit is
// dropped, so thousands separators in any locale are accepted ("75.000",
// "75,000", "$75 000"). Signs and decimal marks are dropped too: only whole
// non-negative amounts can be typed. Empty input reads as 0.
func ParseAmount(s string) decimal.Decimal {
	digits := strings.Map(func(r rune) rune {
		if r >= '0' && r <= '9' {
			return r
		}
		return -1
	}, s)
	if digits == "" {
		return decimal.Zero
	}
	d, err := decimal.NewFromString(digits)
	if err != nil {
		// only ascii digits remain, this cannot fail.
		return decimal.Zero
	}
	return d
}

// ParseMoney is ParseAmount with a currency.
func ParseMoney(s, currency string) Money {
	return Money{value: ParseAmount(s), cur: currency}
}

// Slider is a bounded percentage input moving by steps.
type Slider struct {
	Min, Max, Step Percent
}

var (
	OccupancySlider   = Slider{Min: 0, Max: 100, Step: 1}
	PlatformFeeSlider = Slider{Min: 0, Max: 10, Step: 0.1}
	EntryFeeSlider    = Slider{Min: 0, Max: 5, Step: 0.1}
)

// Snap rounds p to the closest step and clamps it into the slider range.
func (s Slider) Snap(p Percent) Percent {
	if math.IsNaN(float64(p)) {
		return s.Min
	}
	p = p.Clamp(s.Min, s.Max)
	if s.Step <= 0 {
		return p
	}
	step := decimal.NewFromFloat(float64(s.Step))
	snapped := decimal.NewFromFloat(float64(p)).Div(step).Round(0).Mul(step)
	return Percent(snapped.InexactFloat64()).Clamp(s.Min, s.Max)
}

