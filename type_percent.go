package lena

import (
	"fmt"
	"math"

	"github.com/shopspring/decimal"
)

type Percent float64

func (p Percent) Equal(q Percent) bool {
	// it has to be compared with some precision
	const precision = 0.0001
	diff := p - q
	if diff < 0 {
		diff = -diff
	}
	return diff < precision
}

func (p Percent) String() string {
	return fmt.Sprintf("%.2f%%", p)
}

// Clamp returns p bounded to [min, max].
func (p Percent) Clamp(min, max Percent) Percent {
	if math.IsNaN(float64(p)) {
		return min
	}
	if p < min {
		return min
	}
	if p > max {
		return max
	}
	return p
}

// ratio returns p/100 as a decimal. Non-finite percentages count as zero.
func (p Percent) ratio() decimal.Decimal {
	if f := float64(p); math.IsNaN(f) || math.IsInf(f, 0) {
		return decimal.Zero
	}
	return decimal.NewFromFloat(float64(p)).Div(hundred)
}

// percentOf returns 100 × num / den as a Percent.
func percentOf(num, den decimal.Decimal) Percent {
	return Percent(num.Mul(hundred).Div(den).InexactFloat64())
}
