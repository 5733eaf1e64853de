package lena

import (
	"fmt"
	"strings"

	"github.com/Rhymond/go-money"
	"github.com/shopspring/decimal"
)

// Money represents a monetary value.
type Money struct {
	value decimal.Decimal // as major unit value
	cur   string
}

func M[T float32 | float64 | int | int32 | int64 | uint | uint32 | uint64 | decimal.Decimal](value T, currency string) Money {
	return Money{value: newDecimal(value), cur: currency}
}

// ValidateCurrency returns an error if code is not a known ISO 4217 currency code.
func ValidateCurrency(code string) error {
	if money.GetCurrency(code) == nil {
		return fmt.Errorf("unknown currency code %q", code)
	}
	return nil
}

// currency returns the money's currency
func (m Money) currency() money.Currency {
	// to get a never nil currency I need to call the Money constructor
	return *money.New(0, m.cur).Currency()
}

// String returns the amount formatted with its currency symbol, rounded to the currency's fraction.
// It lays out the digits the way the currency's formatter does, without the int64 range limit.
func (m Money) String() string {
	cur := m.currency()
	fraction := int32(cur.Fraction)
	value := m.value.Round(fraction)
	whole, decimals, _ := strings.Cut(value.Abs().StringFixed(fraction), ".")

	var b strings.Builder
	for i, digit := range whole {
		if i > 0 && (len(whole)-i)%3 == 0 {
			b.WriteString(cur.Thousand)
		}
		b.WriteRune(digit)
	}
	if fraction > 0 {
		b.WriteString(cur.Decimal)
		b.WriteString(decimals)
	}

	s := strings.Replace(cur.Template, "1", b.String(), 1)
	s = strings.Replace(s, "$", cur.Grapheme, 1)
	if value.IsNegative() {
		s = "-" + s
	}
	return s
}

func (m Money) Currency() string        { return m.cur }
func (m Money) Amount() decimal.Decimal { return m.value }
func (m Money) Equal(n Money) bool      { return m.value.Equal(n.value) && m.cur == n.cur }
func (m Money) IsZero() bool            { return m.value.IsZero() }
func (m Money) IsNegative() bool        { return m.value.IsNegative() }
func (m Money) LessThan(n Money) bool   { return m.value.LessThan(n.value) }

// In returns the same amount labelled with another currency. No conversion happens.
func (m Money) In(currency string) Money { return Money{value: m.value, cur: currency} }

// binary operators.
func (m Money) Add(n Money) Money { return Money{value: m.value.Add(n.value), cur: cur(m, n)} }
func (m Money) Sub(n Money) Money { return Money{value: m.value.Sub(n.value), cur: cur(m, n)} }

// makes the "" currency totally weak.
func cur(A, B Money) string {
	if A.cur == "" {
		return B.cur
	}
	if B.cur == "" {
		return A.cur
	}
	if A.cur != B.cur {
		panic("currency mismatch" + A.cur + "!=" + B.cur)
	}
	return A.cur
}
