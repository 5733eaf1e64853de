package lena

import "github.com/shopspring/decimal"

var (
	one     = decimal.NewFromInt(1)
	twelve  = decimal.NewFromInt(12)
	hundred = decimal.NewFromInt(100)
)

// newDecimal is a convenient factory for decimal.Decimal
func newDecimal[T float32 | float64 | int | int32 | int64 | uint | uint32 | uint64 | decimal.Decimal](value T) decimal.Decimal {
	switch v := any(value).(type) {
	case decimal.Decimal:
		return v
	case float32:
		return decimal.NewFromFloat32(v)
	case float64:
		return decimal.NewFromFloat(v)
	case int:
		return decimal.NewFromInt(int64(v))
	case int32:
		return decimal.NewFromInt32(v)
	case int64:
		return decimal.NewFromInt(v)
	case uint:
		return decimal.NewFromUint64(uint64(v))
	case uint32:
		return decimal.NewFromUint64(uint64(v))
	case uint64:
		return decimal.NewFromUint64(v)
	default:
		panic("unsupported type")
	}

}

// Units counts ownership slices (tokens or shares) of a property.
type Units struct {
	value decimal.Decimal
}

func U[T float32 | float64 | int | int32 | int64 | uint | uint32 | uint64 | decimal.Decimal](value T) Units {
	return Units{value: newDecimal(value)}
}

func (u Units) Equal(p Units) bool        { return u.value.Equal(p.value) }
func (u Units) LessThan(p Units) bool     { return u.value.LessThan(p.value) }
func (u Units) GreaterThan(p Units) bool  { return u.value.GreaterThan(p.value) }
func (u Units) Add(p Units) Units         { return Units{value: u.value.Add(p.value)} }
func (u Units) Sub(p Units) Units         { return Units{value: u.value.Sub(p.value)} }
func (u Units) IsNegative() bool          { return u.value.IsNegative() }
func (u Units) IsZero() bool              { return u.value.IsZero() }
func (u Units) Decimal() decimal.Decimal  { return u.value }
func (u Units) String() string            { return u.value.String() }

func (u Units) MarshalJSON() ([]byte, error) {
	return u.value.MarshalJSON()
}
func (u *Units) UnmarshalJSON(decimalBytes []byte) error {
	return u.value.UnmarshalJSON(decimalBytes)
}
