package lena

import (
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
)

// Mode names the kind of ownership slice a property is divided into. It only
// changes how units are labelled.
type Mode string

const (
	Tokens Mode = "tokens"
	Shares Mode = "shares"
)

// ParseMode parses "tokens" or "shares" (singular forms accepted).
func ParseMode(s string) (Mode, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "tokens", "token", "":
		return Tokens, nil
	case "shares", "share":
		return Shares, nil
	default:
		return Tokens, fmt.Errorf("unknown mode %q, want %q or %q", s, Tokens, Shares)
	}
}

// Unit returns the singular label of one unit.
func (m Mode) Unit() string {
	if m == Shares {
		return "share"
	}
	return "token"
}

// Inputs holds the parameters of an investment evaluation. Amounts are read
// regardless of their currency label: Currency alone decides how the results
// are labelled.
type Inputs struct {
	PropertyPrice       Money
	ExpectedMonthlyRent Money
	OccupancyRate       Percent // clamped to [0,100] by Compute
	AnnualExpenses      Money

	TotalEquity  Money // capital divided into units
	UnitPrice    Money // price of one unit, at least 1 for divisions
	MyInvestment Money

	PlatformFeePct Percent // annual fee on the NOI
	EntryFeePct    Percent // one time fee on the investment

	Currency string
	Mode     Mode
}

// DefaultInputs returns the inputs of a typical evaluation in currency.
func DefaultInputs(currency string) Inputs {
	return Inputs{
		PropertyPrice:       M(75000, currency),
		ExpectedMonthlyRent: M(650, currency),
		OccupancyRate:       90,
		AnnualExpenses:      M(1200, currency),
		TotalEquity:         M(75000, currency),
		UnitPrice:           M(50, currency),
		MyInvestment:        M(500, currency),
		PlatformFeePct:      2.0,
		EntryFeePct:         0.5,
		Currency:            currency,
		Mode:                Tokens,
	}
}

// Seed returns a copy of in with the property's figures: the whole price is
// tokenized.
func (in Inputs) Seed(p Property) Inputs {
	in.PropertyPrice = p.Price
	in.ExpectedMonthlyRent = p.Rent
	in.AnnualExpenses = p.Expenses
	in.TotalEquity = p.Price
	if p.Price.Currency() != "" {
		in.Currency = p.Price.Currency()
	}
	return in
}

// Metrics holds every figure derived from Inputs.
type Metrics struct {
	Currency string
	Mode     Mode

	TotalUnits   Units
	MyUnits      Units
	OwnershipPct Percent

	EffectiveMonthlyRent Money
	GrossAnnualRent      Money
	NOI                  Money // gross annual rent minus expenses, before platform fee
	PlatformFee          Money
	NetAnnualIncome      Money
	EntryFee             Money

	InvestorAnnualDistribution Money

	SimpleYieldOnCost Percent
	SimpleNetYield    Percent
	CashOnCash        Percent
	BreakEvenYears    Years // Never when there is no distribution
}

// Compute derives all the metrics from in. It never fails: divisors are
// guarded with max(1, x) and the occupancy rate is clamped, which silently
// distorts results for divisors below 1.
func Compute(in Inputs) Metrics {
	m := func(v decimal.Decimal) Money { return Money{value: v, cur: in.Currency} }

	unitPrice := decimal.Max(one, in.UnitPrice.value)
	totalUnits := decimal.Max(one, in.TotalEquity.value.Div(unitPrice).Floor())
	myUnits := decimal.Min(totalUnits, in.MyInvestment.value.Div(unitPrice).Floor())

	effectiveMonthlyRent := in.ExpectedMonthlyRent.value.Mul(in.OccupancyRate.Clamp(0, 100).ratio())
	grossAnnualRent := effectiveMonthlyRent.Mul(twelve)
	noi := decimal.Max(decimal.Zero, grossAnnualRent.Sub(in.AnnualExpenses.value))
	platformFee := noi.Mul(in.PlatformFeePct.ratio())
	netAnnualIncome := decimal.Max(decimal.Zero, noi.Sub(platformFee))
	entryFee := in.MyInvestment.value.Mul(in.EntryFeePct.ratio())
	// multiply first: exact inputs give an exact distribution.
	distribution := netAnnualIncome.Mul(myUnits).Div(totalUnits)

	price := decimal.Max(one, in.PropertyPrice.value)
	breakEven := Never
	if !distribution.IsZero() {
		outlay := in.MyInvestment.value.Add(entryFee)
		breakEven = Years(outlay.Div(decimal.Max(one, distribution)).InexactFloat64())
	}

	return Metrics{
		Currency:                   in.Currency,
		Mode:                       in.Mode,
		TotalUnits:                 Units{value: totalUnits},
		MyUnits:                    Units{value: myUnits},
		OwnershipPct:               percentOf(myUnits, totalUnits),
		EffectiveMonthlyRent:       m(effectiveMonthlyRent),
		GrossAnnualRent:            m(grossAnnualRent),
		NOI:                        m(noi),
		PlatformFee:                m(platformFee),
		NetAnnualIncome:            m(netAnnualIncome),
		EntryFee:                   m(entryFee),
		InvestorAnnualDistribution: m(distribution),
		SimpleYieldOnCost:          percentOf(grossAnnualRent, price),
		SimpleNetYield:             percentOf(netAnnualIncome, price),
		CashOnCash:                 percentOf(distribution, decimal.Max(one, in.MyInvestment.value)),
		BreakEvenYears:             breakEven,
	}
}

// MarshalJSON writes the metrics as a flat object, amounts as numbers.
func (m Metrics) MarshalJSON() ([]byte, error) {
	var w jsonObjectWriter
	w.Append("currency", m.Currency)
	w.Optional("mode", m.Mode)
	w.Append("totalUnits", m.TotalUnits)
	w.Append("myUnits", m.MyUnits)
	w.Append("ownershipPct", float64(m.OwnershipPct))
	w.Append("effectiveMonthlyRent", m.EffectiveMonthlyRent.value)
	w.Append("grossAnnualRent", m.GrossAnnualRent.value)
	w.Append("noi", m.NOI.value)
	w.Append("platformFee", m.PlatformFee.value)
	w.Append("netAnnualIncome", m.NetAnnualIncome.value)
	w.Append("entryFee", m.EntryFee.value)
	w.Append("investorAnnualDistribution", m.InvestorAnnualDistribution.value)
	w.Append("simpleYieldOnCost", float64(m.SimpleYieldOnCost))
	w.Append("simpleNetYield", float64(m.SimpleNetYield))
	w.Append("cashOnCash", float64(m.CashOnCash))
	w.Append("breakEvenYears", m.BreakEvenYears)
	return w.MarshalJSON()
}
