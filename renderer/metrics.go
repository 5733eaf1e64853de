package renderer

import (
	"fmt"

	"github.com/etnz/lena"
)

// Row is one labelled value of a report table.
type Row struct {
	Label string `json:"label"`
	Value string `json:"value"`
}

// MetricsReport is the display form of an investment evaluation. Values are
// already formatted.
type MetricsReport struct {
	Title     string `json:"title"`
	Summary   string `json:"summary"`
	Ownership []Row  `json:"ownership"`
	Income    []Row  `json:"income"`
	Returns   []Row  `json:"returns"`
}

// NewMetricsReport formats the metrics computed from in, under the report
// title name.
func NewMetricsReport(name string, in lena.Inputs, m lena.Metrics) *MetricsReport {
	if name == "" {
		name = "Investment evaluation"
	}
	// inputs are displayed in the evaluation currency, like the results.
	cur := func(v lena.Money) string { return v.In(in.Currency).String() }
	units := string(m.Mode)
	if units == "" {
		units = string(lena.Tokens)
	}

	return &MetricsReport{
		Title: name,
		Summary: fmt.Sprintf("Price %s, rent %s per month at %v occupancy, expenses %s per year. Investing %s in %s of %s.",
			cur(in.PropertyPrice),
			cur(in.ExpectedMonthlyRent),
			in.OccupancyRate.Clamp(0, 100),
			cur(in.AnnualExpenses),
			cur(in.MyInvestment),
			units,
			cur(in.UnitPrice),
		),
		Ownership: []Row{
			{"Total " + units, Units(m.TotalUnits)},
			{"My " + units, Units(m.MyUnits)},
			{"Ownership", m.OwnershipPct.String()},
			{title(m.Mode.Unit()) + " price", cur(in.UnitPrice)},
		},
		Income: []Row{
			{"Effective monthly rent", m.EffectiveMonthlyRent.String()},
			{"Gross annual rent", m.GrossAnnualRent.String()},
			{"Net operating income", m.NOI.String()},
			{fmt.Sprintf("Platform fee (%v)", in.PlatformFeePct), m.PlatformFee.String()},
			{"Net annual income", m.NetAnnualIncome.String()},
			{"My annual distribution", m.InvestorAnnualDistribution.String()},
			{fmt.Sprintf("Entry fee (%v)", in.EntryFeePct), m.EntryFee.String()},
		},
		Returns: []Row{
			{"Yield on cost", m.SimpleYieldOnCost.String()},
			{"Net yield", m.SimpleNetYield.String()},
			{"Cash on cash", m.CashOnCash.String()},
			{"Break-even", Years(m.BreakEvenYears)},
		},
	}
}
