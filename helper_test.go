package lena

// USD is a helper for test to create usd money from const
func USD(v float64) Money { return M(v, "USD") }

// EUR is a helper for test to create euro money from const
func EUR(v float64) Money { return M(v, "EUR") }

// scenario returns the inputs of the reference evaluation: a 75k property
// split in 50 USD tokens, with a 500 USD ticket.
func scenario() Inputs {
	return Inputs{
		PropertyPrice:       USD(75000),
		ExpectedMonthlyRent: USD(650),
		OccupancyRate:       90,
		AnnualExpenses:      USD(1200),
		TotalEquity:         USD(75000),
		UnitPrice:           USD(50),
		MyInvestment:        USD(500),
		PlatformFeePct:      2.0,
		EntryFeePct:         0.5,
		Currency:            "USD",
		Mode:                Tokens,
	}
}
