package lena

import (
	"encoding/json"
	"math"
	"testing"
)

func TestCompute_Scenario(t *testing.T) {
	m := Compute(scenario())

	moneyTests := []struct {
		name string
		got  Money
		want Money
	}{
		{"EffectiveMonthlyRent", m.EffectiveMonthlyRent, USD(585)},
		{"GrossAnnualRent", m.GrossAnnualRent, USD(7020)},
		{"NOI", m.NOI, USD(5820)},
		{"PlatformFee", m.PlatformFee, USD(116.4)},
		{"NetAnnualIncome", m.NetAnnualIncome, USD(5703.6)},
		{"EntryFee", m.EntryFee, USD(2.5)},
		{"InvestorAnnualDistribution", m.InvestorAnnualDistribution, USD(38.024)},
	}
	for _, tc := range moneyTests {
		if !tc.got.Equal(tc.want) {
			t.Errorf("%s = %v (%s), want %v", tc.name, tc.got, tc.got.Amount(), tc.want)
		}
	}

	if !m.TotalUnits.Equal(U(1500)) {
		t.Errorf("TotalUnits = %v, want 1500", m.TotalUnits)
	}
	if !m.MyUnits.Equal(U(10)) {
		t.Errorf("MyUnits = %v, want 10", m.MyUnits)
	}

	percentTests := []struct {
		name string
		got  Percent
		want Percent
	}{
		{"OwnershipPct", m.OwnershipPct, 0.6667},
		{"SimpleYieldOnCost", m.SimpleYieldOnCost, 9.36},
		{"SimpleNetYield", m.SimpleNetYield, 7.6048},
		{"CashOnCash", m.CashOnCash, 7.6048},
	}
	for _, tc := range percentTests {
		if !tc.got.Equal(tc.want) {
			t.Errorf("%s = %v, want %v", tc.name, tc.got, tc.want)
		}
	}

	if got, want := float64(m.BreakEvenYears), 502.5/38.024; math.Abs(got-want) > 1e-9 {
		t.Errorf("BreakEvenYears = %v, want %v", got, want)
	}
	if got := m.BreakEvenYears.String(); got != "13.2" {
		t.Errorf("BreakEvenYears.String() = %q, want %q", got, "13.2")
	}
	if m.Currency != "USD" || m.Mode != Tokens {
		t.Errorf("Compute() labels = %q %q, want USD tokens", m.Currency, m.Mode)
	}
}

func TestCompute_NoInvestment(t *testing.T) {
	in := scenario()
	in.MyInvestment = USD(0)
	m := Compute(in)

	if !m.MyUnits.IsZero() {
		t.Errorf("MyUnits = %v, want 0", m.MyUnits)
	}
	if m.OwnershipPct != 0 {
		t.Errorf("OwnershipPct = %v, want 0", m.OwnershipPct)
	}
	if !m.InvestorAnnualDistribution.IsZero() {
		t.Errorf("InvestorAnnualDistribution = %v, want 0", m.InvestorAnnualDistribution)
	}
	if m.BreakEvenYears.IsFinite() {
		t.Errorf("BreakEvenYears = %v, want non-finite", float64(m.BreakEvenYears))
	}
	if got := m.BreakEvenYears.String(); got != "–" {
		t.Errorf("BreakEvenYears.String() = %q, want a placeholder", got)
	}
	if m.CashOnCash != 0 {
		t.Errorf("CashOnCash = %v, want 0", m.CashOnCash)
	}
}

func TestCompute_DivisorGuards(t *testing.T) {
	testCases := []struct {
		name       string
		unitPrice  Money
		totalUnits Units
		myUnits    Units
	}{
		{"zero unit price counts as 1", USD(0), U(75000), U(500)},
		{"negative unit price counts as 1", USD(-20), U(75000), U(500)},
		{"unit price below 1 counts as 1", USD(0.25), U(75000), U(500)},
		{"unit price of 1", USD(1), U(75000), U(500)},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			in := scenario()
			in.UnitPrice = tc.unitPrice
			m := Compute(in)
			if !m.TotalUnits.Equal(tc.totalUnits) {
				t.Errorf("TotalUnits = %v, want %v", m.TotalUnits, tc.totalUnits)
			}
			if !m.MyUnits.Equal(tc.myUnits) {
				t.Errorf("MyUnits = %v, want %v", m.MyUnits, tc.myUnits)
			}
		})
	}

	t.Run("zero property price", func(t *testing.T) {
		in := scenario()
		in.PropertyPrice = USD(0)
		m := Compute(in)
		// 7020 / max(1, 0)
		if !m.SimpleYieldOnCost.Equal(702000) {
			t.Errorf("SimpleYieldOnCost = %v, want 702000%%", m.SimpleYieldOnCost)
		}
	})

	t.Run("equity smaller than one unit", func(t *testing.T) {
		in := scenario()
		in.TotalEquity = USD(10)
		m := Compute(in)
		if !m.TotalUnits.Equal(U(1)) || !m.MyUnits.Equal(U(1)) {
			t.Errorf("units = %v/%v, want 1/1", m.MyUnits, m.TotalUnits)
		}
		if !m.OwnershipPct.Equal(100) {
			t.Errorf("OwnershipPct = %v, want 100%%", m.OwnershipPct)
		}
	})

	t.Run("distribution below 1", func(t *testing.T) {
		in := scenario()
		in.MyInvestment = USD(50) // one token
		in.ExpectedMonthlyRent = USD(120)
		in.AnnualExpenses = USD(0)
		m := Compute(in)
		// 1296 × 0.98 / 1500 = 0.84672, the divisor is guarded to 1.
		if !m.InvestorAnnualDistribution.Equal(USD(0.84672)) {
			t.Fatalf("InvestorAnnualDistribution = %s", m.InvestorAnnualDistribution.Amount())
		}
		if got, want := float64(m.BreakEvenYears), 50.25; math.Abs(got-want) > 1e-9 {
			t.Errorf("BreakEvenYears = %v, want %v", got, want)
		}
	})
}

func TestCompute_Occupancy(t *testing.T) {
	testCases := []struct {
		occupancy Percent
		want      Money
	}{
		{-10, USD(0)},
		{0, USD(0)},
		{50, USD(325)},
		{100, USD(650)},
		{150, USD(650)},
		{Percent(math.Inf(1)), USD(650)},
		{Percent(math.NaN()), USD(0)},
	}
	for _, tc := range testCases {
		in := scenario()
		in.OccupancyRate = tc.occupancy
		m := Compute(in)
		if !m.EffectiveMonthlyRent.Equal(tc.want) {
			t.Errorf("Compute(occupancy=%v).EffectiveMonthlyRent = %v, want %v", float64(tc.occupancy), m.EffectiveMonthlyRent, tc.want)
		}
	}
}

// TestCompute_Invariants checks the properties that hold for any input.
func TestCompute_Invariants(t *testing.T) {
	amounts := []float64{-1000, -0.5, 0, 0.5, 1, 7, 50, 999, 75000, 1e9}
	percents := []Percent{-50, 0, 0.5, 2, 90, 100, 250}

	for _, equity := range amounts {
		for _, unitPrice := range amounts {
			for _, investment := range amounts {
				in := scenario()
				in.TotalEquity = USD(equity)
				in.UnitPrice = USD(unitPrice)
				in.MyInvestment = USD(investment)
				m := Compute(in)

				if m.TotalUnits.LessThan(U(1)) {
					t.Fatalf("equity=%v price=%v: TotalUnits = %v < 1", equity, unitPrice, m.TotalUnits)
				}
				if m.MyUnits.GreaterThan(m.TotalUnits) {
					t.Fatalf("equity=%v price=%v investment=%v: MyUnits %v > TotalUnits %v", equity, unitPrice, investment, m.MyUnits, m.TotalUnits)
				}
				if unitPrice >= 1 && equity >= 0 {
					want := math.Max(1, math.Floor(equity/unitPrice))
					if !m.TotalUnits.Equal(U(want)) {
						t.Fatalf("equity=%v price=%v: TotalUnits = %v, want %v", equity, unitPrice, m.TotalUnits, want)
					}
				}
				if !m.MyUnits.IsNegative() && (m.OwnershipPct < 0 || m.OwnershipPct > 100) {
					t.Fatalf("OwnershipPct = %v out of [0,100]", m.OwnershipPct)
				}
			}
		}
	}

	for _, rent := range amounts {
		for _, expenses := range amounts {
			for _, p := range percents {
				in := scenario()
				in.ExpectedMonthlyRent = USD(rent)
				in.AnnualExpenses = USD(expenses)
				in.OccupancyRate = p
				in.PlatformFeePct = p
				m := Compute(in)
				if m.NOI.IsNegative() {
					t.Fatalf("rent=%v expenses=%v: NOI = %v", rent, expenses, m.NOI)
				}
				if m.NetAnnualIncome.IsNegative() {
					t.Fatalf("rent=%v expenses=%v fee=%v: NetAnnualIncome = %v", rent, expenses, p, m.NetAnnualIncome)
				}
				if rent >= 0 && USD(rent).LessThan(m.EffectiveMonthlyRent) {
					t.Fatalf("rent=%v occupancy=%v: EffectiveMonthlyRent = %v", rent, p, m.EffectiveMonthlyRent)
				}
			}
		}
	}
}

func TestCompute_Deterministic(t *testing.T) {
	in := scenario()
	first, err := json.Marshal(Compute(in))
	if err != nil {
		t.Fatalf("Marshal() error = %v", err)
	}
	for i := 0; i < 3; i++ {
		again, _ := json.Marshal(Compute(in))
		if string(again) != string(first) {
			t.Fatalf("Compute() is not deterministic:\n%s\n%s", first, again)
		}
	}
}

func TestMetrics_MarshalJSON(t *testing.T) {
	in := scenario()
	in.MyInvestment = USD(0)
	data, err := json.Marshal(Compute(in))
	if err != nil {
		t.Fatalf("Marshal() error = %v", err)
	}
	var got map[string]any
	if err := json.Unmarshal(data, &got); err != nil {
		t.Fatalf("invalid json %s: %v", data, err)
	}
	if got["breakEvenYears"] != nil {
		t.Errorf("breakEvenYears = %v, want null", got["breakEvenYears"])
	}
	if got["grossAnnualRent"] != 7020.0 {
		t.Errorf("grossAnnualRent = %v, want 7020", got["grossAnnualRent"])
	}
	if got["totalUnits"] != 1500.0 {
		t.Errorf("totalUnits = %v, want 1500", got["totalUnits"])
	}
	if got["currency"] != "USD" {
		t.Errorf("currency = %v, want USD", got["currency"])
	}
}

func TestInputs_Seed(t *testing.T) {
	p := Property{Name: "Apto Chacao", Price: EUR(80000), Rent: EUR(700), Expenses: EUR(1500)}
	in := DefaultInputs("USD").Seed(p)

	if !in.PropertyPrice.Equal(EUR(80000)) || !in.TotalEquity.Equal(EUR(80000)) {
		t.Errorf("Seed() price/equity = %v/%v, want 80000", in.PropertyPrice, in.TotalEquity)
	}
	if !in.ExpectedMonthlyRent.Equal(EUR(700)) || !in.AnnualExpenses.Equal(EUR(1500)) {
		t.Errorf("Seed() rent/expenses = %v/%v", in.ExpectedMonthlyRent, in.AnnualExpenses)
	}
	if in.Currency != "EUR" {
		t.Errorf("Seed() currency = %q, want EUR", in.Currency)
	}
	if in.OccupancyRate != 90 || !in.UnitPrice.Equal(USD(50)) {
		t.Errorf("Seed() changed the other inputs: %+v", in)
	}
}

func TestParseMode(t *testing.T) {
	testCases := []struct {
		in      string
		want    Mode
		wantErr bool
	}{
		{"tokens", Tokens, false},
		{"Token", Tokens, false},
		{"", Tokens, false},
		{"shares", Shares, false},
		{" share ", Shares, false},
		{"bonds", Tokens, true},
	}
	for _, tc := range testCases {
		got, err := ParseMode(tc.in)
		if (err != nil) != tc.wantErr {
			t.Errorf("ParseMode(%q) error = %v, wantErr %v", tc.in, err, tc.wantErr)
		}
		if got != tc.want {
			t.Errorf("ParseMode(%q) = %q, want %q", tc.in, got, tc.want)
		}
	}
}
