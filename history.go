package lena

import (
	"cmp"
	"slices"

	"github.com/etnz/lena/date"
)

// PurchaseLine is a purchase with its references resolved for display.
type PurchaseLine struct {
	Purchase
	InvestorName string // Unknown if the investor does not exist
	PropertyName string // Unknown if the property does not exist
}

// History resolves purchases against investors and properties and returns
// them sorted by date then ID. Only purchases accepted by every filter are
// kept.
func History(purchases []Purchase, investors []Investor, properties []Property, filters ...func(Purchase) bool) []PurchaseLine {
	names := resolver(investors, properties)
	lines := make([]PurchaseLine, 0, len(purchases))
next:
	for _, p := range purchases {
		for _, accept := range filters {
			if !accept(p) {
				continue next
			}
		}
		investor, property := names(p)
		lines = append(lines, PurchaseLine{Purchase: p, InvestorName: investor, PropertyName: property})
	}
	slices.SortStableFunc(lines, func(a, b PurchaseLine) int {
		switch {
		case a.Date.Before(b.Date):
			return -1
		case a.Date.After(b.Date):
			return 1
		}
		return cmp.Compare(a.ID, b.ID)
	})
	return lines
}

// During accepts purchases dated within r.
func During(r date.Range) func(Purchase) bool {
	return func(p Purchase) bool { return r.Contains(p.Date) }
}

// ByInvestor accepts purchases of the investor with that id.
func ByInvestor(id string) func(Purchase) bool {
	return func(p Purchase) bool { return p.InvestorID == id }
}

// ByProperty accepts purchases of the property with that id.
func ByProperty(id string) func(Purchase) bool {
	return func(p Purchase) bool { return p.PropertyID == id }
}

// Holding is what an investor owns of a property, summed over purchases.
type Holding struct {
	InvestorID   string
	InvestorName string
	PropertyID   string
	PropertyName string
	Units        Units
	Amounts      []Money // one per currency, in first purchase order
	Purchases    int
}

// Holdings sums purchases per investor and property. Holdings are sorted by
// investor name, property name, then IDs.
func Holdings(purchases []Purchase, investors []Investor, properties []Property) []Holding {
	names := resolver(investors, properties)
	type key struct{ investor, property string }
	index := make(map[key]int)
	var holdings []Holding
	for _, p := range purchases {
		k := key{p.InvestorID, p.PropertyID}
		i, exists := index[k]
		if !exists {
			investor, property := names(p)
			i = len(holdings)
			index[k] = i
			holdings = append(holdings, Holding{
				InvestorID:   p.InvestorID,
				InvestorName: investor,
				PropertyID:   p.PropertyID,
				PropertyName: property,
			})
		}
		h := &holdings[i]
		h.Units = h.Units.Add(p.Units)
		h.Purchases++
		h.addAmount(p.Amount)
	}
	slices.SortStableFunc(holdings, func(a, b Holding) int {
		return cmp.Or(
			cmp.Compare(a.InvestorName, b.InvestorName),
			cmp.Compare(a.PropertyName, b.PropertyName),
			cmp.Compare(a.InvestorID, b.InvestorID),
			cmp.Compare(a.PropertyID, b.PropertyID),
		)
	})
	return holdings
}

func (h *Holding) addAmount(m Money) {
	for i, a := range h.Amounts {
		if a.Currency() == m.Currency() {
			h.Amounts[i] = a.Add(m)
			return
		}
	}
	h.Amounts = append(h.Amounts, m)
}

// resolver returns a function naming the investor and property of a purchase,
// with Unknown for dangling references.
func resolver(investors []Investor, properties []Property) func(Purchase) (investor, property string) {
	investorNames := make(map[string]string, len(investors))
	for _, i := range investors {
		investorNames[i.ID] = i.Name
	}
	propertyNames := make(map[string]string, len(properties))
	for _, p := range properties {
		propertyNames[p.ID] = p.Name
	}
	return func(p Purchase) (string, string) {
		investor, ok := investorNames[p.InvestorID]
		if !ok {
			investor = Unknown
		}
		property, ok := propertyNames[p.PropertyID]
		if !ok {
			property = Unknown
		}
		return investor, property
	}
}
