package renderer

import (
	"bytes"
	"fmt"
	"strconv"

	"github.com/etnz/lena"
	md "github.com/nao1215/markdown"
)

// PropertiesMarkdown renders the list of properties.
func PropertiesMarkdown(list []lena.Property) string {
	var buf bytes.Buffer
	doc := md.NewMarkdown(&buf)
	doc.H1("Properties")

	if len(list) == 0 {
		doc.PlainText("No properties yet. Add one with `lena add-property`.")
		return doc.String()
	}

	table := md.TableSet{
		Alignment: []md.TableAlignment{
			md.AlignLeft,
			md.AlignLeft,
			md.AlignLeft,
			md.AlignRight,
			md.AlignRight,
			md.AlignRight,
			md.AlignRight,
		},
		Header: []string{"ID", "Name", "Address", "Price", "Rent / month", "Expenses / year", "Photos"},
		Rows:   [][]string{},
	}
	for _, p := range list {
		table.Rows = append(table.Rows, []string{
			p.ID,
			p.Name,
			p.Address,
			p.Price.String(),
			p.Rent.String(),
			p.Expenses.String(),
			strconv.Itoa(len(p.Photos)),
		})
	}
	doc.Table(table)
	return doc.String()
}

// InvestorsMarkdown renders the list of investors.
func InvestorsMarkdown(list []lena.Investor) string {
	var buf bytes.Buffer
	doc := md.NewMarkdown(&buf)
	doc.H1("Investors")

	if len(list) == 0 {
		doc.PlainText("No investors yet. Add one with `lena add-investor`.")
		return doc.String()
	}

	table := md.TableSet{
		Alignment: []md.TableAlignment{md.AlignLeft, md.AlignLeft, md.AlignLeft, md.AlignLeft},
		Header:    []string{"ID", "Name", "Email", "Since"},
		Rows:      [][]string{},
	}
	for _, i := range list {
		since := ""
		if !i.CreatedAt.IsZero() {
			since = i.CreatedAt.Format("2006-01-02")
		}
		table.Rows = append(table.Rows, []string{i.ID, i.Name, i.Email, since})
	}
	doc.Table(table)
	return doc.String()
}

// PurchasesMarkdown renders a purchase history. The title names the selection.
func PurchasesMarkdown(title string, lines []lena.PurchaseLine) string {
	var buf bytes.Buffer
	doc := md.NewMarkdown(&buf)
	doc.H1(title)

	if len(lines) == 0 {
		doc.PlainText("No purchases.")
		return doc.String()
	}

	table := md.TableSet{
		Alignment: []md.TableAlignment{
			md.AlignLeft,
			md.AlignLeft,
			md.AlignLeft,
			md.AlignRight,
			md.AlignRight,
			md.AlignLeft,
		},
		Header: []string{"Date", "Investor", "Property", "Units", "Amount", "ID"},
		Rows:   [][]string{},
	}
	var units lena.Units
	for _, l := range lines {
		units = units.Add(l.Units)
		table.Rows = append(table.Rows, []string{
			l.Date.String(),
			l.InvestorName,
			l.PropertyName,
			Units(l.Units),
			l.Amount.String() + " " + l.Amount.Currency(),
			l.ID,
		})
	}
	table.Rows = append(table.Rows, []string{
		"",
		md.Bold(fmt.Sprintf("%d purchases", len(lines))),
		"",
		md.Bold(Units(units)),
		"",
		"",
	})
	doc.Table(table)
	return doc.String()
}

// HoldingsMarkdown renders what every investor owns.
func HoldingsMarkdown(holdings []lena.Holding) string {
	var buf bytes.Buffer
	doc := md.NewMarkdown(&buf)
	doc.H1("Holdings")

	if len(holdings) == 0 {
		doc.PlainText("No purchases yet. Record one with `lena buy`.")
		return doc.String()
	}

	table := md.TableSet{
		Alignment: []md.TableAlignment{
			md.AlignLeft,
			md.AlignLeft,
			md.AlignRight,
			md.AlignRight,
			md.AlignRight,
		},
		Header: []string{"Investor", "Property", "Units", "Invested", "Purchases"},
		Rows:   [][]string{},
	}
	for _, h := range holdings {
		table.Rows = append(table.Rows, []string{
			h.InvestorName,
			h.PropertyName,
			md.Bold(Units(h.Units)),
			Amounts(h.Amounts),
			strconv.Itoa(h.Purchases),
		})
	}
	doc.Table(table)
	return doc.String()
}
