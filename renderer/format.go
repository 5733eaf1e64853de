package renderer

import (
	"strings"

	"github.com/etnz/lena"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
	"golang.org/x/text/number"
)

// unitPrinter formats unit counts the way Venezuelan investors read them.
var unitPrinter = message.NewPrinter(language.MustParse("es-VE"))

// Units formats a unit count with thousands grouping.
func Units(u lena.Units) string {
	return unitPrinter.Sprint(number.Decimal(u.Decimal().InexactFloat64()))
}

// Years formats a duration in years, or the undefined placeholder.
func Years(y lena.Years) string {
	if !y.IsFinite() {
		return y.String()
	}
	return y.String() + " years"
}

// Amounts joins amounts in several currencies.
func Amounts(list []lena.Money) string {
	parts := make([]string, 0, len(list))
	for _, m := range list {
		parts = append(parts, m.String()+" "+m.Currency())
	}
	return strings.Join(parts, ", ")
}

// title upper-cases the first letter of a label.
func title(s string) string {
	if s == "" {
		return s
	}
	return strings.ToUpper(s[:1]) + s[1:]
}
