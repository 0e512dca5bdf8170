// Package report renders sales figures for people: Brazilian currency
// strings and spreadsheet exports.
package report

import (
	"github.com/shopspring/decimal"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

var brl = message.NewPrinter(language.BrazilianPortuguese)

// FormatBRL renders an amount as Brazilian reais, e.g. "R$ 1.234,50".
func FormatBRL(amount decimal.Decimal) string {
	rounded := amount.Round(2)
	sign := ""
	if rounded.IsNegative() {
		sign = "-"
		rounded = rounded.Neg()
	}
	return sign + "R$ " + brl.Sprintf("%.2f", rounded.InexactFloat64())
}

// FormatDate renders a day the way the operator reads it, e.g. "10/05/2024".
func FormatDate(layoutDay string) string {
	if len(layoutDay) != len("2006-01-02") {
		return layoutDay
	}
	return layoutDay[8:10] + "/" + layoutDay[5:7] + "/" + layoutDay[0:4]
}
