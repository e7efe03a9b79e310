// Package format renders amounts and dates the way the student portal shows them
package format

import (
	"time"

	"github.com/shopspring/decimal"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
	"golang.org/x/text/number"
)

// Locale used for amount grouping (lakh/crore separators)
var Locale = language.MustParse("en-IN")

var printer = message.NewPrinter(Locale)

// Currency formats an amount with two decimals and locale digit grouping
func Currency(amount decimal.Decimal) string {
	value := amount.Round(2).InexactFloat64()
	return printer.Sprint(number.Decimal(value, number.Scale(2)))
}

// Rupees prefixes Currency with the rupee sign
func Rupees(amount decimal.Decimal) string {
	return "₹" + Currency(amount)
}

// Date renders a day/month/year date without zero padding, or N/A
func Date(t time.Time, valid bool) string {
	if !valid || t.IsZero() {
		return "N/A"
	}
	return t.Format("2/1/2006")
}
