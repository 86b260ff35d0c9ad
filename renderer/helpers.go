// Package renderer turns engine results into markdown reports for the
// presentation layer.
package renderer

import (
	"strings"

	"github.com/Rhymond/go-money"

	"github.com/halfpie/pietree"
)

// DisplayCurrency is the currency used to format amounts in reports. The
// engine itself is currency-agnostic; this is presentation only.
var DisplayCurrency = "USD"

// Cash formats an amount in the display currency.
func Cash(a pietree.Amount) string {
	cur := money.GetCurrency(DisplayCurrency)
	if cur == nil {
		return a.String()
	}
	// go-money counts in minor units.
	minor := a.InexactFloat64() * pow10(cur.Fraction)
	return money.New(int64(minor+copysignHalf(minor)), DisplayCurrency).Display()
}

func pow10(n int) float64 {
	f := 1.0
	for i := 0; i < n; i++ {
		f *= 10
	}
	return f
}

// copysignHalf rounds to nearest minor unit instead of truncating.
func copysignHalf(v float64) float64 {
	if v < 0 {
		return -0.5
	}
	return 0.5
}

// indent prefixes a name with two spaces per depth level, so nested pies
// read as a tree in a flat table.
func indent(name string, depth int) string {
	return strings.Repeat("  ", depth) + name
}
