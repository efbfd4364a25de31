package utils

import "github.com/shopspring/decimal"

// FormatAmount renders an amount for reports. Negative places keeps the
// value's exact precision; zero or more rounds to that many decimal
// places.
func FormatAmount(d decimal.Decimal, places int32) string {
	if places < 0 {
		return d.String()
	}
	return d.StringFixed(places)
}
