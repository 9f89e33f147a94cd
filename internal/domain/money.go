package domain

import "github.com/shopspring/decimal"

// RoundCents rounds a monetary value to two decimal places.
// The recurrence keeps full float precision for most figures; only loan
// principal and display-facing rates pass through here, matching historical
// behavior.
func RoundCents(v float64) float64 {
	return decimal.NewFromFloat(v).Round(2).InexactFloat64()
}
