// Package tax implements progressive marginal tax computation over fixed
// federal bracket tables (2024 figures).
package tax

import (
	"fmt"
	"math"

	"github.com/simaogato/dripsim-backend/internal/domain"
)

// Bracket is one (threshold, marginal rate) pair. Rate applies to income
// above Threshold up to the next bracket's threshold.
type Bracket struct {
	Threshold float64
	Rate      float64
}

// bracketsByFiling holds the ordered bracket tables per filing type.
// Thresholds are ascending; the last bracket is open-ended.
var bracketsByFiling = map[domain.FilingType][]Bracket{
	domain.FilingSingle: {
		{Threshold: 0, Rate: 0.10},
		{Threshold: 11_600, Rate: 0.12},
		{Threshold: 47_150, Rate: 0.22},
		{Threshold: 100_525, Rate: 0.24},
		{Threshold: 191_950, Rate: 0.32},
		{Threshold: 243_725, Rate: 0.35},
		{Threshold: 609_350, Rate: 0.37},
	},
	domain.FilingMarried: {
		{Threshold: 0, Rate: 0.10},
		{Threshold: 23_200, Rate: 0.12},
		{Threshold: 94_300, Rate: 0.22},
		{Threshold: 201_050, Rate: 0.24},
		{Threshold: 383_900, Rate: 0.32},
		{Threshold: 487_450, Rate: 0.35},
		{Threshold: 731_200, Rate: 0.37},
	},
	domain.FilingHeadOfHousehold: {
		{Threshold: 0, Rate: 0.10},
		{Threshold: 16_550, Rate: 0.12},
		{Threshold: 63_100, Rate: 0.22},
		{Threshold: 100_500, Rate: 0.24},
		{Threshold: 191_950, Rate: 0.32},
		{Threshold: 243_725, Rate: 0.35},
		{Threshold: 609_350, Rate: 0.37},
	},
}

// standardDeductions holds the standard deduction per filing type
var standardDeductions = map[domain.FilingType]float64{
	domain.FilingSingle:          14_600,
	domain.FilingMarried:         29_200,
	domain.FilingHeadOfHousehold: 21_900,
}

// Calculate returns the progressive tax owed on taxableIncome for the given
// filing type. Income at or below zero owes zero tax. An unknown filing type
// is a programming error and panics.
func Calculate(taxableIncome float64, filing domain.FilingType) float64 {
	brackets, ok := bracketsByFiling[filing]
	if !ok {
		panic(fmt.Sprintf("tax: unknown filing type %q", filing))
	}

	if taxableIncome <= 0 {
		return 0
	}

	tax := 0.0
	remaining := taxableIncome

	for i, b := range brackets {
		upper := math.Inf(1)
		if i+1 < len(brackets) {
			upper = brackets[i+1].Threshold
		}

		incomeInBracket := math.Min(remaining, upper-b.Threshold)
		tax += incomeInBracket * b.Rate
		remaining -= incomeInBracket

		if remaining <= 0 {
			break
		}
	}

	return tax
}

// Marginal returns the incremental tax attributable to a specific
// distribution: the difference between the tax on the total taxable income
// and the tax on that income excluding the distribution. Both sides walk the
// full bracket table because the base income anchors the starting bracket.
func Marginal(totalTaxableIncome, distribution float64, filing domain.FilingType) float64 {
	return Calculate(totalTaxableIncome, filing) - Calculate(totalTaxableIncome-distribution, filing)
}

// StandardDeduction returns the standard deduction for the given filing type.
// An unknown filing type panics, same as Calculate.
func StandardDeduction(filing domain.FilingType) float64 {
	d, ok := standardDeductions[filing]
	if !ok {
		panic(fmt.Sprintf("tax: unknown filing type %q", filing))
	}
	return d
}
