// Package loan computes the fixed annuity payment and tracks per-month loan
// state for the simulation.
package loan

import (
	"math"

	"github.com/simaogato/dripsim-backend/internal/domain"
)

// nearZeroRate guards the annuity formula's division by zero. Rates at or
// below this magnitude are treated as an interest-free loan.
const nearZeroRate = 1e-12

// MonthlyPayment returns the fixed payment for an amortizing loan using the
// standard annuity formula rate*pv / (1 - (1+rate)^-nper). A numerically zero
// rate degrades to an even principal split.
func MonthlyPayment(monthlyRate float64, periods int, principal float64) float64 {
	if periods <= 0 || principal <= 0 {
		return 0
	}
	if math.Abs(monthlyRate) < nearZeroRate {
		return principal / float64(periods)
	}
	return monthlyRate * principal / (1 - math.Pow(1+monthlyRate, -float64(periods)))
}

// State tracks the loan balance across the monthly recurrence. Once the
// principal reaches zero the loan is inactive: no further payments, no
// further interest.
type State struct {
	Principal   float64
	MonthlyRate float64
	Payment     float64
}

// NewState builds the initial loan state from the configured terms.
// A loan that is not included yields an inactive zero state.
func NewState(terms domain.LoanTerms) State {
	if !terms.Included {
		return State{}
	}
	rate := terms.AnnualRatePercent / 100 / 12
	return State{
		Principal:   terms.Amount,
		MonthlyRate: rate,
		Payment:     MonthlyPayment(rate, terms.AmortizationMonths, terms.Amount),
	}
}

// Active reports whether the loan still carries a balance
func (s *State) Active() bool {
	return s.Principal > 0
}

// Advance accrues one month of interest and applies the fixed payment,
// returning the payment made. The principal is floored at zero and rounded
// to cents after the step. An inactive loan pays nothing.
func (s *State) Advance() float64 {
	if !s.Active() {
		return 0
	}
	s.Principal = s.Principal*(1+s.MonthlyRate) - s.Payment
	if s.Principal < 0 {
		s.Principal = 0
	}
	s.Principal = domain.RoundCents(s.Principal)
	return s.Payment
}

// SweepPrincipal applies an additional principal reduction, capped at the
// remaining balance, and returns the amount actually applied.
func (s *State) SweepPrincipal(amount float64) float64 {
	if !s.Active() || amount <= 0 {
		return 0
	}
	applied := math.Min(amount, s.Principal)
	s.Principal = domain.RoundCents(s.Principal - applied)
	return applied
}
