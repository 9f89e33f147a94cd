package loan

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/simaogato/dripsim-backend/internal/domain"
)

func TestMonthlyPayment_StandardAnnuity(t *testing.T) {
	// 200k at 7.5% annual over 240 months.
	payment := MonthlyPayment(0.075/12, 240, 200_000)
	assert.InDelta(t, 1_611.19, payment, 0.02)
}

func TestMonthlyPayment_ZeroRateFallsBackToEvenSplit(t *testing.T) {
	assert.InDelta(t, 200_000.0/240, MonthlyPayment(0, 240, 200_000), 1e-9)
}

func TestMonthlyPayment_DegenerateInputs(t *testing.T) {
	assert.Zero(t, MonthlyPayment(0.01, 0, 100_000))
	assert.Zero(t, MonthlyPayment(0.01, 120, 0))
}

func TestNewState_NotIncluded(t *testing.T) {
	s := NewState(domain.LoanTerms{Included: false, Amount: 100_000})
	assert.False(t, s.Active())
	assert.Zero(t, s.Payment)
	assert.Zero(t, s.Advance())
}

func TestAdvance_AccruesInterestThenPays(t *testing.T) {
	s := NewState(domain.LoanTerms{
		Included:           true,
		Amount:             200_000,
		AnnualRatePercent:  7.5,
		AmortizationMonths: 240,
	})

	payment := s.Advance()
	assert.InDelta(t, 1_611.19, payment, 0.02)
	// 200000 * 1.00625 - payment, rounded to cents.
	assert.InDelta(t, 199_638.81, s.Principal, 0.02)
}

func TestAdvance_PaysOffAndGoesInactive(t *testing.T) {
	s := NewState(domain.LoanTerms{
		Included:           true,
		Amount:             100,
		AnnualRatePercent:  0,
		AmortizationMonths: 1,
	})

	assert.InDelta(t, 100, s.Advance(), 1e-9)
	assert.Zero(t, s.Principal)
	assert.False(t, s.Active())

	// Once paid off: no payment, no interest, forever.
	assert.Zero(t, s.Advance())
	assert.Zero(t, s.Principal)
}

func TestAdvance_PrincipalNeverNegative(t *testing.T) {
	s := NewState(domain.LoanTerms{
		Included:           true,
		Amount:             1_000,
		AnnualRatePercent:  6,
		AmortizationMonths: 3,
	})

	for i := 0; i < 10; i++ {
		s.Advance()
		assert.GreaterOrEqual(t, s.Principal, 0.0)
	}
	assert.False(t, s.Active())
}

func TestSweepPrincipal_CappedAtBalance(t *testing.T) {
	s := NewState(domain.LoanTerms{
		Included:           true,
		Amount:             500,
		AnnualRatePercent:  0,
		AmortizationMonths: 100,
	})

	applied := s.SweepPrincipal(10_000)
	assert.InDelta(t, 500, applied, 1e-9)
	assert.Zero(t, s.Principal)

	assert.Zero(t, s.SweepPrincipal(100), "an inactive loan accepts no sweep")
}
