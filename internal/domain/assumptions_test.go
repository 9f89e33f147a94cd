package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func baseAssumptions() Assumptions {
	return Assumptions{
		Investor: InvestorProfile{
			InitialInvestment: 50_000,
			InitialSharePrice: 20,
			BaseIncome:        80_000,
		},
		Tax: TaxPolicy{
			Strategy:   WithholdMonthly,
			Method:     MethodTaxBracket,
			FilingType: FilingSingle,
		},
		Schedule: Schedule{Months: 24, StartMonth: 1},
		Price:    PriceModelConfig{Model: PriceGeometric},
		Dividend: DividendModelConfig{Model: DividendYield, YieldPercent: 4, YieldPeriod: YieldPer4Week},
	}
}

func TestAssumptionsValidate_AcceptsBaseConfig(t *testing.T) {
	a := baseAssumptions()
	assert.NoError(t, a.Validate())
}

func TestAssumptionsValidate_RejectsOutOfRangeInput(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Assumptions)
		field  string
	}{
		{"zero months", func(a *Assumptions) { a.Schedule.Months = 0 }, "schedule.months"},
		{"start month too high", func(a *Assumptions) { a.Schedule.StartMonth = 13 }, "schedule.startMonth"},
		{"start month too low", func(a *Assumptions) { a.Schedule.StartMonth = 0 }, "schedule.startMonth"},
		{"zero share price", func(a *Assumptions) { a.Investor.InitialSharePrice = 0 }, "investor.initialSharePrice"},
		{"negative shares", func(a *Assumptions) { a.Investor.InitialShareCount = -1 }, "investor.initialShareCount"},
		{"negative investment", func(a *Assumptions) { a.Investor.InitialInvestment = -1 }, "investor.initialInvestment"},
		{"negative base income", func(a *Assumptions) { a.Investor.BaseIncome = -1 }, "investor.baseIncome"},
		{"unknown withholding strategy", func(a *Assumptions) { a.Tax.Strategy = "hourly" }, "tax.strategy"},
		{"unknown withholding method", func(a *Assumptions) { a.Tax.Method = "guesswork" }, "tax.method"},
		{"unknown filing type", func(a *Assumptions) { a.Tax.FilingType = "partnership" }, "tax.filingType"},
		{"fixed percent above 100", func(a *Assumptions) { a.Tax.FixedPercent = 101 }, "tax.fixedPercent"},
		{"drip percent above 100", func(a *Assumptions) { a.Drip.Percent = 150 }, "drip.percent"},
		{"unknown price model", func(a *Assumptions) { a.Price.Model = "psychic" }, "price.model"},
		{"unknown dividend model", func(a *Assumptions) { a.Dividend.Model = "psychic" }, "dividend.model"},
		{"negative initial dividend", func(a *Assumptions) { a.Dividend.InitialDividend = -1 }, "dividend.initialDividend"},
		{
			"loan without amount",
			func(a *Assumptions) { a.Loan = LoanTerms{Included: true, AmortizationMonths: 12} },
			"loan.amount",
		},
		{
			"loan without term",
			func(a *Assumptions) { a.Loan = LoanTerms{Included: true, Amount: 1000} },
			"loan.amortizationMonths",
		},
		{
			"sweep percent above 100",
			func(a *Assumptions) {
				a.Loan = LoanTerms{Included: true, Amount: 1000, AmortizationMonths: 12, SurplusToPrincipalPercent: 101}
			},
			"loan.surplusToPrincipalPercent",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			a := baseAssumptions()
			tt.mutate(&a)

			err := a.Validate()
			require.Error(t, err)

			var invalid *InvalidAssumptionsError
			require.ErrorAs(t, err, &invalid)
			assert.Equal(t, tt.field, invalid.Field)
		})
	}
}

func TestAssumptionsValidate_EmptyEnumsUseCompatibilityDefaults(t *testing.T) {
	a := baseAssumptions()
	a.Tax = TaxPolicy{}

	assert.NoError(t, a.Validate())
	assert.Equal(t, FilingSingle, a.Tax.Filing())
}

func TestAssumptionsValidate_UnknownDripStrategyIsAccepted(t *testing.T) {
	// Unrecognized DRIP strategies intentionally pass validation; the
	// engine routes them through the legacy default arm.
	a := baseAssumptions()
	a.Drip.Strategy = "mystery"
	assert.NoError(t, a.Validate())
}
