// Package simulation advances the portfolio state month by month, composing
// the tax engine, contribution materializer, price/dividend generators and
// loan amortizer into the full amortization schedule and summary.
package simulation

import (
	"math"
	"time"

	"github.com/simaogato/dripsim-backend/internal/domain"
	"github.com/simaogato/dripsim-backend/internal/usecase/contribution"
	"github.com/simaogato/dripsim-backend/internal/usecase/loan"
	"github.com/simaogato/dripsim-backend/internal/usecase/market"
	"github.com/simaogato/dripsim-backend/internal/usecase/tax"
)

// annualYieldPeriods is the number of 4-week distribution cycles per year
const annualYieldPeriods = 13.0

// Run executes one simulation over the given assumptions and returns the
// complete amortization schedule plus the derived summary. The computation is
// pure: identical assumptions (including the seed) produce an identical
// result.
func Run(a domain.Assumptions) (*domain.SimulationResult, error) {
	if err := a.Validate(); err != nil {
		return nil, err
	}

	startYear := a.Schedule.StartYear
	if startYear == 0 {
		startYear = time.Now().Year()
	}

	months := a.Schedule.Months
	startMonth := a.Schedule.StartMonth
	filing := a.Tax.Filing()

	src := market.NewSource(a.Seed)
	priceGen := market.NewPriceGenerator(a.Price, a.Investor.InitialSharePrice, src)
	divGen := market.NewDividendGenerator(a.Dividend, src)
	loanState := loan.NewState(a.Loan)

	contributionsByMonth := groupContributionsByMonth(a, startYear, months, startMonth)

	entries := make([]domain.AmortizationEntry, 0, months+1)

	initialShares := a.Investor.InitialShareCount
	if a.Investor.InitialSharePrice > 0 {
		initialShares += a.Investor.InitialInvestment / a.Investor.InitialSharePrice
	}

	initialPrincipal := 0.0
	if a.Loan.Included {
		initialPrincipal = a.Loan.Amount
	}

	// Month 0 is the initial position: no dividend, no payment activity.
	entries = append(entries, domain.AmortizationEntry{
		Month:             0,
		StartingShares:    initialShares,
		EndingShares:      initialShares,
		SharePrice:        a.Investor.InitialSharePrice,
		PortfolioValue:    initialShares * a.Investor.InitialSharePrice,
		LoanPrincipal:     initialPrincipal,
		NetPortfolioValue: initialShares*a.Investor.InitialSharePrice - initialPrincipal,
	})

	ytdTaxes := 0.0

	for m := 1; m <= months; m++ {
		prev := entries[m-1]

		price := priceGen.Next()
		dividendPerShare := divGen.Next(price, calendarMonth(startMonth, m))

		startingShares := prev.EndingShares
		distribution := startingShares * dividendPerShare

		// YTD resets at the first month of each 12-month cycle relative
		// to the start month.
		ytd := distribution
		if (m-1)%12 != 0 {
			ytd += prev.YTDDistribution
		} else {
			ytdTaxes = 0
		}

		taxesWithheld := 0.0
		quarterWindow := 0.0
		if isWithholdingMonth(a.Tax.Strategy, m) {
			quarterWindow = distribution
			if a.Tax.Strategy == domain.WithholdQuarterly && m >= 3 {
				quarterWindow += entries[m-1].Distribution + entries[m-2].Distribution
			}
			taxesWithheld = withhold(a, filing, ytd, distribution, quarterWindow)
		}
		ytdTaxes += taxesWithheld

		payment := loanState.Advance()

		surplus := distribution - (taxesWithheld + payment)

		additionalPrincipal := 0.0
		if loanState.Active() && surplus > 0 {
			additionalPrincipal = loanState.SweepPrincipal(surplus * a.Loan.SurplusToPrincipalPercent / 100)
		}

		actualDrip := reinvestment(a.Drip, surplus-additionalPrincipal)

		contributionAmount := 0.0
		for _, c := range contributionsByMonth[m] {
			contributionAmount += c.Amount
		}

		newSharesFromDrip := 0.0
		newSharesFromContribution := 0.0
		if price > 0 {
			newSharesFromDrip = actualDrip / price
			newSharesFromContribution = contributionAmount / price
		}

		endingShares := startingShares + newSharesFromDrip + newSharesFromContribution
		portfolioValue := endingShares * price
		netPortfolioValue := portfolioValue - loanState.Principal

		entries = append(entries, domain.AmortizationEntry{
			Month:                     m,
			StartingShares:            startingShares,
			EndingShares:              endingShares,
			DividendPerShare:          dividendPerShare,
			Distribution:              distribution,
			YTDDistribution:           ytd,
			TaxesWithheld:             taxesWithheld,
			EffectiveTaxRatePercent:   effectiveTaxRate(a.Tax.Strategy, ytdTaxes, ytd, taxesWithheld, quarterWindow),
			LoanPayment:               payment,
			AdditionalPrincipal:       additionalPrincipal,
			ActualDrip:                actualDrip,
			NewSharesFromDrip:         newSharesFromDrip,
			NewSharesFromContribution: newSharesFromContribution,
			ContributionAmount:        contributionAmount,
			SharePrice:                price,
			PortfolioValue:            portfolioValue,
			LoanPrincipal:             loanState.Principal,
			NetPortfolioValue:         netPortfolioValue,
		})
	}

	return &domain.SimulationResult{
		Summary:      buildSummary(a, loanState.Payment, entries),
		Amortization: entries,
	}, nil
}

// calendarMonth maps a simulated month index onto a calendar month (1..12)
func calendarMonth(startMonth, monthIndex int) int {
	return (startMonth-1+monthIndex)%12 + 1
}

func isWithholdingMonth(strategy domain.WithholdingStrategy, month int) bool {
	switch strategy {
	case domain.WithholdMonthly:
		return true
	case domain.WithholdQuarterly:
		return month%3 == 0
	}
	return false
}

// withhold computes the taxes withheld for one withholding event.
// An unrecognized method falls through to the bracket method, the historical
// default.
func withhold(a domain.Assumptions, filing domain.FilingType, ytd, distribution, window float64) float64 {
	switch a.Tax.Method {
	case domain.MethodFixedAmount:
		return a.Tax.FixedAmount
	case domain.MethodFixedPercent:
		return window * a.Tax.FixedPercent / 100
	default:
		// Incremental-bracket technique: tax on the full taxable income
		// minus tax on the same income excluding this period's
		// distributions. The standard deduction comes off first and the
		// floors keep withholding non-negative while YTD income is
		// below the deduction.
		adjustedBase := a.Investor.BaseIncome - tax.StandardDeduction(filing)
		total := tax.Calculate(math.Max(adjustedBase+ytd, 0), filing)
		prior := tax.Calculate(math.Max(adjustedBase+ytd-window, 0), filing)
		return math.Max(total-prior, 0)
	}
}

// reinvestment applies the DRIP policy to the surplus remaining after the
// principal sweep. Unknown strategies (including fixedIncome) fall through to
// the legacy default of reinvesting the entire remaining surplus; that arm is
// intentional compatibility behavior, not an omission.
func reinvestment(policy domain.DripPolicy, available float64) float64 {
	if available < 0 {
		available = 0
	}
	switch policy.Strategy {
	case domain.DripNone:
		return 0
	case domain.DripPercentage:
		return available * policy.Percent / 100
	case domain.DripFixedAmount:
		return math.Min(policy.FixedAmount, available)
	default:
		return available
	}
}

// effectiveTaxRate is the display rate, rounded to two decimals. It is zero
// whenever nothing was withheld for the relevant base.
func effectiveTaxRate(strategy domain.WithholdingStrategy, ytdTaxes, ytd, withheld, window float64) float64 {
	switch strategy {
	case domain.WithholdMonthly:
		if ytdTaxes > 0 && ytd > 0 {
			return domain.RoundCents(ytdTaxes / ytd * 100)
		}
	case domain.WithholdQuarterly:
		if withheld > 0 && window > 0 {
			return domain.RoundCents(withheld / window * 100)
		}
	}
	return 0
}

// groupContributionsByMonth materializes the contribution rules and indexes
// the dated results by simulated month. Anything dated inside month 0 is
// applied in month 1, the first month with activity.
func groupContributionsByMonth(a domain.Assumptions, startYear, months, startMonth int) map[int][]domain.MaterializedContribution {
	if len(a.Contributions) == 0 {
		return nil
	}

	base := time.Date(startYear, time.Month(startMonth), 1, 0, 0, 0, 0, time.UTC)
	materialized, _ := contribution.Materializer{Now: base}.Materialize(a.Contributions, months, startMonth)

	grouped := make(map[int][]domain.MaterializedContribution)
	for _, c := range materialized {
		idx := (c.Date.Year()-startYear)*12 + int(c.Date.Month()) - startMonth
		if idx < 1 {
			idx = 1
		}
		if idx > months {
			continue
		}
		grouped[idx] = append(grouped[idx], c)
	}
	return grouped
}

// buildSummary derives the aggregate view from the finished schedule
func buildSummary(a domain.Assumptions, monthlyPayment float64, entries []domain.AmortizationEntry) domain.CalculatedSummary {
	summary := domain.CalculatedSummary{
		InitialShareCount:  entries[0].EndingShares,
		MonthlyLoanPayment: monthlyPayment,
	}

	summary.AnnualizedDividendYieldPercent = annualizedYield(a, entries)

	if a.Loan.Included {
		summary.LoanPayoffMonth = a.Loan.AmortizationMonths
		for _, e := range entries[1:] {
			if e.LoanPrincipal <= 0 {
				summary.LoanPayoffMonth = e.Month
				break
			}
		}
	}

	for m := 12; m < len(entries); m += 12 {
		summary.YearlyNetPortfolioValues = append(summary.YearlyNetPortfolioValues, entries[m].NetPortfolioValue)
	}

	return summary
}

// annualizedYield reports the dividend yield on an annual basis. Yield-based
// models annualize the configured percentage directly; other models derive it
// from the first simulated dividend, undoubled if month 1 lands in December.
func annualizedYield(a domain.Assumptions, entries []domain.AmortizationEntry) float64 {
	if a.Dividend.Model == domain.DividendYield {
		if a.Dividend.YieldPeriod == domain.YieldAnnual {
			return a.Dividend.YieldPercent
		}
		return a.Dividend.YieldPercent * annualYieldPeriods
	}

	if len(entries) < 2 || a.Investor.InitialSharePrice <= 0 {
		return 0
	}
	dps := entries[1].DividendPerShare
	if calendarMonth(a.Schedule.StartMonth, 1) == 12 {
		dps /= 2
	}
	return dps * annualYieldPeriods / a.Investor.InitialSharePrice * 100
}
