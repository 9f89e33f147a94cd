package domain

// AmortizationEntry is the complete portfolio state snapshot for one simulated
// month. Entry M is a pure function of entry M-1 plus that month's exogenous
// inputs; entries are never mutated after creation.
type AmortizationEntry struct {
	Month                     int     `json:"month"`
	StartingShares            float64 `json:"startingShares"`
	EndingShares              float64 `json:"endingShares"`
	DividendPerShare          float64 `json:"dividendPerShare"`
	Distribution              float64 `json:"distribution"`
	YTDDistribution           float64 `json:"ytdDistribution"`
	TaxesWithheld             float64 `json:"taxesWithheld"`
	EffectiveTaxRatePercent   float64 `json:"effectiveTaxRatePercent"`
	LoanPayment               float64 `json:"loanPayment"`
	AdditionalPrincipal       float64 `json:"additionalPrincipal"`
	ActualDrip                float64 `json:"actualDrip"`
	NewSharesFromDrip         float64 `json:"newSharesFromDrip"`
	NewSharesFromContribution float64 `json:"newSharesFromContribution"`
	ContributionAmount        float64 `json:"contributionAmount"`
	SharePrice                float64 `json:"sharePrice"`
	PortfolioValue            float64 `json:"portfolioValue"`
	LoanPrincipal             float64 `json:"loanPrincipal"`
	NetPortfolioValue         float64 `json:"netPortfolioValue"`
}

// CalculatedSummary is the aggregate derived from a full amortization schedule
type CalculatedSummary struct {
	InitialShareCount              float64   `json:"initialShareCount"`
	AnnualizedDividendYieldPercent float64   `json:"annualizedDividendYieldPercent"`
	MonthlyLoanPayment             float64   `json:"monthlyLoanPayment"`
	LoanPayoffMonth                int       `json:"loanPayoffMonth"`
	YearlyNetPortfolioValues       []float64 `json:"yearlyNetPortfolioValues"`
}

// SimulationResult bundles the summary with the month-by-month schedule
type SimulationResult struct {
	Summary      CalculatedSummary   `json:"summary"`
	Amortization []AmortizationEntry `json:"amortization"`
}
