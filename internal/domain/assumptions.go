package domain

import "fmt"

// FilingType represents the tax filing status used for bracket selection
type FilingType string

const (
	FilingSingle          FilingType = "single"
	FilingMarried         FilingType = "married"
	FilingHeadOfHousehold FilingType = "headOfHousehold"
)

// WithholdingStrategy controls when taxes are withheld during a simulation
type WithholdingStrategy string

const (
	WithholdNone      WithholdingStrategy = "none"
	WithholdMonthly   WithholdingStrategy = "monthly"
	WithholdQuarterly WithholdingStrategy = "quarterly"
)

// WithholdingMethod controls how the withheld amount is computed
type WithholdingMethod string

const (
	MethodTaxBracket   WithholdingMethod = "taxBracket"
	MethodFixedAmount  WithholdingMethod = "fixedAmount"
	MethodFixedPercent WithholdingMethod = "fixedPercent"
)

// DripStrategy controls how post-tax, post-payment surplus is reinvested
type DripStrategy string

const (
	DripNone        DripStrategy = "none"
	DripPercentage  DripStrategy = "percentage"
	DripFixedAmount DripStrategy = "fixedAmount"
	DripFixedIncome DripStrategy = "fixedIncome"
)

// PriceModel selects the share price evolution model
type PriceModel string

const (
	PriceGeometric PriceModel = "geometric"
	PriceLinear    PriceModel = "linear"
	PriceUniform   PriceModel = "uniform"
	PriceNormal    PriceModel = "normal"
	PriceGBM       PriceModel = "gbm"
)

// DividendModel selects the dividend-per-share evolution model
type DividendModel string

const (
	DividendYield   DividendModel = "yield"
	DividendLinear  DividendModel = "linear"
	DividendUniform DividendModel = "uniform"
	DividendNormal  DividendModel = "normal"
	DividendGBM     DividendModel = "gbm"
)

// YieldPeriod selects the period over which a yield-based dividend is quoted
type YieldPeriod string

const (
	YieldPer4Week YieldPeriod = "per4Week"
	YieldAnnual   YieldPeriod = "annual"
)

// InvestorProfile describes the initial position of the investor
type InvestorProfile struct {
	InitialShareCount float64 `json:"initialShareCount"`
	InitialInvestment float64 `json:"initialInvestment"`
	InitialSharePrice float64 `json:"initialSharePrice"`
	BaseIncome        float64 `json:"baseIncome"`
}

// TaxPolicy describes the withholding rules applied during the simulation.
// An empty Strategy behaves as WithholdNone; an empty Method behaves as
// MethodTaxBracket (compatibility defaults).
type TaxPolicy struct {
	Strategy     WithholdingStrategy `json:"strategy"`
	Method       WithholdingMethod   `json:"method"`
	FilingType   FilingType          `json:"filingType"`
	FixedAmount  float64             `json:"fixedAmount"`
	FixedPercent float64             `json:"fixedPercent"`
}

// DripPolicy describes how surplus cash is converted into new shares.
// Percent and FixedAmount are interpreted per Strategy; Percent is a
// human-readable percentage (5 means 5%).
type DripPolicy struct {
	Strategy    DripStrategy `json:"strategy"`
	Percent     float64      `json:"percent"`
	FixedAmount float64      `json:"fixedAmount"`
}

// LoanTerms describes the financing structure, if any
type LoanTerms struct {
	Included                  bool    `json:"included"`
	Amount                    float64 `json:"amount"`
	AnnualRatePercent         float64 `json:"annualRatePercent"`
	AmortizationMonths        int     `json:"amortizationMonths"`
	SurplusToPrincipalPercent float64 `json:"surplusToPrincipalPercent"`
}

// Schedule describes the simulation horizon. StartYear of zero means the
// current calendar year.
type Schedule struct {
	Months     int `json:"months"`
	StartMonth int `json:"startMonth"` // 1..12
	StartYear  int `json:"startYear"`
}

// PriceModelConfig carries the parameters for the selected price model.
// All percentage fields are human-readable percentages; the random-walk
// parameters are quoted annually and converted to monthly at point of use.
type PriceModelConfig struct {
	Model                     PriceModel `json:"model"`
	MonthlyAppreciationPercent float64   `json:"monthlyAppreciationPercent"` // geometric
	MonthlyDelta              float64    `json:"monthlyDelta"`               // linear, dollars
	AnnualMinPercent          float64    `json:"annualMinPercent"`           // uniform
	AnnualMaxPercent          float64    `json:"annualMaxPercent"`           // uniform
	AnnualMeanPercent         float64    `json:"annualMeanPercent"`          // normal
	AnnualStdDevPercent       float64    `json:"annualStdDevPercent"`        // normal
	AnnualDriftPercent        float64    `json:"annualDriftPercent"`         // gbm
	AnnualVolatilityPercent   float64    `json:"annualVolatilityPercent"`    // gbm
}

// DividendModelConfig carries the parameters for the selected dividend model.
// InitialDividend seeds month zero for every model so the starting value is
// deterministic and never drawn from a distribution.
type DividendModelConfig struct {
	Model                   DividendModel `json:"model"`
	InitialDividend         float64       `json:"initialDividend"`
	YieldPercent            float64       `json:"yieldPercent"`
	YieldPeriod             YieldPeriod   `json:"yieldPeriod"`
	MonthlyDelta            float64       `json:"monthlyDelta"`
	AnnualMinPercent        float64       `json:"annualMinPercent"`
	AnnualMaxPercent        float64       `json:"annualMaxPercent"`
	AnnualMeanPercent       float64       `json:"annualMeanPercent"`
	AnnualStdDevPercent     float64       `json:"annualStdDevPercent"`
	AnnualDriftPercent      float64       `json:"annualDriftPercent"`
	AnnualVolatilityPercent float64       `json:"annualVolatilityPercent"`
}

// Assumptions is the immutable input configuration for one simulation run.
// All percentage fields are stored as human-readable percentages (5 means 5%)
// and converted to fractional rates only at point of use.
type Assumptions struct {
	Investor      InvestorProfile            `json:"investor"`
	Tax           TaxPolicy                  `json:"tax"`
	Drip          DripPolicy                 `json:"drip"`
	Schedule      Schedule                   `json:"schedule"`
	Price         PriceModelConfig           `json:"price"`
	Dividend      DividendModelConfig        `json:"dividend"`
	Loan          LoanTerms                  `json:"loan"`
	Contributions []SupplementalContribution `json:"contributions"`
	Seed          int64                      `json:"seed"`
}

// InvalidAssumptionsError reports a configuration field that fails validation
type InvalidAssumptionsError struct {
	Field  string
	Reason string
}

func (e *InvalidAssumptionsError) Error() string {
	return fmt.Sprintf("invalid assumptions: %s: %s", e.Field, e.Reason)
}

func invalid(field, reason string) error {
	return &InvalidAssumptionsError{Field: field, Reason: reason}
}

var validFilingTypes = map[FilingType]bool{
	FilingSingle:          true,
	FilingMarried:         true,
	FilingHeadOfHousehold: true,
}

var validPriceModels = map[PriceModel]bool{
	PriceGeometric: true,
	PriceLinear:    true,
	PriceUniform:   true,
	PriceNormal:    true,
	PriceGBM:       true,
}

var validDividendModels = map[DividendModel]bool{
	DividendYield:   true,
	DividendLinear:  true,
	DividendUniform: true,
	DividendNormal:  true,
	DividendGBM:     true,
}

// Validate ensures the assumptions adhere to domain rules.
// The original behavior left out-of-range input undefined; here it is
// rejected up front with an InvalidAssumptionsError.
func (a *Assumptions) Validate() error {
	if a.Schedule.Months < 1 {
		return invalid("schedule.months", "must be at least 1")
	}
	if a.Schedule.StartMonth < 1 || a.Schedule.StartMonth > 12 {
		return invalid("schedule.startMonth", "must be between 1 and 12")
	}
	if a.Investor.InitialSharePrice <= 0 {
		return invalid("investor.initialSharePrice", "must be positive")
	}
	if a.Investor.InitialShareCount < 0 {
		return invalid("investor.initialShareCount", "must not be negative")
	}
	if a.Investor.InitialInvestment < 0 {
		return invalid("investor.initialInvestment", "must not be negative")
	}
	if a.Investor.BaseIncome < 0 {
		return invalid("investor.baseIncome", "must not be negative")
	}

	switch a.Tax.Strategy {
	case "", WithholdNone, WithholdMonthly, WithholdQuarterly:
	default:
		return invalid("tax.strategy", "unknown withholding strategy")
	}
	switch a.Tax.Method {
	case "", MethodTaxBracket, MethodFixedAmount, MethodFixedPercent:
	default:
		return invalid("tax.method", "unknown withholding method")
	}
	if a.Tax.FilingType != "" && !validFilingTypes[a.Tax.FilingType] {
		return invalid("tax.filingType", "unknown filing type")
	}
	if a.Tax.FixedAmount < 0 {
		return invalid("tax.fixedAmount", "must not be negative")
	}
	if a.Tax.FixedPercent < 0 || a.Tax.FixedPercent > 100 {
		return invalid("tax.fixedPercent", "must be between 0 and 100")
	}

	if a.Drip.Percent < 0 || a.Drip.Percent > 100 {
		return invalid("drip.percent", "must be between 0 and 100")
	}
	if a.Drip.FixedAmount < 0 {
		return invalid("drip.fixedAmount", "must not be negative")
	}

	if !validPriceModels[a.Price.Model] {
		return invalid("price.model", "unknown price model")
	}
	if !validDividendModels[a.Dividend.Model] {
		return invalid("dividend.model", "unknown dividend model")
	}
	if a.Dividend.InitialDividend < 0 {
		return invalid("dividend.initialDividend", "must not be negative")
	}

	if a.Loan.Included {
		if a.Loan.Amount <= 0 {
			return invalid("loan.amount", "must be positive when a loan is included")
		}
		if a.Loan.AmortizationMonths < 1 {
			return invalid("loan.amortizationMonths", "must be at least 1")
		}
		if a.Loan.AnnualRatePercent < 0 {
			return invalid("loan.annualRatePercent", "must not be negative")
		}
		if a.Loan.SurplusToPrincipalPercent < 0 || a.Loan.SurplusToPrincipalPercent > 100 {
			return invalid("loan.surplusToPrincipalPercent", "must be between 0 and 100")
		}
	}

	for i := range a.Contributions {
		if err := a.Contributions[i].Validate(); err != nil {
			return invalid(fmt.Sprintf("contributions[%d]", i), err.Error())
		}
	}

	return nil
}

// Filing returns the filing type with the compatibility default applied
func (p TaxPolicy) Filing() FilingType {
	if p.FilingType == "" {
		return FilingSingle
	}
	return p.FilingType
}
