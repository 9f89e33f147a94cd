// Package market produces per-month share prices and dividends per share
// under the configured deterministic or stochastic models.
package market

import (
	"math"
	"math/rand"

	"github.com/simaogato/dripsim-backend/internal/domain"
)

const monthsPerYear = 12.0

// annualYieldPeriods is the number of 4-week distribution cycles per year
// used when a yield is quoted annually.
const annualYieldPeriods = 13.0

// Source is an injectable random source so stochastic models stay
// deterministic under a fixed seed. *rand.Rand satisfies it.
type Source interface {
	Float64() float64
	NormFloat64() float64
}

// NewSource returns a seeded Source backed by math/rand
func NewSource(seed int64) Source {
	return rand.New(rand.NewSource(seed))
}

// PriceGenerator advances the share price one month at a time
type PriceGenerator struct {
	cfg   domain.PriceModelConfig
	src   Source
	price float64
}

// NewPriceGenerator creates a generator seeded with the initial share price
func NewPriceGenerator(cfg domain.PriceModelConfig, initialPrice float64, src Source) *PriceGenerator {
	return &PriceGenerator{cfg: cfg, src: src, price: initialPrice}
}

// Price returns the current share price without advancing
func (g *PriceGenerator) Price() float64 { return g.price }

// Next advances the price by one month and returns the new value
func (g *PriceGenerator) Next() float64 {
	switch g.cfg.Model {
	case domain.PriceLinear:
		g.price += g.cfg.MonthlyDelta
	case domain.PriceUniform:
		annual := g.cfg.AnnualMinPercent + g.src.Float64()*(g.cfg.AnnualMaxPercent-g.cfg.AnnualMinPercent)
		g.price *= 1 + annual/100/monthsPerYear
	case domain.PriceNormal:
		monthly := g.cfg.AnnualMeanPercent/monthsPerYear + g.src.NormFloat64()*g.cfg.AnnualStdDevPercent/math.Sqrt(monthsPerYear)
		g.price *= 1 + monthly/100
	case domain.PriceGBM:
		g.price *= gbmStep(g.cfg.AnnualDriftPercent, g.cfg.AnnualVolatilityPercent, g.src)
	default:
		// geometric, compound percentage growth
		g.price *= 1 + g.cfg.MonthlyAppreciationPercent/100
	}
	return g.price
}

// DividendGenerator advances the dividend per share one month at a time.
// The internal base is seeded from the explicit initial dividend, never from
// a distribution, so the starting value is deterministic. December returns
// twice the base value, representing the extra distribution cycle; the base
// itself is not doubled.
type DividendGenerator struct {
	cfg  domain.DividendModelConfig
	src  Source
	base float64
}

// NewDividendGenerator creates a generator seeded with the initial dividend
func NewDividendGenerator(cfg domain.DividendModelConfig, src Source) *DividendGenerator {
	return &DividendGenerator{cfg: cfg, src: src, base: cfg.InitialDividend}
}

// Next advances the dividend per share for a month with the given current
// share price and calendar month (1..12), and returns the payable value.
func (g *DividendGenerator) Next(price float64, calendarMonth int) float64 {
	switch g.cfg.Model {
	case domain.DividendLinear:
		g.base += g.cfg.MonthlyDelta
	case domain.DividendUniform:
		annual := g.cfg.AnnualMinPercent + g.src.Float64()*(g.cfg.AnnualMaxPercent-g.cfg.AnnualMinPercent)
		g.base *= 1 + annual/100/monthsPerYear
	case domain.DividendNormal:
		monthly := g.cfg.AnnualMeanPercent/monthsPerYear + g.src.NormFloat64()*g.cfg.AnnualStdDevPercent/math.Sqrt(monthsPerYear)
		g.base *= 1 + monthly/100
	case domain.DividendGBM:
		g.base *= gbmStep(g.cfg.AnnualDriftPercent, g.cfg.AnnualVolatilityPercent, g.src)
	default:
		// yield-based, percentage of the current price
		yield := g.cfg.YieldPercent / 100
		if g.cfg.YieldPeriod == domain.YieldAnnual {
			yield /= annualYieldPeriods
		}
		g.base = price * yield
	}

	if calendarMonth == 12 {
		return g.base * 2
	}
	return g.base
}

// gbmStep returns one monthly geometric Brownian motion factor from
// annualized drift and volatility percentages
func gbmStep(driftPercent, volatilityPercent float64, src Source) float64 {
	mu := driftPercent / 100
	sigma := volatilityPercent / 100
	dt := 1 / monthsPerYear
	return math.Exp((mu-sigma*sigma/2)*dt + sigma*math.Sqrt(dt)*src.NormFloat64())
}
