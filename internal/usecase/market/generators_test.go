package market

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/simaogato/dripsim-backend/internal/domain"
)

func TestPriceGenerator_Geometric(t *testing.T) {
	g := NewPriceGenerator(domain.PriceModelConfig{
		Model:                      domain.PriceGeometric,
		MonthlyAppreciationPercent: 10,
	}, 100, nil)

	assert.InDelta(t, 110, g.Next(), 1e-9)
	assert.InDelta(t, 121, g.Next(), 1e-9)
}

func TestPriceGenerator_GeometricDecline(t *testing.T) {
	g := NewPriceGenerator(domain.PriceModelConfig{
		Model:                      domain.PriceGeometric,
		MonthlyAppreciationPercent: -1,
	}, 22.50, nil)

	assert.InDelta(t, 22.275, g.Next(), 1e-9)
}

func TestPriceGenerator_Linear(t *testing.T) {
	g := NewPriceGenerator(domain.PriceModelConfig{
		Model:        domain.PriceLinear,
		MonthlyDelta: -2,
	}, 100, nil)

	assert.InDelta(t, 98, g.Next(), 1e-9)
	assert.InDelta(t, 96, g.Next(), 1e-9)
}

func TestPriceGenerator_UniformStaysInBounds(t *testing.T) {
	g := NewPriceGenerator(domain.PriceModelConfig{
		Model:            domain.PriceUniform,
		AnnualMinPercent: -12,
		AnnualMaxPercent: 24,
	}, 100, NewSource(1))

	prev := 100.0
	for i := 0; i < 120; i++ {
		next := g.Next()
		monthly := next/prev - 1
		assert.GreaterOrEqual(t, monthly, -0.01-1e-12)
		assert.LessOrEqual(t, monthly, 0.02+1e-12)
		prev = next
	}
}

func TestPriceGenerator_GBMZeroVolatilityIsPureDrift(t *testing.T) {
	g := NewPriceGenerator(domain.PriceModelConfig{
		Model:              domain.PriceGBM,
		AnnualDriftPercent: 12,
	}, 100, NewSource(1))

	expected := 100 * math.Exp(0.12/12)
	assert.InDelta(t, expected, g.Next(), 1e-9)
}

func TestPriceGenerator_SeededDeterminism(t *testing.T) {
	cfg := domain.PriceModelConfig{
		Model:               domain.PriceNormal,
		AnnualMeanPercent:   8,
		AnnualStdDevPercent: 15,
	}

	a := NewPriceGenerator(cfg, 100, NewSource(42))
	b := NewPriceGenerator(cfg, 100, NewSource(42))

	for i := 0; i < 60; i++ {
		assert.Equal(t, a.Next(), b.Next(), "same seed must yield an identical price path")
	}
}

func TestDividendGenerator_YieldPer4Week(t *testing.T) {
	g := NewDividendGenerator(domain.DividendModelConfig{
		Model:           domain.DividendYield,
		InitialDividend: 1.125,
		YieldPercent:    5,
		YieldPeriod:     domain.YieldPer4Week,
	}, nil)

	assert.InDelta(t, 1.11375, g.Next(22.275, 2), 1e-9)
}

func TestDividendGenerator_YieldAnnualDividesByThirteen(t *testing.T) {
	g := NewDividendGenerator(domain.DividendModelConfig{
		Model:        domain.DividendYield,
		YieldPercent: 13,
		YieldPeriod:  domain.YieldAnnual,
	}, nil)

	assert.InDelta(t, 100*0.13/13, g.Next(100, 2), 1e-9)
}

func TestDividendGenerator_LinearSeedsFromInitialDividend(t *testing.T) {
	g := NewDividendGenerator(domain.DividendModelConfig{
		Model:           domain.DividendLinear,
		InitialDividend: 1.0,
		MonthlyDelta:    0.1,
	}, nil)

	assert.InDelta(t, 1.1, g.Next(50, 2), 1e-9)
	assert.InDelta(t, 1.2, g.Next(50, 3), 1e-9)
}

func TestDividendGenerator_DecemberDoublesWithoutCompounding(t *testing.T) {
	g := NewDividendGenerator(domain.DividendModelConfig{
		Model:           domain.DividendLinear,
		InitialDividend: 1.0,
		MonthlyDelta:    0,
	}, nil)

	assert.InDelta(t, 2.0, g.Next(50, 12), 1e-9, "December pays a doubled distribution")
	assert.InDelta(t, 1.0, g.Next(50, 1), 1e-9, "the doubling must not feed back into the recurrence")
}

func TestDividendGenerator_SeededDeterminism(t *testing.T) {
	cfg := domain.DividendModelConfig{
		Model:                   domain.DividendGBM,
		InitialDividend:         2,
		AnnualDriftPercent:      5,
		AnnualVolatilityPercent: 30,
	}

	a := NewDividendGenerator(cfg, NewSource(7))
	b := NewDividendGenerator(cfg, NewSource(7))

	for i := 0; i < 60; i++ {
		month := i%12 + 1
		assert.Equal(t, a.Next(100, month), b.Next(100, month))
	}
}
