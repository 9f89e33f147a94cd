package domain

import (
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
)

// ContributionType represents the variant of a supplemental contribution
type ContributionType string

const (
	ContributionDCA     ContributionType = "dca"
	ContributionSalary  ContributionType = "salary"
	ContributionOneTime ContributionType = "oneTime"
)

// Frequency represents how often a recurring contribution repeats
type Frequency string

const (
	FreqNone        Frequency = "none"
	FreqDaily       Frequency = "daily"
	FreqWeekly      Frequency = "weekly"
	FreqBiweekly    Frequency = "biweekly"
	FreqSemimonthly Frequency = "semimonthly"
	FreqMonthly     Frequency = "monthly"
	FreqQuarterly   Frequency = "quarterly"
	FreqYearly      Frequency = "yearly"
)

// allowedFrequencies constrains the frequency per contribution variant
var allowedFrequencies = map[ContributionType]map[Frequency]bool{
	ContributionOneTime: {
		FreqNone: true,
	},
	ContributionSalary: {
		FreqWeekly:      true,
		FreqBiweekly:    true,
		FreqSemimonthly: true,
		FreqMonthly:     true,
	},
	ContributionDCA: {
		FreqDaily:       true,
		FreqWeekly:      true,
		FreqBiweekly:    true,
		FreqSemimonthly: true,
		FreqMonthly:     true,
		FreqQuarterly:   true,
		FreqYearly:      true,
	},
}

// SupplementalContribution is a rule describing an irregular cash injection
// into the portfolio. It is created and edited by the caller between runs and
// treated as immutable during a run. Dates are "YYYY-MM-DD" strings; empty
// means unset.
type SupplementalContribution struct {
	ID                 uuid.UUID        `json:"id"`
	Name               string           `json:"name"`
	Type               ContributionType `json:"type"`
	Amount             float64          `json:"amount"`
	Enabled            bool             `json:"enabled"`
	Recurring          bool             `json:"recurring"`
	Frequency          Frequency        `json:"frequency"`
	UseCustomDateRange bool             `json:"useCustomDateRange"`
	StartDate          string           `json:"startDate"`
	EndDate            string           `json:"endDate"`
	DayOfWeek          int              `json:"dayOfWeek"` // 1=Monday .. 5=Friday
}

// Validate ensures the contribution adheres to domain rules.
// The frequency is checked against the per-variant allow-list.
func (c *SupplementalContribution) Validate() error {
	switch c.Type {
	case ContributionDCA, ContributionSalary, ContributionOneTime:
	default:
		return fmt.Errorf("unknown contribution type %q", c.Type)
	}

	if c.Amount <= 0 {
		return errors.New("contribution amount must be positive")
	}

	freq := c.Frequency
	if freq == "" {
		freq = FreqNone
	}
	if !allowedFrequencies[c.Type][freq] {
		return fmt.Errorf("frequency %q is not allowed for %s contributions", freq, c.Type)
	}

	if freq == FreqWeekly || freq == FreqBiweekly {
		if c.DayOfWeek < 1 || c.DayOfWeek > 5 {
			return errors.New("weekly and biweekly contributions require a weekday between 1 (Monday) and 5 (Friday)")
		}
	}

	if c.Type == ContributionOneTime && c.StartDate == "" {
		return errors.New("one-time contributions require a start date")
	}

	return nil
}

// MaterializedContribution is a concrete, dated cash injection produced by
// expanding a SupplementalContribution rule over the simulation horizon.
// SourceID and SourceName are non-owning back-references to the rule.
type MaterializedContribution struct {
	Amount     float64   `json:"amount"`
	Date       time.Time `json:"date"`
	SourceID   uuid.UUID `json:"sourceId"`
	SourceName string    `json:"sourceName"`
}
