// Package contribution expands recurring and one-time contribution rules into
// a concrete, dated sequence of cash injections over a simulation horizon.
package contribution

import (
	"fmt"
	"sort"
	"time"

	"github.com/simaogato/dripsim-backend/internal/domain"
)

// dateLayouts are the accepted input date formats, tried in order
var dateLayouts = []string{"2006-01-02", time.RFC3339}

// noEndHorizonYears stands in for "no end date" when a rule only has a start
const noEndHorizonYears = 100

// DateParseError reports a contribution date that could not be parsed
type DateParseError struct {
	Value string
	Err   error
}

func (e *DateParseError) Error() string {
	return fmt.Sprintf("unparseable contribution date %q: %v", e.Value, e.Err)
}

func (e *DateParseError) Unwrap() error { return e.Err }

// Materializer expands contribution rules. The zero value uses the current
// time as its clock and silently falls back to "today" for unparseable dates,
// matching the original behavior; StrictDates surfaces a DateParseError
// instead.
type Materializer struct {
	Now         time.Time
	StrictDates bool
}

// Materialize expands the given rules over a horizon of simulationMonths
// months starting at startMonth (1..12) of the current calendar year, using a
// lenient default Materializer. Output is sorted ascending by date with a
// stable tie-break by input order.
func Materialize(rules []domain.SupplementalContribution, simulationMonths, startMonth int) []domain.MaterializedContribution {
	out, _ := Materializer{}.Materialize(rules, simulationMonths, startMonth)
	return out
}

// Materialize expands the given rules over the simulation horizon.
// Disabled rules are skipped entirely. The returned error is non-nil only in
// strict mode, for unparseable dates.
func (m Materializer) Materialize(rules []domain.SupplementalContribution, simulationMonths, startMonth int) ([]domain.MaterializedContribution, error) {
	now := m.Now
	if now.IsZero() {
		now = time.Now()
	}
	today := midnight(now)

	// Month 0 is the initial state; months 1..N are simulated. The window
	// runs from the first day of the start month through the last day of
	// the final simulated month.
	simStart := time.Date(now.Year(), time.Month(startMonth), 1, 0, 0, 0, 0, time.UTC)
	simEnd := simStart.AddDate(0, simulationMonths+1, 0).AddDate(0, 0, -1)

	out := make([]domain.MaterializedContribution, 0)

	for _, rule := range rules {
		if !rule.Enabled {
			continue
		}

		if rule.Type == domain.ContributionOneTime {
			date, err := m.parseDate(rule.StartDate, today)
			if err != nil {
				return nil, err
			}
			if !date.Before(simStart) && !date.After(simEnd) {
				out = append(out, materialized(rule, date))
			}
			continue
		}

		occurrences, err := m.expandRecurring(rule, simStart, simEnd, simulationMonths, today)
		if err != nil {
			return nil, err
		}
		out = append(out, occurrences...)
	}

	sort.SliceStable(out, func(i, j int) bool {
		return out[i].Date.Before(out[j].Date)
	})

	return out, nil
}

// expandRecurring walks every day of every simulated month and tests it
// against the rule's frequency.
func (m Materializer) expandRecurring(rule domain.SupplementalContribution, simStart, simEnd time.Time, simulationMonths int, today time.Time) ([]domain.MaterializedContribution, error) {
	windowStart, windowEnd := simStart, simEnd
	if rule.UseCustomDateRange && rule.StartDate != "" {
		start, err := m.parseDate(rule.StartDate, today)
		if err != nil {
			return nil, err
		}
		windowStart = start
		if rule.EndDate != "" {
			end, err := m.parseDate(rule.EndDate, today)
			if err != nil {
				return nil, err
			}
			windowEnd = end
		} else {
			windowEnd = start.AddDate(noEndHorizonYears, 0, 0)
		}
	}

	// Anchor for week counting and for the day-of-month rules. A rule
	// without an explicit start inherits the simulation start.
	anchor := simStart
	if rule.StartDate != "" {
		parsed, err := m.parseDate(rule.StartDate, today)
		if err != nil {
			return nil, err
		}
		anchor = parsed
	}
	anchorDay := anchor.Day()
	if rule.StartDate == "" {
		anchorDay = 1
	}

	var out []domain.MaterializedContribution

	for monthIndex := 1; monthIndex <= simulationMonths; monthIndex++ {
		monthStart := simStart.AddDate(0, monthIndex, 0)
		daysInMonth := monthStart.AddDate(0, 1, -1).Day()

		for day := 1; day <= daysInMonth; day++ {
			date := time.Date(monthStart.Year(), monthStart.Month(), day, 0, 0, 0, 0, time.UTC)
			if date.Before(windowStart) || date.After(windowEnd) {
				continue
			}
			if m.matches(rule, date, anchor, anchorDay) {
				out = append(out, materialized(rule, date))
			}
		}
	}

	return out, nil
}

// matches tests one calendar day against the rule's frequency
func (m Materializer) matches(rule domain.SupplementalContribution, date, anchor time.Time, anchorDay int) bool {
	switch rule.Frequency {
	case domain.FreqDaily:
		return true
	case domain.FreqWeekly:
		return int(date.Weekday()) == rule.DayOfWeek
	case domain.FreqBiweekly:
		if int(date.Weekday()) != rule.DayOfWeek {
			return false
		}
		return wholeWeeksSince(anchor, date)%2 == 0
	case domain.FreqSemimonthly:
		return date.Day() == 1 || date.Day() == 15
	case domain.FreqMonthly:
		return date.Day() == anchorDay
	case domain.FreqQuarterly:
		switch date.Month() {
		case time.January, time.April, time.July, time.October:
			return date.Day() == anchorDay
		}
		return false
	case domain.FreqYearly:
		return date.Month() == anchor.Month() && date.Day() == anchorDay
	}
	return false
}

// wholeWeeksSince counts whole weeks elapsed between two midnight dates.
// Negative spans floor toward negative infinity so a date before the anchor
// still lands on a consistent parity grid.
func wholeWeeksSince(anchor, date time.Time) int {
	days := int(date.Sub(anchor).Hours() / 24)
	weeks := days / 7
	if days < 0 && days%7 != 0 {
		weeks--
	}
	return weeks
}

// parseDate parses a rule date, falling back to today when lenient
func (m Materializer) parseDate(value string, today time.Time) (time.Time, error) {
	var lastErr error
	for _, layout := range dateLayouts {
		t, err := time.Parse(layout, value)
		if err == nil {
			return midnight(t), nil
		}
		lastErr = err
	}
	if m.StrictDates {
		return time.Time{}, &DateParseError{Value: value, Err: lastErr}
	}
	return today, nil
}

func materialized(rule domain.SupplementalContribution, date time.Time) domain.MaterializedContribution {
	return domain.MaterializedContribution{
		Amount:     rule.Amount,
		Date:       date,
		SourceID:   rule.ID,
		SourceName: rule.Name,
	}
}

func midnight(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}
