package domain

import (
	"time"

	"github.com/google/uuid"
)

// Scenario is a named, persisted set of assumptions. Persistence is a host
// concern; the simulation core never reads or writes scenarios itself.
type Scenario struct {
	ID          uuid.UUID   `json:"id"`
	Name        string      `json:"name"`
	Assumptions Assumptions `json:"assumptions"`
	CreatedAt   time.Time   `json:"createdAt"`
	UpdatedAt   time.Time   `json:"updatedAt"`
}

// Validate ensures the scenario adheres to domain rules
func (s *Scenario) Validate() error {
	if s.Name == "" {
		return invalid("name", "scenario name cannot be empty")
	}
	return s.Assumptions.Validate()
}
