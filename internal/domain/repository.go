package domain

import (
	"context"
	"errors"

	"github.com/google/uuid"
)

// ErrScenarioNotFound indicates the requested scenario does not exist
var ErrScenarioNotFound = errors.New("scenario not found")

// ScenarioRepository defines the interface for scenario persistence operations
type ScenarioRepository interface {
	// Create stores a new scenario
	Create(ctx context.Context, scenario *Scenario) error

	// GetByID retrieves a scenario by its ID
	// Returns ErrScenarioNotFound if no scenario exists with that ID
	GetByID(ctx context.Context, id uuid.UUID) (*Scenario, error)

	// List retrieves all stored scenarios ordered by creation time
	List(ctx context.Context) ([]*Scenario, error)

	// Delete removes a scenario by its ID
	// Returns ErrScenarioNotFound if no scenario exists with that ID
	Delete(ctx context.Context, id uuid.UUID) error
}
