// Package scenario manages named, persisted assumption sets and runs
// simulations from them.
package scenario

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/simaogato/dripsim-backend/internal/domain"
	"github.com/simaogato/dripsim-backend/internal/usecase/simulation"
)

// SaveScenarioInput represents the input for saving a scenario
type SaveScenarioInput struct {
	Name        string
	Assumptions domain.Assumptions
}

// Service handles scenario management operations
type Service struct {
	Repo domain.ScenarioRepository
}

// NewService creates a new scenario Service instance
func NewService(repo domain.ScenarioRepository) *Service {
	return &Service{Repo: repo}
}

// Save validates and stores a new scenario
func (s *Service) Save(ctx context.Context, input SaveScenarioInput) (*domain.Scenario, error) {
	now := time.Now().UTC()
	scenario := &domain.Scenario{
		ID:          uuid.New(),
		Name:        input.Name,
		Assumptions: input.Assumptions,
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	if err := scenario.Validate(); err != nil {
		return nil, err
	}

	if err := s.Repo.Create(ctx, scenario); err != nil {
		return nil, err
	}

	return scenario, nil
}

// Get retrieves a stored scenario by ID
func (s *Service) Get(ctx context.Context, id uuid.UUID) (*domain.Scenario, error) {
	return s.Repo.GetByID(ctx, id)
}

// List retrieves all stored scenarios
func (s *Service) List(ctx context.Context) ([]*domain.Scenario, error) {
	return s.Repo.List(ctx)
}

// Delete removes a stored scenario by ID
func (s *Service) Delete(ctx context.Context, id uuid.UUID) error {
	return s.Repo.Delete(ctx, id)
}

// Run loads a stored scenario and executes a simulation over its assumptions
func (s *Service) Run(ctx context.Context, id uuid.UUID) (*domain.SimulationResult, error) {
	scenario, err := s.Repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	return simulation.Run(scenario.Assumptions)
}
