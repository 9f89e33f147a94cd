// Package memory provides an in-memory ScenarioRepository used for local
// development and tests. Data resets on restart.
package memory

import (
	"context"
	"sort"
	"sync"

	"github.com/google/uuid"
	"github.com/simaogato/dripsim-backend/internal/domain"
)

// ScenarioRepository is a map-backed implementation of domain.ScenarioRepository
type ScenarioRepository struct {
	mu        sync.RWMutex
	scenarios map[uuid.UUID]domain.Scenario
}

// New creates an empty in-memory scenario repository
func New() *ScenarioRepository {
	return &ScenarioRepository{
		scenarios: make(map[uuid.UUID]domain.Scenario),
	}
}

func (r *ScenarioRepository) Create(ctx context.Context, scenario *domain.Scenario) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.scenarios[scenario.ID] = *scenario
	return nil
}

func (r *ScenarioRepository) GetByID(ctx context.Context, id uuid.UUID) (*domain.Scenario, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	scenario, ok := r.scenarios[id]
	if !ok {
		return nil, domain.ErrScenarioNotFound
	}
	copy := scenario
	return &copy, nil
}

func (r *ScenarioRepository) List(ctx context.Context) ([]*domain.Scenario, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]*domain.Scenario, 0, len(r.scenarios))
	for id := range r.scenarios {
		scenario := r.scenarios[id]
		out = append(out, &scenario)
	}
	sort.Slice(out, func(i, j int) bool {
		return out[i].CreatedAt.Before(out[j].CreatedAt)
	})
	return out, nil
}

func (r *ScenarioRepository) Delete(ctx context.Context, id uuid.UUID) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.scenarios[id]; !ok {
		return domain.ErrScenarioNotFound
	}
	delete(r.scenarios, id)
	return nil
}
