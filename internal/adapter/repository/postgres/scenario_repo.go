package postgres

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/simaogato/dripsim-backend/internal/domain"
)

// scenarioRepository implements domain.ScenarioRepository
type scenarioRepository struct {
	db *DB
}

// NewScenarioRepository creates a new scenario repository
func NewScenarioRepository(db *DB) domain.ScenarioRepository {
	return &scenarioRepository{db: db}
}

// Create stores a new scenario; assumptions are serialized to JSONB
func (r *scenarioRepository) Create(ctx context.Context, scenario *domain.Scenario) error {
	assumptions, err := json.Marshal(scenario.Assumptions)
	if err != nil {
		return fmt.Errorf("failed to serialize assumptions: %w", err)
	}

	const query = `
		INSERT INTO scenarios (id, name, assumptions, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5)
	`
	if _, err := r.db.ExecContext(ctx, query,
		scenario.ID, scenario.Name, assumptions, scenario.CreatedAt, scenario.UpdatedAt); err != nil {
		return fmt.Errorf("failed to insert scenario: %w", err)
	}
	return nil
}

// GetByID retrieves a scenario by its ID
func (r *scenarioRepository) GetByID(ctx context.Context, id uuid.UUID) (*domain.Scenario, error) {
	const query = `
		SELECT id, name, assumptions, created_at, updated_at
		FROM scenarios
		WHERE id = $1
	`
	scenario, err := scanScenario(r.db.QueryRowContext(ctx, query, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrScenarioNotFound
		}
		return nil, fmt.Errorf("failed to get scenario: %w", err)
	}
	return scenario, nil
}

// List retrieves all stored scenarios ordered by creation time
func (r *scenarioRepository) List(ctx context.Context) ([]*domain.Scenario, error) {
	const query = `
		SELECT id, name, assumptions, created_at, updated_at
		FROM scenarios
		ORDER BY created_at ASC
	`
	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to query scenarios: %w", err)
	}
	defer rows.Close()

	var scenarios []*domain.Scenario
	for rows.Next() {
		scenario, err := scanScenario(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan scenario: %w", err)
		}
		scenarios = append(scenarios, scenario)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating scenarios: %w", err)
	}
	return scenarios, nil
}

// Delete removes a scenario by its ID
func (r *scenarioRepository) Delete(ctx context.Context, id uuid.UUID) error {
	const query = `DELETE FROM scenarios WHERE id = $1`
	result, err := r.db.ExecContext(ctx, query, id)
	if err != nil {
		return fmt.Errorf("failed to delete scenario: %w", err)
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to read affected rows: %w", err)
	}
	if affected == 0 {
		return domain.ErrScenarioNotFound
	}
	return nil
}

// rowScanner abstracts *sql.Row and *sql.Rows
type rowScanner interface {
	Scan(dest ...any) error
}

func scanScenario(row rowScanner) (*domain.Scenario, error) {
	var scenario domain.Scenario
	var assumptions []byte

	if err := row.Scan(
		&scenario.ID,
		&scenario.Name,
		&assumptions,
		&scenario.CreatedAt,
		&scenario.UpdatedAt,
	); err != nil {
		return nil, err
	}

	if err := json.Unmarshal(assumptions, &scenario.Assumptions); err != nil {
		return nil, fmt.Errorf("failed to parse stored assumptions: %w", err)
	}

	return &scenario, nil
}
