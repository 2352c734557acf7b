package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/linapteam/linap-api/internal/domain"
	"github.com/linapteam/linap-api/pkg/database"
)

const agentColumns = `id, name, role, origin, description, portrait_url, created_at, updated_at`

const abilityColumns = `id, agent_id, name, key, description, cooldown_seconds, created_at, updated_at`

// agentRepository implements AgentRepository interface
type agentRepository struct {
	db querier
}

// NewAgentRepository creates a new agent repository
func NewAgentRepository(db *database.Postgres) AgentRepository {
	return &agentRepository{db: db.DB}
}

// Create creates a new agent. Name uniqueness is enforced by the database.
func (r *agentRepository) Create(ctx context.Context, agent *domain.Agent) error {
	query := `
		INSERT INTO linap.agents (id, name, role, origin, description, portrait_url, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
	`

	if agent.ID == "" {
		agent.ID = uuid.New().String()
	}

	now := time.Now()
	if agent.CreatedAt.IsZero() {
		agent.CreatedAt = now
	}
	if agent.UpdatedAt.IsZero() {
		agent.UpdatedAt = now
	}

	_, err := r.db.ExecContext(ctx, query,
		agent.ID,
		agent.Name,
		agent.Role,
		agent.Origin,
		agent.Description,
		agent.PortraitURL,
		agent.CreatedAt,
		agent.UpdatedAt,
	)

	if err != nil {
		if isUniqueViolation(err) {
			return fmt.Errorf("agent with this name already exists: %w", ErrConflict)
		}
		return fmt.Errorf("failed to create agent: %w", err)
	}

	return nil
}

func (r *agentRepository) scanAgent(row *sql.Row) (*domain.Agent, error) {
	agent := &domain.Agent{}
	err := row.Scan(
		&agent.ID,
		&agent.Name,
		&agent.Role,
		&agent.Origin,
		&agent.Description,
		&agent.PortraitURL,
		&agent.CreatedAt,
		&agent.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return agent, nil
}

// GetByID retrieves an agent by ID
func (r *agentRepository) GetByID(ctx context.Context, id string) (*domain.Agent, error) {
	query := `SELECT ` + agentColumns + ` FROM linap.agents WHERE id = $1`

	agent, err := r.scanAgent(r.db.QueryRowContext(ctx, query, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("agent with id %s not found: %w", id, ErrNotFound)
		}
		return nil, fmt.Errorf("failed to get agent: %w", err)
	}

	return agent, nil
}

// GetByName retrieves an agent by name
func (r *agentRepository) GetByName(ctx context.Context, name string) (*domain.Agent, error) {
	query := `SELECT ` + agentColumns + ` FROM linap.agents WHERE name = $1`

	agent, err := r.scanAgent(r.db.QueryRowContext(ctx, query, name))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("agent %s not found: %w", name, ErrNotFound)
		}
		return nil, fmt.Errorf("failed to get agent: %w", err)
	}

	return agent, nil
}

// List retrieves agents ordered by name
func (r *agentRepository) List(ctx context.Context, skip, limit int) ([]*domain.Agent, error) {
	query := `SELECT ` + agentColumns + ` FROM linap.agents ORDER BY name OFFSET $1 LIMIT $2`

	rows, err := r.db.QueryContext(ctx, query, skip, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to list agents: %w", err)
	}
	defer rows.Close()

	var agents []*domain.Agent
	for rows.Next() {
		agent := &domain.Agent{}
		err := rows.Scan(
			&agent.ID,
			&agent.Name,
			&agent.Role,
			&agent.Origin,
			&agent.Description,
			&agent.PortraitURL,
			&agent.CreatedAt,
			&agent.UpdatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan agent: %w", err)
		}
		agents = append(agents, agent)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate agents: %w", err)
	}

	return agents, nil
}

// Update applies the non-nil patch fields and returns the updated agent
func (r *agentRepository) Update(ctx context.Context, id string, patch AgentPatch) (*domain.Agent, error) {
	query := `
		UPDATE linap.agents
		SET name = COALESCE($2, name),
			role = COALESCE($3, role),
			origin = COALESCE($4, origin),
			description = COALESCE($5, description),
			portrait_url = COALESCE($6, portrait_url),
			updated_at = $7
		WHERE id = $1
		RETURNING ` + agentColumns

	agent, err := r.scanAgent(r.db.QueryRowContext(ctx, query,
		id,
		patch.Name,
		patch.Role,
		patch.Origin,
		patch.Description,
		patch.PortraitURL,
		time.Now(),
	))

	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("agent with id %s not found: %w", id, ErrNotFound)
		}
		if isUniqueViolation(err) {
			return nil, fmt.Errorf("agent with this name already exists: %w", ErrConflict)
		}
		return nil, fmt.Errorf("failed to update agent: %w", err)
	}

	return agent, nil
}

// Delete removes an agent and its abilities (cascade)
func (r *agentRepository) Delete(ctx context.Context, id string) error {
	query := `DELETE FROM linap.agents WHERE id = $1`

	result, err := r.db.ExecContext(ctx, query, id)
	if err != nil {
		return fmt.Errorf("failed to delete agent: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}

	if rowsAffected == 0 {
		return fmt.Errorf("agent with id %s not found: %w", id, ErrNotFound)
	}

	return nil
}

// CreateAbility creates a new ability for an agent
func (r *agentRepository) CreateAbility(ctx context.Context, ability *domain.Ability) error {
	query := `
		INSERT INTO linap.abilities (id, agent_id, name, key, description, cooldown_seconds, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
	`

	if ability.ID == "" {
		ability.ID = uuid.New().String()
	}

	now := time.Now()
	if ability.CreatedAt.IsZero() {
		ability.CreatedAt = now
	}
	if ability.UpdatedAt.IsZero() {
		ability.UpdatedAt = now
	}

	_, err := r.db.ExecContext(ctx, query,
		ability.ID,
		ability.AgentID,
		ability.Name,
		ability.Key,
		ability.Description,
		ability.CooldownSeconds,
		ability.CreatedAt,
		ability.UpdatedAt,
	)

	if err != nil {
		if isUniqueViolation(err) {
			return fmt.Errorf("agent already has an ability with this name: %w", ErrConflict)
		}
		if isForeignKeyViolation(err) {
			return fmt.Errorf("agent with id %s not found: %w", ability.AgentID, ErrNotFound)
		}
		return fmt.Errorf("failed to create ability: %w", err)
	}

	return nil
}

func (r *agentRepository) scanAbility(row *sql.Row) (*domain.Ability, error) {
	ability := &domain.Ability{}
	err := row.Scan(
		&ability.ID,
		&ability.AgentID,
		&ability.Name,
		&ability.Key,
		&ability.Description,
		&ability.CooldownSeconds,
		&ability.CreatedAt,
		&ability.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return ability, nil
}

// GetAbilityByID retrieves an ability by ID
func (r *agentRepository) GetAbilityByID(ctx context.Context, id string) (*domain.Ability, error) {
	query := `SELECT ` + abilityColumns + ` FROM linap.abilities WHERE id = $1`

	ability, err := r.scanAbility(r.db.QueryRowContext(ctx, query, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("ability with id %s not found: %w", id, ErrNotFound)
		}
		return nil, fmt.Errorf("failed to get ability: %w", err)
	}

	return ability, nil
}

// ListAbilities retrieves all abilities of an agent ordered by name
func (r *agentRepository) ListAbilities(ctx context.Context, agentID string) ([]*domain.Ability, error) {
	query := `SELECT ` + abilityColumns + ` FROM linap.abilities WHERE agent_id = $1 ORDER BY name`

	rows, err := r.db.QueryContext(ctx, query, agentID)
	if err != nil {
		return nil, fmt.Errorf("failed to list abilities: %w", err)
	}
	defer rows.Close()

	var abilities []*domain.Ability
	for rows.Next() {
		ability := &domain.Ability{}
		err := rows.Scan(
			&ability.ID,
			&ability.AgentID,
			&ability.Name,
			&ability.Key,
			&ability.Description,
			&ability.CooldownSeconds,
			&ability.CreatedAt,
			&ability.UpdatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan ability: %w", err)
		}
		abilities = append(abilities, ability)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate abilities: %w", err)
	}

	return abilities, nil
}

// UpdateAbility applies the non-nil patch fields and returns the updated ability
func (r *agentRepository) UpdateAbility(ctx context.Context, id string, patch AbilityPatch) (*domain.Ability, error) {
	query := `
		UPDATE linap.abilities
		SET name = COALESCE($2, name),
			key = COALESCE($3, key),
			description = COALESCE($4, description),
			cooldown_seconds = COALESCE($5, cooldown_seconds),
			updated_at = $6
		WHERE id = $1
		RETURNING ` + abilityColumns

	ability, err := r.scanAbility(r.db.QueryRowContext(ctx, query,
		id,
		patch.Name,
		patch.Key,
		patch.Description,
		patch.CooldownSeconds,
		time.Now(),
	))

	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("ability with id %s not found: %w", id, ErrNotFound)
		}
		if isUniqueViolation(err) {
			return nil, fmt.Errorf("agent already has an ability with this name: %w", ErrConflict)
		}
		return nil, fmt.Errorf("failed to update ability: %w", err)
	}

	return ability, nil
}

// DeleteAbility removes an ability
func (r *agentRepository) DeleteAbility(ctx context.Context, id string) error {
	query := `DELETE FROM linap.abilities WHERE id = $1`

	result, err := r.db.ExecContext(ctx, query, id)
	if err != nil {
		return fmt.Errorf("failed to delete ability: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}

	if rowsAffected == 0 {
		return fmt.Errorf("ability with id %s not found: %w", id, ErrNotFound)
	}

	return nil
}
