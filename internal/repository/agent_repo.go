package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"wastetrade-service/internal/domain"
	"wastetrade-service/pkg/xerrors"
)

type AgentRepository interface {
	Create(ctx context.Context, a *domain.Agent) error
	GetByID(ctx context.Context, agentID int64) (*domain.Agent, error)
	GetByEmail(ctx context.Context, email string) (*domain.Agent, error)
	List(ctx context.Context, limit, offset int) ([]*domain.Agent, error)
	UpdateAddress(ctx context.Context, agentID int64, addr *domain.Address) error
	Exists(ctx context.Context, agentID int64) (bool, error)
}

type agentRepo struct {
	db *pgxpool.Pool
}

func NewAgentRepo(db *pgxpool.Pool) AgentRepository {
	return &agentRepo{db: db}
}

func (r *agentRepo) Create(ctx context.Context, a *domain.Agent) error {
	var street, city, state *string
	if a.Address != nil {
		street, city, state = &a.Address.Street, &a.Address.City, &a.Address.State
	}

	query := `
		INSERT INTO agents
		  (reference, username, email, password, phone, street, city, state, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, now(), now())
		RETURNING agent_id, created_at, updated_at
	`
	err := r.db.QueryRow(ctx, query,
		a.Reference, a.Username, a.Email, a.Password, a.Phone, street, city, state).
		Scan(&a.AgentID, &a.CreatedAt, &a.UpdatedAt)
	if err != nil {
		if xerrors.ParsePGErrorCode(err) == "23505" {
			return xerrors.ErrAgentAlreadyExists
		}
		return fmt.Errorf("failed to create agent: %w", err)
	}
	return nil
}

func (r *agentRepo) GetByID(ctx context.Context, agentID int64) (*domain.Agent, error) {
	row := r.db.QueryRow(ctx, `
		SELECT agent_id, reference, username, email, phone, street, city, state, created_at, updated_at
		FROM agents WHERE agent_id = $1
	`, agentID)
	return scanAgent(row)
}

func (r *agentRepo) GetByEmail(ctx context.Context, email string) (*domain.Agent, error) {
	row := r.db.QueryRow(ctx, `
		SELECT agent_id, reference, username, email, phone, street, city, state, created_at, updated_at
		FROM agents WHERE email = $1
	`, email)
	return scanAgent(row)
}

func (r *agentRepo) List(ctx context.Context, limit, offset int) ([]*domain.Agent, error) {
	rows, err := r.db.Query(ctx, `
		SELECT agent_id, reference, username, email, phone, street, city, state, created_at, updated_at
		FROM agents
		ORDER BY agent_id
		LIMIT $1 OFFSET $2
	`, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("failed to list agents: %w", err)
	}
	defer rows.Close()

	var agents []*domain.Agent
	for rows.Next() {
		a, err := scanAgent(rows)
		if err != nil {
			return nil, err
		}
		agents = append(agents, a)
	}
	return agents, rows.Err()
}

func (r *agentRepo) UpdateAddress(ctx context.Context, agentID int64, addr *domain.Address) error {
	tag, err := r.db.Exec(ctx, `
		UPDATE agents SET street = $1, city = $2, state = $3, updated_at = now()
		WHERE agent_id = $4
	`, addr.Street, addr.City, addr.State, agentID)
	if err != nil {
		return fmt.Errorf("failed to update agent address: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return xerrors.ErrAgentNotFound
	}
	return nil
}

func (r *agentRepo) Exists(ctx context.Context, agentID int64) (bool, error) {
	var exists bool
	err := r.db.QueryRow(ctx,
		`SELECT EXISTS (SELECT 1 FROM agents WHERE agent_id = $1)`, agentID).
		Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("failed to check agent existence: %w", err)
	}
	return exists, nil
}

func scanAgent(row pgx.Row) (*domain.Agent, error) {
	var a domain.Agent
	var street, city, state *string
	err := row.Scan(&a.AgentID, &a.Reference, &a.Username, &a.Email, &a.Phone,
		&street, &city, &state, &a.CreatedAt, &a.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, xerrors.ErrAgentNotFound
		}
		return nil, fmt.Errorf("failed to scan agent: %w", err)
	}

	if street != nil || city != nil || state != nil {
		a.Address = &domain.Address{}
		if street != nil {
			a.Address.Street = *street
		}
		if city != nil {
			a.Address.City = *city
		}
		if state != nil {
			a.Address.State = *state
		}
	}
	return &a, nil
}
