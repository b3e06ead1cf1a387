package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"

	"wastetrade-service/internal/domain"
	"wastetrade-service/pkg/xerrors"
)

// WasteWithAgent is a waste row joined with the assigned agent's username,
// nil when the lot is unassigned.
type WasteWithAgent struct {
	Waste         domain.Waste
	AgentUsername *string
}

type WasteRepository interface {
	Create(ctx context.Context, w *domain.Waste) error
	GetByID(ctx context.Context, wasteID int64) (*domain.Waste, error)
	// AssignAgent points the waste lot at an agent. Re-assignment overwrites
	// the prior agent; the single UPDATE keeps concurrent assignments to the
	// same lot serialized on the row lock.
	AssignAgent(ctx context.Context, wasteID, agentID int64) error
	ListAll(ctx context.Context, limit, offset int) ([]*domain.Waste, error)
	ListByCollectionDateBetween(ctx context.Context, start, end time.Time) ([]*WasteWithAgent, error)
}

type wasteRepo struct {
	db *pgxpool.Pool
}

func NewWasteRepo(db *pgxpool.Pool) WasteRepository {
	return &wasteRepo{db: db}
}

func (r *wasteRepo) Create(ctx context.Context, w *domain.Waste) error {
	query := `
		INSERT INTO wastes
		  (reference, type, quantity, price, description, user_id, agent_id, collection_date, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, now(), now())
		RETURNING waste_id, created_at, updated_at
	`
	err := r.db.QueryRow(ctx, query,
		w.Reference, string(w.Type), w.Quantity, w.Price.String(),
		w.Description, w.UserID, w.AgentID, w.CollectionDate).
		Scan(&w.WasteID, &w.CreatedAt, &w.UpdatedAt)
	if err != nil {
		return fmt.Errorf("failed to create waste: %w", err)
	}
	return nil
}

func (r *wasteRepo) GetByID(ctx context.Context, wasteID int64) (*domain.Waste, error) {
	row := r.db.QueryRow(ctx, `
		SELECT waste_id, reference, type, quantity, price, description, user_id, agent_id,
		       collection_date, created_at, updated_at
		FROM wastes WHERE waste_id = $1
	`, wasteID)

	w, err := scanWaste(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, xerrors.ErrWasteNotFound
		}
		return nil, err
	}
	return w, nil
}

func (r *wasteRepo) AssignAgent(ctx context.Context, wasteID, agentID int64) error {
	tag, err := r.db.Exec(ctx,
		`UPDATE wastes SET agent_id = $1, updated_at = now() WHERE waste_id = $2`,
		agentID, wasteID)
	if err != nil {
		return fmt.Errorf("failed to assign waste: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return xerrors.ErrWasteNotFound
	}
	return nil
}

func (r *wasteRepo) ListAll(ctx context.Context, limit, offset int) ([]*domain.Waste, error) {
	rows, err := r.db.Query(ctx, `
		SELECT waste_id, reference, type, quantity, price, description, user_id, agent_id,
		       collection_date, created_at, updated_at
		FROM wastes
		ORDER BY waste_id
		LIMIT $1 OFFSET $2
	`, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("failed to list wastes: %w", err)
	}
	defer rows.Close()

	var wastes []*domain.Waste
	for rows.Next() {
		w, err := scanWaste(rows)
		if err != nil {
			return nil, err
		}
		wastes = append(wastes, w)
	}
	return wastes, rows.Err()
}

// ListByCollectionDateBetween fetches lots whose collection date falls in
// [start, end] inclusive, joined with the assigned agent's username.
func (r *wasteRepo) ListByCollectionDateBetween(ctx context.Context, start, end time.Time) ([]*WasteWithAgent, error) {
	rows, err := r.db.Query(ctx, `
		SELECT w.waste_id, w.reference, w.type, w.quantity, w.price, w.description,
		       w.user_id, w.agent_id, w.collection_date, w.created_at, w.updated_at,
		       a.username
		FROM wastes w
		LEFT JOIN agents a ON a.agent_id = w.agent_id
		WHERE w.collection_date >= $1 AND w.collection_date <= $2
		ORDER BY w.collection_date ASC
	`, start, end)
	if err != nil {
		return nil, fmt.Errorf("failed to query waste report: %w", err)
	}
	defer rows.Close()

	var result []*WasteWithAgent
	for rows.Next() {
		var item WasteWithAgent
		var wasteType, price string
		err := rows.Scan(&item.Waste.WasteID, &item.Waste.Reference, &wasteType,
			&item.Waste.Quantity, &price, &item.Waste.Description,
			&item.Waste.UserID, &item.Waste.AgentID, &item.Waste.CollectionDate,
			&item.Waste.CreatedAt, &item.Waste.UpdatedAt, &item.AgentUsername)
		if err != nil {
			return nil, err
		}
		item.Waste.Type = domain.Category(wasteType)
		if item.Waste.Price, err = decimal.NewFromString(price); err != nil {
			return nil, fmt.Errorf("invalid price on waste %d: %w", item.Waste.WasteID, err)
		}
		result = append(result, &item)
	}
	return result, rows.Err()
}

func scanWaste(row pgx.Row) (*domain.Waste, error) {
	var w domain.Waste
	var wasteType, price string
	err := row.Scan(&w.WasteID, &w.Reference, &wasteType, &w.Quantity, &price,
		&w.Description, &w.UserID, &w.AgentID, &w.CollectionDate, &w.CreatedAt, &w.UpdatedAt)
	if err != nil {
		return nil, err
	}

	w.Type = domain.Category(wasteType)
	if w.Price, err = decimal.NewFromString(price); err != nil {
		return nil, fmt.Errorf("invalid price on waste %d: %w", w.WasteID, err)
	}
	return &w, nil
}
