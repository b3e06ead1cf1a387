package repository

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"

	"wastetrade-service/internal/domain"
)

type CollectionRepository interface {
	Create(ctx context.Context, c *domain.WasteCollection) error
	ListByAgent(ctx context.Context, agentID int64, limit, offset int) ([]*domain.WasteCollection, error)
}

type collectionRepo struct {
	db *pgxpool.Pool
}

func NewCollectionRepo(db *pgxpool.Pool) CollectionRepository {
	return &collectionRepo{db: db}
}

func (r *collectionRepo) Create(ctx context.Context, c *domain.WasteCollection) error {
	query := `
		INSERT INTO waste_collections (reference, agent_id, category, weight, username, collected_at)
		VALUES ($1, $2, $3, $4, $5, now())
		RETURNING collection_id, collected_at
	`
	err := r.db.QueryRow(ctx, query,
		c.Reference, c.AgentID, string(c.Category), c.Weight, c.Username).
		Scan(&c.CollectionID, &c.CollectedAt)
	if err != nil {
		return fmt.Errorf("failed to create collection record: %w", err)
	}
	return nil
}

func (r *collectionRepo) ListByAgent(ctx context.Context, agentID int64, limit, offset int) ([]*domain.WasteCollection, error) {
	rows, err := r.db.Query(ctx, `
		SELECT collection_id, reference, agent_id, category, weight, username, collected_at
		FROM waste_collections
		WHERE agent_id = $1
		ORDER BY collected_at DESC
		LIMIT $2 OFFSET $3
	`, agentID, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("failed to list collections: %w", err)
	}
	defer rows.Close()

	var collections []*domain.WasteCollection
	for rows.Next() {
		var c domain.WasteCollection
		var category string
		if err := rows.Scan(&c.CollectionID, &c.Reference, &c.AgentID, &category,
			&c.Weight, &c.Username, &c.CollectedAt); err != nil {
			return nil, err
		}
		c.Category = domain.Category(category)
		collections = append(collections, &c)
	}
	return collections, rows.Err()
}
