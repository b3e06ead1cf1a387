package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"

	"wastetrade-service/internal/domain"
	"wastetrade-service/pkg/xerrors"
)

type TransactionRepository interface {
	// ExecutePlan applies a balance mutation and writes its transaction
	// record as one storage transaction. It returns the created record and
	// the balance after the mutation.
	ExecutePlan(ctx context.Context, req *domain.PlanRequest) (*domain.Transaction, decimal.Decimal, error)

	ListByUser(ctx context.Context, userID int64, limit, offset int) ([]*domain.Transaction, error)
	GetByID(ctx context.Context, transactionID int64) (*domain.Transaction, error)
}

type transactionRepo struct {
	db *pgxpool.Pool
}

func NewTransactionRepo(db *pgxpool.Pool) TransactionRepository {
	return &transactionRepo{db: db}
}

// ExecutePlan uses pessimistic locking (SELECT FOR UPDATE) on the user row.
// Serializing per user is what keeps the non-negative balance invariant
// under concurrent withdrawals.
func (r *transactionRepo) ExecutePlan(ctx context.Context, req *domain.PlanRequest) (*domain.Transaction, decimal.Decimal, error) {
	if err := req.Validate(); err != nil {
		return nil, decimal.Zero, err
	}

	tx, err := r.db.Begin(ctx)
	if err != nil {
		return nil, decimal.Zero, fmt.Errorf("%w: %v", xerrors.ErrStorageUnavailable, err)
	}
	defer tx.Rollback(ctx)

	// Lock the user row and read the current balance.
	var balanceStr string
	err = tx.QueryRow(ctx,
		`SELECT balance FROM users WHERE user_id = $1 FOR UPDATE`,
		req.UserID).Scan(&balanceStr)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, decimal.Zero, xerrors.ErrUserNotFound
		}
		return nil, decimal.Zero, fmt.Errorf("failed to lock user %d: %w", req.UserID, err)
	}

	balance, err := decimal.NewFromString(balanceStr)
	if err != nil {
		return nil, decimal.Zero, fmt.Errorf("invalid balance for user %d: %w", req.UserID, err)
	}

	newBalance, err := domain.ApplyPlan(balance, req.Amount, req.PlanType)
	if err != nil {
		return nil, decimal.Zero, err
	}

	_, err = tx.Exec(ctx,
		`UPDATE users SET balance = $1, updated_at = now() WHERE user_id = $2`,
		newBalance.String(), req.UserID)
	if err != nil {
		return nil, decimal.Zero, fmt.Errorf("failed to update balance: %w", err)
	}

	record := &domain.Transaction{
		Reference: req.Reference,
		UserID:    req.UserID,
		AdminID:   req.AdminID,
		Amount:    req.Amount,
		PlanType:  req.PlanType,
	}
	err = tx.QueryRow(ctx, `
		INSERT INTO transactions (reference, user_id, admin_id, amount, plan_type, time_created)
		VALUES ($1, $2, $3, $4, $5, now())
		RETURNING transaction_id, time_created
	`, record.Reference, record.UserID, record.AdminID, record.Amount.String(), string(record.PlanType)).
		Scan(&record.TransactionID, &record.TimeCreated)
	if err != nil {
		return nil, decimal.Zero, fmt.Errorf("failed to create transaction record: %w", err)
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, decimal.Zero, fmt.Errorf("failed to commit transaction: %w", err)
	}

	return record, newBalance, nil
}

func (r *transactionRepo) ListByUser(ctx context.Context, userID int64, limit, offset int) ([]*domain.Transaction, error) {
	query := `
		SELECT transaction_id, reference, user_id, admin_id, amount, plan_type, time_created
		FROM transactions
		WHERE user_id = $1
		ORDER BY time_created DESC
		LIMIT $2 OFFSET $3
	`
	rows, err := r.db.Query(ctx, query, userID, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("failed to list transactions: %w", err)
	}
	defer rows.Close()

	var transactions []*domain.Transaction
	for rows.Next() {
		t, err := scanTransaction(rows)
		if err != nil {
			return nil, err
		}
		transactions = append(transactions, t)
	}
	return transactions, rows.Err()
}

func (r *transactionRepo) GetByID(ctx context.Context, transactionID int64) (*domain.Transaction, error) {
	row := r.db.QueryRow(ctx, `
		SELECT transaction_id, reference, user_id, admin_id, amount, plan_type, time_created
		FROM transactions
		WHERE transaction_id = $1
	`, transactionID)

	t, err := scanTransaction(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, xerrors.ErrNotFound
		}
		return nil, err
	}
	return t, nil
}

func scanTransaction(row pgx.Row) (*domain.Transaction, error) {
	var t domain.Transaction
	var amount string
	var planType string
	if err := row.Scan(&t.TransactionID, &t.Reference, &t.UserID, &t.AdminID,
		&amount, &planType, &t.TimeCreated); err != nil {
		return nil, err
	}

	var err error
	if t.Amount, err = decimal.NewFromString(amount); err != nil {
		return nil, fmt.Errorf("invalid amount on transaction %d: %w", t.TransactionID, err)
	}
	t.PlanType = domain.PlanType(planType)
	return &t, nil
}
