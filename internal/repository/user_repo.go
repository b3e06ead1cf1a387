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

type UserRepository interface {
	Create(ctx context.Context, u *domain.User) error
	GetByID(ctx context.Context, userID int64) (*domain.User, error)
	GetBalance(ctx context.Context, userID int64) (decimal.Decimal, error)
	List(ctx context.Context, limit, offset int) ([]*domain.User, error)
	Exists(ctx context.Context, userID int64) (bool, error)
	Delete(ctx context.Context, userID int64) error
}

type userRepo struct {
	db *pgxpool.Pool
}

func NewUserRepo(db *pgxpool.Pool) UserRepository {
	return &userRepo{db: db}
}

func (r *userRepo) Create(ctx context.Context, u *domain.User) error {
	query := `
		INSERT INTO users (username, email, password, balance, created_at, updated_at)
		VALUES ($1, $2, $3, $4, now(), now())
		RETURNING user_id, created_at, updated_at
	`
	err := r.db.QueryRow(ctx, query,
		u.Username, u.Email, u.Password, u.Balance.String()).
		Scan(&u.UserID, &u.CreatedAt, &u.UpdatedAt)
	if err != nil {
		if xerrors.ParsePGErrorCode(err) == "23505" {
			return xerrors.ErrUserAlreadyExists
		}
		return fmt.Errorf("failed to create user: %w", err)
	}
	return nil
}

func (r *userRepo) GetByID(ctx context.Context, userID int64) (*domain.User, error) {
	query := `
		SELECT user_id, username, email, balance, created_at, updated_at
		FROM users WHERE user_id = $1
	`
	var u domain.User
	var balance string
	err := r.db.QueryRow(ctx, query, userID).
		Scan(&u.UserID, &u.Username, &u.Email, &balance, &u.CreatedAt, &u.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, xerrors.ErrUserNotFound
		}
		return nil, fmt.Errorf("failed to get user: %w", err)
	}

	u.Balance, err = decimal.NewFromString(balance)
	if err != nil {
		return nil, fmt.Errorf("invalid balance for user %d: %w", userID, err)
	}
	return &u, nil
}

func (r *userRepo) GetBalance(ctx context.Context, userID int64) (decimal.Decimal, error) {
	var balance string
	err := r.db.QueryRow(ctx, `SELECT balance FROM users WHERE user_id = $1`, userID).
		Scan(&balance)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return decimal.Zero, xerrors.ErrUserNotFound
		}
		return decimal.Zero, fmt.Errorf("failed to get balance: %w", err)
	}
	return decimal.NewFromString(balance)
}

func (r *userRepo) List(ctx context.Context, limit, offset int) ([]*domain.User, error) {
	query := `
		SELECT user_id, username, email, balance, created_at, updated_at
		FROM users
		ORDER BY user_id
		LIMIT $1 OFFSET $2
	`
	rows, err := r.db.Query(ctx, query, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("failed to list users: %w", err)
	}
	defer rows.Close()

	var users []*domain.User
	for rows.Next() {
		var u domain.User
		var balance string
		if err := rows.Scan(&u.UserID, &u.Username, &u.Email, &balance, &u.CreatedAt, &u.UpdatedAt); err != nil {
			return nil, err
		}
		if u.Balance, err = decimal.NewFromString(balance); err != nil {
			return nil, fmt.Errorf("invalid balance for user %d: %w", u.UserID, err)
		}
		users = append(users, &u)
	}
	return users, rows.Err()
}

func (r *userRepo) Exists(ctx context.Context, userID int64) (bool, error) {
	var exists bool
	err := r.db.QueryRow(ctx,
		`SELECT EXISTS (SELECT 1 FROM users WHERE user_id = $1)`, userID).
		Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("failed to check user existence: %w", err)
	}
	return exists, nil
}

func (r *userRepo) Delete(ctx context.Context, userID int64) error {
	tag, err := r.db.Exec(ctx, `DELETE FROM users WHERE user_id = $1`, userID)
	if err != nil {
		return fmt.Errorf("failed to delete user: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return xerrors.ErrUserNotFound
	}
	return nil
}
