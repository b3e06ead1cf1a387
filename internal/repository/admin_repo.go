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

type AdminRepository interface {
	Create(ctx context.Context, a *domain.Admin) error
	GetByEmail(ctx context.Context, email string) (*domain.Admin, error)
	Exists(ctx context.Context, adminID int64) (bool, error)
}

type adminRepo struct {
	db *pgxpool.Pool
}

func NewAdminRepo(db *pgxpool.Pool) AdminRepository {
	return &adminRepo{db: db}
}

func (r *adminRepo) Create(ctx context.Context, a *domain.Admin) error {
	query := `
		INSERT INTO admins (admin_name, admin_email, admin_password, created_at, updated_at)
		VALUES ($1, $2, $3, now(), now())
		ON CONFLICT (admin_email) DO NOTHING
		RETURNING admin_id, created_at, updated_at
	`
	err := r.db.QueryRow(ctx, query, a.AdminName, a.AdminEmail, a.AdminPassword).
		Scan(&a.AdminID, &a.CreatedAt, &a.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			// Conflict: the admin already exists, fetch the current row.
			existing, getErr := r.GetByEmail(ctx, a.AdminEmail)
			if getErr != nil {
				return getErr
			}
			*a = *existing
			return nil
		}
		return fmt.Errorf("failed to create admin: %w", err)
	}
	return nil
}

func (r *adminRepo) GetByEmail(ctx context.Context, email string) (*domain.Admin, error) {
	var a domain.Admin
	err := r.db.QueryRow(ctx, `
		SELECT admin_id, admin_name, admin_email, created_at, updated_at
		FROM admins WHERE admin_email = $1
	`, email).Scan(&a.AdminID, &a.AdminName, &a.AdminEmail, &a.CreatedAt, &a.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, xerrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to get admin: %w", err)
	}
	return &a, nil
}

func (r *adminRepo) Exists(ctx context.Context, adminID int64) (bool, error) {
	var exists bool
	err := r.db.QueryRow(ctx,
		`SELECT EXISTS (SELECT 1 FROM admins WHERE admin_id = $1)`, adminID).
		Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("failed to check admin existence: %w", err)
	}
	return exists, nil
}
