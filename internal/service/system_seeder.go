package service

import (
	"context"
	"fmt"

	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"

	"wastetrade-service/internal/domain"
	"wastetrade-service/internal/repository"
)

// SystemSeeder ensures the bootstrap records a fresh deployment needs.
// Currently that is the default admin account used for payments and
// notifications.
type SystemSeeder struct {
	adminRepo repository.AdminRepository
	log       *zap.Logger
}

func NewSystemSeeder(adminRepo repository.AdminRepository, log *zap.Logger) *SystemSeeder {
	return &SystemSeeder{adminRepo: adminRepo, log: log}
}

// SeedSystem is idempotent: re-running against an already seeded database is
// a no-op.
func (s *SystemSeeder) SeedSystem(ctx context.Context, adminName, adminEmail, adminPassword string) error {
	if adminEmail == "" || adminPassword == "" {
		s.log.Info("admin seeding skipped, no credentials configured")
		return nil
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(adminPassword), bcrypt.DefaultCost)
	if err != nil {
		return fmt.Errorf("failed to hash admin password: %w", err)
	}

	admin := &domain.Admin{
		AdminName:     adminName,
		AdminEmail:    adminEmail,
		AdminPassword: string(hash),
	}
	if err := s.adminRepo.Create(ctx, admin); err != nil {
		return fmt.Errorf("failed to seed admin: %w", err)
	}

	s.log.Info("default admin ensured", zap.Int64("admin_id", admin.AdminID))
	return nil
}
