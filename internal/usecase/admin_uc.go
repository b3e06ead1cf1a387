package usecase

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"wastetrade-service/internal/domain"
	"wastetrade-service/internal/repository"
	"wastetrade-service/pkg/xerrors"
)

// NotificationSender delivers administrative notifications. Production wires
// the SMTP sender; tests use a fake.
type NotificationSender interface {
	Send(to, subject, body string) error
}

// AdminUsecase covers the administrative surface: user management and
// notification flows.
type AdminUsecase struct {
	userRepo repository.UserRepository
	sender   NotificationSender
	log      *zap.Logger
}

func NewAdminUsecase(userRepo repository.UserRepository, sender NotificationSender, log *zap.Logger) *AdminUsecase {
	return &AdminUsecase{userRepo: userRepo, sender: sender, log: log}
}

func (uc *AdminUsecase) ManageUsers(ctx context.Context, limit, offset int) ([]*domain.User, error) {
	if limit <= 0 || limit > 100 {
		limit = 50
	}
	if offset < 0 {
		offset = 0
	}
	return uc.userRepo.List(ctx, limit, offset)
}

func (uc *AdminUsecase) DeleteUser(ctx context.Context, userID int64) error {
	exists, err := uc.userRepo.Exists(ctx, userID)
	if err != nil {
		return fmt.Errorf("failed to check user: %w", err)
	}
	if !exists {
		return xerrors.ErrUserNotFound
	}
	return uc.userRepo.Delete(ctx, userID)
}

type NotificationResult struct {
	Message string `json:"message"`
}

func (uc *AdminUsecase) SendNotification(ctx context.Context, recipient, title, content string) (*NotificationResult, error) {
	if err := validateEmail(recipient); err != nil {
		return nil, err
	}

	if err := uc.sender.Send(recipient, title, content); err != nil {
		uc.log.Error("failed to send notification",
			zap.String("recipient", recipient), zap.Error(err))
		return nil, fmt.Errorf("failed to send notification: %w", err)
	}

	return &NotificationResult{Message: "Notification sent successfully"}, nil
}
