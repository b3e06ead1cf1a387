package usecase

import (
	"context"
	"fmt"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"

	"wastetrade-service/internal/domain"
	"wastetrade-service/internal/repository"
)

// UserUsecase is the user side of the directory.
type UserUsecase struct {
	repo repository.UserRepository
	log  *zap.Logger
}

func NewUserUsecase(repo repository.UserRepository, log *zap.Logger) *UserUsecase {
	return &UserUsecase{repo: repo, log: log}
}

type RegisterUserRequest struct {
	Username string `json:"username"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

func (uc *UserUsecase) RegisterUser(ctx context.Context, req RegisterUserRequest) (*domain.User, error) {
	if err := validateEmail(req.Email); err != nil {
		return nil, err
	}
	if err := validatePassword(req.Password); err != nil {
		return nil, err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	user := &domain.User{
		Username: req.Username,
		Email:    req.Email,
		Password: string(hash),
		Balance:  decimal.Zero,
	}
	if err := uc.repo.Create(ctx, user); err != nil {
		return nil, err
	}

	uc.log.Info("user registered", zap.Int64("user_id", user.UserID))
	return user, nil
}

func (uc *UserUsecase) GetUserByID(ctx context.Context, userID int64) (*domain.User, error) {
	return uc.repo.GetByID(ctx, userID)
}
