package usecase

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"wastetrade-service/internal/domain"
	"wastetrade-service/internal/pub"
	"wastetrade-service/internal/repository"
	"wastetrade-service/pkg/utils"
	"wastetrade-service/pkg/xerrors"
)

const balanceCacheTTL = 1 * time.Minute

// LedgerUsecase applies payment and withdrawal requests to user balances
// with an auditable, atomic transaction trail.
type LedgerUsecase struct {
	txRepo    repository.TransactionRepository
	userRepo  repository.UserRepository
	refs      *utils.ReferenceGenerator
	rdb       *redis.Client
	publisher *pub.TransactionEventPublisher
	notifier  *Notifier
	log       *zap.Logger
}

func NewLedgerUsecase(
	txRepo repository.TransactionRepository,
	userRepo repository.UserRepository,
	refs *utils.ReferenceGenerator,
	rdb *redis.Client,
	publisher *pub.TransactionEventPublisher,
	notifier *Notifier,
	log *zap.Logger,
) *LedgerUsecase {
	return &LedgerUsecase{
		txRepo:    txRepo,
		userRepo:  userRepo,
		refs:      refs,
		rdb:       rdb,
		publisher: publisher,
		notifier:  notifier,
		log:       log,
	}
}

// MakePayment credits amount to the user's balance on behalf of an admin and
// records one PAYMENT transaction.
func (uc *LedgerUsecase) MakePayment(ctx context.Context, adminID, userID int64, amount decimal.Decimal) (*domain.Transaction, error) {
	if !amount.IsPositive() {
		return nil, xerrors.ErrInvalidAmount
	}

	req := &domain.PlanRequest{
		Reference: uc.refs.GenerateTransactionRef(),
		UserID:    userID,
		AdminID:   &adminID,
		Amount:    amount,
		PlanType:  domain.PlanPayment,
	}

	record, newBalance, err := uc.txRepo.ExecutePlan(ctx, req)
	if err != nil {
		return nil, err
	}

	uc.afterMutation(ctx, record, newBalance)
	return record, nil
}

// ProcessWithdrawal debits amount from the user's balance and records one
// WITHDRAWAL transaction. Fails with ErrInsufficientBalance when the amount
// exceeds the current balance, leaving state untouched.
func (uc *LedgerUsecase) ProcessWithdrawal(ctx context.Context, userID int64, amount decimal.Decimal) (*domain.Transaction, error) {
	if !amount.IsPositive() {
		return nil, xerrors.ErrInvalidAmount
	}

	req := &domain.PlanRequest{
		Reference: uc.refs.GenerateTransactionRef(),
		UserID:    userID,
		Amount:    amount,
		PlanType:  domain.PlanWithdrawal,
	}

	record, newBalance, err := uc.txRepo.ExecutePlan(ctx, req)
	if err != nil {
		return nil, err
	}

	uc.afterMutation(ctx, record, newBalance)
	return record, nil
}

// GetBalance reads the user's current balance through a short-lived cache.
func (uc *LedgerUsecase) GetBalance(ctx context.Context, userID int64) (decimal.Decimal, error) {
	cacheKey := balanceCacheKey(userID)

	if uc.rdb != nil {
		if val, err := uc.rdb.Get(ctx, cacheKey).Result(); err == nil {
			if cached, parseErr := decimal.NewFromString(val); parseErr == nil {
				return cached, nil
			}
		}
	}

	balance, err := uc.userRepo.GetBalance(ctx, userID)
	if err != nil {
		return decimal.Zero, err
	}

	if uc.rdb != nil {
		_ = uc.rdb.Set(ctx, cacheKey, balance.String(), balanceCacheTTL).Err()
	}
	return balance, nil
}

func (uc *LedgerUsecase) ListTransactions(ctx context.Context, userID int64, limit, offset int) ([]*domain.Transaction, error) {
	if limit <= 0 || limit > 100 {
		limit = 20
	}
	if offset < 0 {
		offset = 0
	}
	return uc.txRepo.ListByUser(ctx, userID, limit, offset)
}

// afterMutation runs the best-effort side channels of a committed mutation:
// cache invalidation, event publishing and websocket push. None of them can
// fail the ledger operation.
func (uc *LedgerUsecase) afterMutation(ctx context.Context, record *domain.Transaction, newBalance decimal.Decimal) {
	if uc.rdb != nil {
		if err := uc.rdb.Del(ctx, balanceCacheKey(record.UserID)).Err(); err != nil {
			uc.log.Warn("failed to invalidate balance cache",
				zap.Int64("user_id", record.UserID), zap.Error(err))
		}
	}

	if uc.publisher != nil {
		if err := uc.publisher.PublishTransactionCompleted(ctx, record, newBalance); err != nil {
			uc.log.Warn("failed to publish transaction event",
				zap.String("reference", record.Reference), zap.Error(err))
		}
	}

	if uc.notifier != nil {
		uc.notifier.NotifyBalance(record.UserID, newBalance, record)
	}

	uc.log.Info("ledger mutation applied",
		zap.String("reference", record.Reference),
		zap.String("plan_type", string(record.PlanType)),
		zap.Int64("user_id", record.UserID),
		zap.String("amount", record.Amount.String()))
}

func balanceCacheKey(userID int64) string {
	return fmt.Sprintf("balance:user:%d", userID)
}
