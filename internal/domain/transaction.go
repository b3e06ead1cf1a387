package domain

import (
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"wastetrade-service/pkg/xerrors"
)

// PlanType classifies a ledger transaction.
type PlanType string

const (
	PlanPayment    PlanType = "PAYMENT"    // credit to the user balance
	PlanWithdrawal PlanType = "WITHDRAWAL" // debit from the user balance
)

// Transaction is the immutable audit record produced by every balance
// mutation. Timestamps are stamped by the storage layer, not business logic.
type Transaction struct {
	TransactionID int64           `json:"transaction_id"`
	Reference     string          `json:"reference"`
	UserID        int64           `json:"user_id"`
	AdminID       *int64          `json:"admin_id,omitempty"`
	Amount        decimal.Decimal `json:"amount"`
	PlanType      PlanType        `json:"plan_type"`
	TimeCreated   time.Time       `json:"time_created"`
}

// PlanRequest describes a single balance mutation to execute atomically.
type PlanRequest struct {
	Reference string
	UserID    int64
	AdminID   *int64
	Amount    decimal.Decimal
	PlanType  PlanType
}

func (r *PlanRequest) Validate() error {
	if r.UserID == 0 {
		return fmt.Errorf("%w: user_id is required", xerrors.ErrInvalidRequest)
	}
	if r.Reference == "" {
		return fmt.Errorf("%w: reference is required", xerrors.ErrInvalidRequest)
	}
	if !r.Amount.IsPositive() {
		return xerrors.ErrInvalidAmount
	}
	switch r.PlanType {
	case PlanPayment, PlanWithdrawal:
		return nil
	default:
		return fmt.Errorf("%w: unknown plan type %q", xerrors.ErrInvalidRequest, r.PlanType)
	}
}

// ApplyPlan computes the balance after applying amount under the given plan
// type. The non-negative balance invariant is enforced here so that every
// storage backend shares the exact same arithmetic.
func ApplyPlan(balance, amount decimal.Decimal, plan PlanType) (decimal.Decimal, error) {
	if !amount.IsPositive() {
		return decimal.Zero, xerrors.ErrInvalidAmount
	}

	switch plan {
	case PlanPayment:
		return balance.Add(amount), nil
	case PlanWithdrawal:
		if amount.GreaterThan(balance) {
			return decimal.Zero, xerrors.ErrInsufficientBalance
		}
		return balance.Sub(amount), nil
	default:
		return decimal.Zero, fmt.Errorf("unknown plan type %q", plan)
	}
}
