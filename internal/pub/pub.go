package pub

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"github.com/shopspring/decimal"

	"wastetrade-service/internal/domain"
)

const TransactionEventsChannel = "transaction_events"

// TransactionEventPublisher publishes ledger events to Redis pub/sub for
// downstream consumers (notification workers, dashboards).
type TransactionEventPublisher struct {
	rdb *redis.Client
}

func NewTransactionEventPublisher(rdb *redis.Client) *TransactionEventPublisher {
	return &TransactionEventPublisher{rdb: rdb}
}

type TransactionEvent struct {
	EventID       string    `json:"event_id"`
	EventType     string    `json:"event_type"` // payment.completed, withdrawal.completed
	UserID        int64     `json:"user_id"`
	AdminID       *int64    `json:"admin_id,omitempty"`
	TransactionID int64     `json:"transaction_id"`
	Reference     string    `json:"reference"`
	PlanType      string    `json:"plan_type"`
	Amount        string    `json:"amount"`
	BalanceAfter  string    `json:"balance_after"`
	Timestamp     time.Time `json:"timestamp"`
}

// PublishTransactionCompleted publishes a committed ledger mutation.
func (p *TransactionEventPublisher) PublishTransactionCompleted(ctx context.Context, record *domain.Transaction, balanceAfter decimal.Decimal) error {
	eventType := "payment.completed"
	if record.PlanType == domain.PlanWithdrawal {
		eventType = "withdrawal.completed"
	}

	event := &TransactionEvent{
		EventID:       uuid.New().String(),
		EventType:     eventType,
		UserID:        record.UserID,
		AdminID:       record.AdminID,
		TransactionID: record.TransactionID,
		Reference:     record.Reference,
		PlanType:      string(record.PlanType),
		Amount:        record.Amount.String(),
		BalanceAfter:  balanceAfter.String(),
		Timestamp:     time.Now(),
	}

	payload, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("failed to marshal event: %w", err)
	}

	if err := p.rdb.Publish(ctx, TransactionEventsChannel, payload).Err(); err != nil {
		return fmt.Errorf("failed to publish event: %w", err)
	}
	return nil
}
