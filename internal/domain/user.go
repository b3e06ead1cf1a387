package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// User is a marketplace member selling waste and receiving payments.
// Balance is the single monetary attribute owned by the ledger; it never
// goes negative.
type User struct {
	UserID    int64           `json:"user_id"`
	Username  string          `json:"username"`
	Email     string          `json:"email"`
	Password  string          `json:"-"`
	Balance   decimal.Decimal `json:"balance"`
	CreatedAt time.Time       `json:"created_at"`
	UpdatedAt time.Time       `json:"updated_at"`
}
