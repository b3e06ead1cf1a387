package domain

import (
	"fmt"
	"time"

	"github.com/shopspring/decimal"
)

// Category classifies a waste lot.
type Category string

const (
	CategoryPlastic    Category = "PLASTIC"
	CategoryPaper      Category = "PAPER"
	CategoryMetal      Category = "METAL"
	CategoryGlass      Category = "GLASS"
	CategoryOrganic    Category = "ORGANIC"
	CategoryElectronic Category = "ELECTRONIC"
)

func ParseCategory(s string) (Category, error) {
	switch c := Category(s); c {
	case CategoryPlastic, CategoryPaper, CategoryMetal, CategoryGlass, CategoryOrganic, CategoryElectronic:
		return c, nil
	default:
		return "", fmt.Errorf("unknown waste category %q", s)
	}
}

// Waste is a lot registered for sale. AgentID is nil until the lot is
// assigned to a collecting agent; re-assignment overwrites the prior agent
// with no history kept.
type Waste struct {
	WasteID        int64           `json:"waste_id"`
	Reference      string          `json:"reference"`
	Type           Category        `json:"type"`
	Quantity       string          `json:"quantity"`
	Price          decimal.Decimal `json:"price"`
	Description    string          `json:"description"`
	UserID         *int64          `json:"user_id,omitempty"`
	AgentID        *int64          `json:"agent_id,omitempty"`
	CollectionDate time.Time       `json:"collection_date"`
	CreatedAt      time.Time       `json:"created_at"`
	UpdatedAt      time.Time       `json:"updated_at"`
}

// WasteCollection records an agent physically collecting a quantity of
// waste. It has no balance effect.
type WasteCollection struct {
	CollectionID int64     `json:"collection_id"`
	Reference    string    `json:"reference"`
	AgentID      int64     `json:"agent_id"`
	Category     Category  `json:"category"`
	Weight       float64   `json:"weight"`
	Username     string    `json:"username"`
	CollectedAt  time.Time `json:"collected_at"`
}
