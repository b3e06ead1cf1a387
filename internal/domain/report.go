package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// UnassignedAgent is reported for waste lots with no assigned agent.
const UnassignedAgent = "Unassigned"

// WasteReport is one line of a date-range waste report.
type WasteReport struct {
	WasteID        int64           `json:"waste_id"`
	Category       Category        `json:"category"`
	Quantity       string          `json:"quantity"`
	Price          decimal.Decimal `json:"price"`
	AssignedAgent  string          `json:"assigned_agent"`
	CollectionDate time.Time       `json:"collection_date"`
}
