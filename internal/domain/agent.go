package domain

import "time"

// Agent is a registered waste-collecting agent. Credentials and profile
// attributes belong to the directory, not the ledger.
type Agent struct {
	AgentID   int64     `json:"agent_id"`
	Reference string    `json:"reference"`
	Username  string    `json:"username"`
	Email     string    `json:"email"`
	Password  string    `json:"-"`
	Phone     *string   `json:"phone,omitempty"`
	Address   *Address  `json:"address,omitempty"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

type Address struct {
	Street string `json:"street"`
	City   string `json:"city"`
	State  string `json:"state"`
}

// Admin triggers payments and administrative notifications.
type Admin struct {
	AdminID       int64     `json:"admin_id"`
	AdminName     string    `json:"admin_name"`
	AdminEmail    string    `json:"admin_email"`
	AdminPassword string    `json:"-"`
	CreatedAt     time.Time `json:"created_at"`
	UpdatedAt     time.Time `json:"updated_at"`
}
