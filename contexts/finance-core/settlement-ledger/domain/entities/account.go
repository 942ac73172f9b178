package entities

import "time"

// Account is a named balance. Accounts spring into existence on their first
// credit or on first receipt of a transfer; there is no explicit open step.
type Account struct {
	AccountID string    `json:"account_id"`
	Balance   int64     `json:"balance"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
