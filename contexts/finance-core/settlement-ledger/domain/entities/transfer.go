package entities

import "time"

// TransferRecord is one completed atomic movement between two accounts.
// Records are immutable once written.
type TransferRecord struct {
	TransferID    string    `json:"transfer_id"`
	FromAccount   string    `json:"from_account"`
	ToAccount     string    `json:"to_account"`
	Amount        int64     `json:"amount"`
	Reason        string    `json:"reason"`
	TransferredAt time.Time `json:"transferred_at"`
}
