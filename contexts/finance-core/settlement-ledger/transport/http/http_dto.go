// Package httptransport defines the wire DTOs for the settlement ledger API.
package httptransport

// TransferRequest moves funds between two accounts.
type TransferRequest struct {
	FromAccount string `json:"from_account"`
	ToAccount   string `json:"to_account"`
	Amount      int64  `json:"amount"`
	Reason      string `json:"reason"`
}

// TransferDTO is one completed transfer on the wire.
type TransferDTO struct {
	TransferID    string `json:"transfer_id"`
	FromAccount   string `json:"from_account"`
	ToAccount     string `json:"to_account"`
	Amount        int64  `json:"amount"`
	Reason        string `json:"reason"`
	TransferredAt string `json:"transferred_at"`
}

// TransferResponse reports the applied transfer.
type TransferResponse struct {
	Transfer TransferDTO `json:"transfer"`
	Replayed bool        `json:"replayed"`
}

// CreditRequest mints funds onto the account named in the path.
type CreditRequest struct {
	Amount int64 `json:"amount"`
}

// AccountDTO is one account balance on the wire.
type AccountDTO struct {
	AccountID string `json:"account_id"`
	Balance   int64  `json:"balance"`
	CreatedAt string `json:"created_at"`
	UpdatedAt string `json:"updated_at"`
}

// CreditResponse reports the credited account.
type CreditResponse struct {
	Account  AccountDTO `json:"account"`
	Replayed bool       `json:"replayed"`
}

// HistoryResponse lists transfers newest first.
type HistoryResponse struct {
	Items []TransferDTO `json:"items"`
}

// SettlementDTO is one recorded resolution settlement on the wire.
type SettlementDTO struct {
	AuditID       string `json:"audit_id"`
	EventID       string `json:"event_id"`
	DisputeID     int64  `json:"dispute_id"`
	Outcome       string `json:"outcome"`
	RewardsPaid   int    `json:"rewards_paid"`
	PayoutsFailed int    `json:"payouts_failed"`
	TotalPaid     int64  `json:"total_paid"`
	RecordedAt    string `json:"recorded_at"`
}

// SettlementsResponse lists settlements newest first.
type SettlementsResponse struct {
	Items []SettlementDTO `json:"items"`
}

// ErrorResponse is the uniform error envelope.
type ErrorResponse struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}
