package dto

import "time"

// BalanceResponse represents the API response for a user's wallet balance
type BalanceResponse struct {
	UserID  uint64 `json:"userId"`
	Balance string `json:"balance"`
}

// AmountRequest represents a top-up or withdrawal request
type AmountRequest struct {
	Amount string `json:"amount" binding:"required"`
}

// BalanceChangeResponse represents the API response after a wallet mutation
type BalanceChangeResponse struct {
	UserID        uint64 `json:"userId"`
	ResultBalance string `json:"resultBalance"`
}

// StatementEntryResponse represents one ledger row in a wallet statement
type StatementEntryResponse struct {
	Reference string    `json:"reference"`
	Type      string    `json:"type"`
	Amount    string    `json:"amount"`
	CreatedAt time.Time `json:"createdAt"`
}
