// Package models defines data structures for Cryptofolio
package models

import "time"

// TransactionType categorizes portfolio transactions
type TransactionType string

const (
	TransactionBuy         TransactionType = "buy"
	TransactionSell        TransactionType = "sell"
	TransactionMint        TransactionType = "mint"
	TransactionTransferIn  TransactionType = "transfer_in"
	TransactionTransferOut TransactionType = "transfer_out"
	TransactionFee         TransactionType = "fee"
)

// Acquires reports whether the transaction type adds units to the portfolio
// and therefore opens a cost-basis lot.
func (t TransactionType) Acquires() bool {
	switch t {
	case TransactionBuy, TransactionMint, TransactionTransferIn:
		return true
	}
	return false
}

// Transaction is an immutable record of a single portfolio event, created
// once by the ingestion layer and never mutated afterwards.
type Transaction struct {
	ID         string          `json:"id"`
	Type       TransactionType `json:"type"`
	Asset      string          `json:"asset"`
	Amount     float64         `json:"amount"`       // quantity, always non-negative
	Price      float64         `json:"price"`        // per-unit price in base currency
	TotalValue float64         `json:"total_value"`  // price × amount, pre-fee
	FeeBase    float64         `json:"fee_base"`     // fee in base currency
	Timestamp  int64           `json:"timestamp_ms"` // unix milliseconds
}

// Time returns the transaction timestamp as a UTC time.Time.
func (t Transaction) Time() time.Time {
	return time.UnixMilli(t.Timestamp).UTC()
}
