package models

import "time"

// PortfolioReport is a persisted analysis snapshot, keyed by portfolio name.
type PortfolioReport struct {
	Portfolio   string            `json:"portfolio" badgerhold:"key"`
	GeneratedAt time.Time         `json:"generated_at"`
	Metrics     *PortfolioMetrics `json:"metrics"`
}

// TransactionJournal is a persisted transaction history for a named
// portfolio, so analyses can be re-run without re-importing.
type TransactionJournal struct {
	Portfolio    string        `json:"portfolio" badgerhold:"key"`
	Transactions []Transaction `json:"transactions"`
	UpdatedAt    time.Time     `json:"updated_at"`
}
