// Package interfaces defines service contracts for Cryptofolio
package interfaces

import (
	"context"

	"github.com/jcleland/cryptofolio/internal/models"
)

// StorageManager coordinates the storage areas.
type StorageManager interface {
	ReportStorage() ReportStorage
	TransactionStorage() TransactionStorage
	Close() error
}

// ReportStorage persists generated portfolio reports keyed by portfolio name.
type ReportStorage interface {
	SaveReport(ctx context.Context, report *models.PortfolioReport) error
	GetReport(ctx context.Context, portfolio string) (*models.PortfolioReport, error)
	ListReports(ctx context.Context) ([]string, error)
	DeleteReport(ctx context.Context, portfolio string) error
}

// TransactionStorage persists imported transaction journals keyed by
// portfolio name, so analyses can be re-run without re-importing.
type TransactionStorage interface {
	SaveJournal(ctx context.Context, journal *models.TransactionJournal) error
	GetJournal(ctx context.Context, portfolio string) (*models.TransactionJournal, error)
	ListJournals(ctx context.Context) ([]string, error)
	DeleteJournal(ctx context.Context, portfolio string) error
}
