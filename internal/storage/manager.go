// Package storage provides the top-level StorageManager coordinating the
// persisted report and transaction-journal stores.
package storage

import (
	"fmt"

	"github.com/jcleland/cryptofolio/internal/common"
	"github.com/jcleland/cryptofolio/internal/interfaces"
	"github.com/jcleland/cryptofolio/internal/storage/badger"
)

// Manager implements interfaces.StorageManager over a single BadgerHold area.
type Manager struct {
	store        *badger.Store
	reports      interfaces.ReportStorage
	transactions interfaces.TransactionStorage
	logger       *common.Logger
}

// NewManager creates a new StorageManager.
func NewManager(logger *common.Logger, config *common.Config) (*Manager, error) {
	store, err := badger.NewStore(logger, config.Storage.Path)
	if err != nil {
		return nil, fmt.Errorf("failed to create store: %w", err)
	}

	logger.Info().Str("path", config.Storage.Path).Msg("Storage manager initialized")

	return &Manager{
		store:        store,
		reports:      badger.NewReportStorage(store, logger),
		transactions: badger.NewTransactionStorage(store, logger),
		logger:       logger,
	}, nil
}

func (m *Manager) ReportStorage() interfaces.ReportStorage {
	return m.reports
}

func (m *Manager) TransactionStorage() interfaces.TransactionStorage {
	return m.transactions
}

// Close closes the underlying store.
func (m *Manager) Close() error {
	return m.store.Close()
}

// Ensure Manager implements StorageManager
var _ interfaces.StorageManager = (*Manager)(nil)
