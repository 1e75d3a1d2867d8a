package badger

import (
	"context"
	"fmt"
	"time"

	"github.com/timshannon/badgerhold/v4"

	"github.com/jcleland/cryptofolio/internal/common"
	"github.com/jcleland/cryptofolio/internal/models"
)

type transactionStorage struct {
	store  *Store
	logger *common.Logger
}

// NewTransactionStorage creates a new TransactionStorage backed by BadgerHold.
func NewTransactionStorage(store *Store, logger *common.Logger) *transactionStorage {
	return &transactionStorage{store: store, logger: logger}
}

func (s *transactionStorage) SaveJournal(_ context.Context, journal *models.TransactionJournal) error {
	journal.UpdatedAt = time.Now().UTC()
	if err := s.store.db.Upsert(journal.Portfolio, journal); err != nil {
		return fmt.Errorf("failed to save transaction journal: %w", err)
	}
	s.logger.Debug().
		Str("portfolio", journal.Portfolio).
		Int("transactions", len(journal.Transactions)).
		Msg("Transaction journal saved")
	return nil
}

func (s *transactionStorage) GetJournal(_ context.Context, portfolio string) (*models.TransactionJournal, error) {
	var journal models.TransactionJournal
	err := s.store.db.Get(portfolio, &journal)
	if err != nil {
		if err == badgerhold.ErrNotFound {
			return nil, fmt.Errorf("transaction journal for '%s' not found", portfolio)
		}
		return nil, fmt.Errorf("failed to get transaction journal for '%s': %w", portfolio, err)
	}
	return &journal, nil
}

func (s *transactionStorage) ListJournals(_ context.Context) ([]string, error) {
	var journals []models.TransactionJournal
	if err := s.store.db.Find(&journals, nil); err != nil {
		return nil, fmt.Errorf("failed to list transaction journals: %w", err)
	}
	names := make([]string, len(journals))
	for i, j := range journals {
		names[i] = j.Portfolio
	}
	return names, nil
}

func (s *transactionStorage) DeleteJournal(_ context.Context, portfolio string) error {
	err := s.store.db.Delete(portfolio, models.TransactionJournal{})
	if err != nil && err != badgerhold.ErrNotFound {
		return fmt.Errorf("failed to delete transaction journal for '%s': %w", portfolio, err)
	}
	s.logger.Debug().Str("portfolio", portfolio).Msg("Transaction journal deleted")
	return nil
}
