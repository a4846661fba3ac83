package repositories

import (
	"context"
	"riskledger/internal/models"
)

// TransactionRepository is the append-only ledger store.
type TransactionRepository interface {
	// Append inserts a fully populated record.
	Append(ctx context.Context, tx *models.Transaction) error

	// ListByUsername returns the user's records, most recent first, with
	// ties broken by descending id. An unknown user yields an empty slice.
	ListByUsername(ctx context.Context, username string) ([]models.Transaction, error)

	// CountByRisk returns how many of the user's records carry each risk value.
	CountByRisk(ctx context.Context, username string) (map[float64]int64, error)

	// ExecuteInTransaction runs fn against a repository bound to a single
	// database transaction, committing when fn returns nil and rolling back
	// otherwise (including on panic).
	ExecuteInTransaction(ctx context.Context, fn func(TransactionRepository) error) error
}
