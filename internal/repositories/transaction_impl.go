package repositories

import (
	"context"
	"fmt"

	"riskledger/internal/models"

	"gorm.io/gorm"
)

type transactionRepository struct {
	db *gorm.DB
}

// NewTransactionRepository creates the gorm-backed ledger store.
func NewTransactionRepository(db *gorm.DB) TransactionRepository {
	return &transactionRepository{db: db}
}

func (r *transactionRepository) Append(ctx context.Context, tx *models.Transaction) error {
	if err := r.db.WithContext(ctx).Create(tx).Error; err != nil {
		return fmt.Errorf("%w: failed to create transaction: %w", ErrDatabaseOperation, err)
	}
	return nil
}

func (r *transactionRepository) ListByUsername(ctx context.Context, username string) ([]models.Transaction, error) {
	transactions := make([]models.Transaction, 0)
	result := r.db.WithContext(ctx).
		Where("username = ?", username).
		Order("created_at DESC").
		Order("id DESC").
		Find(&transactions)
	if result.Error != nil {
		return nil, fmt.Errorf("%w: %w", ErrDatabaseOperation, result.Error)
	}
	return transactions, nil
}

func (r *transactionRepository) CountByRisk(ctx context.Context, username string) (map[float64]int64, error) {
	var rows []struct {
		Risk  float64
		Count int64
	}
	result := r.db.WithContext(ctx).
		Model(&models.Transaction{}).
		Select("risk, COUNT(*) AS count").
		Where("username = ?", username).
		Group("risk").
		Scan(&rows)
	if result.Error != nil {
		return nil, fmt.Errorf("%w: %w", ErrDatabaseOperation, result.Error)
	}

	counts := make(map[float64]int64, len(rows))
	for _, row := range rows {
		counts[row.Risk] = row.Count
	}
	return counts, nil
}

func (r *transactionRepository) ExecuteInTransaction(ctx context.Context, fn func(TransactionRepository) error) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(&transactionRepository{db: tx})
	})
}
