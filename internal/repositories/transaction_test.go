package repositories_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"riskledger/internal/models"
	"riskledger/internal/repositories"
	"riskledger/internal/testutil"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var base = time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC)

func newTransaction(id, username string, at time.Time, risk float64) *models.Transaction {
	return &models.Transaction{
		ID:        id,
		Username:  username,
		Amount:    250.5,
		Location:  "Vizag",
		Device:    "mobile",
		Timestamp: at,
		Risk:      risk,
	}
}

func ids(transactions []models.Transaction) []string {
	out := make([]string, 0, len(transactions))
	for _, tx := range transactions {
		out = append(out, tx.ID)
	}
	return out
}

func TestTransactionRepository_ListOrdersByRecency(t *testing.T) {
	repo := repositories.NewTransactionRepository(testutil.NewDB(t))
	ctx := context.Background()

	require.NoError(t, repo.Append(ctx, newTransaction("a", "ravi", base, 0)))
	require.NoError(t, repo.Append(ctx, newTransaction("b", "ravi", base.Add(time.Minute), 0.3)))
	require.NoError(t, repo.Append(ctx, newTransaction("c", "other", base.Add(2*time.Minute), 1)))

	got, err := repo.ListByUsername(ctx, "ravi")
	require.NoError(t, err)
	assert.Equal(t, []string{"b", "a"}, ids(got))
}

func TestTransactionRepository_TiesBrokenByID(t *testing.T) {
	repo := repositories.NewTransactionRepository(testutil.NewDB(t))
	ctx := context.Background()

	for _, id := range []string{"0002", "0003", "0001"} {
		require.NoError(t, repo.Append(ctx, newTransaction(id, "ravi", base, 0)))
	}

	for i := 0; i < 3; i++ {
		got, err := repo.ListByUsername(ctx, "ravi")
		require.NoError(t, err)
		assert.Equal(t, []string{"0003", "0002", "0001"}, ids(got))
	}
}

func TestTransactionRepository_RoundTrip(t *testing.T) {
	repo := repositories.NewTransactionRepository(testutil.NewDB(t))
	ctx := context.Background()

	want := newTransaction("rt", "ravi", base.Add(123*time.Microsecond), 0.7)
	want.Amount = 10000.01
	want.Location = "Mumbai"
	require.NoError(t, repo.Append(ctx, want))

	got, err := repo.ListByUsername(ctx, "ravi")
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, want.Amount, got[0].Amount)
	assert.Equal(t, want.Location, got[0].Location)
	assert.Equal(t, want.Device, got[0].Device)
	assert.Equal(t, want.Risk, got[0].Risk)
	assert.True(t, want.Timestamp.Equal(got[0].Timestamp))
}

func TestTransactionRepository_EmptyList(t *testing.T) {
	repo := repositories.NewTransactionRepository(testutil.NewDB(t))

	got, err := repo.ListByUsername(context.Background(), "nobody")
	require.NoError(t, err)
	assert.NotNil(t, got)
	assert.Empty(t, got)
}

func TestTransactionRepository_DuplicateIDRejected(t *testing.T) {
	repo := repositories.NewTransactionRepository(testutil.NewDB(t))
	ctx := context.Background()

	require.NoError(t, repo.Append(ctx, newTransaction("dup", "ravi", base, 0)))
	err := repo.Append(ctx, newTransaction("dup", "ravi", base, 0.3))
	assert.ErrorIs(t, err, repositories.ErrDatabaseOperation)
}

func TestTransactionRepository_CountByRisk(t *testing.T) {
	repo := repositories.NewTransactionRepository(testutil.NewDB(t))
	ctx := context.Background()

	risks := []float64{0, 0, 0.3, 0.7, 1}
	for i, r := range risks {
		id := string(rune('a' + i))
		require.NoError(t, repo.Append(ctx, newTransaction(id, "ravi", base.Add(time.Duration(i)*time.Second), r)))
	}
	require.NoError(t, repo.Append(ctx, newTransaction("x", "other", base, 1)))

	counts, err := repo.CountByRisk(ctx, "ravi")
	require.NoError(t, err)
	assert.Equal(t, map[float64]int64{0: 2, 0.3: 1, 0.7: 1, 1: 1}, counts)

	empty, err := repo.CountByRisk(ctx, "nobody")
	require.NoError(t, err)
	assert.Empty(t, empty)
}

func TestTransactionRepository_ExecuteInTransaction(t *testing.T) {
	repo := repositories.NewTransactionRepository(testutil.NewDB(t))
	ctx := context.Background()

	t.Run("commits on success", func(t *testing.T) {
		err := repo.ExecuteInTransaction(ctx, func(tx repositories.TransactionRepository) error {
			return tx.Append(ctx, newTransaction("commit", "ravi", base, 0))
		})
		require.NoError(t, err)

		got, err := repo.ListByUsername(ctx, "ravi")
		require.NoError(t, err)
		assert.Equal(t, []string{"commit"}, ids(got))
	})

	t.Run("rolls back on error", func(t *testing.T) {
		boom := errors.New("boom")
		err := repo.ExecuteInTransaction(ctx, func(tx repositories.TransactionRepository) error {
			if err := tx.Append(ctx, newTransaction("rollback", "rb", base, 0)); err != nil {
				return err
			}
			return boom
		})
		assert.ErrorIs(t, err, boom)

		got, err := repo.ListByUsername(ctx, "rb")
		require.NoError(t, err)
		assert.Empty(t, got)
	})

	t.Run("rolls back on panic", func(t *testing.T) {
		assert.Panics(t, func() {
			_ = repo.ExecuteInTransaction(ctx, func(tx repositories.TransactionRepository) error {
				_ = tx.Append(ctx, newTransaction("panic", "pn", base, 0))
				panic("fault")
			})
		})

		got, err := repo.ListByUsername(ctx, "pn")
		require.NoError(t, err)
		assert.Empty(t, got)
	})
}
