package repositories

import (
	"context"
	"time"

	"riskledger/internal/models"
	"riskledger/internal/repositories/cache"

	"go.uber.org/zap"
)

// cachedTransactionRepository serves ListByUsername from Redis. Every list
// entry is keyed by a per-user generation counter that is bumped after each
// committed append, so an entry written from a pre-append read can never be
// served once the append is visible.
//
// A missing counter is seeded with the current time in nanoseconds. Every
// generation ever issued is an earlier seed plus fewer increments than
// nanoseconds have since passed, so a counter lost to eviction restarts above
// all of them and no old entry becomes readable again.
type cachedTransactionRepository struct {
	TransactionRepository
	cache *cache.CacheService
	log   *zap.Logger
}

// NewCachedTransactionRepository decorates next with a read-through list
// cache. Cache failures are logged and fall back to next.
func NewCachedTransactionRepository(next TransactionRepository, c *cache.CacheService, log *zap.Logger) TransactionRepository {
	return &cachedTransactionRepository{
		TransactionRepository: next,
		cache:                 c,
		log:                   log,
	}
}

func (r *cachedTransactionRepository) Append(ctx context.Context, tx *models.Transaction) error {
	if err := r.TransactionRepository.Append(ctx, tx); err != nil {
		return err
	}
	r.bumpGeneration(ctx, tx.Username)
	return nil
}

func (r *cachedTransactionRepository) ListByUsername(ctx context.Context, username string) ([]models.Transaction, error) {
	gen, err := r.cache.Generation(ctx, r.generationKey(username), generationSeed())
	if err != nil {
		r.log.Warn("transaction cache unavailable", zap.String("username", username), zap.Error(err))
		return r.TransactionRepository.ListByUsername(ctx, username)
	}

	key := r.listKey(username, gen)
	var cached []models.Transaction
	found, err := r.cache.Get(ctx, key, &cached)
	if err != nil {
		r.log.Warn("transaction cache read failed", zap.String("key", key), zap.Error(err))
	}
	if found {
		r.log.Debug("cache hit for transactions", zap.String("username", username))
		if cached == nil {
			cached = make([]models.Transaction, 0)
		}
		return cached, nil
	}

	transactions, err := r.TransactionRepository.ListByUsername(ctx, username)
	if err != nil {
		return nil, err
	}

	if err := r.cache.Set(ctx, key, transactions); err != nil {
		r.log.Warn("failed to cache transactions", zap.String("key", key), zap.Error(err))
	}
	return transactions, nil
}

func (r *cachedTransactionRepository) ExecuteInTransaction(ctx context.Context, fn func(TransactionRepository) error) error {
	var appended []string
	err := r.TransactionRepository.ExecuteInTransaction(ctx, func(tx TransactionRepository) error {
		return fn(&appendRecorder{TransactionRepository: tx, usernames: &appended})
	})
	if err != nil {
		return err
	}

	for _, username := range appended {
		r.bumpGeneration(ctx, username)
	}
	return nil
}

func (r *cachedTransactionRepository) bumpGeneration(ctx context.Context, username string) {
	if _, err := r.cache.BumpGeneration(ctx, r.generationKey(username), generationSeed()); err != nil {
		r.log.Error("failed to invalidate transaction cache", zap.String("username", username), zap.Error(err))
	}
}

func generationSeed() int64 {
	return time.Now().UnixNano()
}

func (r *cachedTransactionRepository) generationKey(username string) string {
	return cache.GenerationKey(cache.EntityTransactions, cache.KeyUser, username)
}

func (r *cachedTransactionRepository) listKey(username string, gen int64) string {
	return cache.VersionedKey(cache.EntityTransactions, cache.KeyUser, username, gen)
}

// appendRecorder remembers which users were appended to inside a database
// transaction so their cache generation can be bumped after commit.
type appendRecorder struct {
	TransactionRepository
	usernames *[]string
}

func (r *appendRecorder) Append(ctx context.Context, tx *models.Transaction) error {
	if err := r.TransactionRepository.Append(ctx, tx); err != nil {
		return err
	}
	*r.usernames = append(*r.usernames, tx.Username)
	return nil
}
