// Package ledger records transactions against a user together with the risk
// assigned at write time, and serves them back most recent first.
package ledger

import (
	"context"
	"time"

	apperrors "riskledger/internal/errors"
	"riskledger/internal/metrics"
	"riskledger/internal/models"
	"riskledger/internal/repositories"
	"riskledger/internal/services/risk"
	"riskledger/internal/validation"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

type Service interface {
	Append(ctx context.Context, input AppendInput) (*models.Transaction, error)
	ListByUser(ctx context.Context, username string) ([]models.Transaction, error)
	Summary(ctx context.Context, username string) (*models.RiskSummary, error)
}

// AppendInput carries the caller-supplied fields of a transaction. The id,
// timestamp and risk are always assigned by the ledger.
type AppendInput struct {
	Username string
	Amount   float64
	Location string
	Device   string
}

type Option func(*service)

// WithClock replaces the wall clock used for timestamps.
func WithClock(now func() time.Time) Option {
	return func(s *service) {
		s.clock = newMonotonicClock(now)
	}
}

type service struct {
	repo   repositories.TransactionRepository
	scorer risk.Scorer
	clock  *monotonicClock
	log    *zap.Logger
}

func NewService(repo repositories.TransactionRepository, scorer risk.Scorer, log *zap.Logger, opts ...Option) Service {
	if repo == nil {
		panic("repo is required")
	}
	if scorer == nil {
		scorer = risk.DefaultPolicy
	}

	s := &service{
		repo:   repo,
		scorer: scorer,
		clock:  newMonotonicClock(time.Now),
		log:    log,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

func (s *service) Append(ctx context.Context, input AppendInput) (*models.Transaction, error) {
	v := validation.New()
	v.Transaction(input.Username, input.Amount, input.Location, input.Device)
	if err := v.Err(); err != nil {
		return nil, err
	}

	id, err := uuid.NewV7()
	if err != nil {
		return nil, apperrors.StoreUnavailable(err)
	}

	tx := &models.Transaction{
		ID:        id.String(),
		Username:  input.Username,
		Amount:    input.Amount,
		Location:  input.Location,
		Device:    input.Device,
		Timestamp: s.clock.Next(),
		Risk:      s.scorer.Score(input.Amount, input.Location, input.Device),
	}

	err = s.repo.ExecuteInTransaction(ctx, func(r repositories.TransactionRepository) error {
		return r.Append(ctx, tx)
	})
	if err != nil {
		s.log.Error("failed to append transaction",
			zap.String("username", tx.Username),
			zap.String("transaction_id", tx.ID),
			zap.Error(err),
		)
		return nil, apperrors.StoreUnavailable(err)
	}

	metrics.RecordAppend(tx.Risk)
	s.log.Info("transaction appended",
		zap.String("username", tx.Username),
		zap.String("transaction_id", tx.ID),
		zap.Float64("risk", tx.Risk),
	)
	return tx, nil
}

func (s *service) ListByUser(ctx context.Context, username string) ([]models.Transaction, error) {
	v := validation.New()
	v.Required("username", username)
	if err := v.Err(); err != nil {
		return nil, err
	}

	transactions, err := s.repo.ListByUsername(ctx, username)
	if err != nil {
		return nil, s.storeError("list transactions", username, err)
	}
	if transactions == nil {
		transactions = make([]models.Transaction, 0)
	}
	return transactions, nil
}

// Summary counts the user's transactions per risk band.
func (s *service) Summary(ctx context.Context, username string) (*models.RiskSummary, error) {
	v := validation.New()
	v.Required("username", username)
	if err := v.Err(); err != nil {
		return nil, err
	}

	counts, err := s.repo.CountByRisk(ctx, username)
	if err != nil {
		return nil, s.storeError("summarise transactions", username, err)
	}

	summary := &models.RiskSummary{Username: username}
	for score, n := range counts {
		switch risk.Level(score) {
		case risk.BandLow:
			summary.Low += n
		case risk.BandMedium:
			summary.Medium += n
		default:
			summary.High += n
		}
		summary.Total += n
	}
	return summary, nil
}

func (s *service) storeError(op, username string, err error) error {
	s.log.Error("failed to "+op, zap.String("username", username), zap.Error(err))
	return apperrors.StoreUnavailable(err)
}
