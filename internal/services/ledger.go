package services

import (
	"context"
	"errors"
	"fmt"
	"slices"
	"time"

	"fintrack/internal/core"
	applog "fintrack/internal/log"
	"fintrack/internal/store"
)

// EventPublisher is notified after a transaction has been persisted.
type EventPublisher interface {
	PublishTransactionAdded(ctx context.Context, t core.Transaction) error
}

// AddTransactionInput is the raw, unvalidated user input for one entry.
type AddTransactionInput struct {
	Date        string
	Category    string
	Amount      string
	Description string
}

// Ledger is the session object for one user: the in-memory transaction
// sequence plus the store it came from. It is not safe for concurrent use.
type Ledger struct {
	store     store.TransactionStore
	publisher EventPublisher
	logger    *applog.Logger

	transactions []core.Transaction
}

// Option configures a Ledger
type Option func(*Ledger)

// WithPublisher sets the publisher that receives transaction added events
func WithPublisher(p EventPublisher) Option {
	return func(l *Ledger) { l.publisher = p }
}

// WithLogger sets the ledger logger
func WithLogger(logger *applog.Logger) Option {
	return func(l *Ledger) { l.logger = logger.WithComponent(applog.ComponentLedger) }
}

// OpenLedger loads the persisted sequence once and returns a session over it.
// A *store.DataCorruptionError from the store is returned unchanged in the
// chain so callers can report it.
func OpenLedger(ctx context.Context, s store.TransactionStore, opts ...Option) (*Ledger, error) {
	l := &Ledger{
		store:  s,
		logger: applog.Discard(),
	}
	for _, opt := range opts {
		opt(l)
	}

	transactions, err := s.Load(ctx)
	if err != nil {
		l.logger.ErrorContext(ctx, "Failed to load transactions",
			applog.NewFields().WithOperation(applog.OpLoad).WithErrorType(errorType(err)).WithError(err).ToSlice()...)
		return nil, fmt.Errorf("load transactions: %w", err)
	}
	l.transactions = transactions

	l.logger.DebugContext(ctx, "Ledger opened",
		applog.FieldOperation, applog.OpLoad,
		applog.FieldCount, len(transactions))
	return l, nil
}

// Add validates in, appends the resulting transaction and saves the whole
// sequence. Validation errors leave the ledger untouched and skip the save.
// If the save fails the append is rolled back, so memory never holds a
// transaction the store does not.
func (l *Ledger) Add(ctx context.Context, in AddTransactionInput) (core.Transaction, error) {
	t, err := core.NewTransaction(in.Date, in.Category, in.Amount, in.Description)
	if err != nil {
		l.logger.DebugContext(ctx, "Rejected transaction",
			applog.NewFields().WithOperation(applog.OpValidate).WithErrorType(applog.ErrorTypeValidation).WithError(err).ToSlice()...)
		return core.Transaction{}, err
	}

	// Clip forces append to copy, leaving l.transactions intact for rollback.
	next := append(slices.Clip(l.transactions), t)
	if err := l.store.Save(ctx, next); err != nil {
		l.logger.ErrorContext(ctx, "Failed to save transaction",
			applog.NewFields().WithOperation(applog.OpSave).WithErrorType(errorType(err)).WithError(err).ToSlice()...)
		return core.Transaction{}, fmt.Errorf("save transactions: %w", err)
	}
	l.transactions = next

	l.logger.InfoContext(ctx, "Transaction added",
		append(applog.NewFields().WithOperation(applog.OpAdd).WithTransaction(t.Date, t.Category, t.Amount).ToSlice(),
			applog.FieldMonth, t.MonthKey())...)

	if l.publisher != nil {
		if err := l.publisher.PublishTransactionAdded(ctx, t); err != nil {
			// The transaction is already persisted.
			l.logger.WarnContext(ctx, "Failed to publish transaction added event",
				applog.NewFields().WithOperation(applog.OpPublish).WithErrorType(applog.ErrorTypeNetwork).WithError(err).ToSlice()...)
		}
	}

	return t, nil
}

// Transactions returns a copy of the ordered sequence.
func (l *Ledger) Transactions() []core.Transaction {
	return slices.Clone(l.transactions)
}

// Len returns the number of transactions.
func (l *Ledger) Len() int {
	return len(l.transactions)
}

// Summary recomputes the monthly summary.
func (l *Ledger) Summary() core.Summary {
	return core.Summarize(l.transactions)
}

// MeasureSummary recomputes the summary iterations times and returns the
// last result with the mean wall-clock time per run. iterations below one
// are treated as one.
func (l *Ledger) MeasureSummary(iterations int) (core.Summary, time.Duration) {
	if iterations < 1 {
		iterations = 1
	}
	var (
		summary core.Summary
		total   time.Duration
	)
	for i := 0; i < iterations; i++ {
		start := time.Now()
		summary = core.Summarize(l.transactions)
		total += time.Since(start)
	}
	mean := total / time.Duration(iterations)

	l.logger.Debug("Summary timing",
		applog.FieldOperation, applog.OpSummary,
		applog.FieldIterations, iterations,
		applog.FieldDuration, mean)
	return summary, mean
}

// errorType classifies store and validation failures for logging
func errorType(err error) string {
	var (
		ve      *core.ValidationError
		corrupt *store.DataCorruptionError
	)
	switch {
	case errors.As(err, &ve):
		return applog.ErrorTypeValidation
	case errors.As(err, &corrupt):
		return applog.ErrorTypeDataCorruption
	default:
		return applog.ErrorTypeIO
	}
}
