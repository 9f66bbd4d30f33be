// Package store defines the persistence boundary for the transaction sequence.
package store

import (
	"context"
	"fmt"

	"fintrack/internal/core"
)

// TransactionStore loads and saves the full ordered transaction sequence.
// Implementations replace the whole persisted sequence on every Save.
type TransactionStore interface {
	// Load returns the persisted sequence, or an empty one when nothing has
	// been saved yet.
	Load(ctx context.Context) ([]core.Transaction, error)
	// Save replaces the persisted sequence with transactions.
	Save(ctx context.Context, transactions []core.Transaction) error
}

// DataCorruptionError means the persisted document exists but cannot be read
// as a transaction sequence.
type DataCorruptionError struct {
	Path string
	Err  error
}

func (e *DataCorruptionError) Error() string {
	return fmt.Sprintf("corrupt transaction data in %s: %v", e.Path, e.Err)
}

func (e *DataCorruptionError) Unwrap() error {
	return e.Err
}

// IOError wraps a read or write failure of the persisted document.
type IOError struct {
	Op   string
	Path string
	Err  error
}

func (e *IOError) Error() string {
	return fmt.Sprintf("%s %s: %v", e.Op, e.Path, e.Err)
}

func (e *IOError) Unwrap() error {
	return e.Err
}
