package memory

import (
	"context"
	"sync"

	"fintrack/internal/core"
	"fintrack/internal/store"
	"fintrack/internal/store/jsonfile"
)

// Store keeps the transaction sequence in process memory. Nothing is written
// to disk, which makes it a dry-run backend and a test double.
type Store struct {
	mu    sync.Mutex
	items []core.Transaction
	saves int
}

var _ store.TransactionStore = (*Store)(nil)

func New(seed []core.Transaction) *Store {
	return &Store{items: clone(seed)}
}

// NewFromFile seeds the store from a JSON document. The document is only
// read; a missing file gives an empty store.
func NewFromFile(ctx context.Context, path string) (*Store, error) {
	items, err := jsonfile.New(path).Load(ctx)
	if err != nil {
		return nil, err
	}
	return New(items), nil
}

// Load returns a copy of the stored sequence.
func (s *Store) Load(_ context.Context) ([]core.Transaction, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return clone(s.items), nil
}

// Save replaces the stored sequence with a copy of transactions.
func (s *Store) Save(_ context.Context, transactions []core.Transaction) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.items = clone(transactions)
	s.saves++
	return nil
}

// Saves returns how many times Save has been called.
func (s *Store) Saves() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.saves
}

func clone(in []core.Transaction) []core.Transaction {
	return append(make([]core.Transaction, 0, len(in)), in...)
}
