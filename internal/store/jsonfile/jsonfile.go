// Package jsonfile persists the transaction sequence as a single JSON array.
package jsonfile

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"

	"fintrack/internal/core"
	"fintrack/internal/store"
)

// Store reads and writes one JSON document. Saves go to a temporary file in
// the same directory which is then renamed over the target, so a failed
// write never leaves a truncated document behind.
type Store struct {
	path string
}

var _ store.TransactionStore = (*Store)(nil)

func New(path string) *Store {
	return &Store{path: path}
}

// Path returns the document location.
func (s *Store) Path() string {
	return s.path
}

// Load implements store.TransactionStore. A missing document is an empty
// sequence; an unreadable one is a *store.DataCorruptionError.
func (s *Store) Load(ctx context.Context) ([]core.Transaction, error) {
	data, err := os.ReadFile(s.path)
	if errors.Is(err, fs.ErrNotExist) {
		slog.DebugContext(ctx, "No transaction file, starting empty", "path", s.path)
		return []core.Transaction{}, nil
	}
	if err != nil {
		return nil, &store.IOError{Op: "read", Path: s.path, Err: err}
	}
	transactions, err := Decode(data)
	if err != nil {
		return nil, &store.DataCorruptionError{Path: s.path, Err: err}
	}
	slog.DebugContext(ctx, "Loaded transactions", "path", s.path, "count", len(transactions))
	return transactions, nil
}

// Save implements store.TransactionStore.
func (s *Store) Save(ctx context.Context, transactions []core.Transaction) error {
	data, err := Encode(transactions)
	if err != nil {
		return &store.IOError{Op: "encode", Path: s.path, Err: err}
	}

	dir := filepath.Dir(s.path)
	tmp, err := os.CreateTemp(dir, "."+filepath.Base(s.path)+".*.tmp")
	if err != nil {
		return &store.IOError{Op: "create", Path: s.path, Err: err}
	}
	tmpName := tmp.Name()
	defer os.Remove(tmpName) // no-op after a successful rename

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		return &store.IOError{Op: "write", Path: s.path, Err: err}
	}
	if err := tmp.Sync(); err != nil {
		tmp.Close()
		return &store.IOError{Op: "sync", Path: s.path, Err: err}
	}
	if err := tmp.Close(); err != nil {
		return &store.IOError{Op: "close", Path: s.path, Err: err}
	}
	if err := os.Chmod(tmpName, 0o644); err != nil {
		return &store.IOError{Op: "chmod", Path: s.path, Err: err}
	}
	if err := os.Rename(tmpName, s.path); err != nil {
		return &store.IOError{Op: "rename", Path: s.path, Err: err}
	}

	slog.DebugContext(ctx, "Saved transactions", "path", s.path, "count", len(transactions))
	return nil
}

// Encode renders transactions as an indented JSON array. A nil slice is
// written as [] rather than null.
func Encode(transactions []core.Transaction) ([]byte, error) {
	if transactions == nil {
		transactions = []core.Transaction{}
	}
	data, err := json.MarshalIndent(transactions, "", "    ")
	if err != nil {
		return nil, err
	}
	return append(data, '\n'), nil
}

// Decode parses a JSON array of transactions. Unknown fields are ignored so
// documents written by other tools still load.
func Decode(data []byte) ([]core.Transaction, error) {
	if len(bytes.TrimSpace(data)) == 0 {
		return nil, errors.New("empty document")
	}
	var transactions []core.Transaction
	if err := json.Unmarshal(data, &transactions); err != nil {
		return nil, err
	}
	if transactions == nil {
		// a literal null
		return nil, errors.New("document is not a JSON array")
	}
	return transactions, nil
}
