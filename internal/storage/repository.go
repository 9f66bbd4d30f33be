package storage

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"fintrack/internal/core"
	"fintrack/internal/store"

	_ "modernc.org/sqlite"
)

// SQLiteRepository keeps the transaction sequence in a SQLite table. The
// position column preserves insertion order.
type SQLiteRepository struct {
	db   *sql.DB
	path string
}

var _ store.TransactionStore = (*SQLiteRepository)(nil)

// NewSQLiteRepository opens dbPath, creating its directory, and migrates the
// schema.
func NewSQLiteRepository(ctx context.Context, dbPath string) (*SQLiteRepository, error) {
	if err := os.MkdirAll(filepath.Dir(dbPath), 0755); err != nil {
		return nil, fmt.Errorf("create db directory: %w", err)
	}

	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("open sqlite database: %w", err)
	}

	if err := db.PingContext(ctx); err != nil {
		db.Close()
		return nil, fmt.Errorf("ping database: %w", err)
	}

	if _, err := RunMigrations(ctx, dbPath); err != nil {
		db.Close()
		return nil, err
	}

	return &SQLiteRepository{db: db, path: dbPath}, nil
}

func (r *SQLiteRepository) Close() error {
	if r.db != nil {
		return r.db.Close()
	}
	return nil
}

// Load implements store.TransactionStore
func (r *SQLiteRepository) Load(ctx context.Context) ([]core.Transaction, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT date, category, amount, description FROM transactions ORDER BY position`)
	if err != nil {
		return nil, &store.IOError{Op: "query", Path: r.path, Err: err}
	}
	defer rows.Close()

	out := []core.Transaction{}
	for rows.Next() {
		var t core.Transaction
		if err := rows.Scan(&t.Date, &t.Category, &t.Amount, &t.Description); err != nil {
			return nil, &store.DataCorruptionError{Path: r.path, Err: fmt.Errorf("scan transaction %d: %w", len(out)+1, err)}
		}
		out = append(out, t)
	}
	if err := rows.Err(); err != nil {
		return nil, &store.IOError{Op: "query", Path: r.path, Err: err}
	}

	slog.DebugContext(ctx, "Loaded transactions from SQLite", "count", len(out))
	return out, nil
}

// Save implements store.TransactionStore. All rows are replaced inside one
// SQL transaction.
func (r *SQLiteRepository) Save(ctx context.Context, transactions []core.Transaction) (err error) {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return &store.IOError{Op: "begin", Path: r.path, Err: err}
	}
	defer func() {
		if err != nil {
			tx.Rollback()
		}
	}()

	if _, err = tx.ExecContext(ctx, `DELETE FROM transactions`); err != nil {
		return &store.IOError{Op: "delete", Path: r.path, Err: err}
	}

	stmt, err := tx.PrepareContext(ctx,
		`INSERT INTO transactions (position, date, category, amount, description) VALUES (?, ?, ?, ?, ?)`)
	if err != nil {
		return &store.IOError{Op: "prepare", Path: r.path, Err: err}
	}
	defer stmt.Close()

	for i, t := range transactions {
		if _, err = stmt.ExecContext(ctx, i+1, t.Date, t.Category, t.Amount, t.Description); err != nil {
			return &store.IOError{Op: "insert", Path: r.path, Err: err}
		}
	}

	if err = tx.Commit(); err != nil {
		return &store.IOError{Op: "commit", Path: r.path, Err: err}
	}

	slog.DebugContext(ctx, "Saved transactions to SQLite", "count", len(transactions))
	return nil
}
