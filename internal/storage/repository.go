// Package storage is the relational side of the reconciliation: a
// SQLite-backed transactions table loaded in one bulk query per
// request.
package storage

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"

	"ledgerlink/internal/core"

	_ "modernc.org/sqlite"
)

type SQLiteRepository struct {
	db *sql.DB
}

func NewSQLiteRepository(dbPath string) (*SQLiteRepository, error) {
	if dir := filepath.Dir(dbPath); dir != "." && dir != "" {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return nil, fmt.Errorf("create db directory: %w", err)
		}
	}

	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("open sqlite database: %w", err)
	}

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("ping database: %w", err)
	}

	if err := RunMigrations(dbPath); err != nil {
		db.Close()
		return nil, fmt.Errorf("run migrations: %w", err)
	}

	return &SQLiteRepository{db: db}, nil
}

func (r *SQLiteRepository) Close() error {
	if r.db != nil {
		return r.db.Close()
	}
	return nil
}

// ListTransactions loads the whole transactions table. The table is
// small enough to hold in memory for a single reconciliation pass, so
// there is no pagination here.
func (r *SQLiteRepository) ListTransactions(ctx context.Context) ([]core.Transaction, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT id, merchant_name, amount, originate_date, current_status, transaction_id, notes
		 FROM transactions`)
	if err != nil {
		return nil, &core.StorageError{Err: err}
	}
	defer rows.Close()

	var txns []core.Transaction
	for rows.Next() {
		var t core.Transaction
		if err := rows.Scan(&t.ID, &t.MerchantName, &t.Amount, &t.OriginateDate,
			&t.CurrentStatus, &t.TransactionID, &t.Notes); err != nil {
			return nil, &core.StorageError{Err: fmt.Errorf("scan transaction: %w", err)}
		}
		txns = append(txns, t)
	}
	if err := rows.Err(); err != nil {
		return nil, &core.StorageError{Err: err}
	}

	return txns, nil
}

// InsertTransaction writes one row, returning its id. Used by seeding
// and tests; the reconciliation pipeline itself only reads.
func (r *SQLiteRepository) InsertTransaction(ctx context.Context, t core.Transaction) (int64, error) {
	res, err := r.db.ExecContext(ctx,
		`INSERT INTO transactions (merchant_name, amount, originate_date, current_status, transaction_id, notes)
		 VALUES (?, ?, ?, ?, ?, ?)`,
		t.MerchantName, t.Amount, t.OriginateDate, t.CurrentStatus, t.TransactionID, t.Notes)
	if err != nil {
		return 0, &core.StorageError{Err: fmt.Errorf("insert transaction: %w", err)}
	}
	id, err := res.LastInsertId()
	if err != nil {
		return 0, &core.StorageError{Err: err}
	}
	return id, nil
}
