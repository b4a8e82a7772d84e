// Package storage implements the records port on a local SQLite database.
package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"sumstra/internal/core"
	"sumstra/internal/records"

	_ "modernc.org/sqlite"
)

type SQLiteRepository struct {
	db  *sql.DB
	now func() time.Time
}

func NewSQLiteRepository(dbPath string) (*SQLiteRepository, error) {
	if err := os.MkdirAll(filepath.Dir(dbPath), 0755); err != nil {
		return nil, fmt.Errorf("create db directory: %w", err)
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

	return &SQLiteRepository{db: db, now: time.Now}, nil
}

func (r *SQLiteRepository) Close() error {
	if r.db != nil {
		return r.db.Close()
	}
	return nil
}

const selectColumns = "id, description, amount, category, date, user_id, created_at, updated_at"

func (r *SQLiteRepository) GetAll(ctx context.Context, userID string) ([]core.Transaction, error) {
	rows, err := r.db.QueryContext(ctx,
		"SELECT "+selectColumns+" FROM transactions WHERE user_id = ? ORDER BY date DESC, created_at DESC",
		userID)
	if err != nil {
		return nil, records.NewError("get_all", "query transactions", err)
	}
	defer rows.Close()

	var out []core.Transaction
	for rows.Next() {
		txn, err := scanTransaction(rows)
		if err != nil {
			return nil, records.NewError("get_all", "scan transaction", err)
		}
		out = append(out, txn)
	}
	if err := rows.Err(); err != nil {
		return nil, records.NewError("get_all", "iterate transactions", err)
	}
	return out, nil
}

func (r *SQLiteRepository) Create(ctx context.Context, input core.NewTransaction) (core.Transaction, error) {
	if err := input.Validate(); err != nil {
		return core.Transaction{}, records.NewError("create", "invalid transaction", err)
	}

	now := r.now().UTC()
	txn := core.Transaction{
		ID:          uuid.NewString(),
		Description: input.Description,
		Amount:      input.Amount,
		Category:    input.Category,
		Date:        input.Date,
		UserID:      input.UserID,
		CreatedAt:   &now,
		UpdatedAt:   &now,
	}

	_, err := r.db.ExecContext(ctx,
		"INSERT INTO transactions ("+selectColumns+") VALUES (?, ?, ?, ?, ?, ?, ?, ?)",
		txn.ID, txn.Description, txn.Amount.String(), string(txn.Category),
		txn.Date.UTC().Format(time.RFC3339Nano), txn.UserID,
		now.Format(time.RFC3339Nano), now.Format(time.RFC3339Nano))
	if err != nil {
		return core.Transaction{}, records.NewError("create", "insert transaction", err)
	}

	slog.InfoContext(ctx, "Transaction saved to SQLite",
		"id", txn.ID,
		"category", txn.Category,
		"amount", txn.Amount.String())

	return txn, nil
}

func (r *SQLiteRepository) Update(ctx context.Context, id string, update core.TransactionUpdate) (core.Transaction, error) {
	if err := update.Validate(); err != nil {
		return core.Transaction{}, records.NewError("update", "invalid update", err)
	}

	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return core.Transaction{}, records.NewError("update", "begin transaction", err)
	}
	defer tx.Rollback()

	row := tx.QueryRowContext(ctx,
		"SELECT "+selectColumns+" FROM transactions WHERE id = ?", id)
	txn, err := scanTransaction(row)
	if errors.Is(err, sql.ErrNoRows) {
		return core.Transaction{}, records.NotFound("update", id)
	}
	if err != nil {
		return core.Transaction{}, records.NewError("update", "read transaction", err)
	}

	update.ApplyTo(&txn)
	now := r.now().UTC()
	txn.UpdatedAt = &now

	_, err = tx.ExecContext(ctx,
		"UPDATE transactions SET description = ?, amount = ?, category = ?, date = ?, updated_at = ? WHERE id = ?",
		txn.Description, txn.Amount.String(), string(txn.Category),
		txn.Date.UTC().Format(time.RFC3339Nano), now.Format(time.RFC3339Nano), id)
	if err != nil {
		return core.Transaction{}, records.NewError("update", "write transaction", err)
	}

	if err := tx.Commit(); err != nil {
		return core.Transaction{}, records.NewError("update", "commit transaction", err)
	}
	return txn, nil
}

func (r *SQLiteRepository) Delete(ctx context.Context, id string) error {
	res, err := r.db.ExecContext(ctx, "DELETE FROM transactions WHERE id = ?", id)
	if err != nil {
		return records.NewError("delete", "delete transaction", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return records.NewError("delete", "rows affected", err)
	}
	if affected == 0 {
		return records.NotFound("delete", id)
	}
	return nil
}

type scanner interface {
	Scan(dest ...any) error
}

func scanTransaction(s scanner) (core.Transaction, error) {
	var (
		txn                  core.Transaction
		amount               string
		category             string
		date                 string
		createdAt, updatedAt string
	)
	if err := s.Scan(&txn.ID, &txn.Description, &amount, &category, &date, &txn.UserID, &createdAt, &updatedAt); err != nil {
		return core.Transaction{}, err
	}

	parsedAmount, err := decimal.NewFromString(amount)
	if err != nil {
		return core.Transaction{}, fmt.Errorf("parse amount %q: %w", amount, err)
	}
	txn.Amount = parsedAmount
	txn.Category = core.Category(category)

	if txn.Date, err = time.Parse(time.RFC3339Nano, date); err != nil {
		return core.Transaction{}, fmt.Errorf("parse date %q: %w", date, err)
	}
	created, err := time.Parse(time.RFC3339Nano, createdAt)
	if err != nil {
		return core.Transaction{}, fmt.Errorf("parse created_at %q: %w", createdAt, err)
	}
	updated, err := time.Parse(time.RFC3339Nano, updatedAt)
	if err != nil {
		return core.Transaction{}, fmt.Errorf("parse updated_at %q: %w", updatedAt, err)
	}
	txn.CreatedAt = &created
	txn.UpdatedAt = &updated
	return txn, nil
}
