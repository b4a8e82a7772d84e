package storage

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/shopspring/decimal"

	"sumstra/internal/core"
	"sumstra/internal/records"
)

func newTestRepo(t *testing.T) *SQLiteRepository {
	t.Helper()
	repo, err := NewSQLiteRepository(filepath.Join(t.TempDir(), "sumstra.db"))
	if err != nil {
		t.Fatalf("NewSQLiteRepository() = %v", err)
	}
	t.Cleanup(func() { repo.Close() })
	return repo
}

func newInput(desc, amount string, category core.Category, date time.Time) core.NewTransaction {
	return core.NewTransaction{
		Description: desc,
		Amount:      decimal.RequireFromString(amount),
		Category:    category,
		Date:        date,
		UserID:      "user-1",
	}
}

func TestSQLiteRepository_RoundTrip(t *testing.T) {
	repo := newTestRepo(t)
	ctx := context.Background()

	created, err := repo.Create(ctx, newInput("Groceries", "78.50", core.Need, time.Date(2025, 7, 24, 0, 0, 0, 0, time.UTC)))
	if err != nil {
		t.Fatalf("Create() = %v", err)
	}
	if created.ID == "" {
		t.Fatal("Create() must assign an id")
	}

	rows, err := repo.GetAll(ctx, "user-1")
	if err != nil {
		t.Fatalf("GetAll() = %v", err)
	}
	if len(rows) != 1 {
		t.Fatalf("GetAll() returned %d rows, want 1", len(rows))
	}
	got := rows[0]
	if got.ID != created.ID || got.Description != "Groceries" || got.Category != core.Need {
		t.Errorf("round-trip mismatch: %+v", got)
	}
	if !got.Amount.Equal(decimal.RequireFromString("78.50")) {
		t.Errorf("Amount = %s, want 78.50", got.Amount)
	}
	if !got.Date.Equal(created.Date) {
		t.Errorf("Date = %v, want %v", got.Date, created.Date)
	}
}

func TestSQLiteRepository_GetAllOrderAndScope(t *testing.T) {
	repo := newTestRepo(t)
	ctx := context.Background()

	older := newInput("older", "10.00", core.Want, time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC))
	newer := newInput("newer", "20.00", core.Want, time.Date(2025, 7, 1, 0, 0, 0, 0, time.UTC))
	foreign := newInput("foreign", "30.00", core.Want, time.Date(2025, 7, 2, 0, 0, 0, 0, time.UTC))
	foreign.UserID = "user-2"

	for _, in := range []core.NewTransaction{older, newer, foreign} {
		if _, err := repo.Create(ctx, in); err != nil {
			t.Fatalf("Create() = %v", err)
		}
	}

	rows, err := repo.GetAll(ctx, "user-1")
	if err != nil {
		t.Fatalf("GetAll() = %v", err)
	}
	if len(rows) != 2 {
		t.Fatalf("GetAll() returned %d rows, want 2", len(rows))
	}
	if rows[0].Description != "newer" || rows[1].Description != "older" {
		t.Errorf("rows not date-descending: %q, %q", rows[0].Description, rows[1].Description)
	}
}

func TestSQLiteRepository_Update(t *testing.T) {
	repo := newTestRepo(t)
	ctx := context.Background()

	created, err := repo.Create(ctx, newInput("Groceries", "78.50", core.Need, time.Now().UTC()))
	if err != nil {
		t.Fatalf("Create() = %v", err)
	}

	amount := decimal.RequireFromString("82.00")
	category := core.Want
	updated, err := repo.Update(ctx, created.ID, core.TransactionUpdate{Amount: &amount, Category: &category})
	if err != nil {
		t.Fatalf("Update() = %v", err)
	}
	if !updated.Amount.Equal(amount) || updated.Category != core.Want {
		t.Errorf("Update() = %+v, want amount 82.00 and category WANT", updated)
	}
	if updated.Description != "Groceries" {
		t.Errorf("unset field changed: %q", updated.Description)
	}

	desc := "x"
	if _, err := repo.Update(ctx, "missing", core.TransactionUpdate{Description: &desc}); !records.IsNotFound(err) {
		t.Errorf("Update(missing) = %v, want ErrNotFound", err)
	}
}

func TestSQLiteRepository_Delete(t *testing.T) {
	repo := newTestRepo(t)
	ctx := context.Background()

	created, err := repo.Create(ctx, newInput("Groceries", "78.50", core.Need, time.Now().UTC()))
	if err != nil {
		t.Fatalf("Create() = %v", err)
	}

	if err := repo.Delete(ctx, created.ID); err != nil {
		t.Fatalf("Delete() = %v", err)
	}
	rows, err := repo.GetAll(ctx, "user-1")
	if err != nil {
		t.Fatalf("GetAll() = %v", err)
	}
	if len(rows) != 0 {
		t.Errorf("GetAll() after delete = %v, want empty", rows)
	}
	if err := repo.Delete(ctx, created.ID); !records.IsNotFound(err) {
		t.Errorf("Delete(deleted id) = %v, want ErrNotFound", err)
	}
}

func TestSQLiteRepository_CreateRejectsInvalid(t *testing.T) {
	repo := newTestRepo(t)

	in := newInput("Groceries", "1000000.00", core.Need, time.Now().UTC())
	if _, err := repo.Create(context.Background(), in); err == nil {
		t.Fatal("Create() with out-of-range amount must fail")
	}
}
