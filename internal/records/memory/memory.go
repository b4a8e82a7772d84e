// Package memory implements the records port with an in-process table.
// It backs tests and the default development configuration.
package memory

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"

	"sumstra/internal/core"
	"sumstra/internal/records"
)

// Table is a mutex-guarded transaction table. Rows are kept date-descending
// so reads return them in the collaborator's order without re-sorting.
type Table struct {
	mu   sync.Mutex
	rows []core.Transaction
	now  func() time.Time
}

func New() *Table {
	return &Table{now: time.Now}
}

// NewSeeded builds a table holding the given rows, useful in tests.
func NewSeeded(rows []core.Transaction) *Table {
	t := New()
	t.rows = append(t.rows, rows...)
	sort.SliceStable(t.rows, func(i, j int) bool {
		return t.rows[i].Date.After(t.rows[j].Date)
	})
	return t
}

// SetClock overrides the timestamp source, for tests.
func (t *Table) SetClock(now func() time.Time) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.now = now
}

func (t *Table) GetAll(_ context.Context, userID string) ([]core.Transaction, error) {
	t.mu.Lock()
	defer t.mu.Unlock()

	out := make([]core.Transaction, 0, len(t.rows))
	for _, row := range t.rows {
		if row.UserID == userID {
			out = append(out, row)
		}
	}
	return out, nil
}

func (t *Table) Create(_ context.Context, input core.NewTransaction) (core.Transaction, error) {
	if err := input.Validate(); err != nil {
		return core.Transaction{}, records.NewError("create", "invalid transaction", err)
	}

	t.mu.Lock()
	defer t.mu.Unlock()

	now := t.now().UTC()
	row := core.Transaction{
		ID:          uuid.NewString(),
		Description: input.Description,
		Amount:      input.Amount,
		Category:    input.Category,
		Date:        input.Date,
		UserID:      input.UserID,
		CreatedAt:   &now,
		UpdatedAt:   &now,
	}

	// Insert before the first older row to keep date-descending order.
	at := len(t.rows)
	for i, existing := range t.rows {
		if row.Date.After(existing.Date) {
			at = i
			break
		}
	}
	t.rows = append(t.rows, core.Transaction{})
	copy(t.rows[at+1:], t.rows[at:])
	t.rows[at] = row

	return row, nil
}

func (t *Table) Update(_ context.Context, id string, update core.TransactionUpdate) (core.Transaction, error) {
	if err := update.Validate(); err != nil {
		return core.Transaction{}, records.NewError("update", "invalid update", err)
	}

	t.mu.Lock()
	defer t.mu.Unlock()

	for i := range t.rows {
		if t.rows[i].ID != id {
			continue
		}
		update.ApplyTo(&t.rows[i])
		now := t.now().UTC()
		t.rows[i].UpdatedAt = &now
		return t.rows[i], nil
	}
	return core.Transaction{}, records.NotFound("update", id)
}

func (t *Table) Delete(_ context.Context, id string) error {
	t.mu.Lock()
	defer t.mu.Unlock()

	for i := range t.rows {
		if t.rows[i].ID == id {
			t.rows = append(t.rows[:i], t.rows[i+1:]...)
			return nil
		}
	}
	return records.NotFound("delete", id)
}

// Len reports the number of rows across all users.
func (t *Table) Len() int {
	t.mu.Lock()
	defer t.mu.Unlock()
	return len(t.rows)
}
