// Package records defines the port to the persistence collaborator: a
// record-oriented transaction table reached through one of the backends
// under internal/records and internal/storage.
package records

import (
	"context"

	"sumstra/internal/core"
)

// Repository is the sole contact surface with the transaction table.
// Operations are single-shot; callers decide whether to retry.
type Repository interface {
	// GetAll returns every transaction owned by userID, newest first
	// (date descending).
	GetAll(ctx context.Context, userID string) ([]core.Transaction, error)

	// Create inserts the transaction and returns the stored record with its
	// assigned ID and server timestamps.
	Create(ctx context.Context, input core.NewTransaction) (core.Transaction, error)

	// Update applies the set fields of update to the record with the given
	// id and returns the updated record. ID and UserID are immutable.
	Update(ctx context.Context, id string, update core.TransactionUpdate) (core.Transaction, error)

	// Delete removes the record with the given id. Deleting an id that does
	// not exist fails with ErrNotFound.
	Delete(ctx context.Context, id string) error
}
