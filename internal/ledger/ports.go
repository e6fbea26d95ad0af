// Package ledger defines the port for the append-only expense ledger.
package ledger

import (
	"context"

	"gastozap/internal/core"
)

// Store is the ordered-append expense ledger. Implementations must be
// consistent (a ReadAll after Append observes the appended record) and
// must serialize appends so concurrent requests never lose updates.
// Records are never updated or deleted; the ledger only grows.
type Store interface {
	// ReadAll returns every record across all users in insertion order.
	ReadAll(ctx context.Context) ([]core.ExpenseRecord, error)

	// Append stores a record atomically and returns a backend reference.
	Append(ctx context.Context, rec core.ExpenseRecord) (ref string, err error)
}
