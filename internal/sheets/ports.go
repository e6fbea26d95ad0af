// Package sheets defines the port for the spreadsheet ledger backup.
package sheets

import (
	"context"

	"gastozap/internal/core"
)

// BackupWriter copies one ledger record to the backup spreadsheet and
// returns a row reference.
type BackupWriter interface {
	Append(ctx context.Context, rec core.ExpenseRecord) (rowRef string, err error)
}
