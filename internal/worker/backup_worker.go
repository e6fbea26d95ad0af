// Package worker copies committed ledger records to the backup
// spreadsheet.
package worker

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"gastozap/internal/amqp"
	"gastozap/internal/sheets"
	"gastozap/internal/storage"
)

// BackupWorker drains the backup queue: for each message it loads the
// record from SQLite, appends a row to the spreadsheet and marks the
// record backed up. A periodic sweep retries records whose message was
// lost or whose previous attempt errored.
type BackupWorker struct {
	storage   *storage.SQLiteStore
	sheet     sheets.BackupWriter
	batchSize int
}

func NewBackupWorker(storage *storage.SQLiteStore, sheet sheets.BackupWriter, batchSize int) *BackupWorker {
	return &BackupWorker{
		storage:   storage,
		sheet:     sheet,
		batchSize: batchSize,
	}
}

// HandleBackupMessage processes a single queue message. Returning an
// error Nacks the delivery back onto the queue.
func (w *BackupWorker) HandleBackupMessage(ctx context.Context, msg *amqp.RecordBackupMessage) error {
	slog.InfoContext(ctx, "Processing backup message",
		"component", "backup_worker",
		"id", msg.ID,
		"version", msg.Version)

	rec, err := w.storage.GetRecord(ctx, msg.ID)
	if err != nil {
		return fmt.Errorf("get record from storage: %w", err)
	}

	ref, err := w.sheet.Append(ctx, rec)
	if err != nil {
		if markErr := w.storage.MarkBackupError(ctx, msg.ID); markErr != nil {
			slog.ErrorContext(ctx, "Failed to mark backup error",
				"id", msg.ID, "error", markErr)
		}
		return fmt.Errorf("append to sheet: %w", err)
	}

	if err := w.storage.MarkBackedUp(ctx, msg.ID); err != nil {
		return fmt.Errorf("mark backed up: %w", err)
	}

	slog.InfoContext(ctx, "Record backed up to spreadsheet",
		"component", "backup_worker",
		"id", msg.ID,
		"sheet_ref", ref)
	return nil
}

// SweepPending backs up records still pending, directly against the
// sheet. Covers messages lost between append and publish.
func (w *BackupWorker) SweepPending(ctx context.Context) error {
	pending, err := w.storage.PendingBackups(ctx, w.batchSize)
	if err != nil {
		return fmt.Errorf("list pending backups: %w", err)
	}
	if len(pending) == 0 {
		return nil
	}

	slog.InfoContext(ctx, "Sweeping pending backups",
		"component", "backup_worker",
		"count", len(pending))

	for _, p := range pending {
		if err := w.HandleBackupMessage(ctx, amqp.NewRecordBackupMessage(p.ID, p.Version)); err != nil {
			slog.ErrorContext(ctx, "Sweep failed for record",
				"id", p.ID, "error", err)
			// Keep going; one bad record must not block the batch.
		}
	}
	return nil
}

// RunSweeper runs SweepPending on the given interval until ctx is done.
func (w *BackupWorker) RunSweeper(ctx context.Context, interval time.Duration) error {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-ticker.C:
			if err := w.SweepPending(ctx); err != nil {
				slog.ErrorContext(ctx, "Sweep iteration failed", "error", err)
			}
		}
	}
}
