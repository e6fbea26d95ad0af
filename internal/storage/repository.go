package storage

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"gastozap/internal/core"

	_ "modernc.org/sqlite"
)

// SQLiteStore is the durable ledger backend. It implements
// ledger.Store and, for the backup worker, exposes per-record lookup
// and backup-state tracking. SQLite serializes writers, which gives
// Append the whole-ledger mutual exclusion the ledger contract asks
// for.
type SQLiteStore struct {
	db *sql.DB
}

func NewSQLiteStore(dbPath string) (*SQLiteStore, error) {
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

	return &SQLiteStore{db: db}, nil
}

func (s *SQLiteStore) Close() error {
	if s.db != nil {
		return s.db.Close()
	}
	return nil
}

// Append implements ledger.Store. The single INSERT is the atomic
// append primitive; there is no read-modify-write cycle to race.
func (s *SQLiteStore) Append(ctx context.Context, rec core.ExpenseRecord) (string, error) {
	if err := rec.Validate(); err != nil {
		return "", err
	}

	res, err := s.db.ExecContext(ctx,
		`INSERT INTO gastos (user_id, amount_cents, category, spent_on) VALUES (?, ?, ?, ?)`,
		rec.User, rec.Amount.Cents, rec.Category, rec.Date.ISO())
	if err != nil {
		return "", fmt.Errorf("insert record: %w", err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return "", fmt.Errorf("last insert id: %w", err)
	}

	slog.InfoContext(ctx, "Record saved to SQLite",
		"id", id,
		"user", rec.User,
		"amount_cents", rec.Amount.Cents,
		"category", rec.Category,
		"spent_on", rec.Date.ISO())

	return strconv.FormatInt(id, 10), nil
}

// ReadAll implements ledger.Store, returning the full ledger in
// insertion order.
func (s *SQLiteStore) ReadAll(ctx context.Context) ([]core.ExpenseRecord, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT user_id, amount_cents, category, spent_on FROM gastos ORDER BY id`)
	if err != nil {
		return nil, fmt.Errorf("select records: %w", err)
	}
	defer rows.Close()

	var out []core.ExpenseRecord
	for rows.Next() {
		rec, err := scanRecord(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate records: %w", err)
	}
	return out, nil
}

// GetRecord retrieves a single record by its ledger reference.
func (s *SQLiteStore) GetRecord(ctx context.Context, id int64) (core.ExpenseRecord, error) {
	row := s.db.QueryRowContext(ctx,
		`SELECT user_id, amount_cents, category, spent_on FROM gastos WHERE id = ?`, id)
	rec, err := scanRecord(row)
	if err != nil {
		return core.ExpenseRecord{}, fmt.Errorf("get record %d: %w", id, err)
	}
	return rec, nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanRecord(r rowScanner) (core.ExpenseRecord, error) {
	var (
		user     string
		cents    int64
		category string
		spentOn  string
	)
	if err := r.Scan(&user, &cents, &category, &spentOn); err != nil {
		return core.ExpenseRecord{}, fmt.Errorf("scan record: %w", err)
	}
	d, err := time.Parse("2006-01-02", spentOn)
	if err != nil {
		return core.ExpenseRecord{}, fmt.Errorf("parse spent_on %q: %w", spentOn, err)
	}
	return core.ExpenseRecord{
		User:     user,
		Amount:   core.Money{Cents: cents},
		Category: category,
		Date:     core.DateOf(d),
	}, nil
}

// PendingBackup identifies a record awaiting spreadsheet backup.
type PendingBackup struct {
	ID        int64
	Version   int64
	CreatedAt time.Time
}

// PendingBackups returns up to limit records not yet backed up, oldest
// first, so the worker can sweep records whose queue message was lost.
func (s *SQLiteStore) PendingBackups(ctx context.Context, limit int) ([]PendingBackup, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT id, version, created_at FROM gastos WHERE backup_state IN ('pending', 'error') ORDER BY id LIMIT ?`,
		limit)
	if err != nil {
		return nil, fmt.Errorf("select pending backups: %w", err)
	}
	defer rows.Close()

	var out []PendingBackup
	for rows.Next() {
		var p PendingBackup
		if err := rows.Scan(&p.ID, &p.Version, &p.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan pending backup: %w", err)
		}
		out = append(out, p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate pending backups: %w", err)
	}
	return out, nil
}

// MarkBackedUp marks a record as successfully copied to the backup
// spreadsheet.
func (s *SQLiteStore) MarkBackedUp(ctx context.Context, id int64) error {
	if _, err := s.db.ExecContext(ctx,
		`UPDATE gastos SET backup_state = 'done' WHERE id = ?`, id); err != nil {
		return fmt.Errorf("mark backed up: %w", err)
	}
	slog.InfoContext(ctx, "Record marked as backed up", "id", id)
	return nil
}

// MarkBackupError records a failed backup attempt. The record stays in
// error state until the sweep retries it.
func (s *SQLiteStore) MarkBackupError(ctx context.Context, id int64) error {
	if _, err := s.db.ExecContext(ctx,
		`UPDATE gastos SET backup_state = 'error', backup_attempts = backup_attempts + 1 WHERE id = ?`, id); err != nil {
		return fmt.Errorf("mark backup error: %w", err)
	}
	slog.WarnContext(ctx, "Record marked with backup error", "id", id)
	return nil
}
