// Package services orchestrates message handling: intent routing,
// ledger mutation and report generation.
package services

import (
	"context"
	"fmt"
	"log/slog"
	"strconv"
	"strings"
	"time"

	"gastozap/internal/core"
	"gastozap/internal/ledger"
)

// BackupPublisher enqueues a ledger record for spreadsheet backup.
// The AMQP client satisfies it; a nil publisher disables backups.
type BackupPublisher interface {
	PublishRecordBackup(ctx context.Context, id, version int64) error
}

// Result is what the transport sends back to the user.
type Result struct {
	Reply   string
	Mutated bool
}

// ExpenseService wires the pure core components to the ledger and the
// backup queue. One instance serves all users.
type ExpenseService struct {
	store      ledger.Store
	classifier *core.Classifier
	publisher  BackupPublisher
	now        func() time.Time
}

// NewExpenseService builds the orchestrator. publisher may be nil.
// now may be nil, in which case the wall clock is used; tests inject a
// fixed instant.
func NewExpenseService(store ledger.Store, classifier *core.Classifier, publisher BackupPublisher, now func() time.Time) *ExpenseService {
	if now == nil {
		now = time.Now
	}
	return &ExpenseService{
		store:      store,
		classifier: classifier,
		publisher:  publisher,
		now:        now,
	}
}

// Handle processes one inbound message for one user and produces the
// reply text. Store failures come back as errors and are never
// mistaken for an empty ledger.
func (s *ExpenseService) Handle(ctx context.Context, user, rawText string) (Result, error) {
	if strings.TrimSpace(user) == "" {
		return Result{}, core.ErrMissingUser
	}

	// Normalized once; router, extractor and classifier all see the
	// same view of the message.
	msg := core.Normalize(rawText)
	intent := core.ClassifyIntent(msg)

	slog.InfoContext(ctx, "Message classified",
		"component", "expense_service",
		"user", user,
		"intent", intent.String())

	switch {
	case intent == core.RecordExpense:
		return s.recordExpense(ctx, user, msg)
	case intent.IsReport():
		return s.report(ctx, user, intent)
	default:
		return Result{Reply: replyUnrecognized}, nil
	}
}

func (s *ExpenseService) recordExpense(ctx context.Context, user, msg string) (Result, error) {
	amount, ok := core.ExtractAmount(msg)
	if !ok {
		// The router only picks RecordExpense when an amount parses,
		// so this is a safety net, not a normal path.
		return Result{Reply: replyParseFailure}, nil
	}

	rec := core.ExpenseRecord{
		User:     user,
		Amount:   amount,
		Category: s.classifier.Classify(msg),
		Date:     core.DateOf(s.now()),
	}

	ref, err := s.store.Append(ctx, rec)
	if err != nil {
		return Result{}, fmt.Errorf("append expense: %w", err)
	}

	slog.InfoContext(ctx, "Expense recorded",
		"component", "expense_service",
		"operation", "append",
		"user", user,
		"amount_cents", rec.Amount.Cents,
		"category", rec.Category,
		"spent_on", rec.Date.ISO(),
		"ref", ref)

	s.publishBackup(ctx, ref)

	return Result{Reply: replyRecorded(rec), Mutated: true}, nil
}

func (s *ExpenseService) report(ctx context.Context, user string, intent core.Intent) (Result, error) {
	records, err := s.store.ReadAll(ctx)
	if err != nil {
		return Result{}, fmt.Errorf("read ledger: %w", err)
	}

	mine := records[:0:0]
	for _, rec := range records {
		if rec.User == user {
			mine = append(mine, rec)
		}
	}

	window := core.WindowFor(intent, s.now())
	summary := core.Summarize(mine, window)

	slog.InfoContext(ctx, "Report generated",
		"component", "expense_service",
		"operation", "report",
		"user", user,
		"intent", intent.String(),
		"count", summary.Count,
		"total_cents", summary.Total.Cents)

	if summary.Count == 0 {
		return Result{Reply: emptyReportReply(intent)}, nil
	}
	return Result{Reply: summary.Render(reportKindLabel(intent))}, nil
}

// publishBackup enqueues the record for spreadsheet backup. A failure
// never affects the already-committed ledger mutation; it is logged
// and the periodic sweep catches the record later.
func (s *ExpenseService) publishBackup(ctx context.Context, ref string) {
	if s.publisher == nil {
		return
	}
	id, err := strconv.ParseInt(ref, 10, 64)
	if err != nil {
		// Non-numeric refs (memory backend) have no backup identity.
		slog.DebugContext(ctx, "Skipping backup publish for non-numeric ref", "ref", ref)
		return
	}
	if err := s.publisher.PublishRecordBackup(ctx, id, 1); err != nil {
		slog.ErrorContext(ctx, "Failed to publish backup message",
			"component", "expense_service",
			"id", id,
			"error", err)
	}
}
