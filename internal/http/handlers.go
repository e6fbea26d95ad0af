package http

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"time"

	"gastozap/internal/core"
)

const maxWebhookBody = 64 << 10 // 64KB

func (s *Server) handleWebhook(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		w.Header().Set("Allow", "POST")
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}

	body, err := io.ReadAll(io.LimitReader(r.Body, maxWebhookBody))
	if err != nil {
		slog.ErrorContext(r.Context(), "Read webhook body error",
			"component", "http", "error", err)
		w.WriteHeader(http.StatusBadRequest)
		return
	}

	inbound, err := ParseWebhookPayload(body)
	if err != nil {
		slog.ErrorContext(r.Context(), "Malformed webhook payload",
			"component", "http", "error", err)
		w.WriteHeader(http.StatusBadRequest)
		return
	}

	if inbound.User == "" {
		// Protocol defect from the provider side; never reaches the core.
		slog.WarnContext(r.Context(), "Webhook without resolvable sender",
			"component", "http")
		w.WriteHeader(http.StatusBadRequest)
		return
	}

	slog.InfoContext(r.Context(), "Webhook message received",
		"component", "http",
		"user", inbound.User)

	result, err := s.svc.Handle(r.Context(), inbound.User, inbound.Text)
	if err != nil {
		if errors.Is(err, core.ErrMissingUser) {
			w.WriteHeader(http.StatusBadRequest)
			return
		}
		// Storage failure: distinct from an empty ledger, surfaced to
		// the operator rather than rendered as "no records".
		slog.ErrorContext(r.Context(), "Message handling failed",
			"component", "http",
			"user", inbound.User,
			"error", err)
		w.WriteHeader(http.StatusInternalServerError)
		return
	}

	s.deliverReply(r, inbound.User, result.Reply)
	w.WriteHeader(http.StatusOK)
}

// deliverReply sends the reply and logs failures. The ledger mutation
// is already committed; a lost confirmation never rolls it back.
func (s *Server) deliverReply(r *http.Request, user, reply string) {
	if s.sender == nil {
		slog.WarnContext(r.Context(), "No sender configured, reply not delivered",
			"component", "http", "user", user)
		return
	}
	if err := s.sender.Send(r.Context(), user, reply); err != nil {
		slog.ErrorContext(r.Context(), "Failed to deliver reply",
			"component", "zapi",
			"operation", "send",
			"user", user,
			"error", err)
		return
	}
	slog.InfoContext(r.Context(), "Reply delivered",
		"component", "zapi", "user", user)
}

// handleBackup streams the full ledger as a JSON attachment.
func (s *Server) handleBackup(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		w.Header().Set("Allow", "GET")
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}

	records, err := s.store.ReadAll(r.Context())
	if err != nil {
		slog.ErrorContext(r.Context(), "Backup read failed",
			"component", "http", "error", err)
		http.Error(w, "Erro ao gerar backup.", http.StatusInternalServerError)
		return
	}

	type backupRecord struct {
		Usuario   string  `json:"usuario"`
		Valor     float64 `json:"valor"`
		Categoria string  `json:"categoria"`
		Data      string  `json:"data"`
	}
	out := make([]backupRecord, len(records))
	for i, rec := range records {
		out[i] = backupRecord{
			Usuario:   rec.User,
			Valor:     float64(rec.Amount.Cents) / 100.0,
			Categoria: rec.Category,
			Data:      rec.Date.ISO(),
		}
	}

	data, err := json.MarshalIndent(out, "", "  ")
	if err != nil {
		http.Error(w, "Erro ao gerar backup.", http.StatusInternalServerError)
		return
	}

	filename := fmt.Sprintf("gastos-backup-%d.json", time.Now().UnixMilli())
	w.Header().Set("Content-Type", "application/json")
	w.Header().Set("Content-Disposition", `attachment; filename="`+filename+`"`)
	_, _ = w.Write(data)
}

func (s *Server) handleIndex(w http.ResponseWriter, r *http.Request) {
	if r.URL.Path != "/" {
		http.NotFound(w, r)
		return
	}
	_, _ = w.Write([]byte("🚀 API gastozap está rodando com sucesso!"))
}

func handleHealth(w http.ResponseWriter, _ *http.Request) {
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte("ok"))
}

func handleReady(w http.ResponseWriter, _ *http.Request) {
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte("ready"))
}
