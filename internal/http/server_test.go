package http

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"gastozap/internal/config"
	"gastozap/internal/core"
	"gastozap/internal/ledger"
	"gastozap/internal/ledger/memory"
	"gastozap/internal/services"
)

type fakeSender struct {
	phone, message string
	err            error
	calls          int
}

func (f *fakeSender) Send(_ context.Context, phone, message string) error {
	f.calls++
	f.phone = phone
	f.message = message
	return f.err
}

type failingStore struct{}

func (failingStore) ReadAll(context.Context) ([]core.ExpenseRecord, error) {
	return nil, errors.New("ledger unavailable")
}
func (failingStore) Append(context.Context, core.ExpenseRecord) (string, error) {
	return "", errors.New("ledger unavailable")
}

func newTestServer(store ledger.Store, sender Sender) *Server {
	classifier := core.NewClassifier(config.DefaultKeywordTable(), "Outros")
	svc := services.NewExpenseService(store, classifier, nil, time.Now)
	return NewServer(":0", svc, store, sender)
}

func postWebhook(t *testing.T, srv *Server, body string) *httptest.ResponseRecorder {
	t.Helper()
	rr := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/webhook", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	srv.Handler.ServeHTTP(rr, req)
	return rr
}

func TestWebhookRecordsExpenseAndReplies(t *testing.T) {
	store := memory.New()
	sender := &fakeSender{}
	srv := newTestServer(store, sender)
	defer srv.Shutdown(context.Background())

	rr := postWebhook(t, srv, `{"telefone":"5511999990000","texto":"gastei 25 no mercado"}`)
	if rr.Code != http.StatusOK {
		t.Fatalf("status = %d", rr.Code)
	}

	records, _ := store.ReadAll(context.Background())
	if len(records) != 1 {
		t.Fatalf("ledger has %d records", len(records))
	}
	if records[0].Category != "Mercado" || records[0].Amount.Cents != 2500 {
		t.Fatalf("record = %+v", records[0])
	}

	if sender.calls != 1 || sender.phone != "5511999990000" {
		t.Fatalf("sender = %+v", sender)
	}
	if !strings.Contains(sender.message, "Gasto registrado") {
		t.Fatalf("reply = %q", sender.message)
	}
}

func TestWebhookNestedTextObject(t *testing.T) {
	store := memory.New()
	sender := &fakeSender{}
	srv := newTestServer(store, sender)
	defer srv.Shutdown(context.Background())

	rr := postWebhook(t, srv, `{"from":"551188887777","texto":{"message":"relatório semanal"}}`)
	if rr.Code != http.StatusOK {
		t.Fatalf("status = %d", rr.Code)
	}
	if !strings.Contains(sender.message, "Nenhum gasto registrado entre domingo e hoje") {
		t.Fatalf("reply = %q", sender.message)
	}
}

func TestWebhookMissingPhoneIsRejected(t *testing.T) {
	store := memory.New()
	srv := newTestServer(store, &fakeSender{})
	defer srv.Shutdown(context.Background())

	rr := postWebhook(t, srv, `{"texto":"gastei 25"}`)
	if rr.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400", rr.Code)
	}
	records, _ := store.ReadAll(context.Background())
	if len(records) != 0 {
		t.Fatal("rejected webhook must not mutate the ledger")
	}
}

func TestWebhookStoreFailureIsServerError(t *testing.T) {
	sender := &fakeSender{}
	srv := newTestServer(failingStore{}, sender)
	defer srv.Shutdown(context.Background())

	rr := postWebhook(t, srv, `{"telefone":"111","texto":"meu relatório"}`)
	if rr.Code != http.StatusInternalServerError {
		t.Fatalf("status = %d, want 500", rr.Code)
	}
	if sender.calls != 0 {
		t.Fatal("no reply should be sent when the ledger is unavailable")
	}
}

func TestWebhookDeliveryFailureKeepsCommit(t *testing.T) {
	store := memory.New()
	sender := &fakeSender{err: errors.New("provider down")}
	srv := newTestServer(store, sender)
	defer srv.Shutdown(context.Background())

	rr := postWebhook(t, srv, `{"telefone":"111","texto":"gastei 10 no mercado"}`)
	if rr.Code != http.StatusOK {
		t.Fatalf("status = %d: delivery failure must not fail the webhook", rr.Code)
	}
	records, _ := store.ReadAll(context.Background())
	if len(records) != 1 {
		t.Fatal("committed record must survive a delivery failure")
	}
}

func TestWebhookRejectsNonPost(t *testing.T) {
	srv := newTestServer(memory.New(), nil)
	defer srv.Shutdown(context.Background())

	rr := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/webhook", nil)
	srv.Handler.ServeHTTP(rr, req)
	if rr.Code != http.StatusMethodNotAllowed {
		t.Fatalf("status = %d", rr.Code)
	}
}

func TestBackupRoute(t *testing.T) {
	store := memory.New()
	_, _ = store.Append(context.Background(), core.ExpenseRecord{
		User:     "111",
		Amount:   core.Money{Cents: 2500},
		Category: "Mercado",
		Date:     core.DateOf(time.Now()),
	})
	srv := newTestServer(store, nil)
	defer srv.Shutdown(context.Background())

	rr := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/backup", nil)
	srv.Handler.ServeHTTP(rr, req)

	if rr.Code != http.StatusOK {
		t.Fatalf("status = %d", rr.Code)
	}
	if !strings.Contains(rr.Header().Get("Content-Disposition"), "gastos-backup-") {
		t.Fatalf("disposition = %q", rr.Header().Get("Content-Disposition"))
	}

	var out []map[string]any
	if err := json.Unmarshal(rr.Body.Bytes(), &out); err != nil {
		t.Fatalf("backup body not JSON: %v", err)
	}
	if len(out) != 1 || out[0]["usuario"] != "111" || out[0]["valor"] != 25.0 {
		t.Fatalf("backup = %+v", out)
	}
}

func TestIndexAndHealth(t *testing.T) {
	srv := newTestServer(memory.New(), nil)
	defer srv.Shutdown(context.Background())

	rr := httptest.NewRecorder()
	srv.Handler.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/", nil))
	if rr.Code != http.StatusOK || !strings.Contains(rr.Body.String(), "gastozap") {
		t.Fatalf("index: code=%d body=%q", rr.Code, rr.Body.String())
	}

	for _, path := range []string{"/healthz", "/readyz"} {
		rr := httptest.NewRecorder()
		srv.Handler.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, path, nil))
		if rr.Code != http.StatusOK {
			t.Fatalf("%s status = %d", path, rr.Code)
		}
	}
}
