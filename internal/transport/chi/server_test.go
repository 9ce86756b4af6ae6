package chi

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	datasetrepo "github.com/cardwise/cardwise/internal/repository/dataset"
	sessionrepo "github.com/cardwise/cardwise/internal/repository/session"
	advisoruc "github.com/cardwise/cardwise/internal/usecase/advisor"
	retrievaluc "github.com/cardwise/cardwise/internal/usecase/retrieval"
	sessionuc "github.com/cardwise/cardwise/internal/usecase/session"
)

const testCSV = `Card Name,Bank Name,Card Type,Annual Fee,Key Benefits,Description,Tags
SimplyCLICK,SBI,Shopping,499,10X rewards on online spends,Online shopping card,online shopping
Millennia,HDFC,Cashback,"1,000",5% cashback on Amazon,Cashback card for online spends,cashback online
`

func newTestServer(t *testing.T) (*Server, *datasetrepo.Repository) {
	t.Helper()

	dir := t.TempDir()
	path := filepath.Join(dir, "cards.csv")
	if err := os.WriteFile(path, []byte(testCSV), 0o644); err != nil {
		t.Fatal(err)
	}

	repo := datasetrepo.New(path)
	retrieval := retrievaluc.New(repo, retrievaluc.NewCache())
	advisor := advisoruc.New(retrieval, nil, nil, 10)
	sessions := sessionuc.NewService(sessionrepo.NewMemoryStore())

	return NewServer(advisor, sessions, retrieval, repo, nil, nil,
		filepath.Join(dir, "uploads"), zap.NewNop()), repo
}

func newTestRouter(t *testing.T) *chi.Mux {
	t.Helper()
	srv, _ := newTestServer(t)
	r := chi.NewRouter()
	srv.Register(r)
	return r
}

func doJSON(t *testing.T, r http.Handler, method, target string, body any) (*httptest.ResponseRecorder, map[string]any) {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		if err := json.NewEncoder(&buf).Encode(body); err != nil {
			t.Fatal(err)
		}
	}
	req := httptest.NewRequest(method, target, &buf)
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)

	var parsed map[string]any
	if rec.Body.Len() > 0 {
		if err := json.Unmarshal(rec.Body.Bytes(), &parsed); err != nil {
			t.Fatalf("invalid response JSON: %v: %s", err, rec.Body.String())
		}
	}
	return rec, parsed
}

func TestChat_NewSession(t *testing.T) {
	r := newTestRouter(t)

	rec, resp := doJSON(t, r, http.MethodPost, "/api/chat", map[string]string{"message": "hello"})
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d: %s", rec.Code, rec.Body.String())
	}
	sid, _ := resp["session_id"].(string)
	if sid == "" {
		t.Error("expected generated session id")
	}
	if answer, _ := resp["answer"].(string); answer == "" {
		t.Error("expected non-empty answer")
	}
}

func TestChat_HistoryPersists(t *testing.T) {
	r := newTestRouter(t)

	_, resp := doJSON(t, r, http.MethodPost, "/api/chat", map[string]string{"message": "hello"})
	sid := resp["session_id"].(string)

	doJSON(t, r, http.MethodPost, "/api/chat", map[string]string{
		"message": "best cashback card", "session_id": sid,
	})

	rec, hist := doJSON(t, r, http.MethodGet, "/api/history/"+sid, nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d", rec.Code)
	}
	chat, _ := hist["chat"].([]any)
	if len(chat) != 4 {
		t.Errorf("chat turns = %d, want 4", len(chat))
	}
}

func TestChat_InvalidBody(t *testing.T) {
	r := newTestRouter(t)
	req := httptest.NewRequest(http.MethodPost, "/api/chat", strings.NewReader("{not json"))
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)
	if rec.Code != http.StatusBadRequest {
		t.Errorf("status = %d", rec.Code)
	}
}

func TestChat_EmptyMessage(t *testing.T) {
	r := newTestRouter(t)
	rec, resp := doJSON(t, r, http.MethodPost, "/api/chat", map[string]string{"message": "  "})
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("status = %d", rec.Code)
	}
	if code, _ := resp["code"].(string); code != "invalid_query" {
		t.Errorf("code = %q", code)
	}
}

func TestHealth(t *testing.T) {
	r := newTestRouter(t)
	rec, resp := doJSON(t, r, http.MethodGet, "/api/health", nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d", rec.Code)
	}
	if ok, _ := resp["ok"].(bool); !ok {
		t.Error("expected ok")
	}
	if rows, _ := resp["dataset_rows"].(float64); rows != 2 {
		t.Errorf("dataset_rows = %v", resp["dataset_rows"])
	}
	if openai, _ := resp["openai"].(bool); openai {
		t.Error("openai should be disabled")
	}
}

type stubCompleter struct {
	enabled bool
	reply   string
	err     error
}

func (c *stubCompleter) Enabled() bool { return c.enabled }

func (c *stubCompleter) Complete(_ context.Context, _ string, _ float32, _ int) (string, error) {
	return c.reply, c.err
}

func TestLLMDiag_NoKey(t *testing.T) {
	r := newTestRouter(t)
	rec, resp := doJSON(t, r, http.MethodGet, "/api/llm_diag", nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d", rec.Code)
	}
	if hasKey, _ := resp["has_key"].(bool); hasKey {
		t.Error("has_key should be false without a provider")
	}
	if ok, _ := resp["ok"].(bool); ok {
		t.Error("ok should be false without a provider")
	}
}

func TestLLMDiag_RoundTrip(t *testing.T) {
	srv, _ := newTestServer(t)
	srv.llm = &stubCompleter{enabled: true, reply: "OK"}
	r := chi.NewRouter()
	srv.Register(r)

	_, resp := doJSON(t, r, http.MethodGet, "/api/llm_diag", nil)
	if ok, _ := resp["ok"].(bool); !ok {
		t.Errorf("ok = false: %v", resp)
	}
	if got, _ := resp["response"].(string); got != "OK" {
		t.Errorf("response = %q", got)
	}
}

func TestLLMDiag_ReportsError(t *testing.T) {
	srv, _ := newTestServer(t)
	srv.llm = &stubCompleter{enabled: true, err: errors.New("model rejected")}
	r := chi.NewRouter()
	srv.Register(r)

	_, resp := doJSON(t, r, http.MethodGet, "/api/llm_diag", nil)
	if ok, _ := resp["ok"].(bool); ok {
		t.Error("ok should be false on provider error")
	}
	if msg, _ := resp["error"].(string); msg != "model rejected" {
		t.Errorf("error = %q", msg)
	}
}

func TestPrompts(t *testing.T) {
	r := newTestRouter(t)
	rec, resp := doJSON(t, r, http.MethodGet, "/api/prompts", nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d", rec.Code)
	}
	prompts, _ := resp["prompts"].([]any)
	if len(prompts) == 0 {
		t.Error("expected prompts")
	}
}

func TestClearHistory(t *testing.T) {
	r := newTestRouter(t)

	_, resp := doJSON(t, r, http.MethodPost, "/api/chat", map[string]string{"message": "hello"})
	sid := resp["session_id"].(string)

	rec, _ := doJSON(t, r, http.MethodDelete, "/api/history/"+sid, nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d", rec.Code)
	}

	_, hist := doJSON(t, r, http.MethodGet, "/api/history/"+sid, nil)
	chat, _ := hist["chat"].([]any)
	if len(chat) != 0 {
		t.Errorf("chat turns after clear = %d", len(chat))
	}
}

func uploadRequest(t *testing.T, filename, content string) *http.Request {
	t.Helper()
	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	fw, err := mw.CreateFormFile("file", filename)
	if err != nil {
		t.Fatal(err)
	}
	if _, err := fw.Write([]byte(content)); err != nil {
		t.Fatal(err)
	}
	mw.Close()

	req := httptest.NewRequest(http.MethodPost, "/api/upload", &buf)
	req.Header.Set("Content-Type", mw.FormDataContentType())
	return req
}

func TestUpload_SwapsDataset(t *testing.T) {
	srv, _ := newTestServer(t)
	r := chi.NewRouter()
	srv.Register(r)

	newCSV := "Card Name,Bank Name,Annual Fee\nCoral,ICICI,500\nAmaze,Axis,0\nPrime,SBI,2999\n"
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, uploadRequest(t, "cards.csv", newCSV))
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d: %s", rec.Code, rec.Body.String())
	}

	_, health := doJSON(t, r, http.MethodGet, "/api/health", nil)
	if rows, _ := health["dataset_rows"].(float64); rows != 3 {
		t.Errorf("dataset_rows after upload = %v", health["dataset_rows"])
	}
}

func TestUpload_RejectsNonCSV(t *testing.T) {
	r := newTestRouter(t)
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, uploadRequest(t, "cards.txt", "not a csv"))
	if rec.Code != http.StatusBadRequest {
		t.Errorf("status = %d", rec.Code)
	}
}
