// Package chi implements the HTTP API on the chi router.
package chi

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"github.com/cardwise/cardwise/internal/domain"
	"github.com/cardwise/cardwise/internal/domain/card"
	sess "github.com/cardwise/cardwise/internal/domain/session"
	advisoruc "github.com/cardwise/cardwise/internal/usecase/advisor"
	retrievaluc "github.com/cardwise/cardwise/internal/usecase/retrieval"
	sessionuc "github.com/cardwise/cardwise/internal/usecase/session"
)

const (
	maxSuggestions = 6
	maxUploadBytes = 10 << 20
)

// quickPrompts are the predefined starters shown in the UI.
var quickPrompts = []string{
	"Recommend an SBI cashback card under ₹1000 with lounge access",
	"Compare HDFC Millennia vs SBI SimplyCLICK",
	"I'm a student with no credit history",
	"Self-employed, ₹80k/month, CIBIL 760 — premium options?",
	"Best fuel + groceries card under ₹500 fee",
}

// DatasetSwapper points retrieval at a newly uploaded dataset file.
type DatasetSwapper interface {
	Swap(path string)
}

// Server implements the HTTP API.
type Server struct {
	advisor    *advisoruc.Service
	sessions   *sessionuc.Service
	retrieval  *retrievaluc.Service
	dataset    DatasetSwapper
	llm        domain.Completer
	web        domain.WebSearcher
	uploadsDir string
	logger     *zap.Logger
}

// NewServer creates an HTTP API server.
func NewServer(
	advisor *advisoruc.Service,
	sessions *sessionuc.Service,
	retrieval *retrievaluc.Service,
	dataset DatasetSwapper,
	llm domain.Completer,
	web domain.WebSearcher,
	uploadsDir string,
	logger *zap.Logger,
) *Server {
	if uploadsDir == "" {
		uploadsDir = "uploads"
	}
	return &Server{
		advisor:    advisor,
		sessions:   sessions,
		retrieval:  retrieval,
		dataset:    dataset,
		llm:        llm,
		web:        web,
		uploadsDir: uploadsDir,
		logger:     logger,
	}
}

// Register mounts all API routes on r.
func (s *Server) Register(r chi.Router) {
	r.Post("/api/chat", s.Chat)
	r.Get("/api/health", s.Health)
	r.Get("/api/llm_diag", s.LLMDiag)
	r.Get("/api/prompts", s.Prompts)
	r.Get("/api/history/{session_id}", s.History)
	r.Delete("/api/history/{session_id}", s.ClearHistory)
	r.Post("/api/upload", s.Upload)
	r.Get("/metrics", s.Metrics)
}

type chatRequest struct {
	Message   string `json:"message"`
	SessionID string `json:"session_id"`
}

type chatResponse struct {
	SessionID   string        `json:"session_id"`
	Answer      string        `json:"answer"`
	Suggestions []string      `json:"suggestions"`
	Profile     sess.Profile  `json:"profile"`
	Cards       []card.Record `json:"cards"`
}

// Chat handles POST /api/chat.
func (s *Server) Chat(w http.ResponseWriter, r *http.Request) {
	var req chatRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "bad_request", "Invalid request body: "+err.Error())
		return
	}

	ctx := r.Context()
	sid, state, err := s.sessions.GetOrCreate(ctx, req.SessionID)
	if err != nil {
		s.handleDomainError(w, err)
		return
	}

	ans, err := s.advisor.Answer(ctx, req.Message, &state.Profile)
	if err != nil {
		s.handleDomainError(w, err)
		return
	}

	state.Chat = append(state.Chat,
		sess.NewMessage("user", req.Message),
		sess.NewMessage("assistant", ans.Text),
	)
	state.LastCards = ans.Cards
	if err := s.sessions.Save(ctx, sid, state); err != nil {
		s.handleDomainError(w, err)
		return
	}

	suggestions := ans.Suggestions
	if len(suggestions) > maxSuggestions {
		suggestions = suggestions[:maxSuggestions]
	}
	if suggestions == nil {
		suggestions = []string{}
	}
	cards := ans.Cards
	if cards == nil {
		cards = []card.Record{}
	}

	writeJSON(w, http.StatusOK, chatResponse{
		SessionID:   sid,
		Answer:      ans.Text,
		Suggestions: suggestions,
		Profile:     state.Profile,
		Cards:       cards,
	})
}

// Health handles GET /api/health.
func (s *Server) Health(w http.ResponseWriter, r *http.Request) {
	rows, err := s.retrieval.Rows(r.Context())
	if err != nil {
		s.logger.Warn("dataset row count failed", zap.Error(err))
		rows = 0
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"ok":           true,
		"openai":       s.llm != nil && s.llm.Enabled(),
		"tavily":       s.web != nil && s.web.Enabled(),
		"dataset_rows": rows,
	})
}

// LLMDiag handles GET /api/llm_diag: a live round-trip connectivity
// check against the completion provider.
func (s *Server) LLMDiag(w http.ResponseWriter, r *http.Request) {
	hasKey := s.llm != nil && s.llm.Enabled()

	var response, errMsg string
	if hasKey {
		out, err := s.llm.Complete(r.Context(), "Reply with just: OK", 0, 3)
		if err != nil {
			errMsg = err.Error()
		} else {
			response = out
		}
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"has_key":  hasKey,
		"response": response,
		"ok":       hasKey && strings.TrimSpace(response) != "",
		"error":    errMsg,
	})
}

// Prompts handles GET /api/prompts.
func (s *Server) Prompts(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]any{"prompts": quickPrompts})
}

// History handles GET /api/history/{session_id}.
func (s *Server) History(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "session_id")
	sid, state, err := s.sessions.GetOrCreate(r.Context(), id)
	if err != nil {
		s.handleDomainError(w, err)
		return
	}
	chat := state.Chat
	if chat == nil {
		chat = []sess.Message{}
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"session_id": sid,
		"chat":       chat,
		"profile":    state.Profile,
	})
}

// ClearHistory handles DELETE /api/history/{session_id}.
func (s *Server) ClearHistory(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "session_id")
	if err := s.sessions.Reset(r.Context(), id); err != nil {
		s.handleDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"ok": true, "session_id": id})
}

// Upload handles POST /api/upload: stores the CSV and reindexes.
func (s *Server) Upload(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseMultipartForm(maxUploadBytes); err != nil {
		writeError(w, http.StatusBadRequest, "bad_request", "Invalid multipart form: "+err.Error())
		return
	}
	file, header, err := r.FormFile("file")
	if err != nil {
		writeError(w, http.StatusBadRequest, "bad_request", "Missing file field")
		return
	}
	defer file.Close()

	if !strings.HasSuffix(strings.ToLower(header.Filename), ".csv") {
		writeError(w, http.StatusBadRequest, "bad_request", "Only CSV files are accepted")
		return
	}

	if err := os.MkdirAll(s.uploadsDir, 0o755); err != nil {
		s.logger.Error("create uploads dir", zap.Error(err))
		writeError(w, http.StatusInternalServerError, "internal_error", "internal error")
		return
	}
	dest := filepath.Join(s.uploadsDir, fmt.Sprintf("cards_%s.csv", strings.ReplaceAll(uuid.NewString(), "-", "")[:8]))

	out, err := os.Create(dest)
	if err != nil {
		s.logger.Error("create upload file", zap.Error(err))
		writeError(w, http.StatusInternalServerError, "internal_error", "internal error")
		return
	}
	if _, err := io.Copy(out, file); err != nil {
		out.Close()
		s.logger.Error("write upload file", zap.Error(err))
		writeError(w, http.StatusInternalServerError, "internal_error", "internal error")
		return
	}
	out.Close()

	s.dataset.Swap(dest)
	if err := s.retrieval.Reindex(r.Context()); err != nil {
		writeError(w, http.StatusBadRequest, "invalid_dataset", "Failed to index dataset: "+err.Error())
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"ok":      true,
		"message": "Dataset uploaded & indexed",
		"path":    dest,
	})
}

// Metrics handles GET /metrics.
func (s *Server) Metrics(w http.ResponseWriter, r *http.Request) {
	promhttp.Handler().ServeHTTP(w, r)
}

type errorResponse struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, code, message string) {
	writeJSON(w, status, errorResponse{Code: code, Message: message})
}

func (s *Server) handleDomainError(w http.ResponseWriter, err error) {
	s.logger.Warn("domain error", zap.Error(err))
	switch {
	case errors.Is(err, domain.ErrInvalidQuery):
		writeError(w, http.StatusBadRequest, "invalid_query", domain.ErrInvalidQuery.Error())
	case errors.Is(err, domain.ErrSessionNotFound):
		writeError(w, http.StatusNotFound, "session_not_found", domain.ErrSessionNotFound.Error())
	case errors.Is(err, domain.ErrInvalidDataset):
		writeError(w, http.StatusBadRequest, "invalid_dataset", domain.ErrInvalidDataset.Error())
	case errors.Is(err, domain.ErrLLMUnavailable):
		writeError(w, http.StatusBadGateway, "llm_unavailable", domain.ErrLLMUnavailable.Error())
	default:
		s.logger.Error("internal error", zap.Error(err))
		writeError(w, http.StatusInternalServerError, "internal_error", "internal error")
	}
}
