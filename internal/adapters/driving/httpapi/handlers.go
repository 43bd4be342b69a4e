package httpapi

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	"github.com/custodia-labs/kbchat/internal/core/domain"
	"github.com/custodia-labs/kbchat/internal/core/ports/driven"
	"github.com/custodia-labs/kbchat/internal/logger"
)

// maxBodyBytes caps request bodies.
const maxBodyBytes = 1 << 20

type healthResponse struct {
	OK              bool                 `json:"ok"`
	Model           string               `json:"model"`
	BaseURL         string               `json:"baseUrl"`
	KBFiles         int                  `json:"kb_files"`
	TopK            int                  `json:"top_k"`
	StrictThreshold int                  `json:"strict_threshold"`
	IndexVersion    uint64               `json:"index_version"`
	Memory          domain.MemorySummary `json:"memory"`
}

type reindexResponse struct {
	OK     bool `json:"ok"`
	Chunks int  `json:"chunks"`
}

type resetResponse struct {
	OK     bool               `json:"ok"`
	Memory domain.MemoryState `json:"memory"`
}

type errorResponse struct {
	Error  string `json:"error"`
	Detail any    `json:"detail,omitempty"`
}

func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	stats := s.ports.Knowledge.Stats()
	writeJSON(w, http.StatusOK, healthResponse{
		OK:              true,
		Model:           s.info.Model,
		BaseURL:         s.info.BaseURL,
		KBFiles:         stats.Files,
		TopK:            s.info.TopK,
		StrictThreshold: s.info.StrictThreshold,
		IndexVersion:    stats.Version,
		Memory:          s.ports.Memory.Memory().Summary(),
	})
}

func (s *Server) handleReindex(w http.ResponseWriter, r *http.Request) {
	stats, err := s.ports.Knowledge.Reindex(r.Context())
	if err != nil {
		logger.Error("reindex: %v", err)
		writeJSON(w, http.StatusInternalServerError, errorResponse{Error: "reindex failed", Detail: err.Error()})
		return
	}
	writeJSON(w, http.StatusOK, reindexResponse{OK: true, Chunks: stats.Files})
}

func (s *Server) handleDebugContext(w http.ResponseWriter, r *http.Request) {
	q := strings.TrimSpace(r.URL.Query().Get("q"))
	if q == "" {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "q required"})
		return
	}
	writeJSON(w, http.StatusOK, s.ports.Knowledge.Debug(q, s.info.TopK))
}

func (s *Server) handleMemory(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, s.ports.Memory.Memory())
}

func (s *Server) handleMemoryReset(w http.ResponseWriter, r *http.Request) {
	state, err := s.ports.Memory.ResetMemory(r.Context())
	if err != nil {
		logger.Error("memory reset: %v", err)
		writeJSON(w, http.StatusInternalServerError, errorResponse{Error: "memory reset failed", Detail: err.Error()})
		return
	}
	writeJSON(w, http.StatusOK, resetResponse{OK: true, Memory: state})
}

func (s *Server) handleChat(w http.ResponseWriter, r *http.Request) {
	var req domain.ChatRequest
	body := http.MaxBytesReader(w, r.Body, maxBodyBytes)
	if err := json.NewDecoder(body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "invalid JSON body"})
		return
	}

	reply, err := s.ports.Chat.Chat(r.Context(), req)
	switch {
	case err == nil:
		writeJSON(w, http.StatusOK, reply)
	case errors.Is(err, domain.ErrEmptyMessage):
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: domain.ErrEmptyMessage.Error()})
	case errors.Is(err, domain.ErrLLMRequest):
		writeJSON(w, http.StatusInternalServerError, errorResponse{
			Error:  domain.ErrLLMRequest.Error(),
			Detail: errorDetail(err),
		})
	default:
		logger.Error("chat: %v", err)
		writeJSON(w, http.StatusInternalServerError, errorResponse{Error: "internal error", Detail: err.Error()})
	}
}

// errorDetail returns the model service's own response when there is one,
// otherwise the error text.
func errorDetail(err error) any {
	var ce *driven.CompletionError
	if errors.As(err, &ce) && ce.Detail != nil {
		return ce.Detail
	}
	return err.Error()
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		logger.Warn("write response: %v", err)
	}
}
