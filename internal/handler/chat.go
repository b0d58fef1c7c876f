// Package handler provides HTTP handlers for the API.
package handler

import (
	"context"
	"encoding/json"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"github.com/furnish-labs/inventory-agent/internal/middleware"
	"github.com/furnish-labs/inventory-agent/internal/model"
	"github.com/furnish-labs/inventory-agent/pkg/logger"
	"github.com/furnish-labs/inventory-agent/pkg/metrics"
)

// Agent answers a user message within a conversation thread.
type Agent interface {
	Ask(ctx context.Context, threadID, message string) (string, error)
}

// ChatHandler handles the conversation endpoints.
type ChatHandler struct {
	agent  Agent
	logger *logger.Logger
}

// NewChatHandler creates a new chat handler.
func NewChatHandler(agent Agent, log *logger.Logger) *ChatHandler {
	return &ChatHandler{
		agent:  agent,
		logger: log,
	}
}

// newThreadID mints a thread identifier from the current time.
func newThreadID() string {
	return strconv.FormatInt(time.Now().UnixNano(), 10)
}

// Start handles POST /chat: it begins a new conversation under a freshly
// minted thread identifier.
func (h *ChatHandler) Start(w http.ResponseWriter, r *http.Request) {
	var req model.ChatRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Valid message is required")
		return
	}

	message, ok := req.MessageString()
	if !ok {
		writeError(w, http.StatusBadRequest, "Valid message is required")
		return
	}

	threadID := newThreadID()
	h.logger.Info("new conversation",
		zap.String("thread_id", threadID),
		zap.String("correlation_id", middleware.GetCorrelationID(r.Context())),
	)

	start := time.Now()
	response, err := h.agent.Ask(r.Context(), threadID, message)
	if err != nil {
		h.logger.Error("error starting conversation", zap.String("thread_id", threadID), zap.Error(err))
		metrics.RecordChat("start", "error", time.Since(start).Seconds())
		writeError(w, http.StatusInternalServerError, "Internal Server Error")
		return
	}
	metrics.RecordChat("start", "success", time.Since(start).Seconds())

	writeJSON(w, http.StatusOK, model.ChatResponse{
		ThreadID: threadID,
		Response: response,
		Status:   model.StatusSuccess,
	})
}

// Continue handles POST /chat/{threadId}: it forwards a message into an
// existing conversation thread.
func (h *ChatHandler) Continue(w http.ResponseWriter, r *http.Request) {
	threadID := chi.URLParam(r, "threadId")
	if threadID == "" {
		writeError(w, http.StatusBadRequest, "Thread ID is required")
		return
	}

	var req model.ChatRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Message is required")
		return
	}

	message, ok := req.MessageString()
	if !ok {
		writeError(w, http.StatusBadRequest, "Message is required")
		return
	}

	start := time.Now()
	response, err := h.agent.Ask(r.Context(), threadID, message)
	if err != nil {
		h.logger.Error("error in chat", zap.String("thread_id", threadID), zap.Error(err))
		metrics.RecordChat("continue", "error", time.Since(start).Seconds())
		writeError(w, http.StatusInternalServerError, "Internal Server Error")
		return
	}
	metrics.RecordChat("continue", "success", time.Since(start).Seconds())

	writeJSON(w, http.StatusOK, model.ChatResponse{
		ThreadID: threadID,
		Response: response,
		Status:   model.StatusSuccess,
	})
}

// Banner handles GET /: a plain-text landing banner.
func (h *ChatHandler) Banner(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	w.Write([]byte("Inventory Agent Server"))
}
