package handler

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"offplanbot/internal/model"
	"offplanbot/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
)

const (
	defaultHistoryLimit = 20
	maxHistoryLimit     = 100
)

// SearchHistory reads the search audit log
type SearchHistory interface {
	RecentSearches(ctx context.Context, sessionID string, limit int) ([]model.SearchLogRecord, error)
}

// ChatHandler handles chat session HTTP requests
type ChatHandler struct {
	chat     *service.ChatService
	sessions *service.Registry
	history  SearchHistory
}

// NewChatHandler creates a new chat handler. history may be nil when the audit log is disabled.
func NewChatHandler(chat *service.ChatService, sessions *service.Registry, history SearchHistory) *ChatHandler {
	return &ChatHandler{
		chat:     chat,
		sessions: sessions,
		history:  history,
	}
}

// CreateSession handles POST /api/v1/sessions
func (h *ChatHandler) CreateSession(c *gin.Context) {
	sess := h.chat.NewSession()
	h.sessions.Add(sess)
	h.chat.Start(sess, nil)

	logrus.WithField("session_id", sess.ID).Info("chat session started")
	c.JSON(http.StatusCreated, sess.Snapshot())
}

// GetSession handles GET /api/v1/sessions/:id
func (h *ChatHandler) GetSession(c *gin.Context) {
	sess, err := h.sessions.Get(c.Param("id"))
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, sess.Snapshot())
}

// DeleteSession handles DELETE /api/v1/sessions/:id
func (h *ChatHandler) DeleteSession(c *gin.Context) {
	if err := h.sessions.Delete(c.Param("id")); err != nil {
		writeError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// SendMessage handles POST /api/v1/sessions/:id/messages
func (h *ChatHandler) SendMessage(c *gin.Context) {
	var req model.TextRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request: " + err.Error()})
		return
	}

	h.runTurn(c, func(ctx context.Context, sess *service.Session) ([]model.Message, error) {
		return h.chat.HandleText(ctx, sess, req.Text, nil)
	})
}

// SelectOption handles POST /api/v1/sessions/:id/options
func (h *ChatHandler) SelectOption(c *gin.Context) {
	var req model.OptionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request: " + err.Error()})
		return
	}

	h.runTurn(c, func(ctx context.Context, sess *service.Session) ([]model.Message, error) {
		return h.chat.HandleOption(ctx, sess, req.Option, nil)
	})
}

func (h *ChatHandler) runTurn(c *gin.Context, handle func(ctx context.Context, sess *service.Session) ([]model.Message, error)) {
	startTime := time.Now()

	sess, err := h.sessions.Get(c.Param("id"))
	if err != nil {
		writeError(c, err)
		return
	}

	messages, err := handle(c.Request.Context(), sess)
	if err != nil {
		writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, model.TurnResponse{
		SessionID: sess.ID,
		Step:      sess.Step().String(),
		Messages:  messages,
		Took:      time.Since(startTime).Milliseconds(),
	})
}

// Stream handles POST /api/v1/sessions/:id/stream - SSE variant of messages/options.
// Each appended message is pushed as a "message" event, so the typing placeholder
// reaches the client before the backend search completes.
func (h *ChatHandler) Stream(c *gin.Context) {
	var req model.StreamRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request: " + err.Error()})
		return
	}
	if (req.Text == "") == (req.Option == "") {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request: exactly one of text or option is required"})
		return
	}

	sess, err := h.sessions.Get(c.Param("id"))
	if err != nil {
		writeError(c, err)
		return
	}

	// Set SSE headers
	c.Header("Content-Type", "text/event-stream; charset=utf-8")
	c.Header("Cache-Control", "no-cache, no-store, must-revalidate")
	c.Header("Connection", "keep-alive")
	c.Header("X-Accel-Buffering", "no")

	flusher, ok := c.Writer.(http.Flusher)
	if !ok {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Streaming not supported"})
		return
	}

	// the service emits while holding the session lock; writes happen on the queue's goroutine
	queue := newMessageQueue(func(msg model.Message) {
		sendSSE(c, "message", msg)
		flusher.Flush()
	})

	if req.Text != "" {
		_, err = h.chat.HandleText(c.Request.Context(), sess, req.Text, queue.Push)
	} else {
		_, err = h.chat.HandleOption(c.Request.Context(), sess, req.Option, queue.Push)
	}
	queue.Close()
	if err != nil {
		sendSSE(c, "error", map[string]any{"error": err.Error()})
		flusher.Flush()
		return
	}

	sendSSE(c, "done", map[string]any{"session_id": sess.ID, "step": sess.Step().String()})
	flusher.Flush()
}

// Searches handles GET /api/v1/sessions/:id/searches
func (h *ChatHandler) Searches(c *gin.Context) {
	if h.history == nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "Search history is disabled"})
		return
	}

	limit := defaultHistoryLimit
	if raw := c.Query("limit"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil || parsed <= 0 {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid limit"})
			return
		}
		limit = min(parsed, maxHistoryLimit)
	}

	records, err := h.history.RecentSearches(c.Request.Context(), c.Param("id"), limit)
	if err != nil {
		logrus.WithError(err).Error("failed to load search history")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load searches"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"session_id": c.Param("id"), "searches": records})
}

// writeError maps service errors onto status codes
func writeError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, service.ErrSessionNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": "Session not found"})
	case errors.Is(err, service.ErrSearchInFlight):
		c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
	case errors.Is(err, service.ErrEmptyInput):
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request: " + err.Error()})
	default:
		logrus.WithError(err).Error("chat request failed")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal error"})
	}
}

// sendSSE sends a Server-Sent Event
func sendSSE(c *gin.Context, event string, data any) {
	if data != nil {
		jsonData, err := json.Marshal(data)
		if err != nil {
			fmt.Fprintf(c.Writer, "event: error\ndata: {\"error\": \"JSON marshal failed\"}\n\n")
			return
		}
		fmt.Fprintf(c.Writer, "event: %s\ndata: %s\n\n", event, string(jsonData))
	} else {
		fmt.Fprintf(c.Writer, "event: %s\ndata: {}\n\n", event)
	}
}
