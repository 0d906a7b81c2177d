// Package handlers wires HTTP routes to the chat service.
package handlers

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/google/uuid"

	"github.com/seclens/seclens/internal/httputil"
	"github.com/seclens/seclens/internal/logging"
	"github.com/seclens/seclens/internal/models"
	"github.com/seclens/seclens/internal/service"
)

const (
	defaultCookieName = "seclens_session"
	defaultCookieAge  = 24 * time.Hour
	maxEventsPageSize = 50
)

// Handler serves the chat API.
type Handler struct {
	svc        *service.ChatService
	logger     *logging.Logger
	cookieName string
	cookieAge  time.Duration
}

// New creates a Handler with default session cookie settings.
func New(svc *service.ChatService, logger *logging.Logger) *Handler {
	return &Handler{
		svc:        svc,
		logger:     logger,
		cookieName: defaultCookieName,
		cookieAge:  defaultCookieAge,
	}
}

// WithSessionCookie overrides the session cookie name and lifetime.
func (h *Handler) WithSessionCookie(name string, maxAge time.Duration) *Handler {
	if name != "" {
		h.cookieName = name
	}
	if maxAge > 0 {
		h.cookieAge = maxAge
	}
	return h
}

// Chat handles POST /api/v1/chat.
func (h *Handler) Chat(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		h.methodNotAllowed(w, http.MethodPost)
		return
	}

	var req models.ChatRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httputil.WriteError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	sessionID := h.sessionID(w, r)

	resp, err := h.svc.Process(r.Context(), sessionID, req.Message)
	if err != nil {
		if errors.Is(err, service.ErrEmptyQuery) {
			httputil.WriteError(w, http.StatusBadRequest, "message must not be empty")
			return
		}
		h.logger.ErrorContext(r.Context(), "chat processing failed",
			logging.SessionID(sessionID), logging.Error(err))
		httputil.WriteError(w, http.StatusInternalServerError, "failed to process message")
		return
	}

	httputil.WriteJSON(w, http.StatusOK, resp)
}

// Conversations handles GET /api/v1/conversations.
func (h *Handler) Conversations(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		h.methodNotAllowed(w, http.MethodGet)
		return
	}

	sessionID := h.sessionID(w, r)
	turns, err := h.svc.History(r.Context(), sessionID)
	if err != nil {
		h.logger.ErrorContext(r.Context(), "failed to load conversations",
			logging.SessionID(sessionID), logging.Error(err))
		httputil.WriteError(w, http.StatusInternalServerError, "failed to load conversations")
		return
	}
	if turns == nil {
		turns = []models.Turn{}
	}

	httputil.WriteJSON(w, http.StatusOK, map[string]interface{}{
		"session_id":    sessionID,
		"conversations": turns,
	})
}

// Events handles GET /api/v1/events, returning a bounded sample of the dataset.
func (h *Handler) Events(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		h.methodNotAllowed(w, http.MethodGet)
		return
	}

	limit := maxEventsPageSize
	if v := r.URL.Query().Get("limit"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 && n <= maxEventsPageSize {
			limit = n
		}
	}

	events := h.svc.Events(limit)
	httputil.WriteJSON(w, http.StatusOK, map[string]interface{}{
		"events": events,
		"count":  len(events),
	})
}

// Health handles GET /healthz for liveness probes.
func (h *Handler) Health(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		h.methodNotAllowed(w, http.MethodGet)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// sessionID returns the session ID from the request cookie, minting a new
// cookie when absent.
func (h *Handler) sessionID(w http.ResponseWriter, r *http.Request) string {
	if c, err := r.Cookie(h.cookieName); err == nil && c.Value != "" {
		return c.Value
	}

	id := uuid.NewString()
	http.SetCookie(w, &http.Cookie{
		Name:     h.cookieName,
		Value:    id,
		Path:     "/",
		MaxAge:   int(h.cookieAge.Seconds()),
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})
	return id
}

func (h *Handler) methodNotAllowed(w http.ResponseWriter, allowed string) {
	w.Header().Set("Allow", allowed)
	httputil.WriteError(w, http.StatusMethodNotAllowed, "method not allowed")
}
