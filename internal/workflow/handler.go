package workflow

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"strings"

	"github.com/google/uuid"

	"github.com/conclave-hq/conclave/internal/sessions"
	"github.com/conclave-hq/conclave/pkg/handlers"
	"github.com/conclave-hq/conclave/pkg/routes"
)

// ErrEmptyContent indicates a message submission with no content.
var ErrEmptyContent = errors.New("message content required")

// Handler provides the HTTP endpoint that drives workflow steps.
type Handler struct {
	runtime *Runtime
	store   sessions.System
	logger  *slog.Logger
}

// NewHandler creates a Handler bound to the workflow runtime and session store.
func NewHandler(rt *Runtime, store sessions.System, logger *slog.Logger) *Handler {
	return &Handler{
		runtime: rt,
		store:   store,
		logger:  logger.With("handler", "workflow"),
	}
}

// Routes returns the route group definition for workflow endpoints.
func (h *Handler) Routes() routes.Group {
	return routes.Group{
		Routes: []routes.Route{
			{Method: "POST", Pattern: "/messages", Handler: h.Submit},
		},
	}
}

type messageRequest struct {
	SessionID string `json:"sessionId"`
	Content   string `json:"content"`
}

type messageResponse struct {
	SessionID uuid.UUID        `json:"sessionId"`
	Status    Status           `json:"status"`
	Events    []Event          `json:"events"`
	Summary   sessions.Summary `json:"summary"`
}

// Submit accepts a user message, resolves its session, and runs one workflow
// step while holding the session's step lock. Validation happens before
// session resolution so malformed requests never allocate sessions.
func (h *Handler) Submit(w http.ResponseWriter, r *http.Request) {
	var req messageRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		handlers.RespondError(w, h.logger, http.StatusBadRequest, err)
		return
	}

	content := strings.TrimSpace(req.Content)
	if content == "" {
		handlers.RespondError(w, h.logger, http.StatusBadRequest, ErrEmptyContent)
		return
	}

	session := h.store.GetOrCreate(req.SessionID)

	if err := h.store.Acquire(r.Context(), session.ID()); err != nil {
		handlers.RespondError(w, h.logger, http.StatusServiceUnavailable, err)
		return
	}
	defer h.store.Release(session.ID())

	result, err := Step(r.Context(), h.runtime, session, content)
	if err != nil {
		handlers.RespondError(w, h.logger, http.StatusInternalServerError, err)
		return
	}

	handlers.RespondJSON(w, http.StatusOK, messageResponse{
		SessionID: session.ID(),
		Status:    result.Status,
		Events:    result.Events,
		Summary:   session.Summarize(),
	})
}
