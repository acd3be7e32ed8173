// README: Session inspection and "start new booking" reset.
package handlers

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"

	"foodiespot/internal/modules/session"
	"foodiespot/internal/types"
)

type Sessions interface {
	Get(ctx context.Context, id string) (*session.Session, error)
	Reset(ctx context.Context, id string) error
}

type SessionHandler struct {
	sessions Sessions
}

func NewSessionHandler(s Sessions) *SessionHandler {
	return &SessionHandler{sessions: s}
}

type sessionResp struct {
	SessionID     string              `json:"session_id"`
	State         types.DialogueState `json:"state"`
	Booking       types.BookingSlots  `json:"booking"`
	Summary       string              `json:"summary"`
	MissingFields []types.Field       `json:"missing_fields"`
	LastIntent    string              `json:"last_intent,omitempty"`
	History       []session.Turn      `json:"history"`
}

func newSessionResp(s *session.Session) sessionResp {
	history := s.History
	if history == nil {
		history = []session.Turn{}
	}
	missing := s.MissingFields()
	if missing == nil {
		missing = []types.Field{}
	}
	return sessionResp{
		SessionID:     s.ID,
		State:         s.State,
		Booking:       s.Booking,
		Summary:       s.Summary(),
		MissingFields: missing,
		LastIntent:    s.LastIntent,
		History:       history,
	}
}

// Get handles GET /api/sessions/:id.
func (h *SessionHandler) Get(c *gin.Context) {
	id := c.Param("id")
	if !isValidID(id) {
		writeError(c, http.StatusBadRequest, "invalid session id")
		return
	}
	s, err := h.sessions.Get(c.Request.Context(), id)
	if err != nil {
		writeSessionError(c, err)
		return
	}
	writeJSON(c, http.StatusOK, newSessionResp(s))
}

// Reset handles DELETE /api/sessions/:id: the partial booking and the last
// confirmed snapshot are dropped, history is kept.
func (h *SessionHandler) Reset(c *gin.Context) {
	id := c.Param("id")
	if !isValidID(id) {
		writeError(c, http.StatusBadRequest, "invalid session id")
		return
	}
	ctx := c.Request.Context()
	if _, err := h.sessions.Get(ctx, id); err != nil {
		writeSessionError(c, err)
		return
	}
	if err := h.sessions.Reset(ctx, id); err != nil {
		writeSessionError(c, err)
		return
	}
	s, err := h.sessions.Get(ctx, id)
	if err != nil {
		writeSessionError(c, err)
		return
	}
	writeJSON(c, http.StatusOK, newSessionResp(s))
}
