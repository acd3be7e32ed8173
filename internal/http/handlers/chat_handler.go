// README: Chat handler; one POST is one dialogue turn.
package handlers

import (
	"context"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"

	"foodiespot/internal/modules/dialogue"
)

const turnTimeout = 10 * time.Second

type Dialogue interface {
	Process(ctx context.Context, message, sessionID string) (*dialogue.Reply, error)
}

type ChatHandler struct {
	dialogue Dialogue
}

func NewChatHandler(d Dialogue) *ChatHandler {
	return &ChatHandler{dialogue: d}
}

type chatReq struct {
	Message   string `json:"message"`
	SessionID string `json:"session_id"`
}

// Chat handles POST /api/chat.
func (h *ChatHandler) Chat(c *gin.Context) {
	var req chatReq
	if err := c.ShouldBindJSON(&req); err != nil {
		writeError(c, http.StatusBadRequest, "invalid json")
		return
	}
	req.SessionID = strings.TrimSpace(req.SessionID)
	if strings.TrimSpace(req.Message) == "" || req.SessionID == "" {
		writeError(c, http.StatusBadRequest, "missing message or session_id")
		return
	}
	if !isValidID(req.SessionID) {
		writeError(c, http.StatusBadRequest, "invalid session_id")
		return
	}

	ctx, cancel := context.WithTimeout(c.Request.Context(), turnTimeout)
	defer cancel()

	reply, err := h.dialogue.Process(ctx, req.Message, req.SessionID)
	if err != nil {
		writeSessionError(c, err)
		return
	}
	writeJSON(c, http.StatusOK, reply)
}
