package handler

import (
	"net/http"
	"strings"

	"petchat/internal/model"
	"petchat/internal/service"

	"github.com/gin-gonic/gin"
)

// SessionHandler handles conversation session HTTP requests
type SessionHandler struct {
	chatService *service.ChatService
}

// NewSessionHandler creates a new session handler
func NewSessionHandler(chatService *service.ChatService) *SessionHandler {
	return &SessionHandler{
		chatService: chatService,
	}
}

// Reset handles DELETE /api/v1/sessions/:id
func (h *SessionHandler) Reset(c *gin.Context) {
	sessionID := strings.TrimSpace(c.Param("id"))
	if sessionID == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid session ID"})
		return
	}

	if err := h.chatService.ResetSession(c.Request.Context(), sessionID); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to reset session: " + err.Error()})
		return
	}

	c.JSON(http.StatusOK, model.ResetResponse{
		Success:   true,
		SessionID: sessionID,
		Message:   "Session context cleared",
	})
}
