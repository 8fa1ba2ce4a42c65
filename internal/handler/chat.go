package handler

import (
	"errors"
	"net/http"

	"petchat/internal/model"
	"petchat/internal/service"

	"github.com/gin-gonic/gin"
)

// ChatHandler handles chat-related HTTP requests
type ChatHandler struct {
	chatService *service.ChatService
}

// NewChatHandler creates a new chat handler
func NewChatHandler(chatService *service.ChatService) *ChatHandler {
	return &ChatHandler{
		chatService: chatService,
	}
}

// Chat handles POST /api/v1/chat
func (h *ChatHandler) Chat(c *gin.Context) {
	var req model.ChatRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request: " + err.Error()})
		return
	}

	response, err := h.chatService.Chat(c.Request.Context(), &req)
	if err != nil {
		if errors.Is(err, model.ErrEmptyInput) {
			c.JSON(http.StatusBadRequest, gin.H{"error": service.EmptyInputReply})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Chat failed: " + err.Error()})
		return
	}

	c.JSON(http.StatusOK, response)
}

// LegacyChat handles POST /chat with the {"message"} -> {"response"} shape
// used by the bundled web page
func (h *ChatHandler) LegacyChat(c *gin.Context) {
	var req model.ChatRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request: " + err.Error()})
		return
	}

	response, err := h.chatService.Chat(c.Request.Context(), &req)
	if err != nil {
		if errors.Is(err, model.ErrEmptyInput) {
			c.JSON(http.StatusBadRequest, gin.H{"response": service.EmptyInputReply, "error": err.Error()})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Chat failed: " + err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"response": response.Response, "session_id": response.SessionID})
}
