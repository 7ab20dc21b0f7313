package handler

import (
	"errors"
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
	"github.com/quizforge/quizforge-backend/internal/middleware"
	"github.com/quizforge/quizforge-backend/internal/model"
	"github.com/quizforge/quizforge-backend/internal/response"
	"github.com/quizforge/quizforge-backend/internal/service"
	"github.com/rs/zerolog"
)

// buildUpgrader creates a WebSocket upgrader with origin validation.
// An empty allowedOrigins slice permits all origins (development mode).
func buildUpgrader(allowedOrigins []string) websocket.Upgrader {
	return websocket.Upgrader{
		ReadBufferSize:  1024,
		WriteBufferSize: 1024,
		CheckOrigin: func(r *http.Request) bool {
			if len(allowedOrigins) == 0 {
				return true
			}
			origin := r.Header.Get("Origin")
			for _, allowed := range allowedOrigins {
				if strings.EqualFold(allowed, origin) {
					return true
				}
			}
			return false
		},
	}
}

// chatStreamRequest is one inbound message on the chat stream.
type chatStreamRequest struct {
	QuestionID int    `json:"question_id"`
	Content    string `json:"content"`
}

// chatStreamEvent is one outbound message on the chat stream.
// Type is "chunk", "done" or "error".
type chatStreamEvent struct {
	Type    string `json:"type"`
	Content string `json:"content,omitempty"`
}

// ChatHandler handles the question tutoring endpoints.
type ChatHandler struct {
	chatService *service.ChatService
	log         zerolog.Logger
	upgrader    websocket.Upgrader
}

// NewChatHandler creates a new ChatHandler.
func NewChatHandler(chatService *service.ChatService, log zerolog.Logger, allowedOrigins []string) *ChatHandler {
	return &ChatHandler{
		chatService: chatService,
		log:         log.With().Str("component", "chat_handler").Logger(),
		upgrader:    buildUpgrader(allowedOrigins),
	}
}

// AskQuestion godoc
// POST /api/v1/questions/:id/chat
func (h *ChatHandler) AskQuestion(c *gin.Context) {
	questionID, err := strconv.Atoi(c.Param("id"))
	if err != nil || questionID <= 0 {
		response.Fail(c, http.StatusBadRequest, response.ErrInvalidID)
		return
	}

	var req model.ChatRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Fail(c, http.StatusBadRequest, response.ErrInvalidPayload)
		return
	}

	reply, err := h.chatService.Ask(c.Request.Context(), questionID, req.Content)
	if err != nil {
		if errors.Is(err, service.ErrNotFound) {
			response.Fail(c, http.StatusNotFound, response.ErrNotFound)
			return
		}
		response.Fail(c, http.StatusInternalServerError, response.ErrInternal)
		return
	}

	response.Success(c, http.StatusOK, gin.H{"reply": reply})
}

// ChatStream godoc
// WS /ws/v1/chat
// Upgrades to WebSocket and streams replies in small chunks, one question
// per inbound message.
func (h *ChatHandler) ChatStream(c *gin.Context) {
	claims := middleware.GetClaims(c)
	if claims == nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
		return
	}

	conn, err := h.upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		h.log.Error().Err(err).Msg("WebSocket upgrade failed")
		return
	}
	defer conn.Close()

	wsLog := h.log.With().Int("user_id", claims.UserID).Logger()
	wsLog.Info().Msg("Chat stream connected")

	for {
		var msg chatStreamRequest
		if err := conn.ReadJSON(&msg); err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				wsLog.Warn().Err(err).Msg("Unexpected close")
			} else {
				wsLog.Debug().Msg("Connection closed")
			}
			return
		}

		if msg.QuestionID <= 0 || msg.Content == "" {
			h.writeEvent(conn, chatStreamEvent{Type: "error", Content: "question_id and content are required"})
			continue
		}

		reply, err := h.chatService.Ask(c.Request.Context(), msg.QuestionID, msg.Content)
		if err != nil {
			if errors.Is(err, service.ErrNotFound) {
				h.writeEvent(conn, chatStreamEvent{Type: "error", Content: "question not found"})
				continue
			}
			wsLog.Error().Err(err).Int("question_id", msg.QuestionID).Msg("Chat reply error")
			h.writeEvent(conn, chatStreamEvent{Type: "error", Content: "reply failed"})
			continue
		}

		for _, chunk := range service.ReplyChunks(reply) {
			if !h.writeEvent(conn, chatStreamEvent{Type: "chunk", Content: chunk}) {
				return
			}
		}
		if !h.writeEvent(conn, chatStreamEvent{Type: "done"}) {
			return
		}
	}
}

func (h *ChatHandler) writeEvent(conn *websocket.Conn, event chatStreamEvent) bool {
	if err := conn.WriteJSON(event); err != nil {
		h.log.Debug().Err(err).Msg("Chat stream write failed")
		return false
	}
	return true
}
