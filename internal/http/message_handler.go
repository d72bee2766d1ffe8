package http

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/ALIAQIL/multilang-chat/internal/domain"
	"github.com/ALIAQIL/multilang-chat/internal/repository"
	"github.com/ALIAQIL/multilang-chat/internal/service"
)

// messageSender es el camino de envío (fan-out engine).
type messageSender interface {
	SendMessage(ctx context.Context, room domain.Room, author, content, senderLanguage string) (domain.Message, error)
}

// historyReader es el camino de lectura (reconciliación por idioma del lector).
type historyReader interface {
	RoomMessages(ctx context.Context, room domain.Room, readerLanguage string) ([]domain.RenderedMessage, error)
}

// MessageHandler mantiene dependencias para los endpoints de mensajes.
type MessageHandler struct {
	logger          *zap.Logger
	rooms           repository.RoomRepository
	sender          messageSender
	history         historyReader
	limiter         service.SendRateLimiter
	defaultLanguage string
	detect          func(string) string
}

func NewMessageHandler(
	logger *zap.Logger,
	rooms repository.RoomRepository,
	sender messageSender,
	history historyReader,
	limiter service.SendRateLimiter,
	defaultLanguage string,
) *MessageHandler {
	return &MessageHandler{
		logger:          logger,
		rooms:           rooms,
		sender:          sender,
		history:         history,
		limiter:         limiter,
		defaultLanguage: defaultLanguage,
		detect:          service.DetectLanguage,
	}
}

// PostMessage maneja POST /messages.
func (h *MessageHandler) PostMessage(c *gin.Context) {
	var req struct {
		Room     string `json:"room" binding:"required"`
		Author   string `json:"author" binding:"required"`
		Content  string `json:"content" binding:"required"`
		Language string `json:"language"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		h.logger.Warn("invalid post message request", zap.Error(err))
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request"})
		return
	}

	if h.limiter != nil && !h.limiter.Allow(req.Author+"|"+req.Room) {
		c.JSON(http.StatusTooManyRequests, gin.H{"error": "too many messages, slow down"})
		return
	}

	room, err := h.rooms.GetOrCreate(c.Request.Context(), strings.TrimSpace(req.Room))
	if err != nil {
		h.logger.Error("get or create room failed", zap.String("room", req.Room), zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "could not post message"})
		return
	}

	original, err := h.sender.SendMessage(c.Request.Context(), room, req.Author, req.Content, h.senderLanguage(req.Language, req.Content))
	if err != nil {
		if errors.Is(err, domain.ErrInvalidMessage) || errors.Is(err, domain.ErrContentTooLong) {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		h.logger.Error("send message failed", zap.String("room", room.Name), zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "could not post message"})
		return
	}

	c.JSON(http.StatusCreated, gin.H{"message": domain.Render(original)})
}

// ListMessages maneja GET /rooms/:room/messages?language=L.
func (h *MessageHandler) ListMessages(c *gin.Context) {
	room, err := h.rooms.GetByName(c.Request.Context(), c.Param("room"))
	if err != nil {
		if errors.Is(err, domain.ErrRoomNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "room not found"})
			return
		}
		h.logger.Error("room lookup failed", zap.String("room", c.Param("room")), zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "could not fetch messages"})
		return
	}

	lang := c.Query("language")
	if strings.TrimSpace(lang) == "" {
		lang = h.defaultLanguage
	}

	messages, err := h.history.RoomMessages(c.Request.Context(), room, lang)
	if err != nil {
		if errors.Is(err, domain.ErrInvalidMessage) {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid language"})
			return
		}
		h.logger.Error("fetch messages failed", zap.String("room", room.Name), zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "could not fetch messages"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"messages": messages})
}

// senderLanguage resuelve el idioma del emisor: el declarado, el detectado en
// el contenido, o el default configurado, en ese orden.
func (h *MessageHandler) senderLanguage(declared, content string) string {
	if lang := domain.NormalizeLanguage(declared); lang != "" {
		return lang
	}
	if h.detect != nil {
		if lang := h.detect(content); lang != "" {
			return lang
		}
	}
	return domain.NormalizeLanguage(h.defaultLanguage)
}
