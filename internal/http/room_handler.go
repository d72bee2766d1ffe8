package http

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/ALIAQIL/multilang-chat/internal/domain"
	"github.com/ALIAQIL/multilang-chat/internal/repository"
)

// RoomHandler mantiene dependencias para los endpoints de salas.
type RoomHandler struct {
	logger          *zap.Logger
	rooms           repository.RoomRepository
	defaultLanguage string
}

func NewRoomHandler(logger *zap.Logger, rooms repository.RoomRepository, defaultLanguage string) *RoomHandler {
	return &RoomHandler{
		logger:          logger,
		rooms:           rooms,
		defaultLanguage: defaultLanguage,
	}
}

// JoinRoom maneja POST /rooms/join. Crea la sala si no existe (idempotente) y
// devuelve el idioma normalizado con el que el participante va a leer.
func (h *RoomHandler) JoinRoom(c *gin.Context) {
	var req struct {
		RoomName string `json:"room_name" binding:"required"`
		Username string `json:"username" binding:"required"`
		Language string `json:"language"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		h.logger.Warn("invalid join room request", zap.Error(err))
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request"})
		return
	}

	name := strings.TrimSpace(req.RoomName)
	if name == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request"})
		return
	}

	room, err := h.rooms.GetOrCreate(c.Request.Context(), name)
	if err != nil {
		h.logger.Error("get or create room failed", zap.String("room", name), zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "could not join room"})
		return
	}

	lang := domain.NormalizeLanguage(req.Language)
	if lang == "" {
		lang = domain.NormalizeLanguage(h.defaultLanguage)
	}

	c.JSON(http.StatusOK, gin.H{
		"room":     room,
		"username": strings.TrimSpace(req.Username),
		"language": domain.DisplayLanguage(lang),
	})
}
