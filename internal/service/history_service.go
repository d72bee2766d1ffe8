package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/ALIAQIL/multilang-chat/internal/domain"
	"github.com/ALIAQIL/multilang-chat/internal/repository"
	"github.com/ALIAQIL/multilang-chat/internal/translator"
)

// HistoryService implementa el camino de lectura: para cada mensaje original
// de la sala elige un representante en el idioma del lector — el original si
// coincide, la traducción cacheada si existe, o una traducción on-demand que
// se persiste para lecturas futuras. Si el proveedor falla, el lector recibe
// el original sin traducir; nunca se pierde un mensaje.
type HistoryService struct {
	logger     *zap.Logger
	messages   repository.MessageRepository
	translator translator.Translator
	timeout    time.Duration
}

func NewHistoryService(
	logger *zap.Logger,
	messages repository.MessageRepository,
	tr translator.Translator,
	timeout time.Duration,
) *HistoryService {
	if timeout <= 0 {
		timeout = defaultTranslateTimeout
	}
	return &HistoryService{
		logger:     logger,
		messages:   messages,
		translator: tr,
		timeout:    timeout,
	}
}

// RoomMessages devuelve la historia de la sala renderizada en readerLanguage,
// ordenada por turno de conversación (los derivados heredan el timestamp del
// original, así que el orden de los originales es el orden final).
func (s *HistoryService) RoomMessages(ctx context.Context, room domain.Room, readerLanguage string) ([]domain.RenderedMessage, error) {
	lang := domain.NormalizeLanguage(readerLanguage)
	if lang == "" {
		return nil, domain.ErrInvalidMessage
	}

	originals, err := s.messages.ListOriginals(ctx, room.ID)
	if err != nil {
		return nil, fmt.Errorf("list originals: %w", err)
	}

	rendered := make([]domain.RenderedMessage, 0, len(originals))
	for _, original := range originals {
		rendered = append(rendered, domain.Render(s.resolve(ctx, original, lang)))
	}
	return rendered, nil
}

// resolve elige el representante de un original para el idioma del lector.
func (s *HistoryService) resolve(ctx context.Context, original domain.Message, lang string) domain.Message {
	if domain.SameLanguage(original.Language, lang) {
		return original
	}

	derived, err := s.messages.FindDerived(ctx, original.ID, lang)
	if err == nil {
		return derived
	}
	if !errors.Is(err, domain.ErrTranslationNotFound) {
		s.logger.Warn("translation lookup failed",
			zap.Int64("original_id", original.ID),
			zap.String("language", lang),
			zap.Error(err),
		)
		return original
	}

	return s.translateOnDemand(ctx, original, lang)
}

// translateOnDemand cierra un hueco de cobertura: traduce, persiste y devuelve
// el derivado. Bajo una carrera con otro lector, la fila ganadora se relee y
// el resultado perdedor se descarta.
func (s *HistoryService) translateOnDemand(ctx context.Context, original domain.Message, lang string) domain.Message {
	tctx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	translated, err := s.translator.Translate(tctx, original.Content, lang)
	if err != nil {
		s.logger.Warn("on-demand translation failed",
			zap.Int64("original_id", original.ID),
			zap.String("language", lang),
			zap.Error(err),
		)
		return original
	}

	stored, err := s.messages.InsertDerived(ctx, domain.DerivedFrom(original, lang, translated))
	if err == nil {
		return stored
	}

	if errors.Is(err, domain.ErrTranslationExists) {
		winner, ferr := s.messages.FindDerived(ctx, original.ID, lang)
		if ferr == nil {
			return winner
		}
		err = ferr
	}

	s.logger.Warn("persist on-demand translation failed",
		zap.Int64("original_id", original.ID),
		zap.String("language", lang),
		zap.Error(err),
	)
	return original
}
