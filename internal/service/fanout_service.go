package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"
	"unicode/utf8"

	"go.uber.org/zap"

	"github.com/ALIAQIL/multilang-chat/internal/domain"
	"github.com/ALIAQIL/multilang-chat/internal/repository"
	"github.com/ALIAQIL/multilang-chat/internal/translator"
)

const defaultTranslateTimeout = 15 * time.Second

// FanoutService implementa el camino de envío: persiste el original y produce
// eagerly una traducción por cada otro idioma ya activo en la sala.
type FanoutService struct {
	logger     *zap.Logger
	messages   repository.MessageRepository
	translator translator.Translator
	timeout    time.Duration
}

func NewFanoutService(
	logger *zap.Logger,
	messages repository.MessageRepository,
	tr translator.Translator,
	timeout time.Duration,
) *FanoutService {
	if timeout <= 0 {
		timeout = defaultTranslateTimeout
	}
	return &FanoutService{
		logger:     logger,
		messages:   messages,
		translator: tr,
		timeout:    timeout,
	}
}

// SendMessage persiste el mensaje original y hace fan-out a los idiomas
// activos de la sala, menos el del emisor. Una vez que el original es durable
// el envío ya no puede fallar: cada traducción fallida se loggea y se salta,
// y el camino de lectura cubre el hueco on-demand.
func (s *FanoutService) SendMessage(ctx context.Context, room domain.Room, author, content, senderLanguage string) (domain.Message, error) {
	author = strings.TrimSpace(author)
	content = strings.TrimSpace(content)
	lang := domain.NormalizeLanguage(senderLanguage)

	if author == "" || content == "" || lang == "" {
		return domain.Message{}, domain.ErrInvalidMessage
	}
	if utf8.RuneCountInString(content) > domain.MaxContentLength {
		return domain.Message{}, domain.ErrContentTooLong
	}

	original, err := s.messages.InsertOriginal(ctx, domain.Message{
		RoomID:     room.ID,
		Content:    content,
		Author:     author,
		Language:   lang,
		CreatedAt:  time.Now().UTC(),
		IsOriginal: true,
	})
	if err != nil {
		return domain.Message{}, fmt.Errorf("insert original: %w", err)
	}

	active, err := s.messages.ActiveLanguages(ctx, room.ID)
	if err != nil {
		// El original ya es durable: el envío no falla por no poder
		// computar los targets. El reconciler lazy cierra el hueco.
		s.logger.Warn("active languages lookup failed",
			zap.String("room", room.Name),
			zap.Error(err),
		)
		return original, nil
	}

	for _, target := range active {
		target = domain.NormalizeLanguage(target)
		if target == "" || target == lang {
			continue
		}
		s.translateInto(ctx, original, target)
	}

	return original, nil
}

// translateInto produce y persiste una traducción; toda falla es no-fatal.
func (s *FanoutService) translateInto(ctx context.Context, original domain.Message, target string) {
	tctx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	translated, err := s.translator.Translate(tctx, original.Content, target)
	if err != nil {
		s.logger.Warn("fan-out translation failed",
			zap.Int64("original_id", original.ID),
			zap.String("language", target),
			zap.Error(err),
		)
		return
	}

	if _, err := s.messages.InsertDerived(ctx, domain.DerivedFrom(original, target, translated)); err != nil {
		if errors.Is(err, domain.ErrTranslationExists) {
			// Un lector concurrente ya creó esta traducción; su fila gana.
			return
		}
		s.logger.Warn("persist fan-out translation failed",
			zap.Int64("original_id", original.ID),
			zap.String("language", target),
			zap.Error(err),
		)
	}
}
