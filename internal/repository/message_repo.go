package repository

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/ALIAQIL/multilang-chat/internal/domain"
)

// Códigos de error de Postgres relevantes para el slot (original, idioma).
const (
	pgUniqueViolation     = "23505"
	pgForeignKeyViolation = "23503"
)

type MessageRepository interface {
	InsertOriginal(ctx context.Context, msg domain.Message) (domain.Message, error)
	InsertDerived(ctx context.Context, msg domain.Message) (domain.Message, error)
	FindDerived(ctx context.Context, originalID int64, language string) (domain.Message, error)
	ListOriginals(ctx context.Context, roomID uuid.UUID) ([]domain.Message, error)
	ActiveLanguages(ctx context.Context, roomID uuid.UUID) ([]string, error)
}

type PgMessageRepository struct {
	pool *pgxpool.Pool
}

func NewPgMessageRepository(pool *pgxpool.Pool) *PgMessageRepository {
	return &PgMessageRepository{pool: pool}
}

// InsertOriginal persiste el mensaje original de una acción de envío y
// devuelve la fila con el id asignado por la base.
func (r *PgMessageRepository) InsertOriginal(ctx context.Context, msg domain.Message) (domain.Message, error) {
	const query = `
		INSERT INTO messages (room_id, content, author, language, created_at, is_original, original_id)
		VALUES ($1, $2, $3, $4, $5, true, NULL)
		RETURNING id
	`

	err := r.pool.QueryRow(ctx, query,
		msg.RoomID,
		msg.Content,
		msg.Author,
		msg.Language,
		msg.CreatedAt,
	).Scan(&msg.ID)
	if err != nil {
		return domain.Message{}, err
	}
	msg.IsOriginal = true
	msg.OriginalID = nil
	return msg, nil
}

// InsertDerived persiste una traducción ligada a su original. El índice único
// parcial sobre (original_id, language) decide al ganador bajo carreras: el
// perdedor recibe ErrTranslationExists y debe releer la fila ganadora.
func (r *PgMessageRepository) InsertDerived(ctx context.Context, msg domain.Message) (domain.Message, error) {
	const query = `
		INSERT INTO messages (room_id, content, author, language, created_at, is_original, original_id)
		VALUES ($1, $2, $3, $4, $5, false, $6)
		RETURNING id
	`

	err := r.pool.QueryRow(ctx, query,
		msg.RoomID,
		msg.Content,
		msg.Author,
		msg.Language,
		msg.CreatedAt,
		msg.OriginalID,
	).Scan(&msg.ID)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) {
			switch pgErr.Code {
			case pgUniqueViolation:
				return domain.Message{}, domain.ErrTranslationExists
			case pgForeignKeyViolation:
				return domain.Message{}, domain.ErrOriginalNotFound
			}
		}
		return domain.Message{}, err
	}
	msg.IsOriginal = false
	return msg, nil
}

// FindDerived es el point lookup del camino de lectura: resuelve por índice,
// nunca por scan.
func (r *PgMessageRepository) FindDerived(ctx context.Context, originalID int64, language string) (domain.Message, error) {
	const query = `
		SELECT id, room_id, content, author, language, created_at, is_original, original_id
		FROM messages
		WHERE original_id = $1 AND language = $2
	`

	msg, err := scanMessage(r.pool.QueryRow(ctx, query, originalID, language))
	if errors.Is(err, pgx.ErrNoRows) {
		return domain.Message{}, domain.ErrTranslationNotFound
	}
	return msg, err
}

// ListOriginals devuelve los mensajes originales de la sala en orden de envío.
func (r *PgMessageRepository) ListOriginals(ctx context.Context, roomID uuid.UUID) ([]domain.Message, error) {
	const query = `
		SELECT id, room_id, content, author, language, created_at, is_original, original_id
		FROM messages
		WHERE room_id = $1 AND is_original
		ORDER BY created_at ASC, id ASC
	`

	rows, err := r.pool.Query(ctx, query, roomID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var messages []domain.Message
	for rows.Next() {
		msg, err := scanMessage(rows)
		if err != nil {
			return nil, err
		}
		messages = append(messages, msg)
	}
	return messages, rows.Err()
}

// ActiveLanguages devuelve los idiomas distintos de los mensajes originales de
// la sala. Ignora derivados a propósito: un idioma solo cuenta cuando alguien
// escribió en él.
func (r *PgMessageRepository) ActiveLanguages(ctx context.Context, roomID uuid.UUID) ([]string, error) {
	const query = `
		SELECT DISTINCT language
		FROM messages
		WHERE room_id = $1 AND is_original
	`

	rows, err := r.pool.Query(ctx, query, roomID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var languages []string
	for rows.Next() {
		var lang string
		if err := rows.Scan(&lang); err != nil {
			return nil, err
		}
		languages = append(languages, lang)
	}
	return languages, rows.Err()
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanMessage(row rowScanner) (domain.Message, error) {
	var msg domain.Message
	var originalID *int64

	err := row.Scan(
		&msg.ID,
		&msg.RoomID,
		&msg.Content,
		&msg.Author,
		&msg.Language,
		&msg.CreatedAt,
		&msg.IsOriginal,
		&originalID,
	)
	if err != nil {
		return domain.Message{}, err
	}
	msg.OriginalID = originalID
	return msg, nil
}
