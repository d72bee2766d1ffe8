package repository

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/ALIAQIL/multilang-chat/internal/domain"
)

type RoomRepository interface {
	GetOrCreate(ctx context.Context, name string) (domain.Room, error)
	GetByName(ctx context.Context, name string) (domain.Room, error)
}

type PgRoomRepository struct {
	pool *pgxpool.Pool
}

func NewPgRoomRepository(pool *pgxpool.Pool) *PgRoomRepository {
	return &PgRoomRepository{pool: pool}
}

// GetOrCreate crea la sala si no existe y la devuelve. Idempotente: bajo dos
// joins concurrentes con el mismo nombre solo sobrevive una fila.
func (r *PgRoomRepository) GetOrCreate(ctx context.Context, name string) (domain.Room, error) {
	const insert = `
		INSERT INTO rooms (name)
		VALUES ($1)
		ON CONFLICT (name) DO NOTHING
		RETURNING id, name, created_at
	`

	var room domain.Room
	err := r.pool.QueryRow(ctx, insert, name).Scan(&room.ID, &room.Name, &room.CreatedAt)
	if err == nil {
		return room, nil
	}
	if !errors.Is(err, pgx.ErrNoRows) {
		return domain.Room{}, err
	}

	// Perdimos la carrera (o la sala ya existía): leemos la fila ganadora.
	return r.GetByName(ctx, name)
}

func (r *PgRoomRepository) GetByName(ctx context.Context, name string) (domain.Room, error) {
	const query = `
		SELECT id, name, created_at
		FROM rooms
		WHERE name = $1
	`

	var room domain.Room
	err := r.pool.QueryRow(ctx, query, name).Scan(&room.ID, &room.Name, &room.CreatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return domain.Room{}, domain.ErrRoomNotFound
	}
	return room, err
}
