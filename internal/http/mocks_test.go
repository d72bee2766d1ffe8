package http

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/ALIAQIL/multilang-chat/internal/domain"
)

type mockRoomRepo struct {
	rooms          map[string]domain.Room
	getOrCreateErr error
	created        []string
}

func newMockRoomRepo() *mockRoomRepo {
	return &mockRoomRepo{rooms: make(map[string]domain.Room)}
}

func (m *mockRoomRepo) GetOrCreate(_ context.Context, name string) (domain.Room, error) {
	if m.getOrCreateErr != nil {
		return domain.Room{}, m.getOrCreateErr
	}
	if room, ok := m.rooms[name]; ok {
		return room, nil
	}
	room := domain.Room{ID: uuid.New(), Name: name, CreatedAt: time.Now().UTC()}
	m.rooms[name] = room
	m.created = append(m.created, name)
	return room, nil
}

func (m *mockRoomRepo) GetByName(_ context.Context, name string) (domain.Room, error) {
	room, ok := m.rooms[name]
	if !ok {
		return domain.Room{}, domain.ErrRoomNotFound
	}
	return room, nil
}

type mockSender struct {
	lastRoom     domain.Room
	lastAuthor   string
	lastContent  string
	lastLanguage string
	calls        int
	result       domain.Message
	err          error
}

func (m *mockSender) SendMessage(_ context.Context, room domain.Room, author, content, senderLanguage string) (domain.Message, error) {
	m.calls++
	m.lastRoom = room
	m.lastAuthor = author
	m.lastContent = content
	m.lastLanguage = senderLanguage
	if m.err != nil {
		return domain.Message{}, m.err
	}
	return m.result, nil
}

type mockHistory struct {
	lastRoom     domain.Room
	lastLanguage string
	result       []domain.RenderedMessage
	err          error
}

func (m *mockHistory) RoomMessages(_ context.Context, room domain.Room, readerLanguage string) ([]domain.RenderedMessage, error) {
	m.lastRoom = room
	m.lastLanguage = readerLanguage
	if m.err != nil {
		return nil, m.err
	}
	return m.result, nil
}

type mockLimiter struct {
	allowed bool
	lastKey string
}

func (m *mockLimiter) Allow(key string) bool {
	m.lastKey = key
	return m.allowed
}
