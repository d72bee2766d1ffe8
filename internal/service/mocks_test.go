package service

import (
	"context"
	"fmt"
	"sort"
	"sync"

	"github.com/google/uuid"

	"github.com/ALIAQIL/multilang-chat/internal/domain"
)

// mockMessageRepo es un store en memoria que respeta la unicidad por
// (original, idioma), para poder ejercitar las carreras del camino de lectura.
type mockMessageRepo struct {
	mu     sync.Mutex
	nextID int64
	rows   []domain.Message

	insertOriginalErr error
	insertDerivedErr  error
	listErr           error
	activeErr         error

	derivedInserts int
}

func (m *mockMessageRepo) InsertOriginal(_ context.Context, msg domain.Message) (domain.Message, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.insertOriginalErr != nil {
		return domain.Message{}, m.insertOriginalErr
	}
	m.nextID++
	msg.ID = m.nextID
	msg.IsOriginal = true
	msg.OriginalID = nil
	m.rows = append(m.rows, msg)
	return msg, nil
}

func (m *mockMessageRepo) InsertDerived(_ context.Context, msg domain.Message) (domain.Message, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.insertDerivedErr != nil {
		return domain.Message{}, m.insertDerivedErr
	}
	if msg.OriginalID == nil {
		return domain.Message{}, domain.ErrOriginalNotFound
	}
	for _, row := range m.rows {
		if row.OriginalID != nil && *row.OriginalID == *msg.OriginalID && row.Language == msg.Language {
			return domain.Message{}, domain.ErrTranslationExists
		}
	}
	m.nextID++
	msg.ID = m.nextID
	msg.IsOriginal = false
	m.rows = append(m.rows, msg)
	m.derivedInserts++
	return msg, nil
}

func (m *mockMessageRepo) FindDerived(_ context.Context, originalID int64, language string) (domain.Message, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, row := range m.rows {
		if row.OriginalID != nil && *row.OriginalID == originalID && row.Language == language {
			return row, nil
		}
	}
	return domain.Message{}, domain.ErrTranslationNotFound
}

func (m *mockMessageRepo) ListOriginals(_ context.Context, roomID uuid.UUID) ([]domain.Message, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.listErr != nil {
		return nil, m.listErr
	}
	var out []domain.Message
	for _, row := range m.rows {
		if row.RoomID == roomID && row.IsOriginal {
			out = append(out, row)
		}
	}
	sort.SliceStable(out, func(i, j int) bool {
		if !out[i].CreatedAt.Equal(out[j].CreatedAt) {
			return out[i].CreatedAt.Before(out[j].CreatedAt)
		}
		return out[i].ID < out[j].ID
	})
	return out, nil
}

func (m *mockMessageRepo) ActiveLanguages(_ context.Context, roomID uuid.UUID) ([]string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.activeErr != nil {
		return nil, m.activeErr
	}
	seen := make(map[string]bool)
	var out []string
	for _, row := range m.rows {
		if row.RoomID == roomID && row.IsOriginal && !seen[row.Language] {
			seen[row.Language] = true
			out = append(out, row.Language)
		}
	}
	return out, nil
}

func (m *mockMessageRepo) derivedFor(originalID int64) []domain.Message {
	m.mu.Lock()
	defer m.mu.Unlock()
	var out []domain.Message
	for _, row := range m.rows {
		if row.OriginalID != nil && *row.OriginalID == originalID {
			out = append(out, row)
		}
	}
	return out
}

// mockTranslator traduce de forma determinista y cuenta llamadas.
type mockTranslator struct {
	mu    sync.Mutex
	calls int
	err   error
}

func (t *mockTranslator) Translate(_ context.Context, text, targetLanguage string) (string, error) {
	t.mu.Lock()
	t.calls++
	t.mu.Unlock()
	if t.err != nil {
		return "", t.err
	}
	return fmt.Sprintf("[%s] %s", targetLanguage, text), nil
}

func (t *mockTranslator) callCount() int {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.calls
}
