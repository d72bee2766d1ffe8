package http

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/ALIAQIL/multilang-chat/internal/domain"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func newTestRouter(rooms *mockRoomRepo, sender *mockSender, history *mockHistory, limiter *mockLimiter) (*gin.Engine, *MessageHandler) {
	logger := zap.NewNop()
	messageH := NewMessageHandler(logger, rooms, sender, history, nil, "English")
	if limiter != nil {
		messageH.limiter = limiter
	}
	roomH := NewRoomHandler(logger, rooms, "English")
	return NewRouter(logger, roomH, messageH, nil), messageH
}

func doJSON(t *testing.T, router *gin.Engine, method, path string, body interface{}) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		if err := json.NewEncoder(&buf).Encode(body); err != nil {
			t.Fatalf("encode body: %v", err)
		}
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func TestPostMessage_CreatesRoomAndSends(t *testing.T) {
	rooms := newMockRoomRepo()
	sender := &mockSender{result: domain.Message{
		ID: 1, Content: "Hello", Author: "alice", Language: "english",
		CreatedAt: time.Date(2025, 3, 9, 17, 4, 0, 0, time.UTC), IsOriginal: true,
	}}
	router, _ := newTestRouter(rooms, sender, &mockHistory{}, nil)

	w := doJSON(t, router, http.MethodPost, "/messages", map[string]string{
		"room":     "lobby",
		"author":   "alice",
		"content":  "Hello",
		"language": "English",
	})

	if w.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d: %s", w.Code, w.Body.String())
	}
	if len(rooms.created) != 1 || rooms.created[0] != "lobby" {
		t.Fatalf("expected room created on first reference, got %+v", rooms.created)
	}
	if sender.lastLanguage != "english" {
		t.Fatalf("expected normalized sender language, got %q", sender.lastLanguage)
	}
	if sender.lastRoom.Name != "lobby" {
		t.Fatalf("expected send against joined room, got %q", sender.lastRoom.Name)
	}

	var resp struct {
		Message domain.RenderedMessage `json:"message"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if resp.Message.ID != 1 || resp.Message.Language != "English" {
		t.Fatalf("unexpected rendered message %+v", resp.Message)
	}
	if resp.Message.Timestamp != "Mar 09, 2025, 05:04 PM" {
		t.Fatalf("unexpected timestamp format %q", resp.Message.Timestamp)
	}
}

func TestPostMessage_DetectsLanguageWhenOmitted(t *testing.T) {
	rooms := newMockRoomRepo()
	sender := &mockSender{result: domain.Message{ID: 1, IsOriginal: true}}
	router, handler := newTestRouter(rooms, sender, &mockHistory{}, nil)
	handler.detect = func(string) string { return "spanish" }

	w := doJSON(t, router, http.MethodPost, "/messages", map[string]string{
		"room":    "lobby",
		"author":  "diego",
		"content": "Hola a todos",
	})

	if w.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d: %s", w.Code, w.Body.String())
	}
	if sender.lastLanguage != "spanish" {
		t.Fatalf("expected detected language, got %q", sender.lastLanguage)
	}
}

func TestPostMessage_FallsBackToDefaultLanguage(t *testing.T) {
	rooms := newMockRoomRepo()
	sender := &mockSender{result: domain.Message{ID: 1, IsOriginal: true}}
	router, handler := newTestRouter(rooms, sender, &mockHistory{}, nil)
	handler.detect = func(string) string { return "" }

	w := doJSON(t, router, http.MethodPost, "/messages", map[string]string{
		"room":    "lobby",
		"author":  "alice",
		"content": "ok",
	})

	if w.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d: %s", w.Code, w.Body.String())
	}
	if sender.lastLanguage != "english" {
		t.Fatalf("expected configured default, got %q", sender.lastLanguage)
	}
}

func TestPostMessage_InvalidBody(t *testing.T) {
	router, _ := newTestRouter(newMockRoomRepo(), &mockSender{}, &mockHistory{}, nil)

	w := doJSON(t, router, http.MethodPost, "/messages", map[string]string{"room": "lobby"})
	if w.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", w.Code)
	}
}

func TestPostMessage_ContentTooLong(t *testing.T) {
	sender := &mockSender{err: domain.ErrContentTooLong}
	router, _ := newTestRouter(newMockRoomRepo(), sender, &mockHistory{}, nil)

	w := doJSON(t, router, http.MethodPost, "/messages", map[string]string{
		"room": "lobby", "author": "alice", "content": "x", "language": "English",
	})
	if w.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", w.Code)
	}
}

func TestPostMessage_RateLimited(t *testing.T) {
	sender := &mockSender{}
	limiter := &mockLimiter{allowed: false}
	router, _ := newTestRouter(newMockRoomRepo(), sender, &mockHistory{}, limiter)

	w := doJSON(t, router, http.MethodPost, "/messages", map[string]string{
		"room": "lobby", "author": "alice", "content": "Hello", "language": "English",
	})

	if w.Code != http.StatusTooManyRequests {
		t.Fatalf("expected 429, got %d", w.Code)
	}
	if sender.calls != 0 {
		t.Fatalf("expected sender untouched when limited, got %d calls", sender.calls)
	}
	if limiter.lastKey != "alice|lobby" {
		t.Fatalf("unexpected limiter key %q", limiter.lastKey)
	}
}

func TestListMessages_OK(t *testing.T) {
	rooms := newMockRoomRepo()
	if _, err := rooms.GetOrCreate(context.Background(), "lobby"); err != nil {
		t.Fatalf("seed room: %v", err)
	}
	history := &mockHistory{result: []domain.RenderedMessage{
		{ID: 1, Content: "Bonjour", Author: "alice", Timestamp: "Mar 09, 2025, 05:04 PM", Language: "French"},
	}}
	router, _ := newTestRouter(rooms, &mockSender{}, history, nil)

	w := doJSON(t, router, http.MethodGet, "/rooms/lobby/messages?language=french", nil)
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", w.Code, w.Body.String())
	}
	if history.lastLanguage != "french" {
		t.Fatalf("expected reader language passed through, got %q", history.lastLanguage)
	}

	var resp struct {
		Messages []domain.RenderedMessage `json:"messages"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if len(resp.Messages) != 1 || resp.Messages[0].Content != "Bonjour" {
		t.Fatalf("unexpected messages %+v", resp.Messages)
	}
}

func TestListMessages_DefaultsReaderLanguage(t *testing.T) {
	rooms := newMockRoomRepo()
	if _, err := rooms.GetOrCreate(context.Background(), "lobby"); err != nil {
		t.Fatalf("seed room: %v", err)
	}
	history := &mockHistory{}
	router, _ := newTestRouter(rooms, &mockSender{}, history, nil)

	w := doJSON(t, router, http.MethodGet, "/rooms/lobby/messages", nil)
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", w.Code)
	}
	if history.lastLanguage != "English" {
		t.Fatalf("expected configured default, got %q", history.lastLanguage)
	}
}

func TestListMessages_RoomNotFound(t *testing.T) {
	router, _ := newTestRouter(newMockRoomRepo(), &mockSender{}, &mockHistory{}, nil)

	w := doJSON(t, router, http.MethodGet, "/rooms/ghost/messages?language=english", nil)
	if w.Code != http.StatusNotFound {
		t.Fatalf("expected 404 for unknown room, got %d", w.Code)
	}
}
