package domain

import (
	"time"

	"github.com/google/uuid"
)

// MaxContentLength limita el tamaño del cuerpo de un mensaje.
const MaxContentLength = 10000

// Room es una sala de chat identificada por un nombre único elegido por humanos.
// Se crea on-demand la primera vez que alguien la referencia y nunca se borra.
type Room struct {
	ID        uuid.UUID `json:"id"`
	Name      string    `json:"name"`
	CreatedAt time.Time `json:"created_at"`
}

// Message es la unidad atómica del chat. Un mensaje original (IsOriginal=true)
// es inmutable después de crearse; cada traducción es un mensaje derivado que
// apunta al original vía OriginalID y hereda autor y timestamp.
type Message struct {
	ID         int64     `json:"id"`
	RoomID     uuid.UUID `json:"room_id"`
	Content    string    `json:"content"`
	Author     string    `json:"author"`
	Language   string    `json:"language"`
	CreatedAt  time.Time `json:"created_at"`
	IsOriginal bool      `json:"is_original"`
	OriginalID *int64    `json:"original_id,omitempty"`
}

// DerivedFrom construye el mensaje derivado de original en targetLanguage.
// Autor y timestamp se heredan para que el orden cronológico sea por turno de
// conversación, no por el momento en que se computó la traducción.
func DerivedFrom(original Message, targetLanguage, translatedContent string) Message {
	id := original.ID
	return Message{
		RoomID:     original.RoomID,
		Content:    translatedContent,
		Author:     original.Author,
		Language:   NormalizeLanguage(targetLanguage),
		CreatedAt:  original.CreatedAt,
		IsOriginal: false,
		OriginalID: &id,
	}
}

// RenderedTimestampFormat es el formato fijo legible que viaja al cliente.
const RenderedTimestampFormat = "Jan 02, 2006, 03:04 PM"

// RenderedMessage es la proyección de transporte de un mensaje ya resuelto al
// idioma del lector. El core nunca serializa mapas sueltos: siempre este tipo.
type RenderedMessage struct {
	ID        int64  `json:"id"`
	Content   string `json:"content"`
	Author    string `json:"author"`
	Timestamp string `json:"timestamp"`
	Language  string `json:"language"`
}

// Render proyecta un mensaje para transporte, con el idioma en forma de display.
func Render(m Message) RenderedMessage {
	return RenderedMessage{
		ID:        m.ID,
		Content:   m.Content,
		Author:    m.Author,
		Timestamp: m.CreatedAt.Format(RenderedTimestampFormat),
		Language:  DisplayLanguage(m.Language),
	}
}
