package ws

import (
	"encoding/json"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/google/uuid"
)

const (
	MessageTypeChat  = "message"
	MessageTypeError = "error"

	MaxBodyLength   = 2000
	maxRoomIDLength = 64
)

// Message is the chat payload exchanged on a room, both over websocket and
// across instances.
type Message struct {
	Type     string    `json:"type"`
	ID       uuid.UUID `json:"id"`
	RoomID   string    `json:"room_id"`
	SenderID uuid.UUID `json:"sender_id"`
	Body     string    `json:"body"`
	SentAt   time.Time `json:"sent_at"`
}

type inboundMessage struct {
	Type string `json:"type"`
	Body string `json:"body"`
}

type errorEvent struct {
	Type    string `json:"type"`
	Message string `json:"message"`
}

// NewMessage builds an outgoing chat message. It reports false for bodies that
// are blank after trimming; longer bodies are cut at MaxBodyLength runes.
func NewMessage(roomID string, senderID uuid.UUID, body string, now time.Time) (Message, bool) {
	body = strings.TrimSpace(body)
	if body == "" {
		return Message{}, false
	}
	if utf8.RuneCountInString(body) > MaxBodyLength {
		body = string([]rune(body)[:MaxBodyLength])
	}

	return Message{
		Type:     MessageTypeChat,
		ID:       uuid.New(),
		RoomID:   roomID,
		SenderID: senderID,
		Body:     body,
		SentAt:   now.UTC(),
	}, true
}

// ValidRoomID accepts ids made of letters, digits, '-' and '_' so that they
// are safe as a single NATS subject token.
func ValidRoomID(id string) bool {
	if id == "" || len(id) > maxRoomIDLength {
		return false
	}
	for _, r := range id {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9', r == '-', r == '_':
		default:
			return false
		}
	}
	return true
}

func encodeError(msg string) []byte {
	b, _ := json.Marshal(errorEvent{Type: MessageTypeError, Message: msg})
	return b
}
