package messaging

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/nats-io/nats.go"
)

// Publisher is the part of NATSClient the relay needs.
type Publisher interface {
	Publish(subject string, data []byte) error
	Subscribe(subject string, handler func(msg *nats.Msg)) error
}

type envelope struct {
	Origin  string          `json:"origin"`
	Payload json.RawMessage `json:"payload"`
}

// RoomRelay publishes room messages on chat.<room_id> and delivers messages
// published by other instances. Each relay stamps an origin id and ignores
// its own echoes.
type RoomRelay struct {
	pub    Publisher
	origin string
}

func NewRoomRelay(pub Publisher) *RoomRelay {
	return &RoomRelay{pub: pub, origin: uuid.NewString()}
}

func (r *RoomRelay) Origin() string {
	return r.origin
}

func (r *RoomRelay) PublishRoom(roomID string, data []byte) error {
	b, err := encodeEnvelope(r.origin, data)
	if err != nil {
		return err
	}
	return r.pub.Publish(RoomSubject(roomID), b)
}

// Listen subscribes to every room and hands remote payloads to deliver.
func (r *RoomRelay) Listen(deliver func(roomID string, data []byte)) error {
	return r.pub.Subscribe(SubjectChat+".*", func(msg *nats.Msg) {
		r.handle(msg.Subject, msg.Data, deliver)
	})
}

func (r *RoomRelay) handle(subject string, data []byte, deliver func(roomID string, data []byte)) {
	roomID, ok := RoomFromSubject(subject)
	if !ok {
		return
	}
	origin, payload, err := decodeEnvelope(data)
	if err != nil || origin == r.origin {
		return
	}
	deliver(roomID, payload)
}

func RoomSubject(roomID string) string {
	return SubjectChat + "." + roomID
}

func RoomFromSubject(subject string) (string, bool) {
	roomID, ok := strings.CutPrefix(subject, SubjectChat+".")
	if !ok || roomID == "" || strings.Contains(roomID, ".") {
		return "", false
	}
	return roomID, true
}

func encodeEnvelope(origin string, payload []byte) ([]byte, error) {
	if !json.Valid(payload) {
		return nil, fmt.Errorf("messaging: payload is not valid JSON")
	}
	return json.Marshal(envelope{Origin: origin, Payload: payload})
}

func decodeEnvelope(data []byte) (string, []byte, error) {
	var env envelope
	if err := json.Unmarshal(data, &env); err != nil {
		return "", nil, fmt.Errorf("messaging: decode envelope: %w", err)
	}
	return env.Origin, env.Payload, nil
}
