package ws

import (
	"context"
	"encoding/json"
	"log"
	"sync"

	"skillsync/internal/pkg/metrics"
)

// Relay forwards room traffic to other server instances.
type Relay interface {
	PublishRoom(roomID string, data []byte) error
}

type roomMessage struct {
	roomID string
	data   []byte
	source string
}

// Hub fans chat messages out to the clients joined to each room.
type Hub struct {
	rooms      map[string]map[*Client]bool
	broadcast  chan roomMessage
	register   chan *Client
	unregister chan *Client
	mutex      sync.RWMutex
	logger     *log.Logger
	relay      Relay

	done     chan struct{}
	stopOnce sync.Once
}

func NewHub(logger *log.Logger) *Hub {
	return &Hub{
		rooms:      make(map[string]map[*Client]bool),
		broadcast:  make(chan roomMessage, 1024),
		register:   make(chan *Client, 128),
		unregister: make(chan *Client, 128),
		logger:     logger,
		done:       make(chan struct{}),
	}
}

// SetRelay must be called before Run.
func (h *Hub) SetRelay(r Relay) {
	if h == nil {
		return
	}
	h.relay = r
}

// Run owns room membership until ctx is done. Once it returns, Register and
// Unregister no longer block.
func (h *Hub) Run(ctx context.Context) {
	defer h.stopOnce.Do(func() { close(h.done) })

	for {
		select {
		case <-ctx.Done():
			h.closeAll()
			return

		case client := <-h.register:
			if client == nil {
				continue
			}
			h.mutex.Lock()
			members := h.rooms[client.roomID]
			if members == nil {
				members = make(map[*Client]bool)
				h.rooms[client.roomID] = members
			}
			members[client] = true
			total := len(members)
			h.mutex.Unlock()
			metrics.ChatConnections.Inc()
			h.logf("WS joined | room=%s user=%s room_clients=%d", client.roomID, client.userID, total)

		case client := <-h.unregister:
			if client == nil {
				continue
			}
			if h.remove(client) {
				metrics.ChatConnections.Dec()
				h.logf("WS left | room=%s user=%s", client.roomID, client.userID)
			}

		case msg := <-h.broadcast:
			h.mutex.RLock()
			members := make([]*Client, 0, len(h.rooms[msg.roomID]))
			for c := range h.rooms[msg.roomID] {
				members = append(members, c)
			}
			h.mutex.RUnlock()

			for _, client := range members {
				if client.deliver(msg.data) {
					continue
				}
				if h.remove(client) {
					metrics.ChatConnections.Dec()
					h.logf("WS dropped slow client | room=%s user=%s", client.roomID, client.userID)
				}
			}
			metrics.ChatMessages.WithLabelValues(msg.source).Inc()
		}
	}
}

// Register joins client to its room. A client registered after the hub has
// stopped is closed immediately.
func (h *Hub) Register(client *Client) {
	if h == nil || client == nil {
		return
	}
	select {
	case h.register <- client:
	case <-h.done:
		client.closeSend()
	}
}

func (h *Hub) Unregister(client *Client) {
	if h == nil || client == nil {
		return
	}
	select {
	case h.unregister <- client:
	case <-h.done:
	}
}

// Publish delivers a message sent by a local client to its room and hands it
// to the relay, if any.
func (h *Hub) Publish(msg Message) {
	if h == nil {
		return
	}
	data, err := json.Marshal(msg)
	if err != nil {
		h.logf("WS encode error | room=%s error=%v", msg.RoomID, err)
		return
	}

	h.enqueue(roomMessage{roomID: msg.RoomID, data: data, source: "local"})

	if h.relay != nil {
		if err := h.relay.PublishRoom(msg.RoomID, data); err != nil {
			h.logf("WS relay publish failed | room=%s error=%v", msg.RoomID, err)
		}
	}
}

// Deliver hands a message received from another instance to local members only.
func (h *Hub) Deliver(roomID string, data []byte) {
	if h == nil || !ValidRoomID(roomID) || len(data) == 0 {
		return
	}
	h.enqueue(roomMessage{roomID: roomID, data: data, source: "relay"})
}

func (h *Hub) RoomClientCount(roomID string) int {
	if h == nil {
		return 0
	}
	h.mutex.RLock()
	defer h.mutex.RUnlock()
	return len(h.rooms[roomID])
}

func (h *Hub) enqueue(msg roomMessage) {
	select {
	case h.broadcast <- msg:
	default:
		h.logf("WS broadcast dropped | room=%s reason=buffer_full", msg.roomID)
	}
}

func (h *Hub) remove(client *Client) bool {
	h.mutex.Lock()
	defer h.mutex.Unlock()

	members, ok := h.rooms[client.roomID]
	if !ok || !members[client] {
		return false
	}
	delete(members, client)
	if len(members) == 0 {
		delete(h.rooms, client.roomID)
	}
	client.closeSend()
	return true
}

func (h *Hub) closeAll() {
	h.mutex.Lock()
	defer h.mutex.Unlock()
	for roomID, members := range h.rooms {
		for c := range members {
			c.closeSend()
			metrics.ChatConnections.Dec()
		}
		delete(h.rooms, roomID)
	}

	// registrations still queued never joined a room
	for {
		select {
		case c := <-h.register:
			if c != nil {
				c.closeSend()
			}
		default:
			return
		}
	}
}

func (h *Hub) logf(format string, args ...any) {
	if h.logger != nil {
		h.logger.Printf(format, args...)
	}
}
