package ws

import (
	"log"
	"net/http"

	"skillsync/internal/delivery/http/middleware"

	"github.com/gofiber/fiber/v3"
	"github.com/gofiber/fiber/v3/middleware/adaptor"
	"github.com/google/uuid"
	"github.com/gorilla/websocket"
)

// TokenValidator resolves an access token to a user id.
type TokenValidator interface {
	ValidateToken(token string) (uuid.UUID, error)
}

type Handler struct {
	hub    *Hub
	auth   TokenValidator
	logger *log.Logger
}

func NewHandler(hub *Hub, auth TokenValidator, logger *log.Logger) *Handler {
	return &Handler{hub: hub, auth: auth, logger: logger}
}

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin: func(r *http.Request) bool {
		return true
	},
}

func (h *Handler) RegisterRoutes(r fiber.Router) {
	if r == nil {
		return
	}
	r.Get("/ws/rooms/:room_id", h.HandleRoomWS)
}

// HandleRoomWS joins the caller to a chat room. Browsers cannot set headers on
// websocket requests, so the access token comes from ?token=.
func (h *Handler) HandleRoomWS(c fiber.Ctx) error {
	if h == nil || h.hub == nil || h.auth == nil {
		return fiber.ErrServiceUnavailable
	}

	roomID := c.Params("room_id")
	if !ValidRoomID(roomID) {
		return middleware.NewAppError(fiber.StatusBadRequest, "Invalid room id", nil, nil)
	}

	userID, err := h.auth.ValidateToken(c.Query("token"))
	if err != nil {
		return middleware.NewAppError(fiber.StatusUnauthorized, "Invalid token", nil, err)
	}

	return adaptor.HTTPHandlerFunc(h.serveRoom(roomID, userID))(c)
}

func (h *Handler) serveRoom(roomID string, userID uuid.UUID) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		conn, err := upgrader.Upgrade(w, r, nil)
		if err != nil {
			if h.logger != nil {
				h.logger.Printf("WS upgrade error | room=%s error=%v", roomID, err)
			}
			return
		}

		client := NewClient(h.hub, conn, roomID, userID)
		h.hub.Register(client)
		go client.WritePump()
		go client.ReadPump()
	}
}
