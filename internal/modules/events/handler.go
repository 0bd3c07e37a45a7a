package events

import (
	"log"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	// Auth happens in middleware before the upgrade; origin checks are
	// handled by the CORS layer for the rest of the API.
	CheckOrigin: func(r *http.Request) bool { return true },
}

type Handler struct {
	hub *Hub
}

func NewHandler(hub *Hub) *Handler {
	return &Handler{hub: hub}
}

func (h *Handler) RegisterRoutes(r *gin.RouterGroup) {
	r.GET("/ws", h.Connect)
}

// Connect upgrades the request and holds the connection open until the
// client goes away. Inbound frames are read and discarded; the feed is
// one-way.
func (h *Handler) Connect(c *gin.Context) {
	conn, err := upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		log.Printf("[WS] upgrade failed: %v", err)
		return
	}

	id := h.hub.Register(conn)
	defer h.hub.Unregister(id)

	for {
		if _, _, err := conn.ReadMessage(); err != nil {
			return
		}
	}
}
