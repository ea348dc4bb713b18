package events

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
	"go.uber.org/zap"

	"salonbook/internal/pkg/response"
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin:     func(r *http.Request) bool { return true },
}

type Handler struct {
	hub *Hub
}

func NewHandler(hub *Hub) *Handler {
	return &Handler{hub: hub}
}

// Subscribe upgrades the connection and streams lifecycle events for the
// authenticated admin's salon until the client goes away.
func (h *Handler) Subscribe(c *gin.Context) {
	salonID := c.GetString("salon_id")
	if salonID == "" {
		response.Error(c, http.StatusUnauthorized, "UNAUTHORIZED", "Missing salon context")
		return
	}

	conn, err := upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		zap.L().Warn("websocket upgrade failed", zap.Error(err))
		return
	}

	h.hub.Register(salonID, conn)

	// Drain control frames; any read error means the client is gone.
	go func() {
		defer h.hub.Unregister(conn)
		for {
			if _, _, err := conn.ReadMessage(); err != nil {
				return
			}
		}
	}()
}
