package events

import (
	"net/http"

	"cricketleague/internal/pkg/response"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/gorilla/websocket"
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	// Origin is enforced by the CORS middleware in front of this route.
	CheckOrigin: func(r *http.Request) bool { return true },
}

type Handler struct {
	hub     *Hub
	loggerf func(format string, args ...interface{})
}

func NewHandler(hub *Hub, loggerf func(format string, args ...interface{})) *Handler {
	if loggerf == nil {
		loggerf = func(string, ...interface{}) {}
	}
	return &Handler{hub: hub, loggerf: loggerf}
}

func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.GET("/admin/events", h.Subscribe)
}

// Subscribe upgrades the connection and streams lifecycle events until the
// client goes away. The read loop only exists to observe the close.
func (h *Handler) Subscribe(c *gin.Context) {
	conn, err := upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		response.Error(c, http.StatusBadRequest, "WEBSOCKET_UPGRADE_FAILED", "could not upgrade connection")
		return
	}

	clientID := uuid.New().String()
	h.hub.Register(clientID, conn)
	h.loggerf("level=info msg=event monitor connected client_id=%s total=%d", clientID, h.hub.ConnectedCount())

	go func() {
		defer func() {
			h.hub.Unregister(clientID)
			h.loggerf("level=info msg=event monitor disconnected client_id=%s", clientID)
		}()
		for {
			if _, _, err := conn.ReadMessage(); err != nil {
				return
			}
		}
	}()
}
