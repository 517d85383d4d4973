package ws

import (
	"net/http"

	"tetris_webapp/internal/logger"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
)

// содержит зависимости для обработки WebSocket
type WSHandler struct {
	Hub            *Hub
	AllowedOrigins []string
}

func NewWSHandler(hub *Hub, allowedOrigins []string) *WSHandler {
	return &WSHandler{
		Hub:            hub,
		AllowedOrigins: allowedOrigins,
	}
}

func (h *WSHandler) checkOrigin(r *http.Request) bool {
	if len(h.AllowedOrigins) == 0 {
		return true
	}
	origin := r.Header.Get("Origin")
	for _, allowed := range h.AllowedOrigins {
		if origin == allowed {
			return true
		}
	}
	return false
}

// HandlePlay открывает новую партию на каждое соединение
func (h *WSHandler) HandlePlay() gin.HandlerFunc {
	upgrader := websocket.Upgrader{
		ReadBufferSize:  1024,
		WriteBufferSize: 4096,
		CheckOrigin:     h.checkOrigin,
	}

	return func(c *gin.Context) {
		conn, err := upgrader.Upgrade(c.Writer, c.Request, nil)
		if err != nil {
			// upgrader уже ответил клиенту
			logger.Warn("ws upgrade error", "error", err)
			return
		}

		client := NewClient(conn, h.Hub, nil)
		go client.Run(h.Hub.Context())
	}
}
