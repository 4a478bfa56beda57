package endpoints

import (
	"net/http"

	"github.com/gin-contrib/graceful"
	"github.com/gin-gonic/gin"
	gorilla "github.com/gorilla/websocket"
	"github.com/google/uuid"
	"github.com/rs/zerolog"

	pipelinellm "github.com/davy1ex/pipelineLLM"
	"github.com/davy1ex/pipelineLLM/internal/api/websocket"
)

var upgrader = gorilla.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	// The canvas dev server runs on another origin
	CheckOrigin: func(r *http.Request) bool { return true },
}

type websocketHandler struct {
	logger zerolog.Logger
	hub    *websocket.Hub
}

// WebSocketHandler sets up the execution event stream route
func WebSocketHandler(router *graceful.Graceful, hub *websocket.Hub) {
	h := &websocketHandler{
		logger: pipelinellm.Logger,
		hub:    hub,
	}

	router.GET("/api/ws", h.serve)
}

func (slf *websocketHandler) serve(c *gin.Context) {
	conn, err := upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		slf.logger.Error().Err(err).Msg("Failed to upgrade websocket connection")
		return
	}

	client := websocket.NewClient(uuid.NewString(), slf.hub, conn, slf.logger)
	slf.hub.Register <- client

	go client.WritePump()
	go client.ReadPump()
}
