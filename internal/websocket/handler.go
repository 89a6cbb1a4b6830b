package websocket

import (
	"github.com/gofiber/websocket/v2"
	"github.com/google/uuid"
)

func NewClient(hub *Hub, conn *websocket.Conn, notebookId int64, sessionId string) *Client {
	return &Client{
		ID:         uuid.NewString(),
		Hub:        hub,
		Conn:       conn,
		NotebookId: notebookId,
		SessionId:  sessionId,
		Send:       make(chan []byte, sendBuffer),
	}
}

// ServeWs registers the connection for the notebook and blocks until the
// peer goes away.
func ServeWs(hub *Hub, conn *websocket.Conn, notebookId int64, sessionId string) {
	client := NewClient(hub, conn, notebookId, sessionId)
	hub.Register(client)

	go client.writePump()
	client.readPump()
}
