package websocket

import (
	"context"
	"encoding/json"
	"sync"

	"note-to-self/internal/pkg/logger"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

const clusterChannel = "notebook_events"

// clusterEnvelope carries a notebook event between instances. Origin lets an
// instance skip the copy of its own publish.
type clusterEnvelope struct {
	Origin     string          `json:"origin"`
	NotebookId int64           `json:"notebook_id"`
	Message    json.RawMessage `json:"message"`
}

// Hub tracks websocket subscribers per notebook and fans change events out to
// them, across instances when Redis is configured.
type Hub struct {
	// Registered clients: notebook id -> every connection watching it
	clients map[int64][]*Client

	register   chan *Client
	unregister chan *Client
	done       chan struct{}

	mu sync.RWMutex

	// optional; nil keeps delivery local to this instance
	rdb      *redis.Client
	instance string

	logger logger.ILogger
}

func NewHub(rdb *redis.Client, log logger.ILogger) *Hub {
	return &Hub{
		register:   make(chan *Client),
		unregister: make(chan *Client),
		done:       make(chan struct{}),
		clients:    make(map[int64][]*Client),
		rdb:        rdb,
		instance:   uuid.NewString(),
		logger:     log,
	}
}

// Run owns registration until ctx is done. Start it once, in its own goroutine.
func (h *Hub) Run(ctx context.Context) {
	defer close(h.done)

	if h.rdb != nil {
		go h.subscribeToRedis(ctx)
	}

	for {
		select {
		case <-ctx.Done():
			h.closeAll()
			return

		case client := <-h.register:
			h.mu.Lock()
			h.clients[client.NotebookId] = append(h.clients[client.NotebookId], client)
			h.mu.Unlock()
			h.logger.Info("Hub", "client registered", map[string]interface{}{
				"client_id":   client.ID,
				"notebook_id": client.NotebookId,
			})

		case client := <-h.unregister:
			h.remove(client)
		}
	}
}

// Register and Unregister return immediately once the hub has stopped.
func (h *Hub) Register(client *Client) {
	select {
	case h.register <- client:
	case <-h.done:
		close(client.Send)
	}
}

func (h *Hub) Unregister(client *Client) {
	select {
	case h.unregister <- client:
	case <-h.done:
	}
}

func (h *Hub) remove(client *Client) {
	h.mu.Lock()
	defer h.mu.Unlock()

	clients, ok := h.clients[client.NotebookId]
	if !ok {
		return
	}
	for i, c := range clients {
		if c == client {
			h.clients[client.NotebookId] = append(clients[:i], clients[i+1:]...)
			close(client.Send)
			break
		}
	}
	if len(h.clients[client.NotebookId]) == 0 {
		delete(h.clients, client.NotebookId)
		h.logger.Info("Hub", "no subscribers left", map[string]interface{}{"notebook_id": client.NotebookId})
	}
}

func (h *Hub) closeAll() {
	h.mu.Lock()
	defer h.mu.Unlock()
	for id, clients := range h.clients {
		for _, c := range clients {
			close(c.Send)
		}
		delete(h.clients, id)
	}
}

// SubscriberCount reports live connections for a notebook on this instance.
func (h *Hub) SubscriberCount(notebookId int64) int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.clients[notebookId])
}

// Send delivers payload to local subscribers of the notebook and, with Redis,
// to subscribers connected to other instances.
func (h *Hub) Send(notebookId int64, payload []byte) {
	h.deliverLocal(notebookId, payload)

	if h.rdb == nil {
		return
	}
	envelope, err := json.Marshal(clusterEnvelope{
		Origin:     h.instance,
		NotebookId: notebookId,
		Message:    payload,
	})
	if err != nil {
		h.logger.Error("Hub", "failed to encode cluster envelope", map[string]interface{}{"error": err.Error()})
		return
	}
	if err := h.rdb.Publish(context.Background(), clusterChannel, envelope).Err(); err != nil {
		h.logger.Warn("Hub", "failed to publish to redis", map[string]interface{}{
			"notebook_id": notebookId,
			"error":       err.Error(),
		})
	}
}

func (h *Hub) deliverLocal(notebookId int64, payload []byte) {
	// sends are non-blocking; holding the read lock keeps remove from closing
	// a channel mid-send
	h.mu.RLock()
	defer h.mu.RUnlock()

	for _, client := range h.clients[notebookId] {
		select {
		case client.Send <- payload:
		default:
			h.logger.Warn("Hub", "client send buffer full, dropping connection", map[string]interface{}{
				"client_id":   client.ID,
				"notebook_id": notebookId,
			})
			go h.Unregister(client)
		}
	}
}

func (h *Hub) subscribeToRedis(ctx context.Context) {
	pubsub := h.rdb.Subscribe(ctx, clusterChannel)
	defer pubsub.Close()

	ch := pubsub.Channel()
	for {
		select {
		case <-ctx.Done():
			return
		case msg, ok := <-ch:
			if !ok {
				return
			}
			h.handleClusterMessage([]byte(msg.Payload))
		}
	}
}

func (h *Hub) handleClusterMessage(raw []byte) {
	var envelope clusterEnvelope
	if err := json.Unmarshal(raw, &envelope); err != nil {
		h.logger.Warn("Hub", "redis message parse error", map[string]interface{}{"error": err.Error()})
		return
	}
	if envelope.Origin == h.instance {
		return
	}
	h.deliverLocal(envelope.NotebookId, envelope.Message)
}
