package websocket

import (
	"context"
	"encoding/json"
	"sync"

	"github.com/redis/go-redis/v9"

	"github.com/vinixspb/vnxChooseApple-bot/internal/entity"
	"github.com/vinixspb/vnxChooseApple-bot/internal/pkg/logger"
)

const redisChannel = "lead_events"

// Hub fans completed leads out to connected operator dashboards. Every
// client gets every lead (there is no per-user routing on the operator
// side); redis pubsub relays leads across instances.
type Hub struct {
	clients map[*Client]struct{}

	register   chan *Client
	unregister chan *Client

	mu sync.RWMutex

	// Redis connection for cross-instance fan-out; nil disables it.
	rdb *redis.Client

	logger logger.ILogger
}

func NewHub(rdb *redis.Client, log logger.ILogger) *Hub {
	return &Hub{
		register:   make(chan *Client),
		unregister: make(chan *Client),
		clients:    make(map[*Client]struct{}),
		rdb:        rdb,
		logger:     log,
	}
}

func (h *Hub) Run() {
	if h.rdb != nil {
		go h.subscribeToRedis()
	}

	for {
		select {
		case client := <-h.register:
			h.mu.Lock()
			h.clients[client] = struct{}{}
			h.mu.Unlock()
			h.logger.Info("Hub", "Operator client registered", map[string]interface{}{
				"clients": len(h.clients),
			})

		case client := <-h.unregister:
			h.mu.Lock()
			if _, ok := h.clients[client]; ok {
				delete(h.clients, client)
				close(client.Send)
			}
			h.mu.Unlock()
		}
	}
}

// Broadcast sends a lead to every connected operator client and relays it
// to the other instances over redis.
func (h *Hub) Broadcast(lead *entity.Lead) {
	data, err := json.Marshal(map[string]interface{}{
		"type": "lead",
		"data": lead,
	})
	if err != nil {
		h.logger.Error("Hub", "Failed to serialize lead", map[string]interface{}{
			"error": err.Error(),
		})
		return
	}

	// With redis available the message is delivered through the
	// subscription on every instance, this one included; sending locally
	// as well would double-deliver.
	if h.rdb == nil {
		h.sendLocal(data)
		return
	}

	if err := h.rdb.Publish(context.Background(), redisChannel, data).Err(); err != nil {
		h.logger.Warn("Hub", "Redis publish failed, delivering locally only", map[string]interface{}{
			"error": err.Error(),
		})
		h.sendLocal(data)
	}
}

func (h *Hub) sendLocal(data []byte) {
	h.mu.RLock()
	defer h.mu.RUnlock()
	for client := range h.clients {
		select {
		case client.Send <- data:
		default:
			// Slow consumer; drop it rather than block the hub.
			go func(c *Client) { h.unregister <- c }(client)
		}
	}
}

// subscribeToRedis delivers leads published by any instance (this one
// included) to the local clients.
func (h *Hub) subscribeToRedis() {
	sub := h.rdb.Subscribe(context.Background(), redisChannel)
	defer sub.Close()

	for msg := range sub.Channel() {
		h.sendLocal([]byte(msg.Payload))
	}
}
