package websocket

import (
	"context"
	"encoding/json"
	"log"
	"sync"

	"github.com/FishWY/lunwen-workspace/internal/pkg/logger"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

// ProgressEvent is one generation progress update pushed to every open tab
// of a workspace.
type ProgressEvent struct {
	WorkspaceID uuid.UUID              `json:"workspace_id"`
	Stage       string                 `json:"stage"`
	Detail      map[string]interface{} `json:"detail,omitempty"`
}

type Hub struct {
	// Registered clients map: WorkspaceID -> List of Clients (multi-tab)
	clients map[uuid.UUID][]*Client

	// Register requests from the clients.
	register chan *Client

	// Unregister requests from clients.
	unregister chan *Client

	// Lock for safe map access
	mu sync.RWMutex

	// Redis connection for cross-instance communication
	rdb *redis.Client

	// Dedicated Logger
	logger logger.ILogger
}

func NewHub(rdb *redis.Client, log logger.ILogger) *Hub {
	return &Hub{
		register:   make(chan *Client),
		unregister: make(chan *Client),
		clients:    make(map[uuid.UUID][]*Client),
		rdb:        rdb,
		logger:     log,
	}
}

func (h *Hub) Run() {
	// Start Redis Subscriber if Redis is available
	if h.rdb != nil {
		go h.subscribeToRedis()
	}

	for {
		select {
		case client := <-h.register:
			h.mu.Lock()
			h.clients[client.WorkspaceID] = append(h.clients[client.WorkspaceID], client)
			h.mu.Unlock()
			h.logger.Info("Hub", "Client registered", map[string]interface{}{"workspace_id": client.WorkspaceID})

		case client := <-h.unregister:
			h.mu.Lock()
			if clients, ok := h.clients[client.WorkspaceID]; ok {
				for i, c := range clients {
					if c == client {
						h.clients[client.WorkspaceID] = append(clients[:i], clients[i+1:]...)
						close(client.Send)
						break
					}
				}
				if len(h.clients[client.WorkspaceID]) == 0 {
					delete(h.clients, client.WorkspaceID)
					h.logger.Info("Hub", "Client completely unregistered", map[string]interface{}{"workspace_id": client.WorkspaceID})
				}
			}
			h.mu.Unlock()
		}
	}
}

// SendProgress pushes an event to every tab watching the workspace, and
// mirrors it over Redis so other instances can deliver it too.
func (h *Hub) SendProgress(event ProgressEvent) {
	data, _ := json.Marshal(map[string]interface{}{
		"type": "generation_progress",
		"data": event,
	})

	h.mu.RLock()
	clients, localFound := h.clients[event.WorkspaceID]
	h.mu.RUnlock()

	if localFound {
		for _, client := range clients {
			select {
			case client.Send <- data:
			default:
				h.logger.Warn("Hub", "Client Send buffer full, dropping message", map[string]interface{}{"workspace_id": event.WorkspaceID})
				close(client.Send)
				h.unregister <- client
			}
		}
	}

	if h.rdb != nil {
		payload := map[string]interface{}{
			"target_workspace_id": event.WorkspaceID.String(),
			"message":             data,
		}
		jsonPayload, _ := json.Marshal(payload)
		h.rdb.Publish(context.Background(), "cluster_events", jsonPayload)
	}
}

func (h *Hub) subscribeToRedis() {
	// All instances subscribe to "cluster_events". When a message arrives,
	// deliver it to local tabs of the target workspace if any are connected.
	ctx := context.Background()
	pubsub := h.rdb.Subscribe(ctx, "cluster_events")
	defer pubsub.Close()

	ch := pubsub.Channel()

	for msg := range ch {
		var payload struct {
			TargetWorkspaceID string          `json:"target_workspace_id"`
			Message           json.RawMessage `json:"message"`
		}
		if err := json.Unmarshal([]byte(msg.Payload), &payload); err != nil {
			log.Printf("Redis msg parse error: %v", err)
			continue
		}

		wid, err := uuid.Parse(payload.TargetWorkspaceID)
		if err != nil {
			continue
		}

		h.mu.RLock()
		clients, ok := h.clients[wid]
		h.mu.RUnlock()
		if !ok {
			continue
		}
		for _, client := range clients {
			select {
			case client.Send <- payload.Message:
			default:
				close(client.Send)
				h.unregister <- client
			}
		}
	}
}
