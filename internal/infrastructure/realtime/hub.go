package realtime

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/bytedance/sonic"
	"github.com/riskibarqy/gameday-rotation/internal/platform/logging"
	"github.com/riskibarqy/gameday-rotation/internal/usecase"
	"github.com/valyala/bytebufferpool"
)

const (
	FrameTypeState = "state"
	FrameTypeEvent = "event"
)

// Frame is one websocket message sent to live subscribers.
type Frame struct {
	Type       string    `json:"type"`
	Event      string    `json:"event,omitempty"`
	GameID     string    `json:"game_id"`
	MatchID    string    `json:"match_id,omitempty"`
	OccurredAt time.Time `json:"occurred_at"`
	Data       any       `json:"data,omitempty"`
}

// Hub fans game events out to the websocket clients watching each game.
// It is the local EventPublisher; RedisRelay wraps it for multi-replica setups.
type Hub struct {
	rooms      map[string]map[*Client]struct{}
	register   chan *Client
	unregister chan *Client
	broadcast  chan usecase.GameEvent
	done       chan struct{}
	mu         sync.RWMutex
	logger     *logging.Logger
}

func NewHub(logger *logging.Logger) *Hub {
	if logger == nil {
		logger = logging.Default()
	}

	return &Hub{
		rooms:      make(map[string]map[*Client]struct{}),
		register:   make(chan *Client),
		unregister: make(chan *Client),
		broadcast:  make(chan usecase.GameEvent, 256),
		done:       make(chan struct{}),
		logger:     logger,
	}
}

// Run owns room membership until ctx is cancelled, then closes every client.
func (h *Hub) Run(ctx context.Context) error {
	h.logger.Info("websocket hub started")
	defer close(h.done)

	for {
		select {
		case <-ctx.Done():
			h.closeAll()
			h.logger.Info("websocket hub stopped")
			return nil

		case client := <-h.register:
			h.mu.Lock()
			room, ok := h.rooms[client.gameID]
			if !ok {
				room = make(map[*Client]struct{})
				h.rooms[client.gameID] = room
			}
			room[client] = struct{}{}
			h.mu.Unlock()
			h.logger.Debug("live client registered", "game_id", client.gameID, "subscribers", h.SubscriberCount(client.gameID))

		case client := <-h.unregister:
			h.remove(client)

		case event := <-h.broadcast:
			h.deliver(event)
		}
	}
}

func (h *Hub) PublishGameEvent(ctx context.Context, event usecase.GameEvent) error {
	select {
	case h.broadcast <- event:
	case <-h.done:
	default:
		h.logger.WarnContext(ctx, "live broadcast queue full, dropping event",
			"game_id", event.GameID,
			"event", event.Type,
		)
	}
	return nil
}

func (h *Hub) SubscriberCount(gameID string) int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.rooms[gameID])
}

func (h *Hub) add(client *Client) bool {
	select {
	case h.register <- client:
		return true
	case <-h.done:
		return false
	}
}

func (h *Hub) drop(client *Client) {
	select {
	case h.unregister <- client:
	case <-h.done:
	}
}

func (h *Hub) remove(client *Client) {
	h.mu.Lock()
	defer h.mu.Unlock()

	room, ok := h.rooms[client.gameID]
	if !ok {
		return
	}
	if _, ok := room[client]; !ok {
		return
	}
	delete(room, client)
	close(client.send)
	if len(room) == 0 {
		delete(h.rooms, client.gameID)
	}
}

func (h *Hub) deliver(event usecase.GameEvent) {
	data, err := EncodeFrame(Frame{
		Type:       FrameTypeEvent,
		Event:      event.Type,
		GameID:     event.GameID,
		MatchID:    event.MatchID,
		OccurredAt: event.OccurredAt,
	})
	if err != nil {
		h.logger.Error("encode live frame failed", "game_id", event.GameID, "error", err)
		return
	}

	h.mu.RLock()
	defer h.mu.RUnlock()
	for client := range h.rooms[event.GameID] {
		select {
		case client.send <- data:
		default:
			h.logger.Warn("live client buffer full, skipping", "game_id", event.GameID)
		}
	}
}

func (h *Hub) closeAll() {
	h.mu.Lock()
	defer h.mu.Unlock()

	for gameID, room := range h.rooms {
		for client := range room {
			close(client.send)
		}
		delete(h.rooms, gameID)
	}
}

// EncodeFrame renders a frame as one JSON text message.
func EncodeFrame(frame Frame) ([]byte, error) {
	buf := bytebufferpool.Get()
	defer bytebufferpool.Put(buf)

	if err := sonic.ConfigDefault.NewEncoder(buf).Encode(frame); err != nil {
		return nil, fmt.Errorf("encode live frame: %w", err)
	}
	return append([]byte(nil), buf.B...), nil
}
