package service

import (
	"context"
	"encoding/json"
	"net/http"
	"sync"
	"time"

	"github.com/khan-masud/exam-station/pkg/logger"

	"github.com/go-redis/redis/v8"
	"github.com/gorilla/websocket"
	"go.uber.org/zap"
	"golang.org/x/time/rate"
)

const (
	writeWait      = 10 * time.Second
	pongWait       = 60 * time.Second
	pingPeriod     = (pongWait * 9) / 10
	maxMessageSize = 512
	shardCount     = 16

	eventChannel = "exam_events"
)

// Event types pushed to connected clients.
const (
	EventExamSubmitted      = "EXAM_SUBMITTED"
	EventLeaderboardUpdated = "LEADERBOARD_UPDATED"
	EventExamPublished      = "EXAM_PUBLISHED"
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin: func(r *http.Request) bool {
		return true
	},
}

type Event struct {
	Type string      `json:"type"`
	Data interface{} `json:"data"`
}

// pubSubEvent is the fan-out envelope on the Redis channel, so multiple
// instances can deliver to whichever one holds the target connection.
type pubSubEvent struct {
	TargetUsers []uint          `json:"targetUsers"`
	Payload     json.RawMessage `json:"payload"`
}

type EventClient struct {
	Hub     *EventHub
	Conn    *websocket.Conn
	Send    chan []byte
	UserID  uint
	Limiter *rate.Limiter
}

// readPump drains the client. The event stream is one-way; inbound frames
// only keep the connection alive, but still pass through the limiter so a
// chatty client cannot spin the read loop.
func (c *EventClient) readPump() {
	defer func() {
		select {
		case c.Hub.unregister <- c:
		case <-c.Hub.ctx.Done():
		}
		c.Conn.Close()
	}()
	c.Conn.SetReadLimit(maxMessageSize)
	c.Conn.SetReadDeadline(time.Now().Add(pongWait))
	c.Conn.SetPongHandler(func(string) error { c.Conn.SetReadDeadline(time.Now().Add(pongWait)); return nil })
	for {
		_, _, err := c.Conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseAbnormalClosure) {
				logger.Log.Error("WebSocket unexpected close", zap.Error(err), zap.Uint("userId", c.UserID))
			}
			break
		}
		if !c.Limiter.Allow() {
			continue
		}
	}
}

func (c *EventClient) writePump() {
	ticker := time.NewTicker(pingPeriod)
	defer func() {
		ticker.Stop()
		c.Conn.Close()
	}()
	for {
		select {
		case message, ok := <-c.Send:
			c.Conn.SetWriteDeadline(time.Now().Add(writeWait))
			if !ok {
				c.Conn.WriteMessage(websocket.CloseMessage, []byte{})
				return
			}

			w, err := c.Conn.NextWriter(websocket.TextMessage)
			if err != nil {
				return
			}
			w.Write(message)

			if n := len(c.Send); n > 0 {
				for i := 0; i < n; i++ {
					w.Write(<-c.Send)
				}
			}

			if err := w.Close(); err != nil {
				return
			}
		case <-ticker.C:
			c.Conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := c.Conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}

type eventShard struct {
	clients map[uint]*EventClient
	mu      sync.RWMutex
}

// EventHub pushes exam lifecycle events to connected students and teachers.
// Connections are sharded by user ID; cross-instance delivery goes through a
// Redis pub/sub channel.
type EventHub struct {
	shards     [shardCount]*eventShard
	register   chan *EventClient
	unregister chan *EventClient
	Redis      *redis.Client
	ctx        context.Context
	cancel     context.CancelFunc
}

func NewEventHub(rdb *redis.Client) *EventHub {
	ctx, cancel := context.WithCancel(context.Background())
	h := &EventHub{
		register:   make(chan *EventClient),
		unregister: make(chan *EventClient),
		Redis:      rdb,
		ctx:        ctx,
		cancel:     cancel,
	}
	for i := 0; i < shardCount; i++ {
		h.shards[i] = &eventShard{
			clients: make(map[uint]*EventClient),
		}
	}
	return h
}

func (h *EventHub) getShard(userID uint) *eventShard {
	return h.shards[userID%shardCount]
}

func (h *EventHub) Run() {
	pubsub := h.Redis.Subscribe(h.ctx, eventChannel)
	go func() {
		ch := pubsub.Channel()
		for msg := range ch {
			var ps pubSubEvent
			if err := json.Unmarshal([]byte(msg.Payload), &ps); err != nil {
				logger.Log.Error("event pubsub unmarshal error", zap.Error(err))
				continue
			}
			h.deliverLocal(ps.TargetUsers, ps.Payload)
		}
	}()

	for {
		select {
		case client := <-h.register:
			s := h.getShard(client.UserID)
			s.mu.Lock()
			s.clients[client.UserID] = client
			s.mu.Unlock()

		case client := <-h.unregister:
			s := h.getShard(client.UserID)
			s.mu.Lock()
			if _, ok := s.clients[client.UserID]; ok {
				delete(s.clients, client.UserID)
				close(client.Send)
			}
			s.mu.Unlock()

		case <-h.ctx.Done():
			pubsub.Close()
			return
		}
	}
}

// PushToUsers publishes an event for the given users. An empty target list
// broadcasts to every connected client.
func (h *EventHub) PushToUsers(userIDs []uint, event Event) {
	payload, err := json.Marshal(event)
	if err != nil {
		logger.Log.Error("event marshal error", zap.Error(err), zap.String("type", event.Type))
		return
	}
	ps, _ := json.Marshal(pubSubEvent{TargetUsers: userIDs, Payload: payload})
	if err := h.Redis.Publish(h.ctx, eventChannel, ps).Err(); err != nil {
		logger.Log.Warn("event publish failed, delivering locally only", zap.Error(err))
		h.deliverLocal(userIDs, payload)
	}
}

func (h *EventHub) Broadcast(event Event) {
	h.PushToUsers(nil, event)
}

func (h *EventHub) deliverLocal(userIDs []uint, payload []byte) {
	if len(userIDs) == 0 {
		for i := 0; i < shardCount; i++ {
			s := h.shards[i]
			s.mu.RLock()
			for _, client := range s.clients {
				select {
				case client.Send <- payload:
				default:
				}
			}
			s.mu.RUnlock()
		}
		return
	}

	for _, id := range userIDs {
		s := h.getShard(id)
		s.mu.RLock()
		if client, ok := s.clients[id]; ok {
			select {
			case client.Send <- payload:
			default:
			}
		}
		s.mu.RUnlock()
	}
}

// Stop closes all connections and halts the run loop.
func (h *EventHub) Stop() {
	closed := 0
	for i := 0; i < shardCount; i++ {
		s := h.shards[i]
		s.mu.Lock()
		for userID, client := range s.clients {
			close(client.Send)
			delete(s.clients, userID)
			closed++
		}
		s.mu.Unlock()
	}
	h.cancel()
	logger.Log.Info("event hub stopped", zap.Int("closedConnections", closed))
}

func ServeEvents(hub *EventHub, w http.ResponseWriter, r *http.Request, userID uint) {
	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		logger.Log.Error("WebSocket upgrade failed", zap.Error(err), zap.Uint("userId", userID))
		return
	}
	client := &EventClient{
		Hub:     hub,
		Conn:    conn,
		Send:    make(chan []byte, 256),
		UserID:  userID,
		Limiter: rate.NewLimiter(rate.Limit(10), 20),
	}
	client.Hub.register <- client

	go client.writePump()
	go client.readPump()
}
