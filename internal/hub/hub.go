package hub

import (
	"context"
	"encoding/json"
	"net/http"
	"sync"
	"time"

	"hotstock/config"
	"hotstock/internal/dto"
	"hotstock/pkg/logger"
	"hotstock/pkg/utils"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"
)

// Broadcaster fans an event out to every currently-open viewer connection.
// Delivery is best-effort: a viewer that is slow or gone is skipped.
type Broadcaster interface {
	Broadcast(event dto.Event)
}

var wsUpgrader = websocket.Upgrader{
	CheckOrigin:       func(*http.Request) bool { return true },
	EnableCompression: true,
}

// Client is one live viewer connection. Events are queued on out and written
// by a dedicated pump, so broadcasting never blocks on the socket.
type Client struct {
	ID        string
	conn      *websocket.Conn
	out       chan dto.Event
	done      chan struct{}
	closeOnce sync.Once
}

func (c *Client) close() {
	c.closeOnce.Do(func() {
		close(c.done)
	})
}

type Hub struct {
	cfg config.Hub
	log *logger.Logger

	mu      sync.RWMutex
	clients map[*Client]struct{}
}

func New(cfg config.Hub, log *logger.Logger) *Hub {
	return &Hub{
		cfg:     cfg,
		log:     log,
		clients: make(map[*Client]struct{}),
	}
}

func (h *Hub) add(c *Client) {
	h.mu.Lock()
	h.clients[c] = struct{}{}
	h.mu.Unlock()
}

func (h *Hub) remove(c *Client) {
	h.mu.Lock()
	delete(h.clients, c)
	h.mu.Unlock()
}

// ClientCount returns the number of currently-open connections.
func (h *Hub) ClientCount() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.clients)
}

// Broadcast queues the event on every open connection. A client whose buffer
// is full misses the event rather than blocking the caller.
func (h *Hub) Broadcast(event dto.Event) {
	h.mu.RLock()
	defer h.mu.RUnlock()
	for c := range h.clients {
		select {
		case c.out <- event:
		default:
		}
	}
}

// Close drops every connection without draining queued events.
func (h *Hub) Close() {
	h.mu.Lock()
	defer h.mu.Unlock()
	for c := range h.clients {
		c.close()
		if c.conn != nil {
			_ = c.conn.Close()
		}
		delete(h.clients, c)
	}
}

// ServeWS upgrades the request and runs the connection until the viewer goes
// away. Inbound danmaku submissions are handed to onDanmaku; everything else
// a viewer sends is ignored.
func (h *Hub) ServeWS(onDanmaku func(ctx context.Context, msg dto.InboundMessage)) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		conn, err := wsUpgrader.Upgrade(w, r, nil)
		if err != nil {
			return
		}
		defer conn.Close()

		cl := &Client{
			ID:   uuid.NewString(),
			conn: conn,
			out:  make(chan dto.Event, h.cfg.ClientBufferSize),
			done: make(chan struct{}),
		}
		h.add(cl)
		h.log.Info("viewer connected", logger.StringField("client_id", cl.ID))

		// writer pump
		utils.GoSafe(func() {
			ping := time.NewTicker(h.cfg.PingInterval)
			defer ping.Stop()
			for {
				select {
				case event := <-cl.out:
					if err := conn.WriteJSON(event); err != nil {
						return
					}
				case <-ping.C:
					_ = conn.WriteMessage(websocket.PingMessage, nil)
				case <-cl.done:
					return
				}
			}
		})

		_ = conn.SetReadDeadline(time.Now().Add(h.cfg.PongWait))
		conn.SetPongHandler(func(string) error {
			return conn.SetReadDeadline(time.Now().Add(h.cfg.PongWait))
		})

		for {
			mt, data, err := conn.ReadMessage()
			if err != nil {
				break
			}
			if mt != websocket.TextMessage {
				continue
			}

			var msg dto.InboundMessage
			if err := json.Unmarshal(data, &msg); err != nil {
				h.log.Warn("malformed viewer message", logger.StringField("client_id", cl.ID), logger.ErrorField(err))
				continue
			}
			if msg.Type == dto.EventTypeDanmaku && onDanmaku != nil {
				onDanmaku(r.Context(), msg)
			}
		}

		cl.close()
		h.remove(cl)
		h.log.Info("viewer disconnected", logger.StringField("client_id", cl.ID))
	}
}
