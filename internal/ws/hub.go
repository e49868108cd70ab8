package ws

import (
	"context"
	"encoding/json"
	"sync"

	"github.com/gofiber/contrib/websocket"
	"github.com/gofiber/fiber/v2"

	"go-shop-backoffice/pkg/logger"
)

// Event types pushed to connected back-office screens.
const (
	EventSaleRecorded = "sale_recorded"
	EventStockUpdate  = "stock_update"
)

// Event is the JSON frame sent to every client.
type Event struct {
	Type    string      `json:"type"`
	Action  string      `json:"action,omitempty"`
	Data    interface{} `json:"data,omitempty"`
	Message string      `json:"message,omitempty"`
}

// Client is the part of *websocket.Conn the hub needs.
type Client interface {
	WriteMessage(messageType int, data []byte) error
	Close() error
}

// Publisher is what services depend on; the hub implements it.
type Publisher interface {
	Publish(Event)
}

const broadcastBuffer = 64

type Hub struct {
	Clients    map[Client]bool
	Register   chan Client
	Unregister chan Client
	Broadcast  chan []byte
	done       chan struct{}
	mutex      sync.Mutex
	log        *logger.Logger
}

func NewHub(log *logger.Logger) *Hub {
	if log == nil {
		log = logger.Nop()
	}
	return &Hub{
		Clients:    make(map[Client]bool),
		Register:   make(chan Client),
		Unregister: make(chan Client),
		Broadcast:  make(chan []byte, broadcastBuffer),
		done:       make(chan struct{}),
		log:        log.WithComponent("ws"),
	}
}

// Run serves the channels until ctx is done, then closes every client.
// Run must be called at most once.
func (h *Hub) Run(ctx context.Context) {
	defer close(h.done)
	for {
		select {
		case <-ctx.Done():
			h.mutex.Lock()
			for conn := range h.Clients {
				conn.Close()
				delete(h.Clients, conn)
			}
			h.mutex.Unlock()
			return

		case conn := <-h.Register:
			h.mutex.Lock()
			h.Clients[conn] = true
			n := len(h.Clients)
			h.mutex.Unlock()
			h.log.Debugw("client connected", "clients", n)

		case conn := <-h.Unregister:
			h.mutex.Lock()
			if _, ok := h.Clients[conn]; ok {
				delete(h.Clients, conn)
				conn.Close()
			}
			h.mutex.Unlock()

		case message := <-h.Broadcast:
			h.mutex.Lock()
			for conn := range h.Clients {
				if err := conn.WriteMessage(websocket.TextMessage, message); err != nil {
					h.log.Debugw("dropping client after write failure", "error", err)
					conn.Close()
					delete(h.Clients, conn)
				}
			}
			h.mutex.Unlock()
		}
	}
}

// Publish queues ev for broadcast. It never blocks a request: when the queue
// is full the event is dropped and logged.
func (h *Hub) Publish(ev Event) {
	msg, err := json.Marshal(ev)
	if err != nil {
		h.log.Errorw("encode event", "type", ev.Type, "error", err)
		return
	}
	select {
	case h.Broadcast <- msg:
	default:
		h.log.Warnw("broadcast queue full, event dropped", "type", ev.Type)
	}
}

// ClientCount reports how many clients are connected.
func (h *Hub) ClientCount() int {
	h.mutex.Lock()
	defer h.mutex.Unlock()
	return len(h.Clients)
}

// Routes mounts the /ws feed on r. Mount it on an authenticated router: the
// feed carries every recorded sale.
func (h *Hub) Routes(r fiber.Router) {
	r.Use("/ws", func(c *fiber.Ctx) error {
		if websocket.IsWebSocketUpgrade(c) {
			return c.Next()
		}
		return c.SendStatus(fiber.StatusUpgradeRequired)
	})
	r.Get("/ws", websocket.New(h.Serve))
}

// Done is closed once Run has returned.
func (h *Hub) Done() <-chan struct{} {
	return h.done
}

// Serve is the per-connection loop for the /ws route.
func (h *Hub) Serve(c *websocket.Conn) {
	h.attach(c, func() {
		for {
			if _, _, err := c.ReadMessage(); err != nil {
				return
			}
		}
	})
}

// attach keeps client registered while read runs. After Run has stopped it
// neither registers nor waits to unregister.
func (h *Hub) attach(client Client, read func()) {
	select {
	case h.Register <- client:
	case <-h.done:
		client.Close()
		return
	}
	defer func() {
		select {
		case h.Unregister <- client:
		case <-h.done:
		}
	}()

	read()
}
