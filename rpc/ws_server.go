package rpc

import (
	"encoding/json"
	"net/http"
	"sync/atomic"

	"github.com/adil14788/Epic-game/log"
	"github.com/gorilla/websocket"
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 4096,
	CheckOrigin:     func(r *http.Request) bool { return true },
}

type WSMessage struct {
	Type string      `json:"type"`
	Data interface{} `json:"data"`
}

type WebSocketHub struct {
	clients    map[*websocket.Conn]bool
	register   chan *websocket.Conn
	unregister chan *websocket.Conn
	broadcast  chan WSMessage
	quit       chan struct{}
	done       chan struct{}
	connected  atomic.Int64
	logger     *log.Logger
}

func NewWebSocketHub(logger *log.Logger) *WebSocketHub {
	return &WebSocketHub{
		clients:    make(map[*websocket.Conn]bool),
		register:   make(chan *websocket.Conn),
		unregister: make(chan *websocket.Conn),
		broadcast:  make(chan WSMessage, 64),
		quit:       make(chan struct{}),
		done:       make(chan struct{}),
		logger:     logger,
	}
}

func (h *WebSocketHub) Run() {
	defer close(h.done)
	for {
		select {
		case conn := <-h.register:
			h.clients[conn] = true
			h.connected.Add(1)

		case conn := <-h.unregister:
			if h.clients[conn] {
				delete(h.clients, conn)
				h.connected.Add(-1)
				conn.Close()
			}

		case msg := <-h.broadcast:
			h.send(msg)

		case <-h.quit:
			h.flush()
			for c := range h.clients {
				c.WriteMessage(websocket.CloseMessage,
					websocket.FormatCloseMessage(websocket.CloseNormalClosure, "done"))
				c.Close()
			}
			h.clients = map[*websocket.Conn]bool{}
			h.connected.Store(0)
			return
		}
	}
}

func (h *WebSocketHub) send(msg WSMessage) {
	data, err := json.Marshal(msg)
	if err != nil {
		h.logger.Error("progress: encode message: " + err.Error())
		return
	}
	for c := range h.clients {
		if err := c.WriteMessage(websocket.TextMessage, data); err != nil {
			delete(h.clients, c)
			h.connected.Add(-1)
			c.Close()
		}
	}
}

// flush delivers whatever is still queued.
func (h *WebSocketHub) flush() {
	for {
		select {
		case msg := <-h.broadcast:
			h.send(msg)
		default:
			return
		}
	}
}

// Broadcast queues msg for every connected client. It drops msg once the
// hub has stopped.
func (h *WebSocketHub) Broadcast(msg WSMessage) {
	select {
	case h.broadcast <- msg:
	case <-h.quit:
	}
}

// Connected reports the number of registered clients.
func (h *WebSocketHub) Connected() int {
	return int(h.connected.Load())
}

// Stop delivers queued messages, closes every client and waits for Run
// to return.
func (h *WebSocketHub) Stop() {
	close(h.quit)
	<-h.done
}

func (h *WebSocketHub) HandleWS(w http.ResponseWriter, r *http.Request) {
	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		h.logger.Warn("progress: websocket upgrade failed: " + err.Error())
		return
	}

	select {
	case h.register <- conn:
	case <-h.quit:
		conn.Close()
		return
	}

	// read until the client goes away; clients never send anything useful
	for {
		if _, _, err := conn.ReadMessage(); err != nil {
			break
		}
	}

	select {
	case h.unregister <- conn:
	case <-h.quit:
	}
}
