package api

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"sync"
	"time"

	"github.com/gorilla/websocket"

	"github.com/shouni/menu-photo-studio/pkg/gallery"
)

const (
	eventBuffer = 64
	writeWait   = 10 * time.Second
)

// eventHub はギャラリーの変更通知を WebSocket クライアントへ中継します。
type eventHub struct {
	gallery  *gallery.Gallery
	upgrader websocket.Upgrader

	mu      sync.Mutex
	clients map[*eventClient]bool
}

type eventClient struct {
	conn   *websocket.Conn
	events <-chan gallery.Event
	cancel func()
}

func newEventHub(g *gallery.Gallery, checkOrigin func(r *http.Request) bool) *eventHub {
	return &eventHub{
		gallery: g,
		clients: make(map[*eventClient]bool),
		upgrader: websocket.Upgrader{
			CheckOrigin: checkOrigin,
		},
	}
}

func (h *eventHub) register(c *eventClient) {
	h.mu.Lock()
	h.clients[c] = true
	h.mu.Unlock()
}

func (h *eventHub) unregister(c *eventClient) {
	h.mu.Lock()
	delete(h.clients, c)
	h.mu.Unlock()
	c.cancel()
}

func (h *eventHub) closeAll() {
	h.mu.Lock()
	clients := make([]*eventClient, 0, len(h.clients))
	for c := range h.clients {
		clients = append(clients, c)
	}
	h.mu.Unlock()

	for _, c := range clients {
		h.unregister(c)
	}
}

// handleEvents は接続直後に現在の料理一覧を送り、その後は変更通知を流します。
func (s *Server) handleEvents(w http.ResponseWriter, r *http.Request) {
	conn, err := s.events.upgrader.Upgrade(w, r, nil)
	if err != nil {
		slog.WarnContext(r.Context(), "WebSocket upgrade error", "error", err)
		return
	}

	events, cancel := s.gallery.Subscribe(eventBuffer)
	client := &eventClient{conn: conn, events: events, cancel: cancel}
	s.events.register(client)

	hello := gallery.Event{Type: gallery.EventReset, Dishes: s.gallery.List()}
	if err := client.write(hello); err != nil {
		s.events.unregister(client)
		conn.Close()
		return
	}

	go client.writePump()
	go client.readPump(s.events)
}

// readPump はクライアントからの切断を検知するためだけに読み続けます。
func (c *eventClient) readPump(h *eventHub) {
	defer h.unregister(c)
	for {
		if _, _, err := c.conn.ReadMessage(); err != nil {
			return
		}
	}
}

func (c *eventClient) writePump() {
	defer c.conn.Close()
	for ev := range c.events {
		if err := c.write(ev); err != nil {
			return
		}
	}
	_ = c.conn.WriteControl(websocket.CloseMessage,
		websocket.FormatCloseMessage(websocket.CloseGoingAway, ""), time.Now().Add(writeWait))
}

func (c *eventClient) write(ev gallery.Event) error {
	data, err := json.Marshal(toEventView(ev))
	if err != nil {
		return err
	}
	_ = c.conn.SetWriteDeadline(time.Now().Add(writeWait))
	return c.conn.WriteMessage(websocket.TextMessage, data)
}
