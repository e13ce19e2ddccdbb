// Package api streams overlay state to websocket clients so the overlay can
// be inspected from outside the game window.
package api

import (
	"fmt"
	"log"
	"net/http"
	"time"

	"tilescope/overlay"

	"github.com/gorilla/websocket"
)

var upgrader = websocket.Upgrader{
	CheckOrigin: func(r *http.Request) bool {
		// Local diagnostic tooling connects from arbitrary origins.
		return true
	},
}

// Message types sent to clients.
const (
	MessageTypeOverlayState = "overlay_state"
	MessageTypeAck          = "ack"
	MessageTypePing         = "ping"
)

// WSMessage is the JSON envelope for every server-to-client message.
type WSMessage struct {
	Type      string    `json:"type"`
	Data      any       `json:"data,omitempty"`
	Timestamp time.Time `json:"timestamp"`
}

// OverlaySummary is the per-frame overlay digest broadcast to clients.
type OverlaySummary struct {
	Map            string                `json:"map"`
	CombineBorders bool                  `json:"combineBorders"`
	Legend         []overlay.LegendEntry `json:"legend"`
	TileCount      int                   `json:"tileCount"`
	BorderSegments int                   `json:"borderSegments"`
}

// Summarize digests one frame's draw data into an OverlaySummary.
func Summarize(mapName string, combine bool, legend []overlay.LegendEntry, tiles map[overlay.TilePos]*overlay.TileDrawData) OverlaySummary {
	segments := 0
	for _, d := range tiles {
		for _, e := range d.Borders {
			for _, flag := range []overlay.TileEdge{overlay.EdgeLeft, overlay.EdgeRight, overlay.EdgeTop, overlay.EdgeBottom} {
				if e.Has(flag) {
					segments++
				}
			}
		}
	}
	return OverlaySummary{
		Map:            mapName,
		CombineBorders: combine,
		Legend:         legend,
		TileCount:      len(tiles),
		BorderSegments: segments,
	}
}

// Hub fans overlay summaries out to connected websocket clients.
type Hub struct {
	clients    map[*WSClient]bool
	broadcast  chan WSMessage
	register   chan *WSClient
	unregister chan *WSClient
}

// WSClient represents a connected websocket client.
type WSClient struct {
	hub  *Hub
	conn *websocket.Conn
	send chan WSMessage
	id   string
}

// NewHub creates a hub; call Run on its own goroutine before serving.
func NewHub() *Hub {
	return &Hub{
		clients:    make(map[*WSClient]bool),
		broadcast:  make(chan WSMessage, 256),
		register:   make(chan *WSClient),
		unregister: make(chan *WSClient),
	}
}

// Run handles client registration and message fan-out. Clients whose send
// buffer is full are dropped rather than allowed to stall the loop.
func (h *Hub) Run() {
	for {
		select {
		case client := <-h.register:
			h.clients[client] = true
			client.send <- WSMessage{
				Type:      MessageTypeAck,
				Data:      "Connected to overlay stream",
				Timestamp: time.Now(),
			}

		case client := <-h.unregister:
			if _, ok := h.clients[client]; ok {
				delete(h.clients, client)
				close(client.send)
				log.Printf("Client %s disconnected", client.id)
			}

		case message := <-h.broadcast:
			for client := range h.clients {
				select {
				case client.send <- message:
				default:
					close(client.send)
					delete(h.clients, client)
				}
			}
		}
	}
}

// Publish queues a summary for broadcast. It never blocks the frame thread;
// if the broadcast buffer is full the frame is skipped.
func (h *Hub) Publish(summary OverlaySummary) {
	msg := WSMessage{
		Type:      MessageTypeOverlayState,
		Data:      summary,
		Timestamp: time.Now(),
	}
	select {
	case h.broadcast <- msg:
	default:
	}
}

// HandleWebSocket upgrades an HTTP request and attaches the client to the hub.
func (h *Hub) HandleWebSocket(w http.ResponseWriter, r *http.Request) {
	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		log.Printf("WebSocket upgrade failed: %v", err)
		return
	}

	client := &WSClient{
		hub:  h,
		conn: conn,
		send: make(chan WSMessage, 64),
		id:   fmt.Sprintf("%d", time.Now().UnixNano()),
	}
	h.register <- client

	go client.writePump()
	go client.readPump()
}

// StartWebSocketServer runs the hub and serves /ws on addr.
func StartWebSocketServer(addr string) *Hub {
	hub := NewHub()
	go hub.Run()

	mux := http.NewServeMux()
	mux.HandleFunc("/ws", hub.HandleWebSocket)

	go func() {
		log.Printf("WebSocket server starting on %s", addr)
		if err := http.ListenAndServe(addr, mux); err != nil {
			log.Printf("WebSocket server stopped: %v", err)
		}
	}()
	return hub
}

// writePump pumps messages from the hub to the websocket connection
func (c *WSClient) writePump() {
	ticker := time.NewTicker(54 * time.Second)
	defer func() {
		ticker.Stop()
		c.conn.Close()
	}()

	for {
		select {
		case message, ok := <-c.send:
			if !ok {
				c.conn.WriteMessage(websocket.CloseMessage, nil)
				return
			}
			if err := c.conn.WriteJSON(message); err != nil {
				log.Printf("Error writing message to client %s: %v", c.id, err)
				return
			}

		case <-ticker.C:
			// Keep the connection alive through idle frames.
			if err := c.conn.WriteJSON(WSMessage{Type: MessageTypePing, Timestamp: time.Now()}); err != nil {
				return
			}
		}
	}
}

// readPump drains the connection so pings and close frames are processed; the
// stream is one-way, incoming payloads are discarded.
func (c *WSClient) readPump() {
	defer func() {
		c.hub.unregister <- c
		c.conn.Close()
	}()

	for {
		if _, _, err := c.conn.ReadMessage(); err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseAbnormalClosure) {
				log.Printf("WebSocket error: %v", err)
			}
			return
		}
	}
}
