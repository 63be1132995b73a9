package game

import (
	"encoding/json"
	"net/http"
	"sync"
	"time"

	"github.com/gorilla/websocket"
	"go.uber.org/zap"

	gameuc "goboard/internal/usecase/game"
)

const (
	wsIdlePingInterval = 30 * time.Second
	wsSendBuffer       = 16
)

type wsMessage struct {
	Type    string          `json:"type"`
	Cue     gameuc.Cue      `json:"cue,omitempty"`
	Payload json.RawMessage `json:"payload,omitempty"`
}

var upgrader = websocket.Upgrader{
	CheckOrigin: func(r *http.Request) bool { return true },
}

type wsClient struct {
	conn *websocket.Conn
	send chan []byte
}

// Hub fans session snapshots and sound cues out to every connected
// websocket. It is the session's SoundPlayer: the browser plays the cue.
type Hub struct {
	log *zap.SugaredLogger

	mu      sync.Mutex
	clients map[*wsClient]struct{}
}

func NewHub(log *zap.SugaredLogger) *Hub {
	return &Hub{
		log:     log,
		clients: make(map[*wsClient]struct{}),
	}
}

// Play implements gameuc.SoundPlayer.
func (h *Hub) Play(cue gameuc.Cue) {
	h.broadcast(wsMessage{Type: "sound", Cue: cue})
}

// PublishState pushes snap to all clients. Suitable for Session.Subscribe.
func (h *Hub) PublishState(snap gameuc.Snapshot) {
	payload, err := json.Marshal(snap)
	if err != nil {
		h.log.Errorw("failed to encode snapshot", "error", err)
		return
	}
	h.broadcast(wsMessage{Type: "state", Payload: payload})
}

// ClientCount is the number of open connections.
func (h *Hub) ClientCount() int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return len(h.clients)
}

// Close disconnects every client.
func (h *Hub) Close() {
	h.mu.Lock()
	defer h.mu.Unlock()
	for c := range h.clients {
		delete(h.clients, c)
		close(c.send)
	}
}

func (h *Hub) broadcast(msg wsMessage) {
	data, err := json.Marshal(msg)
	if err != nil {
		h.log.Errorw("failed to encode websocket message", "type", msg.Type, "error", err)
		return
	}
	h.mu.Lock()
	defer h.mu.Unlock()
	for c := range h.clients {
		c.enqueue(data)
	}
}

func (h *Hub) register(c *wsClient) {
	h.mu.Lock()
	h.clients[c] = struct{}{}
	h.mu.Unlock()
}

func (h *Hub) unregister(c *wsClient) {
	h.mu.Lock()
	if _, ok := h.clients[c]; ok {
		delete(h.clients, c)
		close(c.send)
	}
	h.mu.Unlock()
}

// enqueue drops the message when the client is too slow to keep up.
func (c *wsClient) enqueue(data []byte) {
	select {
	case c.send <- data:
	default:
	}
}

// serve upgrades the request, sends initial and then relays broadcasts
// until the client goes away. Incoming frames are ignored.
func (h *Hub) serve(w http.ResponseWriter, r *http.Request, initial gameuc.Snapshot) {
	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		h.log.Warnw("websocket upgrade failed", "error", err)
		return
	}
	client := &wsClient{conn: conn, send: make(chan []byte, wsSendBuffer)}

	payload, err := json.Marshal(initial)
	if err == nil {
		if data, err := json.Marshal(wsMessage{Type: "state", Payload: payload}); err == nil {
			client.enqueue(data)
		}
	}
	h.register(client)

	go func() {
		defer conn.Close()
		if err := writeWithHeartbeat(conn, client.send); err != nil {
			h.log.Debugw("websocket write stopped", "error", err)
		}
	}()

	for {
		if _, _, err := conn.ReadMessage(); err != nil {
			h.unregister(client)
			return
		}
	}
}

func writeWithHeartbeat(conn *websocket.Conn, send <-chan []byte) error {
	ticker := time.NewTicker(wsIdlePingInterval)
	defer ticker.Stop()
	lastWrite := time.Now()
	ping, _ := json.Marshal(wsMessage{Type: "ping"})

	for {
		select {
		case msg, ok := <-send:
			if !ok {
				_ = conn.WriteMessage(websocket.CloseMessage, websocket.FormatCloseMessage(websocket.CloseNormalClosure, ""))
				return nil
			}
			if err := conn.WriteMessage(websocket.TextMessage, msg); err != nil {
				return err
			}
			lastWrite = time.Now()
		case <-ticker.C:
			if time.Since(lastWrite) < wsIdlePingInterval {
				continue
			}
			if err := conn.WriteMessage(websocket.TextMessage, ping); err != nil {
				return err
			}
			lastWrite = time.Now()
		}
	}
}
