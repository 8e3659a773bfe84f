package feed

import (
	"net/http"
	"sync"
	"time"

	"case-engine/internal/model"

	"github.com/gorilla/websocket"
	"github.com/rs/zerolog"
)

const (
	writeWait      = 2 * time.Second
	sendBufferSize = 64
)

// Drop is one live-feed entry for spectators. Seeds are not included; the
// verify endpoint is the place to fetch them.
type Drop struct {
	RoundKey   string    `json:"round_key"`
	CaseID     int64     `json:"case_id"`
	CaseName   string    `json:"case_name"`
	SymbolName string    `json:"symbol_name"`
	Rarity     string    `json:"rarity"`
	Winnings   int64     `json:"winnings"`
	IsPity     bool      `json:"is_pity"`
	At         time.Time `json:"at"`
}

// client pairs a connection with its send queue. All writes to the
// connection go through the queue's single write pump; a websocket
// connection supports only one concurrent writer.
type client struct {
	conn *websocket.Conn
	send chan Drop
}

// Hub fans finished openings out to connected websocket clients. The feed
// is best-effort presentation state; clients that cannot keep up get
// dropped.
type Hub struct {
	mu       sync.Mutex
	clients  map[*client]struct{}
	upgrader websocket.Upgrader
	logger   zerolog.Logger
}

func NewHub(logger zerolog.Logger) *Hub {
	return &Hub{
		clients: make(map[*client]struct{}),
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
			CheckOrigin:     func(r *http.Request) bool { return true },
		},
		logger: logger,
	}
}

// ServeHTTP upgrades the connection and keeps it registered until the
// client goes away.
func (h *Hub) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	conn, err := h.upgrader.Upgrade(w, r, nil)
	if err != nil {
		h.logger.Warn().Err(err).Msg("websocket upgrade failed")
		return
	}

	c := &client{conn: conn, send: make(chan Drop, sendBufferSize)}

	h.mu.Lock()
	h.clients[c] = struct{}{}
	h.mu.Unlock()

	h.logger.Debug().Str("remote", conn.RemoteAddr().String()).Msg("feed client connected")

	go h.writePump(c)
	go func() {
		defer h.remove(c)
		for {
			if _, _, err := conn.ReadMessage(); err != nil {
				return
			}
		}
	}()
}

// writePump is the connection's only writer. It drains the send queue
// until the queue is closed by remove or a write fails.
func (h *Hub) writePump(c *client) {
	defer h.remove(c)
	for drop := range c.send {
		c.conn.SetWriteDeadline(time.Now().Add(writeWait))
		if err := c.conn.WriteJSON(drop); err != nil {
			return
		}
	}
}

// remove unregisters the client and closes its send queue exactly once.
// The map membership check is the guard: the queue is only ever closed
// under the lock, on the transition out of the map.
func (h *Hub) remove(c *client) {
	h.mu.Lock()
	if _, ok := h.clients[c]; ok {
		delete(h.clients, c)
		close(c.send)
	}
	h.mu.Unlock()
	_ = c.conn.Close()
}

// BroadcastOpening implements service.DropBroadcaster. Enqueueing is
// non-blocking: a client whose queue is full is disconnected rather than
// allowed to stall the settlement path.
func (h *Hub) BroadcastOpening(o *model.CaseOpening, symbol model.Symbol, caseName string) {
	drop := Drop{
		RoundKey:   o.RoundKey,
		CaseID:     o.CaseID,
		CaseName:   caseName,
		SymbolName: symbol.Name,
		Rarity:     string(symbol.Rarity),
		Winnings:   o.Winnings,
		IsPity:     o.IsPity,
		At:         o.CreatedAt,
	}

	var stalled []*client
	h.mu.Lock()
	for c := range h.clients {
		select {
		case c.send <- drop:
		default:
			delete(h.clients, c)
			close(c.send)
			stalled = append(stalled, c)
		}
	}
	h.mu.Unlock()

	for _, c := range stalled {
		h.logger.Debug().Str("remote", c.conn.RemoteAddr().String()).Msg("feed client too slow, dropped")
		_ = c.conn.Close()
	}
}

// Close disconnects all clients.
func (h *Hub) Close() {
	h.mu.Lock()
	for c := range h.clients {
		delete(h.clients, c)
		close(c.send)
		_ = c.conn.Close()
	}
	h.mu.Unlock()
}
