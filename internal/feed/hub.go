// Package feed pushes display updates (balance, score, points earned) to
// web pages over WebSocket. A newly connected page first receives the last
// value of every element, then live updates.
package feed

import (
	"context"
	"io"
	"net/http"
	"sync"

	"github.com/charmbracelet/log"
	"github.com/coder/websocket"

	"github.com/vovakirdan/ozembnic-arcade/internal/display"
)

// Hub fans display updates out to connected clients.
type Hub struct {
	mu             sync.Mutex
	conns          map[uint64]*conn
	nextID         uint64
	last           map[string]string
	order          []string
	logger         *log.Logger
	originPatterns []string
}

// Option configures a Hub.
type Option func(*Hub)

// WithLogger sets the logger. The default discards everything.
func WithLogger(logger *log.Logger) Option {
	return func(h *Hub) {
		h.logger = logger
	}
}

// WithOriginPatterns allows cross-origin pages matching the patterns.
func WithOriginPatterns(patterns ...string) Option {
	return func(h *Hub) {
		h.originPatterns = patterns
	}
}

// NewHub creates an empty hub.
func NewHub(opts ...Option) *Hub {
	h := &Hub{
		conns:  make(map[uint64]*conn),
		last:   make(map[string]string),
		logger: log.New(io.Discard),
	}
	for _, opt := range opts {
		opt(h)
	}
	return h
}

// Publish records the text of element id and sends it to every client.
func (h *Hub) Publish(id, text string) {
	data, err := Encode(Update{ID: id, Text: text})
	if err != nil {
		h.logger.Warn("cannot encode update", "id", id, "error", err)
		return
	}

	h.mu.Lock()
	defer h.mu.Unlock()
	if _, seen := h.last[id]; !seen {
		h.order = append(h.order, id)
	}
	h.last[id] = text
	for _, c := range h.conns {
		c.send(data)
	}
}

// Target returns a display target that publishes to element id.
func (h *Hub) Target(id string) display.Target {
	return display.TargetFunc(func(text string) {
		h.Publish(id, text)
	})
}

// Board returns a display board wired to the standard element IDs.
func (h *Hub) Board() *display.Board {
	return &display.Board{
		Balance: h.Target(display.TotalPoints),
		Score:   h.Target(display.GameScore),
		Earned:  h.Target(display.PointsEarned),
	}
}

// Clients returns the number of connected clients.
func (h *Hub) Clients() int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return len(h.conns)
}

// ServeHTTP upgrades the request and streams updates until the client leaves.
func (h *Hub) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	opts := &websocket.AcceptOptions{}
	if len(h.originPatterns) > 0 {
		opts.OriginPatterns = h.originPatterns
	}
	ws, err := websocket.Accept(w, r, opts)
	if err != nil {
		h.logger.Warn("websocket accept failed", "remote", r.RemoteAddr, "error", err)
		return
	}

	// Clients never send anything; CloseRead handles control frames and
	// cancels ctx when the peer goes away.
	ctx := ws.CloseRead(context.Background())

	c := h.register(ws)
	h.logger.Info("feed client connected", "conn", c.id, "remote", r.RemoteAddr)
	go c.writeLoop(ctx)

	select {
	case <-ctx.Done():
		c.close()
	case <-c.done:
	}

	h.unregister(c)
	h.logger.Info("feed client disconnected", "conn", c.id)
}

// register adds the client and queues the snapshot under the same lock as
// Publish, so no update falls between snapshot and live stream.
func (h *Hub) register(ws *websocket.Conn) *conn {
	h.mu.Lock()
	defer h.mu.Unlock()

	h.nextID++
	c := newConn(ws, h.nextID, h.logger)
	for _, id := range h.order {
		data, err := Encode(Update{ID: id, Text: h.last[id]})
		if err != nil {
			continue
		}
		c.send(data)
	}
	h.conns[c.id] = c
	return c
}

func (h *Hub) unregister(c *conn) {
	h.mu.Lock()
	delete(h.conns, c.id)
	h.mu.Unlock()
}

// Close disconnects every client.
func (h *Hub) Close() {
	h.mu.Lock()
	conns := make([]*conn, 0, len(h.conns))
	for _, c := range h.conns {
		conns = append(conns, c)
	}
	h.mu.Unlock()

	for _, c := range conns {
		c.close()
	}
}
