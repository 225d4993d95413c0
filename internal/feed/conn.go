package feed

import (
	"context"
	"sync"
	"time"

	"github.com/charmbracelet/log"
	"github.com/coder/websocket"
)

const writeTimeout = 5 * time.Second

type conn struct {
	ws     *websocket.Conn
	sendCh chan []byte
	done   chan struct{}
	once   sync.Once
	id     uint64
	logger *log.Logger
}

func newConn(ws *websocket.Conn, id uint64, logger *log.Logger) *conn {
	return &conn{
		ws:     ws,
		sendCh: make(chan []byte, 64),
		done:   make(chan struct{}),
		id:     id,
		logger: logger,
	}
}

// send queues data without blocking. A slow client loses updates rather than
// stalling the game loop.
func (c *conn) send(data []byte) {
	select {
	case c.sendCh <- data:
	default:
		c.logger.Debug("send buffer full, dropping update", "conn", c.id)
	}
}

func (c *conn) writeLoop(ctx context.Context) {
	for {
		select {
		case data := <-c.sendCh:
			wctx, cancel := context.WithTimeout(ctx, writeTimeout)
			err := c.ws.Write(wctx, websocket.MessageText, data)
			cancel()
			if err != nil {
				c.logger.Debug("write failed", "conn", c.id, "error", err)
				c.close()
				return
			}
		case <-c.done:
			return
		case <-ctx.Done():
			return
		}
	}
}

func (c *conn) close() {
	c.once.Do(func() {
		close(c.done)
		c.ws.Close(websocket.StatusNormalClosure, "") //nolint:errcheck
	})
}
